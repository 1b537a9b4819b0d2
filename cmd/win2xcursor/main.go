package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/eltaters/win2xcursor/pkg/logging"
	"github.com/eltaters/win2xcursor/pkg/theme"
)

const version = "1.0.0"

var (
	themeDir       string
	debugMode      bool
	ignoreHotspots bool
	skipBroken     bool
	compileTimeout time.Duration
	logLevel       string
	versionFlag    bool
	rootCmd        *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "win2xcursor",
		Short: "Convert Windows .ani cursors into an Xcursor theme",
		Long: `Convert Windows animated cursor (.ani) files into an Xcursor theme.

Expects --theme-dir to be an existing directory with a config.toml, and the
ANI files to be stored in <theme-dir>/ani. Compiled cursors land in
<theme-dir>/cursors, built with xcursorgen.`,
		RunE: buildTheme,
	}

	cwd, _ := os.Getwd()
	rootCmd.Flags().StringVar(&themeDir, "theme-dir", cwd, "Path to the cursor theme directory")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Debug output, keep intermediate build files")
	rootCmd.Flags().BoolVar(&ignoreHotspots, "ignore-hotspots", false, "Force every cursor hotspot to 0,0")
	rootCmd.Flags().BoolVar(&skipBroken, "skip-broken", false, "Skip cursors that fail to decode instead of failing the run")
	rootCmd.Flags().DurationVar(&compileTimeout, "timeout", 30*time.Second, "Per-cursor xcursorgen timeout")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("win2xcursor %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildTheme(cmd *cobra.Command, args []string) error {
	if versionFlag {
		fmt.Printf("win2xcursor %s\n", version)
		fmt.Printf("Built: %s\n", getBuildTimestamp())
		return nil
	}
	cmd.SilenceUsage = true

	level := logLevel
	if debugMode {
		level = "debug"
	}
	logger := logging.NewLogger("win2xcursor", level, nil)

	cfg, err := theme.LoadConfig(theme.NewDir(themeDir).ConfigPath())
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		return err
	}

	builder := theme.NewBuilder(themeDir, cfg, theme.Options{
		IgnoreHotspots: ignoreHotspots,
		SkipBroken:     skipBroken,
		KeepStaging:    debugMode,
		CompileTimeout: compileTimeout,
	}, logger)

	results, err := builder.Run(context.Background())
	if err != nil {
		logger.Error("Theme build aborted", "error", err)
		return err
	}

	built, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Skipped:
			skipped++
		case res.Err != nil:
			failed++
			logger.Error("Cursor failed", "cursor", res.Name, "error", res.Err)
		default:
			built++
		}
	}
	logger.Info("✅ Theme build finished", "built", built, "skipped", skipped, "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d cursors failed", failed, len(results))
	}
	return nil
}
