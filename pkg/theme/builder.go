package theme

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/eltaters/win2xcursor/pkg/ani"
	"github.com/eltaters/win2xcursor/pkg/ico"
	"github.com/eltaters/win2xcursor/pkg/xcur"
)

// Options tune a theme build.
type Options struct {
	// IgnoreHotspots forces every hotspot to the origin.
	IgnoreHotspots bool

	// SkipBroken demotes per-cursor decode failures to warnings instead of
	// counting them as build failures.
	SkipBroken bool

	// KeepStaging leaves the frames/ and xcursorfiles/ directories behind
	// for inspection.
	KeepStaging bool

	// CompileTimeout bounds each xcursorgen invocation.
	CompileTimeout time.Duration
}

// Result is the outcome of one cursor target.
type Result struct {
	Name    string
	Err     error
	Skipped bool // source missing, or broken and SkipBroken set
}

// Builder runs the whole theme pipeline for a validated configuration.
type Builder struct {
	dir      *Dir
	cfg      *Config
	opts     Options
	compiler *Compiler
	logger   hclog.Logger
}

func NewBuilder(themeDir string, cfg *Config, opts Options, logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	d := NewDir(themeDir)
	return &Builder{
		dir:  d,
		cfg:  cfg,
		opts: opts,
		compiler: &Compiler{
			Dir:     d.Root(),
			Timeout: opts.CompileTimeout,
			Logger:  logger,
		},
		logger: logger,
	}
}

// Run builds every cursor in the configuration and returns one Result per
// entry, in configuration order. Duplicate target names abort the run before
// anything is written; after that, each cursor's failure is its own.
func (b *Builder) Run(ctx context.Context) ([]Result, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := b.dir.Setup(); err != nil {
		return nil, err
	}

	// Cursors are independent: each pipeline owns its buffers and only the
	// results slice is shared, at disjoint indices.
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	results := make([]Result, len(b.cfg.Cursors))
	for i, cur := range b.cfg.Cursors {
		i, cur := i, cur
		g.Go(func() error {
			results[i] = b.buildOne(ctx, cur)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	if err := b.dir.WriteIndexTheme(); err != nil {
		b.logger.Error("Failed to create index.theme", "error", err)
	} else {
		b.logger.Info("Created index.theme", "theme", filepath.Base(b.dir.Root()))
	}

	if !b.opts.KeepStaging {
		if err := b.dir.Cleanup(); err != nil {
			b.logger.Warn("Failed to remove staging directories", "error", err)
		}
	}
	return results, nil
}

// buildOne runs the full pipeline for a single cursor: read, decode the ANI
// container, decode one icon variant per frame, scale, emit the frame PNGs
// and the .cursor file, compile, link aliases.
func (b *Builder) buildOne(ctx context.Context, cur CursorSpec) Result {
	log := b.logger.With("cursor", cur.Name)
	src := filepath.Join(b.dir.Ani(), cur.File)

	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("Source file not found, skipping", "file", cur.File)
		return Result{Name: cur.Name, Err: err, Skipped: true}
	}
	if err != nil {
		return Result{Name: cur.Name, Err: err}
	}

	frames, timeline, err := b.decode(data)
	if err != nil {
		err = fmt.Errorf("%s: %w", cur.File, err)
		if b.opts.SkipBroken {
			log.Warn("Broken cursor file, skipping", "error", err)
			return Result{Name: cur.Name, Err: err, Skipped: true}
		}
		return Result{Name: cur.Name, Err: err}
	}

	cursorFile := filepath.Join(b.dir.CursorFiles(), cur.Name+".cursor")
	if err := xcur.Emit(cur.Name, frames, timeline, b.dir.Frames(), cursorFile); err != nil {
		return Result{Name: cur.Name, Err: err}
	}

	output := filepath.Join(b.dir.Cursors(), cur.Name)
	log.Info("Creating cursor", "steps", len(timeline), "frames", len(frames))
	if err := b.compiler.Compile(ctx, cursorFile, output); err != nil {
		return Result{Name: cur.Name, Err: err}
	}

	for _, alias := range cur.Aliases {
		if err := b.compiler.Alias(cur.Name, filepath.Join(b.dir.Cursors(), alias)); err != nil {
			log.Error("Failed to create alias", "alias", alias, "error", err)
			return Result{Name: cur.Name, Err: err}
		}
		log.Info("Created alias", "alias", alias)
	}
	return Result{Name: cur.Name}
}

// decode turns raw ANI bytes into scaled frames plus their timeline. Every
// frame uses the size variant matching the first frame's pick, so one cursor
// never mixes resolutions.
func (b *Builder) decode(data []byte) ([]xcur.Frame, []ani.TimelineEntry, error) {
	f, err := ani.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	timeline, err := f.Timeline()
	if err != nil {
		return nil, nil, err
	}

	target := 0
	frames := make([]xcur.Frame, len(f.Frames))
	for i, raw := range f.Frames {
		dir, err := ico.ParseDir(raw, b.opts.IgnoreHotspots)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %d: %w", i, err)
		}
		entry, err := dir.Select(target)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if i == 0 {
			target = entry.Width
		}
		img, err := ico.DecodeEntry(entry)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames[i] = xcur.Scale(xcur.Frame{Img: img, HotX: entry.HotX, HotY: entry.HotY}, b.cfg.Scale)
	}
	return frames, timeline, nil
}
