package theme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

var ErrCompilerFailed = errors.New("xcursorgen invocation failed")

const defaultCompileTimeout = 30 * time.Second

// Compiler invokes the external xcursorgen tool. It is a black box to us:
// one invocation per target, success or failure plus stderr text.
type Compiler struct {
	// Dir is the working directory for invocations; image paths inside
	// .cursor files are relative to it.
	Dir string

	// Timeout bounds a single invocation. Zero means the default.
	Timeout time.Duration

	Logger hclog.Logger
}

// Compile runs xcursorgen on a .cursor file, writing the compiled cursor to
// output. A non-zero exit or a timeout fails this target only; the caller
// decides what happens to its siblings.
func (c *Compiler) Compile(ctx context.Context, cursorFile, output string) error {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = defaultCompileTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "xcursorgen", cursorFile, output)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.logger().Debug("🚀 Running xcursorgen", "cursorfile", cursorFile, "output", output)
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: timed out after %s", ErrCompilerFailed, timeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: exit code %d: %s", ErrCompilerFailed, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("%w: %v", ErrCompilerFailed, err)
	}
	return nil
}

// Alias links an alias name to a compiled cursor in the same directory. A
// stale link from a previous run is replaced. The link is relative so the
// theme directory stays relocatable.
func (c *Compiler) Alias(targetName, aliasPath string) error {
	if err := os.Remove(aliasPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale alias %s: %w", aliasPath, err)
	}
	if err := os.Symlink(targetName, aliasPath); err != nil {
		return fmt.Errorf("creating alias %s: %w", aliasPath, err)
	}
	return nil
}

func (c *Compiler) logger() hclog.Logger {
	if c.Logger == nil {
		return hclog.NewNullLogger()
	}
	return c.Logger
}
