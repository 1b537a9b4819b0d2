package theme

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir is the fixed layout of a theme directory: ANI sources under ani/,
// extracted PNG frames under frames/, generated .cursor files under
// xcursorfiles/, compiled cursors under cursors/, plus config.toml and
// index.theme at the root.
type Dir struct {
	base string
}

func NewDir(base string) *Dir { return &Dir{base: base} }

func (d *Dir) Root() string        { return d.base }
func (d *Dir) Ani() string         { return filepath.Join(d.base, "ani") }
func (d *Dir) Frames() string      { return filepath.Join(d.base, "frames") }
func (d *Dir) CursorFiles() string { return filepath.Join(d.base, "xcursorfiles") }
func (d *Dir) Cursors() string     { return filepath.Join(d.base, "cursors") }
func (d *Dir) ConfigPath() string  { return filepath.Join(d.base, "config.toml") }
func (d *Dir) IndexTheme() string  { return filepath.Join(d.base, "index.theme") }

// Setup creates the build directories.
func (d *Dir) Setup() error {
	for _, dir := range []string{d.Frames(), d.CursorFiles(), d.Cursors()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// Cleanup removes the intermediate build directories, keeping only the
// compiled cursors and index.theme.
func (d *Dir) Cleanup() error {
	for _, dir := range []string{d.CursorFiles(), d.Frames()} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}

// WriteIndexTheme generates the index.theme file at the theme root. The
// theme is named after its directory and inherits breeze_cursors for any
// cursor it does not provide.
func (d *Dir) WriteIndexTheme() error {
	name := filepath.Base(d.base)
	text := fmt.Sprintf("[Icon Theme]\nName=%s\nInherits=breeze_cursors\n", name)
	return os.WriteFile(d.IndexTheme(), []byte(text), 0o644)
}
