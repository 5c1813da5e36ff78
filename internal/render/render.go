// Package render writes template descriptors to a filesystem.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/moasq/rnmodule/internal/templates"
)

// RenderError reports a template that could not be produced or written.
type RenderError struct {
	Template string
	Path     string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("rendering %s: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("rendering %s to %s: %v", e.Template, e.Path, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer writes descriptors below a root directory.
type Renderer struct {
	fs afero.Fs
}

// New returns a Renderer writing to fsys.
func New(fsys afero.Fs) *Renderer {
	return &Renderer{fs: fsys}
}

// Render writes one descriptor. It returns the written path and true, or
// "" and false when the descriptor does not apply to tc. Existing files are
// overwritten.
func (r *Renderer) Render(root string, d templates.Descriptor, tc templates.Context) (string, bool, error) {
	rel, ok := d.Path(tc).Get()
	if !ok {
		return "", false, nil
	}
	target := filepath.Join(root, filepath.FromSlash(rel))

	content, err := d.Content(tc)
	if err != nil {
		return "", false, &RenderError{Template: d.Name(), Path: target, Err: err}
	}
	if err := writeTextFile(r.fs, target, content, 0o644); err != nil {
		return "", false, &RenderError{Template: d.Name(), Path: target, Err: err}
	}
	return target, true, nil
}

// RenderAll renders ds concurrently and waits for all of them. It returns the
// written paths sorted, or the first error encountered. Renders that have not
// started when ctx is done or another render fails are skipped.
func (r *Renderer) RenderAll(ctx context.Context, root string, ds []templates.Descriptor, tc templates.Context) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		mu      sync.Mutex
		written []string
	)
	for _, d := range ds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, ok, err := r.Render(root, d, tc)
			if err != nil || !ok {
				return err
			}
			mu.Lock()
			written = append(written, p)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(written)
	return written, nil
}

func writeTextFile(fsys afero.Fs, path, content string, perm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fsys, path, []byte(content), perm)
}
