// Package templates holds the module and example template catalogs and the
// platform selection applied to them.
package templates

import (
	"fmt"
	"slices"
	"strings"
)

// PathResult is the outcome of resolving a descriptor's output path: either a
// concrete relative path or an explicit "not applicable" marker.
type PathResult struct {
	path string
	ok   bool
}

// At returns a PathResult for a concrete path relative to the render root.
func At(path string) PathResult {
	return PathResult{path: path, ok: true}
}

// NotApplicable returns a PathResult telling the renderer to skip the
// descriptor for this context.
func NotApplicable() PathResult {
	return PathResult{}
}

// Get returns the resolved path and whether the descriptor applies.
func (r PathResult) Get() (string, bool) {
	return r.path, r.ok
}

// Descriptor is one template unit. Descriptors are independent of each other
// and never mutated.
type Descriptor interface {
	// Name identifies the descriptor in listings and errors.
	Name() string
	// Platform returns the platform tag, or "" for platform-agnostic templates.
	Platform() string
	Path(Context) PathResult
	Content(Context) (string, error)
}

// fileTemplate is a Descriptor backed by an embedded text/template file.
type fileTemplate struct {
	source   string
	platform string
	path     func(Context) PathResult
}

// File returns a descriptor rendering the embedded template at source.
// platform may be "".
func File(source, platform string, path func(Context) PathResult) Descriptor {
	return &fileTemplate{source: source, platform: platform, path: path}
}

func (t *fileTemplate) Name() string               { return t.source }
func (t *fileTemplate) Platform() string           { return t.platform }
func (t *fileTemplate) Path(tc Context) PathResult { return t.path(tc) }

func (t *fileTemplate) Content(tc Context) (string, error) {
	tmpl, err := parsed(t.source)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, tc); err != nil {
		return "", fmt.Errorf("executing template %s: %w", t.source, err)
	}
	return b.String(), nil
}

// Select returns the descriptors that are platform-agnostic or tagged with
// one of platforms, in catalog order.
func Select(catalog []Descriptor, platforms []string) []Descriptor {
	selected := make([]Descriptor, 0, len(catalog))
	for _, d := range catalog {
		if p := d.Platform(); p == "" || slices.Contains(platforms, p) {
			selected = append(selected, d)
		}
	}
	return selected
}

