package templates

// Entry describes one catalog descriptor for listings.
type Entry struct {
	Template string `json:"template" yaml:"template"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
	// Path is empty when the descriptor does not apply to the context.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// List selects catalog for platforms and resolves every output path against
// tc.
func List(catalog []Descriptor, platforms []string, tc Context) []Entry {
	selected := Select(catalog, platforms)
	entries := make([]Entry, 0, len(selected))
	for _, d := range selected {
		p, _ := d.Path(tc).Get()
		entries = append(entries, Entry{Template: d.Name(), Platform: d.Platform(), Path: p})
	}
	return entries
}
