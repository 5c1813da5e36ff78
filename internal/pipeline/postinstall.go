package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moasq/rnmodule/internal/manifest"
)

// PatchExampleManifest adds the postinstall hook to the example app's
// package.json and returns the manifest path. It is a no-op returning "" for
// results without an example app.
func PatchExampleManifest(fsys afero.Fs, res *Result) (string, error) {
	if !res.Config.GenerateExample {
		return "", nil
	}
	path := filepath.Join(res.ModuleDir, res.Config.ExampleName, "package.json")
	if err := manifest.New(fsys).AddScript(path, manifest.PostinstallScript(res.Config.ModuleName)); err != nil {
		return "", fmt.Errorf("patching example manifest: %w", err)
	}
	return path, nil
}
