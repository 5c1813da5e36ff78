package commands

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moasq/rnmodule/internal/manifest"
	"github.com/moasq/rnmodule/internal/terminal"
)

var addScriptCmd = &cobra.Command{
	Use:   "add-script <package.json> <key> <value>",
	Short: "Set a script in a package.json",
	Long:  "Set scripts.<key> to <value> in a package.json, creating the scripts object when it is missing. Every other field keeps its value and position.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAddScript(afero.NewOsFs(), args[0], args[1], args[2])
	},
}

func runAddScript(fsys afero.Fs, path, key, value string) error {
	if err := manifest.New(fsys).AddScript(path, manifest.Script{Key: key, Value: value}); err != nil {
		return err
	}
	terminal.Success(fmt.Sprintf("Set scripts.%s in %s", key, path))
	return nil
}
