package commands

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/scaffoldserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long:  "Starts an MCP server over stdio exposing create_module, add_script and list_templates. Modules are created relative to the current directory.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		// stdout carries the protocol, so child processes only get stderr.
		runner := &process.Exec{Stdout: os.Stderr, Stderr: os.Stderr}
		return scaffoldserver.New(afero.NewOsFs(), runner, logger, settings.Defaults, workDir, Version).Run(cmd.Context())
	},
}
