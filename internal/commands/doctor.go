package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/terminal"
	"github.com/moasq/rnmodule/internal/toolcheck"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools needed for example apps",
	Long:  "Run every prerequisite check for --generate-example and report each one, instead of stopping at the first failure.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor(cmd.Context(), process.NewExec(), toolcheck.DefaultTools())
	},
}

func runDoctor(ctx context.Context, runner process.Runner, tools []toolcheck.Tool) error {
	terminal.Header("rnmodule doctor")

	missing := 0
	for _, tool := range tools {
		err := toolcheck.New(runner, tool).WithLogger(logger).WithOutput(io.Discard).Check(ctx)
		if err == nil {
			terminal.Success(fmt.Sprintf("%s (%s)", tool.Name, tool.Command))
			continue
		}
		missing++
		terminal.Error(fmt.Sprintf("%s (%s)", tool.Name, tool.Command))
		var de *toolcheck.DependencyError
		if errors.As(err, &de) {
			terminal.Detail("error", de.Err.Error())
		}
		if tool.Remedy != "" {
			terminal.Detail("remedy", tool.Remedy)
		}
	}
	terminal.Divider()
	if missing > 0 {
		return fmt.Errorf("%d of %d prerequisites missing", missing, len(tools))
	}
	return nil
}
