package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/templates"
	"github.com/moasq/rnmodule/internal/terminal"
)

var (
	templatesName      string
	templatesPlatforms []string
	templatesExample   bool
	templatesFormat    string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates a module would be generated from",
	Long:  "List the module (or example app) templates selected for the given platforms and the path each one renders to.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := options.Options{Name: templatesName, GenerateExample: templatesExample}
		if cmd.Flags().Changed("platforms") {
			opts.Platforms = templatesPlatforms
		}
		return listTemplates(terminal.Out, opts, settings.Defaults, templatesExample, templatesFormat)
	},
}

func init() {
	templatesCmd.Flags().StringVar(&templatesName, "name", "my-module", "module name used to resolve output paths")
	templatesCmd.Flags().StringSliceVar(&templatesPlatforms, "platforms", nil, "platforms to select for (default android,ios)")
	templatesCmd.Flags().BoolVar(&templatesExample, "example", false, "list the example app templates")
	templatesCmd.Flags().StringVarP(&templatesFormat, "format", "o", "text", "output format: text or yaml")
}

func listTemplates(w io.Writer, opts options.Options, defaults options.Defaults, example bool, format string) error {
	cfg, _, err := options.Normalize(opts, defaults)
	if err != nil {
		return err
	}
	var entries []templates.Entry
	if example {
		entries = templates.List(templates.Example(), cfg.Platforms, templates.NewExampleContext(cfg))
	} else {
		entries = templates.List(templates.Module(), cfg.Platforms, templates.NewModuleContext(cfg))
	}

	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding templates: %w", err)
		}
		return enc.Close()
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TEMPLATE\tPLATFORM\tPATH")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Template, orDash(e.Platform), orDash(e.Path))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q: use text or yaml", format)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
