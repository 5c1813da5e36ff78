package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moasq/rnmodule/internal/config"
	"github.com/moasq/rnmodule/internal/terminal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change user defaults",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective user defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showConfig(userConfig, settings)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a default in the config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(userConfig, args[0], args[1]); err != nil {
			return err
		}
		terminal.Success(fmt.Sprintf("%s set in %s", args[0], userConfig.ConfigFileUsed()))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func showConfig(v *viper.Viper, s *config.Settings) {
	file := s.File
	if file == "" {
		file = v.ConfigFileUsed() + " (not created yet)"
	}
	terminal.Header("rnmodule config")
	terminal.Detail("file", file)
	for _, key := range config.Keys() {
		value := fmt.Sprint(v.Get(key))
		if !v.IsSet(key) {
			value = "-"
		}
		terminal.Detail(key, value)
	}
}
