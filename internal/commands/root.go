package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moasq/rnmodule/internal/config"
	"github.com/moasq/rnmodule/internal/logging"
)

// Version is set at build time.
var Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:               "rnmodule",
	Short:             "React Native native module generator",
	Long:              "rnmodule scaffolds React Native native modules for Android and iOS, optionally with an example app.",
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

var (
	configFlag    string
	logLevelFlag  string
	logFormatFlag string
)

// Resolved by loadSettings before any subcommand runs.
var (
	userConfig *viper.Viper
	settings   = &config.Settings{}
	logger     = logging.Nop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.rnmodule/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "log format: console or json")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(addScriptCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(mcpCmd)
}

func loadSettings(cmd *cobra.Command, args []string) error {
	userConfig = config.New(configFlag)
	s, err := config.Load(userConfig)
	if err != nil {
		return err
	}
	if logLevelFlag != "" {
		s.LogLevel = logLevelFlag
	}
	if logFormatFlag != "" {
		s.LogFormat = logFormatFlag
	}
	l, err := logging.New(s.LogLevel, s.LogFormat)
	if err != nil {
		return err
	}
	settings = s
	logger = l
	return nil
}
