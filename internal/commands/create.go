package commands

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/pipeline"
	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/terminal"
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a native module",
	Long: `Create a React Native native module in a new directory named after the module.

Options come from an optional YAML file (--options-file), then from flags, then
from the name argument. Values left unset fall back to ~/.rnmodule/config.yaml
and the RNMODULE_* environment, then to built-in defaults.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := createFlagValues.resolve(cmd.Flags(), args)
		if err != nil {
			return err
		}
		if terminal.IsInteractive() {
			terminal.Banner(Version)
		}
		if opts.Name == "" && terminal.IsInteractive() {
			if opts.Name, err = terminal.Ask("Module name", ""); err != nil {
				return err
			}
		}
		return runCreate(cmd.Context(), createEnv{
			fs:       afero.NewOsFs(),
			runner:   process.NewExec(),
			logger:   logger,
			defaults: settings.Defaults,
		}, createFlagValues.dir, opts, !createFlagValues.noPostinstall)
	},
}

var createFlagValues = &createFlags{}

func init() {
	createFlagValues.register(createCmd.Flags())
}

type createFlags struct {
	file          string
	dir           string
	noPostinstall bool
	opts          options.Options
}

func (f *createFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.file, "options-file", "f", "", "YAML file with module options")
	fs.StringVar(&f.dir, "dir", ".", "directory the module directory is created in")
	fs.BoolVar(&f.noPostinstall, "no-postinstall", false, "do not add the postinstall hook to the example package.json")

	fs.StringVar(&f.opts.Prefix, "prefix", "", "prefix for the native class name, e.g. RN")
	fs.StringVar(&f.opts.ModulePrefix, "module-prefix", "", "prefix for the package name (default react-native)")
	fs.StringVar(&f.opts.ModuleName, "module-name", "", "package and directory name (default <module-prefix>-<name>)")
	fs.StringVar(&f.opts.ObjectClassName, "object-class-name", "", "native class name (default <prefix><Name>)")
	fs.StringVar(&f.opts.PackageIdentifier, "package-identifier", "", "Android package identifier (default com.reactlibrary)")
	fs.StringSliceVar(&f.opts.Platforms, "platforms", nil, "target platforms (default android,ios)")
	fs.BoolVar(&f.opts.TvosEnabled, "tvos-enabled", false, "also target tvOS")
	fs.StringVar(&f.opts.GithubAccount, "github-account", "", "GitHub account for repository URLs")
	fs.StringVar(&f.opts.AuthorName, "author-name", "", "author name")
	fs.StringVar(&f.opts.AuthorEmail, "author-email", "", "author email")
	fs.StringVar(&f.opts.License, "license", "", "license identifier (default MIT)")
	fs.BoolVar(&f.opts.View, "view", false, "generate a native UI view component")
	fs.BoolVar(&f.opts.UseAppleNetworking, "use-apple-networking", false, "add an iOS URLSession networking helper")
	fs.BoolVar(&f.opts.UseTypescript, "use-typescript", false, "write TypeScript entry points")
	fs.BoolVar(&f.opts.UseSwift, "use-swift", false, "write iOS sources in Swift")
	fs.BoolVar(&f.opts.UseKotlin, "use-kotlin", false, "write Android sources in Kotlin")
	fs.BoolVar(&f.opts.GenerateExample, "generate-example", false, "create an example app with react-native init")
	fs.StringVar(&f.opts.ExampleName, "example-name", "", "example app directory name (default example)")
	fs.StringVar(&f.opts.ExampleTemplate, "example-react-native-template", "", "template passed to react-native init (default react-native@latest)")
	fs.BoolVar(&f.opts.PatchUnifiedExample, "patch-unified-example", false, "let the example bundler resolve the module from the parent directory")
}

// resolve merges the options file, explicitly set flags and the name
// argument, in increasing priority.
func (f *createFlags) resolve(fs *pflag.FlagSet, args []string) (options.Options, error) {
	var opts options.Options
	if f.file != "" {
		loaded, err := options.LoadFile(f.file)
		if err != nil {
			return options.Options{}, err
		}
		opts = loaded
	}

	overrides := map[string]func(){
		"prefix":                        func() { opts.Prefix = f.opts.Prefix },
		"module-prefix":                 func() { opts.ModulePrefix = f.opts.ModulePrefix },
		"module-name":                   func() { opts.ModuleName = f.opts.ModuleName },
		"object-class-name":             func() { opts.ObjectClassName = f.opts.ObjectClassName },
		"package-identifier":            func() { opts.PackageIdentifier = f.opts.PackageIdentifier },
		"platforms":                     func() { opts.Platforms = f.opts.Platforms },
		"tvos-enabled":                  func() { opts.TvosEnabled = f.opts.TvosEnabled },
		"github-account":                func() { opts.GithubAccount = f.opts.GithubAccount },
		"author-name":                   func() { opts.AuthorName = f.opts.AuthorName },
		"author-email":                  func() { opts.AuthorEmail = f.opts.AuthorEmail },
		"license":                       func() { opts.License = f.opts.License },
		"view":                          func() { opts.View = f.opts.View },
		"use-apple-networking":          func() { opts.UseAppleNetworking = f.opts.UseAppleNetworking },
		"use-typescript":                func() { opts.UseTypescript = f.opts.UseTypescript },
		"use-swift":                     func() { opts.UseSwift = f.opts.UseSwift },
		"use-kotlin":                    func() { opts.UseKotlin = f.opts.UseKotlin },
		"generate-example":              func() { opts.GenerateExample = f.opts.GenerateExample },
		"example-name":                  func() { opts.ExampleName = f.opts.ExampleName },
		"example-react-native-template": func() { opts.ExampleTemplate = f.opts.ExampleTemplate },
		"patch-unified-example":         func() { opts.PatchUnifiedExample = f.opts.PatchUnifiedExample },
	}
	fs.Visit(func(fl *pflag.Flag) {
		if apply, ok := overrides[fl.Name]; ok {
			apply()
		}
	})

	if len(args) > 0 {
		opts.Name = args[0]
	}
	return opts, nil
}

type createEnv struct {
	fs       afero.Fs
	runner   process.Runner
	logger   *zap.Logger
	defaults options.Defaults
}

func runCreate(ctx context.Context, env createEnv, dir string, opts options.Options, postinstall bool) error {
	cfg, _, err := options.Normalize(opts, env.defaults)
	if err != nil {
		return err
	}
	terminal.Summary(cfg)

	p := pipeline.New(env.fs, env.runner, env.logger,
		pipeline.WithWorkDir(dir),
		pipeline.WithDefaults(env.defaults),
	)
	res, err := p.Run(ctx, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		terminal.Warning(w)
	}
	terminal.FileList(res.ModuleDir, res.Files)

	if postinstall {
		path, err := pipeline.PatchExampleManifest(env.fs, res)
		if err != nil {
			return err
		}
		if path != "" {
			terminal.Info(fmt.Sprintf("Added postinstall script to %s", path))
		}
	}

	terminal.Success(fmt.Sprintf("Created %s in %s", res.Config.ModuleName, res.ModuleDir))
	if res.Config.GenerateExample {
		terminal.Detail("Example", fmt.Sprintf("cd %s/%s && yarn && npx react-native run-ios", res.ModuleDir, res.Config.ExampleName))
	}
	return nil
}
