// Package options turns raw, partially filled module options into a fully
// resolved generation config.
package options

import "slices"

// Platform identifiers accepted in Options.Platforms.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// Built-in defaults used when neither the caller nor the user config sets a value.
const (
	DefaultModulePrefix      = "react-native"
	DefaultPackageIdentifier = "com.reactlibrary"
	DefaultGithubAccount     = "github_account"
	DefaultAuthorName        = "Your Name"
	DefaultAuthorEmail       = "yourname@email.com"
	DefaultLicense           = "MIT"
	DefaultExampleName       = "example"
	DefaultExampleTemplate   = "react-native@latest"
)

// DefaultPlatforms is the platform set used when Options.Platforms is nil.
var DefaultPlatforms = []string{PlatformAndroid, PlatformIOS}

// Options is the raw option record supplied by the CLI, an options file or
// the MCP server. Empty strings and nil slices mean "not set".
type Options struct {
	Name              string   `yaml:"name"`
	Prefix            string   `yaml:"prefix"`
	ModulePrefix      string   `yaml:"modulePrefix"`
	ModuleName        string   `yaml:"moduleName"`
	ObjectClassName   string   `yaml:"objectClassName"`
	PackageIdentifier string   `yaml:"packageIdentifier"`
	Platforms         []string `yaml:"platforms"`
	TvosEnabled       bool     `yaml:"tvosEnabled"`

	GithubAccount string `yaml:"githubAccount"`
	AuthorName    string `yaml:"authorName"`
	AuthorEmail   string `yaml:"authorEmail"`
	License       string `yaml:"license"`

	View               bool `yaml:"view"`
	UseAppleNetworking bool `yaml:"useAppleNetworking"`
	UseTypescript      bool `yaml:"useTypescript"`
	UseSwift           bool `yaml:"useSwift"`
	UseKotlin          bool `yaml:"useKotlin"`

	GenerateExample     bool   `yaml:"generateExample"`
	ExampleName         string `yaml:"exampleName"`
	ExampleTemplate     string `yaml:"exampleReactNativeTemplate"`
	PatchUnifiedExample bool   `yaml:"patchUnifiedExample"`
}

// Defaults holds the fallback values applied during normalization.
// User configuration may override the built-in ones.
type Defaults struct {
	ModulePrefix      string
	PackageIdentifier string
	Platforms         []string
	GithubAccount     string
	AuthorName        string
	AuthorEmail       string
	License           string
	ExampleName       string
	ExampleTemplate   string
}

// BuiltinDefaults returns the compiled-in defaults.
func BuiltinDefaults() Defaults {
	return Defaults{
		ModulePrefix:      DefaultModulePrefix,
		PackageIdentifier: DefaultPackageIdentifier,
		Platforms:         slices.Clone(DefaultPlatforms),
		GithubAccount:     DefaultGithubAccount,
		AuthorName:        DefaultAuthorName,
		AuthorEmail:       DefaultAuthorEmail,
		License:           DefaultLicense,
		ExampleName:       DefaultExampleName,
		ExampleTemplate:   DefaultExampleTemplate,
	}
}

// Config is the fully resolved generation configuration. It is produced once
// by Normalize and passed by value; nothing downstream mutates it.
type Config struct {
	Name              string
	Prefix            string
	ModulePrefix      string
	ModuleName        string
	ObjectClassName   string
	PackageIdentifier string
	Platforms         []string
	TvosEnabled       bool

	GithubAccount string
	AuthorName    string
	AuthorEmail   string
	License       string

	View               bool
	UseAppleNetworking bool
	UseTypescript      bool
	UseSwift           bool
	UseKotlin          bool

	GenerateExample     bool
	ExampleName         string
	ExampleTemplate     string
	PatchUnifiedExample bool
}

// HasPlatform reports whether p is one of the configured platforms.
func (c Config) HasPlatform(p string) bool {
	return slices.Contains(c.Platforms, p)
}
