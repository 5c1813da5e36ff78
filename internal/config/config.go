package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/moasq/rnmodule/internal/options"
)

const (
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "RNMODULE"
	homeDir   = ".rnmodule"
)

// Keys accepted in the config file. Each one can also be set through an
// RNMODULE_<SNAKE_CASE> environment variable.
const (
	KeyModulePrefix      = "modulePrefix"
	KeyPackageIdentifier = "packageIdentifier"
	KeyPlatforms         = "platforms"
	KeyGithubAccount     = "githubAccount"
	KeyAuthorName        = "authorName"
	KeyAuthorEmail       = "authorEmail"
	KeyLicense           = "license"
	KeyExampleName       = "exampleName"
	KeyExampleTemplate   = "exampleReactNativeTemplate"
	KeyLogLevel          = "logLevel"
	KeyLogFormat         = "logFormat"
)

var envNames = map[string]string{
	KeyModulePrefix:      "MODULE_PREFIX",
	KeyPackageIdentifier: "PACKAGE_IDENTIFIER",
	KeyPlatforms:         "PLATFORMS",
	KeyGithubAccount:     "GITHUB_ACCOUNT",
	KeyAuthorName:        "AUTHOR_NAME",
	KeyAuthorEmail:       "AUTHOR_EMAIL",
	KeyLicense:           "LICENSE",
	KeyExampleName:       "EXAMPLE_NAME",
	KeyExampleTemplate:   "EXAMPLE_TEMPLATE",
	KeyLogLevel:          "LOG_LEVEL",
	KeyLogFormat:         "LOG_FORMAT",
}

// Settings is the user configuration: option defaults plus CLI behaviour.
type Settings struct {
	Defaults  options.Defaults
	LogLevel  string
	LogFormat string
	// File is the config file that was read, or "" when none exists.
	File string
}

// Dir returns the config directory (~/.rnmodule/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return homeDir
	}
	return filepath.Join(home, homeDir)
}

// FilePath returns the default config file path (~/.rnmodule/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Keys returns every supported key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(envNames))
	for k := range envNames {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// New returns a Viper instance reading path and the RNMODULE_* environment.
// An empty path means FilePath().
func New(path string) *viper.Viper {
	if path == "" {
		path = FilePath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	for key, env := range envNames {
		_ = v.BindEnv(key, envPrefix+"_"+env)
	}
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	return v
}

// Load reads the config file, if any, and resolves Settings. A missing file
// is not an error.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", v.ConfigFileUsed(), err)
		}
	} else {
		s.File = v.ConfigFileUsed()
	}

	d := options.Defaults{
		ModulePrefix:      v.GetString(KeyModulePrefix),
		PackageIdentifier: v.GetString(KeyPackageIdentifier),
		GithubAccount:     v.GetString(KeyGithubAccount),
		AuthorName:        v.GetString(KeyAuthorName),
		AuthorEmail:       v.GetString(KeyAuthorEmail),
		License:           v.GetString(KeyLicense),
		ExampleName:       v.GetString(KeyExampleName),
		ExampleTemplate:   v.GetString(KeyExampleTemplate),
	}
	if v.IsSet(KeyPlatforms) {
		platforms, err := options.ValidatePlatforms(splitList(v.GetStringSlice(KeyPlatforms)))
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", KeyPlatforms, err)
		}
		d.Platforms = platforms
	}
	s.Defaults = d
	s.LogLevel = v.GetString(KeyLogLevel)
	s.LogFormat = v.GetString(KeyLogFormat)
	return s, nil
}

// Set stores key=value in the config file behind v, creating it if needed.
func Set(v *viper.Viper, key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if key == KeyPlatforms {
		platforms, err := options.ValidatePlatforms(splitList([]string{value}))
		if err != nil {
			return err
		}
		v.Set(key, platforms)
	} else {
		v.Set(key, value)
	}

	path := v.ConfigFileUsed()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// splitList accepts both YAML lists and comma or space separated strings.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' '
		})...)
	}
	return out
}
