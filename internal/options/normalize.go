package options

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

var (
	identifierPattern        = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	packageIdentifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
	exampleNamePattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
)

// ValidationError reports a missing or malformed option. It is returned before
// any filesystem or process work starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Field, e.Reason)
}

// Normalize fills defaults, derives module and class names, and validates the
// result. The returned warnings are advisory and never block generation.
func Normalize(opts Options, defaults Defaults) (Config, []string, error) {
	defaults = mergeDefaults(defaults)

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return Config{}, nil, &ValidationError{Field: "name", Reason: "a module name is required"}
	}

	cfg := Config{
		Name:                name,
		Prefix:              strings.TrimSpace(opts.Prefix),
		ModulePrefix:        orDefault(opts.ModulePrefix, defaults.ModulePrefix),
		PackageIdentifier:   orDefault(opts.PackageIdentifier, defaults.PackageIdentifier),
		TvosEnabled:         opts.TvosEnabled,
		GithubAccount:       orDefault(opts.GithubAccount, defaults.GithubAccount),
		AuthorName:          orDefault(opts.AuthorName, defaults.AuthorName),
		AuthorEmail:         orDefault(opts.AuthorEmail, defaults.AuthorEmail),
		License:             orDefault(opts.License, defaults.License),
		View:                opts.View,
		UseAppleNetworking:  opts.UseAppleNetworking,
		UseTypescript:       opts.UseTypescript,
		UseSwift:            opts.UseSwift,
		UseKotlin:           opts.UseKotlin,
		GenerateExample:     opts.GenerateExample,
		ExampleName:         orDefault(opts.ExampleName, defaults.ExampleName),
		ExampleTemplate:     orDefault(opts.ExampleTemplate, defaults.ExampleTemplate),
		PatchUnifiedExample: opts.PatchUnifiedExample,
	}

	cfg.ModuleName = strings.TrimSpace(opts.ModuleName)
	if cfg.ModuleName == "" {
		if slug := ParamCase(name); slug != "" {
			cfg.ModuleName = cfg.ModulePrefix + "-" + slug
		}
	}
	if err := validateModuleName(cfg.ModuleName); err != nil {
		return Config{}, nil, err
	}

	cfg.ObjectClassName = strings.TrimSpace(opts.ObjectClassName)
	if cfg.ObjectClassName == "" {
		cfg.ObjectClassName = cfg.Prefix + PascalCase(name)
	}
	if !identifierPattern.MatchString(cfg.ObjectClassName) {
		return Config{}, nil, &ValidationError{
			Field:  "objectClassName",
			Reason: fmt.Sprintf("%q is not a valid class name", cfg.ObjectClassName),
		}
	}

	if !packageIdentifierPattern.MatchString(cfg.PackageIdentifier) {
		return Config{}, nil, &ValidationError{
			Field:  "packageIdentifier",
			Reason: fmt.Sprintf("%q is not a dotted Java package identifier", cfg.PackageIdentifier),
		}
	}

	// The example app is created and rendered inside the module directory.
	if !exampleNamePattern.MatchString(cfg.ExampleName) {
		return Config{}, nil, &ValidationError{
			Field:  "exampleName",
			Reason: fmt.Sprintf("%q must be a directory name starting with a letter", cfg.ExampleName),
		}
	}

	platforms := defaults.Platforms
	if opts.Platforms != nil {
		platforms = opts.Platforms
	}
	resolved, err := ValidatePlatforms(platforms)
	if err != nil {
		return Config{}, nil, err
	}
	cfg.Platforms = resolved

	var warnings []string
	if cfg.PackageIdentifier == DefaultPackageIdentifier {
		warnings = append(warnings, fmt.Sprintf(
			"%s is the default package identifier; it is recommended to customize it", DefaultPackageIdentifier))
	}
	return cfg, warnings, nil
}

// ValidatePlatforms lower-cases, trims and de-duplicates platform names,
// keeping first occurrences in order. Unknown names are rejected. The result
// is never nil.
func ValidatePlatforms(platforms []string) ([]string, error) {
	valid := make([]string, 0, len(platforms))
	for _, p := range platforms {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		switch p {
		case PlatformAndroid, PlatformIOS:
		default:
			return nil, &ValidationError{
				Field:  "platforms",
				Reason: fmt.Sprintf("unsupported platform %q: must be %q or %q", p, PlatformAndroid, PlatformIOS),
			}
		}
		if !slices.Contains(valid, p) {
			valid = append(valid, p)
		}
	}
	return valid, nil
}

func validateModuleName(moduleName string) error {
	if moduleName == "" {
		return &ValidationError{Field: "moduleName", Reason: "a module name is required"}
	}
	if moduleName == "." || moduleName == ".." || filepath.Base(moduleName) != moduleName ||
		strings.ContainsAny(moduleName, `/\`) {
		return &ValidationError{
			Field:  "moduleName",
			Reason: fmt.Sprintf("%q must be a single directory name", moduleName),
		}
	}
	return nil
}

func mergeDefaults(d Defaults) Defaults {
	b := BuiltinDefaults()
	d.ModulePrefix = orDefault(d.ModulePrefix, b.ModulePrefix)
	d.PackageIdentifier = orDefault(d.PackageIdentifier, b.PackageIdentifier)
	d.GithubAccount = orDefault(d.GithubAccount, b.GithubAccount)
	d.AuthorName = orDefault(d.AuthorName, b.AuthorName)
	d.AuthorEmail = orDefault(d.AuthorEmail, b.AuthorEmail)
	d.License = orDefault(d.License, b.License)
	d.ExampleName = orDefault(d.ExampleName, b.ExampleName)
	d.ExampleTemplate = orDefault(d.ExampleTemplate, b.ExampleTemplate)
	if d.Platforms == nil {
		d.Platforms = b.Platforms
	}
	return d
}

func orDefault(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}
