package templates

import (
	"slices"
	"strings"

	"github.com/moasq/rnmodule/internal/options"
)

// Context is the read-only view of the generation config handed to every
// descriptor in one render pass. The module pass and the example pass build
// it differently: the example pass leaves platform and authorship fields zero.
type Context struct {
	ModuleName        string
	ObjectClassName   string
	PackageIdentifier string

	Platforms     []string
	TvosEnabled   bool
	GithubAccount string
	AuthorName    string
	AuthorEmail   string
	License       string

	View                bool
	UseAppleNetworking  bool
	UseTypescript       bool
	UseSwift            bool
	UseKotlin           bool
	GenerateExample     bool
	ExampleName         string
	PatchUnifiedExample bool
}

// NewModuleContext builds the context for rendering the library module.
func NewModuleContext(cfg options.Config) Context {
	return Context{
		ModuleName:          cfg.ModuleName,
		ObjectClassName:     cfg.ObjectClassName,
		PackageIdentifier:   cfg.PackageIdentifier,
		Platforms:           slices.Clone(cfg.Platforms),
		TvosEnabled:         cfg.TvosEnabled,
		GithubAccount:       cfg.GithubAccount,
		AuthorName:          cfg.AuthorName,
		AuthorEmail:         cfg.AuthorEmail,
		License:             cfg.License,
		View:                cfg.View,
		UseAppleNetworking:  cfg.UseAppleNetworking,
		UseTypescript:       cfg.UseTypescript,
		UseSwift:            cfg.UseSwift,
		UseKotlin:           cfg.UseKotlin,
		GenerateExample:     cfg.GenerateExample,
		ExampleName:         cfg.ExampleName,
		PatchUnifiedExample: cfg.PatchUnifiedExample,
	}
}

// NewExampleContext builds the context for rendering the example app files.
func NewExampleContext(cfg options.Config) Context {
	return Context{
		ModuleName:          cfg.ModuleName,
		ObjectClassName:     cfg.ObjectClassName,
		PackageIdentifier:   cfg.PackageIdentifier,
		View:                cfg.View,
		UseAppleNetworking:  cfg.UseAppleNetworking,
		UseTypescript:       cfg.UseTypescript,
		UseSwift:            cfg.UseSwift,
		UseKotlin:           cfg.UseKotlin,
		GenerateExample:     true,
		ExampleName:         cfg.ExampleName,
		PatchUnifiedExample: cfg.PatchUnifiedExample,
	}
}

// HasPlatform reports whether p is part of the context's platform set.
func (c Context) HasPlatform(p string) bool {
	return slices.Contains(c.Platforms, p)
}

// AndroidPackagePath is the package identifier as a source directory path.
func (c Context) AndroidPackagePath() string {
	return strings.ReplaceAll(c.PackageIdentifier, ".", "/")
}

// JSName is the name the native module is registered under on the JS side.
func (c Context) JSName() string {
	return c.ObjectClassName
}
