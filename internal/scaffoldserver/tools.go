package scaffoldserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/moasq/rnmodule/internal/manifest"
	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/pipeline"
	"github.com/moasq/rnmodule/internal/templates"
)

// createModuleInput is the input for the create_module tool.
type createModuleInput struct {
	Name                string   `json:"name" jsonschema:"Human readable module name e.g. camera roll. Drives the derived package and class names."`
	ModuleName          string   `json:"module_name,omitempty" jsonschema:"npm package and directory name. Defaults to <module_prefix>-<param-cased name>."`
	Prefix              string   `json:"prefix,omitempty" jsonschema:"Prefix for the native class name e.g. RN"`
	ModulePrefix        string   `json:"module_prefix,omitempty" jsonschema:"Prefix for the package name. Defaults to react-native."`
	ObjectClassName     string   `json:"object_class_name,omitempty" jsonschema:"Native class name. Defaults to <prefix><PascalCased name>."`
	PackageIdentifier   string   `json:"package_identifier,omitempty" jsonschema:"Android package identifier e.g. io.acme.camera"`
	Platforms           []string `json:"platforms,omitempty" jsonschema:"Target platforms: android and/or ios. Omit for both."`
	TvosEnabled         bool     `json:"tvos_enabled,omitempty" jsonschema:"Also target tvOS in the podspec"`
	GithubAccount       string   `json:"github_account,omitempty" jsonschema:"GitHub account used in repository URLs"`
	AuthorName          string   `json:"author_name,omitempty" jsonschema:"Author name for package.json and the podspec"`
	AuthorEmail         string   `json:"author_email,omitempty" jsonschema:"Author email for package.json and the podspec"`
	License             string   `json:"license,omitempty" jsonschema:"SPDX license identifier. Defaults to MIT."`
	View                bool     `json:"view,omitempty" jsonschema:"Generate a native UI view component instead of a plain module"`
	UseAppleNetworking  bool     `json:"use_apple_networking,omitempty" jsonschema:"Add an iOS networking helper built on URLSession"`
	UseTypescript       bool     `json:"use_typescript,omitempty" jsonschema:"Write index.ts and App.tsx instead of JavaScript"`
	UseSwift            bool     `json:"use_swift,omitempty" jsonschema:"Write the iOS sources in Swift"`
	UseKotlin           bool     `json:"use_kotlin,omitempty" jsonschema:"Write the Android sources in Kotlin"`
	GenerateExample     bool     `json:"generate_example,omitempty" jsonschema:"Create an example app with react-native init. Requires npx and yarn."`
	ExampleName         string   `json:"example_name,omitempty" jsonschema:"Example app directory name. Defaults to example."`
	ExampleTemplate     string   `json:"example_template,omitempty" jsonschema:"Template passed to react-native init. Defaults to react-native@latest."`
	PatchUnifiedExample bool     `json:"patch_unified_example,omitempty" jsonschema:"Let the example bundler resolve the module from the parent directory"`
	SkipPostinstall     bool     `json:"skip_postinstall,omitempty" jsonschema:"Do not add the postinstall hook to the example package.json"`
}

func (in createModuleInput) options() options.Options {
	return options.Options{
		Name:                in.Name,
		Prefix:              in.Prefix,
		ModulePrefix:        in.ModulePrefix,
		ModuleName:          in.ModuleName,
		ObjectClassName:     in.ObjectClassName,
		PackageIdentifier:   in.PackageIdentifier,
		Platforms:           in.Platforms,
		TvosEnabled:         in.TvosEnabled,
		GithubAccount:       in.GithubAccount,
		AuthorName:          in.AuthorName,
		AuthorEmail:         in.AuthorEmail,
		License:             in.License,
		View:                in.View,
		UseAppleNetworking:  in.UseAppleNetworking,
		UseTypescript:       in.UseTypescript,
		UseSwift:            in.UseSwift,
		UseKotlin:           in.UseKotlin,
		GenerateExample:     in.GenerateExample,
		ExampleName:         in.ExampleName,
		ExampleTemplate:     in.ExampleTemplate,
		PatchUnifiedExample: in.PatchUnifiedExample,
	}
}

type createModuleOutput struct {
	Message   string   `json:"message"`
	ModuleDir string   `json:"module_dir"`
	Files     []string `json:"files"`
	Warnings  []string `json:"warnings,omitempty"`
	Manifest  string   `json:"manifest,omitempty"`
}

func (s *Server) handleCreateModule(ctx context.Context, req *mcp.CallToolRequest, input createModuleInput) (*mcp.CallToolResult, createModuleOutput, error) {
	p := pipeline.New(s.fs, s.runner, s.logger,
		pipeline.WithWorkDir(s.workDir),
		pipeline.WithDefaults(s.defaults),
		pipeline.WithToolOutput(os.Stderr),
	)
	res, err := p.Run(ctx, input.options())
	if err != nil {
		return nil, createModuleOutput{}, err
	}

	out := createModuleOutput{ModuleDir: res.ModuleDir, Files: res.Files, Warnings: res.Warnings}
	if !input.SkipPostinstall {
		path, err := pipeline.PatchExampleManifest(s.fs, res)
		if err != nil {
			return nil, createModuleOutput{}, err
		}
		out.Manifest = path
	}
	out.Message = fmt.Sprintf("Created %s in %s (%d files).", res.Config.ModuleName, res.ModuleDir, len(res.Files))
	s.logger.Info("module created over mcp", zap.String("module", res.Config.ModuleName), zap.String("path", res.ModuleDir))
	return nil, out, nil
}

// addScriptInput is the input for the add_script tool.
type addScriptInput struct {
	Manifest string `json:"manifest" jsonschema:"Path to the package.json file, absolute or relative to the server working directory"`
	Key      string `json:"key" jsonschema:"Script name e.g. postinstall"`
	Value    string `json:"value" jsonschema:"Shell command the script runs"`
}

type textOutput struct {
	Message string `json:"message"`
}

func (s *Server) handleAddScript(ctx context.Context, req *mcp.CallToolRequest, input addScriptInput) (*mcp.CallToolResult, textOutput, error) {
	if input.Key == "" {
		return nil, textOutput{}, fmt.Errorf("key is required")
	}
	path := input.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.workDir, path)
	}
	if err := manifest.New(s.fs).AddScript(path, manifest.Script{Key: input.Key, Value: input.Value}); err != nil {
		return nil, textOutput{}, err
	}
	return nil, textOutput{Message: fmt.Sprintf("Set scripts.%s in %s.", input.Key, path)}, nil
}

// listTemplatesInput is the input for the list_templates tool.
type listTemplatesInput struct {
	Name      string   `json:"name,omitempty" jsonschema:"Module name used to resolve output paths. Defaults to my-module."`
	Platforms []string `json:"platforms,omitempty" jsonschema:"Platforms to select for. Omit for android and ios."`
	Example   bool     `json:"example,omitempty" jsonschema:"List the example app catalog instead of the module catalog"`
}

type listTemplatesOutput struct {
	Templates []templates.Entry `json:"templates"`
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input listTemplatesInput) (*mcp.CallToolResult, listTemplatesOutput, error) {
	name := input.Name
	if name == "" {
		name = "my-module"
	}
	cfg, _, err := options.Normalize(options.Options{Name: name, Platforms: input.Platforms, GenerateExample: input.Example}, s.defaults)
	if err != nil {
		return nil, listTemplatesOutput{}, err
	}
	if input.Example {
		return nil, listTemplatesOutput{Templates: templates.List(templates.Example(), cfg.Platforms, templates.NewExampleContext(cfg))}, nil
	}
	return nil, listTemplatesOutput{Templates: templates.List(templates.Module(), cfg.Platforms, templates.NewModuleContext(cfg))}, nil
}
