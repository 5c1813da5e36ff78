// Package pipeline drives one module generation from raw options to files on
// disk.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/moasq/rnmodule/internal/example"
	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/render"
	"github.com/moasq/rnmodule/internal/templates"
	"github.com/moasq/rnmodule/internal/toolcheck"
)

// Stage is a point the pipeline has reached.
type Stage string

const (
	StageStart               Stage = "start"
	StageNormalized          Stage = "normalized"
	StageModuleRendered      Stage = "module-rendered"
	StageToolsChecked        Stage = "tools-checked"
	StageExampleBootstrapped Stage = "example-bootstrapped"
	StageExampleRendered     Stage = "example-rendered"
	StageDone                Stage = "done"
)

// exampleStages maps bootstrapper steps to the stage reached when they finish.
var exampleStages = map[string]Stage{
	example.StepCheckTools:    StageToolsChecked,
	example.StepInitExample:   StageExampleBootstrapped,
	example.StepRenderExample: StageExampleRendered,
}

// StageError reports the stage the pipeline was trying to reach when it
// failed. Files written by earlier stages are left in place.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Result describes a finished generation.
type Result struct {
	Config    options.Config
	Warnings  []string
	Stages    []Stage
	ModuleDir string
	// Files lists every written file: module files first, then example files,
	// each group sorted.
	Files []string
}

// Pipeline generates modules.
type Pipeline struct {
	fs       afero.Fs
	runner   process.Runner
	logger   *zap.Logger
	workDir  string
	defaults options.Defaults
	tools    []toolcheck.Tool
	toolOut  io.Writer
	module   []templates.Descriptor
	example  []templates.Descriptor
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkDir sets the directory the module directory is created in.
func WithWorkDir(dir string) Option {
	return func(p *Pipeline) { p.workDir = dir }
}

// WithDefaults replaces the built-in option defaults.
func WithDefaults(d options.Defaults) Option {
	return func(p *Pipeline) { p.defaults = d }
}

// WithTools replaces the tool checks run before the example app is created.
func WithTools(tools ...toolcheck.Tool) Option {
	return func(p *Pipeline) { p.tools = tools }
}

// WithToolOutput sets where tool check output is streamed.
func WithToolOutput(w io.Writer) Option {
	return func(p *Pipeline) { p.toolOut = w }
}

// WithCatalogs replaces the module and example template catalogs.
func WithCatalogs(module, example []templates.Descriptor) Option {
	return func(p *Pipeline) {
		p.module = module
		p.example = example
	}
}

// New returns a Pipeline writing to fsys and running tools through runner.
func New(fsys afero.Fs, runner process.Runner, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{
		fs:       fsys,
		runner:   runner,
		logger:   logger,
		workDir:  ".",
		defaults: options.BuiltinDefaults(),
		tools:    toolcheck.DefaultTools(),
		toolOut:  os.Stdout,
		module:   templates.Module(),
		example:  templates.Example(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run normalizes opts, renders the module and, when requested, bootstraps
// the example app. It stops at the first failing stage.
func (p *Pipeline) Run(ctx context.Context, opts options.Options) (*Result, error) {
	res := &Result{}
	p.reach(res, StageStart)

	cfg, warnings, err := options.Normalize(opts, p.defaults)
	if err != nil {
		return nil, &StageError{Stage: StageNormalized, Err: err}
	}
	res.Config = cfg
	res.Warnings = warnings
	for _, w := range warnings {
		p.logger.Warn(w, zap.String("module", cfg.ModuleName))
	}
	log := p.logger.With(zap.String("module", cfg.ModuleName))
	p.reach(res, StageNormalized)

	res.ModuleDir = filepath.Join(p.workDir, cfg.ModuleName)
	if err := p.fs.MkdirAll(res.ModuleDir, 0o755); err != nil {
		return nil, &StageError{Stage: StageModuleRendered, Err: fmt.Errorf("creating module directory: %w", err)}
	}
	renderer := render.New(p.fs)
	files, err := renderer.RenderAll(ctx, res.ModuleDir, templates.Select(p.module, cfg.Platforms), templates.NewModuleContext(cfg))
	if err != nil {
		return nil, &StageError{Stage: StageModuleRendered, Err: err}
	}
	res.Files = append(res.Files, files...)
	log.Info("module rendered", zap.String("path", res.ModuleDir), zap.Int("files", len(files)))
	p.reach(res, StageModuleRendered)

	if cfg.GenerateExample {
		checker := toolcheck.New(p.runner, p.tools...).WithLogger(log).WithOutput(p.toolOut)
		boot := example.New(checker, p.runner, renderer, p.example, log)
		exampleFiles, err := boot.Run(ctx, res.ModuleDir, cfg, func(step string) {
			p.reach(res, exampleStages[step])
		})
		if err != nil {
			stage := StageToolsChecked
			var se *example.StepError
			if errors.As(err, &se) {
				stage = exampleStages[se.Step]
			}
			return nil, &StageError{Stage: stage, Err: err}
		}
		res.Files = append(res.Files, exampleFiles...)
	}

	p.reach(res, StageDone)
	return res, nil
}

func (p *Pipeline) reach(res *Result, s Stage) {
	res.Stages = append(res.Stages, s)
	p.logger.Debug("stage reached", zap.String("stage", string(s)))
}
