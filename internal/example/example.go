// Package example creates the example app that ships next to a generated
// module.
package example

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/moasq/rnmodule/internal/options"
	"github.com/moasq/rnmodule/internal/process"
	"github.com/moasq/rnmodule/internal/templates"
)

// Step names, in the order they run.
const (
	StepCheckTools    = "check-tools"
	StepInitExample   = "init-example"
	StepRenderExample = "render-example"
)

// Checker verifies required tools.
type Checker interface {
	Check(ctx context.Context) error
}

// Renderer writes a descriptor batch below root.
type Renderer interface {
	RenderAll(ctx context.Context, root string, ds []templates.Descriptor, tc templates.Context) ([]string, error)
}

// Step is one named action of the bootstrap.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepError reports the step that stopped the bootstrap.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("example step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Bootstrapper checks tools, runs the React Native scaffolder inside the
// module directory, then renders the example template catalog over its
// output.
type Bootstrapper struct {
	checker  Checker
	runner   process.Runner
	renderer Renderer
	catalog  []templates.Descriptor
	logger   *zap.Logger
}

// New returns a Bootstrapper. A nil logger disables logging.
func New(checker Checker, runner process.Runner, renderer Renderer, catalog []templates.Descriptor, logger *zap.Logger) *Bootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bootstrapper{checker: checker, runner: runner, renderer: renderer, catalog: catalog, logger: logger}
}

// InitCommand is the scaffolding command run in moduleDir.
func InitCommand(moduleDir string, cfg options.Config) process.Command {
	return process.Command{
		Name: "npx",
		Args: []string{"react-native", "init", cfg.ExampleName, "--template", cfg.ExampleTemplate},
		Dir:  moduleDir,
	}
}

// Plan returns the ordered steps for cfg. Files written by the render step
// are appended to *written.
func (b *Bootstrapper) Plan(moduleDir string, cfg options.Config, written *[]string) []Step {
	return []Step{
		{Name: StepCheckTools, Run: b.checker.Check},
		{Name: StepInitExample, Run: func(ctx context.Context) error {
			return b.runner.Run(ctx, InitCommand(moduleDir, cfg))
		}},
		{Name: StepRenderExample, Run: func(ctx context.Context) error {
			paths, err := b.renderer.RenderAll(ctx, moduleDir, b.catalog, templates.NewExampleContext(cfg))
			if err != nil {
				return err
			}
			*written = append(*written, paths...)
			return nil
		}},
	}
}

// Run executes the plan and returns the example files it rendered. done, if
// not nil, is called with each step name after the step succeeds.
func (b *Bootstrapper) Run(ctx context.Context, moduleDir string, cfg options.Config, done func(step string)) ([]string, error) {
	var written []string
	for _, s := range b.Plan(moduleDir, cfg, &written) {
		b.logger.Info("example step", zap.String("step", s.Name), zap.String("module", cfg.ModuleName))
		if err := s.Run(ctx); err != nil {
			return nil, &StepError{Step: s.Name, Err: err}
		}
		if done != nil {
			done(s.Name)
		}
	}
	return written, nil
}
