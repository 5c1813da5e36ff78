// Package toolcheck verifies that the external CLI tools needed to scaffold an
// example app are installed.
package toolcheck

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"

	"github.com/moasq/rnmodule/internal/process"
)

// ExampleRemedy is shown when a tool needed for the example app is missing.
const ExampleRemedy = "yarn CLI tools are needed to generate example project"

// Tool is one required external tool. Command is run as-is and must exit 0.
// When Constraint is set, the first version number the command prints must
// satisfy it.
type Tool struct {
	Name       string
	Command    string
	Remedy     string
	Constraint string
}

// DefaultTools returns the checks run before the example app is created.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "react-native", Command: "npx react-native --version", Remedy: ExampleRemedy},
		{Name: "yarn", Command: "yarn --version", Remedy: ExampleRemedy},
	}
}

// DependencyError reports a tool that is missing, failed, or too old.
type DependencyError struct {
	Tool    string
	Command string
	Remedy  string
	Err     error
}

func (e *DependencyError) Error() string {
	msg := fmt.Sprintf("dependency check failed: %s (%s): %v", e.Tool, e.Command, e.Err)
	if e.Remedy != "" {
		msg += "\n" + e.Remedy
	}
	return msg
}

func (e *DependencyError) Unwrap() error { return e.Err }

// Checker runs tool checks one at a time in declaration order.
type Checker struct {
	runner process.Runner
	tools  []Tool
	logger *zap.Logger
	out    io.Writer
}

// New returns a Checker for tools. With no tools, Check always succeeds.
func New(runner process.Runner, tools ...Tool) *Checker {
	return &Checker{runner: runner, tools: tools, logger: zap.NewNop(), out: os.Stdout}
}

// WithLogger sets the logger used for check transitions.
func (c *Checker) WithLogger(l *zap.Logger) *Checker {
	c.logger = l
	return c
}

// WithOutput sets where tool output is streamed. Defaults to os.Stdout.
func (c *Checker) WithOutput(w io.Writer) *Checker {
	c.out = w
	return c
}

// Check runs every tool command and stops at the first failure.
func (c *Checker) Check(ctx context.Context) error {
	for _, t := range c.tools {
		if err := c.check(ctx, t); err != nil {
			c.logger.Warn("dependency check failed", zap.String("tool", t.Name), zap.String("command", t.Command), zap.Error(err))
			return &DependencyError{Tool: t.Name, Command: t.Command, Remedy: t.Remedy, Err: err}
		}
		c.logger.Debug("dependency available", zap.String("tool", t.Name), zap.String("command", t.Command))
	}
	return nil
}

func (c *Checker) check(ctx context.Context, t Tool) error {
	cmd, err := process.Parse(t.Command)
	if err != nil {
		return err
	}
	if t.Constraint == "" {
		cmd.Stdout = c.out
		return c.runner.Run(ctx, cmd)
	}
	var captured bytes.Buffer
	cmd.Stdout = io.MultiWriter(c.out, &captured)
	if err := c.runner.Run(ctx, cmd); err != nil {
		return err
	}
	return satisfies(captured.String(), t.Constraint)
}

var versionPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?([-+][0-9A-Za-z.-]+)?`)

// satisfies reports whether the first version in output meets constraint.
func satisfies(output, constraint string) error {
	cons, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}
	raw := versionPattern.FindString(output)
	if raw == "" {
		return fmt.Errorf("no version found in output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", raw, err)
	}
	if !cons.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s", v, constraint)
	}
	return nil
}
