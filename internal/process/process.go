// Package process runs external CLI tools for the generator.
package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Command describes one external process invocation. Nil Stdout/Stderr mean
// the runner's defaults.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Parse splits a whitespace-separated command line into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command line")
	}
	return Command{Name: fields[0], Args: fields[1:]}, nil
}

// String returns the command line as typed by a user.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Runner starts a process and waits for it to exit. A nonzero exit status is
// reported as an error.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// Exec runs commands with os/exec. Output not redirected by the Command goes
// to Stdout and Stderr, which default to the parent's streams.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExec returns a runner inheriting the parent's stdio.
func NewExec() *Exec {
	return &Exec{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts cmd and waits for it.
func (e *Exec) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = e.Stdin
	c.Stdout = pick(cmd.Stdout, e.Stdout)
	c.Stderr = pick(cmd.Stderr, e.Stderr)
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	return nil
}

func pick(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
