package process

import (
	"context"
	"io"
	"sync"
)

// Recorder is an in-memory Runner. It records every command and answers from
// a table keyed by the command line. Unknown commands succeed with no output.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	replies  map[string]Reply
}

// Reply is the canned outcome of a recorded command.
type Reply struct {
	Output string
	Err    error
	// Effect runs before the reply is returned, e.g. to create files the real
	// tool would have written.
	Effect func(Command) error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{replies: map[string]Reply{}}
}

// On registers the reply for a command line.
func (r *Recorder) On(line string, reply Reply) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies[line] = reply
	return r
}

// Run implements Runner.
func (r *Recorder) Run(_ context.Context, cmd Command) error {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	reply := r.replies[cmd.String()]
	r.mu.Unlock()

	if reply.Effect != nil {
		if err := reply.Effect(cmd); err != nil {
			return err
		}
	}
	if reply.Output != "" && cmd.Stdout != nil {
		if _, err := io.WriteString(cmd.Stdout, reply.Output); err != nil {
			return err
		}
	}
	return reply.Err
}

// Commands returns the command lines run so far, in order.
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.String()
	}
	return out
}

// Calls returns a copy of the recorded commands.
func (r *Recorder) Calls() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.commands...)
}
