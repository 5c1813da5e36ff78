package terminal

import (
	"fmt"
	"strings"

	"github.com/reeflective/readline"
)

// Ask reads one line from the user with label as the prompt. It returns
// fallback when the user enters nothing.
func Ask(label, fallback string) (string, error) {
	rl := readline.NewShell()
	rl.Prompt.Primary(func() string {
		if fallback != "" {
			return fmt.Sprintf("%s%s%s %s(%s)%s: ", Bold, label, Reset, Dim, fallback, Reset)
		}
		return fmt.Sprintf("%s%s%s: ", Bold, label, Reset)
	})

	line, err := rl.Readline()
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", label, err)
	}
	if line = strings.TrimSpace(line); line == "" {
		return fallback, nil
	}
	return line, nil
}
