// Where: cli/internal/infra/ui/console.go
// What: Console output helpers for consistent CLI UX.
// Why: Standardize prefixes and wording across the reboot workflow.
package ui

import (
	"fmt"
	"io"
	"strings"
)

// UserInterface exposes the output helpers used by commands and usecases.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Console provides helper methods for formatted output.
type Console struct {
	Out          io.Writer
	EmojiEnabled bool
}

var _ UserInterface = (*Console)(nil)

// NewWithEmoji creates a new Console with explicit emoji settings.
func NewWithEmoji(out io.Writer, enabled bool) *Console {
	return &Console{Out: out, EmojiEnabled: enabled}
}

// Info prints a message as is.
func (c *Console) Info(msg string) {
	fmt.Fprintf(c.Out, "%s\n", msg)
}

// Warn prints a warning message with an emoji.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.prefix("⚠️"), msg)
}

// Error prints a failure message.
// Example: ✗ read publish settings: open x: no such file or directory.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.Out, "%s%s\n", c.prefix("✗"), msg)
}

func (c *Console) prefix(emoji string) string {
	if !c.EmojiEnabled || strings.TrimSpace(emoji) == "" {
		return ""
	}
	return emoji + " "
}
