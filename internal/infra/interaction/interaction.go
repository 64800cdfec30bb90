// Where: cli/internal/infra/interaction/interaction.go
// What: TTY detection for output decisions.
// Why: Emoji output defaults on only for interactive terminals.
package interaction

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminalWriter reports whether w is a terminal-backed *os.File.
func IsTerminalWriter(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return IsTerminal(file)
}

// EmojiMode selects when emoji prefixes are printed.
type EmojiMode string

const (
	EmojiAuto EmojiMode = "auto"
	EmojiOn   EmojiMode = "on"
	EmojiOff  EmojiMode = "off"
)

// ResolveEmoji decides whether emoji should be used when writing to out.
func ResolveEmoji(mode EmojiMode, out io.Writer) bool {
	switch mode {
	case EmojiOn:
		return true
	case EmojiOff:
		return false
	default:
		return IsTerminalWriter(out)
	}
}
