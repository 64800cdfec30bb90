// Where: cli/internal/command/error_helpers.go
// What: Shared CLI error output.
// Why: Keep failure output and exit codes consistent.
package command

import (
	"io"

	"github.com/alecthomas/kong"
)

// exitWithError prints an error message to the output writer and returns
// exit code 1 for CLI error handling.
func exitWithError(out io.Writer, err error) int {
	consoleUI(out, false).Error("✗ " + err.Error())
	return 1
}

// exitWithUsage prints msg followed by the usage text and returns exit code 1.
func exitWithUsage(out io.Writer, parser *kong.Kong, msg string) int {
	consoleUI(out, false).Info(msg)
	if ctx, err := kong.Trace(parser, nil); err == nil {
		_ = ctx.PrintUsage(false)
	}
	return 1
}
