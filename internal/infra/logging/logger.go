// Where: cli/internal/infra/logging/logger.go
// What: Structured diagnostic logger construction.
// Why: Keep request tracing on stderr, apart from user-facing output.
package logging

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logfmt logger writing to w. Only warnings and errors pass
// unless verbose is set.
func New(w io.Writer, verbose bool) log.Logger {
	if w == nil {
		return log.NewNopLogger()
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	allow := level.AllowWarn()
	if verbose {
		allow = level.AllowDebug()
	}
	return level.NewFilter(logger, allow)
}
