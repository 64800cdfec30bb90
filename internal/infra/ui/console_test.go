// Where: cli/internal/infra/ui/console_test.go
// What: Tests for console output formatting.
// Why: Plain output must stay byte-stable for scripts.
package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsolePlainOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithEmoji(&buf, false)

	c.Info("Rebooting WebRole_IN_0.")
	c.Warn("Got unexpected status code: 500 Internal Server Error")
	c.Error("boom")

	assert.Equal(t, "Rebooting WebRole_IN_0.\nGot unexpected status code: 500 Internal Server Error\nboom\n", buf.String())
}

func TestConsoleEmojiOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewWithEmoji(&buf, true)

	c.Warn("careful")
	c.Error("boom")
	c.Info("plain")

	assert.Equal(t, "⚠️ careful\n✗ boom\nplain\n", buf.String())
}
