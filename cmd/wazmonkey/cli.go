// Where: cli/cmd/wazmonkey/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"os"

	"github.com/poruru-code/wazmonkey/internal/command"
	"github.com/poruru-code/wazmonkey/internal/infra/config"
	"github.com/poruru-code/wazmonkey/internal/selection"
)

var (
	newSource  = selection.NewSource
	loadConfig = config.Resolve
	stdout     = os.Stdout
	stderr     = os.Stderr
)

// buildDependencies constructs the runtime dependencies required by the CLI.
// Credentials and the management client keep their command defaults.
func buildDependencies() command.Dependencies {
	return command.Dependencies{
		Out:    stdout,
		ErrOut: stderr,
		Source: newSource(),
		Reboot: command.RebootDeps{
			LoadConfig:     loadConfig,
			NewInstanceAPI: command.NewManagementAPI,
		},
	}
}
