// Where: cli/cmd/wazmonkey/main.go
// What: CLI entrypoint.
// Why: Reboot a random role instance with configured dependencies.
package main

import (
	"os"

	"github.com/poruru-code/wazmonkey/internal/command"
)

func main() {
	os.Exit(command.Run(os.Args[1:], buildDependencies()))
}
