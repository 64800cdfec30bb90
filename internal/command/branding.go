// Where: cli/internal/command/branding.go
// What: Command name shown in usage output.
// Why: Wrappers and aliases invoke the binary under another name.
package command

import (
	"os"
	"strings"

	"github.com/poruru-code/wazmonkey/internal/meta"
)

// cliName returns $CLI_CMD when set, otherwise the binary's slug.
func cliName() string {
	if name := strings.TrimSpace(os.Getenv(meta.EnvCLIName)); name != "" {
		return name
	}
	return meta.Slug
}
