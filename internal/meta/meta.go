// Where: cli/internal/meta/meta.go
// What: CLI-local metadata constants.
// Why: Keep naming and environment prefixes in one place.
package meta

const (
	// Project Identity
	Slug        = "wazmonkey"
	EnvPrefix   = "WAZMONKEY"
	Description = "Reboot a random role instance in a cloud service deployment slot."

	// Directory Layout
	HomeDir        = ".wazmonkey"
	ConfigFileName = "config.yaml"

	// EnvCLIName renames the command in help output. Not prefixed.
	EnvCLIName = "CLI_CMD"

	// Environment suffixes (combined with EnvPrefix)
	EnvSuffixConfigPath    = "CONFIG_PATH"
	EnvSuffixManagementURL = "MANAGEMENT_URL"
	EnvSuffixAPIVersion    = "API_VERSION"
	EnvSuffixPfxPassword   = "PFX_PASSWORD"
)
