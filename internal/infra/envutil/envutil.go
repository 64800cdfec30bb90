// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strings"

	"github.com/poruru-code/wazmonkey/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining ENV_PREFIX with the given suffix.
// Example: HostEnvKey("API_VERSION") returns "WAZMONKEY_API_VERSION" by default.
func HostEnvKey(suffix string) string {
	prefix := strings.TrimSpace(os.Getenv("ENV_PREFIX"))
	if prefix == "" {
		prefix = meta.EnvPrefix
	}
	return prefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable, trimmed.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// LookupHostEnv reports whether the variable is set to a non-blank value.
func LookupHostEnv(suffix string) (string, bool) {
	value := GetHostEnv(suffix)
	return value, value != ""
}
