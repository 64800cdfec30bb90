// Where: cli/internal/infra/config/config.go
// What: Config file loading and environment overrides.
// Why: Let operators point the tool at another management endpoint or API version.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/poruru-code/wazmonkey/internal/infra/envutil"
	"github.com/poruru-code/wazmonkey/internal/infra/interaction"
	"github.com/poruru-code/wazmonkey/internal/infra/management"
	"github.com/poruru-code/wazmonkey/internal/meta"
	"gopkg.in/yaml.v3"
)

// Config represents ~/.wazmonkey/config.yaml. The file is read-only input.
type Config struct {
	ManagementURL string                `yaml:"management_url,omitempty"`
	APIVersion    string                `yaml:"api_version,omitempty"`
	Emoji         interaction.EmojiMode `yaml:"emoji,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ManagementURL: management.DefaultEndpoint,
		APIVersion:    management.DefaultAPIVersion,
		Emoji:         interaction.EmojiAuto,
	}
}

// Path returns the config file path: the CONFIG_PATH override when set,
// otherwise ~/.wazmonkey/config.yaml.
func Path() (string, error) {
	if override, ok := envutil.LookupHostEnv(meta.EnvSuffixConfigPath); ok {
		path := override
		if !filepath.IsAbs(path) {
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
		}
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, meta.HomeDir, meta.ConfigFileName), nil
}

// Resolve loads the effective configuration. An explicit path must exist;
// the default path is optional. Environment overrides apply last.
func Resolve(explicitPath string) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(explicitPath)
	required := path != ""
	if !required {
		defaultPath, err := Path()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	fileCfg, err := Load(path)
	switch {
	case err == nil:
		cfg = cfg.merge(fileCfg)
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return Config{}, err
	}

	return cfg.applyEnv(), nil
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WithMessage(err, "read config")
	}
	if len(strings.TrimSpace(string(payload))) == 0 {
		return Config{}, nil
	}
	if err := validate(payload); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

func (c Config) merge(other Config) Config {
	if v := strings.TrimSpace(other.ManagementURL); v != "" {
		c.ManagementURL = v
	}
	if v := strings.TrimSpace(other.APIVersion); v != "" {
		c.APIVersion = v
	}
	if other.Emoji != "" {
		c.Emoji = normalizeEmoji(other.Emoji)
	}
	return c
}

// normalizeEmoji maps YAML 1.1 booleans (on/off parse as true/false there)
// back onto the mode names.
func normalizeEmoji(mode interaction.EmojiMode) interaction.EmojiMode {
	switch strings.ToLower(string(mode)) {
	case "true", "yes", "on":
		return interaction.EmojiOn
	case "false", "no", "off":
		return interaction.EmojiOff
	default:
		return interaction.EmojiAuto
	}
}

func (c Config) applyEnv() Config {
	if v, ok := envutil.LookupHostEnv(meta.EnvSuffixManagementURL); ok {
		c.ManagementURL = v
	}
	if v, ok := envutil.LookupHostEnv(meta.EnvSuffixAPIVersion); ok {
		c.APIVersion = v
	}
	return c
}
