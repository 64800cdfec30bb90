// Where: cli/internal/command/validate.go
// What: Cross-flag validation for the reboot command.
// Why: Kong checks presence; the credential and slot rules live here.
package command

import (
	"strings"

	"github.com/poruru-code/wazmonkey/internal/domain/fault"
	"github.com/poruru-code/wazmonkey/internal/domain/target"
	"github.com/poruru-code/wazmonkey/internal/infra/credentials"
	"github.com/poruru-code/wazmonkey/internal/infra/interaction"
)

type rebootOptions struct {
	Credentials credentials.Source
	ServiceName string
	Slot        target.Slot
	ConfigPath  string
	Verbose     bool
	// Emoji is empty when neither --emoji nor --no-emoji was given.
	Emoji interaction.EmojiMode
}

func validateOptions(cli CLI) (rebootOptions, error) {
	publishSettings := cli.PublishSettings
	pfx := cli.Pfx
	subscriptionID := strings.TrimSpace(cli.SubscriptionID)

	if publishSettings == "" && pfx == "" {
		return rebootOptions{}, fault.Usagef("Required: one of --publishSettings or --pfx")
	}
	if publishSettings != "" && pfx != "" {
		return rebootOptions{}, fault.Usagef("Incompatible arguments: --publishSettings and --pfx")
	}
	if publishSettings == "" && subscriptionID == "" {
		return rebootOptions{}, fault.Usagef("--subscriptionId must be provided if no .publishSettings file is being used")
	}
	slot, err := target.ParseSlot(cli.Slot)
	if err != nil {
		return rebootOptions{}, fault.Usagef(`Slot must be one of "production" or "staging"`)
	}
	if cli.Emoji && cli.NoEmoji {
		return rebootOptions{}, fault.Usagef("Incompatible arguments: --emoji and --no-emoji")
	}

	opts := rebootOptions{
		Credentials: credentials.Source{
			PublishSettingsPath: publishSettings,
			PfxPath:             pfx,
			SubscriptionID:      subscriptionID,
		},
		ServiceName: cli.ServiceName,
		Slot:        slot,
		ConfigPath:  cli.Config,
		Verbose:     cli.Verbose,
	}
	switch {
	case cli.Emoji:
		opts.Emoji = interaction.EmojiOn
	case cli.NoEmoji:
		opts.Emoji = interaction.EmojiOff
	}
	return opts, nil
}
