// Where: cli/internal/command/reboot.go
// What: Reboot command adapter.
// Why: Wire config, credentials and the management client into the workflow.
package command

import (
	"context"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/poruru-code/wazmonkey/internal/domain/fault"
	"github.com/poruru-code/wazmonkey/internal/domain/target"
	"github.com/poruru-code/wazmonkey/internal/infra/config"
	"github.com/poruru-code/wazmonkey/internal/infra/credentials"
	"github.com/poruru-code/wazmonkey/internal/infra/envutil"
	"github.com/poruru-code/wazmonkey/internal/infra/interaction"
	"github.com/poruru-code/wazmonkey/internal/infra/logging"
	"github.com/poruru-code/wazmonkey/internal/infra/management"
	"github.com/poruru-code/wazmonkey/internal/meta"
	"github.com/poruru-code/wazmonkey/internal/usecase/reboot"
)

func runReboot(opts rebootOptions, deps Dependencies, out, errOut io.Writer) int {
	rd := withRebootDefaults(deps.Reboot)

	cfg, err := rd.LoadConfig(opts.ConfigPath)
	if err != nil {
		return exitWithError(errOut, errors.WithMessage(err, "load config"))
	}

	emojiMode := opts.Emoji
	if emojiMode == "" {
		emojiMode = cfg.Emoji
	}
	console := consoleUI(out, interaction.ResolveEmoji(emojiMode, out))
	logger := logging.New(errOut, opts.Verbose)

	src := opts.Credentials
	src.PfxPassword = envutil.GetHostEnv(meta.EnvSuffixPfxPassword)
	creds, err := rd.LoadCredentials(logger, src)
	if err != nil {
		return exitWithError(errOut, err)
	}

	workflow := reboot.NewRebootWorkflow(rd.NewInstanceAPI(cfg, creds, logger), deps.Source, console, logger)
	_, err = workflow.Run(context.Background(), reboot.Request{
		Target: target.Target{
			SubscriptionID: creds.SubscriptionID,
			ServiceName:    opts.ServiceName,
			Slot:           opts.Slot,
		},
	})
	if err != nil {
		level.Debug(logger).Log("msg", "reboot failed", "kind", fault.KindOf(err), "err", err)
		return reportFailure(out, errOut, err)
	}
	return 0
}

// reportFailure prints err the way its kind calls for and returns the exit code.
func reportFailure(out, errOut io.Writer, err error) int {
	var notFound *fault.DeploymentNotFound
	if fault.KindOf(err) == fault.NotFound && errors.As(err, &notFound) {
		consoleUI(out, false).Info("Error: " + notFound.Error())
		return 1
	}
	return exitWithError(errOut, err)
}

func withRebootDefaults(rd RebootDeps) RebootDeps {
	if rd.LoadConfig == nil {
		rd.LoadConfig = config.Resolve
	}
	if rd.LoadCredentials == nil {
		rd.LoadCredentials = loadCredentials
	}
	if rd.NewInstanceAPI == nil {
		rd.NewInstanceAPI = NewManagementAPI
	}
	return rd
}

func loadCredentials(logger log.Logger, src credentials.Source) (credentials.Credentials, error) {
	return credentials.NewLoader(logger).Load(src)
}

// NewManagementAPI builds a management client authenticating with creds.
func NewManagementAPI(cfg config.Config, creds credentials.Credentials, logger log.Logger) reboot.InstanceAPI {
	return management.NewClient(management.Options{
		Endpoint:   cfg.ManagementURL,
		APIVersion: cfg.APIVersion,
		HTTPClient: management.NewHTTPClient(creds.Certificate.TLS),
		Logger:     logger,
	})
}
