// Where: cli/internal/command/app.go
// What: CLI entrypoint logic.
// Why: Provide a testable argument parser and dispatcher.
package command

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/joho/godotenv"
	"github.com/poruru-code/wazmonkey/internal/infra/config"
	"github.com/poruru-code/wazmonkey/internal/infra/credentials"
	"github.com/poruru-code/wazmonkey/internal/meta"
	"github.com/poruru-code/wazmonkey/internal/selection"
	"github.com/poruru-code/wazmonkey/internal/usecase/reboot"
	"github.com/poruru-code/wazmonkey/internal/version"
)

// Dependencies holds all injected dependencies required for CLI command execution.
// Nil fields fall back to the production implementations.
type Dependencies struct {
	Out    io.Writer
	ErrOut io.Writer
	Source selection.Source
	Reboot RebootDeps
}

// RebootDeps are the seams around the reboot workflow.
type RebootDeps struct {
	LoadConfig      func(path string) (config.Config, error)
	LoadCredentials func(log.Logger, credentials.Source) (credentials.Credentials, error)
	NewInstanceAPI  func(config.Config, credentials.Credentials, log.Logger) reboot.InstanceAPI
}

// CLI defines the command-line interface structure parsed by Kong.
type CLI struct {
	PublishSettings string           `short:"p" name:"publishSettings" placeholder:"PATH" help:".publishSettings file - specify either this or a .pfx file"`
	Pfx             string           `name:"pfx" placeholder:"PATH" help:".pfx certificate file - specify either this or a .publishSettings file"`
	SubscriptionID  string           `name:"subscriptionId" placeholder:"ID" help:"subscriptionId to use, defaults to first subscription found in the .publishSettings file"`
	ServiceName     string           `short:"n" name:"serviceName" required:"" placeholder:"NAME" help:"Name of the cloud service"`
	Slot            string           `short:"s" name:"slot" required:"" placeholder:"SLOT" help:"The slot (\"production\" or \"staging\")"`
	Config          string           `name:"config" placeholder:"PATH" help:"Path to config.yaml (default: ~/.wazmonkey/config.yaml)"`
	EnvFile         string           `name:"env-file" placeholder:"PATH" help:"Path to .env file"`
	Verbose         bool             `short:"v" help:"Log requests to stderr"`
	Emoji           bool             `name:"emoji" help:"Enable emoji output (default: auto)"`
	NoEmoji         bool             `name:"no-emoji" help:"Disable emoji output"`
	Version         kong.VersionFlag `name:"version" help:"Show version information"`
}

// Run is the main entry point for CLI command execution.
// It parses and validates the arguments, then runs the reboot workflow.
// Returns 0 on success, 1 on error.
func Run(args []string, deps Dependencies) int {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := deps.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	var (
		cli      CLI
		exited   bool
		exitCode int
	)
	parser, err := kong.New(&cli,
		kong.Name(cliName()),
		kong.Description(description()),
		kong.Writers(out, errOut),
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
		kong.Vars{"version": version.GetVersion()},
	)
	if err != nil {
		return exitWithError(errOut, err)
	}

	_, err = parser.Parse(args)
	if exited {
		// --help and --version print and request an exit before validation.
		return exitCode
	}
	if err != nil {
		return exitWithUsage(out, parser, err.Error())
	}

	opts, err := validateOptions(cli)
	if err != nil {
		return exitWithUsage(out, parser, err.Error())
	}

	loadEnvFile(cli.EnvFile, out)

	return runReboot(opts, deps, out, errOut)
}

func description() string {
	return fmt.Sprintf("%s\n\nExample: %s -p foo.publishSettings -n myservice -s production", meta.Description, cliName())
}

// loadEnvFile loads the given .env file, or ./.env when present.
func loadEnvFile(path string, out io.Writer) {
	ui := consoleUI(out, false)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load env file %s: %v", path, err))
		}
		return
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			ui.Warn(fmt.Sprintf("Warning: failed to load .env: %v", err))
		}
	}
}
