// Where: cli/internal/command/app_test.go
// What: Tests for CLI run behavior.
// Why: Exit codes and messages are the tool's whole interface.
package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/pkg/errors"
	"github.com/poruru-code/wazmonkey/internal/domain/fault"
	"github.com/poruru-code/wazmonkey/internal/infra/config"
	"github.com/poruru-code/wazmonkey/internal/infra/credentials"
	"github.com/poruru-code/wazmonkey/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsageErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "no credential source",
			args: []string{"-n", "svc", "-s", "production"},
			want: "Required: one of --publishSettings or --pfx",
		},
		{
			name: "both credential sources",
			args: []string{"-p", "a.publishSettings", "--pfx", "b.pfx", "-n", "svc", "-s", "production"},
			want: "Incompatible arguments: --publishSettings and --pfx",
		},
		{
			name: "pfx without subscription",
			args: []string{"--pfx", "b.pfx", "-n", "svc", "-s", "staging"},
			want: "--subscriptionId must be provided if no .publishSettings file is being used",
		},
		{
			name: "unknown slot",
			args: []string{"-p", "a.publishSettings", "-n", "svc", "-s", "Production"},
			want: `Slot must be one of "production" or "staging"`,
		},
		{
			name: "missing service name",
			args: []string{"-p", "a.publishSettings", "-s", "production"},
			want: "missing flags",
		},
		{
			name: "unknown flag",
			args: []string{"-p", "a.publishSettings", "-n", "svc", "-s", "production", "--bogus"},
			want: "unknown flag --bogus",
		},
		{
			name: "conflicting emoji flags",
			args: []string{"-p", "a.publishSettings", "-n", "svc", "-s", "production", "--emoji", "--no-emoji"},
			want: "Incompatible arguments: --emoji and --no-emoji",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			code := Run(tc.args, h.deps(0))

			assert.Equal(t, 1, code)
			assert.Contains(t, h.out.String(), tc.want)
			assert.Contains(t, h.out.String(), "Usage: wazmonkey")
			assert.Empty(t, h.rebootPaths)
		})
	}
}

func TestRunHelpExitsZero(t *testing.T) {
	h := newHarness(t)
	code := Run([]string{"--help"}, h.deps(0))

	assert.Equal(t, 0, code)
	assert.Contains(t, h.out.String(), "Usage: wazmonkey")
	assert.Contains(t, h.out.String(), "--publishSettings=PATH")
	assert.Contains(t, h.out.String(), "--serviceName=NAME")
}

func TestRunVersionExitsZero(t *testing.T) {
	h := newHarness(t)
	code := Run([]string{"--version"}, h.deps(0))

	assert.Equal(t, 0, code)
	assert.NotEmpty(t, h.out.String())
}

func TestRunRebootsSelectedInstance(t *testing.T) {
	h := newHarness(t)
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production"}, h.deps(1))

	assert.Equal(t, 0, code)
	assert.Equal(t, "Rebooting WebRole_IN_1.\n", h.out.String())
	assert.Equal(t,
		[]string{"/sub-1/services/hostedservices/myservice/deploymentslots/production/roleinstances/WebRole_IN_1"},
		h.rebootPaths)
	assert.Empty(t, h.errOut.String())
}

func TestRunExplicitSubscriptionOverridesProfile(t *testing.T) {
	h := newHarness(t)
	code := Run([]string{"-p", h.profile, "--subscriptionId", "sub-override", "-n", "myservice", "-s", "staging"}, h.deps(0))

	assert.Equal(t, 0, code)
	require.Len(t, h.rebootPaths, 1)
	assert.Equal(t, "/sub-override/services/hostedservices/myservice/deploymentslots/staging/roleinstances/WebRole_IN_0", h.rebootPaths[0])
}

func TestRunUnexpectedRebootStatusStillSucceeds(t *testing.T) {
	h := newHarness(t)
	h.rebootStatus = 500
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production", "--no-emoji"}, h.deps(0))

	assert.Equal(t, 0, code)
	assert.Contains(t, h.out.String(), "Rebooting WebRole_IN_0.\n")
	assert.Contains(t, h.out.String(), "Got unexpected status code: 500")
}

func TestRunDeploymentNotFound(t *testing.T) {
	h := newHarness(t)
	h.listStatus = 404
	h.listBody = ""
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "staging"}, h.deps(0))

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Staging deployment for service myservice not found, or the credentials were invalid.\n", h.out.String())
	assert.Empty(t, h.rebootPaths)
}

func TestRunNoInstances(t *testing.T) {
	h := newHarness(t)
	h.listBody = deploymentXML()
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production"}, h.deps(0))

	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "no role instances found")
	assert.Empty(t, h.rebootPaths)
}

func TestRunListServerErrorIsFatal(t *testing.T) {
	h := newHarness(t)
	h.listStatus = 503
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production"}, h.deps(0))

	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "503")
	assert.Empty(t, h.rebootPaths)
}

func TestRunCredentialErrorIsFatal(t *testing.T) {
	h := newHarness(t)
	missing := filepath.Join(t.TempDir(), "missing.publishSettings")
	code := Run([]string{"-p", missing, "-n", "myservice", "-s", "production"}, h.deps(0))

	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "read publish settings")
	assert.Empty(t, h.out.String())
}

func TestRunConfigErrorIsFatal(t *testing.T) {
	h := newHarness(t)
	deps := h.deps(0)
	deps.Reboot.LoadConfig = func(string) (config.Config, error) {
		return config.Config{}, errors.New("invalid config")
	}
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production"}, deps)

	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "load config: invalid config")
}

func TestRunPassesPfxPasswordFromEnvFile(t *testing.T) {
	h := newHarness(t)
	t.Setenv("ENV_PREFIX", "")
	t.Setenv("WAZMONKEY_PFX_PASSWORD", "")
	require.NoError(t, os.Unsetenv("WAZMONKEY_PFX_PASSWORD"))
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("WAZMONKEY_PFX_PASSWORD=s3cret\n"), 0o600))

	var got credentials.Source
	deps := h.deps(0)
	deps.Reboot.LoadCredentials = func(_ log.Logger, src credentials.Source) (credentials.Credentials, error) {
		got = src
		return credentials.Credentials{}, fault.Credentialf("stop here")
	}
	code := Run([]string{"--pfx", "client.pfx", "--subscriptionId", "sub-1", "-n", "svc", "-s", "production", "--env-file", envFile}, deps)

	assert.Equal(t, 1, code)
	assert.Equal(t, credentials.Source{PfxPath: "client.pfx", SubscriptionID: "sub-1", PfxPassword: "s3cret"}, got)
}

func TestRunPfxUnlockedByEnvFilePassword(t *testing.T) {
	h := newHarness(t)
	t.Setenv("ENV_PREFIX", "")
	t.Setenv("WAZMONKEY_PFX_PASSWORD", "")
	require.NoError(t, os.Unsetenv("WAZMONKEY_PFX_PASSWORD"))
	dir := t.TempDir()
	pfx := filepath.Join(dir, "client.pfx")
	require.NoError(t, os.WriteFile(pfx, testutil.SelfSignedPFX(t, "cli-user", "s3cret"), 0o600))
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("WAZMONKEY_PFX_PASSWORD=s3cret\n"), 0o600))

	code := Run([]string{"--pfx", pfx, "--subscriptionId", "sub-7", "-n", "myservice", "-s", "production", "--env-file", envFile}, h.deps(0))

	assert.Equal(t, 0, code)
	assert.Equal(t, "Rebooting WebRole_IN_0.\n", h.out.String())
	assert.Equal(t,
		[]string{"/sub-7/services/hostedservices/myservice/deploymentslots/production/roleinstances/WebRole_IN_0"},
		h.rebootPaths)
}

func TestRunPassesConfigPath(t *testing.T) {
	h := newHarness(t)
	var gotPath string
	deps := h.deps(0)
	deps.Reboot.LoadConfig = func(path string) (config.Config, error) {
		gotPath = path
		return config.Default(), nil
	}
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production", "--config", "custom.yaml"}, deps)

	assert.Equal(t, 0, code)
	assert.Equal(t, "custom.yaml", gotPath)
}

func TestRunVerboseLogsToErrOut(t *testing.T) {
	h := newHarness(t)
	code := Run([]string{"-p", h.profile, "-n", "myservice", "-s", "production", "-v"}, h.deps(2))

	assert.Equal(t, 0, code)
	assert.Equal(t, "Rebooting WebRole_IN_2.\n", h.out.String())
	assert.Contains(t, h.errOut.String(), "level=debug")
	assert.Contains(t, h.errOut.String(), "component=management")
}
