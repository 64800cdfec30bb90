package command

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/poruru-code/wazmonkey/internal/infra/config"
	"github.com/poruru-code/wazmonkey/internal/infra/credentials"
	"github.com/poruru-code/wazmonkey/internal/infra/management"
	"github.com/poruru-code/wazmonkey/internal/testutil"
	"github.com/poruru-code/wazmonkey/internal/usecase/reboot"
	"github.com/stretchr/testify/require"
)

func setWorkingDir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

type fixedSource int

func (f fixedSource) IntN(int) int { return int(f) }

// harness runs the CLI against a fake management endpoint.
type harness struct {
	out     bytes.Buffer
	errOut  bytes.Buffer
	server  *httptest.Server
	profile string

	listStatus   int
	listBody     string
	rebootStatus int
	rebootPaths  []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	setWorkingDir(t, t.TempDir())

	h := &harness{
		listStatus:   http.StatusOK,
		listBody:     deploymentXML("WebRole_IN_0", "WebRole_IN_1", "WebRole_IN_2"),
		rebootStatus: http.StatusAccepted,
	}
	h.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.rebootPaths = append(h.rebootPaths, r.URL.Path)
			w.WriteHeader(h.rebootStatus)
			return
		}
		w.WriteHeader(h.listStatus)
		_, _ = w.Write([]byte(h.listBody))
	}))
	t.Cleanup(h.server.Close)

	cert := testutil.SelfSignedPEM(t, "harness")
	h.profile = filepath.Join(t.TempDir(), "test.publishSettings")
	require.NoError(t, os.WriteFile(h.profile, []byte(testutil.PublishSettings(cert, "sub-1")), 0o600))
	return h
}

func (h *harness) deps(pick int) Dependencies {
	return Dependencies{
		Out:    &h.out,
		ErrOut: &h.errOut,
		Source: fixedSource(pick),
		Reboot: RebootDeps{
			LoadConfig: func(string) (config.Config, error) {
				return config.Default(), nil
			},
			NewInstanceAPI: func(cfg config.Config, _ credentials.Credentials, logger log.Logger) reboot.InstanceAPI {
				return management.NewClient(management.Options{
					Endpoint:   h.server.URL,
					APIVersion: cfg.APIVersion,
					HTTPClient: h.server.Client(),
					Logger:     logger,
				})
			},
		},
	}
}

func deploymentXML(names ...string) string {
	body := `<Deployment xmlns="http://schemas.microsoft.com/windowsazure"><RoleInstanceList>`
	for _, name := range names {
		body += "<RoleInstance><InstanceName>" + name + "</InstanceName></RoleInstance>"
	}
	return body + "</RoleInstanceList></Deployment>"
}
