// Where: cli/internal/infra/management/client.go
// What: Client for the service management REST endpoint.
// Why: List role instances in a deployment slot and reboot one of them.
package management

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/poruru-code/wazmonkey/internal/domain/fault"
	"github.com/poruru-code/wazmonkey/internal/domain/target"
)

const (
	// DefaultEndpoint is the public management host.
	DefaultEndpoint = "https://management.core.windows.net"
	// DefaultAPIVersion is sent in the x-ms-version header.
	DefaultAPIVersion = "2012-03-01"

	headerVersion = "x-ms-version"
)

// Options configures a Client.
type Options struct {
	Endpoint   string
	APIVersion string
	HTTPClient *http.Client
	Logger     log.Logger
}

// Client talks to the management endpoint. It holds no per-call state.
type Client struct {
	endpoint   string
	apiVersion string
	http       *http.Client
	logger     log.Logger
}

// NewClient builds a Client, filling defaults for empty options.
func NewClient(opts Options) *Client {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Client{
		endpoint:   endpoint,
		apiVersion: apiVersion,
		http:       httpClient,
		logger:     log.With(logger, "component", "management"),
	}
}

// NewHTTPClient returns an HTTP client presenting cert during the TLS handshake.
func NewHTTPClient(cert tls.Certificate) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}
	return &http.Client{Transport: transport}
}

// DeploymentURL is the resource URL of the target's deployment slot.
func (c *Client) DeploymentURL(t target.Target) string {
	return c.endpoint +
		"/" + url.PathEscape(t.SubscriptionID) +
		"/services/hostedservices/" + url.PathEscape(t.ServiceName) +
		"/deploymentslots/" + url.PathEscape(t.Slot.String())
}

// RebootURL is the reboot operation URL for one role instance.
func (c *Client) RebootURL(t target.Target, instance string) string {
	return c.DeploymentURL(t) + "/roleinstances/" + url.PathEscape(instance) + "?comp=reboot"
}

// ListInstances returns the role instance names of the deployment in
// document order. A 404 yields a fault.NotFound error.
func (c *Client) ListInstances(ctx context.Context, t target.Target) ([]string, error) {
	endpoint := c.DeploymentURL(t)
	req, err := c.newRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, err
	}

	level.Debug(c.logger).Log("msg", "listing instances", "url", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fault.WrapNetwork(err, "get deployment")
	}
	defer resp.Body.Close()
	level.Debug(c.logger).Log("msg", "deployment response", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		return nil, fault.NewNotFound(t.Slot.Title(), t.ServiceName)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, "get deployment")
	}

	names, err := ParseInstanceNames(resp.Body)
	if err != nil {
		return nil, fault.WrapNetwork(err, "read deployment")
	}
	level.Debug(c.logger).Log("msg", "instances listed", "count", len(names))
	return names, nil
}

// RebootInstance asks for one instance to be rebooted and returns the HTTP
// status code. Only transport failures are errors; callers judge the status.
func (c *Client) RebootInstance(ctx context.Context, t target.Target, instance string) (int, error) {
	endpoint := c.RebootURL(t, instance)
	req, err := c.newRequest(ctx, http.MethodPost, endpoint)
	if err != nil {
		return 0, err
	}

	level.Debug(c.logger).Log("msg", "rebooting instance", "url", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fault.WrapNetwork(err, "reboot role instance")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	level.Debug(c.logger).Log("msg", "reboot response", "status", resp.StatusCode)
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, http.NoBody)
	if err != nil {
		return nil, fault.WrapNetwork(err, "build request")
	}
	req.Header.Set(headerVersion, c.apiVersion)
	return req, nil
}

// maxErrorBody bounds how much of an error response ends up in a message.
const maxErrorBody = 512

func statusError(resp *http.Response, op string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fault.WrapNetwork(errors.Errorf("unexpected status %s", resp.Status), op)
	}
	return fault.WrapNetwork(errors.Errorf("unexpected status %s: %s", resp.Status, detail), op)
}
