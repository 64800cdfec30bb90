// Where: cli/internal/infra/credentials/credentials.go
// What: Credential resolution from a publish profile or a certificate file.
// Why: Produce the subscription id and client certificate for management calls.
package credentials

import (
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/poruru-code/wazmonkey/internal/domain/fault"
)

// Source names where credentials come from. Exactly one of
// PublishSettingsPath and PfxPath must be set.
type Source struct {
	PublishSettingsPath string
	PfxPath             string
	// SubscriptionID overrides the profile's first subscription. Required
	// when PfxPath is used.
	SubscriptionID string
	// PfxPassword unlocks PKCS#12 files. Empty for unprotected files.
	PfxPassword string
}

// Credentials are loaded once and never modified.
type Credentials struct {
	SubscriptionID string
	Certificate    Certificate
}

// Loader resolves a Source into Credentials.
type Loader struct {
	logger   log.Logger
	readFile func(string) ([]byte, error)
}

// NewLoader creates a Loader that reads from the local filesystem.
func NewLoader(logger log.Logger) *Loader {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loader{
		logger:   log.With(logger, "component", "credentials"),
		readFile: os.ReadFile,
	}
}

// Load resolves src. Every failure is a fault.Credential error.
func (l *Loader) Load(src Source) (Credentials, error) {
	hasProfile := src.PublishSettingsPath != ""
	hasPfx := src.PfxPath != ""

	switch {
	case hasProfile && hasPfx:
		return Credentials{}, fault.Credentialf("both a publish settings file and a pfx file were given")
	case hasProfile:
		return l.fromPublishSettings(src)
	case hasPfx:
		return l.fromCertificateFile(src)
	default:
		return Credentials{}, fault.Credentialf("no credential source given")
	}
}

func (l *Loader) fromPublishSettings(src Source) (Credentials, error) {
	level.Debug(l.logger).Log("msg", "loading publish settings", "path", src.PublishSettingsPath)

	data, err := l.readFile(src.PublishSettingsPath)
	if err != nil {
		return Credentials{}, fault.WrapCredential(err, "read publish settings")
	}
	settings, err := ParsePublishSettings(data)
	if err != nil {
		return Credentials{}, fault.WrapCredential(err, src.PublishSettingsPath)
	}

	subscriptionID := strings.TrimSpace(src.SubscriptionID)
	if subscriptionID == "" {
		subscriptionID, err = settings.SubscriptionID()
		if err != nil {
			return Credentials{}, fault.WrapCredential(err, src.PublishSettingsPath)
		}
	}

	raw, err := settings.ManagementCertificate(subscriptionID)
	if err != nil {
		return Credentials{}, fault.WrapCredential(err, src.PublishSettingsPath)
	}
	cert, err := ParseCertificate(raw, "")
	if err != nil {
		return Credentials{}, fault.WrapCredential(err, "management certificate in "+src.PublishSettingsPath)
	}

	level.Debug(l.logger).Log("msg", "publish settings loaded", "subscription", subscriptionID, "subject", cert.Subject())
	return Credentials{SubscriptionID: subscriptionID, Certificate: cert}, nil
}

func (l *Loader) fromCertificateFile(src Source) (Credentials, error) {
	subscriptionID := strings.TrimSpace(src.SubscriptionID)
	if subscriptionID == "" {
		return Credentials{}, fault.Credentialf("a subscription id is required with a pfx file")
	}

	level.Debug(l.logger).Log("msg", "loading certificate file", "path", src.PfxPath)
	raw, err := l.readFile(src.PfxPath)
	if err != nil {
		return Credentials{}, fault.WrapCredential(err, "read certificate file")
	}
	cert, err := ParseCertificate(raw, src.PfxPassword)
	if err != nil {
		return Credentials{}, fault.WrapCredential(errors.WithMessage(err, src.PfxPath), "load certificate file")
	}

	level.Debug(l.logger).Log("msg", "certificate file loaded", "subscription", subscriptionID, "subject", cert.Subject())
	return Credentials{SubscriptionID: subscriptionID, Certificate: cert}, nil
}
