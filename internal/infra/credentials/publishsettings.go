// Where: cli/internal/infra/credentials/publishsettings.go
// What: Publish settings (XML profile) reader.
// Why: Extract the subscription id and management certificate from a profile.
package credentials

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	elementPublishProfile = "PublishProfile"
	elementSubscription   = "Subscription"
	attrID                = "Id"
	attrCertificate       = "ManagementCertificate"
)

// PublishSettings is the subset of a profile document the tool reads.
type PublishSettings struct {
	// profiles holds every PublishProfile element in document order.
	profiles []xmlElement
	// subscriptions holds every Subscription element in document order.
	subscriptions []xmlElement
}

type xmlElement struct {
	attrs map[string]string
}

func (e xmlElement) attr(name string) (string, bool) {
	value, ok := e.attrs[name]
	return value, ok
}

func newXMLElement(start xml.StartElement) xmlElement {
	attrs := make(map[string]string, len(start.Attr))
	for _, a := range start.Attr {
		attrs[a.Name.Local] = a.Value
	}
	return xmlElement{attrs: attrs}
}

// ParsePublishSettings walks the whole document and collects profile and
// subscription elements at any depth.
func ParsePublishSettings(data []byte) (PublishSettings, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var (
		settings PublishSettings
		sawRoot  bool
	)
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return PublishSettings{}, errors.Wrap(err, "parse publish settings")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		switch start.Name.Local {
		case elementPublishProfile:
			settings.profiles = append(settings.profiles, newXMLElement(start))
		case elementSubscription:
			settings.subscriptions = append(settings.subscriptions, newXMLElement(start))
		}
	}
	if !sawRoot {
		return PublishSettings{}, errors.New("parse publish settings: document has no root element")
	}
	return settings, nil
}

// SubscriptionID returns the Id of the first Subscription element.
func (s PublishSettings) SubscriptionID() (string, error) {
	if len(s.subscriptions) == 0 {
		return "", errors.New("publish settings contain no Subscription element")
	}
	id, ok := s.subscriptions[0].attr(attrID)
	if !ok || strings.TrimSpace(id) == "" {
		return "", errors.New("first Subscription element has no Id attribute")
	}
	return id, nil
}

// ManagementCertificate returns the decoded certificate bytes of the single
// PublishProfile element. Profiles in the 2.0 schema keep the certificate on
// each Subscription instead; subscriptionID selects which one.
func (s PublishSettings) ManagementCertificate(subscriptionID string) ([]byte, error) {
	if len(s.profiles) != 1 {
		return nil, errors.Errorf("expected exactly one PublishProfile element, found %d", len(s.profiles))
	}

	encoded, ok := s.profiles[0].attr(attrCertificate)
	if !ok || strings.TrimSpace(encoded) == "" {
		encoded, ok = s.subscriptionCertificate(subscriptionID)
		if !ok {
			return nil, errors.New("PublishProfile element has no ManagementCertificate attribute")
		}
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "decode ManagementCertificate")
	}
	return raw, nil
}

func (s PublishSettings) subscriptionCertificate(subscriptionID string) (string, bool) {
	for _, sub := range s.subscriptions {
		id, _ := sub.attr(attrID)
		if id != subscriptionID {
			continue
		}
		encoded, ok := sub.attr(attrCertificate)
		if ok && strings.TrimSpace(encoded) != "" {
			return encoded, true
		}
	}
	return "", false
}
