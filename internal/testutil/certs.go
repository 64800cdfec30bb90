// Where: cli/internal/testutil/certs.go
// What: Self-signed certificate fixtures for tests.
// Why: Credential and transport tests need a real key pair.
package testutil

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"math/big"
	"testing"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

// SelfSignedPEM returns a PEM bundle holding a fresh certificate followed by
// its private key.
func SelfSignedPEM(t testing.TB, commonName string) []byte {
	t.Helper()

	key, cert := selfSigned(t, commonName)
	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshal key: %v", err)
	}

	var buf bytes.Buffer
	_ = pem.Encode(&buf, &pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
	_ = pem.Encode(&buf, &pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	return buf.Bytes()
}

// SelfSignedPFX returns a PKCS#12 archive in the current AES/SHA-256 format.
func SelfSignedPFX(t testing.TB, commonName, password string) []byte {
	t.Helper()
	return SelfSignedPFXWith(t, pkcs12.Modern2023, commonName, password)
}

// SelfSignedPFXWith encodes a fresh certificate and key with enc.
func SelfSignedPFXWith(t testing.TB, enc *pkcs12.Encoder, commonName, password string) []byte {
	t.Helper()

	key, cert := selfSigned(t, commonName)
	pfx, err := enc.Encode(key, cert, nil, password)
	if err != nil {
		t.Fatalf("encode pfx: %v", err)
	}
	return pfx
}

// ChainedPFX returns a PKCS#12 archive whose leaf is signed by a separate CA
// carried in the same archive, plus that CA.
func ChainedPFX(t testing.TB, commonName, password string) ([]byte, *x509.Certificate) {
	t.Helper()

	caKey, ca := issue(t, &x509.Certificate{
		Subject:               pkix.Name{CommonName: commonName + " CA"},
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}, nil, nil)
	key, leaf := issue(t, clientTemplate(commonName), ca, caKey)

	pfx, err := pkcs12.Modern2023.Encode(key, leaf, []*x509.Certificate{ca}, password)
	if err != nil {
		t.Fatalf("encode pfx: %v", err)
	}
	return pfx, ca
}

func selfSigned(t testing.TB, commonName string) (*ecdsa.PrivateKey, *x509.Certificate) {
	t.Helper()
	return issue(t, clientTemplate(commonName), nil, nil)
}

func clientTemplate(commonName string) *x509.Certificate {
	return &x509.Certificate{
		Subject:     pkix.Name{CommonName: commonName},
		KeyUsage:    x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
}

// issue signs template with parentKey, or self-signs when parent is nil.
func issue(t testing.TB, template, parent *x509.Certificate, parentKey *ecdsa.PrivateKey) (*ecdsa.PrivateKey, *x509.Certificate) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	template.SerialNumber = serial
	template.NotBefore = time.Now().Add(-time.Hour)
	template.NotAfter = time.Now().Add(time.Hour)
	if parent == nil {
		parent, parentKey = template, key
	}

	der, err := x509.CreateCertificate(rand.Reader, template, parent, &key.PublicKey, parentKey)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate: %v", err)
	}
	return key, cert
}

// PublishSettings renders a publish settings document embedding cert as the
// profile's management certificate.
func PublishSettings(cert []byte, subscriptionIDs ...string) string {
	var subs bytes.Buffer
	for i, id := range subscriptionIDs {
		fmt.Fprintf(&subs, "    <Subscription Id=\"%s\" Name=\"Subscription %d\" />\n", id, i+1)
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<PublishData>
  <PublishProfile
    PublishMethod="AzureServiceManagementAPI"
    Url="https://management.core.windows.net/"
    ManagementCertificate="%s">
%s  </PublishProfile>
</PublishData>
`, base64.StdEncoding.EncodeToString(cert), subs.String())
}
