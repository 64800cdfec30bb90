// Where: cli/internal/infra/credentials/certificate.go
// What: Client certificate decoding (PEM or PKCS#12).
// Why: Management requests authenticate with a TLS client certificate.
package credentials

import (
	"bytes"
	"crypto"
	"crypto/tls"
	"crypto/x509"

	"github.com/pkg/errors"
	"software.sslmate.com/src/go-pkcs12"
)

// Certificate is a decoded client certificate.
type Certificate struct {
	// Raw holds the bytes the certificate was decoded from.
	Raw []byte
	TLS tls.Certificate
}

// Subject returns the leaf certificate subject, or "" when unknown.
func (c Certificate) Subject() string {
	if c.TLS.Leaf == nil {
		return ""
	}
	return c.TLS.Leaf.Subject.String()
}

// ParseCertificate decodes raw as PEM when it looks like PEM and as PKCS#12
// otherwise. password only applies to PKCS#12 input.
func ParseCertificate(raw []byte, password string) (Certificate, error) {
	if len(raw) == 0 {
		return Certificate{}, errors.New("certificate is empty")
	}

	var (
		pair tls.Certificate
		err  error
	)
	if looksLikePEM(raw) {
		pair, err = tls.X509KeyPair(raw, raw)
		if err != nil {
			return Certificate{}, errors.Wrap(err, "decode PEM certificate")
		}
	} else {
		pair, err = decodePKCS12(raw, password)
		if err != nil {
			return Certificate{}, err
		}
	}

	if pair.Leaf == nil && len(pair.Certificate) > 0 {
		leaf, err := x509.ParseCertificate(pair.Certificate[0])
		if err != nil {
			return Certificate{}, errors.Wrap(err, "parse leaf certificate")
		}
		pair.Leaf = leaf
	}

	return Certificate{Raw: raw, TLS: pair}, nil
}

func looksLikePEM(raw []byte) bool {
	return bytes.Contains(raw, []byte("-----BEGIN "))
}

// decodePKCS12 keeps the leaf first in the chain whatever the bag order was.
func decodePKCS12(raw []byte, password string) (tls.Certificate, error) {
	key, leaf, caCerts, err := pkcs12.DecodeChain(raw, password)
	if err != nil {
		return tls.Certificate{}, errors.Wrap(err, "decode PKCS#12 certificate")
	}
	signer, ok := key.(crypto.Signer)
	if !ok {
		return tls.Certificate{}, errors.Errorf("unsupported PKCS#12 private key type %T", key)
	}
	pub, ok := signer.Public().(interface{ Equal(crypto.PublicKey) bool })
	if !ok || !pub.Equal(leaf.PublicKey) {
		return tls.Certificate{}, errors.New("PKCS#12 private key does not match its certificate")
	}

	chain := make([][]byte, 0, len(caCerts)+1)
	chain = append(chain, leaf.Raw)
	for _, ca := range caCerts {
		chain = append(chain, ca.Raw)
	}
	return tls.Certificate{Certificate: chain, PrivateKey: key, Leaf: leaf}, nil
}
