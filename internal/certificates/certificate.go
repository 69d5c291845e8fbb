package certificates

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/gridhost/vhostd/internal/dto"
	"github.com/samber/lo"
)

// GetCertificateFromFile parses a PEM encoded certificate file. When the
// file contains a chain, the leaf certificate is returned.
func GetCertificateFromFile(certPath string) (*dto.Certificate, error) {
	certContent, err := os.ReadFile(certPath)

	if err != nil {
		return nil, fmt.Errorf("could not read certificate %s: %v", certPath, err)
	}

	return GetCertificateFromPem(certContent)
}

func GetCertificateFromPem(pemData []byte) (*dto.Certificate, error) {
	block, _ := pem.Decode(pemData)

	if block == nil {
		return nil, fmt.Errorf("could not find pem block with certificate")
	}

	cert, err := x509.ParseCertificate(block.Bytes)

	if err != nil {
		return nil, fmt.Errorf("could not parse certificate: %v", err)
	}

	return convertCertificate(cert), nil
}

// CheckCertificateKeyPair verifies that the private key in keyPath
// corresponds to the certificate in certPath.
func CheckCertificateKeyPair(certPath, keyPath string) error {
	_, err := tls.LoadX509KeyPair(certPath, keyPath)

	if err != nil {
		return fmt.Errorf("invalid certificate/key pair: %v", err)
	}

	return nil
}

func convertCertificate(cert *x509.Certificate) *dto.Certificate {
	now := time.Now()
	isValid := now.After(cert.NotBefore) && now.Before(cert.NotAfter)

	return &dto.Certificate{
		CN:             cert.Subject.CommonName,
		ValidFrom:      cert.NotBefore.Format(time.RFC3339),
		ValidTo:        cert.NotAfter.Format(time.RFC3339),
		DNSNames:       lo.Uniq(cert.DNSNames),
		EmailAddresses: cert.EmailAddresses,
		Organization:   cert.Subject.Organization,
		Province:       cert.Subject.Province,
		Country:        cert.Subject.Country,
		Locality:       cert.Subject.Locality,
		IsCA:           cert.IsCA,
		IsValid:        isValid,
		Issuer: dto.Issuer{
			CN:           cert.Issuer.CommonName,
			Organization: cert.Issuer.Organization,
		},
	}
}
