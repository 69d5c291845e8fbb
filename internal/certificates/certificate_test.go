package certificates

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCertificateFromFile(t *testing.T) {
	certPath, _ := generateCertificatePair(t, "idds.cern.ch")

	cert, err := GetCertificateFromFile(certPath)
	require.Nilf(t, err, "parse certificate error: %v", err)

	assert.Equal(t, "idds.cern.ch", cert.CN)
	assert.Equal(t, []string{"idds.cern.ch"}, cert.DNSNames)
	assert.True(t, cert.IsValid)
	assert.False(t, cert.IsCA)
	assert.Equal(t, "idds.cern.ch", cert.Issuer.CN)
}

func TestGetCertificateFromFileMissing(t *testing.T) {
	_, err := GetCertificateFromFile(filepath.Join(t.TempDir(), "hostcert.pem"))
	require.NotNil(t, err)
}

func TestGetCertificateFromPemInvalid(t *testing.T) {
	_, err := GetCertificateFromPem([]byte("not a certificate"))
	require.NotNil(t, err)
}

func TestCheckCertificateKeyPair(t *testing.T) {
	certPath, keyPath := generateCertificatePair(t, "idds.cern.ch")

	err := CheckCertificateKeyPair(certPath, keyPath)
	assert.Nil(t, err)

	// a key from a different pair must be rejected
	_, otherKeyPath := generateCertificatePair(t, "other.cern.ch")
	err = CheckCertificateKeyPair(certPath, otherKeyPath)
	assert.NotNil(t, err)
}

func generateCertificatePair(t *testing.T, commonName string) (certPath string, keyPath string) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.Nil(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: commonName},
		DNSNames:     []string{commonName},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	certDer, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.Nil(t, err)

	keyDer, err := x509.MarshalECPrivateKey(key)
	require.Nil(t, err)

	tmpDir := t.TempDir()
	certPath = filepath.Join(tmpDir, "hostcert.pem")
	keyPath = filepath.Join(tmpDir, "hostkey.pem")

	certFile, err := os.Create(certPath)
	require.Nil(t, err)

	defer certFile.Close()

	err = pem.Encode(certFile, &pem.Block{Type: "CERTIFICATE", Bytes: certDer})
	require.Nil(t, err)

	keyFile, err := os.Create(keyPath)
	require.Nil(t, err)

	defer keyFile.Close()

	err = pem.Encode(keyFile, &pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDer})
	require.Nil(t, err)

	return certPath, keyPath
}
