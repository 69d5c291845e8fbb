package vhost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVhostConfig(t *testing.T) {
	renderer := GetRenderer()
	content, err := renderer.Render(NewRecord(getTestValues()))
	require.Nilf(t, err, "render error: %v", err)

	expected, err := os.ReadFile(filepath.Join("testdata", "vhost443.conf"))
	require.Nil(t, err)
	assert.Equal(t, string(expected), content)
}

func TestRenderDirectiveCasing(t *testing.T) {
	renderer := GetRenderer()
	content, err := renderer.Render(NewRecord(getTestValues()))
	require.Nil(t, err)

	// SSLEngine takes a lowercase flag, ServerSignature a capitalized one
	assert.Contains(t, content, "SSLEngine on\n")
	assert.Contains(t, content, "ServerSignature Off\n")
	assert.NotContains(t, content, "SSLEngine On")
}

func TestRenderWithoutSymlinkOptions(t *testing.T) {
	values := getTestValues()
	followSymlinks := false
	multiViews := false
	values.FollowSymlinks = &followSymlinks
	values.MultiViews = &multiViews

	renderer := GetRenderer()
	content, err := renderer.Render(NewRecord(values))
	require.Nil(t, err)

	assert.NotContains(t, content, "FollowSymLinks")
	assert.NotContains(t, content, "MultiViews")
	assert.Contains(t, content, "Options -Indexes")
}

func TestRenderRejectsQuoteInjection(t *testing.T) {
	values := getTestValues()
	values.DocumentRoot = `/var/www/html" evil "`

	renderer := GetRenderer()
	_, err := renderer.Render(NewRecord(values))
	require.NotNil(t, err)

	var configErr ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "DocumentRoot", configErr.Directive)
}

func TestLoadValues(t *testing.T) {
	valuesContent := `
server_name: idds.cern.ch
document_root: /var/www/html
error_log: /var/log/httpd/error_log
access_log: /var/log/httpd/access_log
certificate: /etc/grid-security/hostcert.pem
certificate_key: /etc/grid-security/hostkey.pem
`
	valuesPath := filepath.Join(t.TempDir(), "values.yaml")
	err := os.WriteFile(valuesPath, []byte(valuesContent), 0644)
	require.Nil(t, err)

	values, err := LoadValues(valuesPath)
	require.Nil(t, err)
	assert.Equal(t, getTestValues(), values)
}

func getTestValues() Values {
	return Values{
		ServerName:         "idds.cern.ch",
		DocumentRoot:       "/var/www/html",
		ErrorLogPath:       "/var/log/httpd/error_log",
		AccessLogPath:      "/var/log/httpd/access_log",
		CertificatePath:    "/etc/grid-security/hostcert.pem",
		CertificateKeyPath: "/etc/grid-security/hostkey.pem",
	}
}
