package vhost

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadVhostConfig(t *testing.T) {
	loader := GetLoader()
	vhostConfig, err := loader.Load(filepath.Join("testdata", "vhost443.conf"))
	require.Nilf(t, err, "load error: %v", err)

	assert.Equal(t, "*", vhostConfig.ListenHost)
	assert.Equal(t, "443", vhostConfig.ListenPort)
	assert.Equal(t, "idds.cern.ch", vhostConfig.ServerName)
	assert.Equal(t, "/var/www/html", vhostConfig.DocumentRoot)
	assert.True(t, vhostConfig.FollowSymlinks)
	assert.True(t, vhostConfig.MultiViews)
	assert.False(t, vhostConfig.DirectoryListing)
	assert.Equal(t, OverrideNone, vhostConfig.OverridePolicy)
	assert.Equal(t, AccessControlAllGranted, vhostConfig.AccessControl)
	assert.Equal(t, "/var/log/httpd/error_log", vhostConfig.ErrorLogPath)
	assert.Equal(t, "/var/log/httpd/access_log", vhostConfig.AccessLogPath)
	assert.Equal(t, CombinedLogFormat, vhostConfig.AccessLogFormat)
	assert.False(t, vhostConfig.ServerSignature)
	assert.True(t, vhostConfig.Ssl)
	assert.Equal(t, "/etc/grid-security/hostcert.pem", vhostConfig.CertificatePath)
	assert.Equal(t, "/etc/grid-security/hostkey.pem", vhostConfig.CertificateKeyPath)
}

func TestRenderLoadRoundTrip(t *testing.T) {
	record := NewRecord(getTestValues())
	renderer := GetRenderer()
	content, err := renderer.Render(record)
	require.Nil(t, err)

	confPath := filepath.Join(t.TempDir(), "vhost443.conf")
	err = os.WriteFile(confPath, []byte(content), 0644)
	require.Nil(t, err)

	loader := GetLoader()
	loaded, err := loader.Load(confPath)
	require.Nilf(t, err, "load rendered config error: %v", err)

	record.FilePath = loaded.FilePath
	assert.Truef(t, cmp.Equal(record, *loaded), "round trip mismatch: %s", cmp.Diff(record, *loaded))
}

func TestLoadMissingVhostBlock(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "empty.conf")
	err := os.WriteFile(confPath, []byte("# nothing here\n"), 0644)
	require.Nil(t, err)

	loader := GetLoader()
	_, err = loader.Load(confPath)
	require.NotNil(t, err)

	var configErr ConfigError
	assert.ErrorAs(t, err, &configErr)
}
