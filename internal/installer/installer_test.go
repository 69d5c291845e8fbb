package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridhost/vhostd/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostManagerEnableDisable(t *testing.T) {
	tmpDir := t.TempDir()
	sitesEnabledDir := filepath.Join(tmpDir, "sites-enabled")
	err := os.Mkdir(sitesEnabledDir, 0755)
	require.Nil(t, err)

	configFilePath := filepath.Join(tmpDir, "vhost443.conf")
	err = os.WriteFile(configFilePath, []byte("<VirtualHost *:443>\n</VirtualHost>\n"), 0644)
	require.Nil(t, err)

	hostMng := CreateHostManager()
	enabledPath, err := hostMng.Enable(configFilePath, sitesEnabledDir)
	require.Nilf(t, err, "enable error: %v", err)
	assert.Equal(t, filepath.Join(sitesEnabledDir, "vhost443.conf"), enabledPath)

	target, err := os.Readlink(enabledPath)
	require.Nil(t, err)
	assert.Equal(t, configFilePath, target)

	// enabling twice must fail
	_, err = hostMng.Enable(configFilePath, sitesEnabledDir)
	assert.NotNil(t, err)

	err = hostMng.Disable(enabledPath)
	require.Nil(t, err)
	assert.NoFileExists(t, enabledPath)

	// disabling an already disabled host is a no-op
	err = hostMng.Disable(enabledPath)
	assert.Nil(t, err)
}

func TestHostManagerDisableRefusesRegularFile(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "vhost443.conf")
	err := os.WriteFile(filePath, []byte("content"), 0644)
	require.Nil(t, err)

	hostMng := CreateHostManager()
	err = hostMng.Disable(filePath)
	assert.NotNil(t, err)
	assert.FileExists(t, filePath)
}

func TestReverterRestoresBackedUpConfig(t *testing.T) {
	log := &logger.TestLogger{T: t}
	rv := CreateReverter(CreateHostManager(), log)

	filePath := filepath.Join(t.TempDir(), "vhost443.conf")
	err := os.WriteFile(filePath, []byte("original"), 0644)
	require.Nil(t, err)

	err = rv.BackupConfig(filePath)
	require.Nil(t, err)

	err = os.WriteFile(filePath, []byte("broken"), 0644)
	require.Nil(t, err)

	err = rv.Rollback()
	require.Nil(t, err)

	content, err := os.ReadFile(filePath)
	require.Nil(t, err)
	assert.Equal(t, "original", string(content))
	assert.NoFileExists(t, filePath+".back")
}

func TestReverterDeletesCreatedConfig(t *testing.T) {
	log := &logger.TestLogger{T: t}
	rv := CreateReverter(CreateHostManager(), log)

	filePath := filepath.Join(t.TempDir(), "vhost443.conf")
	rv.AddConfigToDeletion(filePath)

	err := os.WriteFile(filePath, []byte("new config"), 0644)
	require.Nil(t, err)

	err = rv.Rollback()
	require.Nil(t, err)
	assert.NoFileExists(t, filePath)
}

func TestReverterCommitRemovesBackups(t *testing.T) {
	log := &logger.TestLogger{T: t}
	rv := CreateReverter(CreateHostManager(), log)

	filePath := filepath.Join(t.TempDir(), "vhost443.conf")
	err := os.WriteFile(filePath, []byte("original"), 0644)
	require.Nil(t, err)

	err = rv.BackupConfig(filePath)
	require.Nil(t, err)
	assert.FileExists(t, filePath+".back")

	err = rv.Commit()
	require.Nil(t, err)
	assert.NoFileExists(t, filePath+".back")

	// nothing left to roll back
	err = rv.Rollback()
	assert.Nil(t, err)

	content, err := os.ReadFile(filePath)
	require.Nil(t, err)
	assert.Equal(t, "original", string(content))
}
