package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/unknwon/com"
)

type HostManager interface {
	Enable(configFilePath, sitesEnabledDir string) (string, error)
	Disable(enabledFilePath string) error
}

// SymlinkHostManager enables a rendered virtual host file the Apache way: a
// symlink from the sites-enabled directory to the config file.
type SymlinkHostManager struct{}

func (m SymlinkHostManager) Enable(configFilePath, sitesEnabledDir string) (string, error) {
	if !com.IsFile(configFilePath) {
		return "", fmt.Errorf("config file %s does not exist", configFilePath)
	}

	if !com.IsDir(sitesEnabledDir) {
		return "", fmt.Errorf("sites-enabled directory %s does not exist", sitesEnabledDir)
	}

	enabledFilePath := filepath.Join(sitesEnabledDir, filepath.Base(configFilePath))

	if _, err := os.Lstat(enabledFilePath); err == nil {
		return "", fmt.Errorf("host is already enabled: %s", enabledFilePath)
	}

	if err := os.Symlink(configFilePath, enabledFilePath); err != nil {
		return "", fmt.Errorf("could not enable host: %v", err)
	}

	return enabledFilePath, nil
}

func (m SymlinkHostManager) Disable(enabledFilePath string) error {
	info, err := os.Lstat(enabledFilePath)

	if os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return err
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is not a symlink, refusing to remove", enabledFilePath)
	}

	return os.Remove(enabledFilePath)
}

func CreateHostManager() HostManager {
	return SymlinkHostManager{}
}
