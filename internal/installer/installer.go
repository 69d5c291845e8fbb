package installer

import (
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/gridhost/vhostd/internal/dto"
	"github.com/gridhost/vhostd/internal/logger"
	"github.com/gridhost/vhostd/internal/vhost"
	"github.com/unknwon/com"
)

// Installer renders a virtual host record into a config file and verifies
// the written file round-trips back to the same record. Any failure rolls
// the target file back to its previous content.
type Installer struct {
	logger   logger.Logger
	reverter Reverter
	loader   vhost.Loader
	renderer vhost.Renderer
}

func (i Installer) Install(vhostConfig dto.VirtualHostConfig, targetPath string) error {
	content, err := i.renderer.Render(vhostConfig)

	if err != nil {
		return err
	}

	if com.IsFile(targetPath) {
		if err = i.reverter.BackupConfig(targetPath); err != nil {
			return fmt.Errorf("could not back up %s: %v", targetPath, err)
		}
	} else {
		i.reverter.AddConfigToDeletion(targetPath)
	}

	if err = os.WriteFile(targetPath, []byte(content), 0644); err != nil {
		i.rollback()

		return fmt.Errorf("could not write %s: %v", targetPath, err)
	}

	loaded, err := i.loader.Load(targetPath)

	if err != nil {
		i.rollback()

		return err
	}

	if err = vhost.ValidateRecord(*loaded); err != nil {
		i.rollback()

		return err
	}

	// the rendered file must parse back to the record it was built from
	expected := vhostConfig
	expected.FilePath = loaded.FilePath

	if !cmp.Equal(expected, *loaded) {
		i.rollback()

		return fmt.Errorf("rendered config %s does not round-trip: %s", targetPath, cmp.Diff(expected, *loaded))
	}

	return i.reverter.Commit()
}

func (i Installer) rollback() {
	if err := i.reverter.Rollback(); err != nil {
		i.logger.Error("failed to roll back installation: %v", err)
	}
}

func CreateInstaller(reverter Reverter, logger logger.Logger) Installer {
	return Installer{
		logger:   logger,
		reverter: reverter,
		loader:   vhost.GetLoader(),
		renderer: vhost.GetRenderer(),
	}
}
