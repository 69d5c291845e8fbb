package cli

import (
	"fmt"
	"path/filepath"

	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/installer"
	"github.com/spf13/cobra"
)

var EnableHostCmd = &cobra.Command{
	Use:   "enable-host",
	Short: "Enable the virtual host config in the sites-enabled directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		hostMng := installer.CreateHostManager()
		enabledPath, err := hostMng.Enable(getVhostConfPath(conf), conf.SitesEnabled)

		if err != nil {
			return err
		}

		fmt.Printf("Host enabled: %s\n", enabledPath)

		return nil
	},
}

var DisableHostCmd = &cobra.Command{
	Use:   "disable-host",
	Short: "Disable the virtual host config",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		enabledPath := filepath.Join(conf.SitesEnabled, filepath.Base(getVhostConfPath(conf)))
		hostMng := installer.CreateHostManager()

		if err = hostMng.Disable(enabledPath); err != nil {
			return err
		}

		fmt.Printf("Host disabled: %s\n", enabledPath)

		return nil
	},
}
