package cli

import (
	"fmt"

	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/procmng"
	"github.com/spf13/cobra"
)

var ReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Make the running daemon re-read its virtual host configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		processManager, err := procmng.GetDaemonProcessManager(conf.PidFile)

		if err != nil {
			return err
		}

		if err = processManager.Reload(); err != nil {
			return err
		}

		fmt.Println("Reload signal sent")

		return nil
	},
}
