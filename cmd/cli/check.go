package cli

import (
	"fmt"

	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/vhost"
	"github.com/spf13/cobra"
)

var skipEnvCheck bool

var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the virtual host configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		confPath := getVhostConfPath(conf)
		loader := vhost.GetLoader()
		vhostConfig, err := loader.Load(confPath)

		if err != nil {
			return err
		}

		if err = vhost.ValidateRecord(*vhostConfig); err != nil {
			return err
		}

		if !skipEnvCheck {
			if err = vhost.ValidateEnvironment(*vhostConfig); err != nil {
				return err
			}
		}

		fmt.Printf("Configuration %s is valid\n", confPath)

		return nil
	},
}

func init() {
	CheckCmd.PersistentFlags().BoolVar(&skipEnvCheck, "skip-env", false, "skip document root and certificate existence checks")
}
