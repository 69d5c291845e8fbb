package cli

import (
	"github.com/gridhost/vhostd/config"
	"github.com/spf13/cobra"
)

var vhostConfPath string

func Create() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vhostd",
		Short:        "TLS virtual host configuration loader and static file server",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&vhostConfPath, "conf", "c", "", "path to the virtual host configuration file")

	rootCmd.AddCommand(ServeCmd)
	rootCmd.AddCommand(CheckCmd)
	rootCmd.AddCommand(RenderCmd)
	rootCmd.AddCommand(ShowVhostCmd)
	rootCmd.AddCommand(EnableHostCmd)
	rootCmd.AddCommand(DisableHostCmd)
	rootCmd.AddCommand(ReloadCmd)
	rootCmd.AddCommand(GenerateTokenCmd)

	return rootCmd
}

func getVhostConfPath(conf *config.Config) string {
	if vhostConfPath != "" {
		return vhostConfPath
	}

	return conf.VhostConfPath
}
