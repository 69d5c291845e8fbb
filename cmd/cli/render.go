package cli

import (
	"fmt"

	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/installer"
	"github.com/gridhost/vhostd/internal/logger"
	"github.com/gridhost/vhostd/internal/vhost"
	"github.com/spf13/cobra"
)

var valuesPath string
var outPath string
var enableHost bool

var RenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a virtual host configuration file from substitution values",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		log, err := logger.NewLogger(conf)

		if err != nil {
			return err
		}

		if valuesPath == "" {
			return fmt.Errorf("values file is not specified")
		}

		values, err := vhost.LoadValues(valuesPath)

		if err != nil {
			return err
		}

		vhostConfig := vhost.NewRecord(values)

		if outPath == "" {
			renderer := vhost.GetRenderer()
			content, err := renderer.Render(vhostConfig)

			if err != nil {
				return err
			}

			fmt.Print(content)

			return nil
		}

		hostMng := installer.CreateHostManager()
		rv := installer.CreateReverter(hostMng, log)
		inst := installer.CreateInstaller(rv, log)

		if err = inst.Install(vhostConfig, outPath); err != nil {
			return err
		}

		if enableHost {
			enabledPath, err := hostMng.Enable(outPath, conf.SitesEnabled)

			if err != nil {
				return err
			}

			fmt.Printf("Host enabled: %s\n", enabledPath)
		}

		fmt.Printf("Rendered %s\n", outPath)

		return nil
	},
}

func init() {
	RenderCmd.PersistentFlags().StringVarP(&valuesPath, "values", "f", "", "path to a YAML substitution values file")
	RenderCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "target config file path; stdout when omitted")
	RenderCmd.PersistentFlags().BoolVar(&enableHost, "enable", false, "enable the rendered host in the sites-enabled directory")
}
