package cli

import (
	"fmt"

	"github.com/gridhost/vhostd/cmd/tcp/contract"
	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/certificates"
	"github.com/gridhost/vhostd/internal/dto"
	"github.com/gridhost/vhostd/internal/vhost"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var ShowVhostCmd = &cobra.Command{
	Use:   "show-vhost",
	Short: "Print the parsed virtual host configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		loader := vhost.GetLoader()
		vhostConfig, err := loader.Load(getVhostConfPath(conf))

		if err != nil {
			return err
		}

		var cert *dto.Certificate

		if vhostConfig.CertificatePath != "" {
			cert, _ = certificates.GetCertificateFromFile(vhostConfig.CertificatePath)
		}

		data, err := yaml.Marshal(contract.ConvertVirtualHostConfig(*vhostConfig, cert))

		if err != nil {
			return err
		}

		fmt.Print(string(data))

		return nil
	},
}
