package vhost

import (
	"os"
	"strings"
	"text/template"

	"github.com/gridhost/vhostd/internal/dto"
	"gopkg.in/yaml.v3"
)

// The rendered surface is fixed: only the substituted values vary between
// deployments. Indentation and directive order must stay stable so that a
// re-parse of the rendered file yields the same record.
const vhostTemplate = `<VirtualHost {{.ListenHost}}:{{.ListenPort}}>
  ServerName {{.ServerName}}
  DocumentRoot "{{.DocumentRoot}}"
  <Directory "{{.DocumentRoot}}">
{{- if .OptionsTokens}}
    Options {{.OptionsTokens}}
{{- end}}
    Options -Indexes
    AllowOverride {{.OverridePolicy}}
    Require {{.AccessControl}}
  </Directory>
  ErrorLog "{{.ErrorLogPath}}"
  ServerSignature {{.SignatureValue}}
  CustomLog "{{.AccessLogPath}}" {{.AccessLogFormat}}
  SSLEngine {{.SslValue}}
  SSLCertificateFile "{{.CertificatePath}}"
  SSLCertificateKeyFile "{{.CertificateKeyPath}}"
</VirtualHost>
`

type renderData struct {
	dto.VirtualHostConfig
	OptionsTokens  string
	SignatureValue string
	SslValue       string
}

type Renderer struct {
	template *template.Template
}

func (r Renderer) Render(vhostConfig dto.VirtualHostConfig) (string, error) {
	if err := ValidateRecord(vhostConfig); err != nil {
		return "", err
	}

	var tokens []string

	if vhostConfig.FollowSymlinks {
		tokens = append(tokens, "FollowSymLinks")
	}

	if vhostConfig.MultiViews {
		tokens = append(tokens, "MultiViews")
	}

	data := renderData{
		VirtualHostConfig: vhostConfig,
		OptionsTokens:     strings.Join(tokens, " "),
		SignatureValue:    onOff(vhostConfig.ServerSignature),
		SslValue:          sslValue(vhostConfig.Ssl),
	}

	var builder strings.Builder

	if err := r.template.Execute(&builder, data); err != nil {
		return "", err
	}

	return builder.String(), nil
}

func GetRenderer() Renderer {
	return Renderer{
		template: template.Must(template.New("vhost").Parse(vhostTemplate)),
	}
}

// LoadValues reads a YAML substitution values file, the input an external
// configuration manager would feed into the template.
func LoadValues(filePath string) (Values, error) {
	var values Values
	data, err := os.ReadFile(filePath)

	if err != nil {
		return values, err
	}

	if err = yaml.Unmarshal(data, &values); err != nil {
		return values, newConfigError(filePath, "", "could not parse values file: %v", err)
	}

	return values, nil
}

func onOff(enabled bool) string {
	if enabled {
		return "On"
	}

	return "Off"
}

// SSLEngine takes a lowercase flag, unlike ServerSignature
func sslValue(enabled bool) string {
	if enabled {
		return "on"
	}

	return "off"
}
