package vhost

import (
	"path/filepath"
	"strings"

	"github.com/gridhost/vhostd/internal/dto"
	"github.com/r2dtools/goapacheconf"
)

// Loader parses rendered virtual host configuration files into typed
// records. Parsing is all-or-nothing: any structural problem yields a
// ConfigError and no record.
type Loader struct{}

func (l Loader) Load(filePath string) (*dto.VirtualHostConfig, error) {
	filePath, err := filepath.Abs(filePath)

	if err != nil {
		return nil, err
	}

	config, err := goapacheconf.GetConfig(filepath.Dir(filePath), filepath.Base(filePath))

	if err != nil {
		return nil, newConfigError(filePath, "", "could not parse config: %v", err)
	}

	vhostBlocks := config.FindVirtualHostBlocks()

	if len(vhostBlocks) == 0 {
		return nil, newConfigError(filePath, "", "no virtual host block found")
	}

	if len(vhostBlocks) > 1 {
		return nil, newConfigError(filePath, "", "expected a single virtual host block, found %d", len(vhostBlocks))
	}

	return l.convertVhostBlock(filePath, vhostBlocks[0])
}

func (l Loader) convertVhostBlock(filePath string, block goapacheconf.VirtualHostBlock) (*dto.VirtualHostConfig, error) {
	addresses := block.GetAddresses()

	if len(addresses) == 0 {
		return nil, newConfigError(filePath, "", "virtual host has no listen address")
	}

	address := addresses[0]
	serverNames := block.GetServerNames()

	if len(serverNames) == 0 {
		return nil, newConfigError(filePath, "ServerName", "directive is missing")
	}

	vhostConfig := dto.VirtualHostConfig{
		FilePath:        filePath,
		ListenHost:      address.Host,
		ListenPort:      address.Port,
		ServerName:      unquote(serverNames[0]),
		DocumentRoot:    unquote(block.GetDocumentRoot()),
		OverridePolicy:  OverrideNone,
		AccessLogFormat: CombinedLogFormat,
	}

	l.applyDirectoryPolicy(&vhostConfig, block)

	if directive, ok := lastDirective(block, AllowOverrideDirective); ok {
		vhostConfig.OverridePolicy = directive.GetFirstValue()
	}

	if directive, ok := lastDirective(block, RequireDirective); ok {
		vhostConfig.AccessControl = strings.Join(directive.GetValues(), " ")
	}

	if directive, ok := lastDirective(block, ErrorLogDirective); ok {
		vhostConfig.ErrorLogPath = unquote(directive.GetFirstValue())
	}

	if directive, ok := lastDirective(block, ServerSignatureDirective); ok {
		vhostConfig.ServerSignature = strings.EqualFold(directive.GetFirstValue(), "on")
	}

	if directive, ok := lastDirective(block, SSLEngineDirective); ok {
		vhostConfig.Ssl = strings.EqualFold(directive.GetFirstValue(), "on")
	}

	if directive, ok := lastDirective(block, CertDirective); ok {
		vhostConfig.CertificatePath = unquote(directive.GetFirstValue())
	}

	if directive, ok := lastDirective(block, CertKeyDirective); ok {
		vhostConfig.CertificateKeyPath = unquote(directive.GetFirstValue())
	}

	if err := l.applyAccessLog(&vhostConfig, block); err != nil {
		return nil, err
	}

	return &vhostConfig, nil
}

// applyDirectoryPolicy folds all Options directives into the record flags.
// Later directives win, the +/- prefix toggles a single option.
func (l Loader) applyDirectoryPolicy(vhostConfig *dto.VirtualHostConfig, block goapacheconf.VirtualHostBlock) {
	for _, directive := range block.FindDirectives(OptionsDirective) {
		for _, value := range directive.GetValues() {
			enabled := !strings.HasPrefix(value, "-")
			option := strings.TrimLeft(value, "+-")

			switch {
			case strings.EqualFold(option, "FollowSymLinks"):
				vhostConfig.FollowSymlinks = enabled
			case strings.EqualFold(option, "MultiViews"):
				vhostConfig.MultiViews = enabled
			case strings.EqualFold(option, "Indexes"):
				vhostConfig.DirectoryListing = enabled
			}
		}
	}
}

func (l Loader) applyAccessLog(vhostConfig *dto.VirtualHostConfig, block goapacheconf.VirtualHostBlock) error {
	directive, ok := lastDirective(block, CustomLogDirective)

	if !ok {
		return nil
	}

	values := directive.GetValues()

	if len(values) < 2 {
		return newConfigError(vhostConfig.FilePath, CustomLogDirective, "expected path and format, got %s", strings.Join(values, " "))
	}

	vhostConfig.AccessLogPath = unquote(values[0])
	vhostConfig.AccessLogFormat = values[1]

	return nil
}

func lastDirective(block goapacheconf.VirtualHostBlock, name goapacheconf.DirectiveName) (goapacheconf.Directive, bool) {
	directives := block.FindDirectives(name)

	if len(directives) == 0 {
		return goapacheconf.Directive{}, false
	}

	return directives[len(directives)-1], true
}

func unquote(value string) string {
	return strings.Trim(value, "\"")
}

func GetLoader() Loader {
	return Loader{}
}
