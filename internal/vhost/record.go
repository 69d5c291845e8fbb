package vhost

import "github.com/gridhost/vhostd/internal/dto"

const (
	SSLEngineDirective       = "SSLEngine"
	CertDirective            = "SSLCertificateFile"
	CertKeyDirective         = "SSLCertificateKeyFile"
	OptionsDirective         = "Options"
	AllowOverrideDirective   = "AllowOverride"
	RequireDirective         = "Require"
	ErrorLogDirective        = "ErrorLog"
	CustomLogDirective       = "CustomLog"
	ServerSignatureDirective = "ServerSignature"
)

const (
	OverrideNone = "None"
	OverrideAll  = "All"

	AccessControlAllGranted = "all granted"

	CombinedLogFormat = "combined"
)

// Values is the substitution set an operator supplies to render a virtual
// host file. Everything not listed here is fixed by the template.
type Values struct {
	ServerName         string `yaml:"server_name"`
	DocumentRoot       string `yaml:"document_root"`
	ErrorLogPath       string `yaml:"error_log"`
	AccessLogPath      string `yaml:"access_log"`
	CertificatePath    string `yaml:"certificate"`
	CertificateKeyPath string `yaml:"certificate_key"`
	FollowSymlinks     *bool  `yaml:"follow_symlinks,omitempty"`
	MultiViews         *bool  `yaml:"multiviews,omitempty"`
}

// NewRecord builds a VirtualHostConfig from substitution values. The fixed
// attributes (listener, ssl, override policy, listing, signature, log
// format) never vary.
func NewRecord(values Values) dto.VirtualHostConfig {
	followSymlinks := true

	if values.FollowSymlinks != nil {
		followSymlinks = *values.FollowSymlinks
	}

	multiViews := true

	if values.MultiViews != nil {
		multiViews = *values.MultiViews
	}

	return dto.VirtualHostConfig{
		ListenHost:         "*",
		ListenPort:         "443",
		ServerName:         values.ServerName,
		DocumentRoot:       values.DocumentRoot,
		FollowSymlinks:     followSymlinks,
		MultiViews:         multiViews,
		DirectoryListing:   false,
		OverridePolicy:     OverrideNone,
		AccessControl:      AccessControlAllGranted,
		ErrorLogPath:       values.ErrorLogPath,
		AccessLogPath:      values.AccessLogPath,
		AccessLogFormat:    CombinedLogFormat,
		ServerSignature:    false,
		Ssl:                true,
		CertificatePath:    values.CertificatePath,
		CertificateKeyPath: values.CertificateKeyPath,
	}
}
