package vhost

import (
	"regexp"
	"strings"

	"github.com/gridhost/vhostd/internal/certificates"
	"github.com/gridhost/vhostd/internal/dto"
	"github.com/unknwon/com"
)

// ValidateRecord checks the structural constraints of a virtual host record:
// the fixed attribute values and the syntactic validity of the substituted
// ones. It does not touch the filesystem.
func ValidateRecord(v dto.VirtualHostConfig) error {
	if v.ServerName == "" {
		return newConfigError(v.FilePath, "ServerName", "must not be empty")
	}

	if !isValidDomain(v.ServerName) {
		return newConfigError(v.FilePath, "ServerName", "'%s' is not a valid domain name", v.ServerName)
	}

	substituted := []struct {
		directive string
		value     string
	}{
		{"ServerName", v.ServerName},
		{"DocumentRoot", v.DocumentRoot},
		{ErrorLogDirective, v.ErrorLogPath},
		{CustomLogDirective, v.AccessLogPath},
		{CertDirective, v.CertificatePath},
		{CertKeyDirective, v.CertificateKeyPath},
	}

	for _, item := range substituted {
		if item.value == "" {
			return newConfigError(v.FilePath, item.directive, "must not be empty")
		}

		if hasUnescapedQuote(item.value) {
			return newConfigError(v.FilePath, item.directive, "value '%s' contains an unescaped quote", item.value)
		}
	}

	if v.ListenHost != "*" || v.ListenPort != "443" {
		return newConfigError(v.FilePath, "", "listener must be *:443, got %s:%s", v.ListenHost, v.ListenPort)
	}

	if !v.Ssl {
		return newConfigError(v.FilePath, SSLEngineDirective, "must be on")
	}

	if v.DirectoryListing {
		return newConfigError(v.FilePath, OptionsDirective, "directory listing must stay disabled")
	}

	if v.OverridePolicy != OverrideNone {
		return newConfigError(v.FilePath, AllowOverrideDirective, "must be %s, got %s", OverrideNone, v.OverridePolicy)
	}

	if v.AccessControl != AccessControlAllGranted {
		return newConfigError(v.FilePath, RequireDirective, "must be '%s', got '%s'", AccessControlAllGranted, v.AccessControl)
	}

	if v.ServerSignature {
		return newConfigError(v.FilePath, ServerSignatureDirective, "must be off")
	}

	if v.AccessLogFormat != CombinedLogFormat {
		return newConfigError(v.FilePath, CustomLogDirective, "log format must be %s, got %s", CombinedLogFormat, v.AccessLogFormat)
	}

	return nil
}

// ValidateEnvironment checks that the paths a record references are
// provisioned: readable document root, existing certificate and key that
// form a pair. A failure here is fatal at startup.
func ValidateEnvironment(v dto.VirtualHostConfig) error {
	if !com.IsDir(v.DocumentRoot) {
		return newConfigError(v.FilePath, "DocumentRoot", "directory %s does not exist", v.DocumentRoot)
	}

	if !com.IsFile(v.CertificatePath) {
		return newConfigError(v.FilePath, CertDirective, "certificate file %s does not exist", v.CertificatePath)
	}

	if !com.IsFile(v.CertificateKeyPath) {
		return newConfigError(v.FilePath, CertKeyDirective, "certificate key file %s does not exist", v.CertificateKeyPath)
	}

	if err := certificates.CheckCertificateKeyPair(v.CertificatePath, v.CertificateKeyPath); err != nil {
		return newConfigError(v.FilePath, CertKeyDirective, "certificate and key do not match: %v", err)
	}

	return nil
}

func isValidDomain(domain string) bool {
	// Regular expression to validate domain name
	regex := `^(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`
	match, _ := regexp.MatchString(regex, domain)

	return match
}

func hasUnescapedQuote(value string) bool {
	for i, r := range value {
		if r != '"' {
			continue
		}

		if i == 0 || !strings.HasSuffix(value[:i], "\\") {
			return true
		}
	}

	return false
}
