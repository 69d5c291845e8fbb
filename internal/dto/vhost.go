package dto

// VirtualHostConfig is the typed form of a single TLS virtual host
// configuration file. It is built once at load time and never mutated.
type VirtualHostConfig struct {
	FilePath           string
	ListenHost         string
	ListenPort         string
	ServerName         string
	DocumentRoot       string
	FollowSymlinks     bool
	MultiViews         bool
	DirectoryListing   bool
	OverridePolicy     string
	AccessControl      string
	ErrorLogPath       string
	AccessLogPath      string
	AccessLogFormat    string
	ServerSignature    bool
	Ssl                bool
	CertificatePath    string
	CertificateKeyPath string
}
