package contract

import (
	"github.com/gridhost/vhostd/internal/dto"
)

const (
	StatusOk    = "ok"
	StatusError = "error"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type ServerData struct {
	HostName        string `json:"hostName"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platformVersion"`
	KernelArch      string `json:"kernelArch"`
	KernelVersion   string `json:"kernelVersion"`
	Os              string `json:"os"`
	BootTime        uint64 `json:"bootTime"`
	Uptime          uint64 `json:"uptime"`
	DaemonVersion   string `json:"daemonVersion"`
	ServerName      string `json:"serverName"`
}

type VirtualHostData struct {
	FilePath           string           `json:"filePath"`
	ListenHost         string           `json:"listenHost"`
	ListenPort         string           `json:"listenPort"`
	ServerName         string           `json:"serverName"`
	DocumentRoot       string           `json:"documentRoot"`
	FollowSymlinks     bool             `json:"followSymlinks"`
	MultiViews         bool             `json:"multiViews"`
	DirectoryListing   bool             `json:"directoryListing"`
	OverridePolicy     string           `json:"overridePolicy"`
	AccessControl      string           `json:"accessControl"`
	ErrorLogPath       string           `json:"errorLogPath"`
	AccessLogPath      string           `json:"accessLogPath"`
	AccessLogFormat    string           `json:"accessLogFormat"`
	ServerSignature    bool             `json:"serverSignature"`
	Ssl                bool             `json:"ssl"`
	CertificatePath    string           `json:"certificatePath"`
	CertificateKeyPath string           `json:"certificateKeyPath"`
	Certificate        *CertificateData `json:"certificate,omitempty"`
}

type CertificateData struct {
	CN             string   `json:"cn"`
	ValidFrom      string   `json:"validFrom"`
	ValidTo        string   `json:"validTo"`
	DNSNames       []string `json:"dnsNames"`
	EmailAddresses []string `json:"emailAddresses"`
	Organization   []string `json:"organization"`
	IsCA           bool     `json:"isCA"`
	IsValid        bool     `json:"isValid"`
	IssuerCN       string   `json:"issuerCN"`
}

func ConvertVirtualHostConfig(vhostConfig dto.VirtualHostConfig, cert *dto.Certificate) VirtualHostData {
	return VirtualHostData{
		FilePath:           vhostConfig.FilePath,
		ListenHost:         vhostConfig.ListenHost,
		ListenPort:         vhostConfig.ListenPort,
		ServerName:         vhostConfig.ServerName,
		DocumentRoot:       vhostConfig.DocumentRoot,
		FollowSymlinks:     vhostConfig.FollowSymlinks,
		MultiViews:         vhostConfig.MultiViews,
		DirectoryListing:   vhostConfig.DirectoryListing,
		OverridePolicy:     vhostConfig.OverridePolicy,
		AccessControl:      vhostConfig.AccessControl,
		ErrorLogPath:       vhostConfig.ErrorLogPath,
		AccessLogPath:      vhostConfig.AccessLogPath,
		AccessLogFormat:    vhostConfig.AccessLogFormat,
		ServerSignature:    vhostConfig.ServerSignature,
		Ssl:                vhostConfig.Ssl,
		CertificatePath:    vhostConfig.CertificatePath,
		CertificateKeyPath: vhostConfig.CertificateKeyPath,
		Certificate:        ConvertCertificate(cert),
	}
}

func ConvertCertificate(cert *dto.Certificate) *CertificateData {
	if cert == nil {
		return nil
	}

	return &CertificateData{
		CN:             cert.CN,
		ValidFrom:      cert.ValidFrom,
		ValidTo:        cert.ValidTo,
		DNSNames:       cert.DNSNames,
		EmailAddresses: cert.EmailAddresses,
		Organization:   cert.Organization,
		IsCA:           cert.IsCA,
		IsValid:        cert.IsValid,
		IssuerCN:       cert.Issuer.CN,
	}
}
