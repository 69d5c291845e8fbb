package handler

import (
	"fmt"
	"sync"

	"github.com/gridhost/vhostd/cmd/tcp/contract"
	"github.com/gridhost/vhostd/cmd/tcp/router"
	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/certificates"
	"github.com/gridhost/vhostd/internal/logger"
	"github.com/gridhost/vhostd/internal/runtime"
	"github.com/gridhost/vhostd/internal/vhost"
	"github.com/mitchellh/mapstructure"
	"github.com/shirou/gopsutil/host"
)

type CheckConfigRequestData struct {
	ConfPath string `mapstructure:"confPath"`
}

type MainHandler struct {
	config *config.Config
	logger logger.Logger
	server *runtime.Server
	mx     *sync.Mutex
}

func (h *MainHandler) Handle(request router.Request) (any, error) {
	var response any
	var err error

	switch action := request.GetAction(); action {
	case "status":
		response, err = h.getStatus()
	case "getvhost":
		response, err = h.getVhost()
	case "checkconfig":
		err = h.checkConfig(request.Data)
	case "reload":
		err = h.reload()
	default:
		response, err = nil, fmt.Errorf("invalid action '%s' for module '%s'", action, request.GetModule())
	}

	return response, err
}

func (h *MainHandler) getStatus() (contract.ServerData, error) {
	var serverData contract.ServerData
	info, err := host.Info()

	if err != nil {
		return serverData, fmt.Errorf("failed to load server data: %v", err)
	}

	serverData.BootTime = info.BootTime
	serverData.Uptime = info.Uptime
	serverData.KernelArch = info.KernelArch
	serverData.KernelVersion = info.KernelVersion
	serverData.HostName = info.Hostname
	serverData.Platform = info.Platform
	serverData.PlatformVersion = info.PlatformVersion
	serverData.Os = info.OS
	serverData.DaemonVersion = h.config.Version

	if vhostConfig := h.server.GetVhostConfig(); vhostConfig != nil {
		serverData.ServerName = vhostConfig.ServerName
	}

	return serverData, nil
}

func (h *MainHandler) getVhost() (contract.VirtualHostData, error) {
	var response contract.VirtualHostData
	vhostConfig := h.server.GetVhostConfig()

	if vhostConfig == nil {
		return response, fmt.Errorf("no virtual host is applied")
	}

	cert, err := certificates.GetCertificateFromFile(vhostConfig.CertificatePath)

	if err != nil {
		h.logger.Warning("could not parse certificate %s: %v", vhostConfig.CertificatePath, err)
		cert = nil
	}

	return contract.ConvertVirtualHostConfig(*vhostConfig, cert), nil
}

// checkConfig validates an arbitrary rendered config file, typically the
// candidate for the next reload.
func (h *MainHandler) checkConfig(data any) error {
	var request CheckConfigRequestData

	err := mapstructure.Decode(data, &request)

	if err != nil {
		return fmt.Errorf("invalid check config request data: %v", err)
	}

	if request.ConfPath == "" {
		request.ConfPath = h.config.VhostConfPath
	}

	loader := vhost.GetLoader()
	vhostConfig, err := loader.Load(request.ConfPath)

	if err != nil {
		return err
	}

	if err = vhost.ValidateRecord(*vhostConfig); err != nil {
		return err
	}

	return vhost.ValidateEnvironment(*vhostConfig)
}

func (h *MainHandler) reload() error {
	h.mx.Lock()
	defer h.mx.Unlock()

	return h.server.Reload()
}

func CreateMainHandler(config *config.Config, logger logger.Logger, server *runtime.Server, mx *sync.Mutex) *MainHandler {
	return &MainHandler{
		config: config,
		logger: logger,
		server: server,
		mx:     mx,
	}
}
