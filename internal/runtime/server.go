package runtime

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/gridhost/vhostd/internal/dto"
	"github.com/gridhost/vhostd/internal/logger"
	"github.com/gridhost/vhostd/internal/vhost"
)

type vhostState struct {
	vhostConfig dto.VirtualHostConfig
	certificate tls.Certificate
	handler     http.Handler
	accessLog   *os.File
}

// Server is the TLS terminated static file runtime a virtual host record is
// applied to. The active state is swapped atomically on reload, so a failed
// reload keeps the previous configuration serving.
type Server struct {
	ConfPath string
	Logger   logger.Logger
	Version  string

	loader     vhost.Loader
	state      atomic.Pointer[vhostState]
	httpServer *http.Server
}

func NewServer(confPath string, log logger.Logger, version string) *Server {
	return &Server{
		ConfPath: confPath,
		Logger:   log,
		Version:  version,
		loader:   vhost.GetLoader(),
	}
}

// Apply loads and validates the virtual host configuration and makes it the
// active state. The first Apply is all-or-nothing: any missing path is a
// startup failure.
func (s *Server) Apply() error {
	state, err := s.loadState()

	if err != nil {
		return err
	}

	old := s.state.Swap(state)

	if old != nil && old.accessLog != nil {
		old.accessLog.Close()
	}

	s.Logger.Info("applied virtual host %s, document root %s", state.vhostConfig.ServerName, state.vhostConfig.DocumentRoot)

	return nil
}

// Reload re-applies the configuration file. On failure the previous state
// stays active.
func (s *Server) Reload() error {
	if err := s.Apply(); err != nil {
		s.Logger.Error("reload failed, keeping previous configuration: %v", err)

		return err
	}

	return nil
}

func (s *Server) Serve() error {
	state := s.state.Load()

	if state == nil {
		return errors.New("no virtual host configuration applied")
	}

	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
		GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
			current := s.state.Load()

			if current == nil {
				return nil, errors.New("no active virtual host")
			}

			return &current.certificate, nil
		},
	}

	listener, err := net.Listen("tcp", listenAddr(state.vhostConfig))

	if err != nil {
		return fmt.Errorf("could not listen on %s: %v", listenAddr(state.vhostConfig), err)
	}

	s.httpServer = &http.Server{
		Handler: http.HandlerFunc(s.serveHTTP),
	}

	err = s.httpServer.Serve(tls.NewListener(listener, tlsConfig))

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	state := s.state.Load()

	if state != nil && state.accessLog != nil {
		state.accessLog.Close()
	}

	return err
}

func (s *Server) GetVhostConfig() *dto.VirtualHostConfig {
	state := s.state.Load()

	if state == nil {
		return nil
	}

	vhostConfig := state.vhostConfig

	return &vhostConfig
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	state := s.state.Load()

	if state == nil {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)

		return
	}

	state.handler.ServeHTTP(w, r)
}

func (s *Server) loadState() (*vhostState, error) {
	vhostConfig, err := s.loader.Load(s.ConfPath)

	if err != nil {
		return nil, err
	}

	if err = vhost.ValidateRecord(*vhostConfig); err != nil {
		return nil, err
	}

	if err = vhost.ValidateEnvironment(*vhostConfig); err != nil {
		return nil, err
	}

	certificate, err := tls.LoadX509KeyPair(vhostConfig.CertificatePath, vhostConfig.CertificateKeyPath)

	if err != nil {
		return nil, fmt.Errorf("could not load certificate pair: %v", err)
	}

	accessLog, err := os.OpenFile(vhostConfig.AccessLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)

	if err != nil {
		return nil, fmt.Errorf("could not open access log %s: %v", vhostConfig.AccessLogPath, err)
	}

	errorLogger, err := logger.NewFileLogger(vhostConfig.ErrorLogPath, false)

	if err != nil {
		accessLog.Close()

		return nil, fmt.Errorf("could not open error log %s: %v", vhostConfig.ErrorLogPath, err)
	}

	staticHandler := &StaticHandler{
		Root:           vhostConfig.DocumentRoot,
		FollowSymlinks: vhostConfig.FollowSymlinks,
		MultiViews:     vhostConfig.MultiViews,
		Logger:         errorLogger,
	}

	var handler http.Handler = staticHandler

	if vhostConfig.ServerSignature {
		handler = signatureHandler(handler, s.Version)
	}

	handler = CombinedLogHandler(handler, accessLog)

	return &vhostState{
		vhostConfig: *vhostConfig,
		certificate: certificate,
		handler:     handler,
		accessLog:   accessLog,
	}, nil
}

func signatureHandler(next http.Handler, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", "vhostd/"+version)
		next.ServeHTTP(w, r)
	})
}

func listenAddr(vhostConfig dto.VirtualHostConfig) string {
	host := vhostConfig.ListenHost

	// "*" binds all interfaces
	if host == "*" {
		host = ""
	}

	return net.JoinHostPort(host, vhostConfig.ListenPort)
}
