package tcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gridhost/vhostd/cmd/tcp/contract"
	"github.com/gridhost/vhostd/cmd/tcp/router"
	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/logger"
)

// Server is the local control interface of the daemon: JSON requests over
// TCP, authenticated with the token from the daemon configuration.
type Server struct {
	Port   int
	Router router.Router
	Logger logger.Logger
	Config *config.Config

	mx       sync.Mutex
	listener net.Listener
}

func (s *Server) Serve() error {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.Port))

	if err != nil {
		return fmt.Errorf("could not start control server: %v", err)
	}

	s.mx.Lock()
	s.listener = listener
	s.mx.Unlock()

	s.Logger.Info("control server is listening on port %d", s.Port)

	for {
		conn, err := listener.Accept()

		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			s.Logger.Error("could not accept connection: %v", err)

			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) Close() error {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Close()
}

func (s *Server) Addr() net.Addr {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	var request router.Request
	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	if err := decoder.Decode(&request); err != nil {
		s.writeError(encoder, fmt.Sprintf("invalid request: %v", err))

		return
	}

	if s.Config.Token == "" || request.Token != s.Config.Token {
		s.Logger.Warning("rejected control request with invalid token from %s", conn.RemoteAddr())
		s.writeError(encoder, "invalid token")

		return
	}

	handler, err := s.Router.GetHandler(request.GetModule())

	if err != nil {
		s.writeError(encoder, err.Error())

		return
	}

	data, err := handler.Handle(request)

	if err != nil {
		s.writeError(encoder, err.Error())

		return
	}

	response := contract.Response{
		Status: contract.StatusOk,
		Data:   data,
	}

	if err = encoder.Encode(response); err != nil {
		s.Logger.Error("could not write response: %v", err)
	}
}

func (s *Server) writeError(encoder *json.Encoder, message string) {
	response := contract.Response{
		Status: contract.StatusError,
		Error:  message,
	}

	if err := encoder.Encode(response); err != nil {
		s.Logger.Error("could not write error response: %v", err)
	}
}
