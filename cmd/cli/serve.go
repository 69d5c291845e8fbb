package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gridhost/vhostd/cmd/tcp"
	"github.com/gridhost/vhostd/cmd/tcp/handler"
	"github.com/gridhost/vhostd/cmd/tcp/router"
	"github.com/gridhost/vhostd/config"
	"github.com/gridhost/vhostd/internal/logger"
	"github.com/gridhost/vhostd/internal/procmng"
	"github.com/gridhost/vhostd/internal/runtime"
	"github.com/spf13/cobra"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply the virtual host configuration and start the HTTPS server",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.GetConfig()

		if err != nil {
			return err
		}

		log, err := logger.NewLogger(conf)

		if err != nil {
			return err
		}

		server := runtime.NewServer(getVhostConfPath(conf), log, conf.Version)

		// a missing certificate, key or document root refuses to start
		if err = server.Apply(); err != nil {
			return err
		}

		if err = procmng.WritePidFile(conf.PidFile); err != nil {
			log.Warning("could not write pid file %s: %v", conf.PidFile, err)
		}

		defer procmng.RemovePidFile(conf.PidFile)

		mx := &sync.Mutex{}
		r := router.Router{}
		r.RegisterHandler("main", handler.CreateMainHandler(conf, log, server, mx))

		controlServer := &tcp.Server{
			Port:   conf.Port,
			Router: r,
			Logger: log,
			Config: conf,
		}

		go func() {
			if err := controlServer.Serve(); err != nil {
				log.Error("control server stopped: %v", err)
			}
		}()

		defer controlServer.Close()

		serveErr := make(chan error, 1)

		go func() {
			serveErr <- server.Serve()
		}()

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

		for {
			select {
			case sig := <-signals:
				if sig == syscall.SIGHUP {
					mx.Lock()
					server.Reload()
					mx.Unlock()

					continue
				}

				log.Info("shutting down on signal %s", sig)
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				return server.Shutdown(ctx)
			case err := <-serveErr:
				return err
			}
		}
	},
}
