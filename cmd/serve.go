package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/web/server"
)

// ServeFlags are the options of the serve command
var ServeFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "port, p",
		Value: 8080,
		Usage: "port to serve on",
	},
}

const shutdownTimeout = 10 * time.Second

// Serve runs the web server until interrupted.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	webServer := server.NewServer(ctx.Int("port"), log.New("web"))

	errCh := make(chan error, 1)
	go func() {
		errCh <- webServer.Start()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case err := <-errCh:
		return err
	case <-interrupt:
		logger.Notice("shutting down web server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return webServer.Shutdown(shutdownCtx)
}
