// Command server serves the MADOLA web app from the directory that holds it,
// on a fixed port, for local preview.
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/f4ah6o/madola-serve/internal/config"
	"github.com/f4ah6o/madola-serve/internal/mimetypes"
	"github.com/f4ah6o/madola-serve/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, config.Default(), os.Stdout)
	stop()
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// run serves until ctx is done. It returns nil after a clean stop and an
// error if the server could not start.
func run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	_, launcher, _, _ := runtime.Caller(0)
	root, err := config.ResolveRoot(launcher)
	if err != nil {
		return err
	}

	if err := mimetypes.RegisterDefault(); err != nil {
		return err
	}

	srv, err := server.New(root, cfg)
	if err != nil {
		return err
	}
	if err := srv.Listen(); err != nil {
		return err
	}

	server.PrintBanner(stdout, srv.Root(), cfg.BrowseURL())

	if err := srv.Serve(ctx); err != nil {
		return err
	}
	server.PrintStopped(stdout)
	return nil
}
