package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"golang.org/x/sync/errgroup"

	"cloud-storage-bot/internal/bootstrap"
	"cloud-storage-bot/internal/shared/config"
	"cloud-storage-bot/internal/shared/server"
	"cloud-storage-bot/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	srv := &http.Server{
		Addr:    server.Addr(cfg.Port),
		Handler: app.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		telemetry.Info("http.listen", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	botDone := make(chan struct{})
	g.Go(func() error {
		defer close(botDone)
		return app.Bot.Run(gctx, app.Telegram)
	})
	go func() {
		// A component failing on its own takes the process down.
		if err := g.Wait(); err != nil {
			telemetry.Error("app.failed", map[string]any{"err": err})
			app.Close()
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				return srv.Shutdown(ctx)
			},
			"telegram-bot": func(ctx context.Context) error {
				cancel()
				select {
				case <-botDone:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
	)

	exitCode := <-wait
	app.Close()
	telemetry.Info("app.exit", map[string]any{"code": exitCode})
	os.Exit(exitCode)
}
