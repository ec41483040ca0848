package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/dwikikusuma/masala-store/internal/cache"
	"github.com/dwikikusuma/masala-store/internal/domain"
	"github.com/dwikikusuma/masala-store/internal/remote"
	"github.com/dwikikusuma/masala-store/internal/store"
	"github.com/dwikikusuma/masala-store/internal/watch"
	"github.com/dwikikusuma/masala-store/pkg/config"
	"github.com/dwikikusuma/masala-store/pkg/logger"
	"github.com/dwikikusuma/masala-store/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", slog.Any("err", err))
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	local, err := cache.New(cfg.DataDir, log)
	if err != nil {
		log.Error("cache init failed", slog.Any("err", err))
		os.Exit(1)
	}

	client := remote.NewClient(cfg.RemoteURL, log)
	st := store.New(local, client, log, store.Options{PollEvery: cfg.PollInterval})

	observer, err := watch.New(local.Dir(), domain.KnownCollections(), st, log)
	if err != nil {
		log.Error("observer init failed", slog.Any("err", err))
		os.Exit(1)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		st.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		observer.Run(ctx)
	}()

	log.Info("sync engine running",
		slog.String("remote", cfg.RemoteURL),
		slog.String("data_dir", cfg.DataDir),
		slog.Duration("poll_every", cfg.PollInterval),
		slog.Int("products", len(st.Products())),
	)

	<-ctx.Done()
	log.Info("shutdown requested")

	wg.Wait()
	log.Info("bye")
}
