package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/internal/server"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/internal/server/config"
)

func main() {
	cfg := config.DefaultConfig()

	var seed int
	flag.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "listen address")
	flag.IntVar(&seed, "seed", int(cfg.Seed), "world seed")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory for the chunk database")
	flag.IntVar(&cfg.PregenRadius, "pregen-radius", cfg.PregenRadius, "pregenerate chunks within this radius at startup")
	flag.IntVar(&cfg.PregenWorkers, "pregen-workers", cfg.PregenWorkers, "pregeneration worker count")
	configPath := flag.String("config", "", "path to YAML config file (default <data-dir>/config.yaml)")
	flag.Parse()
	cfg.Seed = int32(seed)

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	path := *configPath
	if path == "" {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	fromFile := config.DefaultConfig()
	if err := config.Load(path, fromFile); err != nil {
		log.Error("load config", "path", path, "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("create server", "error", err)
		os.Exit(1)
	}
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
