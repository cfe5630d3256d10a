// Command worldgen pregenerates terrain offline and prints chunk digests.
// Digests let two generator builds prove they produce identical worlds
// before one of them ships.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/internal/server/world"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain/gen"
)

func main() {
	var (
		seed    = flag.Int("seed", 42, "world seed")
		radius  = flag.Int("radius", 0, "pregenerate chunks within this radius into the database")
		workers = flag.Int("workers", 4, "pregeneration worker count")
		dataDir = flag.String("data-dir", "./data", "data directory for the chunk database")
		digest  = flag.Bool("digest", false, "print the SHA-256 digest of chunk (cx, cz) and exit")
		cx      = flag.Int("cx", 0, "chunk X for -digest")
		cz      = flag.Int("cz", 0, "chunk Z for -digest")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *digest {
		g := gen.NewGenerator(int32(*seed))
		sum := sha256.Sum256(g.GenerateChunk(*cx, *cz))
		fmt.Printf("seed=%d chunk=(%d,%d) sha256=%s\n", *seed, *cx, *cz, hex.EncodeToString(sum[:]))
		return
	}

	if *radius <= 0 {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -radius N or -digest")
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g := gen.NewGenerator(int32(*seed))
	store, err := world.NewStore(g, filepath.Join(*dataDir, "chunks.db"), log)
	if err != nil {
		log.Error("open chunk store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Pregenerate(ctx, *radius, *workers); err != nil {
		log.Error("pregenerate", "error", err)
		os.Exit(1)
	}
}
