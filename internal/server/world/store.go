// Package world owns chunk lifecycle around the pure generator: an
// in-memory cache, zstd compression, and sqlite persistence. The generator
// itself stays stateless; everything stateful lives here.
package world

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain/gen"
)

// ChunkPos identifies a chunk by its X and Z coordinates.
type ChunkPos struct{ X, Z int }

// Store caches generated chunks in memory and writes them through to a
// sqlite database. Reads fall back cache → database → generator.
type Store struct {
	gen   *gen.Generator
	codec *Codec
	log   *slog.Logger

	db *sql.DB // nil = memory-only store

	mu     sync.RWMutex
	chunks map[ChunkPos][]byte
}

// NewStore creates a Store backed by the database at dbPath. An empty
// dbPath yields a memory-only store.
func NewStore(g *gen.Generator, dbPath string, log *slog.Logger) (*Store, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}

	s := &Store{
		gen:    g,
		codec:  codec,
		log:    log,
		chunks: make(map[ChunkPos][]byte),
	}

	if dbPath != "" {
		db, err := openDB(dbPath)
		if err != nil {
			codec.Close()
			return nil, err
		}
		if err := checkSeed(db, g.Seed()); err != nil {
			codec.Close()
			_ = db.Close()
			return nil, err
		}
		s.db = db
	}
	return s, nil
}

// Close releases the database and codec.
func (s *Store) Close() error {
	s.codec.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Generator exposes the underlying generator for side queries (biome and
// height lookups) that do not need a full chunk.
func (s *Store) Generator() *gen.Generator {
	return s.gen
}

// GetOrGenerate returns the block array for the chunk at (cx, cz). The
// returned slice is shared; callers must not mutate it.
func (s *Store) GetOrGenerate(cx, cz int) ([]byte, error) {
	pos := ChunkPos{cx, cz}

	s.mu.RLock()
	if c, ok := s.chunks[pos]; ok {
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	blocks, loaded, err := s.load(pos)
	if err != nil {
		return nil, err
	}
	if !loaded {
		blocks = s.gen.GenerateChunk(cx, cz)
		if err := s.persist(pos, blocks); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	// Double-check after acquiring write lock; generation is
	// deterministic, so keeping either copy is equivalent.
	if existing, ok := s.chunks[pos]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.chunks[pos] = blocks
	s.mu.Unlock()
	return blocks, nil
}

// load reads a chunk from the database, reporting whether it was present.
func (s *Store) load(pos ChunkPos) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, nil
	}
	var frame []byte
	err := s.db.QueryRow(`SELECT blocks FROM chunks WHERE cx = ? AND cz = ?`, pos.X, pos.Z).Scan(&frame)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load chunk (%d, %d): %w", pos.X, pos.Z, err)
	}
	blocks, err := s.codec.Decompress(frame)
	if err != nil {
		return nil, false, fmt.Errorf("chunk (%d, %d): %w", pos.X, pos.Z, err)
	}
	if len(blocks) != terrain.ChunkVolume {
		return nil, false, fmt.Errorf("chunk (%d, %d): stored length %d, want %d",
			pos.X, pos.Z, len(blocks), terrain.ChunkVolume)
	}
	return blocks, true, nil
}

// persist writes a chunk through to the database.
func (s *Store) persist(pos ChunkPos, blocks []byte) error {
	if s.db == nil {
		return nil
	}
	frame := s.codec.Compress(blocks)
	_, err := s.db.Exec(`INSERT OR IGNORE INTO chunks (cx, cz, blocks) VALUES (?, ?, ?)`,
		pos.X, pos.Z, frame)
	if err != nil {
		return fmt.Errorf("persist chunk (%d, %d): %w", pos.X, pos.Z, err)
	}
	return nil
}

// Compressed returns the zstd frame for a chunk, generating it if needed.
func (s *Store) Compressed(cx, cz int) ([]byte, error) {
	blocks, err := s.GetOrGenerate(cx, cz)
	if err != nil {
		return nil, err
	}
	return s.codec.Compress(blocks), nil
}

// Pregenerate generates every chunk within the square radius around the
// origin, fanning the coordinates across workers goroutines. Chunks are
// independent, so workers need no synchronization beyond the store itself.
func (s *Store) Pregenerate(ctx context.Context, radius, workers int) error {
	if workers < 1 {
		workers = 1
	}

	coords := make(chan ChunkPos)
	errc := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range coords {
				if _, err := s.GetOrGenerate(pos.X, pos.Z); err != nil {
					select {
					case errc <- err:
					default:
					}
					return
				}
			}
		}()
	}

	// The feeder must stop when the workers do, or an error that kills
	// every worker leaves it blocked on a send nobody receives.
	dead := make(chan struct{})
	go func() {
		wg.Wait()
		close(dead)
	}()

	total := 0
feed:
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			select {
			case <-ctx.Done():
				break feed
			case <-dead:
				break feed
			case coords <- ChunkPos{cx, cz}:
				total++
			}
		}
	}
	close(coords)
	<-dead

	select {
	case err := <-errc:
		return err
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.log.Info("pregeneration complete", "chunks", total, "radius", radius, "workers", workers)
	return nil
}
