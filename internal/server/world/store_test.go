package world

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain/gen"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestCodecRoundTrip(t *testing.T) {
	c, err := NewCodec()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	blocks := gen.NewGenerator(42).GenerateChunk(0, 0)
	frame := c.Compress(blocks)
	if len(frame) >= len(blocks) {
		t.Errorf("compression grew the chunk: %d >= %d", len(frame), len(blocks))
	}
	out, err := c.Decompress(frame)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, blocks) {
		t.Error("decompressed chunk differs from original")
	}
}

func TestStoreMemoryOnly(t *testing.T) {
	s, err := NewStore(gen.NewGenerator(7), "", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	c1, err := s.GetOrGenerate(1, -2)
	if err != nil {
		t.Fatal(err)
	}
	if len(c1) != terrain.ChunkVolume {
		t.Fatalf("chunk length = %d, want %d", len(c1), terrain.ChunkVolume)
	}
	c2, err := s.GetOrGenerate(1, -2)
	if err != nil {
		t.Fatal(err)
	}
	if &c1[0] != &c2[0] {
		t.Error("second lookup did not hit the cache")
	}
}

func TestStorePersistsAcrossInstances(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "world", "chunks.db")

	s1, err := NewStore(gen.NewGenerator(42), dbPath, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	want, err := s1.GetOrGenerate(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := NewStore(gen.NewGenerator(42), dbPath, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	got, err := s2.GetOrGenerate(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("persisted chunk differs from generated chunk")
	}
}

func TestStoreRejectsSeedMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "chunks.db")

	s1, err := NewStore(gen.NewGenerator(1), dbPath, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := s1.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(gen.NewGenerator(2), dbPath, testLogger()); err == nil {
		t.Fatal("store accepted a database generated with another seed")
	}
}

func TestPregenerate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "chunks.db")
	s, err := NewStore(gen.NewGenerator(9), dbPath, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Pregenerate(context.Background(), 1, 4); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 9 {
		t.Errorf("pregenerated %d chunks, want 9", count)
	}
}

func TestPregenerateWorkerFailure(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "chunks.db")
	s, err := NewStore(gen.NewGenerator(5), dbPath, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Break persistence underneath the workers; every chunk now errors.
	if err := s.db.Close(); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Pregenerate(context.Background(), 5, 2) }()
	select {
	case err := <-done:
		if err == nil {
			t.Error("pregeneration over a broken database returned nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Pregenerate did not return after its workers failed")
	}
}

func TestPregenerateCancelled(t *testing.T) {
	s, err := NewStore(gen.NewGenerator(9), "", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Pregenerate(ctx, 5, 2); err == nil {
		t.Error("cancelled pregeneration returned nil error")
	}
}
