package gen

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
)

var update = flag.Bool("update", false, "re-pin golden files")

func TestGenerateChunkDeterministic(t *testing.T) {
	g1 := NewGenerator(42)
	g2 := NewGenerator(42)

	for _, pos := range [][2]int{{0, 0}, {3, -7}, {-100, 250}} {
		c1 := g1.GenerateChunk(pos[0], pos[1])
		c2 := g2.GenerateChunk(pos[0], pos[1])
		if !bytes.Equal(c1, c2) {
			t.Fatalf("chunk (%d, %d) differs between identically seeded generators", pos[0], pos[1])
		}
		// Regeneration by the same instance must also be byte-identical.
		if !bytes.Equal(c1, g1.GenerateChunk(pos[0], pos[1])) {
			t.Fatalf("chunk (%d, %d) differs on regeneration", pos[0], pos[1])
		}
	}
}

func TestGenerateChunkLength(t *testing.T) {
	g := NewGenerator(1)
	c := g.GenerateChunk(0, 0)
	if len(c) != terrain.ChunkVolume {
		t.Fatalf("block array length = %d, want %d", len(c), terrain.ChunkVolume)
	}
}

func TestDifferentSeedsProduceDifferentChunks(t *testing.T) {
	c1 := NewGenerator(1).GenerateChunk(0, 0)
	c2 := NewGenerator(2).GenerateChunk(0, 0)
	if bytes.Equal(c1, c2) {
		t.Error("different seeds should produce different terrain")
	}
}

func TestBedrockAtY0(t *testing.T) {
	g := NewGenerator(12345)
	c := g.GenerateChunk(0, 0)

	for x := 0; x < terrain.SizeX; x++ {
		for z := 0; z < terrain.SizeZ; z++ {
			if b := terrain.Block(c[terrain.Index(x, 0, z)]); b != terrain.Bedrock {
				t.Errorf("block at (%d,0,%d) = %d, want bedrock", x, z, b)
			}
		}
	}
}

func TestHeightAtInRange(t *testing.T) {
	g := NewGenerator(999)
	for i := -50; i <= 50; i++ {
		h := g.HeightAt(i*31, -i*17)
		if h < 1 || h > terrain.SizeY-2 {
			t.Errorf("HeightAt(%d, %d) = %d, out of [1, %d]", i*31, -i*17, h, terrain.SizeY-2)
		}
	}
}

// vegetationBlock reports whether b is written by the vegetation or
// decoration passes.
func vegetationBlock(b terrain.Block) bool {
	switch b {
	case terrain.Log, terrain.Leaves, terrain.TallGrass, terrain.Mushroom,
		terrain.Cactus, terrain.DeadBrush:
		return true
	}
	return false
}

func TestColumnInvariants(t *testing.T) {
	g := NewGenerator(42)

	for _, pos := range [][2]int{{0, 0}, {-5, 12}, {40, -40}} {
		c := g.GenerateChunk(pos[0], pos[1])
		for x := 0; x < terrain.SizeX; x++ {
			for z := 0; z < terrain.SizeZ; z++ {
				wx := pos[0]*terrain.SizeX + x
				wz := pos[1]*terrain.SizeZ + z
				h := g.HeightAt(wx, wz)

				for y := h + 1; y < terrain.SizeY; y++ {
					b := terrain.Block(c[terrain.Index(x, y, z)])
					switch {
					case b == terrain.Air:
					case b == terrain.Water:
						if h >= terrain.SeaLevel || y > terrain.SeaLevel {
							t.Fatalf("chunk (%d,%d): water at (%d,%d,%d) above a dry column (h=%d)",
								pos[0], pos[1], x, y, z, h)
						}
					case vegetationBlock(b):
					default:
						t.Fatalf("chunk (%d,%d): block %d at (%d,%d,%d) above surface h=%d",
							pos[0], pos[1], b, x, y, z, h)
					}
				}

				// Between surface and sea level: water iff submerged, and
				// never interrupted by air.
				if h < terrain.SeaLevel {
					for y := h + 1; y <= terrain.SeaLevel; y++ {
						if b := terrain.Block(c[terrain.Index(x, y, z)]); b != terrain.Water {
							t.Fatalf("chunk (%d,%d): submerged column (%d,%d) has %d at y=%d, want water",
								pos[0], pos[1], x, z, b, y)
						}
					}
				}
			}
		}
	}
}

func TestEdgeContinuity(t *testing.T) {
	g := NewGenerator(2024)

	// The world column at the shared edge of chunks (0,0) and (1,0) must
	// resolve to the same height and biome no matter how it is reached:
	// sampling always uses world coordinates.
	for z := 0; z < terrain.SizeZ; z++ {
		wx := 1 * terrain.SizeX // first column of chunk (1, 0)
		h1 := g.HeightAt(wx, z)
		b1 := g.BiomeAt(wx, z)
		h2 := g.HeightAt(wx, z)
		b2 := g.BiomeAt(wx, z)
		if h1 != h2 || b1 != b2 {
			t.Fatalf("edge column (%d, %d) unstable: h %d/%d biome %s/%s", wx, z, h1, h2, b1, b2)
		}
	}

	// The stone profile of boundary columns must match the height field.
	for _, pos := range [][2]int{{0, 0}, {1, 0}} {
		c := g.GenerateChunk(pos[0], pos[1])
		for z := 0; z < terrain.SizeZ; z++ {
			for _, x := range []int{0, terrain.SizeX - 1} {
				wx := pos[0]*terrain.SizeX + x
				wz := pos[1]*terrain.SizeZ + z
				h := g.HeightAt(wx, wz)
				if b := terrain.Block(c[terrain.Index(x, h, z)]); b == terrain.Air || vegetationBlock(b) {
					t.Fatalf("chunk (%d,%d): no terrain surface at (%d,%d,%d), got %d",
						pos[0], pos[1], x, h, z, b)
				}
			}
		}
	}
}

func TestVegetationOnlyOverwritesAir(t *testing.T) {
	g := NewGenerator(7)

	blocks := make([]byte, terrain.ChunkVolume)
	maps := &chunkMaps{}
	for x := 0; x < terrain.SizeX; x++ {
		for z := 0; z < terrain.SizeZ; z++ {
			biome := g.BiomeAt(x, z)
			h := g.heightFor(x, z, biome)
			maps.biomes[x][z] = biome
			maps.heights[x][z] = h
			g.fillColumn(blocks, x, z, x, z, h, biome)
		}
	}

	base := append([]byte(nil), blocks...)
	g.placeVegetation(blocks, maps, 0, 0)
	for i := range blocks {
		if blocks[i] == base[i] {
			continue
		}
		switch terrain.Block(blocks[i]) {
		case terrain.Log:
			// Trunks replace anything along their vertical line.
		case terrain.Leaves:
			if terrain.Block(base[i]) != terrain.Air {
				t.Fatalf("leaf overwrote block %d at index %d", base[i], i)
			}
		default:
			t.Fatalf("vegetation pass wrote unexpected block %d at index %d", blocks[i], i)
		}
	}

	veg := append([]byte(nil), blocks...)
	g.placeDecorations(blocks, maps, 0, 0)
	for i := range blocks {
		if blocks[i] == veg[i] {
			continue
		}
		if terrain.Block(veg[i]) != terrain.Air {
			t.Fatalf("decoration overwrote block %d at index %d", veg[i], i)
		}
		if !vegetationBlock(terrain.Block(blocks[i])) {
			t.Fatalf("decoration pass wrote unexpected block %d at index %d", blocks[i], i)
		}
	}
}

func TestOreThresholdMonotonic(t *testing.T) {
	for _, base := range []float64{0.15, 0.20, 0.25} {
		prev := oreThreshold(base, 0.5)
		for _, mult := range []float64{0.8, 1.0, 1.2, 1.5, 2.0} {
			cur := oreThreshold(base, mult)
			if cur > prev {
				t.Fatalf("oreThreshold(%.2f, %.2f) = %f rose above %f", base, mult, cur, prev)
			}
			prev = cur
		}
	}
}

func TestOreAbundanceMonotonic(t *testing.T) {
	g := NewGenerator(314)

	lean := *BiomeGrassland.Info()
	rich := lean
	rich.Metal *= 1.5

	count := func(info *BiomeInfo) int {
		n := 0
		for x := 0; x < 64; x++ {
			for z := 0; z < 64; z++ {
				for y := 8; y < metalMaxY; y++ {
					if g.oreOrStone(x, y, z, info) == terrain.MetalOre {
						n++
					}
				}
			}
		}
		return n
	}

	if count(&rich) < count(&lean) {
		t.Error("raising the metal multiplier decreased metal ore frequency")
	}
}

// TestReferenceChunk pins the exact bytes of seed 42, chunk (0, 0) against
// the checked-in golden digest. Any change to noise parameters, thresholds,
// or pass ordering that alters this digest is a breaking change to world
// compatibility and needs explicit sign-off; re-pin with -update after it.
func TestReferenceChunk(t *testing.T) {
	g := NewGenerator(42)
	sum := sha256.Sum256(g.GenerateChunk(0, 0))
	digest := hex.EncodeToString(sum[:])

	golden := filepath.Join("testdata", "chunk_0_0_seed42.sha256")
	if *update {
		if err := os.WriteFile(golden, []byte(digest+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Logf("pinned reference digest %s", digest)
		return
	}
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatal(err)
	}
	if digest != strings.TrimSpace(string(want)) {
		t.Fatalf("reference chunk digest changed:\n  got  %s\n  want %s", digest, strings.TrimSpace(string(want)))
	}
}

func TestGenerateChunkConcurrent(t *testing.T) {
	g := NewGenerator(555)
	want := g.GenerateChunk(2, 3)

	done := make(chan []byte, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- g.GenerateChunk(2, 3) }()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; !bytes.Equal(got, want) {
			t.Fatal("concurrent generation produced differing chunks")
		}
	}
}
