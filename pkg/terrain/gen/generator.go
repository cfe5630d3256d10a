// Package gen implements the procedural terrain generator: a pure function
// from (world seed, chunk coordinate) to a populated block array. The same
// seed and coordinates always yield byte-identical output, independent of
// call order, machine, or process.
package gen

import (
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
)

// Seed offsets for the nine noise channels. Each channel gets its own
// permutation table so no two channels share a phase relationship.
const (
	offsetContinental = 100
	offsetElevation   = 200
	offsetDetail      = 300
	offsetCave        = 400
	offsetOre         = 500
	offsetTree        = 600
	offsetDecoration  = 700
	offsetTemperature = 800
	offsetMoisture    = 900
)

// Generator produces chunk block arrays deterministically from a world seed.
// It holds no mutable state after construction and is safe to call
// concurrently for different chunk coordinates.
type Generator struct {
	seed int32

	continental *NoiseGenerator
	elevation   *NoiseGenerator
	detail      *NoiseGenerator
	cave        *NoiseGenerator
	ore         *NoiseGenerator
	tree        *NoiseGenerator
	decoration  *NoiseGenerator
	temperature *NoiseGenerator
	moisture    *NoiseGenerator
}

// NewGenerator creates a Generator from a 32-bit world seed, allocating the
// nine independent noise channels. No I/O is performed.
func NewGenerator(seed int32) *Generator {
	s := int64(seed)
	return &Generator{
		seed:        seed,
		continental: NewNoiseGenerator(s + offsetContinental),
		elevation:   NewNoiseGenerator(s + offsetElevation),
		detail:      NewNoiseGenerator(s + offsetDetail),
		cave:        NewNoiseGenerator(s + offsetCave),
		ore:         NewNoiseGenerator(s + offsetOre),
		tree:        NewNoiseGenerator(s + offsetTree),
		decoration:  NewNoiseGenerator(s + offsetDecoration),
		temperature: NewNoiseGenerator(s + offsetTemperature),
		moisture:    NewNoiseGenerator(s + offsetMoisture),
	}
}

// Seed returns the world seed the generator was constructed from.
func (g *Generator) Seed() int32 {
	return g.seed
}

// chunkMaps are the per-call column caches: surface heights and biomes,
// computed once during the fill pass and consulted by the vegetation and
// decoration passes. Discarded when the chunk finishes generating.
type chunkMaps struct {
	heights [terrain.SizeX][terrain.SizeZ]int
	biomes  [terrain.SizeX][terrain.SizeZ]Biome
}

// GenerateChunk generates the block array for the chunk at (cx, cz).
// The returned slice has length terrain.ChunkVolume and is owned by the
// caller. Three passes run strictly in order: column fill, vegetation,
// decoration; the later passes read what the earlier passes wrote.
func (g *Generator) GenerateChunk(cx, cz int) []byte {
	blocks := make([]byte, terrain.ChunkVolume)
	maps := &chunkMaps{}

	for x := 0; x < terrain.SizeX; x++ {
		for z := 0; z < terrain.SizeZ; z++ {
			wx := cx*terrain.SizeX + x
			wz := cz*terrain.SizeZ + z

			biome := g.BiomeAt(wx, wz)
			height := g.heightFor(wx, wz, biome)
			maps.biomes[x][z] = biome
			maps.heights[x][z] = height

			g.fillColumn(blocks, x, z, wx, wz, height, biome)
		}
	}

	g.placeVegetation(blocks, maps, cx, cz)
	g.placeDecorations(blocks, maps, cx, cz)

	return blocks
}

// HeightAt returns the surface height of the column at world coordinates
// (x, z) without generating a chunk. Sampling uses world coordinates, so
// the height field is continuous across chunk boundaries.
func (g *Generator) HeightAt(x, z int) int {
	return g.heightFor(x, z, g.BiomeAt(x, z))
}

// Height field noise parameters. The continental term gives broad
// landmass/ocean structure in [20, 50]; the elevation term adds 4-octave
// relief scaled by the biome's height modifier; the detail term adds
// small-scale roughness.
const (
	continentalFrequency = 1.0 / 512.0
	continentalBase      = 35.0
	continentalAmplitude = 15.0

	elevationFrequency = 1.0 / 128.0
	elevationAmplitude = 15.0
	elevationOctaves   = 4

	detailFrequency = 1.0 / 32.0
	detailAmplitude = 1.5
	detailOctaves   = 2

	lacunarity  = 2.0
	persistence = 0.5
)

func (g *Generator) heightFor(x, z int, biome Biome) int {
	fx, fz := float64(x), float64(z)

	base := continentalBase + g.continental.Sample2D(fx, fz, continentalFrequency, continentalAmplitude)
	relief := g.elevation.Octave2D(fx, fz, elevationFrequency, elevationAmplitude, elevationOctaves, lacunarity, persistence)
	rough := g.detail.Octave2D(fx, fz, detailFrequency, detailAmplitude, detailOctaves, lacunarity, persistence)

	h := int(base + relief*biome.Info().HeightMod + rough)
	if h < 1 {
		h = 1
	}
	if h > terrain.SizeY-2 {
		h = terrain.SizeY - 2
	}
	return h
}

// blockAt reads a cell, returning Air for out-of-range coordinates.
func blockAt(blocks []byte, x, y, z int) terrain.Block {
	if !terrain.InBounds(x, y, z) {
		return terrain.Air
	}
	return terrain.Block(blocks[terrain.Index(x, y, z)])
}

// setBlock writes a cell unconditionally. Out-of-range writes are silently
// clipped; a canopy reaching past the chunk edge is truncated, never an error.
func setBlock(blocks []byte, x, y, z int, b terrain.Block) {
	if !terrain.InBounds(x, y, z) {
		return
	}
	blocks[terrain.Index(x, y, z)] = byte(b)
}

// setIfAir writes a cell only when it currently holds air.
func setIfAir(blocks []byte, x, y, z int, b terrain.Block) {
	if !terrain.InBounds(x, y, z) {
		return
	}
	i := terrain.Index(x, y, z)
	if terrain.Block(blocks[i]) == terrain.Air {
		blocks[i] = byte(b)
	}
}
