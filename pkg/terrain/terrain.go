// Package terrain holds the chunk geometry constants and block identifiers
// shared by the generator and every collaborator that consumes its output.
// Two generator instances produce compatible chunks only if these constants
// match exactly, since they participate in noise frequencies and thresholds.
package terrain

// Chunk dimensions in blocks.
const (
	SizeX = 16
	SizeY = 128
	SizeZ = 16

	// ChunkVolume is the length of a chunk's block array.
	ChunkVolume = SizeX * SizeY * SizeZ
)

// SeaLevel is the water surface height. Columns below it are flooded.
const SeaLevel = 32

// WorldSize is the world edge length in columns; the latitude gradient of
// the biome classifier runs from the map center to ±WorldSize/2.
const WorldSize = 4096

// Block is a single voxel material identifier.
type Block byte

// Block materials.
const (
	Air Block = iota
	Bedrock
	Stone
	Dirt
	Grass
	Sand
	Snow
	Ice
	Water
	MetalOre
	SulfurOre
	HighGradeOre
	Log
	Leaves
	TallGrass
	Mushroom
	Cactus
	DeadBrush
)

// Index maps local chunk coordinates to the block array offset.
// Linearization order is (x, y, z): x outermost, z innermost.
func Index(x, y, z int) int {
	return (x*SizeY+y)*SizeZ + z
}

// InBounds reports whether the local coordinates address a cell of the chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < SizeX && y >= 0 && y < SizeY && z >= 0 && z < SizeZ
}
