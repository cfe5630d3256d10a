package gen

import (
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
)

// Decoration thresholds on the [0, 1]-normalized decoration channel.
// All decoration writes are single-cell and re-check the target before
// writing, so repeating the pass is a no-op.
const (
	decorationFrequency = 0.9

	tallGrassThreshold = 0.85
	mushroomThreshold  = 0.03

	cactusThreshold     = 0.92
	cactusTallThreshold = 0.96
	deadBrushThreshold  = 0.85

	// Dead brush on sand outside the hot/dry biomes is rare.
	strayBrushThreshold = 0.97
)

// placeDecorations runs the surface decoration pass: small features placed
// on columns whose surface is exposed to open air directly above it.
func (g *Generator) placeDecorations(blocks []byte, maps *chunkMaps, cx, cz int) {
	for x := 0; x < terrain.SizeX; x++ {
		for z := 0; z < terrain.SizeZ; z++ {
			height := maps.heights[x][z]
			if height+1 >= terrain.SizeY {
				continue
			}
			// A tree trunk or water column above the surface blocks
			// decoration.
			if blockAt(blocks, x, height+1, z) != terrain.Air {
				continue
			}

			wx := cx*terrain.SizeX + x
			wz := cz*terrain.SizeZ + z
			d := unit(g.decoration.Sample2D(float64(wx), float64(wz), decorationFrequency, 1.0))
			biome := maps.biomes[x][z]

			switch blockAt(blocks, x, height, z) {
			case terrain.Grass:
				if d > tallGrassThreshold {
					setIfAir(blocks, x, height+1, z, terrain.TallGrass)
				} else if d < mushroomThreshold && biome.moistureRich() {
					setIfAir(blocks, x, height+1, z, terrain.Mushroom)
				}

			case terrain.Sand:
				if biome == BiomeDesert {
					if d > cactusThreshold {
						g.placeCactus(blocks, x, height, z, d)
					} else if d > deadBrushThreshold {
						setIfAir(blocks, x, height+1, z, terrain.DeadBrush)
					}
				} else if d > strayBrushThreshold {
					setIfAir(blocks, x, height+1, z, terrain.DeadBrush)
				}
			}
		}
	}
}

// placeCactus grows a cactus of height 2-3 on a desert sand surface. Cells
// above the base are only written into existing air.
func (g *Generator) placeCactus(blocks []byte, x, surface, z int, d float64) {
	height := 2
	if d > cactusTallThreshold {
		height = 3
	}
	for dy := 1; dy <= height; dy++ {
		setIfAir(blocks, x, surface+dy, z, terrain.Cactus)
	}
}
