package gen

import (
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
)

// Cave carving parameters. Columns keep a solid floor below y = 6 so caves
// never open straight onto bedrock.
const (
	caveFrequency = 1.0 / 24.0
	caveThreshold = 0.58
	caveFloorY    = 5
)

// Ore placement parameters. Checks run in descending rarity order and the
// first hit wins, so a biome with a high multiplier for a rare ore sees
// proportionally more of it without renormalizing the joint distribution.
// Each ore samples the ore channel at its own coordinate offset so the
// three patterns stay decorrelated.
const (
	oreFrequency = 1.0 / 12.0

	highGradeMaxY   = 20
	highGradeChance = 0.15
	highGradeShift  = 137.0

	sulfurMaxY   = 30
	sulfurChance = 0.20
	sulfurShift  = 61.0

	metalMaxY   = 40
	metalChance = 0.25
	metalShift  = 17.0
)

// fillColumn assigns one material per cell of the column at local (x, z),
// walking bottom to top: bedrock, the deep stone band (caves and ores),
// subsurface, surface, then water up to sea level where the column is
// submerged, air above.
func (g *Generator) fillColumn(blocks []byte, x, z, wx, wz, height int, biome Biome) {
	info := biome.Info()

	for y := 0; y < terrain.SizeY; y++ {
		var b terrain.Block
		switch {
		case y == 0:
			b = terrain.Bedrock

		case y < height-4:
			if y > caveFloorY && g.isCave(wx, y, wz) {
				b = terrain.Air
			} else {
				b = g.oreOrStone(wx, y, wz, info)
			}

		case y < height:
			b = info.Subsurface

		case y == height:
			if height < terrain.SeaLevel {
				// The surface will be submerged: beach sand, or ice
				// in the cold biomes.
				if biome.cold() {
					b = terrain.Ice
				} else {
					b = terrain.Sand
				}
			} else {
				b = info.Surface
			}

		case y <= terrain.SeaLevel && height < terrain.SeaLevel:
			b = terrain.Water

		default:
			b = terrain.Air
		}
		blocks[terrain.Index(x, y, z)] = byte(b)
	}
}

// isCave reports whether the cave channel carves the cell at world (x, y, z).
func (g *Generator) isCave(x, y, z int) bool {
	return g.cave.Sample3D(float64(x), float64(y), float64(z), caveFrequency, 1.0) > caveThreshold
}

// oreOrStone resolves a deep stone cell to an ore or plain stone.
func (g *Generator) oreOrStone(x, y, z int, info *BiomeInfo) terrain.Block {
	fx, fy, fz := float64(x), float64(y), float64(z)

	if y < highGradeMaxY {
		v := unit(g.ore.Sample3D(fx+highGradeShift, fy+highGradeShift, fz+highGradeShift, oreFrequency, 1.0))
		if v > oreThreshold(highGradeChance, info.HighGrade) {
			return terrain.HighGradeOre
		}
	}
	if y < sulfurMaxY {
		v := unit(g.ore.Sample3D(fx+sulfurShift, fy+sulfurShift, fz+sulfurShift, oreFrequency, 1.0))
		if v > oreThreshold(sulfurChance, info.Sulfur) {
			return terrain.SulfurOre
		}
	}
	if y < metalMaxY {
		v := unit(g.ore.Sample3D(fx+metalShift, fy+metalShift, fz+metalShift, oreFrequency, 1.0))
		if v > oreThreshold(metalChance, info.Metal) {
			return terrain.MetalOre
		}
	}
	return terrain.Stone
}

// oreThreshold converts a base chance and a biome abundance multiplier into
// the noise threshold a cell must exceed. Raising the multiplier lowers the
// threshold, so ore frequency never decreases as abundance rises.
func oreThreshold(baseChance, multiplier float64) float64 {
	return 1.0 - (1.0-baseChance)*multiplier
}
