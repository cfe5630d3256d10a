package gen

import (
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
)

// Vegetation parameters. Interior columns only: the margin keeps every
// canopy inside the chunk so no pass ever needs neighbor-chunk writes.
// Placement and shape variation come from two samples of the tree channel
// at unrelated frequencies.
const (
	treeMargin = 3

	treePlacementFrequency = 0.7
	treeVariationFrequency = 0.313

	// Placement bar: a column plants a tree when the placement sample
	// exceeds 1 - frequency*treeFrequencyStep.
	treeFrequencyStep = 0.15

	// Columns this close to the chunk ceiling never grow trees; the
	// tallest canopy needs 14 cells of headroom.
	treeCeilingMargin = 15
)

// placeVegetation runs the tree pass over the interior columns of the chunk,
// consulting the height and biome maps built by the fill pass.
func (g *Generator) placeVegetation(blocks []byte, maps *chunkMaps, cx, cz int) {
	for x := treeMargin; x < terrain.SizeX-treeMargin; x++ {
		for z := treeMargin; z < terrain.SizeZ-treeMargin; z++ {
			height := maps.heights[x][z]
			if height < terrain.SeaLevel || height > terrain.SizeY-treeCeilingMargin {
				continue
			}
			biome := maps.biomes[x][z]
			freq := biome.Info().TreeFrequency
			if freq == 0 {
				continue
			}

			wx := cx*terrain.SizeX + x
			wz := cz*terrain.SizeZ + z
			p := unit(g.tree.Sample2D(float64(wx), float64(wz), treePlacementFrequency, 1.0))
			if p <= 1.0-freq*treeFrequencyStep {
				continue
			}

			// Trees take root on soil, never on sand, ice, or water.
			switch blockAt(blocks, x, height, z) {
			case terrain.Sand, terrain.Ice, terrain.Water:
				continue
			}

			variation := unit(g.tree.Sample2D(float64(wx), float64(wz), treeVariationFrequency, 1.0))
			g.buildTree(blocks, x, height+1, z, biome.Info().Canopy, variation)
		}
	}
}

// buildTree dispatches to the biome's canopy builder. base is the y of the
// lowest trunk cell.
func (g *Generator) buildTree(blocks []byte, x, base, z int, style CanopyStyle, variation float64) {
	switch style {
	case CanopyPine:
		buildPine(blocks, x, base, z, variation)
	case CanopyAcacia:
		buildAcacia(blocks, x, base, z, variation)
	case CanopyWillow:
		buildWillow(blocks, x, base, z, variation)
	default:
		buildOak(blocks, x, base, z, variation)
	}
}

// buildOak grows a trunk of height 5-7 with a spherical leaf cluster of
// radius 2 centered one cell above the trunk top.
func buildOak(blocks []byte, x, base, z int, variation float64) {
	trunk := 5 + vstep(variation, 3)
	placeTrunk(blocks, x, base, z, trunk)

	cy := base + trunk
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if dx*dx+dy*dy+dz*dz > 5 {
					continue
				}
				setIfAir(blocks, x+dx, cy+dy, z+dz, terrain.Leaves)
			}
		}
	}
}

// buildPine grows a trunk of height 7-9 with four tapering square leaf
// layers (radii 3, 2, 2, 1) near the top and a single-cell tip. Layer
// corners are omitted for a conical silhouette.
func buildPine(blocks []byte, x, base, z int, variation float64) {
	trunk := 7 + vstep(variation, 3)
	placeTrunk(blocks, x, base, z, trunk)

	top := base + trunk - 1
	radii := [4]int{3, 2, 2, 1}
	for i, r := range radii {
		y := top - 3 + i
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				if dx == 0 && dz == 0 {
					continue
				}
				if abs(dx) == r && abs(dz) == r {
					continue
				}
				setIfAir(blocks, x+dx, y, z+dz, terrain.Leaves)
			}
		}
	}
	setIfAir(blocks, x, top+1, z, terrain.Leaves)
}

// buildAcacia grows a trunk of height 7-9 topped by a flat two-layer disc
// canopy of radius 3 with a circular mask.
func buildAcacia(blocks []byte, x, base, z int, variation float64) {
	trunk := 7 + vstep(variation, 3)
	placeTrunk(blocks, x, base, z, trunk)

	top := base + trunk - 1
	for dy := 0; dy <= 1; dy++ {
		for dx := -3; dx <= 3; dx++ {
			for dz := -3; dz <= 3; dz++ {
				if dx*dx+dz*dz > 9 {
					continue
				}
				setIfAir(blocks, x+dx, top+dy, z+dz, terrain.Leaves)
			}
		}
	}
}

// buildWillow grows a short trunk of height 3-5 with a wide spherical
// canopy of radius 3 and hanging leaf drapes of length 2-3 grown downward
// from the canopy's outer ring.
func buildWillow(blocks []byte, x, base, z int, variation float64) {
	trunk := 3 + vstep(variation, 3)
	placeTrunk(blocks, x, base, z, trunk)

	cy := base + trunk
	for dy := -3; dy <= 3; dy++ {
		for dx := -3; dx <= 3; dx++ {
			for dz := -3; dz <= 3; dz++ {
				if dx*dx+dy*dy+dz*dz > 10 {
					continue
				}
				setIfAir(blocks, x+dx, cy+dy, z+dz, terrain.Leaves)
			}
		}
	}

	// Drapes hang from the ring cells of the canopy's middle layer.
	for dx := -3; dx <= 3; dx++ {
		for dz := -3; dz <= 3; dz++ {
			d2 := dx*dx + dz*dz
			if d2 < 8 || d2 > 10 {
				continue
			}
			length := 2 + (abs(dx)+abs(dz))%2
			for k := 1; k <= length; k++ {
				setIfAir(blocks, x+dx, cy-k, z+dz, terrain.Leaves)
			}
		}
	}
}

// placeTrunk writes the trunk column. Trunk cells replace whatever is
// present along the vertical line.
func placeTrunk(blocks []byte, x, base, z, height int) {
	for y := base; y < base+height; y++ {
		setBlock(blocks, x, y, z, terrain.Log)
	}
}

// vstep maps a variation value in [0, 1] onto {0, ..., n-1}.
func vstep(v float64, n int) int {
	i := int(v * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
