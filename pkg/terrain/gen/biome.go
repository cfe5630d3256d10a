package gen

import (
	"github.com/LaunchDay-Studio-Inc/Linesremain-sub000/pkg/terrain"
)

// Biome is an environmental category controlling surface materials, terrain
// relief, vegetation, and resource distribution.
type Biome byte

// The nine biomes, one per cell of the temperature × moisture table.
const (
	BiomeTundra Biome = iota
	BiomeTaiga
	BiomeSnowyForest
	BiomeGrassland
	BiomeForest
	BiomeSwamp
	BiomeDesert
	BiomeSavanna
	BiomeJungle
)

// CanopyStyle selects the tree builder used for a biome.
type CanopyStyle byte

const (
	CanopyOak CanopyStyle = iota
	CanopyPine
	CanopyAcacia
	CanopyWillow
)

// BiomeInfo is the static attribute set of a biome. Attributes are lookup
// data fixed at compile time, never per-instance state.
type BiomeInfo struct {
	Name       string
	Surface    terrain.Block
	Subsurface terrain.Block

	// TreeFrequency drives tree placement density; 0 disables trees.
	TreeFrequency float64
	// HeightMod scales the elevation noise term; >1 for mountainous
	// biomes, <1 for flat ones.
	HeightMod float64
	Canopy    CanopyStyle

	// Resource abundance multipliers. Wood and Stone are consumed by the
	// harvesting systems on top of terrain; Metal, Sulfur and HighGrade
	// scale the ore thresholds during column filling.
	Wood, Stone, Metal, Sulfur, HighGrade float64
}

var biomeTable = [9]BiomeInfo{
	BiomeTundra: {
		Name: "tundra", Surface: terrain.Snow, Subsurface: terrain.Dirt,
		TreeFrequency: 0.5, HeightMod: 0.9, Canopy: CanopyPine,
		Wood: 0.6, Stone: 1.2, Metal: 1.0, Sulfur: 0.8, HighGrade: 0.8,
	},
	BiomeTaiga: {
		Name: "taiga", Surface: terrain.Grass, Subsurface: terrain.Dirt,
		TreeFrequency: 3.0, HeightMod: 1.2, Canopy: CanopyPine,
		Wood: 1.3, Stone: 1.1, Metal: 1.2, Sulfur: 0.9, HighGrade: 1.0,
	},
	BiomeSnowyForest: {
		Name: "snowy_forest", Surface: terrain.Snow, Subsurface: terrain.Dirt,
		TreeFrequency: 2.5, HeightMod: 1.0, Canopy: CanopyPine,
		Wood: 1.2, Stone: 1.0, Metal: 1.0, Sulfur: 0.8, HighGrade: 1.2,
	},
	BiomeGrassland: {
		Name: "grassland", Surface: terrain.Grass, Subsurface: terrain.Dirt,
		TreeFrequency: 0.8, HeightMod: 0.8, Canopy: CanopyOak,
		Wood: 0.8, Stone: 1.0, Metal: 1.0, Sulfur: 1.0, HighGrade: 1.0,
	},
	BiomeForest: {
		Name: "forest", Surface: terrain.Grass, Subsurface: terrain.Dirt,
		TreeFrequency: 3.5, HeightMod: 1.0, Canopy: CanopyOak,
		Wood: 1.5, Stone: 1.0, Metal: 1.0, Sulfur: 1.0, HighGrade: 1.0,
	},
	BiomeSwamp: {
		Name: "swamp", Surface: terrain.Grass, Subsurface: terrain.Dirt,
		TreeFrequency: 2.0, HeightMod: 0.6, Canopy: CanopyWillow,
		Wood: 1.1, Stone: 0.8, Metal: 0.9, Sulfur: 1.3, HighGrade: 1.0,
	},
	BiomeDesert: {
		Name: "desert", Surface: terrain.Sand, Subsurface: terrain.Sand,
		TreeFrequency: 0, HeightMod: 0.7, Canopy: CanopyAcacia,
		Wood: 0.3, Stone: 1.1, Metal: 1.1, Sulfur: 1.5, HighGrade: 1.3,
	},
	BiomeSavanna: {
		Name: "savanna", Surface: terrain.Grass, Subsurface: terrain.Dirt,
		TreeFrequency: 1.0, HeightMod: 0.9, Canopy: CanopyAcacia,
		Wood: 0.9, Stone: 1.0, Metal: 1.0, Sulfur: 1.1, HighGrade: 1.0,
	},
	BiomeJungle: {
		Name: "jungle", Surface: terrain.Grass, Subsurface: terrain.Dirt,
		TreeFrequency: 4.0, HeightMod: 1.1, Canopy: CanopyOak,
		Wood: 1.6, Stone: 0.9, Metal: 0.9, Sulfur: 1.0, HighGrade: 1.1,
	},
}

// Info returns the biome's static attributes.
func (b Biome) Info() *BiomeInfo {
	return &biomeTable[b]
}

// String returns the biome's name.
func (b Biome) String() string {
	return biomeTable[b].Name
}

// cold reports whether the biome sits in the cold temperature band.
// Cold columns freeze over instead of getting beaches.
func (b Biome) cold() bool {
	switch b {
	case BiomeTundra, BiomeTaiga, BiomeSnowyForest:
		return true
	}
	return false
}

// moistureRich reports whether the biome sits in the wet moisture band.
func (b Biome) moistureRich() bool {
	switch b {
	case BiomeSnowyForest, BiomeSwamp, BiomeJungle:
		return true
	}
	return false
}

// Classification constants. Temperature blends a low-frequency noise channel
// with a latitude gradient so poles trend cold while local variation stays
// noisy; moisture is pure noise. Both land in [0, 1] and are cut into three
// bands at 1/3 and 2/3.
const (
	climateFrequency       = 1.0 / 384.0
	temperatureNoiseWeight = 0.6
	temperatureLatWeight   = 0.4
)

// BiomeAt classifies the column at world coordinates (x, z). Classification
// is evaluated per column and never interpolated: biome boundaries are crisp
// noise-driven lines, which matches the legacy look.
func (g *Generator) BiomeAt(x, z int) Biome {
	fx, fz := float64(x), float64(z)

	lat := 1.0 - absFloat(fz)/(terrain.WorldSize/2)
	if lat < 0 {
		lat = 0
	}
	tempNoise := unit(g.temperature.Sample2D(fx, fz, climateFrequency, 1.0))
	temp := temperatureNoiseWeight*tempNoise + temperatureLatWeight*lat

	moist := unit(g.moisture.Sample2D(fx, fz, climateFrequency, 1.0))

	return classify(temp, moist)
}

// classify maps normalized temperature and moisture to a biome.
//
//	Temp\Moist      | Dry (<1/3)   | Medium (1/3-2/3) | Wet (>2/3)
//	Cold <1/3       | Tundra       | Taiga            | Snowy Forest
//	Temperate       | Grassland    | Forest           | Swamp
//	Hot >2/3        | Desert       | Savanna          | Jungle
func classify(temp, moist float64) Biome {
	const lo, hi = 1.0 / 3.0, 2.0 / 3.0
	switch {
	case temp < lo:
		switch {
		case moist < lo:
			return BiomeTundra
		case moist < hi:
			return BiomeTaiga
		default:
			return BiomeSnowyForest
		}
	case temp < hi:
		switch {
		case moist < lo:
			return BiomeGrassland
		case moist < hi:
			return BiomeForest
		default:
			return BiomeSwamp
		}
	default:
		switch {
		case moist < lo:
			return BiomeDesert
		case moist < hi:
			return BiomeSavanna
		default:
			return BiomeJungle
		}
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
