// Map generation using layered simplex noise. Generates elevation and
// moisture fields, then derives terrain and scatters luxury resources.
package world

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds map generation parameters.
type GenConfig struct {
	Radius      int     // Hex grid radius (~16 for ~800 tiles)
	Seed        int64   // Random seed
	SeaLevel    float64 // Elevation threshold for ocean (0.0–1.0)
	MountainLvl float64 // Elevation threshold for mountains (0.0–1.0)
	LuxuryRate  float64 // Probability a land tile carries a luxury
}

// DefaultGenConfig returns a reasonable starting configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:      16,
		Seed:        1,
		SeaLevel:    0.28,
		MountainLvl: 0.74,
		LuxuryRate:  0.06,
	}
}

// SmallTestConfig returns a tiny map for rapid iteration and tests.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Radius:      6,
		Seed:        42,
		SeaLevel:    0.25,
		MountainLvl: 0.78,
		LuxuryRate:  0.10,
	}
}

// Generate creates a complete map with terrain and luxuries. Fully
// deterministic for a given config.
func Generate(cfg GenConfig) *Map {
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	moistNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	rng := rand.New(rand.NewSource(cfg.Seed + 2))

	m := NewMap(cfg.Radius)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if Distance(HexCoord{}, coord) > cfg.Radius {
				continue
			}

			// Hex axial → cartesian for noise sampling.
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.09, 0.5)
			moist := octaveNoise(moistNoise, x, y, 3, 0.07, 0.5)

			// Continental shaping: push edges under water.
			distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
			falloff := 1.0 - math.Pow(distFromCenter, 3.0)
			if falloff < 0 {
				falloff = 0
			}
			elev *= falloff

			tile := &Tile{
				Coord:     coord,
				Terrain:   deriveTerrain(elev, moist, cfg),
				Elevation: elev,
				Moisture:  moist,
			}
			if tile.Claimable() && rng.Float64() < cfg.LuxuryRate {
				tile.Luxury = Luxury(1 + rng.Intn(5))
			}
			m.Set(tile)
		}
	}

	markCoast(m)
	return m
}

func deriveTerrain(elev, moist float64, cfg GenConfig) Terrain {
	switch {
	case elev < cfg.SeaLevel:
		return TerrainOcean
	case elev > cfg.MountainLvl:
		return TerrainMountain
	case elev > cfg.MountainLvl-0.12:
		return TerrainHills
	case moist < 0.25:
		return TerrainDesert
	case moist > 0.65:
		return TerrainForest
	case moist > 0.45:
		return TerrainGrassland
	default:
		return TerrainPlains
	}
}

// markCoast converts ocean tiles adjacent to land into coast.
func markCoast(m *Map) {
	for _, tile := range m.Tiles {
		if tile.Terrain != TerrainOcean {
			continue
		}
		for _, n := range tile.Coord.Neighbors() {
			nb := m.Get(n)
			if nb != nil && !nb.IsWater() {
				tile.Terrain = TerrainCoast
				break
			}
		}
	}
}

// octaveNoise samples multi-octave noise normalized to [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}
