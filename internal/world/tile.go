package world

import "github.com/talgya/hexreign/internal/yield"

// Terrain types for hex tiles.
type Terrain uint8

const (
	TerrainPlains    Terrain = iota // Balanced growth and production
	TerrainGrassland                // High growth
	TerrainForest                   // Timber production
	TerrainHills                    // Production, defensive ground
	TerrainDesert                   // Sparse, occasional luxuries
	TerrainMountain                 // Impassable, never claimed
	TerrainCoast                    // Gold and growth from the sea
	TerrainOcean                    // Impassable water
)

// Luxury enumerates luxury resources that can spawn on land tiles.
// An improved luxury tile adds trade-route gold for its owner.
type Luxury uint8

const (
	LuxuryNone Luxury = iota
	LuxurySilk
	LuxuryGems
	LuxurySpices
	LuxuryIvory
	LuxuryWine
)

// Tile is a single hex on the world map. Tiles are static terrain data;
// ownership and improvements live in the game state snapshot.
type Tile struct {
	Coord   HexCoord `json:"coord"`
	Terrain Terrain  `json:"terrain"`
	Luxury  Luxury   `json:"luxury"`

	// Elevation and moisture set during generation.
	Elevation float64 `json:"elevation"`
	Moisture  float64 `json:"moisture"`
}

// IsWater reports whether the tile is coast or ocean.
func (t *Tile) IsWater() bool {
	return t.Terrain == TerrainCoast || t.Terrain == TerrainOcean
}

// IsMountain reports whether the tile is impassable mountain.
func (t *Tile) IsMountain() bool {
	return t.Terrain == TerrainMountain
}

// Claimable reports whether a settlement border can take this tile.
func (t *Tile) Claimable() bool {
	return !t.IsWater() && !t.IsMountain()
}

// terrainYields maps terrain to its per-turn contribution when claimed by a
// settlement's borders.
var terrainYields = map[Terrain]yield.Yield{
	TerrainPlains:    {Growth: 2, Production: 1},
	TerrainGrassland: {Growth: 2, Gold: 1},
	TerrainForest:    {Production: 1, Growth: 1},
	TerrainHills:     {Production: 2},
	TerrainDesert:    {Gold: 1},
	TerrainMountain:  {},
	TerrainCoast:     {Gold: 2, Growth: 1},
	TerrainOcean:     {},
}

// Yields returns the per-turn yield a claimed tile contributes to its owner.
func (t *Tile) Yields() yield.Yield {
	return terrainYields[t.Terrain]
}

// TerrainName returns a human-readable terrain name.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainPlains:
		return "plains"
	case TerrainGrassland:
		return "grassland"
	case TerrainForest:
		return "forest"
	case TerrainHills:
		return "hills"
	case TerrainDesert:
		return "desert"
	case TerrainMountain:
		return "mountain"
	case TerrainCoast:
		return "coast"
	case TerrainOcean:
		return "ocean"
	}
	return "unknown"
}
