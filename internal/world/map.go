package world

import "fmt"

// Map holds the complete hex grid. The engine treats it as immutable terrain
// data; all mutable overlays (ownership, improvements) live in the game state.
type Map struct {
	Tiles  map[HexCoord]*Tile `json:"-"` // All tiles keyed by coordinate
	Radius int                `json:"radius"`
}

// NewMap creates an empty map with the given radius.
// A hex grid of radius R contains tiles where max(|q|, |r|, |s|) <= R.
func NewMap(radius int) *Map {
	return &Map{
		Tiles:  make(map[HexCoord]*Tile),
		Radius: radius,
	}
}

// Get returns the tile at the given coordinate, or nil if out of bounds.
func (m *Map) Get(coord HexCoord) *Tile {
	return m.Tiles[coord]
}

// Set places a tile at its coordinate.
func (m *Map) Set(tile *Tile) {
	m.Tiles[tile.Coord] = tile
}

// TileCount returns the total number of tiles in the map.
func (m *Map) TileCount() int {
	return len(m.Tiles)
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, tiles=%d)", m.Radius, m.TileCount())
}
