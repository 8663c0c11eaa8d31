package rules

import "github.com/talgya/hexreign/internal/yield"

// BuildingID identifies a building or wonder definition.
type BuildingID string

const (
	BuildingGranary     BuildingID = "granary"
	BuildingMarket      BuildingID = "market"
	BuildingLibrary     BuildingID = "library"
	BuildingShrine      BuildingID = "shrine"
	BuildingWorkshop    BuildingID = "workshop"
	BuildingWalls       BuildingID = "walls"
	WonderGrandBazaar   BuildingID = "grand_bazaar"
	WonderSunkenArchive BuildingID = "sunken_archive"
)

// Building is a constructible settlement improvement. Wonders use the same
// table with IsWonder set; a wonder can be built once per game.
type Building struct {
	ID       BuildingID
	Name     string
	Cost     int // Production to complete
	Upkeep   int // Gold per turn
	Yields   yield.Yield
	Requires TechID // Empty = always available
	IsWonder bool
}

var defaultBuildings = []Building{
	{ID: BuildingGranary, Name: "Granary", Cost: 18, Upkeep: 1, Yields: yield.Yield{Growth: 3}, Requires: TechAgriculture},
	{ID: BuildingMarket, Name: "Market", Cost: 24, Upkeep: 1, Yields: yield.Yield{Gold: 4}, Requires: TechCurrency},
	{ID: BuildingLibrary, Name: "Library", Cost: 24, Upkeep: 1, Yields: yield.Yield{Research: 3}, Requires: TechWriting},
	{ID: BuildingShrine, Name: "Shrine", Cost: 16, Upkeep: 1, Yields: yield.Yield{Culture: 2}},
	{ID: BuildingWorkshop, Name: "Workshop", Cost: 28, Upkeep: 2, Yields: yield.Yield{Production: 3}, Requires: TechBronze},
	{ID: BuildingWalls, Name: "Walls", Cost: 22, Upkeep: 1, Requires: TechMasonry},
	{ID: WonderGrandBazaar, Name: "Grand Bazaar", Cost: 60, Yields: yield.Yield{Gold: 8}, Requires: TechCurrency, IsWonder: true},
	{ID: WonderSunkenArchive, Name: "Sunken Archive", Cost: 64, Yields: yield.Yield{Research: 6}, Requires: TechWriting, IsWonder: true},
}
