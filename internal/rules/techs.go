// Package rules provides the static definition tables the engine consumes:
// techs, tribes, buildings, units, policies. The engine only ever reads these
// through a Catalog, so alternate rulesets can be swapped in for tests.
package rules

// TechID identifies a technology.
type TechID string

const (
	TechAgriculture TechID = "agriculture"
	TechMasonry     TechID = "masonry"
	TechTrade       TechID = "trade" // Unlocks trade routes
	TechCurrency    TechID = "currency"
	TechNavigation  TechID = "navigation"
	TechBronze      TechID = "bronze_working"
	TechWriting     TechID = "writing"
	TechWheel       TechID = "wheel"
)

// Tech is a researchable technology.
type Tech struct {
	ID       TechID
	Name     string
	Cost     int // Research points to complete
	Prereqs  []TechID
	Capacity int // Trade-route capacity granted (+1 for the three trade techs)
}

// defaultTechs is the base ruleset tech table. Three techs each grant +1
// trade-route capacity; TechTrade is additionally the unlock gate.
var defaultTechs = []Tech{
	{ID: TechAgriculture, Name: "Agriculture", Cost: 8},
	{ID: TechMasonry, Name: "Masonry", Cost: 10, Prereqs: []TechID{TechAgriculture}},
	{ID: TechTrade, Name: "Trade", Cost: 12, Capacity: 1},
	{ID: TechCurrency, Name: "Currency", Cost: 18, Prereqs: []TechID{TechTrade}, Capacity: 1},
	{ID: TechNavigation, Name: "Navigation", Cost: 22, Prereqs: []TechID{TechTrade}, Capacity: 1},
	{ID: TechBronze, Name: "Bronze Working", Cost: 14, Prereqs: []TechID{TechMasonry}},
	{ID: TechWriting, Name: "Writing", Cost: 12, Prereqs: []TechID{TechAgriculture}},
	{ID: TechWheel, Name: "Wheel", Cost: 14},
}
