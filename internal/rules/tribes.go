package rules

// TribeKind is a playable faction template: a stable bonus/identity package
// distinct from the runtime per-game tribe id.
type TribeKind string

const (
	TribeValdari  TribeKind = "valdari"  // Traders
	TribeKorevash TribeKind = "korevash" // Warbands
	TribeSylthien TribeKind = "sylthien" // Scholars
	TribeMorugai  TribeKind = "morugai"  // Builders
)

// UnitClass groups units for tribe production bonuses.
type UnitClass uint8

const (
	ClassCivilian UnitClass = iota
	ClassMelee
	ClassRanged
	ClassNaval
)

// Tribe is a faction template with its fixed bonuses and settlement names.
type Tribe struct {
	Kind TribeKind
	Name string

	// TradeCapacityBonus is a flat addition to trade-route capacity.
	TradeCapacityBonus int

	// ProductionBonus is the speed multiplier delta applied when producing
	// units of BonusClass (0.25 = 25% faster).
	ProductionBonus float64
	BonusClass      UnitClass

	// SettlementNames is the ordered founding name list; once exhausted a
	// generic fallback pool takes over.
	SettlementNames []string
}

var defaultTribes = []Tribe{
	{
		Kind:               TribeValdari,
		Name:               "Valdari",
		TradeCapacityBonus: 1,
		SettlementNames:    []string{"Veladon", "Maristra", "Corvayne", "Thalvek", "Ostrava"},
	},
	{
		Kind:            TribeKorevash,
		Name:            "Korevash",
		ProductionBonus: 0.25,
		BonusClass:      ClassMelee,
		SettlementNames: []string{"Khargad", "Urzhul", "Drakmor", "Vorgath", "Skelm"},
	},
	{
		Kind:            TribeSylthien,
		Name:            "Sylthien",
		SettlementNames: []string{"Aelwyn", "Sileth", "Myrradel", "Elunara", "Caelis"},
	},
	{
		Kind:            TribeMorugai,
		Name:            "Morugai",
		ProductionBonus: 0.2,
		BonusClass:      ClassCivilian,
		SettlementNames: []string{"Grondhal", "Barukh", "Tormund", "Hestvik", "Olgruth"},
	},
}

// fallbackSettlementNames is the shared generic pool used once a tribe's own
// name list runs out.
var fallbackSettlementNames = []string{
	"Ironhaven", "Greenford", "Stonebridge", "Millgate", "Crosskeep",
	"Blackstead", "Silverdale", "Redcrest", "Highvale", "Longbrook",
	"Oakridge", "Frostwatch", "Stormreach", "Thornwell", "Eastmoor",
}
