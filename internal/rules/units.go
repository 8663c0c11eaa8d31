package rules

// UnitID identifies a unit definition.
type UnitID string

const (
	UnitSettler  UnitID = "settler"
	UnitWorker   UnitID = "worker"
	UnitWarrior  UnitID = "warrior"
	UnitSpearman UnitID = "spearman"
	UnitArcher   UnitID = "archer"
	UnitGalley   UnitID = "galley"
)

// Unit is a trainable unit definition. Civilians have zero upkeep.
type Unit struct {
	ID       UnitID
	Name     string
	Class    UnitClass
	Cost     int // Production to complete
	Upkeep   int // Gold per turn; civilians always 0
	Moves    int
	Strength int
	Requires TechID
}

var defaultUnits = []Unit{
	{ID: UnitSettler, Name: "Settler", Class: ClassCivilian, Cost: 26, Moves: 2},
	{ID: UnitWorker, Name: "Worker", Class: ClassCivilian, Cost: 18, Moves: 2},
	{ID: UnitWarrior, Name: "Warrior", Class: ClassMelee, Cost: 16, Upkeep: 1, Moves: 2, Strength: 6},
	{ID: UnitSpearman, Name: "Spearman", Class: ClassMelee, Cost: 22, Upkeep: 1, Moves: 2, Strength: 9, Requires: TechBronze},
	{ID: UnitArcher, Name: "Archer", Class: ClassRanged, Cost: 20, Upkeep: 1, Moves: 2, Strength: 7},
	{ID: UnitGalley, Name: "Galley", Class: ClassNaval, Cost: 30, Upkeep: 2, Moves: 3, Strength: 8, Requires: TechNavigation},
}

// PolicyID identifies a social policy a player can adopt.
type PolicyID string

const (
	PolicyTradition  PolicyID = "tradition"
	PolicyExpansion  PolicyID = "expansion"
	PolicyMercantile PolicyID = "mercantile"
	PolicyMartial    PolicyID = "martial"
)

// PromotionID identifies a unit promotion choice.
type PromotionID string

const (
	PromotionShock   PromotionID = "shock"
	PromotionDrill   PromotionID = "drill"
	PromotionMedic   PromotionID = "medic"
	PromotionRanging PromotionID = "ranging"
)

// MilestoneID identifies a settlement level-up milestone choice.
type MilestoneID string

const (
	MilestoneGarrison  MilestoneID = "garrison"  // +health
	MilestoneFestival  MilestoneID = "festival"  // +culture
	MilestoneIrrigate  MilestoneID = "irrigate"  // +growth
	MilestoneStockpile MilestoneID = "stockpile" // +production carry
)

var defaultPolicies = []PolicyID{PolicyTradition, PolicyExpansion, PolicyMercantile, PolicyMartial}
var defaultPromotions = []PromotionID{PromotionShock, PromotionDrill, PromotionMedic, PromotionRanging}
var defaultMilestones = []MilestoneID{MilestoneGarrison, MilestoneFestival, MilestoneIrrigate, MilestoneStockpile}
