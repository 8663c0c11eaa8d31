// Package state defines the canonical game state snapshot and its entities.
// A GameState is a value: every engine transition deep-clones it and returns a
// logically new snapshot, leaving all prior snapshots valid and untouched.
package state

import (
	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/world"
)

// TribeID is the runtime identity of a seated player, assigned at game start.
// Distinct from rules.TribeKind, the faction template.
type TribeID int

// SettlementID uniquely identifies a settlement within a game.
type SettlementID uint64

// RouteID uniquely identifies a trade route within a game.
type RouteID uint64

// UnitID uniquely identifies a unit within a game.
type UnitID uint64

// Stance is the diplomatic posture between two tribes.
type Stance uint8

const (
	StanceNeutral Stance = iota
	StanceWar
	StanceHostile
	StanceFriendly
	StanceAllied
)

// TribePair is an unordered tribe pair key; always store with Lo <= Hi.
type TribePair struct {
	Lo, Hi TribeID
}

// PairOf returns the normalized pair key for two tribes.
func PairOf(a, b TribeID) TribePair {
	if a > b {
		a, b = b, a
	}
	return TribePair{Lo: a, Hi: b}
}

// GameState is the complete mutable game situation at one point in time.
// The world map itself is static terrain referenced by the snapshot; every
// mutable overlay (tile owners, improvements, fog) is owned here.
type GameState struct {
	Turn          int
	MaxTurns      int
	CurrentPlayer TribeID

	// Players in fixed rotation order; never reordered after game start.
	Players []*Player

	Settlements map[SettlementID]*Settlement

	// TradeRoutes in creation order. Routes are never removed, only
	// deactivated, so the slice doubles as route history.
	TradeRoutes []*TradeRoute

	Units map[UnitID]*Unit

	// TileOwners maps claimed tiles to the owning tribe. First claim wins;
	// ownership is never transferred by border growth.
	TileOwners map[world.HexCoord]TribeID

	// Improvements marks tiles that have been improved by a worker.
	Improvements map[world.HexCoord]bool

	// Revealed is each tribe's explored-tile set (fog of war).
	Revealed map[TribeID]map[world.HexCoord]bool

	// Stances holds diplomatic posture per unordered tribe pair.
	// Missing pairs are neutral.
	Stances map[TribePair]Stance
}

// GreatPeopleCounters are the accumulators the external great-person system
// consumes. The engine only ever increments or refreshes them.
type GreatPeopleCounters struct {
	ActiveTradeRoutes int
	GoldEarned        int
	BuildingsBuilt    int
	WondersBuilt      int
}

// Player is a seated tribe's mutable per-game data.
type Player struct {
	Tribe TribeID
	Kind  rules.TribeKind
	Name  string

	// Treasury never goes negative; economy shortfalls clamp at zero.
	Treasury int

	ResearchedTechs map[rules.TechID]bool

	// Research project in progress. Empty CurrentResearch = idle.
	CurrentResearch  rules.TechID
	ResearchProgress int

	// Culture progress toward the selected policy. Empty = idle.
	CurrentPolicy   rules.PolicyID
	CultureProgress int
	Policies        []rules.PolicyID

	GreatPeople GreatPeopleCounters

	// AvailableGreatPeople is the banked great-person count. The external
	// spawn system credits it; the use-great-person action spends it.
	AvailableGreatPeople int
}

// HasTech reports whether the player has researched the given tech.
func (p *Player) HasTech(id rules.TechID) bool {
	return p.ResearchedTechs[id]
}

// HasPolicy reports whether the player has adopted the given policy.
func (p *Player) HasPolicy(id rules.PolicyID) bool {
	for _, pol := range p.Policies {
		if pol == id {
			return true
		}
	}
	return false
}

// ProductionType discriminates entries in a settlement's production queue.
type ProductionType uint8

const (
	ProduceUnit ProductionType = iota
	ProduceBuilding
	ProduceWonder
)

// ProductionItem is one queued build order. Progress stays below Cost while
// queued; the head item additionally draws on the settlement's overflow carry.
type ProductionItem struct {
	Type     ProductionType
	UnitID   rules.UnitID     // Set when Type == ProduceUnit
	Building rules.BuildingID // Set when Type is a building or wonder
	Cost     int
	Progress int
}

// Settlement is a city-like production and population center.
type Settlement struct {
	ID       SettlementID
	Name     string
	Owner    TribeID
	Position world.HexCoord

	Population          int // >= 1
	Level               int // >= 1, derived from population breakpoints
	PopulationProgress  int
	PopulationThreshold int

	Health    int
	MaxHealth int

	// Culture accumulated toward border expansion breakpoints.
	Culture      int
	BorderRadius int

	Buildings map[rules.BuildingID]bool

	ProductionQueue   []ProductionItem
	CurrentProduction int // Overflow carry into next turn

	IsCapital bool

	// MilestonePending signals the external milestone-choice system after a
	// level increase; cleared when the choice is made.
	MilestonePending bool
	Milestones       []rules.MilestoneID
}

// TradeRoute is an economic link between two settlements.
//
// Lifecycle: FORMING (TurnsUntilActive > 0) -> ACTIVE -> BROKEN. Broken routes
// stay in the list inactive forever; there is no resurrection.
type TradeRoute struct {
	ID          RouteID
	Origin      SettlementID
	Destination SettlementID
	OwnerTribe  TribeID
	TargetTribe TribeID

	GoldPerTurn      int // >= 1 once computed
	Active           bool
	TurnsUntilActive int

	// Broken marks the terminal state. A broken route is never reactivated,
	// even if it was still forming when it broke.
	Broken bool
}

// Forming reports whether the route is still in its formation delay.
func (r *TradeRoute) Forming() bool {
	return !r.Broken && !r.Active && r.TurnsUntilActive > 0
}

// Unit is a movable piece on the map.
type Unit struct {
	ID       UnitID
	Kind     rules.UnitID
	Owner    TribeID
	Position world.HexCoord

	Health    int
	MovesLeft int

	Promotions []rules.PromotionID
}

// Player returns the player with the given tribe id, or nil.
func (s *GameState) Player(id TribeID) *Player {
	for _, p := range s.Players {
		if p.Tribe == id {
			return p
		}
	}
	return nil
}

// Settlement returns the settlement with the given id, or nil.
func (s *GameState) Settlement(id SettlementID) *Settlement {
	return s.Settlements[id]
}

// StanceBetween returns the diplomatic stance for a tribe pair.
// A tribe is always neutral toward itself.
func (s *GameState) StanceBetween(a, b TribeID) Stance {
	if a == b {
		return StanceNeutral
	}
	return s.Stances[PairOf(a, b)]
}

// TileOwner returns the owner of a tile and whether it is claimed.
func (s *GameState) TileOwner(c world.HexCoord) (TribeID, bool) {
	owner, ok := s.TileOwners[c]
	return owner, ok
}

// IsRevealed reports whether the tribe has explored the coordinate.
func (s *GameState) IsRevealed(tribe TribeID, c world.HexCoord) bool {
	return s.Revealed[tribe][c]
}
