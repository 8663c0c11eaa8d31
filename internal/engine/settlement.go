package engine

import (
	"log/slog"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
	"github.com/talgya/hexreign/internal/yield"
)

const (
	baseSettlementHealth = 30
	healthPerLevel       = 5
	regenPerTurn         = 5

	// Founding requires being outside a 2-ring of every settlement globally.
	minFoundingDistance = 3
)

// levelBreakpoints maps population to settlement level: index+1 is the level
// reached at that population, clamped to the last entry.
var levelBreakpoints = [5]int{0, 15, 30, 50, 75}

// borderBreakpoints maps accumulated culture to border radius 1..5.
var borderBreakpoints = [5]int{0, 10, 30, 60, 100}

// growthThreshold is the population-progress bar for the next citizen.
// Linear variant: 10 + population*3.
func growthThreshold(population int) int {
	return 10 + population*3
}

// levelFor returns the settlement level for a population count.
func levelFor(population int) int {
	level := 1
	for i, bp := range levelBreakpoints {
		if population >= bp {
			level = i + 1
		}
	}
	return level
}

// borderRadiusFor returns the border radius for accumulated culture.
func borderRadiusFor(culture int) int {
	radius := 1
	for i, bp := range borderBreakpoints {
		if culture >= bp {
			radius = i + 1
		}
	}
	return radius
}

// CanFoundSettlement reports whether a settlement may be founded at the
// position: the tile must exist, be land (not water or mountain), and lie
// outside a 2-ring of every existing settlement of any tribe.
func (e *Engine) CanFoundSettlement(s *state.GameState, pos world.HexCoord) error {
	tile := e.World.Get(pos)
	if tile == nil {
		return ErrTileNotFound
	}
	if tile.IsWater() || tile.IsMountain() {
		return ErrTileImpassable
	}
	for _, sett := range s.Settlements {
		if world.Distance(pos, sett.Position) < minFoundingDistance {
			return ErrTooCloseToSettlement
		}
	}
	return nil
}

// foundSettlement creates a settlement in place on the snapshot. Callers have
// already validated legality and cloned the state.
func (e *Engine) foundSettlement(s *state.GameState, owner state.TribeID, pos world.HexCoord, isCapital bool) *state.Settlement {
	player := s.Player(owner)
	name := e.Names.Next(owner, player.Kind)

	sett := &state.Settlement{
		ID:                  state.SettlementID(e.IDs.Next()),
		Name:                name,
		Owner:               owner,
		Position:            pos,
		Population:          1,
		Level:               1,
		PopulationThreshold: growthThreshold(1),
		Health:              baseSettlementHealth,
		MaxHealth:           baseSettlementHealth,
		BorderRadius:        1,
		Buildings:           make(map[rules.BuildingID]bool),
		IsCapital:           isCapital,
	}
	s.Settlements[sett.ID] = sett

	e.expandBorders(s, sett)
	e.revealAround(s, owner, pos, 2)

	slog.Info("settlement founded",
		"name", name,
		"tribe", owner,
		"pos", pos,
		"capital", isCapital,
	)
	return sett
}

// SettlementBaseYield is the yield from population and claimed tiles, before
// buildings.
func (e *Engine) SettlementBaseYield(s *state.GameState, sett *state.Settlement) yield.Yield {
	pop := sett.Population
	y := yield.Yield{
		Gold:       1 + pop/2,
		Research:   1 + pop/3,
		Culture:    1 + pop/5,
		Production: 1 + pop/3,
		Growth:     2,
	}
	if sett.IsCapital {
		y.Gold++
		y.Production++
	}
	for _, c := range world.WithinRadius(sett.Position, sett.BorderRadius) {
		if owner, ok := s.TileOwner(c); !ok || owner != sett.Owner {
			continue
		}
		if tile := e.World.Get(c); tile != nil {
			y = yield.Add(y, tile.Yields())
		}
	}
	return y
}

// SettlementBuildingYield sums the yields of constructed buildings.
func (e *Engine) SettlementBuildingYield(sett *state.Settlement) yield.Yield {
	var y yield.Yield
	for id := range sett.Buildings {
		y = yield.Add(y, e.Rules.Buildings[id].Yields)
	}
	return y
}

// SettlementYield is the settlement's total per-turn yield.
func (e *Engine) SettlementYield(s *state.GameState, sett *state.Settlement) yield.Yield {
	return yield.Add(e.SettlementBaseYield(s, sett), e.SettlementBuildingYield(sett))
}

// settlementGoldYield is the gold channel used by the trade-route formula.
func (e *Engine) settlementGoldYield(s *state.GameState, sett *state.Settlement) int {
	return e.SettlementYield(s, sett).Gold
}

// processSettlementGrowth accumulates growth yield, adds citizens when the
// threshold is crossed, and recomputes level. Progress wraps to the remainder
// on a growth event. A level increase raises max health (healing the delta)
// and flags the milestone choice for the external chooser.
func (e *Engine) processSettlementGrowth(s *state.GameState, sett *state.Settlement) {
	growth := e.SettlementYield(s, sett).Growth
	sett.PopulationProgress += growth

	for sett.PopulationProgress >= sett.PopulationThreshold {
		sett.PopulationProgress -= sett.PopulationThreshold
		sett.Population++
		sett.PopulationThreshold = growthThreshold(sett.Population)

		newLevel := levelFor(sett.Population)
		if newLevel > sett.Level {
			delta := (newLevel - sett.Level) * healthPerLevel
			sett.Level = newLevel
			sett.MaxHealth += delta
			sett.Health += delta
			if sett.Health > sett.MaxHealth {
				sett.Health = sett.MaxHealth
			}
			sett.MilestonePending = true
			slog.Info("settlement leveled up",
				"name", sett.Name,
				"level", sett.Level,
				"population", sett.Population,
			)
		}
	}
}

// processSettlementCulture accumulates culture and expands borders.
func (e *Engine) processSettlementCulture(s *state.GameState, sett *state.Settlement) {
	sett.Culture += e.SettlementYield(s, sett).Culture
	sett.BorderRadius = borderRadiusFor(sett.Culture)
	e.expandBorders(s, sett)
}

// expandBorders claims every unclaimed, claimable tile within the settlement's
// border radius for its owner. Tiles already claimed by anyone are never
// stolen; a grant is permanent.
func (e *Engine) expandBorders(s *state.GameState, sett *state.Settlement) {
	for _, c := range world.WithinRadius(sett.Position, sett.BorderRadius) {
		tile := e.World.Get(c)
		if tile == nil || !tile.Claimable() {
			continue
		}
		if _, claimed := s.TileOwner(c); claimed {
			continue
		}
		s.TileOwners[c] = sett.Owner
	}
}

// ProcessSettlementRegeneration heals the settlement by the per-turn amount,
// capped at max health. Idempotent at full health.
func ProcessSettlementRegeneration(sett *state.Settlement) {
	sett.Health += regenPerTurn
	if sett.Health > sett.MaxHealth {
		sett.Health = sett.MaxHealth
	}
}

// DamageSettlement reduces health, clamped at zero, and reports whether the
// settlement fell (health reached zero), signaling capture.
func DamageSettlement(sett *state.Settlement, damage int) (conquered bool) {
	sett.Health -= damage
	if sett.Health <= 0 {
		sett.Health = 0
		return true
	}
	return false
}

// revealAround marks tiles within radius of pos as explored for the tribe.
func (e *Engine) revealAround(s *state.GameState, tribe state.TribeID, pos world.HexCoord, radius int) {
	set := s.Revealed[tribe]
	if set == nil {
		set = make(map[world.HexCoord]bool)
		s.Revealed[tribe] = set
	}
	for _, c := range world.WithinRadius(pos, radius) {
		if e.World.Get(c) != nil {
			set[c] = true
		}
	}
}
