// Package engine implements the turn/action state machine and the subsystems
// it sequences: settlements, trade routes, production, and the per-player
// economy. Every operation takes a snapshot and returns a new one; the input
// is never mutated.
package engine

import (
	"math/rand"

	"github.com/talgya/hexreign/internal/entropy"
	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

// DiplomacyOracle answers stance questions between tribes. The default reads
// the stance table carried on the snapshot.
type DiplomacyOracle interface {
	Stance(s *state.GameState, a, b state.TribeID) state.Stance
}

// FogOracle answers tile visibility questions per tribe.
type FogOracle interface {
	Visible(s *state.GameState, tribe state.TribeID, c world.HexCoord) bool
}

// GoldenAgeOracle supplies temporary yield multipliers. 1.0 means no bonus.
type GoldenAgeOracle interface {
	GoldBonus(s *state.GameState, tribe state.TribeID) float64
	ProductionBonus(s *state.GameState, tribe state.TribeID) float64
}

// CombatResolver decides damage for a single unit engagement.
type CombatResolver interface {
	Resolve(attacker, defender *state.Unit, attackerStr, defenderStr int, rng *rand.Rand) (damageToDefender, damageToAttacker int)
}

// Engine binds the static ruleset, the world map, the injected sequence
// generators, and the collaborator oracles for one game session.
type Engine struct {
	Rules   *rules.Catalog
	World   *world.Map
	IDs     *state.IDSource
	Names   *state.Namer
	Entropy *entropy.Source

	Diplomacy  DiplomacyOracle
	Fog        FogOracle
	GoldenAges GoldenAgeOracle
	Combat     CombatResolver
}

// New creates an engine with default collaborators: snapshot-backed diplomacy
// and fog, no golden ages, and strength-ratio combat.
func New(catalog *rules.Catalog, worldMap *world.Map, seed int64) *Engine {
	return &Engine{
		Rules:      catalog,
		World:      worldMap,
		IDs:        state.NewIDSource(),
		Names:      state.NewNamer(catalog),
		Entropy:    entropy.NewSource(seed),
		Diplomacy:  snapshotDiplomacy{},
		Fog:        snapshotFog{},
		GoldenAges: noGoldenAge{},
		Combat:     strengthCombat{},
	}
}

// Reset rewinds the engine's sequence generators for a fresh game on the same
// session. Required between independent games to avoid name/id leakage.
func (e *Engine) Reset() {
	e.IDs.Reset()
	e.Names.Reset()
}

// snapshotDiplomacy reads stances straight off the snapshot's stance table.
type snapshotDiplomacy struct{}

func (snapshotDiplomacy) Stance(s *state.GameState, a, b state.TribeID) state.Stance {
	return s.StanceBetween(a, b)
}

// snapshotFog reads the snapshot's revealed-tile sets.
type snapshotFog struct{}

func (snapshotFog) Visible(s *state.GameState, tribe state.TribeID, c world.HexCoord) bool {
	return s.IsRevealed(tribe, c)
}

// noGoldenAge is the default golden-age oracle: no bonus ever.
type noGoldenAge struct{}

func (noGoldenAge) GoldBonus(*state.GameState, state.TribeID) float64       { return 1.0 }
func (noGoldenAge) ProductionBonus(*state.GameState, state.TribeID) float64 { return 1.0 }

// strengthCombat resolves damage from the strength ratio with a small random
// swing drawn from the engagement's deterministic stream.
type strengthCombat struct{}

func (strengthCombat) Resolve(_, _ *state.Unit, attackerStr, defenderStr int, rng *rand.Rand) (int, int) {
	if attackerStr < 1 {
		attackerStr = 1
	}
	if defenderStr < 1 {
		defenderStr = 1
	}
	ratio := float64(attackerStr) / float64(defenderStr)
	base := 10.0 * ratio
	swing := 0.8 + rng.Float64()*0.4
	damageOut := int(base * swing)
	if damageOut < 1 {
		damageOut = 1
	}
	damageBack := int(10.0 / ratio * swing)
	if damageBack < 1 {
		damageBack = 1
	}
	return damageOut, damageBack
}
