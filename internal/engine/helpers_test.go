package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

// flatMap builds a uniform grassland disc so yields are predictable. A single
// mountain at (0, -3) and an ocean pocket at (0, 3) give passability tests
// something to bump into.
func flatMap(radius int) *world.Map {
	m := world.NewMap(radius)
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			c := world.HexCoord{Q: q, R: r}
			if world.Distance(world.HexCoord{}, c) > radius {
				continue
			}
			m.Set(&world.Tile{Coord: c, Terrain: world.TerrainGrassland})
		}
	}
	m.Set(&world.Tile{Coord: world.HexCoord{Q: 0, R: -3}, Terrain: world.TerrainMountain})
	m.Set(&world.Tile{Coord: world.HexCoord{Q: 0, R: 3}, Terrain: world.TerrainOcean})
	return m
}

func newTestEngine(m *world.Map) *Engine {
	return New(rules.DefaultCatalog(), m, 7)
}

// twoTribeGame seats Sylthien (tribe 1) against Korevash (tribe 2); neither
// carries a trade capacity bonus, so capacity comes from techs alone.
func twoTribeGame(e *Engine, maxTurns int) *state.GameState {
	return e.NewGame([]Seat{
		{Kind: rules.TribeSylthien},
		{Kind: rules.TribeKorevash},
	}, maxTurns)
}

// found founds a settlement or fails the test.
func found(t *testing.T, e *Engine, s *state.GameState, owner state.TribeID, pos world.HexCoord, capital bool) (*state.GameState, *state.Settlement) {
	t.Helper()
	ns, sett, err := e.FoundSettlement(s, owner, pos, capital)
	require.NoError(t, err)
	return ns, sett
}

// bareSettlement inserts a settlement directly into the snapshot with no
// claimed tiles, bypassing founding. Yields stay at the population floor.
func bareSettlement(s *state.GameState, id state.SettlementID, owner state.TribeID, pos world.HexCoord) *state.Settlement {
	sett := &state.Settlement{
		ID:                  id,
		Name:                "Test",
		Owner:               owner,
		Position:            pos,
		Population:          1,
		Level:               1,
		PopulationThreshold: growthThreshold(1),
		Health:              baseSettlementHealth,
		MaxHealth:           baseSettlementHealth,
		BorderRadius:        1,
		Buildings:           make(map[rules.BuildingID]bool),
	}
	s.Settlements[id] = sett
	return sett
}

// fixedBonus is a golden-age oracle with constant multipliers, for tests.
type fixedBonus struct {
	gold, production float64
}

func (f fixedBonus) GoldBonus(*state.GameState, state.TribeID) float64 {
	return f.gold
}

func (f fixedBonus) ProductionBonus(*state.GameState, state.TribeID) float64 {
	return f.production
}
