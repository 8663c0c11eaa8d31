package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

// productionFixture returns a snapshot with one bare settlement per tribe.
// With a workshop added the settlement produces exactly 4 per turn.
func productionFixture(t *testing.T) (*Engine, *state.GameState, *state.Settlement, *state.Settlement) {
	t.Helper()
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	a := bareSettlement(s, 1, 1, world.HexCoord{Q: -4, R: 0}) // Sylthien, no bonus
	b := bareSettlement(s, 2, 2, world.HexCoord{Q: 4, R: 0})  // Korevash, +25% melee
	a.Buildings[rules.BuildingWorkshop] = true
	b.Buildings[rules.BuildingWorkshop] = true
	return e, s, a, b
}

func TestProductionAccumulationAndOverflow(t *testing.T) {
	e, s, sett, _ := productionFixture(t)
	require.Equal(t, 4, e.SettlementYield(s, sett).Production)

	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceBuilding, Building: rules.BuildingShrine, Cost: 10},
	}

	done := e.processSettlementProduction(s, sett)
	require.Empty(t, done)
	assert.Equal(t, 4, sett.ProductionQueue[0].Progress)
	assert.Equal(t, 0, sett.CurrentProduction)

	done = e.processSettlementProduction(s, sett)
	require.Empty(t, done)
	assert.Equal(t, 8, sett.ProductionQueue[0].Progress)

	done = e.processSettlementProduction(s, sett)
	require.Len(t, done, 1)
	assert.Equal(t, rules.BuildingShrine, done[0].Building)
	assert.Empty(t, sett.ProductionQueue)
	assert.Equal(t, 2, sett.CurrentProduction)
}

func TestProductionEmptyQueueIsNoOp(t *testing.T) {
	e, s, sett, _ := productionFixture(t)
	sett.CurrentProduction = 3

	done := e.processSettlementProduction(s, sett)
	require.Nil(t, done)
	// Idle settlements do not stockpile output.
	assert.Equal(t, 3, sett.CurrentProduction)
}

func TestProductionOverflowFeedsNextItem(t *testing.T) {
	e, s, sett, _ := productionFixture(t)
	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceBuilding, Building: rules.BuildingShrine, Cost: 3},
		{Type: state.ProduceBuilding, Building: rules.BuildingGranary, Cost: 10},
	}

	// 4 output: shrine (3) completes, granary takes the leftover 1.
	done := e.processSettlementProduction(s, sett)
	require.Len(t, done, 1)
	assert.Equal(t, rules.BuildingShrine, done[0].Building)
	assert.Equal(t, 1, sett.ProductionQueue[0].Progress)
	assert.Equal(t, 0, sett.CurrentProduction)
}

func TestProductionSpeedBonusForMeleeUnits(t *testing.T) {
	e, s, _, sett := productionFixture(t)
	require.Equal(t, rules.TribeKorevash, s.Player(2).Kind)

	// 4 output + 9 carry = 13 raw; effective floor(13*1.25) = 16 completes the
	// warrior, consuming ceil(16/1.25) = 13. Nothing left over.
	sett.CurrentProduction = 9
	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceUnit, UnitID: rules.UnitWarrior, Cost: 16},
	}
	done := e.processSettlementProduction(s, sett)
	require.Len(t, done, 1)
	assert.Equal(t, rules.UnitWarrior, done[0].UnitID)
	assert.Equal(t, 0, sett.CurrentProduction)
}

func TestProductionSpeedBonusClassGated(t *testing.T) {
	e, s, _, sett := productionFixture(t)

	// Korevash's bonus covers melee only; an archer sees raw production.
	sett.CurrentProduction = 9
	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceUnit, UnitID: rules.UnitArcher, Cost: 20},
	}
	done := e.processSettlementProduction(s, sett)
	require.Empty(t, done)
	assert.Equal(t, 13, sett.ProductionQueue[0].Progress)
	assert.Equal(t, 0, sett.CurrentProduction)
}

func TestProductionBonusNeverAppliesToBuildings(t *testing.T) {
	e, s, _, sett := productionFixture(t)

	sett.CurrentProduction = 9
	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceBuilding, Building: rules.BuildingShrine, Cost: 16},
	}
	done := e.processSettlementProduction(s, sett)
	require.Empty(t, done)
	assert.Equal(t, 13, sett.ProductionQueue[0].Progress)
}

func TestProductionGoldenAgeMultiplier(t *testing.T) {
	e, s, sett, _ := productionFixture(t)
	e.GoldenAges = fixedBonus{gold: 1.0, production: 1.5}

	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceBuilding, Building: rules.BuildingShrine, Cost: 10},
	}
	// floor(4 * 1.5) = 6.
	done := e.processSettlementProduction(s, sett)
	require.Empty(t, done)
	assert.Equal(t, 6, sett.ProductionQueue[0].Progress)
}

func TestQueueProductionValidation(t *testing.T) {
	e, s, sett, other := productionFixture(t)
	p := s.Player(1)

	t.Run("tech gate", func(t *testing.T) {
		err := e.queueProduction(s, sett, state.ProductionItem{Type: state.ProduceUnit, UnitID: rules.UnitSpearman})
		require.ErrorIs(t, err, ErrBuildLocked)
		p.ResearchedTechs[rules.TechBronze] = true
		require.NoError(t, e.queueProduction(s, sett, state.ProductionItem{Type: state.ProduceUnit, UnitID: rules.UnitSpearman}))
	})

	t.Run("cost comes from the catalog", func(t *testing.T) {
		head := sett.ProductionQueue[len(sett.ProductionQueue)-1]
		assert.Equal(t, e.Rules.Units[rules.UnitSpearman].Cost, head.Cost)
	})

	t.Run("duplicate building", func(t *testing.T) {
		err := e.queueProduction(s, sett, state.ProductionItem{Type: state.ProduceBuilding, Building: rules.BuildingWorkshop})
		require.ErrorIs(t, err, ErrAlreadyBuilt)
	})

	t.Run("unknown item", func(t *testing.T) {
		err := e.queueProduction(s, sett, state.ProductionItem{Type: state.ProduceUnit, UnitID: "zeppelin"})
		require.ErrorIs(t, err, ErrBuildUnknown)
	})

	t.Run("wonder is once per game", func(t *testing.T) {
		p.ResearchedTechs[rules.TechCurrency] = true
		require.NoError(t, e.queueProduction(s, sett, state.ProductionItem{Type: state.ProduceWonder, Building: rules.WonderGrandBazaar}))

		// Already standing anywhere blocks every other settlement.
		other.Buildings[rules.WonderGrandBazaar] = true
		err := e.queueProduction(s, sett, state.ProductionItem{Type: state.ProduceWonder, Building: rules.WonderGrandBazaar})
		require.ErrorIs(t, err, ErrWonderBuilt)
	})
}

func TestCompleteProduction(t *testing.T) {
	e, s, sett, _ := productionFixture(t)

	t.Run("unit spawns at the settlement", func(t *testing.T) {
		e.completeProduction(s, sett, state.ProductionItem{Type: state.ProduceUnit, UnitID: rules.UnitWarrior})
		require.Len(t, s.Units, 1)
		for _, u := range s.Units {
			assert.Equal(t, rules.UnitWarrior, u.Kind)
			assert.Equal(t, sett.Owner, u.Owner)
			assert.Equal(t, sett.Position, u.Position)
			assert.Equal(t, e.Rules.Units[rules.UnitWarrior].Moves, u.MovesLeft)
		}
	})

	t.Run("building and wonder counters", func(t *testing.T) {
		e.completeProduction(s, sett, state.ProductionItem{Type: state.ProduceBuilding, Building: rules.BuildingShrine})
		e.completeProduction(s, sett, state.ProductionItem{Type: state.ProduceWonder, Building: rules.WonderGrandBazaar})
		assert.True(t, sett.Buildings[rules.BuildingShrine])
		assert.True(t, sett.Buildings[rules.WonderGrandBazaar])
		assert.Equal(t, 1, s.Player(1).GreatPeople.BuildingsBuilt)
		assert.Equal(t, 1, s.Player(1).GreatPeople.WondersBuilt)
	})
}

func TestProductionTurnsRemaining(t *testing.T) {
	e, s, sett, _ := productionFixture(t)

	assert.Equal(t, 0, e.ProductionTurnsRemaining(s, sett))

	sett.ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceBuilding, Building: rules.BuildingShrine, Cost: 10},
	}
	assert.Equal(t, 3, e.ProductionTurnsRemaining(s, sett))

	sett.CurrentProduction = 2
	assert.Equal(t, 2, e.ProductionTurnsRemaining(s, sett))
}
