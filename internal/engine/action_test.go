package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

func TestApplyActionRejectsUnknownType(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)

	for _, bad := range []ActionType{ActionType(-1), actionTypeCount, ActionType(99)} {
		ns, err := e.ApplyAction(s, Action{Type: bad, Actor: 1})
		require.ErrorIs(t, err, ErrUnknownAction)
		require.Same(t, s, ns)
	}
}

func TestApplyActionTurnOwnership(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)

	ns, err := e.ApplyAction(s, Action{Type: ActionEndTurn, Actor: 2})
	require.ErrorIs(t, err, ErrNotYourTurn)
	require.Same(t, s, ns)

	_, err = e.ApplyAction(s, Action{Type: ActionEndTurn, Actor: 9})
	require.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestApplyActionReturnsPriorSnapshotOnRejection(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)

	ns, err := e.ApplyAction(s, Action{Type: ActionMoveUnit, Actor: 1, Unit: 42})
	require.ErrorIs(t, err, ErrUnitNotFound)
	require.Same(t, s, ns)
}

func TestEndTurnRotationAndTurnCounter(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	require.Equal(t, state.TribeID(1), s.CurrentPlayer)
	require.Equal(t, 1, s.Turn)

	s, err := e.ApplyAction(s, Action{Type: ActionEndTurn, Actor: 1})
	require.NoError(t, err)
	assert.Equal(t, state.TribeID(2), s.CurrentPlayer)
	assert.Equal(t, 1, s.Turn)

	s, err = e.ApplyAction(s, Action{Type: ActionEndTurn, Actor: 2})
	require.NoError(t, err)
	assert.Equal(t, state.TribeID(1), s.CurrentPlayer)
	assert.Equal(t, 2, s.Turn)
}

func TestApplyActionNeverMutatesPriorSnapshot(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 1, world.HexCoord{Q: 0, R: 0}, true)

	turnBefore := s.Turn
	popBefore := sett.Population
	treasuryBefore := s.Player(1).Treasury

	ns, err := e.ApplyAction(s, Action{Type: ActionEndTurn, Actor: 1})
	require.NoError(t, err)
	require.NotSame(t, s, ns)

	assert.Equal(t, turnBefore, s.Turn)
	assert.Equal(t, popBefore, s.Settlement(sett.ID).Population)
	assert.Equal(t, treasuryBefore, s.Player(1).Treasury)

	// The new snapshot actually moved.
	assert.NotEqual(t, popBefore, ns.Settlement(sett.ID).Population)
	assert.NotEqual(t, treasuryBefore, ns.Player(1).Treasury)
}

func TestMoveUnit(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s.Units[1] = &state.Unit{
		ID: 1, Kind: rules.UnitWarrior, Owner: 1,
		Position: world.HexCoord{Q: 0, R: -2}, Health: 100, MovesLeft: 2,
	}

	t.Run("not adjacent", func(t *testing.T) {
		_, err := e.ApplyAction(s, Action{Type: ActionMoveUnit, Actor: 1, Unit: 1, Target: world.HexCoord{Q: 3, R: 0}})
		require.ErrorIs(t, err, ErrNotAdjacent)
	})

	t.Run("mountain blocks land units", func(t *testing.T) {
		_, err := e.ApplyAction(s, Action{Type: ActionMoveUnit, Actor: 1, Unit: 1, Target: world.HexCoord{Q: 0, R: -3}})
		require.ErrorIs(t, err, ErrTileImpassable)
	})

	t.Run("occupied tile blocks", func(t *testing.T) {
		bs := s.Clone()
		bs.Units[2] = &state.Unit{ID: 2, Kind: rules.UnitWarrior, Owner: 2, Position: world.HexCoord{Q: 1, R: -2}, Health: 100}
		_, err := e.ApplyAction(bs, Action{Type: ActionMoveUnit, Actor: 1, Unit: 1, Target: world.HexCoord{Q: 1, R: -2}})
		require.ErrorIs(t, err, ErrTileOccupied)
	})

	t.Run("valid move costs a point and reveals", func(t *testing.T) {
		ns, err := e.ApplyAction(s, Action{Type: ActionMoveUnit, Actor: 1, Unit: 1, Target: world.HexCoord{Q: 1, R: -2}})
		require.NoError(t, err)
		u := ns.Units[1]
		assert.Equal(t, world.HexCoord{Q: 1, R: -2}, u.Position)
		assert.Equal(t, 1, u.MovesLeft)
		assert.True(t, ns.IsRevealed(1, world.HexCoord{Q: 2, R: -2}))
	})
}

func TestFoundSettlementAction(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s.Units[1] = &state.Unit{
		ID: 1, Kind: rules.UnitSettler, Owner: 1,
		Position: world.HexCoord{Q: 0, R: 0}, Health: 100, MovesLeft: 2,
	}

	ns, err := e.ApplyAction(s, Action{Type: ActionFoundSettlement, Actor: 1, Unit: 1})
	require.NoError(t, err)
	require.Len(t, ns.Settlements, 1)
	for _, sett := range ns.Settlements {
		assert.True(t, sett.IsCapital)
		assert.Equal(t, world.HexCoord{Q: 0, R: 0}, sett.Position)
	}
	// The settler is consumed.
	assert.Empty(t, ns.Units)

	// Only settlers can found.
	s.Units[1].Kind = rules.UnitWarrior
	_, err = e.ApplyAction(s, Action{Type: ActionFoundSettlement, Actor: 1, Unit: 1})
	require.ErrorIs(t, err, ErrWrongUnitKind)
}

func TestAttackRequiresWar(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s.Units[1] = &state.Unit{ID: 1, Kind: rules.UnitWarrior, Owner: 1, Position: world.HexCoord{Q: 0, R: 0}, Health: 100, MovesLeft: 2}
	s.Units[2] = &state.Unit{ID: 2, Kind: rules.UnitWarrior, Owner: 2, Position: world.HexCoord{Q: 1, R: 0}, Health: 100, MovesLeft: 2}

	_, err := e.ApplyAction(s, Action{Type: ActionAttack, Actor: 1, Unit: 1, TargetUnit: 2})
	require.ErrorIs(t, err, ErrNotAtWar)

	s.Stances[state.PairOf(1, 2)] = state.StanceWar
	ns, err := e.ApplyAction(s, Action{Type: ActionAttack, Actor: 1, Unit: 1, TargetUnit: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, ns.Units[1].MovesLeft)
	assert.Less(t, ns.Units[2].Health, 100)
}

func TestAttackIsDeterministicForSameSeed(t *testing.T) {
	run := func() int {
		e := newTestEngine(flatMap(8))
		s := twoTribeGame(e, 100)
		s.Units[1] = &state.Unit{ID: 1, Kind: rules.UnitWarrior, Owner: 1, Position: world.HexCoord{Q: 0, R: 0}, Health: 100, MovesLeft: 2}
		s.Units[2] = &state.Unit{ID: 2, Kind: rules.UnitArcher, Owner: 2, Position: world.HexCoord{Q: 1, R: 0}, Health: 100, MovesLeft: 2}
		s.Stances[state.PairOf(1, 2)] = state.StanceWar
		ns, err := e.ApplyAction(s, Action{Type: ActionAttack, Actor: 1, Unit: 1, TargetUnit: 2})
		require.NoError(t, err)
		return ns.Units[2].Health
	}
	assert.Equal(t, run(), run())
}

func TestAttackSettlement(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 2, world.HexCoord{Q: 3, R: 0}, true)
	s.Units[1] = &state.Unit{
		ID: 1, Kind: rules.UnitWarrior, Owner: 1,
		Position: world.HexCoord{Q: 2, R: 0}, Health: 100, MovesLeft: 2,
	}

	_, err := e.ApplyAction(s, Action{Type: ActionAttackSettlement, Actor: 1, Unit: 1, TargetSett: sett.ID})
	require.ErrorIs(t, err, ErrNotAtWar)

	s.Stances[state.PairOf(1, 2)] = state.StanceWar
	ns, err := e.ApplyAction(s, Action{Type: ActionAttackSettlement, Actor: 1, Unit: 1, TargetSett: sett.ID})
	require.NoError(t, err)
	assert.Less(t, ns.Settlement(sett.ID).Health, baseSettlementHealth)
	assert.Equal(t, 0, ns.Units[1].MovesLeft)

	// Driving health to zero marks the settlement conquerable, not captured.
	bs := ns.Clone()
	bs.Settlement(sett.ID).Health = 1
	bs.Units[1].MovesLeft = 2
	bs, err = e.ApplyAction(bs, Action{Type: ActionAttackSettlement, Actor: 1, Unit: 1, TargetSett: sett.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, bs.Settlement(sett.ID).Health)
	assert.Equal(t, state.TribeID(2), bs.Settlement(sett.ID).Owner)
}

func TestCaptureSettlement(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 2, world.HexCoord{Q: 3, R: 0}, true)
	s.TradeRoutes = append(s.TradeRoutes, &state.TradeRoute{
		ID: 9, Origin: sett.ID, Destination: sett.ID, OwnerTribe: 2, GoldPerTurn: 3, Active: true,
	})

	// Still standing: capture refused, even mid-war. The refusal reports the
	// standing settlement, not the diplomatic stance.
	s.Stances[state.PairOf(1, 2)] = state.StanceWar
	_, err := e.ApplyAction(s, Action{Type: ActionCaptureSettlement, Actor: 1, TargetSett: sett.ID})
	require.ErrorIs(t, err, ErrSettlementStanding)
	require.NotErrorIs(t, err, ErrNotAtWar)

	s.Settlement(sett.ID).Health = 0
	ns, err := e.ApplyAction(s, Action{Type: ActionCaptureSettlement, Actor: 1, TargetSett: sett.ID})
	require.NoError(t, err)

	got := ns.Settlement(sett.ID)
	assert.Equal(t, state.TribeID(1), got.Owner)
	assert.False(t, got.IsCapital)
	assert.Equal(t, got.MaxHealth/4, got.Health)

	// Capture pillages: the route broke and paid the captor.
	assert.True(t, ns.TradeRoutes[0].Broken)
	assert.Equal(t, 3, ns.Player(1).Treasury)

	// Claimed tiles follow the settlement.
	owner, ok := ns.TileOwner(got.Position)
	require.True(t, ok)
	assert.Equal(t, state.TribeID(1), owner)
}

func TestRazeSettlement(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 2, world.HexCoord{Q: 3, R: 0}, true)

	_, err := e.ApplyAction(s, Action{Type: ActionRazeSettlement, Actor: 1, TargetSett: sett.ID})
	require.ErrorIs(t, err, ErrSettlementStanding)

	s.Settlement(sett.ID).Health = 0
	ns, err := e.ApplyAction(s, Action{Type: ActionRazeSettlement, Actor: 1, TargetSett: sett.ID})
	require.NoError(t, err)
	assert.Nil(t, ns.Settlement(sett.ID))
}

func TestBuildImprovement(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 1, world.HexCoord{Q: 0, R: 0}, true)
	s.Units[9] = &state.Unit{ID: 9, Kind: rules.UnitWorker, Owner: 1, Position: sett.Position, Health: 100, MovesLeft: 2}

	ns, err := e.ApplyAction(s, Action{Type: ActionBuildImprovement, Actor: 1, Unit: 9})
	require.NoError(t, err)
	assert.True(t, ns.Improvements[sett.Position])
	assert.Equal(t, 0, ns.Units[9].MovesLeft)

	// Improving the same tile twice is refused.
	ns.Units[9].MovesLeft = 2
	_, err = e.ApplyAction(ns, Action{Type: ActionBuildImprovement, Actor: 1, Unit: 9})
	require.ErrorIs(t, err, ErrNotImprovable)

	// Unowned ground is off limits.
	s.Units[9].Position = world.HexCoord{Q: 4, R: 0}
	_, err = e.ApplyAction(s, Action{Type: ActionBuildImprovement, Actor: 1, Unit: 9})
	require.ErrorIs(t, err, ErrNotOwner)

	// Only workers improve tiles.
	s.Units[9].Position = sett.Position
	s.Units[9].Kind = rules.UnitWarrior
	_, err = e.ApplyAction(s, Action{Type: ActionBuildImprovement, Actor: 1, Unit: 9})
	require.ErrorIs(t, err, ErrWrongUnitKind)
}

func TestStartResearch(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)

	_, err := e.ApplyAction(s, Action{Type: ActionStartResearch, Actor: 1, Tech: rules.TechCurrency})
	require.ErrorIs(t, err, ErrMissingPrereq)

	_, err = e.ApplyAction(s, Action{Type: ActionStartResearch, Actor: 1, Tech: "alchemy"})
	require.ErrorIs(t, err, ErrTechUnknown)

	s, err = e.ApplyAction(s, Action{Type: ActionStartResearch, Actor: 1, Tech: rules.TechTrade})
	require.NoError(t, err)
	require.Equal(t, rules.TechTrade, s.Player(1).CurrentResearch)

	// Switching projects drops accumulated progress.
	s.Player(1).ResearchProgress = 5
	s, err = e.ApplyAction(s, Action{Type: ActionStartResearch, Actor: 1, Tech: rules.TechWheel})
	require.NoError(t, err)
	assert.Equal(t, rules.TechWheel, s.Player(1).CurrentResearch)
	assert.Equal(t, 0, s.Player(1).ResearchProgress)

	s = GrantTech(s, 1, rules.TechWheel)
	_, err = e.ApplyAction(s, Action{Type: ActionStartResearch, Actor: 1, Tech: rules.TechWheel})
	require.ErrorIs(t, err, ErrTechResearched)
}

func TestPolicyActions(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	p := s.Player(1)

	t.Run("select needs banked culture", func(t *testing.T) {
		_, err := e.ApplyAction(s, Action{Type: ActionSelectPolicy, Actor: 1, Policy: rules.PolicyTradition})
		require.ErrorIs(t, err, ErrInsufficientCulture)
	})

	p.CultureProgress = 25
	s, err := e.ApplyAction(s, Action{Type: ActionSelectPolicy, Actor: 1, Policy: rules.PolicyTradition})
	require.NoError(t, err)
	p = s.Player(1)
	assert.Equal(t, []rules.PolicyID{rules.PolicyTradition}, p.Policies)
	assert.Equal(t, 5, p.CultureProgress)

	t.Run("next slot costs more", func(t *testing.T) {
		assert.Equal(t, 30, PolicyCost(len(s.Player(1).Policies)))
	})

	t.Run("no double adoption", func(t *testing.T) {
		_, err := e.ApplyAction(s, Action{Type: ActionSelectPolicy, Actor: 1, Policy: rules.PolicyTradition})
		require.ErrorIs(t, err, ErrPolicyAdopted)
	})

	t.Run("swap exchanges an adopted policy", func(t *testing.T) {
		ns, err := e.ApplyAction(s, Action{Type: ActionSwapPolicies, Actor: 1, OldPolicy: rules.PolicyTradition, Policy: rules.PolicyMartial})
		require.NoError(t, err)
		assert.Equal(t, []rules.PolicyID{rules.PolicyMartial}, ns.Player(1).Policies)
	})
}

func TestSelectMilestone(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 1, world.HexCoord{Q: 0, R: 0}, true)

	_, err := e.ApplyAction(s, Action{Type: ActionSelectMilestone, Actor: 1, Settlement: sett.ID, Milestone: rules.MilestoneGarrison})
	require.ErrorIs(t, err, ErrNoMilestonePending)

	s.Settlement(sett.ID).MilestonePending = true
	ns, err := e.ApplyAction(s, Action{Type: ActionSelectMilestone, Actor: 1, Settlement: sett.ID, Milestone: rules.MilestoneGarrison})
	require.NoError(t, err)

	got := ns.Settlement(sett.ID)
	assert.False(t, got.MilestonePending)
	assert.Equal(t, []rules.MilestoneID{rules.MilestoneGarrison}, got.Milestones)
	assert.Equal(t, baseSettlementHealth+5, got.MaxHealth)
}

func TestUseGreatPersonRushesProduction(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)
	s, sett := found(t, e, s, 1, world.HexCoord{Q: 0, R: 0}, true)
	s.Settlement(sett.ID).ProductionQueue = []state.ProductionItem{
		{Type: state.ProduceBuilding, Building: rules.BuildingShrine, Cost: 16},
	}

	_, err := e.ApplyAction(s, Action{Type: ActionUseGreatPerson, Actor: 1, Settlement: sett.ID})
	require.ErrorIs(t, err, ErrNoGreatPerson)

	s.Player(1).AvailableGreatPeople = 1
	ns, err := e.ApplyAction(s, Action{Type: ActionUseGreatPerson, Actor: 1, Settlement: sett.ID})
	require.NoError(t, err)
	assert.True(t, ns.Settlement(sett.ID).Buildings[rules.BuildingShrine])
	assert.Empty(t, ns.Settlement(sett.ID).ProductionQueue)
	assert.Equal(t, 0, ns.Player(1).AvailableGreatPeople)

	// Nothing queued: the great person is not spent.
	ns.Player(1).AvailableGreatPeople = 1
	_, err = e.ApplyAction(ns, Action{Type: ActionUseGreatPerson, Actor: 1, Settlement: sett.ID})
	require.ErrorIs(t, err, ErrQueueEmpty)
}

func TestDiplomacyActions(t *testing.T) {
	e := newTestEngine(flatMap(8))
	s := twoTribeGame(e, 100)

	_, err := e.ApplyAction(s, Action{Type: ActionDeclareWar, Actor: 1, TargetTribe: 1})
	require.ErrorIs(t, err, ErrSelfTarget)

	_, err = e.ApplyAction(s, Action{Type: ActionProposePeace, Actor: 1, TargetTribe: 2})
	require.ErrorIs(t, err, ErrNotAtWar)

	s, err = e.ApplyAction(s, Action{Type: ActionDeclareWar, Actor: 1, TargetTribe: 2})
	require.NoError(t, err)
	require.Equal(t, state.StanceWar, s.StanceBetween(1, 2))

	_, err = e.ApplyAction(s, Action{Type: ActionDeclareWar, Actor: 1, TargetTribe: 2})
	require.ErrorIs(t, err, ErrAlreadyAtWar)

	_, err = e.ApplyAction(s, Action{Type: ActionProposeAlliance, Actor: 1, TargetTribe: 2})
	require.ErrorIs(t, err, ErrHostileStance)

	s, err = e.ApplyAction(s, Action{Type: ActionProposePeace, Actor: 1, TargetTribe: 2})
	require.NoError(t, err)
	require.Equal(t, state.StanceNeutral, s.StanceBetween(1, 2))

	s, err = e.ApplyAction(s, Action{Type: ActionProposeAlliance, Actor: 1, TargetTribe: 2})
	require.NoError(t, err)
	require.Equal(t, state.StanceAllied, s.StanceBetween(1, 2))
}
