package engine

import (
	"fmt"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

// ActionType tags the closed set of player operations. The dispatcher is
// exhaustive; an unrecognized tag is a hard error, never a silent fallthrough.
type ActionType int

const (
	ActionEndTurn ActionType = iota
	ActionMoveUnit
	ActionAttack
	ActionAttackSettlement
	ActionCaptureSettlement
	ActionRazeSettlement
	ActionFoundSettlement
	ActionBuildImprovement
	ActionStartProduction
	ActionStartResearch
	ActionStartCulture
	ActionSelectPolicy
	ActionSelectPromotion
	ActionSelectMilestone
	ActionCreateTradeRoute
	ActionCancelTradeRoute
	ActionUseGreatPerson
	ActionSwapPolicies
	ActionDeclareWar
	ActionProposePeace
	ActionProposeAlliance

	actionTypeCount // Sentinel for exhaustiveness checks
)

// Action is one operation request against the current snapshot. Only the
// fields relevant to the Type are read.
type Action struct {
	Type  ActionType
	Actor state.TribeID

	Unit       state.UnitID
	TargetUnit state.UnitID
	Settlement state.SettlementID
	TargetSett state.SettlementID
	Target     world.HexCoord
	Route      state.RouteID

	Produce         state.ProductionType
	ProduceUnit     rules.UnitID
	ProduceBuilding rules.BuildingID

	Tech      rules.TechID
	Policy    rules.PolicyID
	OldPolicy rules.PolicyID
	Promotion rules.PromotionID
	Milestone rules.MilestoneID

	TargetTribe state.TribeID
}

// ApplyAction validates and applies a single player action. On success it
// returns a brand-new snapshot; on rejection it returns the prior snapshot
// unchanged together with the reason. The transition is atomic: there is no
// partially-applied state.
func (e *Engine) ApplyAction(s *state.GameState, a Action) (*state.GameState, error) {
	if a.Type < 0 || a.Type >= actionTypeCount {
		return s, fmt.Errorf("%w: %d", ErrUnknownAction, a.Type)
	}
	if s.Player(a.Actor) == nil {
		return s, ErrPlayerNotFound
	}
	if a.Actor != s.CurrentPlayer {
		return s, ErrNotYourTurn
	}

	ns := s.Clone()
	var err error

	switch a.Type {
	case ActionEndTurn:
		e.processEndOfTurn(ns)
	case ActionMoveUnit:
		err = e.applyMoveUnit(ns, a)
	case ActionAttack:
		err = e.applyAttack(ns, a)
	case ActionAttackSettlement:
		err = e.applyAttackSettlement(ns, a)
	case ActionCaptureSettlement:
		err = e.applyCaptureSettlement(ns, a)
	case ActionRazeSettlement:
		err = e.applyRazeSettlement(ns, a)
	case ActionFoundSettlement:
		err = e.applyFoundSettlement(ns, a)
	case ActionBuildImprovement:
		err = e.applyBuildImprovement(ns, a)
	case ActionStartProduction:
		err = e.applyStartProduction(ns, a)
	case ActionStartResearch:
		err = e.applyStartResearch(ns, a)
	case ActionStartCulture:
		err = e.applyStartCulture(ns, a)
	case ActionSelectPolicy:
		err = e.applySelectPolicy(ns, a)
	case ActionSelectPromotion:
		err = e.applySelectPromotion(ns, a)
	case ActionSelectMilestone:
		err = e.applySelectMilestone(ns, a)
	case ActionCreateTradeRoute:
		err = e.applyCreateTradeRoute(ns, a)
	case ActionCancelTradeRoute:
		err = e.cancelTradeRoute(ns, a.Actor, a.Route)
	case ActionUseGreatPerson:
		err = e.applyUseGreatPerson(ns, a)
	case ActionSwapPolicies:
		err = e.applySwapPolicies(ns, a)
	case ActionDeclareWar:
		err = e.applyDeclareWar(ns, a)
	case ActionProposePeace:
		err = e.applyProposePeace(ns, a)
	case ActionProposeAlliance:
		err = e.applyProposeAlliance(ns, a)
	default:
		return s, fmt.Errorf("%w: %d", ErrUnknownAction, a.Type)
	}

	if err != nil {
		return s, err
	}
	return ns, nil
}

func (e *Engine) applyMoveUnit(s *state.GameState, a Action) error {
	u := s.Units[a.Unit]
	if u == nil {
		return ErrUnitNotFound
	}
	if u.Owner != a.Actor {
		return ErrNotOwner
	}
	if u.MovesLeft <= 0 {
		return ErrNoMovesLeft
	}
	if world.Distance(u.Position, a.Target) != 1 {
		return ErrNotAdjacent
	}
	tile := e.World.Get(a.Target)
	if tile == nil {
		return ErrTileNotFound
	}
	naval := e.Rules.Units[u.Kind].Class == rules.ClassNaval
	if naval && !tile.IsWater() {
		return ErrTileImpassable
	}
	if !naval && (tile.IsWater() || tile.IsMountain()) {
		return ErrTileImpassable
	}
	for _, other := range s.Units {
		if other.ID != u.ID && other.Position == a.Target {
			return ErrTileOccupied
		}
	}

	u.Position = a.Target
	u.MovesLeft--
	e.revealAround(s, a.Actor, a.Target, 2)
	return nil
}

func (e *Engine) applyAttack(s *state.GameState, a Action) error {
	attacker := s.Units[a.Unit]
	defender := s.Units[a.TargetUnit]
	if attacker == nil || defender == nil {
		return ErrUnitNotFound
	}
	if attacker.Owner != a.Actor {
		return ErrNotOwner
	}
	if defender.Owner == a.Actor {
		return ErrSelfTarget
	}
	if attacker.MovesLeft <= 0 {
		return ErrNoMovesLeft
	}
	if world.Distance(attacker.Position, defender.Position) != 1 {
		return ErrNotAdjacent
	}
	if e.Diplomacy.Stance(s, a.Actor, defender.Owner) != state.StanceWar {
		return ErrNotAtWar
	}

	rng := e.Entropy.Stream(s.Turn, int(a.Actor))
	attStr := e.Rules.Units[attacker.Kind].Strength
	defStr := e.Rules.Units[defender.Kind].Strength
	dmgOut, dmgBack := e.Combat.Resolve(attacker, defender, attStr, defStr, rng)

	defender.Health -= dmgOut
	attacker.Health -= dmgBack
	attacker.MovesLeft = 0

	if defender.Health <= 0 {
		delete(s.Units, defender.ID)
	}
	if attacker.Health <= 0 {
		delete(s.Units, attacker.ID)
	}
	return nil
}

func (e *Engine) applyAttackSettlement(s *state.GameState, a Action) error {
	attacker := s.Units[a.Unit]
	if attacker == nil {
		return ErrUnitNotFound
	}
	if attacker.Owner != a.Actor {
		return ErrNotOwner
	}
	sett := s.Settlement(a.TargetSett)
	if sett == nil {
		return ErrSettlementNotFound
	}
	if sett.Owner == a.Actor {
		return ErrSelfTarget
	}
	if attacker.MovesLeft <= 0 {
		return ErrNoMovesLeft
	}
	if world.Distance(attacker.Position, sett.Position) != 1 {
		return ErrNotAdjacent
	}
	if e.Diplomacy.Stance(s, a.Actor, sett.Owner) != state.StanceWar {
		return ErrNotAtWar
	}

	defense := 5 + sett.Level*2
	if sett.Buildings[rules.BuildingWalls] {
		defense += 5
	}
	rng := e.Entropy.Stream(s.Turn, int(a.Actor))
	attStr := e.Rules.Units[attacker.Kind].Strength
	dmgOut, dmgBack := e.Combat.Resolve(attacker, nil, attStr, defense, rng)

	attacker.Health -= dmgBack
	attacker.MovesLeft = 0
	if attacker.Health <= 0 {
		delete(s.Units, attacker.ID)
	}
	// Conquered at zero health; the capture/raze choice is a follow-up action.
	DamageSettlement(sett, dmgOut)
	return nil
}

func (e *Engine) applyCaptureSettlement(s *state.GameState, a Action) error {
	sett := s.Settlement(a.TargetSett)
	if sett == nil {
		return ErrSettlementNotFound
	}
	if sett.Owner == a.Actor {
		return ErrSelfTarget
	}
	if sett.Health > 0 {
		return ErrSettlementStanding
	}

	// Capture pillages every route touching the settlement.
	e.pillageSettlementTradeRoutes(s, sett.ID, a.Actor)

	prevOwner := sett.Owner
	for _, c := range world.WithinRadius(sett.Position, sett.BorderRadius) {
		if owner, ok := s.TileOwner(c); ok && owner == prevOwner {
			s.TileOwners[c] = a.Actor
		}
	}
	sett.Owner = a.Actor
	sett.IsCapital = false
	sett.Health = sett.MaxHealth / 4
	if sett.Health < 1 {
		sett.Health = 1
	}
	e.revealAround(s, a.Actor, sett.Position, 2)
	return nil
}

func (e *Engine) applyRazeSettlement(s *state.GameState, a Action) error {
	sett := s.Settlement(a.TargetSett)
	if sett == nil {
		return ErrSettlementNotFound
	}
	if sett.Owner == a.Actor {
		return ErrSelfTarget
	}
	if sett.Health > 0 {
		return ErrSettlementStanding
	}

	e.pillageSettlementTradeRoutes(s, sett.ID, a.Actor)
	delete(s.Settlements, sett.ID)
	// Routes still forming toward the razed settlement break at activation;
	// tile claims remain with the razed tribe as scorched ground.
	return nil
}

func (e *Engine) applyFoundSettlement(s *state.GameState, a Action) error {
	u := s.Units[a.Unit]
	if u == nil {
		return ErrUnitNotFound
	}
	if u.Owner != a.Actor {
		return ErrNotOwner
	}
	if u.Kind != rules.UnitSettler {
		return fmt.Errorf("%w: only settlers found settlements", ErrWrongUnitKind)
	}
	if err := e.CanFoundSettlement(s, u.Position); err != nil {
		return err
	}

	isCapital := true
	for _, sett := range s.Settlements {
		if sett.Owner == a.Actor {
			isCapital = false
			break
		}
	}
	e.foundSettlement(s, a.Actor, u.Position, isCapital)
	delete(s.Units, u.ID)
	return nil
}

func (e *Engine) applyBuildImprovement(s *state.GameState, a Action) error {
	u := s.Units[a.Unit]
	if u == nil {
		return ErrUnitNotFound
	}
	if u.Owner != a.Actor {
		return ErrNotOwner
	}
	if u.Kind != rules.UnitWorker {
		return fmt.Errorf("%w: only workers build improvements", ErrWrongUnitKind)
	}
	if u.MovesLeft <= 0 {
		return ErrNoMovesLeft
	}
	tile := e.World.Get(u.Position)
	if tile == nil || !tile.Claimable() {
		return ErrNotImprovable
	}
	if owner, ok := s.TileOwner(u.Position); !ok || owner != a.Actor {
		return ErrNotOwner
	}
	if s.Improvements[u.Position] {
		return ErrNotImprovable
	}

	s.Improvements[u.Position] = true
	u.MovesLeft = 0
	return nil
}

func (e *Engine) applyStartProduction(s *state.GameState, a Action) error {
	sett := s.Settlement(a.Settlement)
	if sett == nil {
		return ErrSettlementNotFound
	}
	if sett.Owner != a.Actor {
		return ErrNotOwner
	}
	return e.queueProduction(s, sett, state.ProductionItem{
		Type:     a.Produce,
		UnitID:   a.ProduceUnit,
		Building: a.ProduceBuilding,
	})
}

func (e *Engine) applyStartResearch(s *state.GameState, a Action) error {
	p := s.Player(a.Actor)
	tech, ok := e.Rules.Techs[a.Tech]
	if !ok {
		return ErrTechUnknown
	}
	if p.HasTech(tech.ID) {
		return ErrTechResearched
	}
	for _, pre := range tech.Prereqs {
		if !p.HasTech(pre) {
			return ErrMissingPrereq
		}
	}
	if p.CurrentResearch != tech.ID {
		p.CurrentResearch = tech.ID
		p.ResearchProgress = 0
	}
	return nil
}

func (e *Engine) applyStartCulture(s *state.GameState, a Action) error {
	p := s.Player(a.Actor)
	if !knownPolicy(e.Rules, a.Policy) {
		return ErrPolicyUnknown
	}
	if p.HasPolicy(a.Policy) {
		return ErrPolicyAdopted
	}
	p.CurrentPolicy = a.Policy
	return nil
}

// applySelectPolicy adopts a policy immediately from banked culture when no
// project is running. PolicyCost grows with each adopted policy.
func (e *Engine) applySelectPolicy(s *state.GameState, a Action) error {
	p := s.Player(a.Actor)
	if !knownPolicy(e.Rules, a.Policy) {
		return ErrPolicyUnknown
	}
	if p.HasPolicy(a.Policy) {
		return ErrPolicyAdopted
	}
	cost := PolicyCost(len(p.Policies))
	if p.CultureProgress < cost {
		return ErrInsufficientCulture
	}
	p.CultureProgress -= cost
	p.Policies = append(p.Policies, a.Policy)
	if p.CurrentPolicy == a.Policy {
		p.CurrentPolicy = ""
	}
	return nil
}

func (e *Engine) applySelectPromotion(s *state.GameState, a Action) error {
	u := s.Units[a.Unit]
	if u == nil {
		return ErrUnitNotFound
	}
	if u.Owner != a.Actor {
		return ErrNotOwner
	}
	if !knownPromotion(e.Rules, a.Promotion) {
		return ErrPromotionUnknown
	}
	for _, pr := range u.Promotions {
		if pr == a.Promotion {
			return ErrPromotionUnknown
		}
	}
	u.Promotions = append(u.Promotions, a.Promotion)
	return nil
}

func (e *Engine) applySelectMilestone(s *state.GameState, a Action) error {
	sett := s.Settlement(a.Settlement)
	if sett == nil {
		return ErrSettlementNotFound
	}
	if sett.Owner != a.Actor {
		return ErrNotOwner
	}
	if !sett.MilestonePending {
		return ErrNoMilestonePending
	}
	if !knownMilestone(e.Rules, a.Milestone) {
		return ErrMilestoneUnknown
	}

	sett.Milestones = append(sett.Milestones, a.Milestone)
	sett.MilestonePending = false
	switch a.Milestone {
	case rules.MilestoneGarrison:
		sett.MaxHealth += 5
		sett.Health += 5
	case rules.MilestoneFestival:
		sett.Culture += 5
	case rules.MilestoneIrrigate:
		sett.PopulationProgress += 5
	case rules.MilestoneStockpile:
		sett.CurrentProduction += 5
	}
	return nil
}

func (e *Engine) applyCreateTradeRoute(s *state.GameState, a Action) error {
	origin := s.Settlement(a.Settlement)
	if origin == nil {
		return ErrSettlementNotFound
	}
	if origin.Owner != a.Actor {
		return ErrNotOwner
	}
	_, err := e.createTradeRoute(s, a.Settlement, a.TargetSett)
	return err
}

// applyUseGreatPerson spends a banked great person to rush the settlement's
// head production item to completion.
func (e *Engine) applyUseGreatPerson(s *state.GameState, a Action) error {
	p := s.Player(a.Actor)
	if p.AvailableGreatPeople <= 0 {
		return ErrNoGreatPerson
	}
	sett := s.Settlement(a.Settlement)
	if sett == nil {
		return ErrSettlementNotFound
	}
	if sett.Owner != a.Actor {
		return ErrNotOwner
	}
	if len(sett.ProductionQueue) == 0 {
		return ErrQueueEmpty
	}

	p.AvailableGreatPeople--
	item := sett.ProductionQueue[0]
	item.Progress = item.Cost
	sett.ProductionQueue = sett.ProductionQueue[1:]
	e.completeProduction(s, sett, item)
	return nil
}

func (e *Engine) applySwapPolicies(s *state.GameState, a Action) error {
	p := s.Player(a.Actor)
	if !knownPolicy(e.Rules, a.Policy) || !knownPolicy(e.Rules, a.OldPolicy) {
		return ErrPolicyUnknown
	}
	if !p.HasPolicy(a.OldPolicy) {
		return ErrPolicyUnknown
	}
	if p.HasPolicy(a.Policy) {
		return ErrPolicyAdopted
	}
	for i, pol := range p.Policies {
		if pol == a.OldPolicy {
			p.Policies[i] = a.Policy
			break
		}
	}
	return nil
}

func (e *Engine) applyDeclareWar(s *state.GameState, a Action) error {
	if a.TargetTribe == a.Actor {
		return ErrSelfTarget
	}
	if s.Player(a.TargetTribe) == nil {
		return ErrPlayerNotFound
	}
	if s.StanceBetween(a.Actor, a.TargetTribe) == state.StanceWar {
		return ErrAlreadyAtWar
	}
	s.Stances[state.PairOf(a.Actor, a.TargetTribe)] = state.StanceWar
	e.cancelTradeRoutesDueToWar(s, a.Actor, a.TargetTribe)
	return nil
}

func (e *Engine) applyProposePeace(s *state.GameState, a Action) error {
	if a.TargetTribe == a.Actor {
		return ErrSelfTarget
	}
	if s.Player(a.TargetTribe) == nil {
		return ErrPlayerNotFound
	}
	if s.StanceBetween(a.Actor, a.TargetTribe) != state.StanceWar {
		return ErrNotAtWar
	}
	s.Stances[state.PairOf(a.Actor, a.TargetTribe)] = state.StanceNeutral
	return nil
}

func (e *Engine) applyProposeAlliance(s *state.GameState, a Action) error {
	if a.TargetTribe == a.Actor {
		return ErrSelfTarget
	}
	if s.Player(a.TargetTribe) == nil {
		return ErrPlayerNotFound
	}
	stance := s.StanceBetween(a.Actor, a.TargetTribe)
	if stance == state.StanceWar || stance == state.StanceHostile {
		return ErrHostileStance
	}
	s.Stances[state.PairOf(a.Actor, a.TargetTribe)] = state.StanceAllied
	return nil
}

// PolicyCost is the culture price of the next policy slot.
func PolicyCost(adopted int) int {
	return 20 + 10*adopted
}

func knownPolicy(c *rules.Catalog, id rules.PolicyID) bool {
	for _, p := range c.Policies {
		if p == id {
			return true
		}
	}
	return false
}

func knownPromotion(c *rules.Catalog, id rules.PromotionID) bool {
	for _, p := range c.Promotions {
		if p == id {
			return true
		}
	}
	return false
}

func knownMilestone(c *rules.Catalog, id rules.MilestoneID) bool {
	for _, m := range c.Milestones {
		if m == id {
			return true
		}
	}
	return false
}
