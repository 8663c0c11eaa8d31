package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

const (
	// FormationTurns is the fixed delay before a new route yields gold.
	FormationTurns = 2

	tradeBaseRate   = 0.20
	tradeAlliedRate = 0.25
)

// HasTradeUnlocked reports whether the tribe has the foundational trade tech.
func (e *Engine) HasTradeUnlocked(s *state.GameState, tribe state.TribeID) bool {
	p := s.Player(tribe)
	return p != nil && p.HasTech(rules.TechTrade)
}

// TradeRouteCapacity is the tribe-wide route limit: the sum of per-tech
// capacity increments plus the tribe template's flat bonus. Capacity is
// global per tribe, not per settlement.
func (e *Engine) TradeRouteCapacity(s *state.GameState, tribe state.TribeID) int {
	p := s.Player(tribe)
	if p == nil {
		return 0
	}
	capacity := 0
	for techID := range p.ResearchedTechs {
		capacity += e.Rules.Techs[techID].Capacity
	}
	capacity += e.Rules.Tribe(p.Kind).TradeCapacityBonus
	return capacity
}

// routeCount counts the tribe's forming plus active routes. Broken routes
// never count against capacity.
func routeCount(s *state.GameState, tribe state.TribeID) int {
	n := 0
	for _, r := range s.TradeRoutes {
		if r.OwnerTribe == tribe && (r.Active || r.Forming()) {
			n++
		}
	}
	return n
}

// CalculateTradeRouteGold computes a route's per-turn gold from current
// endpoint yields: 20% of the combined gold yield, 25% when the two tribes
// are allied (external routes only), plus 1 gold per improved luxury tile
// owned by the destination (external routes only). Always at least 1.
func (e *Engine) CalculateTradeRouteGold(s *state.GameState, origin, dest *state.Settlement) int {
	combined := e.settlementGoldYield(s, origin) + e.settlementGoldYield(s, dest)

	rate := tradeBaseRate
	external := origin.Owner != dest.Owner
	if external && e.Diplomacy.Stance(s, origin.Owner, dest.Owner) == state.StanceAllied {
		rate = tradeAlliedRate
	}

	gold := int(math.Floor(float64(combined) * rate))
	if external {
		gold += e.improvedLuxuryCount(s, dest)
	}
	if gold < 1 {
		gold = 1
	}
	return gold
}

// improvedLuxuryCount counts improved luxury tiles inside the settlement's
// borders that belong to its owner.
func (e *Engine) improvedLuxuryCount(s *state.GameState, sett *state.Settlement) int {
	n := 0
	for _, c := range world.WithinRadius(sett.Position, sett.BorderRadius) {
		if owner, ok := s.TileOwner(c); !ok || owner != sett.Owner {
			continue
		}
		if !s.Improvements[c] {
			continue
		}
		if tile := e.World.Get(c); tile != nil && tile.Luxury != world.LuxuryNone {
			n++
		}
	}
	return n
}

// createTradeRoute validates and appends a new forming route on the snapshot.
// The snapshot has already been cloned by the caller.
func (e *Engine) createTradeRoute(s *state.GameState, originID, destID state.SettlementID) (*state.TradeRoute, error) {
	origin := s.Settlement(originID)
	dest := s.Settlement(destID)
	if origin == nil || dest == nil {
		return nil, ErrSettlementNotFound
	}
	if !e.HasTradeUnlocked(s, origin.Owner) {
		return nil, ErrTradeNotUnlocked
	}
	if routeCount(s, origin.Owner) >= e.TradeRouteCapacity(s, origin.Owner) {
		return nil, ErrTradeCapacityFull
	}

	if origin.Owner != dest.Owner {
		stance := e.Diplomacy.Stance(s, origin.Owner, dest.Owner)
		if stance == state.StanceWar || stance == state.StanceHostile {
			return nil, ErrHostileStance
		}
		if !e.Fog.Visible(s, origin.Owner, dest.Position) {
			return nil, ErrNotVisible
		}
		for _, r := range s.TradeRoutes {
			if r.Active && r.OwnerTribe == origin.Owner && r.Destination == destID {
				return nil, ErrDuplicateRoute
			}
		}
	}

	route := &state.TradeRoute{
		ID:               state.RouteID(e.IDs.Next()),
		Origin:           originID,
		Destination:      destID,
		OwnerTribe:       origin.Owner,
		TargetTribe:      dest.Owner,
		GoldPerTurn:      e.CalculateTradeRouteGold(s, origin, dest),
		TurnsUntilActive: FormationTurns,
	}
	s.TradeRoutes = append(s.TradeRoutes, route)
	e.refreshActiveRouteCount(s, origin.Owner)

	slog.Info("trade route created",
		"route", route.ID,
		"origin", origin.Name,
		"destination", dest.Name,
		"gold_per_turn", route.GoldPerTurn,
	)
	return route, nil
}

// CreateTradeRoute is the transactional form: it returns a new snapshot with
// the route appended, or the prior snapshot unchanged with the rejection.
func (e *Engine) CreateTradeRoute(s *state.GameState, originID, destID state.SettlementID) (*state.GameState, *state.TradeRoute, error) {
	ns := s.Clone()
	route, err := e.createTradeRoute(ns, originID, destID)
	if err != nil {
		return s, nil, err
	}
	return ns, route, nil
}

// processTradeRouteFormation advances the formation clock of every forming
// route owned by the tribe. A route reaching zero activates with a freshly
// recomputed gold rate — unless an endpoint has vanished in the meantime, in
// which case the route breaks silently instead (recovered drift, never an
// error). Called once per player during their end-of-turn pipeline.
func (e *Engine) processTradeRouteFormation(s *state.GameState, tribe state.TribeID) {
	for _, r := range s.TradeRoutes {
		if r.OwnerTribe != tribe || !r.Forming() {
			continue
		}
		r.TurnsUntilActive--
		if r.TurnsUntilActive > 0 {
			continue
		}

		origin := s.Settlement(r.Origin)
		dest := s.Settlement(r.Destination)
		if origin == nil || dest == nil {
			breakRoute(r)
			slog.Info("trade route lost endpoint before forming", "route", r.ID)
			continue
		}
		r.GoldPerTurn = e.CalculateTradeRouteGold(s, origin, dest)
		r.Active = true
		slog.Info("trade route active",
			"route", r.ID,
			"gold_per_turn", r.GoldPerTurn,
		)
	}
	e.refreshActiveRouteCount(s, tribe)
}

// ProcessTradeRouteFormation is the transactional form of formation ticking.
func (e *Engine) ProcessTradeRouteFormation(s *state.GameState, tribe state.TribeID) *state.GameState {
	ns := s.Clone()
	e.processTradeRouteFormation(ns, tribe)
	return ns
}

// CalculateTradeRouteIncome sums GoldPerTurn over the tribe's active routes.
// Forming routes contribute nothing.
func CalculateTradeRouteIncome(s *state.GameState, tribe state.TribeID) int {
	income := 0
	for _, r := range s.TradeRoutes {
		if r.Active && r.OwnerTribe == tribe {
			income += r.GoldPerTurn
		}
	}
	return income
}

// ActiveTradeRoutes returns the tribe's active routes in creation order.
func ActiveTradeRoutes(s *state.GameState, tribe state.TribeID) []*state.TradeRoute {
	var routes []*state.TradeRoute
	for _, r := range s.TradeRoutes {
		if r.Active && r.OwnerTribe == tribe {
			routes = append(routes, r)
		}
	}
	return routes
}

// breakRoute moves a route to its terminal state.
func breakRoute(r *state.TradeRoute) {
	r.Active = false
	r.Broken = true
	r.TurnsUntilActive = 0
}

// cancelTradeRoute breaks a route owned by the acting tribe. Canceling an
// already-inactive route is a no-op, not an error.
func (e *Engine) cancelTradeRoute(s *state.GameState, tribe state.TribeID, id state.RouteID) error {
	for _, r := range s.TradeRoutes {
		if r.ID != id {
			continue
		}
		if r.OwnerTribe != tribe {
			return ErrNotOwner
		}
		if r.Active || r.Forming() {
			breakRoute(r)
			e.refreshActiveRouteCount(s, tribe)
		}
		return nil
	}
	return ErrRouteNotFound
}

// pillageSettlementTradeRoutes breaks every active route touching the
// settlement at either endpoint, regardless of owner, and deposits the sum of
// their per-turn gold into the pillager's treasury as one lump payment.
// Returns routes broken and gold gained; (0, 0) when the settlement is
// missing or nothing is connected.
func (e *Engine) pillageSettlementTradeRoutes(s *state.GameState, settID state.SettlementID, pillager state.TribeID) (int, int) {
	if s.Settlement(settID) == nil {
		return 0, 0
	}

	broken := 0
	gold := 0
	owners := make(map[state.TribeID]bool)
	for _, r := range s.TradeRoutes {
		if !r.Active {
			continue
		}
		if r.Origin != settID && r.Destination != settID {
			continue
		}
		gold += r.GoldPerTurn
		breakRoute(r)
		broken++
		owners[r.OwnerTribe] = true
	}
	if broken == 0 {
		return 0, 0
	}

	if p := s.Player(pillager); p != nil {
		p.Treasury += gold
		p.GreatPeople.GoldEarned += gold
	}
	for owner := range owners {
		e.refreshActiveRouteCount(s, owner)
	}

	slog.Info("trade routes pillaged",
		"settlement", settID,
		"pillager", pillager,
		"routes_broken", broken,
		"gold_gained", gold,
	)
	return broken, gold
}

// PillageSettlementTradeRoutes is the transactional form of pillaging.
func (e *Engine) PillageSettlementTradeRoutes(s *state.GameState, settID state.SettlementID, pillager state.TribeID) (*state.GameState, int, int) {
	ns := s.Clone()
	broken, gold := e.pillageSettlementTradeRoutes(ns, settID, pillager)
	if broken == 0 {
		return s, 0, 0
	}
	return ns, broken, gold
}

// cancelTradeRoutesDueToWar breaks every active-or-forming route between the
// two tribes in either direction. Called when war is declared.
func (e *Engine) cancelTradeRoutesDueToWar(s *state.GameState, tribe1, tribe2 state.TribeID) int {
	broken := 0
	for _, r := range s.TradeRoutes {
		if !r.Active && !r.Forming() {
			continue
		}
		match := (r.OwnerTribe == tribe1 && r.TargetTribe == tribe2) ||
			(r.OwnerTribe == tribe2 && r.TargetTribe == tribe1)
		if !match {
			continue
		}
		breakRoute(r)
		broken++
	}
	if broken > 0 {
		e.refreshActiveRouteCount(s, tribe1)
		e.refreshActiveRouteCount(s, tribe2)
		slog.Info("trade routes cancelled by war", "tribe1", tribe1, "tribe2", tribe2, "count", broken)
	}
	return broken
}

// refreshActiveRouteCount resynchronizes the tribe's active-route accumulator
// consumed by the external great-person system.
func (e *Engine) refreshActiveRouteCount(s *state.GameState, tribe state.TribeID) {
	p := s.Player(tribe)
	if p == nil {
		return
	}
	n := 0
	for _, r := range s.TradeRoutes {
		if r.Active && r.OwnerTribe == tribe {
			n++
		}
	}
	p.GreatPeople.ActiveTradeRoutes = n
}
