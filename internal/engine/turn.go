package engine

import (
	"log/slog"

	"golang.org/x/exp/slices"

	"github.com/talgya/hexreign/internal/state"
)

// processEndOfTurn runs the current player's fixed-order end-of-turn pipeline
// on the cloned snapshot, then rotates to the next player. A full wrap of the
// rotation advances the turn counter.
//
// Order: trade formation, settlement growth/culture/regeneration, production,
// research and culture projects, economy, unit refresh.
func (e *Engine) processEndOfTurn(s *state.GameState) {
	tribe := s.CurrentPlayer

	e.processTradeRouteFormation(s, tribe)

	for _, sett := range e.settlementsOf(s, tribe) {
		e.processSettlementGrowth(s, sett)
		e.processSettlementCulture(s, sett)
		ProcessSettlementRegeneration(sett)
	}

	for _, sett := range e.settlementsOf(s, tribe) {
		for _, item := range e.processSettlementProduction(s, sett) {
			e.completeProduction(s, sett, item)
		}
	}

	e.processResearch(s, tribe)
	e.processCultureProject(s, tribe)
	e.processPlayerEconomy(s, tribe)

	for _, u := range s.Units {
		if u.Owner == tribe {
			u.MovesLeft = e.Rules.Units[u.Kind].Moves
		}
	}

	e.rotate(s)
}

// settlementsOf returns the tribe's settlements in id order so every replay
// processes them identically.
func (e *Engine) settlementsOf(s *state.GameState, tribe state.TribeID) []*state.Settlement {
	var ids []state.SettlementID
	for id, sett := range s.Settlements {
		if sett.Owner == tribe {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	setts := make([]*state.Settlement, len(ids))
	for i, id := range ids {
		setts[i] = s.Settlements[id]
	}
	return setts
}

// processResearch accrues the tribe's research yield into the active project,
// completing it and carrying any remainder forward.
func (e *Engine) processResearch(s *state.GameState, tribe state.TribeID) {
	p := s.Player(tribe)
	if p == nil || p.CurrentResearch == "" {
		return
	}
	tech, ok := e.Rules.Techs[p.CurrentResearch]
	if !ok {
		// Ruleset drift; drop the project silently.
		p.CurrentResearch = ""
		p.ResearchProgress = 0
		return
	}

	for _, sett := range e.settlementsOf(s, tribe) {
		p.ResearchProgress += e.SettlementYield(s, sett).Research
	}
	if p.ResearchProgress < tech.Cost {
		return
	}

	p.ResearchProgress -= tech.Cost
	p.ResearchedTechs[tech.ID] = true
	p.CurrentResearch = ""
	slog.Info("technology researched", "tribe", tribe, "tech", tech.ID)
}

// processCultureProject accrues culture toward the selected policy and adopts
// it on completion, carrying the remainder.
func (e *Engine) processCultureProject(s *state.GameState, tribe state.TribeID) {
	p := s.Player(tribe)
	if p == nil {
		return
	}
	for _, sett := range e.settlementsOf(s, tribe) {
		p.CultureProgress += e.SettlementYield(s, sett).Culture
	}
	if p.CurrentPolicy == "" {
		return
	}
	cost := PolicyCost(len(p.Policies))
	if p.CultureProgress < cost {
		return
	}
	p.CultureProgress -= cost
	p.Policies = append(p.Policies, p.CurrentPolicy)
	slog.Info("policy adopted", "tribe", tribe, "policy", p.CurrentPolicy)
	p.CurrentPolicy = ""
}

// rotate hands the turn to the next player in fixed seating order; wrapping
// back to the first player advances the round counter.
func (e *Engine) rotate(s *state.GameState) {
	idx := -1
	for i, p := range s.Players {
		if p.Tribe == s.CurrentPlayer {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := (idx + 1) % len(s.Players)
	s.CurrentPlayer = s.Players[next].Tribe
	if next == 0 {
		s.Turn++
	}
}
