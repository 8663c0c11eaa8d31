package engine

import (
	"math"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
)

// Side-effect-free reads consumed by the presentation layer. Nothing in this
// file mutates a snapshot.

// TradeSummary is a tribe's trade position at a glance.
type TradeSummary struct {
	Capacity int
	Forming  int
	Active   int
	Income   int
}

// TradeSummaryFor reports the tribe's route counts against capacity.
func (e *Engine) TradeSummaryFor(s *state.GameState, tribe state.TribeID) TradeSummary {
	sum := TradeSummary{
		Capacity: e.TradeRouteCapacity(s, tribe),
		Income:   CalculateTradeRouteIncome(s, tribe),
	}
	for _, r := range s.TradeRoutes {
		if r.OwnerTribe != tribe {
			continue
		}
		switch {
		case r.Active:
			sum.Active++
		case r.Forming():
			sum.Forming++
		}
	}
	return sum
}

// ProductionChoice is one buildable option for a settlement.
type ProductionChoice struct {
	Item  state.ProductionItem
	Name  string
	Turns int // Estimated turns to complete at current output; 0 = unknown
}

// AvailableProduction lists everything the settlement can start building
// under the owner's current techs.
func (e *Engine) AvailableProduction(s *state.GameState, sett *state.Settlement) []ProductionChoice {
	p := s.Player(sett.Owner)
	if p == nil {
		return nil
	}
	perTurn := e.SettlementYield(s, sett).Production

	var choices []ProductionChoice
	for _, def := range e.Rules.Units {
		if def.Requires != "" && !p.HasTech(def.Requires) {
			continue
		}
		choices = append(choices, ProductionChoice{
			Item:  state.ProductionItem{Type: state.ProduceUnit, UnitID: def.ID, Cost: def.Cost},
			Name:  def.Name,
			Turns: turnsToComplete(def.Cost, perTurn),
		})
	}
	for _, def := range e.Rules.Buildings {
		if def.Requires != "" && !p.HasTech(def.Requires) {
			continue
		}
		if sett.Buildings[def.ID] {
			continue
		}
		if def.IsWonder && wonderBuiltAnywhere(s, def.ID) {
			continue
		}
		t := state.ProduceBuilding
		if def.IsWonder {
			t = state.ProduceWonder
		}
		choices = append(choices, ProductionChoice{
			Item:  state.ProductionItem{Type: t, Building: def.ID, Cost: def.Cost},
			Name:  def.Name,
			Turns: turnsToComplete(def.Cost, perTurn),
		})
	}
	return choices
}

// ProductionTurnsRemaining estimates turns until the head queue item
// completes at current output, counting the overflow carry. Zero means an
// empty queue or no output.
func (e *Engine) ProductionTurnsRemaining(s *state.GameState, sett *state.Settlement) int {
	if len(sett.ProductionQueue) == 0 {
		return 0
	}
	head := sett.ProductionQueue[0]
	remaining := head.Cost - head.Progress - sett.CurrentProduction
	if remaining <= 0 {
		return 1
	}
	return turnsToComplete(remaining, e.SettlementYield(s, sett).Production)
}

// ResearchTurnsRemaining estimates turns until the current tech completes.
func (e *Engine) ResearchTurnsRemaining(s *state.GameState, tribe state.TribeID) int {
	p := s.Player(tribe)
	if p == nil || p.CurrentResearch == "" {
		return 0
	}
	tech, ok := e.Rules.Techs[p.CurrentResearch]
	if !ok {
		return 0
	}
	perTurn := 0
	for _, sett := range e.settlementsOf(s, tribe) {
		perTurn += e.SettlementYield(s, sett).Research
	}
	return turnsToComplete(tech.Cost-p.ResearchProgress, perTurn)
}

// AvailableTechs lists researchable techs whose prerequisites are met.
func (e *Engine) AvailableTechs(s *state.GameState, tribe state.TribeID) []rules.Tech {
	p := s.Player(tribe)
	if p == nil {
		return nil
	}
	var techs []rules.Tech
	for _, tech := range e.Rules.Techs {
		if p.HasTech(tech.ID) {
			continue
		}
		ok := true
		for _, pre := range tech.Prereqs {
			if !p.HasTech(pre) {
				ok = false
				break
			}
		}
		if ok {
			techs = append(techs, tech)
		}
	}
	return techs
}

func turnsToComplete(remaining, perTurn int) int {
	if perTurn <= 0 {
		return 0
	}
	return int(math.Ceil(float64(remaining) / float64(perTurn)))
}
