package engine

import (
	"math"

	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
)

// unitSpeedBonus returns the tribe's production speed multiplier delta for a
// queued item, or 0 when it does not apply. Only units of the tribe's bonus
// class are eligible.
func (e *Engine) unitSpeedBonus(kind rules.TribeKind, item state.ProductionItem) float64 {
	if item.Type != state.ProduceUnit {
		return 0
	}
	tribe := e.Rules.Tribe(kind)
	if tribe.ProductionBonus <= 0 {
		return 0
	}
	if e.Rules.Units[item.UnitID].Class != tribe.BonusClass {
		return 0
	}
	return tribe.ProductionBonus
}

// processSettlementProduction applies one turn of production to the
// settlement's queue and returns the completed items in completion order.
//
// The turn's production is the settlement yield scaled by any golden-age
// multiplier (floored), plus the overflow carried from last turn. The head
// item sees an "effective" amount scaled by the tribe's unit speed bonus;
// when it completes, the unscaled production actually consumed is
// ceil(remaining / (1+bonus)), never more than what was available. Leftover
// overflow carries to next turn. An empty queue is a no-op.
func (e *Engine) processSettlementProduction(s *state.GameState, sett *state.Settlement) []state.ProductionItem {
	if len(sett.ProductionQueue) == 0 {
		return nil
	}

	p := s.Player(sett.Owner)
	total := e.SettlementYield(s, sett).Production
	if mult := e.GoldenAges.ProductionBonus(s, sett.Owner); mult != 1.0 {
		total = int(math.Floor(float64(total) * mult))
	}
	overflow := sett.CurrentProduction + total

	var completed []state.ProductionItem
	for len(sett.ProductionQueue) > 0 && overflow > 0 {
		head := &sett.ProductionQueue[0]
		bonus := 0.0
		if p != nil {
			bonus = e.unitSpeedBonus(p.Kind, *head)
		}

		effective := overflow
		if bonus > 0 {
			effective = int(math.Floor(float64(overflow) * (1 + bonus)))
		}

		remaining := head.Cost - head.Progress
		if effective >= remaining {
			consumed := remaining
			if bonus > 0 {
				consumed = int(math.Ceil(float64(remaining) / (1 + bonus)))
			}
			if consumed > overflow {
				consumed = overflow
			}
			overflow -= consumed

			item := *head
			item.Progress = item.Cost
			completed = append(completed, item)
			sett.ProductionQueue = sett.ProductionQueue[1:]
			continue
		}

		head.Progress += effective
		overflow = 0
	}

	sett.CurrentProduction = overflow
	return completed
}

// queueProduction validates and appends a build order to the settlement's
// queue on an already-cloned snapshot.
func (e *Engine) queueProduction(s *state.GameState, sett *state.Settlement, item state.ProductionItem) error {
	p := s.Player(sett.Owner)
	if p == nil {
		return ErrPlayerNotFound
	}

	switch item.Type {
	case state.ProduceUnit:
		def, ok := e.Rules.Units[item.UnitID]
		if !ok {
			return ErrBuildUnknown
		}
		if def.Requires != "" && !p.HasTech(def.Requires) {
			return ErrBuildLocked
		}
		item.Cost = def.Cost

	case state.ProduceBuilding, state.ProduceWonder:
		def, ok := e.Rules.Buildings[item.Building]
		if !ok {
			return ErrBuildUnknown
		}
		if def.Requires != "" && !p.HasTech(def.Requires) {
			return ErrBuildLocked
		}
		if sett.Buildings[item.Building] {
			return ErrAlreadyBuilt
		}
		if def.IsWonder && wonderBuiltAnywhere(s, item.Building) {
			return ErrWonderBuilt
		}
		item.Cost = def.Cost

	default:
		return ErrBuildUnknown
	}

	item.Progress = 0
	sett.ProductionQueue = append(sett.ProductionQueue, item)
	return nil
}

// wonderBuiltAnywhere reports whether any settlement already has the wonder.
func wonderBuiltAnywhere(s *state.GameState, id rules.BuildingID) bool {
	for _, sett := range s.Settlements {
		if sett.Buildings[id] {
			return true
		}
	}
	return false
}

// completeProduction materializes a finished item: spawn the unit at the
// settlement or add the building, updating great-people counters.
func (e *Engine) completeProduction(s *state.GameState, sett *state.Settlement, item state.ProductionItem) {
	p := s.Player(sett.Owner)

	switch item.Type {
	case state.ProduceUnit:
		def := e.Rules.Units[item.UnitID]
		unit := &state.Unit{
			ID:        state.UnitID(e.IDs.Next()),
			Kind:      item.UnitID,
			Owner:     sett.Owner,
			Position:  sett.Position,
			Health:    100,
			MovesLeft: def.Moves,
		}
		s.Units[unit.ID] = unit

	case state.ProduceBuilding, state.ProduceWonder:
		sett.Buildings[item.Building] = true
		if p != nil {
			if e.Rules.Buildings[item.Building].IsWonder {
				p.GreatPeople.WondersBuilt++
			} else {
				p.GreatPeople.BuildingsBuilt++
			}
		}
	}
}
