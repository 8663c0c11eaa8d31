package engine

import (
	"log/slog"
	"math"

	"github.com/talgya/hexreign/internal/state"
)

// GoldIncomeBreakdown is the economy aggregation for one tribe, exposed for
// presentation-layer summaries.
type GoldIncomeBreakdown struct {
	SettlementGold int
	TradeIncome    int
	Gross          int // After the golden-age bonus, applied once to the sum
	Maintenance    int
	Net            int
}

// CalculateGoldIncome rolls up the tribe's per-turn gold: settlement plus
// building yields plus trade income, with any golden-age bonus applied once
// to the gross (floored), minus building and unit upkeep.
func (e *Engine) CalculateGoldIncome(s *state.GameState, tribe state.TribeID) GoldIncomeBreakdown {
	var b GoldIncomeBreakdown

	for _, sett := range s.Settlements {
		if sett.Owner == tribe {
			b.SettlementGold += e.SettlementYield(s, sett).Gold
		}
	}
	b.TradeIncome = CalculateTradeRouteIncome(s, tribe)

	gross := b.SettlementGold + b.TradeIncome
	if mult := e.GoldenAges.GoldBonus(s, tribe); mult != 1.0 {
		gross = int(math.Floor(float64(gross) * mult))
	}
	b.Gross = gross

	b.Maintenance = e.calculateMaintenance(s, tribe)
	b.Net = b.Gross - b.Maintenance
	return b
}

// calculateMaintenance sums building upkeep and flat per-unit upkeep.
// Civilian units cost nothing.
func (e *Engine) calculateMaintenance(s *state.GameState, tribe state.TribeID) int {
	upkeep := 0
	for _, sett := range s.Settlements {
		if sett.Owner != tribe {
			continue
		}
		for id := range sett.Buildings {
			upkeep += e.Rules.Buildings[id].Upkeep
		}
	}
	for _, u := range s.Units {
		if u.Owner == tribe {
			upkeep += e.Rules.Units[u.Kind].Upkeep
		}
	}
	return upkeep
}

// processPlayerEconomy applies the turn's net gold to the treasury, clamped
// at zero. Debt is impossible; a shortfall is absorbed silently.
func (e *Engine) processPlayerEconomy(s *state.GameState, tribe state.TribeID) {
	p := s.Player(tribe)
	if p == nil {
		return
	}
	b := e.CalculateGoldIncome(s, tribe)
	p.Treasury += b.Net
	if p.Treasury < 0 {
		p.Treasury = 0
	}
	if b.Net > 0 {
		p.GreatPeople.GoldEarned += b.Net
	}
	slog.Debug("economy processed",
		"tribe", tribe,
		"gross", b.Gross,
		"maintenance", b.Maintenance,
		"treasury", p.Treasury,
	)
}

// ProcessPlayerEconomy is the transactional form of the treasury update.
func (e *Engine) ProcessPlayerEconomy(s *state.GameState, tribe state.TribeID) *state.GameState {
	ns := s.Clone()
	e.processPlayerEconomy(ns, tribe)
	return ns
}
