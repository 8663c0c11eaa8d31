package state

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/talgya/hexreign/internal/world"
)

// Clone returns a deep copy of the snapshot. Entities are copied by value;
// the static world map is shared by reference.
func (s *GameState) Clone() *GameState {
	players := make([]*Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.clone()
	}

	settlements := make(map[SettlementID]*Settlement, len(s.Settlements))
	for id, sett := range s.Settlements {
		settlements[id] = sett.clone()
	}

	routes := make([]*TradeRoute, len(s.TradeRoutes))
	for i, r := range s.TradeRoutes {
		rc := *r
		routes[i] = &rc
	}

	units := make(map[UnitID]*Unit, len(s.Units))
	for id, u := range s.Units {
		uc := *u
		uc.Promotions = slices.Clone(u.Promotions)
		units[id] = &uc
	}

	return &GameState{
		Turn:          s.Turn,
		MaxTurns:      s.MaxTurns,
		CurrentPlayer: s.CurrentPlayer,
		Players:       players,
		Settlements:   settlements,
		TradeRoutes:   routes,
		Units:         units,
		TileOwners:    maps.Clone(s.TileOwners),
		Improvements:  maps.Clone(s.Improvements),
		Revealed:      cloneRevealed(s.Revealed),
		Stances:       maps.Clone(s.Stances),
	}
}

func cloneRevealed(in map[TribeID]map[world.HexCoord]bool) map[TribeID]map[world.HexCoord]bool {
	out := make(map[TribeID]map[world.HexCoord]bool, len(in))
	for tribe, set := range in {
		out[tribe] = maps.Clone(set)
	}
	return out
}

func (p *Player) clone() *Player {
	pc := *p
	pc.ResearchedTechs = maps.Clone(p.ResearchedTechs)
	pc.Policies = slices.Clone(p.Policies)
	return &pc
}

func (st *Settlement) clone() *Settlement {
	sc := *st
	sc.Buildings = maps.Clone(st.Buildings)
	sc.ProductionQueue = slices.Clone(st.ProductionQueue)
	sc.Milestones = slices.Clone(st.Milestones)
	return &sc
}
