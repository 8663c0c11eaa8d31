package engine

import (
	"github.com/talgya/hexreign/internal/rules"
	"github.com/talgya/hexreign/internal/state"
	"github.com/talgya/hexreign/internal/world"
)

// Seat describes one player slot for a new game.
type Seat struct {
	Kind rules.TribeKind
	Name string
}

// NewGame seats the given tribes and returns the opening snapshot. Seating
// order is the turn rotation order for the whole game.
func (e *Engine) NewGame(seats []Seat, maxTurns int) *state.GameState {
	s := &state.GameState{
		Turn:         1,
		MaxTurns:     maxTurns,
		Settlements:  make(map[state.SettlementID]*state.Settlement),
		Units:        make(map[state.UnitID]*state.Unit),
		TileOwners:   make(map[world.HexCoord]state.TribeID),
		Improvements: make(map[world.HexCoord]bool),
		Revealed:     make(map[state.TribeID]map[world.HexCoord]bool),
		Stances:      make(map[state.TribePair]state.Stance),
	}
	for i, seat := range seats {
		tribe := state.TribeID(i + 1)
		name := seat.Name
		if name == "" {
			name = e.Rules.Tribe(seat.Kind).Name
		}
		s.Players = append(s.Players, &state.Player{
			Tribe:           tribe,
			Kind:            seat.Kind,
			Name:            name,
			ResearchedTechs: make(map[rules.TechID]bool),
		})
	}
	if len(s.Players) > 0 {
		s.CurrentPlayer = s.Players[0].Tribe
	}
	return s
}

// FoundSettlement is the transactional founding operation used during game
// setup and by tests: it validates legality and returns a new snapshot with
// the settlement placed, or the prior snapshot with the rejection.
func (e *Engine) FoundSettlement(s *state.GameState, owner state.TribeID, pos world.HexCoord, isCapital bool) (*state.GameState, *state.Settlement, error) {
	if s.Player(owner) == nil {
		return s, nil, ErrPlayerNotFound
	}
	if err := e.CanFoundSettlement(s, pos); err != nil {
		return s, nil, err
	}
	ns := s.Clone()
	sett := e.foundSettlement(ns, owner, pos, isCapital)
	return ns, sett, nil
}

// GrantTech adds a researched tech directly, bypassing the research project.
// Used by scenario setup and tests.
func GrantTech(s *state.GameState, tribe state.TribeID, tech rules.TechID) *state.GameState {
	ns := s.Clone()
	if p := ns.Player(tribe); p != nil {
		p.ResearchedTechs[tech] = true
	}
	return ns
}
