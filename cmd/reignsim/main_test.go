package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/hexreign/internal/state"
)

func TestOwnSettlementsSortedByID(t *testing.T) {
	gs := &state.GameState{Settlements: map[state.SettlementID]*state.Settlement{
		7: {ID: 7, Owner: 1},
		2: {ID: 2, Owner: 1},
		5: {ID: 5, Owner: 2},
		3: {ID: 3, Owner: 1},
	}}

	// Map iteration order is randomized, so take several passes.
	for i := 0; i < 20; i++ {
		setts := ownSettlements(gs, 1)
		ids := make([]state.SettlementID, len(setts))
		for j, sett := range setts {
			ids[j] = sett.ID
		}
		assert.Equal(t, []state.SettlementID{2, 3, 7}, ids)
	}
}
