package engine

import "errors"

// Illegal-action errors. Every rejection branch surfaces a distinct error so
// callers and tests can tell conditions apart; the prior snapshot is always
// returned unchanged alongside one of these.
var (
	ErrUnknownAction        = errors.New("unknown action type")
	ErrNotYourTurn          = errors.New("not this tribe's turn")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrSettlementNotFound   = errors.New("settlement not found")
	ErrUnitNotFound         = errors.New("unit not found")
	ErrWrongUnitKind        = errors.New("unit kind cannot perform this action")
	ErrRouteNotFound        = errors.New("trade route not found")
	ErrNotOwner             = errors.New("not the owner")
	ErrTileNotFound         = errors.New("no tile at that position")
	ErrTileImpassable       = errors.New("tile is water or mountain")
	ErrTooCloseToSettlement = errors.New("too close to an existing settlement")
	ErrNoMovesLeft          = errors.New("unit has no movement left")
	ErrNotAdjacent          = errors.New("target is not adjacent")
	ErrTradeNotUnlocked     = errors.New("trade routes not unlocked")
	ErrTradeCapacityFull    = errors.New("trade route capacity reached")
	ErrHostileStance        = errors.New("stance forbids trade")
	ErrNotVisible           = errors.New("destination not revealed")
	ErrDuplicateRoute       = errors.New("destination already hosts a route from this tribe")
	ErrTechUnknown          = errors.New("unknown technology")
	ErrTechResearched       = errors.New("technology already researched")
	ErrMissingPrereq        = errors.New("missing prerequisite technology")
	ErrPolicyUnknown        = errors.New("unknown policy")
	ErrPolicyAdopted        = errors.New("policy already adopted")
	ErrPromotionUnknown     = errors.New("unknown promotion")
	ErrMilestoneUnknown     = errors.New("unknown milestone")
	ErrNoMilestonePending   = errors.New("no milestone choice pending")
	ErrBuildUnknown         = errors.New("unknown production item")
	ErrBuildLocked          = errors.New("required technology not researched")
	ErrAlreadyBuilt         = errors.New("building already present")
	ErrWonderBuilt          = errors.New("wonder already built this game")
	ErrQueueEmpty           = errors.New("production queue is empty")
	ErrNotAtWar             = errors.New("tribes are not at war")
	ErrSettlementStanding   = errors.New("settlement still stands")
	ErrAlreadyAtWar         = errors.New("tribes are already at war")
	ErrSelfTarget           = errors.New("cannot target yourself")
	ErrTileOccupied         = errors.New("tile already occupied")
	ErrNotImprovable        = errors.New("tile cannot be improved")
	ErrInsufficientCulture  = errors.New("insufficient culture")
	ErrNoGreatPerson        = errors.New("no great person available")
)
