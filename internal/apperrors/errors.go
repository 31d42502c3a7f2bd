package apperrors

import (
	"github.com/palemoky/bezigue/internal/protocol"
)

// GameError is the typed failure shared by the engine, rooms and handlers.
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// Room errors.
var (
	ErrRoomNotFound = &GameError{Code: protocol.ErrCodeRoomNotFound, Message: "room does not exist"}
	ErrRoomFull     = &GameError{Code: protocol.ErrCodeRoomFull, Message: "room already has two players"}
	ErrNotInRoom    = &GameError{Code: protocol.ErrCodeNotInRoom, Message: "you are not in a room"}
	ErrGameStarted  = &GameError{Code: protocol.ErrCodeGameStarted, Message: "the first mène has already been dealt"}
	ErrGameNotStart = &GameError{Code: protocol.ErrCodeGameNotStart, Message: "the game has not started"}
)

// Engine errors. Every mutating engine operation re-validates its
// preconditions and returns one of these instead of half-applying.
var (
	ErrInvalidCardCode  = &GameError{Code: protocol.ErrCodeInvalidCardCode, Message: "invalid card code"}
	ErrCardNotAvailable = &GameError{Code: protocol.ErrCodeCardNotAvailable, Message: "card is not in the claimed zone"}
	ErrIllegalAction    = &GameError{Code: protocol.ErrCodeIllegalAction, Message: "action is not legal in the current phase"}
	ErrStaleState       = &GameError{Code: protocol.ErrCodeStaleState, Message: "state changed underneath the action, refetch and retry"}
	ErrDuplicateCard    = &GameError{Code: protocol.ErrCodeDuplicateCard, Message: "the same card instance was referenced twice"}
	ErrNotYourTurn      = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "it is not your turn"}
	ErrInvalidMeld      = &GameError{Code: protocol.ErrCodeInvalidMeld, Message: "the chosen cards do not form a declarable combination"}
	ErrCannotExchange   = &GameError{Code: protocol.ErrCodeCannotExchange, Message: "trump exchange is not available"}
	ErrMustFollowSuit   = &GameError{Code: protocol.ErrCodeMustFollowSuit, Message: "you must follow the lead suit, or trump when void"}
	ErrHandFull         = &GameError{Code: protocol.ErrCodeHandFull, Message: "hand and meld already hold nine cards"}
	ErrNotYourDraw      = &GameError{Code: protocol.ErrCodeNotYourDraw, Message: "it is not your turn to draw"}
	ErrDrawPileEmpty    = &GameError{Code: protocol.ErrCodeDrawPileEmpty, Message: "the draw pile is empty"}
)
