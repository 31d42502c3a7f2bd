package protocol

// Error codes grouped by layer: 1xxx transport, 2xxx room, 3xxx game.
const (
	ErrCodeUnknown           = 1000
	ErrCodeInvalidMsg        = 1001
	ErrCodeServerMaintenance = 1002

	ErrCodeRoomNotFound = 2001
	ErrCodeRoomFull     = 2002
	ErrCodeNotInRoom    = 2003
	ErrCodeGameStarted  = 2004

	ErrCodeGameNotStart     = 3001
	ErrCodeNotYourTurn      = 3002
	ErrCodeInvalidCardCode  = 3003
	ErrCodeCardNotAvailable = 3004
	ErrCodeIllegalAction    = 3005
	ErrCodeStaleState       = 3006
	ErrCodeDuplicateCard    = 3007
	ErrCodeInvalidMeld      = 3008
	ErrCodeCannotExchange   = 3009
	ErrCodeMustFollowSuit   = 3010
	ErrCodeHandFull         = 3011
	ErrCodeNotYourDraw      = 3012
	ErrCodeDrawPileEmpty    = 3013
)

// ErrorMessages maps error codes to user-facing text.
var ErrorMessages = map[int]string{
	ErrCodeUnknown:           "unknown error",
	ErrCodeInvalidMsg:        "invalid message format",
	ErrCodeServerMaintenance: "server is under maintenance",
	ErrCodeRoomNotFound:      "room does not exist",
	ErrCodeRoomFull:          "room is full",
	ErrCodeNotInRoom:         "you are not in a room",
	ErrCodeGameStarted:       "game already started",
	ErrCodeGameNotStart:      "game has not started",
	ErrCodeNotYourTurn:       "it is not your turn",
	ErrCodeInvalidCardCode:   "invalid card code",
	ErrCodeCardNotAvailable:  "card is not in the claimed zone",
	ErrCodeIllegalAction:     "action is not legal in the current phase",
	ErrCodeStaleState:        "state changed, refetch and retry",
	ErrCodeDuplicateCard:     "duplicate card instance",
	ErrCodeInvalidMeld:       "combination is not declarable",
	ErrCodeCannotExchange:    "trump exchange is not available",
	ErrCodeMustFollowSuit:    "you must follow suit or trump",
	ErrCodeHandFull:          "hand and meld already hold nine cards",
	ErrCodeNotYourDraw:       "it is not your turn to draw",
	ErrCodeDrawPileEmpty:     "the draw pile is empty",
}
