package engine

import (
	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/game/meld"
)

// Phase is the game phase. Transitions:
//
//	Waiting -> Dealing -> Playing -> Battle -> MeneEnd -> {Dealing | Final}
//
// Playing covers the draw-replenishment part of a mène; Battle is the
// no-draw endgame with strict follow rules.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseDealing
	PhasePlaying
	PhaseBattle
	PhaseMeneEnd
	PhaseFinal
)

var phaseNames = map[Phase]string{
	PhaseWaiting: "waiting",
	PhaseDealing: "dealing",
	PhasePlaying: "playing",
	PhaseBattle:  "battle",
	PhaseMeneEnd: "mene_end",
	PhaseFinal:   "final",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// PhaseFromString is the inverse of Phase.String, for snapshots.
func PhaseFromString(s string) Phase {
	for p, name := range phaseNames {
		if name == s {
			return p
		}
	}
	return PhaseWaiting
}

// Trick is the transient in-progress trick: up to two cards tagged
// with the uid that played them. Cards[0] fixes the lead suit.
type Trick struct {
	Cards   []card.Card
	Players []string
}

// LeadSuit returns the suit led, valid only when a card is down.
func (t Trick) LeadSuit() card.Suit {
	return t.Cards[0].Suit
}

// ResolvedTrick is one settled trick of the mène's history.
type ResolvedTrick struct {
	Cards     []card.Card
	Players   []string
	WinnerUID string
	Points    int
}

// Game is the full state of a two-player game: the room-level
// aggregate plus the current mène. All fields describe one snapshot;
// the methods in this package are its only mutators.
type Game struct {
	Players     []string
	Scores      map[string]int // cumulative across mènes
	TargetScore int
	Phase       Phase
	WinnerUID   string

	// Current mène.
	MeneIndex   int
	FirstPlayer string // who led the first trick of this mène
	TrumpCard   card.Card
	TrumpSuit   card.Suit
	TrumpTaken  bool
	DrawPile    []card.Card
	Hands       map[string][]card.Card
	Melds       map[string][]card.Card // face-up meld areas
	History     map[string][]meld.Combination
	MeneScores  map[string]int
	Trick       Trick
	Tricks      []ResolvedTrick
	DrawQueue   []string
	CurrentTurn string
	CanMeld     string // uid entitled to declare, "" when the window is closed

	// Version increments on every applied mutation, so a caller
	// working from a snapshot can detect staleness.
	Version uint64
}

// DefaultTargetScore ends a game once a player accumulates this many
// points, unless the room configured another target.
const DefaultTargetScore = 2000

// ExchangeBonus is scored for swapping the 7 of trump with a valuable
// indicator card.
const ExchangeBonus = 10
