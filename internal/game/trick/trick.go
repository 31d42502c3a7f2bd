// Package trick settles tricks: who wins, how many bonus points the
// played cards carry, and what the follower is obliged to play once
// the battle phase begins.
package trick

import (
	"github.com/palemoky/bezigue/internal/apperrors"
	"github.com/palemoky/bezigue/internal/game/card"
)

const (
	// BrisquePoints is awarded per Ace or Ten in the trick.
	BrisquePoints = 10

	// LastTrickBonus goes to the winner of the final trick of a mène.
	LastTrickBonus = 10
)

// Result of a resolved trick.
type Result struct {
	WinnerUID string
	LoserUID  string
	// BonusPoints is the brisque value of the two played cards.
	BonusPoints int
}

// Resolve decides a trick between the led card and the follower's
// card. Rank order is 7<8<9<J<Q<K<10<A. The leader wins an exact
// nominal tie (same rank, same suit). A trump card beats any plain
// card; two plain off-suit cards fall to the leader.
func Resolve(first, second card.Card, firstUID, secondUID string, trump card.Suit) Result {
	res := Result{
		WinnerUID:   firstUID,
		LoserUID:    secondUID,
		BonusPoints: Points(first, second),
	}

	switch {
	case first.Suit == second.Suit:
		if second.Rank > first.Rank {
			res.WinnerUID, res.LoserUID = secondUID, firstUID
		}
	case second.Suit == trump:
		res.WinnerUID, res.LoserUID = secondUID, firstUID
	}
	// Otherwise the leader keeps the trick: either they trumped a
	// plain card, or the follower discarded off suit.

	return res
}

// Points returns the brisque value of the played cards.
func Points(cards ...card.Card) int {
	points := 0
	for _, c := range cards {
		if c.IsBrisque() {
			points += BrisquePoints
		}
	}
	return points
}

// CheckFollow enforces the battle-phase obligation on the follower:
// follow the lead suit when holding it, otherwise trump when holding
// any, otherwise discard freely. The leader is never constrained;
// callers only invoke this for the second card of a trick.
func CheckFollow(played card.Card, holding []card.Card, leadSuit, trump card.Suit) error {
	if played.Suit == leadSuit {
		return nil
	}
	if holdsSuit(holding, leadSuit) {
		return apperrors.ErrMustFollowSuit
	}
	if played.Suit == trump {
		return nil
	}
	if holdsSuit(holding, trump) {
		return apperrors.ErrMustFollowSuit
	}
	return nil
}

// Playable filters the cards the follower may legally play in battle.
func Playable(holding []card.Card, leadSuit, trump card.Suit) []card.Card {
	var out []card.Card
	for _, c := range holding {
		if CheckFollow(c, holding, leadSuit, trump) == nil {
			out = append(out, c)
		}
	}
	return out
}

func holdsSuit(cards []card.Card, suit card.Suit) bool {
	for _, c := range cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}
