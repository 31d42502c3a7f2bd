package card

import (
	"fmt"
	"math/rand/v2"
)

const (
	// PackSize is the size of the doubled 32-card pack.
	PackSize = 64

	// HandSize is the number of cards dealt to each player, and the
	// upper bound on hand plus meld area during replenishment.
	HandSize = 9
)

// Deck is the doubled pack.
type Deck []Card

// NewDeck builds the unshuffled 64-card pack: every rank and suit
// twice, once per copy.
func NewDeck() Deck {
	deck := make(Deck, 0, PackSize)
	for s := Spade; s <= Club; s++ {
		for r := Rank7; r <= RankA; r++ {
			deck = append(deck,
				Card{Rank: r, Suit: s, Copy: 1},
				Card{Rank: r, Suit: s, Copy: 2},
			)
		}
	}
	return deck
}

// Shuffle permutes the deck uniformly.
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// ShuffleWith permutes the deck using the given source, so tests can
// replay a deal from a seed.
func (d Deck) ShuffleWith(rng *rand.Rand) {
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// DealResult is the opening layout of a mène.
type DealResult struct {
	Hands     [2][]Card
	TrumpCard Card
	// DrawPile holds the remaining cards in draw order. The trump
	// indicator stays at the back: it belongs to the pile and is
	// drawn last.
	DrawPile []Card
}

// Deal partitions a shuffled pack: nine cards per player, the 19th
// card as trump indicator, the rest as draw pile with the indicator
// appended last.
func Deal(d Deck) (DealResult, error) {
	if len(d) != PackSize {
		return DealResult{}, fmt.Errorf("deal needs a pack of %d cards, got %d", PackSize, len(d))
	}

	res := DealResult{
		Hands: [2][]Card{
			append([]Card(nil), d[:HandSize]...),
			append([]Card(nil), d[HandSize:2*HandSize]...),
		},
		TrumpCard: d[2*HandSize],
	}
	res.DrawPile = append(append([]Card(nil), d[2*HandSize+1:]...), res.TrumpCard)
	return res, nil
}
