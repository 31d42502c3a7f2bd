// Package meld enumerates the combinations a player may declare from
// their hand and meld area, given the combinations already scored
// this mène.
package meld

import (
	"fmt"

	"github.com/palemoky/bezigue/internal/apperrors"
	"github.com/palemoky/bezigue/internal/game/card"
)

// Category is the closed set of combination families. A physical card
// may be consumed by at most one scored combination per category, but
// stays available to the other categories.
type Category int

const (
	CategorySquare   Category = iota // four of a kind, A/K/Q/J only
	CategoryMarriage                 // king and queen of one suit
	CategorySequence                 // J Q K 10 A of one suit
	CategoryPair                     // queen of spades + jack of diamonds
)

var categoryNames = map[Category]string{
	CategorySquare:   "square",
	CategoryMarriage: "marriage",
	CategorySequence: "sequence",
	CategoryPair:     "pair",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Point values, fixed by the rules.
const (
	MarriagePoints      = 20
	MarriageTrumpPoints = 40
	SequencePoints      = 150
	SequenceTrumpPoints = 250
	PairPoints          = 40
	DoublePairPoints    = 500
)

// squarePoints maps square ranks to their value.
var squarePoints = map[card.Rank]int{
	card.RankA: 100,
	card.RankK: 80,
	card.RankQ: 60,
	card.RankJ: 40,
}

// squareRanks in proposal order.
var squareRanks = []card.Rank{card.RankA, card.RankK, card.RankQ, card.RankJ}

var allSuits = []card.Suit{card.Spade, card.Heart, card.Diamond, card.Club}

// Combination is one scored (or proposed) meld. Once appended to a
// mène's history it is immutable.
type Combination struct {
	Category Category
	Name     string
	Points   int
	Cards    []card.Card
}

// tagSet records which categories have consumed a card.
type tagSet uint8

func (t tagSet) has(c Category) bool { return t&(1<<uint(c)) != 0 }

// usage maps card identity (rank, suit and copy) to its consumed
// categories. It is rebuilt from the history on every call, so there
// is no hidden mutable state between calls.
type usage map[card.Card]tagSet

func (u usage) free(c card.Card, cat Category) bool {
	return !u[c].has(cat)
}

func (u usage) tag(cards []card.Card, cat Category) {
	for _, c := range cards {
		u[c] |= 1 << uint(cat)
	}
}

// seedUsage replays the scored combinations into the tag map.
func seedUsage(u usage, history []Combination) {
	for _, comb := range history {
		u.tag(comb.Cards, comb.Category)
	}
}

// Detect returns the combinations newly declarable from hand plus
// meld area. The caller applies whichever ones the player actually
// declares; Detect only enumerates what is legal. Proposals of the
// same category never claim the same card, and a card proposed for a
// category in this call is not offered to that category again.
//
// A card instance appearing twice across hand and meld area is a
// caller bug and fails with ErrDuplicateCard.
func Detect(hand, meldArea []card.Card, trump card.Suit, history []Combination) ([]Combination, error) {
	pool := make([]card.Card, 0, len(hand)+len(meldArea))
	pool = append(pool, hand...)
	pool = append(pool, meldArea...)

	seen := make(map[card.Card]bool, len(pool))
	for _, c := range pool {
		if seen[c] {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateCard, c)
		}
		seen[c] = true
	}

	used := make(usage, len(pool))
	seedUsage(used, history)

	var proposals []Combination

	// Squares. Re-declaring a rank already squared requires at least
	// three fresh cards taken from the hand.
	for _, rank := range squareRanks {
		handFree := freeOfRank(hand, rank, used, CategorySquare)
		meldFree := freeOfRank(meldArea, rank, used, CategorySquare)
		alreadyPosed := historyHasSquare(history, rank)

		if len(handFree)+len(meldFree) < 4 {
			continue
		}
		if alreadyPosed && len(handFree) < 3 {
			continue
		}

		selected := append(handFree, meldFree...)[:4]
		proposals = append(proposals, Combination{
			Category: CategorySquare,
			Name:     fmt.Sprintf("4 %s", rank),
			Points:   squarePoints[rank],
			Cards:    selected,
		})
		used.tag(selected, CategorySquare)
	}

	// Sequences and marriages, suit by suit. A marriage already on
	// the table does not block the sequence: its king and queen carry
	// no sequence tag yet.
	for _, suit := range allSuits {
		seqRanks := []card.Rank{card.RankJ, card.RankQ, card.RankK, card.Rank10, card.RankA}
		seqCards := make([]card.Card, 0, 5)
		for _, r := range seqRanks {
			if c, ok := findFree(pool, r, suit, used, CategorySequence); ok {
				seqCards = append(seqCards, c)
			}
		}
		if len(seqCards) == 5 {
			points := SequencePoints
			name := fmt.Sprintf("Suite %s", suit)
			if suit == trump {
				points = SequenceTrumpPoints
				name += " d'atout"
			}
			proposals = append(proposals, Combination{
				Category: CategorySequence,
				Name:     name,
				Points:   points,
				Cards:    seqCards,
			})
			used.tag(seqCards, CategorySequence)
		}

		king, kOK := findFree(pool, card.RankK, suit, used, CategoryMarriage)
		queen, qOK := findFree(pool, card.RankQ, suit, used, CategoryMarriage)
		if kOK && qOK {
			points := MarriagePoints
			name := fmt.Sprintf("Mariage %s", suit)
			if suit == trump {
				points = MarriageTrumpPoints
				name += " d'atout"
			}
			pair := []card.Card{king, queen}
			proposals = append(proposals, Combination{
				Category: CategoryMarriage,
				Name:     name,
				Points:   points,
				Cards:    pair,
			})
			used.tag(pair, CategoryMarriage)
		}
	}

	// Queen of spades + jack of diamonds. The doubled pack allows the
	// category twice per mène; when both pairs are free at once the
	// double is proposed instead of two singles, worth 500.
	qsFree := freeOfNominal(pool, card.RankQ, card.Spade, used, CategoryPair)
	jdFree := freeOfNominal(pool, card.RankJ, card.Diamond, used, CategoryPair)
	posedPairs := historyPairCount(history)

	canPropose := min(2-posedPairs, min(len(qsFree), len(jdFree)))
	switch {
	case canPropose >= 2:
		cards := []card.Card{qsFree[0], jdFree[0], qsFree[1], jdFree[1]}
		proposals = append(proposals, Combination{
			Category: CategoryPair,
			Name:     "2×(Dame♠+Valet♦)",
			Points:   DoublePairPoints,
			Cards:    cards,
		})
		used.tag(cards, CategoryPair)
	case canPropose == 1:
		cards := []card.Card{qsFree[0], jdFree[0]}
		proposals = append(proposals, Combination{
			Category: CategoryPair,
			Name:     "Dame♠+Valet♦",
			Points:   PairPoints,
			Cards:    cards,
		})
		used.tag(cards, CategoryPair)
	}

	return proposals, nil
}

// Find returns the proposal whose card set exactly matches chosen, or
// nil. Order does not matter; copies do.
func Find(proposals []Combination, chosen []card.Card) *Combination {
	want := make(map[card.Card]bool, len(chosen))
	for _, c := range chosen {
		want[c] = true
	}
	for i := range proposals {
		p := &proposals[i]
		if len(p.Cards) != len(want) {
			continue
		}
		match := true
		for _, c := range p.Cards {
			if !want[c] {
				match = false
				break
			}
		}
		if match {
			return p
		}
	}
	return nil
}

func freeOfRank(cards []card.Card, rank card.Rank, used usage, cat Category) []card.Card {
	var out []card.Card
	for _, c := range cards {
		if c.Rank == rank && used.free(c, cat) {
			out = append(out, c)
		}
	}
	return out
}

func freeOfNominal(cards []card.Card, rank card.Rank, suit card.Suit, used usage, cat Category) []card.Card {
	var out []card.Card
	for _, c := range cards {
		if c.Rank == rank && c.Suit == suit && used.free(c, cat) {
			out = append(out, c)
		}
	}
	return out
}

func findFree(cards []card.Card, rank card.Rank, suit card.Suit, used usage, cat Category) (card.Card, bool) {
	for _, c := range cards {
		if c.Rank == rank && c.Suit == suit && used.free(c, cat) {
			return c, true
		}
	}
	return card.Card{}, false
}

func historyHasSquare(history []Combination, rank card.Rank) bool {
	for _, comb := range history {
		if comb.Category == CategorySquare && len(comb.Cards) > 0 && comb.Cards[0].Rank == rank {
			return true
		}
	}
	return false
}

// historyPairCount counts scored pair-category declarations; the
// double counts as both.
func historyPairCount(history []Combination) int {
	n := 0
	for _, comb := range history {
		if comb.Category == CategoryPair {
			n += len(comb.Cards) / 2
		}
	}
	return n
}
