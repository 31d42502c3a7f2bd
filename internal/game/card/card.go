package card

import (
	"fmt"
	"strings"

	"github.com/palemoky/bezigue/internal/apperrors"
)

// Suit is a French suit.
type Suit int

// Rank is a card rank. The declaration order is the trick order of
// Bézigue: Ten outranks King, Ace is highest. Comparing two Rank
// values directly therefore compares their trick strength.
type Rank int

// Copy distinguishes the two physical decks of the doubled pack. Two
// cards with the same rank and suit but different copies are distinct
// physical cards.
type Copy int

const (
	Spade Suit = iota
	Heart
	Diamond
	Club
)

// suitSymbols maps suits to their display symbols.
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Diamond: "♦",
	Club:    "♣",
}

// suitLetters maps suits to the single-letter wire encoding.
var suitLetters = map[Suit]string{
	Spade:   "S",
	Heart:   "H",
	Diamond: "D",
	Club:    "C",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return "?"
}

// Letter returns the Latin wire letter for the suit.
func (s Suit) Letter() string {
	if letter, ok := suitLetters[s]; ok {
		return letter
	}
	return "?"
}

// suitFromRune accepts both the symbol and the Latin letter encoding.
var suitFromRune = map[rune]Suit{
	'♠': Spade, 'S': Spade, 's': Spade,
	'♥': Heart, 'H': Heart, 'h': Heart,
	'♦': Diamond, 'D': Diamond, 'd': Diamond,
	'♣': Club, 'C': Club, 'c': Club,
}

const (
	Rank7 Rank = iota
	Rank8
	Rank9
	RankJ
	RankQ
	RankK
	Rank10
	RankA
)

// rankNames maps ranks to their display strings.
var rankNames = map[Rank]string{
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	Rank10: "10",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "?"
}

var rankFromRune = map[rune]Rank{
	'7': Rank7,
	'8': Rank8,
	'9': Rank9,
	'J': RankJ, 'j': RankJ,
	'Q': RankQ, 'q': RankQ,
	'K': RankK, 'k': RankK,
	'A': RankA, 'a': RankA,
}

// Card is an immutable card value.
type Card struct {
	Rank Rank
	Suit Suit
	Copy Copy
}

// Parse decodes a card code like "A♠", "AS", "10D" or "QH_2" into a
// Card. The suit may be a symbol or a Latin letter; a missing copy
// suffix defaults to copy 1. Rank "10" is the only two-character rank
// and is matched greedily before single characters.
func Parse(code string) (Card, error) {
	base := strings.TrimSpace(code)
	copyNum := Copy(1)

	if i := strings.IndexByte(base, '_'); i >= 0 {
		switch base[i+1:] {
		case "1":
			copyNum = 1
		case "2":
			copyNum = 2
		default:
			return Card{}, fmt.Errorf("%w: %q has copy %q", apperrors.ErrInvalidCardCode, code, base[i+1:])
		}
		base = base[:i]
	}

	runes := []rune(base)

	var rank Rank
	switch {
	case len(runes) == 3 && runes[0] == '1' && runes[1] == '0':
		rank = Rank10
		runes = runes[2:]
	case len(runes) == 2:
		r, ok := rankFromRune[runes[0]]
		if !ok {
			return Card{}, fmt.Errorf("%w: %q has rank %q", apperrors.ErrInvalidCardCode, code, string(runes[0]))
		}
		rank = r
		runes = runes[1:]
	default:
		return Card{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCardCode, code)
	}

	suit, ok := suitFromRune[runes[0]]
	if !ok {
		return Card{}, fmt.Errorf("%w: %q has suit %q", apperrors.ErrInvalidCardCode, code, string(runes[0]))
	}

	return Card{Rank: rank, Suit: suit, Copy: copyNum}, nil
}

// MustParse is Parse for codes known to be valid, such as test fixtures.
func MustParse(code string) Card {
	c, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the canonical wire code, e.g. "10D_2". Every card of
// the doubled pack has a distinct canonical code.
func (c Card) String() string {
	return fmt.Sprintf("%s%s_%d", c.Rank, c.Suit.Letter(), c.Copy)
}

// ShortCode returns the display code without the copy suffix, e.g. "A♠".
func (c Card) ShortCode() string {
	return c.Rank.String() + c.Suit.String()
}

// SameNominal reports whether two cards are duplicates of the same
// nominal card, i.e. equal rank and suit regardless of copy.
func (c Card) SameNominal(o Card) bool {
	return c.Rank == o.Rank && c.Suit == o.Suit
}

// IsBrisque reports whether the card is worth ten trick points.
func (c Card) IsBrisque() bool {
	return c.Rank == RankA || c.Rank == Rank10
}

// Strings converts cards to their canonical codes.
func Strings(cards []Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.String()
	}
	return codes
}

// ParseAll decodes a list of card codes, failing on the first bad one.
func ParseAll(codes []string) ([]Card, error) {
	cards := make([]Card, len(codes))
	for i, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
