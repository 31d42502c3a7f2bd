// Package engine is the rule engine of Bézigue: a pure, synchronous
// state machine over one Game value. Every operation validates all of
// its preconditions before touching state, so a failed call leaves
// the snapshot exactly as it was and a replayed event fails instead
// of applying twice.
package engine

import (
	"github.com/palemoky/bezigue/internal/apperrors"
	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/game/meld"
	"github.com/palemoky/bezigue/internal/game/trick"
)

// NewGame creates an empty game waiting for two players.
func NewGame(targetScore int) *Game {
	if targetScore <= 0 {
		targetScore = DefaultTargetScore
	}
	return &Game{
		Phase:       PhaseWaiting,
		TargetScore: targetScore,
		Scores:      make(map[string]int),
	}
}

// AddPlayer seats a player. Only legal while waiting and while a seat
// is free.
func (g *Game) AddPlayer(uid string) error {
	if g.Phase != PhaseWaiting {
		return apperrors.ErrGameStarted
	}
	if len(g.Players) >= 2 {
		return apperrors.ErrRoomFull
	}
	for _, p := range g.Players {
		if p == uid {
			return apperrors.ErrIllegalAction
		}
	}
	g.Players = append(g.Players, uid)
	g.Scores[uid] = 0
	g.Version++
	return nil
}

// SetTargetScore changes the winning threshold before the first deal.
func (g *Game) SetTargetScore(score int) error {
	if g.Phase != PhaseWaiting {
		return apperrors.ErrGameStarted
	}
	if score <= 0 {
		return apperrors.ErrIllegalAction
	}
	g.TargetScore = score
	g.Version++
	return nil
}

// StartMene shuffles a fresh pack and deals the next mène.
func (g *Game) StartMene() error {
	pack := card.NewDeck()
	pack.Shuffle()
	return g.StartMeneWithPack(pack)
}

// StartMeneWithPack deals the next mène from an already shuffled
// pack. Tests inject a seeded shuffle through here. Legal from
// Waiting with both seats taken, and from MeneEnd while no winner has
// been decided. The player who did not lead the previous mène leads
// the new one.
func (g *Game) StartMeneWithPack(pack card.Deck) error {
	switch g.Phase {
	case PhaseWaiting:
		if len(g.Players) != 2 {
			return apperrors.ErrGameNotStart
		}
	case PhaseMeneEnd:
	default:
		return apperrors.ErrIllegalAction
	}

	g.Phase = PhaseDealing

	deal, err := card.Deal(pack)
	if err != nil {
		return err
	}

	leader := g.Players[0]
	if g.FirstPlayer == g.Players[0] {
		leader = g.Players[1]
	}

	g.MeneIndex++
	g.FirstPlayer = leader
	g.TrumpCard = deal.TrumpCard
	g.TrumpSuit = deal.TrumpCard.Suit
	g.TrumpTaken = false
	g.DrawPile = deal.DrawPile
	g.Hands = map[string][]card.Card{
		leader:             deal.Hands[0],
		g.opponent(leader): deal.Hands[1],
	}
	g.Melds = map[string][]card.Card{}
	g.History = map[string][]meld.Combination{}
	g.MeneScores = map[string]int{g.Players[0]: 0, g.Players[1]: 0}
	g.Trick = Trick{}
	g.Tricks = nil
	g.DrawQueue = nil
	g.CurrentTurn = leader
	g.CanMeld = ""

	g.Phase = PhasePlaying
	g.Version++
	return nil
}

// PlayCard plays a card from the player's hand or meld area into the
// trick. The second card of a trick resolves it immediately.
func (g *Game) PlayCard(uid string, c card.Card) error {
	if g.Phase != PhasePlaying && g.Phase != PhaseBattle {
		return apperrors.ErrGameNotStart
	}
	if !g.seated(uid) {
		return apperrors.ErrNotInRoom
	}
	if g.CurrentTurn != uid {
		return apperrors.ErrNotYourTurn
	}
	if len(g.Trick.Cards) >= 2 {
		return apperrors.ErrStaleState
	}
	if len(g.DrawQueue) > 0 {
		// Replenishment from the previous trick is still pending.
		return apperrors.ErrIllegalAction
	}

	fromHand, inHand := removeCard(g.Hands[uid], c)
	fromMeld, inMeld := removeCard(g.Melds[uid], c)
	if !inHand && !inMeld {
		return apperrors.ErrCardNotAvailable
	}

	// The follow obligation binds only the second player, and only
	// once the draw pile is gone.
	if g.Phase == PhaseBattle && len(g.Trick.Cards) == 1 {
		holding := append(append([]card.Card(nil), g.Hands[uid]...), g.Melds[uid]...)
		if err := trick.CheckFollow(c, holding, g.Trick.LeadSuit(), g.TrumpSuit); err != nil {
			return err
		}
	}

	if inHand {
		g.Hands[uid] = fromHand
	} else {
		g.Melds[uid] = fromMeld
	}
	g.Trick.Cards = append(g.Trick.Cards, c)
	g.Trick.Players = append(g.Trick.Players, uid)
	g.CanMeld = ""

	if len(g.Trick.Cards) < 2 {
		g.CurrentTurn = g.opponent(uid)
		g.Version++
		return nil
	}

	g.resolveTrick()
	g.Version++
	return nil
}

// resolveTrick settles the full trick and advances the phase machine.
func (g *Game) resolveTrick() {
	res := trick.Resolve(
		g.Trick.Cards[0], g.Trick.Cards[1],
		g.Trick.Players[0], g.Trick.Players[1],
		g.TrumpSuit,
	)

	points := res.BonusPoints
	lastTrick := g.meneOver()
	if lastTrick {
		points += trick.LastTrickBonus
	}
	g.addPoints(res.WinnerUID, points)

	g.Tricks = append(g.Tricks, ResolvedTrick{
		Cards:     g.Trick.Cards,
		Players:   g.Trick.Players,
		WinnerUID: res.WinnerUID,
		Points:    points,
	})
	g.Trick = Trick{}
	g.CurrentTurn = res.WinnerUID

	if lastTrick {
		g.endMene()
		return
	}

	if g.Phase == PhasePlaying {
		g.DrawQueue = []string{res.WinnerUID, res.LoserUID}
		g.CanMeld = res.WinnerUID
	}
}

// meneOver reports whether every zone of the mène is exhausted.
func (g *Game) meneOver() bool {
	if len(g.DrawPile) > 0 {
		return false
	}
	for _, uid := range g.Players {
		if len(g.Hands[uid]) > 0 || len(g.Melds[uid]) > 0 {
			return false
		}
	}
	return true
}

// endMene applies the mène-end transition: Final when a player has
// reached the target with a strictly higher score, otherwise back to
// MeneEnd awaiting the next deal. An exact tie at or above the target
// is played off with a further mène (sudden death).
func (g *Game) endMene() {
	g.Phase = PhaseMeneEnd
	g.DrawQueue = nil
	g.CanMeld = ""

	a, b := g.Players[0], g.Players[1]
	best := max(g.Scores[a], g.Scores[b])
	if best < g.TargetScore || g.Scores[a] == g.Scores[b] {
		return
	}
	if g.Scores[a] > g.Scores[b] {
		g.WinnerUID = a
	} else {
		g.WinnerUID = b
	}
	g.Phase = PhaseFinal
}

// DrawCard draws the replacement card after a trick. The trick winner
// draws first, then the loser, each only up to nine cards across hand
// and meld area. Emptying the pile flips the game into battle.
func (g *Game) DrawCard(uid string) error {
	if g.Phase != PhasePlaying {
		return apperrors.ErrIllegalAction
	}
	if !g.seated(uid) {
		return apperrors.ErrNotInRoom
	}
	if len(g.DrawQueue) == 0 || g.DrawQueue[0] != uid {
		return apperrors.ErrNotYourDraw
	}
	if len(g.DrawPile) == 0 {
		return apperrors.ErrDrawPileEmpty
	}
	if len(g.Hands[uid])+len(g.Melds[uid]) >= card.HandSize {
		return apperrors.ErrHandFull
	}

	drawn := g.DrawPile[0]
	g.DrawPile = g.DrawPile[1:]
	g.Hands[uid] = append(g.Hands[uid], drawn)
	g.DrawQueue = g.DrawQueue[1:]
	if g.CanMeld == uid {
		g.CanMeld = ""
	}

	if len(g.DrawPile) == 0 {
		g.Phase = PhaseBattle
		g.DrawQueue = nil
		g.CanMeld = ""
	}

	g.Version++
	return nil
}

// DetectMelds enumerates the combinations the player could declare
// right now. Read-only.
func (g *Game) DetectMelds(uid string) ([]meld.Combination, error) {
	if !g.seated(uid) {
		return nil, apperrors.ErrNotInRoom
	}
	return meld.Detect(g.Hands[uid], g.Melds[uid], g.TrumpSuit, g.History[uid])
}

// DeclareMeld declares the combination formed by exactly the chosen
// cards. Only the winner of the previous trick may declare, once,
// before drawing. Hand cards of the combination move face up into the
// meld area; cards already melded stay where they are.
func (g *Game) DeclareMeld(uid string, chosen []card.Card) (*meld.Combination, error) {
	if g.Phase != PhasePlaying {
		return nil, apperrors.ErrIllegalAction
	}
	if !g.seated(uid) {
		return nil, apperrors.ErrNotInRoom
	}
	if g.CanMeld != uid {
		return nil, apperrors.ErrIllegalAction
	}

	proposals, err := meld.Detect(g.Hands[uid], g.Melds[uid], g.TrumpSuit, g.History[uid])
	if err != nil {
		return nil, err
	}
	found := meld.Find(proposals, chosen)
	if found == nil {
		return nil, apperrors.ErrInvalidMeld
	}

	for _, c := range found.Cards {
		if hand, ok := removeCard(g.Hands[uid], c); ok {
			g.Hands[uid] = hand
			g.Melds[uid] = append(g.Melds[uid], c)
		}
	}
	g.addPoints(uid, found.Points)
	g.History[uid] = append(g.History[uid], *found)
	g.CanMeld = ""
	g.Version++
	return found, nil
}

// CanExchange reports whether the player could swap their 7 of trump
// for the exposed indicator right now.
func (g *Game) CanExchange(uid string) bool {
	if g.Phase != PhasePlaying || g.CurrentTurn != uid || g.TrumpTaken {
		return false
	}
	if len(g.Trick.Cards) != 0 || len(g.DrawQueue) > 0 {
		return false
	}
	if !exchangeableRank(g.TrumpCard.Rank) {
		return false
	}
	_, ok := findSeven(g.Hands[uid], g.TrumpSuit)
	return ok
}

// ExchangeTrump swaps the player's 7 of trump for the exposed
// indicator card, scoring a fixed bonus. The 7 becomes the new
// indicator and keeps its place at the back of the draw pile; the
// trump suit is unchanged.
func (g *Game) ExchangeTrump(uid string) error {
	if g.Phase != PhasePlaying {
		return apperrors.ErrIllegalAction
	}
	if !g.seated(uid) {
		return apperrors.ErrNotInRoom
	}
	if g.CurrentTurn != uid {
		return apperrors.ErrNotYourTurn
	}
	if len(g.Trick.Cards) != 0 || len(g.DrawQueue) > 0 {
		return apperrors.ErrIllegalAction
	}
	if g.TrumpTaken || !exchangeableRank(g.TrumpCard.Rank) {
		return apperrors.ErrCannotExchange
	}
	seven, ok := findSeven(g.Hands[uid], g.TrumpSuit)
	if !ok {
		return apperrors.ErrCannotExchange
	}

	hand, _ := removeCard(g.Hands[uid], seven)
	g.Hands[uid] = append(hand, g.TrumpCard)

	// The indicator sits last in the pile; the 7 takes its place.
	g.DrawPile[len(g.DrawPile)-1] = seven
	g.TrumpCard = seven
	g.TrumpTaken = true
	g.addPoints(uid, ExchangeBonus)
	g.Version++
	return nil
}

// CheckVersion guards an action prepared against a possibly stale
// snapshot. The synchronization layer retries on ErrStaleState.
func (g *Game) CheckVersion(version uint64) error {
	if version != g.Version {
		return apperrors.ErrStaleState
	}
	return nil
}

func (g *Game) addPoints(uid string, points int) {
	if points == 0 {
		return
	}
	g.Scores[uid] += points
	if g.MeneScores != nil {
		g.MeneScores[uid] += points
	}
}

func (g *Game) seated(uid string) bool {
	for _, p := range g.Players {
		if p == uid {
			return true
		}
	}
	return false
}

func (g *Game) opponent(uid string) string {
	for _, p := range g.Players {
		if p != uid {
			return p
		}
	}
	return ""
}

// removeCard returns cards without the first occurrence of c.
func removeCard(cards []card.Card, c card.Card) ([]card.Card, bool) {
	for i, cc := range cards {
		if cc == c {
			out := make([]card.Card, 0, len(cards)-1)
			out = append(out, cards[:i]...)
			return append(out, cards[i+1:]...), true
		}
	}
	return cards, false
}

func exchangeableRank(r card.Rank) bool {
	switch r {
	case card.RankA, card.Rank10, card.RankK, card.RankQ, card.RankJ:
		return true
	}
	return false
}

func findSeven(hand []card.Card, trump card.Suit) (card.Card, bool) {
	for _, c := range hand {
		if c.Rank == card.Rank7 && c.Suit == trump {
			return c, true
		}
	}
	return card.Card{}, false
}
