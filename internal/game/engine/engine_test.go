package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/bezigue/internal/apperrors"
	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/game/trick"
)

// riggedPack builds a full pack opening with the given codes, so a
// test controls the deal: cards 0-8 are the leader's hand, 9-17 the
// other hand, 18 the trump indicator.
func riggedPack(t *testing.T, front ...string) card.Deck {
	t.Helper()

	used := make(map[card.Card]bool, len(front))
	pack := make(card.Deck, 0, card.PackSize)
	for _, code := range front {
		c := card.MustParse(code)
		require.False(t, used[c], "rigged card %s twice", c)
		used[c] = true
		pack = append(pack, c)
	}
	for _, c := range card.NewDeck() {
		if !used[c] {
			pack = append(pack, c)
		}
	}
	require.Len(t, pack, card.PackSize)
	return pack
}

func newStartedGame(t *testing.T, pack card.Deck) *Game {
	t.Helper()

	g := NewGame(0)
	require.NoError(t, g.AddPlayer("p1"))
	require.NoError(t, g.AddPlayer("p2"))
	require.NoError(t, g.StartMeneWithPack(pack))
	return g
}

// battleGame builds a synthetic battle-phase endgame with the given
// one-or-two card hands, for testing the last tricks in isolation.
func battleGame(hands map[string][]card.Card, trump card.Suit, turn string) *Game {
	return &Game{
		Players:     []string{"p1", "p2"},
		Scores:      map[string]int{"p1": 0, "p2": 0},
		TargetScore: DefaultTargetScore,
		Phase:       PhaseBattle,
		MeneIndex:   1,
		FirstPlayer: "p1",
		TrumpSuit:   trump,
		Hands:       hands,
		Melds:       map[string][]card.Card{},
		MeneScores:  map[string]int{"p1": 0, "p2": 0},
		CurrentTurn: turn,
	}
}

func TestAddPlayer(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	require.NoError(t, g.AddPlayer("p1"))
	assert.ErrorIs(t, g.AddPlayer("p1"), apperrors.ErrIllegalAction)
	require.NoError(t, g.AddPlayer("p2"))
	assert.ErrorIs(t, g.AddPlayer("p3"), apperrors.ErrRoomFull)
	assert.Equal(t, DefaultTargetScore, g.TargetScore)
}

func TestStartMene(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	require.NoError(t, g.AddPlayer("p1"))
	assert.ErrorIs(t, g.StartMene(), apperrors.ErrGameNotStart)

	require.NoError(t, g.AddPlayer("p2"))
	pack := riggedPack(t)
	require.NoError(t, g.StartMeneWithPack(pack))

	assert.Equal(t, PhasePlaying, g.Phase)
	assert.Equal(t, 1, g.MeneIndex)
	assert.Equal(t, "p1", g.FirstPlayer)
	assert.Equal(t, "p1", g.CurrentTurn)
	assert.Len(t, g.Hands["p1"], card.HandSize)
	assert.Len(t, g.Hands["p2"], card.HandSize)
	assert.Len(t, g.DrawPile, 46)
	assert.Equal(t, pack[18], g.TrumpCard)
	assert.Equal(t, pack[18].Suit, g.TrumpSuit)
	assert.Equal(t, g.TrumpCard, g.DrawPile[len(g.DrawPile)-1])

	// A mène in progress cannot be redealt.
	assert.ErrorIs(t, g.StartMene(), apperrors.ErrIllegalAction)
}

func TestPlayTrickAndDraw(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t,
		"7S_1", "8D_1", "9C_1", "7D_1", "8C_1", "9S_1", "7C_1", "8S_1", "9D_1",
		"AS_1", "KD_1", "QC_1", "JH_1", "10C_1", "KC_1", "QD_1", "JC_1", "8H_1",
		"9H_1",
	))
	require.Equal(t, card.Heart, g.TrumpSuit)

	sevenSpades := card.MustParse("7S_1")
	aceSpades := card.MustParse("AS_1")

	// Out of turn.
	assert.ErrorIs(t, g.PlayCard("p2", aceSpades), apperrors.ErrNotYourTurn)

	require.NoError(t, g.PlayCard("p1", sevenSpades))
	assert.Equal(t, "p2", g.CurrentTurn)
	assert.Len(t, g.Trick.Cards, 1)

	// Replaying the same event fails instead of applying twice.
	assert.ErrorIs(t, g.PlayCard("p1", sevenSpades), apperrors.ErrNotYourTurn)

	require.NoError(t, g.PlayCard("p2", aceSpades))

	// Ace of the led suit takes the trick and its brisque.
	require.Len(t, g.Tricks, 1)
	assert.Equal(t, "p2", g.Tricks[0].WinnerUID)
	assert.Equal(t, 10, g.Tricks[0].Points)
	assert.Equal(t, 10, g.Scores["p2"])
	assert.Equal(t, []string{"p2", "p1"}, g.DrawQueue)
	assert.Equal(t, "p2", g.CanMeld)
	assert.Equal(t, "p2", g.CurrentTurn)

	// No play while replenishment is pending, and the loser cannot
	// draw before the winner.
	assert.ErrorIs(t, g.PlayCard("p2", card.MustParse("KD_1")), apperrors.ErrIllegalAction)
	assert.ErrorIs(t, g.DrawCard("p1"), apperrors.ErrNotYourDraw)

	require.NoError(t, g.DrawCard("p2"))
	assert.Empty(t, g.CanMeld, "drawing closes the meld window")
	require.NoError(t, g.DrawCard("p1"))

	assert.Len(t, g.Hands["p1"], card.HandSize)
	assert.Len(t, g.Hands["p2"], card.HandSize)
	assert.Len(t, g.DrawPile, 44)

	// Replaying a consumed draw fails.
	assert.ErrorIs(t, g.DrawCard("p1"), apperrors.ErrNotYourDraw)

	// The played cards are gone for good.
	assert.ErrorIs(t, g.PlayCard("p2", aceSpades), apperrors.ErrCardNotAvailable)
}

func TestDeclareMeld(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t,
		"7S_1", "8D_1", "9C_1", "7D_1", "8C_1", "9S_1", "7C_1", "8S_1", "9D_1",
		"AS_1", "KH_1", "QH_1", "JH_1", "10C_1", "KC_1", "QD_1", "JC_1", "9H_1",
		"8H_1",
	))
	require.Equal(t, card.Heart, g.TrumpSuit)

	marriage := []card.Card{card.MustParse("KH_1"), card.MustParse("QH_1")}

	// Nobody may declare before winning a trick.
	_, err := g.DeclareMeld("p2", marriage)
	assert.ErrorIs(t, err, apperrors.ErrIllegalAction)

	require.NoError(t, g.PlayCard("p1", card.MustParse("7S_1")))
	require.NoError(t, g.PlayCard("p2", card.MustParse("AS_1")))
	require.Equal(t, "p2", g.CanMeld)

	// The loser has no window.
	_, err = g.DeclareMeld("p1", marriage)
	assert.ErrorIs(t, err, apperrors.ErrIllegalAction)

	// Cards that do not form a proposal are rejected.
	_, err = g.DeclareMeld("p2", []card.Card{card.MustParse("KH_1"), card.MustParse("JH_1")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidMeld)

	combo, err := g.DeclareMeld("p2", marriage)
	require.NoError(t, err)
	assert.Equal(t, 40, combo.Points, "marriage in trump")
	assert.Equal(t, 50, g.Scores["p2"], "10 brisque + 40 marriage")
	assert.ElementsMatch(t, marriage, g.Melds["p2"])
	assert.Len(t, g.Hands["p2"], 6)
	assert.Len(t, g.History["p2"], 1)

	// One declaration per window.
	_, err = g.DeclareMeld("p2", marriage)
	assert.ErrorIs(t, err, apperrors.ErrIllegalAction)

	require.NoError(t, g.DrawCard("p2"))
	require.NoError(t, g.DrawCard("p1"))

	// Melded cards remain playable from the meld area.
	require.NoError(t, g.PlayCard("p2", card.MustParse("QH_1")))
	assert.Len(t, g.Melds["p2"], 1)
}

func TestExchangeTrump(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t,
		"7H_1", "8D_1", "9C_1", "7D_1", "8C_1", "9S_1", "7C_1", "8S_1", "9D_1",
		"AS_1", "KD_1", "QC_1", "JH_1", "10C_1", "KC_1", "QD_1", "JC_1", "7S_2",
		"KH_1",
	))
	require.Equal(t, card.Heart, g.TrumpSuit)

	seven := card.MustParse("7H_1")
	king := card.MustParse("KH_1")

	// Not the opponent's move.
	assert.ErrorIs(t, g.ExchangeTrump("p2"), apperrors.ErrNotYourTurn)

	assert.True(t, g.CanExchange("p1"))
	require.NoError(t, g.ExchangeTrump("p1"))

	assert.Equal(t, seven, g.TrumpCard)
	assert.Equal(t, seven, g.DrawPile[len(g.DrawPile)-1], "the 7 takes the indicator's place in the pile")
	assert.Contains(t, g.Hands["p1"], king)
	assert.NotContains(t, g.Hands["p1"], seven)
	assert.True(t, g.TrumpTaken)
	assert.Equal(t, ExchangeBonus, g.Scores["p1"])
	assert.Equal(t, card.Heart, g.TrumpSuit, "trump suit never changes")

	// Once per mène.
	assert.ErrorIs(t, g.ExchangeTrump("p1"), apperrors.ErrCannotExchange)

	// Not in the middle of a trick.
	require.NoError(t, g.PlayCard("p1", card.MustParse("8D_1")))
	assert.False(t, g.CanExchange("p2"))
	assert.ErrorIs(t, g.ExchangeTrump("p2"), apperrors.ErrIllegalAction)
}

func TestExchangeNeedsValuableIndicator(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t,
		"7H_1", "8D_1", "9C_1", "7D_1", "8C_1", "9S_1", "7C_1", "8S_1", "9D_1",
		"AS_1", "KD_1", "QC_1", "JH_1", "10C_1", "KC_1", "QD_1", "JC_1", "KH_1",
		"9H_1",
	))
	require.Equal(t, card.Heart, g.TrumpSuit)

	assert.False(t, g.CanExchange("p1"))
	assert.ErrorIs(t, g.ExchangeTrump("p1"), apperrors.ErrCannotExchange)
}

func TestBattleFollowObligation(t *testing.T) {
	t.Parallel()

	g := battleGame(map[string][]card.Card{
		"p1": {card.MustParse("AS_1"), card.MustParse("8D_1")},
		"p2": {card.MustParse("7S_1"), card.MustParse("KH_1")},
	}, card.Heart, "p1")

	require.NoError(t, g.PlayCard("p1", card.MustParse("AS_1")))

	// Holding a spade, the follower may not trump.
	assert.ErrorIs(t, g.PlayCard("p2", card.MustParse("KH_1")), apperrors.ErrMustFollowSuit)
	require.NoError(t, g.PlayCard("p2", card.MustParse("7S_1")))
	assert.Equal(t, "p1", g.Tricks[0].WinnerUID)

	// Void in spades now: the trump is forced over the free discard
	// on the next lead.
	require.NoError(t, g.PlayCard("p1", card.MustParse("8D_1")))
	require.NoError(t, g.PlayCard("p2", card.MustParse("KH_1")))
	assert.Equal(t, "p2", g.Tricks[1].WinnerUID)
}

func TestLastTrickBonusAndMeneEnd(t *testing.T) {
	t.Parallel()

	g := battleGame(map[string][]card.Card{
		"p1": {card.MustParse("AS_1")},
		"p2": {card.MustParse("7S_1")},
	}, card.Heart, "p1")

	require.NoError(t, g.PlayCard("p1", card.MustParse("AS_1")))
	require.NoError(t, g.PlayCard("p2", card.MustParse("7S_1")))

	assert.Equal(t, PhaseMeneEnd, g.Phase)
	assert.Equal(t, 20, g.Scores["p1"], "brisque plus last-trick bonus")
	assert.Empty(t, g.WinnerUID)
}

func TestTargetReached(t *testing.T) {
	t.Parallel()

	g := battleGame(map[string][]card.Card{
		"p1": {card.MustParse("AS_1")},
		"p2": {card.MustParse("7S_1")},
	}, card.Heart, "p1")
	g.Scores = map[string]int{"p1": 1990, "p2": 100}

	require.NoError(t, g.PlayCard("p1", card.MustParse("AS_1")))
	require.NoError(t, g.PlayCard("p2", card.MustParse("7S_1")))

	assert.Equal(t, PhaseFinal, g.Phase)
	assert.Equal(t, "p1", g.WinnerUID)
	assert.Equal(t, 2010, g.Scores["p1"])
}

func TestExactTieIsSuddenDeath(t *testing.T) {
	t.Parallel()

	// No brisques in the last trick: the winner gains exactly the
	// last-trick bonus and both players sit on the target.
	g := battleGame(map[string][]card.Card{
		"p1": {card.MustParse("9S_1")},
		"p2": {card.MustParse("7S_1")},
	}, card.Heart, "p1")
	g.Scores = map[string]int{"p1": 1990, "p2": 2000}

	require.NoError(t, g.PlayCard("p1", card.MustParse("9S_1")))
	require.NoError(t, g.PlayCard("p2", card.MustParse("7S_1")))

	assert.Equal(t, 2000, g.Scores["p1"])
	assert.Equal(t, PhaseMeneEnd, g.Phase, "an exact tie plays a further mène")
	assert.Empty(t, g.WinnerUID)

	// The tie-break mène deals normally and the lead alternates.
	require.NoError(t, g.StartMeneWithPack(riggedPack(t)))
	assert.Equal(t, PhasePlaying, g.Phase)
	assert.Equal(t, "p2", g.FirstPlayer)
	assert.Equal(t, 2, g.MeneIndex)
}

func TestFullMenePlaysOut(t *testing.T) {
	t.Parallel()

	pack := card.NewDeck()
	pack.ShuffleWith(rand.New(rand.NewPCG(42, 0)))
	g := newStartedGame(t, pack)

	// Play the whole mène with no declarations: every trick's points
	// come from brisques, plus the final bonus.
	for g.Phase == PhasePlaying || g.Phase == PhaseBattle {
		leader := g.CurrentTurn
		require.NoError(t, g.PlayCard(leader, g.Hands[leader][0]))

		follower := g.CurrentTurn
		var c card.Card
		if g.Phase == PhaseBattle {
			c = trick.Playable(g.Hands[follower], g.Trick.LeadSuit(), g.TrumpSuit)[0]
		} else {
			c = g.Hands[follower][0]
		}
		require.NoError(t, g.PlayCard(follower, c))

		for len(g.DrawQueue) > 0 {
			require.NoError(t, g.DrawCard(g.DrawQueue[0]))
		}
	}

	assert.Equal(t, PhaseMeneEnd, g.Phase)
	assert.Len(t, g.Tricks, 32)
	assert.Empty(t, g.DrawPile)
	assert.Empty(t, g.Hands["p1"])
	assert.Empty(t, g.Hands["p2"])

	// 16 brisque cards at 10 each, plus 10 for the last trick.
	assert.Equal(t, 170, g.MeneScores["p1"]+g.MeneScores["p2"])
}

func TestPhaseFlipsToBattleOnEmptyPile(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t))
	g.DrawPile = g.DrawPile[:2]

	leader := g.CurrentTurn
	require.NoError(t, g.PlayCard(leader, g.Hands[leader][0]))
	follower := g.CurrentTurn
	require.NoError(t, g.PlayCard(follower, g.Hands[follower][0]))

	require.NoError(t, g.DrawCard(g.DrawQueue[0]))
	assert.Equal(t, PhasePlaying, g.Phase)
	require.NoError(t, g.DrawCard(g.DrawQueue[0]))

	assert.Equal(t, PhaseBattle, g.Phase)
	assert.Empty(t, g.DrawQueue)
	assert.Empty(t, g.CanMeld)

	// No draws in battle.
	assert.ErrorIs(t, g.DrawCard(g.CurrentTurn), apperrors.ErrIllegalAction)
}

func TestLeaderAlternatesBetweenMenes(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t))
	assert.Equal(t, "p1", g.FirstPlayer)

	g.Phase = PhaseMeneEnd
	require.NoError(t, g.StartMeneWithPack(riggedPack(t)))
	assert.Equal(t, "p2", g.FirstPlayer)
	assert.Equal(t, "p2", g.CurrentTurn)

	g.Phase = PhaseMeneEnd
	require.NoError(t, g.StartMeneWithPack(riggedPack(t)))
	assert.Equal(t, "p1", g.FirstPlayer)
}

func TestCheckVersion(t *testing.T) {
	t.Parallel()

	g := newStartedGame(t, riggedPack(t))
	v := g.Version

	require.NoError(t, g.CheckVersion(v))
	require.NoError(t, g.PlayCard(g.CurrentTurn, g.Hands[g.CurrentTurn][0]))
	assert.ErrorIs(t, g.CheckVersion(v), apperrors.ErrStaleState)
	require.NoError(t, g.CheckVersion(g.Version))
}

func TestSetTargetScore(t *testing.T) {
	t.Parallel()

	g := NewGame(0)
	require.NoError(t, g.SetTargetScore(1000))
	assert.Equal(t, 1000, g.TargetScore)
	assert.ErrorIs(t, g.SetTargetScore(-5), apperrors.ErrIllegalAction)

	require.NoError(t, g.AddPlayer("p1"))
	require.NoError(t, g.AddPlayer("p2"))
	require.NoError(t, g.StartMeneWithPack(riggedPack(t)))
	assert.ErrorIs(t, g.SetTargetScore(1500), apperrors.ErrGameStarted)
}
