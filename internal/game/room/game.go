package room

import (
	"context"
	"log"

	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/game/engine"
	"github.com/palemoky/bezigue/internal/protocol"
	"github.com/palemoky/bezigue/internal/protocol/codec"
	"github.com/palemoky/bezigue/internal/types"
)

// PlayCard applies a play, broadcasts it, and when the trick closes,
// broadcasts the resolution and whatever follows from it: the meld
// window, the next mène, or the end of the game.
func (r *Room) PlayCard(client types.ClientInterface, cardCode string, version uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.Game
	c, err := card.Parse(cardCode)
	if err != nil {
		return err
	}
	if version != 0 {
		if err := g.CheckVersion(version); err != nil {
			return err
		}
	}

	tricksBefore := len(g.Tricks)
	if err := g.PlayCard(client.GetID(), c); err != nil {
		return err
	}

	r.broadcast(codec.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID:    client.GetID(),
		Card:        c.String(),
		CurrentTurn: g.CurrentTurn,
		Version:     g.Version,
	}))

	if len(g.Tricks) > tricksBefore {
		r.afterTrick()
	}

	r.persist()
	return nil
}

// afterTrick announces the settled trick and drives the phase machine
// forward on the room side.
func (r *Room) afterTrick() {
	g := r.Game
	last := g.Tricks[len(g.Tricks)-1]

	r.broadcast(codec.MustNewMessage(protocol.MsgTrickResolved, protocol.TrickResolvedPayload{
		Cards:     card.Strings(last.Cards),
		Players:   last.Players,
		WinnerUID: last.WinnerUID,
		Points:    last.Points,
		DrawQueue: g.DrawQueue,
		Version:   g.Version,
	}))

	switch g.Phase {
	case engine.PhasePlaying:
		r.sendMeldOptions(last.WinnerUID)
	case engine.PhaseMeneEnd:
		r.afterMene()
	case engine.PhaseFinal:
		r.afterMene()
	}
}

// sendMeldOptions tells the trick winner what they could declare.
func (r *Room) sendMeldOptions(winnerUID string) {
	player := r.Players[winnerUID]
	if player == nil || player.Client == nil {
		return
	}

	options, err := r.Game.DetectMelds(winnerUID)
	if err != nil || len(options) == 0 {
		return
	}

	dtos := make([]protocol.CombinationDTO, len(options))
	for i, opt := range options {
		dtos[i] = combinationDTO(opt)
	}
	player.Client.SendMessage(codec.MustNewMessage(protocol.MsgMeldOptions, protocol.MeldOptionsPayload{
		Options: dtos,
	}))
}

// afterMene announces the mène result, then either deals the next mène
// or closes the game and records the result.
func (r *Room) afterMene() {
	g := r.Game

	r.broadcast(codec.MustNewMessage(protocol.MsgMeneEnded, protocol.MeneEndedPayload{
		MeneIndex:  g.MeneIndex,
		MeneScores: g.MeneScores,
		Scores:     g.Scores,
		Version:    g.Version,
	}))

	if g.Phase == engine.PhaseFinal {
		r.broadcast(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
			WinnerUID: g.WinnerUID,
			Scores:    g.Scores,
		}))
		r.recordResults()
		log.Printf("room %s: game over, %s wins with %d", r.Code, g.WinnerUID, g.Scores[g.WinnerUID])
		return
	}

	if err := r.startMene(); err != nil {
		log.Printf("room %s: failed to deal next mène: %v", r.Code, err)
	}
}

// recordResults writes both players' stats after a finished game.
func (r *Room) recordResults() {
	if r.leaderboard == nil {
		return
	}

	g := r.Game
	type result struct {
		id, name string
		won      bool
		score    int
	}
	results := make([]result, 0, len(r.Players))
	for id, player := range r.Players {
		name := id
		if player.Client != nil {
			name = player.Client.GetName()
		}
		results = append(results, result{
			id:    id,
			name:  name,
			won:   id == g.WinnerUID,
			score: g.Scores[id],
		})
	}

	go func() {
		ctx := context.Background()
		for _, res := range results {
			if err := r.leaderboard.RecordGameResult(ctx, res.id, res.name, res.won, res.score); err != nil {
				log.Printf("record result for %s: %v", res.id, err)
			}
		}
	}()
}

// DeclareMeld applies a declaration and broadcasts the combination.
func (r *Room) DeclareMeld(client types.ClientInterface, cardCodes []string, version uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.Game
	chosen, err := card.ParseAll(cardCodes)
	if err != nil {
		return err
	}
	if version != 0 {
		if err := g.CheckVersion(version); err != nil {
			return err
		}
	}

	combo, err := g.DeclareMeld(client.GetID(), chosen)
	if err != nil {
		return err
	}

	r.broadcast(codec.MustNewMessage(protocol.MsgMeldDeclared, protocol.MeldDeclaredPayload{
		PlayerID:    client.GetID(),
		Combination: combinationDTO(*combo),
		Version:     g.Version,
	}))

	r.persist()
	return nil
}

// DrawCard applies a draw. The drawn card goes only to the drawer;
// everyone else sees the pile shrink.
func (r *Room) DrawCard(client types.ClientInterface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.Game
	uid := client.GetID()

	if err := g.DrawCard(uid); err != nil {
		return err
	}

	hand := g.Hands[uid]
	drawn := hand[len(hand)-1]

	client.SendMessage(codec.MustNewMessage(protocol.MsgCardDrawn, protocol.CardDrawnPayload{
		PlayerID:      uid,
		Card:          drawn.String(),
		DrawPileCount: len(g.DrawPile),
		Phase:         g.Phase.String(),
		Version:       g.Version,
	}))
	r.broadcastExcept(uid, codec.MustNewMessage(protocol.MsgCardDrawn, protocol.CardDrawnPayload{
		PlayerID:      uid,
		DrawPileCount: len(g.DrawPile),
		Phase:         g.Phase.String(),
		Version:       g.Version,
	}))

	r.persist()
	return nil
}

// ExchangeTrump applies the 7-for-indicator swap and broadcasts it.
func (r *Room) ExchangeTrump(client types.ClientInterface) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.Game
	oldTrump := g.TrumpCard

	if err := g.ExchangeTrump(client.GetID()); err != nil {
		return err
	}

	r.broadcast(codec.MustNewMessage(protocol.MsgTrumpExchanged, protocol.TrumpExchangedPayload{
		PlayerID:     client.GetID(),
		NewTrumpCard: g.TrumpCard.String(),
		OldTrumpCard: oldTrump.String(),
		Version:      g.Version,
	}))

	r.persist()
	return nil
}

// StateFor builds the client's private view of the game, used for
// resynchronization after a reconnect.
func (r *Room) StateFor(client types.ClientInterface) protocol.GameStateDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stateDTO(client.GetID())
}
