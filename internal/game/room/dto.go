package room

import (
	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/game/meld"
	"github.com/palemoky/bezigue/internal/protocol"
)

func combinationDTO(c meld.Combination) protocol.CombinationDTO {
	return protocol.CombinationDTO{
		Category: c.Category.String(),
		Name:     c.Name,
		Points:   c.Points,
		Cards:    card.Strings(c.Cards),
	}
}

// stateDTO builds one player's view. Assumes the caller holds r.mu.
func (r *Room) stateDTO(viewerID string) protocol.GameStateDTO {
	g := r.Game

	melds := make(map[string][]string, len(g.Melds))
	for id, cards := range g.Melds {
		melds[id] = card.Strings(cards)
	}

	combos := make(map[string][]protocol.CombinationDTO, len(g.History))
	for id, history := range g.History {
		dtos := make([]protocol.CombinationDTO, len(history))
		for i, combo := range history {
			dtos[i] = combinationDTO(combo)
		}
		combos[id] = dtos
	}

	opponentCount := 0
	for _, id := range g.Players {
		if id != viewerID {
			opponentCount = len(g.Hands[id])
		}
	}

	return protocol.GameStateDTO{
		Phase:         g.Phase.String(),
		Players:       r.allPlayersInfo(),
		TargetScore:   g.TargetScore,
		MeneIndex:     g.MeneIndex,
		FirstPlayer:   g.FirstPlayer,
		TrumpCard:     g.TrumpCard.String(),
		TrumpSuit:     g.TrumpSuit.Letter(),
		TrumpTaken:    g.TrumpTaken,
		DrawPileCount: len(g.DrawPile),
		Hand:          card.Strings(g.Hands[viewerID]),
		OpponentCount: opponentCount,
		Melds:         melds,
		Combinations:  combos,
		MeneScores:    g.MeneScores,
		Trick: protocol.TrickDTO{
			Cards:   card.Strings(g.Trick.Cards),
			Players: g.Trick.Players,
		},
		DrawQueue:   g.DrawQueue,
		CurrentTurn: g.CurrentTurn,
		CanMeld:     g.CanMeld,
		CanExchange: g.CanExchange(viewerID),
		WinnerUID:   g.WinnerUID,
		Version:     g.Version,
	}
}
