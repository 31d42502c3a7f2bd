package room

import (
	"github.com/palemoky/bezigue/internal/game/card"
	"github.com/palemoky/bezigue/internal/game/meld"
	"github.com/palemoky/bezigue/internal/storage"
)

// toRoomData snapshots the full room for Redis. Assumes the caller
// holds r.mu (or exclusive access to a freshly created room).
func (r *Room) toRoomData() *storage.RoomData {
	g := r.Game

	data := &storage.RoomData{
		Code:        r.Code,
		Phase:       g.Phase.String(),
		Players:     make([]storage.PlayerData, 0, len(r.Players)),
		TargetScore: g.TargetScore,
		WinnerUID:   g.WinnerUID,

		MeneIndex:   g.MeneIndex,
		FirstPlayer: g.FirstPlayer,
		TrumpTaken:  g.TrumpTaken,
		DrawPile:    card.Strings(g.DrawPile),
		Hands:       make(map[string][]string, len(g.Hands)),
		Melds:       make(map[string][]string, len(g.Melds)),
		History:     make(map[string][]storage.CombinationData, len(g.History)),
		Scores:      g.Scores,
		MeneScores:  g.MeneScores,
		TrickCards:  card.Strings(g.Trick.Cards),
		TrickUIDs:   g.Trick.Players,
		DrawQueue:   g.DrawQueue,
		CurrentTurn: g.CurrentTurn,
		CanMeld:     g.CanMeld,

		Version:   g.Version,
		CreatedAt: r.CreatedAt.Unix(),
	}

	if g.MeneIndex > 0 {
		data.TrumpCard = g.TrumpCard.String()
	}

	for _, id := range r.PlayerOrder {
		player := r.Players[id]
		pd := storage.PlayerData{
			ID:    id,
			Seat:  player.Seat,
			Ready: player.Ready,
		}
		if player.Client != nil {
			pd.Name = player.Client.GetName()
		}
		data.Players = append(data.Players, pd)
	}

	for id, hand := range g.Hands {
		data.Hands[id] = card.Strings(hand)
	}
	for id, cards := range g.Melds {
		data.Melds[id] = card.Strings(cards)
	}
	for id, history := range g.History {
		combos := make([]storage.CombinationData, len(history))
		for i, combo := range history {
			combos[i] = combinationData(combo)
		}
		data.History[id] = combos
	}

	return data
}

func combinationData(c meld.Combination) storage.CombinationData {
	return storage.CombinationData{
		Category: c.Category.String(),
		Name:     c.Name,
		Points:   c.Points,
		Cards:    card.Strings(c.Cards),
	}
}
