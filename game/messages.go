package game

import (
	"voyager.com/blackjack/blackjack"
)

// CardView is the card shape pushed to the presentation layer.
type CardView struct {
	Rank  int    `json:"rank"`
	Color int    `json:"color"`
	Art   string `json:"art"`
}

// PlayerStateMessage is the snapshot broadcast after every hand
// mutation. When HideHand is set (the dealer before the hole card is
// revealed) the hand and its value are withheld.
type PlayerStateMessage struct {
	TableCode          string     `json:"tableCode"`
	RoundNum           uint32     `json:"roundNum"`
	Position           string     `json:"position"`
	HideHand           bool       `json:"hideHand"`
	Hand               []CardView `json:"hand,omitempty"`
	HandValue          int        `json:"handValue,omitempty"`
	Standing           bool       `json:"standing"`
	Busted             bool       `json:"busted"`
	Status             string     `json:"status"`
	HitSafeProbability float64    `json:"hitSafeProbability"`
}

// RoundResultMessage is broadcast once per round, after resolution.
type RoundResultMessage struct {
	TableCode  string            `json:"tableCode"`
	RoundNum   uint32            `json:"roundNum"`
	Winners    []string          `json:"winners"`
	HandValues map[string]int    `json:"handValues"`
	Results    map[string]string `json:"results"`
}

// MessageReceiver receives the table's outbound messages. The NATS
// adapter implements it in production; tests plug in a recorder.
type MessageReceiver interface {
	BroadcastPlayerState(message *PlayerStateMessage)
	BroadcastRoundResult(message *RoundResultMessage)
}

func playerStateSnapshot(tableCode string, roundNum uint32, p Participant, shoe *blackjack.Shoe, hideHand bool) *PlayerStateMessage {
	msg := &PlayerStateMessage{
		TableCode:          tableCode,
		RoundNum:           roundNum,
		Position:           p.Position(),
		HideHand:           hideHand,
		Standing:           p.IsStanding(),
		Busted:             p.IsBusted(),
		Status:             string(p.Status()),
		HitSafeProbability: shoe.SafeHitProbability(p.Hand().Value()),
	}
	if hideHand {
		return msg
	}
	cards := p.Hand().Cards()
	msg.Hand = make([]CardView, len(cards))
	for i, card := range cards {
		msg.Hand[i] = CardView{Rank: card.Rank, Color: int(card.Color), Art: card.Art}
	}
	msg.HandValue = p.Hand().Value()
	return msg
}
