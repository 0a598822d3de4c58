package blackjack

import (
	"fmt"

	"github.com/google/uuid"
)

// Color of a card. The UI only cares about black vs red.
type Color int

const (
	ColorBlack Color = 0
	ColorRed   Color = 1
)

// Card is the immutable identity of one physical card in the shoe.
// Rank already encodes blackjack scoring: face cards are 10 and the
// ace is 11 before soft-ace correction.
type Card struct {
	Rank  int
	Color Color
	Art   string
	Token string
}

func (c Card) String() string {
	return fmt.Sprintf("%d (%s)", c.Rank, c.Art)
}

var suits = []struct {
	name  string
	color Color
}{
	{"clubs", ColorBlack},
	{"diamonds", ColorRed},
	{"hearts", ColorRed},
	{"spades", ColorBlack},
}

var ranks = []struct {
	name  string
	value int
}{
	{"2", 2},
	{"3", 3},
	{"4", 4},
	{"5", 5},
	{"6", 6},
	{"7", 7},
	{"8", 8},
	{"9", 9},
	{"10", 10},
	{"jack", 10},
	{"queen", 10},
	{"king", 10},
	{"ace", 11},
}

// deckComposition returns the standard 52-card composition. Tokens are
// not assigned here; the shoe stamps each physical replica with its own.
func deckComposition() []Card {
	cards := make([]Card, 0, 52)
	for _, rank := range ranks {
		for _, suit := range suits {
			cards = append(cards, Card{
				Rank:  rank.value,
				Color: suit.color,
				Art:   fmt.Sprintf("%s_of_%s.png", rank.name, suit.name),
			})
		}
	}
	return cards
}

func newCardToken() string {
	return uuid.New().String()
}
