package blackjack

// HandStatus is derived from the hand and the standing flag, never stored.
type HandStatus string

const (
	StatusStandby   HandStatus = "standby"
	StatusPlaying   HandStatus = "playing"
	StatusStanding  HandStatus = "standing"
	StatusBusted    HandStatus = "busted"
	StatusBlackjack HandStatus = "blackjack"
)

// Hand is the ordered sequence of cards held by one participant.
type Hand struct {
	cards []Card
}

func (h *Hand) Add(card Card) {
	h.cards = append(h.cards, card)
}

func (h *Hand) Cards() []Card {
	return h.cards
}

func (h *Hand) Size() int {
	return len(h.cards)
}

func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

// Value sums the card ranks and then softens aces: each ace counted as
// 11 drops to 1 (subtract 10) while the total is over 21, at most once
// per ace.
func (h *Hand) Value() int {
	value := 0
	aces := 0
	for _, card := range h.cards {
		value += card.Rank
		if card.Rank == 11 {
			aces++
		}
	}
	for ; aces > 0 && value > 21; aces-- {
		value -= 10
	}
	return value
}

func (h *Hand) IsBusted() bool {
	return h.Value() > 21
}

// IsBlackjack requires exactly two cards. A 21 reached with three or
// more cards is not blackjack.
func (h *Hand) IsBlackjack() bool {
	return h.Value() == 21 && len(h.cards) == 2
}

// Status derives the participant state from the hand and the explicit
// standing flag.
func (h *Hand) Status(standing bool) HandStatus {
	switch {
	case h.IsBusted():
		return StatusBusted
	case h.IsBlackjack():
		return StatusBlackjack
	case standing:
		return StatusStanding
	case len(h.cards) < 2:
		return StatusStandby
	default:
		return StatusPlaying
	}
}
