package blackjack

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/util/random"
)

var shoeLogger = log.With().Str("logger_name", "blackjack::shoe").Logger()

// ErrShoeEmpty is returned when a draw is requested with no cards left
// in the undrawn pool. It indicates a sizing bug, not a normal game
// condition, and callers must degrade (forced stand), never crash.
var ErrShoeEmpty = errors.New("no cards left in the shoe")

const cardsPerDeck = 52

// Shoe is the shared draw pool for one table. It holds numDecks replicas
// of the standard 52-card composition split into an undrawn and a drawn
// pile. Exactly one logical shoe exists per table; all participants draw
// from it in turn order, so no locking is needed beyond the single-draw
// atomicity the table loop already provides.
type Shoe struct {
	undrawn []Card
	drawn   []Card
	total   int
	randGen *rand.Rand
}

// NewShoe builds a shoe of numDecks decks. Pass a rand source to make
// draws reproducible in tests; nil gets a crypto-seeded source.
func NewShoe(numDecks int, source rand.Source) *Shoe {
	if numDecks <= 0 {
		numDecks = 1
	}
	if source == nil {
		source = rand.NewSource(random.NewSeed())
	}
	undrawn := make([]Card, 0, numDecks*cardsPerDeck)
	for i := 0; i < numDecks; i++ {
		for _, card := range deckComposition() {
			card.Token = newCardToken()
			undrawn = append(undrawn, card)
		}
	}
	return &Shoe{
		undrawn: undrawn,
		drawn:   make([]Card, 0, numDecks*cardsPerDeck),
		total:   numDecks * cardsPerDeck,
		randGen: rand.New(source),
	}
}

// NewShoeFromCards builds a shoe holding exactly the given cards, for
// scripted rounds and tests. Cards without a token get one stamped.
func NewShoeFromCards(cards []Card, source rand.Source) *Shoe {
	if source == nil {
		source = rand.NewSource(random.NewSeed())
	}
	undrawn := make([]Card, len(cards))
	copy(undrawn, cards)
	for i := range undrawn {
		if undrawn[i].Token == "" {
			undrawn[i].Token = newCardToken()
		}
	}
	return &Shoe{
		undrawn: undrawn,
		drawn:   make([]Card, 0, len(cards)),
		total:   len(cards),
		randGen: rand.New(source),
	}
}

// Draw removes one card chosen uniformly at random from the undrawn pile
// and moves it to the drawn pile.
func (s *Shoe) Draw() (Card, error) {
	if len(s.undrawn) == 0 {
		return Card{}, ErrShoeEmpty
	}
	idx := s.randGen.Intn(len(s.undrawn))
	card := s.undrawn[idx]
	last := len(s.undrawn) - 1
	s.undrawn[idx] = s.undrawn[last]
	s.undrawn = s.undrawn[:last]
	s.drawn = append(s.drawn, card)
	return card, nil
}

// Reset moves every drawn card back into the undrawn pile. A total that
// drifted from the configured size means draw/return bookkeeping is
// broken somewhere; it is surfaced loudly but the shoe keeps playing.
func (s *Shoe) Reset() {
	s.undrawn = append(s.undrawn, s.drawn...)
	s.drawn = s.drawn[:0]
	if len(s.undrawn) != s.total {
		shoeLogger.Warn().
			Int("expected", s.total).
			Int("actual", len(s.undrawn)).
			Msg("Shoe accounting mismatch after reset. A card was lost or double counted.")
	}
}

func (s *Shoe) Remaining() int {
	return len(s.undrawn)
}

func (s *Shoe) Total() int {
	return s.total
}

// SafeHitProbability is the fraction of undrawn cards that would keep a
// hand at handValue at or under 21. It is a deterministic snapshot over
// the actual remaining shoe composition, not a resampled simulation.
func (s *Shoe) SafeHitProbability(handValue int) float64 {
	if len(s.undrawn) == 0 {
		return 0
	}
	safe := 0
	for _, card := range s.undrawn {
		if handValue+card.Rank <= 21 {
			safe++
		}
	}
	return float64(safe) / float64(len(s.undrawn))
}
