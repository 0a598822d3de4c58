package stats

import (
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/rs/zerolog/log"
)

var statsLogger = log.With().Str("logger_name", "stats::aggregator").Logger()

// Fixed table layout of the reference game: one croupier, two learning
// agents, one human seat.
const (
	EntityCroupier = "croupier"
	EntityAI1      = "ai1"
	EntityAI2      = "ai2"
	EntityHuman    = "human"
)

// EntityOrder is the order every aggregate vector is reported in.
var EntityOrder = []string{EntityCroupier, EntityAI1, EntityAI2, EntityHuman}

// Ledger move codes.
const (
	MoveHit   = "H"
	MoveStand = "S"
)

// Move is one logged action and the hand value it resulted in.
type Move struct {
	Action string
	Value  int
}

// Round is one sealed round: the ordered move ledger per entity and the
// winners of the round.
type Round struct {
	Moves   map[string][]Move
	Winners []string
}

func newRound() *Round {
	return &Round{Moves: make(map[string][]Move)}
}

// Aggregator accumulates the per-round move ledger and the sealed round
// sequence for one table session. One instance exists per session and is
// injected into the table, never accessed as a global.
type Aggregator struct {
	mu            sync.Mutex
	current       *Round
	sealed        []Round
	knownEntities mapset.Set
}

func NewAggregator() *Aggregator {
	known := mapset.NewSet()
	for _, entity := range EntityOrder {
		known.Add(entity)
	}
	return &Aggregator{
		current:       newRound(),
		knownEntities: known,
	}
}

// NewAggregatorFromRounds seeds the sealed round sequence, e.g. from a
// persisted store loaded at startup.
func NewAggregatorFromRounds(rounds []Round) *Aggregator {
	a := NewAggregator()
	a.sealed = append(a.sealed, rounds...)
	return a
}

// LogMove appends (action, resultingValue) to the entity's ledger for
// the current round. Malformed input is ignored with a warning, never an
// error; a bad log call must not take down a round in progress.
func (a *Aggregator) LogMove(entity string, action string, resultingValue int) {
	if !a.knownEntities.Contains(entity) {
		statsLogger.Warn().Msgf("Unknown entity found in LogMove (%s). Ignoring.", entity)
		return
	}
	if action != MoveHit && action != MoveStand {
		statsLogger.Warn().Msgf("Unknown action found in LogMove (%s). Ignoring.", action)
		return
	}
	if resultingValue < 0 {
		statsLogger.Warn().Msgf("Negative hand value found in LogMove (%d). Ignoring.", resultingValue)
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current.Moves[entity] = append(a.current.Moves[entity], Move{Action: action, Value: resultingValue})
}

// LogWinners records the winners of the current round. Unknown entities
// are dropped with a warning.
func (a *Aggregator) LogWinners(winners []string) {
	valid := make([]string, 0, len(winners))
	for _, w := range winners {
		if !a.knownEntities.Contains(w) {
			statsLogger.Warn().Msgf("Unknown entity found in LogWinners (%s). Ignoring.", w)
			continue
		}
		valid = append(valid, w)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current.Winners = valid
}

// SealRound moves the current round ledger into the sealed sequence and
// resets the current ledger. Sealing an empty ledger still appends a
// well-formed record.
func (a *Aggregator) SealRound() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sealed = append(a.sealed, *a.current)
	a.current = newRound()
}

// SealedRounds returns a copy of the sealed round sequence.
func (a *Aggregator) SealedRounds() []Round {
	a.mu.Lock()
	defer a.mu.Unlock()
	rounds := make([]Round, len(a.sealed))
	copy(rounds, a.sealed)
	return rounds
}

func (a *Aggregator) SealedRoundCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sealed)
}

// WinPercentages returns, in EntityOrder, 100 * roundsWon / roundsSealed
// per entity. With no sealed rounds every entry is zero.
func (a *Aggregator) WinPercentages() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]float64, len(EntityOrder))
	if len(a.sealed) == 0 {
		return result
	}
	for i, entity := range EntityOrder {
		wins := 0
		for _, round := range a.sealed {
			for _, w := range round.Winners {
				if w == entity {
					wins++
					break
				}
			}
		}
		result[i] = 100 * float64(wins) / float64(len(a.sealed))
	}
	return result
}

// DecisionQualityPercentages returns, in EntityOrder, the share of
// decisions that were not plainly bad. A decision is bad when it is a
// hit that busted the hand or a stand below 17. If any entity has no
// decisions at all the whole vector is zero, matching the reference
// report behavior.
func (a *Aggregator) DecisionQualityPercentages() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]float64, len(EntityOrder))
	totals := make([]int, len(EntityOrder))
	bad := make([]int, len(EntityOrder))
	for i, entity := range EntityOrder {
		for _, round := range a.sealed {
			for _, move := range round.Moves[entity] {
				totals[i]++
				if move.Action == MoveHit && move.Value > 21 {
					bad[i]++
				} else if move.Action == MoveStand && move.Value < 17 {
					bad[i]++
				}
			}
		}
		if totals[i] == 0 {
			return make([]float64, len(EntityOrder))
		}
	}
	for i := range EntityOrder {
		result[i] = 100 - 100*float64(bad[i])/float64(totals[i])
	}
	return result
}

// StandValueDistributions returns, in EntityOrder, the hand value at the
// moment each entity first stood in each sealed round, or its final
// logged value when it never explicitly stood (e.g. it busted first).
// Rounds where the entity logged no moves contribute nothing.
func (a *Aggregator) StandValueDistributions() [][]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([][]int, len(EntityOrder))
	for i, entity := range EntityOrder {
		values := []int{}
		for _, round := range a.sealed {
			moves := round.Moves[entity]
			if len(moves) == 0 {
				continue
			}
			value := moves[len(moves)-1].Value
			for _, move := range moves {
				if move.Action == MoveStand {
					value = move.Value
					break
				}
			}
			values = append(values, value)
		}
		result[i] = values
	}
	return result
}
