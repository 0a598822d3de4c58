package game

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"voyager.com/blackjack/blackjack"
	"voyager.com/blackjack/stats"
	"voyager.com/blackjack/util"
)

var tableLogger = log.With().Str("logger_name", "game::table").Logger()

// Game is one blackjack table. It owns the single shoe and aggregator
// of the session (both injected, never globals) and runs rounds one at
// a time on its own goroutine. Within a round only one participant acts
// at a time, in fixed seat order, so the shoe never sees concurrent
// draws.
type Game struct {
	config  TableConfig
	tableID uint64

	shoe    *blackjack.Shoe
	dealer  *Dealer
	players []Participant // non-dealer seats in acting order
	agents  []*Agent
	human   *Human

	aggregator      *stats.Aggregator
	messageReceiver MessageReceiver
	delays          Delays
	snapshotLimiter *rate.Limiter

	chBeginRound chan bool
	end          chan bool

	lock     sync.Mutex
	roundNum uint32
	phase    RoundPhase
}

func NewGame(config TableConfig, tableID uint64, aggregator *stats.Aggregator, delays Delays) *Game {
	shoe := blackjack.NewShoe(config.NumDecks, nil)
	dealer := NewDealer(shoe)
	ai1 := NewAgent(stats.EntityAI1, shoe, config.Agent, nil)
	ai2 := NewAgent(stats.EntityAI2, shoe, config.Agent, nil)

	g := &Game{
		config:       config,
		tableID:      tableID,
		shoe:         shoe,
		dealer:       dealer,
		agents:       []*Agent{ai1, ai2},
		players:      []Participant{ai1, ai2},
		aggregator:   aggregator,
		delays:       delays,
		chBeginRound: make(chan bool),
		end:          make(chan bool, 1),
		phase:        PhaseSetup,
		// Snapshots go out at most ten a second so a burst of hand
		// mutations cannot flood the push transport.
		snapshotLimiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 4),
	}
	if config.HumanSeat {
		g.human = NewHuman(shoe, time.Duration(config.PlayTimeoutSec)*time.Second)
		g.players = append(g.players, g.human)
	}
	return g
}

// SetMessageReceiver wires the outbound message sink. Must be called
// before Start.
func (g *Game) SetMessageReceiver(receiver MessageReceiver) {
	g.messageReceiver = receiver
}

func (g *Game) Start() {
	go g.gameLoop()
}

func (g *Game) Stop() {
	g.end <- true
}

func (g *Game) gameLoop() {
	tableLogger.Info().
		Str("tableCode", g.config.Code).
		Msg("Table loop started")
	for {
		select {
		case <-g.end:
			tableLogger.Info().
				Str("tableCode", g.config.Code).
				Msg("Table loop ended")
			return
		case <-g.chBeginRound:
			g.runRound(context.Background())
		}
	}
}

// BeginRound asks the table loop to play one round. Fails fast when a
// round is already running rather than queueing triggers.
func (g *Game) BeginRound() error {
	select {
	case g.chBeginRound <- true:
		return nil
	default:
		return RoundInProgressError{TableCode: g.config.Code}
	}
}

// SubmitHumanMove routes an external move event to the human seat.
func (g *Game) SubmitHumanMove(action string) error {
	if g.human == nil {
		return NoHumanSeatError{TableCode: g.config.Code}
	}
	move, err := MoveFromString(action)
	if err != nil {
		return err
	}
	return g.human.SubmitMove(move)
}

func (g *Game) TableCode() string {
	return g.config.Code
}

func (g *Game) TableID() uint64 {
	return g.tableID
}

func (g *Game) Config() TableConfig {
	return g.config
}

func (g *Game) Aggregator() *stats.Aggregator {
	return g.aggregator
}

func (g *Game) RoundNum() uint32 {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.roundNum
}

func (g *Game) Phase() RoundPhase {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.phase
}

func (g *Game) ShoeRemaining() int {
	return g.shoe.Remaining()
}

// ResetShoe merges the drawn pile back into the shoe. Only sensible
// between rounds; the caller gets an error while a round is running.
func (g *Game) ResetShoe() error {
	if g.Phase().roundInProgress() {
		return RoundInProgressError{TableCode: g.config.Code}
	}
	g.shoe.Reset()
	return nil
}

// PolicySnapshots returns each agent's learned table, keyed by position,
// for persistence across sessions.
func (g *Game) PolicySnapshots() map[string]QTable {
	tables := make(map[string]QTable, len(g.agents))
	for _, agent := range g.agents {
		tables[agent.Position()] = agent.Policy().Snapshot()
	}
	return tables
}

// RestorePolicies seeds the agents' tables from a persisted snapshot.
func (g *Game) RestorePolicies(tables map[string]QTable) {
	for _, agent := range g.agents {
		if table, ok := tables[agent.Position()]; ok {
			agent.Policy().Restore(table)
		}
	}
}

func (g *Game) setPhase(phase RoundPhase) {
	g.lock.Lock()
	g.phase = phase
	g.lock.Unlock()
}

func (g *Game) broadcastSeat(p Participant, hideHand bool) {
	if g.messageReceiver == nil {
		return
	}
	_ = g.snapshotLimiter.Wait(context.Background())
	msg := playerStateSnapshot(g.config.Code, g.RoundNum(), p, g.shoe, hideHand)
	g.messageReceiver.BroadcastPlayerState(msg)
}

func (g *Game) broadcastRoundResult(msg *RoundResultMessage) {
	if g.messageReceiver == nil {
		return
	}
	g.messageReceiver.BroadcastRoundResult(msg)
}

func (g *Game) delay(millis uint32) {
	if util.Env.ShouldDisableDelays() {
		return
	}
	time.Sleep(time.Duration(millis) * time.Millisecond)
}
