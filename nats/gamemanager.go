package nats

import (
	"sync"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/game"
)

var gameManagerLogger = log.With().Str("logger_name", "nats::gamemanager").Logger()

// GameManager pairs the table manager with NATS adapters, one per table.
type GameManager struct {
	nc          *natsgo.Conn
	gameManager *game.Manager

	lock         sync.Mutex
	activeTables map[string]*NatsTable
}

func NewGameManager(nc *natsgo.Conn, gameManager *game.Manager) *GameManager {
	return &GameManager{
		nc:           nc,
		gameManager:  gameManager,
		activeTables: make(map[string]*NatsTable),
	}
}

// NewTable creates the table, wires its NATS adapter as the message
// receiver, and starts the table loop.
func (gm *GameManager) NewTable(config game.TableConfig) (*game.Game, error) {
	g, err := gm.gameManager.NewTable(config)
	if err != nil {
		return nil, err
	}
	nt, err := newNatsTable(gm.nc, g)
	if err != nil {
		return nil, err
	}
	g.SetMessageReceiver(nt)
	g.Start()

	gm.lock.Lock()
	gm.activeTables[g.TableCode()] = nt
	gm.lock.Unlock()

	gameManagerLogger.Info().
		Str("tableCode", g.TableCode()).
		Str("subject", nt.game2PlayerSubject).
		Msg("Table attached to NATS")
	return g, nil
}

func (gm *GameManager) EndTable(tableCode string) error {
	gm.lock.Lock()
	nt, ok := gm.activeTables[tableCode]
	if ok {
		delete(gm.activeTables, tableCode)
	}
	gm.lock.Unlock()
	if ok {
		nt.close()
	}
	return gm.gameManager.EndTable(tableCode)
}

func (gm *GameManager) GetTable(tableCode string) (*game.Game, bool) {
	return gm.gameManager.GetTable(tableCode)
}

func (gm *GameManager) DefaultTable() *game.Game {
	return gm.gameManager.DefaultTable()
}

func (gm *GameManager) SaveStats() error {
	return gm.gameManager.SaveStats()
}
