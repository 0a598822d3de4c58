package nats

import (
	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/game"
)

var natsLogger = log.With().Str("logger_name", "nats::game").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NatsTable is an adapter between one game table and the NATS server:
// it subscribes for inbound player/driver events and publishes the
// table's outbound snapshots.
type NatsTable struct {
	tableCode          string
	natsConn           *natsgo.Conn
	game               *game.Game
	game2PlayerSubject string

	playerSub *natsgo.Subscription
	driverSub *natsgo.Subscription
}

const (
	messageTypePlayerState = "PLAYER_STATE"
	messageTypeRoundResult = "ROUND_RESULT"
)

// gameMessage is the outbound envelope on the game2player subject.
type gameMessage struct {
	MessageType string                   `json:"messageType"`
	PlayerState *game.PlayerStateMessage `json:"playerState,omitempty"`
	RoundResult *game.RoundResultMessage `json:"roundResult,omitempty"`
}

type playerMoveMessage struct {
	Action string `json:"action"`
}

type driverMessage struct {
	Command string `json:"command"`
}

const driverCommandBeginRound = "begin-round"

func newNatsTable(nc *natsgo.Conn, g *game.Game) (*NatsTable, error) {
	nt := &NatsTable{
		tableCode:          g.TableCode(),
		natsConn:           nc,
		game:               g,
		game2PlayerSubject: Game2PlayerSubject(g.TableCode()),
	}

	var err error
	nt.playerSub, err = nc.Subscribe(Player2GameSubject(nt.tableCode), nt.handlePlayerMove)
	if err != nil {
		return nil, err
	}
	nt.driverSub, err = nc.Subscribe(DriverSubject(nt.tableCode), nt.handleDriver)
	if err != nil {
		nt.playerSub.Unsubscribe()
		return nil, err
	}
	return nt, nil
}

func (nt *NatsTable) close() {
	if nt.playerSub != nil {
		nt.playerSub.Unsubscribe()
	}
	if nt.driverSub != nil {
		nt.driverSub.Unsubscribe()
	}
}

func (nt *NatsTable) handlePlayerMove(msg *natsgo.Msg) {
	var move playerMoveMessage
	if err := json.Unmarshal(msg.Data, &move); err != nil {
		natsLogger.Error().
			Str("tableCode", nt.tableCode).
			Msgf("Invalid player move message: %v", err)
		return
	}
	if err := nt.game.SubmitHumanMove(move.Action); err != nil {
		natsLogger.Warn().
			Str("tableCode", nt.tableCode).
			Msgf("Player move rejected: %v", err)
	}
}

func (nt *NatsTable) handleDriver(msg *natsgo.Msg) {
	var driver driverMessage
	if err := json.Unmarshal(msg.Data, &driver); err != nil {
		natsLogger.Error().
			Str("tableCode", nt.tableCode).
			Msgf("Invalid driver message: %v", err)
		return
	}
	switch driver.Command {
	case driverCommandBeginRound:
		if err := nt.game.BeginRound(); err != nil {
			natsLogger.Warn().
				Str("tableCode", nt.tableCode).
				Msgf("Begin round rejected: %v", err)
		}
	default:
		natsLogger.Warn().
			Str("tableCode", nt.tableCode).
			Msgf("Unknown driver command: %s", driver.Command)
	}
}

// BroadcastPlayerState implements game.MessageReceiver.
func (nt *NatsTable) BroadcastPlayerState(message *game.PlayerStateMessage) {
	nt.publish(&gameMessage{MessageType: messageTypePlayerState, PlayerState: message})
}

// BroadcastRoundResult implements game.MessageReceiver.
func (nt *NatsTable) BroadcastRoundResult(message *game.RoundResultMessage) {
	nt.publish(&gameMessage{MessageType: messageTypeRoundResult, RoundResult: message})
}

func (nt *NatsTable) publish(message *gameMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		natsLogger.Error().
			Str("tableCode", nt.tableCode).
			Msgf("Unable to encode %s message: %v", message.MessageType, err)
		return
	}
	if err := nt.natsConn.Publish(nt.game2PlayerSubject, data); err != nil {
		natsLogger.Error().
			Str("tableCode", nt.tableCode).
			Msgf("Unable to publish %s message: %v", message.MessageType, err)
	}
}

var _ game.MessageReceiver = (*NatsTable)(nil)
