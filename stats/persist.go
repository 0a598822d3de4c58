package stats

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"voyager.com/blackjack/util"
)

// Store persists the sealed round sequence of a session. Load-on-start,
// save-on-demand; the record shape matches the reference games.json.
type Store interface {
	Load() ([]Round, error)
	Save(rounds []Round) error
}

const (
	PersistMethodMemory = "memory"
	PersistMethodFile   = "file"
	PersistMethodRedis  = "redis"
)

// NewStore builds the round-log store selected by PERSIST_METHOD.
func NewStore() (Store, error) {
	method := util.Env.GetPersistMethod()
	switch method {
	case PersistMethodMemory:
		return NewMemoryStore(), nil
	case PersistMethodFile:
		return NewFileStore(util.Env.GetStatsFile()), nil
	case PersistMethodRedis:
		addr := fmt.Sprintf("%s:%d", util.Env.GetRedisHost(), util.Env.GetRedisPort())
		return NewRedisStore(addr, util.Env.GetRedisPW(), util.Env.GetRedisDB()), nil
	default:
		return nil, errors.Errorf("Unsupported persist method: %s", method)
	}
}

// CorruptStoreError is fatal at load time. No session proceeds on top of
// a round log that cannot be decoded.
type CorruptStoreError struct {
	Source string
	Err    error
}

func (e CorruptStoreError) Error() string {
	return fmt.Sprintf("Corrupt round-log store (%s): %v", e.Source, e.Err)
}

func IsCorruptStore(err error) bool {
	_, ok := errors.Cause(err).(CorruptStoreError)
	return ok
}

// NotFoundError means the store has no data yet. Startup treats it as
// fatal unless configured to initialize fresh.
type NotFoundError struct {
	Source string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Round-log store not found: %s", e.Source)
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(NotFoundError)
	return ok
}

// roundRecord is the persisted shape of one round: per-entity move lists
// interleaved as [action, value, action, value, ...] plus the winners.
type roundRecord struct {
	CroupierMoves []string `json:"croupier_moves"`
	AI1Moves      []string `json:"ai1_moves"`
	AI2Moves      []string `json:"ai2_moves"`
	HumanMoves    []string `json:"human_moves"`
	Winners       []string `json:"winners"`
}

func movesToRecord(moves []Move) []string {
	interleaved := make([]string, 0, 2*len(moves))
	for _, move := range moves {
		interleaved = append(interleaved, move.Action, strconv.Itoa(move.Value))
	}
	return interleaved
}

func movesFromRecord(interleaved []string) ([]Move, error) {
	if len(interleaved)%2 != 0 {
		return nil, errors.Errorf("odd move list length %d", len(interleaved))
	}
	moves := make([]Move, 0, len(interleaved)/2)
	for i := 0; i < len(interleaved); i += 2 {
		value, err := strconv.Atoi(interleaved[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "bad move value at index %d", i+1)
		}
		moves = append(moves, Move{Action: interleaved[i], Value: value})
	}
	return moves, nil
}

func toRecord(round Round) roundRecord {
	winners := round.Winners
	if winners == nil {
		winners = []string{}
	}
	return roundRecord{
		CroupierMoves: movesToRecord(round.Moves[EntityCroupier]),
		AI1Moves:      movesToRecord(round.Moves[EntityAI1]),
		AI2Moves:      movesToRecord(round.Moves[EntityAI2]),
		HumanMoves:    movesToRecord(round.Moves[EntityHuman]),
		Winners:       winners,
	}
}

func fromRecord(record roundRecord) (Round, error) {
	round := Round{Moves: make(map[string][]Move), Winners: record.Winners}
	for entity, interleaved := range map[string][]string{
		EntityCroupier: record.CroupierMoves,
		EntityAI1:      record.AI1Moves,
		EntityAI2:      record.AI2Moves,
		EntityHuman:    record.HumanMoves,
	} {
		moves, err := movesFromRecord(interleaved)
		if err != nil {
			return Round{}, errors.Wrapf(err, "entity %s", entity)
		}
		if len(moves) > 0 {
			round.Moves[entity] = moves
		}
	}
	return round, nil
}

func toRecords(rounds []Round) []roundRecord {
	records := make([]roundRecord, len(rounds))
	for i, round := range rounds {
		records[i] = toRecord(round)
	}
	return records
}

func fromRecords(records []roundRecord) ([]Round, error) {
	rounds := make([]Round, len(records))
	for i, record := range records {
		round, err := fromRecord(record)
		if err != nil {
			return nil, errors.Wrapf(err, "round %d", i)
		}
		rounds[i] = round
	}
	return rounds, nil
}
