package game

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/stats"
	"voyager.com/blackjack/util"
)

var managerLogger = log.With().Str("logger_name", "game::manager").Logger()

const tableCodeCacheSize = 100000

// Manager owns the active tables of this server. It loads the persisted
// round log and the agents' policy tables at startup; the first table
// created inherits both, so one server playing one table behaves exactly
// like the reference app (history and learning accumulate across runs).
type Manager struct {
	lock          sync.Mutex
	activeTables  map[string]*Game
	tableIDToCode *lru.Cache
	nextTableID   uint64
	delays        Delays

	store        stats.Store
	policyFile   string
	loadedRounds []stats.Round
	policies     map[string]QTable
	defaultTable *Game
}

// NewManager loads the persisted state. A missing round-log store fails
// startup unless fresh initialization is explicitly configured; a
// corrupt one always fails.
func NewManager(store stats.Store, delays Delays) (*Manager, error) {
	rounds, err := store.Load()
	if err != nil {
		if stats.IsNotFound(err) && util.Env.ShouldInitFreshStats() {
			managerLogger.Warn().Msgf("Round-log store is empty, initializing fresh: %v", err)
			rounds = nil
		} else {
			return nil, errors.Wrap(err, "Unable to load round-log store")
		}
	}

	policyFile := util.Env.GetPolicyFile()
	policies, err := LoadPolicies(policyFile)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to load policy tables")
	}

	tableIDToCode, err := lru.New(tableCodeCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to initialize table code cache")
	}

	managerLogger.Info().
		Int("rounds", len(rounds)).
		Int("policies", len(policies)).
		Msg("Loaded persisted session state")

	return &Manager{
		activeTables:  make(map[string]*Game),
		tableIDToCode: tableIDToCode,
		delays:        delays,
		store:         store,
		policyFile:    policyFile,
		loadedRounds:  rounds,
		policies:      policies,
	}, nil
}

// NewTable creates a table. The caller wires a message receiver and then
// calls Start on the returned game.
func (m *Manager) NewTable(config TableConfig) (*Game, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if config.Code == "" {
		config.Code = generateTableCode()
	}
	if _, ok := m.activeTables[config.Code]; ok {
		return nil, TableExistsError{TableCode: config.Code}
	}

	m.nextTableID++
	var aggregator *stats.Aggregator
	if m.defaultTable == nil {
		aggregator = stats.NewAggregatorFromRounds(m.loadedRounds)
	} else {
		aggregator = stats.NewAggregator()
	}

	g := NewGame(config, m.nextTableID, aggregator, m.delays)
	g.RestorePolicies(m.policies)

	m.activeTables[config.Code] = g
	m.tableIDToCode.Add(m.nextTableID, config.Code)
	if m.defaultTable == nil {
		m.defaultTable = g
	}
	util.Metrics.SetActiveTableCount(len(m.activeTables))

	managerLogger.Info().
		Str("tableCode", config.Code).
		Uint64("tableID", m.nextTableID).
		Msg("Table created")
	return g, nil
}

func (m *Manager) GetTable(tableCode string) (*Game, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	g, ok := m.activeTables[tableCode]
	return g, ok
}

// DefaultTable is the table the session-level endpoints (reports, save)
// act on when no code is given.
func (m *Manager) DefaultTable() *Game {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.defaultTable
}

func (m *Manager) TableCodeForID(tableID uint64) (string, bool) {
	v, ok := m.tableIDToCode.Get(tableID)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// EndTable stops the table loop and persists its session state.
func (m *Manager) EndTable(tableCode string) error {
	m.lock.Lock()
	g, ok := m.activeTables[tableCode]
	if ok {
		delete(m.activeTables, tableCode)
		if m.defaultTable == g {
			m.defaultTable = nil
		}
		util.Metrics.SetActiveTableCount(len(m.activeTables))
	}
	m.lock.Unlock()
	if !ok {
		return UnknownTableError{TableCode: tableCode}
	}
	g.Stop()
	return m.saveTable(g)
}

// SaveStats persists the default table's sealed rounds and every
// agent's learned table.
func (m *Manager) SaveStats() error {
	g := m.DefaultTable()
	if g == nil {
		return errors.New("No table to save")
	}
	return m.saveTable(g)
}

func (m *Manager) saveTable(g *Game) error {
	if err := m.store.Save(g.Aggregator().SealedRounds()); err != nil {
		return errors.Wrap(err, "Unable to save round log")
	}
	m.lock.Lock()
	for position, table := range g.PolicySnapshots() {
		m.policies[position] = table
	}
	policies := m.policies
	m.lock.Unlock()
	if err := SavePolicies(m.policyFile, policies); err != nil {
		return errors.Wrap(err, "Unable to save policy tables")
	}
	managerLogger.Info().
		Str("tableCode", g.TableCode()).
		Int("rounds", g.Aggregator().SealedRoundCount()).
		Msg("Session state saved")
	return nil
}

func generateTableCode() string {
	return strings.Split(uuid.New().String(), "-")[0]
}
