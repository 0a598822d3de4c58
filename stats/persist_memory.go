package stats

// MemoryStore holds the round log in process memory. Used by tests and
// by tables that do not need a durable log.
type MemoryStore struct {
	rounds []Round
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rounds: []Round{}}
}

func (m *MemoryStore) Load() ([]Round, error) {
	rounds := make([]Round, len(m.rounds))
	copy(rounds, m.rounds)
	return rounds, nil
}

func (m *MemoryStore) Save(rounds []Round) error {
	m.rounds = make([]Round, len(rounds))
	copy(m.rounds, rounds)
	return nil
}
