package game

import (
	"io/ioutil"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// The policy table has 32 states because the highest reachable
// pre-bust-check hand value is 31: holding 20, hitting, and drawing an
// ace counted as 11. State 0 is the empty-hand placeholder.
const (
	numStates  = 32
	numActions = 2

	hitIndex   = 0
	standIndex = 1
)

// QTable maps (hand value, action) to the learned estimate of future
// reward.
type QTable [numStates][numActions]float64

// PolicyConfig carries the learning scalars and the blending knobs. The
// reference values make no optimality claim, so none of them are
// hard-coded outside the defaults.
type PolicyConfig struct {
	LearningRate           float64 `yaml:"learningRate" json:"learningRate"`
	DiscountFactor         float64 `yaml:"discountFactor" json:"discountFactor"`
	ExplorationProbability float64 `yaml:"explorationProbability" json:"explorationProbability"`
	QLWeight               float64 `yaml:"qlWeight" json:"qlWeight"`
	HitSafeThreshold       float64 `yaml:"hitSafeThreshold" json:"hitSafeThreshold"`
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		LearningRate:           0.75,
		DiscountFactor:         0.75,
		ExplorationProbability: 0.25,
		QLWeight:               0.4,
		HitSafeThreshold:       0.6,
	}
}

// Policy is the tabular learned policy of one agent. It is owned and
// mutated exclusively by that agent, one update per action taken.
type Policy struct {
	table QTable
	cfg   PolicyConfig
}

func NewPolicy(cfg PolicyConfig) *Policy {
	return &Policy{cfg: cfg}
}

func (p *Policy) estimate(state int, move Move) float64 {
	return p.table[state][actionIndex(move)]
}

func (p *Policy) bestEstimate(state int) float64 {
	best := p.table[state][0]
	for i := 1; i < numActions; i++ {
		if p.table[state][i] > best {
			best = p.table[state][i]
		}
	}
	return best
}

// Update applies the Q-learning rule for the action actually taken. It
// runs on every turn, including the one where the agent busts or
// stands, so the table only ever reflects realized experience.
func (p *Policy) Update(state int, move Move, nextState int, reward float64) {
	current := p.table[state][actionIndex(move)]
	p.table[state][actionIndex(move)] = current +
		p.cfg.LearningRate*(reward+p.cfg.DiscountFactor*p.bestEstimate(nextState)-current)
}

func (p *Policy) Snapshot() QTable {
	return p.table
}

func (p *Policy) Restore(table QTable) {
	p.table = table
}

func actionIndex(move Move) int {
	if move == MoveHit {
		return hitIndex
	}
	return standIndex
}

// rewardFor scores a state transition: reaching exactly 21 is the goal,
// busting is penalized, and improving into the 17..20 band earns a
// small shaping reward.
func rewardFor(state int, nextState int) float64 {
	switch {
	case nextState == 21:
		return 1
	case nextState > 21:
		return -0.25
	case nextState > 16 && nextState > state:
		return 0.25
	default:
		return 0
	}
}

// clampState maps a hand value onto a table row.
func clampState(value int) int {
	if value < 0 {
		return 0
	}
	if value >= numStates {
		return numStates - 1
	}
	return value
}

// LoadPolicies reads persisted agent tables, keyed by position. Learning
// accumulates across sessions; a store that does not exist yet is an
// empty map, not an error.
func LoadPolicies(path string) (map[string]QTable, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]QTable{}, nil
		}
		return nil, errors.Wrapf(err, "Unable to read policy file %s", path)
	}
	tables := map[string]QTable{}
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, errors.Wrapf(err, "Unable to decode policy file %s", path)
	}
	return tables, nil
}

func SavePolicies(path string, tables map[string]QTable) error {
	data, err := json.Marshal(tables)
	if err != nil {
		return errors.Wrap(err, "Unable to encode policy tables")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "Unable to create policy directory %s", dir)
		}
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "Unable to write policy file %s", path)
	}
	return nil
}
