package game

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"voyager.com/blackjack/util"
)

// TableConfig describes one table: the shoe size, whether a human seat
// is dealt in (auto-play tables run agents only), the act timeout for
// the human seat, and the agent policy knobs.
type TableConfig struct {
	Code           string       `yaml:"code"`
	NumDecks       int          `yaml:"numDecks"`
	HumanSeat      bool         `yaml:"humanSeat"`
	PlayTimeoutSec int          `yaml:"playTimeoutSec"`
	Agent          PolicyConfig `yaml:"agent"`
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NumDecks:       6,
		HumanSeat:      true,
		PlayTimeoutSec: util.Env.GetPlayTimeoutSec(),
		Agent:          DefaultPolicyConfig(),
	}
}

// ParseTableConfig reads a table YAML file over the defaults.
func ParseTableConfig(configFile string) (TableConfig, error) {
	config := DefaultTableConfig()
	bytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return config, errors.Wrap(err, fmt.Sprintf("Error reading table config file [%s]", configFile))
	}
	err = yaml.Unmarshal(bytes, &config)
	if err != nil {
		return config, errors.Wrap(err, fmt.Sprintf("Error parsing table config YAML file [%s]", configFile))
	}
	return config, nil
}
