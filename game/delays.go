package game

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Delays pace the round so the UI can animate card by card. All values
// are milliseconds.
type Delays struct {
	DealSingleCard uint32 `yaml:"dealSingleCard"`
	PlayerActed    uint32 `yaml:"playerActed"`
	HoleCardReveal uint32 `yaml:"holeCardReveal"`
	RoundEnd       uint32 `yaml:"roundEnd"`
}

func DefaultDelays() Delays {
	return Delays{
		DealSingleCard: 500,
		PlayerActed:    1000,
		HoleCardReveal: 1000,
		RoundEnd:       1000,
	}
}

func ParseDelayConfig(delaysFile string) (Delays, error) {
	bytes, err := ioutil.ReadFile(delaysFile)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error reading delay config file [%s]", delaysFile))
	}

	var data Delays
	err = yaml.Unmarshal(bytes, &data)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error parsing delays YAML file [%s]", delaysFile))
	}

	return data, nil
}
