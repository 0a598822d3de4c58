package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/joho/godotenv"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"voyager.com/blackjack/game"
	"voyager.com/blackjack/logging"
	"voyager.com/blackjack/nats"
	"voyager.com/blackjack/rest"
	"voyager.com/blackjack/stats"
	"voyager.com/blackjack/util"
	"voyager.com/blackjack/util/random"
)

var tableConfigFile *string
var delayConfigFile *string
var mainLogger = logging.GetZeroLogger("main::main", nil)

func init() {
	tableConfigFile = flag.String("table-config", "", "YAML file with the default table configuration")
	delayConfigFile = flag.String("delays", "delays.yaml", "YAML file containing pause times")
}

func main() {
	// Global random seed used by every shoe and agent without an
	// injected source.
	rand.Seed(random.NewSeed())

	err := run()
	if err != nil {
		mainLogger.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; environment variables win.
	godotenv.Load()

	logLevel := util.Env.GetZeroLogLogLevel()
	zerolog.SetGlobalLevel(logLevel)
	flag.Parse()

	delays := game.DefaultDelays()
	if *delayConfigFile != "" {
		if parsed, err := game.ParseDelayConfig(*delayConfigFile); err == nil {
			delays = parsed
		} else {
			mainLogger.Warn().Msgf("Using default delays: %v", err)
		}
	}

	config := game.DefaultTableConfig()
	if *tableConfigFile != "" {
		parsed, err := game.ParseTableConfig(*tableConfigFile)
		if err != nil {
			return errors.Wrap(err, "Error while parsing table config")
		}
		config = parsed
	}

	store, err := stats.NewStore()
	if err != nil {
		return errors.Wrap(err, "Error while creating round-log store")
	}

	gameManager, err := game.NewManager(store, delays)
	if err != nil {
		return errors.Wrap(err, "Error while creating table manager")
	}

	natsURL := util.Env.GetNatsURL()
	mainLogger.Info().Msgf("NATS URL: %s", natsURL)
	nc, err := natsgo.Connect(natsURL)
	if err != nil {
		return errors.Wrapf(err, "Error connecting to NATS server [%s]", natsURL)
	}

	natsGameManager := nats.NewGameManager(nc, gameManager)
	g, err := natsGameManager.NewTable(config)
	if err != nil {
		return errors.Wrap(err, "Error while creating the default table")
	}
	mainLogger.Info().
		Str(logging.TableCodeKey, g.TableCode()).
		Msg("Default table ready")

	rest.RunRestServer(natsGameManager)
	return nil
}
