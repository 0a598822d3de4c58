package util

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type tableServerEnvironment struct {
	NatsURL        string
	PersistMethod  string
	RedisHost      string
	RedisPort      string
	RedisPW        string
	RedisDB        string
	StatsFile      string
	PolicyFile     string
	StatsInitFresh string
	PlayTimeout    string
	DisableDelays  string
	RestPort       string
	LogLevel       string
}

// Env is a helper object for accessing environment variables.
var Env = &tableServerEnvironment{
	NatsURL:        "NATS_URL",
	PersistMethod:  "PERSIST_METHOD",
	RedisHost:      "REDIS_HOST",
	RedisPort:      "REDIS_PORT",
	RedisPW:        "REDIS_PW",
	RedisDB:        "REDIS_DB",
	StatsFile:      "STATS_FILE",
	PolicyFile:     "POLICY_FILE",
	StatsInitFresh: "STATS_INIT_FRESH",
	PlayTimeout:    "PLAY_TIMEOUT",
	DisableDelays:  "DISABLE_DELAYS",
	RestPort:       "REST_PORT",
	LogLevel:       "LOG_LEVEL",
}

func (t *tableServerEnvironment) GetNatsURL() string {
	url := os.Getenv(t.NatsURL)
	if url == "" {
		url = "nats://localhost:4222"
	}
	return url
}

func (t *tableServerEnvironment) GetPersistMethod() string {
	method := os.Getenv(t.PersistMethod)
	if method == "" {
		// File store matches the reference games.json behavior.
		method = "file"
	}
	return method
}

func (t *tableServerEnvironment) GetRedisHost() string {
	host := os.Getenv(t.RedisHost)
	if host == "" {
		host = "localhost"
	}
	return host
}

func (t *tableServerEnvironment) GetRedisPort() int {
	port := os.Getenv(t.RedisPort)
	if port == "" {
		return 6379
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid %s value [%s]", t.RedisPort, port)
		return 6379
	}
	return portNum
}

func (t *tableServerEnvironment) GetRedisPW() string {
	return os.Getenv(t.RedisPW)
}

func (t *tableServerEnvironment) GetRedisDB() int {
	db := os.Getenv(t.RedisDB)
	if db == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(db)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid %s value [%s]", t.RedisDB, db)
		return 0
	}
	return dbNum
}

func (t *tableServerEnvironment) GetStatsFile() string {
	f := os.Getenv(t.StatsFile)
	if f == "" {
		f = "data/rounds.json"
	}
	return f
}

func (t *tableServerEnvironment) GetPolicyFile() string {
	f := os.Getenv(t.PolicyFile)
	if f == "" {
		f = "data/policy.json"
	}
	return f
}

// ShouldInitFreshStats reports whether a missing round-log store may be
// initialized as empty instead of failing startup.
func (t *tableServerEnvironment) ShouldInitFreshStats() bool {
	v := os.Getenv(t.StatsInitFresh)
	return v == "1" || v == "true"
}

// GetPlayTimeoutSec is the number of seconds the human seat gets to act
// before the table stands for them.
func (t *tableServerEnvironment) GetPlayTimeoutSec() int {
	v := os.Getenv(t.PlayTimeout)
	if v == "" {
		return 30
	}
	timeoutSec, err := strconv.Atoi(v)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid %s value [%s]", t.PlayTimeout, v)
		return 30
	}
	return timeoutSec
}

func (t *tableServerEnvironment) ShouldDisableDelays() bool {
	v := os.Getenv(t.DisableDelays)
	return v == "1" || v == "true"
}

func (t *tableServerEnvironment) GetRestPort() int {
	v := os.Getenv(t.RestPort)
	if v == "" {
		return 8080
	}
	portNum, err := strconv.Atoi(v)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid %s value [%s]", t.RestPort, v)
		return 8080
	}
	return portNum
}

func (t *tableServerEnvironment) GetZeroLogLogLevel() zerolog.Level {
	v := os.Getenv(t.LogLevel)
	switch v {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	default:
		environmentLogger.Error().Msgf("Invalid %s value [%s]", t.LogLevel, v)
		return zerolog.InfoLevel
	}
}
