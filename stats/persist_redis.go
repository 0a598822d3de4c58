package stats

import (
	"context"

	"github.com/go-redis/redis/v8"
)

const redisRoundLogKey = "blackjack:rounds"

// RedisStore keeps the round log as one JSON value in redis.
type RedisStore struct {
	rdclient *redis.Client
}

func NewRedisStore(redisURL string, redisPW string, redisDB int) *RedisStore {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisStore{
		rdclient: rdclient,
	}
}

func (r *RedisStore) Load() ([]Round, error) {
	data, err := r.rdclient.Get(context.Background(), redisRoundLogKey).Result()
	if err == redis.Nil {
		return nil, NotFoundError{Source: redisRoundLogKey}
	} else if err != nil {
		return nil, err
	}
	var records []roundRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, CorruptStoreError{Source: redisRoundLogKey, Err: err}
	}
	rounds, err := fromRecords(records)
	if err != nil {
		return nil, CorruptStoreError{Source: redisRoundLogKey, Err: err}
	}
	return rounds, nil
}

func (r *RedisStore) Save(rounds []Round) error {
	data, err := json.Marshal(toRecords(rounds))
	if err != nil {
		return err
	}
	return r.rdclient.Set(context.Background(), redisRoundLogKey, data, 0).Err()
}
