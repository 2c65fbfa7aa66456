// internal/matching/redisstore.go
package matching

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const learningDataKey = "matching:learning-data"

// RedisLearningStore keeps the learning data as a single JSON blob in redis.
// Last write wins, which is fine for advisory counters.
type RedisLearningStore struct {
	client *redis.Client
	key    string
}

func NewRedisLearningStore(client *redis.Client) *RedisLearningStore {
	return &RedisLearningStore{
		client: client,
		key:    learningDataKey,
	}
}

func (s *RedisLearningStore) Load(ctx context.Context) (*LearningData, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load learning data: %w", err)
	}

	var data LearningData
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("decode learning data: %w", err)
	}
	if data.SkillDemand == nil {
		data.SkillDemand = make(map[string]SkillDemand)
	}
	return &data, nil
}

func (s *RedisLearningStore) Save(ctx context.Context, data *LearningData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode learning data: %w", err)
	}
	// no TTL: learning data lives until replaced
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save learning data: %w", err)
	}
	return nil
}
