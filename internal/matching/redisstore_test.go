// internal/matching/redisstore_test.go
package matching

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*RedisLearningStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisLearningStore(client), mr
}

func TestRedisLearningStore_LoadEmpty(t *testing.T) {
	store, _ := setupStore(t)

	data, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisLearningStore_SaveAndLoad(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	saved := &LearningData{
		TrendingSkills: []string{"cooking", "childcare"},
		SkillDemand: map[string]SkillDemand{
			"cooking": {Demand: 5, Supply: 2},
		},
	}

	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.TrendingSkills, loaded.TrendingSkills)
	assert.Equal(t, saved.SkillDemand, loaded.SkillDemand)
}

func TestRedisLearningStore_LoadCorruptBlob(t *testing.T) {
	store, mr := setupStore(t)
	mr.Set("matching:learning-data", "{not json")

	data, err := store.Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, data)
}

func TestRedisLearningStore_LoadNormalizesNilMap(t *testing.T) {
	store, mr := setupStore(t)
	mr.Set("matching:learning-data", `{"trendingSkills":["cooking"]}`)

	data, err := store.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, data)
	assert.NotNil(t, data.SkillDemand)
}

func TestRedisLearningStore_ConnectionError(t *testing.T) {
	store, mr := setupStore(t)
	mr.Close()

	_, err := store.Load(context.Background())
	assert.Error(t, err)

	err = store.Save(context.Background(), NewLearningData())
	assert.Error(t, err)
}
