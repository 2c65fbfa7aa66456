// internal/directory/sponsors.go
package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/common/logger"
	"maidmatch/internal/matching"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
)

const sponsorCachePrefix = "sponsor:profile:"

// Config holds the directory's data-source settings.
type Config struct {
	MaidIndex       string
	PoolSize        int
	ProfileCacheTTL time.Duration
}

// Directory serves sponsor profiles from postgres (redis cache-aside) and the
// candidate pool from the elasticsearch maid index. Implements
// matching.ProfileDirectory.
type Directory struct {
	config Config
	db     *sql.DB
	redis  *redis.Client
	es     *elasticsearch.Client
	logger logger.Logger
}

func New(config Config, db *sql.DB, rdb *redis.Client, es *elasticsearch.Client, log logger.Logger) *Directory {
	if config.PoolSize <= 0 {
		config.PoolSize = 500
	}
	if config.ProfileCacheTTL <= 0 {
		config.ProfileCacheTTL = 10 * time.Minute
	}
	return &Directory{
		config: config,
		db:     db,
		redis:  rdb,
		es:     es,
		logger: log.WithFields(map[string]interface{}{"component": "directory"}),
	}
}

// GetSponsorProfile resolves a sponsor by id, cache first. A missing row is a
// non-retryable SPONSOR_NOT_FOUND; transport failures are retryable.
func (d *Directory) GetSponsorProfile(ctx context.Context, sponsorID string) (*matching.SponsorProfile, error) {
	cacheKey := sponsorCachePrefix + sponsorID
	if val, err := d.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile matching.SponsorProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := d.db.QueryRowContext(ctx, `
		SELECT id, name, location, preferences, requirements
		FROM sponsors WHERE id = $1`, sponsorID)

	var profile matching.SponsorProfile
	var prefs, reqs []byte
	err := row.Scan(&profile.ID, &profile.Name, &profile.Location, &prefs, &reqs)
	if err == sql.ErrNoRows {
		return nil, errors.NewSponsorNotFoundError(sponsorID)
	}
	if err != nil {
		return nil, errors.NewProfileFetchFailedError(sponsorID, err)
	}

	if err := json.Unmarshal(prefs, &profile.Preferences); err != nil {
		profile.Preferences = matching.MatchPreferences{}
	}
	if err := json.Unmarshal(reqs, &profile.Requirements); err != nil {
		profile.Requirements = matching.MatchRequirements{}
	}

	data, _ := json.Marshal(profile)
	if err := d.redis.Set(ctx, cacheKey, data, d.config.ProfileCacheTTL).Err(); err != nil {
		d.logger.Warn("failed to cache sponsor profile", map[string]interface{}{
			"sponsorId": sponsorID,
			"error":     err,
		})
	}

	return &profile, nil
}
