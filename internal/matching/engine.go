// internal/matching/engine.go
package matching

import (
	"context"
	"sort"
	"sync"
	"time"

	"maidmatch/internal/common/logger"
	"maidmatch/internal/common/metrics"
)

// ProfileDirectory resolves sponsor profiles and the eligible candidate pool.
// The pool is assumed pre-filtered for availability by the surrounding system;
// the engine only scores availability, it never filters on it.
type ProfileDirectory interface {
	GetSponsorProfile(ctx context.Context, sponsorID string) (*SponsorProfile, error)
	GetCandidatePool(ctx context.Context) ([]MaidProfile, error)
}

// HistoryProvider reads past placement outcomes. Read-only here; outcomes are
// written by the placement flow.
type HistoryProvider interface {
	RecentOutcomes(ctx context.Context) ([]MatchOutcome, error)
}

// Options carries the engine tunables, normally taken from config.
type Options struct {
	ScoreThreshold      float64
	DefaultLimit        int
	TrendingSkillsCap   int
	SeasonalMultipliers map[time.Month]float64
}

func defaultOptions() Options {
	return Options{
		ScoreThreshold:    0.3,
		DefaultLimit:      10,
		TrendingSkillsCap: 50,
		SeasonalMultipliers: map[time.Month]float64{
			time.January:  1.1,
			time.June:     1.1,
			time.July:     1.1,
			time.December: 1.1,
		},
	}
}

// Engine ranks a pool of candidates against one sponsor's criteria and adapts
// future rankings from aggregate search history. Scoring per candidate is pure
// over a learning-data snapshot taken at the start of each call; the single
// mutable piece of state is the learning data, guarded by mu.
type Engine struct {
	directory ProfileDirectory
	history   HistoryProvider
	store     LearningStore
	logger    logger.Logger
	opts      Options

	mu       sync.RWMutex
	learning *LearningData

	now func() time.Time
}

// NewEngine loads the persisted learning data and returns a ready engine. A
// missing or unreadable learning blob starts fresh rather than failing the
// service: the data is advisory.
func NewEngine(directory ProfileDirectory, history HistoryProvider, store LearningStore, opts Options, log logger.Logger) *Engine {
	if opts.ScoreThreshold <= 0 {
		opts.ScoreThreshold = defaultOptions().ScoreThreshold
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultOptions().DefaultLimit
	}
	if opts.TrendingSkillsCap <= 0 {
		opts.TrendingSkillsCap = defaultOptions().TrendingSkillsCap
	}
	if len(opts.SeasonalMultipliers) == 0 {
		opts.SeasonalMultipliers = defaultOptions().SeasonalMultipliers
	}

	e := &Engine{
		directory: directory,
		history:   history,
		store:     store,
		logger:    log.WithFields(map[string]interface{}{"component": "matching-engine"}),
		opts:      opts,
		learning:  NewLearningData(),
		now:       time.Now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	data, err := store.Load(ctx)
	if err != nil {
		e.logger.Warn("failed to load learning data, starting fresh", map[string]interface{}{
			"error": err,
		})
	} else if data != nil {
		e.learning = data
	}

	return e
}

// FindMatches ranks the candidate pool against the sponsor's criteria merged
// with the per-call preference overrides. Results are cut at the base-score
// threshold, sorted descending by adjusted score, and truncated to limit
// (engine default when limit <= 0). Learning counters are updated and
// persisted as a side effect; a persistence failure never fails the call.
func (e *Engine) FindMatches(ctx context.Context, sponsorID string, overrides *MatchPreferences, limit int) ([]MatchResult, error) {
	start := e.now()

	sponsor, err := e.directory.GetSponsorProfile(ctx, sponsorID)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	criteria := MergeCriteria(sponsor, overrides)

	pool, err := e.directory.GetCandidatePool(ctx)
	if err != nil {
		metrics.MatchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	history := e.loadHistory(ctx)

	// consistent snapshot for all candidates of this call
	e.mu.RLock()
	learning := e.learning.Clone()
	e.mu.RUnlock()

	now := e.now()
	sponsorSnap := sponsorSnapshot(sponsor)

	results := make([]MatchResult, 0, len(pool))
	for i := range pool {
		maid := &pool[i]
		result := e.scoreCandidate(criteria, sponsorSnap, maid, learning, history, now)

		// hard cutoff on the base score: adjustments never resurrect a weak match
		if result.Score <= e.opts.ScoreThreshold {
			metrics.CandidatesBelowThreshold.Inc()
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AdjustedScore > results[j].AdjustedScore
	})

	if limit <= 0 {
		limit = e.opts.DefaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	e.updateLearning(ctx, criteria)

	metrics.MatchRequestsTotal.WithLabelValues("success").Inc()
	metrics.MatchRequestDuration.Observe(e.now().Sub(start).Seconds())
	metrics.CandidatesScored.Observe(float64(len(pool)))

	e.logger.Info("matching completed", map[string]interface{}{
		"sponsorId":   sponsorID,
		"poolSize":    len(pool),
		"resultCount": len(results),
	})

	return results, nil
}

// CalculateMatchScore computes the full MatchResult for one sponsor/candidate
// pair. Pure given its inputs; reads but never writes learning data.
func (e *Engine) CalculateMatchScore(sponsor *SponsorProfile, maid *MaidProfile, criteria *MatchCriteria) MatchResult {
	e.mu.RLock()
	learning := e.learning.Clone()
	e.mu.RUnlock()

	history := e.loadHistory(context.Background())

	return e.scoreCandidate(criteria, sponsorSnapshot(sponsor), maid, learning, history, e.now())
}

func (e *Engine) scoreCandidate(
	criteria *MatchCriteria,
	sponsorSnap ProfileSnapshot,
	maid *MaidProfile,
	learning *LearningData,
	history []MatchOutcome,
	now time.Time,
) MatchResult {
	breakdown := computeFactors(criteria, maid)
	base := weightedScore(breakdown)
	adjusted := applyAdjustments(base, sponsorSnap, maid, learning, history, e.opts.SeasonalMultipliers, now)

	return MatchResult{
		CandidateID:   maid.ID,
		Candidate:     maid,
		Score:         base,
		AdjustedScore: adjusted,
		Breakdown:     breakdown,
		Confidence:    confidenceFrom(breakdown),
		Reasons:       reasonsFrom(breakdown),
	}
}

// loadHistory degrades to no history on failure: the success-rate multiplier
// then stays neutral, which is the documented default.
func (e *Engine) loadHistory(ctx context.Context) []MatchOutcome {
	if e.history == nil {
		return nil
	}
	outcomes, err := e.history.RecentOutcomes(ctx)
	if err != nil {
		e.logger.Warn("failed to fetch matching history", map[string]interface{}{
			"error": err,
		})
		return nil
	}
	return outcomes
}

// updateLearning applies this call's search to the counters under the single
// writer lock and persists. Save failures are logged and swallowed.
func (e *Engine) updateLearning(ctx context.Context, criteria *MatchCriteria) {
	e.mu.Lock()
	recordSearch(e.learning, criteria, e.opts.TrendingSkillsCap)
	snapshot := e.learning.Clone()
	e.mu.Unlock()

	if err := e.store.Save(ctx, snapshot); err != nil {
		metrics.LearningSaveFailures.Inc()
		e.logger.Warn("failed to persist learning data", map[string]interface{}{
			"error": err,
		})
	}
}

// LearningSnapshot returns a copy of the current learning data for diagnostics.
func (e *Engine) LearningSnapshot() *LearningData {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.learning.Clone()
}

// MergeCriteria layers per-call preference overrides on top of the sponsor's
// stored preferences; a set override key wins, everything else passes through.
func MergeCriteria(sponsor *SponsorProfile, overrides *MatchPreferences) *MatchCriteria {
	prefs := sponsor.Preferences
	if overrides != nil {
		if len(overrides.Skills) > 0 {
			prefs.Skills = overrides.Skills
		}
		if len(overrides.Languages) > 0 {
			prefs.Languages = overrides.Languages
		}
		if overrides.Experience > 0 {
			prefs.Experience = overrides.Experience
		}
		if overrides.AgeRange != nil {
			prefs.AgeRange = overrides.AgeRange
		}
		if overrides.Religion != "" {
			prefs.Religion = overrides.Religion
		}
		if overrides.MaritalStatus != "" {
			prefs.MaritalStatus = overrides.MaritalStatus
		}
	}

	return &MatchCriteria{
		Location:     sponsor.Location,
		Preferences:  prefs,
		Requirements: sponsor.Requirements,
	}
}
