// internal/directory/pool.go
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/matching"
)

// poolSearchResponse is the slice of the elasticsearch response we consume.
type poolSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string               `json:"_id"`
			Source matching.MaidProfile `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// GetCandidatePool returns all maids the platform currently considers
// eligible. The index is maintained with availability already applied, so no
// further filtering happens here.
func (d *Directory) GetCandidatePool(ctx context.Context) ([]matching.MaidProfile, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{"available": true},
					},
				},
			},
		},
	}

	body, _ := json.Marshal(query)

	res, err := d.es.Search(
		d.es.Search.WithContext(ctx),
		d.es.Search.WithIndex(d.config.MaidIndex),
		d.es.Search.WithBody(bytes.NewReader(body)),
		d.es.Search.WithSize(d.config.PoolSize),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewPoolFetchTimeoutError()
		}
		return nil, errors.NewPoolFetchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return nil, &errors.StandardError{
				Code:      errors.ErrCodeMaidIndexNotFound,
				Message:   "Maid index not found",
				Details:   d.config.MaidIndex,
				Retryable: false,
			}
		}
		return nil, errors.NewPoolFetchFailedError(
			&esStatusError{status: res.Status()},
		)
	}

	var parsed poolSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errors.NewPoolFetchFailedError(err)
	}

	pool := make([]matching.MaidProfile, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		maid := hit.Source
		if maid.ID == "" {
			maid.ID = hit.ID
		}
		pool = append(pool, maid)
	}

	return pool, nil
}

type esStatusError struct {
	status string
}

func (e *esStatusError) Error() string {
	return "elasticsearch search error: " + e.status
}
