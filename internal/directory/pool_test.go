// internal/directory/pool_test.go
package directory

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"maidmatch/internal/common/errors"
	"maidmatch/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport answers every elasticsearch request with a canned response.
type fakeTransport struct {
	status int
	body   string
}

func (t *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: t.status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body:    io.NopCloser(strings.NewReader(t.body)),
		Request: req,
	}, nil
}

func newFakeES(t *testing.T, status int, body string) *elasticsearch.Client {
	t.Helper()
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://fake:9200"},
		Transport: &fakeTransport{status: status, body: body},
	})
	require.NoError(t, err)
	return es
}

func TestDirectory_GetCandidatePool(t *testing.T) {
	body := `{
		"hits": {
			"hits": [
				{
					"_id": "maid-1",
					"_source": {
						"id": "maid-1",
						"name": "Candidate One",
						"skills": [{"name": "cooking"}],
						"experienceYears": 3,
						"preferredLocations": ["Dubai, UAE"]
					}
				},
				{
					"_id": "maid-2",
					"_source": {
						"name": "Candidate Two",
						"skills": [{"name": "childcare"}]
					}
				}
			]
		}
	}`

	dir := New(Config{MaidIndex: "maid_profiles"}, nil, nil, newFakeES(t, http.StatusOK, body), logger.NewTestLogger(t))
	pool, err := dir.GetCandidatePool(context.Background())

	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, "maid-1", pool[0].ID)
	assert.Equal(t, 3, pool[0].ExperienceYears)
	// document without an embedded id falls back to the index _id
	assert.Equal(t, "maid-2", pool[1].ID)
}

func TestDirectory_GetCandidatePool_EmptyIndex(t *testing.T) {
	dir := New(Config{MaidIndex: "maid_profiles"}, nil, nil,
		newFakeES(t, http.StatusOK, `{"hits":{"hits":[]}}`), logger.NewTestLogger(t))

	pool, err := dir.GetCandidatePool(context.Background())

	require.NoError(t, err)
	assert.Empty(t, pool)
}

func TestDirectory_GetCandidatePool_IndexMissing(t *testing.T) {
	dir := New(Config{MaidIndex: "maid_profiles"}, nil, nil,
		newFakeES(t, http.StatusNotFound, `{"error":{"type":"index_not_found_exception"}}`), logger.NewTestLogger(t))

	_, err := dir.GetCandidatePool(context.Background())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeMaidIndexNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestDirectory_GetCandidatePool_SearchError(t *testing.T) {
	dir := New(Config{MaidIndex: "maid_profiles"}, nil, nil,
		newFakeES(t, http.StatusInternalServerError, `{"error":"boom"}`), logger.NewTestLogger(t))

	_, err := dir.GetCandidatePool(context.Background())

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePoolFetchFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
