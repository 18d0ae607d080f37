package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func TestAlchemyCountNFTs(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"total count", `{"ownedNfts":[{},{}],"totalCount":42}`, 42},
		{"page length", `{"ownedNfts":[{"contract":{}},{},{}]}`, 3},
		{"empty", `{"ownedNfts":[],"totalCount":0}`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/nft/v3/secret/getNFTsForOwner", r.URL.Path)
				assert.Equal(t, owner, r.URL.Query().Get("owner"))
				assert.Equal(t, "false", r.URL.Query().Get("withMetadata"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			ai := NewAlchemyIndexer(srv.URL+"/nft/v3/", "secret", NewClient())
			got, err := ai.CountNFTs(context.Background(), owner)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAlchemyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	ai := NewAlchemyIndexer(srv.URL, "secret", NewClient())
	_, err := ai.CountNFTs(context.Background(), owner)
	require.Error(t, err)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.NotContains(t, err.Error(), "secret")

	_, err = NewAlchemyIndexer(srv.URL, " ", NewClient()).CountNFTs(context.Background(), owner)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestAlchemyRateLimitedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewAlchemyIndexer(srv.URL, "k", NewClient()).CountNFTs(context.Background(), owner)
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestSnapshotCountVotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphQLRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "votes(first: $first, where: {voter: $voter})")
		assert.Equal(t, strings.ToLower(owner), req.Variables["voter"])
		assert.Equal(t, float64(1000), req.Variables["first"])

		_, _ = w.Write([]byte(`{"data":{"votes":[{"id":"a"},{"id":"b"},{"id":"c"}]}}`))
	}))
	defer srv.Close()

	hub := NewSnapshotHub(srv.URL, 1000, NewClient())
	got, err := hub.CountVotes(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestSnapshotEmptyAndErrors(t *testing.T) {
	var body atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body.Load().(string)))
	}))
	defer srv.Close()
	hub := NewSnapshotHub(srv.URL, 20, NewClient())

	body.Store(`{"data":{"votes":[]}}`)
	got, err := hub.CountVotes(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	body.Store(`{"errors":[{"message":"bad voter"}]}`)
	_, err = hub.CountVotes(context.Background(), owner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad voter")

	body.Store(`not json`)
	_, err = hub.CountVotes(context.Background(), owner)
	assert.Error(t, err)
}

func TestClientRateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(1, 1))
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := c.GetJSON(ctx, srv.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Equal(t, int32(1), hits.Load())
}

func TestClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(WithTimeout(20 * time.Millisecond))
	assert.Error(t, c.GetJSON(context.Background(), srv.URL, nil))
}
