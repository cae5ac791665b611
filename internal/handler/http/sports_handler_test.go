package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalbet/settlement-service/internal/apperr"
)

// fakeFetcher returns canned payloads and records the last call.
type fakeFetcher struct {
	lastCall string
	payload  json.RawMessage
	err      error
}

func (f *fakeFetcher) Odds(ctx context.Context, sport string) (json.RawMessage, error) {
	f.lastCall = "odds:" + sport
	return f.payload, f.err
}

func (f *fakeFetcher) Games(ctx context.Context, sport, date string) (json.RawMessage, error) {
	f.lastCall = "games:" + sport + ":" + date
	return f.payload, f.err
}

func (f *fakeFetcher) News(ctx context.Context, sport string) (json.RawMessage, error) {
	f.lastCall = "news:" + sport
	return f.payload, f.err
}

func (f *fakeFetcher) TeamStats(ctx context.Context, sport, teamID string) (json.RawMessage, error) {
	f.lastCall = "stats:" + sport + ":" + teamID
	return f.payload, f.err
}

func setupSportsHandler(fetcher *fakeFetcher) *http.ServeMux {
	mux := http.NewServeMux()
	NewSportsHandler(fetcher, zerolog.Nop()).RegisterRoutes(mux)
	return mux
}

// TestSports_Odds tests the odds proxy route
func TestSports_Odds(t *testing.T) {
	fetcher := &fakeFetcher{payload: json.RawMessage(`{"lines":[]}`)}
	mux := setupSportsHandler(fetcher)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/odds", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "odds:nba", fetcher.lastCall)
	assert.JSONEq(t, `{"lines":[]}`, rec.Body.String())
}

// TestSports_GamesRequiresDate tests date validation on the schedule route
func TestSports_GamesRequiresDate(t *testing.T) {
	mux := setupSportsHandler(&fakeFetcher{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/games", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fetcher := &fakeFetcher{payload: json.RawMessage(`[]`)}
	mux = setupSportsHandler(fetcher)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/games?date=2026-01-15", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "games:nba:2026-01-15", fetcher.lastCall)
}

// TestSports_TeamStats tests the nested team stats route
func TestSports_TeamStats(t *testing.T) {
	fetcher := &fakeFetcher{payload: json.RawMessage(`{"wins":50}`)}
	mux := setupSportsHandler(fetcher)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/teams/lakers/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "stats:nba:lakers", fetcher.lastCall)
}

// TestSports_UpstreamErrorMapping tests error kind to status mapping
func TestSports_UpstreamErrorMapping(t *testing.T) {
	fetcher := &fakeFetcher{err: apperr.New(apperr.ResourceExhausted, "rate limited")}
	mux := setupSportsHandler(fetcher)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/odds", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	fetcher.err = apperr.New(apperr.Internal, "both sources down")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/odds", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

// TestSports_UnknownResource tests the 404 fallthrough
func TestSports_UnknownResource(t *testing.T) {
	mux := setupSportsHandler(&fakeFetcher{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sports/nba/standings", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
