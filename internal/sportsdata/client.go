// Package sportsdata fetches odds, schedules, news and stats from upstream
// sports APIs, with a primary source, a fallback source and a Redis-backed
// response cache in front of both.
package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/rivalbet/settlement-service/internal/apperr"
	"github.com/rivalbet/settlement-service/internal/cache"
)

// Fetcher retrieves upstream sports data as raw JSON documents.
type Fetcher interface {
	Odds(ctx context.Context, sport string) (json.RawMessage, error)
	Games(ctx context.Context, sport, date string) (json.RawMessage, error)
	News(ctx context.Context, sport string) (json.RawMessage, error)
	TeamStats(ctx context.Context, sport, teamID string) (json.RawMessage, error)
}

// Config holds client configuration.
type Config struct {
	PrimaryURL  string
	FallbackURL string
	APIKey      string
	Timeout     time.Duration
}

// Client is a caching Fetcher backed by two upstream sources.
type Client struct {
	primary  string
	fallback string
	apiKey   string
	http     *http.Client
	cache    *cache.RedisCache
	logger   zerolog.Logger
}

// NewClient creates a sports data client. cache may be nil, in which case
// every call goes upstream.
func NewClient(cfg Config, c *cache.RedisCache, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		primary:  cfg.PrimaryURL,
		fallback: cfg.FallbackURL,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
		cache:    c,
		logger:   logger.With().Str("component", "sportsdata_client").Logger(),
	}
}

// Odds returns current betting odds for a sport.
func (c *Client) Odds(ctx context.Context, sport string) (json.RawMessage, error) {
	return c.fetch(ctx, cache.CategoryOdds, "odds:"+sport, "/odds/"+url.PathEscape(sport))
}

// Games returns the schedule for a sport on a given date (YYYY-MM-DD).
func (c *Client) Games(ctx context.Context, sport, date string) (json.RawMessage, error) {
	return c.fetch(ctx, cache.CategoryGames, "games:"+sport+":"+date,
		"/games/"+url.PathEscape(sport)+"?date="+url.QueryEscape(date))
}

// News returns recent news items for a sport.
func (c *Client) News(ctx context.Context, sport string) (json.RawMessage, error) {
	return c.fetch(ctx, cache.CategoryNews, "news:"+sport, "/news/"+url.PathEscape(sport))
}

// TeamStats returns season statistics for a team.
func (c *Client) TeamStats(ctx context.Context, sport, teamID string) (json.RawMessage, error) {
	return c.fetch(ctx, cache.CategoryStats, "stats:"+sport+":"+teamID,
		"/stats/"+url.PathEscape(sport)+"/"+url.PathEscape(teamID))
}

func (c *Client) fetch(ctx context.Context, category cache.Category, key, path string) (json.RawMessage, error) {
	if c.cache != nil {
		var cached json.RawMessage
		hit, err := c.cache.Get(ctx, category, key, &cached)
		if err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, going upstream")
		} else if hit {
			return cached, nil
		}
	}

	body, err := c.fetchFrom(ctx, c.primary, path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Primary source failed, trying fallback")
		if c.fallback == "" {
			return nil, err
		}
		body, err = c.fetchFrom(ctx, c.fallback, path)
		if err != nil {
			return nil, err
		}
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, category, key, json.RawMessage(body)); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache response")
		}
	}
	return body, nil
}

func (c *Client) fetchFrom(ctx context.Context, base, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, apperr.New(apperr.ResourceExhausted, "upstream rate limit exceeded")
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.New(apperr.NotFound, "upstream resource not found")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.Internal, "upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, apperr.Wrap(err, apperr.Internal, "failed to read upstream response")
	}
	if !json.Valid(body) {
		return nil, apperr.New(apperr.Internal, fmt.Sprintf("upstream returned invalid JSON (%d bytes)", len(body)))
	}
	return body, nil
}
