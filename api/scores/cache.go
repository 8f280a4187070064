package scores

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/pkg/metrics"
)

// forwardProbeDays is how far past today the cache looks for the next slate
// when today's board is empty.
const forwardProbeDays = 2

// Cache serves the scoreboard from memory, refreshing at most once per TTL.
// A refresh runs outside the lock so concurrent readers never block on the
// network; last write wins.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	payload   domain.Scoreboard
	fetchedAt time.Time
	ok        bool
}

func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 120 * time.Second
	}
	return &Cache{fetcher: fetcher, ttl: ttl, now: time.Now}
}

// Get returns the current scoreboard, from cache when fresh.
func (c *Cache) Get(ctx context.Context) domain.Scoreboard {
	c.mu.Lock()
	if c.ok && c.now().Sub(c.fetchedAt) < c.ttl {
		payload := c.payload
		c.mu.Unlock()
		metrics.ScoreboardCacheHitsTotal.Inc()
		return payload
	}
	c.mu.Unlock()

	payload := c.refresh(ctx)

	c.mu.Lock()
	c.payload = payload
	c.fetchedAt = c.now()
	c.ok = true
	c.mu.Unlock()

	return payload
}

// refresh fetches today's board and, when the league is dark, probes forward
// for the next scheduled slate. Errors degrade to an empty board rather than
// failing the page.
func (c *Cache) refresh(ctx context.Context) domain.Scoreboard {
	board, err := c.fetcher.Today(ctx)
	if err != nil {
		slog.Warn("scoreboard fetch failed", "error", err)
		metrics.ScoreboardFetchesTotal.WithLabelValues("error").Inc()
		return domain.Scoreboard{Games: []domain.Game{}, Label: "Today"}
	}
	metrics.ScoreboardFetchesTotal.WithLabelValues("ok").Inc()
	if len(board.Games) > 0 {
		board.Label = "Today"
		return board
	}

	today := c.now()
	for offset := 1; offset <= forwardProbeDays; offset++ {
		date := today.AddDate(0, 0, offset)
		probed, err := c.fetcher.ForDate(ctx, date)
		if err != nil {
			slog.Warn("dated scoreboard fetch failed", "date", date.Format("2006-01-02"), "error", err)
			metrics.ScoreboardFetchesTotal.WithLabelValues("error").Inc()
			continue
		}
		metrics.ScoreboardFetchesTotal.WithLabelValues("ok").Inc()
		if len(probed.Games) == 0 {
			continue
		}
		if offset == 1 {
			probed.Label = "Tomorrow"
		} else {
			probed.Label = date.Format("Mon, Jan 2")
		}
		return probed
	}

	return domain.Scoreboard{Games: []domain.Game{}, Label: "Today"}
}

// Schedule derives the matchup for every team on the current board: who they
// play and whether they are home or away. The betting pipeline uses it to
// auto-detect opponents for players with a game on the slate.
func (c *Cache) Schedule(ctx context.Context) map[string]domain.TeamScheduleEntry {
	board := c.Get(ctx)
	schedule := make(map[string]domain.TeamScheduleEntry, 2*len(board.Games))
	for _, g := range board.Games {
		if g.HomeTeamAbbr == "" || g.AwayTeamAbbr == "" {
			continue
		}
		schedule[g.HomeTeamAbbr] = domain.TeamScheduleEntry{Opponent: g.AwayTeamAbbr, Location: "home"}
		schedule[g.AwayTeamAbbr] = domain.TeamScheduleEntry{Opponent: g.HomeTeamAbbr, Location: "away"}
	}
	return schedule
}
