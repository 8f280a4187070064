// Package scores fetches and caches the league scoreboard.
package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/shared/httpclient"
)

const (
	liveScoreboardURL  = "https://cdn.nba.com/static/json/liveData/scoreboard/todaysScoreboard_00.json"
	datedScoreboardURL = "https://stats.nba.com/stats/scoreboardv2"
)

// Fetcher is the scoreboard source: today's live board plus a dated probe for
// off-days.
type Fetcher interface {
	Today(ctx context.Context) (domain.Scoreboard, error)
	ForDate(ctx context.Context, date time.Time) (domain.Scoreboard, error)
}

// Client fetches scoreboards from the public NBA endpoints.
type Client struct {
	http     *http.Client
	liveURL  string
	datedURL string
}

func NewClient() *Client {
	return &Client{
		http:     httpclient.NewShort(),
		liveURL:  liveScoreboardURL,
		datedURL: datedScoreboardURL,
	}
}

type liveTeam struct {
	TeamTricode string `json:"teamTricode"`
	Score       int    `json:"score"`
}

type liveGame struct {
	GameStatus     int      `json:"gameStatus"` // 1 scheduled, 2 live, 3 final
	GameStatusText string   `json:"gameStatusText"`
	HomeTeam       liveTeam `json:"homeTeam"`
	AwayTeam       liveTeam `json:"awayTeam"`
}

type liveResponse struct {
	Scoreboard struct {
		Games []liveGame `json:"games"`
	} `json:"scoreboard"`
}

// Today fetches the live scoreboard for the current date.
func (c *Client) Today(ctx context.Context) (domain.Scoreboard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.liveURL, nil)
	if err != nil {
		return domain.Scoreboard{}, fmt.Errorf("build scoreboard request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Scoreboard{}, fmt.Errorf("fetch scoreboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Scoreboard{}, fmt.Errorf("fetch scoreboard: status %d", resp.StatusCode)
	}

	var payload liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Scoreboard{}, fmt.Errorf("decode scoreboard: %w", err)
	}

	games := make([]domain.Game, 0, len(payload.Scoreboard.Games))
	for _, g := range payload.Scoreboard.Games {
		game := domain.Game{
			HomeTeamAbbr: g.HomeTeam.TeamTricode,
			AwayTeamAbbr: g.AwayTeam.TeamTricode,
			StatusText:   g.GameStatusText,
		}
		// Scheduled games report zero scores; leave those nil.
		if g.GameStatus > 1 {
			home, away := g.HomeTeam.Score, g.AwayTeam.Score
			game.HomePts, game.AwayPts = &home, &away
		}
		games = append(games, game)
	}

	return domain.Scoreboard{Games: games, Label: "Today"}, nil
}

type datedResponse struct {
	ResultSets []struct {
		Name    string  `json:"name"`
		Headers []string `json:"headers"`
		RowSet  [][]any `json:"rowSet"`
	} `json:"resultSets"`
}

// ForDate fetches the scheduled scoreboard for a future date.
func (c *Client) ForDate(ctx context.Context, date time.Time) (domain.Scoreboard, error) {
	q := url.Values{}
	q.Set("GameDate", date.Format("2006-01-02"))
	q.Set("LeagueID", "00")
	q.Set("DayOffset", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.datedURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.Scoreboard{}, fmt.Errorf("build dated scoreboard request: %w", err)
	}
	// stats.nba.com rejects requests without browser-ish headers.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://www.nba.com/")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Scoreboard{}, fmt.Errorf("fetch dated scoreboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.Scoreboard{}, fmt.Errorf("fetch dated scoreboard: status %d", resp.StatusCode)
	}

	var payload datedResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Scoreboard{}, fmt.Errorf("decode dated scoreboard: %w", err)
	}

	var games []domain.Game
	for _, rs := range payload.ResultSets {
		if rs.Name != "GameHeader" {
			continue
		}
		col := make(map[string]int, len(rs.Headers))
		for i, h := range rs.Headers {
			col[h] = i
		}
		for _, row := range rs.RowSet {
			games = append(games, domain.Game{
				HomeTeamAbbr: stringAt(row, col, "HOME_TEAM_ABBREVIATION"),
				AwayTeamAbbr: stringAt(row, col, "VISITOR_TEAM_ABBREVIATION"),
				StatusText:   stringAt(row, col, "GAME_STATUS_TEXT"),
			})
		}
	}

	return domain.Scoreboard{Games: games, Label: date.Format("Mon, Jan 2")}, nil
}

func stringAt(row []any, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
