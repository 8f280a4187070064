package domain

import "time"

// Category is the routing decision for a question. Every question resolves to
// exactly one category; classification falls back to CategoryStats rather than
// failing on unrecognized output.
type Category string

const (
	CategoryStats       Category = "stats"
	CategoryNews        Category = "news"
	CategoryMixed       Category = "mixed"
	CategoryBetting     Category = "betting"
	CategoryOffTopic    Category = "off_topic"
	CategoryGamePreview Category = "game_preview"
	CategoryError       Category = "error"
)

// Turn is one prior message of the conversation history, owned by the caller.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Answer is the terminal artifact returned to the caller.
type Answer struct {
	Category Category     `json:"category"`
	Answer   string       `json:"answer"`
	SQL      string       `json:"sql,omitempty"`
	Sources  []NewsSource `json:"sources,omitempty"`
}

// NewsSource is one provenance record for a cited article chunk.
type NewsSource struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// NewsChunk is an indexed article excerpt with its raw vector distance to the
// query embedding.
type NewsChunk struct {
	Content     string
	Title       string
	Source      string
	URL         string
	PublishedAt *time.Time
	Distance    float64
}

type StatsAnswer struct {
	Answer  string
	SQL     string
	Results []map[string]any
}

type NewsAnswer struct {
	Answer  string
	Sources []NewsSource
}

type BettingAnswer struct {
	Answer string
	Intent BettingIntent
}

type PreviewAnswer struct {
	Answer   string
	Category Category
	Sources  []NewsSource
}

// IntentType tags the betting handling strategy.
type IntentType string

const (
	IntentPropCheck   IntentType = "PROP_CHECK"
	IntentFindPicks   IntentType = "FIND_PICKS"
	IntentParlay      IntentType = "PARLAY"
	IntentGamePreview IntentType = "GAME_PREVIEW"
)

// Prop is one wagered statistical threshold for a player.
type Prop struct {
	Player    string   `json:"player"`
	Stat      string   `json:"stat"`
	Line      *float64 `json:"line"`
	Direction string   `json:"direction"`
}

// BettingIntent is the parse-or-default structured form of a betting question.
// Malformed parser output degrades to DefaultBettingIntent, never an error.
type BettingIntent struct {
	Type     IntentType `json:"type"`
	Players  []string   `json:"players"`
	Props    []Prop     `json:"props"`
	Teams    []string   `json:"teams"`
	Opponent string     `json:"opponent"`
	Location string     `json:"location"`
}

// DefaultBettingIntent is the fail-safe intent used when parsing fails.
func DefaultBettingIntent() BettingIntent {
	return BettingIntent{
		Type:    IntentFindPicks,
		Players: []string{},
		Props:   []Prop{},
		Teams:   []string{},
	}
}

// Query is one sub-query of a plan: a SQL template plus positional parameters.
type Query struct {
	SQL  string
	Args []any
}

// QueryPlan maps a unique key to an independent sub-query. Plans are data,
// built once and then executed; keys identify result slots in the evidence
// bundle and must not collide within a request.
type QueryPlan map[string]Query

// EvidenceBundle maps query keys (and named evidence slots) to their results.
// It is the single artifact serialized for the final synthesis step; a failed
// sub-query occupies its slot with an empty result.
type EvidenceBundle map[string]any

// Game is one scoreboard entry. Scores are nil for unplayed games.
type Game struct {
	HomeTeamAbbr string `json:"home_team_abbr"`
	AwayTeamAbbr string `json:"away_team_abbr"`
	HomePts      *int   `json:"home_pts"`
	AwayPts      *int   `json:"away_pts"`
	StatusText   string `json:"game_status_text"`
}

// Scoreboard is the scores cache payload, replaced wholesale on refresh.
type Scoreboard struct {
	Games []Game `json:"games"`
	Label string `json:"label"`
}

// TeamScheduleEntry says who a team plays and where, derived from the
// scoreboard whenever the cache entry refreshes.
type TeamScheduleEntry struct {
	Opponent string `json:"opponent"`
	Location string `json:"location"` // "home" or "away"
}
