package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/courtsidelabs/courtside/api/domain"
)

func TestParseIntentMalformedJSONDefaults(t *testing.T) {
	gen := &fakeGen{queue: []string{"sorry, I can't produce JSON today"}}
	b := NewBetting(gen, &fakeQuerier{}, &fakeSchedule{})

	intent := b.ParseIntent(context.Background(), "best picks tonight?")
	require.Equal(t, domain.DefaultBettingIntent(), intent)
}

func TestParseIntentStripsFences(t *testing.T) {
	gen := &fakeGen{queue: []string{"```json\n{\"type\": \"PROP_CHECK\", \"players\": [\"Jayson Tatum\"]}\n```"}}
	b := NewBetting(gen, &fakeQuerier{}, &fakeSchedule{})

	intent := b.ParseIntent(context.Background(), "Tatum over 24.5?")
	require.Equal(t, domain.IntentPropCheck, intent.Type)
	require.Equal(t, []string{"Jayson Tatum"}, intent.Players)
	require.NotNil(t, intent.Props)
	require.NotNil(t, intent.Teams)
}

func TestPropCheckPlanAndAnswer(t *testing.T) {
	gen := &fakeGen{queue: []string{
		`{"type": "PROP_CHECK", "players": ["Jayson Tatum"],
		  "props": [{"player": "Jayson Tatum", "stat": "pts", "line": 24.5, "direction": "over"}],
		  "teams": [], "opponent": "knicks"}`,
		"Take the over.",
	}}
	db := &fakeQuerier{}
	b := NewBetting(gen, db, &fakeSchedule{})

	got, err := b.Answer(context.Background(), "Tatum over 24.5 pts vs the Knicks?", "")
	require.NoError(t, err)
	require.Equal(t, "Take the over.", got.Answer)
	require.Equal(t, domain.IntentPropCheck, got.Intent.Type)

	// hit_rate + trend + splits + matchup + opp_defense.
	require.Equal(t, 5, db.callCount())

	formatPrompt := gen.prompts()[1]
	require.Contains(t, formatPrompt, "requested_prop")
	require.Contains(t, formatPrompt, "24.5")
	require.NotContains(t, formatPrompt, "news_context")
}

func TestPlayerPicksAutoDetectsOpponent(t *testing.T) {
	gen := &fakeGen{queue: []string{
		`{"type": "FIND_PICKS", "players": ["Jayson Tatum"], "props": [], "teams": []}`,
		"Tatum props look live.",
	}}
	db := &fakeQuerier{fn: func(sql string, args []any) ([]map[string]any, error) {
		if strings.Contains(sql, "t.abbreviation AS team_abbr") && strings.Contains(sql, "ILIKE ANY") {
			return []map[string]any{{"display_name": "Jayson Tatum", "team_abbr": "BOS"}}, nil
		}
		return []map[string]any{}, nil
	}}
	sched := &fakeSchedule{sched: map[string]domain.TeamScheduleEntry{
		"BOS": {Opponent: "NYK", Location: "home"},
		"NYK": {Opponent: "BOS", Location: "away"},
	}}

	b := NewBetting(gen, db, sched)
	got, err := b.Answer(context.Background(), "Best Tatum picks tonight?", "")
	require.NoError(t, err)
	require.Equal(t, "Tatum props look live.", got.Answer)

	var matchupSeen, defenseSeen bool
	for _, sql := range db.calls {
		if strings.Contains(sql, "s.matchup LIKE") {
			matchupSeen = true
		}
		if strings.Contains(sql, "mv_team_defensive_ratings") {
			defenseSeen = true
		}
	}
	require.True(t, matchupSeen, "schedule-detected opponent drives a matchup query")
	require.True(t, defenseSeen, "detected opponent drives a defense query")
}

func TestBettingNewsContextRidesAlong(t *testing.T) {
	gen := &fakeGen{queue: []string{
		"not json at all",
		"With that injury news, fade the unders.",
	}}
	b := NewBetting(gen, &fakeQuerier{}, &fakeSchedule{})

	_, err := b.Answer(context.Background(), "picks?", "Jalen Brunson is out tonight.")
	require.NoError(t, err)
	require.Contains(t, gen.prompts()[1], "news_context")
	require.Contains(t, gen.prompts()[1], "Jalen Brunson is out tonight.")
}

func TestDetectParlayCorrelations(t *testing.T) {
	line := func(v float64) *float64 { return &v }
	props := []domain.Prop{
		{Player: "Luka Doncic", Stat: "pts", Line: line(29.5), Direction: "over"},
		{Player: "Luka Doncic", Stat: "ast", Line: line(8.5), Direction: "over"},
		{Player: "Kyrie Irving", Stat: "pts", Line: line(24.5), Direction: "over"},
	}

	warnings := detectParlayCorrelations(props)
	require.Len(t, warnings, 3)
	require.Contains(t, warnings[0], "Luka Doncic: points and assists are positively correlated")
	require.Contains(t, warnings[1], "Multiple players over on points")
	require.Contains(t, warnings[2], "3-leg parlay")
	require.Contains(t, warnings[2], "~34%")
}

func TestDetectParlayCorrelationsSingleLeg(t *testing.T) {
	require.Empty(t, detectParlayCorrelations([]domain.Prop{{Player: "Luka Doncic", Stat: "pts"}}))
}

func TestResolveOpponentFromTeamsList(t *testing.T) {
	intent := domain.BettingIntent{Teams: []string{"the riveters", "knicks"}}
	require.Equal(t, "NYK", resolveOpponent(intent))

	intent = domain.BettingIntent{Opponent: "Boston Celtics"}
	require.Equal(t, "BOS", resolveOpponent(intent))

	require.Equal(t, "", resolveOpponent(domain.BettingIntent{}))
}
