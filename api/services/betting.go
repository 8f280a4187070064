package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/courtsidelabs/courtside/api/domain"
	"github.com/courtsidelabs/courtside/api/prompts"
	"github.com/courtsidelabs/courtside/pkg/metrics"
	"github.com/courtsidelabs/courtside/shared/jsonutil"
	"github.com/courtsidelabs/courtside/shared/llm"
)

// seasonID matches the season the aggregate views are built for.
const seasonID = "2024-25"

// maxPlayersPerPlan caps per-player fan-out so one question cannot spawn an
// unbounded plan.
const maxPlayersPerPlan = 3

// Betting is the betting-analysis pipeline: parse intent, gather evidence
// with an intent-keyed query plan, synthesize an opinionated answer.
type Betting struct {
	gen   Generator
	db    Querier
	sched ScheduleSource
}

func NewBetting(gen Generator, db Querier, sched ScheduleSource) *Betting {
	return &Betting{gen: gen, db: db, sched: sched}
}

// ParseIntent extracts the structured betting intent from the question.
// Any model or decode failure degrades to the default FIND_PICKS intent.
func (b *Betting) ParseIntent(ctx context.Context, question string) domain.BettingIntent {
	raw, err := b.gen.Chat(ctx, llm.ChatRequest{
		Messages:  userMessage(prompts.ParseBetting(question)),
		Tier:      llm.TierFast,
		MaxTokens: 300,
	})
	if err != nil {
		slog.Warn("betting intent parse failed", "error", err)
		return domain.DefaultBettingIntent()
	}

	var intent domain.BettingIntent
	if err := json.Unmarshal([]byte(stripFences(raw)), &intent); err != nil {
		slog.Warn("betting intent decode failed", "error", err)
		return domain.DefaultBettingIntent()
	}
	if intent.Type == "" {
		intent.Type = domain.IntentFindPicks
	}
	if intent.Players == nil {
		intent.Players = []string{}
	}
	if intent.Props == nil {
		intent.Props = []domain.Prop{}
	}
	if intent.Teams == nil {
		intent.Teams = []string{}
	}
	return intent
}

// Answer runs the full betting pipeline. newsContext, when non-empty, rides
// along in the evidence bundle under its own key.
func (b *Betting) Answer(ctx context.Context, question, newsContext string) (domain.BettingAnswer, error) {
	intent := b.ParseIntent(ctx, question)
	opponent := resolveOpponent(intent)

	bundle := b.collect(ctx, intent, opponent)
	if newsContext != "" {
		bundle["news_context"] = newsContext
	}

	answer, err := b.gen.Chat(ctx, llm.ChatRequest{
		Messages:    userMessage(prompts.FormatBetting(question, jsonutil.MustMarshalIndent(bundle))),
		Tier:        llm.TierStrong,
		Temperature: 0.2,
	})
	if err != nil {
		return domain.BettingAnswer{}, fmt.Errorf("format betting answer: %w", err)
	}

	return domain.BettingAnswer{Answer: answer, Intent: intent}, nil
}

func (b *Betting) collect(ctx context.Context, intent domain.BettingIntent, opponent string) domain.EvidenceBundle {
	switch {
	case intent.Type == domain.IntentPropCheck && len(intent.Players) > 0:
		return b.collectPropCheck(ctx, intent, opponent)
	case intent.Type == domain.IntentFindPicks && len(intent.Players) > 0:
		return b.collectPlayerPicks(ctx, intent.Players, opponent)
	case intent.Type == domain.IntentFindPicks:
		return b.collectLeaguePicks(ctx)
	case intent.Type == domain.IntentParlay && len(intent.Props) > 0:
		return b.collectParlay(ctx, intent.Props, opponent)
	case intent.Type == domain.IntentGamePreview:
		return b.collectGamePreview(ctx, intent)
	default:
		// Unrecognized shapes still get the league-wide scan.
		return runPlan(ctx, b.db, domain.QueryPlan{"high_hit_rate_props": findPicksQuery()})
	}
}

func (b *Betting) collectPropCheck(ctx context.Context, intent domain.BettingIntent, opponent string) domain.EvidenceBundle {
	player := intent.Players[0]
	plan := domain.QueryPlan{
		"hit_rate": hitRateQuery(player),
		"trend":    trendQuery(player),
		"splits":   splitsQuery(player),
	}
	if opponent != "" {
		plan["matchup"] = matchupQuery(player, opponent)
		plan["opp_defense"] = oppDefenseQuery(opponent)
	}

	bundle := runPlan(ctx, b.db, plan)
	if len(intent.Props) > 0 {
		bundle["requested_prop"] = intent.Props[0]
	}
	return bundle
}

func (b *Betting) collectPlayerPicks(ctx context.Context, players []string, opponent string) domain.EvidenceBundle {
	if len(players) > maxPlayersPerPlan {
		players = players[:maxPlayersPerPlan]
	}

	var schedule map[string]domain.TeamScheduleEntry
	var b2bRows, teamRows []map[string]any
	var g errgroup.Group
	g.Go(func() error { schedule = b.sched.Schedule(ctx); return nil })
	g.Go(func() error { b2bRows = b.rows(ctx, b2bTodayQuery()); return nil })
	g.Go(func() error { teamRows = b.rows(ctx, playerTeamQuery(players)); return nil })
	_ = g.Wait()

	playerTeams := teamsByPlayer(teamRows)

	plan := domain.QueryPlan{}
	opponents := map[string]bool{}
	if opponent != "" {
		opponents[opponent] = true
	}
	for _, player := range players {
		prefix := strings.ReplaceAll(player, " ", "_")
		plan[prefix+"_hit_rate"] = hitRateQuery(player)
		plan[prefix+"_trend"] = trendQuery(player)
		plan[prefix+"_splits"] = splitsQuery(player)

		// Explicit opponent wins; otherwise detect from today's slate.
		effective := opponent
		if effective == "" {
			if entry, ok := schedule[playerTeams[player]]; ok {
				effective = entry.Opponent
			}
		}
		if effective != "" {
			plan[prefix+"_matchup"] = matchupQuery(player, effective)
			opponents[effective] = true
		}
	}

	bundle := runPlan(ctx, b.db, plan)
	bundle["todays_schedule"] = schedule
	bundle["teams_on_b2b"] = abbrColumn(b2bRows)
	bundle["player_teams"] = playerTeams
	if defense := b.opponentDefense(ctx, opponents); len(defense) > 0 {
		bundle["opponent_defense"] = defense
	}
	return bundle
}

func (b *Betting) collectLeaguePicks(ctx context.Context) domain.EvidenceBundle {
	var schedule map[string]domain.TeamScheduleEntry
	var picks, b2bRows []map[string]any
	var g errgroup.Group
	g.Go(func() error { picks = b.rows(ctx, findPicksQuery()); return nil })
	g.Go(func() error { schedule = b.sched.Schedule(ctx); return nil })
	g.Go(func() error { b2bRows = b.rows(ctx, b2bTodayQuery()); return nil })
	_ = g.Wait()

	bundle := domain.EvidenceBundle{
		"high_hit_rate_props": picks,
		"todays_schedule":     schedule,
		"teams_on_b2b":        abbrColumn(b2bRows),
	}
	if len(picks) == 0 {
		return bundle
	}

	names := make([]string, 0, len(picks))
	for _, r := range picks {
		if name, ok := r["display_name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	playerTeams := teamsByPlayer(b.rows(ctx, playerTeamQuery(names)))
	bundle["player_teams"] = playerTeams

	opponents := map[string]bool{}
	for _, team := range playerTeams {
		if entry, ok := schedule[team]; ok {
			opponents[entry.Opponent] = true
		}
	}
	if defense := b.opponentDefense(ctx, opponents); len(defense) > 0 {
		bundle["opponent_defense"] = defense
	}
	return bundle
}

func (b *Betting) collectParlay(ctx context.Context, props []domain.Prop, opponent string) domain.EvidenceBundle {
	plan := domain.QueryPlan{}
	for i, prop := range props {
		if prop.Player == "" {
			continue
		}
		prefix := fmt.Sprintf("leg%d", i)
		plan[prefix+"_hit_rate"] = hitRateQuery(prop.Player)
		plan[prefix+"_trend"] = trendQuery(prop.Player)
	}
	if opponent != "" {
		plan["opp_defense"] = oppDefenseQuery(opponent)
	}

	bundle := runPlan(ctx, b.db, plan)
	bundle["parlay_legs"] = props
	bundle["correlation_warnings"] = detectParlayCorrelations(props)
	return bundle
}

func (b *Betting) collectGamePreview(ctx context.Context, intent domain.BettingIntent) domain.EvidenceBundle {
	plan := domain.QueryPlan{}
	for _, t := range intent.Teams {
		if abbr := resolveTeamAbbr(t); abbr != "" {
			plan["defense_"+abbr] = oppDefenseQuery(abbr)
		}
	}
	players := intent.Players
	if len(players) > maxPlayersPerPlan {
		players = players[:maxPlayersPerPlan]
	}
	for _, p := range players {
		plan["trend_"+p] = trendQuery(p)
		plan["hits_"+p] = hitRateQuery(p)
	}
	return runPlan(ctx, b.db, plan)
}

// rows runs one templated query with the same degrade-to-empty contract as a
// plan sub-query.
func (b *Betting) rows(ctx context.Context, q domain.Query) []map[string]any {
	rows, err := b.db.QueryReadOnly(ctx, q.SQL, q.Args...)
	if err != nil {
		slog.Warn("betting query failed", "error", err)
		metrics.PlanQueriesTotal.WithLabelValues("error").Inc()
		return []map[string]any{}
	}
	metrics.PlanQueriesTotal.WithLabelValues("ok").Inc()
	return rows
}

// opponentDefense fans out the defensive-ratings query over every detected
// opponent, keeping only non-empty results.
func (b *Betting) opponentDefense(ctx context.Context, opponents map[string]bool) map[string][]map[string]any {
	if len(opponents) == 0 {
		return nil
	}
	plan := domain.QueryPlan{}
	for opp := range opponents {
		plan[opp] = oppDefenseQuery(opp)
	}
	bundle := runPlan(ctx, b.db, plan)

	defense := map[string][]map[string]any{}
	for opp := range plan {
		if rows, ok := bundle[opp].([]map[string]any); ok && len(rows) > 0 {
			defense[opp] = rows
		}
	}
	return defense
}

func resolveOpponent(intent domain.BettingIntent) string {
	if abbr := resolveTeamAbbr(intent.Opponent); abbr != "" {
		return abbr
	}
	for _, t := range intent.Teams {
		if abbr := resolveTeamAbbr(t); abbr != "" {
			return abbr
		}
	}
	return ""
}

func teamsByPlayer(rows []map[string]any) map[string]string {
	teams := make(map[string]string, len(rows))
	for _, r := range rows {
		name, _ := r["display_name"].(string)
		team, _ := r["team_abbr"].(string)
		if name != "" {
			teams[name] = team
		}
	}
	return teams
}

func abbrColumn(rows []map[string]any) []string {
	abbrs := make([]string, 0, len(rows))
	for _, r := range rows {
		if abbr, ok := r["team_abbr"].(string); ok {
			abbrs = append(abbrs, abbr)
		}
	}
	return abbrs
}

// detectParlayCorrelations applies rule-based checks across parlay legs:
// same-player stat correlation, competing points overs, and the combined
// probability drop-off for three or more legs (assuming independence).
func detectParlayCorrelations(props []domain.Prop) []string {
	warnings := []string{}
	if len(props) < 2 {
		return warnings
	}

	var order []string
	byPlayer := map[string][]domain.Prop{}
	for _, p := range props {
		if _, seen := byPlayer[p.Player]; !seen {
			order = append(order, p.Player)
		}
		byPlayer[p.Player] = append(byPlayer[p.Player], p)
	}

	for _, name := range order {
		legs := byPlayer[name]
		if len(legs) < 2 {
			continue
		}
		stats := map[string]bool{}
		for _, leg := range legs {
			stats[leg.Stat] = true
		}
		if stats["pts"] && stats["ast"] {
			warnings = append(warnings, fmt.Sprintf(
				"%s: points and assists are positively correlated — high-usage games boost both. This helps if both are overs.",
				name))
		}
	}

	overPts := 0
	for _, p := range props {
		if p.Stat == "pts" && (p.Direction == "over" || p.Direction == "") {
			overPts++
		}
	}
	if overPts >= 2 {
		warnings = append(warnings,
			"Multiple players over on points — if they're on the same team, scoring is somewhat zero-sum within finite possessions. If on opposing teams, a blowout could limit one player's minutes.")
	}

	if len(props) >= 3 {
		combined := math.Round(math.Pow(0.7, float64(len(props))) * 100)
		warnings = append(warnings, fmt.Sprintf(
			"This is a %d-leg parlay. Combined probability drops significantly with each leg — even 70%% individual legs give only ~%.0f%% combined.",
			len(props), combined))
	}

	return warnings
}
