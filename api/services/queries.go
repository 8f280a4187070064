package services

import (
	"fmt"
	"strings"

	"github.com/courtsidelabs/courtside/api/domain"
)

// Templated evidence queries. Player lookups go through unaccent ILIKE so
// "Jokic" matches "Nikola Jokić"; team lookups use the standard abbreviation.

func hitRateQuery(player string) domain.Query {
	return domain.Query{
		SQL: `
SELECT *
FROM mv_player_prop_hit_rates
WHERE player_id = (
    SELECT player_id FROM players
    WHERE unaccent(display_name) ILIKE unaccent('%' || $1 || '%')
    LIMIT 1
);`,
		Args: []any{player},
	}
}

func trendQuery(player string) domain.Query {
	return domain.Query{
		SQL: fmt.Sprintf(`
WITH recent AS (
    SELECT pts, reb, ast, fg3m, pts + reb + ast AS pra,
           ROW_NUMBER() OVER (ORDER BY game_date DESC) AS rn
    FROM player_game_stats
    WHERE player_id = (SELECT player_id FROM players WHERE unaccent(display_name) ILIKE unaccent('%%' || $1 || '%%') LIMIT 1)
      AND season_id = '%s'
)
SELECT
    ROUND(AVG(pts) FILTER (WHERE rn <= 5)::numeric, 1)  AS last_5_ppg,
    ROUND(AVG(pts) FILTER (WHERE rn <= 15)::numeric, 1) AS last_15_ppg,
    ROUND(AVG(pts)::numeric, 1)                          AS season_ppg,
    ROUND(AVG(reb) FILTER (WHERE rn <= 5)::numeric, 1)  AS last_5_rpg,
    ROUND(AVG(reb) FILTER (WHERE rn <= 15)::numeric, 1) AS last_15_rpg,
    ROUND(AVG(reb)::numeric, 1)                          AS season_rpg,
    ROUND(AVG(ast) FILTER (WHERE rn <= 5)::numeric, 1)  AS last_5_apg,
    ROUND(AVG(ast) FILTER (WHERE rn <= 15)::numeric, 1) AS last_15_apg,
    ROUND(AVG(ast)::numeric, 1)                          AS season_apg,
    ROUND(AVG(fg3m) FILTER (WHERE rn <= 5)::numeric, 1) AS last_5_fg3mpg,
    ROUND(AVG(fg3m) FILTER (WHERE rn <= 15)::numeric, 1) AS last_15_fg3mpg,
    ROUND(AVG(fg3m)::numeric, 1)                         AS season_fg3mpg,
    ROUND(AVG(pra) FILTER (WHERE rn <= 5)::numeric, 1)  AS last_5_pra,
    ROUND(AVG(pra) FILTER (WHERE rn <= 15)::numeric, 1) AS last_15_pra,
    ROUND(AVG(pra)::numeric, 1)                          AS season_pra
FROM recent;`, seasonID),
		Args: []any{player},
	}
}

func splitsQuery(player string) domain.Query {
	return domain.Query{
		SQL: `
SELECT *
FROM mv_player_home_away_splits
WHERE player_id = (
    SELECT player_id FROM players
    WHERE unaccent(display_name) ILIKE unaccent('%' || $1 || '%')
    LIMIT 1
);`,
		Args: []any{player},
	}
}

func matchupQuery(player, opponentAbbr string) domain.Query {
	return domain.Query{
		SQL: fmt.Sprintf(`
SELECT p.display_name, COUNT(*) AS games,
       ROUND(AVG(s.pts)::numeric, 1) AS ppg,
       ROUND(AVG(s.reb)::numeric, 1) AS rpg,
       ROUND(AVG(s.ast)::numeric, 1) AS apg,
       ROUND(AVG(s.fg3m)::numeric, 1) AS fg3mpg
FROM player_game_stats s
JOIN players p USING (player_id)
WHERE unaccent(p.display_name) ILIKE unaccent('%%' || $1 || '%%')
  AND s.matchup LIKE '%%' || $2 || '%%'
  AND s.season_id = '%s'
GROUP BY p.display_name;`, seasonID),
		Args: []any{player, opponentAbbr},
	}
}

func oppDefenseQuery(opponentAbbr string) domain.Query {
	return domain.Query{
		SQL:  `SELECT * FROM mv_team_defensive_ratings WHERE team_abbr = $1;`,
		Args: []any{opponentAbbr},
	}
}

// findPicksQuery scans the league for props hitting in at least 8 of the
// last 10 games.
func findPicksQuery() domain.Query {
	return domain.Query{
		SQL: `
SELECT display_name,
       pts_25_hit_last10, pts_20_hit_last10, pts_15_hit_last10,
       reb_8_hit_last10, reb_6_hit_last10,
       ast_6_hit_last10, ast_4_hit_last10,
       fg3m_3_hit_last10, fg3m_2_hit_last10,
       pra_40_hit_last10, pra_30_hit_last10,
       games_last_10,
       avg_pts_last10, avg_reb_last10, avg_ast_last10, avg_fg3m_last10, avg_pra_last10,
       stddev_pts_last10
FROM mv_player_prop_hit_rates
WHERE games_last_10 >= 8
  AND (
    pts_25_hit_last10 >= 8
    OR pts_20_hit_last10 >= 8
    OR reb_8_hit_last10 >= 8
    OR ast_6_hit_last10 >= 8
    OR fg3m_3_hit_last10 >= 8
    OR pra_40_hit_last10 >= 8
  )
ORDER BY
    GREATEST(
        pts_25_hit_last10::float / NULLIF(games_last_10, 0),
        reb_8_hit_last10::float / NULLIF(games_last_10, 0),
        ast_6_hit_last10::float / NULLIF(games_last_10, 0),
        fg3m_3_hit_last10::float / NULLIF(games_last_10, 0)
    ) DESC
LIMIT 15;`,
	}
}

// playerTeamQuery batch-resolves player names to current team abbreviations.
func playerTeamQuery(players []string) domain.Query {
	placeholders := make([]string, len(players))
	args := make([]any, len(players))
	for i, p := range players {
		placeholders[i] = fmt.Sprintf("unaccent('%%' || $%d || '%%')", i+1)
		args[i] = p
	}
	sql := fmt.Sprintf(`
SELECT p.display_name, t.abbreviation AS team_abbr
FROM players p
JOIN teams t ON t.team_id = p.team_id
WHERE unaccent(p.display_name) ILIKE ANY(ARRAY[%s]);`, strings.Join(placeholders, ", "))
	return domain.Query{SQL: sql, Args: args}
}

// b2bTodayQuery finds teams that played yesterday, a back-to-back red flag
// when they are also on today's slate.
func b2bTodayQuery() domain.Query {
	return domain.Query{
		SQL: `
SELECT DISTINCT t.abbreviation AS team_abbr
FROM mv_team_back_to_backs b
JOIN teams t ON t.team_id = b.team_id
WHERE b.game_date = CURRENT_DATE - 1;`,
	}
}

// Game-preview plan builders.

func startersQuery(teamAbbr string) domain.Query {
	return domain.Query{
		SQL: fmt.Sprintf(`
SELECT p.display_name, p.position, p.jersey,
       COUNT(*) AS gp,
       ROUND(AVG(s.min)::numeric, 1) AS avg_min,
       ROUND(AVG(s.pts)::numeric, 1) AS ppg,
       ROUND(AVG(s.reb)::numeric, 1) AS rpg,
       ROUND(AVG(s.ast)::numeric, 1) AS apg
FROM player_game_stats s
JOIN players p USING (player_id)
WHERE s.team_abbr = $1
  AND s.season_id = '%s'
  AND s.game_date >= CURRENT_DATE - 21
GROUP BY p.player_id, p.display_name, p.position, p.jersey
ORDER BY AVG(s.min) DESC
LIMIT 5;`, seasonID),
		Args: []any{teamAbbr},
	}
}

func seasonAveragesQuery(teamAbbr string) domain.Query {
	return domain.Query{
		SQL: fmt.Sprintf(`
SELECT m.display_name, m.games_played, m.ppg, m.rpg, m.apg, m.spg, m.bpg,
       m.fg_pct, m.fg3_pct, m.ft_pct
FROM mv_player_season_averages m
JOIN players p ON p.player_id = m.player_id
JOIN teams t ON t.team_id = p.team_id
WHERE t.abbreviation = $1
  AND m.season_id = '%s'
ORDER BY m.ppg DESC
LIMIT 8;`, seasonID),
		Args: []any{teamAbbr},
	}
}

func headToHeadQuery(teamAbbr, opponentAbbr string) domain.Query {
	return domain.Query{
		SQL: fmt.Sprintf(`
SELECT s.game_date,
       SUM(s.pts) AS team_pts,
       s.matchup,
       CASE WHEN s.matchup LIKE '%%vs.%%' THEN 'Home' ELSE 'Away' END AS location
FROM player_game_stats s
WHERE s.team_abbr = $1
  AND s.matchup LIKE '%%' || $2 || '%%'
  AND s.season_id = '%s'
GROUP BY s.game_id, s.game_date, s.matchup
ORDER BY s.game_date DESC;`, seasonID),
		Args: []any{teamAbbr, opponentAbbr},
	}
}

func teamPropPicksQuery(teamAbbr string) domain.Query {
	return domain.Query{
		SQL: `
SELECT m.display_name,
       m.games_last_10,
       m.pts_25_hit_last10, m.pts_20_hit_last10, m.pts_15_hit_last10,
       m.reb_8_hit_last10, m.reb_6_hit_last10,
       m.ast_6_hit_last10, m.ast_4_hit_last10,
       m.fg3m_3_hit_last10, m.fg3m_2_hit_last10,
       m.pra_40_hit_last10, m.pra_30_hit_last10,
       m.avg_pts_last10, m.avg_reb_last10, m.avg_ast_last10,
       m.avg_fg3m_last10, m.avg_pra_last10,
       m.stddev_pts_last10
FROM mv_player_prop_hit_rates m
JOIN players p ON p.player_id = m.player_id
JOIN teams t ON t.team_id = p.team_id
WHERE t.abbreviation = $1
  AND m.games_last_10 >= 5
ORDER BY m.avg_pts_last10 DESC
LIMIT 10;`,
		Args: []any{teamAbbr},
	}
}

func teamTrendQuery(teamAbbr string) domain.Query {
	return domain.Query{
		SQL: fmt.Sprintf(`
WITH recent AS (
    SELECT s.player_id, p.display_name,
           s.pts, s.reb, s.ast, s.fg3m,
           ROW_NUMBER() OVER (PARTITION BY s.player_id ORDER BY s.game_date DESC) AS rn
    FROM player_game_stats s
    JOIN players p USING (player_id)
    JOIN teams t ON t.team_id = p.team_id
    WHERE t.abbreviation = $1
      AND s.season_id = '%s'
)
SELECT display_name,
       ROUND(AVG(pts) FILTER (WHERE rn <= 5)::numeric, 1) AS last_5_ppg,
       ROUND(AVG(pts)::numeric, 1) AS season_ppg,
       ROUND(AVG(reb) FILTER (WHERE rn <= 5)::numeric, 1) AS last_5_rpg,
       ROUND(AVG(reb)::numeric, 1) AS season_rpg,
       ROUND(AVG(ast) FILTER (WHERE rn <= 5)::numeric, 1) AS last_5_apg,
       ROUND(AVG(ast)::numeric, 1) AS season_apg
FROM recent
GROUP BY player_id, display_name
ORDER BY AVG(pts) DESC
LIMIT 6;`, seasonID),
		Args: []any{teamAbbr},
	}
}

func teamSplitsQuery(teamAbbr string) domain.Query {
	return domain.Query{
		SQL: `
SELECT m.display_name, m.location, m.games, m.ppg, m.rpg, m.apg, m.fg_pct
FROM mv_player_home_away_splits m
JOIN players p ON p.player_id = m.player_id
JOIN teams t ON t.team_id = p.team_id
WHERE t.abbreviation = $1
ORDER BY m.ppg DESC
LIMIT 12;`,
		Args: []any{teamAbbr},
	}
}
