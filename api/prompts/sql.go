package prompts

import "fmt"

// SchemaDescription documents the read-only schema for SQL generation and
// self-correction.
const SchemaDescription = `
You have access to a PostgreSQL database with NBA statistics. Here is the schema:

### Tables

**games** — one row per NBA game
- game_id (TEXT, PK), game_date (DATE), season_id (TEXT), season_type (TEXT: 'Regular Season', 'Playoffs', 'PlayIn')
- home_team_id (BIGINT), home_team_abbr (TEXT), home_pts (INT)
- away_team_id (BIGINT), away_team_abbr (TEXT), away_pts (INT)
- home_wl (TEXT), away_wl (TEXT)

**teams** — NBA teams reference
- team_id (BIGINT, PK), abbreviation (TEXT), full_name (TEXT), city (TEXT), year_founded (INT)

**players** — all NBA players (historical + active)
- player_id (BIGINT, PK), first_name (TEXT), last_name (TEXT), display_name (TEXT)
- is_active (BOOLEAN), from_year (INT), to_year (INT), team_id (BIGINT, FK -> teams)

**player_game_stats** — individual box scores per game
- player_id (BIGINT, PK part), game_id (TEXT, PK part), season_id (TEXT), game_date (DATE)
- team_id (BIGINT), team_abbr (TEXT), matchup (TEXT), wl (TEXT), min (REAL)
- fgm, fga (INT), fg_pct (REAL), fg3m, fg3a (INT), fg3_pct (REAL)
- ftm, fta (INT), ft_pct (REAL)
- oreb, dreb, reb, ast, stl, blk, tov, pf, pts (INT), plus_minus (REAL)

### Materialized Views (precomputed, use these for aggregate questions when possible)

**mv_player_career_totals** — career sums/averages per player
- player_id, display_name, is_active, games_played
- total_pts, ppg, rpg, apg, spg, bpg
- career_fg_pct, career_fg3_pct, career_ft_pct
- career_high_pts, career_high_reb, career_high_ast

**mv_player_season_averages** — per-player per-season averages
- player_id, display_name, season_id, games_played
- ppg, rpg, apg, spg, bpg, fg_pct, fg3_pct, ft_pct

**mv_player_milestone_games** — milestone counts per player
- player_id, display_name
- games_20_plus_pts, games_30_plus_pts, games_40_plus_pts, games_50_plus_pts, games_60_plus_pts
- triple_doubles, double_doubles_pts_reb, double_doubles_pts_ast

### Important notes
- season_id format: the year the season started, e.g. '2023-24' for the 2023-24 season
- Use ILIKE for name matching (e.g. WHERE display_name ILIKE '%lebron%')
- Use materialized views for career/season aggregate questions — they're faster
- For "current season" questions, use season_id = '2024-25'
- team abbreviations: LAL, BOS, GSW, MIA, etc.
`

const textToSQLTemplate = `You are an expert SQL query generator for an NBA statistics database.

%s

Given the user's question, generate a single PostgreSQL SELECT query that answers it.

Rules:
1. Output ONLY the SQL query, no explanation, no markdown fences.
2. Always use SELECT — never INSERT, UPDATE, DELETE, DROP, ALTER, or any DDL/DML.
3. Use materialized views when they can answer the question (faster).
4. LIMIT results to 25 rows unless the user asks for more.
5. Use ILIKE for fuzzy name matching.
6. Round decimal results to 1-2 decimal places for readability.
7. If the question is ambiguous, make reasonable assumptions.

User question: %s
`

func TextToSQL(question, newsContext string) string {
	p := fmt.Sprintf(textToSQLTemplate, SchemaDescription, question)
	if newsContext != "" {
		p += "\n\nRelevant injury/news context:\n" + newsContext
	}
	return p
}

const fixSQLTemplate = `The following SQL query failed with this error:

SQL:
%s

Error:
%s

Original question: %s

%s

Please fix the SQL query. Output ONLY the corrected SQL, no explanation.`

func FixSQL(sql, execError, question string) string {
	return fmt.Sprintf(fixSQLTemplate, sql, execError, question, SchemaDescription)
}
