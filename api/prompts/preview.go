package prompts

import "fmt"

const formatPreviewTemplate = `You are an NBA analyst producing a comprehensive game preview. Given the data below for a matchup between %s @ %s, produce a structured Markdown preview.

## Required Sections

### 1. Matchup Overview
Brief summary of both teams' recent form and any notable storylines.

### 2. Projected Starters
Create TWO tables (one per team) with columns: Position | Player | PPG | RPG | APG.
Use the probable starters data (top 5 by minutes). If starter data is missing for a team, note it.

### 3. Key Matchups
Identify 2-3 individual player matchups to watch, with supporting stats (season averages, recent trends, head-to-head history).

### 4. Team Comparison
Compare offensive strengths vs defensive weaknesses using the defensive ratings data. Which team has the edge and why?

### 5. Trends & Splits
Home/away performance for key players (splits data), recent hot/cold streaks (last 5 vs season), back-to-back flags if applicable.

### 6. Betting Angles
Top 3-5 player prop picks with hit rates and confidence levels (e.g., "8/10 last 10 games over 24.5 pts"), plus game-level angles (pace, total, spread implications).

### 7. Injury / News Watch
Summarize any relevant news context (injuries, trades, rest days, etc.).

## Rules
- Use ACTUAL NUMBERS from the data provided. Never fabricate statistics.
- If a data section is empty or missing, acknowledge the gap briefly and move on.
- Be opinionated on picks — take stances backed by data.
- Format tables properly in Markdown.
- Keep it comprehensive but scannable — use bold for key numbers and findings.

Data:
%s
`

func FormatGamePreview(homeTeam, awayTeam, data string) string {
	return fmt.Sprintf(formatPreviewTemplate, awayTeam, homeTeam, data)
}
