package services

import "strings"

// teamAbbrs maps franchise names, nicknames and abbreviations to the standard
// three-letter code used in matchup strings and the defensive-ratings view.
var teamAbbrs = map[string]string{
	"atlanta hawks": "ATL", "hawks": "ATL",
	"boston celtics": "BOS", "celtics": "BOS",
	"brooklyn nets": "BKN", "nets": "BKN",
	"charlotte hornets": "CHA", "hornets": "CHA",
	"chicago bulls": "CHI", "bulls": "CHI",
	"cleveland cavaliers": "CLE", "cavaliers": "CLE", "cavs": "CLE",
	"dallas mavericks": "DAL", "mavericks": "DAL", "mavs": "DAL",
	"denver nuggets": "DEN", "nuggets": "DEN",
	"detroit pistons": "DET", "pistons": "DET",
	"golden state warriors": "GSW", "warriors": "GSW",
	"houston rockets": "HOU", "rockets": "HOU",
	"indiana pacers": "IND", "pacers": "IND",
	"la clippers": "LAC", "los angeles clippers": "LAC", "clippers": "LAC",
	"los angeles lakers": "LAL", "lakers": "LAL",
	"memphis grizzlies": "MEM", "grizzlies": "MEM",
	"miami heat": "MIA", "heat": "MIA",
	"milwaukee bucks": "MIL", "bucks": "MIL",
	"minnesota timberwolves": "MIN", "timberwolves": "MIN", "wolves": "MIN",
	"new orleans pelicans": "NOP", "pelicans": "NOP",
	"new york knicks": "NYK", "knicks": "NYK",
	"oklahoma city thunder": "OKC", "thunder": "OKC",
	"orlando magic": "ORL", "magic": "ORL",
	"philadelphia 76ers": "PHI", "76ers": "PHI", "sixers": "PHI",
	"phoenix suns": "PHX", "suns": "PHX",
	"portland trail blazers": "POR", "trail blazers": "POR", "blazers": "POR",
	"sacramento kings": "SAC", "kings": "SAC",
	"san antonio spurs": "SAS", "spurs": "SAS",
	"toronto raptors": "TOR", "raptors": "TOR",
	"utah jazz": "UTA", "jazz": "UTA",
	"washington wizards": "WAS", "wizards": "WAS",

	"atl": "ATL", "bos": "BOS", "bkn": "BKN", "cha": "CHA", "chi": "CHI",
	"cle": "CLE", "dal": "DAL", "den": "DEN", "det": "DET", "gsw": "GSW",
	"hou": "HOU", "ind": "IND", "lac": "LAC", "lal": "LAL", "mem": "MEM",
	"mia": "MIA", "mil": "MIL", "min": "MIN", "nop": "NOP", "nyk": "NYK",
	"okc": "OKC", "orl": "ORL", "phi": "PHI", "phx": "PHX", "por": "POR",
	"sac": "SAC", "sas": "SAS", "tor": "TOR", "uta": "UTA", "was": "WAS",
}

// resolveTeamAbbr converts a team name or abbreviation to its standard
// three-letter code. Unknown input resolves to "".
func resolveTeamAbbr(team string) string {
	return teamAbbrs[strings.ToLower(strings.TrimSpace(team))]
}
