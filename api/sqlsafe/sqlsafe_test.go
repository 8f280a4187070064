package sqlsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsMutations(t *testing.T) {
	bad := []string{
		"DELETE FROM players",
		"delete from players where player_id = 1",
		"INSERT INTO teams VALUES (1)",
		"DROP TABLE games",
		"SELECT 1; TRUNCATE player_game_stats",
		"UPDATE players SET team_id = 2",
		"CREATE TABLE x (id INT)",
		"GRANT ALL ON players TO public",
		"COPY players TO '/tmp/out'",
		"EXECUTE prepared_stmt",
	}
	for _, sql := range bad {
		assert.False(t, Validate(sql), "should reject: %s", sql)
	}
}

func TestValidateAcceptsReadOnly(t *testing.T) {
	good := []string{
		"SELECT display_name, ppg FROM mv_player_season_averages LIMIT 25",
		// keyword substrings inside identifiers must not false-positive
		"SELECT created_at, updated_at FROM news_articles",
		"SELECT * FROM games WHERE home_team_abbr = 'BOS'",
		"WITH recent AS (SELECT pts FROM player_game_stats) SELECT AVG(pts) FROM recent",
	}
	for _, sql := range good {
		assert.True(t, Validate(sql), "should accept: %s", sql)
	}
}
