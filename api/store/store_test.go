package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/require"
)

func TestQueryReadOnlyRejectsUnsafeSQL(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := New(mock, 15*time.Second)

	// No expectations registered: the gate must fire before the pool is touched.
	_, err = s.QueryReadOnly(context.Background(), "DELETE FROM players")
	require.ErrorIs(t, err, ErrUnsafeSQL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryReadOnlyRunsInReadOnlyTx(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := New(mock, 15*time.Second)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery("SELECT display_name").
		WillReturnRows(pgxmock.NewRows([]string{"display_name", "ppg"}).
			AddRow("Jayson Tatum", 27.1).
			AddRow("Jaylen Brown", 24.4))
	mock.ExpectCommit()
	mock.ExpectRollback()

	rows, err := s.QueryReadOnly(context.Background(), "SELECT display_name, ppg FROM mv_player_season_averages")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Jayson Tatum", rows[0]["display_name"])
	require.Equal(t, 27.1, rows[0]["ppg"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryReadOnlyEmptyResult(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := New(mock, 15*time.Second)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery("SELECT").
		WithArgs(42).
		WillReturnRows(pgxmock.NewRows([]string{"pts"}))
	mock.ExpectCommit()
	mock.ExpectRollback()

	rows, err := s.QueryReadOnly(context.Background(), "SELECT pts FROM player_game_stats WHERE player_id = $1", 42)
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func TestQueryReadOnlyExecutionError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := New(mock, 15*time.Second)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery("SELECT").
		WillReturnError(errors.New(`relation "nope" does not exist`))
	mock.ExpectRollback()

	_, err = s.QueryReadOnly(context.Background(), "SELECT * FROM nope")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrQueryTimeout)
}

func TestQueryReadOnlyTimeoutIsDistinct(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := New(mock, 15*time.Second)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadOnly})
	mock.ExpectQuery("SELECT").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	_, err = s.QueryReadOnly(context.Background(), "SELECT pg_sleep(60)")
	require.ErrorIs(t, err, ErrQueryTimeout)
}

func TestSearchNewsChunks(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := New(mock, 15*time.Second)

	published := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	embedding := []float32{0.1, 0.2, 0.3}
	mock.ExpectQuery("SELECT nc.content").
		WithArgs(pgvector.NewVector(embedding), 25).
		WillReturnRows(pgxmock.NewRows([]string{"content", "title", "source", "url", "published_at", "distance"}).
			AddRow("Tatum dropped 40.", "Tatum leads Celtics", "ESPN NBA", "https://example.com/1", &published, 0.12))

	chunks, err := s.SearchNewsChunks(context.Background(), embedding, 25)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, "Tatum leads Celtics", chunks[0].Title)
	require.Equal(t, 0.12, chunks[0].Distance)
	require.NotNil(t, chunks[0].PublishedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}
