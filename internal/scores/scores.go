// Package scores keeps win records in Postgres. The store is
// optional; the game is fully playable without it.
package scores

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-cli/internal/database"
	"github.com/vancomm/minesweeper-cli/internal/session"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrDuplicate marks an attempt to record the same session twice.
var ErrDuplicate = errors.New("score already recorded")

// Store implements session.ScoreKeeper over a pgx pool.
type Store struct {
	db *pgxpool.Pool
}

// Open connects to the configured database and applies migrations.
func Open(ctx context.Context) (*Store, error) {
	db, err := database.ConnectAndMigrate(ctx, migrations)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) Record(ctx context.Context, score session.Score) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO score (
			score_id, player, difficulty,
			width, height, mine_count,
			turns, playtime_ms
		)
		VALUES (
			@score_id, @player, @difficulty,
			@width, @height, @mine_count,
			@turns, @playtime_ms
		);`,
		pgx.NamedArgs{
			"score_id":    score.SessionID,
			"player":      score.Player,
			"difficulty":  score.Difficulty.String(),
			"width":       score.Width,
			"height":      score.Height,
			"mine_count":  score.MineCount,
			"turns":       score.Turns,
			"playtime_ms": float64(score.Playtime.Milliseconds()),
		})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: session %s", ErrDuplicate, score.SessionID)
		}
		return fmt.Errorf("unable to record score: %w", err)
	}
	return nil
}

// scoreRow mirrors the score table for pgx row collection.
type scoreRow struct {
	ScoreId    [16]byte `db:"score_id"`
	Player     string   `db:"player"`
	Difficulty string   `db:"difficulty"`
	Width      int      `db:"width"`
	Height     int      `db:"height"`
	MineCount  int      `db:"mine_count"`
	Turns      int      `db:"turns"`
	PlaytimeMs float64  `db:"playtime_ms"`
}

func (s *Store) Top(
	ctx context.Context, d session.Difficulty, limit int,
) ([]session.Score, error) {
	rows, err := s.db.Query(ctx, `
		SELECT
			score_id, player, difficulty,
			width, height, mine_count,
			turns, playtime_ms
		FROM score
		WHERE difficulty = @difficulty
		ORDER BY playtime_ms
		LIMIT @limit;`,
		pgx.NamedArgs{
			"difficulty": d.String(),
			"limit":      limit,
		})
	if err != nil {
		return nil, err
	}
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[scoreRow])
	if err != nil {
		return nil, err
	}

	scores := make([]session.Score, 0, len(collected))
	for _, row := range collected {
		difficulty, err := session.ParseDifficulty(row.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("corrupt score row: %w", err)
		}
		scores = append(scores, session.Score{
			SessionID:  uuid.UUID(row.ScoreId),
			Player:     row.Player,
			Difficulty: difficulty,
			Width:      row.Width,
			Height:     row.Height,
			MineCount:  row.MineCount,
			Turns:      row.Turns,
			Playtime:   time.Duration(row.PlaytimeMs) * time.Millisecond,
		})
	}
	return scores, nil
}
