// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrEmptyGameID is returned when a result has no game ID.
var ErrEmptyGameID = errors.New("storage: empty game id")

// AnonymousPlayer is recorded when a result has no player name.
const AnonymousPlayer = "anonymous"

// Store manages the SQLite database connection. It is safe for concurrent
// use by multiple sessions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Result is one finished game as reported by the platform.
type Result struct {
	GameID   string
	Player   string
	Score    int
	Lines    int
	Level    int
	Duration time.Duration
	Won      bool // The game was finished by reaching its goal
}

// ScoreEntry is a stored result.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Lines     int
	Level     int
	Duration  time.Duration
	Won       bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// A leading ~ is expanded to the home directory, parent directories are
// created and the schema is migrated.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; serializing connections avoids SQLITE_BUSY
	// when several SSH sessions finish at once.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'anonymous',
			score INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(game_id, player);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases written before runs were marked as won lack the column.
	var hasWon int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM pragma_table_info('scores') WHERE name = 'won'",
	).Scan(&hasWon)
	if err != nil {
		return err
	}
	if hasWon == 0 {
		if _, err := s.db.Exec("ALTER TABLE scores ADD COLUMN won INTEGER NOT NULL DEFAULT 0"); err != nil {
			return err
		}
	}

	_, err = s.db.Exec("CREATE INDEX IF NOT EXISTS idx_scores_fastest ON scores(game_id, won, duration_ms)")
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game and returns the new row ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.GameID == "" {
		return 0, ErrEmptyGameID
	}
	player := strings.TrimSpace(r.Player)
	if player == "" {
		player = AnonymousPlayer
	}

	res, err := s.db.Exec(
		`INSERT INTO scores (game_id, player, score, lines, level, duration_ms, won, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, player, r.Score, r.Lines, r.Level, r.Duration.Milliseconds(), r.Won, s.now().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores returns the best results for a game, highest score first.
// Ties go to the earlier result. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, game_id, player, score, lines, level, duration_ms, won, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// PlayerScores returns a player's results for a game, best first.
func (s *Store) PlayerScores(gameID, player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, game_id, player, score, lines, level, duration_ms, won, created_at
		 FROM scores
		 WHERE game_id = ? AND player = ?
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		gameID, player, limit,
	)
}

// FastestRuns returns the won results for a game, quickest first. Ties go
// to the higher score, then the earlier result.
func (s *Store) FastestRuns(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.query(
		`SELECT id, game_id, player, score, lines, level, duration_ms, won, created_at
		 FROM scores
		 WHERE game_id = ? AND won = 1
		 ORDER BY duration_ms ASC, score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

func (s *Store) query(q string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e          ScoreEntry
			durationMS int64
			createdMS  int64
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Lines, &e.Level, &durationMS, &e.Won, &createdMS); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = time.UnixMilli(createdMS)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for a game, or 0 if none exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// BestTime returns the quickest won result for a game. ok is false when
// the game has never been won.
func (s *Store) BestTime(gameID string) (best time.Duration, ok bool, err error) {
	var ms sql.NullInt64
	err = s.db.QueryRow(
		"SELECT MIN(duration_ms) FROM scores WHERE game_id = ? AND won = 1",
		gameID,
	).Scan(&ms)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best time: %w", err)
	}
	if !ms.Valid {
		return 0, false, nil
	}
	return time.Duration(ms.Int64) * time.Millisecond, true, nil
}

// ClearScores deletes all results for a game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
