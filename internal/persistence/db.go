// Package persistence provides SQLite-backed game chronicles: per-game
// metadata, notable events, and per-turn statistics recorded by the sim
// runner. Engine snapshots themselves are never round-tripped through here.
package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a SQLite connection for game chronicle storage.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		tribes TEXT NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		tribe INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turn_stats (
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		tribe INTEGER NOT NULL,
		treasury INTEGER NOT NULL,
		settlements INTEGER NOT NULL,
		population INTEGER NOT NULL,
		active_routes INTEGER NOT NULL,
		PRIMARY KEY (game_id, turn, tribe)
	);

	CREATE INDEX IF NOT EXISTS idx_events_game_turn ON events(game_id, turn);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// CreateGame registers a new game and returns its id.
func (st *Store) CreateGame(seed int64, tribes []string) (string, error) {
	id := uuid.NewString()
	_, err := st.conn.Exec(
		"INSERT INTO games (id, seed, tribes, started_at) VALUES (?, ?, ?, ?)",
		id, seed, strings.Join(tribes, ","), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert game: %w", err)
	}
	return id, nil
}

// Event is one notable occurrence in a game's chronicle.
type Event struct {
	Turn        int    `db:"turn"`
	Tribe       int    `db:"tribe"`
	Category    string `db:"category"`
	Description string `db:"description"`
}

// RecordEvent appends an event to the game's chronicle.
func (st *Store) RecordEvent(gameID string, ev Event) error {
	_, err := st.conn.Exec(
		"INSERT INTO events (game_id, turn, tribe, category, description) VALUES (?, ?, ?, ?, ?)",
		gameID, ev.Turn, ev.Tribe, ev.Category, ev.Description,
	)
	return err
}

// TurnStats is one tribe's per-turn aggregate line.
type TurnStats struct {
	Turn         int `db:"turn"`
	Tribe        int `db:"tribe"`
	Treasury     int `db:"treasury"`
	Settlements  int `db:"settlements"`
	Population   int `db:"population"`
	ActiveRoutes int `db:"active_routes"`
}

// RecordTurnStats upserts a tribe's stats line for a turn.
func (st *Store) RecordTurnStats(gameID string, ts TurnStats) error {
	_, err := st.conn.Exec(
		`INSERT OR REPLACE INTO turn_stats
		 (game_id, turn, tribe, treasury, settlements, population, active_routes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, ts.Turn, ts.Tribe, ts.Treasury, ts.Settlements, ts.Population, ts.ActiveRoutes,
	)
	return err
}

// RecentEvents returns the most recent N events for a game, newest first.
func (st *Store) RecentEvents(gameID string, limit int) ([]Event, error) {
	var events []Event
	err := st.conn.Select(&events,
		"SELECT turn, tribe, category, description FROM events WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, limit,
	)
	return events, err
}

// StatsFor returns a tribe's stats lines across all recorded turns.
func (st *Store) StatsFor(gameID string, tribe int) ([]TurnStats, error) {
	var stats []TurnStats
	err := st.conn.Select(&stats,
		`SELECT turn, tribe, treasury, settlements, population, active_routes
		 FROM turn_stats WHERE game_id = ? AND tribe = ? ORDER BY turn`,
		gameID, tribe,
	)
	return stats, err
}
