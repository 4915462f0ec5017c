// Package store persists player identity, score history and match timings
// to a relational database (sqlite).
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultPlayerName is used when a score arrives for a never-seen playerId.
const DefaultPlayerName = "Player"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	current_score INTEGER NOT NULL DEFAULT 0,
	best_score    INTEGER NOT NULL DEFAULT 0,
	games_played  INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS score_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	player_id  TEXT NOT NULL REFERENCES players(id),
	score      INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS matches (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	player_id   TEXT NOT NULL REFERENCES players(id),
	difficulty  TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
`

type Player struct {
	ID           string    `json:"playerId"`
	Name         string    `json:"playerName"`
	CurrentScore int       `json:"currentScore"`
	BestScore    int       `json:"bestScore"`
	GamesPlayed  int       `json:"gamesPlayed"`
	CreatedAt    time.Time `json:"createdAt"`
}

type MatchRecord struct {
	ID         int64     `json:"id"`
	PlayerID   string    `json:"playerId"`
	Difficulty string    `json:"difficulty"`
	DurationMs int64     `json:"durationMs"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TimerEntry struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Difficulty string `json:"difficulty"`
	BestMs     int64  `json:"bestMs"`
}

// Store wraps the connection pool. The pool is opened lazily on first use
// and shared afterwards.
type Store struct {
	path string

	once    sync.Once
	db      *sql.DB
	initErr error
}

func New(path string) *Store {
	return &Store{path: path}
}

// DB returns the lazily-initialized pool, creating the schema on first call.
func (s *Store) DB() (*sql.DB, error) {
	s.once.Do(func() {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			s.initErr = fmt.Errorf("open %s: %w", s.path, err)
			return
		}
		// sqlite tolerates a single writer; keep the pool honest.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(schema); err != nil {
			s.initErr = fmt.Errorf("create schema: %w", err)
			return
		}
		s.db = db
	})
	return s.db, s.initErr
}

// Close releases the pool if it was ever opened.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// UpsertPlayer registers a player identity. A reused id with a different
// name is NOT merged: a fresh identity record under a new uuid is created
// and returned instead.
func (s *Store) UpsertPlayer(id, name string) (Player, error) {
	db, err := s.DB()
	if err != nil {
		return Player{}, err
	}

	existing, err := s.GetPlayer(id)
	switch {
	case errors.Is(err, ErrNotFound):
		return s.insertPlayer(db, id, name)
	case err != nil:
		return Player{}, err
	}

	if existing.Name == name {
		return existing, nil
	}
	// Name change under an existing id forks a new identity.
	return s.insertPlayer(db, uuid.NewString(), name)
}

func (s *Store) insertPlayer(db *sql.DB, id, name string) (Player, error) {
	now := time.Now().UTC()
	_, err := db.Exec(
		`INSERT INTO players (id, name, current_score, best_score, games_played, created_at)
		 VALUES (?, ?, 0, 0, 0, ?)`,
		id, name, now,
	)
	if err != nil {
		return Player{}, fmt.Errorf("insert player: %w", err)
	}
	return Player{ID: id, Name: name, CreatedAt: now}, nil
}

// GetPlayer fetches one player row, ErrNotFound if absent.
func (s *Store) GetPlayer(id string) (Player, error) {
	db, err := s.DB()
	if err != nil {
		return Player{}, err
	}
	var p Player
	err = db.QueryRow(
		`SELECT id, name, current_score, best_score, games_played, created_at
		 FROM players WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.CurrentScore, &p.BestScore, &p.GamesPlayed, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrNotFound
	}
	if err != nil {
		return Player{}, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

// RecordScore stores one score sample and updates the player's running
// aggregates. An unknown playerId creates an implicit player row with a
// default name.
func (s *Store) RecordScore(playerID string, score int) (Player, error) {
	db, err := s.DB()
	if err != nil {
		return Player{}, err
	}

	p, err := s.GetPlayer(playerID)
	if errors.Is(err, ErrNotFound) {
		p, err = s.insertPlayer(db, playerID, DefaultPlayerName)
	}
	if err != nil {
		return Player{}, err
	}

	now := time.Now().UTC()
	if _, err := db.Exec(
		`INSERT INTO score_history (player_id, score, created_at) VALUES (?, ?, ?)`,
		p.ID, score, now,
	); err != nil {
		return Player{}, fmt.Errorf("insert score: %w", err)
	}

	best := p.BestScore
	if score > best {
		best = score
	}
	if _, err := db.Exec(
		`UPDATE players SET current_score = ?, best_score = ?, games_played = games_played + 1
		 WHERE id = ?`,
		score, best, p.ID,
	); err != nil {
		return Player{}, fmt.Errorf("update aggregates: %w", err)
	}

	return s.GetPlayer(p.ID)
}

// Leaderboard returns the top players ordered by best score.
func (s *Store) Leaderboard(limit int) ([]Player, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(
		`SELECT id, name, current_score, best_score, games_played, created_at
		 FROM players ORDER BY best_score DESC, name ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CurrentScore, &p.BestScore, &p.GamesPlayed, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// RecordMatch stores one completed timed match. The player row is created
// implicitly if needed, same policy as RecordScore.
func (s *Store) RecordMatch(playerID, difficulty string, durationMs int64) (MatchRecord, error) {
	db, err := s.DB()
	if err != nil {
		return MatchRecord{}, err
	}

	p, err := s.GetPlayer(playerID)
	if errors.Is(err, ErrNotFound) {
		p, err = s.insertPlayer(db, playerID, DefaultPlayerName)
	}
	if err != nil {
		return MatchRecord{}, err
	}

	now := time.Now().UTC()
	res, err := db.Exec(
		`INSERT INTO matches (player_id, difficulty, duration_ms, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, difficulty, durationMs, now,
	)
	if err != nil {
		return MatchRecord{}, fmt.Errorf("insert match: %w", err)
	}
	id, _ := res.LastInsertId()
	return MatchRecord{ID: id, PlayerID: p.ID, Difficulty: difficulty, DurationMs: durationMs, CreatedAt: now}, nil
}

// BestTimes returns each player's minimum match duration, best first,
// optionally filtered by difficulty.
func (s *Store) BestTimes(difficulty string, limit int) ([]TimerEntry, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	// One entry per player. With a single MIN aggregate, sqlite resolves the
	// bare difficulty column from the row holding the minimum, so the entry
	// reports the difficulty the best time was set on.
	query := `SELECT m.player_id, p.name, m.difficulty, MIN(m.duration_ms) AS best_ms
		 FROM matches m JOIN players p ON p.id = m.player_id`
	args := []interface{}{}
	if difficulty != "" {
		query += ` WHERE m.difficulty = ?`
		args = append(args, difficulty)
	}
	query += ` GROUP BY m.player_id ORDER BY best_ms ASC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("best times: %w", err)
	}
	defer rows.Close()

	entries := []TimerEntry{}
	for rows.Next() {
		var e TimerEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Difficulty, &e.BestMs); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
