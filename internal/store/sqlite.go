// Package store provides storage backends for MassKeeper.
//
// This file implements the SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/masskeeper/masskeeper/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore persists sessions, challenges and measurements in a single
// SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("SQLiteStore ready", "dsn", dsn)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) LoadSession(userID int64) (models.Session, error) {
	sess := models.NewSession(userID)
	err := s.db.QueryRow(
		`SELECT conversation_state, language FROM sessions WHERE user_id = ?`, userID,
	).Scan(&sess.State, &sess.Language)
	if err == sql.ErrNoRows {
		return sess, nil
	}
	if err != nil {
		slog.Error("SQLiteStore LoadSession failed", "error", err, "userID", userID)
		return sess, fmt.Errorf("load session for %d: %w", userID, err)
	}
	return sess, nil
}

func (s *SQLiteStore) SaveSession(sess models.Session) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (user_id, conversation_state, language) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET conversation_state = excluded.conversation_state, language = excluded.language`,
		sess.UserID, sess.State, sess.Language,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveSession failed", "error", err, "userID", sess.UserID)
		return fmt.Errorf("save session for %d: %w", sess.UserID, err)
	}
	slog.Debug("SQLiteStore SaveSession succeeded", "userID", sess.UserID, "state", sess.State)
	return nil
}

func (s *SQLiteStore) LoadLatestChallenge(userID int64) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.QueryRow(
		`SELECT id, user_id, active, start_date, end_date, start_value, target_value
		 FROM challenges WHERE user_id = ? ORDER BY id DESC LIMIT 1`, userID,
	).Scan(&c.ID, &c.UserID, &c.Active, &c.StartDate, &c.EndDate, &c.StartValue, &c.TargetValue)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore LoadLatestChallenge failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("load latest challenge for %d: %w", userID, err)
	}
	return &c, nil
}

func (s *SQLiteStore) SaveChallenge(c models.Challenge) error {
	_, err := s.db.Exec(
		`INSERT INTO challenges (user_id, active, start_date, end_date, start_value, target_value)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, c.Active, c.StartDate, c.EndDate, c.StartValue, c.TargetValue,
	)
	if err != nil {
		slog.Error("SQLiteStore SaveChallenge failed", "error", err, "userID", c.UserID)
		return fmt.Errorf("save challenge for %d: %w", c.UserID, err)
	}
	slog.Debug("SQLiteStore SaveChallenge succeeded", "userID", c.UserID, "active", c.Active)
	return nil
}

func (s *SQLiteStore) DeleteChallenges(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM challenges WHERE user_id = ?`, userID)
	if err != nil {
		slog.Error("SQLiteStore DeleteChallenges failed", "error", err, "userID", userID)
		return fmt.Errorf("delete challenges for %d: %w", userID, err)
	}
	return nil
}

func (s *SQLiteStore) AppendMeasurement(m models.Measurement) error {
	_, err := s.db.Exec(
		`INSERT INTO measurements (user_id, date, value) VALUES (?, ?, ?)`,
		m.UserID, models.FormatDate(m.Date), m.Value,
	)
	if err != nil {
		slog.Error("SQLiteStore AppendMeasurement failed", "error", err, "userID", m.UserID)
		return fmt.Errorf("append measurement for %d: %w", m.UserID, err)
	}
	return nil
}

func (s *SQLiteStore) QueryMeasurements(userID int64) ([]models.Measurement, error) {
	rows, err := s.db.Query(
		`SELECT date, value FROM measurements WHERE user_id = ? ORDER BY date ASC, id ASC`, userID,
	)
	if err != nil {
		slog.Error("SQLiteStore QueryMeasurements query failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("query measurements for %d: %w", userID, err)
	}
	defer rows.Close()

	var out []models.Measurement
	for rows.Next() {
		var dateStr string
		m := models.Measurement{UserID: userID}
		if err := rows.Scan(&dateStr, &m.Value); err != nil {
			return nil, fmt.Errorf("scan measurement for %d: %w", userID, err)
		}
		if m.Date, err = models.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("stored measurement date for %d: %w", userID, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate measurements for %d: %w", userID, err)
	}
	return out, nil
}

func (s *SQLiteStore) DeleteMeasurements(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM measurements WHERE user_id = ?`, userID)
	if err != nil {
		slog.Error("SQLiteStore DeleteMeasurements failed", "error", err, "userID", userID)
		return fmt.Errorf("delete measurements for %d: %w", userID, err)
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	return s.db.Close()
}
