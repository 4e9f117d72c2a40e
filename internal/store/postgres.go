// Package store provides storage backends for MassKeeper.
//
// This file implements the PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "embed"

	_ "github.com/lib/pq"
	"github.com/masskeeper/masskeeper/internal/models"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// Compile-time check that PostgresStore implements Store.
var _ Store = (*PostgresStore)(nil)

// PostgresStore persists sessions, challenges and measurements in
// PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("PostgresStore ready")
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) LoadSession(userID int64) (models.Session, error) {
	sess := models.NewSession(userID)
	err := s.db.QueryRow(
		`SELECT conversation_state, language FROM sessions WHERE user_id = $1`, userID,
	).Scan(&sess.State, &sess.Language)
	if err == sql.ErrNoRows {
		return sess, nil
	}
	if err != nil {
		slog.Error("PostgresStore LoadSession failed", "error", err, "userID", userID)
		return sess, fmt.Errorf("load session for %d: %w", userID, err)
	}
	return sess, nil
}

func (s *PostgresStore) SaveSession(sess models.Session) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (user_id, conversation_state, language) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET conversation_state = EXCLUDED.conversation_state, language = EXCLUDED.language`,
		sess.UserID, sess.State, sess.Language,
	)
	if err != nil {
		slog.Error("PostgresStore SaveSession failed", "error", err, "userID", sess.UserID)
		return fmt.Errorf("save session for %d: %w", sess.UserID, err)
	}
	slog.Debug("PostgresStore SaveSession succeeded", "userID", sess.UserID, "state", sess.State)
	return nil
}

func (s *PostgresStore) LoadLatestChallenge(userID int64) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.QueryRow(
		`SELECT id, user_id, active, start_date, end_date, start_value, target_value
		 FROM challenges WHERE user_id = $1 ORDER BY id DESC LIMIT 1`, userID,
	).Scan(&c.ID, &c.UserID, &c.Active, &c.StartDate, &c.EndDate, &c.StartValue, &c.TargetValue)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore LoadLatestChallenge failed", "error", err, "userID", userID)
		return nil, fmt.Errorf("load latest challenge for %d: %w", userID, err)
	}
	return &c, nil
}

func (s *PostgresStore) SaveChallenge(c models.Challenge) error {
	_, err := s.db.Exec(
		`INSERT INTO challenges (user_id, active, start_date, end_date, start_value, target_value)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.UserID, c.Active, c.StartDate, c.EndDate, c.StartValue, c.TargetValue,
	)
	if err != nil {
		slog.Error("PostgresStore SaveChallenge failed", "error", err, "userID", c.UserID)
		return fmt.Errorf("save challenge for %d: %w", c.UserID, err)
	}
	slog.Debug("PostgresStore SaveChallenge succeeded", "userID", c.UserID, "active", c.Active)
	return nil
}

func (s *PostgresStore) DeleteChallenges(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM challenges WHERE user_id = $1`, userID)
	if err != nil {
		slog.Error("PostgresStore DeleteChallenges failed", "error", err, "userID", userID)
		return fmt.Errorf("delete challenges for %d: %w", userID, err)
	}
	return nil
}

func (s *PostgresStore) AppendMeasurement(m models.Measurement) error {
	_, err := s.db.Exec(
		`INSERT INTO measurements (user_id, date, value) VALUES ($1, $2, $3)`,
		m.UserID, models.FormatDate(m.Date), m.Value,
	)
	if err != nil {
		slog.Error("PostgresStore AppendMeasurement failed", "error", err, "userID", m.UserID)
		return fmt.Errorf("append measurement for %d: %w", m.UserID, err)
	}
	return nil
}

func (s *PostgresStore) QueryMeasurements(userID int64) ([]models.Measurement, error) {
	rows, err := s.db.Query(
		`SELECT date, value FROM measurements WHERE user_id = $1 ORDER BY date ASC, id ASC`, userID,
	)
	if err != nil {
		slog.Error("PostgresStore QueryMeasurements query failed", "error", err, "userID", userID)
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

func (s *PostgresStore) DeleteMeasurements(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM measurements WHERE user_id = $1`, userID)
	if err != nil {
		slog.Error("PostgresStore DeleteMeasurements failed", "error", err, "userID", userID)
		return fmt.Errorf("delete measurements for %d: %w", userID, err)
	}
	return nil
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	return s.db.Close()
}
