// Package store provides storage backends for MassKeeper.
//
// It includes an in-memory store for tests and SQLite/PostgreSQL
// implementations for production use.
package store

import "github.com/masskeeper/masskeeper/internal/models"

// Store is the persistence adapter consumed by the conversation flow.
//
// Sessions are one row per user, overwritten each turn. Challenges are an
// append-only log: SaveChallenge always inserts, and the latest row for a
// user is "the" challenge. Measurements are append-only and queried in
// date-ascending order.
type Store interface {
	// LoadSession returns the session for a user, or the implicit
	// first-contact session when none is stored yet.
	LoadSession(userID int64) (models.Session, error)
	// SaveSession upserts the single session row for the user.
	SaveSession(s models.Session) error

	// LoadLatestChallenge returns the most recently inserted challenge
	// row for the user, or nil when the user never had one.
	LoadLatestChallenge(userID int64) (*models.Challenge, error)
	// SaveChallenge appends a new challenge row (never updates in place).
	SaveChallenge(c models.Challenge) error
	// DeleteChallenges wipes the user's whole challenge log.
	DeleteChallenges(userID int64) error

	// AppendMeasurement inserts one measurement record.
	AppendMeasurement(m models.Measurement) error
	// QueryMeasurements returns all of the user's measurements ordered by
	// date ascending. Duplicate dates are allowed and preserved.
	QueryMeasurements(userID int64) ([]models.Measurement, error)
	// DeleteMeasurements wipes the user's measurement history.
	DeleteMeasurements(userID int64) error

	// Close releases the underlying resources.
	Close() error
}

// Opts holds configuration for store construction.
type Opts struct {
	// DSN is the database connection string: a file path for SQLite, a
	// postgres:// URL for PostgreSQL.
	DSN string
}

// Option configures store construction.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}
