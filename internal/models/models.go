// Package models defines the core data structures for MassKeeper.
//
// It includes types for measurements, challenges, sessions and the
// normalized transport events, which are shared across modules.
package models

import (
	"errors"
	"time"
)

// ConversationState identifies where a user is in a multi-turn flow.
// Every turn ends in exactly one state, which becomes the start state
// of the next turn.
type ConversationState string

const (
	StateInit                    ConversationState = "init"
	StateAwaitingBodyWeight      ConversationState = "awaiting_body_weight"
	StateAwaitingEraseConfirm    ConversationState = "awaiting_erase_confirmation"
	StateAwaitingCSVTable        ConversationState = "awaiting_csv_table"
	StateAwaitingLanguage        ConversationState = "awaiting_language"
	StateStartChallengeConfirm   ConversationState = "start_challenge_confirm"
	StateClearChallengeConfirm   ConversationState = "clear_challenge_confirm"
	StateAwaitingStartingWeight  ConversationState = "awaiting_starting_weight"
	StateAwaitingStartingDate    ConversationState = "awaiting_starting_date"
	StateAwaitingTargetWeight    ConversationState = "awaiting_target_weight"
	StateAwaitingTargetDate      ConversationState = "awaiting_target_date"
	StateAwaitingFinalizeConfirm ConversationState = "awaiting_challenge_finalize_confirmation"
)

// IsValidConversationState checks whether the given state is one of the
// known conversation states.
func IsValidConversationState(s ConversationState) bool {
	switch s {
	case StateInit, StateAwaitingBodyWeight, StateAwaitingEraseConfirm,
		StateAwaitingCSVTable, StateAwaitingLanguage,
		StateStartChallengeConfirm, StateClearChallengeConfirm,
		StateAwaitingStartingWeight, StateAwaitingStartingDate,
		StateAwaitingTargetWeight, StateAwaitingTargetDate,
		StateAwaitingFinalizeConfirm:
		return true
	default:
		return false
	}
}

// Language selects the phrase set used for a session.
type Language string

const (
	LanguageEnglish Language = "english"
	LanguageRussian Language = "russian"

	// DefaultLanguage is used for sessions created on first contact.
	DefaultLanguage = LanguageEnglish
)

// IsValidLanguage checks whether the given language is supported.
func IsValidLanguage(l Language) bool {
	return l == LanguageEnglish || l == LanguageRussian
}

// Intent is the classification of an inbound message against the closed
// set of state-independent commands. IntentNone means the message did not
// match any command and dispatch falls through to the current state.
type Intent string

const (
	IntentNone            Intent = ""
	IntentShowInfo        Intent = "show_info"
	IntentEnterWeight     Intent = "enter_weight"
	IntentShowMenu        Intent = "show_menu"
	IntentShowPlot        Intent = "show_plot"
	IntentShowAllTimePlot Intent = "show_all_time_plot"
	IntentDownload        Intent = "download"
	IntentUpload          Intent = "upload"
	IntentErase           Intent = "erase"
	IntentChangeLanguage  Intent = "change_language"
	IntentMotivate        Intent = "motivate"
	IntentChallenge       Intent = "challenge"
	IntentClearChallenge  Intent = "clear_challenge"
)

// Validation constants shared across modules.
const (
	// DefaultMaxBodyWeight is the exclusive upper bound for accepted
	// weight values in kg when no ceiling is configured.
	DefaultMaxBodyWeight = 250.0
	// DefaultMaintenanceThreshold is the fraction of mean body mass below
	// which a weekly speed is classified as maintaining.
	DefaultMaintenanceThreshold = 0.0025
	// DefaultMaxFileSize is the upload size ceiling in bytes.
	DefaultMaxFileSize = 1 << 20
)

// Error variables for classifiable failures. Handlers match on these to
// pick the user-facing reply; anything else is an unexpected fault.
var (
	ErrInvalidNumber       = errors.New("value is not a valid positive number")
	ErrInvalidDate         = errors.New("value is not a valid date")
	ErrDateOrdering        = errors.New("target date is earlier than start date")
	ErrZeroChallengeLength = errors.New("challenge start and end dates are equal")
	ErrChallengeIncomplete = errors.New("challenge is missing required fields")
	ErrCSVParse            = errors.New("csv parsing failed")
	ErrFileTooBig          = errors.New("file exceeds maximum size")
	ErrNoDocument          = errors.New("no valid document attached")
)

// Measurement is a single body-mass record. Measurements are append-only:
// created on weight entry or CSV import, never mutated, deleted only by a
// full erase.
type Measurement struct {
	UserID int64     `json:"user_id"`
	Date   time.Time `json:"date"` // date-only precision
	Value  float64   `json:"value"`
}

// Challenge is a user-declared goal: move from a start value on a start
// date to a target value on an end date. Challenge rows are append-only;
// the latest row for a user is authoritative. While the wizard builds a
// challenge, Active stays false and fields fill in row by row.
//
// Dates are stored in the canonical text format (see DateLayout) exactly
// as persisted, so an unparsable stored date surfaces as an error at the
// call site that needs the parsed value.
type Challenge struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Active      bool    `json:"active"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	StartValue  float64 `json:"start_value"`
	TargetValue float64 `json:"target_value"`
}

// Complete reports whether all four goal fields have been collected.
func (c *Challenge) Complete() bool {
	return c.StartDate != "" && c.EndDate != "" && c.StartValue > 0 && c.TargetValue > 0
}

// StartTime parses the stored start date.
func (c *Challenge) StartTime() (time.Time, error) {
	return ParseDate(c.StartDate)
}

// EndTime parses the stored end date.
func (c *Challenge) EndTime() (time.Time, error) {
	return ParseDate(c.EndDate)
}

// Session holds the per-user conversation state and language. One row per
// user, overwritten on every turn; created implicitly on first contact.
type Session struct {
	UserID   int64             `json:"user_id"`
	State    ConversationState `json:"conversation_state"`
	Language Language          `json:"language"`
}

// NewSession returns the implicit first-contact session for a user.
func NewSession(userID int64) Session {
	return Session{UserID: userID, State: StateInit, Language: DefaultLanguage}
}

// Attachment references a document carried by an inbound message. Ref is
// transport-opaque; the messaging service resolves it to a fetchable URL.
type Attachment struct {
	Ref  string `json:"ref"`
	Name string `json:"name,omitempty"`
	Size int64  `json:"size"`
}

// Message is the normalized inbound event handed to the state machine.
type Message struct {
	UserID     int64       `json:"user_id"`
	MessageID  int         `json:"message_id"`
	Text       string      `json:"text"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// HasAttachment reports whether the message carries a document.
func (m *Message) HasAttachment() bool {
	return m.Attachment != nil
}

// Reply is a normalized outbound event. At most one of PhotoPath and
// DocumentPath is set; artifact files are per-request and removed after
// the reply is sent.
type Reply struct {
	Text         string   `json:"text"`
	PhotoPath    string   `json:"photo_path,omitempty"`
	DocumentPath string   `json:"document_path,omitempty"`
	QuickReplies []string `json:"quick_replies,omitempty"`
}
