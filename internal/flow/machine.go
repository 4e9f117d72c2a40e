// Package flow implements the per-user conversation state machine: it
// classifies an inbound message into an intent, dispatches on intent or
// current state, and produces the outbound replies plus the next state.
package flow

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/masskeeper/masskeeper/internal/chart"
	"github.com/masskeeper/masskeeper/internal/csvio"
	"github.com/masskeeper/masskeeper/internal/genai"
	"github.com/masskeeper/masskeeper/internal/glossary"
	"github.com/masskeeper/masskeeper/internal/models"
	"github.com/masskeeper/masskeeper/internal/store"
)

// AttachmentResolver turns a transport-opaque attachment reference into
// a fetchable URL.
type AttachmentResolver func(ref string) (string, error)

// Config holds the externally tunable limits of the state machine.
type Config struct {
	MaxBodyWeight        float64
	MaintenanceThreshold float64
	MaxFileSize          int64
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		MaxBodyWeight:        models.DefaultMaxBodyWeight,
		MaintenanceThreshold: models.DefaultMaintenanceThreshold,
		MaxFileSize:          models.DefaultMaxFileSize,
	}
}

// Opts holds optional collaborators for Machine construction.
type Opts struct {
	GenAI             genai.ClientInterface
	ResolveAttachment AttachmentResolver
	Now               func() time.Time
	Config            Config
}

// Option configures Machine construction.
type Option func(*Opts)

// WithGenAI enables generated motivational replies. Without it the
// machine falls back to the canned glossary phrases.
func WithGenAI(client genai.ClientInterface) Option {
	return func(o *Opts) { o.GenAI = client }
}

// WithAttachmentResolver sets the resolver used for CSV uploads.
func WithAttachmentResolver(r AttachmentResolver) Option {
	return func(o *Opts) { o.ResolveAttachment = r }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Opts) { o.Now = now }
}

// WithConfig overrides the default limits.
func WithConfig(cfg Config) Option {
	return func(o *Opts) { o.Config = cfg }
}

// Machine drives one user turn at a time. It holds no per-user state
// itself: everything lives in the store, read at the start of a turn and
// written at the end.
type Machine struct {
	store             store.Store
	renderer          chart.Renderer
	exporter          *csvio.Exporter
	importer          *csvio.Importer
	genai             genai.ClientInterface
	resolveAttachment AttachmentResolver
	now               func() time.Time
	cfg               Config
}

// NewMachine creates a Machine over the given collaborators.
func NewMachine(st store.Store, renderer chart.Renderer, exporter *csvio.Exporter, importer *csvio.Importer, options ...Option) *Machine {
	opts := Opts{Now: time.Now, Config: DefaultConfig()}
	for _, opt := range options {
		opt(&opts)
	}
	return &Machine{
		store:             st,
		renderer:          renderer,
		exporter:          exporter,
		importer:          importer,
		genai:             opts.GenAI,
		resolveAttachment: opts.ResolveAttachment,
		now:               opts.Now,
		cfg:               opts.Config,
	}
}

// HandleTurn processes one inbound message and returns the replies to
// send. The session is loaded at the start of the turn and persisted at
// the end with no locking in between: two concurrent turns for the same
// user race on a last-write-wins basis, which matches how a single human
// actually sends messages.
func (m *Machine) HandleTurn(ctx context.Context, msg models.Message) []models.Reply {
	session, err := m.store.LoadSession(msg.UserID)
	if err != nil {
		slog.Error("failed to load session, dropping turn", "userID", msg.UserID, "error", err)
		return nil
	}
	phrases := glossary.ForLanguage(session.Language)
	text := strings.TrimSpace(msg.Text)
	slog.Debug("turn started", "userID", msg.UserID, "state", session.State, "hasText", text != "", "hasAttachment", msg.HasAttachment())

	var replies []models.Reply
	if text != "" {
		if intent := Classify(text); intent != models.IntentNone {
			replies = m.dispatchIntent(ctx, &session, msg, intent, phrases)
		} else {
			replies = m.dispatchState(ctx, &session, msg, phrases)
		}
	} else {
		// No text: only an in-flight upload or a stray document means
		// anything; everything else is ignored outright.
		switch {
		case session.State == models.StateAwaitingCSVTable:
			replies = m.handleCSVTable(ctx, &session, msg, phrases)
		case msg.HasAttachment():
			replies = m.replyUnexpectedDocument(&session, phrases)
		}
	}

	if err := m.store.SaveSession(session); err != nil {
		slog.Error("failed to persist session", "userID", msg.UserID, "state", session.State, "error", err)
	}
	slog.Info("turn handled", "userID", msg.UserID, "state", session.State, "replies", len(replies))
	return replies
}

func (m *Machine) dispatchIntent(ctx context.Context, session *models.Session, msg models.Message, intent models.Intent, p *glossary.Phrases) []models.Reply {
	switch intent {
	case models.IntentShowInfo:
		return m.replyInfo(session, p)
	case models.IntentEnterWeight:
		return m.replyEnterWeight(session, p)
	case models.IntentShowMenu:
		return m.replyMenu(session, p)
	case models.IntentShowPlot:
		return m.replyPlot(session, p, true)
	case models.IntentShowAllTimePlot:
		return m.replyPlot(session, p, false)
	case models.IntentDownload:
		return m.replyDownload(ctx, session, msg, p)
	case models.IntentUpload:
		return m.replyUpload(session, p)
	case models.IntentErase:
		return m.replyErase(session, p)
	case models.IntentChangeLanguage:
		return m.replyChangeLanguage(session)
	case models.IntentMotivate:
		return m.replyMotivate(ctx, session, msg, p)
	case models.IntentChallenge:
		return m.replyChallenge(session, p)
	case models.IntentClearChallenge:
		return m.replyClearChallenge(session, p)
	}
	slog.Error("unhandled intent", "userID", session.UserID, "intent", intent)
	return m.resetToMenu(session, p)
}

func (m *Machine) dispatchState(ctx context.Context, session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	switch session.State {
	case models.StateAwaitingBodyWeight:
		return m.handleBodyWeight(session, msg, p)
	case models.StateAwaitingEraseConfirm:
		return m.handleEraseConfirm(ctx, session, msg, p)
	case models.StateAwaitingCSVTable:
		return m.handleCSVTable(ctx, session, msg, p)
	case models.StateAwaitingLanguage:
		return m.handleLanguage(session, msg)
	case models.StateStartChallengeConfirm:
		return m.handleStartChallengeConfirm(session, msg, p)
	case models.StateClearChallengeConfirm:
		return m.handleClearChallengeConfirm(session, msg, p)
	case models.StateAwaitingStartingWeight:
		return m.handleStartingWeight(session, msg, p)
	case models.StateAwaitingStartingDate:
		return m.handleStartingDate(session, msg, p)
	case models.StateAwaitingTargetWeight:
		return m.handleTargetWeight(session, msg, p)
	case models.StateAwaitingTargetDate:
		return m.handleTargetDate(session, msg, p)
	case models.StateAwaitingFinalizeConfirm:
		return m.handleFinalizeConfirm(session, msg, p)
	}
	if msg.HasAttachment() {
		return m.replyUnexpectedDocument(session, p)
	}
	if session.State == models.StateInit {
		return m.replyMenu(session, p)
	}
	// Recovery transition: an unknown state is a fault, never fatal.
	slog.Error("unknown conversation state, resetting", "userID", session.UserID, "state", session.State)
	return m.resetToMenu(session, p)
}

// resetToMenu forces the session back to init and shows the main menu.
func (m *Machine) resetToMenu(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	return m.replyMenu(session, p)
}

// invariantReset handles a programming invariant violation mid-wizard:
// log with context and force-reset rather than propagate.
func (m *Machine) invariantReset(session *models.Session, p *glossary.Phrases, detail string) []models.Reply {
	slog.Error("wizard invariant violated, resetting", "userID", session.UserID, "state", session.State, "detail", detail)
	return m.resetToMenu(session, p)
}
