package flow

import (
	"fmt"
	"log/slog"

	"github.com/masskeeper/masskeeper/internal/glossary"
	"github.com/masskeeper/masskeeper/internal/models"
	"github.com/masskeeper/masskeeper/internal/progress"
)

// The challenge wizard builds a challenge field by field across turns.
// Each step appends a new row with the fields collected so far and
// Active still false; the row only becomes authoritative with Active
// true at the finalize step. Reaching a step without its prerequisite
// fields is a programming invariant violation and force-resets the
// session.

func (m *Machine) replyChallenge(session *models.Session, p *glossary.Phrases) []models.Reply {
	challenge := m.activeChallenge(session.UserID)
	if challenge == nil {
		session.State = models.StateStartChallengeConfirm
		return []models.Reply{{Text: p.StartChallengeQuestion, QuickReplies: p.ConfirmationMarkup}}
	}
	return m.replyChallengeStatus(session, challenge, p)
}

// replyChallengeStatus shows the active challenge: goal summary, desired
// and current speed, and a plot over the challenge range.
func (m *Machine) replyChallengeStatus(session *models.Session, challenge *models.Challenge, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit

	desired, err := progress.DesiredSpeedPerWeek(challenge)
	if err != nil {
		slog.Error("cannot compute desired speed", "userID", session.UserID, "challengeID", challenge.ID, "error", err)
		return []models.Reply{{Text: p.CannotComputeSpeed, QuickReplies: p.DefaultQuickReplies()}}
	}

	text := fmt.Sprintf(p.ChallengeSummaryTemplate, challenge.TargetValue, challenge.EndDate, challenge.StartValue, challenge.StartDate)
	text += fmt.Sprintf(p.ChallengeDesiredSpeedTemplate, desired)

	reply := models.Reply{QuickReplies: p.DefaultQuickReplies()}
	measurements, err := m.store.QueryMeasurements(session.UserID)
	if err != nil {
		slog.Error("failed to query measurements", "userID", session.UserID, "error", err)
	} else {
		window, werr := progress.ResolveWindow(challenge, true, false, m.now())
		if werr != nil {
			slog.Error("failed to resolve challenge window", "userID", session.UserID, "error", werr)
		} else {
			points := progress.PointsFromMeasurements(measurements)
			if speed := progress.WeeklySpeed(points, window, len(points)); speed != nil {
				text += fmt.Sprintf(p.ChallengeCurrentSpeedTemplate, *speed)
			}
			if path, _, rerr := m.renderer.Render(points, p.BodyweightPlotLabel, goalLine(challenge), window); rerr == nil {
				reply.PhotoPath = path
			} else {
				slog.Error("failed to render challenge plot", "userID", session.UserID, "error", rerr)
			}
		}
	}

	reply.Text = text + p.ChallengeFooter
	return []models.Reply{reply}
}

func (m *Machine) handleStartChallengeConfirm(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	if !glossary.IsConfirmation(msg.Text) {
		session.State = models.StateInit
		return []models.Reply{{Text: p.ActionCancelled, QuickReplies: p.DefaultQuickReplies()}}
	}
	// Open a fresh inactive row for the wizard to fill in.
	if err := m.store.SaveChallenge(models.Challenge{UserID: session.UserID}); err != nil {
		slog.Error("failed to open challenge, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}
	session.State = models.StateAwaitingStartingWeight
	return []models.Reply{{Text: p.EnterStartingWeight}}
}

func (m *Machine) handleStartingWeight(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	weight, err := parseWeight(msg.Text, m.cfg.MaxBodyWeight)
	if err != nil {
		return []models.Reply{{Text: p.PleaseEnterValidPositiveNumber}}
	}
	challenge, ok := m.wizardChallenge(session)
	if !ok {
		return m.invariantReset(session, p, "starting weight without an open challenge")
	}
	challenge.StartValue = weight
	if replies := m.saveWizardStep(session, challenge); replies != nil {
		return replies
	}
	session.State = models.StateAwaitingStartingDate
	return []models.Reply{{Text: p.EnterStartingDate}}
}

func (m *Machine) handleStartingDate(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	date, err := parseUserDate(msg.Text, m.now())
	if err != nil {
		return []models.Reply{{Text: p.PleaseEnterValidDate}}
	}
	challenge, ok := m.wizardChallenge(session)
	if !ok || challenge.StartValue == 0 {
		return m.invariantReset(session, p, "starting date without a starting weight")
	}
	challenge.StartDate = models.FormatDate(date)
	if replies := m.saveWizardStep(session, challenge); replies != nil {
		return replies
	}
	session.State = models.StateAwaitingTargetWeight
	return []models.Reply{{Text: p.EnterTargetWeight}}
}

func (m *Machine) handleTargetWeight(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	weight, err := parseWeight(msg.Text, m.cfg.MaxBodyWeight)
	if err != nil {
		return []models.Reply{{Text: p.PleaseEnterValidPositiveNumber}}
	}
	challenge, ok := m.wizardChallenge(session)
	if !ok || challenge.StartDate == "" {
		return m.invariantReset(session, p, "target weight without a starting date")
	}
	challenge.TargetValue = weight
	if replies := m.saveWizardStep(session, challenge); replies != nil {
		return replies
	}
	session.State = models.StateAwaitingTargetDate
	return []models.Reply{{Text: fmt.Sprintf(p.WhenDoYouWantToReachTemplate, weight)}}
}

func (m *Machine) handleTargetDate(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	date, err := parseUserDate(msg.Text, m.now())
	if err != nil {
		return []models.Reply{{Text: p.PleaseEnterValidDate}}
	}
	challenge, ok := m.wizardChallenge(session)
	if !ok || challenge.StartDate == "" || challenge.TargetValue == 0 {
		return m.invariantReset(session, p, "target date without a target weight")
	}
	start, err := challenge.StartTime()
	if err != nil {
		return m.invariantReset(session, p, "unparsable stored start date")
	}
	if date.Before(start) {
		// Ordering violation: re-echo the start date, state unchanged.
		return []models.Reply{{Text: fmt.Sprintf(p.TargetDateCannotBeEarlierTemplate, challenge.StartDate)}}
	}
	challenge.EndDate = models.FormatDate(date)
	if replies := m.saveWizardStep(session, challenge); replies != nil {
		return replies
	}
	session.State = models.StateAwaitingFinalizeConfirm
	return []models.Reply{{
		Text:         m.finalizeSummary(challenge, p),
		QuickReplies: p.YesCancelMarkup,
	}}
}

// finalizeSummary describes the challenge about to be confirmed. Speed
// arithmetic faults degrade to the cannot-compute phrasing inside the
// summary rather than aborting the wizard.
func (m *Machine) finalizeSummary(challenge *models.Challenge, p *glossary.Phrases) string {
	text := p.PleaseConfirm + "\n"
	switch {
	case challenge.TargetValue < challenge.StartValue:
		text += fmt.Sprintf(p.YouWantToLoseTemplate, challenge.StartValue, challenge.TargetValue)
	case challenge.TargetValue > challenge.StartValue:
		text += fmt.Sprintf(p.YouWantToGainTemplate, challenge.StartValue, challenge.TargetValue)
	default:
		text += p.YouWantToMaintain
	}
	text += "\n" + fmt.Sprintf(p.YouStartAndFinishTemplate, challenge.StartDate, challenge.EndDate)

	start, serr := challenge.StartTime()
	end, eerr := challenge.EndTime()
	if serr == nil && eerr == nil {
		days := int(end.Sub(start).Hours() / 24)
		text += "\n" + fmt.Sprintf(p.ChallengeWillLastTemplate, days)
	}
	if desired, err := progress.DesiredSpeedPerWeek(challenge); err == nil {
		text += "\n" + fmt.Sprintf(p.DesiredSpeedTemplate, desired)
	} else {
		slog.Error("cannot compute desired speed at finalize", "userID", challenge.UserID, "error", err)
		text += "\n" + p.CannotComputeSpeed
	}
	return text
}

func (m *Machine) handleFinalizeConfirm(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	if !glossary.IsConfirmation(msg.Text) {
		return []models.Reply{{Text: p.ActionCancelled, QuickReplies: p.DefaultQuickReplies()}}
	}
	challenge, ok := m.wizardChallenge(session)
	if !ok || !challenge.Complete() {
		return m.invariantReset(session, p, "finalize with an incomplete challenge")
	}

	challenge.Active = true
	if err := m.store.SaveChallenge(*challenge); err != nil {
		slog.Error("failed to activate challenge, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}

	// Backfill the starting point so the trend line has a first sample.
	start, err := challenge.StartTime()
	if err != nil {
		return m.invariantReset(session, p, "unparsable start date at finalize")
	}
	if err := m.store.AppendMeasurement(models.Measurement{UserID: session.UserID, Date: start, Value: challenge.StartValue}); err != nil {
		slog.Error("failed to backfill starting measurement", "userID", session.UserID, "error", err)
	}

	return []models.Reply{{Text: p.ChallengeCreated, QuickReplies: p.DefaultQuickReplies()}}
}

func (m *Machine) replyClearChallenge(session *models.Session, p *glossary.Phrases) []models.Reply {
	if m.activeChallenge(session.UserID) == nil {
		session.State = models.StateInit
		return []models.Reply{{Text: p.NoActiveChallenge, QuickReplies: p.DefaultQuickReplies()}}
	}
	session.State = models.StateClearChallengeConfirm
	return []models.Reply{{Text: p.ClearChallengeQuestion, QuickReplies: p.ConfirmationMarkup}}
}

func (m *Machine) handleClearChallengeConfirm(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	if !glossary.IsConfirmation(msg.Text) {
		return []models.Reply{{Text: p.ActionCancelled, QuickReplies: p.DefaultQuickReplies()}}
	}
	// Disabling appends an empty inactive row; the log keeps history.
	if err := m.store.SaveChallenge(models.Challenge{UserID: session.UserID}); err != nil {
		slog.Error("failed to disable challenge, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}
	return []models.Reply{{Text: p.ChallengeDisabled, QuickReplies: p.DefaultQuickReplies()}}
}

// wizardChallenge reloads the challenge under construction. ok is false
// when there is none, or the latest row is already an activated
// challenge (the wizard never edits an active challenge in place).
func (m *Machine) wizardChallenge(session *models.Session) (*models.Challenge, bool) {
	c, err := m.store.LoadLatestChallenge(session.UserID)
	if err != nil {
		slog.Error("failed to load wizard challenge", "userID", session.UserID, "error", err)
		return nil, false
	}
	if c == nil || c.Active {
		return nil, false
	}
	return c, true
}

// saveWizardStep appends the extended partial row. A non-nil return is
// the turn's replies (store fault: drop the reply, keep the state).
func (m *Machine) saveWizardStep(session *models.Session, challenge *models.Challenge) []models.Reply {
	if err := m.store.SaveChallenge(*challenge); err != nil {
		slog.Error("failed to persist wizard step, dropping reply", "userID", session.UserID, "error", err)
		return []models.Reply{}
	}
	return nil
}
