package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/masskeeper/masskeeper/internal/chart"
	"github.com/masskeeper/masskeeper/internal/glossary"
	"github.com/masskeeper/masskeeper/internal/models"
	"github.com/masskeeper/masskeeper/internal/progress"
)

func (m *Machine) replyMenu(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	return []models.Reply{{
		Text:         p.Hello + p.CommandList,
		QuickReplies: p.DefaultQuickReplies(),
	}}
}

func (m *Machine) replyInfo(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	return []models.Reply{{Text: p.Info, QuickReplies: p.DefaultQuickReplies()}}
}

func (m *Machine) replyEnterWeight(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateAwaitingBodyWeight
	return []models.Reply{{Text: p.HowMuchDoYouWeigh}}
}

func (m *Machine) handleBodyWeight(session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	weight, err := parseWeight(msg.Text, m.cfg.MaxBodyWeight)
	if err != nil {
		// Re-prompt, state unchanged.
		return []models.Reply{{Text: p.PleaseEnterValidPositiveNumber}}
	}

	date := models.TruncateToDay(m.now())
	if err := m.store.AppendMeasurement(models.Measurement{UserID: session.UserID, Date: date, Value: weight}); err != nil {
		slog.Error("failed to append measurement, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}

	text := fmt.Sprintf("%s\n<b>%s - %g kg</b>\n", p.SuccessfullyAddedNewEntry, models.FormatDate(date), weight)
	plot, ok := m.renderUserPlot(session.UserID, p, true)
	session.State = models.StateInit
	if !ok {
		return []models.Reply{{Text: text, QuickReplies: p.DefaultQuickReplies()}}
	}
	return []models.Reply{{
		Text:         text + m.classificationText(plot.speed, plot.mean, p),
		PhotoPath:    plot.path,
		QuickReplies: p.DefaultQuickReplies(),
	}}
}

func (m *Machine) replyPlot(session *models.Session, p *glossary.Phrases, onlyTwoWeeks bool) []models.Reply {
	session.State = models.StateInit
	plot, ok := m.renderUserPlot(session.UserID, p, onlyTwoWeeks)
	if !ok {
		return []models.Reply{{Text: p.NoDataToDownloadYet, QuickReplies: p.DefaultQuickReplies()}}
	}
	caption := p.HerePlotLastTwoWeeks
	if !onlyTwoWeeks {
		caption = p.HerePlotOverallProgress
	}
	return []models.Reply{{
		Text:         caption + m.classificationText(plot.speed, plot.mean, p),
		PhotoPath:    plot.path,
		QuickReplies: p.DefaultQuickReplies(),
	}}
}

func (m *Machine) replyDownload(ctx context.Context, session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	path, rows, err := m.exporter.Export(ctx, session.UserID)
	if err != nil {
		slog.Error("export failed, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}
	if rows == 0 {
		return []models.Reply{{Text: p.NoDataToDownloadYet, QuickReplies: p.DefaultQuickReplies()}}
	}
	return []models.Reply{{
		Text:         p.HereAllYourData + "\n" + p.YouCanAnalyzeOrBackup,
		DocumentPath: path,
		QuickReplies: p.DefaultQuickReplies(),
	}}
}

func (m *Machine) replyUpload(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateAwaitingCSVTable
	return []models.Reply{{Text: p.ReplyUpload}}
}

func (m *Machine) handleCSVTable(ctx context.Context, session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	// Every failure path stays in awaiting_csv_table so the user can
	// retry with another file.
	if !msg.HasAttachment() {
		return []models.Reply{{Text: p.NoValidDocument}}
	}
	if msg.Attachment.Size > m.cfg.MaxFileSize {
		return []models.Reply{{Text: fmt.Sprintf(p.FileTooBigTemplate, m.cfg.MaxFileSize/1024)}}
	}
	if m.resolveAttachment == nil {
		slog.Error("no attachment resolver configured", "userID", session.UserID)
		return []models.Reply{{Text: p.FileUnexpectedError}}
	}
	url, err := m.resolveAttachment(msg.Attachment.Ref)
	if err != nil {
		slog.Error("failed to resolve attachment", "userID", session.UserID, "ref", msg.Attachment.Ref, "error", err)
		return []models.Reply{{Text: p.FileUnexpectedError}}
	}

	if _, err := m.importer.ImportFromURL(ctx, session.UserID, url); err != nil {
		if errors.Is(err, models.ErrCSVParse) {
			return []models.Reply{{Text: p.FileInvalid}}
		}
		slog.Error("unexpected error while importing CSV", "userID", session.UserID, "error", err)
		return []models.Reply{{Text: p.FileUnexpectedError}}
	}

	session.State = models.StateInit
	reply := models.Reply{Text: p.DataUploadedSuccessfully, QuickReplies: p.DefaultQuickReplies()}
	if plot, ok := m.renderUserPlot(session.UserID, p, false); ok {
		reply.PhotoPath = plot.path
	}
	return []models.Reply{reply}
}

func (m *Machine) replyErase(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateAwaitingEraseConfirm
	return []models.Reply{{Text: p.ReplyErase}}
}

func (m *Machine) handleEraseConfirm(ctx context.Context, session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	if !glossary.IsConfirmation(msg.Text) {
		return []models.Reply{{Text: p.CancelDelete, QuickReplies: p.DefaultQuickReplies()}}
	}

	// Export before deleting so the user gets their erased data back as
	// a parting backup.
	path, rows, err := m.exporter.Export(ctx, session.UserID)
	if err != nil {
		slog.Error("pre-erase export failed, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}
	if err := m.store.DeleteMeasurements(session.UserID); err != nil {
		slog.Error("failed to delete measurements, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}
	if err := m.store.DeleteChallenges(session.UserID); err != nil {
		slog.Error("failed to delete challenges, dropping reply", "userID", session.UserID, "error", err)
		return nil
	}

	if rows == 0 {
		return []models.Reply{{Text: p.NoDataYet, QuickReplies: p.DefaultQuickReplies()}}
	}
	return []models.Reply{{
		Text:         p.EraseComplete,
		DocumentPath: path,
		QuickReplies: p.DefaultQuickReplies(),
	}}
}

func (m *Machine) replyChangeLanguage(session *models.Session) []models.Reply {
	session.State = models.StateAwaitingLanguage
	return []models.Reply{{Text: glossary.SelectLanguage(), QuickReplies: glossary.LanguageMarkup()}}
}

func (m *Machine) handleLanguage(session *models.Session, msg models.Message) []models.Reply {
	language, ok := glossary.LanguageFromInput(msg.Text)
	if !ok {
		return []models.Reply{{Text: glossary.UnknownLanguage(), QuickReplies: glossary.LanguageMarkup()}}
	}
	session.Language = language
	session.State = models.StateInit
	selected := glossary.ForLanguage(language)
	return []models.Reply{{Text: selected.LanguageSelected, QuickReplies: selected.DefaultQuickReplies()}}
}

func (m *Machine) replyMotivate(ctx context.Context, session *models.Session, msg models.Message, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	if m.genai != nil {
		if text, err := m.genai.GenerateMotivation(ctx, p.LanguageName); err == nil {
			return []models.Reply{{Text: text, QuickReplies: p.DefaultQuickReplies()}}
		} else {
			slog.Error("genai motivation failed, falling back to canned phrase", "userID", session.UserID, "error", err)
		}
	}
	return []models.Reply{{Text: p.Motivational(msg.MessageID), QuickReplies: p.DefaultQuickReplies()}}
}

func (m *Machine) replyUnexpectedDocument(session *models.Session, p *glossary.Phrases) []models.Reply {
	session.State = models.StateInit
	return []models.Reply{{Text: p.UnexpectedDocument, QuickReplies: p.DefaultQuickReplies()}}
}

// classificationText renders the maintaining/surplus/deficit summary for
// a derived weekly speed. A nil speed produces no text at all: sparse
// histories make no trend claims.
func (m *Machine) classificationText(speed *float64, mean float64, p *glossary.Phrases) string {
	if speed == nil {
		return ""
	}
	s := *speed
	threshold := mean * m.cfg.MaintenanceThreshold

	var b strings.Builder
	switch progress.Classify(s, mean, m.cfg.MaintenanceThreshold) {
	case progress.CategoryMaintaining:
		b.WriteString(p.YouAreMaintaining)
	case progress.CategorySurplus:
		b.WriteString(p.YouAreSurplus)
	case progress.CategoryDeficit:
		b.WriteString(p.YouAreDeficit)
	}
	if s > 0 {
		b.WriteString(fmt.Sprintf(p.YouAreGainingTemplate, s))
	} else {
		b.WriteString(fmt.Sprintf(p.YouAreLosingTemplate, math.Abs(s)))
	}
	if math.Abs(s) < threshold {
		b.WriteString(p.WhichIsTooSlow)
	}
	return b.String()
}

// plotResult carries a rendered plot and the trend numbers derived from
// the same windowed points.
type plotResult struct {
	path  string
	speed *float64
	mean  float64
}

// renderUserPlot draws the user's history plot. ok is false when there
// is nothing worth plotting (no data and no active challenge) or the
// renderer failed; in the latter case the failure is already logged.
func (m *Machine) renderUserPlot(userID int64, p *glossary.Phrases, onlyTwoWeeks bool) (plotResult, bool) {
	measurements, err := m.store.QueryMeasurements(userID)
	if err != nil {
		slog.Error("failed to query measurements", "userID", userID, "error", err)
		return plotResult{}, false
	}

	challenge := m.activeChallenge(userID)
	goal := goalLine(challenge)
	if len(measurements) == 0 && goal == nil {
		return plotResult{}, false
	}

	window, err := progress.ResolveWindow(challenge, false, onlyTwoWeeks, m.now())
	if err != nil {
		slog.Error("failed to resolve window", "userID", userID, "error", err)
		return plotResult{}, false
	}

	points := progress.PointsFromMeasurements(measurements)
	path, _, err := m.renderer.Render(points, p.BodyweightPlotLabel, goal, window)
	if err != nil {
		slog.Error("failed to render plot", "userID", userID, "error", err)
		return plotResult{}, false
	}

	values := make([]float64, len(measurements))
	for i, mm := range measurements {
		values[i] = mm.Value
	}
	return plotResult{
		path:  path,
		speed: progress.WeeklySpeed(points, window, len(points)),
		mean:  progress.Mean(values),
	}, true
}

// activeChallenge returns the user's challenge only when it is active
// and fully built; everything else renders as no challenge at all.
func (m *Machine) activeChallenge(userID int64) *models.Challenge {
	c, err := m.store.LoadLatestChallenge(userID)
	if err != nil {
		slog.Error("failed to load challenge", "userID", userID, "error", err)
		return nil
	}
	if c == nil || !c.Active || !c.Complete() {
		return nil
	}
	return c
}

// goalLine maps an active challenge to its dashed goal line. Unparsable
// stored dates drop the goal line rather than the whole plot.
func goalLine(c *models.Challenge) *chart.GoalLine {
	if c == nil {
		return nil
	}
	start, err := c.StartTime()
	if err != nil {
		slog.Error("unparsable challenge start date", "userID", c.UserID, "startDate", c.StartDate, "error", err)
		return nil
	}
	end, err := c.EndTime()
	if err != nil {
		slog.Error("unparsable challenge end date", "userID", c.UserID, "endDate", c.EndDate, "error", err)
		return nil
	}
	return &chart.GoalLine{
		Start: progress.Point{Date: start, Value: c.StartValue},
		End:   progress.Point{Date: end, Value: c.TargetValue},
	}
}
