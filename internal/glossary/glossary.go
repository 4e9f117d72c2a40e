// Package glossary holds the localized phrase sets. A *Phrases value is
// an explicit capability passed into each handler for the session's
// language, never a process-wide singleton, so language is testable per
// call.
package glossary

import (
	"strings"

	"github.com/masskeeper/masskeeper/internal/models"
)

// Phrases is the full phrase set for one language. Templates are
// fmt.Sprintf patterns; see the field comments for their arguments.
type Phrases struct {
	Language models.Language

	Hello       string
	CommandList string
	Info        string

	EnterWeightButton string
	ShowMenuButton    string
	// Literal texts recognized as the enter-weight / show-menu commands
	// in this language (slash command plus button label).
	EnterWeightCommands []string
	ShowMenuCommands    []string

	HowMuchDoYouWeigh string

	YouAreMaintaining string
	YouAreSurplus     string
	YouAreDeficit     string
	// args: speed kg/week (%.2f), always positive magnitude
	YouAreGainingTemplate string
	YouAreLosingTemplate  string
	WhichIsTooSlow        string

	PleaseEnterValidPositiveNumber string
	PleaseEnterValidDate           string
	SuccessfullyAddedNewEntry      string

	HerePlotLastTwoWeeks    string
	HerePlotOverallProgress string

	NoDataToDownloadYet   string
	HereAllYourData       string
	YouCanAnalyzeOrBackup string

	ReplyUpload string
	NoValidDocument string
	// args: max size in kb (%d)
	FileTooBigTemplate       string
	FileInvalid              string
	FileUnexpectedError      string
	DataUploadedSuccessfully string

	ConfirmationWord string
	ReplyErase       string
	CancelDelete     string
	NoDataYet        string
	EraseComplete    string

	UnexpectedDocument string

	BodyweightPlotLabel string
	StartLabel          string
	GoalLabel           string

	LanguageSelected string

	Motivations []string

	// args: target value (%.2f), target date (%s), start value (%.2f),
	// start date (%s)
	ChallengeSummaryTemplate string
	// args: speed kg/week (%.2f)
	ChallengeDesiredSpeedTemplate string
	ChallengeCurrentSpeedTemplate string
	ChallengeFooter               string
	CannotComputeSpeed            string
	NoActiveChallenge             string

	StartChallengeQuestion string
	ClearChallengeQuestion string
	ConfirmationMarkup     []string
	TodayWord              string

	EnterStartingWeight string
	EnterStartingDate   string
	EnterTargetWeight   string
	// args: target value (%.2f)
	WhenDoYouWantToReachTemplate string
	// args: start date (%s)
	TargetDateCannotBeEarlierTemplate string

	PleaseConfirm string
	// args: start value, target value (%.2f, %.2f)
	YouWantToLoseTemplate string
	YouWantToGainTemplate string
	YouWantToMaintain     string
	// args: start date, target date (%s, %s)
	YouStartAndFinishTemplate string
	// args: days (%d)
	ChallengeWillLastTemplate string
	// args: speed kg/week (%.2f)
	DesiredSpeedTemplate string

	ChallengeDisabled string
	ActionCancelled   string
	ChallengeCreated  string

	YesCancelMarkup []string
	LanguageName    string
}

// Motivational returns a canned motivational phrase. The division by two
// gives a rolling index over turns: message ids advance by two per turn,
// one for the user message and one for the bot reply.
func (p *Phrases) Motivational(messageID int) string {
	if len(p.Motivations) == 0 {
		return ""
	}
	idx := (messageID / 2) % len(p.Motivations)
	if idx < 0 {
		idx = 0
	}
	return p.Motivations[idx]
}

// DefaultQuickReplies is the keyboard attached to menu-style replies.
func (p *Phrases) DefaultQuickReplies() []string {
	return []string{p.EnterWeightButton, p.ShowMenuButton}
}

var byLanguage = map[models.Language]*Phrases{
	models.LanguageEnglish: &english,
	models.LanguageRussian: &russian,
}

// ForLanguage looks up the phrase set for a language, falling back to the
// default language for anything unknown.
func ForLanguage(l models.Language) *Phrases {
	if p, ok := byLanguage[l]; ok {
		return p
	}
	return byLanguage[models.DefaultLanguage]
}

// All returns every supported phrase set.
func All() []*Phrases {
	return []*Phrases{&english, &russian}
}

// The merged command tables cover the edge case of a user who has just
// changed language and still sends the previous language's buttons.

// EnterWeightCommands merges the enter-weight command texts of all
// languages.
func EnterWeightCommands() []string {
	var out []string
	for _, p := range All() {
		out = append(out, p.EnterWeightCommands...)
	}
	return out
}

// ShowMenuCommands merges the show-menu command texts of all languages.
func ShowMenuCommands() []string {
	var out []string
	for _, p := range All() {
		out = append(out, p.ShowMenuCommands...)
	}
	return out
}

// ConfirmationWords merges the confirmation words of all languages.
func ConfirmationWords() []string {
	var out []string
	for _, p := range All() {
		out = append(out, p.ConfirmationWord)
	}
	return out
}

// TodayWords merges the localized "today" tokens of all languages.
func TodayWords() []string {
	var out []string
	for _, p := range All() {
		out = append(out, p.TodayWord)
	}
	return out
}

// IsConfirmation reports whether the text is a confirmation word in any
// language, case-insensitively.
func IsConfirmation(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, w := range ConfirmationWords() {
		if lowered == strings.ToLower(w) {
			return true
		}
	}
	return false
}

// IsToday reports whether the text is a localized "today" token.
func IsToday(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, w := range TodayWords() {
		if lowered == strings.ToLower(w) {
			return true
		}
	}
	return false
}

// LanguageFromInput matches free text against the language names offered
// by the selection keyboard.
func LanguageFromInput(text string) (models.Language, bool) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, p := range All() {
		if lowered == strings.ToLower(p.LanguageName) || lowered == string(p.Language) {
			return p.Language, true
		}
	}
	return "", false
}

// SelectLanguage is the language-selection prompt, deliberately bilingual.
func SelectLanguage() string {
	return "Select language / Выберите язык"
}

// UnknownLanguage is the reply to unrecognized language input.
func UnknownLanguage() string {
	return "Unknown language / Неизвестный язык"
}

// LanguageMarkup lists the language names for the selection keyboard.
func LanguageMarkup() []string {
	var out []string
	for _, p := range All() {
		out = append(out, p.LanguageName)
	}
	return out
}
