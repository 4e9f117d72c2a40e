package flow

import (
	"strings"

	"github.com/masskeeper/masskeeper/internal/glossary"
	"github.com/masskeeper/masskeeper/internal/models"
)

// slashCommands maps the state-independent slash commands to intents.
// Button texts are matched separately against the merged glossary tables
// because they are localized.
var slashCommands = map[string]models.Intent{
	"/info":            models.IntentShowInfo,
	"/enter_weight":    models.IntentEnterWeight,
	"/start":           models.IntentShowMenu,
	"/plot":            models.IntentShowPlot,
	"/plot_all":        models.IntentShowAllTimePlot,
	"/download":        models.IntentDownload,
	"/upload":          models.IntentUpload,
	"/erase":           models.IntentErase,
	"/language":        models.IntentChangeLanguage,
	"/notfat":          models.IntentMotivate,
	"/challenge":       models.IntentChallenge,
	"/clear_challenge": models.IntentClearChallenge,
}

// Classify matches free text against the closed set of state-independent
// commands. IntentNone means dispatch falls through to the current
// conversation state.
//
// Button texts from every language are accepted regardless of the
// session's language: a user who just switched languages may still press
// a button rendered in the previous one.
func Classify(text string) models.Intent {
	trimmed := strings.TrimSpace(text)
	if intent, ok := slashCommands[trimmed]; ok {
		return intent
	}
	for _, c := range glossary.EnterWeightCommands() {
		if trimmed == c {
			return models.IntentEnterWeight
		}
	}
	for _, c := range glossary.ShowMenuCommands() {
		if trimmed == c {
			return models.IntentShowMenu
		}
	}
	return models.IntentNone
}
