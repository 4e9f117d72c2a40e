package glossary

import (
	"testing"

	"github.com/masskeeper/masskeeper/internal/models"
)

func TestForLanguage(t *testing.T) {
	if p := ForLanguage(models.LanguageRussian); p.Language != models.LanguageRussian {
		t.Errorf("got %q, want russian", p.Language)
	}
	if p := ForLanguage("klingon"); p.Language != models.DefaultLanguage {
		t.Errorf("unknown language should fall back to default, got %q", p.Language)
	}
}

func TestMergedCommandTables(t *testing.T) {
	cmds := EnterWeightCommands()
	wantSome := []string{"/enter_weight", "Enter current body weight", "Ввести текущий вес"}
	for _, w := range wantSome {
		found := false
		for _, c := range cmds {
			if c == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("merged enter-weight commands missing %q", w)
		}
	}
}

func TestIsConfirmationAcrossLanguages(t *testing.T) {
	for _, text := range []string{"yes", "Yes", " YES ", "да", "Да"} {
		if !IsConfirmation(text) {
			t.Errorf("IsConfirmation(%q) = false, want true", text)
		}
	}
	for _, text := range []string{"no", "nope", "нет", ""} {
		if IsConfirmation(text) {
			t.Errorf("IsConfirmation(%q) = true, want false", text)
		}
	}
}

func TestIsToday(t *testing.T) {
	for _, text := range []string{"today", "Today", "Сегодня", " сегодня "} {
		if !IsToday(text) {
			t.Errorf("IsToday(%q) = false, want true", text)
		}
	}
	if IsToday("tomorrow") {
		t.Error("IsToday(tomorrow) = true, want false")
	}
}

func TestLanguageFromInput(t *testing.T) {
	if l, ok := LanguageFromInput("Русский"); !ok || l != models.LanguageRussian {
		t.Errorf("got (%q, %v), want russian", l, ok)
	}
	if l, ok := LanguageFromInput("english"); !ok || l != models.LanguageEnglish {
		t.Errorf("got (%q, %v), want english", l, ok)
	}
	if _, ok := LanguageFromInput("esperanto"); ok {
		t.Error("unknown language name should not match")
	}
}

func TestMotivationalRolling(t *testing.T) {
	p := ForLanguage(models.LanguageEnglish)
	n := len(p.Motivations)
	if n == 0 {
		t.Fatal("english glossary should carry motivational phrases")
	}
	// Message ids advance by two per turn; consecutive turns should walk
	// through distinct phrases before wrapping.
	if p.Motivational(0) != p.Motivations[0] {
		t.Error("message id 0 should map to the first phrase")
	}
	if p.Motivational(2) != p.Motivations[1%n] {
		t.Error("message id 2 should map to the second phrase")
	}
	if p.Motivational(2*n) != p.Motivations[0] {
		t.Error("index should wrap around the phrase list")
	}
}

func TestPhraseSetsParallel(t *testing.T) {
	// Every language must offer the pieces the state machine relies on.
	for _, p := range All() {
		if p.ConfirmationWord == "" {
			t.Errorf("%s: missing confirmation word", p.Language)
		}
		if p.TodayWord == "" {
			t.Errorf("%s: missing today token", p.Language)
		}
		if len(p.EnterWeightCommands) == 0 || len(p.ShowMenuCommands) == 0 {
			t.Errorf("%s: missing command tables", p.Language)
		}
		if len(p.ConfirmationMarkup) != 2 || len(p.YesCancelMarkup) != 2 {
			t.Errorf("%s: confirmation keyboards must offer two options", p.Language)
		}
		if p.LanguageName == "" {
			t.Errorf("%s: missing language name", p.Language)
		}
	}
}
