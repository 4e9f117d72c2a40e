package flow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/masskeeper/masskeeper/internal/chart"
	"github.com/masskeeper/masskeeper/internal/csvio"
	"github.com/masskeeper/masskeeper/internal/glossary"
	"github.com/masskeeper/masskeeper/internal/models"
	"github.com/masskeeper/masskeeper/internal/progress"
	"github.com/masskeeper/masskeeper/internal/store"
)

// mockRenderer fits the windowed points like the real renderer but
// writes no file.
type mockRenderer struct {
	calls      int
	lastGoal   *chart.GoalLine
	lastWindow *progress.Window
}

func (r *mockRenderer) Render(points []progress.Point, label string, goal *chart.GoalLine, window *progress.Window) (string, *progress.Line, error) {
	r.calls++
	r.lastGoal = goal
	r.lastWindow = window
	visible := progress.FilterWindow(points, window)
	if len(visible) == 0 && goal == nil {
		return "", nil, errors.New("nothing to plot")
	}
	return "plot.png", progress.Fit(visible), nil
}

func testNow() time.Time {
	return time.Date(2023, 3, 8, 12, 0, 0, 0, time.UTC)
}

func newTestMachine(t *testing.T, st store.Store, options ...Option) (*Machine, *mockRenderer) {
	t.Helper()
	renderer := &mockRenderer{}
	exporter := csvio.NewExporter(st, t.TempDir())
	importer := csvio.NewImporter(st, nil, models.DefaultMaxBodyWeight)
	options = append([]Option{WithClock(testNow)}, options...)
	return NewMachine(st, renderer, exporter, importer, options...), renderer
}

func turn(t *testing.T, m *Machine, userID int64, text string) []models.Reply {
	t.Helper()
	return m.HandleTurn(context.Background(), models.Message{UserID: userID, Text: text})
}

func sessionState(t *testing.T, st store.Store, userID int64) models.ConversationState {
	t.Helper()
	s, err := st.LoadSession(userID)
	if err != nil {
		t.Fatalf("LoadSession() error = %v", err)
	}
	return s.State
}

func english() *glossary.Phrases {
	return glossary.ForLanguage(models.LanguageEnglish)
}

func TestFirstContactShowsMenu(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	replies := turn(t, m, 1, "hello there")
	if len(replies) != 1 {
		t.Fatalf("replies = %d, want 1", len(replies))
	}
	if !strings.Contains(replies[0].Text, english().CommandList) {
		t.Errorf("menu reply missing command list: %q", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateInit {
		t.Errorf("state = %q, want init", got)
	}
}

func TestEnterWeightFlow(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	replies := turn(t, m, 1, "/enter_weight")
	if replies[0].Text != english().HowMuchDoYouWeigh {
		t.Errorf("prompt = %q", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateAwaitingBodyWeight {
		t.Fatalf("state = %q, want awaiting_body_weight", got)
	}

	replies = turn(t, m, 1, "80.5")
	if !strings.Contains(replies[0].Text, english().SuccessfullyAddedNewEntry) {
		t.Errorf("reply = %q, want success text", replies[0].Text)
	}
	if !strings.Contains(replies[0].Text, "80.5 kg") {
		t.Errorf("reply does not echo the value: %q", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateInit {
		t.Errorf("state = %q, want init", got)
	}

	ms, err := st.QueryMeasurements(1)
	if err != nil {
		t.Fatalf("QueryMeasurements() error = %v", err)
	}
	if len(ms) != 1 || ms[0].Value != 80.5 {
		t.Errorf("measurements = %+v", ms)
	}
	if !ms[0].Date.Equal(time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("measurement date = %v, want the clock's date", ms[0].Date)
	}
}

func TestEnterWeightInvalidNumberReprompts(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	turn(t, m, 1, "/enter_weight")
	for _, text := range []string{"abc", "-5", "0", "250", "999"} {
		replies := turn(t, m, 1, text)
		if replies[0].Text != english().PleaseEnterValidPositiveNumber {
			t.Errorf("reply to %q = %q, want invalid-number prompt", text, replies[0].Text)
		}
		if got := sessionState(t, st, 1); got != models.StateAwaitingBodyWeight {
			t.Errorf("state after %q = %q, want awaiting_body_weight", text, got)
		}
	}
}

func TestPlotWithData(t *testing.T) {
	st := store.NewInMemoryStore()
	m, renderer := newTestMachine(t, st)

	days := []int{1, 3, 4, 6, 7}
	for i, d := range days {
		st.AppendMeasurement(models.Measurement{
			UserID: 1,
			Date:   time.Date(2023, 3, d, 0, 0, 0, 0, time.UTC),
			Value:  80 + float64(i),
		})
	}

	replies := turn(t, m, 1, "/plot")
	if replies[0].PhotoPath == "" {
		t.Error("plot reply has no photo")
	}
	if !strings.Contains(replies[0].Text, english().HerePlotLastTwoWeeks) {
		t.Errorf("caption = %q", replies[0].Text)
	}
	if renderer.lastWindow == nil {
		t.Fatal("two-week plot rendered without a window")
	}
	wantStart := testNow().Add(-progress.TwoWeeks)
	if !renderer.lastWindow.Start.Equal(wantStart) {
		t.Errorf("window start = %v, want %v", renderer.lastWindow.Start, wantStart)
	}

	replies = turn(t, m, 1, "/plot_all")
	if renderer.lastWindow != nil {
		t.Error("all-time plot should have no window")
	}
	if !strings.Contains(replies[0].Text, english().HerePlotOverallProgress) {
		t.Errorf("caption = %q", replies[0].Text)
	}
}

func TestPlotWithoutData(t *testing.T) {
	st := store.NewInMemoryStore()
	m, renderer := newTestMachine(t, st)

	replies := turn(t, m, 1, "/plot")
	if replies[0].Text != english().NoDataToDownloadYet {
		t.Errorf("reply = %q, want no-data text", replies[0].Text)
	}
	if renderer.calls != 0 {
		t.Error("renderer should not be called without data")
	}
}

func TestDownload(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	replies := turn(t, m, 1, "/download")
	if replies[0].Text != english().NoDataToDownloadYet {
		t.Errorf("reply = %q, want no-data text", replies[0].Text)
	}

	st.AppendMeasurement(models.Measurement{UserID: 1, Date: testNow(), Value: 80})
	replies = turn(t, m, 1, "/download")
	if replies[0].DocumentPath == "" {
		t.Error("download reply has no document")
	}
	if !strings.Contains(replies[0].Text, english().HereAllYourData) {
		t.Errorf("caption = %q", replies[0].Text)
	}
}

func TestEraseFlow(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)
	st.AppendMeasurement(models.Measurement{UserID: 1, Date: testNow(), Value: 80})
	st.SaveChallenge(models.Challenge{UserID: 1, Active: true, StartDate: "2023/03/01", EndDate: "2023/04/01", StartValue: 80, TargetValue: 75})

	turn(t, m, 1, "/erase")
	if got := sessionState(t, st, 1); got != models.StateAwaitingEraseConfirm {
		t.Fatalf("state = %q, want awaiting_erase_confirmation", got)
	}

	replies := turn(t, m, 1, "yes")
	if replies[0].Text != english().EraseComplete {
		t.Errorf("reply = %q, want erase-complete text", replies[0].Text)
	}
	if replies[0].DocumentPath == "" {
		t.Error("erase reply should carry the exported backup")
	}
	if ms, _ := st.QueryMeasurements(1); len(ms) != 0 {
		t.Errorf("measurements not erased: %+v", ms)
	}
	if c, _ := st.LoadLatestChallenge(1); c != nil {
		t.Errorf("challenges not erased: %+v", c)
	}
}

func TestEraseCancelled(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)
	st.AppendMeasurement(models.Measurement{UserID: 1, Date: testNow(), Value: 80})

	turn(t, m, 1, "/erase")
	replies := turn(t, m, 1, "nope")
	if replies[0].Text != english().CancelDelete {
		t.Errorf("reply = %q, want cancel text", replies[0].Text)
	}
	if ms, _ := st.QueryMeasurements(1); len(ms) != 1 {
		t.Error("data should survive a cancelled erase")
	}
	if got := sessionState(t, st, 1); got != models.StateInit {
		t.Errorf("state = %q, want init", got)
	}
}

func TestLanguageFlow(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	replies := turn(t, m, 1, "/language")
	if replies[0].Text != glossary.SelectLanguage() {
		t.Errorf("prompt = %q", replies[0].Text)
	}

	replies = turn(t, m, 1, "klingon")
	if replies[0].Text != glossary.UnknownLanguage() {
		t.Errorf("reply = %q, want unknown-language text", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateAwaitingLanguage {
		t.Errorf("state = %q, want awaiting_language", got)
	}

	replies = turn(t, m, 1, "Русский")
	russian := glossary.ForLanguage(models.LanguageRussian)
	if replies[0].Text != russian.LanguageSelected {
		t.Errorf("reply = %q, want Russian confirmation", replies[0].Text)
	}
	s, _ := st.LoadSession(1)
	if s.Language != models.LanguageRussian {
		t.Errorf("language = %q, want russian", s.Language)
	}
}

func TestUploadFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2023/03/01,80.5\n2023/03/02,80.1\n"))
	}))
	defer srv.Close()

	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st, WithAttachmentResolver(func(ref string) (string, error) {
		return srv.URL + "/" + ref, nil
	}))

	turn(t, m, 1, "/upload")
	if got := sessionState(t, st, 1); got != models.StateAwaitingCSVTable {
		t.Fatalf("state = %q, want awaiting_csv_table", got)
	}

	// No document yet: re-prompt, state unchanged.
	replies := turn(t, m, 1, "here it comes")
	if replies[0].Text != english().NoValidDocument {
		t.Errorf("reply = %q, want no-document text", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateAwaitingCSVTable {
		t.Errorf("state = %q, want awaiting_csv_table", got)
	}

	// Oversize document: rejected, state unchanged.
	replies = m.HandleTurn(context.Background(), models.Message{
		UserID:     1,
		Attachment: &models.Attachment{Ref: "big", Size: models.DefaultMaxFileSize + 1},
	})
	if !strings.Contains(replies[0].Text, "1024") {
		t.Errorf("oversize reply = %q, want the kb limit", replies[0].Text)
	}

	replies = m.HandleTurn(context.Background(), models.Message{
		UserID:     1,
		Attachment: &models.Attachment{Ref: "table.csv", Size: 64},
	})
	if replies[0].Text != english().DataUploadedSuccessfully {
		t.Errorf("reply = %q, want upload-success text", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateInit {
		t.Errorf("state = %q, want init", got)
	}
	if ms, _ := st.QueryMeasurements(1); len(ms) != 2 {
		t.Errorf("imported measurements = %d, want 2", len(ms))
	}
}

func TestUploadInvalidFileStaysAwaiting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-a-date,80.5\n"))
	}))
	defer srv.Close()

	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st, WithAttachmentResolver(func(ref string) (string, error) {
		return srv.URL, nil
	}))

	turn(t, m, 1, "/upload")
	replies := m.HandleTurn(context.Background(), models.Message{
		UserID:     1,
		Attachment: &models.Attachment{Ref: "bad.csv", Size: 16},
	})
	if replies[0].Text != english().FileInvalid {
		t.Errorf("reply = %q, want invalid-file text", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateAwaitingCSVTable {
		t.Errorf("state = %q, want awaiting_csv_table", got)
	}
}

func TestUnexpectedDocument(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	replies := m.HandleTurn(context.Background(), models.Message{
		UserID:     1,
		Attachment: &models.Attachment{Ref: "whatever.pdf", Size: 10},
	})
	if replies[0].Text != english().UnexpectedDocument {
		t.Errorf("reply = %q, want unexpected-document text", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateInit {
		t.Errorf("state = %q, want init", got)
	}
}

func TestEmptyMessageIsIgnored(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	if replies := m.HandleTurn(context.Background(), models.Message{UserID: 1}); len(replies) != 0 {
		t.Errorf("empty message produced replies: %+v", replies)
	}
}

func TestUnknownStateResetsToMenu(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)
	st.SaveSession(models.Session{UserID: 1, State: "no_such_state", Language: models.LanguageEnglish})

	replies := turn(t, m, 1, "hello")
	if !strings.Contains(replies[0].Text, english().CommandList) {
		t.Errorf("recovery reply = %q, want menu", replies[0].Text)
	}
	if got := sessionState(t, st, 1); got != models.StateInit {
		t.Errorf("state = %q, want init", got)
	}
}

type stubGenAI struct {
	text string
	err  error
}

func (s *stubGenAI) GenerateMotivation(ctx context.Context, language string) (string, error) {
	return s.text, s.err
}

func TestMotivateCannedFallback(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	replies := m.HandleTurn(context.Background(), models.Message{UserID: 1, MessageID: 4, Text: "/notfat"})
	want := english().Motivational(4)
	if replies[0].Text != want {
		t.Errorf("reply = %q, want canned phrase %q", replies[0].Text, want)
	}
}

func TestMotivateGenerated(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st, WithGenAI(&stubGenAI{text: "You can do it."}))

	replies := turn(t, m, 1, "/notfat")
	if replies[0].Text != "You can do it." {
		t.Errorf("reply = %q, want generated text", replies[0].Text)
	}

	// Generation failure falls back to the canned phrase.
	m, _ = newTestMachine(t, st, WithGenAI(&stubGenAI{err: errors.New("quota")}))
	replies = m.HandleTurn(context.Background(), models.Message{UserID: 1, MessageID: 2, Text: "/notfat"})
	if replies[0].Text != english().Motivational(2) {
		t.Errorf("fallback reply = %q", replies[0].Text)
	}
}

// Two concurrent turns for the same user race on a last-write-wins
// basis: the session ends in one of the two states, never in a torn or
// invalid one. This looseness is deliberate and must not be "fixed"
// with locking.
func TestConcurrentTurnsLastWriteWins(t *testing.T) {
	st := store.NewInMemoryStore()
	m, _ := newTestMachine(t, st)

	var wg sync.WaitGroup
	for _, text := range []string{"/enter_weight", "/upload"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			turn(t, m, 1, text)
		}(text)
	}
	wg.Wait()

	got := sessionState(t, st, 1)
	if got != models.StateAwaitingBodyWeight && got != models.StateAwaitingCSVTable {
		t.Errorf("state = %q, want one of the two racing outcomes", got)
	}
}
