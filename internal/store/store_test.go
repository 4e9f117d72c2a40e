package store

import (
	"testing"
	"time"

	"github.com/masskeeper/masskeeper/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoadSessionImplicitCreate(t *testing.T) {
	s := NewInMemoryStore()
	sess, err := s.LoadSession(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess.UserID != 7 || sess.State != models.StateInit || sess.Language != models.DefaultLanguage {
		t.Errorf("first contact session = %+v, want init defaults", sess)
	}
}

func TestSaveSessionOverwrites(t *testing.T) {
	s := NewInMemoryStore()
	if err := s.SaveSession(models.Session{UserID: 7, State: models.StateAwaitingBodyWeight, Language: models.LanguageRussian}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveSession(models.Session{UserID: 7, State: models.StateInit, Language: models.LanguageRussian}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sess, _ := s.LoadSession(7)
	if sess.State != models.StateInit {
		t.Errorf("session state = %q, want the last written value", sess.State)
	}
}

func TestChallengeLogLatestWins(t *testing.T) {
	s := NewInMemoryStore()
	if c, _ := s.LoadLatestChallenge(1); c != nil {
		t.Fatalf("fresh user should have no challenge, got %+v", c)
	}

	// The wizard appends progressively richer rows; the latest one is
	// authoritative.
	if err := s.SaveChallenge(models.Challenge{UserID: 1, StartValue: 101}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveChallenge(models.Challenge{UserID: 1, StartValue: 101, StartDate: "2021/04/30"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SaveChallenge(models.Challenge{UserID: 2, StartValue: 88}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, err := s.LoadLatestChallenge(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil || c.StartDate != "2021/04/30" {
		t.Errorf("latest challenge = %+v, want the last row for user 1", c)
	}
	if c.Active {
		t.Error("partially built challenge must stay inactive")
	}
}

func TestDeleteChallenges(t *testing.T) {
	s := NewInMemoryStore()
	_ = s.SaveChallenge(models.Challenge{UserID: 1, Active: true, StartDate: "2021/04/30", EndDate: "2021/05/10", StartValue: 101, TargetValue: 99})
	_ = s.SaveChallenge(models.Challenge{UserID: 2, Active: true, StartDate: "2021/04/30", EndDate: "2021/05/10", StartValue: 80, TargetValue: 78})
	if err := s.DeleteChallenges(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c, _ := s.LoadLatestChallenge(1); c != nil {
		t.Errorf("user 1 challenges should be gone, got %+v", c)
	}
	if c, _ := s.LoadLatestChallenge(2); c == nil {
		t.Error("user 2 challenges should survive")
	}
}

func TestMeasurementsOrderedAscending(t *testing.T) {
	s := NewInMemoryStore()
	_ = s.AppendMeasurement(models.Measurement{UserID: 1, Date: day(2021, 5, 4), Value: 101.1})
	_ = s.AppendMeasurement(models.Measurement{UserID: 1, Date: day(2021, 5, 1), Value: 100.5})
	_ = s.AppendMeasurement(models.Measurement{UserID: 1, Date: day(2021, 5, 3), Value: 100.2})
	_ = s.AppendMeasurement(models.Measurement{UserID: 2, Date: day(2021, 5, 2), Value: 80})

	ms, err := s.QueryMeasurements(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("got %d measurements, want 3", len(ms))
	}
	for i := 1; i < len(ms); i++ {
		if ms[i].Date.Before(ms[i-1].Date) {
			t.Errorf("measurements out of order: %v before %v", ms[i].Date, ms[i-1].Date)
		}
	}
}

func TestDuplicateMeasurementDatesAllowed(t *testing.T) {
	s := NewInMemoryStore()
	_ = s.AppendMeasurement(models.Measurement{UserID: 1, Date: day(2021, 5, 1), Value: 100.5})
	_ = s.AppendMeasurement(models.Measurement{UserID: 1, Date: day(2021, 5, 1), Value: 100.7})
	ms, _ := s.QueryMeasurements(1)
	if len(ms) != 2 {
		t.Errorf("got %d measurements, want 2 (duplicates allowed)", len(ms))
	}
}

func TestDeleteMeasurements(t *testing.T) {
	s := NewInMemoryStore()
	_ = s.AppendMeasurement(models.Measurement{UserID: 1, Date: day(2021, 5, 1), Value: 100.5})
	_ = s.AppendMeasurement(models.Measurement{UserID: 2, Date: day(2021, 5, 1), Value: 80})
	if err := s.DeleteMeasurements(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms, _ := s.QueryMeasurements(1); len(ms) != 0 {
		t.Errorf("user 1 measurements should be gone, got %d", len(ms))
	}
	if ms, _ := s.QueryMeasurements(2); len(ms) != 1 {
		t.Error("user 2 measurements should survive")
	}
}
