package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"MultiplierSentinel/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func countRows(t *testing.T, r *SQLiteRecorder, table string) int {
	t.Helper()
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSQLiteRecorder_RecordsAllEvents(t *testing.T) {
	r := openTestRecorder(t)

	obs := model.Observation{Value: 2.31, RecordedAt: time.Now()}
	if err := r.RecordObservation(&ObservationEvent{SessionKey: "cli:test", Observation: obs, Position: 1}); err != nil {
		t.Fatalf("record observation: %v", err)
	}
	if err := r.RecordAnalysis(&AnalysisSnapshot{
		SessionKey: "cli:test",
		Analysis: &model.Analysis{
			Count:      1,
			Forecast:   model.Forecast{Lower: 1.4, Estimate: 1.8, Upper: 2.1, Confidence: 30},
			Level:      model.ConfidenceLevel{Label: "UNCERTAIN"},
			Transition: true,
			Alerts: []model.PatternAlert{
				{Label: "Continuous drop detected", Probability: 70},
				{Label: "Unstable alternation", Probability: 60},
			},
		},
	}); err != nil {
		t.Fatalf("record analysis: %v", err)
	}
	if err := r.RecordSessionEvent(&SessionEvent{SessionKey: "cli:test", EventType: "CLEAR", Dropped: 1}); err != nil {
		t.Fatalf("record session event: %v", err)
	}

	for _, table := range []string{"observations", "analyses", "session_events"} {
		if n := countRows(t, r, table); n != 1 {
			t.Errorf("%s: expected 1 row, got %d", table, n)
		}
	}

	var alerts string
	var transition int
	if err := r.db.QueryRow("SELECT alerts, transition FROM analyses").Scan(&alerts, &transition); err != nil {
		t.Fatalf("read analysis: %v", err)
	}
	if alerts != "Continuous drop detected;Unstable alternation" || transition != 1 {
		t.Errorf("unexpected analysis row: alerts=%q transition=%d", alerts, transition)
	}
}

func TestSQLiteRecorder_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := r.RecordSessionEvent(&SessionEvent{SessionKey: "tg:1", EventType: "EVICT"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	r.Close()

	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()
	if n := countRows(t, r2, "session_events"); n != 1 {
		t.Errorf("expected 1 row after reopen, got %d", n)
	}
}

func TestSQLiteRecorder_AnalysisUsesSnapshotTime(t *testing.T) {
	r := openTestRecorder(t)
	at := time.Date(2026, 3, 7, 21, 5, 0, 0, time.UTC)
	if err := r.RecordAnalysis(&AnalysisSnapshot{
		SessionKey: "tg:1",
		Analysis:   &model.Analysis{Count: 5},
		At:         at,
	}); err != nil {
		t.Fatalf("record analysis: %v", err)
	}
	var ts int64
	if err := r.db.QueryRow("SELECT timestamp FROM analyses").Scan(&ts); err != nil {
		t.Fatalf("read analysis: %v", err)
	}
	if ts != at.Unix() {
		t.Errorf("expected timestamp %d, got %d", at.Unix(), ts)
	}
}
