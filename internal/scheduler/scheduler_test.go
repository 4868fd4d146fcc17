package scheduler

import (
	"strings"
	"testing"
	"time"

	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/session"
	"MultiplierSentinel/internal/strategy"
)

type memRecorder struct {
	observations []*recorder.ObservationEvent
	analyses     []*recorder.AnalysisSnapshot
	events       []*recorder.SessionEvent
}

func (m *memRecorder) RecordObservation(evt *recorder.ObservationEvent) error {
	m.observations = append(m.observations, evt)
	return nil
}

func (m *memRecorder) RecordAnalysis(snap *recorder.AnalysisSnapshot) error {
	m.analyses = append(m.analyses, snap)
	return nil
}

func (m *memRecorder) RecordSessionEvent(evt *recorder.SessionEvent) error {
	m.events = append(m.events, evt)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func newTestScheduler() (*Scheduler, *memRecorder) {
	rec := &memRecorder{}
	s := NewScheduler(session.NewManager(), strategy.Default(), rec, Options{
		IdleTTL:      time.Hour,
		HistoryLimit: 30,
		ChartWindow:  10,
	})
	return s, rec
}

func TestHandleCommand_AddAndReport(t *testing.T) {
	s, rec := newTestScheduler()

	reply := s.HandleCommand("cli:a", "1.2")
	if !strings.Contains(reply, "Value added: 1.20x") {
		t.Errorf("unexpected reply:\n%s", reply)
	}
	// cold start band
	if !strings.Contains(reply, "between 1.40x and 2.10x") || !strings.Contains(reply, "Confidence: 30.0%") {
		t.Errorf("expected cold-start forecast:\n%s", reply)
	}

	s.HandleCommand("cli:a", "1.3")
	reply = s.HandleCommand("cli:a", "1.1x")
	if !strings.Contains(reply, "Alert: Continuous drop detected (70% chance)") {
		t.Errorf("expected drop alert:\n%s", reply)
	}

	if len(rec.observations) != 3 || rec.observations[2].Position != 3 {
		t.Errorf("expected 3 recorded observations, got %d", len(rec.observations))
	}
	if len(rec.analyses) != 3 {
		t.Errorf("expected 3 recorded analyses, got %d", len(rec.analyses))
	}
}

func TestHandleCommand_InvalidInputLeavesSequence(t *testing.T) {
	s, rec := newTestScheduler()
	s.HandleCommand("cli:a", "2.0")

	reply := s.HandleCommand("cli:a", "abc")
	if !strings.HasPrefix(reply, "Invalid format.") {
		t.Errorf("expected invalid format reply, got:\n%s", reply)
	}
	if n := s.Sessions.Get("cli:a").Len(); n != 1 {
		t.Errorf("expected length 1, got %d", n)
	}
	if len(rec.observations) != 1 {
		t.Errorf("rejected input was recorded")
	}
}

func TestHandleCommand_ClearAndHistory(t *testing.T) {
	s, rec := newTestScheduler()
	for _, v := range []string{"1.0", "2.0", "3.0"} {
		s.HandleCommand("cli:a", v)
	}

	hist := s.HandleCommand("cli:a", "/history 2")
	if strings.Contains(hist, "1.00x") || !strings.Contains(hist, "3.00x") {
		t.Errorf("expected last two rounds only:\n%s", hist)
	}
	if reply := s.HandleCommand("cli:a", "/history zero"); !strings.HasPrefix(reply, "Usage") {
		t.Errorf("expected usage reply, got %q", reply)
	}

	if reply := s.HandleCommand("cli:a", "/clear"); reply != "🧹 History cleared." {
		t.Errorf("unexpected clear reply %q", reply)
	}
	if n := s.Sessions.Get("cli:a").Len(); n != 0 {
		t.Errorf("expected empty session, got %d", n)
	}
	if len(rec.events) != 1 || rec.events[0].Dropped != 3 || rec.events[0].EventType != "CLEAR" {
		t.Errorf("unexpected session events: %+v", rec.events)
	}
	if reply := s.HandleCommand("cli:a", "/forecast"); !strings.HasPrefix(reply, "No observations yet") {
		t.Errorf("expected empty forecast reply, got %q", reply)
	}
}

func TestHandleCommand_SessionsAreIndependent(t *testing.T) {
	s, _ := newTestScheduler()
	s.HandleCommand("tg:1", "5")
	s.HandleCommand("tg:2", "1.1")

	if v := s.Sessions.Get("tg:1").Values(); len(v) != 1 || v[0] != 5 {
		t.Errorf("tg:1 sequence polluted: %v", v)
	}
	if v := s.Sessions.Get("tg:2").Values(); len(v) != 1 || v[0] != 1.1 {
		t.Errorf("tg:2 sequence polluted: %v", v)
	}
}

func TestHandleCommand_Help(t *testing.T) {
	s, _ := newTestScheduler()
	for _, cmd := range []string{"/help", "/start", "   "} {
		if reply := s.HandleCommand("cli:a", cmd); reply != helpText {
			t.Errorf("%q: expected help text, got %q", cmd, reply)
		}
	}
}

func TestSweep_EvictsAndRecords(t *testing.T) {
	s, rec := newTestScheduler()
	s.Options.IdleTTL = time.Nanosecond
	s.HandleCommand("cli:a", "2.0")
	time.Sleep(time.Millisecond)

	evicted := s.sweep()
	if len(evicted) != 1 || evicted[0] != "cli:a" {
		t.Fatalf("expected cli:a evicted, got %v", evicted)
	}
	if len(rec.events) != 1 || rec.events[0].EventType != "EVICT" {
		t.Errorf("expected eviction event, got %+v", rec.events)
	}
	if s.Sessions.Len() != 0 {
		t.Errorf("expected no sessions left, got %d", s.Sessions.Len())
	}
}

func TestRegisterAll_RejectsBadCron(t *testing.T) {
	s, _ := newTestScheduler()
	if err := s.RegisterAll("not a cron", "0 0 * * * *"); err == nil {
		t.Error("expected error for invalid sweep cron")
	}
}

func TestHandleCommand_ViewsDoNotOpenSessions(t *testing.T) {
	s, rec := newTestScheduler()

	if reply := s.HandleCommand("tg:5", "/forecast"); !strings.HasPrefix(reply, "No observations yet") {
		t.Errorf("unexpected forecast reply %q", reply)
	}
	if reply := s.HandleCommand("tg:5", "/history"); reply != "No observations yet." {
		t.Errorf("unexpected history reply %q", reply)
	}
	if s.Sessions.Len() != 0 {
		t.Errorf("viewing opened %d sessions", s.Sessions.Len())
	}
	if len(rec.analyses) != 0 {
		t.Errorf("empty views recorded %d analyses", len(rec.analyses))
	}
}

func TestHandleCommand_AnalysisTimestamped(t *testing.T) {
	s, rec := newTestScheduler()
	before := time.Now()
	s.HandleCommand("cli:a", "2.0")
	s.HandleCommand("cli:a", "/forecast")

	if len(rec.analyses) != 2 {
		t.Fatalf("expected 2 analyses, got %d", len(rec.analyses))
	}
	for i, a := range rec.analyses {
		if a.At.Before(before) {
			t.Errorf("analysis %d: timestamp %v not set", i, a.At)
		}
	}
}
