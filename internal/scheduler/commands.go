package scheduler

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"MultiplierSentinel/internal/notifier"
	"MultiplierSentinel/internal/recorder"
	"MultiplierSentinel/internal/session"
)

const helpText = "Available commands:\n" +
	"• <number> (e.g. 2.31) add a round multiplier\n" +
	"• /forecast show the forecast and alerts\n" +
	"• /history [n] show the last n rounds\n" +
	"• /clear clear the history"

// HandleCommand processes one line of user input for a session and returns a reply.
func (s *Scheduler) HandleCommand(sessionKey, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}

	switch strings.ToLower(fields[0]) {
	case "/start", "/help", "help":
		return helpText
	case "/clear", "clear":
		return s.clear(sessionKey)
	case "/forecast", "forecast":
		return s.report(sessionKey, s.snapshot(sessionKey), false)
	case "/history", "history":
		limit := s.Options.HistoryLimit
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n <= 0 {
				return "Usage: /history [n], n a positive number."
			}
			limit = n
		}
		store, ok := s.Sessions.Lookup(sessionKey)
		if !ok {
			return notifier.FormatHistory(nil)
		}
		return notifier.FormatHistory(store.History(limit))
	}

	return s.add(sessionKey, command)
}

func (s *Scheduler) add(sessionKey, raw string) string {
	store := s.Sessions.Get(sessionKey)
	obs, err := store.Add(raw)
	if err != nil {
		var pe *session.ParseError
		if errors.As(err, &pe) {
			return "Invalid format. Send a number such as 2.31.\n\n" + helpText
		}
		log.Printf("[ERROR] add observation: %v", err)
		return "Could not add the value."
	}

	if err := s.Recorder.RecordObservation(&recorder.ObservationEvent{
		SessionKey: sessionKey, Observation: obs, Position: store.Len(),
	}); err != nil {
		log.Printf("[ERROR] record observation: %v", err)
	}

	return fmt.Sprintf("✅ Value added: %.2fx\n\n", obs.Value) + s.report(sessionKey, store.Values(), true)
}

func (s *Scheduler) clear(sessionKey string) string {
	store := s.Sessions.Get(sessionKey)
	dropped := store.Len()
	store.Clear()

	if err := s.Recorder.RecordSessionEvent(&recorder.SessionEvent{
		SessionKey: sessionKey, EventType: "CLEAR", Dropped: dropped,
	}); err != nil {
		log.Printf("[ERROR] record clear: %v", err)
	}
	return "🧹 History cleared."
}

// snapshot returns the session's values without opening a new session.
func (s *Scheduler) snapshot(sessionKey string) []float64 {
	store, ok := s.Sessions.Lookup(sessionKey)
	if !ok {
		return nil
	}
	return store.Values()
}

// report renders the analysis of a snapshot, optionally preceded by the mini chart.
func (s *Scheduler) report(sessionKey string, values []float64, withChart bool) string {
	if len(values) == 0 {
		return "No observations yet. Send a multiplier such as 2.31."
	}

	analysis := s.Engine.Evaluate(values)
	if err := s.Recorder.RecordAnalysis(&recorder.AnalysisSnapshot{
		SessionKey: sessionKey, Analysis: analysis, At: time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record analysis: %v", err)
	}

	var b strings.Builder
	if withChart {
		b.WriteString(notifier.FormatChart(values, s.Options.ChartWindow))
		b.WriteString("\n")
	}
	b.WriteString(notifier.FormatAnalysis(analysis))
	return b.String()
}
