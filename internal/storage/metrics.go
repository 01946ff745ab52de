// ABOUTME: MetricsStore keeps an append-only history of per-turn emotional metrics
// ABOUTME: Capped at the most recent 100 records; feeds trend insights

package storage

import (
	"errors"
	"math"
	"time"

	"github.com/havenjournal/haven/internal/models"
)

const metricsHistoryKey = "metrics:history"

// maxMetricsHistory caps the stored history
const maxMetricsHistory = 100

// MetricsRecord is one turn's metrics with its capture time
type MetricsRecord struct {
	models.Metrics
	Timestamp time.Time `json:"timestamp"`
}

// EmotionalInsights summarizes the recent metrics window
type EmotionalInsights struct {
	AvgStress         float64 `json:"avgStress"`
	AvgLoneliness     float64 `json:"avgLoneliness"`
	SentimentTrend    string  `json:"sentimentTrend"` // improving, declining, stable
	Encouragements    int     `json:"connectionEncouragements"`
	TotalInteractions int     `json:"totalInteractions"`
}

// MetricsStore reads and writes the metrics history
type MetricsStore struct {
	kv KV
}

// NewMetricsStore creates a metrics store over the given KV
func NewMetricsStore(kv KV) *MetricsStore {
	return &MetricsStore{kv: kv}
}

// Append records one turn's metrics, trimming history beyond the cap
func (s *MetricsStore) Append(m models.Metrics, at time.Time) error {
	history, err := s.History()
	if err != nil {
		return err
	}
	history = append(history, MetricsRecord{Metrics: m, Timestamp: at.UTC()})
	if len(history) > maxMetricsHistory {
		history = history[len(history)-maxMetricsHistory:]
	}
	return setJSON(s.kv, metricsHistoryKey, history)
}

// History returns the full stored history, oldest first
func (s *MetricsStore) History() ([]MetricsRecord, error) {
	var history []MetricsRecord
	if err := getJSON(s.kv, metricsHistoryKey, &history); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

// Recent returns the records captured within the last N days
func (s *MetricsStore) Recent(days int, now time.Time) ([]MetricsRecord, error) {
	history, err := s.History()
	if err != nil {
		return nil, err
	}
	cutoff := now.AddDate(0, 0, -days)

	var recent []MetricsRecord
	for _, record := range history {
		if !record.Timestamp.Before(cutoff) {
			recent = append(recent, record)
		}
	}
	return recent, nil
}

// Insights summarizes the last N days. Nil when the window is empty.
func (s *MetricsStore) Insights(days int, now time.Time) (*EmotionalInsights, error) {
	recent, err := s.Recent(days, now)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, nil
	}

	var stressSum, lonelinessSum float64
	encouragements := 0
	for _, record := range recent {
		stressSum += float64(record.StressLevel)
		lonelinessSum += float64(record.LonelinessLevel)
		if record.EncouragesConnection {
			encouragements++
		}
	}

	return &EmotionalInsights{
		AvgStress:         round1(stressSum / float64(len(recent))),
		AvgLoneliness:     round1(lonelinessSum / float64(len(recent))),
		SentimentTrend:    sentimentTrend(recent),
		Encouragements:    encouragements,
		TotalInteractions: len(recent),
	}, nil
}

// sentimentTrend compares positive-sentiment counts between the early and
// late halves of the window.
func sentimentTrend(recent []MetricsRecord) string {
	if len(recent) < 2 {
		return "stable"
	}
	half := len(recent) / 2
	early, late := 0, 0
	for i, record := range recent {
		if record.Sentiment != models.SentimentPositive {
			continue
		}
		if i < half {
			early++
		} else {
			late++
		}
	}
	switch {
	case late > early:
		return "improving"
	case late < early:
		return "declining"
	default:
		return "stable"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
