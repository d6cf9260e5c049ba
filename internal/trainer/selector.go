package trainer

import (
	"math/rand"
	"strings"
	"time"

	"github.com/example/vocabtrainer/internal/wordbank"
	"github.com/example/vocabtrainer/pkg/models"
)

// HistoryStore persists attempt records between sessions. The selector reads
// it once at construction and writes back after every mutating call.
type HistoryStore interface {
	LoadAll() (map[string]*models.AttemptRecord, error)
	Save(record *models.AttemptRecord) error
	Clear() error
}

// Selector implements adaptive word selection: words answered poorly come up
// more often, words answered well fade out. One Selector belongs to exactly
// one user session; the history map is never shared.
type Selector struct {
	bank    *wordbank.Bank
	store   HistoryStore
	history map[string]*models.AttemptRecord
	rnd     *rand.Rand
	now     func() time.Time
}

// NewSelector creates a selector over the given bank, hydrated from store.
// A nil store keeps the history in memory only.
func NewSelector(bank *wordbank.Bank, store HistoryStore) (*Selector, error) {
	history := make(map[string]*models.AttemptRecord)
	if store != nil {
		loaded, err := store.LoadAll()
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			history = loaded
		}
	}

	return &Selector{
		bank:    bank,
		store:   store,
		history: history,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}, nil
}

// Topics returns the bank's topic list.
func (s *Selector) Topics() []string {
	return s.bank.Topics()
}

// Weight returns the selection weight for a word. Never-seen words get full
// weight 1.0; otherwise the weight is 1 - successRate, so a word answered
// correctly every time converges toward 0.
func (s *Selector) Weight(source string) float64 {
	rec, ok := s.history[source]
	if !ok || rec.TotalCount == 0 {
		return 1.0
	}
	return 1.0 - float64(rec.CorrectCount)/float64(rec.TotalCount)
}

// Select performs one weighted random draw over the candidate set for the
// given topic filter. An empty candidate set yields (nil, false), a valid
// empty result rather than an error. When every candidate has weight 0 the draw
// falls back to uniform sampling so fully-learned words stay reachable.
func (s *Selector) Select(topic string) (*models.VocabEntry, bool) {
	candidates := s.bank.Entries(topic)
	if len(candidates) == 0 {
		return nil, false
	}

	weights := make([]float64, len(candidates))
	var total float64
	for i, c := range candidates {
		weights[i] = s.Weight(c.SourceText)
		total += weights[i]
	}

	if total == 0 {
		entry := candidates[s.rnd.Intn(len(candidates))]
		return &entry, true
	}

	target := s.rnd.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if target < cum {
			entry := candidates[i]
			return &entry, true
		}
	}

	// Float accumulation can leave target a hair past the last bucket.
	entry := candidates[len(candidates)-1]
	return &entry, true
}

// RecordAttempt checks answer against the entry's target text (trimmed,
// case-insensitive), updates the word's attempt record and writes it back to
// the store. The in-memory update always happens; a store failure is
// returned alongside the result and leaves the record intact.
func (s *Selector) RecordAttempt(entry models.VocabEntry, answer string) (models.AttemptResult, error) {
	correct := strings.EqualFold(strings.TrimSpace(answer), entry.TargetText)

	rec, ok := s.history[entry.SourceText]
	if !ok {
		rec = &models.AttemptRecord{
			SourceText: entry.SourceText,
			Topic:      entry.Topic,
		}
		s.history[entry.SourceText] = rec
	}

	rec.TotalCount++
	if correct {
		rec.CorrectCount++
	}
	rec.Attempts = append(rec.Attempts, models.Attempt{
		Timestamp: s.now(),
		Correct:   correct,
	})

	result := models.AttemptResult{Correct: correct, CorrectAnswer: entry.TargetText}

	if s.store != nil {
		if err := s.store.Save(rec); err != nil {
			return result, err
		}
	}
	return result, nil
}

// StatsByTopic groups attempt records by their cached topic and sums the
// counters. Empty history yields an empty map.
func (s *Selector) StatsByTopic() map[string]models.TopicStats {
	stats := make(map[string]models.TopicStats)
	for _, rec := range s.history {
		ts := stats[rec.Topic]
		ts.Correct += rec.CorrectCount
		ts.Total += rec.TotalCount
		stats[rec.Topic] = ts
	}
	for topic, ts := range stats {
		if ts.Total > 0 {
			ts.SuccessRate = float64(ts.Correct) / float64(ts.Total) * 100
		}
		stats[topic] = ts
	}
	return stats
}

// Reset drops all attempt records and clears the backing store. Irreversible;
// any confirmation belongs to the caller.
func (s *Selector) Reset() error {
	s.history = make(map[string]*models.AttemptRecord)
	if s.store != nil {
		return s.store.Clear()
	}
	return nil
}
