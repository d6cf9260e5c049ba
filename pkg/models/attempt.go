package models

import "time"

// Attempt is a single answered attempt at a word.
type Attempt struct {
	Timestamp time.Time `json:"timestamp"`
	Correct   bool      `json:"correct"`
}

// AttemptRecord tracks a user's answer history for one word. It is created
// lazily on the first answered attempt and mutated in place by every
// subsequent one. Topic is cached from the VocabEntry at first attempt so
// topic-level aggregation survives word bank changes.
type AttemptRecord struct {
	SourceText   string    `json:"source_text" db:"source_text"`
	Topic        string    `json:"topic" db:"topic"`
	CorrectCount int       `json:"correct_count" db:"correct_count"`
	TotalCount   int       `json:"total_count" db:"total_count"`
	Attempts     []Attempt `json:"attempts"`
}

// AttemptResult is what RecordAttempt reports back to the caller so it can
// render feedback without re-deriving the match logic.
type AttemptResult struct {
	Correct       bool
	CorrectAnswer string
}
