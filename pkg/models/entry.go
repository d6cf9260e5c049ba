package models

// VocabEntry represents a single vocabulary item loaded from the word source.
// SourceText is the natural key: attempt history is indexed by it, so it must
// be unique within the word bank.
type VocabEntry struct {
	SourceText string `json:"source_text" db:"source_text"`
	TargetText string `json:"target_text" db:"target_text"`
	Topic      string `json:"topic" db:"topic"`
	Note       string `json:"note" db:"note"` // Optional, shown after an answer is submitted
}
