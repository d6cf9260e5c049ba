package models

// TopicStats aggregates attempt counts for one topic.
type TopicStats struct {
	Correct     int     `json:"correct"`
	Total       int     `json:"total"`
	SuccessRate float64 `json:"success_rate"` // Percentage, 0 when Total is 0
}
