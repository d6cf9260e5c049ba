package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/vocabtrainer/pkg/models"
)

// AttemptRecordRepository handles database operations for attempt history.
// Records are keyed by (user_id, source_text) so every user keeps an
// independent history over the shared word bank.
type AttemptRecordRepository struct {
	db *sqlx.DB
}

// NewAttemptRecordRepository creates a new repository instance.
func NewAttemptRecordRepository(db *sqlx.DB) *AttemptRecordRepository {
	return &AttemptRecordRepository{db: db}
}

type attemptRecordRow struct {
	SourceText   string `db:"source_text"`
	Topic        string `db:"topic"`
	CorrectCount int    `db:"correct_count"`
	TotalCount   int    `db:"total_count"`
	Attempts     string `db:"attempts"`
}

// GetAllForUser returns the user's full history keyed by source word.
func (r *AttemptRecordRepository) GetAllForUser(ctx context.Context, userID int64) (map[string]*models.AttemptRecord, error) {
	var rows []attemptRecordRow

	query := r.db.Rebind(`
		SELECT source_text, topic, correct_count, total_count, attempts
		FROM attempt_records
		WHERE user_id = ?
	`)
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get attempt records: %w", err)
	}

	history := make(map[string]*models.AttemptRecord, len(rows))
	for _, row := range rows {
		rec := &models.AttemptRecord{
			SourceText:   row.SourceText,
			Topic:        row.Topic,
			CorrectCount: row.CorrectCount,
			TotalCount:   row.TotalCount,
		}
		if row.Attempts != "" {
			if err := json.Unmarshal([]byte(row.Attempts), &rec.Attempts); err != nil {
				return nil, fmt.Errorf("failed to decode attempt log for %q: %w", row.SourceText, err)
			}
		}
		history[rec.SourceText] = rec
	}

	return history, nil
}

// Upsert writes one attempt record for the user, inserting or replacing.
func (r *AttemptRecordRepository) Upsert(ctx context.Context, userID int64, rec *models.AttemptRecord) error {
	attempts, err := json.Marshal(rec.Attempts)
	if err != nil {
		return fmt.Errorf("failed to encode attempt log: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO attempt_records (user_id, source_text, topic, correct_count, total_count, attempts, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, source_text) DO UPDATE SET
			topic = excluded.topic,
			correct_count = excluded.correct_count,
			total_count = excluded.total_count,
			attempts = excluded.attempts,
			updated_at = CURRENT_TIMESTAMP
	`)
	if _, err := r.db.ExecContext(ctx, query, userID, rec.SourceText, rec.Topic, rec.CorrectCount, rec.TotalCount, string(attempts)); err != nil {
		return fmt.Errorf("failed to upsert attempt record: %w", err)
	}

	return nil
}

// DeleteAllForUser removes the user's entire history.
func (r *AttemptRecordRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	query := r.db.Rebind(`DELETE FROM attempt_records WHERE user_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete attempt records: %w", err)
	}
	return nil
}

// Users returns every user ID with recorded attempts.
func (r *AttemptRecordRepository) Users(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT user_id FROM attempt_records ORDER BY user_id`); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return ids, nil
}

// UserHistory is a single-user view of the repository. It satisfies the
// selector's HistoryStore contract.
type UserHistory struct {
	repo   *AttemptRecordRepository
	userID int64
}

// ForUser scopes the repository to one user.
func (r *AttemptRecordRepository) ForUser(userID int64) *UserHistory {
	return &UserHistory{repo: r, userID: userID}
}

// LoadAll returns the user's history keyed by source word.
func (h *UserHistory) LoadAll() (map[string]*models.AttemptRecord, error) {
	return h.repo.GetAllForUser(context.Background(), h.userID)
}

// Save writes one record back.
func (h *UserHistory) Save(rec *models.AttemptRecord) error {
	return h.repo.Upsert(context.Background(), h.userID, rec)
}

// Clear drops the user's history.
func (h *UserHistory) Clear() error {
	return h.repo.DeleteAllForUser(context.Background(), h.userID)
}
