package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabtrainer/internal/config"
	"github.com/example/vocabtrainer/pkg/models"
)

func testRepo(t *testing.T) *AttemptRecordRepository {
	t.Helper()

	db, err := Connect(config.DBConfig{
		Driver: "sqlite3",
		Path:   filepath.Join(t.TempDir(), "trainer.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAttemptRecordRepository(db)
}

func TestAttemptRecordRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)
	ctx := context.Background()

	rec := &models.AttemptRecord{
		SourceText:   "perro",
		Topic:        "animals",
		CorrectCount: 1,
		TotalCount:   4,
		Attempts: []models.Attempt{
			{Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), Correct: false},
			{Timestamp: time.Date(2024, 6, 1, 12, 1, 0, 0, time.UTC), Correct: true},
		},
	}
	require.NoError(t, repo.Upsert(ctx, 42, rec))

	history, err := repo.GetAllForUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, history, 1)

	got := history["perro"]
	require.NotNil(t, got)
	assert.Equal(t, "animals", got.Topic)
	assert.Equal(t, 1, got.CorrectCount)
	assert.Equal(t, 4, got.TotalCount)
	require.Len(t, got.Attempts, 2)
	assert.False(t, got.Attempts[0].Correct)
	assert.True(t, got.Attempts[1].Correct)
}

func TestAttemptRecordRepository_UpsertReplaces(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)
	ctx := context.Background()

	rec := &models.AttemptRecord{SourceText: "libro", Topic: "education", CorrectCount: 0, TotalCount: 1}
	require.NoError(t, repo.Upsert(ctx, 7, rec))

	rec.CorrectCount = 1
	rec.TotalCount = 2
	require.NoError(t, repo.Upsert(ctx, 7, rec))

	history, err := repo.GetAllForUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history["libro"].CorrectCount)
	assert.Equal(t, 2, history["libro"].TotalCount)
}

func TestAttemptRecordRepository_UserIsolation(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, 1, &models.AttemptRecord{SourceText: "perro", Topic: "animals", TotalCount: 1}))
	require.NoError(t, repo.Upsert(ctx, 2, &models.AttemptRecord{SourceText: "gato", Topic: "animals", TotalCount: 3}))

	first, err := repo.GetAllForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Contains(t, first, "perro")

	second, err := repo.GetAllForUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Contains(t, second, "gato")

	// Clearing one user leaves the other untouched.
	require.NoError(t, repo.DeleteAllForUser(ctx, 1))

	first, err = repo.GetAllForUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, first)

	second, err = repo.GetAllForUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestAttemptRecordRepository_Users(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)
	ctx := context.Background()

	users, err := repo.Users(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.Upsert(ctx, 5, &models.AttemptRecord{SourceText: "perro", Topic: "animals", TotalCount: 1}))
	require.NoError(t, repo.Upsert(ctx, 3, &models.AttemptRecord{SourceText: "gato", Topic: "animals", TotalCount: 1}))
	require.NoError(t, repo.Upsert(ctx, 5, &models.AttemptRecord{SourceText: "libro", Topic: "education", TotalCount: 1}))

	users, err = repo.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, users)
}

func TestUserHistory_SatisfiesStoreContract(t *testing.T) {
	t.Parallel()

	repo := testRepo(t)
	store := repo.ForUser(99)

	rec := &models.AttemptRecord{SourceText: "perro", Topic: "animals", CorrectCount: 2, TotalCount: 2}
	require.NoError(t, store.Save(rec))

	history, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history["perro"].CorrectCount)

	require.NoError(t, store.Clear())
	history, err = store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, history)
}
