package wordbank

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabtrainer/pkg/models"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rows        []models.VocabEntry
		wantErr     bool
		wantMissing []string
		wantLen     int
	}{
		{
			name: "valid rows",
			rows: []models.VocabEntry{
				{SourceText: "perro", TargetText: "dog", Topic: "animals"},
				{SourceText: "libro", TargetText: "book", Topic: "education", Note: "also: libreta"},
			},
			wantLen: 2,
		},
		{
			name:    "empty input",
			rows:    nil,
			wantLen: 0,
		},
		{
			name: "missing topic",
			rows: []models.VocabEntry{
				{SourceText: "perro", TargetText: "dog"},
			},
			wantErr:     true,
			wantMissing: []string{"topic"},
		},
		{
			name: "missing source and target",
			rows: []models.VocabEntry{
				{Topic: "animals"},
			},
			wantErr:     true,
			wantMissing: []string{"source", "target"},
		},
		{
			name: "whitespace-only field is missing",
			rows: []models.VocabEntry{
				{SourceText: "perro", TargetText: "   ", Topic: "animals"},
			},
			wantErr:     true,
			wantMissing: []string{"target"},
		},
		{
			name: "duplicate source collapses, last wins",
			rows: []models.VocabEntry{
				{SourceText: "perro", TargetText: "dog", Topic: "animals"},
				{SourceText: "perro", TargetText: "hound", Topic: "animals"},
			},
			wantLen: 1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bank, err := Load(tt.rows)
			if tt.wantErr {
				require.Error(t, err)
				var schemaErr *SchemaError
				require.True(t, errors.As(err, &schemaErr))
				assert.Equal(t, tt.wantMissing, schemaErr.Missing)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, bank.Len())
		})
	}
}

func TestLoad_DuplicateKeepsLastEntry(t *testing.T) {
	t.Parallel()

	bank, err := Load([]models.VocabEntry{
		{SourceText: "perro", TargetText: "dog", Topic: "animals"},
		{SourceText: "perro", TargetText: "hound", Topic: "animals"},
	})
	require.NoError(t, err)

	entries := bank.Entries(AllTopics)
	require.Len(t, entries, 1)
	assert.Equal(t, "hound", entries[0].TargetText)
}

func TestBank_Topics(t *testing.T) {
	t.Parallel()

	bank, err := Load([]models.VocabEntry{
		{SourceText: "coche", TargetText: "car", Topic: "transport"},
		{SourceText: "perro", TargetText: "dog", Topic: "animals"},
		{SourceText: "gato", TargetText: "cat", Topic: "animals"},
		{SourceText: "libro", TargetText: "book", Topic: "education"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"animals", "education", "transport"}, bank.Topics())
}

func TestBank_Entries(t *testing.T) {
	t.Parallel()

	bank, err := Load([]models.VocabEntry{
		{SourceText: "perro", TargetText: "dog", Topic: "animals"},
		{SourceText: "gato", TargetText: "cat", Topic: "animals"},
		{SourceText: "libro", TargetText: "book", Topic: "education"},
	})
	require.NoError(t, err)

	assert.Len(t, bank.Entries(AllTopics), 3)

	animals := bank.Entries("animals")
	require.Len(t, animals, 2)
	for _, e := range animals {
		assert.Equal(t, "animals", e.Topic)
	}

	assert.Empty(t, bank.Entries("no-such-topic"))
}
