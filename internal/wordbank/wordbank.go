package wordbank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/vocabtrainer/pkg/models"
)

// AllTopics is the sentinel topic filter meaning "no filter".
const AllTopics = ""

// SchemaError reports a word source feed that is missing required fields.
// It is fatal to initialization.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("word source schema is missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Bank holds the loaded vocabulary table. It is immutable after Load and
// answers topic queries for the selector.
type Bank struct {
	entries []models.VocabEntry
	topics  []string
}

// Load builds a bank from the given rows. Every row must carry a topic, a
// source word and a target word; a row missing any of them fails the whole
// load with a SchemaError. Duplicate source words collapse, last one wins.
func Load(rows []models.VocabEntry) (*Bank, error) {
	seen := make(map[string]int, len(rows))
	entries := make([]models.VocabEntry, 0, len(rows))

	for i, row := range rows {
		var missing []string
		if strings.TrimSpace(row.Topic) == "" {
			missing = append(missing, "topic")
		}
		if strings.TrimSpace(row.SourceText) == "" {
			missing = append(missing, "source")
		}
		if strings.TrimSpace(row.TargetText) == "" {
			missing = append(missing, "target")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("row %d: %w", i+1, &SchemaError{Missing: missing})
		}

		if idx, ok := seen[row.SourceText]; ok {
			entries[idx] = row
			continue
		}
		seen[row.SourceText] = len(entries)
		entries = append(entries, row)
	}

	topicSet := make(map[string]struct{})
	for _, e := range entries {
		topicSet[e.Topic] = struct{}{}
	}
	topics := make([]string, 0, len(topicSet))
	for t := range topicSet {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	return &Bank{entries: entries, topics: topics}, nil
}

// Topics returns the distinct topics in lexicographic order.
func (b *Bank) Topics() []string {
	out := make([]string, len(b.topics))
	copy(out, b.topics)
	return out
}

// Entries returns all entries, or only those matching topic when it is not
// the AllTopics sentinel.
func (b *Bank) Entries(topic string) []models.VocabEntry {
	if topic == AllTopics {
		out := make([]models.VocabEntry, len(b.entries))
		copy(out, b.entries)
		return out
	}

	var out []models.VocabEntry
	for _, e := range b.entries {
		if e.Topic == topic {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of loaded entries.
func (b *Bank) Len() int {
	return len(b.entries)
}
