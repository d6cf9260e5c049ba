package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/vocabtrainer/internal/wordbank"
	"github.com/example/vocabtrainer/pkg/models"
)

// Config defines how the word table is read from a file. Columns are matched
// by header name, case-insensitively, so the sheet layout can vary.
type Config struct {
	FilePath     string
	TopicColumn  string // Header of the topic column
	SourceColumn string // Header of the prompt-word column
	TargetColumn string // Header of the expected-answer column
	NoteColumn   string // Header of the optional note column
	SheetName    string // Sheet to read (Excel only, first sheet when empty)
}

// DefaultConfig returns the default import configuration.
func DefaultConfig(path string) Config {
	return Config{
		FilePath:     path,
		TopicColumn:  "topic",
		SourceColumn: "source",
		TargetColumn: "target",
		NoteColumn:   "note",
	}
}

// Result holds the outcome of an import operation.
type Result struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords reads vocabulary entries from an Excel or CSV file. The first
// row must be a header containing the configured column names; a missing
// required column fails the import with a wordbank.SchemaError.
func ImportWords(config Config) ([]models.VocabEntry, *Result, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config)
	}
	if err != nil {
		return nil, nil, err
	}

	return buildEntries(rows, config)
}

// readExcel returns all rows of the configured sheet.
func readExcel(config Config) ([][]string, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// readCSV returns all rows of the CSV file.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// buildEntries maps the header row to column indexes and normalizes every
// data row into a VocabEntry.
func buildEntries(rows [][]string, config Config) ([]models.VocabEntry, *Result, error) {
	if len(rows) == 0 {
		return nil, nil, &wordbank.SchemaError{Missing: []string{
			config.TopicColumn, config.SourceColumn, config.TargetColumn,
		}}
	}

	index := make(map[string]int)
	for i, header := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}

	var missing []string
	topicIdx, ok := index[strings.ToLower(config.TopicColumn)]
	if !ok {
		missing = append(missing, config.TopicColumn)
	}
	sourceIdx, ok := index[strings.ToLower(config.SourceColumn)]
	if !ok {
		missing = append(missing, config.SourceColumn)
	}
	targetIdx, ok := index[strings.ToLower(config.TargetColumn)]
	if !ok {
		missing = append(missing, config.TargetColumn)
	}
	if len(missing) > 0 {
		return nil, nil, &wordbank.SchemaError{Missing: missing}
	}

	// The note column is optional
	noteIdx, hasNote := index[strings.ToLower(config.NoteColumn)]

	result := &Result{}
	var entries []models.VocabEntry

	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		entry := models.VocabEntry{
			Topic:      cellAt(row, topicIdx),
			SourceText: cellAt(row, sourceIdx),
			TargetText: cellAt(row, targetIdx),
		}
		if hasNote {
			entry.Note = cellAt(row, noteIdx)
		}

		if entry.Topic == "" || entry.SourceText == "" || entry.TargetText == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing required values", i+2))
			continue
		}

		entries = append(entries, entry)
		result.Imported++
	}

	return entries, result, nil
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
