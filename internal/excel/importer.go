package excel

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/linguaweb/internal/database"
	"github.com/example/linguaweb/pkg/models"
)

// Expected column layout of an import sheet. Row 1 is a header.
// A: topic name, B: word, C: translation, D: context sentence.
const (
	colTopic = iota
	colWord
	colTranslation
	colContext
)

// ImportResult holds the outcome of one import run
type ImportResult struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors,omitempty"`
}

// Importer loads vocabulary entries from .xlsx sheets into the catalog
type Importer struct {
	topics *database.TopicRepository
	words  *database.WordRepository
}

// NewImporter creates a new importer instance
func NewImporter(topics *database.TopicRepository, words *database.WordRepository) *Importer {
	return &Importer{topics: topics, words: words}
}

// ImportWords reads vocabulary rows from an .xlsx stream. Rows naming an
// unknown topic are reported as errors: the topic list is fixed and import
// never extends it. Words already present in their topic are skipped.
func (im *Importer) ImportWords(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	// Map topic names to IDs for quick lookup
	topics, err := im.topics.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing topics: %w", err)
	}
	topicMap := make(map[string]int64, len(topics))
	for _, topic := range topics {
		topicMap[strings.ToLower(topic.Name)] = topic.ID
	}

	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		// Skip the header row
		if i == 0 {
			continue
		}

		result.TotalProcessed++

		if err := im.processRow(ctx, row, topicMap, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}

	return result, nil
}

func (im *Importer) processRow(ctx context.Context, row []string, topicMap map[string]int64, result *ImportResult) error {
	if len(row) <= colContext {
		return fmt.Errorf("expected %d columns, got %d", colContext+1, len(row))
	}

	topicName := strings.TrimSpace(row[colTopic])
	word := strings.TrimSpace(row[colWord])
	translation := strings.TrimSpace(row[colTranslation])
	sentence := strings.TrimSpace(row[colContext])

	if topicName == "" || word == "" || translation == "" {
		return fmt.Errorf("topic, word and translation are required")
	}

	topicID, ok := topicMap[strings.ToLower(topicName)]
	if !ok {
		return fmt.Errorf("unknown topic %q", topicName)
	}

	exists, err := im.words.ExistsInTopic(ctx, topicID, word)
	if err != nil {
		return err
	}
	if exists {
		result.Skipped++
		return nil
	}

	entry := &models.Word{
		Word:        word,
		Translation: translation,
		Context:     sentence,
		TopicID:     topicID,
	}
	if err := im.words.Create(ctx, entry); err != nil {
		return err
	}

	result.Created++
	return nil
}
