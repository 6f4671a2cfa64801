package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/linguaweb/internal/config"
	"github.com/example/linguaweb/internal/database"
)

func buildSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func newTestImporter(t *testing.T) (*Importer, *database.WordRepository, *database.TopicRepository) {
	t.Helper()

	db, err := database.Connect(config.DatabaseConfig{Type: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.SeedTopics(context.Background(), db))

	topics := database.NewTopicRepository(db)
	words := database.NewWordRepository(db)
	return NewImporter(topics, words), words, topics
}

func TestImportWords(t *testing.T) {
	importer, words, topics := newTestImporter(t)
	ctx := context.Background()

	buf := buildSheet(t, [][]interface{}{
		{"Topic", "Word", "Translation", "Context"},
		{"Food", "pan", "bread", "Como pan cada día."},
		{"food", "queso", "cheese", "El queso es delicioso."},
		{"Nope", "x", "y", "z"},
		{"Travel", "", "missing", "word column empty"},
	})

	result, err := importer.ImportWords(ctx, buf)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "unknown topic")

	food, err := topics.GetByName(ctx, "Food")
	require.NoError(t, err)
	catalog, err := words.GetByTopic(ctx, food.ID)
	require.NoError(t, err)
	assert.Len(t, catalog, 2)
}

func TestImportWordsSkipsExisting(t *testing.T) {
	importer, _, _ := newTestImporter(t)
	ctx := context.Background()

	sheet := [][]interface{}{
		{"Topic", "Word", "Translation", "Context"},
		{"Food", "pan", "bread", "Como pan."},
	}

	result, err := importer.ImportWords(ctx, buildSheet(t, sheet))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	// Re-importing the same sheet creates nothing
	result, err = importer.ImportWords(ctx, buildSheet(t, sheet))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportWordsBadFile(t *testing.T) {
	importer, _, _ := newTestImporter(t)

	_, err := importer.ImportWords(context.Background(), bytes.NewBufferString("not an xlsx"))
	assert.Error(t, err)
}
