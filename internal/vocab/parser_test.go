package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	entry, ok := ParseLine("hola - hello - Hola, amigo")

	assert.True(t, ok)
	assert.Equal(t, "hola", entry.Word)
	assert.Equal(t, "hello", entry.Translation)
	assert.Equal(t, "Hola, amigo", entry.Context)
}

func TestParseLine_NoDelimiters(t *testing.T) {
	_, ok := ParseLine("invalid line no dashes")
	assert.False(t, ok)
}

func TestParseLine_TwoSegments(t *testing.T) {
	_, ok := ParseLine("hola - hello")
	assert.False(t, ok)
}

func TestParseLine_TrailingSegmentsCollapse(t *testing.T) {
	entry, ok := ParseLine("hola - hello - Hola - ¿qué tal?")

	assert.True(t, ok)
	assert.Equal(t, "hola", entry.Word)
	assert.Equal(t, "hello", entry.Translation)
	assert.Equal(t, "Hola - ¿qué tal?", entry.Context)
}

func TestParseLine_EmptySegment(t *testing.T) {
	_, ok := ParseLine(" - hello - Hola")
	assert.False(t, ok)
}

func TestParseLessonLine(t *testing.T) {
	entry, ok := ParseLessonLine("привет (hello) - hola - Hola amigo")

	assert.True(t, ok)
	assert.Equal(t, "привет (hello)", entry.Word)
	assert.Equal(t, "hola", entry.Translation)
	assert.Equal(t, "Hola amigo", entry.Context)
}

func TestParseLessonLine_MissingNestedTranslation(t *testing.T) {
	_, ok := ParseLessonLine("привет - hola - Hola amigo")
	assert.False(t, ok)
}

func TestParseLessonLine_EmptyParentheses(t *testing.T) {
	_, ok := ParseLessonLine("привет () - hola - Hola amigo")
	assert.False(t, ok)
}

func TestParseLessonExamples(t *testing.T) {
	raw := "привет (hello) - hola - Hola amigo\n" +
		"malformed line\n" +
		"пока (bye) - adiós - Adiós amigo\n" +
		"привет (hello) - hola - duplicate\n" +
		"уже (already) - ya - Ya aprendido\n"

	entries := ParseLessonExamples(raw, []string{"уже (already)"})

	assert.Len(t, entries, 2)
	assert.Equal(t, "привет (hello)", entries[0].Word)
	assert.Equal(t, "пока (bye)", entries[1].Word)
}
