package vocab

import "strings"

// delimiter separating word, translation and context in a generated line
const delimiter = "-"

// Entry is one parsed (word, translation, context) triple
type Entry struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Context     string `json:"context"`
}

// ParseLine splits one line of generated text into a (word, translation,
// context) triple. Segments beyond the third are collapsed into the context.
// Malformed lines are expected model output, so the failure mode is a false
// ok flag rather than an error.
func ParseLine(line string) (Entry, bool) {
	parts := strings.SplitN(line, delimiter, 3)
	if len(parts) < 3 {
		return Entry{}, false
	}

	entry := Entry{
		Word:        strings.TrimSpace(parts[0]),
		Translation: strings.TrimSpace(parts[1]),
		Context:     strings.TrimSpace(parts[2]),
	}
	if entry.Word == "" || entry.Translation == "" || entry.Context == "" {
		return Entry{}, false
	}
	return entry, true
}

// ParseLessonLine parses one line of generated grammar-lesson text. On top
// of the ParseLine contract, the first segment must carry a nested
// parenthesized translation, e.g. "привет (hello)".
func ParseLessonLine(line string) (Entry, bool) {
	entry, ok := ParseLine(line)
	if !ok {
		return Entry{}, false
	}

	open := strings.Index(entry.Word, "(")
	if open <= 0 {
		return Entry{}, false
	}
	closing := strings.Index(entry.Word[open:], ")")
	if closing <= 1 {
		return Entry{}, false
	}
	return entry, true
}

// ParseLessonExamples filters raw lesson text down to well-formed entries in
// the strict nested format, skipping duplicates and already-learned words.
func ParseLessonExamples(raw string, learned []string) []Entry {
	known := make(map[string]bool, len(learned))
	for _, w := range learned {
		known[w] = true
	}

	var entries []Entry
	for _, line := range splitLines(raw) {
		entry, ok := ParseLessonLine(line)
		if !ok {
			continue
		}
		if known[entry.Word] {
			continue
		}
		known[entry.Word] = true
		entries = append(entries, entry)
	}
	return entries
}

// splitLines breaks raw generated text into trimmed non-empty lines
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
