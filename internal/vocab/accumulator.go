package vocab

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/linguaweb/pkg/models"
)

const (
	// BatchSize is the target number of new words per accumulation attempt
	BatchSize = 10
	// MaxRounds bounds the number of generation calls per attempt so an
	// oracle that keeps returning duplicates cannot stall a request
	MaxRounds = 5
)

// ErrNothingNew means the source produced no unlearned words. This is an
// informational condition, not a failure.
var ErrNothingNew = errors.New("no new words available")

// ErrGenerationFailed means the external generation call failed. The attempt
// is rolled back and previously committed progress is untouched.
var ErrGenerationFailed = errors.New("word generation failed")

// Generator produces raw multi-line candidate text for a topic. The exclusion
// list is an advisory hint only.
type Generator interface {
	GenerateWords(ctx context.Context, topicName string, exclude []string) (string, error)
}

// Tx is one open accumulation transaction over the vocabulary catalog
type Tx interface {
	WordExists(ctx context.Context, topicID int64, word string) (bool, error)
	CreateWord(ctx context.Context, word *models.Word) error
	MergeLearnedWords(ctx context.Context, progressID int64, words []string) error
	Commit() error
	Rollback() error
}

// Store opens accumulation transactions
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Accumulator grows a user's learned set for a topic by repeatedly pulling
// from the generation source, parsing, and filtering out everything the user
// or the catalog already knows.
type Accumulator struct {
	store     Store
	generator Generator
}

// NewAccumulator creates a new accumulator
func NewAccumulator(store Store, generator Generator) *Accumulator {
	return &Accumulator{store: store, generator: generator}
}

// Collect runs one accumulation attempt for a (user, topic) pair and returns
// up to BatchSize brand-new vocabulary entries. All catalog inserts and the
// learned-set union commit atomically; any failure rolls the attempt back.
//
// learned is the user's current learned set for the topic. progressID is the
// user's progress record for the topic, created beforehand by the caller.
func (a *Accumulator) Collect(ctx context.Context, topic models.Topic, progressID int64, learned []string) ([]models.Word, error) {
	tx, err := a.store.Begin(ctx)
	if err != nil {
		return nil, err
	}

	collected, err := a.collect(ctx, tx, topic, learned)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(collected) == 0 {
		tx.Rollback()
		return nil, ErrNothingNew
	}

	newWords := make([]string, len(collected))
	for i, w := range collected {
		newWords[i] = w.Word
	}
	if err := tx.MergeLearnedWords(ctx, progressID, newWords); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return collected, nil
}

func (a *Accumulator) collect(ctx context.Context, tx Tx, topic models.Topic, learned []string) ([]models.Word, error) {
	// known covers the user's learned set plus everything seen this attempt
	known := make(map[string]bool, len(learned))
	exclude := make([]string, len(learned))
	for i, w := range learned {
		known[w] = true
		exclude[i] = w
	}

	var collected []models.Word

	for round := 0; round < MaxRounds && len(collected) < BatchSize; round++ {
		raw, err := a.generator.GenerateWords(ctx, topic.Name, exclude)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		}

		produced := 0
		for _, line := range splitLines(raw) {
			entry, ok := ParseLine(line)
			if !ok {
				continue
			}
			if known[entry.Word] {
				continue
			}

			exists, err := tx.WordExists(ctx, topic.ID, entry.Word)
			if err != nil {
				return nil, err
			}
			if exists {
				// Catalog-level dedup, independent of the user
				known[entry.Word] = true
				continue
			}

			word := models.Word{
				Word:        entry.Word,
				Translation: entry.Translation,
				Context:     entry.Context,
				TopicID:     topic.ID,
			}
			if err := tx.CreateWord(ctx, &word); err != nil {
				return nil, err
			}

			known[entry.Word] = true
			exclude = append(exclude, entry.Word)
			collected = append(collected, word)
			produced++

			if len(collected) == BatchSize {
				break
			}
		}

		// Source exhausted: a full round without a single new word means
		// retrying would only replay duplicates
		if produced == 0 {
			break
		}
	}

	return collected, nil
}
