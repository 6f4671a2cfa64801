package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaweb/internal/vocab"
	"github.com/example/linguaweb/pkg/models"
)

// VocabStore exposes the vocabulary catalog behind a transactional boundary.
// One accumulation attempt maps onto one transaction: every word created and
// every learned-set union either commits as a unit or rolls back as a unit.
type VocabStore struct {
	db *sqlx.DB
}

// NewVocabStore creates a new store instance
func NewVocabStore(db *sqlx.DB) *VocabStore {
	return &VocabStore{db: db}
}

// Begin opens a transaction for one accumulation attempt
func (s *VocabStore) Begin(ctx context.Context) (vocab.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	return &VocabTx{tx: tx, driver: s.db.DriverName()}, nil
}

// VocabTx is one open accumulation transaction
type VocabTx struct {
	tx     *sqlx.Tx
	driver string
}

// WordExists reports whether a word text is already in the catalog for a topic
func (t *VocabTx) WordExists(ctx context.Context, topicID int64, word string) (bool, error) {
	var count int
	query := t.tx.Rebind("SELECT COUNT(*) FROM words WHERE topic_id = ? AND word = ?")
	err := t.tx.GetContext(ctx, &count, query, topicID, word)
	if err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}
	return count > 0, nil
}

// CreateWord inserts a new vocabulary entry
func (t *VocabTx) CreateWord(ctx context.Context, word *models.Word) error {
	return createWord(ctx, t.tx, t.driver, word)
}

// MergeLearnedWords unions word texts into the learned set of a progress record
func (t *VocabTx) MergeLearnedWords(ctx context.Context, progressID int64, words []string) error {
	return mergeLearnedWords(ctx, t.tx, t.driver, progressID, words)
}

// Commit makes the attempt's writes visible
func (t *VocabTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards the attempt's writes
func (t *VocabTx) Rollback() error {
	return t.tx.Rollback()
}
