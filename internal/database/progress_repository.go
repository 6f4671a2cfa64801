package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaweb/pkg/models"
)

// ProgressRepository handles database operations for progress records.
// A record is keyed by (user, topic) or by (user, lesson), never both.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository creates a new repository instance
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetTopic returns the progress record for a (user, topic) pair,
// or nil when none exists yet
func (r *ProgressRepository) GetTopic(ctx context.Context, userID, topicID int64) (*models.Progress, error) {
	return r.get(ctx, "topic_id", userID, topicID)
}

// GetLesson returns the progress record for a (user, lesson) pair,
// or nil when none exists yet
func (r *ProgressRepository) GetLesson(ctx context.Context, userID, lessonID int64) (*models.Progress, error) {
	return r.get(ctx, "lesson_id", userID, lessonID)
}

func (r *ProgressRepository) get(ctx context.Context, keyColumn string, userID, keyID int64) (*models.Progress, error) {
	var progress models.Progress
	query := r.db.Rebind(fmt.Sprintf(
		"SELECT * FROM progress WHERE user_id = ? AND %s = ?", keyColumn))
	err := r.db.GetContext(ctx, &progress, query, userID, keyID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &progress, nil
}

// GetOrCreateTopic returns the progress record for a (user, topic) pair,
// creating an empty one when none exists yet
func (r *ProgressRepository) GetOrCreateTopic(ctx context.Context, userID, topicID int64) (*models.Progress, error) {
	return r.getOrCreate(ctx, "topic_id", userID, topicID)
}

// GetOrCreateLesson returns the progress record for a (user, lesson) pair,
// creating an empty one when none exists yet
func (r *ProgressRepository) GetOrCreateLesson(ctx context.Context, userID, lessonID int64) (*models.Progress, error) {
	return r.getOrCreate(ctx, "lesson_id", userID, lessonID)
}

func (r *ProgressRepository) getOrCreate(ctx context.Context, keyColumn string, userID, keyID int64) (*models.Progress, error) {
	progress, err := r.get(ctx, keyColumn, userID, keyID)
	if err != nil || progress != nil {
		return progress, err
	}

	if r.db.DriverName() == "postgres" {
		// Conflict-ignoring insert so concurrent first interactions for the
		// same pair cannot race.
		query := fmt.Sprintf(`
			INSERT INTO progress (user_id, %s, score)
			VALUES ($1, $2, 0)
			ON CONFLICT (user_id, %s) DO NOTHING
		`, keyColumn, keyColumn)
		if _, err := r.db.ExecContext(ctx, query, userID, keyID); err != nil {
			return nil, fmt.Errorf("failed to create progress: %w", err)
		}
	} else {
		query := fmt.Sprintf(`
			INSERT OR IGNORE INTO progress (user_id, %s, score)
			VALUES (?, ?, 0)
		`, keyColumn)
		if _, err := r.db.ExecContext(ctx, query, userID, keyID); err != nil {
			return nil, fmt.Errorf("failed to create progress: %w", err)
		}
	}

	return r.get(ctx, keyColumn, userID, keyID)
}

// MergeScore raises the stored score to newScore if it is higher.
// The score never decreases.
func (r *ProgressRepository) MergeScore(ctx context.Context, progressID int64, newScore float64) error {
	var query string
	if r.db.DriverName() == "postgres" {
		query = `
			UPDATE progress
			SET score = GREATEST(score, $1), updated_at = NOW()
			WHERE id = $2
		`
	} else {
		query = `
			UPDATE progress
			SET score = MAX(score, ?), updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`
	}
	if _, err := r.db.ExecContext(ctx, query, newScore, progressID); err != nil {
		return fmt.Errorf("failed to merge score: %w", err)
	}
	return nil
}

// LearnedWords returns the learned word texts for a progress record
func (r *ProgressRepository) LearnedWords(ctx context.Context, progressID int64) ([]string, error) {
	var words []string
	query := r.db.Rebind("SELECT word FROM learned_words WHERE progress_id = ? ORDER BY id")
	err := r.db.SelectContext(ctx, &words, query, progressID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learned words: %w", err)
	}
	return words, nil
}

// MergeLearnedWords unions newWords into the learned set of a progress record.
// Already-present words are ignored, so the call is idempotent.
func (r *ProgressRepository) MergeLearnedWords(ctx context.Context, progressID int64, newWords []string) error {
	return mergeLearnedWords(ctx, r.db, r.db.DriverName(), progressID, newWords)
}

// mergeLearnedWords unions words using either the pool or an open transaction
func mergeLearnedWords(ctx context.Context, ext sqlx.ExtContext, driver string, progressID int64, newWords []string) error {
	var query string
	if driver == "postgres" {
		query = `
			INSERT INTO learned_words (progress_id, word)
			VALUES ($1, $2)
			ON CONFLICT (progress_id, word) DO NOTHING
		`
	} else {
		query = `
			INSERT OR IGNORE INTO learned_words (progress_id, word)
			VALUES (?, ?)
		`
	}

	for _, word := range newWords {
		if _, err := ext.ExecContext(ctx, query, progressID, word); err != nil {
			return fmt.Errorf("failed to merge learned word %q: %w", word, err)
		}
	}
	return nil
}
