package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaweb/pkg/models"
)

// WordRepository handles database operations for vocabulary entries
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetByTopic returns all words for a specific topic
func (r *WordRepository) GetByTopic(ctx context.Context, topicID int64) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind("SELECT * FROM words WHERE topic_id = ? ORDER BY id")
	err := r.db.SelectContext(ctx, &words, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get words by topic: %w", err)
	}
	return words, nil
}

// ExistsInTopic reports whether a word text is already present in a topic
func (r *WordRepository) ExistsInTopic(ctx context.Context, topicID int64, word string) (bool, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM words WHERE topic_id = ? AND word = ?")
	err := r.db.GetContext(ctx, &count, query, topicID, word)
	if err != nil {
		return false, fmt.Errorf("failed to check word existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	return createWord(ctx, r.db, r.db.DriverName(), word)
}

// RecentLearned returns up to limit of the user's learned words for a topic,
// most recently added first.
func (r *WordRepository) RecentLearned(ctx context.Context, userID, topicID int64, limit int) ([]models.Word, error) {
	return r.learnedWords(ctx, userID, topicID, limit, "w.id DESC")
}

// AllLearned returns every learned word of a user for a topic, oldest first
func (r *WordRepository) AllLearned(ctx context.Context, userID, topicID int64) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(`
		SELECT w.*
		FROM words w
		JOIN learned_words lw ON lw.word = w.word
		JOIN progress p ON p.id = lw.progress_id
		WHERE p.user_id = ? AND p.topic_id = ? AND w.topic_id = ?
		ORDER BY w.id
	`)
	err := r.db.SelectContext(ctx, &words, query, userID, topicID, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get learned words: %w", err)
	}
	return words, nil
}

// RandomLearned returns a random sample of up to limit learned words for a topic
func (r *WordRepository) RandomLearned(ctx context.Context, userID, topicID int64, limit int) ([]models.Word, error) {
	return r.learnedWords(ctx, userID, topicID, limit, "RANDOM()")
}

func (r *WordRepository) learnedWords(ctx context.Context, userID, topicID int64, limit int, order string) ([]models.Word, error) {
	var words []models.Word
	query := fmt.Sprintf(`
		SELECT w.*
		FROM words w
		JOIN learned_words lw ON lw.word = w.word
		JOIN progress p ON p.id = lw.progress_id
		WHERE p.user_id = ? AND p.topic_id = ? AND w.topic_id = ?
		ORDER BY %s
		LIMIT ?
	`, order)
	err := r.db.SelectContext(ctx, &words, r.db.Rebind(query), userID, topicID, topicID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get learned words: %w", err)
	}
	return words, nil
}

// ReplaceQuizSet records the question set issued to a user for a topic,
// replacing any previously open set.
func (r *WordRepository) ReplaceQuizSet(ctx context.Context, userID, topicID int64, wordIDs []int64) error {
	deleteQuery := r.db.Rebind("DELETE FROM quiz_words WHERE user_id = ? AND topic_id = ?")
	if _, err := r.db.ExecContext(ctx, deleteQuery, userID, topicID); err != nil {
		return fmt.Errorf("failed to clear quiz set: %w", err)
	}

	insertQuery := r.db.Rebind(
		"INSERT INTO quiz_words (user_id, topic_id, word_id) VALUES (?, ?, ?)")
	for _, wordID := range wordIDs {
		if _, err := r.db.ExecContext(ctx, insertQuery, userID, topicID, wordID); err != nil {
			return fmt.Errorf("failed to save quiz set: %w", err)
		}
	}
	return nil
}

// QuizSet returns the words of the user's open question set for a topic,
// in issue order. Empty when no quiz was issued.
func (r *WordRepository) QuizSet(ctx context.Context, userID, topicID int64) ([]models.Word, error) {
	var words []models.Word
	query := r.db.Rebind(`
		SELECT w.*
		FROM words w
		JOIN quiz_words qw ON qw.word_id = w.id
		WHERE qw.user_id = ? AND qw.topic_id = ?
		ORDER BY qw.id
	`)
	err := r.db.SelectContext(ctx, &words, query, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz set: %w", err)
	}
	return words, nil
}

// Distractors returns up to limit translations of other words from the same
// topic. Selection order is stable (by id) so option composition is
// reproducible for a given catalog state.
func (r *WordRepository) Distractors(ctx context.Context, topicID, excludeWordID int64, limit int) ([]string, error) {
	var translations []string
	query := r.db.Rebind(`
		SELECT translation FROM words
		WHERE topic_id = ? AND id <> ?
		ORDER BY id
		LIMIT ?
	`)
	err := r.db.SelectContext(ctx, &translations, query, topicID, excludeWordID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get distractors: %w", err)
	}
	return translations, nil
}

// createWord inserts a word using either the pool or an open transaction
func createWord(ctx context.Context, ext sqlx.ExtContext, driver string, word *models.Word) error {
	if driver == "postgres" {
		query := `
			INSERT INTO words (word, translation, context, topic_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		err := ext.QueryRowxContext(ctx, query,
			word.Word, word.Translation, word.Context, word.TopicID,
		).Scan(&word.ID, &word.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create word: %w", err)
		}
		return nil
	}

	// SQLite path (no RETURNING)
	result, err := ext.ExecContext(ctx, `
		INSERT INTO words (word, translation, context, topic_id)
		VALUES (?, ?, ?, ?)
	`, word.Word, word.Translation, word.Context, word.TopicID)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	word.ID = id

	return sqlx.GetContext(ctx, ext, &word.CreatedAt,
		"SELECT created_at FROM words WHERE id = ?", word.ID)
}
