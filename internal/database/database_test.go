package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/linguaweb/internal/config"
	"github.com/example/linguaweb/pkg/models"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Connect(config.DatabaseConfig{Type: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, SeedTopics(context.Background(), db))
	return db
}

func newTestUser(t *testing.T, db *sqlx.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Username: "tester", Email: email, PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func topicByName(t *testing.T, db *sqlx.DB, name string) *models.Topic {
	t.Helper()

	topic, err := NewTopicRepository(db).GetByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, topic)
	return topic
}

func TestSeedTopics(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	topics, err := NewTopicRepository(db).GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, len(DefaultTopics))

	// Seeding again must not duplicate the list
	require.NoError(t, SeedTopics(ctx, db))
	topics, err = NewTopicRepository(db).GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, topics, len(DefaultTopics))
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	newTestUser(t, db, "a@example.com")

	err := repo.Create(ctx, &models.User{Username: "other", Email: "a@example.com", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	db := newTestDB(t)

	user, err := NewUserRepository(db).GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestWordRepository_PerTopicUniqueness(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewWordRepository(db)
	food := topicByName(t, db, "Food")
	travel := topicByName(t, db, "Travel")

	word := &models.Word{Word: "pan", Translation: "bread", Context: "Como pan.", TopicID: food.ID}
	require.NoError(t, repo.Create(ctx, word))
	assert.NotZero(t, word.ID)

	exists, err := repo.ExistsInTopic(ctx, food.ID, "pan")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same word text in another topic is a different entry
	exists, err = repo.ExistsInTopic(ctx, travel.ID, "pan")
	require.NoError(t, err)
	assert.False(t, exists)

	other := &models.Word{Word: "pan", Translation: "bread", Context: "El pan del viaje.", TopicID: travel.ID}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestWordRepository_Distractors(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewWordRepository(db)
	food := topicByName(t, db, "Food")

	texts := []string{"pan", "queso", "vino", "agua", "sal"}
	ids := make([]int64, len(texts))
	for i, text := range texts {
		w := &models.Word{Word: text, Translation: text + "-en", Context: "Frase.", TopicID: food.ID}
		require.NoError(t, repo.Create(ctx, w))
		ids[i] = w.ID
	}

	distractors, err := repo.Distractors(ctx, food.ID, ids[0], 3)
	require.NoError(t, err)
	// Stable id order, the quizzed word excluded
	assert.Equal(t, []string{"queso-en", "vino-en", "agua-en"}, distractors)

	// Deterministic for the same catalog state
	again, err := repo.Distractors(ctx, food.ID, ids[0], 3)
	require.NoError(t, err)
	assert.Equal(t, distractors, again)
}

func TestWordRepository_QuizSet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewWordRepository(db)
	user := newTestUser(t, db, "q@example.com")
	food := topicByName(t, db, "Food")

	ids := make([]int64, 3)
	for i, text := range []string{"pan", "queso", "vino"} {
		w := &models.Word{Word: text, Translation: text + "-en", Context: "Frase.", TopicID: food.ID}
		require.NoError(t, repo.Create(ctx, w))
		ids[i] = w.ID
	}

	empty, err := repo.QuizSet(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.ReplaceQuizSet(ctx, user.ID, food.ID, []int64{ids[2], ids[0]}))
	set, err := repo.QuizSet(ctx, user.ID, food.ID)
	require.NoError(t, err)
	require.Len(t, set, 2)
	// Issue order is preserved
	assert.Equal(t, ids[2], set[0].ID)
	assert.Equal(t, ids[0], set[1].ID)

	// A new quiz replaces the old set entirely
	require.NoError(t, repo.ReplaceQuizSet(ctx, user.ID, food.ID, []int64{ids[1]}))
	set, err = repo.QuizSet(ctx, user.ID, food.ID)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, ids[1], set[0].ID)
}

func TestProgressRepository_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProgressRepository(db)
	user := newTestUser(t, db, "p@example.com")
	food := topicByName(t, db, "Food")

	missing, err := repo.GetTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	progress, err := repo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, 0.0, progress.Score)

	// A second call returns the same record
	same, err := repo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, progress.ID, same.ID)
}

func TestProgressRepository_TopicAndLessonIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProgressRepository(db)
	user := newTestUser(t, db, "p2@example.com")
	food := topicByName(t, db, "Food")

	topicRec, err := repo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	lessonRec, err := repo.GetOrCreateLesson(ctx, user.ID, 1)
	require.NoError(t, err)

	assert.NotEqual(t, topicRec.ID, lessonRec.ID)
	require.NoError(t, repo.MergeScore(ctx, lessonRec.ID, 60))

	topicRec, err = repo.GetTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, topicRec.Score)
}

func TestProgressRepository_MergeScoreMonotonic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProgressRepository(db)
	user := newTestUser(t, db, "s@example.com")
	food := topicByName(t, db, "Food")

	progress, err := repo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)

	require.NoError(t, repo.MergeScore(ctx, progress.ID, 75))
	progress, err = repo.GetTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, progress.Score)

	// A worse attempt never lowers the score
	require.NoError(t, repo.MergeScore(ctx, progress.ID, 40))
	progress, err = repo.GetTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 75.0, progress.Score)

	require.NoError(t, repo.MergeScore(ctx, progress.ID, 90))
	progress, err = repo.GetTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, progress.Score)
}

func TestProgressRepository_MergeLearnedWordsUnion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProgressRepository(db)
	user := newTestUser(t, db, "u@example.com")
	food := topicByName(t, db, "Food")

	progress, err := repo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)

	require.NoError(t, repo.MergeLearnedWords(ctx, progress.ID, []string{"pan", "queso"}))
	require.NoError(t, repo.MergeLearnedWords(ctx, progress.ID, []string{"queso", "vino"}))

	learned, err := repo.LearnedWords(ctx, progress.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pan", "queso", "vino"}, learned)
}

func TestWordRepository_LearnedQueries(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	words := NewWordRepository(db)
	progressRepo := NewProgressRepository(db)
	user := newTestUser(t, db, "l@example.com")
	food := topicByName(t, db, "Food")

	texts := []string{"pan", "queso", "vino"}
	for _, text := range texts {
		w := &models.Word{Word: text, Translation: text + "-en", Context: "Frase.", TopicID: food.ID}
		require.NoError(t, words.Create(ctx, w))
	}

	progress, err := progressRepo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)
	require.NoError(t, progressRepo.MergeLearnedWords(ctx, progress.ID, []string{"pan", "vino"}))

	recent, err := words.RecentLearned(ctx, user.ID, food.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Most recently added first
	assert.Equal(t, "vino", recent[0].Word)
	assert.Equal(t, "pan", recent[1].Word)

	sample, err := words.RandomLearned(ctx, user.ID, food.ID, 1)
	require.NoError(t, err)
	assert.Len(t, sample, 1)

	all, err := words.AllLearned(ctx, user.ID, food.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestVocabStore_RollbackDiscardsAttempt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewVocabStore(db)
	words := NewWordRepository(db)
	food := topicByName(t, db, "Food")

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	w := &models.Word{Word: "pan", Translation: "bread", Context: "Frase.", TopicID: food.ID}
	require.NoError(t, tx.CreateWord(ctx, w))
	require.NoError(t, tx.Rollback())

	exists, err := words.ExistsInTopic(ctx, food.ID, "pan")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestVocabStore_CommitPersistsAttempt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	store := NewVocabStore(db)
	progressRepo := NewProgressRepository(db)
	user := newTestUser(t, db, "v@example.com")
	food := topicByName(t, db, "Food")

	progress, err := progressRepo.GetOrCreateTopic(ctx, user.ID, food.ID)
	require.NoError(t, err)

	tx, err := store.Begin(ctx)
	require.NoError(t, err)

	w := &models.Word{Word: "pan", Translation: "bread", Context: "Frase.", TopicID: food.ID}
	require.NoError(t, tx.CreateWord(ctx, w))

	exists, err := tx.WordExists(ctx, food.ID, "pan")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, tx.MergeLearnedWords(ctx, progress.ID, []string{"pan"}))
	require.NoError(t, tx.Commit())

	learned, err := progressRepo.LearnedWords(ctx, progress.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pan"}, learned)
}

func TestSessionRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewSessionRepository(db)
	user := newTestUser(t, db, "sess@example.com")

	live := &models.Session{Token: "live-token", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	expired := &models.Session{Token: "old-token", UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, expired))

	got, err := repo.GetByToken(ctx, "live-token")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.UserID)

	deleted, err := repo.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	gone, err := repo.GetByToken(ctx, "old-token")
	require.NoError(t, err)
	assert.Nil(t, gone)
}
