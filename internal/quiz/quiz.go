package quiz

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/example/linguaweb/pkg/models"
)

const (
	// QuestionCount is the maximum number of questions per quiz
	QuestionCount = 10
	// DistractorCount is the maximum number of incorrect options per question
	DistractorCount = 3
)

// Mode selects which learned words a quiz draws from
type Mode string

const (
	// Standard quizzes the most recently added learned words
	Standard Mode = "standard"
	// Repeat quizzes a random sample of all learned words
	Repeat Mode = "repeat"
)

// ErrNothingLearned means the user has no learned words for the topic yet
// and must study before taking a quiz.
var ErrNothingLearned = errors.New("no learned words for this topic")

// ErrNoQuestions guards scoring against an empty question set. Scoring zero
// questions is a precondition violation, never a 0% result.
var ErrNoQuestions = errors.New("no questions to score")

// Question is one multiple-choice question. Options hold the correct
// translation and up to DistractorCount incorrect ones, in shuffled order.
type Question struct {
	WordID  int64    `json:"id"`
	Word    string   `json:"word"`
	Options []string `json:"options"`
}

// Result is the outcome of scoring one submission
type Result struct {
	Score   float64 `json:"score"`
	Correct int     `json:"correct"`
	Total   int     `json:"total"`
}

// WordSource provides the catalog slices the engine builds questions from,
// and persistence for the issued question set so submissions are scored
// against what the server asked, not what the client answered
type WordSource interface {
	RecentLearned(ctx context.Context, userID, topicID int64, limit int) ([]models.Word, error)
	RandomLearned(ctx context.Context, userID, topicID int64, limit int) ([]models.Word, error)
	Distractors(ctx context.Context, topicID, excludeWordID int64, limit int) ([]string, error)
	ReplaceQuizSet(ctx context.Context, userID, topicID int64, wordIDs []int64) error
	QuizSet(ctx context.Context, userID, topicID int64) ([]models.Word, error)
}

// Engine builds multiple-choice quizzes from a user's learned words
type Engine struct {
	words WordSource
}

// NewEngine creates a new quiz engine
func NewEngine(words WordSource) *Engine {
	return &Engine{words: words}
}

// Build constructs a question set for a (user, topic) pair. Distractor
// selection is deterministic for a given catalog state; only the final
// option order is randomized.
func (e *Engine) Build(ctx context.Context, userID, topicID int64, mode Mode) ([]Question, error) {
	var words []models.Word
	var err error

	switch mode {
	case Repeat:
		words, err = e.words.RandomLearned(ctx, userID, topicID, QuestionCount)
	default:
		words, err = e.words.RecentLearned(ctx, userID, topicID, QuestionCount)
	}
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrNothingLearned
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	questions := make([]Question, 0, len(words))
	for _, word := range words {
		distractors, err := e.words.Distractors(ctx, topicID, word.ID, DistractorCount)
		if err != nil {
			return nil, err
		}

		// Dedup by text: another word may share this word's translation
		options := []string{word.Translation}
		for _, d := range distractors {
			if !containsOption(options, d) {
				options = append(options, d)
			}
		}
		rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, Question{
			WordID:  word.ID,
			Word:    word.Word,
			Options: options,
		})
	}

	// Remember what was asked; submissions are scored against this set
	wordIDs := make([]int64, len(words))
	for i, word := range words {
		wordIDs[i] = word.ID
	}
	if err := e.words.ReplaceQuizSet(ctx, userID, topicID, wordIDs); err != nil {
		return nil, err
	}

	return questions, nil
}

func containsOption(options []string, text string) bool {
	for _, o := range options {
		if o == text {
			return true
		}
	}
	return false
}

// ScoreSubmission grades answers against the user's open question set for
// the topic. Unanswered questions count wrong; answers for words outside
// the set are ignored. ErrNoQuestions means no quiz was issued.
func (e *Engine) ScoreSubmission(ctx context.Context, userID, topicID int64, answers map[int64]string) (Result, error) {
	words, err := e.words.QuizSet(ctx, userID, topicID)
	if err != nil {
		return Result{}, err
	}
	return Score(words, answers)
}

// Score grades a submission against the quizzed words. An answer is correct
// only on exact string match with the word's translation.
func Score(words []models.Word, answers map[int64]string) (Result, error) {
	total := len(words)
	if total == 0 {
		return Result{}, ErrNoQuestions
	}

	correct := 0
	for _, word := range words {
		if answers[word.ID] == word.Translation {
			correct++
		}
	}

	return ScoreCounts(correct, total)
}

// ScoreCounts computes a percentage result from raw counts, guarding
// against a zero-question division.
func ScoreCounts(correct, total int) (Result, error) {
	if total == 0 {
		return Result{}, ErrNoQuestions
	}
	return Result{
		Score:   float64(correct) / float64(total) * 100,
		Correct: correct,
		Total:   total,
	}, nil
}
