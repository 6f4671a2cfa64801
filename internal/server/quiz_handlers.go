package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/linguaweb/internal/quiz"
)

// buildQuiz returns a question set for a topic. mode=repeat samples randomly
// from all learned words; the default quizzes the most recently added ones.
func (s *Server) buildQuiz(c *gin.Context) {
	userID := currentUserID(c)

	topic, ok := s.topicFromPath(c)
	if !ok {
		return
	}

	mode := quiz.Standard
	if c.Query("mode") == string(quiz.Repeat) {
		mode = quiz.Repeat
	}

	questions, err := s.quizzes.Build(c.Request.Context(), userID, topic.ID, mode)
	if err != nil {
		if errors.Is(err, quiz.ErrNothingLearned) {
			c.JSON(http.StatusConflict, gin.H{"error": "study this topic first"})
			return
		}
		s.log.Error("failed to build quiz", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":     topic,
		"questions": questions,
	})
}

type submitQuizRequest struct {
	// Answers maps question (word) IDs to the chosen translation
	Answers map[string]string `json:"answers" binding:"required"`
}

// submitQuiz scores a submission and merges the result into the user's
// progress for the topic. The stored score never decreases.
func (s *Server) submitQuiz(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	topic, ok := s.topicFromPath(c)
	if !ok {
		return
	}

	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make(map[int64]string, len(req.Answers))
	for key, answer := range req.Answers {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id: " + key})
			return
		}
		answers[id] = answer
	}

	// Scored against the issued question set, so unanswered questions
	// count wrong and extra IDs in the submission are ignored
	result, err := s.quizzes.ScoreSubmission(ctx, userID, topic.ID, answers)
	if err != nil {
		if errors.Is(err, quiz.ErrNoQuestions) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no quiz to score, request one first"})
			return
		}
		s.log.Error("failed to score quiz", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	progress, err := s.progress.GetOrCreateTopic(ctx, userID, topic.ID)
	if err != nil {
		s.log.Error("failed to get progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if err := s.progress.MergeScore(ctx, progress.ID, result.Score); err != nil {
		s.log.Error("failed to merge score", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
