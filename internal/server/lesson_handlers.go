package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/linguaweb/internal/lessons"
	"github.com/example/linguaweb/internal/quiz"
	"github.com/example/linguaweb/internal/vocab"
)

type lessonView struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Summary string  `json:"summary"`
	Score   float64 `json:"score"`
}

// listLessons returns the static lesson catalog with the user's best score
// per lesson
func (s *Server) listLessons(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	catalog := lessons.All()
	views := make([]lessonView, len(catalog))
	for i, lesson := range catalog {
		views[i] = lessonView{ID: lesson.ID, Title: lesson.Title, Summary: lesson.Summary}

		progress, err := s.progress.GetLesson(ctx, userID, lesson.ID)
		if err != nil {
			s.log.Error("failed to get lesson progress", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if progress != nil {
			views[i].Score = progress.Score
		}
	}

	c.JSON(http.StatusOK, gin.H{"lessons": views})
}

func (s *Server) getLesson(c *gin.Context) {
	lesson, ok := s.lessonFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// studyLesson generates example phrases for a grammar lesson. The stricter
// nested line format applies; word texts are unioned into the lesson's
// learned set.
func (s *Server) studyLesson(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	lesson, ok := s.lessonFromPath(c)
	if !ok {
		return
	}

	progress, err := s.progress.GetOrCreateLesson(ctx, userID, lesson.ID)
	if err != nil {
		s.log.Error("failed to get lesson progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	learned, err := s.progress.LearnedWords(ctx, progress.ID)
	if err != nil {
		s.log.Error("failed to get learned words", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	raw, err := s.lessonGen.GenerateLessonExamples(ctx, lesson.Title, learned)
	if err != nil {
		s.log.Warn("lesson example generation failed",
			zap.Int64("lesson_id", lesson.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "example generation failed, please try again"})
		return
	}

	entries := vocab.ParseLessonExamples(raw, learned)
	if len(entries) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"lesson":  lesson.Title,
			"message": "no new examples available",
		})
		return
	}

	words := make([]string, len(entries))
	for i, entry := range entries {
		words[i] = entry.Word
	}
	if err := s.progress.MergeLearnedWords(ctx, progress.ID, words); err != nil {
		s.log.Error("failed to merge learned words", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson":   lesson.Title,
		"examples": entries,
	})
}

type submitLessonQuizRequest struct {
	// Answers maps exercise IDs to the chosen option
	Answers map[string]string `json:"answers" binding:"required"`
}

// submitLessonQuiz grades a lesson's exercises and merges the result into
// the user's lesson score
func (s *Server) submitLessonQuiz(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	lesson, ok := s.lessonFromPath(c)
	if !ok {
		return
	}

	var req submitLessonQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make(map[int64]string, len(req.Answers))
	for key, answer := range req.Answers {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid exercise id: " + key})
			return
		}
		answers[id] = answer
	}

	correct, total := lessons.ScoreExercises(lesson, answers)
	result, err := quiz.ScoreCounts(correct, total)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no questions to score"})
		return
	}

	progress, err := s.progress.GetOrCreateLesson(ctx, userID, lesson.ID)
	if err != nil {
		s.log.Error("failed to get lesson progress", zap.Error(err))
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

// lessonFromPath resolves the :id path parameter to a lesson, writing the
// error response itself when resolution fails
func (s *Server) lessonFromPath(c *gin.Context) (*lessons.Lesson, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson id"})
		return nil, false
	}

	lesson := lessons.ByID(id)
	if lesson == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return nil, false
	}
	return lesson, true
}
