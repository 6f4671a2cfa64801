package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/linguaweb/internal/vocab"
	"github.com/example/linguaweb/pkg/models"
)

type learnedWordView struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

type topicProgressView struct {
	TopicID      int64             `json:"topic_id"`
	Topic        string            `json:"topic"`
	Score        float64           `json:"score"`
	LearnedWords []learnedWordView `json:"learned_words"`
}

// dashboard returns every topic together with the user's progress in it
func (s *Server) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	topics, err := s.topics.GetAll(ctx)
	if err != nil {
		s.log.Error("failed to get topics", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	progressList := make([]topicProgressView, 0, len(topics))
	for _, topic := range topics {
		progress, err := s.progress.GetTopic(ctx, userID, topic.ID)
		if err != nil {
			s.log.Error("failed to get progress", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if progress == nil {
			continue
		}

		learned, err := s.words.AllLearned(ctx, userID, topic.ID)
		if err != nil {
			s.log.Error("failed to get learned words", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		view := topicProgressView{
			TopicID:      topic.ID,
			Topic:        topic.Name,
			Score:        progress.Score,
			LearnedWords: make([]learnedWordView, len(learned)),
		}
		for i, w := range learned {
			view.LearnedWords[i] = learnedWordView{Word: w.Word, Translation: w.Translation}
		}
		progressList = append(progressList, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"topics":   topics,
		"progress": progressList,
	})
}

// study runs one accumulation attempt for the requested topic and returns
// the newly learned words
func (s *Server) study(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)

	topic, ok := s.topicFromPath(c)
	if !ok {
		return
	}

	progress, err := s.progress.GetOrCreateTopic(ctx, userID, topic.ID)
	if err != nil {
		s.log.Error("failed to get progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	learned, err := s.progress.LearnedWords(ctx, progress.ID)
	if err != nil {
		s.log.Error("failed to get learned words", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	newWords, err := s.accumulator.Collect(ctx, *topic, progress.ID, learned)
	if err != nil {
		switch {
		case errors.Is(err, vocab.ErrNothingNew):
			c.JSON(http.StatusOK, gin.H{
				"topic":   topic,
				"message": "no new words available, you've learned everything",
			})
		case errors.Is(err, vocab.ErrGenerationFailed):
			s.log.Warn("word generation failed",
				zap.Int64("topic_id", topic.ID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "word generation failed, please try again"})
		default:
			s.log.Error("accumulation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":     topic,
		"new_words": newWords,
	})
}

// topicFromPath resolves the :id path parameter to a topic, writing the
// error response itself when resolution fails
func (s *Server) topicFromPath(c *gin.Context) (*models.Topic, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid topic id"})
		return nil, false
	}

	topic, err := s.topics.GetByID(c.Request.Context(), id)
	if err != nil {
		s.log.Error("failed to get topic", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	if topic == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "topic not found"})
		return nil, false
	}
	return topic, true
}
