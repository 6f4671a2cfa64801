package server

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/linguaweb/internal/database"
	"github.com/example/linguaweb/internal/excel"
	"github.com/example/linguaweb/internal/quiz"
	"github.com/example/linguaweb/internal/session"
	"github.com/example/linguaweb/internal/vocab"
)

// LessonGenerator produces example phrases for a grammar lesson
type LessonGenerator interface {
	GenerateLessonExamples(ctx context.Context, lessonTitle string, exclude []string) (string, error)
}

// Server wires repositories and domain components into HTTP handlers
type Server struct {
	log         *zap.Logger
	users       *database.UserRepository
	topics      *database.TopicRepository
	words       *database.WordRepository
	progress    *database.ProgressRepository
	sessions    *session.Manager
	accumulator *vocab.Accumulator
	quizzes     *quiz.Engine
	lessonGen   LessonGenerator
	importer    *excel.Importer
}

// Deps bundles everything a Server needs
type Deps struct {
	Log         *zap.Logger
	Users       *database.UserRepository
	Topics      *database.TopicRepository
	Words       *database.WordRepository
	Progress    *database.ProgressRepository
	Sessions    *session.Manager
	Accumulator *vocab.Accumulator
	Quizzes     *quiz.Engine
	LessonGen   LessonGenerator
	Importer    *excel.Importer
}

// New creates a new server
func New(deps Deps) *Server {
	return &Server{
		log:         deps.Log,
		users:       deps.Users,
		topics:      deps.Topics,
		words:       deps.Words,
		progress:    deps.Progress,
		sessions:    deps.Sessions,
		accumulator: deps.Accumulator,
		quizzes:     deps.Quizzes,
		lessonGen:   deps.LessonGen,
		importer:    deps.Importer,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/register", s.register)
	router.POST("/login", s.login)

	authed := router.Group("/", s.authRequired())
	{
		authed.POST("/logout", s.logout)
		authed.GET("/dashboard", s.dashboard)

		authed.POST("/topics/:id/study", s.study)
		authed.GET("/topics/:id/quiz", s.buildQuiz)
		authed.POST("/topics/:id/quiz", s.submitQuiz)

		authed.GET("/lessons", s.listLessons)
		authed.GET("/lessons/:id", s.getLesson)
		authed.POST("/lessons/:id/study", s.studyLesson)
		authed.POST("/lessons/:id/quiz", s.submitLessonQuiz)

		authed.POST("/admin/import", s.importWords)
	}

	return router
}
