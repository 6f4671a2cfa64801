package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/linguaweb/internal/ai"
	"github.com/example/linguaweb/internal/config"
	"github.com/example/linguaweb/internal/database"
	"github.com/example/linguaweb/internal/excel"
	"github.com/example/linguaweb/internal/quiz"
	"github.com/example/linguaweb/internal/scheduler"
	"github.com/example/linguaweb/internal/server"
	"github.com/example/linguaweb/internal/session"
	"github.com/example/linguaweb/internal/vocab"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.SeedTopics(context.Background(), db); err != nil {
		logger.Fatal("failed to seed topics", zap.Error(err))
	}

	// Repositories
	users := database.NewUserRepository(db)
	topics := database.NewTopicRepository(db)
	words := database.NewWordRepository(db)
	progress := database.NewProgressRepository(db)
	sessionRepo := database.NewSessionRepository(db)
	vocabStore := database.NewVocabStore(db)

	// Domain components
	chatgpt := ai.New(cfg.OpenAI)
	accumulator := vocab.NewAccumulator(vocabStore, chatgpt)
	quizzes := quiz.NewEngine(words)
	sessions := session.NewManager(sessionRepo, cfg.Session.TTL)
	importer := excel.NewImporter(topics, words)

	srv := server.New(server.Deps{
		Log:         logger,
		Users:       users,
		Topics:      topics,
		Words:       words,
		Progress:    progress,
		Sessions:    sessions,
		Accumulator: accumulator,
		Quizzes:     quizzes,
		LessonGen:   chatgpt,
		Importer:    importer,
	})

	// Periodic maintenance
	jobs := scheduler.New(sessionRepo, logger)
	jobs.Start()
	defer jobs.Stop()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	address := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    address,
		Handler: srv.Router(),
	}

	go func() {
		logger.Info("server started", zap.String("address", address), zap.String("env", cfg.Server.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for a termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
