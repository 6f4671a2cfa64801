package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/linguaweb/pkg/models"
)

// TopicRepository handles database operations for topics
type TopicRepository struct {
	db *sqlx.DB
}

// NewTopicRepository creates a new repository instance
func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// GetAll returns all topics ordered by name
func (r *TopicRepository) GetAll(ctx context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.SelectContext(ctx, &topics, "SELECT id, name FROM topics ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %w", err)
	}
	return topics, nil
}

// GetByID returns a topic by ID, or nil when no such topic exists
func (r *TopicRepository) GetByID(ctx context.Context, topicID int64) (*models.Topic, error) {
	var topic models.Topic
	query := r.db.Rebind("SELECT id, name FROM topics WHERE id = ?")
	err := r.db.GetContext(ctx, &topic, query, topicID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	return &topic, nil
}

// GetByName returns a topic by name, or nil when no such topic exists
func (r *TopicRepository) GetByName(ctx context.Context, name string) (*models.Topic, error) {
	var topic models.Topic
	query := r.db.Rebind("SELECT id, name FROM topics WHERE name = ?")
	err := r.db.GetContext(ctx, &topic, query, name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get topic by name: %w", err)
	}
	return &topic, nil
}
