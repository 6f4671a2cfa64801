package models

import (
	"database/sql"
	"time"
)

// Progress tracks one user's state for a topic or a grammar lesson.
// Exactly one of TopicID / LessonID is set. Score never decreases and the
// learned set only grows.
type Progress struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	TopicID   sql.NullInt64 `json:"topic_id" db:"topic_id"`
	LessonID  sql.NullInt64 `json:"lesson_id" db:"lesson_id"`
	Score     float64       `json:"score" db:"score"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}
