package models

import "time"

// Word represents one vocabulary fact scoped to a topic.
// Rows are append-only; word text is unique within its topic.
type Word struct {
	ID          int64     `json:"id" db:"id"`
	Word        string    `json:"word" db:"word"`
	Translation string    `json:"translation" db:"translation"`
	Context     string    `json:"context" db:"context"`
	TopicID     int64     `json:"topic_id" db:"topic_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
