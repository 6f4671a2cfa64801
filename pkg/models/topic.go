package models

// Topic represents a fixed vocabulary category, seeded once at startup
type Topic struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
