package models

import "time"

// Student represents a child being assessed.
type Student struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	School    string    `db:"school" json:"school"`
	Class     string    `db:"class" json:"class"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
