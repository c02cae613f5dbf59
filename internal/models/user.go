package models

import "time"

// User represents a teacher account linked to an external Firebase identity.
// The firebase UID is treated as an opaque token; this service never
// verifies it.
type User struct {
	ID          int64     `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	FirebaseUID string    `db:"firebase_uid" json:"firebaseUid"`
	Name        string    `db:"name" json:"name"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}
