package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kidsense/sensory-assessment-api/internal/models"
)

// UserRepository provides PostgreSQL access to teacher accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and fills in the assigned id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO users (email, firebase_uid, name, created_at)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, user.Email, user.FirebaseUID, user.Name, user.CreatedAt).Scan(&user.ID); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT id, email, firebase_uid, name, created_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByFirebaseUID returns the user linked to a firebase identity.
func (r *UserRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	const query = `SELECT id, email, firebase_uid, name, created_at FROM users WHERE firebase_uid = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, firebaseUID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by firebase uid: %w", err)
	}
	return &user, nil
}
