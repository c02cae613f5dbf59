package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidsense/sensory-assessment-api/internal/models"
	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
)

type fakeUserRepo struct {
	created *models.User
	byUID   map[string]*models.User
	err     error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = 1
	f.created = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	if user, ok := f.byUID[firebaseUID]; ok {
		return user, nil
	}
	return nil, sql.ErrNoRows
}

func TestUserServiceCreate(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:       "teacher@school.test",
		FirebaseUID: "fb-1",
		Name:        "Ms. Riley",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "teacher@school.test", repo.created.Email)
}

func TestUserServiceCreateRejectsBadEmail(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:       "not-an-email",
		FirebaseUID: "fb-1",
		Name:        "Ms. Riley",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestUserServiceGetByFirebaseUID(t *testing.T) {
	repo := &fakeUserRepo{byUID: map[string]*models.User{
		"fb-1": {ID: 1, Email: "teacher@school.test", FirebaseUID: "fb-1", Name: "Ms. Riley"},
	}}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.GetByFirebaseUID(context.Background(), "fb-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = svc.GetByFirebaseUID(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "User not found", appErr.Message)
}
