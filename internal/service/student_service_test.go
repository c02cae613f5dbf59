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

type fakeStudentRepo struct {
	students map[int64]*models.Student
}

func (f *fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = int64(len(f.students) + 1)
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if student, ok := f.students[id]; ok {
		return student, nil
	}
	return nil, sql.ErrNoRows
}

func TestStudentServiceCreate(t *testing.T) {
	repo := &fakeStudentRepo{students: make(map[int64]*models.Student)}
	svc := NewStudentService(repo, nil, nil)

	student, err := svc.Create(context.Background(), CreateStudentRequest{
		Name:   "Jamie",
		School: "Northside Primary",
		Class:  "2B",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), student.ID)
	assert.Equal(t, "Jamie", student.Name)
}

func TestStudentServiceCreateRequiresAllFields(t *testing.T) {
	repo := &fakeStudentRepo{students: make(map[int64]*models.Student)}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{Name: "Jamie"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestStudentServiceGetAbsent(t *testing.T) {
	repo := &fakeStudentRepo{students: make(map[int64]*models.Student)}
	svc := NewStudentService(repo, nil, nil)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "Student not found", appErr.Message)
}
