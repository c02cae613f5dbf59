package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidsense/sensory-assessment-api/internal/models"
)

const assessmentColumnsQuery = "SELECT id, student_id, teacher_id, assessment_date, responses, scores, status, additional_notes, created_at, completed_at"

func assessmentRow(id, studentID, teacherID int64, status models.AssessmentStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "student_id", "teacher_id", "assessment_date", "responses", "scores", "status", "additional_notes", "created_at", "completed_at"}).
		AddRow(id, studentID, teacherID, now, []byte(`{"sections":[]}`), []byte(`{}`), string(status), nil, now, nil)
}

func TestAssessmentRepositoryCreateDefaultsDraft(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery("INSERT INTO assessments").
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "draft", nil, sqlmock.AnyArg(), nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	assessment := &models.Assessment{StudentID: 1, TeacherID: 2, AssessmentDate: time.Now()}
	err := repo.Create(context.Background(), assessment)
	require.NoError(t, err)
	assert.Equal(t, int64(5), assessment.ID)
	assert.Equal(t, models.StatusDraft, assessment.Status)
	assert.Nil(t, assessment.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryCreateCompleted(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery("INSERT INTO assessments").
		WithArgs(int64(1), int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "completed", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(6)))

	assessment := &models.Assessment{StudentID: 1, TeacherID: 2, Status: models.StatusCompleted}
	err := repo.Create(context.Background(), assessment)
	require.NoError(t, err)
	require.NotNil(t, assessment.CompletedAt)
	assert.Equal(t, assessment.CreatedAt, *assessment.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery(assessmentColumnsQuery).
		WithArgs(int64(5)).
		WillReturnRows(assessmentRow(5, 1, 2, models.StatusDraft))

	assessment, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), assessment.ID)
	assert.Equal(t, models.StatusDraft, assessment.Status)
	assert.NotNil(t, assessment.Responses.Sections)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryFindByIDAbsent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery(assessmentColumnsQuery).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListByTeacherEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectQuery(assessmentColumnsQuery).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "teacher_id", "assessment_date", "responses", "scores", "status", "additional_notes", "created_at", "completed_at"}))

	assessments, err := repo.ListByTeacher(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, assessments)
	assert.Empty(t, assessments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryUpdateCompletes(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(assessmentColumnsQuery).
		WithArgs(int64(5)).
		WillReturnRows(assessmentRow(5, 1, 2, models.StatusDraft))
	mock.ExpectExec("UPDATE assessments SET").
		WithArgs(int64(5), int64(1), int64(2), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "completed", nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	completed := models.StatusCompleted
	updated, err := repo.Update(context.Background(), 5, models.AssessmentPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryUpdateAbsent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(assessmentColumnsQuery).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 42, models.AssessmentPatch{})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
