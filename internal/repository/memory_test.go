package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidsense/sensory-assessment-api/internal/models"
)

func TestMemoryUserRepositoryCreateAndFind(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{Email: "teacher@school.test", FirebaseUID: "fb-1", Name: "Ms. Riley"}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, found)

	byUID, err := repo.FindByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, user, byUID)
}

func TestMemoryUserRepositoryAssignsIncreasingIDs(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		user := &models.User{Email: "t@school.test", FirebaseUID: "fb", Name: "T"}
		require.NoError(t, repo.Create(ctx, user))
		assert.Greater(t, user.ID, last)
		last = user.ID
	}
}

func TestMemoryUserRepositoryAbsent(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.FindByFirebaseUID(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemoryStudentRepositoryCreateAndFind(t *testing.T) {
	repo := NewMemoryStudentRepository()
	ctx := context.Background()

	student := &models.Student{Name: "Jamie", School: "Northside Primary", Class: "2B"}
	require.NoError(t, repo.Create(ctx, student))
	assert.Equal(t, int64(1), student.ID)

	found, err := repo.FindByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, student, found)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemoryAssessmentRepositoryCreateDefaultsDraft(t *testing.T) {
	repo := NewMemoryAssessmentRepository()
	ctx := context.Background()

	assessment := &models.Assessment{StudentID: 1, TeacherID: 2, AssessmentDate: time.Now()}
	require.NoError(t, repo.Create(ctx, assessment))
	assert.Equal(t, models.StatusDraft, assessment.Status)
	assert.Nil(t, assessment.CompletedAt)
	assert.False(t, assessment.CreatedAt.IsZero())
}

func TestMemoryAssessmentRepositoryCreateCompleted(t *testing.T) {
	repo := NewMemoryAssessmentRepository()
	ctx := context.Background()

	assessment := &models.Assessment{StudentID: 1, TeacherID: 2, Status: models.StatusCompleted}
	require.NoError(t, repo.Create(ctx, assessment))
	require.NotNil(t, assessment.CompletedAt)
	assert.Equal(t, assessment.CreatedAt, *assessment.CompletedAt)
}

func TestMemoryAssessmentRepositoryUpdateMergesPatch(t *testing.T) {
	repo := NewMemoryAssessmentRepository()
	ctx := context.Background()

	assessment := &models.Assessment{StudentID: 1, TeacherID: 2}
	require.NoError(t, repo.Create(ctx, assessment))

	notes := "prefers quiet corners"
	updated, err := repo.Update(ctx, assessment.ID, models.AssessmentPatch{AdditionalNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, &notes, updated.AdditionalNotes)
	assert.Equal(t, models.StatusDraft, updated.Status)
	assert.Nil(t, updated.CompletedAt)
	// Untouched fields survive the merge.
	assert.Equal(t, int64(1), updated.StudentID)
	assert.Equal(t, int64(2), updated.TeacherID)
}

func TestMemoryAssessmentRepositoryUpdateCompletionStamp(t *testing.T) {
	repo := NewMemoryAssessmentRepository()
	ctx := context.Background()

	assessment := &models.Assessment{StudentID: 1, TeacherID: 2}
	require.NoError(t, repo.Create(ctx, assessment))

	completed := models.StatusCompleted
	updated, err := repo.Update(ctx, assessment.ID, models.AssessmentPatch{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	firstStamp := *updated.CompletedAt

	// Reverting to draft keeps the historical completion stamp.
	draft := models.StatusDraft
	updated, err = repo.Update(ctx, assessment.ID, models.AssessmentPatch{Status: &draft})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, firstStamp, *updated.CompletedAt)

	// Completing again moves the stamp forward.
	updated, err = repo.Update(ctx, assessment.ID, models.AssessmentPatch{Status: &completed})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.False(t, updated.CompletedAt.Before(firstStamp))
}

func TestMemoryAssessmentRepositoryUpdateAbsent(t *testing.T) {
	repo := NewMemoryAssessmentRepository()

	_, err := repo.Update(context.Background(), 42, models.AssessmentPatch{})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMemoryAssessmentRepositoryReadsDoNotAliasStore(t *testing.T) {
	repo := NewMemoryAssessmentRepository()
	ctx := context.Background()

	notes := "original"
	assessment := &models.Assessment{
		StudentID: 1,
		TeacherID: 2,
		Responses: models.AssessmentResponses{
			Sections: []models.AssessmentSection{{
				SectionID: "auditoryProcessing",
				Questions: []models.AssessmentQuestion{{ID: "auditory_seeking_1", Answer: models.AnswerYes}},
			}},
		},
		AdditionalNotes: &notes,
	}
	require.NoError(t, repo.Create(ctx, assessment))

	found, err := repo.FindByID(ctx, assessment.ID)
	require.NoError(t, err)

	// Scribbling over a returned record must not leak into the store.
	found.Responses.Sections[0].Questions[0].Answer = models.AnswerNo
	*found.AdditionalNotes = "scribbled"

	again, err := repo.FindByID(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AnswerYes, again.Responses.Sections[0].Questions[0].Answer)
	assert.Equal(t, "original", *again.AdditionalNotes)

	listed, err := repo.ListByTeacher(ctx, 2)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	listed[0].Responses.Sections[0].Questions[0].Answer = models.AnswerNo

	again, err = repo.FindByID(ctx, assessment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AnswerYes, again.Responses.Sections[0].Questions[0].Answer)
}

func TestMemoryAssessmentRepositoryListByTeacher(t *testing.T) {
	repo := NewMemoryAssessmentRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Assessment{StudentID: 1, TeacherID: 7}))
	require.NoError(t, repo.Create(ctx, &models.Assessment{StudentID: 2, TeacherID: 7}))
	require.NoError(t, repo.Create(ctx, &models.Assessment{StudentID: 3, TeacherID: 8}))

	mine, err := repo.ListByTeacher(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	none, err := repo.ListByTeacher(ctx, 99)
	require.NoError(t, err)
	require.NotNil(t, none)
	assert.Empty(t, none)
}
