package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kidsense/sensory-assessment-api/internal/models"
)

// AssessmentRepository provides PostgreSQL access to assessments. The
// responses and scores documents are persisted as JSONB through the model
// types' Valuer/Scanner implementations.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Create inserts an assessment, defaulting the status to draft and setting
// completed_at iff the resulting status is completed.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	now := time.Now().UTC()
	assessment.CreatedAt = now
	if assessment.Status == "" {
		assessment.Status = models.StatusDraft
	}
	assessment.CompletedAt = nil
	if assessment.Status == models.StatusCompleted {
		completed := now
		assessment.CompletedAt = &completed
	}

	const query = `INSERT INTO assessments
        (student_id, teacher_id, assessment_date, responses, scores, status, additional_notes, created_at, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		assessment.StudentID,
		assessment.TeacherID,
		assessment.AssessmentDate,
		assessment.Responses,
		assessment.Scores,
		assessment.Status,
		assessment.AdditionalNotes,
		assessment.CreatedAt,
		assessment.CompletedAt,
	).Scan(&assessment.ID)
	if err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// FindByID fetches an assessment by ID.
func (r *AssessmentRepository) FindByID(ctx context.Context, id int64) (*models.Assessment, error) {
	const query = `SELECT id, student_id, teacher_id, assessment_date, responses, scores, status, additional_notes, created_at, completed_at
        FROM assessments WHERE id = $1 LIMIT 1`
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find assessment by id: %w", err)
	}
	return &assessment, nil
}

// ListByTeacher returns all assessments created by the given teacher. The
// result is an empty slice, never nil, when none match.
func (r *AssessmentRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Assessment, error) {
	const query = `SELECT id, student_id, teacher_id, assessment_date, responses, scores, status, additional_notes, created_at, completed_at
        FROM assessments WHERE teacher_id = $1`
	assessments := make([]models.Assessment, 0)
	if err := r.db.SelectContext(ctx, &assessments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list assessments by teacher: %w", err)
	}
	return assessments, nil
}

// Update merges the patch over the stored record inside one transaction, so
// a partial update either commits fully or not at all. Returns
// sql.ErrNoRows when the id is absent.
func (r *AssessmentRepository) Update(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update assessment: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const selectQuery = `SELECT id, student_id, teacher_id, assessment_date, responses, scores, status, additional_notes, created_at, completed_at
        FROM assessments WHERE id = $1 FOR UPDATE`
	var assessment models.Assessment
	if err := tx.GetContext(ctx, &assessment, selectQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("load assessment for update: %w", err)
	}

	applyAssessmentPatch(&assessment, patch, time.Now().UTC())

	const updateQuery = `UPDATE assessments SET
        student_id = $2, teacher_id = $3, assessment_date = $4, responses = $5, scores = $6,
        status = $7, additional_notes = $8, completed_at = $9
        WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery,
		assessment.ID,
		assessment.StudentID,
		assessment.TeacherID,
		assessment.AssessmentDate,
		assessment.Responses,
		assessment.Scores,
		assessment.Status,
		assessment.AdditionalNotes,
		assessment.CompletedAt,
	); err != nil {
		return nil, fmt.Errorf("update assessment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update assessment: %w", err)
	}
	return &assessment, nil
}

// applyAssessmentPatch merges non-nil patch fields over the existing record,
// last write wins per field. CompletedAt is recomputed to now iff the merged
// status is completed; otherwise the stored value is retained, so moving an
// assessment back to draft keeps its old completion stamp.
func applyAssessmentPatch(assessment *models.Assessment, patch models.AssessmentPatch, now time.Time) {
	if patch.StudentID != nil {
		assessment.StudentID = *patch.StudentID
	}
	if patch.TeacherID != nil {
		assessment.TeacherID = *patch.TeacherID
	}
	if patch.AssessmentDate != nil {
		assessment.AssessmentDate = *patch.AssessmentDate
	}
	if patch.Responses != nil {
		assessment.Responses = *patch.Responses
	}
	if patch.Scores != nil {
		assessment.Scores = *patch.Scores
	}
	if patch.Status != nil {
		assessment.Status = *patch.Status
	}
	if patch.AdditionalNotes != nil {
		assessment.AdditionalNotes = patch.AdditionalNotes
	}

	if assessment.Status == models.StatusCompleted {
		completed := now
		assessment.CompletedAt = &completed
	}
}
