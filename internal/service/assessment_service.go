package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kidsense/sensory-assessment-api/internal/models"
	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
)

type assessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	FindByID(ctx context.Context, id int64) (*models.Assessment, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.Assessment, error)
	Update(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error)
}

// CreateAssessmentRequest holds the payload for creating an assessment.
// Server-assigned fields (id, createdAt, completedAt) are absent; status
// defaults to draft when omitted.
type CreateAssessmentRequest struct {
	StudentID       int64                      `json:"studentId" validate:"required"`
	TeacherID       int64                      `json:"teacherId" validate:"required"`
	AssessmentDate  models.DateTime            `json:"assessmentDate" validate:"required"`
	Responses       models.AssessmentResponses `json:"responses"`
	Scores          models.AssessmentScores    `json:"scores"`
	Status          models.AssessmentStatus    `json:"status" validate:"omitempty,oneof=draft completed"`
	AdditionalNotes *string                    `json:"additionalNotes"`
}

// UpdateAssessmentRequest is the partial-update payload: any subset of the
// insertable fields, all optional, same per-field rules when present.
type UpdateAssessmentRequest struct {
	StudentID       *int64                      `json:"studentId"`
	TeacherID       *int64                      `json:"teacherId"`
	AssessmentDate  *models.DateTime            `json:"assessmentDate"`
	Responses       *models.AssessmentResponses `json:"responses"`
	Scores          *models.AssessmentScores    `json:"scores"`
	Status          *models.AssessmentStatus    `json:"status" validate:"omitempty,oneof=draft completed"`
	AdditionalNotes *string                     `json:"additionalNotes"`
}

// AssessmentService handles assessment use-cases, with an optional redis
// read cache in front of the repository. A nil cache client disables
// caching entirely.
type AssessmentService struct {
	repo      assessmentRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssessmentService constructs the assessment service.
func NewAssessmentService(repo assessmentRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// Create stores a new assessment.
func (s *AssessmentService) Create(ctx context.Context, req CreateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	assessment := &models.Assessment{
		StudentID:       req.StudentID,
		TeacherID:       req.TeacherID,
		AssessmentDate:  req.AssessmentDate.Time,
		Responses:       req.Responses,
		Scores:          req.Scores,
		Status:          req.Status,
		AdditionalNotes: req.AdditionalNotes,
	}
	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assessment")
	}
	s.invalidate(ctx, assessmentKey(assessment.ID), teacherKey(assessment.TeacherID))
	s.logger.Info("assessment created",
		zap.Int64("id", assessment.ID),
		zap.Int64("teacher_id", assessment.TeacherID),
		zap.String("status", string(assessment.Status)))
	return assessment, nil
}

// Get returns an assessment by id.
func (s *AssessmentService) Get(ctx context.Context, id int64) (*models.Assessment, error) {
	var cached models.Assessment
	if s.cacheGet(ctx, assessmentKey(id), &cached) {
		return &cached, nil
	}
	assessment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assessment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assessment")
	}
	s.cacheSet(ctx, assessmentKey(id), assessment)
	return assessment, nil
}

// ListByTeacher returns all assessments created by a teacher; an empty
// slice when none exist.
func (s *AssessmentService) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Assessment, error) {
	var cached []models.Assessment
	if s.cacheGet(ctx, teacherKey(teacherID), &cached) {
		return cached, nil
	}
	assessments, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assessments")
	}
	s.cacheSet(ctx, teacherKey(teacherID), assessments)
	return assessments, nil
}

// Update merges a partial payload over an existing assessment.
func (s *AssessmentService) Update(ctx context.Context, id int64, req UpdateAssessmentRequest) (*models.Assessment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment payload")
	}
	patch := models.AssessmentPatch{
		StudentID:       req.StudentID,
		TeacherID:       req.TeacherID,
		Responses:       req.Responses,
		Scores:          req.Scores,
		Status:          req.Status,
		AdditionalNotes: req.AdditionalNotes,
	}
	if req.AssessmentDate != nil {
		date := req.AssessmentDate.Time
		patch.AssessmentDate = &date
	}

	// When the patch moves the assessment to another teacher, the previous
	// teacher's cached list goes stale too; its id is only known from the
	// stored row.
	priorTeacherID := int64(0)
	if s.cache != nil && req.TeacherID != nil {
		if prior, err := s.repo.FindByID(ctx, id); err == nil {
			priorTeacherID = prior.TeacherID
		}
	}

	assessment, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Assessment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assessment")
	}
	s.invalidate(ctx, updateInvalidationKeys(assessment.ID, priorTeacherID, assessment.TeacherID)...)
	return assessment, nil
}

func assessmentKey(id int64) string {
	return fmt.Sprintf("assessments:id:%d", id)
}

func teacherKey(teacherID int64) string {
	return fmt.Sprintf("assessments:teacher:%d", teacherID)
}

func (s *AssessmentService) cacheGet(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Debug("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *AssessmentService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// updateInvalidationKeys lists the cache keys an update makes stale: the
// record itself, the merged teacher's list, and the prior teacher's list
// when the update moved the assessment between teachers.
func updateInvalidationKeys(id, priorTeacherID, teacherID int64) []string {
	keys := []string{assessmentKey(id), teacherKey(teacherID)}
	if priorTeacherID != 0 && priorTeacherID != teacherID {
		keys = append(keys, teacherKey(priorTeacherID))
	}
	return keys
}

func (s *AssessmentService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Debug("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
