package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kidsense/sensory-assessment-api/internal/models"
	"github.com/kidsense/sensory-assessment-api/internal/service"
	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
	"github.com/kidsense/sensory-assessment-api/pkg/response"
)

type assessmentService interface {
	Create(ctx context.Context, req service.CreateAssessmentRequest) (*models.Assessment, error)
	Get(ctx context.Context, id int64) (*models.Assessment, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.Assessment, error)
	Update(ctx context.Context, id int64, req service.UpdateAssessmentRequest) (*models.Assessment, error)
}

type scoringService interface {
	Calculate(responses models.AssessmentResponses) (*models.AssessmentScores, error)
}

type exportService interface {
	ScoreReport(assessment *models.Assessment, format string) (*service.ExportFile, error)
}

// AssessmentHandler exposes assessment endpoints.
type AssessmentHandler struct {
	assessments assessmentService
	scoring     scoringService
	exports     exportService
}

// NewAssessmentHandler constructs AssessmentHandler. exports may be nil when
// the export endpoint is not registered.
func NewAssessmentHandler(assessments assessmentService, scoring scoringService, exports exportService) *AssessmentHandler {
	return &AssessmentHandler{assessments: assessments, scoring: scoring, exports: exports}
}

// Create godoc
// @Summary Create assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssessmentRequest true "Assessment payload"
// @Success 200 {object} models.Assessment
// @Router /assessments [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req service.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assessment, err := h.assessments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// Get godoc
// @Summary Get assessment
// @Tags Assessments
// @Produce json
// @Param id path int true "Assessment ID"
// @Success 200 {object} models.Assessment
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assessment id"))
		return
	}
	assessment, err := h.assessments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// ListByTeacher godoc
// @Summary List assessments by teacher
// @Tags Assessments
// @Produce json
// @Param teacherId path int true "Teacher ID"
// @Success 200 {array} models.Assessment
// @Router /assessments/teacher/{teacherId} [get]
func (h *AssessmentHandler) ListByTeacher(c *gin.Context) {
	teacherID, err := parseID(c.Param("teacherId"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid teacher id"))
		return
	}
	assessments, err := h.assessments.ListByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments)
}

// Update godoc
// @Summary Update assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param id path int true "Assessment ID"
// @Param payload body service.UpdateAssessmentRequest true "Partial assessment payload"
// @Success 200 {object} models.Assessment
// @Router /assessments/{id} [put]
func (h *AssessmentHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assessment id"))
		return
	}
	var req service.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assessment, err := h.assessments.Update(c.Request.Context(), id, req)
	if err != nil {
		// The deployed frontend treats every PUT failure as a validation
		// error, so a missing assessment keeps the historical 400 here.
		if appErrors.FromError(err).Code == appErrors.ErrNotFound.Code {
			response.ErrorStatus(c, http.StatusBadRequest, err)
			return
		}
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// CalculateScore godoc
// @Summary Compute sensory scores from questionnaire responses
// @Tags Assessments
// @Accept json
// @Produce json
// @Param payload body models.AssessmentResponses true "Questionnaire responses"
// @Success 200 {object} models.AssessmentScores
// @Router /assessments/calculate-score [post]
func (h *AssessmentHandler) CalculateScore(c *gin.Context) {
	var responses models.AssessmentResponses
	if err := c.ShouldBindJSON(&responses); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	scores, err := h.scoring.Calculate(responses)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores)
}

// Export godoc
// @Summary Export an assessment's score report
// @Tags Assessments
// @Produce text/csv
// @Produce application/pdf
// @Param id path int true "Assessment ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Router /assessments/{id}/export [get]
func (h *AssessmentHandler) Export(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid assessment id"))
		return
	}
	assessment, err := h.assessments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.ScoreReport(assessment, c.DefaultQuery("format", service.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
