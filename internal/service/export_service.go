package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kidsense/sensory-assessment-api/internal/models"
	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
	"github.com/kidsense/sensory-assessment-api/pkg/export"
)

// Export formats accepted by the score-report endpoint.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// ExportFile is a rendered score report ready to stream.
type ExportFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders an assessment's score report as CSV or PDF.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ScoreReport renders the per-domain score table of an assessment.
func (s *ExportService) ScoreReport(assessment *models.Assessment, format string) (*ExportFile, error) {
	report := scoreReport(assessment)
	filename := fmt.Sprintf("assessment-%d-scores.%s", assessment.ID, format)

	switch format {
	case FormatCSV:
		data, err := s.csv.Render(report)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportFile{Data: data, ContentType: "text/csv", Filename: filename}, nil
	case FormatPDF:
		data, err := s.pdf.Render(report)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportFile{Data: data, ContentType: "application/pdf", Filename: filename}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func scoreReport(assessment *models.Assessment) export.Report {
	rows := make([]export.ScoreRow, 0, len(models.Domains))
	for _, domain := range assessment.Scores.ByDomain() {
		rows = append(rows, export.ScoreRow{
			Label:      string(domain.Domain),
			Seeking:    domain.Seeking,
			Avoiding:   domain.Avoiding,
			Total:      domain.Total,
			Percentage: domain.Percentage,
		})
	}
	return export.Report{
		Title: fmt.Sprintf("Sensory Score Report, Assessment %d", assessment.ID),
		Rows:  rows,
		Overall: export.ScoreRow{
			Label:      "overall",
			Seeking:    assessment.Scores.TotalSeekingScore,
			Avoiding:   assessment.Scores.TotalAvoidingScore,
			Total:      assessment.Scores.OverallScore,
			Percentage: assessment.Scores.OverallPercentage,
		},
	}
}
