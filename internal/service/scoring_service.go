package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kidsense/sensory-assessment-api/internal/models"
	appErrors "github.com/kidsense/sensory-assessment-api/pkg/errors"
)

// maxQuestionPoints is the highest contribution of a single question: a
// "yes" answer observed "often".
const maxQuestionPoints = 3

// ScoringService validates questionnaire responses and derives the sensory
// score report.
type ScoringService struct {
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewScoringService constructs the scoring service. metrics may be nil.
func NewScoringService(validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ScoringService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoringService{validator: validate, metrics: metrics, logger: logger}
}

// Calculate checks the responses against the questionnaire shape and runs
// the pure scoring transform. Scoring itself cannot fail on valid input.
func (s *ScoringService) Calculate(responses models.AssessmentResponses) (*models.AssessmentScores, error) {
	if err := s.validator.Struct(responses); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assessment responses")
	}
	scores := ComputeScores(responses)
	if s.metrics != nil {
		s.metrics.IncAssessmentsScored()
	}
	return &scores, nil
}

// ComputeScores derives the score report from questionnaire responses. It is
// deterministic, has no shared state and is safe for concurrent use.
//
// Per domain, the section whose id is "<domain>Processing" is scored:
// a "no" answer contributes 0 points; a "yes" answer contributes 1 point,
// raised to 2 for frequency "sometimes" and 3 for "often". Each question is
// routed to the seeking or avoiding accumulator by a substring marker in
// its id; questions carrying neither marker are dropped from both the
// score and the max-possible count. Percentages are the domain total over
// 3 points per marked question.
func ComputeScores(responses models.AssessmentResponses) models.AssessmentScores {
	// First occurrence of a section id wins, matching how the
	// questionnaire frontend has always resolved duplicates.
	sections := make(map[string]models.AssessmentSection, len(responses.Sections))
	for _, section := range responses.Sections {
		if _, ok := sections[section.SectionID]; !ok {
			sections[section.SectionID] = section
		}
	}

	var scores models.AssessmentScores
	totalMarked := 0
	for _, domain := range models.Domains {
		tally := tallySection(sections[sectionID(domain)])
		totalMarked += tally.marked
		setDomainScores(&scores, domain, tally)

		scores.TotalSeekingScore += tally.seeking
		scores.TotalAvoidingScore += tally.avoiding
	}

	scores.OverallScore = scores.TotalSeekingScore + scores.TotalAvoidingScore
	scores.OverallPercentage = percentage(scores.OverallScore, totalMarked)
	return scores
}

// sectionID maps a sensory domain to its processing-section identifier,
// e.g. auditory -> "auditoryProcessing".
func sectionID(domain models.SensoryDomain) string {
	return string(domain) + "Processing"
}

type domainTally struct {
	seeking  int
	avoiding int
	marked   int
}

func tallySection(section models.AssessmentSection) domainTally {
	var tally domainTally
	for _, question := range section.Questions {
		seeking := strings.Contains(question.ID, "seeking")
		avoiding := strings.Contains(question.ID, "avoiding")
		if !seeking && !avoiding {
			// Unmarked questions are silently dropped.
			continue
		}
		tally.marked++
		points := questionPoints(question)
		if seeking {
			tally.seeking += points
		} else if avoiding {
			tally.avoiding += points
		}
	}
	return tally
}

func questionPoints(question models.AssessmentQuestion) int {
	if question.Answer != models.AnswerYes {
		return 0
	}
	switch question.Frequency {
	case models.FrequencyOften:
		return 3
	case models.FrequencySometimes:
		return 2
	default:
		return 1
	}
}

func percentage(total, marked int) float64 {
	if marked == 0 {
		return 0
	}
	return float64(total) / float64(maxQuestionPoints*marked) * 100
}

func setDomainScores(scores *models.AssessmentScores, domain models.SensoryDomain, tally domainTally) {
	total := tally.seeking + tally.avoiding
	pct := percentage(total, tally.marked)

	switch domain {
	case models.DomainAuditory:
		scores.AuditorySeekingScore = tally.seeking
		scores.AuditoryAvoidingScore = tally.avoiding
		scores.AuditoryTotal = total
		scores.AuditoryPercentage = pct
	case models.DomainVisual:
		scores.VisualSeekingScore = tally.seeking
		scores.VisualAvoidingScore = tally.avoiding
		scores.VisualTotal = total
		scores.VisualPercentage = pct
	case models.DomainTactile:
		scores.TactileSeekingScore = tally.seeking
		scores.TactileAvoidingScore = tally.avoiding
		scores.TactileTotal = total
		scores.TactilePercentage = pct
	case models.DomainVestibular:
		scores.VestibularSeekingScore = tally.seeking
		scores.VestibularAvoidingScore = tally.avoiding
		scores.VestibularTotal = total
		scores.VestibularPercentage = pct
	case models.DomainProprioception:
		scores.ProprioceptionSeekingScore = tally.seeking
		scores.ProprioceptionAvoidingScore = tally.avoiding
		scores.ProprioceptionTotal = total
		scores.ProprioceptionPercentage = pct
	case models.DomainOral:
		scores.OralSeekingScore = tally.seeking
		scores.OralAvoidingScore = tally.avoiding
		scores.OralTotal = total
		scores.OralPercentage = pct
	}
}
