package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AssessmentStatus enumerates the lifecycle states of an assessment.
type AssessmentStatus string

const (
	StatusDraft     AssessmentStatus = "draft"
	StatusCompleted AssessmentStatus = "completed"
)

// Answer is a yes/no response to a questionnaire item.
type Answer string

const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

// Frequency qualifies how often a "yes" behaviour is observed.
type Frequency string

const (
	FrequencyRarely    Frequency = "rarely"
	FrequencySometimes Frequency = "sometimes"
	FrequencyOften     Frequency = "often"
)

// SensoryDomain identifies one of the six scored processing categories.
type SensoryDomain string

const (
	DomainAuditory       SensoryDomain = "auditory"
	DomainVisual         SensoryDomain = "visual"
	DomainTactile        SensoryDomain = "tactile"
	DomainVestibular     SensoryDomain = "vestibular"
	DomainProprioception SensoryDomain = "proprioception"
	DomainOral           SensoryDomain = "oral"
)

// Domains lists all scored domains in report order.
var Domains = []SensoryDomain{
	DomainAuditory,
	DomainVisual,
	DomainTactile,
	DomainVestibular,
	DomainProprioception,
	DomainOral,
}

// Assessment is one in-progress or completed questionnaire instance tied to
// a student and the teacher who filled it in.
//
// CompletedAt reflects the last operation that saw status == completed; it
// is never cleared once set, even if the status later moves back to draft.
type Assessment struct {
	ID              int64               `db:"id" json:"id"`
	StudentID       int64               `db:"student_id" json:"studentId"`
	TeacherID       int64               `db:"teacher_id" json:"teacherId"`
	AssessmentDate  time.Time           `db:"assessment_date" json:"assessmentDate"`
	Responses       AssessmentResponses `db:"responses" json:"responses"`
	Scores          AssessmentScores    `db:"scores" json:"scores"`
	Status          AssessmentStatus    `db:"status" json:"status"`
	AdditionalNotes *string             `db:"additional_notes" json:"additionalNotes"`
	CreatedAt       time.Time           `db:"created_at" json:"createdAt"`
	CompletedAt     *time.Time          `db:"completed_at" json:"completedAt"`
}

// AssessmentPatch carries a partial update. Nil fields are left untouched;
// non-nil fields replace the stored value (last write wins per field).
type AssessmentPatch struct {
	StudentID       *int64               `json:"studentId"`
	TeacherID       *int64               `json:"teacherId"`
	AssessmentDate  *time.Time           `json:"assessmentDate"`
	Responses       *AssessmentResponses `json:"responses"`
	Scores          *AssessmentScores    `json:"scores"`
	Status          *AssessmentStatus    `json:"status"`
	AdditionalNotes *string              `json:"additionalNotes"`
}

const dateOnlyLayout = "2006-01-02"

// DateTime is a time.Time whose JSON form also accepts date-only values.
// The questionnaire frontend posts assessmentDate as "2006-01-02".
type DateTime struct {
	time.Time
}

// UnmarshalJSON parses an RFC3339 timestamp or a bare date.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse(dateOnlyLayout, s)
	}
	if err != nil {
		return fmt.Errorf("invalid date %q", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON emits RFC3339, regardless of the form that came in.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// AssessmentQuestion is a single questionnaire item response. The question
// id encodes the behavioural direction via a "seeking" or "avoiding"
// substring marker (e.g. "auditory_seeking_1").
type AssessmentQuestion struct {
	ID        string    `json:"id" validate:"required"`
	Answer    Answer    `json:"answer" validate:"required,oneof=yes no"`
	Frequency Frequency `json:"frequency,omitempty" validate:"omitempty,oneof=rarely sometimes often"`
	Comments  string    `json:"comments,omitempty"`
}

// AssessmentSection groups the questions of one sensory processing section.
type AssessmentSection struct {
	SectionID string               `json:"sectionId" validate:"required"`
	Questions []AssessmentQuestion `json:"questions" validate:"dive"`
}

// AssessmentResponses is the full set of questionnaire answers.
type AssessmentResponses struct {
	Sections []AssessmentSection `json:"sections" validate:"dive"`
}

// AssessmentScores is the derived score report: per-domain seeking/avoiding
// scores, totals and percentages, plus overall figures.
type AssessmentScores struct {
	AuditorySeekingScore        int `json:"auditorySeekingScore"`
	AuditoryAvoidingScore       int `json:"auditoryAvoidingScore"`
	VisualSeekingScore          int `json:"visualSeekingScore"`
	VisualAvoidingScore         int `json:"visualAvoidingScore"`
	TactileSeekingScore         int `json:"tactileSeekingScore"`
	TactileAvoidingScore        int `json:"tactileAvoidingScore"`
	VestibularSeekingScore      int `json:"vestibularSeekingScore"`
	VestibularAvoidingScore     int `json:"vestibularAvoidingScore"`
	ProprioceptionSeekingScore  int `json:"proprioceptionSeekingScore"`
	ProprioceptionAvoidingScore int `json:"proprioceptionAvoidingScore"`
	OralSeekingScore            int `json:"oralSeekingScore"`
	OralAvoidingScore           int `json:"oralAvoidingScore"`

	AuditoryTotal       int `json:"auditoryTotal"`
	VisualTotal         int `json:"visualTotal"`
	TactileTotal        int `json:"tactileTotal"`
	VestibularTotal     int `json:"vestibularTotal"`
	ProprioceptionTotal int `json:"proprioceptionTotal"`
	OralTotal           int `json:"oralTotal"`

	AuditoryPercentage       float64 `json:"auditoryPercentage"`
	VisualPercentage         float64 `json:"visualPercentage"`
	TactilePercentage        float64 `json:"tactilePercentage"`
	VestibularPercentage     float64 `json:"vestibularPercentage"`
	ProprioceptionPercentage float64 `json:"proprioceptionPercentage"`
	OralPercentage           float64 `json:"oralPercentage"`

	TotalSeekingScore  int     `json:"totalSeekingScore"`
	TotalAvoidingScore int     `json:"totalAvoidingScore"`
	OverallScore       int     `json:"overallScore"`
	OverallPercentage  float64 `json:"overallPercentage"`
}

// DomainScore is a read-only per-domain view used by score reports.
type DomainScore struct {
	Domain     SensoryDomain
	Seeking    int
	Avoiding   int
	Total      int
	Percentage float64
}

// ByDomain flattens the score report into report-ordered rows.
func (s AssessmentScores) ByDomain() []DomainScore {
	return []DomainScore{
		{DomainAuditory, s.AuditorySeekingScore, s.AuditoryAvoidingScore, s.AuditoryTotal, s.AuditoryPercentage},
		{DomainVisual, s.VisualSeekingScore, s.VisualAvoidingScore, s.VisualTotal, s.VisualPercentage},
		{DomainTactile, s.TactileSeekingScore, s.TactileAvoidingScore, s.TactileTotal, s.TactilePercentage},
		{DomainVestibular, s.VestibularSeekingScore, s.VestibularAvoidingScore, s.VestibularTotal, s.VestibularPercentage},
		{DomainProprioception, s.ProprioceptionSeekingScore, s.ProprioceptionAvoidingScore, s.ProprioceptionTotal, s.ProprioceptionPercentage},
		{DomainOral, s.OralSeekingScore, s.OralAvoidingScore, s.OralTotal, s.OralPercentage},
	}
}

// Value serialises responses to JSONB for storage.
func (r AssessmentResponses) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan deserialises responses from a JSONB column.
func (r *AssessmentResponses) Scan(src interface{}) error {
	return scanJSON(src, r)
}

// Value serialises scores to JSONB for storage.
func (s AssessmentScores) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan deserialises scores from a JSONB column.
func (s *AssessmentScores) Scan(src interface{}) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
