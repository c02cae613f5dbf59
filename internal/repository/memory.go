package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/kidsense/sensory-assessment-api/internal/models"
)

// The in-memory repositories are the reference storage backend. Each one
// serialises access with its own mutex and assigns int64 identifiers from a
// counter that starts at 1 and only ever moves forward, so an id is never
// reused within a process. Absence is reported as sql.ErrNoRows so services
// treat the memory and postgres drivers identically.

// MemoryUserRepository stores users in process memory.
type MemoryUserRepository struct {
	mu     sync.Mutex
	users  map[int64]models.User
	nextID int64
}

// NewMemoryUserRepository constructs an empty user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[int64]models.User), nextID: 1}
}

// Create assigns the next id, stamps CreatedAt and stores the user.
func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

// FindByID returns the stored user or sql.ErrNoRows.
func (r *MemoryUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &user, nil
}

// FindByFirebaseUID scans for a matching firebase UID. Uniqueness of the UID
// is a collaborator invariant, not checked here.
func (r *MemoryUserRepository) FindByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.FirebaseUID == firebaseUID {
			u := user
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

// MemoryStudentRepository stores students in process memory.
type MemoryStudentRepository struct {
	mu       sync.Mutex
	students map[int64]models.Student
	nextID   int64
}

// NewMemoryStudentRepository constructs an empty student store.
func NewMemoryStudentRepository() *MemoryStudentRepository {
	return &MemoryStudentRepository{students: make(map[int64]models.Student), nextID: 1}
}

// Create assigns the next id, stamps CreatedAt and stores the student.
func (r *MemoryStudentRepository) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	student.ID = r.nextID
	r.nextID++
	student.CreatedAt = time.Now().UTC()
	r.students[student.ID] = *student
	return nil
}

// FindByID returns the stored student or sql.ErrNoRows.
func (r *MemoryStudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

// MemoryAssessmentRepository stores assessments in process memory.
type MemoryAssessmentRepository struct {
	mu          sync.Mutex
	assessments map[int64]models.Assessment
	nextID      int64
}

// NewMemoryAssessmentRepository constructs an empty assessment store.
func NewMemoryAssessmentRepository() *MemoryAssessmentRepository {
	return &MemoryAssessmentRepository{assessments: make(map[int64]models.Assessment), nextID: 1}
}

// Create assigns the next id, defaults the status to draft, stamps CreatedAt
// and sets CompletedAt iff the resulting status is completed.
func (r *MemoryAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	assessment.ID = r.nextID
	r.nextID++

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

	r.assessments[assessment.ID] = cloneAssessment(*assessment)
	return nil
}

// FindByID returns a copy of the stored assessment or sql.ErrNoRows.
func (r *MemoryAssessmentRepository) FindByID(ctx context.Context, id int64) (*models.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assessment, ok := r.assessments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := cloneAssessment(assessment)
	return &out, nil
}

// ListByTeacher returns all assessments created by the given teacher, in no
// particular order. The result is an empty slice, never nil, when none match.
func (r *MemoryAssessmentRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.Assessment, 0)
	for _, assessment := range r.assessments {
		if assessment.TeacherID == teacherID {
			result = append(result, cloneAssessment(assessment))
		}
	}
	return result, nil
}

// Update merges the patch over the stored record and persists the result in
// one critical section, so concurrent updates never interleave their
// read-modify-write. Returns sql.ErrNoRows when the id is absent.
func (r *MemoryAssessmentRepository) Update(ctx context.Context, id int64, patch models.AssessmentPatch) (*models.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.assessments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	applyAssessmentPatch(&existing, patch, time.Now().UTC())
	r.assessments[id] = cloneAssessment(existing)
	return &existing, nil
}

// cloneAssessment deep-copies the fields that would otherwise alias store
// state through a returned record: the nested response documents and the
// pointer fields. Users and students are plain value types and need no
// equivalent.
func cloneAssessment(a models.Assessment) models.Assessment {
	out := a
	if a.Responses.Sections != nil {
		sections := make([]models.AssessmentSection, len(a.Responses.Sections))
		for i, section := range a.Responses.Sections {
			sections[i] = section
			if section.Questions != nil {
				questions := make([]models.AssessmentQuestion, len(section.Questions))
				copy(questions, section.Questions)
				sections[i].Questions = questions
			}
		}
		out.Responses.Sections = sections
	}
	if a.AdditionalNotes != nil {
		notes := *a.AdditionalNotes
		out.AdditionalNotes = &notes
	}
	if a.CompletedAt != nil {
		completed := *a.CompletedAt
		out.CompletedAt = &completed
	}
	return out
}
