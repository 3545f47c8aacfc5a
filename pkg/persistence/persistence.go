// Package persistence provides the data storage abstraction consumed by the
// course lifecycle engine.
package persistence

import (
	"context"

	"github.com/courseloom/courseloom/pkg/models"
)

// Persistence aggregates the repositories backing the lifecycle engine.
type Persistence interface {
	Courses() CourseRepository
	AuditLog() AuditLogRepository
	Versions() VersionRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// ListCoursesOptions controls filtering, sorting and pagination for course listings.
type ListCoursesOptions struct {
	Limit  int
	Offset int

	InstructorID string
	Status       *models.CourseStatus

	SortBy    string // created_at, updated_at, title
	SortOrder string // asc, desc
}

// CourseListResult is a page of courses plus pagination metadata.
type CourseListResult struct {
	Courses     []*models.Course `json:"courses"`
	TotalCount  int64            `json:"total_count"`
	HasNextPage bool             `json:"has_next_page"`
}

// CourseRepository stores courses and commits lifecycle transitions.
type CourseRepository interface {
	// GetByID returns the course, or (nil, nil) when no course exists with that ID.
	GetByID(ctx context.Context, id string) (*models.Course, error)

	// Save writes the course unconditionally. Used for creating courses and by
	// the authoring flow; lifecycle transitions go through ApplyTransition.
	Save(ctx context.Context, course *models.Course) error

	// List returns paginated, filtered courses.
	List(ctx context.Context, opts ListCoursesOptions) (*CourseListResult, error)

	// ApplyTransition commits the mutated course together with its audit entry as
	// one unit, conditioned on the stored status still equalling expectedStatus.
	// When the precondition fails it writes nothing and returns
	// ErrConcurrentModification; an audit entry must never become visible for a
	// transition that did not commit.
	ApplyTransition(ctx context.Context, course *models.Course, expectedStatus models.CourseStatus, entry *models.AuditEntry) error
}

// AuditLogRepository reads the append-only transition history.
type AuditLogRepository interface {
	// ListByCourse returns all audit entries for the course, newest first.
	ListByCourse(ctx context.Context, courseID string) ([]*models.AuditEntry, error)
}

// VersionRepository stores immutable course content snapshots.
type VersionRepository interface {
	// Save persists the snapshot, assigning the next version number for the
	// course (max existing + 1, or 1 if none) atomically: concurrent saves for
	// the same course never repeat or skip a number. The assigned number is set
	// on the passed version before returning.
	Save(ctx context.Context, version *models.CourseVersion) error

	// GetByID returns the snapshot, or (nil, nil) when no version exists with that ID.
	GetByID(ctx context.Context, id string) (*models.CourseVersion, error)

	// ListByCourse returns all snapshots for the course, newest first by version number.
	ListByCourse(ctx context.Context, courseID string) ([]*models.CourseVersion, error)
}
