// Package catalog provides the course authoring surface: creating courses,
// editing content while the lifecycle allows it, and listing the catalog.
// Status changes are out of scope here; those go through the lifecycle service.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/courseloom/courseloom/pkg/identity"
	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/persistence"
	"github.com/google/uuid"
)

// Catalog is the course authoring service.
type Catalog struct {
	persistence persistence.Persistence
	authorizer  identity.Authorizer
}

// NewCatalog creates a new catalog service.
func NewCatalog(p persistence.Persistence, authorizer identity.Authorizer) *Catalog {
	return &Catalog{persistence: p, authorizer: authorizer}
}

// HealthCheck checks the health of the persistence layer.
func (c *Catalog) HealthCheck(ctx context.Context) (string, bool) {
	if c.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := c.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// ListCoursesRequest contains options for listing courses.
type ListCoursesRequest struct {
	Limit  int
	Offset int

	InstructorID string
	Status       *models.CourseStatus

	SortBy    string
	SortOrder string
}

// ListCoursesResponse contains the result of listing courses.
type ListCoursesResponse struct {
	Courses     []*models.Course `json:"courses"`
	TotalCount  int64            `json:"total_count"`
	HasNextPage bool             `json:"has_next_page"`
}

// ListCourses retrieves courses with filtering, sorting, and pagination.
func (c *Catalog) ListCourses(ctx context.Context, req ListCoursesRequest) (*ListCoursesResponse, error) {
	if err := c.validateListCoursesRequest(&req); err != nil {
		return nil, err
	}

	result, err := c.persistence.Courses().List(ctx, persistence.ListCoursesOptions{
		Limit:        req.Limit,
		Offset:       req.Offset,
		InstructorID: req.InstructorID,
		Status:       req.Status,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &ListCoursesResponse{
		Courses:     result.Courses,
		TotalCount:  result.TotalCount,
		HasNextPage: result.HasNextPage,
	}, nil
}

// validateListCoursesRequest validates and sets defaults for the request.
func (c *Catalog) validateListCoursesRequest(req *ListCoursesRequest) error {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	if req.Limit > 100 {
		req.Limit = 100
	}

	if req.Offset < 0 {
		req.Offset = 0
	}

	if req.SortBy == "" {
		req.SortBy = "created_at"
	}

	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	allowedSorts := []string{"created_at", "updated_at", "title"}
	if !slices.Contains(allowedSorts, req.SortBy) {
		return fmt.Errorf("%w: %q, allowed: %s",
			persistence.ErrInvalidSortField, req.SortBy, strings.Join(allowedSorts, ", "))
	}

	if req.SortOrder != "asc" && req.SortOrder != "desc" {
		return fmt.Errorf("%w: invalid sort order %q, allowed: asc, desc",
			persistence.ErrInvalidSortField, req.SortOrder)
	}

	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("%w: %q", persistence.ErrInvalidCourseStatus, *req.Status)
	}

	req.InstructorID = strings.TrimSpace(req.InstructorID)

	return nil
}

// FetchByID retrieves a course by its ID.
func (c *Catalog) FetchByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := c.persistence.Courses().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if course == nil {
		return nil, persistence.ErrCourseNotFound
	}

	return course, nil
}

// Create adds a new draft course owned by the acting instructor.
func (c *Catalog) Create(ctx context.Context, course *models.Course, actor identity.Actor) (*models.Course, error) {
	if !c.authorizer.HasRole(actor, models.RoleInstructor) {
		return nil, ErrNotInstructor
	}

	now := time.Now().UTC()
	course.ID = uuid.New().String()
	course.Status = models.CourseStatusDraft
	course.InstructorID = actor.ID
	course.VersionNumber = 1
	course.IsLocked = false
	course.RejectionReason = ""
	course.LastModifiedBy = actor.ID
	course.CreatedAt = now
	course.UpdatedAt = now

	if err := c.persistence.Courses().Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return course, nil
}

// UpdateContent applies authoring edits to the stored course. Content is only
// writable while the lifecycle leaves the course unlocked, and never moves the
// status, lock or timestamp fields.
func (c *Catalog) UpdateContent(ctx context.Context, courseID string, content CourseContent, actor identity.Actor) (*models.Course, error) {
	course, err := c.FetchByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if !c.authorizer.HasRole(actor, models.RoleAdmin) && !c.authorizer.OwnsCourse(actor, course) {
		return nil, ErrNotCourseOwner
	}

	if course.IsLocked || !course.Status.IsEditable() {
		return nil, fmt.Errorf("%w: status %s", ErrCourseLocked, course.Status)
	}

	content.applyTo(course)
	course.Touch(actor.ID, time.Now().UTC())

	if err := c.persistence.Courses().Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course %s: %w", courseID, err)
	}

	return course, nil
}

// CourseContent is the set of fields the authoring flow may write.
type CourseContent struct {
	Title            string            `json:"title"`
	ShortDescription string            `json:"short_description"`
	Requirements     string            `json:"requirements"`
	LearningOutcomes string            `json:"learning_outcomes"`
	TargetAudience   string            `json:"target_audience"`
	Price            float64           `json:"price"`
	ThumbnailURL     string            `json:"thumbnail_url"`
	VideoURL         string            `json:"video_url"`
	DurationHours    float64           `json:"duration_hours"`
	Chapters         []*models.Chapter `json:"chapters"`
}

func (cc CourseContent) applyTo(course *models.Course) {
	course.Title = cc.Title
	course.ShortDescription = cc.ShortDescription
	course.Requirements = cc.Requirements
	course.LearningOutcomes = cc.LearningOutcomes
	course.TargetAudience = cc.TargetAudience
	course.Price = cc.Price
	course.ThumbnailURL = cc.ThumbnailURL
	course.VideoURL = cc.VideoURL
	course.DurationHours = cc.DurationHours
	course.Chapters = cc.Chapters
}
