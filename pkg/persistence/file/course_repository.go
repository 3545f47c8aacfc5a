package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/persistence"
)

// CourseRepository stores one JSON file per course under <root>/courses.
type CourseRepository struct {
	root  string
	mu    *sync.Mutex // Shared with the audit log for atomic transitions
	audit *AuditLogRepository
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(root string, mu *sync.Mutex, audit *AuditLogRepository) *CourseRepository {
	return &CourseRepository{root: root, mu: mu, audit: audit}
}

// GetByID retrieves a course by its ID from the file system.
func (cr *CourseRepository) GetByID(_ context.Context, courseID string) (*models.Course, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	return cr.readCourse(courseID)
}

// readCourse loads a course file without locking; callers hold cr.mu.
func (cr *CourseRepository) readCourse(courseID string) (*models.Course, error) {
	filePath := filepath.Clean(path.Join(cr.root, "courses", courseID+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch course %s: %w", courseID, err)
	}

	var course models.Course

	err = json.Unmarshal(body, &course)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal course %s: %w", courseID, err)
	}

	return &course, nil
}

// Save writes the course unconditionally.
func (cr *CourseRepository) Save(_ context.Context, course *models.Course) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	return cr.writeCourse(course)
}

func (cr *CourseRepository) writeCourse(course *models.Course) error {
	err := os.MkdirAll(path.Join(cr.root, "courses"), 0750)
	if err != nil {
		return fmt.Errorf("failed to create courses directory: %w", err)
	}

	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal course %s: %w", course.ID, err)
	}

	filePath := path.Join(cr.root, "courses", course.ID+".json")

	return os.WriteFile(filePath, data, 0600)
}

// ApplyTransition commits the course together with its audit entry, conditioned
// on the stored status still matching expectedStatus. The shared mutex makes the
// read-compare-write-append sequence atomic within the process.
func (cr *CourseRepository) ApplyTransition(_ context.Context, course *models.Course, expectedStatus models.CourseStatus, entry *models.AuditEntry) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	stored, err := cr.readCourse(course.ID)
	if err != nil {
		return err
	}

	if stored == nil {
		return persistence.ErrCourseNotFound
	}

	if stored.Status != expectedStatus {
		return persistence.ErrConcurrentModification
	}

	if err := cr.writeCourse(course); err != nil {
		return err
	}

	if err := cr.audit.append(entry); err != nil {
		return fmt.Errorf("failed to append audit entry for course %s: %w", course.ID, err)
	}

	return nil
}

// List returns paginated and filtered courses with in-memory operations.
func (cr *CourseRepository) List(_ context.Context, opts persistence.ListCoursesOptions) (*persistence.CourseListResult, error) {
	// Set defaults
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	if opts.SortBy == "" {
		opts.SortBy = "created_at"
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}

	allowedSorts := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
	}
	if !allowedSorts[opts.SortBy] {
		return nil, fmt.Errorf("%w: %s", persistence.ErrInvalidSortField, opts.SortBy)
	}

	cr.mu.Lock()
	defer cr.mu.Unlock()

	root := os.DirFS(path.Join(cr.root, "courses"))

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list course files: %w", err)
	}

	filtered := make([]*models.Course, 0, len(jsonFiles))

	for _, file := range jsonFiles {
		courseID := file[:len(file)-5] // Remove .json extension

		course, err := cr.readCourse(courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to load course %s: %w", courseID, err)
		}

		if course == nil {
			continue
		}

		if opts.InstructorID != "" && course.InstructorID != opts.InstructorID {
			continue
		}

		if opts.Status != nil && course.Status != *opts.Status {
			continue
		}

		filtered = append(filtered, course)
	}

	cr.sortCourses(filtered, opts.SortBy, opts.SortOrder)

	totalCount := int64(len(filtered))
	startIdx := opts.Offset
	endIdx := opts.Offset + opts.Limit

	if startIdx >= len(filtered) {
		return &persistence.CourseListResult{
			Courses:     make([]*models.Course, 0),
			TotalCount:  totalCount,
			HasNextPage: false,
		}, nil
	}

	if endIdx > len(filtered) {
		endIdx = len(filtered)
	}

	return &persistence.CourseListResult{
		Courses:     filtered[startIdx:endIdx],
		TotalCount:  totalCount,
		HasNextPage: endIdx < len(filtered),
	}, nil
}

// sortCourses sorts courses in-place based on the specified field and order.
func (cr *CourseRepository) sortCourses(courses []*models.Course, sortBy, sortOrder string) {
	sort.Slice(courses, func(i, j int) bool {
		var less bool

		switch sortBy {
		case "created_at":
			less = courses[i].CreatedAt.Before(courses[j].CreatedAt)
		case "updated_at":
			less = courses[i].UpdatedAt.Before(courses[j].UpdatedAt)
		case "title":
			less = courses[i].Title < courses[j].Title
		default:
			less = courses[i].CreatedAt.Before(courses[j].CreatedAt)
		}

		if sortOrder == "desc" {
			return !less
		}

		return less
	})
}
