package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/persistence"
)

// CourseRepository handles course-related database operations.
type CourseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sql.DB, logger *slog.Logger) *CourseRepository {
	return &CourseRepository{db: db, logger: logger}
}

const courseColumns = `
	id, title, short_description, requirements, learning_outcomes,
	target_audience, price, thumbnail_url, video_url, duration_hours,
	status, instructor_id, chapters, version_number, is_locked,
	rejection_reason, last_modified_by, submitted_at, reviewed_at,
	published_at, archived_at, created_at, updated_at
`

// GetByID retrieves a course by its ID from the database.
func (cr *CourseRepository) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course, err := cr.scanCourse(cr.db.QueryRowContext(ctx, query, courseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch course %s: %w", courseID, err)
	}

	return course, nil
}

// Save upserts the course unconditionally.
func (cr *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	chaptersJSON, err := json.Marshal(course.Chapters)
	if err != nil {
		return fmt.Errorf("failed to marshal chapters: %w", err)
	}

	query := `
		INSERT INTO courses (` + courseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			short_description = EXCLUDED.short_description,
			requirements = EXCLUDED.requirements,
			learning_outcomes = EXCLUDED.learning_outcomes,
			target_audience = EXCLUDED.target_audience,
			price = EXCLUDED.price,
			thumbnail_url = EXCLUDED.thumbnail_url,
			video_url = EXCLUDED.video_url,
			duration_hours = EXCLUDED.duration_hours,
			status = EXCLUDED.status,
			instructor_id = EXCLUDED.instructor_id,
			chapters = EXCLUDED.chapters,
			version_number = EXCLUDED.version_number,
			is_locked = EXCLUDED.is_locked,
			rejection_reason = EXCLUDED.rejection_reason,
			last_modified_by = EXCLUDED.last_modified_by,
			submitted_at = EXCLUDED.submitted_at,
			reviewed_at = EXCLUDED.reviewed_at,
			published_at = EXCLUDED.published_at,
			archived_at = EXCLUDED.archived_at,
			updated_at = EXCLUDED.updated_at
	`

	_, err = cr.db.ExecContext(ctx, query, cr.courseArgs(course, chaptersJSON)...)
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", course.ID, err)
	}

	return nil
}

// ApplyTransition commits the course together with its audit entry in one
// transaction, conditioned on the stored status still matching expectedStatus.
func (cr *CourseRepository) ApplyTransition(ctx context.Context, course *models.Course, expectedStatus models.CourseStatus, entry *models.AuditEntry) error {
	chaptersJSON, err := json.Marshal(course.Chapters)
	if err != nil {
		return fmt.Errorf("failed to marshal chapters: %w", err)
	}

	metadataJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal audit metadata: %w", err)
	}

	transaction, err := cr.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transition transaction: %w", err)
	}

	updateQuery := `
		UPDATE courses SET
			title = $3,
			short_description = $4,
			requirements = $5,
			learning_outcomes = $6,
			target_audience = $7,
			price = $8,
			thumbnail_url = $9,
			video_url = $10,
			duration_hours = $11,
			status = $12,
			chapters = $13,
			version_number = $14,
			is_locked = $15,
			rejection_reason = $16,
			last_modified_by = $17,
			submitted_at = $18,
			reviewed_at = $19,
			published_at = $20,
			archived_at = $21,
			updated_at = $22
		WHERE id = $1 AND status = $2
	`

	result, err := transaction.ExecContext(ctx, updateQuery,
		course.ID,
		expectedStatus,
		course.Title,
		course.ShortDescription,
		course.Requirements,
		course.LearningOutcomes,
		course.TargetAudience,
		course.Price,
		course.ThumbnailURL,
		course.VideoURL,
		course.DurationHours,
		course.Status,
		chaptersJSON,
		course.VersionNumber,
		course.IsLocked,
		course.RejectionReason,
		course.LastModifiedBy,
		course.SubmittedAt,
		course.ReviewedAt,
		course.PublishedAt,
		course.ArchivedAt,
		course.UpdatedAt,
	)
	if err != nil {
		_ = transaction.Rollback()

		return fmt.Errorf("failed to update course %s: %w", course.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		_ = transaction.Rollback()

		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		_ = transaction.Rollback()

		var exists bool

		err := cr.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1)", course.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check course existence: %w", err)
		}

		if !exists {
			return persistence.ErrCourseNotFound
		}

		return persistence.ErrConcurrentModification
	}

	auditQuery := `
		INSERT INTO course_audit_log (
			id, course_id, actor_id, from_status, to_status, reason,
			metadata, ip_address, user_agent, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = transaction.ExecContext(ctx, auditQuery,
		entry.ID,
		entry.CourseID,
		entry.ActorID,
		entry.FromStatus,
		entry.ToStatus,
		entry.Reason,
		metadataJSON,
		entry.IPAddress,
		entry.UserAgent,
		entry.CreatedAt,
	)
	if err != nil {
		_ = transaction.Rollback()

		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	err = transaction.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}

	return nil
}

// List returns paginated and filtered courses.
func (cr *CourseRepository) List(ctx context.Context, opts persistence.ListCoursesOptions) (*persistence.CourseListResult, error) {
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

	order := "DESC"
	if opts.SortOrder == "asc" {
		order = "ASC"
	}

	where := " WHERE 1=1"
	args := make([]any, 0, 4)

	if opts.InstructorID != "" {
		args = append(args, opts.InstructorID)
		where += fmt.Sprintf(" AND instructor_id = $%d", len(args))
	}

	if opts.Status != nil {
		args = append(args, *opts.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var totalCount int64

	err := cr.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses"+where, args...).Scan(&totalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf("SELECT %s FROM courses%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		courseColumns, where, opts.SortBy, order, len(args)-1, len(args))

	rows, err := cr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)

	for rows.Next() {
		course, err := cr.scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}

		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate course rows: %w", err)
	}

	return &persistence.CourseListResult{
		Courses:     courses,
		TotalCount:  totalCount,
		HasNextPage: int64(opts.Offset+len(courses)) < totalCount,
	}, nil
}

func (cr *CourseRepository) courseArgs(course *models.Course, chaptersJSON []byte) []any {
	return []any{
		course.ID,
		course.Title,
		course.ShortDescription,
		course.Requirements,
		course.LearningOutcomes,
		course.TargetAudience,
		course.Price,
		course.ThumbnailURL,
		course.VideoURL,
		course.DurationHours,
		course.Status,
		course.InstructorID,
		chaptersJSON,
		course.VersionNumber,
		course.IsLocked,
		course.RejectionReason,
		course.LastModifiedBy,
		course.SubmittedAt,
		course.ReviewedAt,
		course.PublishedAt,
		course.ArchivedAt,
		course.CreatedAt,
		course.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (cr *CourseRepository) scanCourse(row rowScanner) (*models.Course, error) {
	var (
		course       models.Course
		chaptersJSON []byte
		submittedAt  sql.NullTime
		reviewedAt   sql.NullTime
		publishedAt  sql.NullTime
		archivedAt   sql.NullTime
	)

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.ShortDescription,
		&course.Requirements,
		&course.LearningOutcomes,
		&course.TargetAudience,
		&course.Price,
		&course.ThumbnailURL,
		&course.VideoURL,
		&course.DurationHours,
		&course.Status,
		&course.InstructorID,
		&chaptersJSON,
		&course.VersionNumber,
		&course.IsLocked,
		&course.RejectionReason,
		&course.LastModifiedBy,
		&submittedAt,
		&reviewedAt,
		&publishedAt,
		&archivedAt,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(chaptersJSON, &course.Chapters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chapters: %w", err)
	}

	if submittedAt.Valid {
		course.SubmittedAt = &submittedAt.Time
	}

	if reviewedAt.Valid {
		course.ReviewedAt = &reviewedAt.Time
	}

	if publishedAt.Valid {
		course.PublishedAt = &publishedAt.Time
	}

	if archivedAt.Valid {
		course.ArchivedAt = &archivedAt.Time
	}

	return &course, nil
}
