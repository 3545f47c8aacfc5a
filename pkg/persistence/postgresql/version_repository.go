package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courseloom/courseloom/pkg/models"
)

// VersionRepository stores immutable course content snapshots.
type VersionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository.
func NewVersionRepository(db *sql.DB, logger *slog.Logger) *VersionRepository {
	return &VersionRepository{db: db, logger: logger}
}

const versionColumns = `
	id, course_id, version_number, title, short_description, requirements,
	learning_outcomes, target_audience, price, thumbnail_url, video_url,
	curriculum_snapshot, publish_status, version_notes, created_by, created_at
`

// Save persists the snapshot, assigning the next version number for the course
// inside the insert itself. The UNIQUE (course_id, version_number) constraint
// backstops the subquery under concurrency.
func (vr *VersionRepository) Save(ctx context.Context, version *models.CourseVersion) error {
	query := `
		INSERT INTO course_versions (` + versionColumns + `)
		VALUES ($1, $2,
			(SELECT COALESCE(MAX(version_number), 0) + 1 FROM course_versions WHERE course_id = $2),
			$3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING version_number
	`

	err := vr.db.QueryRowContext(ctx, query,
		version.ID,
		version.CourseID,
		version.Title,
		version.ShortDescription,
		version.Requirements,
		version.LearningOutcomes,
		version.TargetAudience,
		version.Price,
		version.ThumbnailURL,
		version.VideoURL,
		[]byte(version.CurriculumSnapshot),
		version.PublishStatus,
		version.VersionNotes,
		version.CreatedBy,
		version.CreatedAt,
	).Scan(&version.VersionNumber)
	if err != nil {
		return fmt.Errorf("failed to save course version %s: %w", version.ID, err)
	}

	return nil
}

// GetByID retrieves a snapshot by its ID.
func (vr *VersionRepository) GetByID(ctx context.Context, versionID string) (*models.CourseVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM course_versions WHERE id = $1`

	version, err := vr.scanVersion(vr.db.QueryRowContext(ctx, query, versionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch course version %s: %w", versionID, err)
	}

	return version, nil
}

// ListByCourse returns all snapshots for the course, newest first by version number.
func (vr *VersionRepository) ListByCourse(ctx context.Context, courseID string) ([]*models.CourseVersion, error) {
	query := `SELECT ` + versionColumns + ` FROM course_versions WHERE course_id = $1 ORDER BY version_number DESC`

	rows, err := vr.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course versions for course %s: %w", courseID, err)
	}
	defer rows.Close()

	versions := make([]*models.CourseVersion, 0)

	for rows.Next() {
		version, err := vr.scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course version: %w", err)
		}

		versions = append(versions, version)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate course versions: %w", err)
	}

	return versions, nil
}

func (vr *VersionRepository) scanVersion(row rowScanner) (*models.CourseVersion, error) {
	var (
		version      models.CourseVersion
		snapshotJSON []byte
	)

	err := row.Scan(
		&version.ID,
		&version.CourseID,
		&version.VersionNumber,
		&version.Title,
		&version.ShortDescription,
		&version.Requirements,
		&version.LearningOutcomes,
		&version.TargetAudience,
		&version.Price,
		&version.ThumbnailURL,
		&version.VideoURL,
		&snapshotJSON,
		&version.PublishStatus,
		&version.VersionNotes,
		&version.CreatedBy,
		&version.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	version.CurriculumSnapshot = snapshotJSON

	return &version, nil
}
