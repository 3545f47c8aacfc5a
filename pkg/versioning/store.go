// Package versioning captures and serves immutable point-in-time snapshots of
// course content, decoupled from the lifecycle's status field.
package versioning

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/persistence"
	"github.com/google/uuid"
)

// Store captures and restores course content snapshots.
type Store struct {
	persistence persistence.Persistence
	now         func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the snapshot timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a new version snapshot store.
func NewStore(persistence persistence.Persistence, opts ...Option) *Store {
	store := &Store{
		persistence: persistence,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Capture snapshots the course's current content fields and curriculum tree.
// The repository assigns the next version number for the course atomically.
// The course's status field is never touched.
func (s *Store) Capture(ctx context.Context, course *models.Course, actorID, notes string) (*models.CourseVersion, error) {
	snapshot, err := MarshalCurriculum(course.Chapters)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize curriculum: %w", err)
	}

	version := &models.CourseVersion{
		ID:                 uuid.New().String(),
		CourseID:           course.ID,
		Title:              course.Title,
		ShortDescription:   course.ShortDescription,
		Requirements:       course.Requirements,
		LearningOutcomes:   course.LearningOutcomes,
		TargetAudience:     course.TargetAudience,
		Price:              course.Price,
		ThumbnailURL:       course.ThumbnailURL,
		VideoURL:           course.VideoURL,
		CurriculumSnapshot: snapshot,
		PublishStatus:      course.Status.Label(),
		VersionNotes:       notes,
		CreatedBy:          actorID,
		CreatedAt:          s.now().UTC(),
	}

	if err := s.persistence.Versions().Save(ctx, version); err != nil {
		return nil, fmt.Errorf("failed to save course version: %w", err)
	}

	return version, nil
}

// GetByID returns the snapshot or ErrVersionNotFound.
func (s *Store) GetByID(ctx context.Context, versionID string) (*models.CourseVersion, error) {
	version, err := s.persistence.Versions().GetByID(ctx, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course version: %w", err)
	}

	if version == nil {
		return nil, persistence.ErrVersionNotFound
	}

	return version, nil
}

// ListForCourse returns all snapshots for the course, newest first.
func (s *Store) ListForCourse(ctx context.Context, courseID string) ([]*models.CourseVersion, error) {
	versions, err := s.persistence.Versions().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course versions: %w", err)
	}

	return versions, nil
}

// MarshalCurriculum serializes a curriculum tree into its snapshot form and
// validates it against the snapshot schema.
func MarshalCurriculum(chapters []*models.Chapter) (json.RawMessage, error) {
	if chapters == nil {
		chapters = []*models.Chapter{}
	}

	snapshot, err := json.Marshal(chapters)
	if err != nil {
		return nil, err
	}

	if err := validateCurriculumSnapshot(snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// UnmarshalCurriculum validates a snapshot against the schema and decodes it
// back into a curriculum tree.
func UnmarshalCurriculum(snapshot json.RawMessage) ([]*models.Chapter, error) {
	if err := validateCurriculumSnapshot(snapshot); err != nil {
		return nil, err
	}

	var chapters []*models.Chapter
	if err := json.Unmarshal(snapshot, &chapters); err != nil {
		return nil, fmt.Errorf("failed to decode curriculum snapshot: %w", err)
	}

	return chapters, nil
}
