package lifecycle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/courseloom/courseloom/pkg/eventbus"
	"github.com/courseloom/courseloom/pkg/events"
	"github.com/courseloom/courseloom/pkg/identity"
	"github.com/courseloom/courseloom/pkg/lock"
	"github.com/courseloom/courseloom/pkg/log"
	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/persistence"
	"github.com/courseloom/courseloom/pkg/versioning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersistence struct {
	courses  *fakeCourseRepository
	audit    *fakeAuditLogRepository
	versions *fakeVersionRepository
}

func newFakePersistence() *fakePersistence {
	audit := &fakeAuditLogRepository{}

	return &fakePersistence{
		courses:  &fakeCourseRepository{data: make(map[string]*models.Course), audit: audit},
		audit:    audit,
		versions: &fakeVersionRepository{},
	}
}

func (p *fakePersistence) Courses() persistence.CourseRepository    { return p.courses }
func (p *fakePersistence) AuditLog() persistence.AuditLogRepository { return p.audit }
func (p *fakePersistence) Versions() persistence.VersionRepository  { return p.versions }
func (p *fakePersistence) HealthCheck(_ context.Context) error      { return nil }
func (p *fakePersistence) Close(_ context.Context) error            { return nil }

type fakeCourseRepository struct {
	mu            sync.Mutex
	data          map[string]*models.Course
	audit         *fakeAuditLogRepository
	transitionErr error
}

func (r *fakeCourseRepository) GetByID(_ context.Context, id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	course, ok := r.data[id]
	if !ok {
		return nil, nil
	}

	clone := *course

	return &clone, nil
}

func (r *fakeCourseRepository) Save(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *course
	r.data[course.ID] = &clone

	return nil
}

func (r *fakeCourseRepository) List(_ context.Context, _ persistence.ListCoursesOptions) (*persistence.CourseListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := &persistence.CourseListResult{}
	for _, course := range r.data {
		clone := *course
		result.Courses = append(result.Courses, &clone)
	}

	result.TotalCount = int64(len(result.Courses))

	return result, nil
}

func (r *fakeCourseRepository) ApplyTransition(_ context.Context, course *models.Course, expectedStatus models.CourseStatus, entry *models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.transitionErr != nil {
		return r.transitionErr
	}

	stored, ok := r.data[course.ID]
	if !ok {
		return persistence.ErrCourseNotFound
	}

	if stored.Status != expectedStatus {
		return persistence.ErrConcurrentModification
	}

	clone := *course
	r.data[course.ID] = &clone
	r.audit.append(entry)

	return nil
}

type fakeAuditLogRepository struct {
	mu      sync.Mutex
	entries []*models.AuditEntry
}

func (r *fakeAuditLogRepository) append(entry *models.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
}

func (r *fakeAuditLogRepository) ListByCourse(_ context.Context, courseID string) ([]*models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.AuditEntry, 0)
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].CourseID == courseID {
			result = append(result, r.entries[i])
		}
	}

	return result, nil
}

type fakeVersionRepository struct {
	mu       sync.Mutex
	versions []*models.CourseVersion
}

func (r *fakeVersionRepository) Save(_ context.Context, version *models.CourseVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	for _, existing := range r.versions {
		if existing.CourseID == version.CourseID && existing.VersionNumber >= next {
			next = existing.VersionNumber + 1
		}
	}

	version.VersionNumber = next
	clone := *version
	r.versions = append(r.versions, &clone)

	return nil
}

func (r *fakeVersionRepository) GetByID(_ context.Context, id string) (*models.CourseVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, version := range r.versions {
		if version.ID == id {
			clone := *version

			return &clone, nil
		}
	}

	return nil, nil
}

func (r *fakeVersionRepository) ListByCourse(_ context.Context, courseID string) ([]*models.CourseVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.CourseVersion, 0)
	for _, version := range r.versions {
		if version.CourseID == courseID {
			clone := *version
			result = append(result, &clone)
		}
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result, nil
}

type capturingPublisher struct {
	mu        sync.Mutex
	published []eventbus.Event
}

func (p *capturingPublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.published = append(p.published, event)

	return nil
}

func (p *capturingPublisher) Events() []eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]eventbus.Event{}, p.published...)
}

var (
	instructor      = identity.Actor{ID: "instructor-1", Name: "Nina Alvarez", Roles: []models.Role{models.RoleInstructor}}
	otherInstructor = identity.Actor{ID: "instructor-2", Name: "Theo Brandt", Roles: []models.Role{models.RoleInstructor}}
	admin           = identity.Actor{ID: "admin-1", Name: "Priya Shah", Roles: []models.Role{models.RoleAdmin}}
)

func completeCourse(id string) *models.Course {
	return &models.Course{
		ID:               id,
		Title:            "Practical Distributed Systems",
		ShortDescription: "Build and operate distributed systems with confidence.",
		Requirements:     "Basic programming experience",
		LearningOutcomes: "Design, build and debug distributed services",
		TargetAudience:   "Backend engineers",
		Price:            49.99,
		ThumbnailURL:     "https://cdn.example.com/thumbs/dist-sys.png",
		DurationHours:    6.5,
		Status:           models.CourseStatusDraft,
		InstructorID:     instructor.ID,
		VersionNumber:    1,
		Chapters: []*models.Chapter{
			{
				ID:       "ch-1",
				Title:    "Foundations",
				Position: 1,
				Lessons: []*models.Lesson{
					{ID: "l-1", Title: "Why distribute", Position: 1, DurationMinutes: 30, Type: models.LessonTypeVideo},
					{ID: "l-2", Title: "Failure modes", Position: 2, DurationMinutes: 45, Type: models.LessonTypeVideo},
				},
			},
			{
				ID:       "ch-2",
				Title:    "Consensus",
				Position: 2,
				Lessons: []*models.Lesson{
					{ID: "l-3", Title: "Leader election", Position: 1, DurationMinutes: 60, Type: models.LessonTypeVideo, IsPreview: true},
				},
			},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func newTestService(t *testing.T) (*Service, *fakePersistence, *capturingPublisher) {
	t.Helper()

	p := newFakePersistence()
	publisher := &capturingPublisher{}
	logger := log.WithModule("lifecycle-test")

	service := NewService(p, identity.NewAuthorizer(), versioning.NewStore(p), logger,
		WithEventBus(publisher),
		WithLocker(lock.NewMemoryLocker()),
	)

	return service, p, publisher
}

func seedCourse(t *testing.T, p *fakePersistence, course *models.Course) {
	t.Helper()
	require.NoError(t, p.courses.Save(context.Background(), course))
}

func TestSubmitForReview(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds for complete draft owned by instructor", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		seedCourse(t, p, completeCourse("course-1"))

		course, err := service.SubmitForReview(ctx, "course-1", instructor)
		require.NoError(t, err)

		assert.Equal(t, models.CourseStatusInReview, course.Status)
		assert.True(t, course.IsLocked)
		require.NotNil(t, course.SubmittedAt)
		assert.Equal(t, instructor.ID, course.LastModifiedBy)

		entries, err := p.audit.ListByCourse(ctx, "course-1")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, models.CourseStatusDraft, entries[0].FromStatus)
		assert.Equal(t, models.CourseStatusInReview, entries[0].ToStatus)
		assert.Equal(t, instructor.ID, entries[0].ActorID)

		versions, err := p.versions.ListByCourse(ctx, "course-1")
		require.NoError(t, err)
		require.Len(t, versions, 1)
		assert.Equal(t, 1, versions[0].VersionNumber)

		published := publisher.Events()
		require.Len(t, published, 1)
		changed, ok := published[0].(events.CourseStatusChanged)
		require.True(t, ok)
		assert.Equal(t, models.CourseStatusInReview, changed.ToStatus)
	})

	t.Run("collects every validation violation", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		incomplete := completeCourse("course-2")
		incomplete.Title = "Go"
		incomplete.ShortDescription = "Too short"
		incomplete.ThumbnailURL = ""
		incomplete.DurationHours = 0.25
		incomplete.Chapters = nil
		seedCourse(t, p, incomplete)

		_, err := service.SubmitForReview(ctx, "course-2", instructor)
		require.Error(t, err)
		assert.True(t, IsValidationFailed(err))

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Violations, 5)

		stored, getErr := p.courses.GetByID(ctx, "course-2")
		require.NoError(t, getErr)
		assert.Equal(t, models.CourseStatusDraft, stored.Status)

		entries, auditErr := p.audit.ListByCourse(ctx, "course-2")
		require.NoError(t, auditErr)
		assert.Empty(t, entries)
		assert.Empty(t, publisher.Events())
	})

	t.Run("rejects non-owning instructor", func(t *testing.T) {
		service, p, _ := newTestService(t)
		seedCourse(t, p, completeCourse("course-3"))

		_, err := service.SubmitForReview(ctx, "course-3", otherInstructor)
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("admin may submit on behalf of instructor", func(t *testing.T) {
		service, p, _ := newTestService(t)
		seedCourse(t, p, completeCourse("course-4"))

		course, err := service.SubmitForReview(ctx, "course-4", admin)
		require.NoError(t, err)
		assert.Equal(t, models.CourseStatusInReview, course.Status)
	})

	t.Run("resubmission after rejection clears rejection reason", func(t *testing.T) {
		service, p, _ := newTestService(t)
		seedCourse(t, p, completeCourse("course-5"))

		_, err := service.SubmitForReview(ctx, "course-5", instructor)
		require.NoError(t, err)
		_, err = service.Reject(ctx, "course-5", admin, "thumbnail is a placeholder")
		require.NoError(t, err)

		course, err := service.SubmitForReview(ctx, "course-5", instructor)
		require.NoError(t, err)
		assert.Equal(t, models.CourseStatusInReview, course.Status)
		assert.Empty(t, course.RejectionReason)

		versions, err := p.versions.ListByCourse(ctx, "course-5")
		require.NoError(t, err)
		require.Len(t, versions, 2)
		assert.Equal(t, 2, versions[0].VersionNumber)
	})

	t.Run("returns not found for unknown course", func(t *testing.T) {
		service, _, _ := newTestService(t)

		_, err := service.SubmitForReview(ctx, "missing", instructor)
		require.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a non-empty reason", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		inReview := completeCourse("course-1")
		inReview.Status = models.CourseStatusInReview
		seedCourse(t, p, inReview)

		_, err := service.Reject(ctx, "course-1", admin, "   ")
		require.ErrorIs(t, err, ErrMissingReason)

		stored, getErr := p.courses.GetByID(ctx, "course-1")
		require.NoError(t, getErr)
		assert.Equal(t, models.CourseStatusInReview, stored.Status)
		assert.Empty(t, publisher.Events())
	})

	t.Run("records reason and review timestamp", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		inReview := completeCourse("course-2")
		inReview.Status = models.CourseStatusInReview
		seedCourse(t, p, inReview)

		course, err := service.Reject(ctx, "course-2", admin, "curriculum ends mid-chapter")
		require.NoError(t, err)

		assert.Equal(t, models.CourseStatusRejected, course.Status)
		assert.Equal(t, "curriculum ends mid-chapter", course.RejectionReason)
		require.NotNil(t, course.ReviewedAt)
		assert.False(t, course.IsLocked)

		entries, err := p.audit.ListByCourse(ctx, "course-2")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "curriculum ends mid-chapter", entries[0].Reason)

		published := publisher.Events()
		require.Len(t, published, 1)
		changed := published[0].(events.CourseStatusChanged)
		assert.Equal(t, "curriculum ends mid-chapter", changed.Reason)
	})

	t.Run("instructors cannot reject", func(t *testing.T) {
		service, p, _ := newTestService(t)
		inReview := completeCourse("course-3")
		inReview.Status = models.CourseStatusInReview
		seedCourse(t, p, inReview)

		_, err := service.Reject(ctx, "course-3", instructor, "looks wrong")
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes a reviewed course", func(t *testing.T) {
		service, p, _ := newTestService(t)
		inReview := completeCourse("course-1")
		inReview.Status = models.CourseStatusInReview
		seedCourse(t, p, inReview)

		course, err := service.Publish(ctx, "course-1", admin)
		require.NoError(t, err)

		assert.Equal(t, models.CourseStatusPublished, course.Status)
		assert.True(t, course.IsLocked)
		require.NotNil(t, course.PublishedAt)

		versions, err := p.versions.ListByCourse(ctx, "course-1")
		require.NoError(t, err)
		require.Len(t, versions, 1)
		assert.Equal(t, "Published", versions[0].PublishStatus)
	})

	t.Run("republishes an archived course", func(t *testing.T) {
		service, p, _ := newTestService(t)
		archived := completeCourse("course-2")
		archived.Status = models.CourseStatusArchived
		seedCourse(t, p, archived)

		course, err := service.Publish(ctx, "course-2", admin)
		require.NoError(t, err)
		assert.Equal(t, models.CourseStatusPublished, course.Status)
	})

	t.Run("rejects illegal edge from draft", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		seedCourse(t, p, completeCourse("course-3"))

		_, err := service.Publish(ctx, "course-3", admin)
		require.Error(t, err)
		assert.True(t, IsIllegalTransition(err))

		var illegalErr *IllegalTransitionError
		require.ErrorAs(t, err, &illegalErr)
		assert.Equal(t, models.CourseStatusDraft, illegalErr.From)
		assert.Equal(t, models.CourseStatusPublished, illegalErr.To)
		assert.Empty(t, publisher.Events())
	})

	t.Run("loser of a concurrent update leaves no trace", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		inReview := completeCourse("course-4")
		inReview.Status = models.CourseStatusInReview
		seedCourse(t, p, inReview)

		p.courses.transitionErr = persistence.ErrConcurrentModification

		_, err := service.Publish(ctx, "course-4", admin)
		require.ErrorIs(t, err, ErrConcurrentModification)

		entries, auditErr := p.audit.ListByCourse(ctx, "course-4")
		require.NoError(t, auditErr)
		assert.Empty(t, entries)
		assert.Empty(t, publisher.Events())

		stored, getErr := p.courses.GetByID(ctx, "course-4")
		require.NoError(t, getErr)
		assert.Equal(t, models.CourseStatusInReview, stored.Status)
	})
}

func TestArchiveSoftDeleteRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("archive stamps the course and keeps it locked", func(t *testing.T) {
		service, p, _ := newTestService(t)
		published := completeCourse("course-1")
		published.Status = models.CourseStatusPublished
		seedCourse(t, p, published)

		course, err := service.Archive(ctx, "course-1", admin)
		require.NoError(t, err)
		assert.Equal(t, models.CourseStatusArchived, course.Status)
		assert.True(t, course.IsLocked)
		require.NotNil(t, course.ArchivedAt)
	})

	t.Run("soft delete is reachable from every state except in_review", func(t *testing.T) {
		for _, status := range []models.CourseStatus{
			models.CourseStatusDraft,
			models.CourseStatusPublished,
			models.CourseStatusRejected,
			models.CourseStatusArchived,
		} {
			service, p, _ := newTestService(t)
			course := completeCourse("course-" + string(status))
			course.Status = status
			seedCourse(t, p, course)

			deleted, err := service.SoftDelete(ctx, course.ID, admin)
			require.NoError(t, err, "from %s", status)
			assert.Equal(t, models.CourseStatusSoftDeleted, deleted.Status)
		}
	})

	t.Run("soft delete is illegal while a review is pending", func(t *testing.T) {
		service, p, _ := newTestService(t)
		course := completeCourse("course-pending")
		course.Status = models.CourseStatusInReview
		seedCourse(t, p, course)

		_, err := service.SoftDelete(ctx, course.ID, admin)
		require.Error(t, err)
		assert.True(t, IsIllegalTransition(err))
	})

	t.Run("restore recovers to an editable draft", func(t *testing.T) {
		service, p, _ := newTestService(t)
		deleted := completeCourse("course-2")
		deleted.Status = models.CourseStatusSoftDeleted
		deleted.IsLocked = true
		seedCourse(t, p, deleted)

		course, err := service.Restore(ctx, "course-2", admin)
		require.NoError(t, err)
		assert.Equal(t, models.CourseStatusDraft, course.Status)
		assert.False(t, course.IsLocked)
	})

	t.Run("restore requires the admin role", func(t *testing.T) {
		service, p, _ := newTestService(t)
		deleted := completeCourse("course-3")
		deleted.Status = models.CourseStatusSoftDeleted
		seedCourse(t, p, deleted)

		_, err := service.Restore(ctx, "course-3", instructor)
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})
}

func TestWithdrawFromReview(t *testing.T) {
	ctx := context.Background()

	service, p, _ := newTestService(t)
	inReview := completeCourse("course-1")
	inReview.Status = models.CourseStatusInReview
	inReview.IsLocked = true
	seedCourse(t, p, inReview)

	course, err := service.WithdrawFromReview(ctx, "course-1", instructor)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusDraft, course.Status)
	assert.False(t, course.IsLocked)
}

func TestCaptureVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns monotonic version numbers", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		seedCourse(t, p, completeCourse("course-1"))

		first, err := service.CaptureVersion(ctx, "course-1", instructor, "initial draft")
		require.NoError(t, err)
		assert.Equal(t, 1, first.VersionNumber)

		second, err := service.CaptureVersion(ctx, "course-1", instructor, "after edits")
		require.NoError(t, err)
		assert.Equal(t, 2, second.VersionNumber)

		stored, getErr := p.courses.GetByID(ctx, "course-1")
		require.NoError(t, getErr)
		assert.Equal(t, 2, stored.VersionNumber)

		published := publisher.Events()
		require.Len(t, published, 2)
		captured := published[1].(events.CourseVersionCaptured)
		assert.Equal(t, "after edits", captured.Notes)
	})

	t.Run("rejects instructors who do not own the course", func(t *testing.T) {
		service, p, _ := newTestService(t)
		seedCourse(t, p, completeCourse("course-2"))

		_, err := service.CaptureVersion(ctx, "course-2", otherInstructor, "")
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})
}

func TestRestoreFromVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("writes snapshot content back without touching status", func(t *testing.T) {
		service, p, publisher := newTestService(t)
		seedCourse(t, p, completeCourse("course-1"))

		version, err := service.CaptureVersion(ctx, "course-1", instructor, "before rework")
		require.NoError(t, err)

		reworked, err := p.courses.GetByID(ctx, "course-1")
		require.NoError(t, err)
		reworked.Title = "Completely Reworked Title"
		reworked.Chapters = nil
		require.NoError(t, p.courses.Save(ctx, reworked))

		course, err := service.RestoreFromVersion(ctx, "course-1", version.ID, instructor)
		require.NoError(t, err)

		assert.Equal(t, "Practical Distributed Systems", course.Title)
		assert.Len(t, course.Chapters, 2)
		assert.Equal(t, models.CourseStatusDraft, course.Status)
		assert.Equal(t, 2, course.VersionNumber)

		entries, auditErr := p.audit.ListByCourse(ctx, "course-1")
		require.NoError(t, auditErr)
		require.Len(t, entries, 1)
		assert.Equal(t, entries[0].FromStatus, entries[0].ToStatus)
		assert.Equal(t, version.ID, entries[0].Metadata["restored_from_version_id"])

		published := publisher.Events()
		restored := published[len(published)-1].(events.CourseVersionRestored)
		assert.Equal(t, version.VersionNumber, restored.VersionNumber)
		assert.Equal(t, course.VersionNumber, restored.NewVersionNumber)
	})

	t.Run("rejects a version belonging to another course", func(t *testing.T) {
		service, p, _ := newTestService(t)
		seedCourse(t, p, completeCourse("course-2"))
		other := completeCourse("course-3")
		other.InstructorID = otherInstructor.ID
		seedCourse(t, p, other)

		version, err := service.CaptureVersion(ctx, "course-3", admin, "")
		require.NoError(t, err)

		_, err = service.RestoreFromVersion(ctx, "course-2", version.ID, admin)
		require.ErrorIs(t, err, ErrVersionMismatch)
	})

	t.Run("returns not found for unknown version", func(t *testing.T) {
		service, p, _ := newTestService(t)
		seedCourse(t, p, completeCourse("course-4"))

		_, err := service.RestoreFromVersion(ctx, "course-4", "missing", admin)
		require.ErrorIs(t, err, ErrVersionNotFound)
	})
}

func TestAvailableTransitions(t *testing.T) {
	ctx := context.Background()

	service, p, _ := newTestService(t)
	seedCourse(t, p, completeCourse("course-1"))

	targets, err := service.AvailableTransitions(ctx, "course-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.CourseStatus{
		models.CourseStatusInReview,
		models.CourseStatusSoftDeleted,
	}, targets)
}

func TestAuditHistory(t *testing.T) {
	ctx := context.Background()

	service, p, _ := newTestService(t)
	seedCourse(t, p, completeCourse("course-1"))

	_, err := service.SubmitForReview(ctx, "course-1", instructor)
	require.NoError(t, err)
	_, err = service.Publish(ctx, "course-1", admin)
	require.NoError(t, err)

	entries, err := service.AuditHistory(ctx, "course-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.CourseStatusPublished, entries[0].ToStatus)
	assert.Equal(t, models.CourseStatusInReview, entries[1].ToStatus)

	_, err = service.AuditHistory(ctx, "missing")
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestTransitionWithoutEventBus(t *testing.T) {
	ctx := context.Background()

	p := newFakePersistence()
	service := NewService(p, identity.NewAuthorizer(), versioning.NewStore(p), log.WithModule("lifecycle-test"))
	seedCourse(t, p, completeCourse("course-1"))

	course, err := service.SubmitForReview(ctx, "course-1", instructor)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusInReview, course.Status)
}

func TestEmitFailureDoesNotFailTransition(t *testing.T) {
	ctx := context.Background()

	p := newFakePersistence()
	service := NewService(p, identity.NewAuthorizer(), versioning.NewStore(p), log.WithModule("lifecycle-test"),
		WithEventBus(failingPublisher{}),
	)
	seedCourse(t, p, completeCourse("course-1"))

	course, err := service.SubmitForReview(ctx, "course-1", instructor)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusInReview, course.Status)
}

type failingPublisher struct{}

func (failingPublisher) Publish(_ context.Context, _ string, _ eventbus.Event) error {
	return errors.New("broker unavailable")
}
