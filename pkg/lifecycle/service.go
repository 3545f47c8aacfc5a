// Package lifecycle implements the course publication workflow: role-gated
// status transitions with audit logging, content validation and version
// snapshots. The service is the sole mutator of a course's status field.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/courseloom/courseloom/pkg/eventbus"
	"github.com/courseloom/courseloom/pkg/events"
	"github.com/courseloom/courseloom/pkg/identity"
	"github.com/courseloom/courseloom/pkg/lock"
	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/otelhelper"
	"github.com/courseloom/courseloom/pkg/persistence"
	"github.com/courseloom/courseloom/pkg/versioning"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service orchestrates course lifecycle transitions.
type Service struct {
	persistence persistence.Persistence
	authorizer  identity.Authorizer
	versions    *versioning.Store
	eventBus    eventbus.EventPublisher
	locker      lock.Locker
	tracer      trace.Tracer
	logger      *slog.Logger
	validate    *validator.Validate
	now         func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithEventBus wires the outbound event publisher. Without it, transitions
// still commit; they just notify nobody.
func WithEventBus(bus eventbus.EventPublisher) Option {
	return func(s *Service) { s.eventBus = bus }
}

// WithLocker serializes transitions per course before the persistence-level
// compare-and-swap gets a chance to reject them.
func WithLocker(locker lock.Locker) Option {
	return func(s *Service) { s.locker = locker }
}

// WithTracer enables a span per lifecycle operation.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithClock overrides the time source; used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the lifecycle service.
func NewService(p persistence.Persistence, authorizer identity.Authorizer, versions *versioning.Store, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		persistence: p,
		authorizer:  authorizer,
		versions:    versions,
		logger:      logger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// transitionSpec describes one business action routed through the shared
// transition primitive.
type transitionSpec struct {
	name             string
	target           models.CourseStatus
	requiredRole     models.Role
	requireOwnership bool
	reason           string
	metadata         map[string]any
	validate         func(course *models.Course) error
	apply            func(course *models.Course, now time.Time)
	captureVersion   bool
	versionNotes     string
}

// SubmitForReview moves a draft or rejected course into review. The actor must
// own the course and hold the instructor role; the course content must pass
// every completeness rule. On success a version snapshot is captured and the
// rejection reason from any earlier review round is cleared.
func (s *Service) SubmitForReview(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:             "submit_for_review",
		target:           models.CourseStatusInReview,
		requiredRole:     models.RoleInstructor,
		requireOwnership: true,
		validate: func(course *models.Course) error {
			if violations := s.ValidateForSubmission(course); len(violations) > 0 {
				return &ValidationError{Violations: violations}
			}

			return nil
		},
		apply: func(course *models.Course, now time.Time) {
			course.SubmittedAt = &now
			course.RejectionReason = ""
		},
		captureVersion: true,
		versionNotes:   "submitted for review",
	})
}

// WithdrawFromReview pulls a course back to draft before a review decision.
func (s *Service) WithdrawFromReview(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:             "withdraw_from_review",
		target:           models.CourseStatusDraft,
		requiredRole:     models.RoleInstructor,
		requireOwnership: true,
	})
}

// Publish makes a reviewed or archived course live for students.
func (s *Service) Publish(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:         "publish",
		target:       models.CourseStatusPublished,
		requiredRole: models.RoleAdmin,
		apply: func(course *models.Course, now time.Time) {
			course.PublishedAt = &now
		},
		captureVersion: true,
		versionNotes:   "published",
	})
}

// Reject sends a course in review back to its instructor with a mandatory reason.
func (s *Service) Reject(ctx context.Context, courseID string, actor identity.Actor, reason string) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:         "reject",
		target:       models.CourseStatusRejected,
		requiredRole: models.RoleAdmin,
		reason:       reason,
		validate: func(course *models.Course) error {
			if strings.TrimSpace(reason) == "" {
				return ErrMissingReason
			}

			return nil
		},
		apply: func(course *models.Course, now time.Time) {
			course.ReviewedAt = &now
			course.RejectionReason = reason
		},
	})
}

// Archive retires a published course from the catalog.
func (s *Service) Archive(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:         "archive",
		target:       models.CourseStatusArchived,
		requiredRole: models.RoleAdmin,
		apply: func(course *models.Course, now time.Time) {
			course.ArchivedAt = &now
		},
	})
}

// SoftDelete hides a course everywhere while keeping it recoverable.
func (s *Service) SoftDelete(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:         "soft_delete",
		target:       models.CourseStatusSoftDeleted,
		requiredRole: models.RoleAdmin,
	})
}

// Restore recovers a soft-deleted course back to draft.
func (s *Service) Restore(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error) {
	return s.transition(ctx, courseID, actor, transitionSpec{
		name:         "restore",
		target:       models.CourseStatusDraft,
		requiredRole: models.RoleAdmin,
	})
}

// transition is the shared primitive all business actions funnel through:
// legality, authorization, action-specific validation, mutation, atomic
// persist of course+audit, then event emission. Any failure aborts with zero
// side effects; the audit entry only exists for committed transitions.
func (s *Service) transition(ctx context.Context, courseID string, actor identity.Actor, spec transitionSpec) (*models.Course, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire course lock: %w", err)
		}

		defer release()
	}

	if s.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, s.tracer, "lifecycle."+spec.name,
			attribute.String(otelhelper.CourseIDKey, courseID),
			attribute.String(otelhelper.CourseStatusKey, string(spec.target)),
			attribute.String(otelhelper.ActorIDKey, actor.ID),
		)
		defer span.End()
	}

	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	currentStatus := course.Status

	if !currentStatus.CanTransitionTo(spec.target) {
		return nil, &IllegalTransitionError{From: currentStatus, To: spec.target}
	}

	if !s.authorizer.HasRole(actor, spec.requiredRole) {
		return nil, &UnauthorizedError{Required: spec.requiredRole, ActorRoles: actor.Roles}
	}

	if spec.requireOwnership && !s.authorizer.OwnsCourse(actor, course) && !s.authorizer.HasRole(actor, models.RoleAdmin) {
		return nil, &UnauthorizedError{Required: spec.requiredRole, ActorRoles: actor.Roles}
	}

	if spec.validate != nil {
		if err := spec.validate(course); err != nil {
			return nil, err
		}
	}

	now := s.now().UTC()

	course.Status = spec.target
	course.IsLocked = !spec.target.IsEditable()
	course.Touch(actor.ID, now)

	if spec.apply != nil {
		spec.apply(course, now)
	}

	var capturedVersion *models.CourseVersion

	if spec.captureVersion {
		capturedVersion, err = s.versions.Capture(ctx, course, actor.ID, spec.versionNotes)
		if err != nil {
			return nil, fmt.Errorf("failed to capture version snapshot: %w", err)
		}

		course.VersionNumber = capturedVersion.VersionNumber
	}

	entry := s.newAuditEntry(ctx, course.ID, actor.ID, currentStatus, spec.target, spec.reason, spec.metadata, now)

	if err := s.persistence.Courses().ApplyTransition(ctx, course, currentStatus, entry); err != nil {
		return nil, fmt.Errorf("failed to commit transition: %w", err)
	}

	s.logger.InfoContext(ctx, "course transitioned",
		"course_id", course.ID,
		"from_status", currentStatus,
		"to_status", spec.target,
		"actor_id", actor.ID,
	)

	s.emit(ctx, course.ID, events.CourseStatusChanged{
		BaseEvent:    events.NewBaseEvent(events.CourseStatusChangedEvent, course.ID),
		CourseTitle:  course.Title,
		FromStatus:   currentStatus,
		ToStatus:     spec.target,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		Reason:       spec.reason,
		InstructorID: course.InstructorID,
	})

	return course, nil
}

// CaptureVersion snapshots the course content on demand, without touching its
// lifecycle status. Allowed for admins and the owning instructor.
func (s *Service) CaptureVersion(ctx context.Context, courseID string, actor identity.Actor, notes string) (*models.CourseVersion, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwnerOrAdmin(actor, course); err != nil {
		return nil, err
	}

	version, err := s.versions.Capture(ctx, course, actor.ID, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to capture version snapshot: %w", err)
	}

	course.VersionNumber = version.VersionNumber
	course.Touch(actor.ID, s.now().UTC())

	if err := s.persistence.Courses().Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course after capture: %w", err)
	}

	s.emit(ctx, course.ID, events.CourseVersionCaptured{
		BaseEvent:     events.NewBaseEvent(events.CourseVersionCapturedEvent, course.ID),
		VersionID:     version.ID,
		VersionNumber: version.VersionNumber,
		ActorID:       actor.ID,
		Notes:         notes,
	})

	return version, nil
}

// RestoreFromVersion copies a snapshot's content back onto the live course and
// increments its version number. The lifecycle status is left untouched; the
// restore is still recorded as an audit entry naming the source version.
func (s *Service) RestoreFromVersion(ctx context.Context, courseID, versionID string, actor identity.Actor) (*models.Course, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire course lock: %w", err)
		}

		defer release()
	}

	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	version, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}

	if version.CourseID != course.ID {
		return nil, ErrVersionMismatch
	}

	if err := s.authorizeOwnerOrAdmin(actor, course); err != nil {
		return nil, err
	}

	chapters, err := versioning.UnmarshalCurriculum(version.CurriculumSnapshot)
	if err != nil {
		return nil, fmt.Errorf("refusing to restore from version %s: %w", version.ID, err)
	}

	currentStatus := course.Status
	now := s.now().UTC()

	course.Title = version.Title
	course.ShortDescription = version.ShortDescription
	course.Requirements = version.Requirements
	course.LearningOutcomes = version.LearningOutcomes
	course.TargetAudience = version.TargetAudience
	course.Price = version.Price
	course.ThumbnailURL = version.ThumbnailURL
	course.VideoURL = version.VideoURL
	course.Chapters = chapters
	course.VersionNumber++
	course.Touch(actor.ID, now)

	entry := s.newAuditEntry(ctx, course.ID, actor.ID, currentStatus, currentStatus, "", map[string]any{
		"restored_from_version":    version.VersionNumber,
		"restored_from_version_id": version.ID,
	}, now)

	if err := s.persistence.Courses().ApplyTransition(ctx, course, currentStatus, entry); err != nil {
		return nil, fmt.Errorf("failed to commit version restore: %w", err)
	}

	s.emit(ctx, course.ID, events.CourseVersionRestored{
		BaseEvent:        events.NewBaseEvent(events.CourseVersionRestoredEvent, course.ID),
		VersionID:        version.ID,
		VersionNumber:    version.VersionNumber,
		NewVersionNumber: course.VersionNumber,
		ActorID:          actor.ID,
	})

	return course, nil
}

// AvailableTransitions returns the legal target statuses for the course's
// current status, for driving UIs.
func (s *Service) AvailableTransitions(ctx context.Context, courseID string) ([]models.CourseStatus, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return course.Status.AllowedTransitions(), nil
}

// AuditHistory returns all audit entries for the course, newest first.
func (s *Service) AuditHistory(ctx context.Context, courseID string) ([]*models.AuditEntry, error) {
	if _, err := s.loadCourse(ctx, courseID); err != nil {
		return nil, err
	}

	entries, err := s.persistence.AuditLog().ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}

// ValidateCourse runs the submission checklist against the stored course.
func (s *Service) ValidateCourse(ctx context.Context, courseID string) ([]string, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	return s.ValidateForSubmission(course), nil
}

func (s *Service) loadCourse(ctx context.Context, courseID string) (*models.Course, error) {
	course, err := s.persistence.Courses().GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if course == nil {
		return nil, ErrCourseNotFound
	}

	return course, nil
}

func (s *Service) authorizeOwnerOrAdmin(actor identity.Actor, course *models.Course) error {
	if s.authorizer.HasRole(actor, models.RoleAdmin) {
		return nil
	}

	if s.authorizer.HasRole(actor, models.RoleInstructor) && s.authorizer.OwnsCourse(actor, course) {
		return nil
	}

	return &UnauthorizedError{Required: models.RoleInstructor, ActorRoles: actor.Roles}
}

func (s *Service) newAuditEntry(ctx context.Context, courseID, actorID string, from, to models.CourseStatus, reason string, metadata map[string]any, at time.Time) *models.AuditEntry {
	info := identity.ClientInfoFrom(ctx)

	return &models.AuditEntry{
		ID:         uuid.New().String(),
		CourseID:   courseID,
		ActorID:    actorID,
		FromStatus: from,
		ToStatus:   to,
		Reason:     reason,
		Metadata:   metadata,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		CreatedAt:  at,
	}
}

// emit publishes a lifecycle event. Emission is best-effort relative to the
// committed transition: publish failures are logged and swallowed, never
// surfaced as a lifecycle error.
func (s *Service) emit(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(context.WithoutCancel(ctx), key, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish lifecycle event",
			"event_type", event.GetType(),
			"course_id", key,
			"error", err,
		)
	}
}
