// Package lifecycle provides standardized error types for lifecycle operations.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/persistence"
)

// Sentinel errors for the lifecycle error taxonomy. All abort a transition
// with zero side effects; none are retried by the engine itself.
var (
	// ErrIllegalTransition indicates the requested edge does not exist in the
	// legality table. Never coerced to a "closest legal" transition.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrUnauthorized indicates the actor's role or ownership is insufficient.
	ErrUnauthorized = errors.New("actor is not authorized for this operation")

	// ErrValidationFailed indicates one or more content completeness rules are
	// unmet; the full list of violations is always carried.
	ErrValidationFailed = errors.New("course content validation failed")

	// ErrMissingReason indicates a rejection was attempted without a reason.
	ErrMissingReason = errors.New("rejection requires a non-empty reason")

	// ErrVersionMismatch indicates the version does not belong to the course.
	ErrVersionMismatch = errors.New("version does not belong to course")

	// Referential and concurrency failures propagate from persistence unchanged.
	ErrCourseNotFound         = persistence.ErrCourseNotFound
	ErrVersionNotFound        = persistence.ErrVersionNotFound
	ErrConcurrentModification = persistence.ErrConcurrentModification
)

// IllegalTransitionError reports the exact rejected edge.
type IllegalTransitionError struct {
	From models.CourseStatus
	To   models.CourseStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// UnauthorizedError reports the required role against what the actor holds.
type UnauthorizedError struct {
	Required   models.Role
	ActorRoles []models.Role
}

func (e *UnauthorizedError) Error() string {
	roles := make([]string, 0, len(e.ActorRoles))
	for _, role := range e.ActorRoles {
		roles = append(roles, string(role))
	}

	held := strings.Join(roles, ", ")
	if held == "" {
		held = "none"
	}

	return fmt.Sprintf("operation requires role %s, actor holds: %s", e.Required, held)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ValidationError carries the complete list of content completeness violations.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("course content validation failed: %s", strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// IsIllegalTransition checks if an error indicates a rejected edge.
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}

// IsUnauthorized checks if an error indicates insufficient role or ownership.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidationFailed checks if an error indicates incomplete course content.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
