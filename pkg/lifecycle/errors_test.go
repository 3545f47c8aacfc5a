package lifecycle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestIllegalTransitionError(t *testing.T) {
	err := &IllegalTransitionError{From: models.CourseStatusDraft, To: models.CourseStatusPublished}

	assert.True(t, IsIllegalTransition(err))
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, "illegal status transition from draft to published", err.Error())
}

func TestUnauthorizedError(t *testing.T) {
	err := &UnauthorizedError{Required: models.RoleAdmin, ActorRoles: []models.Role{models.RoleInstructor}}

	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "operation requires role admin, actor holds: instructor", err.Error())

	anonymous := &UnauthorizedError{Required: models.RoleAdmin}
	assert.Equal(t, "operation requires role admin, actor holds: none", anonymous.Error())
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Violations: []string{"title must be at least 5 characters", "course must contain at least 3 lessons"}}

	assert.True(t, IsValidationFailed(err))
	assert.Contains(t, err.Error(), "title must be at least 5 characters")
	assert.Contains(t, err.Error(), "course must contain at least 3 lessons")
}

func TestErrorHelpersSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", &IllegalTransitionError{From: models.CourseStatusArchived, To: models.CourseStatusInReview})
	assert.True(t, IsIllegalTransition(wrapped))
	assert.False(t, IsUnauthorized(wrapped))

	var illegalErr *IllegalTransitionError
	assert.True(t, errors.As(wrapped, &illegalErr))
	assert.Equal(t, models.CourseStatusArchived, illegalErr.From)
}
