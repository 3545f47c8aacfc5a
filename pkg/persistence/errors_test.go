package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseError_WrapsSentinel(t *testing.T) {
	err := NewCourseError("GetByID", "course-1", ErrCourseNotFound)

	assert.True(t, errors.Is(err, ErrCourseNotFound))
	assert.True(t, IsCourseNotFound(err))
	assert.Contains(t, err.Error(), "GetByID")
	assert.Contains(t, err.Error(), "course-1")
}

func TestCourseError_Message(t *testing.T) {
	err := &CourseError{
		Op:       "ApplyTransition",
		CourseID: "course-2",
		Err:      ErrConcurrentModification,
		Message:  "status changed between read and write",
	}

	assert.Contains(t, err.Error(), "status changed between read and write")
	assert.True(t, IsConcurrentModification(err))
}

func TestVersionError_WrapsSentinel(t *testing.T) {
	err := &VersionError{Op: "GetByID", CourseID: "course-1", VersionID: "v-9", Err: ErrVersionNotFound}

	assert.True(t, IsVersionNotFound(err))
	assert.Contains(t, err.Error(), "v-9")
}

func TestIsHelpers_WrappedDeeper(t *testing.T) {
	wrapped := fmt.Errorf("loading course: %w", ErrCourseNotFound)

	assert.True(t, IsCourseNotFound(wrapped))
	assert.False(t, IsConcurrentModification(wrapped))
	assert.False(t, IsCourseNotFound(nil))
}
