package lifecycle

import (
	"testing"

	"github.com/courseloom/courseloom/pkg/identity"
	"github.com/courseloom/courseloom/pkg/log"
	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/versioning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validationService(t *testing.T) *Service {
	t.Helper()

	p := newFakePersistence()

	return NewService(p, identity.NewAuthorizer(), versioning.NewStore(p), log.WithModule("lifecycle-test"))
}

func TestValidateForSubmission(t *testing.T) {
	t.Run("complete course passes", func(t *testing.T) {
		service := validationService(t)

		violations := service.ValidateForSubmission(completeCourse("course-1"))
		assert.Empty(t, violations)
	})

	t.Run("reports each failing rule once", func(t *testing.T) {
		service := validationService(t)
		course := completeCourse("course-1")
		course.Title = "Go"

		violations := service.ValidateForSubmission(course)
		require.Len(t, violations, 1)
		assert.Equal(t, "title must be at least 5 characters", violations[0])
	})

	t.Run("empty course reports every rule", func(t *testing.T) {
		service := validationService(t)
		course := &models.Course{ID: "course-1", Status: models.CourseStatusDraft}

		violations := service.ValidateForSubmission(course)

		assert.Contains(t, violations, "title must be at least 5 characters")
		assert.Contains(t, violations, "short description must be at least 20 characters")
		assert.Contains(t, violations, "requirements must not be empty")
		assert.Contains(t, violations, "learning outcomes must not be empty")
		assert.Contains(t, violations, "target audience must not be empty")
		assert.Contains(t, violations, "a thumbnail image is required")
		assert.Contains(t, violations, "total duration must be at least 0.5 hours")
		assert.Contains(t, violations, "course must contain at least 3 lessons")
		assert.Len(t, violations, 8)
	})

	t.Run("lesson count spans chapters", func(t *testing.T) {
		service := validationService(t)
		course := completeCourse("course-1")
		course.Chapters = []*models.Chapter{
			{ID: "ch-1", Title: "Only chapter", Position: 1, Lessons: []*models.Lesson{
				{ID: "l-1", Title: "Intro", Position: 1, Type: models.LessonTypeVideo},
				{ID: "l-2", Title: "Middle", Position: 2, Type: models.LessonTypeArticle},
			}},
		}

		violations := service.ValidateForSubmission(course)
		require.Len(t, violations, 1)
		assert.Equal(t, "course must contain at least 3 lessons", violations[0])
	})

	t.Run("does not mutate the course", func(t *testing.T) {
		service := validationService(t)
		course := completeCourse("course-1")
		before := *course

		service.ValidateForSubmission(course)

		assert.Equal(t, before.Status, course.Status)
		assert.Equal(t, before.UpdatedAt, course.UpdatedAt)
	})
}
