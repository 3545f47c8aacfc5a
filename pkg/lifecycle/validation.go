package lifecycle

import (
	"errors"
	"fmt"

	"github.com/courseloom/courseloom/pkg/models"
	"github.com/go-playground/validator/v10"
)

// Content completeness thresholds for submission.
const (
	minTitleLength            = 5
	minShortDescriptionLength = 20
	minDurationHours          = 0.5
	minLessonCount            = 3
)

// ValidateForSubmission enumerates every content completeness problem without
// mutating state. All violated rules are collected and returned together, so a
// caller sees the complete list in one round trip. An empty slice means the
// course is ready for review.
func (s *Service) ValidateForSubmission(course *models.Course) []string {
	violations := make([]string, 0)

	err := s.validate.Struct(course)
	if err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldError := range fieldErrors {
				violations = append(violations, submissionRuleMessage(fieldError))
			}
		} else {
			violations = append(violations, err.Error())
		}
	}

	if course.DurationHours < minDurationHours {
		violations = append(violations,
			fmt.Sprintf("total duration must be at least %.1f hours", minDurationHours))
	}

	if course.TotalLessonCount() < minLessonCount {
		violations = append(violations,
			fmt.Sprintf("course must contain at least %d lessons", minLessonCount))
	}

	return violations
}

// submissionRuleMessage turns a struct tag violation into the message shown to
// instructors in the pre-flight checklist.
func submissionRuleMessage(fieldError validator.FieldError) string {
	switch fieldError.Field() {
	case "Title":
		return fmt.Sprintf("title must be at least %d characters", minTitleLength)
	case "ShortDescription":
		return fmt.Sprintf("short description must be at least %d characters", minShortDescriptionLength)
	case "Requirements":
		return "requirements must not be empty"
	case "LearningOutcomes":
		return "learning outcomes must not be empty"
	case "TargetAudience":
		return "target audience must not be empty"
	case "ThumbnailURL":
		return "a thumbnail image is required"
	default:
		return fmt.Sprintf("%s is invalid (%s)", fieldError.Field(), fieldError.Tag())
	}
}
