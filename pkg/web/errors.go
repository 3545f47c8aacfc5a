package web

import (
	"errors"

	"github.com/courseloom/courseloom/pkg/catalog"
	"github.com/courseloom/courseloom/pkg/lifecycle"
	"github.com/courseloom/courseloom/pkg/persistence"
	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func unauthenticated(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(401).
		WithInstance(c.Path()).
		WithType("unauthenticated").
		WithDetail(detail)

	return c.Status(fiber.StatusUnauthorized).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleLifecycleError maps the lifecycle error taxonomy onto problem responses.
func handleLifecycleError(c fiber.Ctx, err error) error {
	switch {
	case lifecycle.IsValidationFailed(err):
		var validationErr *lifecycle.ValidationError
		if errors.As(err, &validationErr) {
			problem := problems.NewStatusProblem(422).
				WithInstance(c.Path()).
				WithType("course_incomplete").
				WithDetail(err.Error())

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"type":       problem.Type,
				"title":      problem.Title,
				"status":     problem.Status,
				"detail":     problem.Detail,
				"instance":   problem.Instance,
				"violations": validationErr.Violations,
			})
		}

		return badRequest(c, err.Error())

	case errors.Is(err, lifecycle.ErrMissingReason):
		return badRequest(c, "A rejection reason is required")

	case errors.Is(err, lifecycle.ErrVersionMismatch):
		return badRequest(c, "Version does not belong to this course")

	case lifecycle.IsIllegalTransition(err):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("illegal_transition").
			WithDetail(err.Error())

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, lifecycle.ErrConcurrentModification):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("conflict").
			WithDetail("The course was modified concurrently; retry with fresh state")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case lifecycle.IsUnauthorized(err):
		problem := problems.NewStatusProblem(403).
			WithInstance(c.Path()).
			WithType("forbidden").
			WithDetail(err.Error())

		return c.Status(fiber.StatusForbidden).JSON(problem)

	case errors.Is(err, lifecycle.ErrCourseNotFound):
		return notFound(c, "Course not found")

	case errors.Is(err, lifecycle.ErrVersionNotFound):
		return notFound(c, "Course version not found")

	default:
		return internalError(c, err)
	}
}

// handleCatalogError maps catalog service errors onto problem responses.
func handleCatalogError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrCourseNotFound):
		return notFound(c, "Course not found")

	case errors.Is(err, catalog.ErrCourseLocked):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("course_locked").
			WithDetail(err.Error())

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, catalog.ErrNotInstructor), errors.Is(err, catalog.ErrNotCourseOwner):
		problem := problems.NewStatusProblem(403).
			WithInstance(c.Path()).
			WithType("forbidden").
			WithDetail(err.Error())

		return c.Status(fiber.StatusForbidden).JSON(problem)

	case errors.Is(err, persistence.ErrInvalidSortField),
		errors.Is(err, persistence.ErrInvalidCourseStatus):
		return badRequest(c, err.Error())

	default:
		return internalError(c, err)
	}
}
