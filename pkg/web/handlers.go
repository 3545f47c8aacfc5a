// Package web provides HTTP handlers and REST API endpoints for course
// management. The API is a thin driver: authorization decisions, transition
// legality and validation all live in the services it calls.
package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/courseloom/courseloom/pkg/catalog"
	"github.com/courseloom/courseloom/pkg/identity"
	"github.com/courseloom/courseloom/pkg/lifecycle"
	"github.com/courseloom/courseloom/pkg/models"
	"github.com/courseloom/courseloom/pkg/versioning"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// Actor identity headers. Authentication happens upstream; these carry the
// already-authenticated identity into the engine.
const (
	HeaderActorID    = "X-Actor-Id"
	HeaderActorName  = "X-Actor-Name"
	HeaderActorEmail = "X-Actor-Email"
	HeaderActorRoles = "X-Actor-Roles"
)

type APIHandlers struct {
	catalogService   *catalog.Catalog
	lifecycleService *lifecycle.Service
	versionStore     *versioning.Store
	validator        *validator.Validate
}

func NewAPIHandlers(
	catalogService *catalog.Catalog,
	lifecycleService *lifecycle.Service,
	versionStore *versioning.Store,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		catalogService:   catalogService,
		lifecycleService: lifecycleService,
		versionStore:     versionStore,
		validator:        validator,
	}
}

// actorFromRequest builds the acting identity from request headers and returns
// a context carrying the client's network provenance for the audit trail.
func actorFromRequest(c fiber.Ctx) (identity.Actor, context.Context, bool) {
	actorID := c.Get(HeaderActorID)
	if actorID == "" {
		return identity.Actor{}, nil, false
	}

	actor := identity.Actor{
		ID:    actorID,
		Name:  c.Get(HeaderActorName),
		Email: c.Get(HeaderActorEmail),
	}

	for _, role := range strings.Split(c.Get(HeaderActorRoles), ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			actor.Roles = append(actor.Roles, models.Role(role))
		}
	}

	ctx := identity.WithClientInfo(c.Context(), identity.ClientInfo{
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})

	return actor, ctx, true
}

func (h *APIHandlers) GetCourses(c fiber.Ctx) error {
	req, err := h.parseListCoursesRequest(c)
	if err != nil {
		return badRequest(c, "Invalid query parameters: "+err.Error())
	}

	result, err := h.catalogService.ListCourses(c.Context(), *req)
	if err != nil {
		return handleCatalogError(c, err)
	}

	return c.JSON(fiber.Map{
		"courses":       result.Courses,
		"total_count":   result.TotalCount,
		"has_next_page": result.HasNextPage,
		"pagination": fiber.Map{
			"limit":  req.Limit,
			"offset": req.Offset,
		},
		"sorting": fiber.Map{
			"sort_by":    req.SortBy,
			"sort_order": req.SortOrder,
		},
	})
}

// parseListCoursesRequest parses and validates query parameters for listing courses.
func (h *APIHandlers) parseListCoursesRequest(c fiber.Ctx) (*catalog.ListCoursesRequest, error) {
	req := &catalog.ListCoursesRequest{}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}

		req.Limit = limit
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return nil, err
		}

		req.Offset = offset
	}

	req.InstructorID = c.Query("instructor_id")

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.CourseStatus(statusStr)
		req.Status = &status
	}

	req.SortBy = c.Query("sort_by")
	req.SortOrder = c.Query("sort_order")

	return req, nil
}

func (h *APIHandlers) GetCourse(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	course, err := h.catalogService.FetchByID(c.Context(), id)
	if err != nil {
		return handleCatalogError(c, err)
	}

	return c.JSON(course)
}

func (h *APIHandlers) CreateCourse(c fiber.Ctx) error {
	actor, ctx, ok := actorFromRequest(c)
	if !ok {
		return unauthenticated(c, "Actor identity headers are required")
	}

	var req CreateCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	course := &models.Course{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Requirements:     req.Requirements,
		LearningOutcomes: req.LearningOutcomes,
		TargetAudience:   req.TargetAudience,
		Price:            req.Price,
		ThumbnailURL:     req.ThumbnailURL,
		VideoURL:         req.VideoURL,
		DurationHours:    req.DurationHours,
		Chapters:         []*models.Chapter{},
	}

	created, err := h.catalogService.Create(ctx, course, actor)
	if err != nil {
		return handleCatalogError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) UpdateCourse(c fiber.Ctx) error {
	actor, ctx, ok := actorFromRequest(c)
	if !ok {
		return unauthenticated(c, "Actor identity headers are required")
	}

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	var req UpdateCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := h.catalogService.UpdateContent(ctx, id, catalog.CourseContent{
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Requirements:     req.Requirements,
		LearningOutcomes: req.LearningOutcomes,
		TargetAudience:   req.TargetAudience,
		Price:            req.Price,
		ThumbnailURL:     req.ThumbnailURL,
		VideoURL:         req.VideoURL,
		DurationHours:    req.DurationHours,
		Chapters:         req.Chapters,
	}, actor)
	if err != nil {
		return handleCatalogError(c, err)
	}

	return c.JSON(updated)
}

// transitionHandler adapts one lifecycle operation into an HTTP handler.
func (h *APIHandlers) transitionHandler(op func(ctx context.Context, courseID string, actor identity.Actor) (*models.Course, error)) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor, ctx, ok := actorFromRequest(c)
		if !ok {
			return unauthenticated(c, "Actor identity headers are required")
		}

		id := c.Params("id")
		if id == "" {
			return badRequest(c, "Course ID is required")
		}

		course, err := op(ctx, id, actor)
		if err != nil {
			return handleLifecycleError(c, err)
		}

		return c.JSON(course)
	}
}

func (h *APIHandlers) SubmitCourse() fiber.Handler {
	return h.transitionHandler(h.lifecycleService.SubmitForReview)
}

func (h *APIHandlers) WithdrawCourse() fiber.Handler {
	return h.transitionHandler(h.lifecycleService.WithdrawFromReview)
}

func (h *APIHandlers) PublishCourse() fiber.Handler {
	return h.transitionHandler(h.lifecycleService.Publish)
}

func (h *APIHandlers) ArchiveCourse() fiber.Handler {
	return h.transitionHandler(h.lifecycleService.Archive)
}

func (h *APIHandlers) SoftDeleteCourse() fiber.Handler {
	return h.transitionHandler(h.lifecycleService.SoftDelete)
}

func (h *APIHandlers) RestoreCourse() fiber.Handler {
	return h.transitionHandler(h.lifecycleService.Restore)
}

func (h *APIHandlers) RejectCourse(c fiber.Ctx) error {
	actor, ctx, ok := actorFromRequest(c)
	if !ok {
		return unauthenticated(c, "Actor identity headers are required")
	}

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	var req RejectCourseRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, "A rejection reason is required")
	}

	course, err := h.lifecycleService.Reject(ctx, id, actor, req.Reason)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(course)
}

func (h *APIHandlers) GetTransitions(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	targets, err := h.lifecycleService.AvailableTransitions(c.Context(), id)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(fiber.Map{"transitions": targets})
}

func (h *APIHandlers) GetAuditLog(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	entries, err := h.lifecycleService.AuditHistory(c.Context(), id)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(fiber.Map{"entries": entries})
}

func (h *APIHandlers) ValidateCourse(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	violations, err := h.lifecycleService.ValidateCourse(c.Context(), id)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(ValidationReport{
		Valid:      len(violations) == 0,
		Violations: violations,
	})
}

func (h *APIHandlers) CaptureVersion(c fiber.Ctx) error {
	actor, ctx, ok := actorFromRequest(c)
	if !ok {
		return unauthenticated(c, "Actor identity headers are required")
	}

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	var req CaptureVersionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	version, err := h.lifecycleService.CaptureVersion(ctx, id, actor, req.Notes)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(version)
}

func (h *APIHandlers) GetVersions(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	versions, err := h.versionStore.ListForCourse(c.Context(), id)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(fiber.Map{"versions": versions})
}

func (h *APIHandlers) CompareVersions(c fiber.Ctx) error {
	versionA := c.Query("version_a")
	versionB := c.Query("version_b")

	if versionA == "" || versionB == "" {
		return badRequest(c, "Both version_a and version_b are required")
	}

	a, err := h.versionStore.GetByID(c.Context(), versionA)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	b, err := h.versionStore.GetByID(c.Context(), versionB)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(fiber.Map{"fields": versioning.Compare(a, b)})
}

func (h *APIHandlers) RestoreVersion(c fiber.Ctx) error {
	actor, ctx, ok := actorFromRequest(c)
	if !ok {
		return unauthenticated(c, "Actor identity headers are required")
	}

	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Course ID is required")
	}

	var req RestoreVersionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	course, err := h.lifecycleService.RestoreFromVersion(ctx, id, req.VersionID, actor)
	if err != nil {
		return handleLifecycleError(c, err)
	}

	return c.JSON(course)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.catalogService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Courseloom API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Courseloom API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
