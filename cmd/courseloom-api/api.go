// Package main provides the Courseloom API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/courseloom/courseloom/pkg/catalog"
	"github.com/courseloom/courseloom/pkg/eventbus"
	"github.com/courseloom/courseloom/pkg/identity"
	"github.com/courseloom/courseloom/pkg/lifecycle"
	"github.com/courseloom/courseloom/pkg/lock"
	"github.com/courseloom/courseloom/pkg/persistence"
	"github.com/courseloom/courseloom/pkg/versioning"
	"github.com/courseloom/courseloom/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	locker      lock.Locker
	tracer      trace.Tracer
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	locker lock.Locker,
	tracer trace.Tracer,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		locker:      locker,
		tracer:      tracer,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	authorizer := identity.NewAuthorizer()
	versionStore := versioning.NewStore(a.persistence)
	catalogService := catalog.NewCatalog(a.persistence, authorizer)

	opts := []lifecycle.Option{
		lifecycle.WithEventBus(a.eventBus),
		lifecycle.WithLocker(a.locker),
	}
	if a.tracer != nil {
		opts = append(opts, lifecycle.WithTracer(a.tracer))
	}

	lifecycleService := lifecycle.NewService(a.persistence, authorizer, versionStore, a.logger, opts...)

	handlers := web.NewAPIHandlers(catalogService, lifecycleService, versionStore, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Courseloom API")
	})

	courses := app.Group("/courses")
	courses.Get("/", handlers.GetCourses)
	courses.Post("/", handlers.CreateCourse)
	courses.Get("/:id", handlers.GetCourse)
	courses.Put("/:id", handlers.UpdateCourse)
	courses.Delete("/:id", handlers.SoftDeleteCourse())

	// Lifecycle endpoints:
	courses.Get("/:id/transitions", handlers.GetTransitions)
	courses.Get("/:id/audit", handlers.GetAuditLog)
	courses.Get("/:id/validation", handlers.ValidateCourse)
	courses.Post("/:id/submit", handlers.SubmitCourse())
	courses.Post("/:id/withdraw", handlers.WithdrawCourse())
	courses.Post("/:id/publish", handlers.PublishCourse())
	courses.Post("/:id/reject", handlers.RejectCourse)
	courses.Post("/:id/archive", handlers.ArchiveCourse())
	courses.Post("/:id/restore", handlers.RestoreCourse())

	// Version endpoints:
	courses.Get("/:id/versions", handlers.GetVersions)
	courses.Post("/:id/versions", handlers.CaptureVersion)
	courses.Get("/:id/versions/compare", handlers.CompareVersions)
	courses.Post("/:id/versions/restore", handlers.RestoreVersion)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
