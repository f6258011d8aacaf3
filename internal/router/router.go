package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edumarket/elearn-api/internal/config"
	"github.com/edumarket/elearn-api/internal/handler"
	"github.com/edumarket/elearn-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProfileHandler    *handler.ProfileHandler
	CourseHandler     *handler.CourseHandler
	EnrollmentHandler *handler.EnrollmentHandler
	DiscussionHandler *handler.DiscussionHandler
	FinancialHandler  *handler.FinancialHandler
	PlatformHandler   *handler.PlatformHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ProfileHandler != nil {
		profiles := api.Group("/profiles", jwtMiddleware)
		deps.ProfileHandler.Register(profiles)
	}

	if deps.CourseHandler != nil {
		courses := api.Group("/courses", jwtMiddleware)
		deps.CourseHandler.Register(courses)
	}

	if deps.EnrollmentHandler != nil {
		enrollments := api.Group("/enrollments", jwtMiddleware)
		deps.EnrollmentHandler.Register(enrollments)
	}

	if deps.DiscussionHandler != nil {
		discussions := api.Group("/discussions", jwtMiddleware)
		deps.DiscussionHandler.Register(discussions)
	}

	if deps.FinancialHandler != nil {
		earnings := api.Group("/earnings", jwtMiddleware)
		deps.FinancialHandler.Register(earnings)
	}

	if deps.PlatformHandler != nil {
		platform := api.Group("/platform", jwtMiddleware)
		deps.PlatformHandler.Register(platform)
	}
}
