package routes

import (
	"gatepass/internal/adapters/http/handlers"
	"gatepass/internal/adapters/http/middleware"
	"gatepass/internal/adapters/persistence/repositories"
	"gatepass/internal/config"
	"gatepass/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp creates the Fiber app with the error handler and middlewares installed
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Gate Pass API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    cfg.BodyLimit(),
		UnescapePath: true,
	})

	middleware.Setup(app, cfg)
	return app
}

// Setup configures all routes for the application
func Setup(app *fiber.App, repo repositories.SnapshotRepository, notifier services.PassNotifier, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(repo, cfg)
	passService := services.NewPassService(repo, notifier)
	dashboardService := services.NewDashboardService(repo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(repo, cfg.AppMode)
	authHandler := handlers.NewAuthHandler(authService)
	passHandler := handlers.NewPassHandler(passService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api", middleware.NoCacheHeaders())
	setupAPIRoutes(api, healthHandler, authHandler, passHandler, dashboardHandler, cfg)

	// Static frontend, after the API so /api paths never fall through to files
	app.Static("/", cfg.StaticDir)
}

// setupAPIRoutes configures /api routes
func setupAPIRoutes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	passHandler *handlers.PassHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	router.Get("/test", healthHandler.Test)

	// Auth routes
	router.Post("/login", authHandler.Login)
	router.Post("/register", authHandler.Register)

	// Pass routes
	passes := router.Group("/passes")
	passes.Post("/", passHandler.Create)
	passes.Get("/", passHandler.ListAll)
	passes.Get("/student/:studentId", passHandler.ListByStudent)
	passes.Put("/:passId/use", append(middleware.Protect(cfg, middleware.GatekeeperOrAdmin()), passHandler.MarkUsed)...)
	passes.Put("/:passId", append(middleware.Protect(cfg, middleware.ModeratorOrAdmin()), passHandler.UpdateStatus)...)
	passes.Get("/:passId", passHandler.GetByID)

	// Dashboard routes
	dashboard := router.Group("/dashboard")
	dashboard.Get("/", append(middleware.Protect(cfg, middleware.StaffOnly()), dashboardHandler.GetStaffDashboard)...)
	dashboard.Get("/student/:studentId", dashboardHandler.GetStudentDashboard)
}
