// Package routes wires repositories, services and handlers onto the
// Fiber application.
package routes

import (
	"breadroute/internal/config"
	"breadroute/internal/handlers"
	"breadroute/internal/middleware"
	"breadroute/internal/models"
	"breadroute/internal/repositories"
	"breadroute/internal/services/auth"
	"breadroute/internal/services/currency"
	"breadroute/internal/services/payment"
	"breadroute/internal/services/report"
	"breadroute/internal/services/store"
	"breadroute/internal/services/trip"
	"breadroute/internal/services/visit"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	storeRepo := repositories.NewStoreRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	tripRepo := repositories.NewTripRepository(db)
	visitRepo := repositories.NewVisitRepository(db)
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	uow := repositories.NewUnitOfWork(db)

	// Exchange rate is fixed but injectable through the environment.
	rate := config.GetFloatEnv("EXCHANGE_RATE_SYP_PER_EUR", currency.DefaultSYPPerEUR)
	converter := currency.NewConverter(currency.NewFixedProvider(rate))

	// Services
	var storeCache store.Cache
	var tripCache trip.Cache
	if repositories.CacheService != nil {
		storeCache = repositories.CacheService
		tripCache = repositories.CacheService
	}
	authService := auth.NewService(userRepo)
	storeService := store.NewService(storeRepo, storeCache, converter)
	paymentService := payment.NewService(paymentRepo, storeService, uow, converter)
	tripService := trip.NewService(tripRepo, visitRepo, userRepo, uow, tripCache, converter)
	visitService := visit.NewService(visitRepo, uow, converter)
	reportService := report.NewService(tripRepo, paymentRepo, storeRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	storeHandler := handlers.NewStoreHandler(storeService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	tripHandler := handlers.NewTripHandler(tripService)
	visitHandler := handlers.NewVisitHandler(visitService)
	reportHandler := handlers.NewReportHandler(reportService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	setupPublicRoutes(app, authHandler)

	authenticated := app.Group("/api", authMiddleware.Handler)
	setupUserRoutes(authenticated, authHandler)
	setupStoreRoutes(authenticated, storeHandler)
	setupPaymentRoutes(authenticated, paymentHandler)
	setupTripRoutes(authenticated, tripHandler, visitHandler)
	setupVisitRoutes(authenticated, visitHandler)
	setupReportRoutes(authenticated, reportHandler)
}

func setupPublicRoutes(app *fiber.App, authHandler *handlers.AuthHandler) {
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)
}

func setupUserRoutes(router fiber.Router, h *handlers.AuthHandler) {
	router.Post("/logout", h.Logout)
	router.Post("/change-password", h.ChangePassword)
}

func setupStoreRoutes(router fiber.Router, h *handlers.StoreHandler) {
	stores := router.Group("/stores")
	stores.Post("/", middleware.RequirePermission(models.PermissionStoreWrite), h.Create)
	stores.Get("/", middleware.RequirePermission(models.PermissionStoreRead), h.List)
	stores.Get("/:id", middleware.RequirePermission(models.PermissionStoreRead), h.Get)
	stores.Patch("/:id/status", middleware.RequirePermission(models.PermissionStoreWrite), h.SetStatus)
	stores.Patch("/:id/distributor", middleware.RequirePermission(models.PermissionStoreWrite), h.AssignDistributor)
	stores.Post("/:id/orders", middleware.RequirePermission(models.PermissionStoreWrite), h.RecordOrder)
	stores.Get("/:id/credit-check", middleware.RequirePermission(models.PermissionStoreRead), h.CheckCreditLimit)
	stores.Get("/:id/financial-summary", middleware.RequirePermission(models.PermissionStoreRead), h.FinancialSummary)
	stores.Get("/:id/performance", middleware.RequirePermission(models.PermissionStoreRead), h.PerformanceStats)
}

func setupPaymentRoutes(router fiber.Router, h *handlers.PaymentHandler) {
	payments := router.Group("/payments")
	payments.Post("/", middleware.RequirePermission(models.PermissionPaymentWrite), h.Create)
	payments.Get("/", middleware.RequirePermission(models.PermissionPaymentRead), h.List)
	payments.Get("/overdue", middleware.RequirePermission(models.PermissionPaymentRead), h.ListOverdue)
	payments.Get("/:id", middleware.RequirePermission(models.PermissionPaymentRead), h.Get)
	payments.Get("/:id/history", middleware.RequirePermission(models.PermissionPaymentRead), h.History)
	payments.Patch("/:id/amount", middleware.RequirePermission(models.PermissionPaymentWrite), h.SetAmount)

	payments.Post("/:id/complete", middleware.RequirePermission(models.PermissionPaymentWrite), h.Complete)
	payments.Post("/:id/cancel", middleware.RequirePermission(models.PermissionPaymentWrite), h.Cancel)
	payments.Post("/:id/fail", middleware.RequirePermission(models.PermissionPaymentWrite), h.Fail)
	payments.Post("/:id/refund", middleware.RequirePermission(models.PermissionPaymentWrite), h.Refund)

	// Verification is restricted to accountants and admins.
	payments.Post("/:id/verify", middleware.RequirePermission(models.PermissionPaymentVerify), h.Verify)
	payments.Post("/:id/reject", middleware.RequirePermission(models.PermissionPaymentVerify), h.Reject)
	payments.Post("/:id/under-review", middleware.RequirePermission(models.PermissionPaymentVerify), h.MarkUnderReview)
	payments.Post("/:id/commission", middleware.RequirePermission(models.PermissionPaymentVerify), h.PayCommission)
}

func setupTripRoutes(router fiber.Router, h *handlers.TripHandler, vh *handlers.VisitHandler) {
	trips := router.Group("/trips")
	trips.Post("/", middleware.RequirePermission(models.PermissionTripWrite), h.Create)
	trips.Get("/", middleware.RequirePermission(models.PermissionTripRead), h.List)
	trips.Get("/by-date", middleware.RequirePermission(models.PermissionTripRead), h.ListByDate)
	trips.Get("/:id", middleware.RequirePermission(models.PermissionTripRead), h.Get)
	trips.Get("/:id/summary", middleware.RequirePermission(models.PermissionTripRead), h.Summary)
	trips.Get("/:tripId/visits", middleware.RequirePermission(models.PermissionTripRead), vh.ListByTrip)

	trips.Post("/:id/start", middleware.RequirePermission(models.PermissionTripWrite), h.Start)
	trips.Post("/:id/complete", middleware.RequirePermission(models.PermissionTripWrite), h.Complete)
	trips.Post("/:id/cancel", middleware.RequirePermission(models.PermissionTripWrite), h.Cancel)
	trips.Post("/:id/suspend", middleware.RequirePermission(models.PermissionTripWrite), h.Suspend)
	trips.Post("/:id/resume", middleware.RequirePermission(models.PermissionTripWrite), h.Resume)

	trips.Post("/:id/problems", middleware.RequirePermission(models.PermissionTripWrite), h.AddProblem)
	trips.Patch("/:id/progress", middleware.RequirePermission(models.PermissionTripWrite), h.UpdateProgress)
	trips.Patch("/:id/expenses", middleware.RequirePermission(models.PermissionTripWrite), h.RecordExpenses)
	trips.Post("/:id/recalculate", middleware.RequirePermission(models.PermissionTripWrite), h.Recalculate)
}

func setupVisitRoutes(router fiber.Router, h *handlers.VisitHandler) {
	visits := router.Group("/visits")
	visits.Post("/", middleware.RequirePermission(models.PermissionVisitWrite), h.Create)
	visits.Get("/:id", middleware.RequirePermission(models.PermissionTripRead), h.Get)

	visits.Post("/:id/start", middleware.RequirePermission(models.PermissionVisitWrite), h.Start)
	visits.Post("/:id/complete", middleware.RequirePermission(models.PermissionVisitWrite), h.Complete)
	visits.Post("/:id/cancel", middleware.RequirePermission(models.PermissionVisitWrite), h.Cancel)
	visits.Post("/:id/fail", middleware.RequirePermission(models.PermissionVisitWrite), h.Fail)

	visits.Post("/:id/problems", middleware.RequirePermission(models.PermissionVisitWrite), h.AddProblem)
	visits.Post("/:id/items", middleware.RequirePermission(models.PermissionVisitWrite), h.AddDeliveredItem)
}

func setupReportRoutes(router fiber.Router, h *handlers.ReportHandler) {
	reports := router.Group("/reports",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager, models.RoleAccountant),
		middleware.RequirePermission(models.PermissionReportRead))
	reports.Get("/daily", h.Daily)
}
