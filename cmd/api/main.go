package main

import (
	"context"
	"fmt"
	common_api "go-spear/internal/common/api"
	"go-spear/internal/config"
	"go-spear/internal/database"
	"go-spear/internal/features/assistant"
	"go-spear/internal/features/audit"
	"go-spear/internal/features/auth"
	"go-spear/internal/features/billing"
	"go-spear/internal/features/device"
	"go-spear/internal/features/discord"
	"go-spear/internal/features/notification"
	"go-spear/internal/features/report"
	"go-spear/internal/features/rules"
	"go-spear/internal/features/system"
	"go-spear/internal/features/user"
	"go-spear/internal/logger"
	"go-spear/internal/middleware"
	"go-spear/internal/scheduler"
	"go-spear/pkg/utils"
	"log"

	_ "go-spear/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// @title           SPEAR API
// @version         1.0
// @description     Device management dashboard with a role-scoped notification center.

// @host            localhost:8000
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Databases
			database.NewDatabase,
			database.NewPostgres,

			// Initialize Repositories
			audit.NewAuditRepository,
			user.NewUserRepository,
			device.NewDeviceRepository,
			rules.NewRuleRepository,
			billing.NewBillingRepository,

			// Notification core
			notification.NewArchive,
			notification.NewBroadcaster,
			discord.NewAnnouncer,
			notification.NewNotificationService,

			// Initialize Services
			audit.NewAuditService,
			user.NewUserService,
			auth.NewAuthService,
			device.NewTeamViewerClient,
			rules.NewActionExecutor,
			rules.NewRuleService,
			device.NewDeviceService,
			billing.NewBillingService,
			assistant.NewAssistantService,
			report.NewReportService,

			// Scheduler
			scheduler.NewScheduler,

			// Initialize Controllers
			auth.NewAuthController,
			user.NewUserController,
			notification.NewNotificationController,
			notification.NewStreamController,
			device.NewDeviceController,
			rules.NewRuleController,
			billing.NewBillingController,
			assistant.NewAssistantController,
			report.NewReportController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(device.NewDeviceApi),
			AsRoute(rules.NewRuleApi),
			AsRoute(billing.NewBillingApi),
			AsRoute(assistant.NewAssistantApi),
			AsRoute(report.NewReportApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,

			// Background jobs
			func(lc fx.Lifecycle, s *scheduler.Scheduler) {
				lc.Append(fx.Hook{
					OnStart: s.Start,
					OnStop:  s.Stop,
				})
			},
		),
	)

	app.Run()
}
