package main

import (
	"context"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/config"
	"go-spear/internal/database"
	"go-spear/internal/features/audit"
	"go-spear/internal/features/user"
	"go-spear/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

type demoUser struct {
	email    string
	name     string
	password string
	role     common_models.Role
}

var demoUsers = []demoUser{
	{"admin@spear.local", "Dashboard Admin", "admin123", common_models.RoleAdmin},
	{"client@spear.local", "Demo Client", "client123", common_models.RoleClient},
}

// Seed creates the demo accounts and shuts the app down.
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	userService user.UserService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo users...")

				for _, du := range demoUsers {
					if existing, err := userRepo.FindByEmail(context.Background(), du.email); err == nil && existing != nil {
						logger.Info("User exists, skipping", zap.String("email", du.email))
						continue
					}

					if _, err := userService.CreateUser(context.Background(), du.email, du.name, du.password, du.role); err != nil {
						logger.Error("Failed to create user", zap.String("email", du.email), zap.Error(err))
						continue
					}
					logger.Info("Created user", zap.String("email", du.email), zap.String("role", string(du.role)))
				}

				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			audit.NewAuditRepository,
			audit.NewAuditService,
			user.NewUserRepository,
			user.NewUserService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
