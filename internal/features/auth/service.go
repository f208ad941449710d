package auth

import (
	"context"
	"errors"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/audit"
	"go-spear/internal/features/notification"
	"go-spear/internal/features/user"
	"go-spear/pkg/utils"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	// Login verifies the credentials and returns a signed token. Every
	// login mints a fresh session id, so the notification feed starts
	// from its seed for each sign-in.
	Login(ctx context.Context, email, password string) (string, *user.User, error)

	// Logout tears the session's notification feed down.
	Logout(ctx context.Context, sessionID string)
}

type AuthServiceImpl struct {
	userRepo      user.UserRepository
	notifications notification.NotificationService
	auditService  audit.AuditService
}

func NewAuthService(userRepo user.UserRepository, notifications notification.NotificationService, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		notifications: notifications,
		auditService:  auditService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(u, password) {
		return "", nil, ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	token, err := utils.GenerateToken(u.ID.Hex(), string(u.Role), sessionID)
	if err != nil {
		return "", nil, err
	}

	// Seed the session feed eagerly so the first dashboard paint already
	// has a bell count.
	s.notifications.Feed(ctx, sessionID, u.Role)

	_ = s.auditService.LogChange(ctx, common_models.AuditActionLogin, "auth", u.ID.Hex(), nil)
	return token, u, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) {
	s.notifications.EndSession(ctx, sessionID)
}
