package user

import (
	"context"
	"errors"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/audit"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(ctx context.Context, email, name, password string, role common_models.Role) (*User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

type UserServiceImpl struct {
	repo         UserRepository
	auditService audit.AuditService
}

func NewUserService(repo UserRepository, auditService audit.AuditService) UserService {
	return &UserServiceImpl{
		repo:         repo,
		auditService: auditService,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, email, name, password string, role common_models.Role) (*User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if role != common_models.RoleAdmin {
		role = common_models.RoleClient
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	_ = s.auditService.LogChange(ctx, common_models.AuditActionCreate, "users", u.ID.Hex(), map[string]common_models.Change{
		"user": {New: u.Email},
	})
	return u, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	// Never allow raw hash updates through the generic path
	delete(updates, "password_hash")
	if pw, ok := updates["password"].(string); ok {
		delete(updates, "password")
		if pw != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			updates["password_hash"] = string(hash)
		}
	}

	err := s.repo.Update(ctx, id, updates)
	if err == nil {
		_ = s.auditService.LogChange(ctx, common_models.AuditActionUpdate, "users", id.Hex(), nil)
	}
	return err
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	err := s.repo.Delete(ctx, id)
	if err == nil {
		_ = s.auditService.LogChange(ctx, common_models.AuditActionDelete, "users", id.Hex(), nil)
	}
	return err
}

// CheckPassword compares a candidate password against the stored hash.
func CheckPassword(u *User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
