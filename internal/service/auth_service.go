package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/keshav84652/workflow-management/internal/auth"
	"github.com/keshav84652/workflow-management/internal/models"
	"github.com/keshav84652/workflow-management/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     *repository.UserRepo
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthService(users *repository.UserRepo, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, logger: logger}
}

type AuthResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if email == "" || password == "" || name == "" {
		return nil, validationf("email, password, and name are required")
	}
	if len(password) < 8 {
		return nil, validationf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         models.RoleStaff,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := auth.GenerateStaffToken(s.jwtSecret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateStaffToken(s.jwtSecret, user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// Users lists staff accounts, for assignee pickers.
func (s *AuthService) Users(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// SeedAdmin creates the initial admin account. Existing accounts are left
// untouched so reruns are safe.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return validationf("admin email and password are required")
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         "Admin",
		Role:         models.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("admin user seeded", zap.String("email", email))
	return nil
}
