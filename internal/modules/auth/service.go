package auth

import (
	"context"
	"errors"
	"strings"

	"intraportal/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users    UserRepository
	jwt      tokenIssuer
	profiles ProfileInitializer
	log      *zap.Logger
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

func NewService(users UserRepository, jwt tokenIssuer, profiles ProfileInitializer, log *zap.Logger) *Service {
	return &Service{
		users:    users,
		jwt:      jwt,
		profiles: profiles,
		log:      log,
	}
}

// Register creates an employee account and its zeroed points profile.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Sector:       req.Sector,
		Role:         domain.RoleEmployee,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.profiles.InitUser(ctx, user); err != nil {
		s.log.Warn("profile initialization failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Name, user.Sector, string(user.Role))
	if err != nil {
		return nil, err
	}

	// Accounts created outside Register (seeded, imported) get their
	// profile on first login.
	if _, err := s.profiles.InitUser(ctx, user); err != nil {
		s.log.Warn("profile initialization failed", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	user.PasswordHash = ""
	return &LoginResult{User: user, AccessToken: token}, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}
