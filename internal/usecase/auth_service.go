package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JibinB02/pehlahath/internal/entity"
	"github.com/JibinB02/pehlahath/internal/infrastructure/auth"
	"github.com/JibinB02/pehlahath/internal/repository"
)

type AuthService struct {
	userRepo  repository.UserRepository
	passwords *auth.PasswordManager
	tokens    *auth.JWTManager
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	passwords *auth.PasswordManager,
	tokens *auth.JWTManager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates an account with a hashed password and a fresh
// email-verification token.
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entity.ErrEmailTaken
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	user := &entity.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Phone:             req.Phone,
		Role:              req.Role,
		VerificationToken: &token,
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Int("user_id", created.ID),
		zap.String("role", string(created.Role)))

	return created, nil
}

// Login verifies credentials and issues a signed token. Which of email or
// password was wrong is never disclosed.
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	if !s.passwords.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to record last login", zap.Int("user_id", user.ID), zap.Error(err))
	}

	return &entity.LoginResponse{Token: token, User: user.Ref()}, nil
}

// VerifyEmail consumes a verification token and activates the account.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	user, err := s.userRepo.VerifyByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int, req *entity.UpdateProfileRequest) (*entity.User, error) {
	if req.Name == "" && req.Phone == "" {
		return nil, entity.ErrNoFieldsToUpdate
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}
