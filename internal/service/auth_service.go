package service

import (
	"context"
	"strings"
	"time"

	"alignai-be/internal/dto"
	"alignai-be/internal/entity"
	"alignai-be/internal/pkg/logger"
	"alignai-be/internal/pkg/mailer"
	"alignai-be/internal/pkg/serverutils"
	"alignai-be/internal/repository/specification"
	"alignai-be/internal/repository/unitofwork"
	"alignai-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher EventPublisher
	jwtSecret      string
	tokenTTL       time.Duration
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher EventPublisher,
	jwtSecret string,
	tokenTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		logger:         log,
	}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        u.Id,
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, serverutils.Internal("Failed to check email", err)
	}
	if existing != nil {
		return nil, serverutils.Conflict("Email already registered")
	}
	existing, err = uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, serverutils.Internal("Failed to check username", err)
	}
	if existing != nil {
		return nil, serverutils.Conflict("Username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serverutils.Internal("Failed to hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, serverutils.Internal("Failed to create user", err)
	}

	publishEvent(ctx, s.eventPublisher, s.logger, events.TypeUserRegistered, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	})

	go func() {
		if err := s.emailService.SendWelcome(user.Email, user.Username); err != nil {
			s.logger.Warn("AuthService", "Welcome email failed", map[string]interface{}{"user_id": user.Id, "error": err.Error()})
		}
	}()

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: strings.ToLower(strings.TrimSpace(req.Email))})
	if err != nil {
		return nil, serverutils.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, serverutils.Unauthorized("Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, serverutils.Unauthorized("Incorrect email or password")
	}
	if !user.IsActive {
		return nil, serverutils.Forbidden("Inactive user")
	}

	token, err := serverutils.GenerateAccessToken(s.jwtSecret, user.Id, user.Role(), s.tokenTTL)
	if err != nil {
		return nil, serverutils.Internal("Failed to issue token", err)
	}

	s.logger.Info("AuthService", "User logged in", map[string]interface{}{"user_id": user.Id})
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		User:        toUserResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, serverutils.Internal("Failed to load user", err)
	}
	if user == nil || !user.IsActive {
		return nil, serverutils.Unauthorized("Could not validate credentials")
	}
	resp := toUserResponse(user)
	return &resp, nil
}
