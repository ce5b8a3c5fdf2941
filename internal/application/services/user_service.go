package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"notes-service/internal/apperrors"
	"notes-service/internal/application/command"
	"notes-service/internal/application/common"
	"notes-service/internal/application/interfaces"
	"notes-service/internal/application/mapper"
	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
	"notes-service/internal/infrastructure"
)

const profileCacheTTL = 10 * time.Minute

type UserService struct {
	userRepo     repositories.UserRepository
	redisService *infrastructure.RedisService
	jwtService   *infrastructure.JWTService
	rateLimiter  *infrastructure.RateLimiter
	log          zerolog.Logger
}

func NewUserService(
	userRepo repositories.UserRepository,
	redisService *infrastructure.RedisService,
	jwtService *infrastructure.JWTService,
	rateLimiter *infrastructure.RateLimiter,
	log zerolog.Logger,
) interfaces.UserService {
	return &UserService{
		userRepo:     userRepo,
		redisService: redisService,
		jwtService:   jwtService,
		rateLimiter:  rateLimiter,
		log:          log.With().Str("component", "user_service").Logger(),
	}
}

func (s *UserService) Register(ctx context.Context, cmd *command.RegisterUserCommand) (*command.RegisterUserCommandResult, error) {
	// Check if user already exists
	existingUser, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(cmd.Username))
	if err != nil {
		return nil, apperrors.Internal("An error occurred while registering.", err)
	}
	if existingUser != nil {
		return nil, apperrors.AlreadyExists("Username already exists.")
	}

	existingUser, err = s.userRepo.FindByEmail(ctx, strings.TrimSpace(cmd.Email))
	if err != nil {
		return nil, apperrors.Internal("An error occurred while registering.", err)
	}
	if existingUser != nil {
		return nil, apperrors.AlreadyExists("Email already exists.")
	}

	newUser := entities.NewUser(cmd.Username, cmd.Email, cmd.Password)
	if err := newUser.HashPassword(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil || createdUser == nil {
		return nil, apperrors.Internal("An error occurred while registering.", err)
	}

	s.log.Info().Uint("user_id", createdUser.Id).Str("username", createdUser.Username).Msg("user registered")
	return &command.RegisterUserCommandResult{
		Result: mapper.NewUserResultFromEntity(createdUser),
	}, nil
}

func (s *UserService) Login(ctx context.Context, cmd *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	username := strings.TrimSpace(cmd.Username)
	if s.rateLimiter != nil && !s.rateLimiter.Allow(username) {
		s.log.Warn().Str("username", username).Msg("login rate limit exceeded")
		return nil, apperrors.TooManyRequests("Too many login attempts. Please try again later.")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while logging in.", err)
	}
	if user == nil || user.CheckPassword(cmd.Password) != nil {
		return nil, apperrors.Unauthorized("Invalid username or password.")
	}

	token, err := s.jwtService.GenerateToken(user.Id)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while logging in.", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Reset(username)
	}
	return &command.LoginUserCommandResult{AccessToken: token}, nil
}

// Logout revokes the token's jti until the token would have expired anyway.
func (s *UserService) Logout(ctx context.Context, cmd *command.LogoutUserCommand) (*common.MessageResult, error) {
	claims, err := s.jwtService.ParseToken(cmd.Token)
	if err != nil {
		return nil, apperrors.Unauthorized("Invalid or expired token.")
	}

	if err := s.redisService.RevokeToken(ctx, claims.ID, s.jwtService.RemainingTTL(claims)); err != nil {
		return nil, apperrors.Internal("An error occurred while logging out.", err)
	}
	if !s.redisService.Enabled() {
		s.log.Warn().Msg("logout without redis, token stays valid until expiry")
	}
	return &common.MessageResult{Message: "Logged out."}, nil
}

// Authenticate resolves a bearer token to the caller's user id.
func (s *UserService) Authenticate(ctx context.Context, token string) (uint, error) {
	claims, err := s.jwtService.ParseToken(token)
	if err != nil {
		if errors.Is(err, infrastructure.ErrTokenExpired) {
			return 0, apperrors.Unauthorized("Token has expired.")
		}
		return 0, apperrors.Unauthorized("Invalid or expired token.")
	}

	// Fails closed: a logged-out token must not come back during an outage.
	revoked, err := s.redisService.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return 0, apperrors.Unavailable("Unable to verify token. Please try again later.", err)
	}
	if revoked {
		return 0, apperrors.Unauthorized("Token has been revoked.")
	}

	userID, err := claims.UserID()
	if err != nil {
		return 0, apperrors.Unauthorized("Invalid or expired token.")
	}
	return userID, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*common.ProfileResult, error) {
	cached, err := s.redisService.GetProfile(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("profile cache read failed")
	}
	if cached != nil {
		return mapper.NewProfileResultFromEntity(cached), nil
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.redisService.SetProfile(ctx, userID, user, profileCacheTTL); err != nil {
		s.log.Warn().Err(err).Uint("user_id", userID).Msg("profile cache write failed")
	}
	return mapper.NewProfileResultFromEntity(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, cmd *command.UpdateProfileCommand) (*common.ProfileResult, error) {
	user, err := s.findUser(ctx, cmd.UserId)
	if err != nil {
		return nil, err
	}

	if err := user.UpdateProfile(cmd.FullName, cmd.ProfilePicture, cmd.Bio); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	validatedUser, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	updated, err := s.userRepo.Update(ctx, validatedUser)
	if err != nil || updated == nil {
		return nil, apperrors.Internal("An error occurred while updating the profile.", err)
	}

	if err := s.redisService.DeleteProfile(ctx, cmd.UserId); err != nil {
		s.log.Warn().Err(err).Uint("user_id", cmd.UserId).Msg("profile cache invalidation failed")
	}
	return mapper.NewProfileResultFromEntity(updated), nil
}

func (s *UserService) findUser(ctx context.Context, userID uint) (*entities.User, error) {
	user, err := s.userRepo.FindById(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("An error occurred while loading the user.", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("User not found.")
	}
	return user, nil
}
