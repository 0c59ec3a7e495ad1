package auth

import (
	"context"
	"fmt"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
	"pathsys-service/internal/pkg/exceptions"
	"pathsys-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Sessions are stored as JSON under this prefix; the value is written by
// the redis repository, which marshals on Set.

const sessionKeyPrefix = "session:"

type authUsecase struct {
	UserRepository  UserRepository
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewAuthUsecase(
	userRepository UserRepository,
	redisRepository contracts.RedisRepository,
	internalConfig *config.InternalConfig,
) AuthUsecase {
	return &authUsecase{
		UserRepository:  userRepository,
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	user, err := uc.UserRepository.FindByUsername(ctx, request.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}
	if !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	session := &models.Session{
		SessionID:       uuid.New().String(),
		UserID:          user.ID.Hex(),
		Username:        user.Username,
		Role:            user.Role,
		PathologistCode: user.PathologistCode,
	}
	expTime := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	if err := uc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, expTime); err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(session.SessionID, uc.InternalConfig.JWT.Secret, expTime)
	if err != nil {
		return nil, err
	}

	return &responses.Login{
		Token:           token,
		Role:            user.Role,
		PathologistCode: user.PathologistCode,
	}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, sessionID string) error {
	return uc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

// ResolveSession is what the auth middleware calls per request; a missing
// key means the session expired or was logged out.
func (uc *authUsecase) ResolveSession(ctx context.Context, sessionID string) (*models.Session, error) {
	raw, err := uc.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	session := new(models.Session)
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		return nil, exceptions.ErrInvalidSession(err)
	}
	return session, nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
}
