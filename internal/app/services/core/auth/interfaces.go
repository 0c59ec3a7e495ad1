package auth

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, sessionID string) error
	ResolveSession(ctx context.Context, sessionID string) (*models.Session, error)
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}
