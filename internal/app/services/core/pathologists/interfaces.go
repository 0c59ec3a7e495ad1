package pathologists

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/responses"
)

type PathologistUsecase interface {
	ListPathologists(ctx context.Context, activeOnly bool) ([]models.Pathologist, error)
	GetPathologist(ctx context.Context, pathologistCode string) (*responses.PathologistDetail, error)
}

type PathologistRepository interface {
	FindByPathologistCode(ctx context.Context, pathologistCode string) (*models.Pathologist, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Pathologist, error)
}
