package pathologists

import (
	"context"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/responses"
	"pathsys-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type pathologistUsecase struct {
	PathologistRepository PathologistRepository
	Storage               contracts.Storage
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewPathologistUsecase(
	pathologistRepository PathologistRepository,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) PathologistUsecase {
	return &pathologistUsecase{
		PathologistRepository: pathologistRepository,
		Storage:               storage,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *pathologistUsecase) ListPathologists(ctx context.Context, activeOnly bool) ([]models.Pathologist, error) {
	return uc.PathologistRepository.FindAll(ctx, activeOnly)
}

func (uc *pathologistUsecase) GetPathologist(ctx context.Context, pathologistCode string) (*responses.PathologistDetail, error) {
	pathologist, err := uc.PathologistRepository.FindByPathologistCode(ctx, pathologistCode)
	if err != nil {
		return nil, err
	}
	if pathologist == nil {
		return nil, exceptions.ErrPathologistNotFound(nil)
	}

	detail := &responses.PathologistDetail{Pathologist: pathologist}
	if pathologist.SignatureObject != "" {
		expiry := time.Duration(uc.InternalConfig.App.SignatureURLExpiryMinute) * time.Minute
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, pathologist.SignatureObject, expiry)
		if err != nil {
			// The catalog entry is still useful without the signature.
			uc.Log.Warn("failed to presign pathologist signature",
				zap.String("pathologist_code", pathologistCode),
				zap.Error(err),
			)
		} else {
			detail.SignatureURL = url
		}
	}
	return detail, nil
}
