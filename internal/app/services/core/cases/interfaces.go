package cases

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CaseUsecase interface {
	CreateCase(ctx context.Context, request *requests.CreateCase) (*models.Case, error)
	GetCase(ctx context.Context, caseCode string) (*models.Case, error)
	UpdateCase(ctx context.Context, caseCode string, request *requests.UpdateCase) (*models.Case, error)
	DeleteCase(ctx context.Context, caseCode string) (*responses.DeleteCaseResult, error)
	ListCases(ctx context.Context, request *requests.ListCases, caller *models.CurrentUser) ([]models.Case, int64, error)
	SignCase(ctx context.Context, caseCode string, request *requests.SignCase) (*models.Case, error)
	AddNote(ctx context.Context, caseCode, author, text string) (*models.Case, error)
	GetReportSnapshot(ctx context.Context, caseCode string) (*responses.CaseReportSnapshot, error)
}

type CaseRepository interface {
	Insert(ctx context.Context, caseModel *models.Case) error
	FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error)
	// UpdateByCaseCode applies a partial $set and returns the updated
	// aggregate, or nil when the case does not exist.
	UpdateByCaseCode(ctx context.Context, caseCode string, fields bson.M) (*models.Case, error)
	PushNote(ctx context.Context, caseCode string, note models.CaseNote) (*models.Case, error)
	DeleteByCaseCode(ctx context.Context, caseCode string) (bool, error)
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Case, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error
}
