package approvals

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson"
)

type ApprovalUsecase interface {
	CreateApproval(ctx context.Context, request *requests.CreateApproval) (*models.ApprovalRequest, error)
	GetApproval(ctx context.Context, approvalCode string) (*models.ApprovalRequest, error)
	ListApprovals(ctx context.Context, request *requests.ListApprovals) ([]models.ApprovalRequest, int64, error)
	ManageApproval(ctx context.Context, approvalCode, managedBy string) (*models.ApprovalRequest, error)
	ApproveRequest(ctx context.Context, approvalCode, approvedBy string) (*responses.ApproveRequestResult, error)
	RejectRequest(ctx context.Context, approvalCode, managedBy string) (*models.ApprovalRequest, error)
	UpdateApproval(ctx context.Context, approvalCode string, request *requests.UpdateApproval) (*models.ApprovalRequest, error)
	UpdateComplementaryTests(ctx context.Context, approvalCode string, request *requests.UpdateComplementaryTests) (*models.ApprovalRequest, error)
}

type ApprovalRepository interface {
	Insert(ctx context.Context, approval *models.ApprovalRequest) error
	FindByApprovalCode(ctx context.Context, approvalCode string) (*models.ApprovalRequest, error)
	FindByOriginalCaseCode(ctx context.Context, originalCaseCode string) (*models.ApprovalRequest, error)
	UpdateByApprovalCode(ctx context.Context, approvalCode string, fields bson.M) (*models.ApprovalRequest, error)
	Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.ApprovalRequest, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}
