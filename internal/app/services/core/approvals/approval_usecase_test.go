package approvals

import (
	"context"
	"fmt"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/app/services/core/cases"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/exceptions"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type fakeApprovalRepository struct {
	byCode     map[string]*models.ApprovalRequest
	byOriginal map[string]*models.ApprovalRequest
}

func newFakeApprovalRepository() *fakeApprovalRepository {
	return &fakeApprovalRepository{
		byCode:     map[string]*models.ApprovalRequest{},
		byOriginal: map[string]*models.ApprovalRequest{},
	}
}

func (f *fakeApprovalRepository) Insert(ctx context.Context, approval *models.ApprovalRequest) error {
	if _, exists := f.byOriginal[approval.OriginalCaseCode]; exists {
		return exceptions.ErrApprovalAlreadyExists(nil)
	}
	clone := *approval
	f.byCode[approval.ApprovalCode] = &clone
	f.byOriginal[approval.OriginalCaseCode] = &clone
	return nil
}

func (f *fakeApprovalRepository) FindByApprovalCode(ctx context.Context, approvalCode string) (*models.ApprovalRequest, error) {
	approval, ok := f.byCode[approvalCode]
	if !ok {
		return nil, nil
	}
	clone := *approval
	return &clone, nil
}

func (f *fakeApprovalRepository) FindByOriginalCaseCode(ctx context.Context, originalCaseCode string) (*models.ApprovalRequest, error) {
	approval, ok := f.byOriginal[originalCaseCode]
	if !ok {
		return nil, nil
	}
	clone := *approval
	return &clone, nil
}

func (f *fakeApprovalRepository) UpdateByApprovalCode(ctx context.Context, approvalCode string, fields bson.M) (*models.ApprovalRequest, error) {
	approval, ok := f.byCode[approvalCode]
	if !ok {
		return nil, nil
	}
	if state, ok := fields["approval_state"].(string); ok {
		approval.ApprovalState = state
	}
	if reason, ok := fields["approval_info.reason"].(string); ok {
		approval.ApprovalInfo.Reason = reason
	}
	if managedBy, ok := fields["approval_info.managed_by"].(string); ok {
		approval.ApprovalInfo.ManagedBy = managedBy
	}
	if managedAt, ok := fields["approval_info.managed_at"].(time.Time); ok {
		approval.ApprovalInfo.ManagedAt = &managedAt
	}
	if approvedBy, ok := fields["approval_info.approved_by"].(string); ok {
		approval.ApprovalInfo.ApprovedBy = approvedBy
	}
	if approvedAt, ok := fields["approval_info.approved_at"].(time.Time); ok {
		approval.ApprovalInfo.ApprovedAt = &approvedAt
	}
	if tests, ok := fields["complementary_tests"].([]models.ComplementaryTest); ok {
		approval.ComplementaryTests = tests
	}
	approval.UpdatedAt = time.Now().UTC()
	clone := *approval
	return &clone, nil
}

func (f *fakeApprovalRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.ApprovalRequest, error) {
	result := make([]models.ApprovalRequest, 0, len(f.byCode))
	for _, approval := range f.byCode {
		result = append(result, *approval)
	}
	return result, nil
}

func (f *fakeApprovalRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.byCode)), nil
}

type fakeCaseStore struct {
	byCode map[string]*models.Case
}

func newFakeCaseStore() *fakeCaseStore {
	return &fakeCaseStore{byCode: map[string]*models.Case{}}
}

func (f *fakeCaseStore) Insert(ctx context.Context, caseModel *models.Case) error {
	if _, exists := f.byCode[caseModel.CaseCode]; exists {
		return exceptions.ErrCaseCodeExhausted(nil)
	}
	clone := *caseModel
	f.byCode[caseModel.CaseCode] = &clone
	return nil
}

func (f *fakeCaseStore) FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error) {
	caseModel, ok := f.byCode[caseCode]
	if !ok {
		return nil, nil
	}
	clone := *caseModel
	return &clone, nil
}

func (f *fakeCaseStore) UpdateByCaseCode(ctx context.Context, caseCode string, fields bson.M) (*models.Case, error) {
	return nil, nil
}

func (f *fakeCaseStore) PushNote(ctx context.Context, caseCode string, note models.CaseNote) (*models.Case, error) {
	return nil, nil
}

func (f *fakeCaseStore) DeleteByCaseCode(ctx context.Context, caseCode string) (bool, error) {
	return false, nil
}

func (f *fakeCaseStore) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Case, error) {
	return nil, nil
}

func (f *fakeCaseStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	return 0, nil
}

func (f *fakeCaseStore) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	return nil
}

var _ cases.CaseRepository = (*fakeCaseStore)(nil)

type fakeCounter struct {
	last int
}

func (f *fakeCounter) Next(ctx context.Context, kind string, year int) (int, error) {
	f.last++
	return f.last, nil
}

func (f *fakeCounter) Peek(ctx context.Context, kind string, year int) (int, error) {
	return f.last + 1, nil
}

func newTestApprovalUsecase(approvalRepo *fakeApprovalRepository, caseStore *fakeCaseStore) ApprovalUsecase {
	return NewApprovalUsecase(approvalRepo, caseStore, &fakeCounter{}, zap.NewNop())
}

func seedCase(store *fakeCaseStore, caseCode string) *models.Case {
	caseModel := &models.Case{
		CaseCode: caseCode,
		PatientInfo: models.PatientInfo{
			PatientCode: "1-12345678",
			Name:        "Juan Pérez",
			EntityInfo:  models.EntityInfo{ID: "ENT-1", Name: "Entidad Demo"},
		},
		RequestingPhysician: "Dr. Ruiz",
		Service:             "Patología",
		Samples: []models.Sample{
			{BodyRegion: "Colon", Tests: []models.SampleTest{{ID: "T-01", Name: "Biopsia", Quantity: 1}}},
		},
		State:               constvars.CaseStateCompleted,
		Priority:            constvars.CasePriorityUrgent,
		AssignedPathologist: &models.PathologistInfo{ID: "PAT-1", Name: "Dra. Gómez"},
		CreatedAt:           time.Now().UTC(),
	}
	store.byCode[caseCode] = caseModel
	return caseModel
}

func validApprovalRequest(caseCode string) *requests.CreateApproval {
	return &requests.CreateApproval{
		OriginalCaseCode: caseCode,
		Reason:           "margins unclear, IHC needed",
		ComplementaryTests: []requests.ComplementaryTestPayload{
			{Code: "IHC-1", Name: "Inmunohistoquímica", Quantity: 2},
		},
	}
}

func TestCreateApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^AP-\d{4}-\d{3}$`), created.ApprovalCode)
		assert.Equal(t, constvars.ApprovalStateRequestMade, created.ApprovalState)
		assert.Equal(t, "2026-00001", created.OriginalCaseCode)
		assert.False(t, created.ApprovalInfo.RequestDate.IsZero())
	})

	t.Run("Unknown Original Case", func(t *testing.T) {
		usecase := newTestApprovalUsecase(newFakeApprovalRepository(), newFakeCaseStore())

		_, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.True(t, exceptions.IsNotFound(err))
	})

	t.Run("Second Request For Same Case Conflicts", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		_, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)
		_, err = usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.True(t, exceptions.IsConflict(err))
	})

	t.Run("Empty Tests Rejected", func(t *testing.T) {
		usecase := newTestApprovalUsecase(newFakeApprovalRepository(), newFakeCaseStore())

		request := validApprovalRequest("2026-00001")
		request.ComplementaryTests = nil
		_, err := usecase.CreateApproval(ctx, request)
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})
}

func TestManageApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("Moves To PendingApproval", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)

		managed, err := usecase.ManageApproval(ctx, created.ApprovalCode, "u1")
		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStatePendingApproval, managed.ApprovalState)
		assert.Equal(t, "u1", managed.ApprovalInfo.ManagedBy)
		assert.NotNil(t, managed.ApprovalInfo.ManagedAt)
	})

	t.Run("Managing Twice Is Idempotent", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)
		_, err = usecase.ManageApproval(ctx, created.ApprovalCode, "u1")
		assert.NoError(t, err)

		again, err := usecase.ManageApproval(ctx, created.ApprovalCode, "u2")
		assert.NoError(t, err)
		assert.Equal(t, "u1", again.ApprovalInfo.ManagedBy)
	})
}

func TestApproveRequest(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (ApprovalUsecase, *fakeCaseStore, *models.ApprovalRequest) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)
		_, err = usecase.ManageApproval(ctx, created.ApprovalCode, "u1")
		assert.NoError(t, err)
		return usecase, caseStore, created
	}

	t.Run("Approving Forks A Child Case", func(t *testing.T) {
		usecase, caseStore, created := setup(t)

		result, err := usecase.ApproveRequest(ctx, created.ApprovalCode, "admin1")
		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateApproved, result.Approval.ApprovalState)
		assert.Equal(t, "admin1", result.Approval.ApprovalInfo.ApprovedBy)

		child := result.NewCase
		assert.NotNil(t, child)
		assert.NotEqual(t, "2026-00001", child.CaseCode)
		assert.Equal(t, constvars.CaseStateInProcess, child.State)
		assert.Equal(t, constvars.CasePriorityNormal, child.Priority)
		assert.Equal(t, "1-12345678", child.PatientInfo.PatientCode)
		assert.Equal(t, "Dr. Ruiz", child.RequestingPhysician)
		assert.Equal(t, "PAT-1", child.AssignedPathologist.ID)

		assert.Len(t, child.Samples, 1)
		assert.Equal(t, "Colon", child.Samples[0].BodyRegion)
		assert.Len(t, child.Samples[0].Tests, 1)
		assert.Equal(t, "IHC-1", child.Samples[0].Tests[0].ID)
		assert.Equal(t, 2, child.Samples[0].Tests[0].Quantity)

		stored, _ := caseStore.FindByCaseCode(ctx, child.CaseCode)
		assert.NotNil(t, stored)
	})

	t.Run("Approving Twice Returns The Approval Without A New Fork", func(t *testing.T) {
		usecase, caseStore, created := setup(t)

		first, err := usecase.ApproveRequest(ctx, created.ApprovalCode, "admin1")
		assert.NoError(t, err)
		assert.NotNil(t, first.NewCase)

		second, err := usecase.ApproveRequest(ctx, created.ApprovalCode, "admin2")
		assert.NoError(t, err)
		assert.Nil(t, second.NewCase)
		assert.Equal(t, constvars.ApprovalStateApproved, second.Approval.ApprovalState)
		assert.Len(t, caseStore.byCode, 2)
	})

	t.Run("Approving A Rejected Request Fails", func(t *testing.T) {
		usecase, _, created := setup(t)

		_, err := usecase.RejectRequest(ctx, created.ApprovalCode, "admin1")
		assert.NoError(t, err)

		_, err = usecase.ApproveRequest(ctx, created.ApprovalCode, "admin2")
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})

	t.Run("Unknown Approval", func(t *testing.T) {
		usecase := newTestApprovalUsecase(newFakeApprovalRepository(), newFakeCaseStore())
		_, err := usecase.ApproveRequest(ctx, "AP-2026-999", "admin1")
		assert.True(t, exceptions.IsNotFound(err))
	})
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejecting Twice Is Idempotent", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)

		first, err := usecase.RejectRequest(ctx, created.ApprovalCode, "u1")
		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateRejected, first.ApprovalState)

		second, err := usecase.RejectRequest(ctx, created.ApprovalCode, "u2")
		assert.NoError(t, err)
		assert.Equal(t, constvars.ApprovalStateRejected, second.ApprovalState)
	})

	t.Run("Rejecting An Approved Request Fails", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)
		_, err = usecase.ApproveRequest(ctx, created.ApprovalCode, "admin1")
		assert.NoError(t, err)

		_, err = usecase.RejectRequest(ctx, created.ApprovalCode, "u1")
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})
}

func TestUpdateComplementaryTests(t *testing.T) {
	ctx := context.Background()

	t.Run("Editable While RequestMade", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)

		updated, err := usecase.UpdateComplementaryTests(ctx, created.ApprovalCode, &requests.UpdateComplementaryTests{
			ComplementaryTests: []requests.ComplementaryTestPayload{
				{Code: "IHC-2", Name: "Ki-67", Quantity: 1},
			},
		})
		assert.NoError(t, err)
		assert.Len(t, updated.ComplementaryTests, 1)
		assert.Equal(t, "IHC-2", updated.ComplementaryTests[0].Code)
	})

	t.Run("Locked After Manage", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		seedCase(caseStore, "2026-00001")
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		created, err := usecase.CreateApproval(ctx, validApprovalRequest("2026-00001"))
		assert.NoError(t, err)
		_, err = usecase.ManageApproval(ctx, created.ApprovalCode, "u1")
		assert.NoError(t, err)

		_, err = usecase.UpdateComplementaryTests(ctx, created.ApprovalCode, &requests.UpdateComplementaryTests{
			ComplementaryTests: []requests.ComplementaryTestPayload{
				{Code: "IHC-2", Name: "Ki-67", Quantity: 1},
			},
		})
		assert.True(t, exceptions.IsStatus(err, constvars.StatusBadRequest))
	})
}

func TestListApprovals(t *testing.T) {
	ctx := context.Background()

	t.Run("Totals Reflect Stored Requests", func(t *testing.T) {
		approvalRepo := newFakeApprovalRepository()
		caseStore := newFakeCaseStore()
		usecase := newTestApprovalUsecase(approvalRepo, caseStore)

		for i := 1; i <= 3; i++ {
			caseCode := fmt.Sprintf("2026-0000%d", i)
			seedCase(caseStore, caseCode)
			_, err := usecase.CreateApproval(ctx, validApprovalRequest(caseCode))
			assert.NoError(t, err)
		}

		result, total, err := usecase.ListApprovals(ctx, &requests.ListApprovals{})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, result, 3)
	})

	t.Run("Invalid Pagination Rejected", func(t *testing.T) {
		usecase := newTestApprovalUsecase(newFakeApprovalRepository(), newFakeCaseStore())
		_, _, err := usecase.ListApprovals(ctx, &requests.ListApprovals{Limit: -5})
		assert.Error(t, err)
	})
}
