package approvals

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/app/services/core/cases"
	"pathsys-service/internal/app/services/core/consecutives"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
	"pathsys-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type approvalUsecase struct {
	ApprovalRepository    ApprovalRepository
	CaseRepository        cases.CaseRepository
	ConsecutiveRepository consecutives.ConsecutiveRepository
	Log                   *zap.Logger
}

func NewApprovalUsecase(
	approvalRepository ApprovalRepository,
	caseRepository cases.CaseRepository,
	consecutiveRepository consecutives.ConsecutiveRepository,
	logger *zap.Logger,
) ApprovalUsecase {
	return &approvalUsecase{
		ApprovalRepository:    approvalRepository,
		CaseRepository:        caseRepository,
		ConsecutiveRepository: consecutiveRepository,
		Log:                   logger,
	}
}

func (uc *approvalUsecase) CreateApproval(ctx context.Context, request *requests.CreateApproval) (*models.ApprovalRequest, error) {
	if len(request.ComplementaryTests) == 0 {
		return nil, exceptions.ErrEmptyComplementaryTests()
	}

	originalCase, err := uc.CaseRepository.FindByCaseCode(ctx, request.OriginalCaseCode)
	if err != nil {
		return nil, err
	}
	if originalCase == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	existing, err := uc.ApprovalRepository.FindByOriginalCaseCode(ctx, request.OriginalCaseCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrApprovalAlreadyExists(nil)
	}

	now := time.Now().UTC()
	n, err := uc.ConsecutiveRepository.Next(ctx, constvars.CounterKindApproval, now.Year())
	if err != nil {
		return nil, err
	}

	approval := &models.ApprovalRequest{
		ApprovalCode:       consecutives.FormatCode(constvars.CounterKindApproval, now.Year(), n),
		OriginalCaseCode:   request.OriginalCaseCode,
		ApprovalState:      constvars.ApprovalStateRequestMade,
		ComplementaryTests: buildComplementaryTests(request.ComplementaryTests),
		ApprovalInfo: models.ApprovalInfo{
			Reason:      request.Reason,
			RequestDate: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique index settles concurrent creates for the same case: the
	// racing insert surfaces as a Conflict here.
	if err := uc.ApprovalRepository.Insert(ctx, approval); err != nil {
		return nil, err
	}
	return approval, nil
}

func (uc *approvalUsecase) GetApproval(ctx context.Context, approvalCode string) (*models.ApprovalRequest, error) {
	approval, err := uc.ApprovalRepository.FindByApprovalCode(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if approval == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}
	return approval, nil
}

func (uc *approvalUsecase) ListApprovals(ctx context.Context, request *requests.ListApprovals) ([]models.ApprovalRequest, int64, error) {
	filter := bson.M{}
	if request.State != "" {
		filter["approval_state"] = request.State
	}
	if request.OriginalCaseCode != "" {
		filter["original_case_code"] = request.OriginalCaseCode
	}

	limit := request.Limit
	if limit == 0 {
		limit = constvars.ListingDefaultLimit
	}
	if limit < 1 || limit > constvars.ListingMaxLimit || request.Skip < 0 {
		return nil, 0, exceptions.ErrInvalidPagination(nil)
	}

	total, err := uc.ApprovalRepository.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result, err := uc.ApprovalRepository.Find(ctx, filter, int64(request.Skip), int64(limit))
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (uc *approvalUsecase) ManageApproval(ctx context.Context, approvalCode, managedBy string) (*models.ApprovalRequest, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if approval.ApprovalState == constvars.ApprovalStatePendingApproval {
		return approval, nil
	}
	if isTerminal(approval.ApprovalState) {
		return nil, exceptions.ErrApprovalTerminalState(approval.ApprovalState)
	}

	fields := bson.M{
		"approval_state":           constvars.ApprovalStatePendingApproval,
		"approval_info.managed_by": managedBy,
		"approval_info.managed_at": time.Now().UTC(),
	}
	updated, err := uc.ApprovalRepository.UpdateByApprovalCode(ctx, approvalCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}
	return updated, nil
}

// ApproveRequest flips the approval to its terminal approved state and
// forks the child case. The flip happens first; child creation is
// best-effort and is never rolled back. A second approve observes the
// terminal state and short-circuits without forking again.
func (uc *approvalUsecase) ApproveRequest(ctx context.Context, approvalCode, approvedBy string) (*responses.ApproveRequestResult, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if approval.ApprovalState == constvars.ApprovalStateApproved {
		return &responses.ApproveRequestResult{Approval: approval}, nil
	}
	if approval.ApprovalState == constvars.ApprovalStateRejected {
		return nil, exceptions.ErrApprovalTerminalState(approval.ApprovalState)
	}

	fields := bson.M{
		"approval_state":            constvars.ApprovalStateApproved,
		"approval_info.approved_by": approvedBy,
		"approval_info.approved_at": time.Now().UTC(),
	}
	updated, err := uc.ApprovalRepository.UpdateByApprovalCode(ctx, approvalCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}

	childCase, err := uc.forkChildCase(ctx, updated)
	if err != nil {
		uc.Log.Error("approved request but failed to create child case",
			zap.String(constvars.LoggingApprovalCodeKey, approvalCode),
			zap.String(constvars.LoggingCaseCodeKey, updated.OriginalCaseCode),
			zap.Error(err),
		)
		return &responses.ApproveRequestResult{Approval: updated}, nil
	}

	return &responses.ApproveRequestResult{Approval: updated, NewCase: childCase}, nil
}

func (uc *approvalUsecase) RejectRequest(ctx context.Context, approvalCode, managedBy string) (*models.ApprovalRequest, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if approval.ApprovalState == constvars.ApprovalStateRejected {
		return approval, nil
	}
	if approval.ApprovalState == constvars.ApprovalStateApproved {
		return nil, exceptions.ErrApprovalTerminalState(approval.ApprovalState)
	}

	fields := bson.M{
		"approval_state":           constvars.ApprovalStateRejected,
		"approval_info.managed_by": managedBy,
		"approval_info.managed_at": time.Now().UTC(),
	}
	updated, err := uc.ApprovalRepository.UpdateByApprovalCode(ctx, approvalCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}
	return updated, nil
}

func (uc *approvalUsecase) UpdateApproval(ctx context.Context, approvalCode string, request *requests.UpdateApproval) (*models.ApprovalRequest, error) {
	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if isTerminal(approval.ApprovalState) {
		return nil, exceptions.ErrApprovalTerminalState(approval.ApprovalState)
	}

	fields := bson.M{}
	if request.Reason != nil {
		fields["approval_info.reason"] = *request.Reason
	}

	updated, err := uc.ApprovalRepository.UpdateByApprovalCode(ctx, approvalCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}
	return updated, nil
}

func (uc *approvalUsecase) UpdateComplementaryTests(ctx context.Context, approvalCode string, request *requests.UpdateComplementaryTests) (*models.ApprovalRequest, error) {
	if len(request.ComplementaryTests) == 0 {
		return nil, exceptions.ErrEmptyComplementaryTests()
	}

	approval, err := uc.GetApproval(ctx, approvalCode)
	if err != nil {
		return nil, err
	}
	if approval.ApprovalState != constvars.ApprovalStateRequestMade {
		return nil, exceptions.ErrApprovalNotEditable(approval.ApprovalState)
	}

	fields := bson.M{
		"complementary_tests": buildComplementaryTests(request.ComplementaryTests),
	}
	updated, err := uc.ApprovalRepository.UpdateByApprovalCode(ctx, approvalCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrApprovalNotFound(nil)
	}
	return updated, nil
}

// forkChildCase creates the complementary-test case out of the approved
// request, copying the parent's frozen snapshot and routing metadata.
func (uc *approvalUsecase) forkChildCase(ctx context.Context, approval *models.ApprovalRequest) (*models.Case, error) {
	parent, err := uc.CaseRepository.FindByCaseCode(ctx, approval.OriginalCaseCode)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	now := time.Now().UTC()
	childTests := make([]models.SampleTest, 0, len(approval.ComplementaryTests))
	for _, test := range approval.ComplementaryTests {
		childTests = append(childTests, models.SampleTest{
			ID:       test.Code,
			Name:     test.Name,
			Quantity: test.Quantity,
		})
	}

	bodyRegion := ""
	if len(parent.Samples) > 0 {
		bodyRegion = parent.Samples[0].BodyRegion
	}

	child := &models.Case{
		PatientInfo:         parent.PatientInfo,
		RequestingPhysician: parent.RequestingPhysician,
		Service:             parent.Service,
		Samples:             []models.Sample{{BodyRegion: bodyRegion, Tests: childTests}},
		State:               constvars.CaseStateInProcess,
		Priority:            constvars.CasePriorityNormal,
		AssignedPathologist: parent.AssignedPathologist,
		AdditionalNotes:     []models.CaseNote{},
		ComplementaryTests:  approval.ComplementaryTests,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	var lastErr error
	for attempt := 0; attempt < constvars.CaseCodeAllocationAttempts; attempt++ {
		n, err := uc.ConsecutiveRepository.Next(ctx, constvars.CounterKindCase, now.Year())
		if err != nil {
			return nil, err
		}
		child.CaseCode = consecutives.FormatCode(constvars.CounterKindCase, now.Year(), n)

		err = uc.CaseRepository.Insert(ctx, child)
		if err == nil {
			return child, nil
		}
		if !exceptions.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, exceptions.ErrCaseCodeExhausted(lastErr)
}

func buildComplementaryTests(payloads []requests.ComplementaryTestPayload) []models.ComplementaryTest {
	tests := make([]models.ComplementaryTest, 0, len(payloads))
	for _, payload := range payloads {
		tests = append(tests, models.ComplementaryTest{
			Code:     payload.Code,
			Name:     payload.Name,
			Quantity: payload.Quantity,
		})
	}
	return tests
}

func isTerminal(state string) bool {
	return state == constvars.ApprovalStateApproved || state == constvars.ApprovalStateRejected
}
