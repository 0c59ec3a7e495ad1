package cases

import (
	"context"
	"fmt"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/contracts"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/app/services/core/consecutives"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
	"pathsys-service/internal/pkg/exceptions"
	"pathsys-service/internal/pkg/utils"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type caseUsecase struct {
	CaseRepository        CaseRepository
	ConsecutiveRepository consecutives.ConsecutiveRepository
	Notifier              contracts.Notifier
	Storage               contracts.Storage
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
}

func NewCaseUsecase(
	caseRepository CaseRepository,
	consecutiveRepository consecutives.ConsecutiveRepository,
	notifier contracts.Notifier,
	storage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) CaseUsecase {
	return &caseUsecase{
		CaseRepository:        caseRepository,
		ConsecutiveRepository: consecutiveRepository,
		Notifier:              notifier,
		Storage:               storage,
		InternalConfig:        internalConfig,
		Log:                   logger,
	}
}

func (uc *caseUsecase) CreateCase(ctx context.Context, request *requests.CreateCase) (*models.Case, error) {
	if len(request.Samples) == 0 {
		return nil, exceptions.ErrEmptySamples()
	}

	now := time.Now().UTC()
	caseModel := &models.Case{
		PatientInfo:         buildPatientInfo(&request.PatientInfo),
		RequestingPhysician: request.RequestingPhysician,
		Service:             request.Service,
		Samples:             buildSamples(request.Samples),
		State:               constvars.CaseStateInProcess,
		Priority:            constvars.CasePriorityNormal,
		AdditionalNotes:     []models.CaseNote{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if request.Priority != "" {
		caseModel.Priority = request.Priority
	}
	caseModel.PatientInfo.DerivePatientCode()

	// A stale counter can collide with a leftover document; re-mint a
	// fresh consecutive instead of failing the intake outright.
	var lastErr error
	for attempt := 0; attempt < constvars.CaseCodeAllocationAttempts; attempt++ {
		n, err := uc.ConsecutiveRepository.Next(ctx, constvars.CounterKindCase, now.Year())
		if err != nil {
			return nil, err
		}
		caseModel.CaseCode = consecutives.FormatCode(constvars.CounterKindCase, now.Year(), n)

		err = uc.CaseRepository.Insert(ctx, caseModel)
		if err == nil {
			return caseModel, nil
		}
		if !exceptions.IsConflict(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, exceptions.ErrCaseCodeExhausted(lastErr)
}

func (uc *caseUsecase) GetCase(ctx context.Context, caseCode string) (*models.Case, error) {
	caseModel, err := uc.CaseRepository.FindByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if caseModel == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	return caseModel, nil
}

func (uc *caseUsecase) UpdateCase(ctx context.Context, caseCode string, request *requests.UpdateCase) (*models.Case, error) {
	existing, err := uc.GetCase(ctx, caseCode)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if request.RequestingPhysician != nil {
		fields["requesting_physician"] = *request.RequestingPhysician
	}
	if request.Service != nil {
		fields["service"] = *request.Service
	}
	if request.Samples != nil {
		fields["samples"] = buildSamples(*request.Samples)
	}
	if request.Priority != nil {
		fields["priority"] = *request.Priority
	}
	if request.AssignedPathologist != nil {
		fields["assigned_pathologist"] = models.PathologistInfo{
			ID:        request.AssignedPathologist.ID,
			Name:      request.AssignedPathologist.Name,
			Signature: request.AssignedPathologist.Signature,
		}
	}
	if request.DeliveredTo != nil {
		fields["delivered_to"] = *request.DeliveredTo
	}

	if request.State != nil {
		if *request.State == constvars.CaseStateCompleted {
			if existing.State != constvars.CaseStateToDeliver {
				return nil, exceptions.ErrCompleteFromWrongState(existing.State)
			}
			deliveredAt := time.Now().UTC()
			fields["delivered_at"] = deliveredAt
			fields["business_days"] = utils.CountBusinessDays(existing.CreatedAt, deliveredAt)
		}
		fields["state"] = *request.State
	}

	updated, err := uc.CaseRepository.UpdateByCaseCode(ctx, caseCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	return updated, nil
}

func (uc *caseUsecase) DeleteCase(ctx context.Context, caseCode string) (*responses.DeleteCaseResult, error) {
	deleted, err := uc.CaseRepository.DeleteByCaseCode(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	return &responses.DeleteCaseResult{Deleted: true, CaseCode: caseCode}, nil
}

func (uc *caseUsecase) SignCase(ctx context.Context, caseCode string, request *requests.SignCase) (*models.Case, error) {
	existing, err := uc.GetCase(ctx, caseCode)
	if err != nil {
		return nil, err
	}
	if existing.State == constvars.CaseStateCompleted {
		return nil, exceptions.ErrSignCompletedCase()
	}
	if existing.AssignedPathologist == nil || existing.AssignedPathologist.Name == "" {
		return nil, exceptions.ErrSignWithoutPathologist()
	}

	result := existing.Result
	if result == nil {
		result = &models.CaseResult{Methods: []string{}}
	}
	mergeResult(result, request)

	signedAt := time.Now().UTC()
	fields := bson.M{
		"result":    result,
		"state":     constvars.CaseStateToDeliver,
		"signed_at": signedAt,
	}
	updated, err := uc.CaseRepository.UpdateByCaseCode(ctx, caseCode, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}

	if uc.Notifier != nil {
		notifyErr := uc.Notifier.Publish(ctx, contracts.Notification{
			Kind:      contracts.NotificationCaseSigned,
			Subject:   fmt.Sprintf("Case %s signed by %s", updated.CaseCode, updated.AssignedPathologist.Name),
			Body:      fmt.Sprintf("The report for case %s is ready for delivery.", updated.CaseCode),
			Reference: updated.CaseCode,
		})
		if notifyErr != nil {
			uc.Log.Warn("failed to publish case signed notification",
				zap.String(constvars.LoggingCaseCodeKey, updated.CaseCode),
				zap.Error(notifyErr),
			)
		}
	}

	return updated, nil
}

func (uc *caseUsecase) AddNote(ctx context.Context, caseCode, author, text string) (*models.Case, error) {
	note := models.CaseNote{
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	updated, err := uc.CaseRepository.PushNote(ctx, caseCode, note)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrCaseNotFound(nil)
	}
	return updated, nil
}

func (uc *caseUsecase) ListCases(ctx context.Context, request *requests.ListCases, caller *models.CurrentUser) ([]models.Case, int64, error) {
	filter, err := buildListFilter(request, caller)
	if err != nil {
		return nil, 0, err
	}

	limit := request.Limit
	if limit == 0 {
		limit = constvars.ListingDefaultLimit
	}
	if limit < 1 || limit > constvars.ListingMaxLimit || request.Skip < 0 {
		return nil, 0, exceptions.ErrInvalidPagination(nil)
	}

	total, err := uc.CaseRepository.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result, err := uc.CaseRepository.Find(ctx, filter, int64(request.Skip), int64(limit))
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (uc *caseUsecase) GetReportSnapshot(ctx context.Context, caseCode string) (*responses.CaseReportSnapshot, error) {
	caseModel, err := uc.GetCase(ctx, caseCode)
	if err != nil {
		return nil, err
	}

	snapshot := &responses.CaseReportSnapshot{Case: caseModel}
	if uc.Storage != nil && caseModel.AssignedPathologist != nil && caseModel.AssignedPathologist.Signature != "" {
		expiry := time.Duration(uc.InternalConfig.App.SignatureURLExpiryMinute) * time.Minute
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, caseModel.AssignedPathologist.Signature, expiry)
		if err != nil {
			uc.Log.Warn("failed to presign pathologist signature",
				zap.String(constvars.LoggingCaseCodeKey, caseCode),
				zap.Error(err),
			)
		} else {
			snapshot.SignatureURL = url
		}
	}
	return snapshot, nil
}

// buildListFilter maps the listing command to a mongo filter. When the
// caller is a pathologist and no explicit pathologist filter is given,
// the listing is scoped to their own caseload.
func buildListFilter(request *requests.ListCases, caller *models.CurrentUser) (bson.M, error) {
	filter := bson.M{}

	if request.FreeText != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(request.FreeText), Options: "i"}
		filter["$or"] = []bson.M{
			{"case_code": pattern},
			{"patient_info.name": pattern},
			{"patient_info.patient_code": pattern},
			{"patient_info.identification_number": pattern},
		}
	}
	if request.Pathologist != "" {
		filter["assigned_pathologist.name"] = primitive.Regex{Pattern: regexp.QuoteMeta(request.Pathologist), Options: "i"}
	} else if caller != nil && caller.Role == constvars.PathSysRolePathologist && caller.PathologistCode != "" {
		filter["assigned_pathologist.id"] = caller.PathologistCode
	}
	if request.Entity != "" {
		filter["patient_info.entity_info.name"] = primitive.Regex{Pattern: regexp.QuoteMeta(request.Entity), Options: "i"}
	}
	if request.State != "" {
		filter["state"] = request.State
	}
	if request.TestID != "" {
		filter["samples.tests.id"] = request.TestID
	}

	createdAt := bson.M{}
	if request.DateFrom != "" {
		from, err := time.Parse("2006-01-02", request.DateFrom)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		createdAt["$gte"] = utils.StartOfDay(from)
	}
	if request.DateTo != "" {
		to, err := time.Parse("2006-01-02", request.DateTo)
		if err != nil {
			return nil, exceptions.ErrCannotParseDate(err)
		}
		createdAt["$lte"] = utils.EndOfDay(to)
	}
	if len(createdAt) > 0 {
		filter["created_at"] = createdAt
	}

	return filter, nil
}

func buildPatientInfo(payload *requests.PatientInfoPayload) models.PatientInfo {
	return models.PatientInfo{
		PatientCode:          payload.PatientCode,
		IdentificationType:   payload.IdentificationType,
		IdentificationNumber: payload.IdentificationNumber,
		Name:                 payload.Name,
		Age:                  payload.Age,
		Gender:               payload.Gender,
		EntityInfo: models.EntityInfo{
			ID:   payload.EntityInfo.ID,
			Name: payload.EntityInfo.Name,
		},
		CareType:     payload.CareType,
		Observations: payload.Observations,
	}
}

func buildSamples(payloads []requests.SamplePayload) []models.Sample {
	samples := make([]models.Sample, 0, len(payloads))
	for _, payload := range payloads {
		sample := models.Sample{BodyRegion: payload.BodyRegion}
		for _, test := range payload.Tests {
			sample.Tests = append(sample.Tests, models.SampleTest{
				ID:       test.ID,
				Name:     test.Name,
				Quantity: test.Quantity,
			})
		}
		samples = append(samples, sample)
	}
	return samples
}

func mergeResult(result *models.CaseResult, request *requests.SignCase) {
	if request.Methods != nil {
		result.Methods = request.Methods
	}
	if request.Macro != nil {
		result.Macro = *request.Macro
	}
	if request.Micro != nil {
		result.Micro = *request.Micro
	}
	if request.Diagnosis != nil {
		result.Diagnosis = *request.Diagnosis
	}
	if request.CIE10 != nil {
		result.CIE10 = &models.DiseaseCode{Code: request.CIE10.Code, Name: request.CIE10.Name}
	}
	if request.CIEO != nil {
		result.CIEO = &models.DiseaseCode{Code: request.CIEO.Code, Name: request.CIEO.Name}
	}
	if request.Observations != nil {
		result.Observations = *request.Observations
	}
}
