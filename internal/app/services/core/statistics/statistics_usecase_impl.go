package statistics

import (
	"context"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/services/core/cases"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
	"pathsys-service/internal/pkg/utils"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type statisticsUsecase struct {
	CaseRepository cases.CaseRepository
	InternalConfig *config.InternalConfig
}

func NewStatisticsUsecase(caseRepository cases.CaseRepository, internalConfig *config.InternalConfig) StatisticsUsecase {
	return &statisticsUsecase{
		CaseRepository: caseRepository,
		InternalConfig: internalConfig,
	}
}

type monthCountDoc struct {
	Month int   `bson:"_id"`
	Count int64 `bson:"count"`
}

type countDoc struct {
	Count int64 `bson:"count"`
}

type opportunityDoc struct {
	Total       int64   `bson:"total"`
	Within      int64   `bson:"within"`
	AverageDays float64 `bson:"average_days"`
}

func (uc *statisticsUsecase) MonthlyStats(ctx context.Context, request *requests.MonthlyStats) (*responses.MonthlyStats, error) {
	yearStart := time.Date(request.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	match := bson.M{
		"created_at": bson.M{"$gte": yearStart, "$lt": yearStart.AddDate(1, 0, 0)},
	}
	if request.Pathologist != "" {
		match["assigned_pathologist.name"] = nameRegex(request.Pathologist)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$created_at"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	var docs []monthCountDoc
	if err := uc.CaseRepository.Aggregate(ctx, pipeline, &docs); err != nil {
		return nil, err
	}

	result := &responses.MonthlyStats{
		Year:   request.Year,
		Months: make([]int64, 12),
	}
	for _, doc := range docs {
		if doc.Month < 1 || doc.Month > 12 {
			continue
		}
		result.Months[doc.Month-1] = doc.Count
		result.Total += doc.Count
	}
	return result, nil
}

func (uc *statisticsUsecase) ComparisonPanels(ctx context.Context, year int, month int) (*responses.ComparisonPanels, error) {
	current, err := uc.monthPanel(ctx, year, time.Month(month))
	if err != nil {
		return nil, err
	}
	prevYear, prevMonth := utils.PreviousMonth(year, time.Month(month))
	previous, err := uc.monthPanel(ctx, prevYear, prevMonth)
	if err != nil {
		return nil, err
	}
	beforeYear, beforeMonth := utils.PreviousMonth(prevYear, prevMonth)
	beforePrevious, err := uc.monthPanel(ctx, beforeYear, beforeMonth)
	if err != nil {
		return nil, err
	}

	// The change compares the two complete months; the running month is
	// reported as-is.
	return &responses.ComparisonPanels{
		Current:               *current,
		Previous:              *previous,
		BeforePrevious:        *beforePrevious,
		CasesPercentChange:    utils.PercentChange(previous.Cases, beforePrevious.Cases),
		PatientsPercentChange: utils.PercentChange(previous.UniquePatients, beforePrevious.UniquePatients),
	}, nil
}

func (uc *statisticsUsecase) OpportunityStats(ctx context.Context, request *requests.OpportunityStats) (*responses.OpportunityPanel, error) {
	threshold := request.ThresholdDays
	if threshold <= 0 {
		threshold = uc.InternalConfig.Stats.OpportunityThresholdDays
	}

	current, err := uc.opportunityWindow(ctx, request.Year, time.Month(request.Month), threshold, request.Pathologist)
	if err != nil {
		return nil, err
	}

	prevYear, prevMonth := utils.PreviousMonth(request.Year, time.Month(request.Month))
	beforeYear, beforeMonth := utils.PreviousMonth(prevYear, prevMonth)
	reference, err := uc.opportunityWindow(ctx, beforeYear, beforeMonth, threshold, request.Pathologist)
	if err != nil {
		return nil, err
	}

	panel := &responses.OpportunityPanel{
		Year:          request.Year,
		Month:         request.Month,
		ThresholdDays: threshold,
		Total:         current.Total,
		Within:        current.Within,
		Out:           current.Total - current.Within,
		WithinPercent: withinPercent(current),
		AverageDays:   utils.RoundTwoDecimals(current.AverageDays),
		DeltaPercent:  utils.RoundTwoDecimals(withinPercent(current) - withinPercent(reference)),
	}
	return panel, nil
}

func (uc *statisticsUsecase) PathologistPerformance(ctx context.Context, request *requests.PathologistPerformance) ([]responses.PathologistPerformanceRow, error) {
	threshold := request.ThresholdDays
	if threshold <= 0 {
		threshold = uc.InternalConfig.Stats.OpportunityThresholdDays
	}

	start, end := utils.MonthWindow(request.Year, time.Month(request.Month))
	match := bson.M{
		"signed_at":            bson.M{"$gte": start, "$lt": end},
		"assigned_pathologist": bson.M{"$ne": nil},
		"business_days":        bson.M{"$exists": true},
	}
	if request.Name != "" {
		match["assigned_pathologist.name"] = nameRegex(request.Name)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"id":   "$assigned_pathologist.id",
				"name": "$assigned_pathologist.name",
			},
			"total":        bson.M{"$sum": 1},
			"within":       bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$lte": bson.A{"$business_days", threshold}}, 1, 0}}},
			"average_days": bson.M{"$avg": "$business_days"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":              0,
			"pathologist_id":   "$_id.id",
			"pathologist_name": "$_id.name",
			"total":            1,
			"within":           1,
			"out":              bson.M{"$subtract": bson.A{"$total", "$within"}},
			"average_days":     1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "total", Value: -1}}}},
	}

	rows := make([]responses.PathologistPerformanceRow, 0)
	if err := uc.CaseRepository.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AverageDays = utils.RoundTwoDecimals(rows[i].AverageDays)
	}
	return rows, nil
}

func (uc *statisticsUsecase) PathologistEntities(ctx context.Context, request *requests.PathologistBreakdown) ([]responses.EntityCountRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: breakdownMatch(request)}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   "$patient_info.entity_info.name",
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":         0,
			"entity_name": "$_id",
			"count":       1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	rows := make([]responses.EntityCountRow, 0)
	if err := uc.CaseRepository.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (uc *statisticsUsecase) PathologistTests(ctx context.Context, request *requests.PathologistBreakdown) ([]responses.TestCountRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: breakdownMatch(request)}},
		bson.D{{Key: "$unwind", Value: "$samples"}},
		bson.D{{Key: "$unwind", Value: "$samples.tests"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"id":   "$samples.tests.id",
				"name": "$samples.tests.name",
			},
			"count": bson.M{"$sum": 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":       0,
			"test_id":   "$_id.id",
			"test_name": "$_id.name",
			"count":     1,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	rows := make([]responses.TestCountRow, 0)
	if err := uc.CaseRepository.Aggregate(ctx, pipeline, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (uc *statisticsUsecase) monthPanel(ctx context.Context, year int, month time.Month) (*responses.MonthPanel, error) {
	start, end := utils.MonthWindow(year, month)
	filter := bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}

	caseCount, err := uc.CaseRepository.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$patient_info.patient_code"}}},
		bson.D{{Key: "$count", Value: "count"}},
	}
	var docs []countDoc
	if err := uc.CaseRepository.Aggregate(ctx, pipeline, &docs); err != nil {
		return nil, err
	}

	panel := &responses.MonthPanel{
		Year:  year,
		Month: int(month),
		Cases: caseCount,
	}
	if len(docs) > 0 {
		panel.UniquePatients = docs[0].Count
	}
	return panel, nil
}

func (uc *statisticsUsecase) opportunityWindow(ctx context.Context, year int, month time.Month, threshold int, pathologist string) (*opportunityDoc, error) {
	start, end := utils.MonthWindow(year, month)
	match := bson.M{
		"state":         constvars.CaseStateCompleted,
		"signed_at":     bson.M{"$gte": start, "$lt": end},
		"business_days": bson.M{"$exists": true},
	}
	if pathologist != "" {
		match["assigned_pathologist.name"] = nameRegex(pathologist)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total":        bson.M{"$sum": 1},
			"within":       bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$lte": bson.A{"$business_days", threshold}}, 1, 0}}},
			"average_days": bson.M{"$avg": "$business_days"},
		}}},
	}

	var docs []opportunityDoc
	if err := uc.CaseRepository.Aggregate(ctx, pipeline, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return &opportunityDoc{}, nil
	}
	return &docs[0], nil
}

func withinPercent(doc *opportunityDoc) float64 {
	if doc.Total == 0 {
		return 0
	}
	return utils.RoundTwoDecimals(float64(doc.Within) / float64(doc.Total) * 100)
}

func breakdownMatch(request *requests.PathologistBreakdown) bson.M {
	var start, end time.Time
	if request.Month >= 1 && request.Month <= 12 {
		start, end = utils.MonthWindow(request.Year, time.Month(request.Month))
	} else {
		start = time.Date(request.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(1, 0, 0)
	}
	return bson.M{
		"assigned_pathologist.name": nameRegex(request.Name),
		"created_at":                bson.M{"$gte": start, "$lt": end},
	}
}

func nameRegex(name string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
}
