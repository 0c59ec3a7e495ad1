package statistics

import (
	"context"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeStatsRepository answers Count and Aggregate from canned per-window
// values, keyed by the window start each pipeline matches on.
type fakeStatsRepository struct {
	casesByWindow       map[time.Time]int64
	patientsByWindow    map[time.Time]int64
	monthDocs           []monthCountDoc
	opportunityByWindow map[time.Time]opportunityDoc
	performanceRows     []responses.PathologistPerformanceRow
	entityRows          []responses.EntityCountRow
	testRows            []responses.TestCountRow
	lastMatch           bson.M
}

func newFakeStatsRepository() *fakeStatsRepository {
	return &fakeStatsRepository{
		casesByWindow:       map[time.Time]int64{},
		patientsByWindow:    map[time.Time]int64{},
		opportunityByWindow: map[time.Time]opportunityDoc{},
	}
}

func pipelineMatch(pipeline mongo.Pipeline) bson.M {
	return pipeline[0][0].Value.(bson.M)
}

func windowStart(match bson.M, field string) time.Time {
	return match[field].(bson.M)["$gte"].(time.Time)
}

func (f *fakeStatsRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return f.casesByWindow[windowStart(filter, "created_at")], nil
}

func (f *fakeStatsRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	match := pipelineMatch(pipeline)
	f.lastMatch = match

	switch r := results.(type) {
	case *[]monthCountDoc:
		*r = f.monthDocs
	case *[]countDoc:
		if count, ok := f.patientsByWindow[windowStart(match, "created_at")]; ok {
			*r = []countDoc{{Count: count}}
		}
	case *[]opportunityDoc:
		if doc, ok := f.opportunityByWindow[windowStart(match, "signed_at")]; ok {
			*r = []opportunityDoc{doc}
		}
	case *[]responses.PathologistPerformanceRow:
		*r = f.performanceRows
	case *[]responses.EntityCountRow:
		*r = f.entityRows
	case *[]responses.TestCountRow:
		*r = f.testRows
	}
	return nil
}

func (f *fakeStatsRepository) Insert(ctx context.Context, caseModel *models.Case) error {
	return nil
}

func (f *fakeStatsRepository) FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error) {
	return nil, nil
}

func (f *fakeStatsRepository) UpdateByCaseCode(ctx context.Context, caseCode string, fields bson.M) (*models.Case, error) {
	return nil, nil
}

func (f *fakeStatsRepository) PushNote(ctx context.Context, caseCode string, note models.CaseNote) (*models.Case, error) {
	return nil, nil
}

func (f *fakeStatsRepository) DeleteByCaseCode(ctx context.Context, caseCode string) (bool, error) {
	return false, nil
}

func (f *fakeStatsRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Case, error) {
	return nil, nil
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func newTestStatisticsUsecase(repo *fakeStatsRepository) StatisticsUsecase {
	internalConfig := &config.InternalConfig{}
	internalConfig.Stats.OpportunityThresholdDays = 6
	return NewStatisticsUsecase(repo, internalConfig)
}

func TestMonthlyStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Twelve Slot Vector With Total", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.monthDocs = []monthCountDoc{
			{Month: 3, Count: 10},
			{Month: 7, Count: 5},
			{Month: 13, Count: 99}, // out of range, ignored
		}
		usecase := newTestStatisticsUsecase(repo)

		result, err := usecase.MonthlyStats(ctx, &requests.MonthlyStats{Year: 2026})
		assert.NoError(t, err)
		assert.Len(t, result.Months, 12)
		assert.Equal(t, int64(10), result.Months[2])
		assert.Equal(t, int64(5), result.Months[6])
		assert.Equal(t, int64(15), result.Total)
		assert.Equal(t, 2026, result.Year)
	})

	t.Run("Pathologist Filter Is Quoted And Case Insensitive", func(t *testing.T) {
		repo := newFakeStatsRepository()
		usecase := newTestStatisticsUsecase(repo)

		_, err := usecase.MonthlyStats(ctx, &requests.MonthlyStats{Year: 2026, Pathologist: "Dra. Gómez"})
		assert.NoError(t, err)

		filter, ok := repo.lastMatch["assigned_pathologist.name"].(primitive.Regex)
		assert.True(t, ok)
		assert.Equal(t, `Dra\. Gómez`, filter.Pattern)
		assert.Equal(t, "i", filter.Options)
	})
}

func TestComparisonPanels(t *testing.T) {
	ctx := context.Background()

	t.Run("Change Compares The Two Complete Months", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.casesByWindow[monthStart(2026, time.June)] = 8
		repo.casesByWindow[monthStart(2026, time.May)] = 20
		repo.casesByWindow[monthStart(2026, time.April)] = 16
		repo.patientsByWindow[monthStart(2026, time.June)] = 5
		repo.patientsByWindow[monthStart(2026, time.May)] = 15
		repo.patientsByWindow[monthStart(2026, time.April)] = 10
		usecase := newTestStatisticsUsecase(repo)

		panels, err := usecase.ComparisonPanels(ctx, 2026, 6)
		assert.NoError(t, err)
		assert.Equal(t, int64(8), panels.Current.Cases)
		assert.Equal(t, int64(20), panels.Previous.Cases)
		assert.Equal(t, int64(16), panels.BeforePrevious.Cases)
		assert.Equal(t, float64(25), panels.CasesPercentChange)
		assert.Equal(t, float64(50), panels.PatientsPercentChange)
	})

	t.Run("January Reaches Into The Previous Year", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.casesByWindow[monthStart(2026, time.January)] = 3
		repo.casesByWindow[monthStart(2025, time.December)] = 6
		repo.casesByWindow[monthStart(2025, time.November)] = 4
		usecase := newTestStatisticsUsecase(repo)

		panels, err := usecase.ComparisonPanels(ctx, 2026, 1)
		assert.NoError(t, err)
		assert.Equal(t, 2025, panels.Previous.Year)
		assert.Equal(t, 12, panels.Previous.Month)
		assert.Equal(t, float64(50), panels.CasesPercentChange)
	})

	t.Run("Empty Months Yield Zero Change", func(t *testing.T) {
		usecase := newTestStatisticsUsecase(newFakeStatsRepository())

		panels, err := usecase.ComparisonPanels(ctx, 2026, 6)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), panels.Current.Cases)
		assert.Equal(t, float64(0), panels.CasesPercentChange)
		assert.Equal(t, float64(0), panels.PatientsPercentChange)
	})
}

func TestOpportunityStats(t *testing.T) {
	ctx := context.Background()

	t.Run("Panel Math", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.opportunityByWindow[monthStart(2026, time.June)] = opportunityDoc{Total: 10, Within: 8, AverageDays: 4.456}
		// The delta reference sits two months back.
		repo.opportunityByWindow[monthStart(2026, time.April)] = opportunityDoc{Total: 10, Within: 6, AverageDays: 5}
		usecase := newTestStatisticsUsecase(repo)

		panel, err := usecase.OpportunityStats(ctx, &requests.OpportunityStats{Year: 2026, Month: 6})
		assert.NoError(t, err)
		assert.Equal(t, int64(10), panel.Total)
		assert.Equal(t, int64(8), panel.Within)
		assert.Equal(t, int64(2), panel.Out)
		assert.Equal(t, float64(80), panel.WithinPercent)
		assert.Equal(t, 4.46, panel.AverageDays)
		assert.Equal(t, float64(20), panel.DeltaPercent)
	})

	t.Run("Default Threshold From Config", func(t *testing.T) {
		repo := newFakeStatsRepository()
		usecase := newTestStatisticsUsecase(repo)

		panel, err := usecase.OpportunityStats(ctx, &requests.OpportunityStats{Year: 2026, Month: 6})
		assert.NoError(t, err)
		assert.Equal(t, 6, panel.ThresholdDays)
	})

	t.Run("Explicit Threshold Wins", func(t *testing.T) {
		repo := newFakeStatsRepository()
		usecase := newTestStatisticsUsecase(repo)

		panel, err := usecase.OpportunityStats(ctx, &requests.OpportunityStats{Year: 2026, Month: 6, ThresholdDays: 10})
		assert.NoError(t, err)
		assert.Equal(t, 10, panel.ThresholdDays)
	})

	t.Run("Empty Month Stays At Zero", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.opportunityByWindow[monthStart(2026, time.April)] = opportunityDoc{Total: 4, Within: 2}
		usecase := newTestStatisticsUsecase(repo)

		panel, err := usecase.OpportunityStats(ctx, &requests.OpportunityStats{Year: 2026, Month: 6})
		assert.NoError(t, err)
		assert.Equal(t, int64(0), panel.Total)
		assert.Equal(t, float64(0), panel.WithinPercent)
		assert.Equal(t, float64(-50), panel.DeltaPercent)
	})
}

func TestPathologistPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("Rows Pass Through With Rounded Averages", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.performanceRows = []responses.PathologistPerformanceRow{
			{PathologistID: "PAT-1", PathologistName: "Dra. Gómez", Total: 12, Within: 10, Out: 2, AverageDays: 3.333333},
			{PathologistID: "PAT-2", PathologistName: "Dr. Ruiz", Total: 7, Within: 7, Out: 0, AverageDays: 2},
		}
		usecase := newTestStatisticsUsecase(repo)

		rows, err := usecase.PathologistPerformance(ctx, &requests.PathologistPerformance{Year: 2026, Month: 6})
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, 3.33, rows[0].AverageDays)
		assert.Equal(t, float64(2), rows[1].AverageDays)
	})

	t.Run("Matches The Signed Window", func(t *testing.T) {
		repo := newFakeStatsRepository()
		usecase := newTestStatisticsUsecase(repo)

		_, err := usecase.PathologistPerformance(ctx, &requests.PathologistPerformance{Year: 2026, Month: 6})
		assert.NoError(t, err)
		assert.Equal(t, monthStart(2026, time.June), windowStart(repo.lastMatch, "signed_at"))
	})
}

func TestBreakdownMatch(t *testing.T) {
	t.Run("Month Narrows To One Month", func(t *testing.T) {
		match := breakdownMatch(&requests.PathologistBreakdown{Name: "Gómez", Year: 2026, Month: 4})
		window := match["created_at"].(bson.M)
		assert.Equal(t, monthStart(2026, time.April), window["$gte"])
		assert.Equal(t, monthStart(2026, time.May), window["$lt"])
	})

	t.Run("No Month Spans The Year", func(t *testing.T) {
		match := breakdownMatch(&requests.PathologistBreakdown{Name: "Gómez", Year: 2026})
		window := match["created_at"].(bson.M)
		assert.Equal(t, monthStart(2026, time.January), window["$gte"])
		assert.Equal(t, monthStart(2027, time.January), window["$lt"])
	})
}

func TestPathologistBreakdowns(t *testing.T) {
	ctx := context.Background()

	t.Run("Entities", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.entityRows = []responses.EntityCountRow{
			{EntityName: "Entidad Demo", Count: 9},
			{EntityName: "Otra Entidad", Count: 3},
		}
		usecase := newTestStatisticsUsecase(repo)

		rows, err := usecase.PathologistEntities(ctx, &requests.PathologistBreakdown{Name: "Gómez", Year: 2026})
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Entidad Demo", rows[0].EntityName)
	})

	t.Run("Tests", func(t *testing.T) {
		repo := newFakeStatsRepository()
		repo.testRows = []responses.TestCountRow{
			{TestID: "T-01", TestName: "Biopsia", Count: 14},
		}
		usecase := newTestStatisticsUsecase(repo)

		rows, err := usecase.PathologistTests(ctx, &requests.PathologistBreakdown{Name: "Gómez", Year: 2026, Month: 2})
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, int64(14), rows[0].Count)
	})
}
