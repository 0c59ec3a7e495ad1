package statistics

import (
	"context"
	"pathsys-service/internal/pkg/dto/requests"
	"pathsys-service/internal/pkg/dto/responses"
)

type StatisticsUsecase interface {
	MonthlyStats(ctx context.Context, request *requests.MonthlyStats) (*responses.MonthlyStats, error)
	ComparisonPanels(ctx context.Context, year int, month int) (*responses.ComparisonPanels, error)
	OpportunityStats(ctx context.Context, request *requests.OpportunityStats) (*responses.OpportunityPanel, error)
	PathologistPerformance(ctx context.Context, request *requests.PathologistPerformance) ([]responses.PathologistPerformanceRow, error)
	PathologistEntities(ctx context.Context, request *requests.PathologistBreakdown) ([]responses.EntityCountRow, error)
	PathologistTests(ctx context.Context, request *requests.PathologistBreakdown) ([]responses.TestCountRow, error)
}
