package requests

// MonthlyStats selects the reporting year; Pathologist narrows to a
// single pathologist name (case-insensitive match).
type MonthlyStats struct {
	Year        int
	Pathologist string
}

type OpportunityStats struct {
	Year          int
	Month         int
	ThresholdDays int
	Pathologist   string
}

type PathologistPerformance struct {
	Year          int
	Month         int
	ThresholdDays int
	Name          string
}

type PathologistBreakdown struct {
	Name  string
	Year  int
	Month int
}
