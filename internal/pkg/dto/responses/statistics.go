package responses

type MonthlyStats struct {
	Year   int     `json:"year"`
	Months []int64 `json:"months"`
	Total  int64   `json:"total"`
}

type MonthPanel struct {
	Year           int   `json:"year"`
	Month          int   `json:"month"`
	Cases          int64 `json:"cases"`
	UniquePatients int64 `json:"unique_patients"`
}

type ComparisonPanels struct {
	Current               MonthPanel `json:"current"`
	Previous              MonthPanel `json:"previous"`
	BeforePrevious        MonthPanel `json:"before_previous"`
	CasesPercentChange    float64    `json:"cases_percent_change"`
	PatientsPercentChange float64    `json:"patients_percent_change"`
}

type OpportunityPanel struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	ThresholdDays  int     `json:"threshold_days"`
	Total          int64   `json:"total"`
	Within         int64   `json:"within"`
	Out            int64   `json:"out"`
	WithinPercent  float64 `json:"within_percent"`
	AverageDays    float64 `json:"average_days"`
	DeltaPercent   float64 `json:"delta_percent"`
}

type PathologistPerformanceRow struct {
	PathologistID   string  `json:"pathologist_id" bson:"pathologist_id"`
	PathologistName string  `json:"pathologist_name" bson:"pathologist_name"`
	Total           int64   `json:"total" bson:"total"`
	Within          int64   `json:"within" bson:"within"`
	Out             int64   `json:"out" bson:"out"`
	AverageDays     float64 `json:"averageDays" bson:"average_days"`
}

type EntityCountRow struct {
	EntityName string `json:"entity_name" bson:"entity_name"`
	Count      int64  `json:"count" bson:"count"`
}

type TestCountRow struct {
	TestID   string `json:"test_id" bson:"test_id"`
	TestName string `json:"test_name" bson:"test_name"`
	Count    int64  `json:"count" bson:"count"`
}
