package constvars

const (
	MongoCollectionCases        = "cases"
	MongoCollectionApprovals    = "approval_requests"
	MongoCollectionCounters     = "counters"
	MongoCollectionPathologists = "pathologists"
	MongoCollectionTickets      = "tickets"
	MongoCollectionUsers        = "users"
)
