package constvars

const (
	LoggingRequestIDKey    = "request_id"
	LoggingCaseCodeKey     = "case_code"
	LoggingApprovalCodeKey = "approval_code"
	LoggingTicketCodeKey   = "ticket_code"
	LoggingStateKey        = "state"
	LoggingCountKey        = "count"
	LoggingQueryParamsKey  = "query_params"
	LoggingQueueKey        = "queue"
	LoggingUserIDKey       = "user_id"
)
