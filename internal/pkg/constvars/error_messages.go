package constvars

// Validation messages, mapped by validator tag.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s",
	"max":      "maximum at %s",
	"gte":      "must be at least %s",
	"lte":      "must be at most %s",
	"oneof":    "must be one of: %s",
	"dive":     "has an invalid element",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidUsernameOrPassword     = "invalid username or password"

	ErrClientCaseNotFound             = "case not found"
	ErrClientApprovalNotFound         = "approval request not found"
	ErrClientPathologistNotFound      = "pathologist not found"
	ErrClientTicketNotFound           = "ticket not found"
	ErrClientCaseCodeTaken            = "could not allocate a unique case code, please retry"
	ErrClientApprovalAlreadyExists    = "an approval request already exists for this case"
	ErrClientCompleteFromWrongState   = "only cases in 'To deliver' may be completed"
	ErrClientSignWithoutPathologist   = "assign a pathologist first"
	ErrClientSignCompletedCase        = "a completed case cannot be signed"
	ErrClientApprovalNotEditable      = "complementary tests can only be edited while the request is in 'request_made'"
	ErrClientApprovalAlreadyTerminal  = "the approval request was already resolved"
	ErrClientEmptySamples             = "at least one sample is required"
	ErrClientEmptyComplementaryTests  = "at least one complementary test is required"
	ErrClientInvalidDateRange         = "invalid date filter, expected YYYY-MM-DD"
	ErrClientInvalidListingPagination = "invalid pagination parameters"
)

// Error messages for developers
const (
	ErrDevValidationFailed = "validation failed"
	ErrDevCannotParseJSON  = "cannot parse JSON"
	ErrDevCannotParseDate  = "cannot parse date"
	ErrDevInvalidInput     = "invalid input"
	ErrDevServerProcess    = "server failed to process the request"

	ErrDevServerDeadlineExceeded = "server deadline exceeded"

	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToAggregate        = "failed to run aggregation pipeline"
	ErrDevDBDuplicateKey             = "duplicate key"

	ErrDevCaseNotFound            = "case does not exist"
	ErrDevApprovalNotFound        = "approval request does not exist"
	ErrDevPathologistNotFound     = "pathologist does not exist"
	ErrDevTicketNotFound          = "ticket does not exist"
	ErrDevCaseCodeExhausted       = "case code allocation exhausted retries"
	ErrDevApprovalDuplicate       = "active approval request already exists for original case"
	ErrDevCompleteFromWrongState  = "completion attempted from a state other than 'To deliver'"
	ErrDevSignGuardFailed         = "sign preconditions not met"
	ErrDevApprovalTerminalState   = "approval request already in terminal state"
	ErrDevApprovalNotEditable     = "approval request not in request_made"
	ErrDevEmptySamples            = "samples list empty"
	ErrDevEmptyComplementaryTests = "complementary tests list empty"

	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "token invalid or expired"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevInvalidCredentials        = "invalid credentials"
	ErrDevMissingRequestID          = "request id not found in context"

	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue: %s"
	ErrDevMinioFailedToPutObject = "failed to put object into bucket: %s"
	ErrDevMinioFailedToPresign   = "failed to presign object from bucket: %s"
)
