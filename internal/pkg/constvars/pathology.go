package constvars

// Case states use the domain's own lexicon; labels travel as-is over the wire.
const (
	CaseStateInProcess = "In process"
	CaseStateToSign    = "To sign"
	CaseStateToDeliver = "To deliver"
	CaseStateCompleted = "Completed"
)

const (
	CasePriorityNormal   = "Normal"
	CasePriorityPriority = "Priority"
	CasePriorityUrgent   = "Urgent"
)

const (
	ApprovalStateRequestMade     = "request_made"
	ApprovalStatePendingApproval = "pending_approval"
	ApprovalStateApproved        = "approved"
	ApprovalStateRejected        = "rejected"
)

const (
	CounterKindCase     = "case"
	CounterKindApproval = "approval"
	CounterKindTicket   = "ticket"
)

const (
	TicketStateOpen   = "open"
	TicketStateClosed = "closed"
)

const (
	CaseCodeFormat     = "%d-%05d"
	ApprovalCodeFormat = "AP-%d-%03d"
	TicketCodeFormat   = "T-%d-%03d"
)

const (
	SampleTestQuantityMax        = 10
	ComplementaryTestQuantityMax = 20

	CaseCodeAllocationAttempts = 3

	DefaultOpportunityThresholdDays = 7

	ListingDefaultLimit = 100
	ListingMaxLimit     = 1000
)
