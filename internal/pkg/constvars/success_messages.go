package constvars

const (
	CreateCaseSuccessMessage     = "Successfully created case"
	GetCaseSuccessMessage        = "Successfully fetched case"
	UpdateCaseSuccessMessage     = "Successfully updated case"
	DeleteCaseSuccessMessage     = "Successfully deleted case"
	ListCasesSuccessMessage      = "Successfully fetched cases"
	SignCaseSuccessMessage       = "Successfully signed case"
	AddCaseNoteSuccessMessage    = "Successfully added note to case"
	GetCaseSnapshotSuccess       = "Successfully fetched case report snapshot"
	CreateApprovalSuccessMessage = "Successfully created approval request"
	GetApprovalSuccessMessage    = "Successfully fetched approval request"
	ListApprovalsSuccessMessage  = "Successfully fetched approval requests"
	ManageApprovalSuccess        = "Successfully moved approval request to pending approval"
	ApproveRequestSuccess        = "Successfully approved request"
	RejectRequestSuccess         = "Successfully rejected request"
	UpdateApprovalSuccess        = "Successfully updated approval request"
	UpdateComplementarySuccess   = "Successfully updated complementary tests"
	GetStatisticsSuccessMessage  = "Successfully computed statistics"
	ListPathologistsSuccess      = "Successfully fetched pathologists"
	GetPathologistSuccess        = "Successfully fetched pathologist"
	CreateTicketSuccessMessage   = "Successfully created ticket"
	ListTicketsSuccessMessage    = "Successfully fetched tickets"
	CloseTicketSuccessMessage    = "Successfully closed ticket"
	LoginSuccessMessage          = "Successfully logged in"
	LogoutSuccessMessage         = "Successfully logged out"
)
