package requests

type CreateApproval struct {
	OriginalCaseCode   string                     `json:"original_case_code" validate:"required"`
	ComplementaryTests []ComplementaryTestPayload `json:"complementary_tests" validate:"required,min=1,dive"`
	Reason             string                     `json:"reason" validate:"required"`
}

type ComplementaryTestPayload struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=20"`
}

// UpdateApproval touches only the request reason; state moves through the
// manage/approve/reject commands.
type UpdateApproval struct {
	Reason *string `json:"reason,omitempty"`
}

type UpdateComplementaryTests struct {
	ComplementaryTests []ComplementaryTestPayload `json:"complementary_tests" validate:"required,min=1,dive"`
}

type ListApprovals struct {
	State            string
	OriginalCaseCode string
	Skip             int
	Limit            int
}
