package responses

import "pathsys-service/internal/app/models"

type DeleteCaseResult struct {
	Deleted  bool   `json:"deleted"`
	CaseCode string `json:"case_code"`
}

// CaseReportSnapshot is the frozen view handed to the external report
// renderer, with the pathologist signature resolved to a fetchable URL.
type CaseReportSnapshot struct {
	Case         *models.Case `json:"case"`
	SignatureURL string       `json:"signature_url,omitempty"`
}

type ApproveRequestResult struct {
	Approval *models.ApprovalRequest `json:"approval"`
	NewCase  *models.Case            `json:"new_case,omitempty"`
}

type Login struct {
	Token           string `json:"token"`
	Role            string `json:"role"`
	PathologistCode string `json:"pathologist_code,omitempty"`
}
