package responses

import "pathsys-service/internal/app/models"

// PathologistDetail resolves the stored signature object to a presigned
// URL so report clients never touch the object store directly.
type PathologistDetail struct {
	Pathologist  *models.Pathologist `json:"pathologist"`
	SignatureURL string              `json:"signature_url,omitempty"`
}
