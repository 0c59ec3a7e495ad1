package requests

type CreateCase struct {
	PatientInfo         PatientInfoPayload `json:"patient_info" validate:"required"`
	RequestingPhysician string             `json:"requesting_physician,omitempty"`
	Service             string             `json:"service,omitempty"`
	Samples             []SamplePayload    `json:"samples" validate:"required,min=1,dive"`
	Priority            string             `json:"priority,omitempty" validate:"omitempty,oneof=Normal Priority Urgent"`
}

type PatientInfoPayload struct {
	PatientCode          string             `json:"patient_code,omitempty"`
	IdentificationType   int                `json:"identification_type" validate:"required"`
	IdentificationNumber string             `json:"identification_number" validate:"required"`
	Name                 string             `json:"name" validate:"required"`
	Age                  int                `json:"age" validate:"gte=0"`
	Gender               string             `json:"gender" validate:"required"`
	EntityInfo           EntityInfoPayload  `json:"entity_info" validate:"required"`
	CareType             string             `json:"care_type" validate:"required"`
	Observations         string             `json:"observations,omitempty"`
}

type EntityInfoPayload struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type SamplePayload struct {
	BodyRegion string              `json:"body_region" validate:"required"`
	Tests      []SampleTestPayload `json:"tests" validate:"required,min=1,dive"`
}

type SampleTestPayload struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=10"`
}

type PathologistInfoPayload struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Signature string `json:"signature,omitempty"`
}

type DiseaseCodePayload struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// UpdateCase is an update mask: nil fields leave the stored document
// untouched.
type UpdateCase struct {
	RequestingPhysician *string                 `json:"requesting_physician,omitempty"`
	Service             *string                 `json:"service,omitempty"`
	Samples             *[]SamplePayload        `json:"samples,omitempty" validate:"omitempty,min=1,dive"`
	State               *string                 `json:"state,omitempty" validate:"omitempty,oneof='In process' 'To sign' 'To deliver' 'Completed'"`
	Priority            *string                 `json:"priority,omitempty" validate:"omitempty,oneof=Normal Priority Urgent"`
	AssignedPathologist *PathologistInfoPayload `json:"assigned_pathologist,omitempty"`
	DeliveredTo         *string                 `json:"delivered_to,omitempty"`
}

type SignCase struct {
	Methods      []string            `json:"methods,omitempty"`
	Macro        *string             `json:"macro,omitempty"`
	Micro        *string             `json:"micro,omitempty"`
	Diagnosis    *string             `json:"diagnosis,omitempty"`
	CIE10        *DiseaseCodePayload `json:"cie10,omitempty"`
	CIEO         *DiseaseCodePayload `json:"cieo,omitempty"`
	Observations *string             `json:"observations,omitempty"`
}

type AddCaseNote struct {
	Text string `json:"text" validate:"required"`
}

// ListCases carries the parsed query filters; zero values mean "not set".
type ListCases struct {
	FreeText    string
	Pathologist string
	Entity      string
	State       string
	TestID      string
	DateFrom    string
	DateTo      string
	Skip        int
	Limit       int
}
