package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Case is the root aggregate of the pathology workflow. The patient
// snapshot is frozen at creation and never follows the upstream record.
type Case struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"-"`
	CaseCode            string              `bson:"case_code" json:"case_code"`
	PatientInfo         PatientInfo         `bson:"patient_info" json:"patient_info"`
	RequestingPhysician string              `bson:"requesting_physician,omitempty" json:"requesting_physician,omitempty"`
	Service             string              `bson:"service,omitempty" json:"service,omitempty"`
	Samples             []Sample            `bson:"samples" json:"samples"`
	State               string              `bson:"state" json:"state"`
	Priority            string              `bson:"priority" json:"priority"`
	AssignedPathologist *PathologistInfo    `bson:"assigned_pathologist,omitempty" json:"assigned_pathologist,omitempty"`
	Result              *CaseResult         `bson:"result,omitempty" json:"result,omitempty"`
	SignedAt            *time.Time          `bson:"signed_at,omitempty" json:"signed_at,omitempty"`
	DeliveredTo         string              `bson:"delivered_to,omitempty" json:"delivered_to,omitempty"`
	DeliveredAt         *time.Time          `bson:"delivered_at,omitempty" json:"delivered_at,omitempty"`
	BusinessDays        *int                `bson:"business_days,omitempty" json:"business_days,omitempty"`
	AdditionalNotes     []CaseNote          `bson:"additional_notes" json:"additional_notes"`
	ComplementaryTests  []ComplementaryTest `bson:"complementary_tests,omitempty" json:"complementary_tests,omitempty"`
	CreatedAt           time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updated_at"`
}

type PatientInfo struct {
	PatientCode          string     `bson:"patient_code" json:"patient_code"`
	IdentificationType   int        `bson:"identification_type" json:"identification_type"`
	IdentificationNumber string     `bson:"identification_number" json:"identification_number"`
	Name                 string     `bson:"name" json:"name"`
	Age                  int        `bson:"age" json:"age"`
	Gender               string     `bson:"gender" json:"gender"`
	EntityInfo           EntityInfo `bson:"entity_info" json:"entity_info"`
	CareType             string     `bson:"care_type" json:"care_type"`
	Observations         string     `bson:"observations,omitempty" json:"observations,omitempty"`
}

type EntityInfo struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

type Sample struct {
	BodyRegion string       `bson:"body_region" json:"body_region"`
	Tests      []SampleTest `bson:"tests" json:"tests"`
}

type SampleTest struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type PathologistInfo struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Signature string `bson:"signature,omitempty" json:"signature,omitempty"`
}

type CaseResult struct {
	Methods      []string     `bson:"methods" json:"methods"`
	Macro        string       `bson:"macro,omitempty" json:"macro,omitempty"`
	Micro        string       `bson:"micro,omitempty" json:"micro,omitempty"`
	Diagnosis    string       `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	CIE10        *DiseaseCode `bson:"cie10,omitempty" json:"cie10,omitempty"`
	CIEO         *DiseaseCode `bson:"cieo,omitempty" json:"cieo,omitempty"`
	Observations string       `bson:"observations,omitempty" json:"observations,omitempty"`
}

// DiseaseCode is an opaque pair from the diseases catalog (CIE-10 / CIEO).
type DiseaseCode struct {
	Code string `bson:"code" json:"code"`
	Name string `bson:"name" json:"name"`
}

type CaseNote struct {
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type ComplementaryTest struct {
	Code     string `bson:"code" json:"code"`
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// DerivePatientCode fills the patient code from the identification pair
// when the caller did not provide one.
func (p *PatientInfo) DerivePatientCode() {
	if p.PatientCode == "" {
		p.PatientCode = fmt.Sprintf("%d-%s", p.IdentificationType, p.IdentificationNumber)
	}
}
