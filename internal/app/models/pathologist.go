package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Pathologist struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PathologistCode  string             `bson:"pathologist_code" json:"pathologist_code"`
	Name             string             `bson:"name" json:"name"`
	Initials         string             `bson:"initials,omitempty" json:"initials,omitempty"`
	Email            string             `bson:"email,omitempty" json:"email,omitempty"`
	MedicalLicense   string             `bson:"medical_license,omitempty" json:"medical_license,omitempty"`
	SignatureObject  string             `bson:"signature_object,omitempty" json:"signature_object,omitempty"`
	Active           bool               `bson:"active" json:"active"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
