package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApprovalRequest tracks a complementary-test request made against an
// existing case. The original case is referenced by code only.
type ApprovalRequest struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty" json:"-"`
	ApprovalCode       string              `bson:"approval_code" json:"approval_code"`
	OriginalCaseCode   string              `bson:"original_case_code" json:"original_case_code"`
	ApprovalState      string              `bson:"approval_state" json:"approval_state"`
	ComplementaryTests []ComplementaryTest `bson:"complementary_tests" json:"complementary_tests"`
	ApprovalInfo       ApprovalInfo        `bson:"approval_info" json:"approval_info"`
	CreatedAt          time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updated_at"`
}

type ApprovalInfo struct {
	Reason      string     `bson:"reason" json:"reason"`
	RequestDate time.Time  `bson:"request_date" json:"request_date"`
	ManagedBy   string     `bson:"managed_by,omitempty" json:"managed_by,omitempty"`
	ManagedAt   *time.Time `bson:"managed_at,omitempty" json:"managed_at,omitempty"`
	ApprovedBy  string     `bson:"approved_by,omitempty" json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `bson:"approved_at,omitempty" json:"approved_at,omitempty"`
}
