package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ticket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	TicketCode  string             `bson:"ticket_code" json:"ticket_code"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	State       string             `bson:"state" json:"state"`
	ReportedBy  string             `bson:"reported_by" json:"reported_by"`
	ClosedAt    *time.Time         `bson:"closed_at,omitempty" json:"closed_at,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
