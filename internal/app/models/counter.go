package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConsecutiveCounter backs the per-(kind, year) code allocator. The only
// mutation path is an atomic find-and-modify $inc; it is never cached
// in-process.
type ConsecutiveCounter struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Kind       string             `bson:"kind" json:"kind"`
	Year       int                `bson:"year" json:"year"`
	LastNumber int                `bson:"last_number" json:"last_number"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
