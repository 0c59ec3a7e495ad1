package consecutives

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ConsecutiveMongoRepository struct {
	Collection *mongo.Collection
}

func NewConsecutiveMongoRepository(db *mongo.Client, dbName string) ConsecutiveRepository {
	return &ConsecutiveMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCounters),
	}
}

//// Next is the only mutation path for counters: a single-document atomic
// find-and-modify, so two concurrent callers always get distinct numbers.
func (r *ConsecutiveMongoRepository) Next(ctx context.Context, kind string, year int) (int, error) {
	filter := bson.M{"kind": kind, "year": year}
	update := bson.M{
		"$inc": bson.M{"last_number": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.ConsecutiveCounter
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return counter.LastNumber, nil
}

func (r *ConsecutiveMongoRepository) Peek(ctx context.Context, kind string, year int) (int, error) {
	var counter models.ConsecutiveCounter
	err := r.Collection.FindOne(ctx, bson.M{"kind": kind, "year": year}).Decode(&counter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 1, nil
		}
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return counter.LastNumber + 1, nil
}
