package cases

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

type CaseMongoRepository struct {
	Collection *mongo.Collection
}

func NewCaseMongoRepository(db *mongo.Client, dbName string) CaseRepository {
	return &CaseMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCases),
	}
}

func (r *CaseMongoRepository) Insert(ctx context.Context, caseModel *models.Case) error {
	_, err := r.Collection.InsertOne(ctx, caseModel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCaseCodeTaken, constvars.ErrDevDBDuplicateKey)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *CaseMongoRepository) FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error) {
	var caseModel models.Case
	err := r.Collection.FindOne(ctx, bson.M{"case_code": caseCode}).Decode(&caseModel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &caseModel, nil
}

func (r *CaseMongoRepository) UpdateByCaseCode(ctx context.Context, caseCode string, fields bson.M) (*models.Case, error) {
	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Case
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"case_code": caseCode}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *CaseMongoRepository) PushNote(ctx context.Context, caseCode string, note models.CaseNote) (*models.Case, error) {
	update := bson.M{
		"$push": bson.M{"additional_notes": note},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Case
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"case_code": caseCode}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *CaseMongoRepository) DeleteByCaseCode(ctx context.Context, caseCode string) (bool, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"case_code": caseCode})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (r *CaseMongoRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Case, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	result := make([]models.Case, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}

func (r *CaseMongoRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

// Aggregate runs a pipeline server-side and decodes the streamed result
// into results; raw case documents are never materialized for statistics.
func (r *CaseMongoRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, results); err != nil {
		return exceptions.ErrMongoDBIterateDocuments(err)
	}
	return nil
}
