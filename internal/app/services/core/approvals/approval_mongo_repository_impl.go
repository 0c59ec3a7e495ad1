package approvals

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

type ApprovalMongoRepository struct {
	Collection *mongo.Collection
}

func NewApprovalMongoRepository(db *mongo.Client, dbName string) ApprovalRepository {
	return &ApprovalMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionApprovals),
	}
}

// Insert relies on the unique index over original_case_code to enforce
// the single-active-request invariant under concurrent creates.
func (r *ApprovalMongoRepository) Insert(ctx context.Context, approval *models.ApprovalRequest) error {
	_, err := r.Collection.InsertOne(ctx, approval)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrApprovalAlreadyExists(err)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *ApprovalMongoRepository) FindByApprovalCode(ctx context.Context, approvalCode string) (*models.ApprovalRequest, error) {
	var approval models.ApprovalRequest
	err := r.Collection.FindOne(ctx, bson.M{"approval_code": approvalCode}).Decode(&approval)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &approval, nil
}

func (r *ApprovalMongoRepository) FindByOriginalCaseCode(ctx context.Context, originalCaseCode string) (*models.ApprovalRequest, error) {
	var approval models.ApprovalRequest
	err := r.Collection.FindOne(ctx, bson.M{"original_case_code": originalCaseCode}).Decode(&approval)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &approval, nil
}

func (r *ApprovalMongoRepository) UpdateByApprovalCode(ctx context.Context, approvalCode string, fields bson.M) (*models.ApprovalRequest, error) {
	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ApprovalRequest
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"approval_code": approvalCode}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *ApprovalMongoRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.ApprovalRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	result := make([]models.ApprovalRequest, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}

func (r *ApprovalMongoRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
