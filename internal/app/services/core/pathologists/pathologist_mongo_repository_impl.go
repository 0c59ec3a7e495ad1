package pathologists

import (
	"context"
	"pathsys-service/internal/app/models"
	"pathsys-service/internal/pkg/constvars"
	"pathsys-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PathologistMongoRepository struct {
	Collection *mongo.Collection
}

func NewPathologistMongoRepository(db *mongo.Client, dbName string) PathologistRepository {
	return &PathologistMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPathologists),
	}
}

func (r *PathologistMongoRepository) FindByPathologistCode(ctx context.Context, pathologistCode string) (*models.Pathologist, error) {
	var pathologist models.Pathologist
	err := r.Collection.FindOne(ctx, bson.M{"pathologist_code": pathologistCode}).Decode(&pathologist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &pathologist, nil
}

func (r *PathologistMongoRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Pathologist, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	result := make([]models.Pathologist, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}
