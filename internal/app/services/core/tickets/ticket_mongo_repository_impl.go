package tickets

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

type TicketMongoRepository struct {
	Collection *mongo.Collection
}

func NewTicketMongoRepository(db *mongo.Client, dbName string) TicketRepository {
	return &TicketMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTickets),
	}
}

func (r *TicketMongoRepository) Insert(ctx context.Context, ticket *models.Ticket) error {
	_, err := r.Collection.InsertOne(ctx, ticket)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBDuplicateKey)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *TicketMongoRepository) FindByTicketCode(ctx context.Context, ticketCode string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.Collection.FindOne(ctx, bson.M{"ticket_code": ticketCode}).Decode(&ticket)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &ticket, nil
}

func (r *TicketMongoRepository) UpdateByTicketCode(ctx context.Context, ticketCode string, fields bson.M) (*models.Ticket, error) {
	fields["updated_at"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Ticket
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"ticket_code": ticketCode}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &updated, nil
}

func (r *TicketMongoRepository) Find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Ticket, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	result := make([]models.Ticket, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return result, nil
}

func (r *TicketMongoRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
