package main

import (
	"context"
	"pathsys-service/internal/app/config"
	"pathsys-service/internal/app/drivers/database"
	"pathsys-service/internal/pkg/constvars"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Creates the indexes the engines rely on. Safe to run repeatedly;
// CreateMany is a no-op for indexes that already exist.
func main() {
	driverConfig := config.NewDriverConfig()

	client := database.NewMongoDB(driverConfig)
	db := client.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	createIndexes(ctx, db.Collection(constvars.MongoCollectionCases), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "case_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "signed_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_pathologist.id", Value: 1}}},
		{Keys: bson.D{{Key: "patient_info.patient_code", Value: 1}}},
		{Keys: bson.D{{Key: "samples.tests.id", Value: 1}}},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionApprovals), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "approval_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "original_case_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "approval_state", Value: 1}}},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionCounters), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "year", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionPathologists), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "pathologist_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionTickets), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ticket_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "state", Value: 1}}},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionUsers), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})

	if err := client.Disconnect(ctx); err != nil {
		logrus.Fatalf("Error disconnecting from mongo: %v", err)
	}
	logrus.Println("All indexes in place")
}

func createIndexes(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	names, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logrus.Fatalf("Error creating indexes on %s: %v", collection.Name(), err)
	}
	logrus.Printf("Collection %s: ensured indexes %v", collection.Name(), names)
}
