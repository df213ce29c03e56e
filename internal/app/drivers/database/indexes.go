package database

import (
	"context"
	"log"

	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and partial indexes the application relies
// on. The partial index on appointments is the database-level backstop for
// the slot conflict check: only blocking statuses participate, so a cancelled
// appointment frees its slot for reuse.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	uniqueIndexes := map[string]string{
		constvars.MongoCollectionUsers:        "email",
		constvars.MongoCollectionPatients:     "code",
		constvars.MongoCollectionDoctors:      "code",
		constvars.MongoCollectionAppointments: "code",
		constvars.MongoCollectionBills:        "number",
	}

	for collection, field := range uniqueIndexes {
		_, err := db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}

	blockingStatuses := bson.A{}
	for _, status := range models.BlockingAppointmentStatuses {
		blockingStatuses = append(blockingStatuses, string(status))
	}

	_, err := db.Collection(constvars.MongoCollectionAppointments).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctor_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": blockingStatuses},
			}),
	})
	if err != nil {
		return err
	}

	log.Println("Successfully ensured mongo indexes")
	return nil
}
