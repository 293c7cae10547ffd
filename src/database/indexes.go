package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the services rely on. The daily assessment
// index makes assignment idempotent under concurrent requests.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		EmployeesCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		AssessmentsCollection: {
			{
				Keys: bson.D{
					{Key: "employeeId", Value: 1},
					{Key: "templateId", Value: 1},
					{Key: "date", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("employee_template_date"),
			},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		NotificationsCollection: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		AuditLogsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		UpdatesCollection: {
			{Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: -1}}},
		},
	}

	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
