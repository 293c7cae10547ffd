package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pulsepad-backend/src/config"
	"pulsepad-backend/src/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names.
const (
	UsersCollection         = "users"
	EmployeesCollection     = "employees"
	ProjectsCollection      = "projects"
	CandidatesCollection    = "candidates"
	TrainingCollection      = "trainingTasks"
	UpdatesCollection       = "dailyUpdates"
	NotificationsCollection = "notifications"
	AuditLogsCollection     = "auditLogs"
	TemplatesCollection     = "assessmentTemplates"
	AssessmentsCollection   = "dailyAssessments"
)

var (
	client     *mongo.Client
	db         *mongo.Database
	once       sync.Once // ConnectMongoDB runs once per process
	connectErr error
)

// ConnectMongoDB connects and pings the primary. Later calls return the first result.
func ConnectMongoDB(cfg config.MongoConfig) error {
	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if connectErr != nil {
			connectErr = fmt.Errorf("connect mongo: %w", connectErr)
			return
		}

		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			connectErr = fmt.Errorf("ping mongo: %w", connectErr)
			return
		}

		db = client.Database(cfg.Database)
		logger.Log.Info("✅ MongoDB connected successfully", zap.String("database", cfg.Database))
	})

	return connectErr
}

// DB returns the application database. It panics if ConnectMongoDB did not succeed.
func DB() *mongo.Database {
	if db == nil {
		panic("database: MongoDB client is nil")
	}
	return db
}

func Disconnect(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Log.Warn("⚠️ MongoDB disconnect failed", zap.Error(err))
	}
}

// QueryTimeout bounds a single service call against MongoDB.
const QueryTimeout = 5 * time.Second

// WithTimeout derives a bounded context for one service call.
func WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, QueryTimeout)
}
