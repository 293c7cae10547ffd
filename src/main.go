package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "pulsepad-backend/docs"
	"pulsepad-backend/src/config"
	"pulsepad-backend/src/controllers"
	"pulsepad-backend/src/database"
	"pulsepad-backend/src/jobs"
	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/routes"
	"pulsepad-backend/src/seeder"
	"pulsepad-backend/src/services/assessments"
	"pulsepad-backend/src/services/auditlogs"
	"pulsepad-backend/src/services/auth"
	"pulsepad-backend/src/services/candidates"
	"pulsepad-backend/src/services/employees"
	"pulsepad-backend/src/services/notifications"
	"pulsepad-backend/src/services/projects"
	"pulsepad-backend/src/services/training"
	"pulsepad-backend/src/services/updates"
	"pulsepad-backend/src/services/users"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// @title                       PulsePad API
// @version                     1.0
// @description                 Project, employee and daily assessment management.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	logger.Init(cfg.Log)
	defer logger.Sync()
	if err != nil {
		logger.Log.Fatal("❌ Invalid configuration", zap.Error(err))
	}

	if err := database.ConnectMongoDB(cfg.Mongo); err != nil {
		logger.Log.Fatal("❌ Error connecting to the database", zap.Error(err))
	}
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Log.Fatal("❌ Error creating indexes", zap.Error(err))
	}
	cancel()

	if err := database.InitRedis(cfg.Redis.URI); err != nil {
		logger.Log.Warn("⚠️ Redis unavailable, continuing without it", zap.Error(err))
	}
	database.InitAsynq()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.Expire)

	// services
	auditSvc := auditlogs.NewService(db)
	userSvc := users.NewService(db)
	employeeSvc := employees.NewService(db)
	projectSvc := projects.NewService(db)
	candidateSvc := candidates.NewService(db)
	trainingSvc := training.NewService(db)
	updateSvc := updates.NewService(db)
	notificationSvc := notifications.NewService(db)

	var mailer jobs.MailSender
	if sender := jobs.NewSMTPSender(cfg.SMTP); sender != nil {
		mailer = sender
	}
	jobHandlers := jobs.NewHandlers(userSvc, notificationSvc, mailer, cfg.App.BaseURL)

	var queue jobs.Enqueuer
	if database.AsynqClient != nil {
		queue = database.AsynqClient
	}
	assessmentSvc := assessments.NewService(
		assessments.NewMongoStore(db),
		assessments.WithNotifier(jobs.NewDispatcher(queue, jobHandlers)),
		assessments.WithAuditor(auditSvc),
		assessments.WithDirectory(employeeSvc),
		assessments.WithCache(assessments.NewRedisLeaderboardCache(database.RedisClient, 10*time.Minute)),
	)

	var google auth.GoogleIdentity
	if cfg.Google.ClientID != "" {
		google = auth.NewGoogleClient(cfg.Google)
	}
	authSvc := auth.NewService(userSvc, google, auth.NewLoginLimiter(cfg.Auth.LoginRatePerMinute), auditSvc)

	if cfg.App.SeedOnStart {
		s := &seeder.Seeder{
			Users:      userSvc,
			Employees:  employeeSvc,
			Projects:   projectSvc,
			Candidates: candidateSvc,
			Templates:  assessmentSvc,
		}
		generated, err := s.Run(context.Background())
		if err != nil {
			logger.Log.Error("❌ Seed failed", zap.Error(err))
		}
		seeder.LogGeneratedPasswords(generated)
	}

	worker := jobs.StartWorker(database.RedisURI, jobHandlers)

	metrics := middleware.NewMetrics()
	app := fiber.New(fiber.Config{AppName: "PulsePad API"})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowCredentials: false,
	}))

	health := map[string]controllers.HealthCheck{
		"mongo": func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
		"redis": nil,
	}
	if database.RedisClient != nil {
		health["redis"] = func(ctx context.Context) error { return database.RedisClient.Ping(ctx).Err() }
	}

	routes.InitRoutes(app, routes.Handlers{
		Auth:          controllers.NewAuthController(authSvc),
		Assessments:   controllers.NewAssessmentController(assessmentSvc, metrics),
		Employees:     controllers.NewEmployeeController(employeeSvc, auditSvc),
		Projects:      controllers.NewProjectController(projectSvc, auditSvc, cfg.App.BaseURL),
		Candidates:    controllers.NewCandidateController(candidateSvc, auditSvc),
		Training:      controllers.NewTrainingController(trainingSvc, auditSvc),
		Updates:       controllers.NewUpdateController(updateSvc),
		Notifications: controllers.NewNotificationController(notificationSvc),
		AuditLogs:     controllers.NewAuditLogController(auditSvc),
		Users:         controllers.NewUserController(userSvc, auditSvc),
		Health:        controllers.NewHealthController(health),
		Metrics:       metrics,
	})

	go func() {
		logger.Log.Info("Server is running on port " + cfg.App.Port)
		if err := app.Listen(fmt.Sprintf(":%s", cfg.App.Port)); err != nil {
			logger.Log.Fatal("❌ Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Log.Error("❌ Server shutdown failed", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if database.AsynqClient != nil {
		_ = database.AsynqClient.Close()
	}
	if database.RedisClient != nil {
		_ = database.RedisClient.Close()
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	database.Disconnect(shutdownCtx)
}
