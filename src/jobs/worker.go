package jobs

import (
	"pulsepad-backend/src/logger"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartWorker runs the asynq server in the background and returns it so the
// caller can shut it down. It returns nil when redisAddr is empty.
func StartWorker(redisAddr string, handlers *Handlers) *asynq.Server {
	if redisAddr == "" || handlers == nil {
		logger.Log.Warn("⚠️ Redis not configured. Background worker disabled.")
		return nil
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	handlers.Register(mux)

	if err := srv.Start(mux); err != nil {
		logger.Log.Error("❌ Could not run asynq server", zap.Error(err))
		return nil
	}
	logger.Log.Info("✅ Background worker started")
	return srv
}
