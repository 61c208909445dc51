package cron

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"carebook/config"
	"carebook/services/proposal"
)

const TypeProposalExpireSweep = "proposal:expire_sweep"

// InitExpirySweeper runs the async worker plus its periodic scheduler in the
// background. The sweep moves pending proposals older than the configured TTL
// to expired; this is the only path into the expired state.
func InitExpirySweeper(proposalSvc proposal.ProposalService, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeProposalExpireSweep, handleExpireSweep(proposalSvc, logger))

	go func() {
		log.Println("[ExpirySweeper] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ExpirySweeper] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ExpirySweeper] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 15m", asynq.NewTask(TypeProposalExpireSweep, nil)); err != nil {
		log.Printf("[ExpirySweeper] Failed to register sweep schedule: %v", err)
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[ExpirySweeper] Scheduler stopped: %v", err)
		}
	}()
}

func handleExpireSweep(proposalSvc proposal.ProposalService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		ttl := time.Duration(config.AppConfig.ProposalTTLHours) * time.Hour

		swept, err := proposalSvc.ExpireStale(ctx, ttl)
		if err != nil {
			logger.Error("proposal expiry sweep failed", zap.Error(err))
			return err
		}
		if swept > 0 {
			logger.Info("proposal expiry sweep finished", zap.Int64("swept", swept))
		}
		return nil
	}
}
