package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authflow/internal/app/deps"
	"authflow/internal/app/services"
	"authflow/internal/core/domain/logging"
	sweeppasswordresets "authflow/internal/core/services/sweep_password_resets"
)

const sweepTimeout = 30 * time.Second

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)

	ticker := time.NewTicker(deps.Config.PasswordResetSweepPeriod)
	defer ticker.Stop()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(
		context.Background(),
		"Starting periodic password reset sweeper.",
		logging.Entry("periodMinutes", deps.Config.PasswordResetSweepPeriod.Minutes()),
	)

loop:
	for {
		select {
		case <-stopCh:
			log.Info(context.Background(), "Stopping periodic password reset sweeper.")
			break loop
		case <-ticker.C:
			sweep(services, log)
		}
	}
}

func sweep(services *services.Services, log logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	result, err := services.SweepPasswordResets.Run(ctx, sweeppasswordresets.Input{})
	if err != nil {
		log.Error(ctx, "Sweep service returned an error.", logging.Entry("err", err))
		return
	}
	log.Info(ctx, "Password reset requests swept.", logging.Entry("deleted", result.Deleted))
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}
