// File: internal/jobs/placement_sweep.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"uslocal_backend/internal/config"
	"uslocal_backend/internal/placement"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PlacementSweepJob periodically disables sponsored placements whose end
// date has passed. Reads already exclude expired placements, so this is
// housekeeping that keeps the admin views honest.
type PlacementSweepJob struct {
	placementService placement.Service
	logger           *zap.Logger
	cfg              *config.Config
	cronScheduler    *cron.Cron
}

// NewPlacementSweepJob creates a new PlacementSweepJob.
func NewPlacementSweepJob(
	placementService placement.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *PlacementSweepJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &PlacementSweepJob{
		placementService: placementService,
		logger:           logger.Named("PlacementSweepJob"),
		cfg:              cfg,
		cronScheduler:    scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *PlacementSweepJob) SetupAndStart() error {
	jobSpec := j.cfg.PlacementSweepSchedule // e.g. "@hourly", "0 * * * *"
	if jobSpec == "" {
		j.logger.Warn("Placement sweep schedule not defined (PLACEMENT_SWEEP_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule placement sweep job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Placement sweep job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *PlacementSweepJob) runJob() {
	j.logger.Info("Starting placement sweep run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	disabled, err := j.placementService.DisableEndedPlacements(ctx)
	if err != nil {
		j.logger.Error("Placement sweep run failed", zap.Error(err))
	} else {
		j.logger.Info("Placement sweep run completed", zap.Int64("placements_disabled", disabled))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *PlacementSweepJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping placement sweep scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Placement sweep scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Placement sweep scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
