package maintenance

import (
	"context"
	"time"

	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker periodically flips overdue bills and no-show appointments.
type Worker struct {
	log                *zap.Logger
	cfg                *config.InternalConfig
	locker             contracts.LockerService
	billUsecase        contracts.BillUsecase
	appointmentUsecase contracts.AppointmentUsecase
	stop               chan struct{}
	cron               *cron.Cron
	runCtx             context.Context
	cancel             context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, billUsecase contracts.BillUsecase, appointmentUsecase contracts.AppointmentUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, billUsecase: billUsecase, appointmentUsecase: appointmentUsecase, stop: make(chan struct{})}
}

// Start begins the periodic loop. Returns a stop function.
func (w *Worker) Start(ctx context.Context) {
	// create run context we can cancel from Stop()
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Worker.CronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("maintenance.worker: failed to schedule with provided cron spec; falling back to @daily", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@daily", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the worker cron and any in-flight runOnce refreshers.
func (w *Worker) Stop() {
	// signal run goroutines to stop
	select {
	case <-w.stop:
		// already closed
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop() // wait for running jobs to finish
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	// Acquire leader lock
	ttl := time.Duration(w.cfg.Worker.LeaderLockTTLInMinute) * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisWorkerLeaderLockKey, ttl)
	if err != nil {
		w.log.Warn("maintenance.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("maintenance.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisWorkerLeaderLockKey, token)

	// Start TTL refresher goroutine
	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		// refresh a bit before expiry (e.g., half TTL)
		tick := time.NewTicker(ttl / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				w.log.Info("maintenance.worker: refreshing leader lock TTL", zap.String("key", constvars.RedisWorkerLeaderLockKey), zap.Duration("ttl", ttl))
				if err := w.locker.Refresh(ctx, constvars.RedisWorkerLeaderLockKey, token, ttl); err != nil {
					w.log.Warn("maintenance.worker: failed to refresh leader lock TTL", zap.Error(err))
				}
			}
		}
	}()

	now := time.Now()

	overdue, err := w.billUsecase.SweepOverdue(ctx, now)
	if err != nil {
		w.log.Warn("maintenance.worker: overdue bill sweep failed", zap.Error(err))
	} else {
		w.log.Info("maintenance.worker: overdue bill sweep finished", zap.Int("bills_marked_overdue", overdue))
	}

	noShows, err := w.appointmentUsecase.SweepNoShows(ctx, now)
	if err != nil {
		w.log.Warn("maintenance.worker: no-show sweep failed", zap.Error(err))
	} else {
		w.log.Info("maintenance.worker: no-show sweep finished", zap.Int("appointments_marked_no_show", noShows))
	}
}
