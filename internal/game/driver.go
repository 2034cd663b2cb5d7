package game

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Driver advances the game on a wall-clock timer. One week takes
// interval/speed; at speed 0 the driver idles until the speed changes.
type Driver struct {
	manager  *GameManager
	interval time.Duration
	logger   *zap.Logger
}

// NewDriver creates a driver for the manager
func NewDriver(manager *GameManager, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{
		manager:  manager,
		interval: interval,
		logger:   manager.Logger,
	}
}

// delay returns the wait before the next tick, or 0 when paused
func (d *Driver) delay() time.Duration {
	speed := d.manager.Speed()
	if speed <= 0 {
		return 0
	}
	state := d.manager.State()
	if state == nil || state.GameOver {
		return 0
	}
	return d.interval / time.Duration(speed)
}

// Run ticks until ctx is cancelled
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info("Tick driver started", zap.Duration("interval", d.interval))
	defer d.logger.Info("Tick driver stopped")

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		wait := d.delay()
		var tick <-chan time.Time
		if wait > 0 {
			timer.Reset(wait)
			tick = timer.C
		}

		select {
		case <-ctx.Done():
			return nil
		case <-d.manager.SpeedChanged():
			timer.Stop()
		case <-tick:
			if _, err := d.manager.Tick(); err != nil && !errors.Is(err, ErrNoGame) {
				d.logger.Error("Tick failed", zap.Error(err))
			}
		}
	}
}
