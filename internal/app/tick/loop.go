package tick

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Step runs after the scheduling pass of every tick, e.g. task execution and
// advancing an in-process host.
type Step func(ctx context.Context, report Report) error

type Loop struct {
	Runner   Runner
	Interval time.Duration
	After    []Step
	Logger   *zap.Logger
}

// Run drives RunTick on a ticker until ctx is done. Tick failures are logged
// and the loop keeps going; the host calls back next tick with fresh state.
func (l Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = time.Second
	}
	logger := l.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.Once(ctx, logger)
		}
	}
}

// Once runs a single scheduling pass followed by the after-steps.
func (l Loop) Once(ctx context.Context, logger *zap.Logger) Report {
	report, err := l.Runner.RunTick(ctx)
	if err != nil {
		logger.Error("tick failed", zap.Int64("tick", report.Tick), zap.Error(err))
		return report
	}
	for _, step := range l.After {
		if err := step(ctx, report); err != nil {
			logger.Error("tick step failed", zap.Int64("tick", report.Tick), zap.Error(err))
		}
	}
	return report
}
