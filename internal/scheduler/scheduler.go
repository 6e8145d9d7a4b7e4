package scheduler

import (
	"context"
	"time"

	"jobagent-engine/pkg/logging"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on every tick until ctx ends.
func Every(ctx context.Context, interval time.Duration, name string, log *logging.Logger, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	go func() {
		if err := task(ctx); err != nil {
			log.Error("scheduled task failed", "task", name, "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Error("scheduled task failed", "task", name, "err", err)
			}
		}
	}
}
