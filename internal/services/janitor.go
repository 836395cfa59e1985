package services

import (
	"context"
	"log"
	"time"
)

// StaleMarker is implemented by the database client.
type StaleMarker interface {
	MarkStaleProcessing(olderThan time.Duration) (int64, error)
}

// Janitor sweeps generations stuck in processando past the configured
// deadline and flips them to erro. Disabled unless a deadline is set.
type Janitor struct {
	db       StaleMarker
	deadline time.Duration
	interval time.Duration
}

func NewJanitor(db StaleMarker, deadline time.Duration) *Janitor {
	return &Janitor{
		db:       db,
		deadline: deadline,
		interval: time.Minute,
	}
}

// Run blocks until the context is cancelled. A zero deadline disables the
// sweep entirely.
func (j *Janitor) Run(ctx context.Context) {
	if j.deadline <= 0 {
		return
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := j.db.MarkStaleProcessing(j.deadline)
			if err != nil {
				log.Printf("janitor: failed to sweep stale generations: %v", err)
				continue
			}
			if count > 0 {
				log.Printf("janitor: marked %d stale generations as erro", count)
			}
		}
	}
}
