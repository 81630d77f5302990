package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Refresher rebuilds the roster on a cron schedule
type Refresher struct {
	cron    *cron.Cron
	service ServiceInterface
}

// NewRefresher accepts standard 5-field schedules and descriptors like "@every 10m".
func NewRefresher(svc ServiceInterface, schedule string) (*Refresher, error) {
	r := &Refresher{
		cron:    cron.New(),
		service: svc,
	}

	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) refresh() {
	roster := r.service.LoadDirectory(context.Background())
	log.Info().
		Uint64("version", roster.Version).
		Str("source", string(roster.Source)).
		Msg("[DIRECTORY] Scheduled refresh completed")
}

// Start starts the scheduler
func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop waits for a running refresh to finish
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
