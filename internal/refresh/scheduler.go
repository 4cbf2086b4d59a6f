// Package refresh periodically reloads Fluent resources from a directory
// (or any other source) on a cron schedule, deduplicating concurrent
// reload attempts so an overlapping tick never runs the loader twice at
// once.
package refresh

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ReloadFunc performs one reload pass, returning an error if it failed.
type ReloadFunc func(ctx context.Context) error

// Scheduler runs a ReloadFunc on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	reload  ReloadFunc
	group   singleflight.Group
	entryID cron.EntryID
}

// NewScheduler builds a Scheduler that calls reload according to spec, a
// standard five-field cron expression (e.g. "*/5 * * * *").
func NewScheduler(spec string, reload ReloadFunc) (*Scheduler, error) {
	scheduler := &Scheduler{cron: cron.New(), reload: reload}

	entryID, err := scheduler.cron.AddFunc(spec, scheduler.tick)
	if err != nil {
		return nil, fmt.Errorf("schedule reload %q: %w", spec, err)
	}
	scheduler.entryID = entryID

	return scheduler, nil
}

// Start begins running the schedule in the background.
func (scheduler *Scheduler) Start() {
	scheduler.cron.Start()
}

// Stop halts the schedule and waits for any in-flight reload to finish.
func (scheduler *Scheduler) Stop() {
	<-scheduler.cron.Stop().Done()
}

// ReloadNow triggers a reload outside the schedule, collapsing with any
// concurrently running scheduled or manual reload.
func (scheduler *Scheduler) ReloadNow(ctx context.Context) error {
	_, err, _ := scheduler.group.Do("reload", func() (interface{}, error) {
		return nil, scheduler.reload(ctx)
	})
	return err
}

func (scheduler *Scheduler) tick() {
	if err := scheduler.ReloadNow(context.Background()); err != nil {
		log.Error().Err(err).Msg("scheduled fluent resource reload failed")
	}
}
