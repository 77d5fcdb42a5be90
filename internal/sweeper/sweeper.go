// Package sweeper runs the scheduled job that flags overdue loans.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/example/mediatheque/internal/repository"
)

// Sweeper periodically marks every ACTIVE reservation whose end date has
// passed as LATE. The transition is a single guarded UPDATE, so a copy
// returned between two runs is never touched: only rows still ACTIVE
// move. LATE is not terminal; the loan desk completes it on return.
type Sweeper struct {
	reservations *repository.ReservationRepo
	cron         *cron.Cron
}

func New(reservations *repository.ReservationRepo) *Sweeper {
	return &Sweeper{
		reservations: reservations,
		cron:         cron.New(),
	}
}

// Start schedules the sweep with the given cron spec (descriptors like
// "@every 5m" are accepted) and runs one sweep immediately so a restart
// does not leave overdue loans unflagged until the first tick.
func (s *Sweeper) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	go s.sweep()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.reservations.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("overdue-sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("overdue-sweep: marked %d reservation(s) late", n)
	}
}
