// Package runner drives an elevator: it calls Update once per tick
// interval until the elevator is stopped, and sleeps in between.
package runner

import (
	"time"

	"github.com/rs/zerolog"
)

// Updater is the part of *elevator.Elevator the loop needs.
type Updater interface {
	Update()
	IsStopped() bool
}

type Runner struct {
	elevator  Updater
	interval  time.Duration
	idleSleep time.Duration
	log       zerolog.Logger

	timer *Timer
	sleep func(time.Duration)
}

func New(u Updater, interval, idleSleep time.Duration, log zerolog.Logger) *Runner {
	return &Runner{
		elevator:  u,
		interval:  interval,
		idleSleep: idleSleep,
		log:       log,
		timer:     NewTimer(time.Now),
		sleep:     time.Sleep,
	}
}

// Run calls Update every interval until IsStopped reports true, and
// returns the number of ticks run. The first tick runs immediately.
func (r *Runner) Run() int {
	ticks := 0
	r.timer.Reset(0)

	for !r.elevator.IsStopped() {
		if !r.timer.HasTimedOut() {
			r.sleep(min(r.idleSleep, r.timer.Remaining()))
			continue
		}

		r.elevator.Update()
		ticks++
		r.timer.Reset(r.interval)
	}
	r.timer.Stop()

	r.log.Info().Int("ticks", ticks).Msg("Stop update loop")
	return ticks
}
