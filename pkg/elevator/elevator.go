// Package elevator simulates a single car moving between MinFloor and
// MaxFloor. Passengers waiting on a floor are pickup requests; once they
// board they become car requests. Each call to Update is one tick: release
// arrived passengers, board waiting ones, then move one step towards the
// next floor chosen by a SCAN-like rule.
package elevator

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/xyproto/randomstring"

	"github.com/Winfidonarleyan/WarheadController/pkg/queue"
)

const identifierLen = 10

var ErrStopped = errors.New("elevator is stopped")

type Config struct {
	// ID names the car in log lines. Empty generates a random one.
	ID string

	// StartFloor is the initial floor. Zero means MinFloor.
	StartFloor Floor

	// SeedPassengers is the number of random pickup requests added by Start.
	SeedPassengers int

	// Rand is the source for random passengers. Nil seeds one from the
	// current time.
	Rand *rand.Rand
}

// Elevator holds the state of the car and its pending requests.
type Elevator struct {
	id   string
	seed int
	log  zerolog.Logger

	// mu guards floor and direction. Only Update and SetCurrentFloor
	// write them.
	mu        sync.Mutex
	floor     Floor
	direction Direction

	cars    queue.Queue[CarRequest]
	pickups queue.Queue[PickupRequest]

	rndMu sync.Mutex
	rnd   *rand.Rand

	stopped  atomic.Bool
	exitCode atomic.Uint32
}

func NewElevator(conf Config, log zerolog.Logger) (*Elevator, error) {
	floor := conf.StartFloor
	if floor == 0 {
		floor = MinFloor
	}
	if err := checkFloor(floor); err != nil {
		return nil, err
	}

	id := conf.ID
	if id == "" {
		id = randomstring.EnglishFrequencyString(identifierLen)
		log.Warn().Msgf("No elevator identifier provided, generated random identifier %q", id)
	}

	rnd := conf.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Elevator{
		id:        id,
		seed:      conf.SeedPassengers,
		log:       log.With().Str("elevator", id).Logger(),
		floor:     floor,
		direction: Up,
		rnd:       rnd,
	}, nil
}

func (e *Elevator) ID() string {
	return e.id
}

// Start seeds the configured number of random passengers on the floors.
func (e *Elevator) Start() {
	e.AddRandomPassengers(e.seed)
	floor, dir := e.state()
	e.log.Info().Int("floor", int(floor)).Stringer("movement", dir).
		Int("passengers", e.pickups.Len()).Msg("Elevator started")
}

// Floor returns the current floor.
func (e *Elevator) Floor() Floor {
	floor, _ := e.state()
	return floor
}

// Direction returns the current direction of movement.
func (e *Elevator) Direction() Direction {
	_, dir := e.state()
	return dir
}

func (e *Elevator) state() (Floor, Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.floor, e.direction
}

// SetCurrentFloor moves the car to floor heading in dir without running a
// tick.
func (e *Elevator) SetCurrentFloor(floor Floor, dir Direction) error {
	if err := checkFloor(floor); err != nil {
		return err
	}
	e.mu.Lock()
	e.floor = floor
	e.direction = dir
	e.mu.Unlock()
	return nil
}

// AddPickupRequest adds a passenger waiting at origin who wants to go to
// destination.
func (e *Elevator) AddPickupRequest(origin, destination Floor) error {
	if err := checkFloor(origin); err != nil {
		return err
	}
	if err := checkFloor(destination); err != nil {
		return err
	}
	if e.pickups.Cancelled() {
		return ErrStopped
	}
	e.pickups.Add(PickupRequest{Origin: origin, Destination: destination})
	return nil
}

// AddCarRequest adds a passenger already inside the car.
func (e *Elevator) AddCarRequest(destination Floor) error {
	if err := checkFloor(destination); err != nil {
		return err
	}
	if e.cars.Cancelled() {
		return ErrStopped
	}
	e.cars.Add(CarRequest{Destination: destination})
	return nil
}

// ResetAllPassengers empties both queues.
func (e *Elevator) ResetAllPassengers() {
	e.cars.Clear()
	e.pickups.Clear()
}

// NextFloor returns the floor the car would move to from its current
// state. It does not change anything.
func (e *Elevator) NextFloor() Floor {
	floor, dir := e.state()
	return nextFloor(floor, dir, e.cars.Snapshot(), e.pickups.Snapshot())
}

// Update runs one tick. It must not be called concurrently with itself.
func (e *Elevator) Update() {
	floor, dir := e.state()

	e.processExitPassengers(floor)
	e.processBoardingPassengers(floor)

	if e.cars.Empty() && e.pickups.Empty() {
		e.log.Warn().Int("floor", int(floor)).Msg("Not found any passengers. Stay elevator in floor")
		return
	}

	next := nextFloor(floor, dir, e.cars.Snapshot(), e.pickups.Snapshot())
	e.log.Info().Stringer("movement", dir).Int("floor", int(floor)).Int("next", int(next)).Msg("Elevator info")

	dir = turn(dir, floor, next)

	e.mu.Lock()
	e.floor = next
	e.direction = dir
	e.mu.Unlock()
}

func (e *Elevator) processExitPassengers(floor Floor) {
	if e.cars.Empty() {
		return
	}

	remaining, served := exitPassengers(drain(&e.cars), floor)
	e.cars.RequeueFront(remaining)

	if served > 0 {
		e.log.Debug().Int("floor", int(floor)).Int("count", served).Msg("Passengers exit")
	}
}

func (e *Elevator) processBoardingPassengers(floor Floor) {
	if e.pickups.Empty() {
		return
	}

	remaining, boarded := boardPassengers(drain(&e.pickups), floor)
	for _, c := range boarded {
		e.log.Debug().Int("need", int(c.Destination)).Msg("Add new elevator passenger")
		e.cars.Add(c)
	}
	e.pickups.RequeueFront(remaining)

	if len(boarded) > 0 {
		e.log.Debug().Int("floor", int(floor)).Int("count", len(boarded)).Msg("Passengers enter")
	}
}

// drain takes every item currently in q.
func drain[T any](q *queue.Queue[T]) []T {
	var items []T
	for {
		item, ok := q.Next()
		if !ok {
			return items
		}
		items = append(items, item)
	}
}
