package elevator

import (
	"github.com/tiendc/go-deepcopy"
)

// Status is a copy of the elevator state at one point in time.
type Status struct {
	Floor     Floor
	Direction Direction
	Cars      []CarRequest
	Pickups   []PickupRequest
}

// Status returns the current floor, direction and pending requests.
func (e *Elevator) Status() Status {
	floor, dir := e.state()
	return Status{
		Floor:     floor,
		Direction: dir,
		Cars:      e.cars.Snapshot(),
		Pickups:   e.pickups.Snapshot(),
	}
}

// Plan runs the tick algorithm on a virtual elevator built from st until
// no passengers are left or maxTicks ticks have run, and returns the
// floors the car moves to in order. st is not modified.
func Plan(st Status, maxTicks int) []Floor {
	ve := new(Status)
	if err := deepcopy.Copy(ve, &st); err != nil {
		return nil
	}

	var route []Floor
	for tick := 0; tick < maxTicks; tick++ {
		var boarded []CarRequest
		ve.Cars, _ = exitPassengers(ve.Cars, ve.Floor)
		ve.Pickups, boarded = boardPassengers(ve.Pickups, ve.Floor)
		ve.Cars = append(ve.Cars, boarded...)

		if len(ve.Cars) == 0 && len(ve.Pickups) == 0 {
			break
		}

		next := nextFloor(ve.Floor, ve.Direction, ve.Cars, ve.Pickups)
		ve.Direction = turn(ve.Direction, ve.Floor, next)
		ve.Floor = next
		route = append(route, next)
	}
	return route
}
