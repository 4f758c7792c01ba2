package elevator

import (
	"errors"
	"fmt"
)

// Floor range served by the car, inclusive.
const (
	MinFloor Floor = 1
	MaxFloor Floor = 9
)

var ErrFloorOutOfRange = errors.New("floor out of range")

type Floor int

func (f Floor) Valid() bool {
	return f >= MinFloor && f <= MaxFloor
}

func checkFloor(f Floor) error {
	if !f.Valid() {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrFloorOutOfRange, f, MinFloor, MaxFloor)
	}
	return nil
}

type Direction uint8

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Undefined"
	}
}

// CarRequest is a passenger inside the car.
type CarRequest struct {
	Destination Floor
}

// PickupRequest is a passenger waiting at Origin.
type PickupRequest struct {
	Origin      Floor
	Destination Floor
}
