package elevator

// The functions in this file work on plain slices so that Update and Plan
// share one implementation of the tick. Filters reuse the backing array of
// their input.

// exitPassengers drops car requests whose destination is floor.
func exitPassengers(cars []CarRequest, floor Floor) (remaining []CarRequest, served int) {
	remaining = cars[:0]
	for _, c := range cars {
		if c.Destination == floor {
			served++
			continue
		}
		remaining = append(remaining, c)
	}
	return remaining, served
}

// boardPassengers converts pickup requests waiting at floor into car
// requests.
func boardPassengers(pickups []PickupRequest, floor Floor) (remaining []PickupRequest, boarded []CarRequest) {
	remaining = pickups[:0]
	for _, p := range pickups {
		if p.Origin == floor {
			boarded = append(boarded, CarRequest{Destination: p.Destination})
			continue
		}
		remaining = append(remaining, p)
	}
	return remaining, boarded
}

// nextFloor picks the floor to move to. up is the nearest pending floor
// above the car (MaxFloor if none), down the nearest one below (MinFloor if
// none). The car reverses at either end of the shaft. Otherwise going up it
// takes up and going down it takes down, even when that is only the
// MaxFloor or MinFloor default with nothing pending there.
func nextFloor(floor Floor, dir Direction, cars []CarRequest, pickups []PickupRequest) Floor {
	up, down := MaxFloor, MinFloor
	consider := func(f Floor) {
		if f > floor && f < up {
			up = f
		} else if f < floor && f > down {
			down = f
		}
	}
	for _, c := range cars {
		consider(c.Destination)
	}
	for _, p := range pickups {
		consider(p.Origin)
	}

	if dir == Up && floor == MaxFloor {
		return down
	}
	if dir == Down && floor == MinFloor {
		return up
	}
	if dir == Up && up > floor {
		return up
	}
	return down
}

// turn returns the direction after moving from floor to next.
func turn(dir Direction, floor, next Floor) Direction {
	if dir == Up && next < floor {
		return Down
	} else if dir == Down && next > floor {
		return Up
	}
	return dir
}
