package elevator

// randomFloor returns a floor uniformly drawn from [MinFloor, MaxFloor].
func (e *Elevator) randomFloor() Floor {
	e.rndMu.Lock()
	defer e.rndMu.Unlock()
	return MinFloor + Floor(e.rnd.Intn(int(MaxFloor-MinFloor)+1))
}

// AddRandomPassengers adds count pickup requests with random origin and
// destination floors. It returns how many were added, which is less than
// count only once the elevator is stopped.
func (e *Elevator) AddRandomPassengers(count int) int {
	for i := 0; i < count; i++ {
		if err := e.AddPickupRequest(e.randomFloor(), e.randomFloor()); err != nil {
			return i
		}
	}
	return count
}

// AddRandomCarPassengers adds count car requests with random destinations.
func (e *Elevator) AddRandomCarPassengers(count int) int {
	for i := 0; i < count; i++ {
		if err := e.AddCarRequest(e.randomFloor()); err != nil {
			return i
		}
	}
	return count
}
