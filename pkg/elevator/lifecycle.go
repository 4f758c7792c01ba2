package elevator

// ExitCode is the process exit status requested by Stop.
type ExitCode uint8

const (
	ShutdownExitCode ExitCode = 0 // normal shutdown
	ErrorExitCode    ExitCode = 1 // shutdown caused by an error
)

// Stop asks the driver loop to finish and records the exit code. Calling
// it again overwrites the code. Both queues are cancelled so that new
// requests are refused.
func (e *Elevator) Stop(code ExitCode) {
	e.exitCode.Store(uint32(code))
	e.stopped.Store(true)
	e.cars.Cancel()
	e.pickups.Cancel()
}

func (e *Elevator) IsStopped() bool {
	return e.stopped.Load()
}

func (e *Elevator) ExitCode() ExitCode {
	return ExitCode(e.exitCode.Load())
}
