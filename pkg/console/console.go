// Package console reads operator commands line by line and applies them to
// an elevator. It runs beside the update loop, so everything it calls on
// the elevator must be safe for concurrent use.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Winfidonarleyan/WarheadController/pkg/elevator"
)

const (
	planTicks = 100

	// MaxRandom is the largest count accepted by the random command.
	MaxRandom = 1000
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

type Op int

const (
	OpPickup Op = iota
	OpCar
	OpRandom
	OpStatus
	OpPlan
	OpReset
	OpQuit
)

type Command struct {
	Op     Op
	Origin elevator.Floor
	Dest   elevator.Floor
	Count  int
}

// Elevator is what the console needs from *elevator.Elevator.
type Elevator interface {
	AddPickupRequest(origin, destination elevator.Floor) error
	AddCarRequest(destination elevator.Floor) error
	AddRandomPassengers(count int) int
	Status() elevator.Status
	ResetAllPassengers()
	Stop(code elevator.ExitCode)
}

var usage = map[string]string{
	"pickup": "pickup <origin> <destination>",
	"car":    "car <destination>",
	"random": "random <count>",
}

// arity is the number of numeric arguments each command takes, keyed by
// every accepted spelling.
var arity = map[string]struct {
	name string
	op   Op
	args int
}{
	"pickup": {"pickup", OpPickup, 2},
	"p":      {"pickup", OpPickup, 2},
	"car":    {"car", OpCar, 1},
	"c":      {"car", OpCar, 1},
	"random": {"random", OpRandom, 1},
	"r":      {"random", OpRandom, 1},
	"status": {"status", OpStatus, 0},
	"s":      {"status", OpStatus, 0},
	"plan":   {"plan", OpPlan, 0},
	"reset":  {"reset", OpReset, 0},
	"quit":   {"quit", OpQuit, 0},
	"q":      {"quit", OpQuit, 0},
	"exit":   {"quit", OpQuit, 0},
}

// Parse turns one input line into a Command.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}

	kind, ok := arity[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}

	args := fields[1:]
	if len(args) != kind.args {
		if u, ok := usage[kind.name]; ok {
			return Command{}, fmt.Errorf("%w: usage: %s", ErrUsage, u)
		}
		return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrUsage, kind.name)
	}

	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q is not a number", ErrUsage, a)
		}
		nums[i] = n
	}

	cmd := Command{Op: kind.op}
	switch kind.op {
	case OpPickup:
		cmd.Origin, cmd.Dest = elevator.Floor(nums[0]), elevator.Floor(nums[1])
	case OpCar:
		cmd.Dest = elevator.Floor(nums[0])
	case OpRandom:
		if nums[0] < 0 || nums[0] > MaxRandom {
			return Command{}, fmt.Errorf("%w: count must be in [0, %d]", ErrUsage, MaxRandom)
		}
		cmd.Count = nums[0]
	}
	return cmd, nil
}

// Serve reads commands from r until quit or end of input, then stops the
// elevator. Replies go to w, failures are logged and reported on w.
func Serve(r io.Reader, w io.Writer, e Elevator, log zerolog.Logger) {
	defer e.Stop(elevator.ShutdownExitCode)

	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cmd, err := Parse(line)
		if err != nil {
			log.Warn().Err(err).Str("line", line).Msg("Bad console command")
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}
		if cmd.Op == OpQuit {
			log.Info().Msg("Quit requested from console")
			return
		}
		if err := Execute(cmd, w, e); err != nil {
			log.Warn().Err(err).Str("line", line).Msg("Console command failed")
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	if err := s.Err(); err != nil {
		log.Error().Err(err).Msg("Console input failed")
	}
}

// Execute applies cmd to e. OpQuit stops the elevator.
func Execute(cmd Command, w io.Writer, e Elevator) error {
	switch cmd.Op {
	case OpPickup:
		if err := e.AddPickupRequest(cmd.Origin, cmd.Dest); err != nil {
			return err
		}
		fmt.Fprintf(w, "waiting at %d for %d\n", cmd.Origin, cmd.Dest)
	case OpCar:
		if err := e.AddCarRequest(cmd.Dest); err != nil {
			return err
		}
		fmt.Fprintf(w, "in car for %d\n", cmd.Dest)
	case OpRandom:
		n := e.AddRandomPassengers(cmd.Count)
		if n < cmd.Count {
			return elevator.ErrStopped
		}
		fmt.Fprintf(w, "added %d passengers\n", n)
	case OpStatus:
		fmt.Fprintln(w, FormatStatus(e.Status()))
	case OpPlan:
		fmt.Fprintln(w, FormatPlan(elevator.Plan(e.Status(), planTicks)))
	case OpReset:
		e.ResetAllPassengers()
		fmt.Fprintln(w, "all passengers removed")
	case OpQuit:
		e.Stop(elevator.ShutdownExitCode)
	}
	return nil
}

func FormatStatus(st elevator.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "floor %d %v, %d in car [", st.Floor, st.Direction, len(st.Cars))
	for i, c := range st.Cars {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", c.Destination)
	}
	fmt.Fprintf(&b, "], %d waiting [", len(st.Pickups))
	for i, p := range st.Pickups {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d->%d", p.Origin, p.Destination)
	}
	b.WriteByte(']')
	return b.String()
}

func FormatPlan(route []elevator.Floor) string {
	if len(route) == 0 {
		return "plan: idle"
	}
	parts := make([]string, len(route))
	for i, f := range route {
		parts[i] = strconv.Itoa(int(f))
	}
	return "plan: " + strings.Join(parts, " ")
}
