package console

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Winfidonarleyan/WarheadController/pkg/elevator"
)

func newTestElevator(t *testing.T) *elevator.Elevator {
	t.Helper()
	e, err := elevator.NewElevator(elevator.Config{ID: "console", Rand: rand.New(rand.NewSource(7))}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"pickup 3 5", Command{Op: OpPickup, Origin: 3, Dest: 5}},
		{"P 9 1", Command{Op: OpPickup, Origin: 9, Dest: 1}},
		{"car 7", Command{Op: OpCar, Dest: 7}},
		{"  c   2 ", Command{Op: OpCar, Dest: 2}},
		{"random 4", Command{Op: OpRandom, Count: 4}},
		{"random 1000", Command{Op: OpRandom, Count: MaxRandom}},
		{"status", Command{Op: OpStatus}},
		{"plan", Command{Op: OpPlan}},
		{"reset", Command{Op: OpReset}},
		{"quit", Command{Op: OpQuit}},
		{"exit", Command{Op: OpQuit}},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, expected %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrUnknownCommand},
		{"fly 3", ErrUnknownCommand},
		{"frobnicate now", ErrUnknownCommand},
		{"pickup 3", ErrUsage},
		{"pickup three 5", ErrUsage},
		{"car", ErrUsage},
		{"car 1 2", ErrUsage},
		{"random -1", ErrUsage},
		{"random 1001", ErrUsage},
		{"random 2000000000", ErrUsage},
		{"status now", ErrUsage},
	}

	for _, tt := range tests {
		if _, err := Parse(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, expected %v", tt.line, err, tt.want)
		}
	}
}

func TestServe(t *testing.T) {
	e := newTestElevator(t)
	script := strings.Join([]string{
		"# comment",
		"pickup 3 5",
		"car 7",
		"",
		"car 12",
		"status",
		"plan",
		"quit",
		"car 2",
	}, "\n")

	var out bytes.Buffer
	Serve(strings.NewReader(script), &out, e, zerolog.Nop())

	if !e.IsStopped() || e.ExitCode() != elevator.ShutdownExitCode {
		t.Errorf("quit left IsStopped() = %v, ExitCode() = %d", e.IsStopped(), e.ExitCode())
	}

	st := e.Status()
	if len(st.Pickups) != 1 || st.Pickups[0] != (elevator.PickupRequest{Origin: 3, Destination: 5}) {
		t.Errorf("pickups = %v, expected [{3 5}]", st.Pickups)
	}
	if len(st.Cars) != 1 || st.Cars[0].Destination != 7 {
		t.Errorf("cars = %v, expected only [{7}]", st.Cars)
	}

	text := out.String()
	for _, want := range []string{
		"waiting at 3 for 5",
		"in car for 7",
		"error: ",
		"floor 1 Up, 1 in car [7], 1 waiting [3->5]",
		"plan: 3 5 7",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestServeStopsAtEOF(t *testing.T) {
	e := newTestElevator(t)
	var out bytes.Buffer
	Serve(strings.NewReader("random 3\nreset\n"), &out, e, zerolog.Nop())

	if !e.IsStopped() {
		t.Errorf("IsStopped() = false after end of input")
	}
	if st := e.Status(); len(st.Cars)+len(st.Pickups) != 0 {
		t.Errorf("reset left %d cars and %d pickups", len(st.Cars), len(st.Pickups))
	}
	if !strings.Contains(out.String(), "added 3 passengers") {
		t.Errorf("output = %q, expected random report", out.String())
	}
}

func TestExecuteAfterStop(t *testing.T) {
	e := newTestElevator(t)
	e.Stop(elevator.ShutdownExitCode)

	var out bytes.Buffer
	for _, cmd := range []Command{
		{Op: OpPickup, Origin: 2, Dest: 4},
		{Op: OpCar, Dest: 4},
		{Op: OpRandom, Count: 1},
	} {
		if err := Execute(cmd, &out, e); !errors.Is(err, elevator.ErrStopped) {
			t.Errorf("Execute(%+v) error = %v, expected ErrStopped", cmd, err)
		}
	}
}

func TestFormatPlan(t *testing.T) {
	if got := FormatPlan(nil); got != "plan: idle" {
		t.Errorf("FormatPlan(nil) = %q", got)
	}
	if got := FormatPlan([]elevator.Floor{4, 6, 9, 3}); got != "plan: 4 6 9 3" {
		t.Errorf("FormatPlan() = %q", got)
	}
}
