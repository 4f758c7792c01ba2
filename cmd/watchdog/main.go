// Simple watchdog process which runs the elevator process and restarts it
// when it exits with the error exit code.
package main

import (
	"errors"
	"flag"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/Winfidonarleyan/WarheadController/pkg/elevator"
	"github.com/Winfidonarleyan/WarheadController/pkg/logger"
)

var (
	binary   = flag.String("bin", "./bin/elevator", "Elevator binary to supervise.")
	restarts = flag.Int("restarts", 3, "Restarts allowed after error exits.")
)

func main() {
	flag.Parse()
	log := logger.GetLogger()

	// Arguments after the watchdog flags go to the elevator process.
	wd := NewWatchdog(*binary, flag.Args(), *restarts, *log)

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for sig := range interrupted {
			log.Info().Str("signal", sig.String()).Msg("Forwarding signal to elevator process")
			wd.Signal(sig)
		}
	}()

	code := wd.Run()
	log.Info().Int("code", code).Msg("Watchdog shutting down")
	os.Exit(code)
}

type Watchdog struct {
	path        string
	args        []string
	maxRestarts int
	log         zerolog.Logger

	// mu guards cmd and stopping.
	mu       sync.Mutex
	cmd      *exec.Cmd
	stopping bool

	restarts int
}

func NewWatchdog(path string, args []string, maxRestarts int, log zerolog.Logger) *Watchdog {
	return &Watchdog{
		path:        path,
		args:        args,
		maxRestarts: maxRestarts,
		log:         log,
	}
}

var errStopping = errors.New("watchdog is stopping")

// start launches a new elevator process unless a signal has already been
// forwarded. Both run under mu, so a signal either prevents the start or
// reaches the new process.
func (wd *Watchdog) start() (*exec.Cmd, error) {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	if wd.stopping {
		return nil, errStopping
	}

	cmd := exec.Command(wd.path, wd.args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	wd.cmd = cmd

	wd.log.Info().Int("pid", cmd.Process.Pid).Msg("Elevator process started")
	return cmd, nil
}

// Signal forwards sig to the running elevator process. Once a signal has
// been forwarded the process is not started again.
func (wd *Watchdog) Signal(sig os.Signal) {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	wd.stopping = true
	if wd.cmd != nil && wd.cmd.Process != nil {
		if err := wd.cmd.Process.Signal(sig); err != nil {
			wd.log.Warn().Err(err).Msg("Cannot signal elevator process")
		}
	}
}

// Run starts the elevator process and waits for it, restarting it after
// error exits until the restart budget is used. It returns the exit code
// of the last run.
func (wd *Watchdog) Run() int {
	code := int(elevator.ShutdownExitCode)
	for {
		cmd, err := wd.start()
		if errors.Is(err, errStopping) {
			return code
		}
		if err != nil {
			wd.log.Error().Err(err).Str("bin", wd.path).Msg("Cannot start elevator process")
			return int(elevator.ErrorExitCode)
		}

		code = exitCode(cmd.Wait())
		if !shouldRestart(code, wd.restarts, wd.maxRestarts) {
			return code
		}

		wd.restarts++
		wd.log.Warn().
			Int("code", code).
			Int("restart", wd.restarts).
			Int("max", wd.maxRestarts).
			Msg("Elevator process has crashed, restarting")
	}
}

func shouldRestart(code, restarts, maxRestarts int) bool {
	return code == int(elevator.ErrorExitCode) && restarts < maxRestarts
}

// exitCode maps the result of Wait to a process exit code. A process
// killed by a signal counts as an error exit.
func exitCode(err error) int {
	if err == nil {
		return int(elevator.ShutdownExitCode)
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() >= 0 {
		return ee.ExitCode()
	}
	return int(elevator.ErrorExitCode)
}
