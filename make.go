//go:build ignore

// Builds bin/elevator and bin/watchdog. Run with `go run make.go`, or
// `go run make.go test` to run the tests first.
package main

import (
	"os"
	"os/exec"

	"github.com/Winfidonarleyan/WarheadController/pkg/logger"
)

func main() {
	log := logger.GetLogger()

	steps := [][]string{}
	if len(os.Args) > 1 && os.Args[1] == "test" {
		steps = append(steps, []string{"test", "./..."})
	}
	steps = append(steps,
		[]string{"build", "-o", "./bin/elevator", "./cmd/elevator"},
		[]string{"build", "-o", "./bin/watchdog", "./cmd/watchdog"},
	)

	for _, args := range steps {
		cmd := exec.Command("go", args...)
		cmd.Stderr = os.Stderr
		cmd.Stdout = os.Stdout
		if err := cmd.Run(); err != nil {
			log.Error().Err(err).Strs("args", args).Msg("go command failed")
			os.Exit(1)
		}
	}
	log.Info().Msg("Binaries written to ./bin")
}
