package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Winfidonarleyan/WarheadController/pkg/config"
	"github.com/Winfidonarleyan/WarheadController/pkg/console"
	"github.com/Winfidonarleyan/WarheadController/pkg/elevator"
	"github.com/Winfidonarleyan/WarheadController/pkg/logger"
	"github.com/Winfidonarleyan/WarheadController/pkg/runner"
)

var (
	configPath = flag.String("config", "", "Configuration file (.toml, .yaml or .yml).")
	envPath    = flag.String("env", ".env", "Env file with ELEVATOR_* overrides. Ignored if missing.")
	useConsole = flag.Bool("console", false, "Read operator commands from stdin.")
	logLevel   = flag.String("loglevel", "", "Override the configured log level.")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	boot := logger.GetLogger()

	conf, err := config.Load(*configPath, *envPath)
	if err != nil {
		boot.Error().Err(err).Msg("Cannot load configuration")
		return int(elevator.ErrorExitCode)
	}
	if *logLevel != "" {
		conf.Log.Level = *logLevel
	}

	log, closer, err := logger.New(logger.Options{
		Level: conf.Log.Level,
		Dir:   conf.Log.Dir,
		File:  conf.Log.File,
	})
	if err != nil {
		boot.Error().Err(err).Msg("Cannot set up logging")
		return int(elevator.ErrorExitCode)
	}
	defer closer.Close()

	e, err := elevator.NewElevator(conf.ElevatorConfig(), log)
	if err != nil {
		log.Error().Err(err).Msg("Cannot create elevator")
		return int(elevator.ErrorExitCode)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-interrupt
		log.Info().Str("signal", sig.String()).Msg("Caught signal")
		e.Stop(elevator.ShutdownExitCode)
	}()

	e.Start()
	if *useConsole {
		go console.Serve(os.Stdin, os.Stdout, e, log)
	}

	runner.New(e, conf.Runner.TickInterval, conf.Runner.IdleSleep, log).Run()

	log.Info().Uint8("code", uint8(e.ExitCode())).Msg("Halting process...")
	return int(e.ExitCode())
}
