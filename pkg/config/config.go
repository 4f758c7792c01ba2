// This package reads the elevator configuration from a TOML or YAML file
// and overlays settings taken from a dotenv file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Winfidonarleyan/WarheadController/pkg/elevator"
)

var (
	ErrUnknownFormat = errors.New("unknown config file format")
	ErrInvalid       = errors.New("invalid config")
)

type ElevatorConfig struct {
	ID             string `toml:"id" yaml:"id"`
	StartFloor     int    `toml:"start_floor" yaml:"start_floor"`
	SeedPassengers int    `toml:"seed_passengers" yaml:"seed_passengers"`
}

type RunnerConfig struct {
	TickInterval time.Duration `toml:"tick_interval" yaml:"tick_interval"`
	IdleSleep    time.Duration `toml:"idle_sleep" yaml:"idle_sleep"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	Dir   string `toml:"dir" yaml:"dir"`
	File  string `toml:"file" yaml:"file"`
}

type Config struct {
	Elevator ElevatorConfig `toml:"elevator" yaml:"elevator"`
	Runner   RunnerConfig   `toml:"runner" yaml:"runner"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

func Default() Config {
	return Config{
		Elevator: ElevatorConfig{
			StartFloor:     int(elevator.MinFloor),
			SeedPassengers: 5,
		},
		Runner: RunnerConfig{
			TickInterval: time.Second,
			IdleSleep:    100 * time.Millisecond,
		},
		Log: LogConfig{
			Level: "info",
			File:  "elevator.log",
		},
	}
}

// Load builds a configuration from the defaults, the config file at path
// and the dotenv file at envFile, then the process environment. Either
// path may be empty. A missing dotenv file is ignored.
func Load(path, envFile string) (Config, error) {
	c := Default()

	if path != "" {
		if err := decodeFile(path, &c); err != nil {
			return c, err
		}
	}

	env := make(map[string]string)
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return c, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range m {
			env[k] = v
		}
	}
	for _, k := range envKeys {
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}

	if err := c.ApplyEnv(env); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func decodeFile(path string, c *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, c); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(c); err != nil && err != io.EOF {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	return nil
}

const (
	envID             = "ELEVATOR_ID"
	envStartFloor     = "ELEVATOR_START_FLOOR"
	envSeedPassengers = "ELEVATOR_SEED_PASSENGERS"
	envTickInterval   = "ELEVATOR_TICK_INTERVAL"
	envIdleSleep      = "ELEVATOR_IDLE_SLEEP"
	envLogLevel       = "ELEVATOR_LOG_LEVEL"
	envLogDir         = "ELEVATOR_LOG_DIR"
	envLogFile        = "ELEVATOR_LOG_FILE"
)

var envKeys = []string{
	envID, envStartFloor, envSeedPassengers, envTickInterval,
	envIdleSleep, envLogLevel, envLogDir, envLogFile,
}

// ApplyEnv overrides fields from ELEVATOR_* keys in env.
func (c *Config) ApplyEnv(env map[string]string) error {
	for field, valstr := range env {
		var err error
		switch field {
		case envID:
			c.Elevator.ID = valstr
		case envStartFloor:
			c.Elevator.StartFloor, err = strconv.Atoi(valstr)
		case envSeedPassengers:
			c.Elevator.SeedPassengers, err = strconv.Atoi(valstr)
		case envTickInterval:
			c.Runner.TickInterval, err = time.ParseDuration(valstr)
		case envIdleSleep:
			c.Runner.IdleSleep, err = time.ParseDuration(valstr)
		case envLogLevel:
			c.Log.Level = valstr
		case envLogDir:
			c.Log.Dir = valstr
		case envLogFile:
			c.Log.File = valstr
		}
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, field, valstr, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if !elevator.Floor(c.Elevator.StartFloor).Valid() {
		return fmt.Errorf("%w: start floor %d not in [%d, %d]", ErrInvalid,
			c.Elevator.StartFloor, elevator.MinFloor, elevator.MaxFloor)
	}
	if c.Elevator.SeedPassengers < 0 {
		return fmt.Errorf("%w: negative seed passengers %d", ErrInvalid, c.Elevator.SeedPassengers)
	}
	if c.Runner.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %v", ErrInvalid, c.Runner.TickInterval)
	}
	if c.Runner.IdleSleep <= 0 {
		return fmt.Errorf("%w: idle sleep must be positive, got %v", ErrInvalid, c.Runner.IdleSleep)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

// ElevatorConfig returns the settings used to construct the elevator.
func (c *Config) ElevatorConfig() elevator.Config {
	return elevator.Config{
		ID:             c.Elevator.ID,
		StartFloor:     elevator.Floor(c.Elevator.StartFloor),
		SeedPassengers: c.Elevator.SeedPassengers,
	}
}
