package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Winfidonarleyan/WarheadController/pkg/fileutil"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrLogDir    = errors.New("cannot create log directory")
	ErrLogRotate = errors.New("cannot keep previous log file")
)

var once sync.Once
var log zerolog.Logger

// Options describes where log lines go.
type Options struct {
	Level string // zerolog level name, empty means info
	Dir   string // log directory, empty disables the log file
	File  string // file name inside Dir

	// Console receives human-readable output. Defaults to os.Stdout.
	Console io.Writer
}

func configureLogger() {
	zerolog.TimeFieldFormat = timeFormat
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
	}
	log = zerolog.New(output).With().Timestamp().Logger()
}

// GetLogger returns the process-wide console logger.
func GetLogger() *zerolog.Logger {
	once.Do(configureLogger)
	return &log
}

// New builds a logger from opts. When a log file is configured the
// directory is created if needed, a previous file is kept as
// <name>.prev, and the returned closer closes the file. The closer is
// never nil.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		level = l
	}

	zerolog.TimeFieldFormat = timeFormat

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	var w io.Writer = zerolog.ConsoleWriter{Out: console, TimeFormat: timeFormat}
	var closer io.Closer = nopCloser{}

	if opts.Dir != "" && opts.File != "" {
		f, err := openLogFile(opts.Dir, opts.File)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		fileWriter := zerolog.ConsoleWriter{Out: f, TimeFormat: timeFormat, NoColor: true}
		w = zerolog.MultiLevelWriter(w, fileWriter)
		closer = f
	}

	l := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return l, closer, nil
}

func openLogFile(dir, name string) (*os.File, error) {
	dir = fileutil.CorrectDirPath(dir, false)
	if !fileutil.CreateDirIfNeed(dir) {
		return nil, fmt.Errorf("%w: %s", ErrLogDir, dir)
	}

	path := dir + name
	// The old file is only truncated once its copy is safe.
	if _, err := os.Stat(path); err == nil {
		if !fileutil.CopyFile(path, path+".prev") {
			return nil, fmt.Errorf("%w: %s", ErrLogRotate, path+".prev")
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
