package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Winfidonarleyan/WarheadController/pkg/fileutil"
)

var waitGroup sync.WaitGroup

func loopGetLogger(t *testing.T, routineNum int) {
	defer waitGroup.Done()
	for i := 0; i < 1000; i++ {
		if GetLogger() == nil {
			t.Errorf("GetLogger() = nil in goroutine %d, expected a non-nil logger", routineNum)
		}
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Errorf("GetLogger() = nil, expected a non-nil logger")
	}

	waitGroup.Add(2)
	go loopGetLogger(t, 1)
	go loopGetLogger(t, 2)
	waitGroup.Wait()
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l, closer, err := New(Options{Level: "warn", Console: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	l.Info().Msg("hidden")
	l.Warn().Msg("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info line written at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("warn line missing: %q", buf.String())
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Errorf("New() with bad level returned nil error")
	}
}

func TestNewLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	path := filepath.Join(dir, "elevator.log")

	var buf bytes.Buffer
	l, closer, err := New(Options{Dir: dir, File: "elevator.log", Console: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Info().Msg("first run")
	closer.Close()

	if fileutil.FindWord(path, "first run") == 0 {
		t.Fatalf("log file does not contain the logged line")
	}

	l, closer, err = New(Options{Dir: dir, File: "elevator.log", Console: &buf})
	if err != nil {
		t.Fatalf("New() second run error = %v", err)
	}
	l.Info().Msg("second run")
	closer.Close()

	if fileutil.FindWord(path+".prev", "first run") == 0 {
		t.Errorf("previous log not preserved")
	}
	if fileutil.FindWord(path, "first run") != 0 {
		t.Errorf("log file not truncated on second run")
	}
	if fileutil.FindWord(path, "second run") == 0 {
		t.Errorf("log file does not contain the second run")
	}
}

func TestNewLogDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	os.WriteFile(file, []byte("x"), 0o644)

	_, _, err := New(Options{Dir: file, File: "elevator.log"})
	if !errors.Is(err, ErrLogDir) {
		t.Errorf("New() error = %v, expected ErrLogDir", err)
	}
}

func TestNewKeepsLogWhenBackupFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elevator.log")
	if err := os.WriteFile(path, []byte("precious history\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path+".prev", 0o755); err != nil {
		t.Fatal(err)
	}

	_, _, err := New(Options{Dir: dir, File: "elevator.log", Console: &bytes.Buffer{}})
	if !errors.Is(err, ErrLogRotate) {
		t.Errorf("New() error = %v, expected ErrLogRotate", err)
	}
	if fileutil.FindWord(path, "precious history") != 1 {
		t.Errorf("previous log content was lost")
	}
}
