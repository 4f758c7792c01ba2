// Package fileutil holds small directory and file helpers. Failures are
// reported as a boolean or a zero result, never as an error.
package fileutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CorrectDirPath normalises a directory path to forward slashes with a
// trailing slash. An empty path becomes the current working directory.
func CorrectDirPath(path string, makeAbsolute bool) string {
	if path == "" {
		wd, err := os.Getwd()
		if err == nil {
			path = wd
		}
	}
	path = strings.ReplaceAll(path, "\\", "/")

	if makeAbsolute {
		if abs, err := filepath.Abs(path); err == nil {
			path = filepath.ToSlash(abs)
		}
	}

	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// CreateDirIfNeed creates path unless it already exists as a directory.
// An empty path is treated as the current directory.
func CreateDirIfNeed(path string) bool {
	if path == "" {
		return true
	}
	if fi, err := os.Stat(path); err == nil {
		return fi.IsDir()
	}
	return os.MkdirAll(path, 0o755) == nil
}

// FindWord returns the 1-based number of the first line in the file that
// contains word, or 0 if there is no such line or the file can't be read.
func FindWord(path, word string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	line := 0
	for s.Scan() {
		line++
		if s.Text() == "" {
			continue
		}
		if strings.Contains(s.Text(), word) {
			return line
		}
	}
	return 0
}

// CopyFile copies from to to, replacing to if it exists. It reports
// whether the copy succeeded.
func CopyFile(from, to string) bool {
	src, err := os.Open(from)
	if err != nil {
		return false
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return false
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return false
	}
	return dst.Close() == nil
}
