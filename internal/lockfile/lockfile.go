// Package lockfile guards the state directory against a second bot
// instance. Two processes polling getUpdates with the same token steal
// each other's messages, so the lock failure is surfaced loudly at
// startup instead of as silently dropped turns.
//
// The lock is a flock on a file in the state directory and is released
// by the kernel when the process exits, gracefully or not.
package lockfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// LockFileName is the name of the lock file inside the state directory.
const LockFileName = "masskeeper.lock"

// Lock is an acquired state-directory lock.
type Lock struct {
	file     *os.File
	path     string
	acquired bool
}

// ErrLocked wraps lock conflicts so callers can match with errors.Is.
var ErrLocked = errors.New("state directory is locked by another process")

// Acquire takes an exclusive lock on the state directory, creating it
// if needed. On conflict the error names the holding process.
func Acquire(stateDir string) (*Lock, error) {
	path := filepath.Join(stateDir, LockFileName)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory %s: %w", stateDir, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		holder := describeHolder(path)
		slog.Error("state directory already locked", "path", path, "holder", holder)
		return nil, fmt.Errorf("%w: %s (held by %s)", ErrLocked, path, holder)
	}

	if _, err := fmt.Fprintf(file, "pid=%d\n", os.Getpid()); err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		return nil, fmt.Errorf("write lock file %s: %w", path, err)
	}
	if err := file.Sync(); err != nil {
		slog.Warn("failed to sync lock file", "path", path, "error", err)
	}

	slog.Info("acquired state directory lock", "path", path, "pid", os.Getpid())
	return &Lock{file: file, path: path, acquired: true}, nil
}

// Release unlocks and removes the lock file. Safe to call twice.
func (l *Lock) Release() error {
	if !l.acquired || l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		slog.Error("failed to release flock", "path", l.path, "error", err)
	}
	if err := l.file.Close(); err != nil {
		slog.Error("failed to close lock file", "path", l.path, "error", err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		slog.Error("failed to remove lock file", "path", l.path, "error", err)
	}
	l.acquired = false
	l.file = nil
	return nil
}

// describeHolder reads the conflicting lock file and reports whether
// its recorded process is still alive. A dead holder means the flock
// itself was somehow bypassed, since flocks die with their process.
func describeHolder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return "unknown process"
	}
	pid := parsePID(string(data))
	if pid <= 0 {
		return strings.TrimSpace(string(data))
	}
	if processAlive(pid) {
		return fmt.Sprintf("pid %d (running)", pid)
	}
	return fmt.Sprintf("pid %d (not running)", pid)
}

func parsePID(content string) int {
	const prefix = "pid="
	idx := strings.Index(content, prefix)
	if idx < 0 {
		return 0
	}
	rest := content[idx+len(prefix):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	pid, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return pid
}

// processAlive probes a PID with signal 0.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
