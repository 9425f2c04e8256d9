package watcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrNotRunning is returned when no live watcher owns the PID file
var ErrNotRunning = errors.New("watcher is not running")

// PIDFile records the process running `mdsite watch`
type PIDFile struct {
	path string
}

// New returns a PID file handle at path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the location of the PID file
func (p *PIDFile) Path() string {
	return p.path
}

// Acquire records the current process. It fails if another live watcher
// already holds the file; a stale file is replaced.
func (p *PIDFile) Acquire() error {
	if running, pid, _ := p.Running(); running && pid != os.Getpid() {
		return fmt.Errorf("watcher already running with PID %d", pid)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}

	content := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(p.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Read returns the PID stored in the file
func (p *PIDFile) Read() (int, error) {
	content, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	return pid, nil
}

// Running reports whether the recorded process is alive, its PID and
// when the file was written. Stale files are removed.
func (p *PIDFile) Running() (bool, int, time.Time) {
	pid, err := p.Read()
	if err != nil {
		return false, 0, time.Time{}
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false, 0, time.Time{}
	}

	// Signal 0 only checks for existence
	if err := process.Signal(syscall.Signal(0)); err != nil {
		if cleanupErr := p.Release(); cleanupErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove stale PID file: %v\n", cleanupErr)
		}
		return false, 0, time.Time{}
	}

	var started time.Time
	if info, err := os.Stat(p.path); err == nil {
		started = info.ModTime()
	}
	return true, pid, started
}

// Stop asks the running watcher to shut down with SIGTERM
func (p *PIDFile) Stop() (int, error) {
	running, pid, _ := p.Running()
	if !running {
		return 0, ErrNotRunning
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("failed to find process: %w", err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return 0, fmt.Errorf("failed to send SIGTERM: %w", err)
	}
	return pid, nil
}

// Spawn starts the current executable with args as a detached process
func Spawn(args []string) (int, error) {
	executable, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("failed to get executable path: %w", err)
	}

	cmd := exec.Command(executable, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start watcher: %w", err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return 0, fmt.Errorf("failed to release watcher process: %w", err)
	}
	return pid, nil
}
