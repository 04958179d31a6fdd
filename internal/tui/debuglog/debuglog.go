// ABOUTME: File-backed diagnostics for the watch TUI
// ABOUTME: Terminal output belongs to bubbletea, so problems land here instead

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	out     *os.File
	enabled bool
)

// Init opens bloodscript.log under the config directory. An empty
// configDir disables logging entirely; the TUI runs fine without it.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		enabled = false
		return err
	}

	f, err := os.OpenFile(filepath.Join(configDir, "bloodscript.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	out = f
	enabled = true
	return nil
}

// Close flushes and disables the logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if out != nil {
		out.Close()
		out = nil
	}
	enabled = false
}

// Log appends one timestamped line. No-op before Init.
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || out == nil {
		return
	}

	fmt.Fprintf(out, "[%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05"), fmt.Sprintf(format, args...))
}

// Warn records a recoverable problem, like a failed moderator lookup or
// a dropped realtime frame.
func Warn(format string, args ...any) {
	Log("WARN: "+format, args...)
}
