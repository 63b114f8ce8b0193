package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "list-creation.log"

type settings struct {
	path    string
	trace   bool
	session string
}

var (
	mu      sync.Mutex
	current = settings{path: defaultLogFile}
)

func snapshot() settings {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// appendTo opens path for appending and hands it to write. Failures go to
// stderr since there is nowhere else to report them.
func appendTo(path, what string, write func(io.Writer) error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
	}
}

// Error appends err to the shared log file, tagged with the session id when
// one is set.
func Error(err error) {
	if err == nil {
		return
	}
	s := snapshot()
	appendTo(s.path, "logging", func(w io.Writer) error {
		prefix := ""
		if s.session != "" {
			prefix = "[" + shortSession(s.session) + "] "
		}
		log.New(w, prefix, log.LstdFlags).Println(err)
		return nil
	})
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Session string      `json:"session,omitempty"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	s := snapshot()
	if !s.trace {
		return
	}
	entry := traceEntry{
		Time:    time.Now().UTC(),
		Session: s.session,
		Event:   event,
		Payload: payload,
	}
	appendTo(s.path, "trace logging", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// SetSession tags subsequent log and trace entries with id.
func SetSession(id string) {
	mu.Lock()
	current.session = id
	mu.Unlock()
}

// Session returns the current session id.
func Session() string {
	return snapshot().session
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	current.trace = enabled
	mu.Unlock()
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	current.path = defaultLogFile
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	current.path = path
}
