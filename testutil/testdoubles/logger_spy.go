package testdoubles

import (
	"fmt"
	"strings"
	"sync"
)

// Log levels recorded by LoggerSpy.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LogEntry is one captured log call.
type LogEntry struct {
	Level string
	Msg   string
	Args  []any
}

// Attr returns the value logged for key and whether it was present.
func (e LogEntry) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}

	return nil, false
}

// LoggerSpy implements producer.Logger and captures every call for inspection in tests.
type LoggerSpy struct {
	mu          sync.Mutex
	entries     []LogEntry
	logToStdout bool
}

// NewLoggerSpy creates a new LoggerSpy.
// Switchable to log to stdout, which can be useful for debugging tests by seeing the actual log output.
func NewLoggerSpy(logToStdout bool) *LoggerSpy {
	return &LoggerSpy{logToStdout: logToStdout}
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.record(LevelDebug, msg, args) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.record(LevelInfo, msg, args) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.record(LevelWarn, msg, args) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.record(LevelError, msg, args) }

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	argsCopy := make([]any, len(args))
	copy(argsCopy, args)
	s.entries = append(s.entries, LogEntry{Level: level, Msg: msg, Args: argsCopy})

	if s.logToStdout {
		fmt.Printf("%s %s %v\n", level, msg, args)
	}
}

// Entries returns a copy of all captured entries.
func (s *LoggerSpy) Entries() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]LogEntry, len(s.entries))
	copy(entries, s.entries)

	return entries
}

// EntriesWithLevel returns the captured entries of one level.
func (s *LoggerSpy) EntriesWithLevel(level string) []LogEntry {
	var matching []LogEntry

	for _, entry := range s.Entries() {
		if entry.Level == level {
			matching = append(matching, entry)
		}
	}

	return matching
}

// EntriesWithPrefix returns the captured entries whose message starts with prefix.
func (s *LoggerSpy) EntriesWithPrefix(prefix string) []LogEntry {
	var matching []LogEntry

	for _, entry := range s.Entries() {
		if strings.HasPrefix(entry.Msg, prefix) {
			matching = append(matching, entry)
		}
	}

	return matching
}

// HasMessage checks if any captured entry has exactly msg.
func (s *LoggerSpy) HasMessage(msg string) bool {
	for _, entry := range s.Entries() {
		if entry.Msg == msg {
			return true
		}
	}

	return false
}

// Reset clears all captured entries.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.entries[:0]
}
