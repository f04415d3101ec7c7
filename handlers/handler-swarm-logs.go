package handlers

import (
	"fmt"
	"os"
	"sync"
)

// -----------------------------
// Durable Readings Log
// -----------------------------

// ReadingsLog appends one line per accepted report to a text file and
// empties it on reset. Writes are best effort: the receive loop logs a
// failure and keeps going, it never blocks on storage.
type ReadingsLog struct {
	mu   sync.Mutex
	path string
}

func NewReadingsLog(path string) *ReadingsLog {
	return &ReadingsLog{path: path}
}

// Append records one accepted report.
func (l *ReadingsLog) Append(swarmID string, reading int32) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open readings log %s: %w", l.path, err)
	}
	defer file.Close()
	if _, err := fmt.Fprintf(file, "Swarm ID %s: %d\n", swarmID, reading); err != nil {
		return fmt.Errorf("append to readings log %s: %w", l.path, err)
	}
	return nil
}

// Truncate empties the log, creating it if missing.
func (l *ReadingsLog) Truncate() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("truncate readings log %s: %w", l.path, err)
	}
	return file.Close()
}
