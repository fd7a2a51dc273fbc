package audit

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wsn-lab/uniradio/radio"
)

// Entry is a single logged frame.
type Entry struct {
	Timestamp time.Time `json:"ts"`
	Direction string    `json:"dir"` // "rx" or "tx"
	Size      int       `json:"size"`
	Data      string    `json:"data"` // hex-encoded payload
	RSSI      int       `json:"rssi,omitempty"`
	Outcome   string    `json:"outcome"`
	Error     string    `json:"error,omitempty"`
}

// Logger appends frame entries to a JSONL file.
type Logger struct {
	mu       sync.Mutex
	filePath string
	file     *os.File
}

// NewLogger creates the log directory if needed and opens frames.jsonl for
// append-only writing.
func NewLogger(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	filePath := filepath.Join(logDir, "frames.jsonl")

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame log: %w", err)
	}

	return &Logger{
		filePath: filePath,
		file:     file,
	}, nil
}

// LogRx records a received frame with its signal strength reading.
// An RSSI of zero means the radio does not report one.
func (l *Logger) LogRx(payload []byte, rssi int) {
	l.writeEntry(Entry{
		Timestamp: time.Now().UTC(),
		Direction: "rx",
		Size:      len(payload),
		Data:      hex.EncodeToString(payload),
		RSSI:      rssi,
		Outcome:   "ok",
	})
}

// LogTx records a transmitted frame and the outcome of the send.
func (l *Logger) LogTx(payload []byte, err error) {
	entry := Entry{
		Timestamp: time.Now().UTC(),
		Direction: "tx",
		Size:      len(payload),
		Data:      hex.EncodeToString(payload),
		Outcome:   outcomeFor(err),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	l.writeEntry(entry)
}

// outcomeFor maps send errors to stable outcome codes for offline analysis.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, radio.ErrNoAck):
		return "no-ack"
	case errors.Is(err, radio.ErrBusy):
		return "busy"
	case errors.Is(err, radio.ErrShortWrite):
		return "short-write"
	case errors.Is(err, radio.ErrTimeout):
		return "timeout"
	default:
		return "error"
	}
}

// writeEntry appends one JSON line under the lock. Failures are reported on
// stderr rather than returned: the frame log must never take the radio loop
// down with it.
func (l *Logger) writeEntry(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal frame entry: %v\n", err)
		return
	}

	if _, err := l.file.Write(append(jsonData, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write frame entry: %v\n", err)
		return
	}

	if err := l.file.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sync frame log: %v\n", err)
	}
}

// Close closes the underlying file. Further entries are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Path returns the location of the frame log file.
func (l *Logger) Path() string {
	return l.filePath
}

// Rotate renames the current log with a timestamp suffix and starts a fresh
// file at the original path.
func (l *Logger) Rotate() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Close(); err != nil {
			return fmt.Errorf("failed to close current frame log: %w", err)
		}
	}

	timestamp := time.Now().Format("20060102-150405")
	if err := os.Rename(l.filePath, fmt.Sprintf("%s.%s", l.filePath, timestamp)); err != nil {
		return fmt.Errorf("failed to rename frame log: %w", err)
	}

	file, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open new frame log: %w", err)
	}

	l.file = file
	return nil
}
