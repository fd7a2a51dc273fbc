package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wsn-lab/uniradio/radio"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read frame log: %v", err)
	}

	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return nil
	}

	var entries []Entry
	for i, line := range strings.Split(trimmed, "\n") {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("Failed to unmarshal entry %d: %v", i, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	tempDir := t.TempDir()

	logger, err := NewLogger(tempDir)
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	expectedPath := filepath.Join(tempDir, "frames.jsonl")
	if logger.Path() != expectedPath {
		t.Errorf("Path() = %s, want %s", logger.Path(), expectedPath)
	}

	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Error("Frame log file was not created")
	}
}

func TestNewLoggerCreatesDirectory(t *testing.T) {
	logDir := filepath.Join(t.TempDir(), "nested", "audit")

	logger, err := NewLogger(logDir)
	if err != nil {
		t.Fatalf("NewLogger() failed on a missing directory: %v", err)
	}
	defer func() { _ = logger.Close() }()

	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("Log directory was not created: %v", err)
	}
}

func TestLogRx(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.LogRx([]byte("t=21.5"), -71)

	entries := readEntries(t, logger.Path())
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.Direction != "rx" {
		t.Errorf("Direction = %q, want rx", e.Direction)
	}
	if e.Size != 6 {
		t.Errorf("Size = %d, want 6", e.Size)
	}
	if e.Data != "743d32312e35" {
		t.Errorf("Data = %q, want hex of \"t=21.5\"", e.Data)
	}
	if e.RSSI != -71 {
		t.Errorf("RSSI = %d, want -71", e.RSSI)
	}
	if e.Outcome != "ok" {
		t.Errorf("Outcome = %q, want ok", e.Outcome)
	}
	if e.Timestamp.IsZero() {
		t.Error("Timestamp was not set")
	}
}

func TestLogTxOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome string
	}{
		{"success", nil, "ok"},
		{"no ack", fmt.Errorf("nrf24: %w", radio.ErrNoAck), "no-ack"},
		{"busy", fmt.Errorf("lora: start frame (tx active): %w", radio.ErrBusy), "busy"},
		{"short write", fmt.Errorf("xbee: wrote 3 of 8 bytes: %w", radio.ErrShortWrite), "short-write"},
		{"timeout", radio.ErrTimeout, "timeout"},
		{"other", fmt.Errorf("port closed"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(t.TempDir())
			if err != nil {
				t.Fatalf("NewLogger() failed: %v", err)
			}
			defer func() { _ = logger.Close() }()

			logger.LogTx([]byte{0x01, 0x02}, tt.err)

			entries := readEntries(t, logger.Path())
			if len(entries) != 1 {
				t.Fatalf("Expected 1 entry, got %d", len(entries))
			}
			if entries[0].Direction != "tx" {
				t.Errorf("Direction = %q, want tx", entries[0].Direction)
			}
			if entries[0].Outcome != tt.outcome {
				t.Errorf("Outcome = %q, want %q", entries[0].Outcome, tt.outcome)
			}
			if tt.err != nil && entries[0].Error == "" {
				t.Error("Error detail was not recorded")
			}
			if tt.err == nil && entries[0].Error != "" {
				t.Errorf("Error = %q, want empty on success", entries[0].Error)
			}
		})
	}
}

func TestEntriesAppendInOrder(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.LogRx([]byte("a"), -60)
	logger.LogTx([]byte("b"), nil)
	logger.LogRx([]byte("c"), -62)

	entries := readEntries(t, logger.Path())
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	wantDirs := []string{"rx", "tx", "rx"}
	wantData := []string{"61", "62", "63"}
	for i := range entries {
		if entries[i].Direction != wantDirs[i] {
			t.Errorf("Entry %d: Direction = %q, want %q", i, entries[i].Direction, wantDirs[i])
		}
		if entries[i].Data != wantData[i] {
			t.Errorf("Entry %d: Data = %q, want %q", i, entries[i].Data, wantData[i])
		}
	}
}

func TestClose(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() on already closed logger failed: %v", err)
	}

	// Entries after Close are dropped, not crashed on.
	logger.LogRx([]byte("late"), 0)

	entries := readEntries(t, logger.Path())
	if len(entries) != 0 {
		t.Errorf("Expected no entries after Close, got %d", len(entries))
	}
}

func TestRotate(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	logger.LogRx([]byte("before"), -60)

	if err := logger.Rotate(); err != nil {
		t.Fatalf("Rotate() failed: %v", err)
	}

	logger.LogRx([]byte("after"), -61)

	if _, err := os.Stat(logger.Path()); os.IsNotExist(err) {
		t.Error("New frame log was not created after rotation")
	}

	rotated, err := filepath.Glob(logger.Path() + ".*")
	if err != nil {
		t.Fatalf("Failed to glob rotated files: %v", err)
	}
	if len(rotated) != 1 {
		t.Fatalf("Expected 1 rotated file, found %d", len(rotated))
	}

	entries := readEntries(t, logger.Path())
	if len(entries) != 1 || entries[0].Data != hexOf("after") {
		t.Errorf("New log should hold only the post-rotation entry, got %+v", entries)
	}
}

func hexOf(s string) string {
	return fmt.Sprintf("%x", s)
}

func TestConcurrentLogging(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	defer func() { _ = logger.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.LogRx([]byte{byte(i)}, -60)
		}(i)
	}
	wg.Wait()

	entries := readEntries(t, logger.Path())
	if len(entries) != 10 {
		t.Fatalf("Expected 10 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Direction != "rx" || e.Size != 1 {
			t.Errorf("Entry %d malformed: %+v", i, e)
		}
	}
}
