package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesBothFiles(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("debug line")
	logger.Error("error line")
	_ = logger.Sync()

	debugData, err := os.ReadFile(filepath.Join(dir, DebugFileName))
	if err != nil {
		t.Fatalf("read debug.log: %v", err)
	}
	if !strings.Contains(string(debugData), "debug line") {
		t.Errorf("debug.log missing debug entry: %q", debugData)
	}
	if !strings.Contains(string(debugData), "error line") {
		t.Errorf("debug.log should also receive error entries: %q", debugData)
	}

	errorData, err := os.ReadFile(filepath.Join(dir, ErrorFileName))
	if err != nil {
		t.Fatalf("read error.log: %v", err)
	}
	if strings.Contains(string(errorData), "debug line") {
		t.Errorf("error.log must not receive debug entries: %q", errorData)
	}
	if !strings.Contains(string(errorData), "error line") {
		t.Errorf("error.log missing error entry: %q", errorData)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	if _, err := os.Stat(filepath.Join(dir, DebugFileName)); err != nil {
		t.Errorf("expected %s to exist: %v", DebugFileName, err)
	}
}
