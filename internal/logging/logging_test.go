package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	SetTraceEnabled(true)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	Trace("surface.open", map[string]interface{}{"surface": "root"})
	Trace("surface.hidden", nil)

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open trace: %v", err)
	}
	defer f.Close()
	var events []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry struct {
			Event string `json:"event"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("invalid json line %q: %v", scanner.Text(), err)
		}
		events = append(events, entry.Event)
	}
	if strings.Join(events, ",") != "surface.open,surface.hidden" {
		t.Fatalf("unexpected events %v", events)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	SetTraceEnabled(false)
	t.Cleanup(func() { Configure("") })

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, stat err = %v", err)
	}

	Error(errors.New("boom"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "boom") {
		t.Fatalf("expected error in log, got %q", data)
	}
}

func TestConfigureResolvesPath(t *testing.T) {
	t.Cleanup(func() { Configure("") })
	path := filepath.Join(t.TempDir(), "nested", "popup.log")
	Configure(path)
	if got := Path(); got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}
	Configure("  ")
	if got := Path(); got != defaultLogFile {
		t.Fatalf("expected default log file, got %s", got)
	}
}
