package journal

import (
	"path/filepath"
	"testing"

	"saverbot.ai/internal/worldapi"
)

func TestJournal_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	jw, err := NewWriter(dir, "testrun")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}

	events := []worldapi.Event{
		{"t": 1, "type": worldapi.EventTick, "state": "COIN_COLLECTING", "saved": 0},
		{"t": 2, "type": worldapi.EventDeposit, "row": 4, "col": 7, "accepted": 12},
		{"t": 3, "type": worldapi.EventTick, "state": "SAVING", "saved": 12},
	}
	for _, ev := range events {
		if err := jw.Write(ev); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := jw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := Read(filepath.Join(dir, "run_testrun.jsonl.zst"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("events: got %d want %d", len(got), len(events))
	}
	if got[1]["type"] != worldapi.EventDeposit {
		t.Fatalf("order lost: got %v", got[1]["type"])
	}
	// JSON numbers come back as float64.
	if acc, _ := got[1]["accepted"].(float64); int(acc) != 12 {
		t.Fatalf("accepted: got %v want 12", got[1]["accepted"])
	}
}

func TestJournal_WriteAfterCloseFails(t *testing.T) {
	jw, err := NewWriter(t.TempDir(), "r")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := jw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := jw.Write(worldapi.Event{"t": 1}); err == nil {
		t.Fatalf("write after close succeeded")
	}
	// Sink swallows the error so a late event cannot fail a tick.
	jw.Sink().Emit(worldapi.Event{"t": 2})
}

func TestJournal_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	jw, err := NewWriter(dir, "dup")
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	defer jw.Close()
	if _, err := NewWriter(dir, "dup"); err == nil {
		t.Fatalf("second writer overwrote an existing run journal")
	}
}
