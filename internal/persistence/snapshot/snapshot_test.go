package snapshot

import (
	"path/filepath"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.snap.zst")
	want := RunV1{
		Header: Header{Version: 1, RunID: "r1", Tick: 420},
		Goal:   50,
		Seed:   1337,
		Saved:  37,
		State:  "SAVING",
		Landmarks: []LandmarkV1{
			{Row: 4, Col: 7, Status: "FREE", Deposited: 25},
			{Row: 9, Col: 2, Status: "FILLED", Deposited: 12},
		},
		Seen: []SeenV1{
			{Row: 0, Col: 0, Content: "NONE"},
			{Row: 4, Col: 7, Content: "BANK"},
		},
	}

	if err := Write(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got.Header != want.Header {
		t.Fatalf("header: got %+v want %+v", got.Header, want.Header)
	}
	if got.Saved != want.Saved || got.State != want.State || got.Goal != want.Goal {
		t.Fatalf("run fields: got %+v", got)
	}
	if len(got.Landmarks) != 2 || got.Landmarks[1].Status != "FILLED" {
		t.Fatalf("landmarks: got %+v", got.Landmarks)
	}
	if len(got.Seen) != 2 || got.Seen[1].Content != "BANK" {
		t.Fatalf("seen: got %+v", got.Seen)
	}
}

func TestSnapshot_ReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.snap.zst")); err == nil {
		t.Fatalf("missing file read succeeded")
	}
}
