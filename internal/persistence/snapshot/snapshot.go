// Package snapshot saves and restores a run: the agent's spatial memory,
// deposit ledger and counters, as a zstd-compressed gob with a JSON header
// line for cheap inspection.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Tick    uint64 `json:"tick"`
}

type RunV1 struct {
	Header Header `json:"header"`

	Goal  int    `json:"goal,omitempty"`
	Seed  int64  `json:"seed"`
	Saved int    `json:"saved"`
	State string `json:"state"`

	Landmarks []LandmarkV1 `json:"landmarks"`
	Seen      []SeenV1     `json:"seen"`
}

type LandmarkV1 struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Status    string `json:"status"`
	Deposited int    `json:"deposited"`
}

type SeenV1 struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Content string `json:"content"`
}

func Write(path string, snap RunV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func Read(path string) (RunV1, error) {
	var snap RunV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	// Skip the header line; the gob payload carries it too.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
