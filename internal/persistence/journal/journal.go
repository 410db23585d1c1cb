// Package journal persists the agent's per-tick event stream as
// zstd-compressed JSON lines, one file per run.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"saverbot.ai/internal/worldapi"
)

type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewWriter creates <baseDir>/run_<runID>.jsonl.zst and returns a writer
// appending one JSON event per line.
func NewWriter(baseDir, runID string) (*Writer, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(baseDir, fmt.Sprintf("run_%s.jsonl.zst", runID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Writer{
		f:   f,
		enc: enc,
		w:   bufio.NewWriterSize(enc, 64<<10),
	}, nil
}

func (jw *Writer) Write(ev worldapi.Event) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	if jw.f == nil {
		return errors.New("journal: closed")
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := jw.w.Write(b); err != nil {
		return err
	}
	return jw.w.WriteByte('\n')
}

// Sink adapts the writer to the controller's event sink; write errors are
// swallowed because observability must never fail a tick.
func (jw *Writer) Sink() worldapi.EventSink {
	return worldapi.SinkFunc(func(ev worldapi.Event) {
		_ = jw.Write(ev)
	})
}

func (jw *Writer) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	if jw.f == nil {
		return nil
	}
	var first error
	if err := jw.w.Flush(); err != nil {
		first = err
	}
	if err := jw.enc.Close(); err != nil && first == nil {
		first = err
	}
	if err := jw.f.Close(); err != nil && first == nil {
		first = err
	}
	jw.f = nil
	return first
}

// Read decodes every event from one journal file in write order.
func Read(path string) ([]worldapi.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []worldapi.Event
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64<<10), 4<<20)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var ev worldapi.Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return out, fmt.Errorf("journal line %d: %w", len(out)+1, err)
		}
		out = append(out, ev)
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return out, err
	}
	return out, nil
}
