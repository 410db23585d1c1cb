// Package indexdb keeps a queryable sqlite index of runs: one row per run,
// per-tick stats and the per-bank deposit ledger. Writes go through a
// single writer goroutine so the simulation loop never blocks on disk.
package indexdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqRun reqKind = iota + 1
	reqTick
	reqDeposit
	reqSync
)

type req struct {
	kind reqKind

	run     RunRow
	tick    TickRow
	deposit DepositRow
	done    chan struct{}
}

type RunRow struct {
	RunID     string
	Goal      int
	Seed      int64
	StartedAt string
}

type TickRow struct {
	RunID  string
	Tick   uint64
	State  string
	Saved  int
	Energy int
	Seen   int
}

type DepositRow struct {
	RunID    string
	Tick     uint64
	Row      int
	Col      int
	Accepted int
}

func Open(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 16384),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			goal INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			state TEXT NOT NULL,
			saved INTEGER NOT NULL,
			energy INTEGER NOT NULL,
			seen INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);`,
		`CREATE TABLE IF NOT EXISTS deposits (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			PRIMARY KEY (run_id, tick)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_bank ON deposits(run_id, row, col);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordRun registers a run before its first tick.
func (s *SQLiteIndex) RecordRun(runID string, goal int, seed int64) {
	if s == nil || s.closed.Load() {
		return
	}
	r := RunRow{
		RunID:     runID,
		Goal:      goal,
		Seed:      seed,
		StartedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case s.ch <- req{kind: reqRun, run: r}:
	default:
	}
}

// WriteTick enqueues one tick row. Rows are dropped when the indexer falls
// behind; the journal remains the source of truth.
func (s *SQLiteIndex) WriteTick(row TickRow) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- req{kind: reqTick, tick: row}:
	default:
	}
}

// WriteDeposit enqueues one accepted-deposit row.
func (s *SQLiteIndex) WriteDeposit(row DepositRow) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- req{kind: reqDeposit, deposit: row}:
	default:
	}
}

func (s *SQLiteIndex) loop() {
	for r := range s.ch {
		switch r.kind {
		case reqRun:
			_, _ = s.db.Exec(
				`INSERT OR REPLACE INTO runs(run_id, goal, seed, started_at) VALUES(?,?,?,?)`,
				r.run.RunID, r.run.Goal, r.run.Seed, r.run.StartedAt,
			)
		case reqTick:
			_, _ = s.db.Exec(
				`INSERT OR REPLACE INTO ticks(run_id, tick, state, saved, energy, seen) VALUES(?,?,?,?,?,?)`,
				r.tick.RunID, r.tick.Tick, r.tick.State, r.tick.Saved, r.tick.Energy, r.tick.Seen,
			)
		case reqDeposit:
			_, _ = s.db.Exec(
				`INSERT OR REPLACE INTO deposits(run_id, tick, row, col, accepted) VALUES(?,?,?,?,?)`,
				r.deposit.RunID, r.deposit.Tick, r.deposit.Row, r.deposit.Col, r.deposit.Accepted,
			)
		case reqSync:
			close(r.done)
		}
	}
}

// LedgerTotal sums accepted deposits for a run across all banks.
func (s *SQLiteIndex) LedgerTotal(runID string) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`SELECT SUM(accepted) FROM deposits WHERE run_id = ?`, runID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}

// BankTotals returns the per-bank cumulative deposit for a run.
func (s *SQLiteIndex) BankTotals(runID string) (map[[2]int]int, error) {
	rows, err := s.db.Query(
		`SELECT row, col, SUM(accepted) FROM deposits WHERE run_id = ? GROUP BY row, col`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[[2]int]int{}
	for rows.Next() {
		var r, c, sum int
		if err := rows.Scan(&r, &c, &sum); err != nil {
			return nil, err
		}
		out[[2]int{r, c}] = sum
	}
	return out, rows.Err()
}

// Flush blocks until every row enqueued before the call has been applied.
func (s *SQLiteIndex) Flush() {
	if s == nil || s.closed.Load() {
		return
	}
	done := make(chan struct{})
	s.ch <- req{kind: reqSync, done: done}
	<-done
}
