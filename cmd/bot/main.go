package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"saverbot.ai/internal/agent"
	"saverbot.ai/internal/persistence/indexdb"
	"saverbot.ai/internal/persistence/journal"
	"saverbot.ai/internal/persistence/snapshot"
	"saverbot.ai/internal/sim"
	"saverbot.ai/internal/transport/ws"
	"saverbot.ai/internal/tuning"
	"saverbot.ai/internal/worldapi"
)

func main() {
	var (
		goal       = flag.Int("goal", 50, "target total saved coins (0 = no goal)")
		seed       = flag.Int64("seed", 1337, "world and agent seed")
		ticks      = flag.Int("ticks", 2000, "max ticks to run")
		tuningPath = flag.String("tuning", "", "tuning yaml (empty = defaults)")
		dataDir    = flag.String("data", "data", "journal/snapshot directory")
		dbPath     = flag.String("db", "", "sqlite index path (empty = <data>/index.db)")
		listen     = flag.String("listen", "", "observer ws address, e.g. :8090 (empty = off)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[bot] ", log.LstdFlags|log.Lmicroseconds)

	tune := tuning.Default()
	if *tuningPath != "" {
		var err error
		tune, err = tuning.Load(*tuningPath)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	world, err := sim.New(sim.DefaultConfig(*seed))
	if err != nil {
		logger.Fatalf("sim: %v", err)
	}

	runID := uuid.NewString()
	logger.Printf("run %s goal=%d seed=%d", runID, *goal, *seed)

	jw, err := journal.NewWriter(*dataDir, runID)
	if err != nil {
		logger.Fatalf("journal: %v", err)
	}
	defer jw.Close()

	if *dbPath == "" {
		*dbPath = filepath.Join(*dataDir, "index.db")
	}
	idx, err := indexdb.Open(*dbPath)
	if err != nil {
		logger.Fatalf("indexdb: %v", err)
	}
	defer idx.Close()
	idx.RecordRun(runID, *goal, *seed)

	sinks := []worldapi.EventSink{jw.Sink(), indexSink(idx, runID)}
	if *listen != "" {
		feed := ws.NewServer(logger)
		defer feed.Close()
		http.HandleFunc("/v1/feed", feed.Handler())
		go func() {
			logger.Printf("observer feed on %s", *listen)
			if err := http.ListenAndServe(*listen, nil); err != nil {
				logger.Printf("feed server: %v", err)
			}
		}()
		sinks = append(sinks, feed.Sink())
	}

	ctrl, err := agent.New(agent.Config{
		Goal:   *goal,
		Tuning: tune,
		Seed:   *seed,
		World:  world,
		Sink:   worldapi.MultiSink(sinks...),
		Log:    logger,
	})
	if err != nil {
		logger.Fatalf("agent: %v", err)
	}

	tick := uint64(0)
	for i := 0; i < *ticks; i++ {
		tick++
		ctrl.Tick()
		world.Recharge()
		if ctrl.State() == agent.Enjoying {
			logger.Printf("goal reached after %d ticks, saved=%d", tick, ctrl.Saved())
			break
		}
	}
	logger.Printf("done: state=%s saved=%d seen=%d", ctrl.State(), ctrl.Saved(), ctrl.Memory().SeenCount())

	if err := writeSnapshot(*dataDir, runID, tick, *goal, *seed, ctrl); err != nil {
		logger.Printf("snapshot: %v", err)
	}
	idx.Flush()
}

// indexSink routes tick and deposit events into the sqlite index.
func indexSink(idx *indexdb.SQLiteIndex, runID string) worldapi.EventSink {
	return worldapi.SinkFunc(func(ev worldapi.Event) {
		t, _ := ev["t"].(uint64)
		switch ev["type"] {
		case worldapi.EventTick:
			idx.WriteTick(indexdb.TickRow{
				RunID:  runID,
				Tick:   t,
				State:  str(ev["state"]),
				Saved:  num(ev["saved"]),
				Energy: num(ev["energy"]),
				Seen:   num(ev["seen"]),
			})
		case worldapi.EventDeposit:
			idx.WriteDeposit(indexdb.DepositRow{
				RunID:    runID,
				Tick:     t,
				Row:      num(ev["row"]),
				Col:      num(ev["col"]),
				Accepted: num(ev["accepted"]),
			})
		}
	})
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) int {
	n, _ := v.(int)
	return n
}

func writeSnapshot(dataDir, runID string, tick uint64, goal int, seed int64, ctrl *agent.Controller) error {
	snap := snapshot.RunV1{
		Header: snapshot.Header{Version: 1, RunID: runID, Tick: tick},
		Goal:   goal,
		Seed:   seed,
		Saved:  ctrl.Saved(),
		State:  ctrl.State().String(),
	}
	for _, r := range ctrl.Memory().Landmarks() {
		snap.Landmarks = append(snap.Landmarks, snapshot.LandmarkV1{
			Row:       r.Pos.Row,
			Col:       r.Pos.Col,
			Status:    r.Status.String(),
			Deposited: r.Deposited,
		})
	}
	for _, t := range ctrl.Memory().Seen() {
		snap.Seen = append(snap.Seen, snapshot.SeenV1{
			Row:     t.Pos.Row,
			Col:     t.Pos.Col,
			Content: t.Content.String(),
		})
	}
	path := filepath.Join(dataDir, "run_"+runID+".snap.zst")
	return snapshot.Write(path, snap)
}
