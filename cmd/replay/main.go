package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"saverbot.ai/internal/persistence/journal"
	"saverbot.ai/internal/persistence/snapshot"
	"saverbot.ai/internal/worldapi"
)

func main() {
	var (
		journalPath = flag.String("journal", "", "path to run_*.jsonl.zst")
		snapPath    = flag.String("snapshot", "", "path to run_*.snap.zst (optional)")
	)
	flag.Parse()

	if *journalPath == "" && *snapPath == "" {
		fmt.Fprintln(os.Stderr, "missing -journal or -snapshot")
		os.Exit(2)
	}

	if *snapPath != "" {
		snap, err := snapshot.Read(*snapPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read snapshot:", err)
			os.Exit(1)
		}
		fmt.Printf("snapshot v%d run=%s tick=%d goal=%d seed=%d saved=%d state=%s landmarks=%d seen=%d\n",
			snap.Header.Version, snap.Header.RunID, snap.Header.Tick, snap.Goal, snap.Seed,
			snap.Saved, snap.State, len(snap.Landmarks), len(snap.Seen))
		for _, l := range snap.Landmarks {
			fmt.Printf("  bank (%d,%d) %s deposited=%d\n", l.Row, l.Col, l.Status, l.Deposited)
		}
	}

	if *journalPath == "" {
		return
	}

	events, err := journal.Read(*journalPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read journal:", err)
		os.Exit(1)
	}

	var (
		ticks      int
		finalState string
		finalSaved float64
		byType     = map[string]int{}
		deposits   = map[[2]int]float64{}
	)
	for _, ev := range events {
		t, _ := ev["type"].(string)
		byType[t]++
		switch t {
		case worldapi.EventTick:
			ticks++
			finalState, _ = ev["state"].(string)
			finalSaved, _ = ev["saved"].(float64)
		case worldapi.EventDeposit:
			r, _ := ev["row"].(float64)
			c, _ := ev["col"].(float64)
			accepted, _ := ev["accepted"].(float64)
			deposits[[2]int{int(r), int(c)}] += accepted
		}
	}

	fmt.Printf("journal: %d events over %d ticks, final state=%s saved=%d\n",
		len(events), ticks, finalState, int(finalSaved))

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-12s %d\n", t, byType[t])
	}
	for pos, sum := range deposits {
		fmt.Printf("  deposited %d at (%d,%d)\n", int(sum), pos[0], pos[1])
	}
}
