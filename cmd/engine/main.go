// Command engine runs the UCI protocol loop over stdin/stdout, or a
// reproducible node-count self-test when invoked with -bench.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"chess-engine/internal/board"
	"chess-engine/internal/log"
	"chess-engine/internal/search"
	"chess-engine/internal/uci"
)

func main() {
	hash := flag.Int("hash", 64, "transposition table size in megabytes")
	logfile := flag.String("logfile", "", "write diagnostics to this file (default: no logging)")
	bench := flag.Bool("bench", false, "run a fixed-depth node-count self-test and exit")
	depth := flag.Int("depth", 13, "search depth used by -bench")
	flag.Parse()

	if err := log.SetOutput(*logfile); err != nil {
		fmt.Fprintln(os.Stderr, "engine: could not open logfile:", err)
		os.Exit(1)
	}

	if *bench {
		runBench(*hash, *depth)
		return
	}

	if err := uci.New(os.Stdin, os.Stdout).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "engine: stdin read error:", err)
		os.Exit(1)
	}
}

// benchFENs is a small fixed set of positions exercising opening, tactical
// and endgame evaluation/search paths, adapted from the teacher's
// cmd/benchrun sweep (initial position, Kiwipete, a rook endgame and the
// position after 1.e4).
var benchFENs = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
}

func runBench(hashMB, depth int) {
	var totalNodes uint64
	start := time.Now()

	for _, fen := range benchFENs {
		b := board.NewBoard()
		if err := b.SetFEN(fen); err != nil {
			fmt.Fprintln(os.Stderr, "engine: bench FEN rejected:", err)
			os.Exit(1)
		}
		eng := search.NewEngine(hashMB)
		res := eng.Search(b, search.Limits{Depth: depth})
		totalNodes += res.Nodes
	}

	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()
	fmt.Printf("%d nodes %s %.0f nps\n", totalNodes, elapsed, nps)
}
