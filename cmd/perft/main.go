// Command perft cross-checks the move generator's node counts against
// known perft figures, adapted from the teacher's cmd/perft.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"chess-engine/internal/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	crosscheck := flag.Bool("crosscheck", false, "Also run perft through the upstream GooseEngineMG generator and compare")
	crosscheckDragon := flag.Bool("crosscheck-dragon", false, "Also run perft through dylhunn/dragontoothmg and compare")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *crosscheck || *crosscheckDragon {
		match := true
		if *crosscheck {
			ours, theirs, err := board.CrossCheckPerft(*fen, *depth)
			if err != nil {
				fmt.Fprintf(os.Stderr, "crosscheck error: %v\n", err)
				os.Exit(2)
			}
			fmt.Printf("ours=%d goosemg=%d match=%v\n", ours, theirs, ours == theirs)
			match = match && ours == theirs
		}
		if *crosscheckDragon {
			ours, theirs, err := board.CrossCheckDragontoothPerft(*fen, *depth)
			if err != nil {
				fmt.Fprintf(os.Stderr, "crosscheck-dragon error: %v\n", err)
				os.Exit(2)
			}
			fmt.Printf("ours=%d dragontoothmg=%d match=%v\n", ours, theirs, ours == theirs)
			match = match && ours == theirs
		}
		if !match {
			os.Exit(1)
		}
		return
	}

	b := board.NewBoard()
	if err := b.SetFEN(*fen); err != nil {
		fmt.Fprintf(os.Stderr, "SetFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		runDivide(b, *depth)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += b.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}

func runDivide(b *board.Board, depth int) {
	moves := b.GenerateMoves(board.GenAllLegal, make([]board.Move, 0, 64))
	type kv struct {
		move  board.Move
		nodes uint64
	}
	arr := make([]kv, 0, len(moves))
	var total uint64
	for _, m := range moves {
		b.Play(m)
		n := b.Perft(depth - 1)
		b.Undo()
		arr = append(arr, kv{m, n})
		total += n
	}
	sort.Slice(arr, func(i, j int) bool { return arr[i].move.String() < arr[j].move.String() })
	for _, x := range arr {
		fmt.Printf("%s: %d\n", x.move.String(), x.nodes)
	}
	fmt.Printf("Total: %d\n", total)
}
