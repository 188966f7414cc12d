// Package uci implements the engine's UCI-shaped protocol loop: uci,
// isready, ucinewgame, setoption, position, go, stop, quit. Grounded on
// the teacher's uci.go scanner/switch shape, restructured around this
// repo's own setoption surface (Hash, Clear Hash, Contempt) instead of the
// teacher's dozens of eval-tuning spins.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chess-engine/internal/board"
	"chess-engine/internal/search"
)

// ErrIllegalMove is returned when a "position ... moves ..." record names
// a move that isn't legal in the position reached so far.
var ErrIllegalMove = errors.New("uci: illegal move")

const engineName = "chess-engine"
const engineAuthor = "chess-engine contributors"

// Protocol drives one UCI session: a board, a search engine, and the
// options registry the setoption commands mutate.
type Protocol struct {
	in  *bufio.Scanner
	out io.Writer

	board   *board.Board
	engine  *search.Engine
	options *optionsRegistry
}

// New builds a Protocol reading from in and writing responses to out.
func New(in io.Reader, out io.Writer) *Protocol {
	p := &Protocol{
		in:      bufio.NewScanner(in),
		out:     out,
		board:   board.NewBoard(),
		engine:  search.NewEngine(64),
		options: newOptionsRegistry(),
	}
	p.engine.OnInfo = func(line string) { fmt.Fprintln(p.out, line) }
	return p
}

// Run consumes commands from the input scanner until "quit" or EOF. It
// returns nil on a clean "quit" or a benign EOF, and the scanner's error if
// stdin could not be read.
func (p *Protocol) Run() error {
	for p.in.Scan() {
		line := p.in.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "uci":
			p.handleUCI()
		case "isready":
			fmt.Fprintln(p.out, "readyok")
		case "ucinewgame":
			p.handleNewGame()
		case "setoption":
			p.handleSetOption(fields[1:])
		case "position":
			p.handlePosition(fields[1:])
		case "go":
			p.handleGo(fields[1:])
		case "stop":
			p.engine.Stop()
		case "quit":
			return nil
		default:
			fmt.Fprintln(p.out, "info string unknown command:", line)
		}
	}
	return p.in.Err()
}

func (p *Protocol) handleUCI() {
	fmt.Fprintf(p.out, "id name %s\n", engineName)
	fmt.Fprintf(p.out, "id author %s\n", engineAuthor)
	for _, name := range p.options.names() {
		opt, _ := p.options.get(name)
		fmt.Fprintln(p.out, opt.describe())
	}
	fmt.Fprintln(p.out, "uciok")
}

func (p *Protocol) handleNewGame() {
	p.engine.NewGame()
	p.board = board.NewBoard()
}

func (p *Protocol) handleSetOption(fields []string) {
	name, value, ok := parseSetOption(fields)
	if !ok {
		fmt.Fprintln(p.out, "info string malformed setoption command")
		return
	}
	opt, ok := p.options.get(name)
	if !ok {
		fmt.Fprintln(p.out, "info string unknown option:", name)
		return
	}
	opt.current = value

	switch name {
	case "Hash":
		if mb, err := strconv.Atoi(value); err == nil {
			p.engine.TT.Resize(mb)
		}
	case "Clear Hash":
		p.engine.TT.Clear()
	case "Contempt":
		if c, err := strconv.Atoi(value); err == nil {
			p.engine.Contempt = int32(c)
		}
	}
}

// parseSetOption extracts "name <...> value <...>" from the tokens after
// "setoption", allowing multi-word names like "Clear Hash".
func parseSetOption(fields []string) (name, value string, ok bool) {
	if len(fields) == 0 || fields[0] != "name" {
		return "", "", false
	}
	i := 1
	var nameParts []string
	for i < len(fields) && fields[i] != "value" {
		nameParts = append(nameParts, fields[i])
		i++
	}
	name = strings.Join(nameParts, " ")
	if name == "" {
		return "", "", false
	}
	if i < len(fields) && fields[i] == "value" {
		value = strings.Join(fields[i+1:], " ")
	}
	return name, value, true
}

func (p *Protocol) handlePosition(fields []string) {
	if len(fields) == 0 {
		return
	}
	i := 0
	switch fields[0] {
	case "startpos":
		p.board = board.NewBoard()
		i = 1
	case "fen":
		i = 1
		var fenParts []string
		for i < len(fields) && fields[i] != "moves" {
			fenParts = append(fenParts, fields[i])
			i++
		}
		b := board.NewBoard()
		if err := b.SetFEN(strings.Join(fenParts, " ")); err != nil {
			fmt.Fprintln(p.out, "info string", err)
			return
		}
		p.board = b
	default:
		fmt.Fprintln(p.out, "info string malformed position command")
		return
	}

	if i < len(fields) && fields[i] == "moves" {
		for _, mv := range fields[i+1:] {
			if !p.board.PlayUCI(mv) {
				fmt.Fprintln(p.out, "info string", fmt.Errorf("%w: %s", ErrIllegalMove, mv))
				return
			}
		}
	}
}

func (p *Protocol) handleGo(fields []string) {
	limits := search.Limits{}
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "wtime":
			i++
			limits.WTimeMs = atoiField(fields, i)
		case "btime":
			i++
			limits.BTimeMs = atoiField(fields, i)
		case "winc":
			i++
			limits.WIncMs = atoiField(fields, i)
		case "binc":
			i++
			limits.BIncMs = atoiField(fields, i)
		case "movestogo":
			i++
			limits.MovesToGo = atoiField(fields, i)
		case "depth":
			i++
			limits.Depth = atoiField(fields, i)
		case "nodes":
			i++
			limits.Nodes = uint64(atoiField(fields, i))
		case "movetime":
			i++
			limits.MoveTime = atoiField(fields, i)
		case "infinite":
			limits.Infinite = true
		}
	}

	result := p.engine.Search(p.board, limits)
	fmt.Fprintln(p.out, "bestmove", result.BestMove.String())
}

func atoiField(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	v, _ := strconv.Atoi(fields[i])
	return v
}
