package uci

import (
	"bytes"
	"strings"
	"testing"
)

func TestHandshake(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("uci\nquit\n"), &out)
	p.Run()

	got := out.String()
	if !strings.Contains(got, "id name") {
		t.Errorf("response missing id name: %q", got)
	}
	if !strings.Contains(got, "uciok") {
		t.Errorf("response missing uciok: %q", got)
	}
	if !strings.Contains(got, "option name Hash") {
		t.Errorf("response missing Hash option: %q", got)
	}
}

func TestIsReady(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("isready\nquit\n"), &out)
	p.Run()

	if got := strings.TrimSpace(out.String()); got != "readyok" {
		t.Errorf("isready = %q, want readyok", got)
	}
}

func TestPositionMoves(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("position startpos moves e2e4 e7e5\nquit\n"), &out)
	p.Run()

	if p.board.SideToMove() != 0 {
		t.Errorf("side to move after two plies = %v, want White", p.board.SideToMove())
	}
}

func TestPositionIllegalMove(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("position startpos moves e2e5\nquit\n"), &out)
	p.Run()

	if !strings.Contains(out.String(), "illegal move") {
		t.Errorf("expected illegal move diagnostic, got %q", out.String())
	}
}

func TestSetOptionHash(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("setoption name Hash value 128\nquit\n"), &out)
	p.Run()

	opt, _ := p.options.get("Hash")
	if opt.current != "128" {
		t.Errorf("Hash option = %q, want 128", opt.current)
	}
}

func TestGoDepthReturnsBestMove(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("position startpos\ngo depth 2\nquit\n"), &out)
	p.Run()

	if !strings.Contains(out.String(), "bestmove") {
		t.Errorf("expected a bestmove line, got %q", out.String())
	}
}

func TestSetOptionContempt(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("setoption name Contempt value 30\nquit\n"), &out)
	p.Run()

	if p.engine.Contempt != 30 {
		t.Errorf("engine.Contempt = %d, want 30", p.engine.Contempt)
	}
}

func TestParseSetOptionMultiWordName(t *testing.T) {
	name, value, ok := parseSetOption(strings.Fields("name Clear Hash"))
	if !ok {
		t.Fatal("parseSetOption returned ok=false")
	}
	if name != "Clear Hash" {
		t.Errorf("name = %q, want %q", name, "Clear Hash")
	}
	if value != "" {
		t.Errorf("value = %q, want empty", value)
	}
}

func TestParseSetOptionWithValue(t *testing.T) {
	name, value, ok := parseSetOption(strings.Fields("name Hash value 128"))
	if !ok {
		t.Fatal("parseSetOption returned ok=false")
	}
	if name != "Hash" || value != "128" {
		t.Errorf("got name=%q value=%q", name, value)
	}
}
