package tui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

type fakeTerminal struct {
	in       io.Reader
	out      bytes.Buffer
	width    int
	height   int
	rawErr   error
	writeErr error
	raw      bool
	restored int
}

func newFakeTerminal(input string) *fakeTerminal {
	return &fakeTerminal{in: strings.NewReader(input), width: 80, height: 24}
}

func (f *fakeTerminal) Read(p []byte) (int, error) {
	return f.in.Read(p)
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.out.Write(p)
}

func (f *fakeTerminal) MakeRaw() (func() error, error) {
	if f.rawErr != nil {
		return nil, f.rawErr
	}
	f.raw = true
	return func() error {
		f.raw = false
		f.restored++
		return nil
	}, nil
}

func (f *fakeTerminal) Size() (int, int, error) {
	return f.width, f.height, nil
}

func TestSelectorRun(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Outcome
	}{
		{"select first", "\r", Outcome{State: Selected, Name: "dev"}},
		{"filter then select", "dro\r", Outcome{State: Selected, Name: "dev-readonly"}},
		{"arrow down", "\x1b[B\x1b[B\r", Outcome{State: Selected, Name: "prod"}},
		{"arrow down then up", "\x1b[B\x1b[B\x1b[A\r", Outcome{State: Selected, Name: "dev-readonly"}},
		{"escape", "\x1b", Outcome{State: Cancelled}},
		{"q", "q", Outcome{State: Cancelled}},
		{"ctrl+c", "\x03", Outcome{State: Cancelled}},
		{"enter ignored on no match", "x\r\x1b", Outcome{State: Cancelled}},
		{"backspace recovers", "x\x7f\r", Outcome{State: Selected, Name: "dev"}},
		{"keys after enter ignored", "\rq", Outcome{State: Selected, Name: "dev"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := newFakeTerminal(tt.input)
			sel := New(term, Options{})

			outcome, err := sel.Run(candidatesOf("dev", "dev-readonly", "prod"))
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if outcome != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, outcome)
			}
			if term.raw || term.restored != 1 {
				t.Errorf("terminal not restored exactly once: raw=%v restored=%d", term.raw, term.restored)
			}
		})
	}
}

func TestSelectorLeavesNoTrace(t *testing.T) {
	term := newFakeTerminal("de\x7f\x1b[B\r")
	sel := New(term, Options{})

	if _, err := sel.Run(candidatesOf("dev", "prod")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	out := term.out.String()
	if !strings.HasSuffix(out, ansi.ShowCursor) {
		t.Error("cursor not shown after session")
	}

	// Everything drawn is erased: the final frame had 4 rows, the
	// terminal content after the last erase is empty.
	last := strings.LastIndex(out, ansi.ShowCursor)
	tail := out[:last]
	idx := strings.LastIndex(tail, "> ")
	if idx < 0 {
		t.Fatal("no frame drawn")
	}
	if got := strings.Count(tail[idx:], ansi.EraseEntireLine); got != 4 {
		t.Errorf("Expected final erase of 4 rows, got %d", got)
	}
}

func TestSelectorRawModeFailure(t *testing.T) {
	term := newFakeTerminal("\r")
	term.rawErr = ErrNotTerminal

	_, err := New(term, Options{}).Run(candidatesOf("dev"))
	if !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("Expected ErrNotTerminal, got %v", err)
	}
	if term.out.Len() != 0 {
		t.Errorf("nothing should be drawn without raw mode, got %q", term.out.String())
	}
}

func TestSelectorRestoresOnReadError(t *testing.T) {
	term := newFakeTerminal("de")

	_, err := New(term, Options{}).Run(candidatesOf("dev"))
	if !errors.Is(err, io.EOF) {
		t.Fatalf("Expected EOF error, got %v", err)
	}
	if term.raw || term.restored != 1 {
		t.Errorf("terminal not restored: raw=%v restored=%d", term.raw, term.restored)
	}
	if !strings.HasSuffix(term.out.String(), ansi.ShowCursor) {
		t.Error("cursor not shown after read error")
	}
}

func TestSelectorRestoresOnWriteError(t *testing.T) {
	term := newFakeTerminal("\r")
	term.writeErr = errors.New("broken pipe")

	_, err := New(term, Options{}).Run(candidatesOf("dev"))
	if err == nil {
		t.Fatal("Expected an error")
	}
	if term.raw || term.restored != 1 {
		t.Errorf("terminal not restored: raw=%v restored=%d", term.raw, term.restored)
	}
}

func TestSelectorSingleUse(t *testing.T) {
	term := newFakeTerminal("\r")
	sel := New(term, Options{})

	if _, err := sel.Run(candidatesOf("dev")); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := sel.Run(candidatesOf("dev")); !errors.Is(err, ErrSessionFinished) {
		t.Errorf("Expected ErrSessionFinished, got %v", err)
	}
}

func TestSelectorEmptyCandidates(t *testing.T) {
	term := newFakeTerminal("\r\x1b[B\x1b")

	outcome, err := New(term, Options{}).Run(nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.State != Cancelled {
		t.Errorf("Expected cancelled, got %+v", outcome)
	}
	if !strings.Contains(ansi.Strip(term.out.String()), "(no matches)") {
		t.Error("Expected the empty list to be drawn")
	}
}

func TestSelectorOptions(t *testing.T) {
	term := newFakeTerminal("\x1b[B\x1b[B\x1b[B\r")
	term.height = 4

	sel := New(term, Options{Prompt: "Profile:", PageSize: 3})
	outcome, err := sel.Run(candidatesOf("a", "b", "c", "d", "e"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if outcome.Name != "d" {
		t.Errorf("Expected d, got %q", outcome.Name)
	}

	out := ansi.Strip(term.out.String())
	if !strings.Contains(out, "Profile:") {
		t.Error("custom prompt not drawn")
	}
	if strings.Contains(out, DefaultPrompt) {
		t.Error("default prompt drawn despite override")
	}
}
