package tui

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrSessionFinished = errors.New("selector session already finished")

// Options configure a Selector. Zero values fall back to the defaults.
type Options struct {
	Prompt   string
	PageSize int
	KeyMap   *KeyMap
	Logger   *slog.Logger
}

// Selector runs one interactive selection on a terminal.
type Selector struct {
	term   Terminal
	prompt string
	page   int
	keymap KeyMap
	log    *slog.Logger
	used   bool
}

func New(t Terminal, opts Options) *Selector {
	keymap := DefaultKeyMap()
	if opts.KeyMap != nil {
		keymap = *opts.KeyMap
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Selector{
		term:   t,
		prompt: opts.Prompt,
		page:   opts.PageSize,
		keymap: keymap,
		log:    logger,
	}
}

// Run lets the user pick one of candidates. It returns once the user selects
// or cancels. The terminal mode is restored and the selector erased on every
// return path. A Selector can only be run once.
func (s *Selector) Run(candidates []Candidate) (outcome Outcome, err error) {
	if s.used {
		return Outcome{}, ErrSessionFinished
	}
	s.used = true

	restore, err := s.term.MakeRaw()
	if err != nil {
		return Outcome{}, err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = fmt.Errorf("failed to restore terminal: %w", rerr)
		}
	}()

	session := NewSession(candidates, s.keymap)
	renderer := NewRenderer(s.term, s.prompt, s.page, s.keymap)

	if err := renderer.Begin(); err != nil {
		return Outcome{}, fmt.Errorf("failed to prepare terminal: %w", err)
	}
	defer func() {
		if cerr := renderer.End(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to clear selector: %w", cerr)
		}
	}()

	width, height := s.size()
	if err := renderer.Draw(frameOf(session, width, height)); err != nil {
		return Outcome{}, err
	}
	s.log.Debug("selector started", "candidates", len(candidates), "width", width, "height", height)

	keys := newKeyReader(s.term)
	for session.State() == Running {
		k, err := keys.ReadKey()
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to read input: %w", err)
		}

		changed := session.Handle(k)
		if session.State() != Running {
			break
		}

		// No SIGWINCH handling: the size is re-read after every key.
		w, h := s.size()
		resized := w != width || h != height
		width, height = w, h

		if changed || resized {
			if err := renderer.Draw(frameOf(session, width, height)); err != nil {
				return Outcome{}, err
			}
		}
		s.log.Debug("key", "key", k.String(), "query", session.Query(), "index", session.Index())
	}

	outcome = session.Outcome()
	s.log.Debug("selector finished", "state", outcome.State.String(), "profile", outcome.Name)
	return outcome, nil
}

func (s *Selector) size() (int, int) {
	w, h, err := s.term.Size()
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

func frameOf(s *Session, width, height int) Frame {
	matches := s.Matches()
	items := make([]string, len(matches))
	for i, c := range matches {
		items[i] = c.Display
	}
	return Frame{
		Query:    s.Query(),
		Items:    items,
		Selected: s.Index(),
		Total:    s.Total(),
		Width:    width,
		Height:   height,
	}
}
