package tui

import (
	"awsps/internal/fuzzy"

	"github.com/charmbracelet/bubbles/key"
)

// State is the lifecycle state of a selector session.
type State int

const (
	Running State = iota
	Selected
	Cancelled
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Selected:
		return "selected"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Candidate is one selectable entry. Name is returned on selection, Display
// is what gets drawn and Key is what the query is matched against.
type Candidate struct {
	Name    string
	Display string
	Key     string
}

// NewCandidate builds a candidate matched on its name.
func NewCandidate(name, display string) Candidate {
	if display == "" {
		display = name
	}
	return Candidate{Name: name, Display: display, Key: name}
}

// Outcome is the result of a finished session. Name is set only when State is
// Selected.
type Outcome struct {
	State State
	Name  string
}

// Session holds the query, the ranked matches and the highlighted index. It
// is driven one key at a time and never touches the terminal.
type Session struct {
	candidates []Candidate
	keys       []string
	keymap     KeyMap

	query  []rune
	ranked []fuzzy.Match
	index  int

	state  State
	choice string
}

// NewSession starts a session over candidates with an empty query.
func NewSession(candidates []Candidate, keymap KeyMap) *Session {
	keys := make([]string, len(candidates))
	for i, c := range candidates {
		keys[i] = c.Key
	}

	s := &Session{
		candidates: candidates,
		keys:       keys,
		keymap:     keymap,
	}
	s.rerank()
	return s
}

// Handle applies one key and reports whether the view needs a redraw. Keys
// received after the session finished are ignored.
func (s *Session) Handle(k Key) bool {
	if s.state != Running {
		return false
	}

	switch {
	case key.Matches(k, s.keymap.Cancel):
		s.state = Cancelled
		return true

	case key.Matches(k, s.keymap.Select):
		if len(s.ranked) == 0 {
			return false
		}
		s.choice = s.candidates[s.ranked[s.index].Index].Name
		s.state = Selected
		return true

	case key.Matches(k, s.keymap.Up):
		if s.index > 0 {
			s.index--
		}
		return len(s.ranked) > 0

	case key.Matches(k, s.keymap.Down):
		if s.index < len(s.ranked)-1 {
			s.index++
		}
		return len(s.ranked) > 0

	case key.Matches(k, s.keymap.Delete):
		if len(s.query) == 0 {
			return false
		}
		s.query = s.query[:len(s.query)-1]
		s.rerank()
		return true

	case k.Type == KeyRune:
		s.query = append(s.query, k.Rune)
		s.rerank()
		return true
	}

	return false
}

func (s *Session) rerank() {
	s.ranked = fuzzy.Rank(s.keys, string(s.query))
	s.index = 0
}

// Query returns the current filter text.
func (s *Session) Query() string {
	return string(s.query)
}

// Index returns the highlighted position in the ranked list, or -1 when
// nothing matches.
func (s *Session) Index() int {
	if len(s.ranked) == 0 {
		return -1
	}
	return s.index
}

// Matches returns the ranked candidates for the current query.
func (s *Session) Matches() []Candidate {
	out := make([]Candidate, len(s.ranked))
	for i, m := range s.ranked {
		out[i] = s.candidates[m.Index]
	}
	return out
}

// Total returns the number of candidates the session was started with.
func (s *Session) Total() int {
	return len(s.candidates)
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Outcome() Outcome {
	return Outcome{State: s.state, Name: s.choice}
}
