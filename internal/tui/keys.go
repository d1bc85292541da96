package tui

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

// KeyType identifies a decoded key event.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyEscape
	KeyCtrlC
	KeyCtrlN
	KeyCtrlP
	KeyUnknown
)

// Key is a single key event read from a raw-mode terminal.
type Key struct {
	Type KeyType
	Rune rune
}

// String returns the name used by key bindings, e.g. "up", "enter" or "q".
func (k Key) String() string {
	switch k.Type {
	case KeyRune:
		return string(k.Rune)
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEscape:
		return "esc"
	case KeyCtrlC:
		return "ctrl+c"
	case KeyCtrlN:
		return "ctrl+n"
	case KeyCtrlP:
		return "ctrl+p"
	default:
		return "unknown"
	}
}

// KeyMap holds the selector key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
	Delete key.Binding
}

// DefaultKeyMap returns the bindings used by the profile selector.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc/q", "cancel"),
		),
		Delete: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Delete}}
}

// DecodeKeys splits the bytes of one terminal read into key events.
func DecodeKeys(b []byte) []Key {
	var keys []Key
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == 0x1b:
			k, n := decodeEscape(b[i:])
			keys = append(keys, k)
			i += n
			continue
		case c == '\r' || c == '\n':
			keys = append(keys, Key{Type: KeyEnter})
		case c == 0x7f || c == 0x08:
			keys = append(keys, Key{Type: KeyBackspace})
		case c == 0x03:
			keys = append(keys, Key{Type: KeyCtrlC})
		case c == 0x0e:
			keys = append(keys, Key{Type: KeyCtrlN})
		case c == 0x10:
			keys = append(keys, Key{Type: KeyCtrlP})
		case c < 0x20:
			keys = append(keys, Key{Type: KeyUnknown})
		default:
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				keys = append(keys, Key{Type: KeyUnknown})
				i++
				continue
			}
			if unicode.IsPrint(r) {
				keys = append(keys, Key{Type: KeyRune, Rune: r})
			} else {
				keys = append(keys, Key{Type: KeyUnknown})
			}
			i += size
			continue
		}
		i++
	}
	return keys
}

// decodeEscape decodes a sequence starting with ESC and returns the key and
// the number of bytes consumed. A lone ESC is the escape key.
func decodeEscape(b []byte) (Key, int) {
	if len(b) == 1 {
		return Key{Type: KeyEscape}, 1
	}

	switch b[1] {
	case '[':
		// CSI: parameters, then a final byte in 0x40-0x7e.
		j := 2
		for j < len(b) && (b[j] < 0x40 || b[j] > 0x7e) {
			j++
		}
		if j == len(b) {
			return Key{Type: KeyUnknown}, len(b)
		}
		return arrowKey(b[j]), j + 1
	case 'O':
		// SS3, sent for arrows in application cursor mode.
		if len(b) < 3 {
			return Key{Type: KeyUnknown}, len(b)
		}
		return arrowKey(b[2]), 3
	case 0x1b:
		return Key{Type: KeyEscape}, 1
	}

	// Alt-modified key.
	_, size := utf8.DecodeRune(b[1:])
	return Key{Type: KeyUnknown}, 1 + size
}

func arrowKey(final byte) Key {
	switch final {
	case 'A':
		return Key{Type: KeyUp}
	case 'B':
		return Key{Type: KeyDown}
	}
	return Key{Type: KeyUnknown}
}

// keyReader turns blocking terminal reads into a stream of keys.
type keyReader struct {
	r       io.Reader
	buf     []byte
	pending []Key
}

func newKeyReader(r io.Reader) *keyReader {
	return &keyReader{r: r, buf: make([]byte, 256)}
}

// ReadKey blocks until the next key is available.
func (kr *keyReader) ReadKey() (Key, error) {
	for len(kr.pending) == 0 {
		n, err := kr.r.Read(kr.buf)
		if n > 0 {
			kr.pending = DecodeKeys(kr.buf[:n])
		}
		if err != nil && len(kr.pending) == 0 {
			return Key{}, err
		}
	}

	k := kr.pending[0]
	kr.pending = kr.pending[1:]
	return k, nil
}
