package typeahead

// KeyKind classifies a keystroke.
type KeyKind int

const (
	KeyRune KeyKind = iota
	KeySpace
	KeyEnter
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyOther
)

// Key is a keystroke as seen by the engine. Rune is only meaningful for
// KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Rune builds a printable key.
func Rune(r rune) Key {
	if r == ' ' {
		return Key{Kind: KeySpace, Rune: r}
	}
	return Key{Kind: KeyRune, Rune: r}
}

func (k Key) String() string {
	switch k.Kind {
	case KeyRune:
		return string(k.Rune)
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	default:
		return "other"
	}
}

// Navigation reports whether the key moves the list cursor.
func (k Key) Navigation() bool {
	switch k.Kind {
	case KeyUp, KeyDown, KeyLeft, KeyRight, KeyHome, KeyEnd:
		return true
	}
	return false
}

// ends a running session
func (k Key) terminator() bool {
	return k.Navigation() || k.Kind == KeyEnter || k.Kind == KeyEscape
}

// may start a session
func (k Key) starter() bool {
	return k.Kind == KeyRune
}

// counts as a character once a session is running
func (k Key) character() bool {
	return k.Kind == KeyRune || k.Kind == KeySpace
}
