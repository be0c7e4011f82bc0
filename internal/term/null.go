package term

import "strings"

// Null is an in-memory Backend for tests. Events are injected with Inject
// and the drawn grid can be inspected as text.
type Null struct {
	width  int
	height int
	cells  [][]rune
	styles [][]Style

	cursorX, cursorY int
	cursorShown      bool

	events chan Event
	done   chan struct{}
	shows  int
}

var _ Backend = (*Null)(nil)

// NewNull creates a test backend with a fixed size.
func NewNull(width, height int) *Null {
	n := &Null{
		width:  width,
		height: height,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	n.Clear()
	return n
}

func (n *Null) Init() error { return nil }

func (n *Null) Fini() {
	select {
	case <-n.done:
	default:
		close(n.done)
	}
}

func (n *Null) Size() (int, int) { return n.width, n.height }

func (n *Null) Clear() {
	n.cells = make([][]rune, n.height)
	n.styles = make([][]Style, n.height)
	for y := range n.cells {
		n.cells[y] = make([]rune, n.width)
		n.styles[y] = make([]Style, n.width)
		for x := range n.cells[y] {
			n.cells[y][x] = ' '
		}
	}
}

func (n *Null) SetCell(x, y int, r rune, style Style) {
	if x < 0 || y < 0 || x >= n.width || y >= n.height {
		return
	}
	n.cells[y][x] = r
	n.styles[y][x] = style
}

func (n *Null) ShowCursor(x, y int) {
	n.cursorX, n.cursorY = x, y
	n.cursorShown = true
}

func (n *Null) HideCursor() { n.cursorShown = false }

func (n *Null) Show() { n.shows++ }

func (n *Null) PollEvent() Event {
	select {
	case ev := <-n.events:
		return ev
	case <-n.done:
		return nil
	}
}

func (n *Null) PostWake() {
	select {
	case n.events <- WakeEvent{}:
	case <-n.done:
	}
}

// Inject queues an event as if the user produced it.
func (n *Null) Inject(ev Event) {
	select {
	case n.events <- ev:
	case <-n.done:
	}
}

// InjectRunes queues one KeyEvent per rune.
func (n *Null) InjectRunes(s string) {
	for _, r := range s {
		n.Inject(KeyEvent{Rune: r})
	}
}

// Row returns the drawn text of row y, right-trimmed.
func (n *Null) Row(y int) string {
	if y < 0 || y >= n.height {
		return ""
	}
	return strings.TrimRight(string(n.cells[y]), " ")
}

// Content returns all rows joined by newlines, right-trimmed.
func (n *Null) Content() string {
	rows := make([]string, n.height)
	for y := range rows {
		rows[y] = n.Row(y)
	}
	return strings.TrimRight(strings.Join(rows, "\n"), "\n")
}

// StyleAt returns the style of the cell at x,y.
func (n *Null) StyleAt(x, y int) Style {
	if x < 0 || y < 0 || x >= n.width || y >= n.height {
		return Style{}
	}
	return n.styles[y][x]
}

// Cursor reports the cursor position and visibility.
func (n *Null) Cursor() (x, y int, shown bool) {
	return n.cursorX, n.cursorY, n.cursorShown
}

// Shows counts Show calls, useful to assert redraws happened.
func (n *Null) Shows() int { return n.shows }
