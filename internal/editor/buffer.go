package editor

import (
	"strings"
	"unicode"
)

// Position addresses a rune in the buffer. Col is a rune index into the
// line, not a screen column; the renderer converts to cell widths.
type Position struct {
	Line int
	Col  int
}

// less orders positions document-wise.
func (p Position) less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Buffer holds the text being edited as rune slices plus the cursor, the
// visual-selection anchor, and the yank register.
type Buffer struct {
	lines  [][]rune
	cursor Position
	anchor *Position
	yank   string

	wrapWidth int
}

// NewBuffer builds a buffer from existing text. A zero or negative width
// disables hard wrapping.
func NewBuffer(text string, wrapWidth int) *Buffer {
	b := &Buffer{wrapWidth: wrapWidth}
	b.SetText(text)
	return b
}

// SetText replaces the content and resets cursor, anchor and register.
func (b *Buffer) SetText(text string) {
	raw := strings.Split(text, "\n")
	b.lines = make([][]rune, len(raw))
	for i, l := range raw {
		b.lines[i] = []rune(l)
	}
	b.cursor = Position{}
	b.anchor = nil
}

// Text reassembles the buffer content.
func (b *Buffer) Text() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Lines returns the buffer rows as strings for rendering.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// LineCount returns the number of rows.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position { return b.cursor }

// WordCount counts whitespace-separated words in the buffer.
func (b *Buffer) WordCount() int {
	n := 0
	for _, l := range b.lines {
		n += len(strings.Fields(string(l)))
	}
	return n
}

// Yanked returns the register contents.
func (b *Buffer) Yanked() string { return b.yank }

func (b *Buffer) line() []rune { return b.lines[b.cursor.Line] }

// clamp keeps the cursor inside the buffer. The cursor may rest one past
// the last rune of a line, which is where insertion happens at line end.
func (b *Buffer) clamp() {
	if b.cursor.Line < 0 {
		b.cursor.Line = 0
	}
	if b.cursor.Line >= len(b.lines) {
		b.cursor.Line = len(b.lines) - 1
	}
	if b.cursor.Col < 0 {
		b.cursor.Col = 0
	}
	if n := len(b.line()); b.cursor.Col > n {
		b.cursor.Col = n
	}
}

// InsertRune inserts r at the cursor and advances, then rewraps the line.
func (b *Buffer) InsertRune(r rune) {
	line := b.line()
	col := b.cursor.Col
	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:col]...)
	next = append(next, r)
	next = append(next, line[col:]...)
	b.lines[b.cursor.Line] = next
	b.cursor.Col++
	b.wrapCursorLine()
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	line := b.line()
	col := b.cursor.Col
	tail := append([]rune{}, line[col:]...)
	b.lines[b.cursor.Line] = line[:col]
	rest := append([][]rune{tail}, b.lines[b.cursor.Line+1:]...)
	b.lines = append(b.lines[:b.cursor.Line+1], rest...)
	b.cursor.Line++
	b.cursor.Col = 0
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
func (b *Buffer) Backspace() {
	if b.cursor.Col > 0 {
		line := b.line()
		col := b.cursor.Col
		b.lines[b.cursor.Line] = append(line[:col-1], line[col:]...)
		b.cursor.Col--
		return
	}
	if b.cursor.Line == 0 {
		return
	}
	prev := b.lines[b.cursor.Line-1]
	b.cursor.Col = len(prev)
	b.lines[b.cursor.Line-1] = append(prev, b.line()...)
	b.lines = append(b.lines[:b.cursor.Line], b.lines[b.cursor.Line+1:]...)
	b.cursor.Line--
	b.wrapCursorLine()
}

// DeleteChar removes the rune under the cursor.
func (b *Buffer) DeleteChar() {
	line := b.line()
	if b.cursor.Col >= len(line) {
		return
	}
	b.lines[b.cursor.Line] = append(line[:b.cursor.Col], line[b.cursor.Col+1:]...)
	b.clamp()
}

// DeleteLine removes the current line, loading it into the register.
func (b *Buffer) DeleteLine() {
	b.yank = string(b.line()) + "\n"
	if len(b.lines) == 1 {
		b.lines[0] = nil
		b.cursor = Position{}
		return
	}
	b.lines = append(b.lines[:b.cursor.Line], b.lines[b.cursor.Line+1:]...)
	b.clamp()
}

// YankLine copies the current line into the register.
func (b *Buffer) YankLine() string {
	b.yank = string(b.line()) + "\n"
	return b.yank
}

// StartSelection anchors a visual selection at the cursor.
func (b *Buffer) StartSelection() {
	anchor := b.cursor
	b.anchor = &anchor
}

// ClearSelection drops the anchor.
func (b *Buffer) ClearSelection() { b.anchor = nil }

// Selection returns the ordered inclusive span of the active selection.
// The span is the same whichever end the cursor is on.
func (b *Buffer) Selection() (start, end Position, ok bool) {
	if b.anchor == nil {
		return Position{}, Position{}, false
	}
	start, end = *b.anchor, b.cursor
	if end.less(start) {
		start, end = end, start
	}
	return start, end, true
}

// Selected reports whether p lies inside the active selection.
func (b *Buffer) Selected(p Position) bool {
	start, end, ok := b.Selection()
	if !ok {
		return false
	}
	return !p.less(start) && !end.less(p)
}

// SelectedText returns the selected runes, endpoints inclusive.
func (b *Buffer) SelectedText() string {
	start, end, ok := b.Selection()
	if !ok {
		return ""
	}
	if start.Line == end.Line {
		line := b.lines[start.Line]
		hi := end.Col + 1
		if hi > len(line) {
			hi = len(line)
		}
		if start.Col >= len(line) {
			return ""
		}
		return string(line[start.Col:hi])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	line := b.lines[end.Line]
	hi := end.Col + 1
	if hi > len(line) {
		hi = len(line)
	}
	sb.WriteString(string(line[:hi]))
	return sb.String()
}

// YankSelection copies the selection into the register.
func (b *Buffer) YankSelection() string {
	text := b.SelectedText()
	if text != "" {
		b.yank = text
	}
	return text
}

// DeleteSelection removes the selected span and moves the cursor to its
// start. The removed text lands in the register.
func (b *Buffer) DeleteSelection() {
	start, end, ok := b.Selection()
	if !ok {
		return
	}
	b.yank = b.SelectedText()

	if start.Line == end.Line {
		line := b.lines[start.Line]
		hi := end.Col + 1
		if hi > len(line) {
			hi = len(line)
		}
		b.lines[start.Line] = append(line[:start.Col], line[hi:]...)
	} else {
		head := b.lines[start.Line][:start.Col]
		tailLine := b.lines[end.Line]
		hi := end.Col + 1
		if hi > len(tailLine) {
			hi = len(tailLine)
		}
		merged := append(append([]rune{}, head...), tailLine[hi:]...)
		b.lines = append(b.lines[:start.Line], append([][]rune{merged}, b.lines[end.Line+1:]...)...)
	}
	b.cursor = start
	b.anchor = nil
	b.clamp()
	// The merged line can outgrow the limit, like a backspace line-join.
	b.wrapCursorLine()
}

// Paste inserts the register contents at the cursor. Line yanks (trailing
// newline) paste below the current line the way Vim's p does.
func (b *Buffer) Paste() {
	if b.yank == "" {
		return
	}
	if strings.HasSuffix(b.yank, "\n") {
		inserted := strings.Split(strings.TrimSuffix(b.yank, "\n"), "\n")
		rows := make([][]rune, len(inserted))
		for i, l := range inserted {
			rows[i] = []rune(l)
		}
		at := b.cursor.Line + 1
		rest := append([][]rune{}, b.lines[at:]...)
		b.lines = append(b.lines[:at], append(rows, rest...)...)
		b.cursor = Position{Line: at, Col: 0}
		return
	}
	for _, r := range b.yank {
		if r == '\n' {
			b.InsertNewline()
			continue
		}
		b.InsertRune(r)
	}
}

// Movement.

func (b *Buffer) MoveLeft() {
	if b.cursor.Col > 0 {
		b.cursor.Col--
	}
}

func (b *Buffer) MoveRight() {
	if b.cursor.Col < len(b.line()) {
		b.cursor.Col++
	}
}

func (b *Buffer) MoveUp() {
	if b.cursor.Line > 0 {
		b.cursor.Line--
		b.clamp()
	}
}

func (b *Buffer) MoveDown() {
	if b.cursor.Line < len(b.lines)-1 {
		b.cursor.Line++
		b.clamp()
	}
}

func (b *Buffer) MoveLineStart() { b.cursor.Col = 0 }

func (b *Buffer) MoveLineEnd() { b.cursor.Col = len(b.line()) }

func (b *Buffer) MoveFileStart() { b.cursor = Position{} }

func (b *Buffer) MoveFileEnd() {
	b.cursor.Line = len(b.lines) - 1
	b.cursor.Col = len(b.line())
}

// MoveWordForward advances to the start of the next word, crossing line
// boundaries when the rest of the line is blank.
func (b *Buffer) MoveWordForward() {
	line := b.line()
	col := b.cursor.Col

	// Skip the rest of the current word, then the gap.
	for col < len(line) && !unicode.IsSpace(line[col]) {
		col++
	}
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}
	if col < len(line) {
		b.cursor.Col = col
		return
	}
	if b.cursor.Line == len(b.lines)-1 {
		b.cursor.Col = len(line)
		return
	}
	b.cursor.Line++
	b.cursor.Col = 0
	line = b.line()
	col = 0
	for col < len(line) && unicode.IsSpace(line[col]) {
		col++
	}
	b.cursor.Col = col
}

// MoveWordBackward moves to the start of the previous word.
func (b *Buffer) MoveWordBackward() {
	col := b.cursor.Col
	line := b.line()
	if col == 0 {
		if b.cursor.Line == 0 {
			return
		}
		b.cursor.Line--
		line = b.line()
		col = len(line)
	}
	for col > 0 && unicode.IsSpace(line[col-1]) {
		col--
	}
	for col > 0 && !unicode.IsSpace(line[col-1]) {
		col--
	}
	b.cursor.Col = col
}
