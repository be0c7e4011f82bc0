package editor

import "unicode"

// Hard wrapping keeps every line at or under wrapWidth runes. The break
// lands on the last whitespace inside the limit; a single token longer
// than the limit is broken mid-token. The cursor stays on the same
// logical character across a rewrap.

// wrapCursorLine rewraps from the cursor's line downward until no line it
// produced exceeds the limit.
func (b *Buffer) wrapCursorLine() {
	if b.wrapWidth <= 0 {
		return
	}
	for i := b.cursor.Line; i < len(b.lines) && len(b.lines[i]) > b.wrapWidth; i++ {
		b.wrapOnce(i)
	}
}

// Reflow normalizes the whole buffer against the wrap limit.
func (b *Buffer) Reflow() {
	if b.wrapWidth <= 0 {
		return
	}
	for i := 0; i < len(b.lines); i++ {
		for len(b.lines[i]) > b.wrapWidth {
			b.wrapOnce(i)
		}
	}
}

// wrapOnce splits line i at the wrap point, spilling the remainder onto a
// new line below, and keeps the cursor on its character.
func (b *Buffer) wrapOnce(i int) {
	line := b.lines[i]

	breakAt := -1
	for j := b.wrapWidth - 1; j >= 0; j-- {
		if unicode.IsSpace(line[j]) {
			breakAt = j
			break
		}
	}
	spaceBreak := breakAt >= 0
	if !spaceBreak {
		breakAt = b.wrapWidth
	}

	head := append([]rune{}, line[:breakAt]...)
	var tail []rune
	if spaceBreak {
		// The breaking space becomes the line break.
		tail = append([]rune{}, line[breakAt+1:]...)
	} else {
		tail = append([]rune{}, line[breakAt:]...)
	}

	b.lines[i] = head
	rest := append([][]rune{}, b.lines[i+1:]...)
	b.lines = append(b.lines[:i+1], append([][]rune{tail}, rest...)...)

	switch {
	case b.cursor.Line > i:
		b.cursor.Line++
	case b.cursor.Line == i && spaceBreak && b.cursor.Col > breakAt:
		b.cursor.Line = i + 1
		b.cursor.Col -= breakAt + 1
	case b.cursor.Line == i && spaceBreak && b.cursor.Col == breakAt:
		b.cursor.Line = i + 1
		b.cursor.Col = 0
	case b.cursor.Line == i && !spaceBreak && b.cursor.Col >= breakAt:
		b.cursor.Line = i + 1
		b.cursor.Col -= breakAt
	}
}
