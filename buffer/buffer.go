package buffer

import (
	"strings"
	"unicode/utf8"
)

const DefaultWidth = 60

// Storer receives the final document on save.
type Storer interface {
	Store(text string) error
}

// Buffer holds a document as committed text plus the line being typed.
// Everything is counted in runes.
type Buffer struct {
	committed string
	pending   string
	width     int
}

// New derives a buffer from persisted text. The last wrapped row becomes
// the pending line again if it is not full yet.
func New(text string, width int) *Buffer {
	b := &Buffer{committed: text, width: max(width, 1)}
	b.reload()
	return b
}

func (b *Buffer) Committed() string { return b.committed }
func (b *Buffer) Pending() string   { return b.pending }
func (b *Buffer) Width() int        { return b.width }

// Text is the whole document as it would be saved right now.
func (b *Buffer) Text() string {
	return b.committed + b.pending
}

// TypeChar appends c to the pending line and folds it into the committed
// text once it is width runes long.
func (b *Buffer) TypeChar(c rune) {
	if c == '\n' {
		b.CommitLine()
		return
	}
	b.pending += string(c)
	if utf8.RuneCountInString(b.pending) >= b.width {
		b.fold()
	}
}

// Backspace drops the last rune of the pending line. With nothing pending
// it eats into the committed text and reopens its last row for editing.
func (b *Buffer) Backspace() {
	if b.pending != "" {
		b.pending = dropLastRune(b.pending)
		return
	}
	if b.committed == "" {
		return
	}
	b.committed = dropLastRune(b.committed)
	b.reload()
}

// CommitLine ends the current paragraph.
func (b *Buffer) CommitLine() {
	b.committed += b.pending + "\n"
	b.pending = ""
}

// Save folds any pending input and hands the document to s.
func (b *Buffer) Save(s Storer) error {
	if b.pending != "" {
		b.fold()
	}
	return s.Store(b.committed)
}

func (b *Buffer) EndsWithBreak() bool {
	return strings.HasSuffix(b.committed, "\n")
}

// Lines wraps the committed text. It is recomputed on every call.
func (b *Buffer) Lines() []Chunk {
	return Wrap(b.committed, b.width)
}

func (b *Buffer) fold() {
	b.committed += b.pending
	b.pending = ""
}

// reload moves a short last row from committed back into pending. Callers
// only reach it with an empty pending line.
func (b *Buffer) reload() {
	if b.committed == "" || b.EndsWithBreak() {
		return
	}
	lines := b.Lines()
	last := lines[len(lines)-1].Text
	if utf8.RuneCountInString(last) >= b.width {
		return
	}
	b.committed = strings.TrimSuffix(b.committed, last)
	b.pending = last + b.pending
}

func dropLastRune(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
