// Package view turns a document into screen rows. Compose is a pure
// function producing a Frame; Draw is the tcell sink that paints one.
package view

import (
	"slices"
	"unicode/utf8"

	"wrt/buffer"
	"wrt/layout"
)

// VisibleLines is how many committed rows are shown above the input line.
const VisibleLines = 5

const footerHeight = 4

var Hints = []string{
	"ENTER to create new line; BACKSPACE to delete",
	"ESC to save and quit.",
}

// Document is what the renderer needs to know about a buffer.
type Document interface {
	Lines() []buffer.Chunk
	Pending() string
	EndsWithBreak() bool
	Width() int
}

type Size struct {
	Width, Height int
}

type Placement struct {
	Row   int
	Chunk buffer.Chunk
}

type Label struct {
	Row  int
	Text string
}

type Frame struct {
	Size Size
	// Left is the first column of the text, Anchor the row of the input line.
	Left, Anchor int
	LineWidth    int
	// Lines are ordered top to bottom.
	Lines  []Placement
	Input  string
	Cursor layout.Point
	Hints  []Label
}

// Compose lays out the last VisibleLines rows of doc bottom-up from the
// anchor row, leaving a blank row wherever a paragraph ends. The screen is
// expected to fit the line width plus margins; rows that would land above
// the top edge are dropped.
func Compose(size Size, doc Document, showHints bool) Frame {
	f := Frame{
		Size:      size,
		Left:      max((size.Width-doc.Width())/2, 0),
		Anchor:    max(size.Height/2-1, 0),
		LineWidth: doc.Width(),
		Input:     doc.Pending(),
	}

	lines := doc.Lines()
	row := f.Anchor
	for i := 0; i < VisibleLines && i < len(lines); i++ {
		chunk := lines[len(lines)-1-i]
		row--
		if i != 0 && chunk.IsLast {
			row--
		}
		if i == 0 && doc.EndsWithBreak() {
			row--
		}
		if row < 0 {
			break
		}
		f.Lines = append(f.Lines, Placement{Row: row, Chunk: chunk})
	}
	slices.Reverse(f.Lines)

	f.Cursor = layout.Point{
		X: min(f.Left+utf8.RuneCountInString(f.Input), max(size.Width-1, 0)),
		Y: f.Anchor,
	}

	if showHints {
		f.Hints = hints(size)
	}
	return f
}

func hints(size Size) []Label {
	var footer layout.Dimensions
	layout.Column(
		layout.FlexItemBox(layout.EmptyBox, layout.Max(layout.Rel(1)), nil),
		layout.FlexItemBox(func(d layout.Dimensions) { footer = d }, layout.Exact(layout.Abs(footerHeight)), nil),
	).StartLayouting(size.Width, size.Height)

	labels := make([]Label, 0, len(Hints))
	for i, text := range Hints {
		if i >= footer.Height {
			break
		}
		labels = append(labels, Label{Row: footer.Origin.Y + i, Text: text})
	}
	return labels
}
