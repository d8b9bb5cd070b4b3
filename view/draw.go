package view

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Styles struct {
	Text, Input, Hint tcell.Style
}

var DefaultStyle = tcell.StyleDefault

// NewStyles builds styles from tcell color names. Unknown names fall back
// to the terminal default color.
func NewStyles(text, input, hint string) Styles {
	return Styles{
		Text:  DefaultStyle.Foreground(tcell.GetColor(text)),
		Input: DefaultStyle.Foreground(tcell.GetColor(input)).Bold(true),
		Hint:  DefaultStyle.Foreground(tcell.GetColor(hint)),
	}
}

// Draw paints f onto s and shows it.
func Draw(s tcell.Screen, f Frame, st Styles) {
	s.Clear()

	right := f.Left + f.LineWidth
	for _, p := range f.Lines {
		drawText(s, f.Left, p.Row, right, st.Text, p.Chunk.Text)
	}
	end := drawText(s, f.Left, f.Anchor, right, st.Input, f.Input)

	for _, h := range f.Hints {
		x := max((f.Size.Width-runewidth.StringWidth(h.Text))/2, 0)
		drawText(s, x, h.Row, f.Size.Width, st.Hint, h.Text)
	}

	// wide runes push the cursor further than the rune count does
	s.ShowCursor(max(f.Cursor.X, min(end, f.Size.Width-1)), f.Cursor.Y)
	s.Show()
}

// drawText writes text from column x up to (not including) maxX and
// returns the column after the last cell written.
func drawText(s tcell.Screen, x, y, maxX int, style tcell.Style, text string) int {
	for _, r := range text {
		w := max(runewidth.RuneWidth(r), 1)
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
