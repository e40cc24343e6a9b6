package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/wedit/internal/doc"
)

var (
	styleText    = tcell.StyleDefault
	styleHeading = tcell.StyleDefault.Bold(true)
	styleMarker  = tcell.StyleDefault.Dim(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// Draw paints the visible lines, the status line and the caret.
func (e *Editor) Draw() {
	e.screen.Clear()
	width, height := e.screen.Size()
	viewport := e.ViewportHeight()

	for y := 0; y < viewport; y++ {
		i := e.top + y
		if i >= len(e.lines) {
			break
		}
		l := e.lines[i]
		style := styleText
		if e.tree.Kind(l.node) == doc.KindHeading {
			style = styleHeading
		}
		x := e.drawString(0, y, l.prefix, styleMarker)
		e.drawString(x, y, e.tree.Text(l.node), style)
	}

	if height > 0 {
		for x := 0; x < width; x++ {
			e.screen.SetContent(x, height-1, ' ', nil, styleStatus)
		}
		e.drawString(0, height-1, " "+e.title+" | "+e.status, styleStatus)
	}

	if row := e.row(e.focus); row >= e.top && row < e.top+viewport {
		l := e.lines[row]
		e.screen.ShowCursor(l.width(e.tree.Text(l.node), e.offset), row-e.top)
	} else {
		e.screen.HideCursor()
	}

	e.screen.Show()
}

// drawString draws s at (x, y) and returns the column after it.
func (e *Editor) drawString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		e.screen.SetContent(x, y, r, nil, style)
		x += max(uniseg.StringWidth(string(r)), 1)
	}
	return x
}
