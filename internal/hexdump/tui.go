package hexdump

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"myass/parser"
)

// Viewer is an interactive byte browser: a single scrollable view of the
// assembled output with the currently selected instruction's bytes
// highlighted, stepped through with the arrow keys. Modeled on the
// teacher debugger TUI's single-TextView-plus-global-key-handler shape,
// trimmed to the one view this tool needs.
type Viewer struct {
	App    *tview.Application
	View   *tview.TextView
	data   []byte
	insts  []*parser.Instruction
	cursor int
	perRow int
}

// NewViewer builds a Viewer over an assembled byte stream and the
// instruction list that produced it (for Offset/Length highlighting).
// insts may be empty, in which case the view behaves as a plain dump.
func NewViewer(data []byte, insts []*parser.Instruction, bytesPerLine int) *Viewer {
	if bytesPerLine <= 0 {
		bytesPerLine = DefaultBytesPerLine
	}

	v := &Viewer{
		App:    tview.NewApplication(),
		data:   data,
		insts:  insts,
		perRow: bytesPerLine,
	}

	v.View = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	v.View.SetBorder(true).SetTitle(" myass hexdump (↑/↓ select, q quit) ")

	v.setupKeyBindings()
	v.render()

	return v
}

func (v *Viewer) setupKeyBindings() {
	v.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyDown:
			v.moveCursor(1)
			return nil
		case tcell.KeyUp:
			v.moveCursor(-1)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEscape:
			v.App.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				v.App.Stop()
				return nil
			}
		}
		return event
	})
}

func (v *Viewer) moveCursor(delta int) {
	if len(v.insts) == 0 {
		return
	}
	v.cursor += delta
	if v.cursor < 0 {
		v.cursor = 0
	}
	if v.cursor >= len(v.insts) {
		v.cursor = len(v.insts) - 1
	}
	v.render()
}

// render rebuilds the view's text, coloring the currently selected
// instruction's byte range yellow.
func (v *Viewer) render() {
	var highlightStart, highlightEnd int = -1, -1
	if len(v.insts) > 0 {
		cur := v.insts[v.cursor]
		highlightStart, highlightEnd = cur.Offset, cur.Offset+cur.Length
	}

	var sb strings.Builder
	for row := 0; row < len(v.data); row += v.perRow {
		end := row + v.perRow
		if end > len(v.data) {
			end = len(v.data)
		}

		fmt.Fprintf(&sb, "%08X: ", row)
		for col := row; col < row+v.perRow; col++ {
			if col >= end {
				sb.WriteString("   ")
				continue
			}
			b := v.data[col]
			if col >= highlightStart && col < highlightEnd {
				fmt.Fprintf(&sb, "[yellow]%02X[white] ", b)
			} else {
				fmt.Fprintf(&sb, "%02X ", b)
			}
		}
		sb.WriteByte('\n')
	}

	if len(v.insts) > 0 {
		cur := v.insts[v.cursor]
		fmt.Fprintf(&sb, "\ninstruction %d/%d: %s at offset 0x%X, length %d\n",
			v.cursor+1, len(v.insts), cur.Op, cur.Offset, cur.Length)
	}

	v.View.SetText(sb.String())
}

// Run starts the interactive event loop.
func (v *Viewer) Run() error {
	return v.App.SetRoot(v.View, true).Run()
}
