// Package inspect shows a brainfuck tape in a terminal UI
package inspect

import (
	"fmt"
	"strconv"

	"github.com/Manu343726/brainfuck/pkg/brainfuck"
	"github.com/Manu343726/brainfuck/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// DefaultRadius is the number of cells shown at each side of the view center
const DefaultRadius = 16

// Row is one cell of the tape as shown by the viewer
type Row struct {
	Address int
	Value   uint64
	// Current is true for the cell under the cell pointer
	Current bool
}

// Window returns the cells around center, wrapping at the tape ends. Tapes
// shorter than the window are listed once, starting at center.
func Window(store brainfuck.CellStore, center, radius int) []Row {
	count := 2*radius + 1
	first := center - radius
	if count >= store.Len() {
		count = store.Len()
		first = center
	}

	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		address := (first + i) % store.Len()
		if address < 0 {
			address += store.Len()
		}
		rows = append(rows, Row{
			Address: address,
			Value:   store.ValueAt(address),
			Current: address == store.Pointer(),
		})
	}
	return rows
}

var headers = []string{"Cell", "Dec", "Hex", "Char"}

// FillTable replaces the contents of table with a header row plus one row
// per cell. cellWidth is the tape cell width in bits.
func FillTable(table *tview.Table, rows []Row, cellWidth int) {
	table.Clear()

	for column, header := range headers {
		table.SetCell(0, column, tview.NewTableCell(header).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	for i, row := range rows {
		color := tcell.ColorWhite
		marker := " "
		if row.Current {
			color = tcell.ColorGreen
			marker = ">"
		}

		texts := []string{
			marker + strconv.Itoa(row.Address),
			strconv.FormatUint(row.Value, 10),
			utils.FormatUintHex(row.Value, cellWidth/4),
			utils.PrintableByte(byte(row.Value)),
		}
		for column, text := range texts {
			table.SetCell(i+1, column, tview.NewTableCell(text).SetTextColor(color))
		}
	}
}

// Viewer is the interactive tape viewer
type Viewer struct {
	app     *tview.Application
	table   *tview.Table
	status  *tview.TextView
	store   brainfuck.CellStore
	center  int
	radius  int
	title   string
	output  []byte
	summary string
}

// NewViewer creates a viewer over the session tape. output is the program
// output shown below the tape.
func NewViewer(session *brainfuck.Session, title string, output []byte, result *brainfuck.Result) *Viewer {
	v := &Viewer{
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		status: tview.NewTextView(),
		store:  session.Store(),
		center: session.Store().Pointer(),
		radius: DefaultRadius,
		title:  title,
		output: output,
	}

	if result != nil {
		v.summary = fmt.Sprintf("%d steps, %d bytes read, %d bytes written, stopped: %s",
			result.Steps, result.BytesRead, result.BytesWritten, result.StopReason)
	}
	return v
}

// Run blocks until the user quits (q or Esc)
func (v *Viewer) Run() error {
	v.table.SetFixed(1, 0).SetBorder(true).SetTitle(" " + v.title + " ")

	outputView := tview.NewTextView().SetText(string(v.output))
	outputView.SetBorder(true).SetTitle(" Output ")

	v.status.SetText(v.summary + "  [arrows: scroll, home: pointer, q: quit]")
	v.refresh()

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 3, true).
		AddItem(outputView, 0, 1, false).
		AddItem(v.status, 1, 0, false)

	v.app.SetInputCapture(v.handleKey)
	return v.app.SetRoot(layout, true).Run()
}

func (v *Viewer) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		v.app.Stop()
		return nil
	case tcell.KeyLeft, tcell.KeyUp:
		v.scroll(-1)
		return nil
	case tcell.KeyRight, tcell.KeyDown:
		v.scroll(1)
		return nil
	case tcell.KeyPgUp:
		v.scroll(-v.radius)
		return nil
	case tcell.KeyPgDn:
		v.scroll(v.radius)
		return nil
	case tcell.KeyHome:
		v.center = v.store.Pointer()
		v.refresh()
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			v.app.Stop()
			return nil
		}
	}
	return event
}

func (v *Viewer) scroll(delta int) {
	v.center = (v.center + delta) % v.store.Len()
	if v.center < 0 {
		v.center += v.store.Len()
	}
	v.refresh()
}

func (v *Viewer) refresh() {
	FillTable(v.table, Window(v.store, v.center, v.radius), v.store.Width())
}
