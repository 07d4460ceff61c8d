package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/vancomm/minesweeper-cli/internal/game"
	"github.com/vancomm/minesweeper-cli/internal/session"
)

// Renderer writes frames as plain text. Columns are labeled A, B, C,
// ... and rows 1, 2, 3, ...; internally everything stays zero-based.
type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) Menu(current session.Difficulty) {
	width, height := current.Dimensions()
	fmt.Fprintf(r.w, "\n== minesweeper ==\ndifficulty: %s (%dx%d, %d mines)\n",
		current, width, height, current.MineCount(width, height))
}

func (r *Renderer) Frame(f session.Frame) {
	fmt.Fprintf(r.w, "\nturn %d | mines left: %d\n", f.Turns, f.MinesRemaining)
	fmt.Fprint(r.w, renderGrid(f))
}

func (r *Renderer) Outcome(f session.Frame, won bool) {
	fmt.Fprint(r.w, "\n")
	fmt.Fprint(r.w, renderGrid(f))
	if won {
		fmt.Fprintf(r.w, "you won in %d turns!\n", f.Turns)
	} else {
		fmt.Fprintln(r.w, "boom! game over")
	}
}

func (r *Renderer) Records(scores []session.Score) {
	if len(scores) == 0 {
		fmt.Fprintln(r.w, "no records yet")
		return
	}
	fmt.Fprintln(r.w, "\nbest times:")
	for i, s := range scores {
		fmt.Fprintf(r.w, "%2d. %-16s %s %2dx%-2d %8.1fs %4d turns\n",
			i+1, s.Player, s.Difficulty, s.Width, s.Height,
			s.Playtime.Seconds(), s.Turns)
	}
}

func (r *Renderer) Notice(message string) {
	fmt.Fprintln(r.w, message)
}

func renderGrid(f session.Frame) string {
	var b strings.Builder

	// cells are two characters wide until column labels grow to two
	// letters, then three, so adjacent labels never run together
	cellWidth := 2
	if f.Width > 26 {
		cellWidth = 3
	}

	// column header, letters
	fmt.Fprint(&b, "    ")
	for x := range f.Width {
		fmt.Fprintf(&b, "%*s", cellWidth, columnLabel(x))
	}
	fmt.Fprint(&b, "\n")

	pad := strings.Repeat(" ", cellWidth-1)
	for y := range f.Height {
		fmt.Fprintf(&b, "%3d ", y+1)
		for x := range f.Width {
			i := y*f.Width + x
			sep := pad
			if i == f.Selected {
				sep = pad[:cellWidth-2] + "["
			} else if x > 0 && i-1 == f.Selected {
				sep = "]" + pad[:cellWidth-2]
			}
			fmt.Fprint(&b, sep+glyph(f.Cells[i]))
		}
		if f.Selected >= 0 && f.Selected/f.Width == y && f.Selected%f.Width == f.Width-1 {
			fmt.Fprint(&b, "]")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func glyph(c game.CellState) string {
	switch {
	case c == game.Unknown:
		return "-"
	case c == game.Flagged, c == game.CorrectFlag:
		return "F"
	case c == game.WrongFlag:
		return "x"
	case c == game.ExplodedMine:
		return "X"
	case c == game.UnflaggedMine:
		return "*"
	case c == game.CellState(0):
		return " "
	case c.Revealed():
		return c.String()
	default:
		return "?"
	}
}

// columnLabel converts a zero-based column index to its letter label:
// A..Z, then AA, AB, ... for very wide boards.
func columnLabel(column int) string {
	label := ""
	for {
		label = string(rune('A'+column%26)) + label
		column = column/26 - 1
		if column < 0 {
			break
		}
	}
	return label
}

// parseColumn is the inverse of columnLabel over lowercased input.
func parseColumn(s string) (int, bool) {
	column := 0
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return 0, false
		}
		column = column*26 + int(r-'a') + 1
	}
	if column == 0 {
		return 0, false
	}
	return column - 1, true
}
