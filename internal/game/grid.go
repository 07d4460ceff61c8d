package game

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown CellState = -2
	Flagged CellState = -1
	/*
	 * Each item in a player grid is one of the following values:
	 *
	 * 	- 0 to 8 mean the cell is open and has a surrounding mine
	 * 	  count.
	 *
	 * 	- -1 means the cell is flagged.
	 *
	 * 	- -2 means the cell is unknown (hidden, unflagged).
	 *
	 * 	- 64 and up are display-only states stamped when the game
	 * 	  ends and the board is disclosed.
	 */
	CorrectFlag   CellState = 64
	ExplodedMine  CellState = 65
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
)

// Revealed reports whether s carries an open-cell hint.
func (s CellState) Revealed() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "-"
	case s == Flagged:
		return "*"
	case s.Revealed():
		return strconv.Itoa(int(s))
	case s == ExplodedMine:
		return "X"
	default:
		return "!"
	}
}

// Grid is the player-visible board state in row-major order.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// IndexOf converts (row, column) to a linear cell index. Callers
// guarantee 0 <= row < height and 0 <= column < width.
func IndexOf(row, column, width int) int {
	return row*width + column
}

// Neighbors returns the indices of the up-to-8 cells adjacent to index
// on a width x height board, row offset varying slowest. The result
// never contains index itself.
func Neighbors(index, width, height int) []int {
	row, column := index/width, index%width
	ns := make([]int, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			y, x := row+dy, column+dx
			if y < 0 || y >= height || x < 0 || x >= width {
				continue
			}
			ns = append(ns, y*width+x)
		}
	}
	return ns
}
