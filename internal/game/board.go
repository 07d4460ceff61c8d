package game

import (
	"fmt"
	"math/rand/v2"
)

// MinDimension is the smallest allowed board side.
const MinDimension = 2

// Outcome is the result of evaluating a board after a player action.
type Outcome int

const (
	Ongoing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// Board is one game's worth of state: the real mine positions and the
// player's knowledge of them. A board is built fresh for every game;
// mines are placed exactly once before the first action.
type Board struct {
	width, height int
	mineCount     int
	placed        bool
	mines         []bool // real mine positions
	cells         Grid   // player knowledge
	exploded      int    // index of the opened mine, -1 while alive
	turns         int
	selected      int // transient selection, -1 when none
}

func NewBoard(width, height int) (*Board, error) {
	if width < MinDimension || height < MinDimension {
		return nil, fmt.Errorf("%w: board %dx%d is below the %dx%d minimum",
			ErrInvalidConfiguration, width, height, MinDimension, MinDimension)
	}
	cells := make(Grid, width*height)
	for i := range cells {
		cells[i] = Unknown
	}
	return &Board{
		width:    width,
		height:   height,
		mines:    make([]bool, width*height),
		cells:    cells,
		exploded: -1,
		selected: -1,
	}, nil
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mineCount }
func (b *Board) Turns() int     { return b.turns }

// Cell returns the player-visible state at index.
func (b *Board) Cell(index int) CellState { return b.cells[index] }

// Cells returns a copy of the player grid for rendering. The renderer
// never observes a partially applied cascade because every mutation
// runs to completion before control returns.
func (b *Board) Cells() Grid {
	cells := make(Grid, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// PlaceMines assigns count mines to distinct cells drawn uniformly
// without replacement from r. It may be called once per board, on a
// board with no mines yet.
func (b *Board) PlaceMines(count int, r *rand.Rand) error {
	if b.placed {
		return fmt.Errorf("%w: mines already placed", ErrInvalidConfiguration)
	}
	if count < 0 || count >= b.width*b.height {
		return fmt.Errorf("%w: %d mines will not fit a %dx%d board",
			ErrInvalidConfiguration, count, b.width, b.height)
	}

	/*
	 * Write down the list of possible mine locations, then pick
	 * count off the list at random.
	 */
	candidates := make([]int, len(b.mines))
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	for range count {
		i := r.IntN(k)
		b.mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	b.mineCount = count
	b.placed = true
	return nil
}

// AdjacentMines counts the mines among the neighbors of index. Pure;
// reveal state does not affect the count.
func (b *Board) AdjacentMines(index int) int {
	n := 0
	for _, j := range Neighbors(index, b.width, b.height) {
		if b.mines[j] {
			n++
		}
	}
	return n
}

// Reveal opens the cell at index and reports whether the board
// changed. Opening a revealed or flagged cell is a no-op; a flagged
// cell must be unflagged first. Opening a mine marks it exploded and
// ends the game. Opening a cell with no adjacent mines cascades to
// its neighbors until the zero-hint region is exhausted, stopping at
// flags and never stepping onto a mine.
func (b *Board) Reveal(index int) bool {
	if b.cells[index] != Unknown {
		return false
	}
	if b.mines[index] {
		/*
		 * The player has landed on a mine. Expose the mine that
		 * killed them; the rest of the board is disclosed by the
		 * end-of-game snapshot, not here.
		 */
		b.cells[index] = ExplodedMine
		b.exploded = index
		return true
	}

	work := []int{index}
	for len(work) > 0 {
		i := work[len(work)-1]
		work = work[:len(work)-1]
		if b.cells[i] != Unknown {
			// already opened by an earlier branch of this cascade
			continue
		}
		hint := b.AdjacentMines(i)
		b.cells[i] = CellState(hint)
		if hint != 0 {
			continue
		}
		for _, j := range Neighbors(i, b.width, b.height) {
			if b.cells[j] == Unknown && !b.mines[j] {
				work = append(work, j)
			}
		}
	}
	return true
}

// ToggleFlag flips the flag on a hidden cell and reports whether the
// board changed. Revealed cells cannot be flagged. Flagging never
// touches mine positions.
func (b *Board) ToggleFlag(index int) bool {
	switch b.cells[index] {
	case Unknown:
		b.cells[index] = Flagged
	case Flagged:
		b.cells[index] = Unknown
	default:
		return false
	}
	return true
}

// FlagCount returns the number of currently flagged cells.
func (b *Board) FlagCount() int {
	n := 0
	for _, c := range b.cells {
		if c == Flagged {
			n++
		}
	}
	return n
}

// MinesRemaining is the display counter: placed mines minus flags.
// It can go negative when the player over-flags.
func (b *Board) MinesRemaining() int {
	return b.mineCount - b.FlagCount()
}

// Outcome evaluates the board. Lost iff a mine has been opened; won
// iff every safe cell is revealed. Flags are irrelevant to winning.
func (b *Board) Outcome() Outcome {
	if b.exploded >= 0 {
		return Lost
	}
	revealed := 0
	for _, c := range b.cells {
		if c.Revealed() {
			revealed++
		}
	}
	if revealed == b.width*b.height-b.mineCount {
		return Won
	}
	return Ongoing
}

// RevealRemaining discloses the whole board for the end screen:
// flags become correct or wrong marks, hidden mines are shown, and
// untouched safe cells get their hints. Display only; the game is
// already over when this runs.
func (b *Board) RevealRemaining() {
	for i := range b.cells {
		switch b.cells[i] {
		case Flagged:
			if b.mines[i] {
				b.cells[i] = CorrectFlag
			} else {
				b.cells[i] = WrongFlag
			}
		case Unknown:
			if b.mines[i] {
				b.cells[i] = UnflaggedMine
			} else {
				b.cells[i] = CellState(b.AdjacentMines(i))
			}
		}
	}
}

// Select records the transient selection for the current action
// cycle. Out-of-range indices are rejected without mutation.
func (b *Board) Select(index int) error {
	if index < 0 || index >= len(b.cells) {
		return fmt.Errorf("%w: index %d on a %dx%d board",
			ErrOutOfBounds, index, b.width, b.height)
	}
	b.selected = index
	return nil
}

// Selected returns the current selection, if any.
func (b *Board) Selected() (int, bool) {
	if b.selected < 0 {
		return 0, false
	}
	return b.selected, true
}

// ClearSelection drops the transient selection. Also the whole of the
// "undo" action: nothing beyond the pending selection is ever undone.
func (b *Board) ClearSelection() {
	b.selected = -1
}

// AdvanceTurn increments the turn counter. The session calls this
// once per completed clear or flag action, never for no-ops.
func (b *Board) AdvanceTurn() {
	b.turns++
}
