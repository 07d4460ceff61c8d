package session

import "fmt"

// Difficulty is a named configuration bucket: default board size plus
// mine density. It outlives any one board; a replay keeps it.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Dimensions returns the tier's default board size.
func (d Difficulty) Dimensions() (width, height int) {
	switch d {
	case Medium:
		return 16, 16
	case Hard:
		return 30, 16
	default:
		return 9, 9
	}
}

// density in percent of board area; strictly increasing per tier
func (d Difficulty) density() int {
	switch d {
	case Medium:
		return 16
	case Hard:
		return 21
	default:
		return 12
	}
}

// MineCount scales the tier's density to the given board area,
// placing at least one mine and always leaving at least one safe
// cell.
func (d Difficulty) MineCount(width, height int) int {
	area := width * height
	count := area * d.density() / 100
	if count < 1 {
		count = 1
	}
	if count >= area {
		count = area - 1
	}
	return count
}
