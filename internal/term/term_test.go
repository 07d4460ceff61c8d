package term

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-cli/internal/game"
	"github.com/vancomm/minesweeper-cli/internal/session"
)

func TestParseCoordinate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line        string
		row, column int
		ok          bool
	}{
		{"a1", 0, 0, true},
		{"c4", 3, 2, true},
		{"z1", 0, 25, true},
		{"aa1", 0, 26, true},
		{"ad16", 15, 29, true},
		{"4 3", 3, 2, true},
		{"1 1", 0, 0, true},
		{"", 0, 0, false},
		{"c", 0, 0, false},
		{"4", 0, 0, false},
		{"c0", 0, 0, false},
		{"0 1", 0, 0, false},
		{"c-4", 0, 0, false},
		{"4c", 0, 0, false},
		{"one two", 0, 0, false},
	}
	for _, test := range tests {
		row, column, ok := parseCoordinate(test.line)
		require.Equal(t, test.ok, ok, "line %q", test.line)
		if test.ok {
			assert.Equal(t, test.row, row, "line %q", test.line)
			assert.Equal(t, test.column, column, "line %q", test.line)
		}
	}
}

func TestColumnLabelRoundTrip(t *testing.T) {
	t.Parallel()

	for column := range 60 {
		label := columnLabel(column)
		parsed, ok := parseColumn(strings.ToLower(label))
		require.True(t, ok, "label %q", label)
		assert.Equal(t, column, parsed, "label %q", label)
	}
	assert.Equal(t, "A", columnLabel(0))
	assert.Equal(t, "Z", columnLabel(25))
	assert.Equal(t, "AA", columnLabel(26))
}

func TestCoordinateReprompts(t *testing.T) {
	t.Parallel()

	// garbage, then off-board, then a valid tile
	in := NewInput(strings.NewReader("what\nz9\nc4\n"), io.Discard)
	row, column, err := in.Coordinate(9, 9)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 2, column)
}

func TestCoordinateEOF(t *testing.T) {
	t.Parallel()

	in := NewInput(strings.NewReader("nope\n"), io.Discard)
	_, _, err := in.Coordinate(9, 9)
	require.ErrorIs(t, err, io.EOF)
}

func TestMenuChoice(t *testing.T) {
	t.Parallel()

	in := NewInput(strings.NewReader("x\n\nplay\nq\n"), io.Discard)

	choice, err := in.MenuChoice()
	require.NoError(t, err)
	assert.Equal(t, session.Play, choice)

	choice, err = in.MenuChoice()
	require.NoError(t, err)
	assert.Equal(t, session.Quit, choice)
}

func TestDifficulty(t *testing.T) {
	t.Parallel()

	in := NewInput(strings.NewReader("impossible\nh\nmedium\n"), io.Discard)

	d, err := in.Difficulty(session.Easy)
	require.NoError(t, err)
	assert.Equal(t, session.Hard, d)

	d, err = in.Difficulty(session.Hard)
	require.NoError(t, err)
	assert.Equal(t, session.Medium, d)
}

func TestAction(t *testing.T) {
	t.Parallel()

	in := NewInput(strings.NewReader("hm\nf\nundo\nCLEAR\n"), io.Discard)

	a, err := in.Action()
	require.NoError(t, err)
	assert.Equal(t, session.Flag, a)

	a, err = in.Action()
	require.NoError(t, err)
	assert.Equal(t, session.Undo, a)

	a, err = in.Action()
	require.NoError(t, err)
	assert.Equal(t, session.Clear, a)
}

func TestRenderFrame(t *testing.T) {
	t.Parallel()

	cells := game.Grid{
		0, 1, game.Unknown,
		1, 2, game.Flagged,
		game.Unknown, game.Unknown, game.Unknown,
	}
	f := session.Frame{
		Cells: cells, Width: 3, Height: 3,
		Turns: 4, MinesRemaining: 1, Selected: -1,
	}

	var buf bytes.Buffer
	NewRenderer(&buf).Frame(f)
	out := buf.String()

	assert.Contains(t, out, "turn 4")
	assert.Contains(t, out, "mines left: 1")
	assert.Contains(t, out, " A B C")
	assert.Contains(t, out, "  1 ")
	assert.Contains(t, out, "  3 ")
	assert.Contains(t, out, "F")
	assert.Contains(t, out, "2")
}

func TestRenderWideBoardHeader(t *testing.T) {
	t.Parallel()

	cells := make(game.Grid, 30*16)
	for i := range cells {
		cells[i] = game.Unknown
	}
	f := session.Frame{Cells: cells, Width: 30, Height: 16, Selected: -1}

	var buf bytes.Buffer
	NewRenderer(&buf).Frame(f)

	// output is a blank line, the counters, the header, then rows
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)

	// two-letter labels stay separated and line up with the cells
	header, firstRow := lines[2], lines[3]
	assert.Contains(t, header, " Z AA AB AC AD")
	assert.Equal(t, len(header), len(firstRow))
}

func TestRenderSelected(t *testing.T) {
	t.Parallel()

	cells := make(game.Grid, 9)
	for i := range cells {
		cells[i] = game.Unknown
	}
	f := session.Frame{Cells: cells, Width: 3, Height: 3, Selected: 4}

	var buf bytes.Buffer
	NewRenderer(&buf).Frame(f)

	assert.Contains(t, buf.String(), "[-]")
}

func TestRenderOutcome(t *testing.T) {
	t.Parallel()

	cells := game.Grid{game.ExplodedMine, 1, 1, 1}
	f := session.Frame{Cells: cells, Width: 2, Height: 2, Selected: -1}

	var buf bytes.Buffer
	NewRenderer(&buf).Outcome(f, false)

	out := buf.String()
	assert.Contains(t, out, "X")
	assert.Contains(t, out, "game over")
}

func TestRenderRecords(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Records(nil)
	assert.Contains(t, buf.String(), "no records")

	buf.Reset()
	r.Records([]session.Score{{
		Player: "tester", Difficulty: session.Easy,
		Width: 9, Height: 9, Turns: 31,
		Playtime: 42 * time.Second,
	}})
	out := buf.String()
	assert.Contains(t, out, "tester")
	assert.Contains(t, out, "42.0")
}
