// Package term implements the terminal collaborators of a session:
// a prompt-and-reprompt input reader over stdin and a plain text
// renderer. The session core never sees raw text; everything leaving
// this package is validated and in range.
package term

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-cli/internal/session"
)

// Input reads validated player choices from r, prompting on w. Every
// reader loops until it gets a usable value; malformed input is
// answered with a short hint and a fresh prompt. Readers return
// io.EOF when the stream ends.
type Input struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func NewInput(r io.Reader, w io.Writer) *Input {
	return &Input{
		scanner: bufio.NewScanner(r),
		w:       w,
	}
}

// readLine prompts and returns the next non-empty line, trimmed and
// lowercased.
func (in *Input) readLine(prompt string) (string, error) {
	for {
		fmt.Fprint(in.w, prompt)
		if !in.scanner.Scan() {
			if err := in.scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		line := strings.ToLower(strings.TrimSpace(in.scanner.Text()))
		if line == "" {
			continue
		}
		return line, nil
	}
}

func (in *Input) MenuChoice() (session.MenuChoice, error) {
	for {
		line, err := in.readLine("[p]lay, [d]ifficulty, [r]ecords, [q]uit: ")
		if err != nil {
			return 0, err
		}
		switch line {
		case "p", "play":
			return session.Play, nil
		case "d", "difficulty":
			return session.Configure, nil
		case "r", "records":
			return session.Records, nil
		case "q", "quit", "exit":
			return session.Quit, nil
		}
		fmt.Fprintln(in.w, "please pick one of p, d, r, q")
	}
}

func (in *Input) Difficulty(current session.Difficulty) (session.Difficulty, error) {
	prompt := fmt.Sprintf("difficulty, easy/medium/hard (now %s): ", current)
	for {
		line, err := in.readLine(prompt)
		if err != nil {
			return 0, err
		}
		switch line {
		case "e":
			return session.Easy, nil
		case "m":
			return session.Medium, nil
		case "h":
			return session.Hard, nil
		}
		if d, err := session.ParseDifficulty(line); err == nil {
			return d, nil
		}
		fmt.Fprintln(in.w, "please pick one of easy, medium, hard")
	}
}

// Coordinate reads a tile as a letter column plus 1-based row, e.g.
// "C4", or as "row column" in 1-based numbers, e.g. "4 3". Values
// outside the board are re-prompted, never returned.
func (in *Input) Coordinate(width, height int) (row, column int, err error) {
	for {
		line, err := in.readLine("tile (e.g. C4): ")
		if err != nil {
			return 0, 0, err
		}
		row, column, ok := parseCoordinate(line)
		if !ok {
			fmt.Fprintln(in.w, "enter a column letter and a row number, like C4")
			continue
		}
		if row < 0 || row >= height || column < 0 || column >= width {
			fmt.Fprintf(in.w, "that tile is off the board (columns A-%s, rows 1-%d)\n",
				columnLabel(width-1), height)
			continue
		}
		return row, column, nil
	}
}

// parseCoordinate accepts "c4" (column letters then 1-based row) or
// "4 3" (1-based row, then 1-based column) and converts to zero-based
// (row, column).
func parseCoordinate(line string) (row, column int, ok bool) {
	if fields := strings.Fields(line); len(fields) == 2 {
		r, err1 := strconv.Atoi(fields[0])
		c, err2 := strconv.Atoi(fields[1])
		if err1 == nil && err2 == nil && r >= 1 && c >= 1 {
			return r - 1, c - 1, true
		}
		return 0, 0, false
	}

	i := 0
	for i < len(line) && line[i] >= 'a' && line[i] <= 'z' {
		i++
	}
	if i == 0 || i == len(line) {
		return 0, 0, false
	}
	column, ok = parseColumn(line[:i])
	if !ok {
		return 0, 0, false
	}
	r, err := strconv.Atoi(line[i:])
	if err != nil || r < 1 {
		return 0, 0, false
	}
	return r - 1, column, true
}

func (in *Input) Action() (session.Action, error) {
	for {
		line, err := in.readLine("[c]lear, [f]lag, [u]ndo: ")
		if err != nil {
			return 0, err
		}
		switch line {
		case "c", "clear":
			return session.Clear, nil
		case "f", "flag", "unflag":
			return session.Flag, nil
		case "u", "undo":
			return session.Undo, nil
		}
		fmt.Fprintln(in.w, "please pick one of c, f, u")
	}
}

// Acknowledge waits for any line, including an empty one.
func (in *Input) Acknowledge() error {
	fmt.Fprint(in.w, "press enter to continue... ")
	if !in.scanner.Scan() {
		if err := in.scanner.Err(); err != nil {
			return err
		}
		return io.EOF
	}
	return nil
}
