// Package session drives a game of minesweeper: the menu, difficulty
// configuration, the play loop over one board at a time, and the game
// over screen. Input and output are narrow interfaces so the terminal
// layer stays replaceable (and scriptable in tests).
package session

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/game"
)

var Log = logrus.New()

// ErrIllegalAction rejects a play action requested outside the
// Playing state. Nothing is mutated.
var ErrIllegalAction = errors.New("illegal action for state")

// errQuit unwinds Run when the player picks Quit. Never escapes Run.
var errQuit = errors.New("quit")

// State is the top-level phase of a session.
type State int

const (
	InMenu State = iota
	Configuring
	Playing
	GameOver
)

func (s State) String() string {
	switch s {
	case InMenu:
		return "menu"
	case Configuring:
		return "configuring"
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return "state(?)"
	}
}

// Input supplies validated player choices. Implementations own all
// re-prompting; the session never sees malformed or out-of-range
// values. Readers return io.EOF when the input stream is exhausted,
// which the session treats as a quit.
type Input interface {
	MenuChoice() (MenuChoice, error)
	Difficulty(current Difficulty) (Difficulty, error)
	Coordinate(width, height int) (row, column int, err error)
	Action() (Action, error)
	Acknowledge() error
}

// Frame is the presentation snapshot handed to the renderer: cell
// states plus the counters, never a live board.
type Frame struct {
	Cells          game.Grid
	Width, Height  int
	Turns          int
	MinesRemaining int
	Selected       int // -1 when nothing is selected
}

// Renderer turns frames into something the player can see. It has no
// path back into game state.
type Renderer interface {
	Menu(current Difficulty)
	Frame(f Frame)
	Outcome(f Frame, won bool)
	Records(scores []Score)
	Notice(message string)
}

// Score is one recorded win.
type Score struct {
	SessionID  uuid.UUID
	Player     string
	Difficulty Difficulty
	Width      int
	Height     int
	MineCount  int
	Turns      int
	Playtime   time.Duration
}

// ScoreKeeper persists win records. Optional; a session without one
// simply does not keep records.
type ScoreKeeper interface {
	Record(ctx context.Context, score Score) error
	Top(ctx context.Context, d Difficulty, limit int) ([]Score, error)
}

// Session owns at most one board at a time: none in the menu, exactly
// one while playing or showing the game over screen. Difficulty
// persists across boards; a replay always builds a fresh board with a
// fresh mine draw.
type Session struct {
	state      State
	difficulty Difficulty

	board     *game.Board
	sessionID uuid.UUID
	startedAt time.Time
	won       bool

	rand   *rand.Rand
	in     Input
	out    Renderer
	scores ScoreKeeper
	player string
}

type Option func(*Session)

func WithDifficulty(d Difficulty) Option {
	return func(s *Session) { s.difficulty = d }
}

func WithScoreKeeper(keeper ScoreKeeper, player string) Option {
	return func(s *Session) {
		s.scores = keeper
		s.player = player
	}
}

func New(in Input, out Renderer, r *rand.Rand, opts ...Option) *Session {
	s := &Session{
		state:      InMenu,
		difficulty: Easy,
		rand:       r,
		in:         in,
		out:        out,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State           { return s.state }
func (s *Session) Difficulty() Difficulty { return s.difficulty }

// Run loops the state machine until the player quits, input runs out,
// or ctx is canceled. One player action is fully processed (input,
// mutation, outcome check, render) before the next is accepted.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch s.state {
		case InMenu:
			err = s.menu(ctx)
		case Playing:
			err = s.play(ctx)
		case GameOver:
			err = s.finish(ctx)
		}

		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			Log.Info("session ended")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) menu(ctx context.Context) error {
	s.out.Menu(s.difficulty)

	choice, err := s.in.MenuChoice()
	if err != nil {
		return err
	}

	switch choice {
	case Play:
		return s.startGame()
	case Configure:
		return s.configure()
	case Records:
		return s.showRecords(ctx)
	case Quit:
		return errQuit
	}
	return nil
}

func (s *Session) configure() error {
	s.state = Configuring
	defer func() { s.state = InMenu }()

	d, err := s.in.Difficulty(s.difficulty)
	if err != nil {
		return err
	}
	s.difficulty = d
	Log.WithField("difficulty", d.String()).Info("difficulty set")
	return nil
}

func (s *Session) showRecords(ctx context.Context) error {
	if s.scores == nil {
		s.out.Notice("records are not configured")
		return nil
	}
	scores, err := s.scores.Top(ctx, s.difficulty, 10)
	if err != nil {
		Log.WithError(err).Error("failed to fetch records")
		s.out.Notice("records are unavailable right now")
		return nil
	}
	s.out.Records(scores)
	return nil
}

func (s *Session) startGame() error {
	width, height := s.difficulty.Dimensions()
	mineCount := s.difficulty.MineCount(width, height)

	board, err := game.NewBoard(width, height)
	if err != nil {
		return err
	}
	if err := board.PlaceMines(mineCount, s.rand); err != nil {
		return err
	}

	s.board = board
	s.sessionID = uuid.New()
	s.startedAt = time.Now()
	s.won = false
	s.state = Playing

	Log.WithFields(logrus.Fields{
		"session_id": s.sessionID,
		"difficulty": s.difficulty.String(),
		"width":      width,
		"height":     height,
		"mine_count": mineCount,
	}).Info("new game")
	return nil
}

func (s *Session) play(_ context.Context) error {
	s.out.Frame(s.frame())

	row, column, err := s.in.Coordinate(s.board.Width(), s.board.Height())
	if err != nil {
		return err
	}
	index := game.IndexOf(row, column, s.board.Width())
	if err := s.board.Select(index); err != nil {
		// the input layer filters bounds; if one slips through
		// anyway, ignore it rather than mutate
		Log.WithError(err).Warn("out-of-bounds selection ignored")
		return nil
	}

	// redraw with the selection marked so the player sees what the
	// next action will apply to
	s.out.Frame(s.frame())

	action, err := s.in.Action()
	if err != nil {
		return err
	}

	outcome, err := s.Apply(index, action)
	if err != nil {
		return err
	}

	if outcome != game.Ongoing {
		s.won = outcome == game.Won
		s.state = GameOver
		Log.WithFields(logrus.Fields{
			"session_id": s.sessionID,
			"outcome":    outcome.String(),
			"turns":      s.board.Turns(),
		}).Info("game over")
	}
	return nil
}

// Apply performs one action on the selected tile and evaluates the
// outcome. Callable only while Playing; anything else is rejected
// without mutation.
func (s *Session) Apply(index int, action Action) (game.Outcome, error) {
	if s.state != Playing {
		return game.Ongoing, ErrIllegalAction
	}

	defer s.board.ClearSelection()

	switch action {
	case Undo:
		// undo backs out the pending selection, nothing more
		return game.Ongoing, nil
	case Flag:
		if s.board.ToggleFlag(index) {
			s.board.AdvanceTurn()
		}
	case Clear:
		if s.board.Reveal(index) {
			s.board.AdvanceTurn()
		}
	}
	return s.board.Outcome(), nil
}

func (s *Session) finish(ctx context.Context) error {
	s.board.RevealRemaining()
	Log.Debugf("final board:\n%s", s.board.Cells().ToString(s.board.Width()))
	s.out.Outcome(s.frame(), s.won)

	if s.won && s.scores != nil {
		score := Score{
			SessionID:  s.sessionID,
			Player:     s.player,
			Difficulty: s.difficulty,
			Width:      s.board.Width(),
			Height:     s.board.Height(),
			MineCount:  s.board.MineCount(),
			Turns:      s.board.Turns(),
			Playtime:   time.Since(s.startedAt),
		}
		if err := s.scores.Record(ctx, score); err != nil {
			Log.WithError(err).Error("failed to record win")
		}
	}

	if err := s.in.Acknowledge(); err != nil {
		return err
	}

	// the board dies with the game; a replay starts from scratch
	s.board = nil
	s.state = InMenu
	return nil
}

func (s *Session) frame() Frame {
	selected := -1
	if i, ok := s.board.Selected(); ok {
		selected = i
	}
	return Frame{
		Cells:          s.board.Cells(),
		Width:          s.board.Width(),
		Height:         s.board.Height(),
		Turns:          s.board.Turns(),
		MinesRemaining: s.board.MinesRemaining(),
		Selected:       selected,
	}
}
