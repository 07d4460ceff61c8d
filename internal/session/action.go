package session

// Action is one of the closed set of moves on a selected tile.
type Action int

const (
	Clear Action = iota
	Flag
	Undo
)

func (a Action) String() string {
	switch a {
	case Clear:
		return "clear"
	case Flag:
		return "flag"
	case Undo:
		return "undo"
	default:
		return "action(?)"
	}
}

// MenuChoice is one of the closed set of top-level menu entries.
type MenuChoice int

const (
	Play MenuChoice = iota
	Configure
	Records
	Quit
)

func (c MenuChoice) String() string {
	switch c {
	case Play:
		return "play"
	case Configure:
		return "configure"
	case Records:
		return "records"
	case Quit:
		return "quit"
	default:
		return "choice(?)"
	}
}
