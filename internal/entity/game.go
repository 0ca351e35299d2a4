package entity

import (
	"errors"
	"fmt"
)

const BoardSize = 9

var (
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrCorruptedState  = errors.New("corrupted game state")
	ErrUnknownOutcome  = errors.New("unknown game outcome")
	errMarkCountsDrift = errors.New("mark counts out of balance")
	errPlayAfterWin    = errors.New("moves made after the game was won")
	errBothPlayersWon  = errors.New("both players hold a line")
)

// Board is the 3x3 grid in row-major order: 0 is top-left, 8 is bottom-right.
type Board [BoardSize]Mark

// Line is a triple of board indices.
type Line [3]int

// WinningLines are checked in this order: rows top to bottom, columns left to
// right, then the main and anti diagonals. The first match wins.
var WinningLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game holds the mutable state of one local game. Everything else is derived.
type Game struct {
	Board Board `json:"board"`
	Next  Mark  `json:"next"`
}

func NewGame() *Game {
	return &Game{
		Board: Board{},
		Next:  MarkX,
	}
}

// ApplyMove writes the current player's mark into cell and passes the turn.
// A move on a filled cell or after the game has ended is ignored and reports
// applied == false. A cell outside [0,8] breaks the caller contract and
// returns ErrInvalidCell.
func (that *Game) ApplyMove(cell int) (bool, error) {
	if cell < 0 || cell >= len(that.Board) {
		return false, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Board[cell] != Empty {
		return false, nil
	}

	if that.Result().Outcome != InProgress {
		return false, nil
	}

	that.Board[cell] = that.Next
	that.Next = that.Next.Opponent()

	return true, nil
}

// Reset restores the initial state: empty board, X to move.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Next = MarkX
}

func (that *Game) Result() Result {
	return Evaluate(that.Board)
}

// CurrentPlayer is only meaningful while the game is in progress.
func (that *Game) CurrentPlayer() Mark {
	return that.Next
}

func (that *Game) IsFinished() bool {
	return that.Result().Outcome != InProgress
}

func (that *Game) StatusText() string {
	result := that.Result()

	switch result.Outcome {
	case Win:
		return fmt.Sprintf("Player %s wins!", result.Winner)
	case Draw:
		return "It’s a draw."
	default:
		return fmt.Sprintf("Player %s's turn", that.Next)
	}
}

// Validate checks a game restored from outside the engine against the rules:
// X always opens, turns alternate, Next matches the number of filled cells and
// nobody moved after the game was won.
func (that *Game) Validate() error {
	var countX, countO int

	for i, cell := range that.Board {
		switch cell {
		case Empty:
		case MarkX:
			countX++
		case MarkO:
			countO++
		default:
			return fmt.Errorf("%w: cell %d: %w", ErrCorruptedState, i, ErrInvalidMark)
		}
	}

	if countX != countO && countX != countO+1 {
		return fmt.Errorf("%w: %w: x=%d o=%d", ErrCorruptedState, errMarkCountsDrift, countX, countO)
	}

	expected := MarkX
	if countX > countO {
		expected = MarkO
	}

	if that.Next != expected {
		return fmt.Errorf("%w: next mark %q, expected %q", ErrCorruptedState, that.Next, expected)
	}

	xWon, oWon := holdsLine(that.Board, MarkX), holdsLine(that.Board, MarkO)

	switch {
	case xWon && oWon:
		return fmt.Errorf("%w: %w", ErrCorruptedState, errBothPlayersWon)
	case xWon && countX != countO+1:
		return fmt.Errorf("%w: %w: x won with x=%d o=%d", ErrCorruptedState, errPlayAfterWin, countX, countO)
	case oWon && countX != countO:
		return fmt.Errorf("%w: %w: o won with x=%d o=%d", ErrCorruptedState, errPlayAfterWin, countX, countO)
	}

	return nil
}

// holdsLine reports whether mark fills any winning line. Two lines at once are
// legal when the last move completes both.
func holdsLine(board Board, mark Mark) bool {
	for _, line := range WinningLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return true
		}
	}

	return false
}

// Evaluate derives the result from the board alone.
func Evaluate(board Board) Result {
	for _, line := range WinningLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != Empty && a == b && b == c {
			return Result{Outcome: Win, Winner: a, Line: line}
		}
	}

	// the game continues until every cell is filled
	for _, cell := range board {
		if cell == Empty {
			return Result{Outcome: InProgress}
		}
	}

	return Result{Outcome: Draw}
}
