package entity

import "fmt"

type Outcome uint8

const (
	InProgress Outcome = iota
	Win
	Draw
)

const (
	StatusOngoing = "ongoing"
	StatusWin     = "win"
	StatusDraw    = "draw"
)

func (that Outcome) String() string {
	switch that {
	case InProgress:
		return StatusOngoing
	case Win:
		return StatusWin
	case Draw:
		return StatusDraw
	default:
		return fmt.Sprintf("Outcome(%d)", uint8(that))
	}
}

func (that Outcome) MarshalText() ([]byte, error) {
	if that > Draw {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOutcome, uint8(that))
	}

	return []byte(that.String()), nil
}

// Result is derived from a board by Evaluate and is never stored.
// Winner and Line are set only when Outcome is Win.
type Result struct {
	Outcome Outcome
	Winner  Mark
	Line    Line
}

func (that Result) IsTerminal() bool {
	return that.Outcome != InProgress
}

func (that *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case StatusOngoing:
		*that = InProgress
	case StatusWin:
		*that = Win
	case StatusDraw:
		*that = Draw
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, text)
	}

	return nil
}
