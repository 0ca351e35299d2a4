package entity

import "fmt"

// Mark is the content of a single cell, and also whose turn it is.
type Mark uint8

const (
	Empty Mark = iota
	MarkX
	MarkO
)

const (
	PlayerX   = "X"
	PlayerO   = "O"
	EmptyCell = ""
)

func (that Mark) String() string {
	switch that {
	case MarkX:
		return PlayerX
	case MarkO:
		return PlayerO
	case Empty:
		return EmptyCell
	default:
		return fmt.Sprintf("Mark(%d)", uint8(that))
	}
}

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Mark) MarshalText() ([]byte, error) {
	if that > MarkO {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMark, uint8(that))
	}

	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}

	*that = mark

	return nil
}

func ParseMark(s string) (Mark, error) {
	switch s {
	case PlayerX:
		return MarkX, nil
	case PlayerO:
		return MarkO, nil
	case EmptyCell:
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}
