package entity

// GameState is everything a renderer needs after a change.
type GameState struct {
	Board         [BoardSize]string `json:"board"`
	CurrentPlayer string            `json:"current_player,omitempty"`
	Outcome       Outcome           `json:"outcome"`
	Winner        string            `json:"winner,omitempty"`
	WinningLine   []int             `json:"winning_line,omitempty"`
	StatusText    string            `json:"status_text"`
}

func (that *Game) State() GameState {
	result := that.Result()

	state := GameState{
		Outcome:    result.Outcome,
		StatusText: that.StatusText(),
	}

	for i, cell := range that.Board {
		state.Board[i] = cell.String()
	}

	switch result.Outcome {
	case Win:
		state.Winner = result.Winner.String()
		state.WinningLine = result.Line[:]
	case InProgress:
		state.CurrentPlayer = that.Next.String()
	case Draw:
	}

	return state
}
