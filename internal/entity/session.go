package entity

// Session binds one local game to the token the presentation layer holds.
type Session struct {
	ID   string `json:"id"`
	Game *Game  `json:"game"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:   id,
		Game: NewGame(),
	}
}
