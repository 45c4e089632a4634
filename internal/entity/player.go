package entity

type Player struct {
	ID     string `json:"id"`
	Mark   Mark   `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

// HasGame - reports whether the player is bound to an in-progress game.
func (that *Player) HasGame() bool {
	return that.GameID != ""
}
