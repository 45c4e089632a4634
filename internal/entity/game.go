package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// PlayerTie - winner value of a drawn game.
	PlayerTie = "-"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game - a single human versus engine game.
type Game struct {
	ID         string    `json:"id"`
	Board      Board     `json:"board"`
	Winner     string    `json:"winner"`
	Status     string    `json:"status"`
	Turn       Mark      `json:"player_turn"`
	PlayerMark Mark      `json:"player_mark"`
	EngineMark Mark      `json:"engine_mark"`
	Players    []*Player `json:"players,omitempty"`
}

// NewGame - creates an empty ongoing game, by default the human moves first.
func NewGame(id string, engineMark Mark, engineFirst bool) *Game {
	playerMark := Opponent(engineMark)

	turn := playerMark
	if engineFirst {
		turn = engineMark
	}

	return &Game{
		ID:         id,
		Board:      Board{},
		Turn:       turn,
		Status:     StatusOngoing,
		PlayerMark: playerMark,
		EngineMark: engineMark,
	}
}

// MakeTurn - applies the move of the side holding mark and updates the game state.
func (that *Game) MakeTurn(mark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.ApplyMove(cell, mark); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Turn = Opponent(mark)
	that.UpdateGameState(mark)

	return nil
}

// UpdateGameState - the side that just moved is checked for a win first, then the board for fullness.
func (that *Game) UpdateGameState(lastMoved Mark) {
	switch {
	case that.Board.IsWinner(lastMoved):
		that.Winner = string(lastMoved)
		that.Status = StatusFinished
		that.Turn = Empty
	case that.Board.IsFull():
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = Empty
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsEngineTurn() bool {
	return that.IsOngoing() && that.Turn == that.EngineMark
}

func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}

// EngineWon - reports a finished game won by the engine.
func (that *Game) EngineWon() bool {
	return that.IsFinished() && that.Winner == string(that.EngineMark)
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
