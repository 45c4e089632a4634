package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.Empty
)

func TestEngine_BestMove(t *testing.T) {
	t.Run("Completes own line for an immediate win", func(t *testing.T) {
		// Given: engine X holds 0 and 1, opponent holds 3 and 4
		board := entity.Board{
			x, x, e,
			o, o, e,
			e, e, e,
		}
		engine := NewEngine(x)

		// When: asking for the best move
		move := engine.BestMove(&board)

		// Then: the top row is completed
		assert.Equal(t, 2, move)
	})

	t.Run("Blocks the opponent's two in a row", func(t *testing.T) {
		// Given: opponent O threatens the top row
		board := entity.Board{
			o, o, e,
			e, e, e,
			e, e, e,
		}
		engine := NewEngine(x)

		// When: asking for the best move
		move := engine.BestMove(&board)

		// Then: the threat at 2 is blocked
		assert.Equal(t, 2, move)
	})

	t.Run("Blocks when only the block avoids a loss", func(t *testing.T) {
		// Given: opponent O threatens the top row and engine holds the center
		board := entity.Board{
			o, o, e,
			e, x, e,
			e, e, e,
		}
		engine := NewEngine(x)

		// When: evaluating the position
		move, score := engine.Evaluate(&board)

		// Then: blocking at 2 keeps the game at least drawn
		assert.Equal(t, 2, move)
		assert.GreaterOrEqual(t, score, ScoreDraw)
	})

	t.Run("Lowest index wins the tie on an empty board", func(t *testing.T) {
		// Given: an empty board where every opening draws under perfect play
		board := entity.Board{}
		engine := NewEngine(x)

		// When: evaluating the position
		move, score := engine.Evaluate(&board)

		// Then: the first cell is chosen and the game is a draw
		assert.Equal(t, 0, move)
		assert.Equal(t, ScoreDraw, score)
	})

	t.Run("Works for the O mark as well", func(t *testing.T) {
		// Given: engine O can complete the middle column, blocking at 5 only draws
		board := entity.Board{
			x, o, x,
			x, o, e,
			o, e, x,
		}
		engine := NewEngine(o)

		// When: asking for the best move
		move := engine.BestMove(&board)

		// Then: the engine wins at 7
		assert.Equal(t, 7, move)
	})

	t.Run("Returns NoMove on a decided board", func(t *testing.T) {
		// Given: a board already won by X
		board := entity.Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}
		engine := NewEngine(x)

		// When: asking for the best move
		move := engine.BestMove(&board)

		// Then: there is nothing to play
		assert.Equal(t, NoMove, move)
	})
}

func TestEngine_BestMove_IsDeterministic(t *testing.T) {
	// Given: a mid-game position
	board := entity.Board{
		x, e, e,
		e, o, e,
		e, e, e,
	}
	engine := NewEngine(x)

	// When: asking for the best move several times
	first := engine.BestMove(&board)

	// Then: the answer never changes
	for range 5 {
		require.Equal(t, first, engine.BestMove(&board))
	}
}

func TestEngine_LeavesBoardUntouched(t *testing.T) {
	boards := []entity.Board{
		{},
		{x, e, e, e, o, e, e, e, e},
		{x, x, e, o, o, e, e, e, e},
		{o, x, o, e, x, e, e, e, e},
	}

	for _, board := range boards {
		// Given: a copy of the board before searching
		before := board
		engine := NewEngine(x)

		// When: running the top level search and the evaluator directly
		engine.BestMove(&board)
		engine.value(&board, true)
		engine.value(&board, false)

		// Then: the board is byte for byte the same
		require.Equal(t, before, board)
	}
}

func TestEngine_value(t *testing.T) {
	engine := NewEngine(x)

	t.Run("Engine line scores a win regardless of empty cells", func(t *testing.T) {
		board := entity.Board{
			x, x, x,
			o, o, e,
			e, e, e,
		}

		assert.Equal(t, ScoreWin, engine.value(&board, true))
		assert.Equal(t, ScoreWin, engine.value(&board, false))
	})

	t.Run("Opponent line scores a loss", func(t *testing.T) {
		board := entity.Board{
			o, x, x,
			o, x, e,
			o, e, e,
		}

		assert.Equal(t, ScoreLoss, engine.value(&board, true))
	})

	t.Run("Engine line is checked before the opponent line", func(t *testing.T) {
		// Given: a malformed board where both sides have a line
		board := entity.Board{
			x, x, x,
			o, o, o,
			e, e, e,
		}

		assert.Equal(t, ScoreWin, engine.value(&board, false))
	})

	t.Run("Full board without a winner is a draw", func(t *testing.T) {
		board := entity.Board{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		assert.Equal(t, ScoreDraw, engine.value(&board, true))
	})

	t.Run("Minimizing side finds the opponent's win", func(t *testing.T) {
		// Given: opponent to move with an open top row
		board := entity.Board{
			o, o, e,
			x, x, e,
			x, e, e,
		}

		assert.Equal(t, ScoreLoss, engine.value(&board, false))
	})
}

// playAll walks every legal opponent reply, the engine answering each with BestMove.
func playAll(t *testing.T, engine *Engine, board *entity.Board, engineToMove bool, games *int) {
	t.Helper()

	if board.IsWinner(entity.Opponent(engine.Mark())) {
		require.FailNow(t, "engine lost", "\n%s", board.String())
	}

	if board.IsWinner(engine.Mark()) || board.IsFull() {
		*games++
		return
	}

	if engineToMove {
		move := engine.BestMove(board)
		require.NoError(t, board.ApplyMove(move, engine.Mark()))
		playAll(t, engine, board, false, games)
		board.ClearMove(move)

		return
	}

	for _, cell := range board.EmptyCells() {
		require.NoError(t, board.ApplyMove(cell, entity.Opponent(engine.Mark())))
		playAll(t, engine, board, true, games)
		board.ClearMove(cell)
	}
}

func TestEngine_NeverLoses(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive game walk")
	}

	t.Run("Opponent moves first", func(t *testing.T) {
		board := entity.Board{}
		games := 0

		playAll(t, NewEngine(o), &board, false, &games)

		assert.Positive(t, games)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Engine moves first", func(t *testing.T) {
		board := entity.Board{}
		games := 0

		playAll(t, NewEngine(x), &board, true, &games)

		assert.Positive(t, games)
		assert.Equal(t, entity.Board{}, board)
	})
}
