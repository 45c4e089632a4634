package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ScoreWin  = 1
	ScoreDraw = 0
	ScoreLoss = -1

	// NoMove - returned by BestMove when the board is full or already decided.
	NoMove = -1
)

// Engine - plain minimax over the full game tree, no pruning and no caching.
type Engine struct {
	mark     entity.Mark
	opponent entity.Mark
}

func NewEngine(mark entity.Mark) *Engine {
	return &Engine{
		mark:     mark,
		opponent: entity.Opponent(mark),
	}
}

func (that *Engine) Mark() entity.Mark {
	return that.mark
}

// BestMove - returns the cell the engine should play, ties go to the lowest index.
func (that *Engine) BestMove(board *entity.Board) int {
	move, _ := that.Evaluate(board)
	return move
}

// Evaluate - returns the best cell for the engine together with its minimax score.
// The board is left exactly as it was passed in.
func (that *Engine) Evaluate(board *entity.Board) (int, int) {
	if that.isTerminal(board) {
		return NoMove, that.value(board, true)
	}

	bestMove, bestScore := NoMove, math.MinInt
	for _, cell := range board.EmptyCells() {
		score := that.explore(board, cell, that.mark, false)
		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove, bestScore
}

// value - minimax score of the position, checked in order: engine line, opponent line, full board.
func (that *Engine) value(board *entity.Board, maximizing bool) int {
	switch {
	case board.IsWinner(that.mark):
		return ScoreWin
	case board.IsWinner(that.opponent):
		return ScoreLoss
	case board.IsFull():
		return ScoreDraw
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			best = max(best, that.explore(board, cell, that.mark, false))
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range board.EmptyCells() {
		best = min(best, that.explore(board, cell, that.opponent, true))
	}
	return best
}

// explore - plays mark into cell, scores the continuation and always takes the move back.
func (that *Engine) explore(board *entity.Board, cell int, mark entity.Mark, maximizing bool) int {
	if err := board.ApplyMove(cell, mark); err != nil {
		panic(fmt.Errorf("search tried an illegal move: %w", err))
	}
	defer board.ClearMove(cell)

	return that.value(board, maximizing)
}

func (that *Engine) isTerminal(board *entity.Board) bool {
	return board.IsWinner(that.mark) || board.IsWinner(that.opponent) || board.IsFull()
}
