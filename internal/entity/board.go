package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

type Mark string

const (
	Empty   Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

const BoardSize = 9

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid mark")

	// WinCombos - every row, column and diagonal of the grid.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board - 3x3 grid in row-major order: cell i is row i/3, column i%3.
type Board [BoardSize]Mark

// Opponent - returns the other player's mark.
func Opponent(mark Mark) Mark {
	switch mark {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// EmptyCells - returns indices of all empty cells in ascending order.
func (that *Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// ApplyMove - puts mark into the cell, an occupied cell is never overwritten.
func (that *Board) ApplyMove(cell int, mark Mark) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if mark != PlayerX && mark != PlayerO {
		return fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}

	if that[cell] != Empty {
		return apperror.ErrCellOccupied
	}

	that[cell] = mark

	return nil
}

// ClearMove - resets the cell, used to undo a hypothetical move.
func (that *Board) ClearMove(cell int) {
	if cell < 0 || cell >= BoardSize {
		return
	}

	that[cell] = Empty
}

func (that *Board) IsWinner(mark Mark) bool {
	if mark == Empty {
		return false
	}

	for _, combo := range WinCombos {
		if that[combo[0]] == mark && that[combo[1]] == mark && that[combo[2]] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// String - renders the board as three "X | O | -" rows.
func (that *Board) String() string {
	var sb strings.Builder

	for row := 0; row < BoardSize; row += 3 {
		cells := make([]string, 0, 3)
		for _, cell := range that[row : row+3] {
			if cell == Empty {
				cells = append(cells, "-")
				continue
			}
			cells = append(cells, string(cell))
		}

		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}

	return sb.String()
}
