package entity

import (
	"fmt"

	"github.com/glbessa/TicTacToeBackend/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	ResultDraw = "draw"

	EmptyCell = ""
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is the 3x3 grid in row-major order. Cells hold PlayerX, PlayerO or
// EmptyCell and are written at most once.
type Board [9]string

// MakeMove - places mark on the given cell.
func (that *Board) MakeMove(cell int, mark string) error {
	if cell < 0 || cell >= len(that) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOutOfRange, cell)
	}

	if that[cell] != EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	that[cell] = mark

	return nil
}

// Evaluate - returns the mark holding a completed triple, ResultDraw when the
// board is full, or an empty string while the game is still open.
func (that *Board) Evaluate() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range that {
		if cell == EmptyCell {
			return ""
		}
	}

	return ResultDraw
}
