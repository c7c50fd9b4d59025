// Package tictactoe mirrors the server's Ultimate XO game state. The server is
// authoritative: the reducer only replaces state with what it receives, and the
// move check here decides what a client may offer to send, nothing more.
package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
)

type GameState struct {
	Board      entity.Board
	Constraint entity.MoveConstraint
	LastMove   *entity.Move
	Turn       entity.Marker
	Score      entity.Score
	// Synced - at least one GameUpdate was applied.
	Synced bool
}

// NewGameState - state before the first GameUpdate of a connection.
func NewGameState() GameState {
	return GameState{
		Board:      entity.NewBoard(),
		Constraint: entity.Unconstrained(),
	}
}

// Apply - GameUpdate replaces the whole state; every other event leaves it untouched.
func Apply(state GameState, event protocol.Event) GameState {
	update, ok := event.(protocol.GameUpdate)
	if !ok {
		return state
	}

	next := GameState{
		Board:      update.Board,
		Constraint: update.NextBoard,
		Turn:       update.NextPlayer,
		Score:      update.Score,
		Synced:     true,
	}

	if update.LastMove != nil {
		lastMove := *update.LastMove
		next.LastMove = &lastMove
	}

	return next
}

// ValidateMove - checks whether mover may play move in state.
func ValidateMove(state GameState, mover entity.Marker, move entity.Move) error {
	if err := move.Validate(); err != nil {
		return err
	}

	if !state.Synced {
		return apperror.ErrGameNotStarted
	}

	switch status := state.Board.Status; {
	case status.IsTerminal():
		return apperror.ErrGameFinished
	case status == entity.BoardWaitingForPlayers, status == entity.BoardPaused:
		return fmt.Errorf("%w: board is %s", apperror.ErrGameNotStarted, status)
	}

	if mover.IsNone() || state.Turn != mover {
		return apperror.ErrNotYourTurn
	}

	mini := state.Board.Boards[move.Board]
	if mini.Status.IsTerminal() {
		return fmt.Errorf("%w: mini-board %d", apperror.ErrBoardClosed, move.Board)
	}

	if !state.Constraint.Allows(move.Board) {
		return fmt.Errorf("%w: must play in %s", apperror.ErrWrongBoard, state.Constraint)
	}

	if mini.Cells[move.Cell] != entity.MarkerNone {
		return apperror.ErrCellOccupied
	}

	return nil
}

// CanPlay - whether a cell should be offered as clickable.
func CanPlay(state GameState, mover entity.Marker, move entity.Move) bool {
	return ValidateMove(state, mover, move) == nil
}

// PlayableBoards - mini-board indices the next mover may target.
func PlayableBoards(state GameState) []int {
	boards := make([]int, 0, entity.BoardSize)
	for i, mini := range state.Board.Boards {
		if mini.Playable() && state.Constraint.Allows(i) {
			boards = append(boards, i)
		}
	}

	return boards
}
