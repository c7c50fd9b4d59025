package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
)

const (
	// BoardSize - number of mini-boards on the board and of cells on a mini-board.
	BoardSize = 9

	inProgressLiteral = "InProgress"
)

var ErrUnknownStatus = errors.New("unknown status")

// MiniBoardStatus - the zero value is InProgress, which the server sends as null.
type MiniBoardStatus string

const (
	MiniBoardInProgress MiniBoardStatus = ""
	MiniBoardDraw       MiniBoardStatus = "Draw"
	MiniBoardX          MiniBoardStatus = "X"
	MiniBoardO          MiniBoardStatus = "O"
)

func (that MiniBoardStatus) IsTerminal() bool {
	return that != MiniBoardInProgress
}

func (that MiniBoardStatus) String() string {
	if that == MiniBoardInProgress {
		return inProgressLiteral
	}

	return string(that)
}

func (that MiniBoardStatus) MarshalJSON() ([]byte, error) {
	if that == MiniBoardInProgress {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *MiniBoardStatus) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalNullableString(data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal mini-board status: %w", err)
	}

	switch raw {
	case "", inProgressLiteral:
		*that = MiniBoardInProgress
	case string(MiniBoardDraw), string(MiniBoardX), string(MiniBoardO):
		*that = MiniBoardStatus(raw)
	default:
		return fmt.Errorf("%w: mini-board %q", ErrUnknownStatus, raw)
	}

	return nil
}

// BoardStatus - the zero value is InProgress, which the server sends as null.
type BoardStatus string

const (
	BoardInProgress        BoardStatus = ""
	BoardWaitingForPlayers BoardStatus = "WaitingForPlayers"
	BoardPaused            BoardStatus = "Paused"
	BoardX                 BoardStatus = "X"
	BoardO                 BoardStatus = "O"
	BoardDraw              BoardStatus = "Draw"
)

func (that BoardStatus) IsTerminal() bool {
	return that == BoardX || that == BoardO || that == BoardDraw
}

// Winner - the winning marker, None for a draw or an undecided game.
func (that BoardStatus) Winner() Marker {
	switch that {
	case BoardX:
		return MarkerX
	case BoardO:
		return MarkerO
	default:
		return MarkerNone
	}
}

func (that BoardStatus) String() string {
	if that == BoardInProgress {
		return inProgressLiteral
	}

	return string(that)
}

func (that BoardStatus) MarshalJSON() ([]byte, error) {
	if that == BoardInProgress {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *BoardStatus) UnmarshalJSON(data []byte) error {
	raw, err := unmarshalNullableString(data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal board status: %w", err)
	}

	switch raw {
	case "", inProgressLiteral:
		*that = BoardInProgress
	case string(BoardWaitingForPlayers), string(BoardPaused), string(BoardX), string(BoardO), string(BoardDraw):
		*that = BoardStatus(raw)
	default:
		return fmt.Errorf("%w: board %q", ErrUnknownStatus, raw)
	}

	return nil
}

type MiniBoard struct {
	Cells  [BoardSize]Marker `json:"cells"`
	Status MiniBoardStatus   `json:"status"`
}

func (that MiniBoard) IsFull() bool {
	for _, cell := range that.Cells {
		if cell == MarkerNone {
			return false
		}
	}

	return true
}

// Playable - a mini-board still accepts moves while it is undecided and has an empty cell.
func (that MiniBoard) Playable() bool {
	return !that.Status.IsTerminal() && !that.IsFull()
}

type Board struct {
	Boards [BoardSize]MiniBoard `json:"boards"`
	Status BoardStatus          `json:"status"`
}

// NewBoard - an empty board waiting for players, as the server creates it.
func NewBoard() Board {
	return Board{Status: BoardWaitingForPlayers}
}

func (that Board) Cell(move Move) Marker {
	return that.Boards[move.Board].Cells[move.Cell]
}

// MoveConstraint - the mini-board the next mover must play in, or none.
type MoveConstraint struct {
	index int
	set   bool
}

func Unconstrained() MoveConstraint {
	return MoveConstraint{}
}

func ConstrainTo(index int) MoveConstraint {
	return MoveConstraint{index: index, set: true}
}

// Board - the constrained mini-board index; false when any mini-board is allowed.
func (that MoveConstraint) Board() (int, bool) {
	return that.index, that.set
}

func (that MoveConstraint) IsUnconstrained() bool {
	return !that.set
}

func (that MoveConstraint) Allows(index int) bool {
	return !that.set || that.index == index
}

func (that MoveConstraint) String() string {
	if !that.set {
		return "any"
	}

	return fmt.Sprintf("%d", that.index)
}

type Move struct {
	Board int `json:"board"`
	Cell  int `json:"cell"`
}

func (that Move) Validate() error {
	if that.Board < 0 || that.Board >= BoardSize {
		return fmt.Errorf("%w: board %d", apperror.ErrInvalidMove, that.Board)
	}

	if that.Cell < 0 || that.Cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidMove, that.Cell)
	}

	return nil
}

// Score - cumulative wins as reported by the server.
type Score [2]int

func unmarshalNullableString(data []byte) (string, error) {
	if string(data) == "null" {
		return "", nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", err
	}

	return raw, nil
}
