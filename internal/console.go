package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/usecase"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad arguments")
	ErrNotAllowed     = errors.New("not allowed right now")
)

type controller interface {
	PlayMove(move entity.Move) bool
	OfferDraw() bool
	OfferRematch() bool
	AnswerDraw(accept bool) bool
	AnswerRematch(accept bool) bool
	DismissDraw() bool
	DismissRematch() bool
	Resign() bool
	Say(text string) bool
	SubmitPassword(ctx context.Context, password string) error
	Reconnect(ctx context.Context) error
	Leave(ctx context.Context) error
	Snapshot() usecase.Snapshot
}

// Console - prints session changes and chat as plain lines.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	last string
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// SessionChanged - prints a summary line only when it differs from the previous one.
func (that *Console) SessionChanged(snapshot usecase.Snapshot) {
	line := Summary(snapshot)

	that.mu.Lock()
	defer that.mu.Unlock()

	if line == that.last {
		return
	}

	that.last = line
	fmt.Fprintln(that.out, line)
}

func (that *Console) Chat(message entity.ChatMessage) {
	that.Println(fmt.Sprintf("[%s] %s", message.Player, message.Content))
}

func (that *Console) Println(line string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	fmt.Fprintln(that.out, line)
}

// Summary - one line with status, turn, constraint, score and pending offers.
func Summary(snapshot usecase.Snapshot) string {
	var builder strings.Builder

	builder.WriteString(snapshot.Status.Status.String())
	if snapshot.Status.Message != "" {
		fmt.Fprintf(&builder, " (%s)", snapshot.Status.Message)
	}

	if snapshot.Game.Synced {
		fmt.Fprintf(&builder, " | game %s | turn %s | you %s | board %s | score %d:%d",
			snapshot.Game.Board.Status,
			snapshot.Game.Turn,
			snapshot.Local,
			snapshot.Game.Constraint,
			snapshot.Game.Score[0], snapshot.Game.Score[1],
		)
	}

	if snapshot.Draw != entity.NegotiationNone {
		fmt.Fprintf(&builder, " | draw %s", snapshot.Draw)
	}

	if snapshot.Rematch != entity.NegotiationNone {
		fmt.Fprintf(&builder, " | rematch %s", snapshot.Rematch)
	}

	return builder.String()
}

// RenderBoard - the 9x9 grid, mini-boards numbered left to right, top to bottom.
func RenderBoard(board entity.Board) string {
	var builder strings.Builder

	for row := range entity.BoardSize {
		if row > 0 && row%3 == 0 {
			builder.WriteString("------+-------+------\n")
		}

		for col := range entity.BoardSize {
			if col > 0 && col%3 == 0 {
				builder.WriteString("| ")
			}

			index := (row/3)*3 + col/3
			cell := (row%3)*3 + col%3
			builder.WriteString(board.Boards[index].Cells[cell].String())

			if col < entity.BoardSize-1 {
				builder.WriteByte(' ')
			}
		}

		builder.WriteByte('\n')
	}

	return builder.String()
}

// Execute - runs one input line against the session. quit is true for quit and leave.
func Execute(ctx context.Context, session controller, console *Console, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "move", "m":
		move, err := parseMove(args)
		if err != nil {
			return false, err
		}

		return false, allowed(session.PlayMove(move))
	case "draw":
		return false, allowed(session.OfferDraw())
	case "rematch":
		return false, allowed(session.OfferRematch())
	case "accept", "decline":
		return false, answer(session, name == "accept", args)
	case "dismiss":
		return false, allowed(session.DismissDraw() || session.DismissRematch())
	case "resign":
		return false, allowed(session.Resign())
	case "say":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		return false, allowed(session.Say(text))
	case "password":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: password <value>", ErrBadArguments)
		}

		return false, session.SubmitPassword(ctx, args[0])
	case "reconnect":
		return false, session.Reconnect(ctx)
	case "board":
		console.Println(RenderBoard(session.Snapshot().Game.Board))
		return false, nil
	case "status":
		console.Println(Summary(session.Snapshot()))
		return false, nil
	case "leave":
		return true, session.Leave(ctx)
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
}

func answer(session controller, accept bool, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: accept|decline draw|rematch", ErrBadArguments)
	}

	switch strings.ToLower(args[0]) {
	case "draw":
		return allowed(session.AnswerDraw(accept))
	case "rematch":
		return allowed(session.AnswerRematch(accept))
	default:
		return fmt.Errorf("%w: unknown offer %q", ErrBadArguments, args[0])
	}
}

func parseMove(args []string) (entity.Move, error) {
	if len(args) != 2 {
		return entity.Move{}, fmt.Errorf("%w: move <board> <cell>", ErrBadArguments)
	}

	board, err := strconv.Atoi(args[0])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: board %q", ErrBadArguments, args[0])
	}

	cell, err := strconv.Atoi(args[1])
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: cell %q", ErrBadArguments, args[1])
	}

	move := entity.Move{Board: board, Cell: cell}
	if err = move.Validate(); err != nil {
		return entity.Move{}, err
	}

	return move, nil
}

func allowed(ok bool) error {
	if !ok {
		return ErrNotAllowed
	}

	return nil
}
