package protocol

import (
	"fmt"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

// Command - an outbound frame. Values are built with the constructors below only.
type Command interface {
	Name() string
	frame() any
}

// answer - the subset of offer actions a client may send.
type answer string

const (
	answerRequest answer = "Request"
	answerAccept  answer = "Accept"
	answerDecline answer = "Decline"
)

type actionPayload struct {
	Action answer `json:"action"`
}

type moveCommand struct {
	move entity.Move
}

// PlayMove - fails for coordinates outside the board.
func PlayMove(move entity.Move) (Command, error) {
	if err := move.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build move command: %w", err)
	}

	return moveCommand{move: move}, nil
}

func (that moveCommand) Name() string { return "move" }

func (that moveCommand) frame() any {
	return map[string]any{
		TagGameUpdate: map[string][2]int{"mv": {that.move.Board, that.move.Cell}},
	}
}

type rematchCommand struct {
	action answer
}

func ProposeRematch() Command { return rematchCommand{action: answerRequest} }
func AcceptRematch() Command  { return rematchCommand{action: answerAccept} }
func DeclineRematch() Command { return rematchCommand{action: answerDecline} }

func (that rematchCommand) Name() string { return "rematch:" + string(that.action) }

func (that rematchCommand) frame() any {
	return map[string]actionPayload{TagRematchRequest: {Action: that.action}}
}

type drawCommand struct {
	action answer
}

func ProposeDraw() Command { return drawCommand{action: answerRequest} }
func AcceptDraw() Command  { return drawCommand{action: answerAccept} }
func DeclineDraw() Command { return drawCommand{action: answerDecline} }

func (that drawCommand) Name() string { return "draw:" + string(that.action) }

func (that drawCommand) frame() any {
	return map[string]actionPayload{TagDrawRequest: {Action: that.action}}
}

type resignCommand struct{}

func Resign() Command { return resignCommand{} }

func (resignCommand) Name() string { return "resign" }
func (resignCommand) frame() any   { return tagResign }

type chatCommand struct {
	content string
}

func Chat(content string) Command { return chatCommand{content: content} }

func (that chatCommand) Name() string { return "chat" }

func (that chatCommand) frame() any {
	return map[string]map[string]string{TagTextMessage: {"content": that.content}}
}

type pongCommand struct{}

func Pong() Command { return pongCommand{} }

func (pongCommand) Name() string { return "pong" }
func (pongCommand) frame() any   { return tagPong }
