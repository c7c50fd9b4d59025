// Package protocol encodes client commands and decodes server frames of the
// room websocket. Both sides are closed sets: Event and Command can only be
// implemented inside this package.
package protocol

import "github.com/rocketscienceinc/ultimatexo-client/internal/entity"

const (
	TagGameUpdate     = "GameUpdate"
	TagPlayerUpdate   = "PlayerUpdate"
	TagRematchRequest = "RematchRequest"
	TagDrawRequest    = "DrawRequest"
	TagTextMessage    = "TextMessage"
	TagError          = "Error"
	TagPing           = "Ping"

	tagPingLegacy  = "PING"
	tagGameRestart = "GameRestart"
	tagResign      = "Resign"
	tagPong        = "Pong"
)

// Event - a decoded server frame.
type Event interface {
	Tag() string
	isEvent()
}

// GameUpdate - full authoritative game state; it replaces, never patches.
type GameUpdate struct {
	Board      entity.Board
	NextPlayer entity.Marker
	NextBoard  entity.MoveConstraint
	LastMove   *entity.Move
	Score      entity.Score
}

type PlayerAction string

const (
	PlayerJoined       PlayerAction = "Joined"
	PlayerLeft         PlayerAction = "Left"
	PlayerDisconnected PlayerAction = "Disconnected"
	PlayerReconnected  PlayerAction = "Reconnected"
)

// PlayerUpdate - Player.ID is only present when the update concerns the receiver.
type PlayerUpdate struct {
	Action PlayerAction
	Player entity.Player
}

// OfferAction - a step of the draw or rematch sub-protocol as broadcast by the server.
type OfferAction string

const (
	OfferSent    OfferAction = "Sent"
	OfferRequest OfferAction = "Request"
	OfferAccept  OfferAction = "Accept"
	OfferDecline OfferAction = "Decline"
)

// IsProposal - both Sent and Request open an offer; the proposer decides which side waits.
func (that OfferAction) IsProposal() bool {
	return that == OfferSent || that == OfferRequest
}

type RematchRequest struct {
	Action OfferAction
	Player entity.Marker
}

type DrawRequest struct {
	Action OfferAction
	Player entity.Marker
}

type TextMessage struct {
	Content string
	Player  entity.Marker
}

// InvalidPasswordError - the literal the server uses to reject a room password.
const InvalidPasswordError = "InvalidPassword"

type ServerError struct {
	Message string
}

func (that ServerError) IsInvalidPassword() bool {
	return that.Message == InvalidPasswordError
}

type Ping struct{}

func (GameUpdate) Tag() string     { return TagGameUpdate }
func (PlayerUpdate) Tag() string   { return TagPlayerUpdate }
func (RematchRequest) Tag() string { return TagRematchRequest }
func (DrawRequest) Tag() string    { return TagDrawRequest }
func (TextMessage) Tag() string    { return TagTextMessage }
func (ServerError) Tag() string    { return TagError }
func (Ping) Tag() string           { return TagPing }

func (GameUpdate) isEvent()     {}
func (PlayerUpdate) isEvent()   {}
func (RematchRequest) isEvent() {}
func (DrawRequest) isEvent()    {}
func (TextMessage) isEvent()    {}
func (ServerError) isEvent()    {}
func (Ping) isEvent()           {}
