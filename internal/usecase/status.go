package usecase

import (
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
)

const (
	MessageConnected          = "Connected"
	MessageReconnected        = "Reconnected"
	MessagePlayerJoined       = "Player joined"
	MessagePlayerReconnected  = "Player reconnected"
	MessageOpponentLeft       = "Opponent left"
	MessageOpponentDisconnect = "Opponent disconnected"
	MessageCannotConnect      = "Cannot connect"
	MessageInvalidPassword    = "Invalid password"
	MessagePasswordRequired   = "Password required"
	MessageRoomNotFound       = "Room not found"
)

// StatusView - what the presentation layer shows about the session.
type StatusView struct {
	Status  entity.SessionStatus
	Message string
}

// StatusMachine - the session status. Not safe for concurrent use.
type StatusMachine struct {
	view StatusView
	// gated - the room is protected and the server has not admitted us yet.
	gated bool
}

func NewStatusMachine() *StatusMachine {
	return &StatusMachine{view: StatusView{Status: entity.StatusConnecting}}
}

func (that *StatusMachine) View() StatusView {
	return that.view
}

func (that *StatusMachine) Connecting() {
	that.gated = false
	that.set(entity.StatusConnecting, "")
}

func (that *StatusMachine) RoomNotFound() {
	that.gated = false
	that.set(entity.StatusNotFound, MessageRoomNotFound)
}

// PasswordRequired - the room is protected and no password was given yet.
func (that *StatusMachine) PasswordRequired() {
	that.gated = true
	that.set(entity.StatusAuthRequired, MessagePasswordRequired)
}

// PasswordRejected - wrong password, either from the HTTP check or the server.
func (that *StatusMachine) PasswordRejected() {
	that.gated = true
	that.set(entity.StatusAuthFailed, MessageInvalidPassword)
}

// PasswordSubmitted - a password is on its way; the gate stays until admission.
func (that *StatusMachine) PasswordSubmitted() {
	that.gated = true
	that.set(entity.StatusAuthRequired, MessagePasswordRequired)
}

func (that *StatusMachine) TransportOpened() {
	if that.gated {
		return
	}

	that.set(entity.StatusConnected, "")
}

func (that *StatusMachine) TransportClosed() {
	switch that.view.Status {
	case entity.StatusAuthFailed, entity.StatusInternalError, entity.StatusNotFound:
		return
	}

	that.set(entity.StatusDisconnected, MessageCannotConnect)
}

// PlayerUpdate - self tells whether the update is about the local player.
// Any player update means the server admitted us.
func (that *StatusMachine) PlayerUpdate(action protocol.PlayerAction, self bool) {
	that.gated = false

	if self {
		switch action {
		case protocol.PlayerJoined:
			that.set(entity.StatusConnected, MessageConnected)
		case protocol.PlayerReconnected:
			that.set(entity.StatusConnected, MessageReconnected)
		}

		return
	}

	switch action {
	case protocol.PlayerJoined:
		that.set(entity.StatusConnected, MessagePlayerJoined)
	case protocol.PlayerReconnected:
		that.set(entity.StatusConnected, MessagePlayerReconnected)
	case protocol.PlayerLeft:
		that.set(entity.StatusOpponentLeft, MessageOpponentLeft)
	case protocol.PlayerDisconnected:
		that.set(entity.StatusDisconnected, MessageOpponentDisconnect)
	}
}

func (that *StatusMachine) ServerError(serverErr protocol.ServerError) {
	if serverErr.IsInvalidPassword() {
		that.PasswordRejected()
		return
	}

	that.set(entity.StatusInternalError, serverErr.Message)
}

func (that *StatusMachine) set(status entity.SessionStatus, message string) {
	that.view = StatusView{Status: status, Message: message}
}
