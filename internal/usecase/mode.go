package usecase

import (
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
)

// ModeController - who "me" is. Online and Bot learn it from the server, Local follows the turn.
type ModeController struct {
	mode     entity.Mode
	identity entity.Player
	turn     entity.Marker
}

func NewModeController(mode entity.Mode) *ModeController {
	return &ModeController{mode: mode}
}

func (that *ModeController) Mode() entity.Mode {
	return that.mode
}

// Observe - returns the assigned identity the first time the server names us.
func (that *ModeController) Observe(event protocol.Event) (entity.Player, bool) {
	switch event := event.(type) {
	case protocol.GameUpdate:
		that.turn = event.NextPlayer
	case protocol.PlayerUpdate:
		if that.mode == entity.ModeLocal || event.Player.ID == "" {
			return entity.Player{}, false
		}

		if event.Action != protocol.PlayerJoined && event.Action != protocol.PlayerReconnected {
			return entity.Player{}, false
		}

		if that.identity.ID == event.Player.ID && that.identity.Marker == event.Player.Marker {
			return entity.Player{}, false
		}

		that.identity = event.Player

		return that.identity, true
	}

	return entity.Player{}, false
}

// Local - the marker the local keyboard plays right now.
func (that *ModeController) Local() entity.Marker {
	if that.mode == entity.ModeLocal {
		return that.turn
	}

	return that.identity.Marker
}

// Identity - the server-assigned player, empty until assigned and always in Local mode.
func (that *ModeController) Identity() entity.Player {
	return that.identity
}

func (that *ModeController) IsLocal(marker entity.Marker) bool {
	if marker.IsNone() {
		return false
	}

	if that.mode == entity.ModeLocal {
		return true
	}

	return marker == that.identity.Marker
}

// IsSelf - whether a PlayerUpdate concerns the local player.
func (that *ModeController) IsSelf(update protocol.PlayerUpdate) bool {
	if that.mode == entity.ModeLocal {
		return true
	}

	if update.Player.ID != "" {
		return true
	}

	return !that.identity.Marker.IsNone() && update.Player.Marker == that.identity.Marker
}

// ProposedLocally - whether an offer came from this side of the wire.
// In Local mode the answering seat sits at the same keyboard, so it must still answer.
func (that *ModeController) ProposedLocally(proposer entity.Marker) bool {
	if that.mode == entity.ModeLocal {
		return false
	}

	return !proposer.IsNone() && proposer == that.identity.Marker
}

// Reset - a new connection may reassign markers.
func (that *ModeController) Reset() {
	that.turn = entity.MarkerNone
}
