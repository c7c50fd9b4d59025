package entity

import (
	"fmt"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
)

// Player - ID is empty for the opponent's view and in local rooms.
type Player struct {
	ID     string `json:"id,omitempty"`
	Marker Marker `json:"marker"`
}

// SessionToken - the identity a client needs to resume its seat in a room.
type SessionToken struct {
	RoomID   string `json:"room_id"`
	PlayerID string `json:"player_id"`
}

func NewSessionToken(roomID, playerID string) (SessionToken, error) {
	token := SessionToken{RoomID: roomID, PlayerID: playerID}
	if err := token.Validate(); err != nil {
		return SessionToken{}, err
	}

	return token, nil
}

func (that SessionToken) Validate() error {
	if that.RoomID == "" {
		return fmt.Errorf("%w: room id is empty", apperror.ErrInvalidToken)
	}

	if that.PlayerID == "" {
		return fmt.Errorf("%w: player id is empty", apperror.ErrInvalidToken)
	}

	return nil
}

// Matches - a token is only good for the room it was issued in.
func (that SessionToken) Matches(roomID string) bool {
	return that.Validate() == nil && that.RoomID == roomID
}
