package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
)

func TestModeController_Online(t *testing.T) {
	controller := NewModeController(entity.ModeOnline)

	// Given: the server announces the opponent first, without an id
	_, assigned := controller.Observe(protocol.PlayerUpdate{Action: protocol.PlayerJoined, Player: entity.Player{Marker: entity.MarkerX}})
	assert.False(t, assigned)
	assert.Equal(t, entity.MarkerNone, controller.Local())

	// When: our own join arrives with an id
	player, assigned := controller.Observe(protocol.PlayerUpdate{
		Action: protocol.PlayerJoined,
		Player: entity.Player{ID: "abc", Marker: entity.MarkerO},
	})

	// Then: we are O
	assert.True(t, assigned)
	assert.Equal(t, entity.Player{ID: "abc", Marker: entity.MarkerO}, player)
	assert.Equal(t, entity.MarkerO, controller.Local())
	assert.True(t, controller.ProposedLocally(entity.MarkerO))
	assert.False(t, controller.ProposedLocally(entity.MarkerX))
	assert.True(t, controller.IsSelf(protocol.PlayerUpdate{Player: entity.Player{Marker: entity.MarkerO}}))
	assert.False(t, controller.IsSelf(protocol.PlayerUpdate{Player: entity.Player{Marker: entity.MarkerX}}))

	// And: the same identity again is not a new assignment
	_, assigned = controller.Observe(protocol.PlayerUpdate{
		Action: protocol.PlayerReconnected,
		Player: entity.Player{ID: "abc", Marker: entity.MarkerO},
	})
	assert.False(t, assigned)

	// And: turns do not change who we are
	controller.Observe(protocol.GameUpdate{NextPlayer: entity.MarkerX})
	assert.Equal(t, entity.MarkerO, controller.Local())
}

func TestModeController_Local(t *testing.T) {
	controller := NewModeController(entity.ModeLocal)

	controller.Observe(protocol.GameUpdate{NextPlayer: entity.MarkerX})
	assert.Equal(t, entity.MarkerX, controller.Local())

	controller.Observe(protocol.GameUpdate{NextPlayer: entity.MarkerO})
	assert.Equal(t, entity.MarkerO, controller.Local())

	_, assigned := controller.Observe(protocol.PlayerUpdate{Action: protocol.PlayerJoined, Player: entity.Player{ID: "x", Marker: entity.MarkerX}})
	assert.False(t, assigned)
	assert.True(t, controller.IsLocal(entity.MarkerX))
	assert.True(t, controller.IsLocal(entity.MarkerO))
	assert.False(t, controller.ProposedLocally(entity.MarkerO))
}

func TestModeController_Bot(t *testing.T) {
	controller := NewModeController(entity.ModeBot)

	_, assigned := controller.Observe(protocol.PlayerUpdate{
		Action: protocol.PlayerJoined,
		Player: entity.Player{ID: "me", Marker: entity.MarkerX},
	})

	assert.True(t, assigned)
	assert.Equal(t, entity.MarkerX, controller.Local())
	assert.False(t, controller.IsLocal(entity.MarkerO))
}
