package entity

import (
	"testing"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken(t *testing.T) {
	t.Run("Token matches the room it was issued in", func(t *testing.T) {
		// Given: a token for room 42
		token, err := NewSessionToken("42", "abc")
		require.NoError(t, err)

		// Then: it matches room 42 only
		assert.True(t, token.Matches("42"))
		assert.False(t, token.Matches("7"))
	})

	t.Run("Token without player id is invalid", func(t *testing.T) {
		_, err := NewSessionToken("42", "")

		assert.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("Zero token matches nothing", func(t *testing.T) {
		assert.False(t, SessionToken{}.Matches(""))
	})
}

func TestParseMode(t *testing.T) {
	t.Run("Known modes map to room types", func(t *testing.T) {
		local, err := ParseMode("local")
		require.NoError(t, err)
		bot, err := ParseMode("bot")
		require.NoError(t, err)
		online, err := ParseMode("")
		require.NoError(t, err)

		assert.Equal(t, RoomLocal, local.RoomType())
		assert.Equal(t, RoomBot, bot.RoomType())
		assert.Equal(t, RoomStandard, online.RoomType())
	})

	t.Run("Unknown mode is rejected", func(t *testing.T) {
		_, err := ParseMode("hotseat")

		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}
