package application

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/tictactoe"
	"github.com/rocketscienceinc/ultimatexo-client/internal/usecase"
)

type mockController struct {
	mock.Mock
}

func (that *mockController) PlayMove(move entity.Move) bool {
	return that.Called(move).Bool(0)
}

func (that *mockController) OfferDraw() bool      { return that.Called().Bool(0) }
func (that *mockController) OfferRematch() bool   { return that.Called().Bool(0) }
func (that *mockController) DismissDraw() bool    { return that.Called().Bool(0) }
func (that *mockController) DismissRematch() bool { return that.Called().Bool(0) }
func (that *mockController) Resign() bool         { return that.Called().Bool(0) }

func (that *mockController) AnswerDraw(accept bool) bool {
	return that.Called(accept).Bool(0)
}

func (that *mockController) AnswerRematch(accept bool) bool {
	return that.Called(accept).Bool(0)
}

func (that *mockController) Say(text string) bool {
	return that.Called(text).Bool(0)
}

func (that *mockController) SubmitPassword(ctx context.Context, password string) error {
	return that.Called(ctx, password).Error(0)
}

func (that *mockController) Reconnect(ctx context.Context) error {
	return that.Called(ctx).Error(0)
}

func (that *mockController) Leave(ctx context.Context) error {
	return that.Called(ctx).Error(0)
}

func (that *mockController) Snapshot() usecase.Snapshot {
	return that.Called().Get(0).(usecase.Snapshot) //nolint:forcetypeassert // test double
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("Move is parsed and played", func(t *testing.T) {
		session := &mockController{}
		session.On("PlayMove", entity.Move{Board: 4, Cell: 8}).Return(true).Once()

		quit, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "move 4 8")

		require.NoError(t, err)
		assert.False(t, quit)
		session.AssertExpectations(t)
	})

	t.Run("Rejected move is reported", func(t *testing.T) {
		session := &mockController{}
		session.On("PlayMove", entity.Move{Board: 0, Cell: 0}).Return(false).Once()

		_, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "m 0 0")

		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("Move outside the board never reaches the session", func(t *testing.T) {
		session := &mockController{}

		_, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "move 9 0")
		assert.ErrorIs(t, err, apperror.ErrInvalidMove)

		_, err = Execute(ctx, session, NewConsole(&bytes.Buffer{}), "move a 0")
		assert.ErrorIs(t, err, ErrBadArguments)

		session.AssertNotCalled(t, "PlayMove", mock.Anything)
	})

	t.Run("Answers route to the right offer", func(t *testing.T) {
		session := &mockController{}
		session.On("AnswerDraw", true).Return(true).Once()
		session.On("AnswerRematch", false).Return(true).Once()

		_, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "accept draw")
		require.NoError(t, err)

		_, err = Execute(ctx, session, NewConsole(&bytes.Buffer{}), "decline rematch")
		require.NoError(t, err)

		_, err = Execute(ctx, session, NewConsole(&bytes.Buffer{}), "accept undo")
		assert.ErrorIs(t, err, ErrBadArguments)

		session.AssertExpectations(t)
	})

	t.Run("Say keeps the text after the command", func(t *testing.T) {
		session := &mockController{}
		session.On("Say", "good  game").Return(true).Once()

		_, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "  say good  game ")

		require.NoError(t, err)
		session.AssertExpectations(t)
	})

	t.Run("Leave and quit stop the loop", func(t *testing.T) {
		session := &mockController{}
		session.On("Leave", ctx).Return(nil).Once()

		quit, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "leave")
		require.NoError(t, err)
		assert.True(t, quit)

		quit, err = Execute(ctx, session, NewConsole(&bytes.Buffer{}), "quit")
		require.NoError(t, err)
		assert.True(t, quit)

		session.AssertExpectations(t)
	})

	t.Run("Blank and unknown input", func(t *testing.T) {
		session := &mockController{}

		quit, err := Execute(ctx, session, NewConsole(&bytes.Buffer{}), "   ")
		require.NoError(t, err)
		assert.False(t, quit)

		_, err = Execute(ctx, session, NewConsole(&bytes.Buffer{}), "castle")
		assert.ErrorIs(t, err, ErrUnknownCommand)
	})
}

func TestConsole_SessionChanged(t *testing.T) {
	// Given: a console and one snapshot
	out := &bytes.Buffer{}
	console := NewConsole(out)

	snapshot := usecase.Snapshot{
		Status: usecase.StatusView{Status: entity.StatusConnected, Message: usecase.MessageConnected},
		Game:   tictactoe.NewGameState(),
		Draw:   entity.NegotiationRequested,
	}

	// When: the same snapshot is observed twice
	console.SessionChanged(snapshot)
	console.SessionChanged(snapshot)

	// Then: it is printed once
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "connected (Connected) | draw requested", lines[0])
}

func TestRenderBoard(t *testing.T) {
	board := entity.NewBoard()
	board.Boards[0].Cells[0] = entity.MarkerX
	board.Boards[8].Cells[8] = entity.MarkerO

	rows := strings.Split(strings.TrimRight(RenderBoard(board), "\n"), "\n")

	require.Len(t, rows, 11)
	assert.Equal(t, "X - - | - - - | - - -", rows[0])
	assert.Equal(t, "------+-------+------", rows[3])
	assert.Equal(t, "- - - | - - - | - - O", rows[10])
}
