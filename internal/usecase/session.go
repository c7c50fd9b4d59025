package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
	"github.com/rocketscienceinc/ultimatexo-client/internal/tictactoe"
	"github.com/rocketscienceinc/ultimatexo-client/internal/transport/websocket"
)

const rememberTimeout = 5 * time.Second

// Connector - one room socket, see websocket.Connector.
type Connector interface {
	Subscribe(fn func(websocket.Signal)) func()
	Connect(ctx context.Context, roomID string, params websocket.ResumeParams) error
	Send(cmd protocol.Command) error
	Close() error
}

// ConnectorFactory - a fresh connector per connection attempt.
type ConnectorFactory func() Connector

type roomClient interface {
	GetRoom(ctx context.Context, roomID string) (entity.RoomInfo, error)
	VerifyPassword(ctx context.Context, roomID, password string) (bool, error)
}

// Observer - receives a snapshot after every change. Called outside the session lock.
type Observer interface {
	SessionChanged(snapshot Snapshot)
}

type ChatSink interface {
	Chat(message entity.ChatMessage)
}

type SessionOptions struct {
	Mode          entity.Mode
	DrawPolicy    NegotiationPolicy
	RematchPolicy NegotiationPolicy
	// ChatHistory - lines kept in the snapshot, 0 keeps everything.
	ChatHistory int
	Observer    Observer
	ChatSink    ChatSink
}

// Snapshot - an immutable copy of the session for the presentation layer.
type Snapshot struct {
	ID       string
	RoomID   string
	Room     entity.RoomInfo
	Mode     entity.Mode
	Status   StatusView
	Game     tictactoe.GameState
	Local    entity.Marker
	Identity entity.Player
	Draw     entity.NegotiationState
	Rematch  entity.NegotiationState
	Chat     []entity.ChatMessage
}

// Session - one room session. Every signal, timer and user intent is handled under one lock,
// so events of a connection are applied strictly one at a time and in order.
type Session struct {
	id           string
	logger       *slog.Logger
	newConnector ConnectorFactory
	rooms        roomClient
	reconnection *ReconnectionManager
	options      SessionOptions

	mu          sync.Mutex
	closed      bool
	roomID      string
	password    string
	room        entity.RoomInfo
	connector   Connector
	unsubscribe func()
	generation  uint64
	timers      map[*time.Timer]struct{}

	game    tictactoe.GameState
	mode    *ModeController
	status  *StatusMachine
	draw    *Negotiation
	rematch *Negotiation
	chat    []entity.ChatMessage
}

func NewSession(
	logger *slog.Logger,
	newConnector ConnectorFactory,
	rooms roomClient,
	reconnection *ReconnectionManager,
	options SessionOptions,
) *Session {
	id := uuid.NewString()

	return &Session{
		id:           id,
		logger:       logger.With("component", "session", "session", id),
		newConnector: newConnector,
		rooms:        rooms,
		reconnection: reconnection,
		options:      options,
		timers:       make(map[*time.Timer]struct{}),
		game:         tictactoe.NewGameState(),
		mode:         NewModeController(options.Mode),
		status:       NewStatusMachine(),
		draw:         NewNegotiation(OfferDraw, options.DrawPolicy),
		rematch:      NewNegotiation(OfferRematch, options.RematchPolicy),
	}
}

func (that *Session) ID() string {
	return that.id
}

// Enter - checks the room over HTTP and opens the socket when nothing blocks it.
// Room and password problems end up in the status, not in the returned error.
func (that *Session) Enter(ctx context.Context, roomID, password string) error {
	log := that.logger.With("method", "Enter", "room_id", roomID)

	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return apperror.ErrSessionClosed
	}

	that.roomID = roomID
	that.password = password
	that.status.Connecting()
	that.mu.Unlock()
	that.notify()

	room, err := that.rooms.GetRoom(ctx, roomID)
	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		log.Info("room does not exist")
		that.update(func() { that.status.RoomNotFound() })

		return nil
	case err != nil:
		log.Warn("failed to check room", "error", err)
		that.update(func() { that.status.TransportClosed() })

		return nil
	}

	that.mu.Lock()
	that.room = room
	that.mu.Unlock()

	_, resumable := that.reconnection.Resume(ctx, roomID)

	if room.IsProtected && !resumable {
		if password == "" {
			log.Info("room is protected, waiting for a password")
			that.update(func() { that.status.PasswordRequired() })

			return nil
		}

		valid, verifyErr := that.rooms.VerifyPassword(ctx, roomID, password)
		switch {
		case verifyErr != nil:
			// the server rejects a wrong password on the socket as well
			log.Warn("failed to verify password, leaving it to the socket", "error", verifyErr)
		case !valid:
			log.Info("password rejected")
			that.update(func() { that.status.PasswordRejected() })

			return nil
		}

		that.update(func() { that.status.PasswordSubmitted() })
	}

	return that.open(ctx)
}

// SubmitPassword - retries entering the current room with a password.
func (that *Session) SubmitPassword(ctx context.Context, password string) error {
	that.mu.Lock()
	roomID := that.roomID
	that.mu.Unlock()

	if roomID == "" {
		return fmt.Errorf("failed to submit password: %w", apperror.ErrNotConnected)
	}

	return that.Enter(ctx, roomID, password)
}

// Reconnect - a manual retry after Disconnected; the new socket resumes our seat.
func (that *Session) Reconnect(ctx context.Context) error {
	that.mu.Lock()
	roomID, password := that.roomID, that.password
	that.mu.Unlock()

	if roomID == "" {
		return fmt.Errorf("failed to reconnect: %w", apperror.ErrNotConnected)
	}

	return that.Enter(ctx, roomID, password)
}

func (that *Session) open(ctx context.Context) error {
	log := that.logger.With("method", "open")

	that.mu.Lock()
	roomID := that.roomID
	params := websocket.ResumeParams{Password: that.password}
	that.mu.Unlock()

	if token, ok := that.reconnection.Resume(ctx, roomID); ok {
		params.PlayerID = token.PlayerID
		params.Reconnecting = true
	}

	connector := that.newConnector()

	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return apperror.ErrSessionClosed
	}

	that.generation++
	generation := that.generation

	previous, previousUnsubscribe := that.connector, that.unsubscribe
	that.connector = connector
	that.unsubscribe = connector.Subscribe(func(signal websocket.Signal) {
		that.handleSignal(generation, signal)
	})

	that.game = tictactoe.NewGameState()
	that.draw.Reset()
	that.rematch.Reset()
	that.mode.Reset()
	that.stopTimers()
	that.mu.Unlock()

	that.release(previous, previousUnsubscribe)

	log.Info("connecting", "room_id", roomID, "reconnecting", params.Reconnecting)

	if err := connector.Connect(ctx, roomID, params); err != nil {
		log.Warn("failed to start connection", "error", err)
		that.update(func() { that.status.TransportClosed() })
	}

	return nil
}

func (that *Session) handleSignal(generation uint64, signal websocket.Signal) {
	log := that.logger.With("method", "handleSignal")

	var (
		assigned entity.Player
		remember bool
		chat     *entity.ChatMessage
	)

	that.mu.Lock()
	if that.closed || generation != that.generation {
		that.mu.Unlock()
		return
	}

	switch signal := signal.(type) {
	case websocket.Opened:
		that.status.TransportOpened()
	case websocket.Closed:
		log.Info("connection closed", "error", signal.Err)
		that.status.TransportClosed()
	case websocket.Received:
		assigned, remember, chat = that.dispatch(signal.Event)
	}

	roomID := that.roomID
	that.mu.Unlock()

	if remember {
		ctx, cancel := context.WithTimeout(context.Background(), rememberTimeout)
		if err := that.reconnection.Remember(ctx, roomID, assigned.ID); err != nil {
			log.Warn("failed to remember session", "error", err)
		}
		cancel()
	}

	if chat != nil && that.options.ChatSink != nil {
		that.options.ChatSink.Chat(*chat)
	}

	that.notify()
}

// dispatch - fans one event out to its consumers. Must be called with the lock held.
func (that *Session) dispatch(event protocol.Event) (entity.Player, bool, *entity.ChatMessage) {
	assigned, ok := that.mode.Observe(event)

	switch event := event.(type) {
	case protocol.GameUpdate:
		that.game = tictactoe.Apply(that.game, event)
	case protocol.PlayerUpdate:
		that.status.PlayerUpdate(event.Action, that.mode.IsSelf(event))
	case protocol.DrawRequest:
		that.apply(that.draw.Receive(event.Action, that.mode.ProposedLocally(event.Player)))
	case protocol.RematchRequest:
		that.apply(that.rematch.Receive(event.Action, that.mode.ProposedLocally(event.Player)))
	case protocol.TextMessage:
		message := entity.ChatMessage{Content: event.Content, Player: event.Player}
		that.appendChat(message)

		return assigned, ok, &message
	case protocol.ServerError:
		that.logger.Warn("server reported an error", "method", "dispatch", "message", event.Message)
		that.status.ServerError(event)
	}

	return assigned, ok, nil
}

func (that *Session) appendChat(message entity.ChatMessage) {
	that.chat = append(that.chat, message)

	if limit := that.options.ChatHistory; limit > 0 && len(that.chat) > limit {
		that.chat = append([]entity.ChatMessage(nil), that.chat[len(that.chat)-limit:]...)
	}
}

// apply - sends the outcome's command and arms its timer. The timer is armed even when
// the send fails, so a shown result still reverts. Must be called with the lock held.
func (that *Session) apply(outcome Outcome) bool {
	if outcome.Timer != nil {
		that.schedule(*outcome.Timer)
	}

	if outcome.Command == nil {
		return true
	}

	return that.send(outcome.Command) == nil
}

func (that *Session) schedule(timer Timer) {
	var handle *time.Timer

	handle = time.AfterFunc(timer.After, func() {
		that.mu.Lock()
		delete(that.timers, handle)
		if that.closed {
			that.mu.Unlock()
			return
		}

		that.apply(that.negotiation(timer.Offer).Expire(timer))
		that.mu.Unlock()

		that.notify()
	})

	that.timers[handle] = struct{}{}
}

func (that *Session) stopTimers() {
	for handle := range that.timers {
		handle.Stop()
		delete(that.timers, handle)
	}
}

func (that *Session) negotiation(kind OfferKind) *Negotiation {
	if kind == OfferRematch {
		return that.rematch
	}

	return that.draw
}

func (that *Session) send(cmd protocol.Command) error {
	if that.connector == nil {
		return apperror.ErrNotConnected
	}

	if err := that.connector.Send(cmd); err != nil {
		that.logger.Warn("failed to send command", "method", "send", "command", cmd.Name(), "error", err)
		return fmt.Errorf("failed to send %s: %w", cmd.Name(), err)
	}

	return nil
}

// intent - runs a local action under the lock and notifies when it did something.
func (that *Session) intent(fn func() bool) bool {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return false
	}

	done := fn()
	that.mu.Unlock()

	if done {
		that.notify()
	}

	return done
}

// PlayMove - sends the move only when it is legal for the local player. Illegal moves are never sent.
func (that *Session) PlayMove(move entity.Move) bool {
	return that.intent(func() bool {
		mover := that.mode.Local()
		if err := tictactoe.ValidateMove(that.game, mover, move); err != nil {
			that.logger.Debug("suppressing move", "method", "PlayMove", "board", move.Board, "cell", move.Cell, "reason", err)
			return false
		}

		cmd, err := protocol.PlayMove(move)
		if err != nil {
			return false
		}

		return that.send(cmd) == nil
	})
}

func (that *Session) OfferDraw() bool {
	return that.offer(that.draw)
}

func (that *Session) OfferRematch() bool {
	return that.offer(that.rematch)
}

func (that *Session) offer(negotiation *Negotiation) bool {
	return that.intent(func() bool {
		outcome, ok := negotiation.Propose()
		if !ok {
			return false
		}

		if !that.apply(outcome) {
			negotiation.Reset()
			return false
		}

		return true
	})
}

func (that *Session) AnswerDraw(accept bool) bool {
	return that.answer(that.draw, accept)
}

func (that *Session) AnswerRematch(accept bool) bool {
	return that.answer(that.rematch, accept)
}

func (that *Session) answer(negotiation *Negotiation, accept bool) bool {
	return that.intent(func() bool {
		outcome, ok := negotiation.Answer(accept)
		if !ok {
			return false
		}

		if !that.apply(outcome) {
			that.apply(negotiation.Reopen())
			return false
		}

		return true
	})
}

func (that *Session) DismissDraw() bool {
	return that.intent(that.draw.Dismiss)
}

func (that *Session) DismissRematch() bool {
	return that.intent(that.rematch.Dismiss)
}

func (that *Session) Resign() bool {
	return that.intent(func() bool {
		if !that.game.Synced || that.game.Board.Status.IsTerminal() {
			return false
		}

		return that.send(protocol.Resign()) == nil
	})
}

// Say - sends a chat line; blank lines are dropped.
func (that *Session) Say(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	return that.intent(func() bool {
		return that.send(protocol.Chat(text)) == nil
	})
}

func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *Session) snapshot() Snapshot {
	return Snapshot{
		ID:       that.id,
		RoomID:   that.roomID,
		Room:     that.room,
		Mode:     that.mode.Mode(),
		Status:   that.status.View(),
		Game:     that.game,
		Local:    that.mode.Local(),
		Identity: that.mode.Identity(),
		Draw:     that.draw.State(),
		Rematch:  that.rematch.State(),
		Chat:     append([]entity.ChatMessage(nil), that.chat...),
	}
}

// Close - releases the socket and stops every timer. The remembered seat is kept
// so a later session can resume it. Idempotent.
func (that *Session) Close() error {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return nil
	}

	that.closed = true
	connector, unsubscribe := that.connector, that.unsubscribe
	that.connector, that.unsubscribe = nil, nil
	that.stopTimers()
	that.mu.Unlock()

	that.logger.Info("session closed", "method", "Close")

	return that.release(connector, unsubscribe)
}

// Leave - closes the session and forgets the remembered seat.
func (that *Session) Leave(ctx context.Context) error {
	closeErr := that.Close()

	if err := that.reconnection.Forget(ctx); err != nil {
		return errors.Join(closeErr, err)
	}

	return closeErr
}

// release - must be called without the lock: Close waits for an in-flight delivery.
func (that *Session) release(connector Connector, unsubscribe func()) error {
	if unsubscribe != nil {
		unsubscribe()
	}

	if connector == nil {
		return nil
	}

	if err := connector.Close(); err != nil {
		return fmt.Errorf("failed to close connector: %w", err)
	}

	return nil
}

func (that *Session) update(fn func()) {
	that.mu.Lock()
	if that.closed {
		that.mu.Unlock()
		return
	}

	fn()
	that.mu.Unlock()

	that.notify()
}

func (that *Session) notify() {
	if that.options.Observer == nil {
		return
	}

	that.options.Observer.SessionChanged(that.Snapshot())
}
