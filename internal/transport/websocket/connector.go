// Package websocket owns one room socket: it dials, decodes inbound frames,
// answers keep-alives and hands everything else to a single subscriber.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/protocol"
)

const closeWriteWait = time.Second

type State int

const (
	StateIdle State = iota
	StateOpening
	StateOpen
	StateClosing
	StateClosed
)

func (that State) String() string {
	switch that {
	case StateIdle:
		return "idle"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

// Signal - what a connector reports to its subscriber.
type Signal interface {
	isSignal()
}

type Opened struct{}

type Received struct {
	Event protocol.Event
}

// Closed - the remote side or the network ended the connection. Err is nil on a normal closure.
type Closed struct {
	Err error
}

func (Opened) isSignal()   {}
func (Received) isSignal() {}
func (Closed) isSignal()   {}

// Dialer is satisfied by *websocket.Dialer.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}

type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// ResumeParams - query parameters of the room socket.
type ResumeParams struct {
	Password     string
	PlayerID     string
	Reconnecting bool
}

// NewDialer - gorilla dialer with the given handshake timeout.
func NewDialer(handshakeTimeout time.Duration) *websocket.Dialer {
	return &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}
}

// Endpoint - <base>/<roomID>?password=..&player_id=..&is_reconnecting=true, parameters only when set.
func Endpoint(base, roomID string, params ResumeParams) (string, error) {
	endpoint, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("failed to parse socket url: %w", err)
	}

	endpoint = endpoint.JoinPath(roomID)

	query := endpoint.Query()
	if params.Password != "" {
		query.Set("password", params.Password)
	}

	if params.PlayerID != "" {
		query.Set("player_id", params.PlayerID)
	}

	if params.Reconnecting {
		query.Set("is_reconnecting", "true")
	}

	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}

// Connector - single-use: one Connect, one Close.
type Connector struct {
	logger  *slog.Logger
	dialer  Dialer
	baseURL string

	mu         sync.Mutex
	state      State
	conn       Conn
	cancelDial context.CancelFunc
	subscriber func(Signal)
	subID      int

	writeMu sync.Mutex

	deliverMu sync.Mutex
	silenced  bool

	done chan struct{}
}

func NewConnector(logger *slog.Logger, dialer Dialer, baseURL string) *Connector {
	return &Connector{
		logger:  logger.With("component", "connector"),
		dialer:  dialer,
		baseURL: baseURL,
		done:    make(chan struct{}),
	}
}

// Subscribe - replaces the current subscriber; unsubscribe only removes this one.
func (that *Connector) Subscribe(fn func(Signal)) func() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.subID++
	id := that.subID
	that.subscriber = fn

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if that.subID == id {
			that.subscriber = nil
		}
	}
}

func (that *Connector) State() State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.state
}

// Done - closed when the read loop has exited or the dial failed.
func (that *Connector) Done() <-chan struct{} {
	return that.done
}

// Connect - starts dialing in the background. Opened or Closed follows.
func (that *Connector) Connect(ctx context.Context, roomID string, params ResumeParams) error {
	log := that.logger.With("method", "Connect", "room_id", roomID)

	endpoint, err := Endpoint(that.baseURL, roomID, params)
	if err != nil {
		return err
	}

	that.mu.Lock()
	if that.state != StateIdle {
		that.mu.Unlock()
		return apperror.ErrAlreadyOpened
	}

	dialCtx, cancel := context.WithCancel(ctx)
	that.state = StateOpening
	that.cancelDial = cancel
	that.mu.Unlock()

	log.Debug("dialing", "reconnecting", params.Reconnecting)

	go that.run(dialCtx, cancel, endpoint)

	return nil
}

func (that *Connector) run(ctx context.Context, cancel context.CancelFunc, endpoint string) {
	defer close(that.done)
	defer cancel()

	log := that.logger.With("method", "run")

	conn, resp, err := that.dialer.DialContext(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		log.Warn("failed to dial room socket", "error", err)

		that.mu.Lock()
		that.state = StateClosed
		that.mu.Unlock()

		that.deliver(Closed{Err: fmt.Errorf("failed to dial room socket: %w", err)})
		return
	}

	that.mu.Lock()
	if that.state != StateOpening {
		that.mu.Unlock()
		_ = conn.Close()
		return
	}

	that.state = StateOpen
	that.conn = conn
	that.mu.Unlock()

	that.deliver(Opened{})
	that.readLoop(conn)
}

func (that *Connector) readLoop(conn Conn) {
	log := that.logger.With("method", "readLoop")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			that.finish(err)
			return
		}

		event, err := protocol.Decode(data)
		if err != nil {
			log.Warn("dropping undecodable frame", "error", err)
			continue
		}

		if _, ok := event.(protocol.Ping); ok {
			if err = that.Send(protocol.Pong()); err != nil {
				log.Warn("failed to answer ping", "error", err)
			}

			continue
		}

		that.deliver(Received{Event: event})
	}
}

// finish - the read side failed; report it unless Close got there first.
func (that *Connector) finish(readErr error) {
	that.mu.Lock()
	if that.state != StateOpen {
		that.mu.Unlock()
		return
	}

	that.state = StateClosed
	conn := that.conn
	that.mu.Unlock()

	_ = conn.Close()

	if websocket.IsCloseError(readErr, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		readErr = nil
	}

	that.logger.Info("room socket closed", "method", "finish", "error", readErr)
	that.deliver(Closed{Err: readErr})
}

func (that *Connector) deliver(signal Signal) {
	that.deliverMu.Lock()
	defer that.deliverMu.Unlock()

	if that.silenced {
		return
	}

	that.mu.Lock()
	subscriber := that.subscriber
	that.mu.Unlock()

	if subscriber != nil {
		subscriber(signal)
	}
}

// Send - writes cmd when the socket is open.
func (that *Connector) Send(cmd protocol.Command) error {
	log := that.logger.With("method", "Send", "command", cmd.Name())

	that.mu.Lock()
	state, conn := that.state, that.conn
	that.mu.Unlock()

	if state != StateOpen {
		log.Warn("dropping command, socket is not open", "state", state.String())
		return apperror.ErrNotConnected
	}

	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := conn.WriteMessage(websocket.TextMessage, protocol.Encode(cmd)); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Name(), err)
	}

	return nil
}

// Close - idempotent. Once it returns the subscriber is not called again.
// It must not be called from inside the subscriber.
func (that *Connector) Close() error {
	that.mu.Lock()
	if that.state == StateClosed || that.state == StateClosing {
		that.mu.Unlock()
		that.silence()
		return nil
	}

	if that.cancelDial != nil {
		that.cancelDial()
	}

	conn := that.conn
	that.state = StateClosing
	that.mu.Unlock()

	that.silence()

	var err error
	if conn != nil {
		that.writeMu.Lock()
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if writeErr := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait)); writeErr != nil &&
			!errors.Is(writeErr, websocket.ErrCloseSent) {
			that.logger.Debug("failed to send close frame", "method", "Close", "error", writeErr)
		}
		that.writeMu.Unlock()

		if closeErr := conn.Close(); closeErr != nil {
			err = fmt.Errorf("failed to close room socket: %w", closeErr)
		}
	}

	that.mu.Lock()
	that.state = StateClosed
	that.mu.Unlock()

	return err
}

func (that *Connector) silence() {
	that.deliverMu.Lock()
	that.silenced = true
	that.deliverMu.Unlock()
}
