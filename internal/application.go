package application

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/ultimatexo-client/internal/config"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
	"github.com/rocketscienceinc/ultimatexo-client/internal/repository"
	"github.com/rocketscienceinc/ultimatexo-client/internal/repository/storage"
	"github.com/rocketscienceinc/ultimatexo-client/internal/transport/rest"
	"github.com/rocketscienceinc/ultimatexo-client/internal/transport/websocket"
	"github.com/rocketscienceinc/ultimatexo-client/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// Options - what the command line asks for.
type Options struct {
	RoomID   string
	Mode     entity.Mode
	Name     string
	Password string
	BotLevel entity.BotLevel
	Public   bool

	Input  io.Reader
	Output io.Writer
}

// RunApp - enters one room and drives it from Input until quit, EOF or a signal.
func RunApp(logger *slog.Logger, conf *config.Config, options Options) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	store, closeStore, err := newTokenStore(ctx, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	rooms := rest.NewRoomClient(logger, conf.Server.APIURL, conf.Server.RequestTimeout)

	roomID := options.RoomID
	if roomID == "" {
		roomID, err = rooms.CreateRoom(ctx, rest.CreateRoomRequest{
			Name:     options.Name,
			IsPublic: options.Public,
			RoomType: options.Mode.RoomType(),
			BotLevel: options.BotLevel,
			Password: optionalPassword(options.Password),
		})
		if err != nil {
			return fmt.Errorf("could not create room: %w", err)
		}

		fmt.Fprintf(options.Output, "created room %s\n", roomID)
	}

	dialer := websocket.NewDialer(conf.Server.DialTimeout)
	newConnector := func() usecase.Connector {
		return websocket.NewConnector(logger, dialer, conf.Server.SocketURL)
	}

	console := NewConsole(options.Output)
	policy := usecase.NegotiationPolicy{
		AcceptDisplay:  conf.Negotiation.AcceptDisplay,
		DeclineDisplay: conf.Negotiation.DeclineDisplay,
	}
	drawPolicy, rematchPolicy := policy, policy
	drawPolicy.AnswerTimeout = conf.Negotiation.DrawAnswerTimeout
	rematchPolicy.AnswerTimeout = conf.Negotiation.RematchAnswerTimeout

	session := usecase.NewSession(logger, newConnector, rooms, usecase.NewReconnectionManager(logger, store), usecase.SessionOptions{
		Mode:          options.Mode,
		DrawPolicy:    drawPolicy,
		RematchPolicy: rematchPolicy,
		ChatHistory:   conf.Session.ChatHistory,
		Observer:      console,
		ChatSink:      console,
	})

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Error("could not close session", "error", closeErr)
		}
	}()

	log.Info("Entering room", "room_id", roomID, "mode", options.Mode.String(), "session", session.ID())

	if err = session.Enter(ctx, roomID, options.Password); err != nil {
		return fmt.Errorf("could not enter room: %w", err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(options.Input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Application context canceled, shutting down")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			quit, execErr := Execute(ctx, session, console, line)
			if execErr != nil {
				fmt.Fprintf(options.Output, "error: %v\n", execErr)
			}

			if quit {
				return nil
			}
		}
	}
}

func newTokenStore(ctx context.Context, conf *config.Config) (repository.TokenStore, func(), error) {
	if conf.Session.Store != config.StoreRedis {
		return repository.NewMemoryTokenStore(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	store := repository.NewRedisTokenStore(redisStorage.Connection, clientID(conf), conf.Session.TTL)

	return store, func() { _ = redisStorage.Close() }, nil
}

// clientID - stable per machine unless configured, so a rerun can resume its seat.
func clientID(conf *config.Config) string {
	if conf.Session.ClientID != "" {
		return conf.Session.ClientID
	}

	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}

	return uuid.NewString()
}

func optionalPassword(password string) *string {
	if password == "" {
		return nil
	}

	return &password
}
