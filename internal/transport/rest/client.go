package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

const maxErrorBody = 512

// CreateRoomRequest - body of POST /rooms. Mode decides which fields the server reads.
type CreateRoomRequest struct {
	Name     string          `json:"name"`
	IsPublic bool            `json:"is_public"`
	RoomType entity.RoomType `json:"room_type"`
	BotLevel entity.BotLevel `json:"bot_level,omitempty"`
	Password *string         `json:"password"`
}

// RoomClient - the room HTTP API of the game server.
type RoomClient struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

func NewRoomClient(logger *slog.Logger, baseURL string, timeout time.Duration) *RoomClient {
	return &RoomClient{
		logger:  logger.With("component", "roomClient"),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// GetRoom - GET /room/{id}; apperror.ErrRoomNotFound on 404.
func (that *RoomClient) GetRoom(ctx context.Context, roomID string) (entity.RoomInfo, error) {
	var room entity.RoomInfo

	status, err := that.do(ctx, http.MethodGet, that.endpoint(nil, "room", roomID), nil, &room)
	if status == http.StatusNotFound {
		return entity.RoomInfo{}, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	if err != nil {
		return entity.RoomInfo{}, fmt.Errorf("failed to get room: %w", err)
	}

	return room, nil
}

// VerifyPassword - POST /room/{id}/password, answers {"valid": bool}.
func (that *RoomClient) VerifyPassword(ctx context.Context, roomID, password string) (bool, error) {
	var result struct {
		Valid bool `json:"valid"`
	}

	body := map[string]string{"password": password}

	status, err := that.do(ctx, http.MethodPost, that.endpoint(nil, "room", roomID, "password"), body, &result)
	if status == http.StatusNotFound {
		return false, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, roomID)
	}

	if err != nil {
		return false, fmt.Errorf("failed to verify password: %w", err)
	}

	return result.Valid, nil
}

// CreateRoom - POST /rooms, returns the new room id.
func (that *RoomClient) CreateRoom(ctx context.Context, req CreateRoomRequest) (string, error) {
	log := that.logger.With("method", "CreateRoom")

	var result struct {
		RoomID string `json:"room_id"`
	}

	if _, err := that.do(ctx, http.MethodPost, that.endpoint(nil, "rooms"), req, &result); err != nil {
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	if result.RoomID == "" {
		return "", fmt.Errorf("failed to create room: %w", apperror.ErrRoomNotFound)
	}

	log.Info("room created", "room_id", result.RoomID, "room_type", string(req.RoomType))

	return result.RoomID, nil
}

// ListRooms - GET /rooms, public rooms only, optionally filtered by name.
func (that *RoomClient) ListRooms(ctx context.Context, name string) ([]entity.RoomInfo, error) {
	query := url.Values{}
	if name != "" {
		query.Set("name", name)
	}

	rooms := make([]entity.RoomInfo, 0)
	if _, err := that.do(ctx, http.MethodGet, that.endpoint(query, "rooms"), nil, &rooms); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}

// Health - GET /health.
func (that *RoomClient) Health(ctx context.Context) error {
	if _, err := that.do(ctx, http.MethodGet, that.endpoint(nil, "health"), nil, nil); err != nil {
		return fmt.Errorf("server is unhealthy: %w", err)
	}

	return nil
}

func (that *RoomClient) endpoint(query url.Values, elem ...string) string {
	endpoint, err := url.JoinPath(that.baseURL, elem...)
	if err != nil {
		endpoint = that.baseURL
	}

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return endpoint
}

// do - sends body as JSON and decodes a 2xx answer into out. The status is returned even on error.
func (that *RoomClient) do(ctx context.Context, method, endpoint string, body, out any) (int, error) {
	log := that.logger.With("method", "do", "http_method", method, "url", endpoint)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Debug("unexpected status", "status", resp.StatusCode, "body", string(snippet))

		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return resp.StatusCode, nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}

	return resp.StatusCode, nil
}
