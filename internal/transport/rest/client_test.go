package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

// fakeRoomAPI - in-memory room API with one public and one protected room.
func fakeRoomAPI(t *testing.T) (*RoomClient, *[]CreateRoomRequest) {
	t.Helper()

	rooms := map[string]entity.RoomInfo{
		"open":   {ID: "open", Name: "open room", IsPublic: true},
		"locked": {ID: "locked", Name: "locked room", IsProtected: true},
	}
	created := make([]CreateRoomRequest, 0)

	router := chi.NewRouter()
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "healthy"})
	})
	router.Get("/rooms", func(w http.ResponseWriter, r *http.Request) {
		list := make([]entity.RoomInfo, 0)
		for _, room := range rooms {
			if room.IsPublic && (r.URL.Query().Get("name") == "" || r.URL.Query().Get("name") == room.Name) {
				list = append(list, room)
			}
		}
		writeJSON(w, list)
	})
	router.Post("/rooms", func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		created = append(created, req)
		writeJSON(w, map[string]string{"room_id": "new-room"})
	})
	router.Get("/room/{roomID}", func(w http.ResponseWriter, r *http.Request) {
		room, ok := rooms[chi.URLParam(r, "roomID")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, room)
	})
	router.Post("/room/{roomID}/password", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := rooms[chi.URLParam(r, "roomID")]; !ok {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, map[string]bool{"valid": body.Password == "secret"})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRoomClient(logger, server.URL, time.Second), &created
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestRoomClient_GetRoom(t *testing.T) {
	client, _ := fakeRoomAPI(t)
	ctx := context.Background()

	t.Run("Protected room", func(t *testing.T) {
		room, err := client.GetRoom(ctx, "locked")

		require.NoError(t, err)
		assert.True(t, room.IsProtected)
		assert.False(t, room.IsPublic)
	})

	t.Run("Missing room", func(t *testing.T) {
		_, err := client.GetRoom(ctx, "ghost")

		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRoomClient_VerifyPassword(t *testing.T) {
	client, _ := fakeRoomAPI(t)
	ctx := context.Background()

	valid, err := client.VerifyPassword(ctx, "locked", "secret")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = client.VerifyPassword(ctx, "locked", "guess")
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = client.VerifyPassword(ctx, "ghost", "secret")
	assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
}

func TestRoomClient_CreateRoom(t *testing.T) {
	client, created := fakeRoomAPI(t)

	// Given: a bot room request
	req := CreateRoomRequest{Name: "vs bot", RoomType: entity.RoomBot, BotLevel: entity.BotAdvanced}

	// When: creating it
	roomID, err := client.CreateRoom(context.Background(), req)

	// Then: the server saw the bot fields and answered with an id
	require.NoError(t, err)
	assert.Equal(t, "new-room", roomID)
	require.Len(t, *created, 1)
	assert.Equal(t, req, (*created)[0])
}

func TestRoomClient_ListRooms(t *testing.T) {
	client, _ := fakeRoomAPI(t)
	ctx := context.Background()

	rooms, err := client.ListRooms(ctx, "")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "open", rooms[0].ID)

	rooms, err = client.ListRooms(ctx, "nope")
	require.NoError(t, err)
	assert.Empty(t, rooms)

	assert.NoError(t, client.Health(ctx))
}
