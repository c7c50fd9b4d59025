package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/ultimatexo-client/internal/apperror"
	"github.com/rocketscienceinc/ultimatexo-client/internal/entity"
)

// DecodeError - a frame that could not be turned into an Event. Callers log and drop it.
type DecodeError struct {
	Tag string
	Err error
}

func (that *DecodeError) Error() string {
	if that.Tag == "" {
		return fmt.Sprintf("decode frame: %v", that.Err)
	}

	return fmt.Sprintf("decode %s frame: %v", that.Tag, that.Err)
}

func (that *DecodeError) Unwrap() error {
	return that.Err
}

// Encode - serializes a command into a text frame.
func Encode(cmd Command) []byte {
	return mustMarshal(cmd.frame())
}

// Decode - accepts a bare tag string, an externally tagged object
// ({"GameUpdate": {...}}) or an adjacently tagged one ({"event": "GameUpdate", "data": {...}}).
func Decode(frame []byte) (Event, error) {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) == 0 {
		return nil, &DecodeError{Err: fmt.Errorf("%w: empty frame", apperror.ErrMalformedFrame)}
	}

	switch trimmed[0] {
	case '"':
		var tag string
		if err := json.Unmarshal(trimmed, &tag); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)}
		}

		return decodeUnit(tag)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)}
		}

		if rawTag, ok := envelope["event"]; ok {
			var tag string
			if err := json.Unmarshal(rawTag, &tag); err != nil {
				return nil, &DecodeError{Err: fmt.Errorf("%w: event tag: %w", apperror.ErrMalformedFrame, err)}
			}

			return decodeTagged(tag, envelope["data"])
		}

		if len(envelope) != 1 {
			return nil, &DecodeError{Err: fmt.Errorf("%w: expected one tag, got %d", apperror.ErrMalformedFrame, len(envelope))}
		}

		for tag, payload := range envelope {
			return decodeTagged(tag, payload)
		}
	}

	return nil, &DecodeError{Err: fmt.Errorf("%w: unexpected json value", apperror.ErrMalformedFrame)}
}

func decodeUnit(tag string) (Event, error) {
	switch tag {
	case TagPing, tagPingLegacy:
		return Ping{}, nil
	case TagGameUpdate, TagPlayerUpdate, TagRematchRequest, TagDrawRequest, TagTextMessage, TagError:
		return nil, &DecodeError{Tag: tag, Err: fmt.Errorf("%w: missing payload", apperror.ErrMalformedFrame)}
	default:
		return nil, &DecodeError{Tag: tag, Err: apperror.ErrUnknownEvent}
	}
}

func decodeTagged(tag string, payload json.RawMessage) (Event, error) {
	var (
		event Event
		err   error
	)

	switch tag {
	case TagPing, tagPingLegacy:
		return Ping{}, nil
	case TagGameUpdate:
		event, err = decodeGameUpdate(payload)
	case TagPlayerUpdate:
		event, err = decodePlayerUpdate(payload)
	case TagRematchRequest, tagGameRestart:
		var offer offerPayload
		if offer, err = decodeOffer(payload); err == nil {
			event = RematchRequest(offer)
		}
		tag = TagRematchRequest
	case TagDrawRequest:
		var offer offerPayload
		if offer, err = decodeOffer(payload); err == nil {
			event = DrawRequest(offer)
		}
	case TagTextMessage:
		event, err = decodeTextMessage(payload)
	case TagError:
		event, err = decodeError(payload)
	default:
		return nil, &DecodeError{Tag: tag, Err: apperror.ErrUnknownEvent}
	}

	if err != nil {
		return nil, &DecodeError{Tag: tag, Err: err}
	}

	return event, nil
}

type wireMiniBoard struct {
	Cells  []entity.Marker        `json:"cells"`
	Status entity.MiniBoardStatus `json:"status"`
}

type wireMarker struct {
	ID     *string       `json:"id"`
	Marker entity.Marker `json:"marker"`
}

type wireGameUpdate struct {
	Board *struct {
		Boards []wireMiniBoard     `json:"boards"`
		Status entity.BoardStatus `json:"status"`
	} `json:"board"`
	NextPlayer *wireMarker `json:"next_player"`
	NextBoard  *int        `json:"next_board"`
	LastMove   []int       `json:"last_move"`
	Score      []int       `json:"score"`
}

func decodeGameUpdate(payload json.RawMessage) (GameUpdate, error) {
	var wire wireGameUpdate
	if err := unmarshalPayload(payload, &wire); err != nil {
		return GameUpdate{}, err
	}

	if wire.Board == nil {
		return GameUpdate{}, fmt.Errorf("%w: board is missing", apperror.ErrMalformedFrame)
	}

	if wire.NextPlayer == nil {
		return GameUpdate{}, fmt.Errorf("%w: next_player is missing", apperror.ErrMalformedFrame)
	}

	if len(wire.Board.Boards) != entity.BoardSize {
		return GameUpdate{}, fmt.Errorf("%w: %d mini-boards", apperror.ErrMalformedFrame, len(wire.Board.Boards))
	}

	update := GameUpdate{
		Board:      entity.Board{Status: wire.Board.Status},
		NextPlayer: wire.NextPlayer.Marker,
		NextBoard:  entity.Unconstrained(),
	}

	for i, mini := range wire.Board.Boards {
		if len(mini.Cells) != entity.BoardSize {
			return GameUpdate{}, fmt.Errorf("%w: mini-board %d has %d cells", apperror.ErrMalformedFrame, i, len(mini.Cells))
		}

		copy(update.Board.Boards[i].Cells[:], mini.Cells)
		update.Board.Boards[i].Status = mini.Status
	}

	if wire.NextBoard != nil {
		if *wire.NextBoard < 0 || *wire.NextBoard >= entity.BoardSize {
			return GameUpdate{}, fmt.Errorf("%w: next_board %d", apperror.ErrMalformedFrame, *wire.NextBoard)
		}

		update.NextBoard = entity.ConstrainTo(*wire.NextBoard)
	}

	if wire.LastMove != nil {
		if len(wire.LastMove) != 2 {
			return GameUpdate{}, fmt.Errorf("%w: last_move has %d coordinates", apperror.ErrMalformedFrame, len(wire.LastMove))
		}

		move := entity.Move{Board: wire.LastMove[0], Cell: wire.LastMove[1]}
		if err := move.Validate(); err != nil {
			return GameUpdate{}, fmt.Errorf("%w: last_move: %w", apperror.ErrMalformedFrame, err)
		}

		update.LastMove = &move
	}

	if len(wire.Score) != len(update.Score) {
		return GameUpdate{}, fmt.Errorf("%w: score has %d entries", apperror.ErrMalformedFrame, len(wire.Score))
	}

	copy(update.Score[:], wire.Score)

	return update, nil
}

func decodePlayerUpdate(payload json.RawMessage) (PlayerUpdate, error) {
	var wire struct {
		Action PlayerAction `json:"action"`
		Player *wireMarker  `json:"player"`
	}
	if err := unmarshalPayload(payload, &wire); err != nil {
		return PlayerUpdate{}, err
	}

	switch wire.Action {
	case PlayerJoined, PlayerLeft, PlayerDisconnected, PlayerReconnected:
	default:
		return PlayerUpdate{}, fmt.Errorf("%w: player action %q", apperror.ErrMalformedFrame, wire.Action)
	}

	if wire.Player == nil {
		return PlayerUpdate{}, fmt.Errorf("%w: player is missing", apperror.ErrMalformedFrame)
	}

	update := PlayerUpdate{
		Action: wire.Action,
		Player: entity.Player{Marker: wire.Player.Marker},
	}

	if wire.Player.ID != nil {
		update.Player.ID = *wire.Player.ID
	}

	return update, nil
}

type offerPayload struct {
	Action OfferAction
	Player entity.Marker
}

func decodeOffer(payload json.RawMessage) (offerPayload, error) {
	var wire struct {
		Action string          `json:"action"`
		Player json.RawMessage `json:"player"`
	}
	if err := unmarshalPayload(payload, &wire); err != nil {
		return offerPayload{}, err
	}

	action, err := parseOfferAction(wire.Action)
	if err != nil {
		return offerPayload{}, err
	}

	marker, err := decodeProposer(wire.Player)
	if err != nil {
		return offerPayload{}, err
	}

	return offerPayload{Action: action, Player: marker}, nil
}

func parseOfferAction(value string) (OfferAction, error) {
	switch value {
	case "Sent":
		return OfferSent, nil
	case "Request", "Requested":
		return OfferRequest, nil
	case "Accept", "Accepted":
		return OfferAccept, nil
	case "Decline", "Declined":
		return OfferDecline, nil
	default:
		return "", fmt.Errorf("%w: offer action %q", apperror.ErrMalformedFrame, value)
	}
}

// decodeProposer - the proposer is a bare marker; older servers nest it as {"marker": ...}.
func decodeProposer(raw json.RawMessage) (entity.Marker, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return entity.MarkerNone, fmt.Errorf("%w: player is missing", apperror.ErrMalformedFrame)
	}

	if raw[0] == '{' {
		var nested wireMarker
		if err := json.Unmarshal(raw, &nested); err != nil {
			return entity.MarkerNone, fmt.Errorf("%w: player: %w", apperror.ErrMalformedFrame, err)
		}

		return nested.Marker, nil
	}

	var marker entity.Marker
	if err := json.Unmarshal(raw, &marker); err != nil {
		return entity.MarkerNone, fmt.Errorf("%w: player: %w", apperror.ErrMalformedFrame, err)
	}

	return marker, nil
}

func decodeTextMessage(payload json.RawMessage) (TextMessage, error) {
	var wire struct {
		Content string          `json:"content"`
		Player  json.RawMessage `json:"player"`
	}
	if err := unmarshalPayload(payload, &wire); err != nil {
		return TextMessage{}, err
	}

	marker, err := decodeProposer(wire.Player)
	if err != nil {
		return TextMessage{}, err
	}

	return TextMessage{Content: wire.Content, Player: marker}, nil
}

// decodeError - accepts {"error": "..."}, a bare string, or the server's
// {"type": "Room", "details": "InvalidPassword"} form.
func decodeError(payload json.RawMessage) (ServerError, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) > 0 && payload[0] == '"' {
		var message string
		if err := json.Unmarshal(payload, &message); err != nil {
			return ServerError{}, fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
		}

		return ServerError{Message: message}, nil
	}

	var wire struct {
		Error   *string         `json:"error"`
		Type    string          `json:"type"`
		Details json.RawMessage `json:"details"`
	}
	if err := unmarshalPayload(payload, &wire); err != nil {
		return ServerError{}, err
	}

	if wire.Error != nil {
		return ServerError{Message: *wire.Error}, nil
	}

	if message := detailsMessage(wire.Details); message != "" {
		return ServerError{Message: message}, nil
	}

	if wire.Type != "" {
		return ServerError{Message: wire.Type}, nil
	}

	return ServerError{}, fmt.Errorf("%w: error message is missing", apperror.ErrMalformedFrame)
}

func detailsMessage(details json.RawMessage) string {
	if len(details) == 0 {
		return ""
	}

	var variant string
	if err := json.Unmarshal(details, &variant); err == nil {
		return variant
	}

	var object struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(details, &object); err == nil {
		return object.Message
	}

	return ""
}

func unmarshalPayload(payload json.RawMessage, target any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return fmt.Errorf("%w: missing payload", apperror.ErrMalformedFrame)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrMalformedFrame, err)
	}

	return nil
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return b
}
