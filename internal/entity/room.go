package entity

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMode     = errors.New("unknown session mode")
	ErrUnknownBotLevel = errors.New("unknown bot level")
)

// Mode - how the other player is seated. Chosen once per room entry.
type Mode int

const (
	ModeOnline Mode = iota
	ModeLocal
	ModeBot
)

func ParseMode(value string) (Mode, error) {
	switch value {
	case "online", "":
		return ModeOnline, nil
	case "local":
		return ModeLocal, nil
	case "bot":
		return ModeBot, nil
	default:
		return ModeOnline, fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
}

func (that Mode) String() string {
	switch that {
	case ModeOnline:
		return "online"
	case ModeLocal:
		return "local"
	case ModeBot:
		return "bot"
	default:
		return "unknown"
	}
}

// RoomType - the room kind the server creates for this mode.
func (that Mode) RoomType() RoomType {
	switch that {
	case ModeLocal:
		return RoomLocal
	case ModeBot:
		return RoomBot
	default:
		return RoomStandard
	}
}

type RoomType string

const (
	RoomStandard RoomType = "Standard"
	RoomLocal    RoomType = "LocalRoom"
	RoomBot      RoomType = "BotRoom"
)

type BotLevel string

const (
	BotBeginner     BotLevel = "Beginner"
	BotIntermediate BotLevel = "Intermediate"
	BotAdvanced     BotLevel = "Advanced"
)

func ParseBotLevel(value string) (BotLevel, error) {
	switch BotLevel(value) {
	case BotBeginner, BotIntermediate, BotAdvanced:
		return BotLevel(value), nil
	case "":
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBotLevel, value)
	}
}

type RoomInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	IsPublic    bool     `json:"is_public"`
	IsProtected bool     `json:"is_protected"`
	RoomType    RoomType `json:"room_type,omitempty"`
	BotLevel    BotLevel `json:"bot_level,omitempty"`
}
