package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Marker - the symbol a player places. The zero value is an empty cell.
type Marker string

const (
	MarkerNone Marker = ""
	MarkerX    Marker = "X"
	MarkerO    Marker = "O"
)

var ErrUnknownMarker = errors.New("unknown marker")

func ParseMarker(value string) (Marker, error) {
	switch value {
	case "X":
		return MarkerX, nil
	case "O":
		return MarkerO, nil
	case "":
		return MarkerNone, nil
	default:
		return MarkerNone, fmt.Errorf("%w: %q", ErrUnknownMarker, value)
	}
}

// Opponent - returns the other side; None stays None.
func (that Marker) Opponent() Marker {
	switch that {
	case MarkerX:
		return MarkerO
	case MarkerO:
		return MarkerX
	default:
		return MarkerNone
	}
}

func (that Marker) IsNone() bool {
	return that == MarkerNone
}

func (that Marker) String() string {
	if that == MarkerNone {
		return "-"
	}

	return string(that)
}

// MarshalJSON - an empty cell goes over the wire as null.
func (that Marker) MarshalJSON() ([]byte, error) {
	if that == MarkerNone {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Marker) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = MarkerNone
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal marker: %w", err)
	}

	marker, err := ParseMarker(raw)
	if err != nil {
		return err
	}

	*that = marker

	return nil
}
