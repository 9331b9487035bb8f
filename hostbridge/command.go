// Package hostbridge lets an external page drive the silk renderer over a
// websocket. Connections decode JSON commands into an Inbox; the frame loop
// applies them between frames.
package hostbridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Command types accepted on the wire.
const (
	TypePointer  = "pointer"
	TypeScroll   = "scroll"
	TypeMotion   = "motion"
	TypeEvaluate = "evaluate"
)

var (
	// ErrUnknownCommand is returned for a well-formed message of an unknown type.
	ErrUnknownCommand = errors.New("unknown command type")
	// ErrMalformedCommand is returned for undecodable or incomplete messages.
	ErrMalformedCommand = errors.New("malformed command")
)

// Command is one decoded host input.
type Command struct {
	Type   string
	X, Y   float64 // pointer
	Target float64 // scroll
	Reduce bool    // motion
}

type wireCommand struct {
	Type   string   `json:"type"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Target *float64 `json:"target"`
	Reduce *bool    `json:"reduce"`
}

// Decode parses a JSON text frame.
func Decode(data []byte) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return Command{}, fmt.Errorf("%w: %v", ErrMalformedCommand, err)
	}

	cmd := Command{Type: w.Type}
	switch w.Type {
	case TypePointer:
		if w.X == nil || w.Y == nil {
			return Command{}, fmt.Errorf("%w: pointer needs x and y", ErrMalformedCommand)
		}
		cmd.X, cmd.Y = *w.X, *w.Y
	case TypeScroll:
		if w.Target == nil {
			return Command{}, fmt.Errorf("%w: scroll needs target", ErrMalformedCommand)
		}
		cmd.Target = *w.Target
	case TypeMotion:
		if w.Reduce == nil {
			return Command{}, fmt.Errorf("%w: motion needs reduce", ErrMalformedCommand)
		}
		cmd.Reduce = *w.Reduce
	case TypeEvaluate:
	case "":
		return Command{}, fmt.Errorf("%w: missing type", ErrMalformedCommand)
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, w.Type)
	}
	return cmd, nil
}

// Target receives commands on the frame thread.
type Target interface {
	SetPointerTarget(x, y float64)
	SetScrollTarget(v float64)
	SyncMotionPreference(reduce bool)
	EvaluateFallback()
}

// apply dispatches cmd to t.
func (c Command) apply(t Target) {
	switch c.Type {
	case TypePointer:
		t.SetPointerTarget(c.X, c.Y)
	case TypeScroll:
		t.SetScrollTarget(c.Target)
	case TypeMotion:
		t.SyncMotionPreference(c.Reduce)
	case TypeEvaluate:
		t.EvaluateFallback()
	}
}
