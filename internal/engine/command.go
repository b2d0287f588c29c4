package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned by ParseCommand for unrecognized names.
var ErrUnknownCommand = errors.New("engine: unknown command")

// Command is one of the four player inputs.
type Command int

const (
	CommandMoveLeft Command = iota
	CommandMoveRight
	CommandSoftDrop
	CommandRotate
)

var commandNames = map[Command]string{
	CommandMoveLeft:  "move_left",
	CommandMoveRight: "move_right",
	CommandSoftDrop:  "soft_drop",
	CommandRotate:    "rotate",
}

// String returns the command's wire name (used by the replay journal).
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand converts a wire name back to a Command.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
