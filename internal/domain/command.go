package domain

import "strings"

type Command string

const (
	CommandRecord  Command = "r"
	CommandQuit    Command = "q"
	CommandUnknown Command = ""
)

// ParseCommand normalizes a line of user input into a Command.
func ParseCommand(line string) Command {
	switch c := Command(strings.ToLower(strings.TrimSpace(line))); c {
	case CommandRecord, CommandQuit:
		return c
	default:
		return CommandUnknown
	}
}
