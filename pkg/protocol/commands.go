package protocol

import "fmt"

// Command is a request command byte in the range 0x80-0xFF.
type Command byte

// Arity is the number of data bytes a command carries on the wire.
type Arity int

const (
	ArityNone Arity = iota
	ArityOne
	// ArityOptional commands may be sent with or without a single data byte.
	ArityOptional
)

// Commands from the CTD-202/203 API.
const (
	Dispense             Command = 0x80 // Dispense Card
	RequestStatus        Command = 0x81
	ReadTotalCount       Command = 0x82 // Dispense count since power up, API commands only
	ReadTotalButtonCount Command = 0x83 // Dispense count from the front panel button
	WriteTotalRetries    Command = 0x84
	ReadTotalRetries     Command = 0x85
	Reset                Command = 0x86 // No data for a soft reset, 0x01 for a hard reset
	WriteCardHold        Command = 0x87 // Hold the card in the dispenser until removed
	ReadCardHold         Command = 0x88
	WriteDelay           Command = 0x89 // Delay time in seconds
	ReadDelay            Command = 0x8A
	ResetEEPROM          Command = 0x92 // Restore factory defaults
	Enable               Command = 0xFE // Enable motor control, the start up default
	Disable              Command = 0xFF // Disable motor control
)

// HardResetData is the RESET payload requesting a hard reset.
const HardResetData = 0x01

type commandInfo struct {
	name  string
	arity Arity
}

var commands = map[Command]commandInfo{
	Dispense:             {"DISPENSE", ArityNone},
	RequestStatus:        {"REQUEST_STATUS", ArityNone},
	ReadTotalCount:       {"READ_TOTAL_COUNT", ArityNone},
	ReadTotalButtonCount: {"READ_TOTAL_BUTTON_COUNT", ArityNone},
	WriteTotalRetries:    {"WRITE_TOTAL_RETRIES", ArityOne},
	ReadTotalRetries:     {"READ_TOTAL_RETRIES", ArityNone},
	Reset:                {"RESET", ArityOptional},
	WriteCardHold:        {"WRITE_CARD_HOLD", ArityOne},
	ReadCardHold:         {"READ_CARD_HOLD", ArityNone},
	WriteDelay:           {"WRITE_DELAY", ArityOne},
	ReadDelay:            {"READ_DELAY", ArityNone},
	ResetEEPROM:          {"RESET_EEPROM", ArityNone},
	Enable:               {"ENABLE", ArityNone},
	Disable:              {"DISABLE", ArityNone},
}

// Commands returns every known command.
func Commands() []Command {
	out := make([]Command, 0, len(commands))
	for c := range commands {
		out = append(out, c)
	}
	return out
}

// Known reports whether c is part of the command set.
func (c Command) Known() bool {
	_, ok := commands[c]
	return ok
}

// Arity returns the declared data arity of c. Unknown commands report ArityNone.
func (c Command) Arity() Arity {
	return commands[c].arity
}

func (c Command) String() string {
	if info, ok := commands[c]; ok {
		return info.name
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}

func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "none"
	case ArityOne:
		return "one"
	case ArityOptional:
		return "optional"
	}
	return fmt.Sprintf("Arity(%d)", int(a))
}
