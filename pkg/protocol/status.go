package protocol

import "fmt"

// StatusCode is the operational state reported in a response's data byte. The
// zero value means no status was reported.
type StatusCode byte

const (
	StatusReady        StatusCode = 0x30 // Ready to dispense the card
	StatusBusy         StatusCode = 0x31 // Busy dispensing the card
	StatusEmpty        StatusCode = 0x32 // No cards inside the card dispenser stack
	StatusJammed       StatusCode = 0x33 // Card is jammed inside the card dispenser
	StatusCardHeld     StatusCode = 0x34 // Card is dispensed, but not yet removed
	StatusDisabled     StatusCode = 0x35
	StatusCheckSensors StatusCode = 0x36
	StatusLowStock     StatusCode = 0x37
)

var statusNames = map[StatusCode]string{
	StatusReady:        "READY",
	StatusBusy:         "BUSY",
	StatusEmpty:        "EMPTY",
	StatusJammed:       "JAMMED",
	StatusCardHeld:     "CARD_HELD",
	StatusDisabled:     "DISABLED",
	StatusCheckSensors: "CHECK_SENSORS",
	StatusLowStock:     "LOW_STOCK",
}

func (s StatusCode) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	if s == 0 {
		return "NONE"
	}
	return fmt.Sprintf("StatusCode(0x%02X)", byte(s))
}

// ClassifyStatus maps a status data byte to a StatusCode.
func ClassifyStatus(b byte) (StatusCode, error) {
	s := StatusCode(b)
	if _, ok := statusNames[s]; !ok {
		return 0, &UnknownStatusCodeError{Code: b}
	}
	return s, nil
}
