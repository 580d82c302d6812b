package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrEncoding          = errors.New("encoding error")
	ErrMalformedFrame    = errors.New("malformed frame")
	ErrNonPacketInput    = errors.New("non-packet input")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrUnknownAckCode    = errors.New("unknown ack code")
	ErrUnknownStatusCode = errors.New("unknown status code")

	// Ack faults reported by the device in place of ACK/NAK.
	ErrIncompleteCommand   = errors.New("device reported incomplete command packet")
	ErrUnrecognizedCommand = errors.New("device reported unrecognized command packet")
	ErrDeviceChecksum      = errors.New("device reported data packet checksum error")
)

// EncodingError is returned when a command is encoded with data that does not
// match its arity.
type EncodingError struct {
	Command Command
	Reason  string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s: %s", e.Command, e.Reason)
}

func (e *EncodingError) Is(target error) bool { return target == ErrEncoding }

type ChecksumMismatchError struct {
	Received byte
	Computed byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: received 0x%02X, computed 0x%02X", e.Received, e.Computed)
}

func (e *ChecksumMismatchError) Is(target error) bool { return target == ErrChecksumMismatch }

type UnknownAckCodeError struct {
	Code byte
}

func (e *UnknownAckCodeError) Error() string {
	return fmt.Sprintf("unknown ack code 0x%02X", e.Code)
}

func (e *UnknownAckCodeError) Is(target error) bool { return target == ErrUnknownAckCode }

type UnknownStatusCodeError struct {
	Code byte
}

func (e *UnknownStatusCodeError) Error() string {
	return fmt.Sprintf("unknown status code 0x%02X", e.Code)
}

func (e *UnknownStatusCodeError) Is(target error) bool { return target == ErrUnknownStatusCode }

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedFrame, fmt.Sprintf(format, args...))
}
