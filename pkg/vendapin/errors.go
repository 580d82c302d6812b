package vendapin

import (
	"errors"
	"fmt"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

var (
	// ErrNoResponse means no packet arrived within the settle window, or the
	// device answered with something other than a packet.
	ErrNoResponse = errors.New("no response from device")

	ErrRejected         = errors.New("request rejected by device")
	ErrDispenseRejected = errors.New("dispense rejected")
)

// DispenseRejectedError is returned when the device answers a dispense with
// NAK. Status is zero if the device did not say why, or said something Err
// could not classify.
type DispenseRejectedError struct {
	Frame  protocol.Frame
	Status protocol.StatusCode
	Err    error
}

func (e *DispenseRejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dispense rejected: %v (%s)", e.Err, e.Frame)
	}
	return fmt.Sprintf("dispense rejected: status %s (%s)", e.Status, e.Frame)
}

func (e *DispenseRejectedError) Unwrap() error { return e.Err }

func (e *DispenseRejectedError) Is(target error) bool {
	return target == ErrDispenseRejected || target == ErrRejected
}

// RejectedError is returned when the device answers a register or control
// command with NAK.
type RejectedError struct {
	Command protocol.Command
	Frame   protocol.Frame
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s rejected (%s)", e.Command, e.Frame)
}

func (e *RejectedError) Is(target error) bool { return target == ErrRejected }
