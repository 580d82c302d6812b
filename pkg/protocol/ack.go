package protocol

import "fmt"

// AckCode is the reserved response code carried in the command position of a
// response frame.
type AckCode byte

const (
	Accepted       AckCode = 0x06 // ACK
	Rejected       AckCode = 0x15 // NAK
	Incomplete     AckCode = 0xFD // INC, incomplete command packet
	Unrecognized   AckCode = 0xFE // UNR, unrecognized command packet
	ChecksumFailed AckCode = 0xFF // CER, data packet checksum error
)

func (a AckCode) String() string {
	switch a {
	case Accepted:
		return "ACCEPTED"
	case Rejected:
		return "REJECTED"
	case Incomplete:
		return "INCOMPLETE"
	case Unrecognized:
		return "UNRECOGNIZED"
	case ChecksumFailed:
		return "CHECKSUM_ERROR"
	}
	return fmt.Sprintf("AckCode(0x%02X)", byte(a))
}

// ClassifyAck maps the frame's command byte to an AckCode.
func ClassifyAck(f Frame) (AckCode, error) {
	switch a := AckCode(f.Command); a {
	case Accepted, Rejected, Incomplete, Unrecognized, ChecksumFailed:
		return a, nil
	}
	return 0, &UnknownAckCodeError{Code: f.Command}
}

// WasAccepted reports whether the device accepted (true) or rejected (false)
// the request. The remaining ack codes are protocol faults and return the
// matching error instead.
func WasAccepted(f Frame) (bool, error) {
	ack, err := ClassifyAck(f)
	if err != nil {
		return false, err
	}

	switch ack {
	case Accepted:
		return true, nil
	case Rejected:
		return false, nil
	case Incomplete:
		return false, ErrIncompleteCommand
	case Unrecognized:
		return false, ErrUnrecognizedCommand
	default:
		return false, ErrDeviceChecksum
	}
}
