package protocol

import "fmt"

// Frame is a decoded packet. The Command field holds the request command on
// outgoing frames and the ack code on responses.
type Frame struct {
	Address  byte
	Command  byte
	Length   byte
	Data     []byte
	Checksum byte
}

// DataByte returns the first data byte, if any.
func (f Frame) DataByte() (byte, bool) {
	if len(f.Data) == 0 {
		return 0, false
	}
	return f.Data[0], true
}

// Bytes re-encodes the frame for the wire.
func (f Frame) Bytes() []byte {
	return EncodeRaw(f.Address, f.Command, f.Data)
}

func (f Frame) String() string {
	return EncodeToString(f.Bytes())
}

// Encode builds the wire packet for cmd addressed to the default device.
func Encode(cmd Command, data ...byte) ([]byte, error) {
	return EncodeTo(DefaultAddress, cmd, data...)
}

// EncodeTo builds the wire packet for cmd addressed to addr. The number of data
// bytes must agree with the command's arity.
func EncodeTo(addr byte, cmd Command, data ...byte) ([]byte, error) {
	if !cmd.Known() {
		return nil, &EncodingError{Command: cmd, Reason: "unknown command"}
	}
	if len(data) > 1 {
		return nil, &EncodingError{Command: cmd, Reason: fmt.Sprintf("%d data bytes, at most one allowed", len(data))}
	}

	switch cmd.Arity() {
	case ArityNone:
		if len(data) != 0 {
			return nil, &EncodingError{Command: cmd, Reason: "command takes no data byte"}
		}
	case ArityOne:
		if len(data) != 1 {
			return nil, &EncodingError{Command: cmd, Reason: "command requires a data byte"}
		}
	}

	return EncodeRaw(addr, byte(cmd), data), nil
}

// EncodeRaw builds a packet for any command byte without arity checks. Devices
// and test fixtures use it to build response frames.
func EncodeRaw(addr, cmd byte, data []byte) []byte {
	packet := make([]byte, 0, MinFrameLength+len(data))
	packet = append(packet, StartOfText, addr, cmd, byte(len(data)))
	packet = append(packet, data...)
	packet = append(packet, EndOfText)
	return append(packet, Checksum(packet))
}

// FrameLength returns the total packet length announced by a header holding at
// least STX, ADD, CMD and LEN. It returns false if header is too short or does
// not start with STX.
func FrameLength(header []byte) (int, bool) {
	if len(header) < HeaderLength || header[0] != StartOfText {
		return 0, false
	}
	return MinFrameLength + int(header[3]), true
}

// Decode validates raw and extracts its fields.
//
// The device prints a boot string terminated by a carriage return outside the
// packet protocol; such input fails with ErrNonPacketInput so callers can
// discard it. Structural faults fail with ErrMalformedFrame and integrity
// faults with a *ChecksumMismatchError.
func Decode(raw []byte) (Frame, error) {
	if len(raw) == 0 {
		return Frame{}, malformed("empty input")
	}

	if isBootString(raw) {
		return Frame{}, fmt.Errorf("%w: %q", ErrNonPacketInput, raw)
	}

	if len(raw) < MinFrameLength {
		return Frame{}, malformed("%d bytes, need at least %d", len(raw), MinFrameLength)
	}

	if raw[0] != StartOfText {
		return Frame{}, malformed("could not find frame start, got 0x%02X", raw[0])
	}

	end := len(raw) - 2
	if raw[end] != EndOfText {
		return Frame{}, malformed("could not find frame end, got 0x%02X", raw[end])
	}

	length := raw[3]
	if MinFrameLength+int(length) != len(raw) {
		return Frame{}, malformed("declared length %d does not fit %d bytes", length, len(raw))
	}

	received := raw[len(raw)-1]
	computed := Checksum(raw[:len(raw)-1])
	if received != computed {
		return Frame{}, &ChecksumMismatchError{Received: received, Computed: computed}
	}

	data := make([]byte, length)
	copy(data, raw[HeaderLength:HeaderLength+int(length)])

	return Frame{
		Address:  raw[1],
		Command:  raw[2],
		Length:   length,
		Data:     data,
		Checksum: received,
	}, nil
}

// isBootString reports whether raw is carriage-return terminated text. Anything
// starting with STX is a packet, possibly damaged, and 0x0D is a legal checksum.
func isBootString(raw []byte) bool {
	return raw[0] != StartOfText && raw[len(raw)-1] == CarriageReturn
}
