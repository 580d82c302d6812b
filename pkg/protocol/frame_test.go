package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		data []byte
		want string
	}{
		{name: "dispense", cmd: Dispense, want: "02-01-80-00-03-80"},
		{name: "request status", cmd: RequestStatus, want: "02-01-81-00-03-81"},
		{name: "soft reset", cmd: Reset, want: "02-01-86-00-03-86"},
		{name: "hard reset", cmd: Reset, data: []byte{HardResetData}, want: "02-01-86-01-01-03-86"},
		{name: "write delay", cmd: WriteDelay, data: []byte{0x05}, want: "02-01-89-01-05-03-8d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.cmd, tt.data...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, EncodeToString(got))
		})
	}
}

func TestEncodeArity(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		data []byte
	}{
		{name: "data on no-data command", cmd: Dispense, data: []byte{0x01}},
		{name: "missing data", cmd: WriteCardHold},
		{name: "too much data", cmd: Reset, data: []byte{0x01, 0x02}},
		{name: "unknown command", cmd: Command(0xA0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.cmd, tt.data...)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrEncoding)

			var encErr *EncodingError
			require.True(t, errors.As(err, &encErr))
			assert.Equal(t, tt.cmd, encErr.Command)
		})
	}
}

func TestEncodeToAddress(t *testing.T) {
	got, err := EncodeTo(0x05, RequestStatus)
	require.NoError(t, err)

	f, err := Decode(got)
	require.NoError(t, err)
	assert.Equal(t, byte(0x05), f.Address)
}

func TestRoundTripNoData(t *testing.T) {
	for _, cmd := range Commands() {
		if cmd.Arity() == ArityOne {
			continue
		}
		t.Run(cmd.String(), func(t *testing.T) {
			raw, err := Encode(cmd)
			require.NoError(t, err)

			f, err := Decode(raw)
			require.NoError(t, err)
			assert.Equal(t, byte(0), f.Length)
			assert.Empty(t, f.Data)
			assert.Equal(t, byte(cmd), f.Command)
			assert.Equal(t, byte(DefaultAddress), f.Address)
		})
	}
}

func TestRoundTripOneByte(t *testing.T) {
	for _, cmd := range Commands() {
		if cmd.Arity() == ArityNone {
			continue
		}
		t.Run(cmd.String(), func(t *testing.T) {
			for d := 0; d <= 0xFF; d++ {
				raw, err := Encode(cmd, byte(d))
				require.NoError(t, err)

				f, err := Decode(raw)
				require.NoError(t, err, "data 0x%02X", d)
				assert.Equal(t, []byte{byte(d)}, f.Data)
				assert.Equal(t, byte(1), f.Length)
				assert.Equal(t, raw, f.Bytes())
			}
		})
	}
}

func TestDecodeChecksumMismatch(t *testing.T) {
	raw, err := Encode(WriteCardHold, 0x01)
	require.NoError(t, err)

	// ADD, CMD and DATA positions; flipping STX, LEN or ETX breaks the structure first.
	for _, pos := range []int{1, 2, 4} {
		for bit := 0; bit < 8; bit++ {
			corrupt := append([]byte(nil), raw...)
			corrupt[pos] ^= 1 << bit

			_, err := Decode(corrupt)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrChecksumMismatch, "pos %d bit %d", pos, bit)

			var csErr *ChecksumMismatchError
			require.True(t, errors.As(err, &csErr))
			assert.Equal(t, raw[len(raw)-1], csErr.Received)
			assert.Equal(t, Checksum(corrupt[:len(corrupt)-1]), csErr.Computed)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "empty", raw: nil},
		{name: "short", raw: parseHexString("02-01-06-03-04")},
		{name: "bad start", raw: parseHexString("05-01-06-00-03-00")},
		{name: "bad end", raw: parseHexString("02-01-06-00-04-01")},
		{name: "length too long", raw: parseHexString("02-01-06-02-30-03-36")},
		{name: "length too short", raw: parseHexString("02-01-06-00-30-03-36")},
		{name: "bad end ending in cr", raw: parseHexString("02-01-06-00-04-0d")},
		{name: "short ending in cr", raw: parseHexString("02-01-06-01-0d")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedFrame)
			assert.NotErrorIs(t, err, ErrNonPacketInput)
		})
	}
}

func TestDecodeBootString(t *testing.T) {
	_, err := Decode([]byte("VENDAPIN\r"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonPacketInput)
	assert.NotErrorIs(t, err, ErrMalformedFrame)

	_, err = Decode([]byte("\r"))
	assert.ErrorIs(t, err, ErrNonPacketInput)
}

func TestDecodeCarriageReturnChecksum(t *testing.T) {
	// Pick the data byte so the checksum lands on 0x0D.
	raw := EncodeRaw(DefaultAddress, byte(Accepted), []byte{0x0D ^ 0x02 ^ 0x01 ^ 0x06 ^ 0x01 ^ 0x03})
	require.Equal(t, byte(CarriageReturn), raw[len(raw)-1])

	f, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, byte(Accepted), f.Command)
}

func TestDecodeResponses(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		ack    AckCode
		status StatusCode
	}{
		{name: "ack ready", raw: "02-01-06-01-30-03-37", ack: Accepted, status: StatusReady},
		{name: "nak empty", raw: "02-01-15-01-32-03-26", ack: Rejected, status: StatusEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode(parseHexString(tt.raw))
			require.NoError(t, err)

			ack, err := ClassifyAck(f)
			require.NoError(t, err)
			assert.Equal(t, tt.ack, ack)

			b, ok := f.DataByte()
			require.True(t, ok)
			status, err := ClassifyStatus(b)
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestFrameLength(t *testing.T) {
	n, ok := FrameLength(parseHexString("02-01-06-01"))
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = FrameLength(parseHexString("02-01-06"))
	assert.False(t, ok)

	_, ok = FrameLength([]byte("VEND"))
	assert.False(t, ok)
}
