package serial

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice returns one queued chunk per Read and records read timeouts.
type fakeDevice struct {
	chunks   [][]byte
	written  []byte
	timeouts []time.Duration
	eof      bool
	readErr  error
	closed   bool
}

func (d *fakeDevice) Read(p []byte) (int, error) {
	if d.readErr != nil {
		return 0, d.readErr
	}
	if len(d.chunks) == 0 {
		if d.eof {
			return 0, io.EOF
		}
		return 0, nil
	}
	n := copy(p, d.chunks[0])
	d.chunks = d.chunks[1:]
	return n, nil
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	d.written = append(d.written, p...)
	return len(p), nil
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

func (d *fakeDevice) SetReadTimeout(t time.Duration) error {
	d.timeouts = append(d.timeouts, t)
	return nil
}

func TestPortBuffered(t *testing.T) {
	cfg := DefaultConfig("fake")
	dev := &fakeDevice{chunks: [][]byte{{0x02, 0x01, 0x06}}}
	p := newPort(dev, *cfg)

	n, err := p.Buffered()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []time.Duration{cfg.PollTimeout}, dev.timeouts)

	// Buffered bytes are reported without touching the device again.
	n, err = p.Buffered()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, dev.timeouts, 1)

	for _, want := range []byte{0x02, 0x01, 0x06} {
		b, err := p.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}

	n, err = p.Buffered()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPortReadByteTimeout(t *testing.T) {
	for _, eof := range []bool{false, true} {
		dev := &fakeDevice{eof: eof}
		p := newPort(dev, *DefaultConfig("fake"))

		_, err := p.ReadByte()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTimeout)
		assert.Equal(t, []time.Duration{time.Second}, dev.timeouts)

		var te interface{ Timeout() bool }
		require.True(t, errors.As(err, &te))
		assert.True(t, te.Timeout())
	}
}

func TestPortReadError(t *testing.T) {
	boom := errors.New("boom")
	p := newPort(&fakeDevice{readErr: boom}, *DefaultConfig("fake"))

	_, err := p.ReadByte()
	assert.ErrorIs(t, err, boom)

	_, err = p.Buffered()
	assert.ErrorIs(t, err, boom)
}

func TestPortClose(t *testing.T) {
	dev := &fakeDevice{}
	p := newPort(dev, *DefaultConfig("fake"))

	_, err := p.Write([]byte{0x02})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, dev.written)

	require.NoError(t, p.Close())
	assert.True(t, dev.closed)

	_, err = p.ReadByte()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = p.Write([]byte{0x02})
	assert.ErrorIs(t, err, ErrClosed)
	require.NoError(t, p.Close())
}

func TestOpenRejectsBadConfig(t *testing.T) {
	_, err := Open(nil)
	assert.Error(t, err)

	cfg := DefaultConfig("/dev/null")
	cfg.Backend = "carrier-pigeon"
	_, err = Open(cfg)
	assert.ErrorContains(t, err, "unknown serial backend")
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.Respond([]byte{0x01}, nil, []byte{0x02, 0x03})

	_, err := m.Write([]byte{0xAA})
	require.NoError(t, err)
	n, _ := m.Buffered()
	assert.Equal(t, 1, n)
	b, err := m.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)

	_, _ = m.Write([]byte{0xBB})
	n, _ = m.Buffered()
	assert.Equal(t, 0, n)
	_, err = m.ReadByte()
	assert.ErrorIs(t, err, ErrTimeout)

	_, _ = m.Write([]byte{0xCC})
	n, _ = m.Buffered()
	assert.Equal(t, 2, n)
	assert.Equal(t, [][]byte{{0xAA}, {0xBB}, {0xCC}}, m.Writes)
	assert.Equal(t, 1, m.Reads())
}
