package serial

// Mock is a scripted in-memory transport. Responses queued with Respond are
// released one per Write, the way the dispenser answers one packet per request.
type Mock struct {
	Writes [][]byte

	// WriteErr and ReadErr, when set, are returned by every Write and ReadByte.
	WriteErr error
	ReadErr  error

	responses [][]byte
	pending   []byte
	reads     int
	closed    bool
}

func NewMock() *Mock {
	return &Mock{}
}

// Respond queues replies for the following writes. A nil reply leaves the
// line silent for that write.
func (m *Mock) Respond(replies ...[]byte) {
	m.responses = append(m.responses, replies...)
}

// Emit makes b readable immediately, e.g. the boot string.
func (m *Mock) Emit(b []byte) {
	m.pending = append(m.pending, b...)
}

// Reads reports how many bytes have been consumed through ReadByte.
func (m *Mock) Reads() int {
	return m.reads
}

func (m *Mock) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}

	m.Writes = append(m.Writes, append([]byte(nil), p...))
	if len(m.responses) > 0 {
		m.pending = append(m.pending, m.responses[0]...)
		m.responses = m.responses[1:]
	}
	return len(p), nil
}

func (m *Mock) Buffered() (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return len(m.pending), nil
}

func (m *Mock) ReadByte() (byte, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.ReadErr != nil {
		return 0, m.ReadErr
	}
	if len(m.pending) == 0 {
		return 0, ErrTimeout
	}

	b := m.pending[0]
	m.pending = m.pending[1:]
	m.reads++
	return b, nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}
