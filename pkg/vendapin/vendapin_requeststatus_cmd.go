package vendapin

import (
	"context"
	"fmt"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// RequestStatus asks the dispenser for its state. An ACK means READY; a NAK
// carries the reason the device is not ready.
func (s *Session) RequestStatus(ctx context.Context) (protocol.StatusCode, error) {
	f, err := s.roundTrip(ctx, protocol.RequestStatus)
	if err != nil {
		return 0, err
	}

	accepted, err := protocol.WasAccepted(f)
	if err != nil {
		return 0, fmt.Errorf("request status: %w", err)
	}
	if accepted {
		return protocol.StatusReady, nil
	}

	b, ok := f.DataByte()
	if !ok {
		return 0, fmt.Errorf("request status: %w: rejected without a status byte (%s)", protocol.ErrMalformedFrame, f)
	}

	status, err := protocol.ClassifyStatus(b)
	if err != nil {
		return 0, fmt.Errorf("request status: %w", err)
	}
	return status, nil
}
