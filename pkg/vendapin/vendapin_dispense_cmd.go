package vendapin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// Dispense ejects one card. On ACK it returns the status the device reported
// with it (READY when none). On NAK it returns a *DispenseRejectedError
// carrying the device's reason, e.g. EMPTY or JAMMED.
func (s *Session) Dispense(ctx context.Context) (protocol.StatusCode, error) {
	f, err := s.roundTrip(ctx, protocol.Dispense)
	if err != nil {
		return 0, err
	}

	accepted, err := protocol.WasAccepted(f)
	if err != nil {
		return 0, fmt.Errorf("dispense: %w", err)
	}

	if !accepted {
		rejected := &DispenseRejectedError{Frame: f}
		if b, ok := f.DataByte(); ok {
			status, err := protocol.ClassifyStatus(b)
			if err != nil {
				rejected.Err = err
				return 0, rejected
			}
			rejected.Status = status
		}
		s.logger.Warn("dispense rejected", slog.String("status", rejected.Status.String()))
		return 0, rejected
	}

	b, ok := f.DataByte()
	if !ok {
		return protocol.StatusReady, nil
	}

	status, err := protocol.ClassifyStatus(b)
	if err != nil {
		return 0, fmt.Errorf("dispense: %w", err)
	}
	return status, nil
}
