package vendapin

import (
	"context"
	"log/slog"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// Reset resets the dispenser settings.
//
// A hard reset sends RESET with 0x01 and does not read a reply; the device
// does not answer it reliably. A soft reset reads the reply but only logs
// it: the device often NAKs or garbles it while still resetting. Only
// encoding, write and cancellation errors are returned.
func (s *Session) Reset(ctx context.Context, hard bool) error {
	x := s.begin(protocol.Reset)

	if hard {
		return s.send(x, protocol.HardResetData)
	}

	if err := s.send(x); err != nil {
		return err
	}
	if err := s.await(ctx, x); err != nil {
		return err
	}

	f, err := s.receiveFrame(x)
	if err != nil {
		x.logger.Info("ignoring reset response", slog.Any("error", err))
		return nil
	}

	accepted, err := protocol.WasAccepted(f)
	x.logger.Info("reset response",
		slog.Bool("accepted", accepted),
		slog.Any("error", err),
		slog.String("bytes", f.String()),
	)
	return nil
}
