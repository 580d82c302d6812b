package vendapin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// maxFlushRounds bounds Flush against a device that never stops talking.
const maxFlushRounds = 64

// Flush reads and discards whatever the device has already sent, such as the
// boot string or a reply to an abandoned request. It returns the number of
// packets and strings discarded and never fails.
func (s *Session) Flush(ctx context.Context) int {
	id := uuid.New()
	x := exchange{id: id, logger: s.logger.With(slog.String("exchange", id.String()), slog.String("op", "flush"))}
	discarded := 0

	for i := 0; i < maxFlushRounds && ctx.Err() == nil; i++ {
		raw, err := s.receive()
		if err != nil {
			if !errors.Is(err, ErrNoResponse) {
				x.logger.Warn("flush stopped", slog.Any("error", err))
			}
			break
		}

		discarded++
		_, err = s.decode(x, raw)
		switch {
		case errors.Is(err, protocol.ErrNonPacketInput):
			x.logger.Info("discarded boot string", slog.String("text", string(raw)))
		case err != nil:
			x.logger.Warn("discarded unreadable bytes", slog.Any("error", err), slog.String("bytes", protocol.EncodeToString(raw)))
		default:
			x.logger.Debug("discarded stale packet", slog.String("bytes", protocol.EncodeToString(raw)))
		}
	}

	return discarded
}
