package vendapin

import (
	"context"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// TotalRetries returns how often the dispenser retries a failed dispense.
func (s *Session) TotalRetries(ctx context.Context) (uint8, error) {
	v, err := s.readRegister(ctx, protocol.ReadTotalRetries)
	return uint8(v), err
}

func (s *Session) SetTotalRetries(ctx context.Context, n uint8) error {
	_, err := s.command(ctx, protocol.WriteTotalRetries, n)
	return err
}
