package vendapin

import (
	"context"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// TotalCount returns the number of cards dispensed through the API.
func (s *Session) TotalCount(ctx context.Context) (uint32, error) {
	return s.readRegister(ctx, protocol.ReadTotalCount)
}

// TotalButtonCount returns the number of cards dispensed with the front panel button.
func (s *Session) TotalButtonCount(ctx context.Context) (uint32, error) {
	return s.readRegister(ctx, protocol.ReadTotalButtonCount)
}
