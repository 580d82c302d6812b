package vendapin

import (
	"context"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// CardHold reports whether a dispensed card is held in the mouth of the
// dispenser until it is taken.
func (s *Session) CardHold(ctx context.Context) (bool, error) {
	v, err := s.readRegister(ctx, protocol.ReadCardHold)
	return v != 0, err
}

func (s *Session) SetCardHold(ctx context.Context, hold bool) error {
	var b byte
	if hold {
		b = 0x01
	}
	_, err := s.command(ctx, protocol.WriteCardHold, b)
	return err
}
