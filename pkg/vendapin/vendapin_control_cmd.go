package vendapin

import (
	"context"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// ResetEEPROM restores the factory defaults of every setting.
func (s *Session) ResetEEPROM(ctx context.Context) error {
	_, err := s.command(ctx, protocol.ResetEEPROM)
	return err
}

// Enable turns motor control on. The dispenser starts up enabled.
func (s *Session) Enable(ctx context.Context) error {
	_, err := s.command(ctx, protocol.Enable)
	return err
}

func (s *Session) Disable(ctx context.Context) error {
	_, err := s.command(ctx, protocol.Disable)
	return err
}
