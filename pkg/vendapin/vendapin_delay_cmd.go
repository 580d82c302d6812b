package vendapin

import (
	"context"
	"fmt"
	"time"

	"github.com/seagrayinc/vendapin/pkg/protocol"
)

// Delay returns the dispenser's configured delay time. The device stores it in
// whole seconds.
func (s *Session) Delay(ctx context.Context) (time.Duration, error) {
	v, err := s.readRegister(ctx, protocol.ReadDelay)
	return time.Duration(v) * time.Second, err
}

func (s *Session) SetDelay(ctx context.Context, d time.Duration) error {
	secs := d / time.Second
	if d%time.Second != 0 || secs < 0 || secs > 0xFF {
		return &protocol.EncodingError{
			Command: protocol.WriteDelay,
			Reason:  fmt.Sprintf("delay %s is not a whole number of seconds between 0 and 255", d),
		}
	}

	_, err := s.command(ctx, protocol.WriteDelay, byte(secs))
	return err
}
