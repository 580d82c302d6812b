package main

import (
	"bytes"
	"context"
	"sync"

	"github.com/abiosoft/ishell"

	"github.com/seagrayinc/vendapin/pkg/vendapin"
)

const prompt = "vendapin> "

// runShell runs the commands interactively against one open session.
func runShell(ctx context.Context, s *vendapin.Session) error {
	sh := ishell.New()
	sh.SetPrompt(prompt)

	for _, c := range commands {
		sh.AddCmd(shellCmd(ctx, s, c))
	}

	closeNow := closeOnDone(ctx, sh)
	sh.Run()
	closeNow()
	return nil
}

// closeOnDone closes c once ctx is done, ending a blocked prompt read. The
// returned func closes c immediately; c is closed at most once.
func closeOnDone(ctx context.Context, c interface{ Close() }) func() {
	var once sync.Once
	closeOnce := func() { once.Do(c.Close) }

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			closeOnce()
		case <-done:
		}
	}()

	return func() {
		close(done)
		closeOnce()
	}
}

func shellCmd(ctx context.Context, s *vendapin.Session, c command) *ishell.Cmd {
	return &ishell.Cmd{
		Name: c.name,
		Help: c.help,
		Func: func(ic *ishell.Context) {
			var buf bytes.Buffer
			err := c.run(ctx, s, ic.Args, &buf)
			if buf.Len() > 0 {
				ic.Print(buf.String())
			}
			if err != nil {
				ic.Err(err)
			}
		},
	}
}
