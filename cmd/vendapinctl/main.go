package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/seagrayinc/vendapin/internal/config"
	"github.com/seagrayinc/vendapin/internal/logging"
	"github.com/seagrayinc/vendapin/internal/serial"
	"github.com/seagrayinc/vendapin/pkg/vendapin"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM, syscall.SIGINT,
	)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "vendapinctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("vendapinctl", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file (YAML, TOML or JSON)")
	port := fs.String("port", "", "serial device, overrides serial.device")
	trace := fs.Bool("trace", false, "print every packet sent and received")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		usage(fs)
		return flag.ErrHelp
	}

	name, rest := fs.Arg(0), fs.Args()[1:]

	// Host inspection needs no device.
	switch name {
	case "ports":
		return listPorts(out)
	case "scan":
		return scanUSB(out)
	}

	cmd, ok := lookup(name)
	if !ok && name != "shell" {
		return fmt.Errorf("unknown command %q", name)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.Serial.Device = *port
	}
	if cfg.Serial.Device == "" {
		return errors.New("no serial device configured; use -port or VENDAPIN_SERIAL_DEVICE")
	}

	logger, closer := logging.New(cfg.Logging)
	defer closer.Close()

	p, err := serial.Open(cfg.SerialPort())
	if err != nil {
		return err
	}

	opts := append(cfg.SessionOptions(), vendapin.WithLogger(logger))
	if *trace {
		opts = append(opts, vendapin.WithTracer(printTrace(out)))
	}
	s := vendapin.New(p, opts...)
	defer s.Close()

	if cfg.Device.FlushOnOpen {
		if n := s.Flush(ctx); n > 0 {
			logger.Info("flushed stale device output", slog.Int("discarded", n))
		}
	}

	if name == "shell" {
		return runShell(ctx, s)
	}
	return cmd.run(ctx, s, rest, out)
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "usage: vendapinctl [flags] <command> [args]\n\ncommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-14s %s\n", c.usage(), c.help)
	}
	fmt.Fprintf(w, "  %-14s %s\n", "shell", "interactive shell")
	fmt.Fprintf(w, "  %-14s %s\n", "ports", "list serial ports")
	fmt.Fprintf(w, "  %-14s %s\n", "scan", "list attached USB-serial adapters")
	fmt.Fprintf(w, "\nflags:\n")
	fs.PrintDefaults()
}

func printTrace(out io.Writer) vendapin.Tracer {
	return func(ev vendapin.TraceEvent) {
		arrow := ">>"
		if ev.Direction == vendapin.DirectionIn {
			arrow = "<<"
		}
		switch {
		case ev.Err != nil:
			fmt.Fprintf(out, "%s % x (%v)\n", arrow, ev.Raw, ev.Err)
		default:
			fmt.Fprintf(out, "%s %s\n", arrow, ev.Frame)
		}
	}
}
