package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/seagrayinc/vendapin/internal/serial"
	"github.com/seagrayinc/vendapin/internal/usbscan"
	"github.com/seagrayinc/vendapin/pkg/vendapin"
)

type command struct {
	name string
	args string
	help string
	run  func(ctx context.Context, s *vendapin.Session, args []string, out io.Writer) error
}

func (c command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

var commands = []command{
	{name: "status", help: "request the dispenser status", run: statusCmd},
	{name: "dispense", help: "dispense one card", run: dispenseCmd},
	{name: "reset", args: "[hard]", help: "reset the dispenser", run: resetCmd},
	{name: "flush", help: "discard pending device output", run: flushCmd},
	{name: "counters", help: "read the dispense counters", run: countersCmd},
	{name: "settings", help: "read retries, card hold and delay", run: settingsCmd},
	{name: "set", args: "KEY VALUE", help: "write retries N, hold on|off or delay DURATION", run: setCmd},
	{name: "enable", help: "enable motor control", run: enableCmd},
	{name: "disable", help: "disable motor control", run: disableCmd},
	{name: "reset-eeprom", help: "restore factory settings", run: resetEEPROMCmd},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func statusCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	status, err := s.RequestStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, status)
	return nil
}

func dispenseCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	status, err := s.Dispense(ctx)
	var rejected *vendapin.DispenseRejectedError
	if errors.As(err, &rejected) {
		return fmt.Errorf("dispenser refused: %s", rejected.Status)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "dispensed, %s\n", status)
	return nil
}

func resetCmd(ctx context.Context, s *vendapin.Session, args []string, out io.Writer) error {
	hard := len(args) > 0 && args[0] == "hard"
	if err := s.Reset(ctx, hard); err != nil {
		return err
	}
	fmt.Fprintln(out, "reset sent")
	return nil
}

func flushCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	fmt.Fprintf(out, "discarded %d\n", s.Flush(ctx))
	return nil
}

func countersCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	total, err := s.TotalCount(ctx)
	if err != nil {
		return err
	}
	button, err := s.TotalButtonCount(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "api: %d\nbutton: %d\n", total, button)
	return nil
}

func settingsCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	retries, err := s.TotalRetries(ctx)
	if err != nil {
		return err
	}
	hold, err := s.CardHold(ctx)
	if err != nil {
		return err
	}
	delay, err := s.Delay(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "retries: %d\nhold: %t\ndelay: %s\n", retries, hold, delay)
	return nil
}

func setCmd(ctx context.Context, s *vendapin.Session, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("usage: set retries N | set hold on|off | set delay DURATION")
	}

	var err error
	switch key, val := args[0], args[1]; key {
	case "retries":
		n, perr := strconv.ParseUint(val, 10, 8)
		if perr != nil {
			return fmt.Errorf("invalid retries: %w", perr)
		}
		err = s.SetTotalRetries(ctx, uint8(n))
	case "hold":
		hold, perr := parseOnOff(val)
		if perr != nil {
			return perr
		}
		err = s.SetCardHold(ctx, hold)
	case "delay":
		d, perr := time.ParseDuration(val)
		if perr != nil {
			return fmt.Errorf("invalid delay: %w", perr)
		}
		err = s.SetDelay(ctx, d)
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "OK")
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q, want on or off", s)
}

func enableCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	if err := s.Enable(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "OK")
	return nil
}

func disableCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	if err := s.Disable(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "OK")
	return nil
}

func resetEEPROMCmd(ctx context.Context, s *vendapin.Session, _ []string, out io.Writer) error {
	if err := s.ResetEEPROM(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "OK")
	return nil
}

func listPorts(out io.Writer) error {
	ports, err := serial.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Fprintln(out, "no serial ports found")
		return nil
	}
	for _, p := range ports {
		if p.IsUSB {
			fmt.Fprintf(out, "%s\tusb %s:%s\t%s\t%s\n", p.Name, p.VendorID, p.ProductID, p.SerialNumber, p.Product)
			continue
		}
		fmt.Fprintln(out, p.Name)
	}
	return nil
}

func scanUSB(out io.Writer) error {
	if !usbscan.Supported() {
		return errors.New("USB enumeration is not supported on this platform")
	}
	adapters, err := usbscan.Scan()
	if err != nil {
		return err
	}
	if len(adapters) == 0 {
		fmt.Fprintln(out, "no USB-serial adapters found")
		return nil
	}
	for _, a := range adapters {
		fmt.Fprintf(out, "%s\t%04X:%04X\tserial %s\t%s\n", a.Bridge.Name, a.Bridge.VendorID, a.Bridge.ProductID, a.Serial, a.Path)
	}
	return nil
}
