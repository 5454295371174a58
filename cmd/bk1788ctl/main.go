// Command bk1788ctl controls a BK Precision 1788B power supply over a
// serial link.
//
// Usage:
//
//	bk1788ctl [flags] status
//	bk1788ctl [flags] monitor
//	bk1788ctl [flags] voltage <volts>
//	bk1788ctl [flags] current <amps>
//	bk1788ctl [flags] output on|off
//	bk1788ctl [flags] remote on|off
//	bk1788ctl [flags] unlock
//
// unlock returns the instrument to front-panel control; useful when a
// crashed program left it locked in remote mode.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/feiglein74/go-bk1788/internal/config"
	"github.com/feiglein74/go-bk1788/internal/logging"
	"github.com/feiglein74/go-bk1788/protocol"
	"github.com/feiglein74/go-bk1788/psu"
	"github.com/feiglein74/go-bk1788/transport"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: bk1788ctl [flags] <command>

Commands:
  status               print a full status snapshot
  monitor              poll and print status until interrupted
  voltage <volts>      set the voltage setpoint (0-32 V)
  current <amps>       set the current limit (0-6 A)
  output on|off        switch the output stage
  remote on|off        switch remote/front-panel control
  unlock               release a locked front panel

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	port := flag.String("port", "", "serial port, overrides config")
	baud := flag.Int("baud", 0, "baud rate, overrides config")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if err := run(*configPath, *port, *baud, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "bk1788ctl:", err)
		os.Exit(1)
	}
}

func run(configPath, port string, baud int, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Serial.Port = port
	}
	if baud != 0 {
		cfg.Serial.BaudRate = baud
	}

	logger := logging.New(cfg.Logging)
	defer logger.Sync()

	ch, err := transport.Open(transport.Config{
		Port:     cfg.Serial.Port,
		BaudRate: cfg.Serial.BaudRate,
	})
	if err != nil {
		return err
	}
	defer ch.Close()

	opts := []psu.Option{
		psu.WithAddress(byte(cfg.Serial.Address)),
		psu.WithReadTimeout(cfg.Serial.ReadTimeout),
		psu.WithLogger(logger),
	}
	if cfg.Serial.SettleDelay > 0 {
		opts = append(opts, psu.WithSettleDelay(cfg.Serial.SettleDelay))
	}
	ctrl := psu.New(ch, opts...)
	guard := psu.NewGuard(ctrl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "status":
		return cmdStatus(ctx, ctrl)
	case "monitor":
		return cmdMonitor(ctx, guard, cfg)
	case "voltage":
		if len(args) != 2 {
			return errors.New("voltage: expected one argument")
		}
		volts, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("voltage: %w", err)
		}
		return guard.SetVoltage(ctx, volts)
	case "current":
		if len(args) != 2 {
			return errors.New("current: expected one argument")
		}
		amps, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("current: %w", err)
		}
		return guard.SetCurrent(ctx, amps)
	case "output":
		on, err := parseOnOff("output", args)
		if err != nil {
			return err
		}
		return guard.SetOutput(ctx, on)
	case "remote":
		remote, err := parseOnOff("remote", args)
		if err != nil {
			return err
		}
		return ctrl.SetRemoteMode(ctx, remote)
	case "unlock":
		return cmdUnlock(ctx, ctrl)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseOnOff(cmd string, args []string) (bool, error) {
	if len(args) != 2 {
		return false, fmt.Errorf("%s: expected on or off", cmd)
	}
	switch args[1] {
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s: expected on or off, got %q", cmd, args[1])
	}
}

func cmdStatus(ctx context.Context, ctrl *psu.Controller) error {
	status, err := ctrl.ReadStatus(ctx)
	if err != nil {
		return err
	}
	printStatus(status)
	return nil
}

func printStatus(s *protocol.Status) {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	fmt.Printf("voltage:  %.3f V  (setpoint %.3f V, max %.3f V)\n",
		s.ActualVoltage, s.VoltageSetpoint, s.MaxVoltage)
	fmt.Printf("current:  %.3f A  (setpoint %.3f A)\n",
		s.ActualCurrent, s.CurrentSetpoint)
	fmt.Printf("output:   %s\n", onOff(s.OutputOn))
	fmt.Printf("mode:     %s\n", s.Mode)
	fmt.Printf("remote:   %s\n", onOff(s.Remote))
	fmt.Printf("fan:      %d\n", s.FanSpeed)
	fmt.Printf("overtemp: %s\n", onOff(s.OverTemp))
}

func cmdMonitor(ctx context.Context, guard *psu.Guard, cfg *config.Config) error {
	mon := psu.NewMonitor(guard, cfg.Monitor.Interval,
		psu.WithErrorBackoff(cfg.Monitor.ErrorBackoff),
		psu.OnStatus(func(s *protocol.Status) {
			fmt.Printf("%8.3f V  %7.3f A  %7.3f W  %s\n",
				s.ActualVoltage, s.ActualCurrent,
				s.ActualVoltage*s.ActualCurrent, s.Mode)
		}),
		psu.OnError(func(err error) {
			fmt.Fprintln(os.Stderr, "poll failed:", err)
		}),
	)
	if err := mon.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// cmdUnlock releases the front panel if the instrument was left in
// remote mode.
func cmdUnlock(ctx context.Context, ctrl *psu.Controller) error {
	status, err := ctrl.ReadStatus(ctx)
	if err != nil {
		return err
	}
	if !status.Remote {
		fmt.Println("remote mode is already off")
		return nil
	}
	if err := ctrl.SetRemoteMode(ctx, false); err != nil {
		return err
	}
	fmt.Println("remote mode switched off, front panel released")
	return nil
}
