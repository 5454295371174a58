// Package psu provides the high-level API for driving a BK Precision
// 1788B power supply over a serial channel.
//
// # Overview
//
// The package orchestrates the half-duplex exchange protocol:
//   - exclusive access to the channel per exchange
//   - stale-input flush before every command
//   - baud-rate-derived settle delay between write and read
//   - checksum-validated reply decoding
//
// # Basic Usage
//
//	ch, err := transport.Open(transport.Config{Port: "/dev/ttyUSB0", BaudRate: 4800})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ch.Close()
//
//	ctrl := psu.New(ch)
//	ctx := context.Background()
//
//	if err := ctrl.SetRemoteMode(ctx, true); err != nil {
//	    log.Fatal(err)
//	}
//	if err := ctrl.SetVoltage(ctx, 12.5); err != nil {
//	    log.Fatal(err)
//	}
//	status, err := ctrl.ReadStatus(ctx)
//
// # Concurrency
//
// A Controller serializes all exchanges behind one gate: a background
// poller and a foreground control path may share it freely, and at
// most one exchange is ever in flight on the transport. Never open a
// second channel to the same physical port.
//
// # Remote-Mode Policy
//
// The instrument rejects mutating commands with "unrecognized
// command" while under front-panel control. Guard encapsulates the
// common remediation — re-arm remote mode once and retry once:
//
//	guard := psu.NewGuard(ctrl)
//	defer guard.Release(context.Background())
//
//	err := guard.SetVoltage(ctx, 12.5)
//
// # Monitoring
//
// Monitor polls status at a fixed interval through the same gate and
// caches the latest snapshot:
//
//	mon := psu.NewMonitor(guard, 500*time.Millisecond,
//	    psu.OnStatus(func(s *protocol.Status) {
//	        fmt.Printf("%.3f V  %.3f A\n", s.ActualVoltage, s.ActualCurrent)
//	    }),
//	)
//	go mon.Run(ctx)
//
// # Error Handling
//
// Failed exchanges surface as typed errors and are never retried
// inside the core: *transport.TimeoutError and protocol.ChecksumError
// abort the exchange, *psu.RangeError rejects an out-of-range
// setpoint before transmission, and *protocol.DeviceError carries the
// instrument's own result code.
package psu
