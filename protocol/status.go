package protocol

import "encoding/binary"

// Mode is the regulation mode reported in the status bitfield.
type Mode byte

// Regulation modes. The device transiently reports ModeUnknown (raw
// bits 00) during transitions; it is a legitimate decoded value, not
// an error.
const (
	ModeUnknown Mode = iota
	ModeCV
	ModeCC
	ModeUnregulated
)

// String returns a human-readable name for the regulation mode.
func (m Mode) String() string {
	switch m {
	case ModeCV:
		return "CV"
	case ModeCC:
		return "CC"
	case ModeUnregulated:
		return "Unreg"
	default:
		return "Unknown"
	}
}

// Status bitfield layout (payload byte 6).
const (
	statusOutputOn = 0x01 // bit 0
	statusOverTemp = 0x02 // bit 1
	// bits 2-3: regulation mode
	// bits 4-6: fan speed
	statusRemote = 0x80 // bit 7
)

// Status is a decoded device state snapshot. It is a value object:
// derived once per successful status query and superseded by the
// next snapshot, never mutated in place.
type Status struct {
	// ActualVoltage is the measured output voltage in volts
	ActualVoltage float64

	// ActualCurrent is the measured output current in amps
	ActualCurrent float64

	// VoltageSetpoint is the configured voltage setpoint in volts
	VoltageSetpoint float64

	// CurrentSetpoint is the configured current limit in amps
	CurrentSetpoint float64

	// MaxVoltage is the configured maximum voltage in volts
	MaxVoltage float64

	// OutputOn reports whether the output stage is enabled
	OutputOn bool

	// Mode is the regulation mode (CV, CC, Unreg or Unknown)
	Mode Mode

	// OverTemp reports whether the over-temperature protection tripped
	OverTemp bool

	// FanSpeed is the fan speed level (0-5)
	FanSpeed byte

	// Remote reports whether the device is under remote control
	Remote bool
}

// ParseStatus decodes a Read Status reply frame into a snapshot.
//
// Payload layout (offsets relative to payload start):
//
//	bytes 0-1:   actual current, mA, little-endian 16-bit
//	bytes 2-5:   actual voltage, mV, little-endian 32-bit
//	byte 6:      status bitfield
//	bytes 7-8:   current setpoint, mA
//	bytes 9-12:  maximum voltage, mV
//	bytes 13-16: voltage setpoint, mV
//
// Values stay in integer milli-units until this decode boundary and
// are converted to fractional volts/amps exactly once.
func ParseStatus(f Frame) (*Status, error) {
	if f.Opcode() != CmdReadStatus {
		return nil, &UnexpectedReplyError{Want: CmdReadStatus, Got: f.Opcode()}
	}

	p := f.Payload()
	actualMA := binary.LittleEndian.Uint16(p[0:2])
	actualMV := binary.LittleEndian.Uint32(p[2:6])
	state := p[6]
	setpointMA := binary.LittleEndian.Uint16(p[7:9])
	maxMV := binary.LittleEndian.Uint32(p[9:13])
	setpointMV := binary.LittleEndian.Uint32(p[13:17])

	return &Status{
		ActualVoltage:   float64(actualMV) / 1000,
		ActualCurrent:   float64(actualMA) / 1000,
		VoltageSetpoint: float64(setpointMV) / 1000,
		CurrentSetpoint: float64(setpointMA) / 1000,
		MaxVoltage:      float64(maxMV) / 1000,
		OutputOn:        state&statusOutputOn != 0,
		OverTemp:        state&statusOverTemp != 0,
		Mode:            Mode(state >> 2 & 0x03),
		FanSpeed:        state >> 4 & 0x07,
		Remote:          state&statusRemote != 0,
	}, nil
}

// ParseAck extracts the result code from a generic acknowledgement
// frame (opcode CmdAck, payload byte 0).
func ParseAck(f Frame) (ResultCode, error) {
	if f.Opcode() != CmdAck {
		return 0, &UnexpectedReplyError{Want: CmdAck, Got: f.Opcode()}
	}
	return ResultCode(f.Payload()[0]), nil
}
