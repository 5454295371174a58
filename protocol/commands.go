package protocol

import "encoding/binary"

// BuildSetRemoteModeCmd constructs a Set Remote Mode command frame.
//
// Frame structure:
//
//	[MARKER][ADDR][0x20][MODE][0x00 x21][CHECKSUM]
//
// MODE is 0x01 for remote control, 0x00 for front-panel control.
func BuildSetRemoteModeCmd(address byte, remote bool) Frame {
	var payload [PayloadSize]byte
	if remote {
		payload[0] = 0x01
	}
	return buildFrame(address, CmdSetRemoteMode, payload[:])
}

// BuildSetOutputCmd constructs a Set Output command frame.
//
// Frame structure:
//
//	[MARKER][ADDR][0x21][STATE][0x00 x21][CHECKSUM]
//
// STATE is 0x01 for output on, 0x00 for output off.
func BuildSetOutputCmd(address byte, on bool) Frame {
	var payload [PayloadSize]byte
	if on {
		payload[0] = 0x01
	}
	return buildFrame(address, CmdSetOutput, payload[:])
}

// BuildSetVoltageCmd constructs a Set Voltage command frame.
// The setpoint is given in millivolts.
//
// Frame structure:
//
//	[MARKER][ADDR][0x23][MV_0][MV_1][MV_2][MV_3][0x00 x18][CHECKSUM]
//
// The millivolt value is encoded little-endian.
func BuildSetVoltageCmd(address byte, millivolts uint32) Frame {
	var payload [PayloadSize]byte
	binary.LittleEndian.PutUint32(payload[0:4], millivolts)
	return buildFrame(address, CmdSetVoltage, payload[:])
}

// BuildSetCurrentCmd constructs a Set Current command frame.
// The limit is given in milliamps.
//
// Frame structure:
//
//	[MARKER][ADDR][0x24][MA_0][MA_1][0x00 x20][CHECKSUM]
//
// The milliamp value is encoded little-endian.
func BuildSetCurrentCmd(address byte, milliamps uint16) Frame {
	var payload [PayloadSize]byte
	binary.LittleEndian.PutUint16(payload[0:2], milliamps)
	return buildFrame(address, CmdSetCurrent, payload[:])
}

// BuildReadStatusCmd constructs a Read Status command frame.
// The payload is unused and sent as zeros.
//
// Frame structure:
//
//	[MARKER][ADDR][0x26][0x00 x22][CHECKSUM]
func BuildReadStatusCmd(address byte) Frame {
	return buildFrame(address, CmdReadStatus, nil)
}
