package psu

import "fmt"

// RangeError indicates a setpoint outside the instrument's range.
// The check runs locally: nothing is written to the transport.
type RangeError struct {
	// Quantity is "voltage" or "current"
	Quantity string

	// Value is the rejected setpoint
	Value float64

	// Max is the upper bound of the valid range (the lower bound is 0)
	Max float64

	// Unit is the display unit, "V" or "A"
	Unit string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %.3f %s out of range [0, %g %s]",
		e.Quantity, e.Value, e.Unit, e.Max, e.Unit)
}
