package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.bug.st/serial"
)

//go:generate go tool mockgen -destination=mock_transport.go -package=commands . Transport,Dialer

// Transport is an established, bidirectional byte stream carrying command
// lines from a peer and replies back to it.
//
// Lines arrive terminated by LF (an optional CR before it is dropped). Typical
// implementations are serial ports, pipes and in-memory fakes used in tests.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens the Transport a Processor serves.
//
// Dial may block and should respect cancellation of the context. Once a
// Transport is obtained, the Dialer is no longer needed.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc func(ctx context.Context) (Transport, error)

// Dial calls f(ctx).
func (f DialerFunc) Dial(ctx context.Context) (Transport, error) {
	return f(ctx)
}

// DefaultBaudRate is used by SerialDialer when neither Mode nor BaudRate is
// set.
const DefaultBaudRate = 115200

// SerialDialer opens a serial port using go.bug.st/serial.
type SerialDialer struct {
	// PortName is the serial device, e.g. "/dev/ttyUSB0" or "COM3".
	PortName string
	// BaudRate is used when Mode is nil.
	BaudRate int
	// Mode overrides every line setting when not nil.
	Mode *serial.Mode
}

// Dial opens the serial port.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("commands: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("commands: serial port name is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud <= 0 {
			baud = DefaultBaudRate
		}
		mode = &serial.Mode{
			BaudRate: baud,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.PortName, err)
	}
	return port, nil
}
