// Package serial opens the host end of the USB CDC link to a board
// streaming load-cell readings (see examples/scale). The Port
// abstraction keeps the reading pipeline testable against an in-memory
// implementation.
package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port is a byte stream from the board.
type Port interface {
	io.ReadWriteCloser

	// Flush discards buffered data, dropping any half-received line
	// from before the host attached.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3").
	Device string

	// Baud rate. USB CDC ignores it, but the OS still wants one.
	Baud int

	// Read timeout in milliseconds (0 = blocking).
	ReadTimeout int
}

// DefaultConfig returns a configuration for a Pico's USB CDC port.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 0,
	}
}

// nativePort wraps the tarm/serial implementation.
type nativePort struct {
	port *serial.Port
}

// Open opens the serial device described by cfg.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &nativePort{port: port}, nil
}

func (p *nativePort) Read(b []byte) (int, error)  { return p.port.Read(b) }
func (p *nativePort) Write(b []byte) (int, error) { return p.port.Write(b) }

func (p *nativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

func (p *nativePort) Flush() error {
	return p.port.Flush()
}
