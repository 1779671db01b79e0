package serial

import (
	"io"
)

// Port is the firmware console as seen from the host.
// Implementations: native serial (github.com/tarm/serial) and in-memory
// pipes in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error

	// Device returns the device path the port was opened on
	Device() string
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (USB CDC ignores it, a UART console needs it)
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the console settings used by the firmware
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 500,
	}
}
