//go:build rp2040 || rp2350

package main

import (
	"machine"
)

// consoleWriteln writes a line to the default serial console (USB CDC on the Pico)
func consoleWriteln(s string) {
	machine.Serial.Write([]byte(s))
	machine.Serial.Write([]byte("\r\n"))
}
