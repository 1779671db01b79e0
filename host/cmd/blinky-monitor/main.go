package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"blinky/core"
	"blinky/host/logging"
	"blinky/host/monitor"
	"blinky/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	verbose = flag.Bool("verbose", false, "Also log non-event console lines")
)

func main() {
	flag.Parse()

	fmt.Println("Blinky Monitor - follows the board's event log")
	fmt.Print("==============================================\n\n")

	logger, err := logging.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	port, err := serial.Open(cfg)
	if err != nil {
		logger.Errorw("Failed to open serial port", "device", *device, "error", err)
		os.Exit(1)
	}
	defer port.Close()
	logger.Infow("Opened serial port", "device", port.Device(), "baud", cfg.Baud)

	if err := port.Flush(); err != nil {
		logger.Warnw("Flush failed", "error", err)
	}

	m := monitor.New()
	m.OnEvent = func(evt core.Event, s monitor.State) {
		led := "off"
		if s.LEDOn {
			led = "ON"
		}
		fmt.Printf("%-40s blinking=%-5v led=%-3s presses=%d toggles=%d\n",
			core.FormatEvent(evt), s.BlinkEnabled, led, s.Edges, s.Toggles)
	}
	console := logger.Named("console")
	m.OnLine = func(line string) {
		console.Debug(line)
	}

	// Close the port on interrupt so Run returns
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		port.Close()
	}()

	err = m.Run(serial.Persistent(port))

	s := m.State()
	logger.Infow("Monitor stopped",
		"presses", s.Edges,
		"toggles", s.Toggles,
		"pinErrors", s.PinErrors)
	if err != nil {
		logger.Errorw("Console read failed", "error", err)
	}
}
