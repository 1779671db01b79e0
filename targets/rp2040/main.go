//go:build rp2040 || rp2350

package main

import (
	"blinky/core"
	"time"
)

var (
	// Software timer service, dispatched from the main loop
	scheduler *core.Scheduler

	// Debug counters
	loopPanics uint32
)

func main() {
	mode := GetMode()

	// Route core debug output to the USB console
	core.SetDebugWriter(consoleWriteln)
	core.SetDebugEnabled(mode.Debug)
	core.InitAsyncDebug()

	UpdateSystemTime()
	core.TimerInit()

	// Register the board GPIO driver, with the LED pin handed to another
	// backend if one is selected
	core.SetGPIODriver(newBoardGPIO(mode))

	app, err := core.NewApp(mode.coreConfig(), core.MustGPIO())
	if err != nil {
		// Nothing sensible to run; keep reporting the failure
		for {
			consoleWriteln("blinky: setup failed: " + err.Error())
			time.Sleep(2 * time.Second)
		}
	}

	scheduler = core.NewScheduler()
	app.Start(scheduler, hardwareClock{})

	// Main loop: this is the timer service for the LED timer callback
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
					core.DumpEventRing()
				}
			}()

			UpdateSystemTime()
			scheduler.ProcessTimers()
		}()

		// Yield to the task goroutines
		time.Sleep(100 * time.Microsecond)
	}
}

// newBoardGPIO builds the GPIO driver for the selected LED backend.
// Falls back to plain GPIO if the backend cannot be set up.
func newBoardGPIO(mode ModeConfig) core.GPIODriver {
	gpio := NewRPGPIODriver()
	ledPin := core.GPIOPin(mode.LEDPin)

	switch mode.LED {
	case LEDBackendPIO:
		led, err := newPIOLEDOutput(mode.LEDPin)
		if err != nil {
			consoleWriteln("blinky: pio led unavailable, using gpio: " + err.Error())
			return gpio
		}
		return newLEDOverlay(gpio, ledPin, led)
	case LEDBackendPixel:
		return newLEDOverlay(gpio, ledPin, NewPixelLED(mode.LEDPin, mode.LEDActiveLow))
	}
	return gpio
}
