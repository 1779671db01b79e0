//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"
	"time"

	"blinky/core"
	"blinky/host/sim"
)

// Global simulator instance for the UI
var simulator *sim.Simulator

// JavaScript callback for LED changes, set by onLED
var ledCallback js.Value

func main() {
	// Export functions to JavaScript
	js.Global().Set("blinkyWasm", js.ValueOf(map[string]interface{}{
		"start":   js.FuncOf(startWrapper),
		"press":   js.FuncOf(pressWrapper),
		"release": js.FuncOf(releaseWrapper),
		"tap":     js.FuncOf(tapWrapper),
		"status":  js.FuncOf(statusWrapper),
		"events":  js.FuncOf(eventsWrapper),
		"onLED":   js.FuncOf(onLEDWrapper),
	}))

	// Keep the program running
	select {}
}

// startWrapper builds and starts the simulator on Pico wiring
// Args: mode (string, optional, "task" or "timer")
// Returns: {error: string} on failure, {} otherwise
func startWrapper(this js.Value, args []js.Value) interface{} {
	if simulator != nil {
		return makeError("already started")
	}

	coreCfg := core.DefaultConfig()
	coreCfg.ButtonPin = 15
	coreCfg.LEDPin = 25
	if len(args) > 0 && args[0].Type() == js.TypeString {
		switch args[0].String() {
		case "task":
			coreCfg.Mode = core.ModeTask
		case "timer":
			coreCfg.Mode = core.ModeTimer
		default:
			return makeError("unknown driver mode: " + args[0].String())
		}
	}

	s, err := sim.New(coreCfg)
	if err != nil {
		return makeError(err.Error())
	}

	s.GPIO.OnOutput = func(pin core.GPIOPin, level bool) {
		if pin != coreCfg.LEDPin || ledCallback.Type() != js.TypeFunction {
			return
		}
		ledCallback.Invoke(level != coreCfg.LEDActiveLow)
	}

	simulator = s
	s.Start()
	return js.ValueOf(map[string]interface{}{})
}

func pressWrapper(this js.Value, args []js.Value) interface{} {
	if simulator == nil {
		return makeError("not started")
	}
	simulator.Press()
	return js.ValueOf(map[string]interface{}{})
}

func releaseWrapper(this js.Value, args []js.Value) interface{} {
	if simulator == nil {
		return makeError("not started")
	}
	simulator.Release()
	return js.ValueOf(map[string]interface{}{})
}

// tapWrapper presses the button and releases it later
// Args: ms (number, optional, default 100)
func tapWrapper(this js.Value, args []js.Value) interface{} {
	if simulator == nil {
		return makeError("not started")
	}
	d := 100 * time.Millisecond
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		d = time.Duration(args[0].Int()) * time.Millisecond
	}
	simulator.Tap(d)
	return js.ValueOf(map[string]interface{}{})
}

// statusWrapper returns the current button and LED state
// Returns: {pressed, blinking, ledOn, presses, toggles, pinErrors}
func statusWrapper(this js.Value, args []js.Value) interface{} {
	if simulator == nil {
		return makeError("not started")
	}
	stats := simulator.App.Toggler.Stats()
	return js.ValueOf(map[string]interface{}{
		"pressed":   simulator.App.Sampler.State() == core.ButtonPressed,
		"blinking":  stats.Enabled,
		"ledOn":     simulator.LEDOn(),
		"presses":   int(simulator.App.Sampler.Edges()),
		"toggles":   int(stats.Toggles),
		"pinErrors": int(stats.PinErrors),
	})
}

// eventsWrapper returns the event ring, oldest first, as formatted lines
func eventsWrapper(this js.Value, args []js.Value) interface{} {
	history := core.EventHistory()
	lines := make([]interface{}, len(history))
	for i, evt := range history {
		lines[i] = core.FormatEvent(evt)
	}
	return js.ValueOf(lines)
}

// onLEDWrapper registers a function called with true/false on LED changes
func onLEDWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return makeError("missing callback argument")
	}
	ledCallback = args[0]
	return js.ValueOf(map[string]interface{}{})
}

func makeError(errMsg string) js.Value {
	return js.ValueOf(map[string]interface{}{"error": errMsg})
}
