package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"go.uber.org/zap"

	"blinky/core"
	"blinky/host/config"
	"blinky/host/logging"
	"blinky/host/sim"
)

var (
	configPath = flag.String("config", "", "JSON or YAML configuration file (defaults to Pico wiring)")
	mode       = flag.String("mode", "", "LED driver mode override: task or timer")
	debug      = flag.Bool("debug", false, "Log debug and event lines")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	quiet      = flag.Bool("quiet", false, "Do not print LED level changes")
)

func main() {
	flag.Parse()

	fmt.Println("Blinky Simulator - button-controlled LED blinker")
	fmt.Print("================================================\n\n")

	logger, err := logging.NewLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := loadConfig(logger)
	if err != nil {
		logger.Errorw("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Core debug output goes through zap; a config reload may switch it on or off
	core.SetDebugWriter(logging.CoreWriter(logger.Named("core")))
	core.SetDebugEnabled(cfg.Debug || *debug)
	core.InitAsyncDebug()

	coreCfg, err := cfg.CoreConfig()
	if err != nil {
		logger.Errorw("Invalid config", "error", err)
		os.Exit(1)
	}

	s, err := sim.New(coreCfg)
	if err != nil {
		logger.Errorw("Failed to set up simulator", "error", err)
		os.Exit(1)
	}

	if !*quiet {
		ledPin := coreCfg.LEDPin
		activeLow := coreCfg.LEDActiveLow
		s.GPIO.OnOutput = func(pin core.GPIOPin, level bool) {
			if pin != ledPin {
				return
			}
			state := "off"
			if level != activeLow {
				state = "ON"
			}
			fmt.Printf("[%8.3fs] LED %s\n", float64(s.Clock.Now())/core.TimerFreq, state)
		}
	}

	logger.Infow("Simulator ready",
		"buttonPin", coreCfg.ButtonPin,
		"ledPin", coreCfg.LEDPin,
		"driver", coreCfg.Mode.String(),
		"samplePeriodMS", cfg.SamplePeriodMS,
		"togglePeriodMS", cfg.TogglePeriodMS)

	s.Start()
	defer s.Stop()

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		args, err := shlex.Split(scanner.Text())
		if err != nil {
			logger.Warnw("Cannot parse command", "error", err)
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch cmd := args[0]; cmd {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "press", "p":
			s.Press()

		case "release", "r":
			s.Release()

		case "tap", "t":
			d := 100 * time.Millisecond
			if len(args) > 1 {
				ms, err := strconv.ParseUint(args[1], 10, 32)
				if err != nil {
					logger.Warnw("Bad tap duration", "value", args[1])
					continue
				}
				d = time.Duration(ms) * time.Millisecond
			}
			s.Tap(d)

		case "status", "s":
			printStatus(s)

		case "events", "e":
			for _, evt := range core.EventHistory() {
				fmt.Println(core.FormatEvent(evt))
			}

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmd)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Errorw("Error reading input", "error", err)
	}
}

// loadConfig reads the config file, if any, and watches it for debug
// changes. Pin, period and mode changes need a restart.
func loadConfig(logger *zap.SugaredLogger) (*config.SimConfig, error) {
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.WatchFile(*configPath, logger, func(reloaded *config.SimConfig) {
			core.SetDebugEnabled(reloaded.Debug || *debug)
			logger.Infow("Applied config change", "debug", core.IsDebugEnabled(),
				"note", "pin, period and mode changes apply on restart")
		})
		if err != nil {
			return nil, err
		}
	}
	if *mode != "" {
		cfg.Mode = strings.ToLower(*mode)
		if _, err := cfg.DriverMode(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func printStatus(s *sim.Simulator) {
	stats := s.App.Toggler.Stats()
	fmt.Printf("  button:   %s (%d presses)\n", s.App.Sampler.State(), s.App.Sampler.Edges())
	fmt.Printf("  blinking: %v\n", stats.Enabled)
	fmt.Printf("  led on:   %v\n", s.LEDOn())
	fmt.Printf("  toggles:  %d\n", stats.Toggles)
	fmt.Printf("  pin errs: %d\n", stats.PinErrors)
	fmt.Printf("  uptime:   %dms\n", s.UptimeMS())
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help           - Show this help message")
	fmt.Println("  press/p        - Hold the button down")
	fmt.Println("  release/r      - Release the button")
	fmt.Println("  tap/t [ms]     - Press and release after ms (default 100)")
	fmt.Println("  status/s       - Show button and LED state")
	fmt.Println("  events/e       - Print the event ring, oldest first")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}
