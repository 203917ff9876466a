// Command segclock drives a 4-digit 7-segment display through a shift
// register, tracking elapsed time and publishing events to MQTT.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sweeney/segclock/internal/clock"
	"github.com/sweeney/segclock/internal/display"
	"github.com/sweeney/segclock/internal/hw"
	"github.com/sweeney/segclock/internal/input"
	"github.com/sweeney/segclock/internal/mqtt"
	"github.com/sweeney/segclock/internal/shift"
	"github.com/sweeney/segclock/internal/sim"
	"github.com/sweeney/segclock/internal/status"
	"github.com/sweeney/segclock/internal/web"
)

type config struct {
	poll      time.Duration
	debounce  time.Duration
	settle    time.Duration
	tick      time.Duration
	heartbeat time.Duration
	broker    string
	httpAddr  string
	simulate  bool

	pinData, pinClock, pinLatch    int
	pinReset, pinMode              int
	pinADCClock, pinADCCS          int
	pinADCDI, pinADCDO             int
}

func main() {
	cmd := &cli.Command{
		Name:  "segclock",
		Usage: "7-segment shift register timer",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "poll", Value: 20 * time.Millisecond, Usage: "input polling interval"},
			&cli.DurationFlag{Name: "debounce", Value: 200 * time.Millisecond, Usage: "button debounce hold"},
			&cli.DurationFlag{Name: "settle", Value: display.DefaultHold, Usage: "per-digit settle time"},
			&cli.DurationFlag{Name: "tick", Value: time.Second, Usage: "timer tick interval"},
			&cli.DurationFlag{Name: "heartbeat", Value: 15 * time.Minute, Usage: "heartbeat interval (0 to disable)"},
			&cli.StringFlag{Name: "broker", Value: "tcp://192.168.1.200:1883", Usage: `MQTT broker address ("off" to disable)`},
			&cli.StringFlag{Name: "http", Value: ":8080", Usage: "HTTP status address (empty to disable)"},
			&cli.BoolFlag{Name: "sim", Usage: "render to a desktop window instead of hardware"},
			&cli.BoolFlag{Name: "print-state", Usage: "print current inputs and exit"},
			&cli.IntFlag{Name: "pin-data", Value: hw.DefaultPinData, Usage: "BCM pin for shift register data"},
			&cli.IntFlag{Name: "pin-clock", Value: hw.DefaultPinClock, Usage: "BCM pin for shift register clock"},
			&cli.IntFlag{Name: "pin-latch", Value: hw.DefaultPinLatch, Usage: "BCM pin for shift register latch"},
			&cli.IntFlag{Name: "pin-reset", Value: hw.DefaultPinReset, Usage: "BCM pin for the reset button"},
			&cli.IntFlag{Name: "pin-mode", Value: hw.DefaultPinMode, Usage: "BCM pin for the mode button"},
			&cli.IntFlag{Name: "pin-adc-clock", Value: hw.DefaultPinADCClock, Usage: "BCM pin for the ADC clock"},
			&cli.IntFlag{Name: "pin-adc-cs", Value: hw.DefaultPinADCCS, Usage: "BCM pin for the ADC chip select"},
			&cli.IntFlag{Name: "pin-adc-di", Value: hw.DefaultPinADCDI, Usage: "BCM pin for the ADC data in"},
			&cli.IntFlag{Name: "pin-adc-do", Value: hw.DefaultPinADCDO, Usage: "BCM pin for the ADC data out"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config{
				poll:        cmd.Duration("poll"),
				debounce:    cmd.Duration("debounce"),
				settle:      cmd.Duration("settle"),
				tick:        cmd.Duration("tick"),
				heartbeat:   cmd.Duration("heartbeat"),
				broker:      cmd.String("broker"),
				httpAddr:    cmd.String("http"),
				simulate:    cmd.Bool("sim"),
				pinData:     int(cmd.Int("pin-data")),
				pinClock:    int(cmd.Int("pin-clock")),
				pinLatch:    int(cmd.Int("pin-latch")),
				pinReset:    int(cmd.Int("pin-reset")),
				pinMode:     int(cmd.Int("pin-mode")),
				pinADCClock: int(cmd.Int("pin-adc-clock")),
				pinADCCS:    int(cmd.Int("pin-adc-cs")),
				pinADCDI:    int(cmd.Int("pin-adc-di")),
				pinADCDO:    int(cmd.Int("pin-adc-do")),
			}
			if cmd.Bool("print-state") {
				return printState(cfg)
			}
			return run(ctx, cfg)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// printState reads the inputs once and exits. Useful for wiring checks.
func printState(cfg config) error {
	buttons, err := hw.NewRealButtons(cfg.pinReset, cfg.pinMode)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	adc, err := hw.NewRealADC(cfg.pinADCClock, cfg.pinADCCS, cfg.pinADCDI, cfg.pinADCDO)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer adc.Close()

	reset, mode, err := buttons.Read()
	if err != nil {
		return fmt.Errorf("read buttons: %w", err)
	}
	norm, err := adc.Sample()
	if err != nil {
		return fmt.Errorf("read adc: %w", err)
	}
	fmt.Printf("S1(reset): %s, S3(mode): %s, pot: %.3f V\n",
		pressedString(reset), pressedString(mode), input.Volts(norm))
	return nil
}

func run(ctx context.Context, cfg config) error {
	var (
		lines   hw.Lines
		buttons hw.Buttons
		adc     hw.ADC
		window  *sim.Display
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.simulate {
		reg := shift.NewRegister()
		window = sim.New(ctx, reg)
		lines = reg
		buttons = window.Buttons()
		adc = window.ADC()
	} else {
		var err error
		lines, err = hw.NewRealLines(cfg.pinData, cfg.pinClock, cfg.pinLatch)
		if err != nil {
			return fmt.Errorf("init display lines: %w", err)
		}
		buttons, err = hw.NewRealButtons(cfg.pinReset, cfg.pinMode)
		if err != nil {
			lines.Close()
			return fmt.Errorf("init buttons: %w", err)
		}
		adc, err = hw.NewRealADC(cfg.pinADCClock, cfg.pinADCCS, cfg.pinADCDI, cfg.pinADCDO)
		if err != nil {
			buttons.Close()
			lines.Close()
			return fmt.Errorf("init adc: %w", err)
		}
	}
	defer lines.Close()
	defer buttons.Close()
	defer adc.Close()

	// Telemetry
	var publisher mqtt.Publisher
	var connStatus mqtt.ConnectionStatus
	if cfg.broker == "off" {
		nop := mqtt.NopPublisher{}
		publisher, connStatus = nop, nop
	} else {
		real, err := mqtt.NewRealPublisher(cfg.broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher, connStatus = real, real
	}
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     cfg.poll.Milliseconds(),
		DebounceMs: cfg.debounce.Milliseconds(),
		SettleMs:   cfg.settle.Milliseconds(),
		TickMs:     cfg.tick.Milliseconds(),
		Broker:     cfg.broker,
		HTTPAddr:   cfg.httpAddr,
		Sim:        cfg.simulate,
	})

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	log.Printf("started: poll=%v debounce=%v settle=%v broker=%s sim=%v",
		cfg.poll, cfg.debounce, cfg.settle, cfg.broker, cfg.simulate)

	// The tick goroutine owns nothing but the counter; all GPIO stays on
	// the render loop.
	counter := &clock.Counter{}
	go clock.Run(ctx, counter, cfg.tick)

	mux := display.NewMux(shift.NewWriter(lines), cfg.settle)

	ticker := time.NewTicker(cfg.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	loop := loopDeps{
		buttons:    buttons,
		adc:        adc,
		mux:        mux,
		counter:    counter,
		publisher:  publisher,
		connStatus: connStatus,
		tracker:    tracker,
		debounce:   cfg.debounce,
		heartbeat:  cfg.heartbeat,
		now:        time.Now,
		tick:       ticker.C,
		sig:        sigCh,
		done:       ctx.Done(),
	}

	if cfg.simulate {
		// ebiten insists on the main goroutine; the render loop moves aside.
		errCh := make(chan error, 1)
		go func() {
			errCh <- runLoop(loop)
			cancel()
		}()
		if err := window.Run(); err != nil {
			cancel()
			<-errCh
			return fmt.Errorf("simulator: %w", err)
		}
		cancel()
		return <-errCh
	}
	return runLoop(loop)
}

type loopDeps struct {
	buttons    hw.Buttons
	adc        hw.ADC
	mux        *display.Mux
	counter    *clock.Counter
	publisher  mqtt.Publisher
	connStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	debounce   time.Duration
	heartbeat  time.Duration
	now        func() time.Time
	tick       <-chan time.Time
	sig        <-chan os.Signal
	done       <-chan struct{}
}

func runLoop(d loopDeps) error {
	detector := input.NewDetector(d.debounce)

	var (
		counts        status.Counts
		voltsMode     bool
		lastMinutes   int
		lastVolts     float64
		lastHeartbeat = d.now()
	)

	for {
		select {
		case s := <-d.sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			publishShutdown(d, signalName)
			return nil

		case <-d.done:
			log.Printf("window closed, shutting down")
			publishShutdown(d, "WINDOW_CLOSED")
			return nil

		case <-d.tick:
			t := d.now()

			reset, mode, err := d.buttons.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
				continue
			}
			act := detector.Process(input.Sample{Reset: reset, Mode: mode, Time: t})

			if act.ResetEdge {
				d.counter.Reset()
				counts.Resets++
				lastMinutes = 0
				sec, min := d.counter.Snapshot()
				log.Printf("event: RESET")
				if err := d.publisher.Publish(mqtt.Event{
					Timestamp: t,
					Type:      mqtt.EventReset,
					Seconds:   sec,
					Minutes:   min,
				}); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			if act.VoltsMode != voltsMode {
				voltsMode = act.VoltsMode
				counts.ModeSwitches++
				eventType := mqtt.EventModeClock
				if voltsMode {
					eventType = mqtt.EventModeVolts
				}
				sec, min := d.counter.Snapshot()
				log.Printf("event: %s", eventType)
				if err := d.publisher.Publish(mqtt.Event{
					Timestamp: t,
					Type:      eventType,
					Seconds:   sec,
					Minutes:   min,
				}); err != nil {
					log.Printf("publish error: %v", err)
				}
			}

			sec, min := d.counter.Snapshot()
			if min != lastMinutes {
				if !act.ResetEdge {
					counts.Minutes++
					if err := d.publisher.Publish(mqtt.Event{
						Timestamp: t,
						Type:      mqtt.EventMinute,
						Seconds:   sec,
						Minutes:   min,
						Value:     clock.DisplayValue(sec, min),
					}); err != nil {
						log.Printf("publish error: %v", err)
					}
				}
				lastMinutes = min
			}

			var (
				value      int
				decimalPos int
				trackMode  status.Mode
			)
			if voltsMode {
				norm, err := d.adc.Sample()
				if err != nil {
					log.Printf("adc read error: %v", err)
					continue
				}
				lastVolts = input.Volts(norm)
				value = input.DisplayMillivolts(norm)
				decimalPos = 0 // D.DDD
				trackMode = status.ModeVolts
			} else {
				value = clock.DisplayValue(sec, min)
				decimalPos = 1 // MM.SS
				trackMode = status.ModeClock
			}

			if err := d.mux.Render(value, true, decimalPos); err != nil {
				log.Printf("render error: %v", err)
				continue
			}

			d.tracker.Update(trackMode, value, sec, min, lastVolts, counts)
			if d.connStatus != nil {
				d.tracker.SetMQTTConnected(d.connStatus.IsConnected())
			}

			if d.heartbeat > 0 && t.Sub(lastHeartbeat) >= d.heartbeat {
				lastHeartbeat = t
				snap := d.tracker.Snapshot()
				hbEvent := mqtt.SystemEvent{
					Timestamp:  t,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				log.Printf("heartbeat: uptime=%v resets=%d", snap.Uptime(), counts.Resets)
				if err := d.publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

func publishShutdown(d loopDeps, reason string) {
	event := mqtt.SystemEvent{
		Timestamp: d.now(),
		Event:     "SHUTDOWN",
		Reason:    reason,
		Retained:  true,
	}
	if d.tracker != nil {
		if d.connStatus != nil {
			d.tracker.SetMQTTConnected(d.connStatus.IsConnected())
		}
		snap := d.tracker.Snapshot()
		event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", reason)
	}
	if err := d.publisher.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}
}

func pressedString(pressed bool) string {
	if pressed {
		return "PRESSED"
	}
	return "RELEASED"
}
