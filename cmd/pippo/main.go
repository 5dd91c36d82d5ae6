// Command pippo drives a one-button desk companion: an animated face on an
// SSD1306 OLED, a three-entry menu navigated by short and long presses, and
// status reporting over HTTP and MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/pippo/internal/clock"
	"github.com/sweeney/pippo/internal/config"
	"github.com/sweeney/pippo/internal/display"
	"github.com/sweeney/pippo/internal/gpio"
	"github.com/sweeney/pippo/internal/logic"
	"github.com/sweeney/pippo/internal/mqtt"
	"github.com/sweeney/pippo/internal/status"
	"github.com/sweeney/pippo/internal/ui"
	"github.com/sweeney/pippo/internal/weather"
	"github.com/sweeney/pippo/internal/web"
)

func main() {
	defineFlags(flag.CommandLine)
	configPath := flag.String("config", config.DefaultPath, "TOML configuration file")
	printState := flag.Bool("print-state", false, "Print the button state and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	applyFlags(cfg, flag.CommandLine)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// defineFlags registers the flags that override the configuration file.
// Defaults mirror config.Default so -help shows the effective values.
func defineFlags(fs *flag.FlagSet) {
	def := config.Default()
	fs.Duration("poll", def.Loop.Poll.Duration, "Button polling interval")
	fs.Duration("debounce", def.Loop.Debounce.Duration, "Debounce window")
	fs.Duration("long-press", def.Loop.LongPress.Duration, "Long-press threshold")
	fs.String("broker", def.MQTT.Broker, "MQTT broker address (empty to disable)")
	fs.Duration("heartbeat", def.MQTT.Heartbeat.Duration, "Heartbeat interval (0 to disable)")
	fs.String("http", def.HTTP.Addr, "HTTP status address (empty to disable)")
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *config.Config, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch v := g.Get().(type) {
		case time.Duration:
			switch f.Name {
			case "poll":
				cfg.Loop.Poll.Duration = v
			case "debounce":
				cfg.Loop.Debounce.Duration = v
			case "long-press":
				cfg.Loop.LongPress.Duration = v
			case "heartbeat":
				cfg.MQTT.Heartbeat.Duration = v
			}
		case string:
			switch f.Name {
			case "broker":
				cfg.MQTT.Broker = v
			case "http":
				cfg.HTTP.Addr = v
			}
		}
	})
}

func run(cfg *config.Config, printState bool) error {
	button, err := gpio.NewRealReader(cfg.GPIO.Chip, cfg.GPIO.Button)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer button.Close()

	if printState {
		pressed, err := button.Read()
		if err != nil {
			return fmt.Errorf("read button: %w", err)
		}
		fmt.Printf("button: %s\n", pressedString(pressed))
		return nil
	}

	led, err := gpio.NewRealWriter(cfg.GPIO.Chip, cfg.GPIO.LED, "led")
	if err != nil {
		return fmt.Errorf("init led: %w", err)
	}
	defer led.Close()

	var buzzer web.Buzzer
	if cfg.BuzzerEnabled() {
		out, err := gpio.NewRealWriter(cfg.GPIO.Chip, cfg.GPIO.Buzzer, "buzzer")
		if err != nil {
			return fmt.Errorf("init buzzer: %w", err)
		}
		defer out.Close()
		buzzer = gpio.NewPulser(out, cfg.GPIO.BuzzerPulse.Duration)
	}

	var surface display.Surface
	if cfg.Display.Enabled {
		oled, err := display.OpenOLED(cfg.Display.Bus)
		if err != nil {
			return fmt.Errorf("init display: %w", err)
		}
		defer oled.Close()
		surface = oled
	} else {
		log.Printf("display disabled, rendering headless")
		surface = display.NewCanvas(display.Headless{Rect: image.Rect(0, 0, 128, 64)})
	}

	renderer := ui.NewRenderer(surface)
	if err := renderer.Boot(); err != nil {
		return fmt.Errorf("boot screen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	tracker := status.NewTracker(start, status.Config{
		PollMs:      cfg.Loop.Poll.Milliseconds(),
		DebounceMs:  cfg.Loop.Debounce.Milliseconds(),
		LongPressMs: cfg.Loop.LongPress.Milliseconds(),
		HeartbeatMs: cfg.MQTT.Heartbeat.Milliseconds(),
		Broker:      cfg.MQTT.Broker,
		HTTPPort:    cfg.HTTP.Addr,
		Buzzer:      buzzer != nil,
		Weather:     cfg.Weather.Enabled,
		Idle:        cfg.Face.Idle,
	})
	network := readNetworkInfo()
	if network != nil {
		tracker.SetNetwork(network)
		log.Printf("network: %s %s (%s)", network.Type, network.IP, network.Status)
	}

	var report *weather.Report
	if cfg.Weather.Enabled {
		r, err := fetchWeather(ctx, cfg.Weather)
		if err != nil {
			return fmt.Errorf("fetch weather: %w", err)
		}
		log.Printf("weather: %.1f°C, %s, humidity %d%%", r.TempC, r.Condition, r.Humidity)
		tracker.SetWeather(r, time.Now())
		report = &r
	}

	if cfg.Time.WaitSync {
		err := clock.WaitSynced(ctx, cfg.Time.SyncFile, 500*time.Millisecond, cfg.Time.Timeout.Duration)
		switch {
		case err == nil:
			tracker.SetClockSynced(true)
		case errors.Is(err, clock.ErrTimeout):
			log.Printf("clock: %v, continuing with unsynchronized time", err)
		case ctx.Err() != nil:
			log.Printf("interrupted during startup")
			return nil
		default:
			return fmt.Errorf("wait for clock sync: %w", err)
		}
	}
	stop()

	var publisher mqtt.Publisher
	var mqttStatus mqtt.ConnectionStatus
	if cfg.MQTT.Broker != "" {
		p, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		defer p.Close()
		publisher, mqttStatus = p, p
		tracker.SetMQTTConnected(p.IsConnected())

		snap := tracker.Snapshot()
		startup := mqtt.SystemEvent{
			Timestamp:  snap.Now,
			Event:      "STARTUP",
			Retained:   true,
			RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
		}
		if err := p.PublishSystem(startup); err != nil {
			log.Printf("failed to publish startup event: %v", err)
		} else {
			log.Printf("published startup event")
		}
	}

	if cfg.HTTP.Addr != "" {
		srv := web.New(cfg.HTTP.Addr, tracker, buzzer)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTP.Addr)
	}

	log.Printf("started: poll=%v debounce=%v long-press=%v broker=%q heartbeat=%v",
		cfg.Loop.Poll.Duration, cfg.Loop.Debounce.Duration, cfg.Loop.LongPress.Duration,
		cfg.MQTT.Broker, cfg.MQTT.Heartbeat.Duration)

	dev := &device{
		button:     button,
		led:        led,
		renderer:   renderer,
		publisher:  publisher,
		mqttStatus: mqttStatus,
		tracker:    tracker,
	}
	lc := loopConfig{
		debounce:  cfg.Loop.Debounce.Duration,
		longPress: cfg.Loop.LongPress.Duration,
		heartbeat: cfg.MQTT.Heartbeat.Duration,
		face:      newFace(cfg.Face, start, uint64(start.UnixNano())),
		location:  cfg.Location(),
		online:    network.Online(),
		weather:   report,
	}

	ticker := time.NewTicker(cfg.Loop.Poll.Duration)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(dev, lc, time.Now, ticker.C, sigCh)
}

func fetchWeather(ctx context.Context, wc config.WeatherConfig) (weather.Report, error) {
	u, err := weather.BuildURL(wc.Endpoint, wc.APIKey, wc.Query)
	if err != nil {
		return weather.Report{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, wc.Timeout.Duration)
	defer cancel()
	return weather.NewClient(u, wc.Timeout.Duration).Fetch(ctx)
}

func newFace(fc config.FaceConfig, start time.Time, seed uint64) *logic.Face {
	blink := logic.NewCycle(start, fc.BlinkHold.Duration,
		logic.NewRandomInterval(fc.BlinkMin.Duration, fc.BlinkMax.Duration, seed))
	var idle *logic.Cycle
	if fc.Idle {
		idle = logic.NewCycle(start, fc.IdleHold.Duration,
			logic.NewRandomInterval(fc.IdleMin.Duration, fc.IdleMax.Duration, seed+1))
	}
	return logic.NewFace(blink, idle)
}

// device is the hardware and the outputs the loop owns for its lifetime.
type device struct {
	button   gpio.Reader
	led      gpio.Writer
	renderer *ui.Renderer
	// publisher and mqttStatus are nil when MQTT is disabled.
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
}

type loopConfig struct {
	debounce  time.Duration
	longPress time.Duration
	heartbeat time.Duration
	face      *logic.Face
	location  *time.Location
	online    bool
	weather   *weather.Report
}

func runLoop(dev *device, lc loopConfig, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	ctrl := logic.NewController(lc.debounce, lc.longPress, startTime)
	online := lc.online
	ledOn := false
	renderFailing := false

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			reason := "UNKNOWN"
			if s == syscall.SIGINT {
				reason = "SIGINT"
			} else if s == syscall.SIGTERM {
				reason = "SIGTERM"
			}
			if dev.publisher == nil {
				return nil
			}
			if dev.mqttStatus != nil {
				dev.tracker.SetMQTTConnected(dev.mqttStatus.IsConnected())
			}
			snap := dev.tracker.Snapshot()
			event := mqtt.SystemEvent{
				Timestamp:  now(),
				Event:      "SHUTDOWN",
				Reason:     reason,
				Retained:   true,
				RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", reason),
			}
			if err := dev.publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			pressed, err := dev.button.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			if event := ctrl.Process(logic.Input{Pressed: pressed, Time: t}); event != nil {
				log.Printf("event: %s %s -> %s (selection %d)", event.Type, event.From, event.To, event.Selection)
				if dev.publisher != nil {
					if err := dev.publisher.Publish(*event); err != nil {
						log.Printf("publish error: %v", err)
					}
				}
			}

			if held := ctrl.Pressed(); held != ledOn {
				if err := dev.led.Set(held); err != nil {
					log.Printf("led error: %v", err)
				} else {
					ledOn = held
				}
			}

			lc.face.Advance(t)
			view := ui.View{
				UI:     ctrl.UI(),
				Held:   ctrl.Pressed(),
				Face:   lc.face.State(),
				Clock:  t.In(lc.location).Format(ui.ClockLayout),
				Online: online,
			}
			if lc.weather != nil {
				view.HasWeather = true
				view.Weather = *lc.weather
			}
			if _, err := dev.renderer.Render(view); err != nil {
				if !renderFailing {
					log.Printf("render error: %v", err)
				}
				renderFailing = true
			} else {
				renderFailing = false
			}

			if hb := ctrl.CheckHeartbeat(t, lc.heartbeat); hb != nil {
				log.Printf("heartbeat: uptime=%v presses=%d short=%d long=%d",
					hb.Uptime, hb.Counts.Presses, hb.Counts.ShortPresses, hb.Counts.LongPresses)

				if net := readNetworkInfo(); net != nil {
					dev.tracker.SetNetwork(net)
					online = net.Online()
				}
				if dev.publisher != nil {
					if dev.mqttStatus != nil {
						dev.tracker.SetMQTTConnected(dev.mqttStatus.IsConnected())
					}
					dev.tracker.Update(loopState(ctrl, view, dev.renderer))
					snap := dev.tracker.Snapshot()
					event := mqtt.SystemEvent{
						Timestamp:  hb.Timestamp,
						Event:      "HEARTBEAT",
						RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
					}
					if err := dev.publisher.PublishSystem(event); err != nil {
						log.Printf("heartbeat publish error: %v", err)
					}
				}
			}

			dev.tracker.Update(loopState(ctrl, view, dev.renderer))
			if dev.mqttStatus != nil {
				dev.tracker.SetMQTTConnected(dev.mqttStatus.IsConnected())
			}
		}
	}
}

func loopState(ctrl *logic.Controller, view ui.View, r *ui.Renderer) status.Loop {
	return status.Loop{
		UI:      view.UI,
		Pressed: view.Held,
		Face:    view.Face,
		Counts:  ctrl.EventCountsSnapshot(),
		Redraws: r.Redraws(),
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func pressedString(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}
