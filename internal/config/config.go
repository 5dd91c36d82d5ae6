// Package config loads the daemon configuration from TOML.
//
// Every field has a default, so an absent file or an empty one yields a
// working configuration. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sweeney/pippo/internal/gpio"
	"github.com/sweeney/pippo/internal/logic"
	"github.com/sweeney/pippo/internal/weather"
)

// DefaultPath is where the daemon looks for its configuration.
const DefaultPath = "/etc/pippo/config.toml"

type Config struct {
	Loop    LoopConfig    `toml:"loop"`
	GPIO    GPIOConfig    `toml:"gpio"`
	Display DisplayConfig `toml:"display"`
	Face    FaceConfig    `toml:"face"`
	Weather WeatherConfig `toml:"weather"`
	Time    TimeConfig    `toml:"time"`
	HTTP    HTTPConfig    `toml:"http"`
	MQTT    MQTTConfig    `toml:"mqtt"`
}

type LoopConfig struct {
	Poll      Duration `toml:"poll"`
	Debounce  Duration `toml:"debounce"`
	LongPress Duration `toml:"long_press"`
}

type GPIOConfig struct {
	Chip   string `toml:"chip"`
	Button int    `toml:"button"`
	LED    int    `toml:"led"`
	// Buzzer is the buzzer line; a negative value means no buzzer is fitted.
	Buzzer      int      `toml:"buzzer"`
	BuzzerPulse Duration `toml:"buzzer_pulse"`
}

type DisplayConfig struct {
	Enabled bool   `toml:"enabled"`
	Bus     string `toml:"bus"`
}

type FaceConfig struct {
	BlinkMin  Duration `toml:"blink_min"`
	BlinkMax  Duration `toml:"blink_max"`
	BlinkHold Duration `toml:"blink_hold"`

	Idle     bool     `toml:"idle"`
	IdleMin  Duration `toml:"idle_min"`
	IdleMax  Duration `toml:"idle_max"`
	IdleHold Duration `toml:"idle_hold"`
}

type WeatherConfig struct {
	Enabled  bool     `toml:"enabled"`
	Endpoint string   `toml:"endpoint"`
	APIKey   string   `toml:"api_key"`
	Query    string   `toml:"query"`
	Timeout  Duration `toml:"timeout"`
}

type TimeConfig struct {
	// WaitSync blocks startup until SyncFile exists.
	WaitSync bool     `toml:"wait_sync"`
	SyncFile string   `toml:"sync_file"`
	Timeout  Duration `toml:"timeout"`
	Zone     string   `toml:"zone"`
}

type HTTPConfig struct {
	// Addr is the listen address; empty disables the server.
	Addr string `toml:"addr"`
}

type MQTTConfig struct {
	// Broker is the broker URL; empty disables publishing.
	Broker    string   `toml:"broker"`
	ClientID  string   `toml:"client_id"`
	Heartbeat Duration `toml:"heartbeat"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Loop: LoopConfig{
			Poll:      Duration{20 * time.Millisecond},
			Debounce:  Duration{logic.DefaultDebounce},
			LongPress: Duration{logic.DefaultLongPress},
		},
		GPIO: GPIOConfig{
			Chip:        gpio.DefaultChip,
			Button:      gpio.DefaultPinButton,
			LED:         gpio.DefaultPinLED,
			Buzzer:      gpio.DefaultPinBuzzer,
			BuzzerPulse: Duration{200 * time.Millisecond},
		},
		Display: DisplayConfig{
			Enabled: true,
			Bus:     "",
		},
		Face: FaceConfig{
			BlinkMin:  Duration{logic.DefaultBlinkMin},
			BlinkMax:  Duration{logic.DefaultBlinkMax},
			BlinkHold: Duration{logic.DefaultBlinkHold},
			Idle:      true,
			IdleMin:   Duration{logic.DefaultIdleMin},
			IdleMax:   Duration{logic.DefaultIdleMax},
			IdleHold:  Duration{logic.DefaultIdleHold},
		},
		Weather: WeatherConfig{
			Enabled:  false,
			Endpoint: weather.DefaultEndpoint,
			Query:    "auto:ip",
			Timeout:  Duration{10 * time.Second},
		},
		Time: TimeConfig{
			WaitSync: true,
			SyncFile: "/run/systemd/timesync/synchronized",
			Timeout:  Duration{2 * time.Minute},
			Zone:     "Local",
		},
		HTTP: HTTPConfig{
			Addr: ":80",
		},
		MQTT: MQTTConfig{
			Broker:    "",
			ClientID:  "pippo",
			Heartbeat: Duration{15 * time.Minute},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the loop relies on.
func (c *Config) Validate() error {
	if c.Loop.Poll.Duration <= 0 {
		return fmt.Errorf("loop.poll must be positive")
	}
	if c.Loop.LongPress.Duration <= c.Loop.Debounce.Duration {
		return fmt.Errorf("loop.long_press (%v) must exceed loop.debounce (%v)",
			c.Loop.LongPress.Duration, c.Loop.Debounce.Duration)
	}
	if c.Face.BlinkMax.Duration < c.Face.BlinkMin.Duration {
		return fmt.Errorf("face.blink_max must not be below face.blink_min")
	}
	if c.Face.Idle && c.Face.IdleMax.Duration < c.Face.IdleMin.Duration {
		return fmt.Errorf("face.idle_max must not be below face.idle_min")
	}
	if c.Weather.Enabled && c.Weather.APIKey == "" {
		return fmt.Errorf("weather.api_key is required when weather is enabled")
	}
	if _, err := time.LoadLocation(c.Time.Zone); err != nil {
		return fmt.Errorf("time.zone: %w", err)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Time.Zone)
	if err != nil {
		return time.Local
	}
	return loc
}

// BuzzerEnabled reports whether a buzzer line is configured.
func (c *Config) BuzzerEnabled() bool {
	return c.GPIO.Buzzer >= 0
}
