package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/seagrayinc/vendapin/internal/serial"
	"github.com/seagrayinc/vendapin/pkg/vendapin"
)

// SerialConfig selects and configures the serial port.
type SerialConfig struct {
	Device      string        `mapstructure:"device"`
	Backend     string        `mapstructure:"backend"`
	Baud        int           `mapstructure:"baud"`
	DataBits    int           `mapstructure:"dataBits"`
	Parity      string        `mapstructure:"parity"`
	StopBits    int           `mapstructure:"stopBits"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
	PollTimeout time.Duration `mapstructure:"pollTimeout"`
}

type DeviceConfig struct {
	Address int `mapstructure:"address"`
	// FlushOnOpen discards the boot string and stale replies before the first command.
	FlushOnOpen bool `mapstructure:"flushOnOpen"`
}

// DelaysConfig are the settle times between a request and reading its reply.
type DelaysConfig struct {
	Default  time.Duration `mapstructure:"default"`
	Dispense time.Duration `mapstructure:"dispense"`
	Reset    time.Duration `mapstructure:"reset"`
}

type LogFileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

type LoggingConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
}

type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Device  DeviceConfig  `mapstructure:"device"`
	Delays  DelaysConfig  `mapstructure:"delays"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load reads configuration from defaults, an optional YAML/TOML/JSON file and
// VENDAPIN_* environment variables, e.g. VENDAPIN_SERIAL_DEVICE.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VENDAPIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := serial.DefaultConfig("")
	v.SetDefault("serial.device", "")
	v.SetDefault("serial.backend", string(def.Backend))
	v.SetDefault("serial.baud", def.Baud)
	v.SetDefault("serial.dataBits", def.DataBits)
	v.SetDefault("serial.parity", string(rune(def.Parity)))
	v.SetDefault("serial.stopBits", def.StopBits)
	v.SetDefault("serial.readTimeout", def.ReadTimeout)
	v.SetDefault("serial.pollTimeout", def.PollTimeout)

	v.SetDefault("device.address", 0x01)
	v.SetDefault("device.flushOnOpen", true)

	delays := vendapin.DefaultDelays()
	v.SetDefault("delays.default", delays.Default)
	v.SetDefault("delays.dispense", delays.Dispense)
	v.SetDefault("delays.reset", delays.Reset)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 28)
	v.SetDefault("logging.file.compress", false)
}

func (c *Config) Validate() error {
	var errs []error

	switch serial.Backend(c.Serial.Backend) {
	case serial.BackendBugst, serial.BackendTarm:
	default:
		errs = append(errs, fmt.Errorf("serial.backend: unknown backend %q", c.Serial.Backend))
	}
	if c.Serial.Baud <= 0 {
		errs = append(errs, fmt.Errorf("serial.baud: must be positive, got %d", c.Serial.Baud))
	}
	if c.Serial.DataBits < 5 || c.Serial.DataBits > 8 {
		errs = append(errs, fmt.Errorf("serial.dataBits: must be 5-8, got %d", c.Serial.DataBits))
	}
	switch strings.ToUpper(c.Serial.Parity) {
	case "N", "O", "E":
	default:
		errs = append(errs, fmt.Errorf("serial.parity: must be N, O or E, got %q", c.Serial.Parity))
	}
	if c.Serial.StopBits != 1 && c.Serial.StopBits != 2 {
		errs = append(errs, fmt.Errorf("serial.stopBits: must be 1 or 2, got %d", c.Serial.StopBits))
	}
	if c.Device.Address < 0 || c.Device.Address > 0xFF {
		errs = append(errs, fmt.Errorf("device.address: must fit in a byte, got %d", c.Device.Address))
	}
	if c.Delays.Default < 0 || c.Delays.Dispense < 0 || c.Delays.Reset < 0 {
		errs = append(errs, errors.New("delays: must not be negative"))
	}

	return errors.Join(errs...)
}

// SerialPort converts the serial section for serial.Open.
func (c *Config) SerialPort() *serial.Config {
	return &serial.Config{
		Device:      c.Serial.Device,
		Baud:        c.Serial.Baud,
		DataBits:    c.Serial.DataBits,
		Parity:      serial.Parity(strings.ToUpper(c.Serial.Parity)[0]),
		StopBits:    c.Serial.StopBits,
		ReadTimeout: c.Serial.ReadTimeout,
		PollTimeout: c.Serial.PollTimeout,
		Backend:     serial.Backend(c.Serial.Backend),
	}
}

// SessionOptions converts the device and delay sections into session options.
func (c *Config) SessionOptions() []vendapin.Option {
	return []vendapin.Option{
		vendapin.WithAddress(byte(c.Device.Address)),
		vendapin.WithDelays(vendapin.Delays{
			Default:  c.Delays.Default,
			Dispense: c.Delays.Dispense,
			Reset:    c.Delays.Reset,
		}),
	}
}
