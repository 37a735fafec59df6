package hcitools

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the on-disk configuration shared by the tools. Every section
// has a usable default so an absent file or key is not an error.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Serial    SerialConfig    `toml:"serial"`
	Transport TransportConfig `toml:"transport"`
	Sniffer   SnifferConfig   `toml:"sniffer"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// SerialConfig describes how a serial port is opened.
type SerialConfig struct {
	// Driver is "bugst" or "jacobsa". Empty picks bugst unless RTSCTS is set.
	Driver           string        `toml:"driver"`
	BaudRate         int           `toml:"baud"`
	DataBits         int           `toml:"data_bits"`
	Parity           string        `toml:"parity"`
	StopBits         float64       `toml:"stop_bits"`
	RTSCTS           bool          `toml:"rtscts"`
	ReadTimeout      time.Duration `toml:"read_timeout"`
	InterByteTimeout time.Duration `toml:"inter_byte_timeout"`
	WriteTimeout     time.Duration `toml:"write_timeout"`
}

type TransportConfig struct {
	Timeout time.Duration `toml:"timeout"`
	Retries int           `toml:"retries"`
	IDTag   string        `toml:"id_tag"`
}

type SnifferConfig struct {
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
	Pcap   string `toml:"pcap"`
	JSON   string `toml:"json"`
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: "info"},
		Serial: SerialConfig{
			BaudRate:    115200,
			DataBits:    8,
			Parity:      "N",
			StopBits:    1,
			ReadTimeout: 100 * time.Millisecond,
		},
		Transport: TransportConfig{
			Timeout: time.Second,
			IDTag:   "DUT",
		},
		Sniffer: SnifferConfig{Mode: "bidirectional"},
	}
}

// LoadConfig overlays the TOML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	if und := md.Undecoded(); len(und) > 0 {
		GetLogger().Warnf("config %s: ignoring unknown keys %v", path, und)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Serial.Driver {
	case "", "bugst", "jacobsa":
	default:
		return errors.Errorf("serial.driver %q: expected bugst or jacobsa", c.Serial.Driver)
	}
	if c.Serial.BaudRate <= 0 {
		return errors.Errorf("serial.baud must be positive, got %d", c.Serial.BaudRate)
	}
	if c.Serial.DataBits < 5 || c.Serial.DataBits > 8 {
		return errors.Errorf("serial.data_bits must be 5-8, got %d", c.Serial.DataBits)
	}
	switch strings.ToUpper(c.Serial.Parity) {
	case "N", "E", "O", "M", "S":
	default:
		return errors.Errorf("serial.parity %q: expected one of N E O M S", c.Serial.Parity)
	}
	switch c.Serial.StopBits {
	case 1, 1.5, 2:
	default:
		return errors.Errorf("serial.stop_bits must be 1, 1.5 or 2, got %v", c.Serial.StopBits)
	}
	if c.Transport.Timeout <= 0 {
		return errors.Errorf("transport.timeout must be positive, got %v", c.Transport.Timeout)
	}
	if c.Transport.Retries < 0 {
		return errors.Errorf("transport.retries must not be negative, got %d", c.Transport.Retries)
	}
	switch strings.ToLower(c.Sniffer.Mode) {
	case "", "bidirectional", "both", "ctrl2host", "c2h", "host2ctrl", "h2c":
	default:
		return errors.Errorf("sniffer.mode %q is not recognised", c.Sniffer.Mode)
	}
	return nil
}
