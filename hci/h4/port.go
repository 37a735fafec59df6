package h4

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
)

// ErrOpen is wrapped by every port open failure.
var ErrOpen = errors.New("h4: can't open port")

// Port is a full-duplex H4 byte stream. Read may return (0, nil) when the
// port's read timeout expires without data.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error

	// Flush blocks until written bytes have left the host.
	Flush() error
}

// Driver names accepted in PortConfig.Driver.
const (
	DriverBugst   = "bugst"
	DriverJacobsa = "jacobsa"
)

// PortConfig describes how to open a port. Names of the form
// "tcp://host:port" open an H4 bridge over TCP instead of a tty.
type PortConfig struct {
	Name             string
	Driver           string
	BaudRate         int
	DataBits         int
	Parity           string
	StopBits         float64
	RTSCTS           bool
	ReadTimeout      time.Duration
	InterByteTimeout time.Duration
	WriteTimeout     time.Duration
}

// DefaultPortConfig returns 115200 8N1 with a 100ms read timeout.
func DefaultPortConfig(name string) PortConfig {
	return ConfigFrom(name, hcitools.DefaultConfig().Serial)
}

// ConfigFrom builds a PortConfig for name from the serial config section.
func ConfigFrom(name string, sc hcitools.SerialConfig) PortConfig {
	return PortConfig{
		Name:             name,
		Driver:           sc.Driver,
		BaudRate:         sc.BaudRate,
		DataBits:         sc.DataBits,
		Parity:           sc.Parity,
		StopBits:         sc.StopBits,
		RTSCTS:           sc.RTSCTS,
		ReadTimeout:      sc.ReadTimeout,
		InterByteTimeout: sc.InterByteTimeout,
		WriteTimeout:     sc.WriteTimeout,
	}
}

// driver picks the serial backend. go.bug.st/serial has no hardware flow
// control, so RTS/CTS falls back to jacobsa unless bugst is forced.
func (c PortConfig) driver() string {
	switch {
	case c.Driver != "":
		return c.Driver
	case c.RTSCTS:
		return DriverJacobsa
	}
	return DriverBugst
}

func (c PortConfig) normalize() (PortConfig, error) {
	if c.BaudRate <= 0 {
		c.BaudRate = 115200
	}
	if c.DataBits == 0 {
		c.DataBits = 8
	}
	if c.DataBits < 5 || c.DataBits > 8 {
		return c, errors.Errorf("invalid data bits %d", c.DataBits)
	}
	if c.StopBits == 0 {
		c.StopBits = 1
	}
	c.Parity = strings.ToUpper(strings.TrimSpace(c.Parity))
	if c.Parity == "" {
		c.Parity = "N"
	}
	return c, nil
}

// Open opens the port described by cfg.
func Open(cfg PortConfig) (Port, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, errors.Wrapf(ErrOpen, "%s: %v", cfg.Name, err)
	}

	log := hcitools.Component("h4").ChildLogger(map[string]interface{}{"port": cfg.Name})

	var p Port
	switch {
	case strings.HasPrefix(cfg.Name, "tcp://"):
		p, err = openTCP(strings.TrimPrefix(cfg.Name, "tcp://"), cfg)
	case cfg.driver() == DriverJacobsa:
		p, err = openJacobsa(cfg)
	case cfg.driver() == DriverBugst:
		if cfg.RTSCTS {
			return nil, errors.Wrapf(ErrOpen, "%s: driver bugst has no rts/cts support", cfg.Name)
		}
		p, err = openBugst(cfg)
	default:
		return nil, errors.Wrapf(ErrOpen, "%s: unknown driver %q", cfg.Name, cfg.Driver)
	}
	if err != nil {
		return nil, errors.Wrapf(ErrOpen, "%s: %v", cfg.Name, err)
	}

	log.Debugf("opened %d %d%s%v", cfg.BaudRate, cfg.DataBits, cfg.Parity, cfg.StopBits)
	return p, nil
}
