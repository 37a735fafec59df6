package h4

import (
	"github.com/pkg/errors"
	"go.bug.st/serial"
)

type bugstPort struct {
	sp serial.Port
}

func bugstMode(cfg PortConfig) (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
	}

	switch cfg.Parity {
	case "N":
		mode.Parity = serial.NoParity
	case "E":
		mode.Parity = serial.EvenParity
	case "O":
		mode.Parity = serial.OddParity
	case "M":
		mode.Parity = serial.MarkParity
	case "S":
		mode.Parity = serial.SpaceParity
	default:
		return nil, errors.Errorf("unsupported parity %q", cfg.Parity)
	}

	switch cfg.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 1.5:
		mode.StopBits = serial.OnePointFiveStopBits
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, errors.Errorf("unsupported stop bits %v", cfg.StopBits)
	}
	return mode, nil
}

func openBugst(cfg PortConfig) (Port, error) {
	mode, err := bugstMode(cfg)
	if err != nil {
		return nil, err
	}

	sp, err := serial.Open(cfg.Name, mode)
	if err != nil {
		return nil, err
	}

	if cfg.ReadTimeout > 0 {
		if err := sp.SetReadTimeout(cfg.ReadTimeout); err != nil {
			sp.Close()
			return nil, errors.Wrap(err, "can't set read timeout")
		}
	}
	return &bugstPort{sp: sp}, nil
}

func (p *bugstPort) Read(b []byte) (int, error) {
	n, err := p.sp.Read(b)
	return n, errors.Wrap(err, "can't read serial")
}

func (p *bugstPort) Write(b []byte) (int, error) {
	n, err := p.sp.Write(b)
	return n, errors.Wrap(err, "can't write serial")
}

func (p *bugstPort) Flush() error {
	return errors.Wrap(p.sp.Drain(), "can't drain serial")
}

func (p *bugstPort) Close() error {
	return errors.Wrap(p.sp.Close(), "can't close serial")
}
