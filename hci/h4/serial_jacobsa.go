package h4

import (
	"io"

	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

// jacobsaPort wraps a tty opened with VMIN=0. An expired inter-character
// timeout surfaces from the os.File as io.EOF, which is reported as an
// empty read instead.
type jacobsaPort struct {
	sp io.ReadWriteCloser
}

func jacobsaOptions(cfg PortConfig) (serial.OpenOptions, error) {
	opts := serial.OpenOptions{
		PortName:          cfg.Name,
		BaudRate:          uint(cfg.BaudRate),
		DataBits:          uint(cfg.DataBits),
		RTSCTSFlowControl: cfg.RTSCTS,
		MinimumReadSize:   0,
	}

	switch cfg.StopBits {
	case 1:
		opts.StopBits = 1
	case 2:
		opts.StopBits = 2
	default:
		return opts, errors.Errorf("unsupported stop bits %v", cfg.StopBits)
	}

	switch cfg.Parity {
	case "N":
		opts.ParityMode = serial.PARITY_NONE
	case "E":
		opts.ParityMode = serial.PARITY_EVEN
	case "O":
		opts.ParityMode = serial.PARITY_ODD
	default:
		return opts, errors.Errorf("unsupported parity %q", cfg.Parity)
	}

	// force a timeout so reads can observe cancellation
	to := cfg.InterByteTimeout
	if to <= 0 {
		to = cfg.ReadTimeout
	}
	opts.InterCharacterTimeout = uint(to.Milliseconds())
	if opts.InterCharacterTimeout == 0 {
		opts.InterCharacterTimeout = 100
	}
	return opts, nil
}

func openJacobsa(cfg PortConfig) (Port, error) {
	opts, err := jacobsaOptions(cfg)
	if err != nil {
		return nil, err
	}

	sp, err := serial.Open(opts)
	if err != nil {
		return nil, err
	}
	return &jacobsaPort{sp: sp}, nil
}

func (p *jacobsaPort) Read(b []byte) (int, error) {
	n, err := p.sp.Read(b)
	if err == io.EOF {
		return n, nil
	}
	return n, errors.Wrap(err, "can't read serial")
}

func (p *jacobsaPort) Write(b []byte) (int, error) {
	n, err := p.sp.Write(b)
	return n, errors.Wrap(err, "can't write serial")
}

func (p *jacobsaPort) Flush() error { return nil }

func (p *jacobsaPort) Close() error {
	return errors.Wrap(p.sp.Close(), "can't close serial")
}
