// Package sniffer taps the HCI traffic of a serial controller. The host
// talks to a pseudo-terminal proxy instead of the real port; frames are
// forwarded both ways and the observed ones are decoded to sinks.
package sniffer

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/decode"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/rigado/hcitools/hci/packet"
	"github.com/rigado/hcitools/hci/schema"
	"github.com/rigado/hcitools/internal/queue"
)

const pollInterval = 100 * time.Millisecond

// Sniffer forwards frames between a controller and a host and records them.
type Sniffer struct {
	device io.ReadWriteCloser
	proxy  io.ReadWriteCloser
	path   string

	mode    Mode
	repo    packet.Repository
	sinks   decode.Sinks
	closers []io.Closer
	log     hcitools.Logger

	frames *queue.Queue[decode.Record]
	count  int

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
	closeErr  error
}

// New starts sniffing between device, the controller side, and proxy, the
// host side.
func New(ctx context.Context, device, proxy io.ReadWriteCloser, opts ...Option) (*Sniffer, error) {
	s := &Sniffer{
		device: device,
		proxy:  proxy,
		frames: queue.New[decode.Record](),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.log == nil {
		s.log = hcitools.Component("sniffer")
	}
	if s.repo == nil {
		s.repo = schema.Default()
	}
	if len(s.sinks) == 0 {
		s.sinks = decode.Sinks{decode.NewTextSink(os.Stdout)}
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(3)
	go s.forward(decode.HostToController, proxy, device)
	go s.forward(decode.ControllerToHost, device, proxy)
	go s.consume()

	s.log.Infof("sniffing %v", s.mode)
	return s, nil
}

// Open opens the real port and a raw pseudo-terminal and sniffs between
// them. The host connects to Proxy().
func Open(ctx context.Context, cfg h4.PortConfig, opts ...Option) (*Sniffer, error) {
	master, slave, path, err := openPTY()
	if err != nil {
		return nil, err
	}
	port, err := h4.Open(cfg)
	if err != nil {
		master.Close()
		slave.Close()
		return nil, err
	}

	opts = append(opts, OptCloser(slave))
	s, err := New(ctx, port, master, opts...)
	if err != nil {
		port.Close()
		master.Close()
		slave.Close()
		return nil, err
	}
	s.path = path
	return s, nil
}

// Proxy returns the pseudo-terminal path the host should open. It is empty
// for sniffers built with New.
func (s *Sniffer) Proxy() string { return s.path }

// Mode returns the recorded directions.
func (s *Sniffer) Mode() Mode { return s.mode }

func (s *Sniffer) forward(dir decode.Direction, src io.Reader, dst io.Writer) {
	defer s.wg.Done()
	defer s.doneOnce.Do(func() { close(s.done) })

	log := s.log.ChildLogger(map[string]interface{}{"dir": dir.Tag()})
	fr := h4.NewReader(h4.ContextReader(s.ctx, src))
	fr.SetLogger(log)

	for {
		b, err := fr.ReadFrame()
		if err != nil {
			if s.ctx.Err() == nil && err != io.EOF {
				log.Errorf("read: %v", err)
			}
			return
		}

		if s.mode.observes(dir) {
			s.frames.Push(decode.Record{Time: time.Now(), Direction: dir, Frame: b})
		}
		if _, err := dst.Write(b); err != nil {
			if s.ctx.Err() == nil {
				log.Errorf("forward: %v", err)
			}
			return
		}
	}
}

func (s *Sniffer) consume() {
	defer s.wg.Done()

	dec := decode.New(s.repo)
	dec.SetLogger(s.log)

	for s.ctx.Err() == nil {
		rec, ok := s.frames.PopTimeout(pollInterval)
		if !ok {
			continue
		}
		s.emit(dec, rec)
	}
	for _, rec := range s.frames.Drain() {
		s.emit(dec, rec)
	}
}

func (s *Sniffer) emit(dec *decode.Decoder, rec decode.Record) {
	out := dec.Frame(rec.Direction, rec.Frame)
	out.Time = rec.Time
	out.Index = s.count
	s.count++
	if err := s.sinks.Write(out); err != nil {
		s.log.Warnf("sink: %v", err)
	}
}

// Done is closed once either forwarder stops, when an endpoint fails or
// the sniffer is closed.
func (s *Sniffer) Done() <-chan struct{} { return s.done }

// Wait blocks until the sniffer stops.
func (s *Sniffer) Wait() { s.wg.Wait() }

// Close stops the goroutines and closes the endpoints. Frames already
// observed are written to the sinks before it returns.
func (s *Sniffer) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		// Closing the endpoints releases blocked reads.
		errs := []error{s.proxy.Close(), s.device.Close()}
		s.wg.Wait()
		s.frames.Close()
		for _, c := range s.closers {
			errs = append(errs, c.Close())
		}
		for _, err := range errs {
			if err != nil && s.closeErr == nil {
				s.closeErr = errors.Wrap(err, "sniffer: close")
			}
		}
	})
	return s.closeErr
}
