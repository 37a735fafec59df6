// Package transport talks to a controller over an H4 port. A single reader
// goroutine frames incoming bytes and routes them: command responses are
// queued for the caller waiting on them, ACL data and unsolicited events
// go to their handlers.
package transport

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/hci"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/rigado/hcitools/hci/packet"
	"github.com/rigado/hcitools/internal/queue"
)

const (
	DefaultTimeout = time.Second
	DefaultIDTag   = "DUT"
)

// Transport owns one port. Commands are serialized; at most one is in
// flight at a time.
type Transport struct {
	name    string
	tag     string
	port    h4.Port
	log     hcitools.Logger
	timeout time.Duration
	retries int

	onACL   func([]byte)
	onEvent func(*packet.EventPacket)

	responses *queue.Queue[*packet.EventPacket]
	acl       *queue.Queue[[]byte]
	events    *queue.Queue[*packet.EventPacket]

	sendMu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error

	errMu sync.Mutex
	err   error
}

// Open opens the port described by cfg and starts a transport on it.
func Open(ctx context.Context, cfg h4.PortConfig, opts ...Option) (*Transport, error) {
	p, err := h4.Open(cfg)
	if err != nil {
		return nil, err
	}
	t, err := New(ctx, cfg.Name, p, opts...)
	if err != nil {
		p.Close()
		return nil, err
	}
	return t, nil
}

// New starts a transport on an open port. The transport stops when ctx is
// done or Close is called.
func New(ctx context.Context, name string, port h4.Port, opts ...Option) (*Transport, error) {
	t := &Transport{
		name:      name,
		tag:       DefaultIDTag,
		port:      port,
		timeout:   DefaultTimeout,
		responses: queue.New[*packet.EventPacket](),
		acl:       queue.New[[]byte](),
		events:    queue.New[*packet.EventPacket](),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, errors.Wrap(err, "transport option")
		}
	}
	if t.log == nil {
		t.log = hcitools.Component("transport").ChildLogger(map[string]interface{}{"port": name})
	}

	t.ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(1)
	go t.readLoop()
	if t.onACL != nil {
		t.wg.Add(1)
		go consume(t, t.acl, t.onACL)
	}
	if t.onEvent != nil {
		t.wg.Add(1)
		go consume(t, t.events, t.onEvent)
	}
	return t, nil
}

// Name returns the port name the transport was started with.
func (t *Transport) Name() string { return t.name }

// Err returns the error that stopped the reader, if any.
func (t *Transport) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}

func (t *Transport) setErr(err error) {
	t.errMu.Lock()
	if t.err == nil {
		t.err = err
	}
	t.errMu.Unlock()
}

func consume[T any](t *Transport, q *queue.Queue[T], fn func(T)) {
	defer t.wg.Done()
	for {
		v, err := q.Pop(t.ctx)
		if err != nil {
			return
		}
		fn(v)
	}
}

func (t *Transport) readLoop() {
	defer func() {
		t.responses.Close()
		t.acl.Close()
		t.events.Close()
		t.wg.Done()
	}()

	fr := h4.NewReader(h4.ContextReader(t.ctx, t.port))
	fr.SetLogger(t.log)

	for {
		b, err := fr.ReadFrame()
		switch {
		case err == nil:
			t.log.Debugf("%s < % X", t.tag, b)
			t.dispatch(b)

		case t.ctx.Err() != nil:
			t.setErr(ErrClosed)
			return

		//callers depend on detecting io.EOF, don't wrap it.
		case err == io.EOF:
			t.setErr(err)
			return

		default:
			t.log.Errorf("read loop: %v", err)
			t.setErr(errors.Wrap(err, "transport read"))
			return
		}
	}
}

func (t *Transport) dispatch(b []byte) {
	switch hci.PacketType(b[0]) {
	case hci.PktTypeACLData:
		if t.onACL == nil {
			t.log.Debugf("no async handler, dropping acl % X", b)
			return
		}
		t.acl.Push(b)

	case hci.PktTypeEvent:
		p, err := packet.EventFromBytes(b)
		if err != nil {
			t.log.Warnf("dropping event: %v", err)
			return
		}
		if p.Code.IsCommandResponse() {
			t.responses.Push(p)
			return
		}
		if t.onEvent == nil {
			t.log.Debugf("no event handler, dropping %v", p.Code)
			return
		}
		t.events.Push(p)

	default:
		t.log.Warnf("dropping unexpected %v frame % X", hci.PacketType(b[0]), b)
	}
}

// SendCommand writes c and waits for the Command Complete or Command
// Status answering its opcode. Each attempt waits for the transport
// timeout; after the configured retries a *TimeoutError is returned.
func (t *Transport) SendCommand(ctx context.Context, c cmd.Encoder) (*packet.EventPacket, error) {
	b, err := cmd.Encode(c)
	if err != nil {
		return nil, err
	}
	return t.send(ctx, cmd.Opcode(c.OpCode()), b)
}

// SendRaw writes an already framed command and waits for its response.
func (t *Transport) SendRaw(ctx context.Context, frame []byte) (*packet.EventPacket, error) {
	op, n, err := cmd.DecodeHeader(frame)
	if err != nil {
		return nil, err
	}
	hdr := 4
	if hci.PacketType(frame[0]) == hci.PktTypeExtended {
		hdr = 5
	}
	if len(frame) != hdr+n {
		return nil, errors.Errorf("transport: %v frame has %d parameter bytes, header says %d", op, len(frame)-hdr, n)
	}
	return t.send(ctx, op, frame)
}

func (t *Transport) send(ctx context.Context, op cmd.Opcode, b []byte) (*packet.EventPacket, error) {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	if err := t.Err(); err != nil {
		return nil, err
	}

	for _, p := range t.responses.Drain() {
		got, _ := p.CommandOpcode()
		t.log.Debugf("dropping stale %v for %v", p.Code, got)
	}

	for attempt := 1; ; attempt++ {
		if err := t.port.Flush(); err != nil {
			t.log.Warnf("flush: %v", err)
		}
		t.log.Debugf("%s > % X", t.tag, b)
		if _, err := t.port.Write(b); err != nil {
			return nil, errors.Wrapf(err, "write %v", op)
		}

		p, err := t.await(ctx, op)
		switch {
		case err == nil:
			return p, nil
		case err != errAttemptTimeout:
			return nil, err
		case attempt > t.retries:
			return nil, &TimeoutError{Opcode: op, Attempts: attempt, Timeout: t.timeout}
		}
		t.log.Warnf("no response to %v in %v, retry %d/%d", op, t.timeout, attempt, t.retries)
	}
}

var errAttemptTimeout = errors.New("attempt timed out")

// await pops responses until one answers op.
func (t *Transport) await(ctx context.Context, op cmd.Opcode) (*packet.EventPacket, error) {
	actx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	for {
		p, err := t.responses.Pop(actx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case errors.Is(err, queue.ErrClosed):
			if rerr := t.Err(); rerr != nil {
				return nil, rerr
			}
			return nil, ErrClosed
		default:
			return nil, errAttemptTimeout
		}

		got, _ := p.CommandOpcode()
		if got == op {
			return p, nil
		}
		t.log.Debugf("dropping %v for %v while waiting for %v", p.Code, got, op)
	}
}

// Retrieve returns the next command response, waiting at most d. It is
// for responses to frames written outside SendCommand.
func (t *Transport) Retrieve(ctx context.Context, d time.Duration) (*packet.EventPacket, error) {
	actx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	p, err := t.responses.Pop(actx)
	if errors.Is(err, queue.ErrClosed) {
		return nil, ErrClosed
	}
	return p, err
}

// Write sends a frame without waiting for anything.
func (t *Transport) Write(frame []byte) error {
	if err := t.Err(); err != nil {
		return err
	}
	t.log.Debugf("%s > % X", t.tag, frame)
	_, err := t.port.Write(frame)
	return err
}

// Close stops the goroutines, flushes and closes the port. It is safe to
// call more than once.
func (t *Transport) Close() error {
	t.closeOnce.Do(func() {
		t.cancel()
		if err := t.port.Flush(); err != nil {
			t.log.Debugf("flush on close: %v", err)
		}
		t.closeErr = t.port.Close()
		t.wg.Wait()
		t.log.Debugf("closed")
	})
	return t.closeErr
}
