package transport

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/rigado/hcitools/hci/socket"
)

// OpenFunc opens the port with the given name.
type OpenFunc func(name string) (h4.Port, error)

// socketWait bounds how long a busy HCI device is retried.
const socketWait = 5 * time.Second

// OpenPort opens "hciN" names as an HCI user channel and anything else as
// an h4 port with the serial settings in sc.
func OpenPort(name string, sc hcitools.SerialConfig) (h4.Port, error) {
	if id, ok := socket.ParseName(name); ok {
		s, err := socket.Open(id, socketWait)
		if err != nil {
			return nil, errors.Wrapf(ErrOpen, "%s: %v", name, err)
		}
		return s, nil
	}
	return h4.Open(h4.ConfigFrom(name, sc))
}

// SerialOpener opens ports with OpenPort.
func SerialOpener(sc hcitools.SerialConfig) OpenFunc {
	return func(name string) (h4.Port, error) {
		return OpenPort(name, sc)
	}
}

// Manager keeps at most one live transport per port name. Opening a name
// that is already live stops and flushes the old transport first.
type Manager struct {
	mu   sync.Mutex
	open OpenFunc
	live map[string]*Transport
	log  hcitools.Logger
}

// NewManager returns a Manager that opens ports with open.
func NewManager(open OpenFunc) *Manager {
	return &Manager{
		open: open,
		live: make(map[string]*Transport),
		log:  hcitools.Component("transport"),
	}
}

// Open returns a new transport on name, replacing any live one.
func (m *Manager) Open(ctx context.Context, name string, opts ...Option) (*Transport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.live[name]; ok {
		m.log.Infof("replacing transport on %s", name)
		if err := prev.Close(); err != nil {
			m.log.Warnf("close %s: %v", name, err)
		}
		delete(m.live, name)
	}

	p, err := m.open(name)
	if err != nil {
		if errors.Is(err, ErrOpen) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrOpen, "%s: %v", name, err)
	}
	t, err := New(ctx, name, p, opts...)
	if err != nil {
		p.Close()
		return nil, err
	}
	m.live[name] = t
	return t, nil
}

// Get returns the live transport on name.
func (m *Manager) Get(name string) (*Transport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.live[name]
	return t, ok
}

// Close stops the transport on name. Unknown names are not an error.
func (m *Manager) Close(name string) error {
	m.mu.Lock()
	t, ok := m.live[name]
	delete(m.live, name)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return t.Close()
}

// CloseAll stops every live transport and returns the first close error.
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	live := m.live
	m.live = make(map[string]*Transport)
	m.mu.Unlock()

	var first error
	for name, t := range live {
		if err := t.Close(); err != nil && first == nil {
			first = errors.Wrap(err, name)
		}
	}
	return first
}
