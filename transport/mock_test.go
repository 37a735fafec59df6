package transport

import (
	"bytes"
	"io"
	"sync"
)

// mockPort blocks reads until data is fed or the port is closed.
type mockPort struct {
	mu      sync.Mutex
	cond    *sync.Cond
	rx      bytes.Buffer
	writes  [][]byte
	flushes int
	closed  bool

	// onWrite runs after each write, outside the lock.
	onWrite func(m *mockPort, b []byte)
}

func newMockPort() *mockPort {
	m := &mockPort{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

func (m *mockPort) Read(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for !m.closed && m.rx.Len() == 0 {
		m.cond.Wait()
	}
	if m.closed {
		return 0, io.ErrClosedPipe
	}
	return m.rx.Read(b)
}

func (m *mockPort) Write(b []byte) (int, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, io.ErrClosedPipe
	}
	cp := append([]byte(nil), b...)
	m.writes = append(m.writes, cp)
	fn := m.onWrite
	m.mu.Unlock()

	if fn != nil {
		fn(m, cp)
	}
	return len(b), nil
}

func (m *mockPort) Flush() error {
	m.mu.Lock()
	m.flushes++
	m.mu.Unlock()
	return nil
}

func (m *mockPort) Close() error {
	m.mu.Lock()
	m.closed = true
	m.cond.Broadcast()
	m.mu.Unlock()
	return nil
}

func (m *mockPort) feed(b ...byte) {
	m.mu.Lock()
	m.rx.Write(b)
	m.cond.Broadcast()
	m.mu.Unlock()
}

func (m *mockPort) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

func (m *mockPort) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
