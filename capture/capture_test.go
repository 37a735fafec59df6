package capture

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}

	ts := time.Unix(1700000000, 123000).UTC()
	frames := []struct {
		received bool
		data     []byte
	}{
		{false, []byte{0x01, 0x03, 0x0c, 0x00}},
		{true, []byte{0x04, 0x0e, 0x04, 0x01, 0x03, 0x0c, 0x00}},
	}
	for _, f := range frames {
		if err := w.WriteFrame(ts, f.received, f.data); err != nil {
			t.Fatal(err)
		}
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range frames {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if !got.Phdr || got.Received != want.received || !bytes.Equal(got.Data, want.data) {
			t.Fatalf("frame %d: got %+v", i, got)
		}
		if !got.Time.Equal(ts) {
			t.Fatalf("frame %d: time %v", i, got.Time)
		}
	}
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestPlainH4(t *testing.T) {
	var buf bytes.Buffer
	pw := pcapgo.NewWriter(&buf)
	if err := pw.WriteFileHeader(snapLen, LinkTypeH4); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestLinkType(t *testing.T) {
	var buf bytes.Buffer
	pw := pcapgo.NewWriter(&buf)
	if err := pw.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(&buf); !errors.Is(err, ErrLinkType) {
		t.Fatalf("expected ErrLinkType, got %v", err)
	}
}
