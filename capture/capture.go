// Package capture reads and writes Bluetooth H4 pcap files.
//
// Files are written with LINKTYPE_BLUETOOTH_HCI_H4_WITH_PHDR: every packet
// starts with a four byte big endian direction word (0 sent by the host,
// 1 received from the controller) followed by the H4 frame, indicator byte
// included. Plain LINKTYPE_BLUETOOTH_HCI_H4 files can be read as well.
package capture

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
)

const (
	LinkTypeH4         layers.LinkType = 187
	LinkTypeH4WithPhdr layers.LinkType = 201

	snapLen = 65535
	phdrLen = 4
)

const (
	dirSent     uint32 = 0
	dirReceived uint32 = 1
)

// ErrLinkType means a pcap file does not hold H4 frames.
var ErrLinkType = errors.New("capture: unsupported link type")

// Frame is one captured H4 frame.
type Frame struct {
	Time time.Time
	// Phdr reports whether the direction is known.
	Phdr bool
	// Received is set for controller to host frames.
	Received bool
	Data     []byte
}

// Writer appends frames to a pcap stream.
type Writer struct {
	w *pcapgo.Writer
}

// NewWriter writes the pcap file header to w.
func NewWriter(w io.Writer) (*Writer, error) {
	pw := pcapgo.NewWriter(w)
	if err := pw.WriteFileHeader(snapLen, LinkTypeH4WithPhdr); err != nil {
		return nil, errors.Wrap(err, "capture: write file header")
	}
	return &Writer{w: pw}, nil
}

// WriteFrame writes one frame with its direction header.
func (w *Writer) WriteFrame(ts time.Time, received bool, frame []byte) error {
	b := make([]byte, phdrLen+len(frame))
	dir := dirSent
	if received {
		dir = dirReceived
	}
	binary.BigEndian.PutUint32(b, dir)
	copy(b[phdrLen:], frame)

	ci := gopacket.CaptureInfo{
		Timestamp:     ts,
		CaptureLength: len(b),
		Length:        len(b),
	}
	return errors.Wrap(w.w.WritePacket(ci, b), "capture: write packet")
}

// Reader iterates over the frames of a pcap stream.
type Reader struct {
	r    *pcapgo.Reader
	link layers.LinkType
}

// NewReader reads the pcap file header from r. Only the two H4 link types
// are accepted.
func NewReader(r io.Reader) (*Reader, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "capture: read file header")
	}
	link := pr.LinkType()
	if link != LinkTypeH4 && link != LinkTypeH4WithPhdr {
		return nil, errors.Wrapf(ErrLinkType, "%d", link)
	}
	return &Reader{r: pr, link: link}, nil
}

// ReadFrame returns the next frame, or io.EOF at the end of the stream.
func (r *Reader) ReadFrame() (Frame, error) {
	data, ci, err := r.r.ReadPacketData()
	if err != nil {
		if err == io.EOF {
			return Frame{}, err
		}
		return Frame{}, errors.Wrap(err, "capture: read packet")
	}

	f := Frame{Time: ci.Timestamp, Data: data}
	if r.link == LinkTypeH4WithPhdr {
		if len(data) < phdrLen {
			return Frame{}, errors.Errorf("capture: %d byte packet has no direction header", len(data))
		}
		f.Phdr = true
		f.Received = binary.BigEndian.Uint32(data)&dirReceived != 0
		f.Data = data[phdrLen:]
	}
	return f, nil
}
