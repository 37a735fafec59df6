package h4

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/hci"
)

// ErrTruncated is returned when the stream ends inside a frame.
var ErrTruncated = errors.New("h4: truncated frame")

// UnknownTypeError describes a byte that is not a known packet type
// indicator. The framer drops it and resynchronises on the next byte.
type UnknownTypeError struct {
	Type byte
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("h4: unrecognized packet type 0x%02x", e.Type)
}

// header describes the fixed part following the indicator byte.
type header struct {
	size    int // header bytes after the indicator
	lenOff  int // offset of the length field inside the header
	lenSize int // 1 or 2, little endian
}

var headers = map[hci.PacketType]header{
	hci.PktTypeCommand:  {size: 3, lenOff: 2, lenSize: 1}, // opcode(2) len(1)
	hci.PktTypeEvent:    {size: 2, lenOff: 1, lenSize: 1}, // code(1) len(1)
	hci.PktTypeACLData:  {size: 4, lenOff: 2, lenSize: 2}, // handle+flags(2) len(2)
	hci.PktTypeExtended: {size: 4, lenOff: 2, lenSize: 2}, // opcode(2) len(2)
}

// HeaderSize returns the number of header bytes that follow the indicator
// byte of packet type t.
func HeaderSize(t hci.PacketType) (int, bool) {
	h, ok := headers[t]
	return h.size, ok
}

func (h header) payloadLen(b []byte) int {
	n := int(b[h.lenOff])
	if h.lenSize == 2 {
		n |= int(b[h.lenOff+1]) << 8
	}
	return n
}

// Reader pulls complete H4 frames out of a byte stream.
type Reader struct {
	r         io.Reader
	log       hcitools.Logger
	discarded int
	ind       [1]byte
}

// NewReader returns a Reader that frames packets read from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, log: hcitools.Component("h4")}
}

// SetLogger replaces the logger used to report discarded bytes.
func (fr *Reader) SetLogger(l hcitools.Logger) { fr.log = l }

// Discarded returns how many bytes were dropped while resynchronising.
func (fr *Reader) Discarded() int { return fr.discarded }

// ReadFrame blocks until one whole frame has been read and returns it with
// the indicator byte at index 0. io.EOF is returned only on a frame boundary.
func (fr *Reader) ReadFrame() ([]byte, error) {
	for {
		if _, err := io.ReadFull(fr.r, fr.ind[:]); err != nil {
			return nil, err
		}

		h, ok := headers[hci.PacketType(fr.ind[0])]
		if !ok {
			fr.discarded++
			fr.log.Warnf("%v, dropping byte", &UnknownTypeError{Type: fr.ind[0]})
			continue
		}

		b := make([]byte, 1+h.size, 1+h.size+8)
		b[0] = fr.ind[0]
		if _, err := io.ReadFull(fr.r, b[1:]); err != nil {
			return nil, truncated(err, "header")
		}

		n := h.payloadLen(b[1:])
		b = append(b, make([]byte, n)...)
		if _, err := io.ReadFull(fr.r, b[1+h.size:]); err != nil {
			return nil, truncated(err, "payload")
		}
		return b, nil
	}
}

// ReadFrame reads a single frame from r. Use a Reader to keep the discard
// count across calls.
func ReadFrame(r io.Reader) ([]byte, error) {
	return NewReader(r).ReadFrame()
}

func truncated(err error, where string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrap(ErrTruncated, where)
	}
	return errors.Wrapf(err, "can't read frame %s", where)
}

// FrameLen returns the total length of the frame at the start of b, or 0
// when more bytes are needed. An unknown indicator yields an
// *UnknownTypeError.
func FrameLen(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	h, ok := headers[hci.PacketType(b[0])]
	if !ok {
		return 0, &UnknownTypeError{Type: b[0]}
	}
	if len(b) < 1+h.size {
		return 0, nil
	}
	total := 1 + h.size + h.payloadLen(b[1:])
	if len(b) < total {
		return 0, nil
	}
	return total, nil
}

// ScanFrames is a bufio.SplitFunc over H4 frames. Unknown indicator bytes
// are skipped one at a time.
func ScanFrames(data []byte, atEOF bool) (int, []byte, error) {
	skip := 0
	for skip < len(data) {
		n, err := FrameLen(data[skip:])
		if err != nil {
			skip++
			continue
		}
		if n == 0 {
			break
		}
		return skip + n, data[skip : skip+n], nil
	}

	switch {
	case skip == len(data) && skip > 0:
		return skip, nil, nil
	case atEOF && len(data) > skip:
		return 0, nil, ErrTruncated
	case skip > 0:
		return skip, nil, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = ScanFrames
