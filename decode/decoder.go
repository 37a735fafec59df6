// Package decode turns captured HCI traffic into decoded records. Inputs
// are single frames, raw H4 byte streams, tagged text logs and pcap files;
// outputs are text, JSON lines or pcap.
//
// A frame that fails to decode yields a record with Err set and decoding
// moves on to the next frame.
package decode

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rigado/hcitools"
	"github.com/rigado/hcitools/capture"
	"github.com/rigado/hcitools/hci/h4"
	"github.com/rigado/hcitools/hci/packet"
)

// EmitFunc receives each record in input order. A non-nil error stops the
// decode and is returned to the caller.
type EmitFunc func(Record) error

// Decoder turns frames into records using a schema repository.
type Decoder struct {
	repo packet.Repository
	log  hcitools.Logger
}

// New returns a Decoder over repo.
func New(repo packet.Repository) *Decoder {
	return &Decoder{repo: repo, log: hcitools.Component("decode")}
}

func (d *Decoder) SetLogger(l hcitools.Logger) { d.log = l }

// Frame decodes a single frame.
func (d *Decoder) Frame(dir Direction, frame []byte) Record {
	dec, err := packet.Decode(frame, d.repo)
	if err != nil {
		d.log.Debugf("frame % X: %v", frame, err)
		return Record{Direction: dir, Frame: frame, Err: err}
	}
	return Record{Direction: dir, Frame: frame, Decoded: dec}
}

// Bytes decodes a binary H4 stream. Bytes that are not a packet indicator
// are skipped. A frame cut short by the end of the stream is reported as a
// final record with h4.ErrTruncated.
func (d *Decoder) Bytes(r io.Reader, emit EmitFunc) error {
	fr := h4.NewReader(r)
	fr.SetLogger(d.log)

	for i := 0; ; i++ {
		b, err := fr.ReadFrame()
		switch {
		case err == io.EOF:
			return nil
		case errors.Is(err, h4.ErrTruncated):
			return emit(Record{Index: i, Err: err})
		case err != nil:
			return err
		}

		rec := d.Frame(Unknown, b)
		rec.Index = i
		if err := emit(rec); err != nil {
			return err
		}
	}
}

// TextOptions selects the frame lines of a text log.
type TextOptions struct {
	// Leading lists prefixes that mark a frame line of unknown direction.
	// When set, lines matching neither a direction tag nor a prefix are
	// skipped. When empty every line is a frame.
	Leading []string
	C2HTag  string
	H2CTag  string
}

// classify strips the tag from a trimmed line. It reports false for lines
// that do not hold a frame.
func (o TextOptions) classify(line string) (Direction, string, bool) {
	switch {
	case o.C2HTag != "" && strings.HasPrefix(line, o.C2HTag):
		return ControllerToHost, line[len(o.C2HTag):], true
	case o.H2CTag != "" && strings.HasPrefix(line, o.H2CTag):
		return HostToController, line[len(o.H2CTag):], true
	case len(o.Leading) > 0:
		for _, l := range o.Leading {
			if strings.HasPrefix(line, l) {
				return Unknown, line[len(l):], true
			}
		}
		return Unknown, "", false
	}
	return Unknown, line, true
}

// Text decodes a text log holding one hex frame per line.
func (d *Decoder) Text(r io.Reader, opts TextOptions, emit EmitFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	idx, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		dir, body, ok := opts.classify(line)
		if !ok {
			continue
		}

		var rec Record
		frame, err := ParseHex(body)
		if err != nil {
			rec = Record{Direction: dir, Err: errors.Wrapf(err, "line %d", lineNo)}
		} else {
			rec = d.Frame(dir, frame)
		}
		rec.Index = idx
		idx++
		if err := emit(rec); err != nil {
			return err
		}
	}
	return errors.Wrap(sc.Err(), "decode: read text")
}

// Pcap decodes an H4 pcap stream. Directions come from the packet header
// when the file has one.
func (d *Decoder) Pcap(r io.Reader, emit EmitFunc) error {
	cr, err := capture.NewReader(r)
	if err != nil {
		return err
	}
	for i := 0; ; i++ {
		f, err := cr.ReadFrame()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		dir := Unknown
		if f.Phdr {
			dir = HostToController
			if f.Received {
				dir = ControllerToHost
			}
		}
		rec := d.Frame(dir, f.Data)
		rec.Index = i
		rec.Time = f.Time
		if err := emit(rec); err != nil {
			return err
		}
	}
}

// Collect returns an EmitFunc appending to *recs.
func Collect(recs *[]Record) EmitFunc {
	return func(r Record) error {
		*recs = append(*recs, r)
		return nil
	}
}
