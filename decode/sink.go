package decode

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rigado/hcitools/capture"
	"github.com/rigado/hcitools/hci/packet"
)

// LogHeader opens sniffer log files.
const LogHeader = "HCI Sniffer Logs\n================\n"

// Sink consumes decoded records.
type Sink interface {
	Write(Record) error
}

// Sinks fans a record out to every sink and returns the first error.
type Sinks []Sink

func (ss Sinks) Write(r Record) error {
	var first error
	for _, s := range ss {
		if err := s.Write(r); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Emit adapts a sink to an EmitFunc.
func Emit(s Sink) EmitFunc { return s.Write }

// TextSink writes Record.Text.
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink { return &TextSink{w: w} }

func (s *TextSink) Write(r Record) error {
	_, err := io.WriteString(s.w, r.Text())
	return err
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonPacket struct {
	Type     string        `json:"type,omitempty"`
	Header   []packet.Line `json:"header,omitempty"`
	Params   []packet.Line `json:"params,omitempty"`
	NoParams bool          `json:"no_params,omitempty"`
	Trailing string        `json:"trailing,omitempty"`
	ATT      *jsonPacket   `json:"att,omitempty"`
}

type jsonRecord struct {
	Index     int         `json:"index"`
	Time      string      `json:"time,omitempty"`
	Direction string      `json:"direction,omitempty"`
	Frame     string      `json:"frame"`
	Packet    *jsonPacket `json:"packet,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func toJSONPacket(d *packet.Decoded) *jsonPacket {
	if d == nil {
		return nil
	}
	p := &jsonPacket{
		Header: d.Header,
		ATT:    toJSONPacket(d.ATT),
	}
	if d.Type.Known() {
		p.Type = d.Type.String()
	}
	if d.Params != nil {
		p.NoParams = d.Params.NoParams
		for _, e := range d.Params.Entries {
			p.Params = append(p.Params, packet.Line{Key: e.Label, Value: e.Value.String()})
		}
		if len(d.Params.Trailing) > 0 {
			p.Trailing = fmt.Sprintf("%X", d.Params.Trailing)
		}
	}
	return p
}

// JSONSink writes one JSON object per record.
type JSONSink struct {
	enc *jsoniter.Encoder
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (s *JSONSink) Write(r Record) error {
	jr := jsonRecord{
		Index:     r.Index,
		Direction: r.Direction.Tag(),
		Frame:     fmt.Sprintf("%X", r.Frame),
		Packet:    toJSONPacket(r.Decoded),
	}
	if !r.Time.IsZero() {
		jr.Time = r.Time.Format(time.RFC3339Nano)
	}
	if r.Err != nil {
		jr.Error = r.Err.Error()
	}
	return s.enc.Encode(jr)
}

// PcapSink writes record frames to a pcap stream. Records without a frame
// are skipped and records without a time are stamped with the write time.
type PcapSink struct {
	w *capture.Writer
}

func NewPcapSink(w io.Writer) (*PcapSink, error) {
	cw, err := capture.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &PcapSink{w: cw}, nil
}

func (s *PcapSink) Write(r Record) error {
	if len(r.Frame) == 0 {
		return nil
	}
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return s.w.WriteFrame(ts, r.Direction == ControllerToHost, r.Frame)
}
