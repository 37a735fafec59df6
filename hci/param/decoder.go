package param

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Result is the outcome of decoding one payload.
type Result struct {
	Entries []Entry
	// NoParams is set when there was no schema for the payload.
	NoParams bool
	// Consumed is the number of payload bytes covered by the schema.
	Consumed int
	// Trailing holds bytes left after the last schema node.
	Trailing []byte
}

// Lookup returns the first entry with the given label.
func (r *Result) Lookup(label string) (Value, bool) {
	for _, e := range r.Entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return nil, false
}

// Text renders the parameter block: "Params: None" without a schema,
// otherwise "Params:" followed by one indented Label=Value line per entry.
func (r *Result) Text() string {
	var sb strings.Builder
	r.writeText(&sb)
	return sb.String()
}

func (r *Result) writeText(sb *strings.Builder) {
	if r.NoParams {
		sb.WriteString("Params: None\n")
		return
	}
	sb.WriteString("Params:\n")
	for _, e := range r.Entries {
		sb.WriteString("    ")
		sb.WriteString(e.Label)
		sb.WriteByte('=')
		sb.WriteString(e.Value.String())
		sb.WriteByte('\n')
	}
	if len(r.Trailing) > 0 {
		sb.WriteString("    Trailing_Bytes=")
		sb.WriteString(Bytes(r.Trailing).String())
		sb.WriteByte('\n')
	}
}

type decoder struct {
	buf     []byte
	pos     int
	values  []Value
	entries []Entry
}

// Decode applies schema to payload. Each call keeps its own cursor and
// value list, so schemas can be shared between goroutines.
func Decode(payload []byte, schema Schema) (*Result, error) {
	if schema == nil {
		return &Result{NoParams: true}, nil
	}

	d := &decoder{buf: payload}
	if err := d.nodes(schema, nil); err != nil {
		return nil, err
	}

	res := &Result{Entries: d.entries, Consumed: d.pos}
	if d.pos < len(payload) {
		res.Trailing = payload[d.pos:]
	}
	return res, nil
}

func (d *decoder) remaining() int { return len(d.buf) - d.pos }

func (d *decoder) nodes(ns []Node, idx []int) error {
	for _, n := range ns {
		var err error
		switch n := n.(type) {
		case Field:
			err = d.field(n, idx)
		case Repeat:
			err = d.repeat(n, idx)
		default:
			err = schemaErr("unexpected node %T", n)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) field(f Field, idx []int) error {
	label := expand(f.Label, idx)

	n, err := d.length(f.Len, label)
	if err != nil {
		return err
	}
	if n > d.remaining() {
		return &MalformedError{Label: label, Offset: d.pos, Want: n, Have: d.remaining()}
	}

	v, err := f.Kind.Decode(d.buf[d.pos : d.pos+n])
	if err != nil {
		return errors.Wrapf(err, "%s at offset %d", label, d.pos)
	}
	d.pos += n
	d.values = append(d.values, v)
	d.entries = append(d.entries, Entry{Label: label, Value: v})
	return nil
}

func (d *decoder) length(l Length, label string) (int, error) {
	switch l.kind {
	case lenFixed:
		return l.n, nil
	case lenToEnd:
		return d.remaining(), nil
	case lenReserve:
		n := d.remaining() - l.n
		if n < 0 {
			return 0, &MalformedError{Label: label, Offset: d.pos, Want: l.n, Have: d.remaining()}
		}
		return n, nil
	case lenRef:
		return d.ref(l.n, label)
	}
	return 0, schemaErr("%s: unknown length kind %d", label, l.kind)
}

// ref resolves a back reference to a decoded numeric value.
func (d *decoder) ref(offset int, label string) (int, error) {
	i := offset
	if offset < 0 {
		i = len(d.values) + offset
	}
	if i < 0 || i >= len(d.values) {
		return 0, schemaErr("%s: reference %d resolves to value %d of %d", label, offset, i, len(d.values))
	}

	num, ok := d.values[i].(Numeric)
	if !ok {
		return 0, schemaErr("%s: referenced value %d (%T) is not numeric", label, i, d.values[i])
	}
	n, ok := num.Uint64()
	if !ok || n > uint64(len(d.buf)) {
		// a count or length larger than the whole payload can never fit
		return 0, &MalformedError{Label: label, Offset: d.pos, Want: int(min(n, 1<<31)), Have: d.remaining()}
	}
	return int(n), nil
}

func (d *decoder) repeat(r Repeat, idx []int) error {
	sub := append(idx[:len(idx):len(idx)], 0)

	switch r.Count.kind {
	case countRef:
		n, err := d.ref(r.Count.ref, "repeat count")
		if err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			sub[len(sub)-1] = i
			if err := d.nodes(r.Fields, sub); err != nil {
				return err
			}
		}
		return nil

	case countFit:
		if size, ok := fixedSize(r.Fields); ok {
			if size == 0 {
				return schemaErr("repeat group of zero size")
			}
			n := d.remaining() / size
			for i := 0; i < n; i++ {
				sub[len(sub)-1] = i
				if err := d.nodes(r.Fields, sub); err != nil {
					return err
				}
			}
			return nil
		}
		fallthrough

	case countRemaining:
		for i := 0; d.remaining() > 0; i++ {
			start := d.pos
			sub[len(sub)-1] = i
			if err := d.nodes(r.Fields, sub); err != nil {
				return err
			}
			if d.pos == start {
				return schemaErr("repeat group consumed no bytes")
			}
		}
		return nil
	}
	return schemaErr("unknown count kind %d", r.Count.kind)
}

// expand replaces the "{}" placeholders in label with iteration indices.
// With k placeholders the k innermost indices are used, outer first.
func expand(label string, idx []int) string {
	k := strings.Count(label, "{}")
	if k == 0 || len(idx) == 0 {
		return label
	}
	if k < len(idx) {
		idx = idx[len(idx)-k:]
	}

	var sb strings.Builder
	for _, i := range idx {
		j := strings.Index(label, "{}")
		sb.WriteString(label[:j])
		sb.WriteString(strconv.Itoa(i))
		label = label[j+2:]
	}
	sb.WriteString(label)
	return sb.String()
}
