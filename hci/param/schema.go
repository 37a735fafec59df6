package param

// Node is an element of a Schema: a Field or a Repeat group.
type Node interface {
	node()
}

// Schema is the ordered parameter layout of one packet kind. A nil Schema
// means the packet kind has no known parameters.
type Schema []Node

// Field describes one parameter. A "{}" in Label is replaced with the
// index of the enclosing Repeat iteration.
type Field struct {
	Label string
	Len   Length
	Kind  Kind
}

// Repeat decodes Fields as a group, Count times.
type Repeat struct {
	Count  Count
	Fields []Node
}

func (Field) node()  {}
func (Repeat) node() {}

type lengthKind uint8

const (
	lenFixed lengthKind = iota
	lenToEnd
	lenReserve
	lenRef
)

// Length says how many bytes a Field consumes.
type Length struct {
	kind lengthKind
	n    int
}

// Fixed is exactly n bytes.
func Fixed(n int) Length { return Length{kind: lenFixed, n: n} }

// ToEnd consumes everything left in the payload.
func ToEnd() Length { return Length{kind: lenToEnd} }

// Reserve consumes everything except the last k bytes.
func Reserve(k int) Length { return Length{kind: lenReserve, n: k} }

// Ref takes the length from an already decoded numeric value. A negative
// offset is relative to the next value index (-1 is the previous value);
// zero or positive is an absolute index.
func Ref(offset int) Length { return Length{kind: lenRef, n: offset} }

// IsFixed reports whether l is Fixed and returns its size.
func (l Length) IsFixed() (int, bool) {
	return l.n, l.kind == lenFixed
}

type countKind uint8

const (
	countRef countKind = iota
	countFit
	countRemaining
)

// Count says how many times a Repeat group is decoded.
type Count struct {
	kind countKind
	ref  int
}

// CountRef takes the iteration count from an already decoded value, with
// the same offset rules as Ref.
func CountRef(offset int) Count { return Count{kind: countRef, ref: offset} }

// CountFit divides the remaining bytes by the fixed size of one
// iteration. Groups with variable sized members decode until the end.
func CountFit() Count { return Count{kind: countFit} }

// CountRemaining repeats until the cursor reaches the end of the payload.
func CountRemaining() Count { return Count{kind: countRemaining} }

// fixedSize returns the byte size of one pass over ns, if every member
// has a Fixed length.
func fixedSize(ns []Node) (int, bool) {
	total := 0
	for _, n := range ns {
		switch n := n.(type) {
		case Field:
			sz, ok := n.Len.IsFixed()
			if !ok {
				return 0, false
			}
			total += sz
		case Repeat:
			return 0, false
		}
	}
	return total, true
}

// F is shorthand for a Fixed length Field.
func F(label string, n int, k Kind) Field {
	return Field{Label: label, Len: Fixed(n), Kind: k}
}

// Rest is shorthand for a Field running to the end of the payload.
func Rest(label string, k Kind) Field {
	return Field{Label: label, Len: ToEnd(), Kind: k}
}
