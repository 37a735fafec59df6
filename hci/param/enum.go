package param

import (
	"fmt"
	"sort"
)

// EnumRange names a block of codes not listed individually.
type EnumRange struct {
	Lo, Hi uint64
	Name   string
}

// EnumTable maps codes to names. Alt holds a second name some codes carry
// (BR/EDR and LE wording of the same status). Unlisted codes fall back to
// Ranges, then to "UNKNOWN".
type EnumTable struct {
	Names  map[uint64]string
	Alt    map[uint64]string
	Ranges []EnumRange
}

// Name returns the name of code and whether it is known.
func (t *EnumTable) Name(code uint64) (string, bool) {
	if n, ok := t.Names[code]; ok {
		return n, true
	}
	for _, r := range t.Ranges {
		if code >= r.Lo && code <= r.Hi {
			return r.Name, true
		}
	}
	return "UNKNOWN", false
}

// Codes returns the individually named codes in ascending order.
func (t *EnumTable) Codes() []uint64 {
	cc := make([]uint64, 0, len(t.Names))
	for c := range t.Names {
		cc = append(cc, c)
	}
	sort.Slice(cc, func(i, j int) bool { return cc[i] < cc[j] })
	return cc
}

func (t *EnumTable) value(code uint64, width int) Enum {
	n, _ := t.Name(code)
	return Enum{Code: code, Name: n, Alt: t.Alt[code], width: width}
}

// Enum is a named code.
type Enum struct {
	Code  uint64
	Name  string
	Alt   string
	width int
}

func (v Enum) Uint64() (uint64, bool) { return v.Code, true }

func (v Enum) String() string {
	name := v.Name
	if v.Alt != "" {
		name += "/" + v.Alt
	}
	return fmt.Sprintf("%s (0x%0*X)", name, 2*width(v.width), v.Code)
}

func width(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
