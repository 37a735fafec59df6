package param

import (
	"fmt"
	"math/bits"
	"strings"
)

// Bit names one flag of a bit set.
type Bit struct {
	Mask uint64
	Name string
}

// BitSet is the ordered list of named flags of a bit field.
type BitSet []Bit

// Flags is a decoded bit field.
type Flags struct {
	Bits  uint64
	set   BitSet
	width int
}

// NewFlags decodes v against set.
func NewFlags(v uint64, set BitSet, width int) Flags {
	return Flags{Bits: v, set: set, width: width}
}

func (f Flags) Uint64() (uint64, bool) { return f.Bits, true }

// Has reports whether every bit of mask is set.
func (f Flags) Has(mask uint64) bool { return mask != 0 && f.Bits&mask == mask }

// ActiveNames returns the names of the set flags in declaration order,
// followed by BIT<n> for set bits that have no name.
func (f Flags) ActiveNames() []string {
	var names []string
	var named uint64
	for _, b := range f.set {
		if f.Has(b.Mask) {
			names = append(names, b.Name)
		}
		named |= b.Mask
	}
	for rest := f.Bits &^ named; rest != 0; rest &= rest - 1 {
		names = append(names, fmt.Sprintf("BIT%d", bits.TrailingZeros64(rest)))
	}
	return names
}

func (f Flags) String() string {
	names := f.ActiveNames()
	s := "NONE"
	if len(names) > 0 {
		s = strings.Join(names, "|")
	}
	return fmt.Sprintf("%s (0x%0*X)", s, 2*width(f.width), f.Bits)
}
