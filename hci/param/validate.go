package param

// Validate checks that every reference in s points at an earlier numeric
// field. Repeat groups are checked as if they ran once.
func Validate(s Schema) error {
	var seen []Field
	return validate(s, &seen)
}

func validate(ns []Node, seen *[]Field) error {
	for _, n := range ns {
		switch n := n.(type) {
		case Field:
			switch n.Len.kind {
			case lenFixed, lenReserve:
				if n.Len.n < 0 {
					return schemaErr("%s: negative length %d", n.Label, n.Len.n)
				}
			case lenRef:
				if err := checkRef(n.Len.n, n.Label, *seen); err != nil {
					return err
				}
			}
			*seen = append(*seen, n)

		case Repeat:
			if n.Count.kind == countRef {
				if err := checkRef(n.Count.ref, "repeat count", *seen); err != nil {
					return err
				}
			}
			if len(n.Fields) == 0 {
				return schemaErr("empty repeat group")
			}
			if sz, ok := fixedSize(n.Fields); ok && sz == 0 {
				return schemaErr("repeat group of zero size")
			}
			if err := validate(n.Fields, seen); err != nil {
				return err
			}

		default:
			return schemaErr("unexpected node %T", n)
		}
	}
	return nil
}

func checkRef(offset int, label string, seen []Field) error {
	i := offset
	if offset < 0 {
		i = len(seen) + offset
	}
	if i < 0 || i >= len(seen) {
		return schemaErr("%s: reference %d has no earlier field", label, offset)
	}
	if !seen[i].Kind.Numeric {
		return schemaErr("%s: reference %d targets %s (%s), which is not numeric",
			label, offset, seen[i].Label, seen[i].Kind.Name)
	}
	return nil
}
