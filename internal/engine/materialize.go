package engine

import (
	"fmt"
	"io"

	"coldb/internal/value"
)

// Materialize writes cols out row by row as comma-separated tuples (spec.md
// §4.8's PRINT/materialize): INT and LONGINT columns print as plain
// decimal, DOUBLE columns print with 12 digits after the decimal point.
// Every column must have the same row count.
func Materialize(w io.Writer, cols []*value.Column) error {
	if len(cols) == 0 {
		return nil
	}
	n := cols[0].Count()
	for _, c := range cols {
		if c.Count() != n {
			return NewError(CodeInvalidOperand, "engine: materialize requires equal-length columns, got %d and %d", n, c.Count())
		}
	}

	for r := 0; r < n; r++ {
		for i, c := range cols {
			if i > 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if err := writeValue(w, c.At(r), c.Type); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(w io.Writer, v value.Value, typ value.Type) error {
	var err error
	switch typ {
	case value.TypeDouble:
		_, err = fmt.Fprintf(w, "%.12f", v.Double())
	case value.TypeLong:
		_, err = fmt.Fprintf(w, "%d", v.Long())
	default:
		_, err = fmt.Fprintf(w, "%d", v.Int())
	}
	return err
}
