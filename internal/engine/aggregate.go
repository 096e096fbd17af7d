package engine

import "coldb/internal/value"

// ExtremeKind selects which end of a vector Extreme/ExtremeWithIndex finds.
type ExtremeKind int

const (
	ExtremeMin ExtremeKind = iota
	ExtremeMax
)

// Extreme returns a one-element column holding the min or max of vec
// (spec.md §4.8). An empty vec yields an empty result rather than an error:
// there is no "undefined" Value to return, and the caller sees it as zero
// rows materialized.
func Extreme(vec *value.Column, kind ExtremeKind) *value.Column {
	if vec.Count() == 0 {
		return value.NewTransient(vec.Type)
	}
	best := vec.At(0)
	for i := 1; i < vec.Count(); i++ {
		if betterExtreme(vec.At(i), best, kind) {
			best = vec.At(i)
		}
	}
	return value.FromValues(vec.Type, []value.Value{best})
}

// ExtremeWithIndex finds the min or max of vecVal like Extreme, and also
// returns a one-element LONGINT column holding that element's position:
// either its raw index into vecVal, or, if vecPos is supplied, the position
// vecPos carries at that same index (spec.md §4.8's "with index" variant,
// for picking out the row a fetched value came from).
func ExtremeWithIndex(vecVal, vecPos *value.Column, kind ExtremeKind) (*value.Column, *value.Column) {
	if vecVal.Count() == 0 {
		return value.NewTransient(vecVal.Type), value.NewTransient(value.TypeLong)
	}
	bestIdx := 0
	best := vecVal.At(0)
	for i := 1; i < vecVal.Count(); i++ {
		if betterExtreme(vecVal.At(i), best, kind) {
			best = vecVal.At(i)
			bestIdx = i
		}
	}
	pos := int64(bestIdx)
	if vecPos != nil {
		pos = vecPos.At(bestIdx).Long()
	}
	return value.FromValues(vecVal.Type, []value.Value{best}),
		value.FromValues(value.TypeLong, []value.Value{value.LongValue(pos)})
}

func betterExtreme(candidate, best value.Value, kind ExtremeKind) bool {
	if kind == ExtremeMin {
		return candidate < best
	}
	return candidate > best
}

// Average computes the arithmetic mean of vec as a DOUBLE, regardless of
// vec's own type (spec.md §4.8): the source always widens to double before
// dividing, so an INT column's average is never itself truncated to INT.
func Average(vec *value.Column) (*value.Column, error) {
	if vec.Count() == 0 {
		return nil, NewError(CodeInvalidOperand, "engine: average of an empty vector")
	}
	var sum int64
	for i := 0; i < vec.Count(); i++ {
		sum += vec.At(i).AsInt64(vec.Type)
	}
	avg := float64(sum) / float64(vec.Count())
	return value.FromValues(value.TypeDouble, []value.Value{value.DoubleValue(avg)}), nil
}

// VectorOpKind is the elementwise arithmetic operator VectorOp applies.
type VectorOpKind int

const (
	VectorAdd VectorOpKind = iota
	VectorSub
)

// VectorOp computes a elementwise-OP-b into a new LONGINT column (spec.md
// §4.8); both inputs must have the same length.
func VectorOp(a, b *value.Column, kind VectorOpKind) (*value.Column, error) {
	if a.Count() != b.Count() {
		return nil, NewError(CodeInvalidOperand, "engine: vector op operand length mismatch: %d vs %d", a.Count(), b.Count())
	}
	out := make([]value.Value, a.Count())
	for i := range out {
		av := a.At(i).AsInt64(a.Type)
		bv := b.At(i).AsInt64(b.Type)
		if kind == VectorAdd {
			out[i] = value.LongValue(av + bv)
		} else {
			out[i] = value.LongValue(av - bv)
		}
	}
	return value.FromValues(value.TypeLong, out), nil
}
