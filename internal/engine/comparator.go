package engine

import "coldb/internal/value"

// CompareKind is one clause's relational operator (spec.md §4.5).
type CompareKind int

const (
	CmpLess CompareKind = iota
	CmpGreater
	CmpEqual
	CmpLessEqual
	CmpGreaterEqual
)

// Junction is how a clause combines with the clause that follows it.
// JunctionNone marks the last clause in a chain.
type Junction int

const (
	JunctionAnd Junction = iota
	JunctionOr
	JunctionNone
)

// Clause is one (kind, operand, junction) triple of a comparator chain.
type Clause struct {
	Kind     CompareKind
	Operand  value.Value
	Junction Junction
}

// Comparator is an ordered chain of clauses evaluated left to right with no
// operator precedence: each clause's result combines with the running total
// via the PREVIOUS clause's junction (spec.md §4.5). An empty comparator
// matches everything.
type Comparator []Clause

// Eval applies the chain to one value.
func (c Comparator) Eval(v value.Value) bool {
	if len(c) == 0 {
		return true
	}
	result := evalClause(c[0].Kind, v, c[0].Operand)
	for i := 1; i < len(c); i++ {
		next := evalClause(c[i].Kind, v, c[i].Operand)
		switch c[i-1].Junction {
		case JunctionOr:
			result = result || next
		default:
			result = result && next
		}
	}
	return result
}

func evalClause(kind CompareKind, v, operand value.Value) bool {
	switch kind {
	case CmpLess:
		return v < operand
	case CmpGreater:
		return v > operand
	case CmpEqual:
		return v == operand
	case CmpLessEqual:
		return v <= operand
	case CmpGreaterEqual:
		return v >= operand
	default:
		return false
	}
}

// bounds extracts at most one lower and one upper bound from the chain, the
// way index_scan does (spec.md §4.6): it looks only at >, >=, <, <= clauses
// and keeps the first of each it sees, ignoring a second bound of the same
// direction. A chain that contains an = clause or an OR junction isn't
// reduced to a single interval; callers fall back to col_scan in that case,
// which bounds() signals by returning ok=false.
func (c Comparator) bounds() (lo, hi *Clause, ok bool) {
	for i := range c {
		if i > 0 && c[i-1].Junction == JunctionOr {
			return nil, nil, false
		}
		cl := c[i]
		switch cl.Kind {
		case CmpEqual:
			return nil, nil, false
		case CmpGreater, CmpGreaterEqual:
			if lo == nil {
				lo = &cl
			}
		case CmpLess, CmpLessEqual:
			if hi == nil {
				hi = &cl
			}
		}
	}
	return lo, hi, true
}
