package engine

import (
	"sort"

	"coldb/internal/index"
	"coldb/internal/value"
)

// ColScan evaluates a comparator chain against col, returning the positions
// that satisfy it (spec.md §4.5). If inPositions is non-nil, only those
// positions are considered (an AND with a prior result set); if col carries
// an index, the scan is delegated to IndexScan instead of a linear walk
// (spec.md §4.6).
func ColScan(cmp Comparator, col *value.Column, inPositions []int) ([]int, error) {
	if col.HasIndex() {
		return IndexScan(cmp, col, inPositions)
	}

	var out []int
	if inPositions == nil {
		for i := 0; i < col.Count(); i++ {
			if cmp.Eval(col.At(i)) {
				out = append(out, i)
			}
		}
		return out, nil
	}
	for _, p := range inPositions {
		if cmp.Eval(col.At(p)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// IndexScan answers a comparator chain using col's index: it extracts a
// single [lo, hi] interval from the chain's range clauses and resolves it
// against whichever index family col carries, then intersects against
// inPositions if supplied (spec.md §4.6). A chain that cannot be reduced to
// one interval (it contains an = clause, or ORs clauses together) falls back
// to a full col_scan-style walk.
func IndexScan(cmp Comparator, col *value.Column, inPositions []int) ([]int, error) {
	ci, ok := col.Index().(*index.ColumnIndex)
	if !ok {
		return nil, NewError(CodeInvalidOperand, "engine: index_scan on column %q with no index", col.Name)
	}

	lo, hi, ok := cmp.bounds()
	if !ok {
		return colScanFallback(cmp, col, inPositions), nil
	}

	var positions []int
	switch ci.Kind() {
	case index.KindSorted:
		positions = sortedRange(ci.Sorted(), lo, hi)
	case index.KindBTree:
		positions = btreeRange(ci.BTree(), lo, hi)
	default:
		return nil, NewError(CodeInvalidOperand, "engine: column %q has no usable index", col.Name)
	}

	if inPositions != nil {
		positions = intersectPositions(positions, inPositions)
	}
	return positions, nil
}

func colScanFallback(cmp Comparator, col *value.Column, inPositions []int) []int {
	var out []int
	if inPositions == nil {
		for i := 0; i < col.Count(); i++ {
			if cmp.Eval(col.At(i)) {
				out = append(out, i)
			}
		}
		return out
	}
	for _, p := range inPositions {
		if cmp.Eval(col.At(p)) {
			out = append(out, p)
		}
	}
	return out
}

func sortedRange(s *index.SortedIndex, lo, hi *Clause) []int {
	start := 0
	if lo != nil {
		if lo.Kind == CmpGreaterEqual {
			start = s.LowerBound(lo.Operand)
		} else {
			start = s.UpperBound(lo.Operand)
		}
	}
	end := s.Len()
	if hi != nil {
		if hi.Kind == CmpLessEqual {
			end = s.UpperBound(hi.Operand)
		} else {
			end = s.LowerBound(hi.Operand)
		}
	}
	if start >= end {
		return nil
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s.PositionAt(i))
	}
	return out
}

func btreeRange(t *index.BPlusTree, lo, hi *Clause) []int {
	loKey := t.MinKey()
	if lo != nil {
		if lo.Kind == CmpGreaterEqual {
			loKey = lo.Operand
		} else {
			loKey = lo.Operand + 1
		}
	}
	hiExclusive := t.MaxKey() + 1
	if hi != nil {
		if hi.Kind == CmpLessEqual {
			hiExclusive = hi.Operand + 1
		} else {
			hiExclusive = hi.Operand
		}
	}
	if loKey >= hiExclusive {
		return nil
	}
	return t.RangeScan(loKey, hiExclusive)
}

// intersectPositions sorts copies of both position sets numerically and
// linear-merges them, matching the source's "both position sets are sorted
// and intersected" description (spec.md §4.6) rather than the original C
// implementation's sequential-scan fallback when in_positions is present
// (see DESIGN.md Open Questions).
func intersectPositions(a, b []int) []int {
	sa := append([]int(nil), a...)
	sb := append([]int(nil), b...)
	sort.Ints(sa)
	sort.Ints(sb)

	var out []int
	i, j := 0, 0
	for i < len(sa) && j < len(sb) {
		switch {
		case sa[i] < sb[j]:
			i++
		case sa[i] > sb[j]:
			j++
		default:
			out = append(out, sa[i])
			i++
			j++
		}
	}
	return out
}
