package engine

import (
	"io"

	"coldb/internal/catalog"
	"coldb/internal/pool"
	"coldb/internal/value"
)

// OpKind names one operator the planner can hand to Dispatch (spec.md §6).
// Process lifecycle (LOAD, SHUTDOWN) is handled by the server/persist layer:
// a planner still builds descriptors for them so it can produce one uniform
// Operator stream, but Dispatch does not execute them and returns a
// CodeUnimplemented error if handed one. DROP (of a table) is executed by
// Dispatch through catalog.Database.DropTable.
type OpKind int

const (
	OpInsert OpKind = iota
	OpSelect
	OpFetch
	OpExtreme
	OpExtremeWithIndex
	OpAverage
	OpVectorOp
	OpPrint
	OpDrop
	OpLoad
	OpShutdown
)

// Operator is the validated descriptor a planner builds from a parsed
// command and hands to Dispatch (spec.md §6): one struct covering every
// operator kind, with only the fields relevant to Kind populated. Dispatch
// trusts that the planner has already validated types and names; it does
// not re-check that Column belongs to Table, for instance.
type Operator struct {
	Kind OpKind

	// INSERT
	Table  *catalog.Table
	Values []value.Value

	// SELECT (col_scan/index_scan)
	Column      *value.Column
	Comparator  Comparator
	InPosVar    string // variable pool name of an input position set, "" if none
	OutVar      string // variable pool name the result is stored under

	// FETCH
	SourceCol  *value.Column
	PositionsVar string

	// EXTREME / EXTREME_WITH_INDEX / AVERAGE
	Vec         *value.Column
	VecPosVar   string
	ExtremeKind ExtremeKind
	OutPosVar   string // EXTREME_WITH_INDEX's second result

	// VECTOR_OP
	VecA, VecB *value.Column
	VectorKind VectorOpKind

	// PRINT
	Columns []*value.Column
	Out     io.Writer

	// DROP
	Database  *catalog.Database
	DropTable string

	// LOAD / SHUTDOWN carry no engine-level fields; the server and persist
	// packages build and execute their own descriptors for these.
}

// Dispatch executes op against vars, the caller's session-scoped variable
// pool, storing any result vector under the name op specifies. It returns
// an *Error for every failure the engine itself detects so the server layer
// can map Code to a wire status without string-matching (spec.md §7); a
// write error from PRINT's output writer is returned unwrapped.
func Dispatch(op *Operator, vars *pool.VariablePool) error {
	switch op.Kind {
	case OpInsert:
		return InsertRow(op.Table, op.Values)

	case OpSelect:
		var in []int
		if op.InPosVar != "" {
			posCol, err := vars.Get(op.InPosVar)
			if err != nil {
				return NewError(CodeNotFound, "engine: %v", err)
			}
			in = columnToPositions(posCol)
		}
		out, err := ColScan(op.Comparator, op.Column, in)
		if err != nil {
			return err
		}
		vars.Put(op.OutVar, positionsToColumn(out))
		return nil

	case OpFetch:
		posCol, err := vars.Get(op.PositionsVar)
		if err != nil {
			return NewError(CodeNotFound, "engine: %v", err)
		}
		result := Fetch(op.SourceCol, columnToPositions(posCol))
		vars.Put(op.OutVar, result)
		return nil

	case OpExtreme:
		vars.Put(op.OutVar, Extreme(op.Vec, op.ExtremeKind))
		return nil

	case OpExtremeWithIndex:
		var posCol *value.Column
		if op.VecPosVar != "" {
			var err error
			posCol, err = vars.Get(op.VecPosVar)
			if err != nil {
				return NewError(CodeNotFound, "engine: %v", err)
			}
		}
		valOut, posOut := ExtremeWithIndex(op.Vec, posCol, op.ExtremeKind)
		vars.Put(op.OutVar, valOut)
		vars.Put(op.OutPosVar, posOut)
		return nil

	case OpAverage:
		result, err := Average(op.Vec)
		if err != nil {
			return err
		}
		vars.Put(op.OutVar, result)
		return nil

	case OpVectorOp:
		result, err := VectorOp(op.VecA, op.VecB, op.VectorKind)
		if err != nil {
			return err
		}
		vars.Put(op.OutVar, result)
		return nil

	case OpPrint:
		return Materialize(op.Out, op.Columns)

	case OpDrop:
		if op.DropTable != "" {
			if !op.Database.DropTable(op.DropTable) {
				return NewError(CodeNotFound, "engine: no table %q to drop", op.DropTable)
			}
			return nil
		}
		return NewError(CodeInvalidOperand, "engine: drop operator names no table")

	default:
		return NewError(CodeUnimplemented, "engine: operator kind %d is handled outside the engine package", op.Kind)
	}
}

// positionsToColumn stores a position set as a LONGINT column, the engine's
// uniform representation for intermediate position vectors in the variable
// pool.
func positionsToColumn(positions []int) *value.Column {
	out := make([]value.Value, len(positions))
	for i, p := range positions {
		out[i] = value.LongValue(int64(p))
	}
	return value.FromValues(value.TypeLong, out)
}

// columnToPositions reads a LONGINT position column back out as plain ints.
func columnToPositions(col *value.Column) []int {
	out := make([]int, col.Count())
	for i := range out {
		out[i] = int(col.At(i).Long())
	}
	return out
}
