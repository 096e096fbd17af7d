package planner

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"coldb/internal/catalog"
	"coldb/internal/engine"
	"coldb/internal/index"
	"coldb/internal/pool"
	"coldb/internal/value"
)

var (
	createDBRe     = regexp.MustCompile(`^create\(db,\s*"([a-zA-Z0-9_]+)"\)$`)
	createTableRe  = regexp.MustCompile(`^create\(tbl,\s*"([a-zA-Z0-9_.]+)",\s*([a-zA-Z0-9_]+),\s*([0-9]+)\)$`)
	createColRe    = regexp.MustCompile(`^create\(col,\s*"([a-zA-Z0-9_.]+)",\s*([a-zA-Z0-9_.]+),\s*(sorted|unsorted|btree)\)$`)
	dropTableRe    = regexp.MustCompile(`^drop\(tbl,\s*([a-zA-Z0-9_.]+)\)$`)
	insertRe       = regexp.MustCompile(`^relational_insert\(([a-zA-Z0-9_.]+)((?:,\s*-?[0-9]+)+)\)$`)
	selectColRe    = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*=\s*select\(([a-zA-Z0-9_.]+),\s*(null|-?[0-9]+),\s*(null|-?[0-9]+)\)$`)
	selectPosRe    = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*=\s*select\(([a-zA-Z0-9_.]+),\s*([a-zA-Z0-9_]+),\s*(null|-?[0-9]+),\s*(null|-?[0-9]+)\)$`)
	fetchRe        = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*=\s*fetch\(([a-zA-Z0-9_.]+),\s*([a-zA-Z0-9_]+)\)$`)
	avgRe          = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*=\s*avg\(([a-zA-Z0-9_]+)\)$`)
	extremeRe      = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*=\s*(max|min)\(([a-zA-Z0-9_]+)\)$`)
	extremeIdxRe   = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*,\s*([a-zA-Z0-9_]+)\s*=\s*(max|min)\(([a-zA-Z0-9_]+),\s*([a-zA-Z0-9_]+)\)$`)
	vectorOpRe     = regexp.MustCompile(`^([a-zA-Z0-9_]+)\s*=\s*(add|sub)\(([a-zA-Z0-9_]+),\s*([a-zA-Z0-9_]+)\)$`)
	tupleRe        = regexp.MustCompile(`^tuple\(([a-zA-Z0-9_,\s]+)\)$`)
	shutdownRe     = regexp.MustCompile(`^shutdown\(\)$`)
	loadRe         = regexp.MustCompile(`^load\(\s*"[a-zA-Z0-9_./]+"\s*\)$`)
)

// Planner resolves dotted resource names ("db.table.column") against the
// resource pool and parses one command line at a time into either an
// administrative catalog mutation (executed immediately) or an
// *engine.Operator ready for engine.Dispatch.
type Planner struct {
	resources *pool.ResourcePool
}

// New returns a Planner backed by resources.
func New(resources *pool.ResourcePool) *Planner {
	return &Planner{resources: resources}
}

// Prepare parses line and either executes a CREATE command directly,
// returning (nil, nil) on success, or returns a validated *engine.Operator
// (DROP included) for the caller to hand to engine.Dispatch.
// vars is the caller's session-scoped variable pool: Prepare resolves any
// variable name that names a value already produced by an earlier line
// (the operand of avg/max/min/add/sub/tuple) against it immediately, since
// those names go stale the moment the session overwrites them. Variable
// names that Dispatch itself resolves lazily (an input position set) are
// passed through as plain strings instead. out is only used by PRINT.
func (p *Planner) Prepare(vars *pool.VariablePool, out io.Writer, line string) (*engine.Operator, error) {
	line = strings.TrimSpace(line)

	switch {
	case createDBRe.MatchString(line):
		m := createDBRe.FindStringSubmatch(line)
		_, err := p.resources.Create(m[1])
		return nil, err

	case createTableRe.MatchString(line):
		m := createTableRe.FindStringSubmatch(line)
		db, err := p.resources.Get(m[2])
		if err != nil {
			return nil, err
		}
		numCols, _ := strconv.Atoi(m[3])
		_, err = db.CreateTable(lastSegment(m[1]), numCols)
		return nil, err

	case createColRe.MatchString(line):
		m := createColRe.FindStringSubmatch(line)
		tbl, err := p.resolveTable(m[2])
		if err != nil {
			return nil, err
		}
		col, err := tbl.CreateColumn(lastSegment(m[1]), value.TypeInt)
		if err != nil {
			return nil, err
		}
		return nil, applyCreateIndex(col, m[3])

	case dropTableRe.MatchString(line):
		m := dropTableRe.FindStringSubmatch(line)
		dbName, tblName, err := splitOne(m[1])
		if err != nil {
			return nil, err
		}
		db, err := p.resources.Get(dbName)
		if err != nil {
			return nil, err
		}
		return &engine.Operator{Kind: engine.OpDrop, Database: db, DropTable: tblName}, nil

	case insertRe.MatchString(line):
		m := insertRe.FindStringSubmatch(line)
		tbl, err := p.resolveTable(m[1])
		if err != nil {
			return nil, err
		}
		values, err := parseInsertValues(tbl, m[2])
		if err != nil {
			return nil, err
		}
		return &engine.Operator{Kind: engine.OpInsert, Table: tbl, Values: values}, nil

	case selectPosRe.MatchString(line):
		m := selectPosRe.FindStringSubmatch(line)
		col, err := p.resolveColumn(m[2])
		if err != nil {
			return nil, err
		}
		cmp, err := rangeComparator(m[4], m[5])
		if err != nil {
			return nil, err
		}
		return &engine.Operator{Kind: engine.OpSelect, Column: col, Comparator: cmp, InPosVar: m[3], OutVar: m[1]}, nil

	case selectColRe.MatchString(line):
		m := selectColRe.FindStringSubmatch(line)
		col, err := p.resolveColumn(m[2])
		if err != nil {
			return nil, err
		}
		cmp, err := rangeComparator(m[3], m[4])
		if err != nil {
			return nil, err
		}
		return &engine.Operator{Kind: engine.OpSelect, Column: col, Comparator: cmp, OutVar: m[1]}, nil

	case fetchRe.MatchString(line):
		m := fetchRe.FindStringSubmatch(line)
		col, err := p.resolveColumn(m[2])
		if err != nil {
			return nil, err
		}
		return &engine.Operator{Kind: engine.OpFetch, SourceCol: col, PositionsVar: m[3], OutVar: m[1]}, nil

	case avgRe.MatchString(line):
		m := avgRe.FindStringSubmatch(line)
		vec, err := vars.Get(m[2])
		if err != nil {
			return nil, fmt.Errorf("planner: %v", err)
		}
		return &engine.Operator{Kind: engine.OpAverage, Vec: vec, OutVar: m[1]}, nil

	case extremeIdxRe.MatchString(line):
		m := extremeIdxRe.FindStringSubmatch(line)
		vec, err := vars.Get(m[4])
		if err != nil {
			return nil, fmt.Errorf("planner: %v", err)
		}
		kind := engine.ExtremeMin
		if m[3] == "max" {
			kind = engine.ExtremeMax
		}
		return &engine.Operator{Kind: engine.OpExtremeWithIndex, OutVar: m[1], OutPosVar: m[2], ExtremeKind: kind, Vec: vec, VecPosVar: m[5]}, nil

	case extremeRe.MatchString(line):
		m := extremeRe.FindStringSubmatch(line)
		vec, err := vars.Get(m[3])
		if err != nil {
			return nil, fmt.Errorf("planner: %v", err)
		}
		kind := engine.ExtremeMin
		if m[2] == "max" {
			kind = engine.ExtremeMax
		}
		return &engine.Operator{Kind: engine.OpExtreme, OutVar: m[1], ExtremeKind: kind, Vec: vec}, nil

	case vectorOpRe.MatchString(line):
		m := vectorOpRe.FindStringSubmatch(line)
		vecA, err := vars.Get(m[3])
		if err != nil {
			return nil, fmt.Errorf("planner: %v", err)
		}
		vecB, err := vars.Get(m[4])
		if err != nil {
			return nil, fmt.Errorf("planner: %v", err)
		}
		kind := engine.VectorAdd
		if m[2] == "sub" {
			kind = engine.VectorSub
		}
		return &engine.Operator{Kind: engine.OpVectorOp, OutVar: m[1], VectorKind: kind, VecA: vecA, VecB: vecB}, nil

	case tupleRe.MatchString(line):
		m := tupleRe.FindStringSubmatch(line)
		names := strings.Split(m[1], ",")
		cols := make([]*value.Column, len(names))
		for i, name := range names {
			col, err := vars.Get(strings.TrimSpace(name))
			if err != nil {
				return nil, fmt.Errorf("planner: %v", err)
			}
			cols[i] = col
		}
		return &engine.Operator{Kind: engine.OpPrint, Out: out, Columns: cols}, nil

	case shutdownRe.MatchString(line):
		return &engine.Operator{Kind: engine.OpShutdown}, nil

	case loadRe.MatchString(line):
		// The filename itself names a file on the client's machine, not the
		// server's (src/client.c's process_load_command opens it locally and
		// streams its lines); the server only needs to know a load stream is
		// about to start, per spec.md §6.
		return &engine.Operator{Kind: engine.OpLoad}, nil

	default:
		return nil, fmt.Errorf("planner: unrecognized command: %q", line)
	}
}

func applyCreateIndex(col *value.Column, kind string) error {
	switch kind {
	case "sorted":
		col.SetIndex(index.NewSortedColumnIndex(index.BuildSorted(col)))
	case "btree":
		sortedVals, positions := index.SortPermutation(col.Data())
		col.SetIndex(index.NewBTreeColumnIndex(index.BuildBPlusTree(sortedVals, positions), false))
	}
	return nil
}

func (p *Planner) resolveTable(path string) (*catalog.Table, error) {
	dbName, tblName, err := splitOne(path)
	if err != nil {
		return nil, err
	}
	db, err := p.resources.Get(dbName)
	if err != nil {
		return nil, err
	}
	tbl, ok := db.Table(tblName)
	if !ok {
		return nil, fmt.Errorf("planner: no table %q in database %q", tblName, dbName)
	}
	return tbl, nil
}

func (p *Planner) resolveColumn(path string) (*value.Column, error) {
	parts := strings.Split(path, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("planner: column reference %q must be db.table.column", path)
	}
	db, err := p.resources.Get(parts[0])
	if err != nil {
		return nil, err
	}
	tbl, ok := db.Table(parts[1])
	if !ok {
		return nil, fmt.Errorf("planner: no table %q in database %q", parts[1], parts[0])
	}
	col, ok := tbl.Column(parts[2])
	if !ok {
		return nil, fmt.Errorf("planner: no column %q in table %q", parts[2], parts[1])
	}
	return col, nil
}

func splitOne(path string) (prefix, last string, err error) {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "", "", fmt.Errorf("planner: expected dotted name, got %q", path)
	}
	return path[:i], path[i+1:], nil
}

func lastSegment(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return path
	}
	return path[i+1:]
}

func parseInsertValues(tbl *catalog.Table, rawList string) ([]value.Value, error) {
	cols := tbl.Columns()
	parts := strings.Split(strings.TrimPrefix(rawList, ","), ",")
	if len(parts) != len(cols) {
		return nil, fmt.Errorf("planner: insert into %q expects %d values, got %d", tbl.Name, len(cols), len(parts))
	}
	values := make([]value.Value, len(parts))
	for i, raw := range parts {
		raw = strings.TrimSpace(raw)
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("planner: insert into %q: value %q is not an integer", tbl.Name, raw)
		}
		if cols[i].Type == value.TypeInt {
			values[i] = value.IntValue(int32(n))
		} else {
			values[i] = value.LongValue(n)
		}
	}
	return values, nil
}

// rangeComparator builds the comparator chain for select(col, low, high):
// low != null means col >= low; high != null means col < high. Both absent
// matches every row.
func rangeComparator(lowTok, highTok string) (engine.Comparator, error) {
	var chain engine.Comparator
	if lowTok != "null" {
		low, err := strconv.ParseInt(lowTok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("planner: select bound %q is not an integer", lowTok)
		}
		chain = append(chain, engine.Clause{Kind: engine.CmpGreaterEqual, Operand: value.LongValue(low), Junction: engine.JunctionAnd})
	}
	if highTok != "null" {
		high, err := strconv.ParseInt(highTok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("planner: select bound %q is not an integer", highTok)
		}
		chain = append(chain, engine.Clause{Kind: engine.CmpLess, Operand: value.LongValue(high), Junction: engine.JunctionNone})
	}
	if len(chain) > 0 {
		chain[len(chain)-1].Junction = engine.JunctionNone
	}
	return chain, nil
}
