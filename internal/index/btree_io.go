package index

import (
	"encoding/binary"
	"fmt"
	"io"

	"coldb/internal/value"
)

// btreeNodeKind is the on-disk tag for a node record, distinct from nodeKind
// only in that it is a stable wire value independent of iota reordering in
// this source file.
type btreeNodeKind int32

const (
	wireInternal btreeNodeKind = 0
	wireLeaf     btreeNodeKind = 1
	wirePosition btreeNodeKind = 2
)

// WriteTo serializes the tree in pre-order, each node as a fixed header
// (kind, count) followed by its keys; a leaf is immediately followed by its
// Position child's record (spec.md §4.9). Internal and leaf node counts
// double as child counts for an internal node and key/payload counts for a
// leaf, since bulk load never leaves a node half-populated.
func (t *BPlusTree) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := t.writeNode(cw, t.root); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

func (t *BPlusTree) writeNode(w io.Writer, id int) error {
	n := &t.nodes[id]
	switch n.kind {
	case nodeLeaf:
		if err := writeHeader(w, wireLeaf, n.count); err != nil {
			return err
		}
		if err := writeValues(w, n.keys[:n.count]); err != nil {
			return err
		}
		pos := &t.nodes[n.children[0]]
		if err := writeHeader(w, wirePosition, pos.count); err != nil {
			return err
		}
		return writeInts(w, pos.payload[:pos.count])
	case nodeInternal:
		if err := writeHeader(w, wireInternal, n.count); err != nil {
			return err
		}
		if err := writeValues(w, n.keys[:n.count]); err != nil {
			return err
		}
		for _, child := range n.children[:n.count] {
			if err := t.writeNode(w, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("index: cannot serialize node kind %d", n.kind)
	}
}

// ReadBPlusTreeFrom deserializes a tree written by WriteTo. Leaf next_link
// pointers are not themselves stored; a pre-order traversal visits leaves
// strictly left to right, so they are threaded in the order they are
// allocated during the read (spec.md §4.9's "threaded left-to-right
// level-by-level", realized here as "in traversal order" since the arena
// representation has no notion of level to thread separately).
func ReadBPlusTreeFrom(r io.Reader) (*BPlusTree, error) {
	t := &BPlusTree{}
	var leafOrder []int
	root, err := t.readNode(r, &leafOrder)
	if err != nil {
		return nil, err
	}
	t.root = root
	for i := 0; i+1 < len(leafOrder); i++ {
		t.nodes[leafOrder[i]].next = leafOrder[i+1]
	}
	if len(leafOrder) > 0 {
		t.nodes[leafOrder[len(leafOrder)-1]].next = -1
	}
	return t, nil
}

func (t *BPlusTree) readNode(r io.Reader, leafOrder *[]int) (int, error) {
	kind, count, err := readHeader(r)
	if err != nil {
		return -1, err
	}

	switch kind {
	case wireLeaf:
		keys, err := readValues(r, count)
		if err != nil {
			return -1, err
		}
		posKind, posCount, err := readHeader(r)
		if err != nil {
			return -1, err
		}
		if posKind != wirePosition {
			return -1, fmt.Errorf("index: expected position node after leaf, got kind %d", posKind)
		}
		payload, err := readInts(r, posCount)
		if err != nil {
			return -1, err
		}
		posID := t.alloc(node{kind: nodePosition, payload: payload, count: posCount, next: -1})
		leafID := t.alloc(node{kind: nodeLeaf, keys: keys, count: count, children: []int{posID}, next: -1})
		*leafOrder = append(*leafOrder, leafID)
		return leafID, nil

	case wireInternal:
		keys, err := readValues(r, count)
		if err != nil {
			return -1, err
		}
		children := make([]int, count)
		for i := 0; i < int(count); i++ {
			child, err := t.readNode(r, leafOrder)
			if err != nil {
				return -1, err
			}
			children[i] = child
		}
		return t.alloc(node{kind: nodeInternal, keys: keys, count: count, children: children, next: -1}), nil

	default:
		return -1, fmt.Errorf("index: unknown node kind %d on disk", kind)
	}
}

func writeHeader(w io.Writer, kind btreeNodeKind, count int) error {
	if err := binary.Write(w, binary.LittleEndian, int32(kind)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, int32(count))
}

func readHeader(r io.Reader) (btreeNodeKind, int, error) {
	var kind, count int32
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return 0, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, 0, err
	}
	return btreeNodeKind(kind), int(count), nil
}

func writeValues(w io.Writer, vs []value.Value) error {
	for _, v := range vs {
		if err := binary.Write(w, binary.LittleEndian, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

func readValues(r io.Reader, n int) ([]value.Value, error) {
	out := make([]value.Value, n)
	for i := range out {
		var raw int64
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, err
		}
		out[i] = value.FromRaw(raw)
	}
	return out, nil
}

func writeInts(w io.Writer, xs []int) error {
	for _, x := range xs {
		if err := binary.Write(w, binary.LittleEndian, int64(x)); err != nil {
			return err
		}
	}
	return nil
}

func readInts(r io.Reader, n int) ([]int, error) {
	out := make([]int, n)
	for i := range out {
		var raw int64
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, err
		}
		out[i] = int(raw)
	}
	return out, nil
}

// countingWriter tracks bytes written, matching io.WriterTo's contract.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
