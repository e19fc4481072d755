// Package analysis holds the small dataflow queries passes.groupsplit needs
// over a group's assignment list (§4.5's applicability predicate).
package analysis

import "github.com/ilang-hdl/ilc/internal/ir"

// PortReads returns every port an assignment reads: its source port plus
// anything its guard reads, in deterministic (guard-then-source) order.
func PortReads(a *ir.Assignment) []ir.PortRef {
	out := ir.ReadPorts(a.Guard, nil)
	return append(out, a.Src)
}

// ReadSet returns the deduplicated, insertion-ordered set of cells read by
// a list of assignments — a cell is "read" if any assignment reads one of
// its ports, via its source or its guard.
func ReadSet(asmts []*ir.Assignment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range asmts {
		for _, p := range PortReads(a) {
			if p.Kind != ir.PortCell {
				continue
			}
			if !seen[p.Cell] {
				seen[p.Cell] = true
				out = append(out, p.Cell)
			}
		}
	}
	return out
}

// WriteSet returns the deduplicated, insertion-ordered set of cells
// written by a list of assignments — a cell is "written" if any
// assignment's destination is one of its ports.
func WriteSet(asmts []*ir.Assignment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range asmts {
		if a.Dst.Kind != ir.PortCell {
			continue
		}
		if !seen[a.Dst.Cell] {
			seen[a.Dst.Cell] = true
			out = append(out, a.Dst.Cell)
		}
	}
	return out
}

// AttrHas and AttrGet read a port or assignment's attribute map; both
// ir.Port and ir.Assignment expose ast.Attributes directly, so these are
// thin wrappers kept here so pass code has one place to import for every
// attribute query (mirrors having both live in the same analysis module
// that the group-splitting predicate reads from).
func AttrHas(attrs map[string]int64, key string) bool {
	_, ok := attrs[key]
	return ok
}

func AttrGet(attrs map[string]int64, key string) (int64, bool) {
	v, ok := attrs[key]
	return v, ok
}
