// Package library resolves parametric primitive templates into concrete
// signatures, mirroring the teacher's habit (internal/modules.Loader,
// internal/config) of keeping a small, read-only lookup context built once
// and shared by reference — here grounded directly on Calyx's
// LibraryContext (original_source/calyx/src/lang/context.go).
package library

import (
	"math"

	"github.com/ilang-hdl/ilc/internal/ast"
	"github.com/ilang-hdl/ilc/internal/diagnostics"
	"github.com/ilang-hdl/ilc/internal/token"
)

// ParamPort is one port of a parametric template: its name, a width
// expression over the template's parameter identifiers, and its attribute
// map (the only one §4.5 reads being `stable`, carried through resolution
// onto the concrete ast.Portdef and from there onto the ir.Port NewCell
// builds).
type ParamPort struct {
	Name  string
	Width WidthExpr
	Attrs ast.Attributes
}

// Template is a library-level record of a primitive's name, its ordered
// parameter identifiers, and its parametric signature (§3 "Primitive
// template").
type Template struct {
	Name    string
	Params  []string
	Inputs  []ParamPort
	Outputs []ParamPort
	// IsComb marks the primitive as purely combinational (no internal
	// state); used by internal/passes/groupsplit to decide eligibility.
	IsComb bool
}

// Context is the immutable, shared set of resolvable primitive templates
// (§4.1, §5 "immutable after construction"). Build once from the parsed
// library files, then share by reference across every component's
// elaboration.
type Context struct {
	templates map[string]*Template
}

// NewContext builds a Context from a set of templates, keyed by name.
// Later templates with the same name overwrite earlier ones, mirroring the
// teacher's "last definition wins" behavior when multiple --libraries
// files declare the same primitive.
func NewContext(templates []*Template) *Context {
	m := make(map[string]*Template, len(templates))
	for _, t := range templates {
		m[t.Name] = t
	}
	return &Context{templates: m}
}

// Resolve looks up name and substitutes params positionally for its
// parameter identifiers, producing a concrete ast.Signature (§4.1). Arity
// mismatch, an unknown parameter reference, a non-positive result, or
// overflow of the signed width range all fail with a single
// SignatureResolutionFailed — there is no partial success.
func (c *Context) Resolve(pos token.Position, name string, params []uint64) (*ast.Signature, error) {
	tmpl, ok := c.templates[name]
	if !ok {
		return nil, diagnostics.SignatureResolutionFailed(pos, name)
	}
	if len(tmpl.Params) != len(params) {
		return nil, diagnostics.SignatureResolutionFailed(pos, name)
	}
	bound := make(map[string]int64, len(params))
	for i, p := range tmpl.Params {
		bound[p] = int64(params[i])
	}

	inputs, err := resolvePorts(tmpl.Inputs, bound)
	if err != nil {
		return nil, diagnostics.SignatureResolutionFailed(pos, name)
	}
	outputs, err := resolvePorts(tmpl.Outputs, bound)
	if err != nil {
		return nil, diagnostics.SignatureResolutionFailed(pos, name)
	}
	return &ast.Signature{Inputs: inputs, Outputs: outputs}, nil
}

// IsComb reports whether the named primitive is combinational; used by
// analysis code that needs to distinguish stateful cells from pure wires.
// Returns false (conservatively non-combinational) for unknown names.
func (c *Context) IsComb(name string) bool {
	t, ok := c.templates[name]
	return ok && t.IsComb
}

func resolvePorts(defs []ParamPort, bound map[string]int64) ([]*ast.Portdef, error) {
	out := make([]*ast.Portdef, 0, len(defs))
	for _, d := range defs {
		w, err := d.Width.eval(bound)
		if err != nil || w <= 0 || w > math.MaxInt32 {
			return nil, errBadWidth
		}
		out = append(out, &ast.Portdef{Name: d.Name, Width: uint64(w), Attrs: d.Attrs})
	}
	return out, nil
}

var errBadWidth = &widthError{}

type widthError struct{}

func (*widthError) Error() string { return "width expression evaluated to a non-positive or overflowing value" }
