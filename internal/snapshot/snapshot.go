// Package snapshot renders a Component to a structured, human-readable
// YAML dump — used both as `--dump` debug output and as the comparison
// format for the round-trip property test (P2): two elaborations of
// equivalent source should marshal to byte-identical YAML, since every
// fresh name the compiler ever generates is a deterministic function of
// (component, counter) rather than of wall-clock time or randomness (§5).
//
// YAML plays the same "structured dump" role here that it plays for the
// teacher's internal/evaluator/builtins_yaml.go encode/decode builtins.
package snapshot

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ilang-hdl/ilc/internal/ir"
)

// Doc is the YAML-serializable shape of one elaborated Component.
type Doc struct {
	Name        string       `yaml:"name"`
	Inputs      []PortDoc    `yaml:"inputs"`
	Outputs     []PortDoc    `yaml:"outputs"`
	Cells       []CellDoc    `yaml:"cells"`
	Groups      []GroupDoc   `yaml:"groups"`
	Continuous  []AsmtDoc    `yaml:"continuous_assignments"`
	Control     ControlDoc   `yaml:"control"`
	GraphEdges  []EdgeDoc    `yaml:"graph_edges"`
}

type PortDoc struct {
	Name  string `yaml:"name"`
	Width uint64 `yaml:"width"`
}

type CellDoc struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	TypeName string `yaml:"type"`
	Comb     bool   `yaml:"comb"`
}

type AsmtDoc struct {
	Dst   string `yaml:"dst"`
	Guard string `yaml:"guard"`
	Src   string `yaml:"src"`
}

type GroupDoc struct {
	Name        string    `yaml:"name"`
	Assignments []AsmtDoc `yaml:"assignments"`
}

type EdgeDoc struct {
	Src   string `yaml:"src"`
	Dst   string `yaml:"dst"`
	Width uint64 `yaml:"width"`
}

// ControlDoc is a generic node shape: Kind discriminates, and only the
// fields relevant to that kind are populated. Keeping one flat struct
// (instead of YAML's native sum-type-via-tag dance) keeps the dump
// trivially diffable.
type ControlDoc struct {
	Kind      string       `yaml:"kind"`
	Group     string       `yaml:"group,omitempty"`
	Instance  string       `yaml:"instance,omitempty"`
	Cond      string       `yaml:"cond,omitempty"`
	CondGroup string       `yaml:"cond_group,omitempty"`
	Stmts     []ControlDoc `yaml:"stmts,omitempty"`
	TBranch   *ControlDoc  `yaml:"tbranch,omitempty"`
	FBranch   *ControlDoc  `yaml:"fbranch,omitempty"`
	Body      *ControlDoc  `yaml:"body,omitempty"`
}

// Build converts comp into its YAML-serializable Doc.
func Build(comp *ir.Component) Doc {
	d := Doc{Name: comp.Name}
	for _, p := range comp.Signature.Inputs {
		d.Inputs = append(d.Inputs, PortDoc{Name: p.Name, Width: p.Width})
	}
	for _, p := range comp.Signature.Outputs {
		d.Outputs = append(d.Outputs, PortDoc{Name: p.Name, Width: p.Width})
	}
	for _, c := range comp.CellsInOrder() {
		kind := "primitive"
		if c.Kind == ir.CellComponent {
			kind = "component"
		}
		d.Cells = append(d.Cells, CellDoc{Name: c.Name, Kind: kind, TypeName: c.TypeName, Comb: c.IsComb})
	}
	for _, g := range comp.GroupsInOrder() {
		gd := GroupDoc{Name: g.Name}
		for _, a := range g.Assignments {
			gd.Assignments = append(gd.Assignments, buildAsmt(a))
		}
		d.Groups = append(d.Groups, gd)
	}
	for _, a := range comp.ContinuousAssignments {
		d.Continuous = append(d.Continuous, buildAsmt(a))
	}
	d.Control = buildControl(comp.Control)
	if comp.Graph != nil {
		for _, e := range comp.Graph.Edges() {
			d.GraphEdges = append(d.GraphEdges, EdgeDoc{
				Src:   e.SrcPort,
				Dst:   e.DstPort,
				Width: e.Width,
			})
		}
	}
	return d
}

func buildAsmt(a *ir.Assignment) AsmtDoc {
	return AsmtDoc{Dst: a.Dst.String(), Guard: guardString(a.Guard), Src: a.Src.String()}
}

func guardString(g ir.Guard) string {
	switch v := g.(type) {
	case ir.True:
		return "true"
	case ir.Atom:
		return v.Port.String()
	case ir.Not:
		return "!(" + guardString(v.G) + ")"
	case ir.And:
		return "(" + guardString(v.L) + " & " + guardString(v.R) + ")"
	case ir.Or:
		return "(" + guardString(v.L) + " | " + guardString(v.R) + ")"
	default:
		return "?"
	}
}

func buildControl(c ir.Control) ControlDoc {
	switch n := c.(type) {
	case nil:
		return ControlDoc{Kind: "empty"}
	case *ir.Empty:
		return ControlDoc{Kind: "empty"}
	case *ir.Enable:
		return ControlDoc{Kind: "enable", Group: n.Group}
	case *ir.Invoke:
		return ControlDoc{Kind: "invoke", Instance: n.Instance}
	case *ir.Seq:
		cd := ControlDoc{Kind: "seq"}
		for _, s := range n.Stmts {
			sd := buildControl(s)
			cd.Stmts = append(cd.Stmts, sd)
		}
		return cd
	case *ir.Par:
		cd := ControlDoc{Kind: "par"}
		for _, s := range n.Stmts {
			cd.Stmts = append(cd.Stmts, buildControl(s))
		}
		return cd
	case *ir.If:
		tb := buildControl(n.TBranch)
		fb := buildControl(n.FBranch)
		return ControlDoc{Kind: "if", Cond: n.Cond.String(), CondGroup: n.CondGroup, TBranch: &tb, FBranch: &fb}
	case *ir.While:
		body := buildControl(n.Body)
		return ControlDoc{Kind: "while", Cond: n.Cond.String(), CondGroup: n.CondGroup, Body: &body}
	case *ir.Print:
		return ControlDoc{Kind: "print", Cond: n.Target.String()}
	case *ir.Disable:
		return ControlDoc{Kind: "disable", Group: n.Group}
	default:
		return ControlDoc{Kind: "unknown"}
	}
}

// ToYAML renders comp's Doc as YAML text.
func ToYAML(comp *ir.Component) (string, error) {
	b, err := yaml.Marshal(Build(comp))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToYAMLAll renders every component of a namespace, sorted by name for a
// deterministic multi-component dump.
func ToYAMLAll(comps map[string]*ir.Component) (string, error) {
	names := make([]string, 0, len(comps))
	for n := range comps {
		names = append(names, n)
	}
	sort.Strings(names)
	docs := make([]Doc, 0, len(names))
	for _, n := range names {
		docs = append(docs, Build(comps[n]))
	}
	b, err := yaml.Marshal(docs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
