package ast

// DuplicateComponentVisitor walks a namespace's component list and records
// every name seen more than once, using the partial-visitor pattern (embed
// BaseVisitor, override only the hook needed) funxy's own strict-mode
// analyzer passes use. Accept is a shallow, single-node dispatch here (it
// does not recurse into a ComponentDef's own structure/control), so callers
// drive the component-level descent themselves — see WalkComponents.
type DuplicateComponentVisitor struct {
	BaseVisitor
	seen      map[string]*ComponentDef
	Duplicate []*ComponentDef
}

// NewDuplicateComponentVisitor returns a ready-to-use visitor.
func NewDuplicateComponentVisitor() *DuplicateComponentVisitor {
	return &DuplicateComponentVisitor{seen: make(map[string]*ComponentDef)}
}

func (v *DuplicateComponentVisitor) VisitComponentDef(c *ComponentDef) {
	if _, dup := v.seen[c.Name]; dup {
		v.Duplicate = append(v.Duplicate, c)
		return
	}
	v.seen[c.Name] = c
}

// WalkComponents drives v over every component in ns, in declaration order.
func WalkComponents(ns *NamespaceDef, v Visitor) {
	for _, c := range ns.Components {
		c.Accept(v)
	}
}
