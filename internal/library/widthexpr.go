package library

import "fmt"

// WidthExpr is the minimum arithmetic sublanguage spec.md's Open Question
// (b) requires for primitive port widths: integer constants, parameter
// references, and +, -, *.
type WidthExpr interface {
	eval(params map[string]int64) (int64, error)
}

// Const is a literal width.
type Const int64

func (c Const) eval(map[string]int64) (int64, error) { return int64(c), nil }

// ParamRef resolves to whatever concrete value the caller bound to this
// parameter identifier.
type ParamRef string

func (p ParamRef) eval(params map[string]int64) (int64, error) {
	v, ok := params[string(p)]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", string(p))
	}
	return v, nil
}

// Add, Sub, Mul are binary arithmetic nodes.
type Add struct{ L, R WidthExpr }
type Sub struct{ L, R WidthExpr }
type Mul struct{ L, R WidthExpr }

func (a Add) eval(p map[string]int64) (int64, error) {
	l, err := a.L.eval(p)
	if err != nil {
		return 0, err
	}
	r, err := a.R.eval(p)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

func (s Sub) eval(p map[string]int64) (int64, error) {
	l, err := s.L.eval(p)
	if err != nil {
		return 0, err
	}
	r, err := s.R.eval(p)
	if err != nil {
		return 0, err
	}
	return l - r, nil
}

func (m Mul) eval(p map[string]int64) (int64, error) {
	l, err := m.L.eval(p)
	if err != nil {
		return 0, err
	}
	r, err := m.R.eval(p)
	if err != nil {
		return 0, err
	}
	return l * r, nil
}
