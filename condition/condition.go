// Package condition defines the backend-neutral condition tree produced by
// the filter compiler and lowered into SQL by the dialect package.
//
// Condition and Expr are sealed: only this package implements them, so the
// dialect lowering can switch exhaustively over the node types.
//
// Leaves never carry SQL text. Column references hold names taken from a
// resource's allow-list and literal values are always bound as parameters.
package condition

import "github.com/datastax/data-api-query/types"

// Condition is a boolean expression.
type Condition interface {
	conditionNode()
}

// Expr is a value expression a condition compares against.
type Expr interface {
	exprNode()
}

// Column references a declared column. When AsText is set the column is cast
// to the dialect's text type before use (enum columns).
type Column struct {
	Name   string
	AsText bool
}

func (Column) exprNode() {}

// Concat joins the text form of several columns with a single space.
// NULL columns contribute an empty string.
type Concat struct {
	Columns []Column
}

func (Concat) exprNode() {}

// True matches every row. It is the result of an empty filter.
type True struct{}

func (True) conditionNode() {}

// False matches no row.
type False struct{}

func (False) conditionNode() {}

// And matches when all conditions match. An empty And matches every row.
type And struct {
	Conditions []Condition
}

func (And) conditionNode() {}

// Or matches when at least one condition matches. An empty Or matches no row.
type Or struct {
	Conditions []Condition
}

func (Or) conditionNode() {}

// Compare is an exact comparison: <expr> <op> <value>.
type Compare struct {
	Left     Expr
	Operator types.Operator
	Value    types.Value
}

func (Compare) conditionNode() {}

// EqualFold is a case-insensitive equality: UPPER(<expr>) = UPPER(<value>).
type EqualFold struct {
	Left  Expr
	Value string
}

func (EqualFold) conditionNode() {}

// EnumEquals compares an enum column with a string through its text form.
// Dialects differ in the cast and in how a case-sensitive compare is made.
type EnumEquals struct {
	Column        string
	Value         string
	CaseSensitive bool
}

func (EnumEquals) conditionNode() {}

// Contains is a case-insensitive substring match. Wildcard characters in
// Value match literally.
type Contains struct {
	Left  Expr
	Value string
}

func (Contains) conditionNode() {}

// Similar is a trigram similarity match: similarity(<expr>, <value>) > Threshold.
// Only dialects reporting SupportsSimilarity can lower it.
type Similar struct {
	Left      Expr
	Value     string
	Threshold float64
}

func (Similar) conditionNode() {}

// IsNull matches rows where the column is NULL.
type IsNull struct {
	Column string
}

func (IsNull) conditionNode() {}

// In matches rows whose expression equals one of Values.
// An empty Values matches no row.
type In struct {
	Left   Expr
	Values []types.Value
}

func (In) conditionNode() {}

// Conjunction returns And of the conditions, collapsing the trivial cases.
func Conjunction(conditions ...Condition) Condition {
	filtered := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if c == nil {
			continue
		}
		if _, ok := c.(True); ok {
			continue
		}
		filtered = append(filtered, c)
	}

	switch len(filtered) {
	case 0:
		return True{}
	case 1:
		return filtered[0]
	}
	return And{Conditions: filtered}
}

// Disjunction returns Or of the conditions, collapsing the trivial cases.
func Disjunction(conditions ...Condition) Condition {
	filtered := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if c == nil {
			continue
		}
		if _, ok := c.(False); ok {
			continue
		}
		filtered = append(filtered, c)
	}

	switch len(filtered) {
	case 0:
		return False{}
	case 1:
		return filtered[0]
	}
	return Or{Conditions: filtered}
}

// Columns returns the distinct column names referenced by c, in first-seen order.
func Columns(c Condition) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	walk(c, add)
	return names
}

func walk(c Condition, add func(string)) {
	switch c := c.(type) {
	case And:
		for _, child := range c.Conditions {
			walk(child, add)
		}
	case Or:
		for _, child := range c.Conditions {
			walk(child, add)
		}
	case Compare:
		walkExpr(c.Left, add)
	case EqualFold:
		walkExpr(c.Left, add)
	case EnumEquals:
		add(c.Column)
	case Contains:
		walkExpr(c.Left, add)
	case Similar:
		walkExpr(c.Left, add)
	case IsNull:
		add(c.Column)
	case In:
		walkExpr(c.Left, add)
	}
}

func walkExpr(e Expr, add func(string)) {
	switch e := e.(type) {
	case Column:
		add(e.Name)
	case Concat:
		for _, col := range e.Columns {
			add(col.Name)
		}
	}
}
