// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package types

import (
	"github.com/wdamron/rowan/ast"
)

// Type is the base interface for all types.
type Type interface {
	TypeName() string
}

var (
	_ Type = (*Name)(nil)
	_ Type = (*Var)(nil)
	_ Type = (*Skolem)(nil)
	_ Type = (*UniVar)(nil)
	_ Type = (*Forall)(nil)
	_ Type = (*Exists)(nil)
	_ Type = (*Function)(nil)
	_ Type = (*Application)(nil)
	_ Type = (*Record)(nil)
	_ Type = (*Variant)(nil)
)

// UniVarId indexes the checker's unification-variable store.
type UniVarId int

// Named type constructor: `Int`, `List`
type Name struct {
	Name ast.Name
}

// Bound type variable; always appears under an enclosing Forall or Exists.
type Var struct {
	Name ast.Name
}

// Skolem is a rigid variable introduced when a quantifier is instantiated at
// rigid variance. Skolems compare equal on Id only.
type Skolem struct {
	Name ast.Name
	Id   int
}

// UniVar is a unification variable (metavariable) which may later be solved
// to a concrete type.
type UniVar struct {
	Id UniVarId
}

// Universal quantifier: `forall a. T`
type Forall struct {
	Var  ast.Name
	Body Type
}

// Existential quantifier: `exists a. T`
type Exists struct {
	Var  ast.Name
	Body Type
}

// Function type: `a -> b`
type Function struct {
	Arg    Type
	Result Type
}

// Type application: `List a`
type Application struct {
	Fn  Type
	Arg Type
}

// Structural record type: `{a : T | r}`
type Record struct {
	Row Row
}

// Structural variant type: `['A : T | r]`
type Variant struct {
	Row Row
}

func (t *Name) TypeName() string        { return "Name" }
func (t *Var) TypeName() string         { return "Var" }
func (t *Skolem) TypeName() string      { return "Skolem" }
func (t *UniVar) TypeName() string      { return "UniVar" }
func (t *Forall) TypeName() string      { return "Forall" }
func (t *Exists) TypeName() string      { return "Exists" }
func (t *Function) TypeName() string    { return "Function" }
func (t *Application) TypeName() string { return "Application" }
func (t *Record) TypeName() string      { return "Record" }
func (t *Variant) TypeName() string     { return "Variant" }

// RowKind distinguishes the two row-typed constructors.
type RowKind uint8

const (
	RecordRow RowKind = iota
	VariantRow
)

func (k RowKind) String() string {
	if k == RecordRow {
		return "record"
	}
	return "variant"
}

// WithRow wraps a row in the constructor matching kind.
func (k RowKind) WithRow(row Row) Type {
	if k == RecordRow {
		return &Record{Row: row}
	}
	return &Variant{Row: row}
}

// RowOf returns the row of t if t is the row constructor matching kind.
func (k RowKind) RowOf(t Type) (Row, bool) {
	switch t := t.(type) {
	case *Record:
		if k == RecordRow {
			return t.Row, true
		}
	case *Variant:
		if k == VariantRow {
			return t.Row, true
		}
	}
	return Row{}, false
}

// Walk calls f for t and every type nested within t, outermost first.
// Solved unification variables are not resolved; callers that need to see
// through solutions resolve them before walking.
func Walk(t Type, f func(Type)) {
	f(t)
	switch t := t.(type) {
	case *Forall:
		Walk(t.Body, f)
	case *Exists:
		Walk(t.Body, f)
	case *Function:
		Walk(t.Arg, f)
		Walk(t.Result, f)
	case *Application:
		Walk(t.Fn, f)
		Walk(t.Arg, f)
	case *Record:
		walkRow(t.Row, f)
	case *Variant:
		walkRow(t.Row, f)
	}
}

func walkRow(row Row, f func(Type)) {
	row.Labels.Range(func(_ string, field Type) bool {
		Walk(field, f)
		return true
	})
	if row.Rest != nil {
		Walk(row.Rest, f)
	}
}
