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

package ast

// Expr is the base for all expressions. Expressions reaching the checker are
// name-resolved: every Name carries a unique id, and infix operators have
// already been rewritten into nested applications by the fixity resolver.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
	// Location returns the source position of the expression.
	Location() Loc
}

var (
	_ Expr = (*Var)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Annot)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Case)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*List)(nil)
	_ Expr = (*RecordExpr)(nil)
	_ Expr = (*VariantExpr)(nil)
	_ Expr = (*RecordLens)(nil)
	_ Expr = (*IntLit)(nil)
	_ Expr = (*TextLit)(nil)
	_ Expr = (*CharLit)(nil)
)

// Variable or constructor reference
type Var struct {
	Name Name
	Loc  Loc
}

// Application: `f x`
type App struct {
	Fn  Expr
	Arg Expr
	Loc Loc
}

// Lambda: `\p -> body`
type Lambda struct {
	Param Pattern
	Body  Expr
	Loc   Loc
}

// Let: a local binding scoped over Body
type Let struct {
	Binding Binding
	Body    Expr
	Loc     Loc
}

// Annotation: `e : T`
type Annot struct {
	Expr Expr
	Type TypeExpr
	Loc  Loc
}

// If: `if c then t else f`
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  Loc
}

// Case: `case scrutinee of p1 -> e1 | ...`
type Case struct {
	Scrutinee Expr
	Arms      []CaseArm
	Loc       Loc
}

type CaseArm struct {
	Pattern Pattern
	Body    Expr
}

// Match: an anonymous function by cases; every arm must have the same arity.
type Match struct {
	Arms []MatchArm
	Loc  Loc
}

type MatchArm struct {
	Patterns []Pattern
	Body     Expr
}

// List literal: `[a, b, c]`
type List struct {
	Items []Expr
	Loc   Loc
}

// Record literal: `{ a = x, b = y }`
type RecordExpr struct {
	Fields []Field
	Loc    Loc
}

type Field struct {
	Label Name
	Value Expr
}

// Variant constructor: `'Tag`
type VariantExpr struct {
	Tag Name
	Loc Loc
}

// RecordLens: a field-path lens `.f1.f2`
type RecordLens struct {
	Path []Name
	Loc  Loc
}

// Integer literal
type IntLit struct {
	Value int64
	Loc   Loc
}

// Text literal
type TextLit struct {
	Value string
	Loc   Loc
}

// Character literal
type CharLit struct {
	Value rune
	Loc   Loc
}

func (e *Var) ExprName() string         { return "Var" }
func (e *App) ExprName() string         { return "App" }
func (e *Lambda) ExprName() string      { return "Lambda" }
func (e *Let) ExprName() string         { return "Let" }
func (e *Annot) ExprName() string       { return "Annot" }
func (e *If) ExprName() string          { return "If" }
func (e *Case) ExprName() string        { return "Case" }
func (e *Match) ExprName() string       { return "Match" }
func (e *List) ExprName() string        { return "List" }
func (e *RecordExpr) ExprName() string  { return "Record" }
func (e *VariantExpr) ExprName() string { return "Variant" }
func (e *RecordLens) ExprName() string  { return "RecordLens" }
func (e *IntLit) ExprName() string      { return "IntLit" }
func (e *TextLit) ExprName() string     { return "TextLit" }
func (e *CharLit) ExprName() string     { return "CharLit" }

func (e *Var) Location() Loc         { return e.Loc }
func (e *App) Location() Loc         { return e.Loc }
func (e *Lambda) Location() Loc      { return e.Loc }
func (e *Let) Location() Loc         { return e.Loc }
func (e *Annot) Location() Loc       { return e.Loc }
func (e *If) Location() Loc          { return e.Loc }
func (e *Case) Location() Loc        { return e.Loc }
func (e *Match) Location() Loc       { return e.Loc }
func (e *List) Location() Loc        { return e.Loc }
func (e *RecordExpr) Location() Loc  { return e.Loc }
func (e *VariantExpr) Location() Loc { return e.Loc }
func (e *RecordLens) Location() Loc  { return e.Loc }
func (e *IntLit) Location() Loc      { return e.Loc }
func (e *TextLit) Location() Loc     { return e.Loc }
func (e *CharLit) Location() Loc     { return e.Loc }
