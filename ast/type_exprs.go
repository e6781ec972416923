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

// TypeExpr is a surface-syntax type as written in annotations, signatures,
// and constructor arguments. Names within are already resolved.
type TypeExpr interface {
	TypeExprName() string
	Location() Loc
}

var (
	_ TypeExpr = (*TEName)(nil)
	_ TypeExpr = (*TEVar)(nil)
	_ TypeExpr = (*TEForall)(nil)
	_ TypeExpr = (*TEExists)(nil)
	_ TypeExpr = (*TEFunc)(nil)
	_ TypeExpr = (*TEApp)(nil)
	_ TypeExpr = (*TERecord)(nil)
	_ TypeExpr = (*TEVariant)(nil)
)

// Named type constructor reference
type TEName struct {
	Name Name
	Loc  Loc
}

// Bound type variable reference
type TEVar struct {
	Name Name
	Loc  Loc
}

// Universal quantifier: `forall a. T`
type TEForall struct {
	Var  Name
	Body TypeExpr
	Loc  Loc
}

// Existential quantifier: `exists a. T`
type TEExists struct {
	Var  Name
	Body TypeExpr
	Loc  Loc
}

// Function type: `a -> b`
type TEFunc struct {
	Arg    TypeExpr
	Result TypeExpr
	Loc    Loc
}

// Type application: `List a`
type TEApp struct {
	Fn  TypeExpr
	Arg TypeExpr
	Loc Loc
}

// Record row type: `{ a : T | r }`; Rest is nil for a closed row.
type TERecord struct {
	Fields []TEField
	Rest   TypeExpr
	Loc    Loc
}

// Variant row type: `[ 'A : T | r ]`; Rest is nil for a closed row.
type TEVariant struct {
	Fields []TEField
	Rest   TypeExpr
	Loc    Loc
}

type TEField struct {
	Label Name
	Type  TypeExpr
}

func (t *TEName) TypeExprName() string    { return "Name" }
func (t *TEVar) TypeExprName() string     { return "Var" }
func (t *TEForall) TypeExprName() string  { return "Forall" }
func (t *TEExists) TypeExprName() string  { return "Exists" }
func (t *TEFunc) TypeExprName() string    { return "Func" }
func (t *TEApp) TypeExprName() string     { return "App" }
func (t *TERecord) TypeExprName() string  { return "Record" }
func (t *TEVariant) TypeExprName() string { return "Variant" }

func (t *TEName) Location() Loc    { return t.Loc }
func (t *TEVar) Location() Loc     { return t.Loc }
func (t *TEForall) Location() Loc  { return t.Loc }
func (t *TEExists) Location() Loc  { return t.Loc }
func (t *TEFunc) Location() Loc    { return t.Loc }
func (t *TEApp) Location() Loc     { return t.Loc }
func (t *TERecord) Location() Loc  { return t.Loc }
func (t *TEVariant) Location() Loc { return t.Loc }
