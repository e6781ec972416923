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

// Decl is a top-level declaration after name resolution.
type Decl interface {
	DeclName() string
	Location() Loc
}

var (
	_ Decl = (*ValueDecl)(nil)
	_ Decl = (*TypeDecl)(nil)
	_ Decl = (*SigDecl)(nil)
	_ Decl = (*FixityDecl)(nil)
)

// Binding is the shared shape of top-level value declarations and local
// let-bindings: either a function head with parameters or a pattern.
type Binding interface {
	BindingName() string
}

// Function binding: `f p1 p2 = body` (Params may be empty for `x = body`)
type FuncBinding struct {
	Name   Name
	Params []Pattern
	Body   Expr
}

// Pattern binding: `{ a = x, b = y } = body`; may define several names.
type PatternBinding struct {
	Pattern Pattern
	Body    Expr
}

func (b *FuncBinding) BindingName() string    { return "Func" }
func (b *PatternBinding) BindingName() string { return "Pattern" }

// Value declaration
type ValueDecl struct {
	Binding Binding
	Loc     Loc
}

// Type declaration: `type T a = C1 arg | C2 arg arg`
type TypeDecl struct {
	Name         Name
	Vars         []Name
	Constructors []ConDecl
	Loc          Loc
}

type ConDecl struct {
	Name Name
	Args []TypeExpr
}

// Signature declaration: `f : T`
type SigDecl struct {
	Name Name
	Type TypeExpr
	Loc  Loc
}

// Fixity determines how the fixity resolver associates an infix operator.
type Fixity uint8

const (
	InfixLeft Fixity = iota
	InfixRight
	InfixNone
)

func (f Fixity) String() string {
	switch f {
	case InfixLeft:
		return "left"
	case InfixRight:
		return "right"
	default:
		return "none"
	}
}

// RelOrd relates an operator's precedence to another operator's.
type RelOrd uint8

const (
	Above RelOrd = iota // binds tighter than the other operator
	Below
	SameAs
)

// FixityRel relates the declared operator to another operator, or to
// function application when Application is true.
type FixityRel struct {
	Ord         RelOrd
	Other       Name
	Application bool
}

// Fixity declaration: `infix left (+) above application`
type FixityDecl struct {
	Fixity    Fixity
	Op        Name
	Relations []FixityRel
	Loc       Loc
}

func (d *ValueDecl) DeclName() string  { return "Value" }
func (d *TypeDecl) DeclName() string   { return "Type" }
func (d *SigDecl) DeclName() string    { return "Sig" }
func (d *FixityDecl) DeclName() string { return "Fixity" }

func (d *ValueDecl) Location() Loc  { return d.Loc }
func (d *TypeDecl) Location() Loc   { return d.Loc }
func (d *SigDecl) Location() Loc    { return d.Loc }
func (d *FixityDecl) Location() Loc { return d.Loc }

// Defined returns the names a value declaration defines.
func (d *ValueDecl) Defined() []Name {
	switch b := d.Binding.(type) {
	case *FuncBinding:
		return []Name{b.Name}
	case *PatternBinding:
		return Bound(b.Pattern)
	}
	return nil
}
