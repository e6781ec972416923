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

// FromExpr converts a name-resolved surface type into a Type. The conversion
// is purely structural; whether every Var is bound by an enclosing quantifier
// is checked later, when the checker instantiates the type.
func FromExpr(te ast.TypeExpr) Type {
	switch te := te.(type) {
	case *ast.TEName:
		return &Name{Name: te.Name}
	case *ast.TEVar:
		return &Var{Name: te.Name}
	case *ast.TEForall:
		return &Forall{Var: te.Var, Body: FromExpr(te.Body)}
	case *ast.TEExists:
		return &Exists{Var: te.Var, Body: FromExpr(te.Body)}
	case *ast.TEFunc:
		return &Function{Arg: FromExpr(te.Arg), Result: FromExpr(te.Result)}
	case *ast.TEApp:
		return &Application{Fn: FromExpr(te.Fn), Arg: FromExpr(te.Arg)}
	case *ast.TERecord:
		return &Record{Row: rowFromExpr(te.Fields, te.Rest)}
	case *ast.TEVariant:
		return &Variant{Row: rowFromExpr(te.Fields, te.Rest)}
	}
	return nil
}

func rowFromExpr(fields []ast.TEField, rest ast.TypeExpr) Row {
	b := NewTypeMapBuilder()
	for _, f := range fields {
		b.Set(f.Label.Text, FromExpr(f.Type))
	}
	row := Row{Labels: b.Build()}
	if rest != nil {
		row.Rest = FromExpr(rest)
	}
	return row
}
