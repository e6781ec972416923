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
	"testing"

	"github.com/wdamron/rowan/ast"
)

func TestTypeStringRenamesBinders(t *testing.T) {
	names := ast.NewNameSource(0)
	v1 := names.Fresh("t9", ast.Loc{})
	v2 := names.Fresh("q", ast.Loc{})
	ty := &Forall{Var: v1, Body: &Forall{Var: v2, Body: &Function{
		Arg:    &Var{Name: v1},
		Result: &Var{Name: v2},
	}}}

	if s := TypeString(ty); s != "forall a. forall b. a -> b" {
		t.Fatalf("type: %s", s)
	}
}

func TestTypeStringAlphaEquivalence(t *testing.T) {
	names := ast.NewNameSource(0)
	mk := func() Type {
		v := names.Fresh("v", ast.Loc{})
		return &Forall{Var: v, Body: &Function{Arg: &Var{Name: v}, Result: &Var{Name: v}}}
	}
	a, b := mk(), mk()
	if TypeString(a) != TypeString(b) {
		t.Fatalf("alpha-equivalent types must print identically: %s vs %s", TypeString(a), TypeString(b))
	}
}

func TestTypeStringRows(t *testing.T) {
	names := ast.NewNameSource(0)
	intName := ast.Builtin(ast.BuiltinInt, ast.Loc{})
	r := names.Fresh("r", ast.Loc{})

	rec := &Record{Row: OpenRow(&Var{Name: r},
		RowField{Label: "b", Type: &Name{Name: intName}},
		RowField{Label: "a", Type: &Name{Name: intName}},
	)}
	if s := TypeString(rec); s != "{a : Int, b : Int | r}" {
		t.Fatalf("record: %s", s)
	}

	variant := &Variant{Row: ClosedRow(
		RowField{Label: "None", Type: &Record{Row: ClosedRow()}},
	)}
	if s := TypeString(variant); s != "['None : {}]" {
		t.Fatalf("variant: %s", s)
	}
}

func TestTypeStringFunctionNesting(t *testing.T) {
	intName := ast.Builtin(ast.BuiltinInt, ast.Loc{})
	listName := ast.Builtin(ast.BuiltinList, ast.Loc{})

	intTy := &Name{Name: intName}
	fn := &Function{Arg: &Function{Arg: intTy, Result: intTy}, Result: intTy}
	if s := TypeString(fn); s != "(Int -> Int) -> Int" {
		t.Fatalf("fn: %s", s)
	}

	app := &Application{Fn: &Name{Name: listName}, Arg: &Application{Fn: &Name{Name: listName}, Arg: intTy}}
	if s := TypeString(app); s != "List (List Int)" {
		t.Fatalf("app: %s", s)
	}
}

func TestFromExprRoundTrip(t *testing.T) {
	names := ast.NewNameSource(0)
	a := names.Fresh("a", ast.Loc{})
	intName := ast.Builtin(ast.BuiltinInt, ast.Loc{})

	te := &ast.TEForall{
		Var: a,
		Body: &ast.TEFunc{
			Arg: &ast.TEVar{Name: a},
			Result: &ast.TERecord{Fields: []ast.TEField{
				{Label: names.Fresh("x", ast.Loc{}), Type: &ast.TEName{Name: intName}},
			}, Rest: &ast.TEVar{Name: a}},
		},
	}
	ty := FromExpr(te)
	if s := TypeString(ty); s != "forall a. a -> {x : Int | a}" {
		t.Fatalf("type: %s", s)
	}
}
