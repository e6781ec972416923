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

package rowan

import (
	"strings"
	"testing"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/diag"
	"github.com/wdamron/rowan/resolve"
	"github.com/wdamron/rowan/types"
)

func checkProgram(t *testing.T, names *ast.NameSource, sink *diag.Collector, decls []ast.Decl) *Env {
	t.Helper()
	out, err := resolve.Resolve(decls, sink)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	c := NewChecker(DefaultBuiltins(), names, sink)
	return c.Check(out)
}

func envString(t *testing.T, env *Env, n ast.Name) string {
	t.Helper()
	ty, ok := env.Lookup(n)
	if !ok {
		t.Fatalf("no type inferred for %s", n)
	}
	return types.TypeString(ty)
}

func TestCheckSimpleBinding(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	id := names.Fresh("id", ast.Loc{Line: 1})
	x := names.Fresh("x", ast.Loc{Line: 1})

	decls := []ast.Decl{
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   id,
				Params: []ast.Pattern{&ast.PVar{Name: x}},
				Body:   &ast.Var{Name: x},
			},
			Loc: ast.Loc{Line: 1},
		},
	}

	env := checkProgram(t, names, sink, decls)
	if sink.Fatals != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports)
	}
	if s := envString(t, env, id); s != "forall a. a -> a" {
		t.Fatalf("type: %s", s)
	}
}

func TestCheckMutuallyRecursiveGroup(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	f := names.Fresh("f", ast.Loc{Line: 1})
	g := names.Fresh("g", ast.Loc{Line: 2})
	x := names.Fresh("x", ast.Loc{Line: 1})
	y := names.Fresh("y", ast.Loc{Line: 2})

	decls := []ast.Decl{
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   f,
				Params: []ast.Pattern{&ast.PVar{Name: x}},
				Body:   &ast.App{Fn: &ast.Var{Name: g}, Arg: &ast.Var{Name: x}},
			},
			Loc: ast.Loc{Line: 1},
		},
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   g,
				Params: []ast.Pattern{&ast.PVar{Name: y}},
				Body:   &ast.App{Fn: &ast.Var{Name: f}, Arg: &ast.Var{Name: y}},
			},
			Loc: ast.Loc{Line: 2},
		},
	}

	env := checkProgram(t, names, sink, decls)
	if sink.Fatals != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports)
	}
	if s := envString(t, env, f); s != "forall a. forall b. a -> b" {
		t.Fatalf("f: %s", s)
	}
	if s := envString(t, env, g); s != "forall a. forall b. a -> b" {
		t.Fatalf("g: %s", s)
	}
}

func TestCheckSignatureIsRespected(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	f := names.Fresh("f", ast.Loc{Line: 2})
	x := names.Fresh("x", ast.Loc{Line: 2})
	intName := ast.Builtin(ast.BuiltinInt, ast.Loc{})

	decls := []ast.Decl{
		&ast.SigDecl{
			Name: f,
			Type: &ast.TEFunc{Arg: &ast.TEName{Name: intName}, Result: &ast.TEName{Name: intName}},
			Loc:  ast.Loc{Line: 1},
		},
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   f,
				Params: []ast.Pattern{&ast.PVar{Name: x}},
				Body:   &ast.Var{Name: x},
			},
			Loc: ast.Loc{Line: 2},
		},
	}

	env := checkProgram(t, names, sink, decls)
	if sink.Fatals != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports)
	}
	if s := envString(t, env, f); s != "Int -> Int" {
		t.Fatalf("f: %s", s)
	}
}

func TestCheckSignatureMismatchReported(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	f := names.Fresh("f", ast.Loc{Line: 2})
	textName := ast.Builtin(ast.BuiltinText, ast.Loc{})

	decls := []ast.Decl{
		&ast.SigDecl{
			Name: f,
			Type: &ast.TEName{Name: textName},
			Loc:  ast.Loc{Line: 1},
		},
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{Name: f, Body: &ast.IntLit{Value: 3}},
			Loc:     ast.Loc{Line: 2},
		},
	}

	checkProgram(t, names, sink, decls)
	if sink.Fatals == 0 {
		t.Fatalf("expected a fatal type error, got: %v", sink.Reports)
	}
}

func TestDanglingSignatureWarning(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	f := names.Fresh("f", ast.Loc{Line: 1})
	intName := ast.Builtin(ast.BuiltinInt, ast.Loc{})

	decls := []ast.Decl{
		&ast.SigDecl{Name: f, Type: &ast.TEName{Name: intName}, Loc: ast.Loc{Line: 1}},
	}

	checkProgram(t, names, sink, decls)
	if sink.Fatals != 0 {
		t.Fatalf("dangling signature must not be fatal: %v", sink.Reports)
	}
	if len(sink.Reports) != 1 || sink.Reports[0].Severity != diag.Warning {
		t.Fatalf("expected one warning, got: %v", sink.Reports)
	}
	if !strings.Contains(sink.Reports[0].Message, "dangling signature") {
		t.Fatalf("warning: %s", sink.Reports[0].Message)
	}
}

func TestCheckDataTypeConstructors(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	maybe := names.Fresh("Maybe", ast.Loc{Line: 1})
	a := names.Fresh("a", ast.Loc{Line: 1})
	just := names.Fresh("Just", ast.Loc{Line: 1})
	nothing := names.Fresh("Nothing", ast.Loc{Line: 1})
	unwrap := names.Fresh("unwrap", ast.Loc{Line: 2})
	m := names.Fresh("m", ast.Loc{Line: 2})
	x := names.Fresh("x", ast.Loc{Line: 2})

	decls := []ast.Decl{
		&ast.TypeDecl{
			Name: maybe,
			Vars: []ast.Name{a},
			Constructors: []ast.ConDecl{
				{Name: just, Args: []ast.TypeExpr{&ast.TEVar{Name: a}}},
				{Name: nothing},
			},
			Loc: ast.Loc{Line: 1},
		},
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   unwrap,
				Params: []ast.Pattern{&ast.PVar{Name: m}},
				Body: &ast.Case{
					Scrutinee: &ast.Var{Name: m},
					Arms: []ast.CaseArm{
						{Pattern: &ast.PCon{Con: just, Args: []ast.Pattern{&ast.PVar{Name: x}}}, Body: &ast.Var{Name: x}},
						{Pattern: &ast.PCon{Con: nothing}, Body: &ast.IntLit{Value: 0}},
					},
				},
			},
			Loc: ast.Loc{Line: 2},
		},
	}

	env := checkProgram(t, names, sink, decls)
	if sink.Fatals != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports)
	}
	if s := envString(t, env, just); s != "forall a. a -> Maybe a" {
		t.Fatalf("Just: %s", s)
	}
	if s := envString(t, env, unwrap); s != "Maybe Nat -> Nat" {
		t.Fatalf("unwrap: %s", s)
	}
}

func TestConstructorPatternArity(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	maybe := names.Fresh("Maybe", ast.Loc{Line: 1})
	a := names.Fresh("a", ast.Loc{Line: 1})
	just := names.Fresh("Just", ast.Loc{Line: 1})
	f := names.Fresh("f", ast.Loc{Line: 2})
	m := names.Fresh("m", ast.Loc{Line: 2})
	x := names.Fresh("x", ast.Loc{Line: 2})
	y := names.Fresh("y", ast.Loc{Line: 2})

	decls := []ast.Decl{
		&ast.TypeDecl{
			Name: maybe,
			Vars: []ast.Name{a},
			Constructors: []ast.ConDecl{
				{Name: just, Args: []ast.TypeExpr{&ast.TEVar{Name: a}}},
			},
			Loc: ast.Loc{Line: 1},
		},
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   f,
				Params: []ast.Pattern{&ast.PVar{Name: m}},
				Body: &ast.Case{
					Scrutinee: &ast.Var{Name: m},
					Arms: []ast.CaseArm{
						{
							Pattern: &ast.PCon{Con: just, Args: []ast.Pattern{&ast.PVar{Name: x}, &ast.PVar{Name: y}}},
							Body:    &ast.Var{Name: x},
						},
					},
				},
			},
			Loc: ast.Loc{Line: 2},
		},
	}

	checkProgram(t, names, sink, decls)
	if sink.Fatals == 0 {
		t.Fatalf("expected constructor arity error, got: %v", sink.Reports)
	}
	found := false
	for _, r := range sink.Reports {
		if strings.Contains(r.Message, "wrong arity in constructor pattern") {
			found = true
		}
	}
	if !found {
		t.Fatalf("reports: %v", sink.Reports)
	}
}

func TestErrorDoesNotHideLaterGroups(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	bad := names.Fresh("bad", ast.Loc{Line: 1})
	x := names.Fresh("x", ast.Loc{Line: 1})
	good := names.Fresh("good", ast.Loc{Line: 2})

	decls := []ast.Decl{
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{
				Name:   bad,
				Params: []ast.Pattern{&ast.PVar{Name: x}},
				Body:   &ast.App{Fn: &ast.Var{Name: x}, Arg: &ast.Var{Name: x}},
			},
			Loc: ast.Loc{Line: 1},
		},
		&ast.ValueDecl{
			Binding: &ast.FuncBinding{Name: good, Body: &ast.IntLit{Value: 1}},
			Loc:     ast.Loc{Line: 2},
		},
	}

	env := checkProgram(t, names, sink, decls)
	if sink.Fatals == 0 {
		t.Fatalf("expected a fatal error for bad")
	}
	if s := envString(t, env, good); s != "Nat" {
		t.Fatalf("good: %s", s)
	}
}

func TestPatternBindingDefinesSeveralNames(t *testing.T) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	first := names.Fresh("first", ast.Loc{Line: 1})
	second := names.Fresh("second", ast.Loc{Line: 1})
	a := names.Fresh("a", ast.Loc{Line: 1})
	b := names.Fresh("b", ast.Loc{Line: 1})

	decls := []ast.Decl{
		&ast.ValueDecl{
			Binding: &ast.PatternBinding{
				Pattern: &ast.PRecord{Fields: []ast.PField{
					{Label: a, Pattern: &ast.PVar{Name: first}},
					{Label: b, Pattern: &ast.PVar{Name: second}},
				}},
				Body: &ast.RecordExpr{Fields: []ast.Field{
					{Label: a, Value: &ast.IntLit{Value: 1}},
					{Label: b, Value: &ast.TextLit{Value: "hi"}},
				}},
			},
			Loc: ast.Loc{Line: 1},
		},
	}

	env := checkProgram(t, names, sink, decls)
	if sink.Fatals != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Reports)
	}
	if s := envString(t, env, first); s != "Nat" {
		t.Fatalf("first: %s", s)
	}
	if s := envString(t, env, second); s != "Text" {
		t.Fatalf("second: %s", s)
	}
}
