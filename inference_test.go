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
	"github.com/wdamron/rowan/types"
)

func testChecker() (*Checker, *diag.Collector, *ast.NameSource) {
	names := ast.NewNameSource(0)
	sink := &diag.Collector{}
	return NewChecker(DefaultBuiltins(), names, sink), sink, names
}

func inferString(t *testing.T, c *Checker, expr ast.Expr) string {
	t.Helper()
	ty, err := c.Infer(expr)
	if err != nil {
		t.Fatalf("infer %s: %v", ast.ExprString(expr), err)
	}
	return types.TypeString(ty)
}

func TestIdentity(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	expr := &ast.Lambda{Param: &ast.PVar{Name: x}, Body: &ast.Var{Name: x}}

	if s := ast.ExprString(expr); s != `\x -> x` {
		t.Fatalf("expr: %s", s)
	}
	if s := inferString(t, c, expr); s != "forall a. a -> a" {
		t.Fatalf("type: %s", s)
	}
}

func TestConst(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	y := names.Fresh("y", ast.Loc{})
	expr := &ast.Lambda{
		Param: &ast.PVar{Name: x},
		Body:  &ast.Lambda{Param: &ast.PVar{Name: y}, Body: &ast.Var{Name: x}},
	}

	if s := inferString(t, c, expr); s != "forall a. forall b. a -> b -> a" {
		t.Fatalf("type: %s", s)
	}
}

func TestApply(t *testing.T) {
	c, _, names := testChecker()
	f := names.Fresh("f", ast.Loc{})
	x := names.Fresh("x", ast.Loc{})
	expr := &ast.Lambda{
		Param: &ast.PVar{Name: f},
		Body: &ast.Lambda{
			Param: &ast.PVar{Name: x},
			Body:  &ast.App{Fn: &ast.Var{Name: f}, Arg: &ast.Var{Name: x}},
		},
	}

	if s := inferString(t, c, expr); s != "forall a. forall b. (a -> b) -> a -> b" {
		t.Fatalf("type: %s", s)
	}
}

func TestRecordApplication(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	name := names.Fresh("name", ast.Loc{})
	self := names.Fresh("self", ast.Loc{})
	expr := &ast.App{
		Fn: &ast.Lambda{
			Param: &ast.PVar{Name: x},
			Body: &ast.RecordExpr{Fields: []ast.Field{
				{Label: name, Value: &ast.Var{Name: x}},
				{Label: self, Value: &ast.Var{Name: x}},
			}},
		},
		Arg: &ast.TextLit{Value: "hi"},
	}

	if s := inferString(t, c, expr); s != "{name : Text, self : Text}" {
		t.Fatalf("type: %s", s)
	}
}

func TestCaseOverVariants(t *testing.T) {
	c, _, names := testChecker()
	v := names.Fresh("v", ast.Loc{})
	x := names.Fresh("x", ast.Loc{})
	some := names.Fresh("Some", ast.Loc{})
	none := names.Fresh("None", ast.Loc{})
	expr := &ast.Lambda{
		Param: &ast.PVar{Name: v},
		Body: &ast.Case{
			Scrutinee: &ast.Var{Name: v},
			Arms: []ast.CaseArm{
				{Pattern: &ast.PVariant{Tag: some, Arg: &ast.PVar{Name: x}}, Body: &ast.Var{Name: x}},
				{Pattern: &ast.PVariant{Tag: none}, Body: &ast.IntLit{Value: 0}},
			},
		},
	}

	if s := inferString(t, c, expr); s != "forall a. ['None : {}, 'Some : Nat | a] -> Nat" {
		t.Fatalf("type: %s", s)
	}
}

func TestVariantConstructor(t *testing.T) {
	c, _, names := testChecker()
	some := names.Fresh("Some", ast.Loc{})
	expr := &ast.App{
		Fn:  &ast.VariantExpr{Tag: some},
		Arg: &ast.IntLit{Value: 1},
	}

	if s := inferString(t, c, expr); s != "forall a. ['Some : Nat | a]" {
		t.Fatalf("type: %s", s)
	}
}

func TestIfJoinsBranches(t *testing.T) {
	c, _, names := testChecker()
	cond := names.Fresh("b", ast.Loc{})
	expr := &ast.Lambda{
		Param: &ast.PVar{Name: cond},
		Body: &ast.If{
			Cond: &ast.Var{Name: cond},
			Then: &ast.IntLit{Value: 1},
			Else: &ast.IntLit{Value: -1},
		},
	}

	if s := inferString(t, c, expr); s != "Bool -> Int" {
		t.Fatalf("type: %s", s)
	}
}

func TestListLiteral(t *testing.T) {
	c, _, _ := testChecker()
	expr := &ast.List{Items: []ast.Expr{
		&ast.IntLit{Value: 0},
		&ast.IntLit{Value: 1},
	}}

	if s := inferString(t, c, expr); s != "List Nat" {
		t.Fatalf("type: %s", s)
	}
}

func TestListJoinsItemTypes(t *testing.T) {
	c, _, _ := testChecker()
	expr := &ast.List{Items: []ast.Expr{
		&ast.IntLit{Value: 0},
		&ast.IntLit{Value: -1},
	}}

	if s := inferString(t, c, expr); s != "List Int" {
		t.Fatalf("type: %s", s)
	}
}

func TestRecordLens(t *testing.T) {
	c, _, names := testChecker()
	name := names.Fresh("name", ast.Loc{})
	expr := &ast.RecordLens{Path: []ast.Name{name}}

	expect := "forall a. forall b. forall c. Lens {name : a | c} {name : b | c} a b"
	if s := inferString(t, c, expr); s != expect {
		t.Fatalf("type: %s", s)
	}
}

func TestMatchArity(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	y := names.Fresh("y", ast.Loc{})
	expr := &ast.Match{Arms: []ast.MatchArm{
		{Patterns: []ast.Pattern{&ast.PVar{Name: x}, &ast.PVar{Name: y}}, Body: &ast.Var{Name: x}},
		{Patterns: []ast.Pattern{&ast.PVar{Name: x}}, Body: &ast.Var{Name: x}},
	}}

	_, err := c.Infer(expr)
	if err == nil || !strings.Contains(err.Error(), "wrong arity in match arms") {
		t.Fatalf("expected match arity error, got: %v", err)
	}
}

func TestMatchInfersFunction(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	expr := &ast.Match{Arms: []ast.MatchArm{
		{Patterns: []ast.Pattern{&ast.PIntLit{Value: 0}}, Body: &ast.IntLit{Value: 1}},
		{Patterns: []ast.Pattern{&ast.PVar{Name: x}}, Body: &ast.Var{Name: x}},
	}}

	if s := inferString(t, c, expr); s != "Nat -> Nat" {
		t.Fatalf("type: %s", s)
	}
}

func TestLetPolymorphism(t *testing.T) {
	c, _, names := testChecker()
	id := names.Fresh("id", ast.Loc{})
	x := names.Fresh("x", ast.Loc{})
	pair := names.Fresh("n", ast.Loc{})
	text := names.Fresh("t", ast.Loc{})
	expr := &ast.Let{
		Binding: &ast.FuncBinding{
			Name:   id,
			Params: []ast.Pattern{&ast.PVar{Name: x}},
			Body:   &ast.Var{Name: x},
		},
		Body: &ast.RecordExpr{Fields: []ast.Field{
			{Label: pair, Value: &ast.App{Fn: &ast.Var{Name: id}, Arg: &ast.IntLit{Value: 0}}},
			{Label: text, Value: &ast.App{Fn: &ast.Var{Name: id}, Arg: &ast.TextLit{Value: "hi"}}},
		}},
	}

	if s := inferString(t, c, expr); s != "{n : Nat, t : Text}" {
		t.Fatalf("type: %s", s)
	}
}

func TestSelfApplicationRejected(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	expr := &ast.Lambda{
		Param: &ast.PVar{Name: x},
		Body:  &ast.App{Fn: &ast.Var{Name: x}, Arg: &ast.Var{Name: x}},
	}

	_, err := c.Infer(expr)
	if err == nil || !strings.Contains(err.Error(), "self-referential type") {
		t.Fatalf("expected self-referential type error, got: %v", err)
	}
}

func TestAnnotationMissingField(t *testing.T) {
	c, _, names := testChecker()
	a := names.Fresh("a", ast.Loc{})
	b := names.Fresh("b", ast.Loc{})
	expr := &ast.Annot{
		Expr: &ast.RecordExpr{Fields: []ast.Field{{Label: a, Value: &ast.IntLit{Value: 1}}}},
		Type: &ast.TERecord{Fields: []ast.TEField{
			{Label: b, Type: &ast.TEName{Name: ast.Builtin(ast.BuiltinInt, ast.Loc{})}},
		}},
	}

	_, err := c.Infer(expr)
	if err == nil || !strings.Contains(err.Error(), "does not contain field b") {
		t.Fatalf("expected missing-field error, got: %v", err)
	}
}

func TestAnnotationChecks(t *testing.T) {
	c, _, _ := testChecker()
	expr := &ast.Annot{
		Expr: &ast.IntLit{Value: 1},
		Type: &ast.TEName{Name: ast.Builtin(ast.BuiltinInt, ast.Loc{})},
	}

	// Nat <= Int via the configured subtype relation.
	if s := inferString(t, c, expr); s != "Int" {
		t.Fatalf("type: %s", s)
	}
}

func TestUnboundTypeVariableRejected(t *testing.T) {
	c, _, names := testChecker()
	a := names.Fresh("a", ast.Loc{})
	expr := &ast.Annot{
		Expr: &ast.IntLit{Value: 1},
		Type: &ast.TEVar{Name: a},
	}

	_, err := c.Infer(expr)
	if err == nil || !strings.Contains(err.Error(), "unbound type variable") {
		t.Fatalf("expected unbound type variable error, got: %v", err)
	}
}

func TestHigherRankAnnotation(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	a := names.Fresh("a", ast.Loc{})
	// (\x -> x) : forall a. a -> a
	expr := &ast.Annot{
		Expr: &ast.Lambda{Param: &ast.PVar{Name: x}, Body: &ast.Var{Name: x}},
		Type: &ast.TEForall{
			Var:  a,
			Body: &ast.TEFunc{Arg: &ast.TEVar{Name: a}, Result: &ast.TEVar{Name: a}},
		},
	}

	if s := inferString(t, c, expr); s != "forall a. a -> a" {
		t.Fatalf("type: %s", s)
	}
}

func TestRigidAnnotationRejectsConcreteBody(t *testing.T) {
	c, _, names := testChecker()
	x := names.Fresh("x", ast.Loc{})
	a := names.Fresh("a", ast.Loc{})
	// (\x -> 0) : forall a. a -> a must fail: the body is not polymorphic.
	expr := &ast.Annot{
		Expr: &ast.Lambda{Param: &ast.PVar{Name: x}, Body: &ast.IntLit{Value: 0}},
		Type: &ast.TEForall{
			Var:  a,
			Body: &ast.TEFunc{Arg: &ast.TEVar{Name: a}, Result: &ast.TEVar{Name: a}},
		},
	}

	if _, err := c.Infer(expr); err == nil {
		t.Fatalf("expected rigid annotation error")
	}
}

func TestNormalisedTypesAreClean(t *testing.T) {
	c, _, names := testChecker()
	v := names.Fresh("v", ast.Loc{})
	x := names.Fresh("x", ast.Loc{})
	some := names.Fresh("Some", ast.Loc{})
	exprs := []ast.Expr{
		&ast.Lambda{Param: &ast.PVar{Name: x}, Body: &ast.Var{Name: x}},
		&ast.Lambda{
			Param: &ast.PVar{Name: v},
			Body: &ast.Case{
				Scrutinee: &ast.Var{Name: v},
				Arms: []ast.CaseArm{
					{Pattern: &ast.PVariant{Tag: some, Arg: &ast.PVar{Name: x}}, Body: &ast.Var{Name: x}},
				},
			},
		},
		&ast.List{Items: []ast.Expr{&ast.IntLit{Value: 3}}},
	}
	for _, expr := range exprs {
		ty, err := c.Infer(expr)
		if err != nil {
			t.Fatal(err)
		}
		types.Walk(ty, func(x types.Type) {
			switch x.(type) {
			case *types.UniVar:
				t.Fatalf("normalised type contains a unification variable: %s", types.TypeString(ty))
			case *types.Skolem:
				t.Fatalf("normalised type contains a skolem: %s", types.TypeString(ty))
			}
		})
	}
}
