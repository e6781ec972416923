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
	"maps"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/diag"
	"github.com/wdamron/rowan/types"
)

// normalise prepares the type of a top-level binding for export: solved
// unification variables are substituted, the remaining ones are generalized
// to universal quantifiers regardless of scope, and remaining skolems are
// quantified existentially. A unification variable or skolem surviving all
// of that is an error.
//
// Safe only at the module top level: skolems have no scope tracking
// mirroring unification variables, so nested generalization of skolems is
// rejected rather than silently changed.
func (c *Checker) normalise(t types.Type) (types.Type, error) {
	t = c.applySolved(t)
	t = c.uniVarsToForall(t)
	t = c.skolemsToExists(t)

	var err error
	types.Walk(t, func(x types.Type) {
		if err != nil {
			return
		}
		switch x := x.(type) {
		case *types.UniVar:
			err = diag.Errorf(ast.Loc{}, "dangling unification variable '_%d after normalisation", x.Id)
		case *types.Skolem:
			err = diag.Errorf(ast.Loc{}, "skolem %s escaped into a normalised type", x.Name)
		}
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// uniVarsToForall generalizes every still-unsolved unification variable in t
// to a fresh universal quantifier, in order of first occurrence. Unlike
// forallScope this is scope-insensitive. Free type variables (left behind
// when a shared variable was generalized by another binding of the same
// group) are re-quantified as well.
func (c *Checker) uniVarsToForall(t types.Type) types.Type {
	var uniOrder []types.UniVarId
	seen := make(map[types.UniVarId]bool)
	var freeOrder []ast.Name
	freeSeen := make(map[ast.NameKey]bool)

	var walk func(t types.Type, bound map[ast.NameKey]bool)
	walk = func(t types.Type, bound map[ast.NameKey]bool) {
		switch t := t.(type) {
		case *types.UniVar:
			if seen[t.Id] {
				return
			}
			seen[t.Id] = true
			if sol := c.solution(t.Id); sol != nil {
				walk(sol, bound)
				return
			}
			uniOrder = append(uniOrder, t.Id)
		case *types.Var:
			if !bound[t.Name.Key()] && !freeSeen[t.Name.Key()] {
				freeSeen[t.Name.Key()] = true
				freeOrder = append(freeOrder, t.Name)
			}
		case *types.Forall:
			inner := maps.Clone(bound)
			inner[t.Var.Key()] = true
			walk(t.Body, inner)
		case *types.Exists:
			inner := maps.Clone(bound)
			inner[t.Var.Key()] = true
			walk(t.Body, inner)
		case *types.Function:
			walk(t.Arg, bound)
			walk(t.Result, bound)
		case *types.Application:
			walk(t.Fn, bound)
			walk(t.Arg, bound)
		case *types.Record:
			walkRowNorm(t.Row, bound, walk)
		case *types.Variant:
			walkRowNorm(t.Row, bound, walk)
		}
	}
	walk(t, make(map[ast.NameKey]bool))

	for i := len(uniOrder) - 1; i >= 0; i-- {
		tv := c.freshTypeVar()
		c.overrideUniVar(uniOrder[i], &types.Var{Name: tv})
		t = &types.Forall{Var: tv, Body: t}
	}
	t = c.applySolved(t)
	for i := len(freeOrder) - 1; i >= 0; i-- {
		t = &types.Forall{Var: freeOrder[i], Body: t}
	}
	return t
}

func walkRowNorm(row types.Row, bound map[ast.NameKey]bool, walk func(types.Type, map[ast.NameKey]bool)) {
	row.Labels.Range(func(_ string, field types.Type) bool {
		walk(field, bound)
		return true
	})
	if row.Rest != nil {
		walk(row.Rest, bound)
	}
}

// skolemsToExists quantifies the remaining skolems in t existentially, in
// order of first occurrence.
func (c *Checker) skolemsToExists(t types.Type) types.Type {
	var order []*types.Skolem
	seen := make(map[int]bool)
	types.Walk(t, func(x types.Type) {
		if sk, ok := x.(*types.Skolem); ok && !seen[sk.Id] {
			seen[sk.Id] = true
			order = append(order, sk)
		}
	})
	for i := len(order) - 1; i >= 0; i-- {
		tv := c.freshTypeVar()
		t = c.substituteTy(order[i], &types.Var{Name: tv}, t)
		t = &types.Exists{Var: tv, Body: t}
	}
	return t
}
