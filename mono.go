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
	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/diag"
	"github.com/wdamron/rowan/types"
)

// Variance selects how mono eliminates quantifiers. A quantifier on the
// producing side of a judgement (In) is instantiated to a fresh metavariable
// to be solved by the consumer; on the consuming side (Out) it becomes
// rigid. Inv is rigid in both directions.
type Variance uint8

const (
	In Variance = iota
	Out
	Inv
)

func (v Variance) flip() Variance {
	switch v {
	case In:
		return Out
	case Out:
		return In
	}
	return Inv
}

// mono unwraps outer quantifiers until the outermost layer of the type is a
// plain constructor: Name, Skolem, UniVar, Application, Function, Record, or
// Variant. Solved unification variables are resolved along the way.
//
//	quantifier | In      | Out     | Inv
//	Forall     | univar  | skolem  | skolem
//	Exists     | skolem  | univar  | skolem
//
// Variance flips when recursing under Exists. A free type variable reaching
// mono is an unbound type variable.
func (c *Checker) mono(v Variance, t types.Type) (types.Type, error) {
	for {
		switch ty := t.(type) {
		case *types.Forall:
			t = c.substitute(ty.Var, c.quantifierRepl(v, ty.Var, false), ty.Body)
		case *types.Exists:
			t = c.substitute(ty.Var, c.quantifierRepl(v, ty.Var, true), ty.Body)
			v = v.flip()
		case *types.Var:
			return nil, diag.Errorf(ty.Name.Loc, "unbound type variable %s", ty.Name)
		case *types.UniVar:
			sol := c.solution(ty.Id)
			if sol == nil {
				return ty, nil
			}
			t = sol
		default:
			return t, nil
		}
	}
}

func (c *Checker) quantifierRepl(v Variance, bound ast.Name, existential bool) types.Type {
	flexible := v == In
	if existential {
		flexible = v == Out
	}
	if flexible {
		return c.freshUniVar()
	}
	return c.freshSkolem(bound)
}

// substitute replaces the bound variable v by repl within body, respecting
// binders that shadow v.
func (c *Checker) substitute(v ast.Name, repl types.Type, body types.Type) types.Type {
	switch t := body.(type) {
	case *types.Var:
		if t.Name.Eq(v) {
			return repl
		}
		return t
	case *types.Forall:
		if t.Var.Eq(v) {
			return t
		}
		return &types.Forall{Var: t.Var, Body: c.substitute(v, repl, t.Body)}
	case *types.Exists:
		if t.Var.Eq(v) {
			return t
		}
		return &types.Exists{Var: t.Var, Body: c.substitute(v, repl, t.Body)}
	case *types.Function:
		return &types.Function{Arg: c.substitute(v, repl, t.Arg), Result: c.substitute(v, repl, t.Result)}
	case *types.Application:
		return &types.Application{Fn: c.substitute(v, repl, t.Fn), Arg: c.substitute(v, repl, t.Arg)}
	case *types.Record:
		return &types.Record{Row: c.substituteRow(v, repl, t.Row)}
	case *types.Variant:
		return &types.Variant{Row: c.substituteRow(v, repl, t.Row)}
	default:
		return t
	}
}

func (c *Checker) substituteRow(v ast.Name, repl types.Type, row types.Row) types.Row {
	b := types.NewTypeMapBuilder()
	row.Labels.Range(func(label string, field types.Type) bool {
		b.Set(label, c.substitute(v, repl, field))
		return true
	})
	out := types.Row{Labels: b.Build()}
	if row.Rest != nil {
		out.Rest = c.substitute(v, repl, row.Rest)
	}
	return out
}

// substituteTy performs structural whole-type replacement of from by to.
// It traverses through already-solved unification variables, rewriting their
// solutions in place. Unsound for Var under recursive binders; callers only
// use it for non-Var types (skolems in particular).
func (c *Checker) substituteTy(from, to, body types.Type) types.Type {
	seen := make(map[types.UniVarId]bool)
	var sub func(t types.Type) types.Type
	sub = func(t types.Type) types.Type {
		if c.sameTypeNode(t, from) {
			return to
		}
		switch t := t.(type) {
		case *types.UniVar:
			if !seen[t.Id] {
				seen[t.Id] = true
				if sol := c.solution(t.Id); sol != nil {
					c.overrideUniVar(t.Id, sub(sol))
				}
			}
			return t
		case *types.Forall:
			return &types.Forall{Var: t.Var, Body: sub(t.Body)}
		case *types.Exists:
			return &types.Exists{Var: t.Var, Body: sub(t.Body)}
		case *types.Function:
			return &types.Function{Arg: sub(t.Arg), Result: sub(t.Result)}
		case *types.Application:
			return &types.Application{Fn: sub(t.Fn), Arg: sub(t.Arg)}
		case *types.Record:
			return &types.Record{Row: subRow(t.Row, sub)}
		case *types.Variant:
			return &types.Variant{Row: subRow(t.Row, sub)}
		default:
			return t
		}
	}
	return sub(body)
}

func subRow(row types.Row, sub func(types.Type) types.Type) types.Row {
	b := types.NewTypeMapBuilder()
	row.Labels.Range(func(label string, field types.Type) bool {
		b.Set(label, sub(field))
		return true
	})
	out := types.Row{Labels: b.Build()}
	if row.Rest != nil {
		out.Rest = sub(row.Rest)
	}
	return out
}

// sameTypeNode compares two type nodes by identity: names by key, skolems
// and unification variables by id.
func (c *Checker) sameTypeNode(a, b types.Type) bool {
	switch a := a.(type) {
	case *types.Name:
		b, ok := b.(*types.Name)
		return ok && a.Name.Eq(b.Name)
	case *types.Var:
		b, ok := b.(*types.Var)
		return ok && a.Name.Eq(b.Name)
	case *types.Skolem:
		b, ok := b.(*types.Skolem)
		return ok && a.Id == b.Id
	case *types.UniVar:
		b, ok := b.(*types.UniVar)
		return ok && a.Id == b.Id
	}
	return a == b
}
