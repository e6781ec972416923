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

// cell is one entry in the unification-variable store: either unsolved at
// the scope it was created, or solved to a type.
type cell struct {
	solved types.Type
	scope  Scope
}

func (c *Checker) freshUniVar() *types.UniVar {
	id := types.UniVarId(len(c.cells))
	c.cells = append(c.cells, cell{scope: c.scope})
	return &types.UniVar{Id: id}
}

func (c *Checker) solution(id types.UniVarId) types.Type { return c.cells[id].solved }

// withUniVar calls f with the solution of u, if u is solved.
func (c *Checker) withUniVar(u *types.UniVar, f func(types.Type)) {
	if t := c.cells[u.Id].solved; t != nil {
		f(t)
	}
}

// solveUniVar records u := t. Solving an already-solved variable is an
// internal error. Every unsolved variable referenced by t has its scope
// lowered to u's scope, so a variable created in an outer scope can never be
// mentioned only through an inner solution that would escape.
func (c *Checker) solveUniVar(u *types.UniVar, t types.Type) error {
	if c.cells[u.Id].solved != nil {
		panic("rowan: unification variable solved twice without override")
	}
	return c.solve(u.Id, t)
}

// overrideUniVar is solveUniVar with the already-solved check bypassed; used
// by substitution passes that rewrite through solutions.
func (c *Checker) overrideUniVar(id types.UniVarId, t types.Type) {
	c.cells[id].solved = t
}

func (c *Checker) solve(id types.UniVarId, t types.Type) error {
	c.lowerScopes(t, c.cells[id].scope, make(map[types.UniVarId]bool))
	c.cells[id].solved = t
	return c.cycleCheck(id)
}

func (c *Checker) lowerScopes(t types.Type, s Scope, seen map[types.UniVarId]bool) {
	types.Walk(t, func(t types.Type) {
		u, ok := t.(*types.UniVar)
		if !ok || seen[u.Id] {
			return
		}
		seen[u.Id] = true
		cl := &c.cells[u.Id]
		if cl.solved != nil {
			c.lowerScopes(cl.solved, s, seen)
			return
		}
		if cl.scope > s {
			cl.scope = s
		}
	})
}

// cycleCheck traverses the solution of start, tracking the path of solved
// variables. A direct cycle (a := b; b := a) is collapsed by substituting a
// fresh skolem for the offending variable; a cycle through a type
// constructor is a self-referential type.
func (c *Checker) cycleCheck(start types.UniVarId) error {
	var visit func(t types.Type, path []types.UniVarId, direct bool) error
	visit = func(t types.Type, path []types.UniVarId, direct bool) error {
		switch t := t.(type) {
		case *types.UniVar:
			sol := c.cells[t.Id].solved
			if sol == nil {
				return nil
			}
			for _, id := range path {
				if id == t.Id {
					if direct {
						c.overrideUniVar(t.Id, c.freshSkolem(ast.Name{Text: "cyclic"}))
						return nil
					}
					return diag.Errorf(ast.Loc{}, "self-referential type")
				}
			}
			return visit(sol, append(path, t.Id), direct)
		case *types.Forall:
			return visit(t.Body, path, false)
		case *types.Exists:
			return visit(t.Body, path, false)
		case *types.Function:
			if err := visit(t.Arg, path, false); err != nil {
				return err
			}
			return visit(t.Result, path, false)
		case *types.Application:
			if err := visit(t.Fn, path, false); err != nil {
				return err
			}
			return visit(t.Arg, path, false)
		case *types.Record:
			return visitRowCycle(t.Row, path, visit)
		case *types.Variant:
			return visitRowCycle(t.Row, path, visit)
		}
		return nil
	}
	return visit(c.cells[start].solved, []types.UniVarId{start}, true)
}

func visitRowCycle(row types.Row, path []types.UniVarId, visit func(types.Type, []types.UniVarId, bool) error) error {
	var err error
	row.Labels.Range(func(_ string, field types.Type) bool {
		err = visit(field, path, false)
		return err == nil
	})
	if err != nil {
		return err
	}
	if row.Rest != nil {
		return visit(row.Rest, path, false)
	}
	return nil
}

// forallScope runs action one generalization level deeper, then turns the
// unification variables that were allocated inside the region and do not
// escape it into universal quantifiers around the result. This is what
// recovers polymorphism after inference monomorphizes.
func (c *Checker) forallScope(action func() (types.Type, error)) (types.Type, error) {
	start := types.UniVarId(len(c.cells))
	c.scope++
	out, err := action()
	c.scope--
	if err != nil {
		return nil, err
	}
	for id := types.UniVarId(len(c.cells)) - 1; id >= start; id-- {
		cl := &c.cells[id]
		if cl.solved != nil {
			continue // substituted below
		}
		if cl.scope > c.scope && c.occursUnsolved(out, id) {
			tv := c.freshTypeVar()
			c.overrideUniVar(id, &types.Var{Name: tv})
			out = &types.Forall{Var: tv, Body: out}
		}
		// still unsolved at the enclosing scope: it leaked out by
		// reference and is left alone
	}
	return c.applySolved(out), nil
}

// occursUnsolved reports whether the unsolved variable id occurs in t,
// looking through solutions.
func (c *Checker) occursUnsolved(t types.Type, id types.UniVarId) bool {
	found := false
	seen := make(map[types.UniVarId]bool)
	var walk func(types.Type)
	walk = func(t types.Type) {
		types.Walk(t, func(t types.Type) {
			u, ok := t.(*types.UniVar)
			if !ok || found || seen[u.Id] {
				return
			}
			seen[u.Id] = true
			if sol := c.cells[u.Id].solved; sol != nil {
				walk(sol)
				return
			}
			if u.Id == id {
				found = true
			}
		})
	}
	walk(t)
	return found
}

// applySolved substitutes every solved unification variable in t by its
// (recursively substituted) solution.
func (c *Checker) applySolved(t types.Type) types.Type {
	switch t := t.(type) {
	case *types.UniVar:
		out := types.Type(t)
		c.withUniVar(t, func(sol types.Type) { out = c.applySolved(sol) })
		return out
	case *types.Forall:
		return &types.Forall{Var: t.Var, Body: c.applySolved(t.Body)}
	case *types.Exists:
		return &types.Exists{Var: t.Var, Body: c.applySolved(t.Body)}
	case *types.Function:
		return &types.Function{Arg: c.applySolved(t.Arg), Result: c.applySolved(t.Result)}
	case *types.Application:
		return &types.Application{Fn: c.applySolved(t.Fn), Arg: c.applySolved(t.Arg)}
	case *types.Record:
		return &types.Record{Row: c.applySolvedRow(types.RecordRow, t.Row)}
	case *types.Variant:
		return &types.Variant{Row: c.applySolvedRow(types.VariantRow, t.Row)}
	default:
		return t
	}
}

func (c *Checker) applySolvedRow(kind types.RowKind, row types.Row) types.Row {
	b := types.NewTypeMapBuilder()
	row.Labels.Range(func(label string, field types.Type) bool {
		b.Set(label, c.applySolved(field))
		return true
	})
	out := types.Row{Labels: b.Build()}
	if row.Rest != nil {
		out.Rest = c.applySolved(row.Rest)
	}
	return flattenRow(kind, out)
}

// flattenRow merges an extension chain whose links are already substituted
// rows of the same kind, so fully-solved rows read flat.
func flattenRow(kind types.RowKind, row types.Row) types.Row {
	labels := row.Labels.Builder()
	rest := row.Rest
	for rest != nil {
		inner, ok := kind.RowOf(rest)
		if !ok {
			break
		}
		labels.Merge(inner.Labels)
		rest = inner.Rest
	}
	return types.Row{Labels: labels.Build(), Rest: rest}
}
