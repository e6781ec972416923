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

// subtype asserts that a is usable where b is expected, solving unification
// variables as a side effect.
func (c *Checker) subtype(a, b types.Type) error {
	if c.equivalent(a, b) {
		return nil
	}
	if u, ok := c.unsolved(a); ok {
		return c.solveUniVar(u, b)
	}
	if u, ok := c.unsolved(b); ok {
		return c.solveUniVar(u, a)
	}

	am, err := c.mono(In, a)
	if err != nil {
		return err
	}
	bm, err := c.mono(Out, b)
	if err != nil {
		return err
	}

	switch at := am.(type) {
	case *types.UniVar:
		return c.solveUniVar(at, bm)

	case *types.Name:
		if bt, ok := bm.(*types.Name); ok {
			if at.Name.Eq(bt.Name) {
				return nil
			}
			for _, rel := range c.builtins.SubtypeRelations {
				if rel[0].Eq(at.Name) && rel[1].Eq(bt.Name) {
					return nil
				}
			}
		}

	case *types.Skolem:
		if bt, ok := bm.(*types.Skolem); ok && at.Id == bt.Id {
			return nil
		}

	case *types.Function:
		if bt, ok := bm.(*types.Function); ok {
			if err := c.subtype(bt.Arg, at.Arg); err != nil {
				return err
			}
			return c.subtype(at.Result, bt.Result)
		}

	case *types.Application:
		if bt, ok := bm.(*types.Application); ok {
			// Invariant in both positions; no kind variance analysis.
			if err := c.invariant(at.Fn, bt.Fn); err != nil {
				return err
			}
			return c.invariant(at.Arg, bt.Arg)
		}

	case *types.Record:
		return c.subtypeRows(types.RecordRow, at.Row, bm)

	case *types.Variant:
		return c.subtypeRows(types.VariantRow, at.Row, bm)
	}

	if bu, ok := c.unsolved(bm); ok {
		return c.solveUniVar(bu, am)
	}
	return diag.Errorf(ast.Loc{}, "%s is not a subtype of %s", types.TypeString(c.applySolved(am)), types.TypeString(c.applySolved(bm)))
}

func (c *Checker) invariant(a, b types.Type) error {
	if err := c.subtype(a, b); err != nil {
		return err
	}
	return c.subtype(b, a)
}

// subtypeRows checks every label of the left row against the right side via
// deepLookup; the left extension, if any, is checked against the right side
// minus the left labels.
func (c *Checker) subtypeRows(kind types.RowKind, lhs types.Row, bm types.Type) error {
	compressed, err := c.compress(kind, lhs)
	if err != nil {
		return err
	}
	var firstErr error
	compressed.Labels.Range(func(label string, fa types.Type) bool {
		fb, found, err := c.deepLookup(kind, label, bm)
		if err != nil {
			firstErr = err
			return false
		}
		if !found {
			if kind == types.RecordRow {
				firstErr = diag.Errorf(ast.Loc{}, "record type %s does not contain field %s", types.TypeString(c.applySolved(bm)), label)
			} else {
				firstErr = diag.Errorf(ast.Loc{}, "variant type %s does not contain tag '%s", types.TypeString(c.applySolved(bm)), label)
			}
			return false
		}
		firstErr = c.subtype(fa, fb)
		return firstErr == nil
	})
	if firstErr != nil {
		return firstErr
	}
	if compressed.Rest == nil {
		return nil
	}
	if brow, ok := kind.RowOf(c.resolveShallow(bm)); ok {
		rest, err := c.diff(kind, brow, compressed.Labels)
		if err != nil {
			return err
		}
		return c.subtype(compressed.Rest, kind.WithRow(rest))
	}
	return c.subtype(compressed.Rest, bm)
}

// supertype computes a least common supertype of a and b; it is the join
// used to unify the branches of if, case, match, and list items. Fresh
// unification variables introduced while matching are generalized by the
// surrounding forallScope.
func (c *Checker) supertype(a, b types.Type) (types.Type, error) {
	return c.forallScope(func() (types.Type, error) {
		return c.join(a, b)
	})
}

func (c *Checker) join(a, b types.Type) (types.Type, error) {
	if c.equivalent(a, b) {
		return a, nil
	}
	if u, ok := c.unsolved(a); ok {
		if err := c.solveUniVar(u, b); err != nil {
			return nil, err
		}
		return b, nil
	}
	if u, ok := c.unsolved(b); ok {
		if err := c.solveUniVar(u, a); err != nil {
			return nil, err
		}
		return a, nil
	}

	am, err := c.mono(Inv, a)
	if err != nil {
		return nil, err
	}
	bm, err := c.mono(Inv, b)
	if err != nil {
		return nil, err
	}

	switch at := am.(type) {
	case *types.UniVar:
		if err := c.solveUniVar(at, bm); err != nil {
			return nil, err
		}
		return bm, nil

	case *types.Name:
		if bt, ok := bm.(*types.Name); ok {
			return c.joinNames(at, bt)
		}

	case *types.Skolem:
		if bt, ok := bm.(*types.Skolem); ok && at.Id == bt.Id {
			return at, nil
		}

	case *types.Function:
		if bt, ok := bm.(*types.Function); ok {
			// Best-effort join: arrows are supertyped covariantly in both
			// positions.
			arg, err := c.join(at.Arg, bt.Arg)
			if err != nil {
				return nil, err
			}
			result, err := c.join(at.Result, bt.Result)
			if err != nil {
				return nil, err
			}
			return &types.Function{Arg: arg, Result: result}, nil
		}

	case *types.Application:
		if bt, ok := bm.(*types.Application); ok {
			fn, err := c.join(at.Fn, bt.Fn)
			if err != nil {
				return nil, err
			}
			arg, err := c.join(at.Arg, bt.Arg)
			if err != nil {
				return nil, err
			}
			return &types.Application{Fn: fn, Arg: arg}, nil
		}

	case *types.Record:
		if bt, ok := bm.(*types.Record); ok {
			row, err := c.joinRows(types.RecordRow, at.Row, bt.Row)
			if err != nil {
				return nil, err
			}
			return &types.Record{Row: row}, nil
		}

	case *types.Variant:
		if bt, ok := bm.(*types.Variant); ok {
			row, err := c.joinRows(types.VariantRow, at.Row, bt.Row)
			if err != nil {
				return nil, err
			}
			return &types.Variant{Row: row}, nil
		}
	}

	if bu, ok := c.unsolved(bm); ok {
		if err := c.solveUniVar(bu, am); err != nil {
			return nil, err
		}
		return am, nil
	}
	return nil, diag.Errorf(ast.Loc{}, "cannot unify %s and %s", types.TypeString(c.applySolved(am)), types.TypeString(c.applySolved(bm)))
}

// joinNames finds a common upper bound of two named types through the
// configured subtype relations. The relation is not transitively closed, so
// only direct bounds are considered; ambiguity is a failure to unify.
func (c *Checker) joinNames(a, b *types.Name) (types.Type, error) {
	if a.Name.Eq(b.Name) {
		return a, nil
	}
	for _, rel := range c.builtins.SubtypeRelations {
		if rel[0].Eq(a.Name) && rel[1].Eq(b.Name) {
			return b, nil
		}
		if rel[0].Eq(b.Name) && rel[1].Eq(a.Name) {
			return a, nil
		}
	}
	var upper *ast.Name
	for _, relA := range c.builtins.SubtypeRelations {
		if !relA[0].Eq(a.Name) {
			continue
		}
		for _, relB := range c.builtins.SubtypeRelations {
			if !relB[0].Eq(b.Name) || !relA[1].Eq(relB[1]) {
				continue
			}
			if upper != nil && !upper.Eq(relA[1]) {
				return nil, diag.Errorf(ast.Loc{}, "cannot unify %s and %s", a.Name, b.Name)
			}
			bound := relA[1]
			upper = &bound
		}
	}
	if upper != nil {
		return &types.Name{Name: *upper}, nil
	}
	return nil, diag.Errorf(ast.Loc{}, "cannot unify %s and %s", a.Name, b.Name)
}

func (c *Checker) joinRows(kind types.RowKind, a, b types.Row) (types.Row, error) {
	ca, err := c.compress(kind, a)
	if err != nil {
		return types.Row{}, err
	}
	cb, err := c.compress(kind, b)
	if err != nil {
		return types.Row{}, err
	}
	labels := types.NewTypeMapBuilder()
	var joinErr error
	ca.Labels.Range(func(label string, fa types.Type) bool {
		fb, ok := cb.Labels.Get(label)
		if !ok {
			labels.Set(label, fa)
			return true
		}
		joined, err := c.join(fa, fb)
		if err != nil {
			joinErr = err
			return false
		}
		labels.Set(label, joined)
		return true
	})
	if joinErr != nil {
		return types.Row{}, joinErr
	}
	cb.Labels.Range(func(label string, fb types.Type) bool {
		if _, ok := ca.Labels.Get(label); !ok {
			labels.Set(label, fb)
		}
		return true
	})
	row := types.Row{Labels: labels.Build()}
	switch {
	case ca.Rest != nil && cb.Rest != nil:
		rest, err := c.join(ca.Rest, cb.Rest)
		if err != nil {
			return types.Row{}, err
		}
		row.Rest = rest
	case ca.Rest != nil:
		row.Rest = ca.Rest
	case cb.Rest != nil:
		row.Rest = cb.Rest
	}
	return row, nil
}

// resolveShallow follows solved unification variables at the top of t.
func (c *Checker) resolveShallow(t types.Type) types.Type {
	for {
		u, ok := t.(*types.UniVar)
		if !ok {
			return t
		}
		sol := c.solution(u.Id)
		if sol == nil {
			return t
		}
		t = sol
	}
}

// unsolved reports whether t resolves to an unsolved unification variable.
func (c *Checker) unsolved(t types.Type) (*types.UniVar, bool) {
	u, ok := c.resolveShallow(t).(*types.UniVar)
	return u, ok
}

// equivalent is structural equality of types, resolving solved unification
// variables and comparing rows in compressed form. Quantified types compare
// equal only when their binders match exactly.
func (c *Checker) equivalent(a, b types.Type) bool {
	a, b = c.resolveShallow(a), c.resolveShallow(b)
	switch at := a.(type) {
	case *types.Name:
		bt, ok := b.(*types.Name)
		return ok && at.Name.Eq(bt.Name)
	case *types.Var:
		bt, ok := b.(*types.Var)
		return ok && at.Name.Eq(bt.Name)
	case *types.Skolem:
		bt, ok := b.(*types.Skolem)
		return ok && at.Id == bt.Id
	case *types.UniVar:
		bt, ok := b.(*types.UniVar)
		return ok && at.Id == bt.Id
	case *types.Forall:
		bt, ok := b.(*types.Forall)
		return ok && at.Var.Eq(bt.Var) && c.equivalent(at.Body, bt.Body)
	case *types.Exists:
		bt, ok := b.(*types.Exists)
		return ok && at.Var.Eq(bt.Var) && c.equivalent(at.Body, bt.Body)
	case *types.Function:
		bt, ok := b.(*types.Function)
		return ok && c.equivalent(at.Arg, bt.Arg) && c.equivalent(at.Result, bt.Result)
	case *types.Application:
		bt, ok := b.(*types.Application)
		return ok && c.equivalent(at.Fn, bt.Fn) && c.equivalent(at.Arg, bt.Arg)
	case *types.Record:
		bt, ok := b.(*types.Record)
		return ok && c.equivalentRows(types.RecordRow, at.Row, bt.Row)
	case *types.Variant:
		bt, ok := b.(*types.Variant)
		return ok && c.equivalentRows(types.VariantRow, at.Row, bt.Row)
	}
	return false
}

func (c *Checker) equivalentRows(kind types.RowKind, a, b types.Row) bool {
	ca, err := c.compress(kind, a)
	if err != nil {
		return false
	}
	cb, err := c.compress(kind, b)
	if err != nil {
		return false
	}
	if ca.Labels.Len() != cb.Labels.Len() {
		return false
	}
	equal := true
	ca.Labels.Range(func(label string, fa types.Type) bool {
		fb, ok := cb.Labels.Get(label)
		if !ok || !c.equivalent(fa, fb) {
			equal = false
		}
		return equal
	})
	if !equal {
		return false
	}
	switch {
	case ca.Rest == nil && cb.Rest == nil:
		return true
	case ca.Rest == nil || cb.Rest == nil:
		return false
	default:
		return c.equivalent(ca.Rest, cb.Rest)
	}
}
