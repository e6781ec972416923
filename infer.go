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

// Infer infers, generalizes, and normalises the type of a standalone
// expression. Local bindings do not leak into the checker's signatures.
func (c *Checker) Infer(e ast.Expr) (types.Type, error) {
	t, err := c.forallScope(func() (types.Type, error) {
		return c.scoped(func() (types.Type, error) {
			return c.infer(e)
		})
	})
	if err != nil {
		return nil, err
	}
	return c.normalise(t)
}

// infer synthesises a type for an expression.
func (c *Checker) infer(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Var:
		return c.lookupSig(e.Name), nil

	case *ast.App:
		fty, err := c.infer(e.Fn)
		if err != nil {
			return nil, err
		}
		return c.inferApp(fty, e.Arg, e.Loc)

	case *ast.Lambda:
		return c.scoped(func() (types.Type, error) {
			argTy, err := c.inferPattern(e.Param)
			if err != nil {
				return nil, err
			}
			bodyTy, err := c.infer(e.Body)
			if err != nil {
				return nil, err
			}
			return &types.Function{Arg: argTy, Result: bodyTy}, nil
		})

	case *ast.Let:
		return c.scoped(func() (types.Type, error) {
			if err := c.inferLetBinding(e.Binding); err != nil {
				return nil, err
			}
			return c.infer(e.Body)
		})

	case *ast.Annot:
		t := types.FromExpr(e.Type)
		if err := c.check(e.Expr, t); err != nil {
			return nil, errAt(e.Loc, err)
		}
		return t, nil

	case *ast.If:
		if err := c.check(e.Cond, c.boolType()); err != nil {
			return nil, errAt(e.Cond.Location(), err)
		}
		thenTy, err := c.infer(e.Then)
		if err != nil {
			return nil, err
		}
		elseTy, err := c.infer(e.Else)
		if err != nil {
			return nil, err
		}
		joined, err := c.supertype(thenTy, elseTy)
		return joined, errAt(e.Loc, err)

	case *ast.Case:
		scrutTy, err := c.infer(e.Scrutinee)
		if err != nil {
			return nil, err
		}
		var result types.Type
		for _, arm := range e.Arms {
			arm := arm
			bodyTy, err := c.scoped(func() (types.Type, error) {
				if err := c.checkPattern(arm.Pattern, scrutTy); err != nil {
					return nil, errAt(arm.Pattern.Location(), err)
				}
				return c.infer(arm.Body)
			})
			if err != nil {
				return nil, err
			}
			if result == nil {
				result = bodyTy
				continue
			}
			if result, err = c.supertype(result, bodyTy); err != nil {
				return nil, errAt(arm.Body.Location(), err)
			}
		}
		if result == nil {
			result = c.freshUniVar()
		}
		return result, nil

	case *ast.Match:
		return c.inferMatch(e)

	case *ast.List:
		var elemTy types.Type = c.freshUniVar()
		for _, item := range e.Items {
			itemTy, err := c.infer(item)
			if err != nil {
				return nil, err
			}
			if elemTy, err = c.supertype(elemTy, itemTy); err != nil {
				return nil, errAt(item.Location(), err)
			}
		}
		return &types.Application{Fn: c.listType(), Arg: elemTy}, nil

	case *ast.RecordExpr:
		labels := types.NewTypeMapBuilder()
		for _, f := range e.Fields {
			fieldTy, err := c.infer(f.Value)
			if err != nil {
				return nil, err
			}
			labels.Set(f.Label.Text, fieldTy)
		}
		return &types.Record{Row: types.Row{Labels: labels.Build()}}, nil

	case *ast.VariantExpr:
		payload := c.freshUniVar()
		rest := c.freshUniVar()
		variant := &types.Variant{Row: types.SingletonRow(e.Tag.Text, payload, rest)}
		return &types.Function{Arg: payload, Result: variant}, nil

	case *ast.RecordLens:
		return c.inferLens(e), nil

	case *ast.IntLit:
		if e.Value >= 0 {
			return c.natType(), nil
		}
		return c.intType(), nil

	case *ast.TextLit:
		return c.textType(), nil

	case *ast.CharLit:
		return c.charType(), nil
	}

	return nil, diag.Errorf(e.Location(), "unhandled expression (%s)", e.ExprName())
}

// inferApp types the application of a function type to an argument
// expression.
func (c *Checker) inferApp(fty types.Type, arg ast.Expr, loc ast.Loc) (types.Type, error) {
	m, err := c.mono(In, fty)
	if err != nil {
		return nil, errAt(loc, err)
	}
	switch m := m.(type) {
	case *types.Function:
		if err := c.check(arg, m.Arg); err != nil {
			return nil, errAt(arg.Location(), err)
		}
		return m.Result, nil
	case *types.UniVar:
		from, err := c.infer(arg)
		if err != nil {
			return nil, err
		}
		to := c.freshUniVar()
		if err := c.solveUniVar(m, &types.Function{Arg: from, Result: to}); err != nil {
			return nil, errAt(loc, err)
		}
		return to, nil
	default:
		return nil, diag.Errorf(loc, "%s is not a function type", types.TypeString(c.applySolved(m)))
	}
}

// inferMatch types an anonymous function by cases. Every arm must have the
// same arity.
func (c *Checker) inferMatch(e *ast.Match) (types.Type, error) {
	if len(e.Arms) == 0 {
		return nil, diag.Errorf(e.Loc, "match expression has no arms")
	}
	arity := len(e.Arms[0].Patterns)
	for _, arm := range e.Arms {
		if len(arm.Patterns) != arity {
			return nil, diag.Errorf(e.Loc, "wrong arity in match arms: expected %d patterns, found %d", arity, len(arm.Patterns))
		}
	}
	argTys := make([]types.Type, arity)
	for i := range argTys {
		argTys[i] = c.freshUniVar()
	}
	var result types.Type
	for _, arm := range e.Arms {
		arm := arm
		bodyTy, err := c.scoped(func() (types.Type, error) {
			for i, p := range arm.Patterns {
				if err := c.checkPattern(p, argTys[i]); err != nil {
					return nil, errAt(p.Location(), err)
				}
			}
			return c.infer(arm.Body)
		})
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = bodyTy
			continue
		}
		if result, err = c.supertype(result, bodyTy); err != nil {
			return nil, errAt(arm.Body.Location(), err)
		}
	}
	out := result
	for i := arity - 1; i >= 0; i-- {
		out = &types.Function{Arg: argTys[i], Result: out}
	}
	return out, nil
}

// inferLens fabricates the lens type for a field path: two nested record
// types sharing their row extensions, around fresh element variables for the
// source and target foci.
func (c *Checker) inferLens(e *ast.RecordLens) types.Type {
	focusA := c.freshUniVar()
	focusB := c.freshUniVar()
	var outerA, outerB types.Type = focusA, focusB
	for i := len(e.Path) - 1; i >= 0; i-- {
		rest := c.freshUniVar()
		outerA = &types.Record{Row: types.SingletonRow(e.Path[i].Text, outerA, rest)}
		outerB = &types.Record{Row: types.SingletonRow(e.Path[i].Text, outerB, rest)}
	}
	lens := &types.Application{Fn: c.lensType(), Arg: outerA}
	lens = &types.Application{Fn: lens, Arg: outerB}
	lens = &types.Application{Fn: lens, Arg: focusA}
	return &types.Application{Fn: lens, Arg: focusB}
}

// check verifies an expression against an expected type. The expected type
// is instantiated first so row-shaped expectations can drive row-shaped
// expressions.
func (c *Checker) check(e ast.Expr, expected types.Type) error {
	m, err := c.mono(Out, expected)
	if err != nil {
		return errAt(e.Location(), err)
	}

	switch e := e.(type) {
	case *ast.Lambda:
		if fn, ok := m.(*types.Function); ok {
			_, err := c.scoped(func() (types.Type, error) {
				if err := c.checkPattern(e.Param, fn.Arg); err != nil {
					return nil, errAt(e.Param.Location(), err)
				}
				return nil, c.check(e.Body, fn.Result)
			})
			return err
		}

	case *ast.Annot:
		annot := types.FromExpr(e.Type)
		if err := c.subtype(annot, m); err != nil {
			return errAt(e.Loc, err)
		}
		return c.check(e.Expr, annot)

	case *ast.List:
		if app, ok := m.(*types.Application); ok && c.equivalent(app.Fn, c.listType()) {
			for _, item := range e.Items {
				if err := c.check(item, app.Arg); err != nil {
					return err
				}
			}
			return nil
		}

	case *ast.RecordExpr:
		if expectedRec, ok := m.(*types.Record); ok {
			return c.checkRecord(e, expectedRec)
		}
	}

	if u, ok := c.unsolved(m); ok {
		inferred, err := c.infer(e)
		if err != nil {
			return err
		}
		// The expression may have solved the expectation while being
		// inferred.
		var solvedErr error
		solved := false
		c.withUniVar(u, func(types.Type) {
			solved = true
			solvedErr = c.subtype(inferred, u)
		})
		if solved {
			return errAt(e.Location(), solvedErr)
		}
		return errAt(e.Location(), c.solveUniVar(u, inferred))
	}

	inferred, err := c.infer(e)
	if err != nil {
		return err
	}
	return errAt(e.Location(), c.subtype(inferred, m))
}

// checkRecord walks the expected row first so a missing field is reported by
// the expectation's name, then drives any remaining literal fields through
// the expected row's extension.
func (c *Checker) checkRecord(e *ast.RecordExpr, expected *types.Record) error {
	fields := make(map[string]ast.Field, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Label.Text] = f
	}
	row, err := c.compress(types.RecordRow, expected.Row)
	if err != nil {
		return errAt(e.Loc, err)
	}
	var firstErr error
	row.Labels.Range(func(label string, fieldTy types.Type) bool {
		f, ok := fields[label]
		if !ok {
			firstErr = diag.Errorf(e.Loc, "record does not contain field %s", label)
			return false
		}
		delete(fields, label)
		firstErr = c.check(f.Value, fieldTy)
		return firstErr == nil
	})
	if firstErr != nil {
		return firstErr
	}
	for _, f := range e.Fields {
		remaining, ok := fields[f.Label.Text]
		if !ok {
			continue
		}
		if row.Rest == nil {
			return diag.Errorf(remaining.Label.Loc, "record type %s does not contain field %s", types.TypeString(c.applySolved(expected)), f.Label.Text)
		}
		fieldTy, found, err := c.deepLookup(types.RecordRow, f.Label.Text, row.Rest)
		if err != nil {
			return errAt(remaining.Label.Loc, err)
		}
		if !found {
			return diag.Errorf(remaining.Label.Loc, "record type %s does not contain field %s", types.TypeString(c.applySolved(expected)), f.Label.Text)
		}
		if err := c.check(f.Value, fieldTy); err != nil {
			return err
		}
	}
	return nil
}
