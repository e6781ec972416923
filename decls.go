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
	"github.com/wdamron/rowan/resolve"
	"github.com/wdamron/rowan/types"
)

// Check processes ordered declaration groups and produces the typed
// environment. The first error within a group aborts that group; checking
// continues with the next group so a single mistake does not hide downstream
// problems.
func (c *Checker) Check(out *resolve.Output) *Env {
	env := NewEnv()
	for _, group := range out.Ordered {
		c.checkGroup(group, out, env)
	}
	return env
}

func (c *Checker) checkGroup(group []ast.Decl, out *resolve.Output, env *Env) {
	placeholders := make(map[ast.NameKey]*types.UniVar)

	// Signatures are installed before any body is inferred, making order
	// inside a group immaterial. Unsigned names get placeholder variables so
	// mutually recursive references stay monomorphic within the group.
	for _, d := range group {
		switch d := d.(type) {
		case *ast.TypeDecl:
			c.registerTypeDecl(d)
		case *ast.ValueDecl:
			for _, n := range d.Defined() {
				if sig, ok := out.Signatures[n.Key()]; ok {
					c.bind(n, sig)
					continue
				}
				u := c.freshUniVar()
				placeholders[n.Key()] = u
				c.bind(n, u)
			}
		}
	}

	for _, d := range group {
		d, ok := d.(*ast.ValueDecl)
		if !ok {
			continue
		}
		if err := c.checkValueDecl(d, out, placeholders); err != nil {
			c.fatal(d.Loc, err)
			return
		}
	}

	for _, d := range group {
		switch d := d.(type) {
		case *ast.ValueDecl:
			for _, n := range d.Defined() {
				norm, err := c.normalise(c.sigs[n.Key()])
				if err != nil {
					c.fatal(n.Loc, err)
					return
				}
				c.bind(n, norm)
				env.add(n, norm)
			}
		case *ast.TypeDecl:
			for _, con := range d.Constructors {
				env.add(con.Name, c.sigs[con.Name.Key()])
			}
		}
	}
}

func (c *Checker) fatal(loc ast.Loc, err error) {
	if r, ok := err.(*diag.Report); ok {
		if r.Loc == (ast.Loc{}) {
			r.Loc = loc
		}
		c.sink.Fatal(r)
		return
	}
	c.sink.Fatal(diag.Errorf(loc, "%s", err))
}

func (c *Checker) checkValueDecl(d *ast.ValueDecl, out *resolve.Output, placeholders map[ast.NameKey]*types.UniVar) error {
	switch b := d.Binding.(type) {
	case *ast.FuncBinding:
		if sig, ok := out.Signatures[b.Name.Key()]; ok {
			_, err := c.forallScope(func() (types.Type, error) {
				return sig, c.check(lambdaize(b, d.Loc), sig)
			})
			return err
		}
		ty, err := c.inferFuncBinding(b)
		if err != nil {
			return err
		}
		return errAt(d.Loc, c.subtype(ty, placeholders[b.Name.Key()]))

	case *ast.PatternBinding:
		ty, err := c.forallScope(func() (types.Type, error) {
			return c.infer(b.Body)
		})
		if err != nil {
			return err
		}
		if err := c.checkPattern(b.Pattern, ty); err != nil {
			return err
		}
		// Pattern checking rebinds the names it matched; reconcile with the
		// signatures and placeholders earlier group members may have
		// referenced.
		for _, n := range ast.Bound(b.Pattern) {
			bound := c.sigs[n.Key()]
			if sig, ok := out.Signatures[n.Key()]; ok {
				if err := errAt(n.Loc, c.subtype(bound, sig)); err != nil {
					return err
				}
				c.bind(n, sig)
				continue
			}
			u, ok := placeholders[n.Key()]
			if !ok || c.equivalent(bound, u) {
				continue
			}
			if err := errAt(n.Loc, c.subtype(bound, u)); err != nil {
				return err
			}
			c.bind(n, bound)
		}
		return nil
	}
	return nil
}

// inferFuncBinding infers the type of a function binding's parameters and
// body under a fresh generalization scope. Parameter bindings do not leak.
func (c *Checker) inferFuncBinding(b *ast.FuncBinding) (types.Type, error) {
	return c.forallScope(func() (types.Type, error) {
		return c.scoped(func() (types.Type, error) {
			argTys := make([]types.Type, len(b.Params))
			for i, p := range b.Params {
				argTy, err := c.inferPattern(p)
				if err != nil {
					return nil, err
				}
				argTys[i] = argTy
			}
			bodyTy, err := c.infer(b.Body)
			if err != nil {
				return nil, err
			}
			for i := len(argTys) - 1; i >= 0; i-- {
				bodyTy = &types.Function{Arg: argTys[i], Result: bodyTy}
			}
			return bodyTy, nil
		})
	})
}

// inferLetBinding types a local binding introduced by a let expression.
// Bindings are generalized through forallScope, so local definitions may be
// used polymorphically within the body.
func (c *Checker) inferLetBinding(b ast.Binding) error {
	switch b := b.(type) {
	case *ast.FuncBinding:
		ty, err := c.inferFuncBinding(b)
		if err != nil {
			return err
		}
		c.bind(b.Name, ty)
		return nil
	case *ast.PatternBinding:
		ty, err := c.forallScope(func() (types.Type, error) {
			return c.infer(b.Body)
		})
		if err != nil {
			return err
		}
		return c.checkPattern(b.Pattern, ty)
	}
	return nil
}

// lambdaize folds a function binding into the nested lambda it abbreviates,
// so signed bindings can be checked against their declared type.
func lambdaize(b *ast.FuncBinding, loc ast.Loc) ast.Expr {
	expr := b.Body
	for i := len(b.Params) - 1; i >= 0; i-- {
		expr = &ast.Lambda{Param: b.Params[i], Body: expr, Loc: loc}
	}
	return expr
}

// registerTypeDecl installs the type of every constructor of a declared data
// type. A constructor's type is its argument arrows ending in the declared
// type applied to its variables, quantified over those variables.
func (c *Checker) registerTypeDecl(d *ast.TypeDecl) {
	var resultTy types.Type = &types.Name{Name: d.Name}
	for _, v := range d.Vars {
		resultTy = &types.Application{Fn: resultTy, Arg: &types.Var{Name: v}}
	}
	for _, con := range d.Constructors {
		ty := resultTy
		for i := len(con.Args) - 1; i >= 0; i-- {
			ty = &types.Function{Arg: types.FromExpr(con.Args[i]), Result: ty}
		}
		for i := len(d.Vars) - 1; i >= 0; i-- {
			ty = &types.Forall{Var: d.Vars[i], Body: ty}
		}
		c.bind(con.Name, ty)
	}
}
