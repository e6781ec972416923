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

// inferPattern synthesises a type for a pattern and binds the pattern's
// variables into the checker's signatures.
func (c *Checker) inferPattern(p ast.Pattern) (types.Type, error) {
	switch p := p.(type) {
	case *ast.PVar:
		u := c.freshUniVar()
		c.bind(p.Name, u)
		return u, nil

	case *ast.PWildcard:
		return c.freshUniVar(), nil

	case *ast.PCon:
		return c.inferConPattern(p)

	case *ast.PVariant:
		var payload types.Type
		if p.Arg != nil {
			var err error
			if payload, err = c.inferPattern(p.Arg); err != nil {
				return nil, err
			}
		} else {
			payload = &types.Record{Row: types.ClosedRow()}
		}
		rest := c.freshUniVar()
		return &types.Variant{Row: types.SingletonRow(p.Tag.Text, payload, rest)}, nil

	case *ast.PRecord:
		labels := types.NewTypeMapBuilder()
		for _, f := range p.Fields {
			fieldTy, err := c.inferPattern(f.Pattern)
			if err != nil {
				return nil, err
			}
			labels.Set(f.Label.Text, fieldTy)
		}
		return &types.Record{Row: types.Row{Labels: labels.Build(), Rest: c.freshUniVar()}}, nil

	case *ast.PIntLit:
		if p.Value >= 0 {
			return c.natType(), nil
		}
		return c.intType(), nil

	case *ast.PTextLit:
		return c.textType(), nil

	case *ast.PCharLit:
		return c.charType(), nil
	}

	return nil, diag.Errorf(p.Location(), "unhandled pattern (%s)", p.PatternName())
}

// inferConPattern looks up the constructor's type, walks off the arrows
// checking each argument sub-pattern, and returns the constructed type.
func (c *Checker) inferConPattern(p *ast.PCon) (types.Type, error) {
	conTy := c.lookupSig(p.Con)
	cur, err := c.mono(In, conTy)
	if err != nil {
		return nil, errAt(p.Loc, err)
	}
	for _, arg := range p.Args {
		fn, ok := cur.(*types.Function)
		if !ok {
			return nil, diag.Errorf(p.Loc, "wrong arity in constructor pattern: %s takes fewer arguments", p.Con)
		}
		if err := c.checkPattern(arg, fn.Arg); err != nil {
			return nil, err
		}
		if cur, err = c.mono(In, fn.Result); err != nil {
			return nil, errAt(p.Loc, err)
		}
	}
	if _, stillFn := cur.(*types.Function); stillFn {
		return nil, diag.Errorf(p.Loc, "wrong arity in constructor pattern: %s takes more arguments", p.Con)
	}
	return cur, nil
}

// checkPattern verifies a pattern against the type being matched, binding
// the pattern's variables.
func (c *Checker) checkPattern(p ast.Pattern, t types.Type) error {
	switch p := p.(type) {
	case *ast.PVar:
		c.bind(p.Name, t)
		return nil

	case *ast.PWildcard:
		return nil

	case *ast.PRecord:
		for _, f := range p.Fields {
			fieldTy, found, err := c.deepLookup(types.RecordRow, f.Label.Text, t)
			if err != nil {
				return errAt(f.Label.Loc, err)
			}
			if !found {
				return diag.Errorf(f.Label.Loc, "record type %s does not contain field %s", types.TypeString(c.applySolved(t)), f.Label.Text)
			}
			if err := c.checkPattern(f.Pattern, fieldTy); err != nil {
				return err
			}
		}
		return nil

	default:
		pt, err := c.inferPattern(p)
		if err != nil {
			return err
		}
		return errAt(p.Location(), c.subtype(t, pt))
	}
}
