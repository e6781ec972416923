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
	"github.com/wdamron/rowan/types"
)

// compress walks a row's extension chain, merging every extension that
// resolves to a row of the matching kind into a single flat row. The walk
// stops at a kind mismatch, a skolem, a concrete non-row type, or an
// unsolved unification variable. Fields already present take precedence over
// fields found deeper in the chain.
func (c *Checker) compress(kind types.RowKind, row types.Row) (types.Row, error) {
	labels := row.Labels.Builder()
	rest := row.Rest
	for rest != nil {
		m, err := c.mono(Inv, rest)
		if err != nil {
			return types.Row{}, err
		}
		inner, ok := kind.RowOf(m)
		if !ok {
			rest = m
			break
		}
		labels.Merge(inner.Labels)
		rest = inner.Rest
	}
	return types.Row{Labels: labels.Build(), Rest: rest}, nil
}

// deepLookup finds the type of a label within a row-typed type, following
// the extension chain. An unsolved unification variable encountered along
// the chain is solved to a fresh open singleton row containing the label, so
// lookups drive row inference.
func (c *Checker) deepLookup(kind types.RowKind, label string, t types.Type) (types.Type, bool, error) {
	m, err := c.mono(Inv, t)
	if err != nil {
		return nil, false, err
	}
	if row, ok := kind.RowOf(m); ok {
		if field, ok := row.Labels.Get(label); ok {
			return field, true, nil
		}
		if row.Rest == nil {
			return nil, false, nil
		}
		return c.deepLookup(kind, label, row.Rest)
	}
	if u, ok := m.(*types.UniVar); ok {
		field := c.freshUniVar()
		rest := c.freshUniVar()
		if err := c.solveUniVar(u, kind.WithRow(types.SingletonRow(label, field, rest))); err != nil {
			return nil, false, err
		}
		return field, true, nil
	}
	return nil, false, nil
}

// diff returns the compressed lhs row minus the given labels, preserving the
// extension.
func (c *Checker) diff(kind types.RowKind, lhs types.Row, labels types.TypeMap) (types.Row, error) {
	compressed, err := c.compress(kind, lhs)
	if err != nil {
		return types.Row{}, err
	}
	b := compressed.Labels.Builder()
	labels.Range(func(label string, _ types.Type) bool {
		b.Delete(label)
		return true
	})
	return types.Row{Labels: b.Build(), Rest: compressed.Rest}, nil
}
