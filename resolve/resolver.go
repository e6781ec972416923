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

// resolve groups name-resolved top-level declarations into
// mutually-recursive components, extracts fixity declarations into a
// precedence poset, and collects user signatures. Its Output drives the
// fixity resolver and the type checker.
package resolve

import (
	"slices"

	"github.com/samber/lo"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/diag"
	"github.com/wdamron/rowan/internal/util"
	"github.com/wdamron/rowan/poset"
	"github.com/wdamron/rowan/types"
)

// DeclId is a synthetic key identifying a post-resolution declaration. A
// declaration may define several names; they all share one DeclId.
type DeclId int

// Op identifies an infix operator in the precedence poset. The zero Op
// denotes function application, implicitly the tightest-binding operator.
type Op struct {
	Key   ast.NameKey
	Named bool
}

// Application is the pseudo-operator for function application.
var Application = Op{}

func OpFor(n ast.Name) Op { return Op{Key: n.Key(), Named: true} }

func (o Op) String() string {
	if !o.Named {
		return "application"
	}
	return o.Key.Text
}

// Output is everything later stages need from declaration resolution.
type Output struct {
	FixityMap    map[Op]ast.Fixity
	Priorities   *poset.Poset[Op]
	Ordered      [][]ast.Decl // SCCs in topological order, leaves first
	Declarations map[DeclId]ast.Decl
	NameOrigins  map[ast.NameKey]DeclId
	Signatures   map[ast.NameKey]types.Type
}

// Resolve indexes declarations, collects fixities and signatures, and orders
// value and type declarations into strongly connected components. A
// self-referential fixity declaration is fatal; precedence cycles and
// dangling signatures are reported through the sink and resolution
// continues.
func Resolve(decls []ast.Decl, sink diag.Sink) (*Output, error) {
	out := &Output{
		FixityMap:    make(map[Op]ast.Fixity),
		Priorities:   poset.New[Op](),
		Declarations: make(map[DeclId]ast.Decl),
		NameOrigins:  make(map[ast.NameKey]DeclId),
		Signatures:   make(map[ast.NameKey]types.Type),
	}
	out.Priorities.EqClass(Application)

	var indexed []ast.Decl // indexed by DeclId
	sigs := make(map[ast.NameKey]*ast.SigDecl)

	for _, d := range decls {
		switch d := d.(type) {
		case *ast.FixityDecl:
			if err := resolveFixity(out, d, sink); err != nil {
				return out, err
			}

		case *ast.ValueDecl:
			id := DeclId(len(indexed))
			indexed = append(indexed, d)
			out.Declarations[id] = d
			for _, n := range d.Defined() {
				out.NameOrigins[n.Key()] = id
			}

		case *ast.TypeDecl:
			id := DeclId(len(indexed))
			indexed = append(indexed, d)
			out.Declarations[id] = d
			out.NameOrigins[d.Name.Key()] = id
			for _, con := range d.Constructors {
				out.NameOrigins[con.Name.Key()] = id
			}

		case *ast.SigDecl:
			out.Signatures[d.Name.Key()] = types.FromExpr(d.Type)
			sigs[d.Name.Key()] = d
		}
	}

	for _, key := range orderedSigKeys(sigs) {
		sig := sigs[key]
		id, ok := out.NameOrigins[key]
		_, isValue := out.Declarations[id].(*ast.ValueDecl)
		if !ok || !isValue {
			sink.NonFatal(diag.Warningf(sig.Loc, "dangling signature for %s: no matching binding", sig.Name))
		}
	}

	graph := util.NewGraph(len(indexed))
	for id, d := range indexed {
		for _, ref := range declRefs(d) {
			if origin, ok := out.NameOrigins[ref.Key()]; ok && int(origin) != id {
				graph.AddEdge(int(origin), id)
			}
		}
	}

	out.Ordered = lo.Map(graph.SCC(), func(scc []int, _ int) []ast.Decl {
		slices.Sort(scc)
		return lo.Map(scc, func(id int, _ int) ast.Decl { return indexed[id] })
	})

	return out, nil
}

func resolveFixity(out *Output, d *ast.FixityDecl, sink diag.Sink) error {
	op := OpFor(d.Op)
	out.FixityMap[op] = d.Fixity

	relatedToApplication := false
	for _, rel := range d.Relations {
		other := Application
		if !rel.Application {
			other = OpFor(rel.Other)
		} else {
			relatedToApplication = true
		}

		var cycle *poset.Cycle[Op]
		var err error
		switch rel.Ord {
		case ast.Above:
			// op binds tighter: other < op
			cycle, err = out.Priorities.AddRelation(other, op, poset.LT)
		case ast.Below:
			cycle, err = out.Priorities.AddRelation(op, other, poset.LT)
		case ast.SameAs:
			cycle, err = out.Priorities.AddRelation(op, other, poset.EQ)
		}
		if err != nil {
			report := diag.Errorf(d.Loc, "fixity declaration for (%s) relates the operator to itself", d.Op)
			sink.Fatal(report)
			return report
		}
		if cycle != nil {
			sink.NonFatal(diag.Warningf(d.Loc, "precedence cycle between (%s) and (%s); relation ignored", cycle.Left, cycle.Right))
		}
	}

	if !relatedToApplication {
		// Operators bind looser than application unless stated otherwise.
		// The edge is dropped silently when an explicit chain already places
		// the operator above application.
		_, _ = out.Priorities.AddRelation(op, Application, poset.LT)
	}
	return nil
}

// orderedSigKeys returns signature names in source order for deterministic
// diagnostics.
func orderedSigKeys(sigs map[ast.NameKey]*ast.SigDecl) []ast.NameKey {
	keys := lo.Keys(sigs)
	slices.SortFunc(keys, func(a, b ast.NameKey) int {
		la, lb := sigs[a].Loc, sigs[b].Loc
		if la.Line != lb.Line {
			return la.Line - lb.Line
		}
		return la.Col - lb.Col
	})
	return keys
}
