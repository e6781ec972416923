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
	"strconv"

	"github.com/wdamron/rowan/ast"
	"github.com/wdamron/rowan/diag"
	"github.com/wdamron/rowan/types"
)

// Builtins enumerates the names of built-in types and the configured direct
// subtype edges between named types. The relation is not transitively
// closed.
type Builtins struct {
	Bool ast.Name
	List ast.Name
	Int  ast.Name
	Nat  ast.Name
	Text ast.Name
	Char ast.Name
	Lens ast.Name

	SubtypeRelations [][2]ast.Name
}

// DefaultBuiltins returns the built-in names with the standard Nat <= Int
// subtype edge.
func DefaultBuiltins() Builtins {
	var loc ast.Loc
	b := Builtins{
		Bool: ast.Builtin(ast.BuiltinBool, loc),
		List: ast.Builtin(ast.BuiltinList, loc),
		Int:  ast.Builtin(ast.BuiltinInt, loc),
		Nat:  ast.Builtin(ast.BuiltinNat, loc),
		Text: ast.Builtin(ast.BuiltinText, loc),
		Char: ast.Builtin(ast.BuiltinChar, loc),
		Lens: ast.Builtin(ast.BuiltinLens, loc),
	}
	b.SubtypeRelations = [][2]ast.Name{{b.Nat, b.Int}}
	return b
}

// Scope is a generalization depth; forallScope regions increment it on entry
// and decrement on exit. Unification variables remember the scope they were
// created at, and may never escape upward.
type Scope int

// Checker holds the mutable inference state. A checker cannot be used
// concurrently.
type Checker struct {
	builtins Builtins
	names    *ast.NameSource
	sink     diag.Sink

	// sigs maps every known binding and constructor to its current type.
	sigs map[ast.NameKey]types.Type
	// cells is the unification-variable store, indexed by UniVarId.
	cells []cell
	scope Scope

	nextSkolem  int
	nextTypeVar int
}

// NewChecker creates a checker. The name source must be the one that
// produced the input AST's ids, so fresh names never collide.
func NewChecker(builtins Builtins, names *ast.NameSource, sink diag.Sink) *Checker {
	return &Checker{
		builtins: builtins,
		names:    names,
		sink:     sink,
		sigs:     make(map[ast.NameKey]types.Type),
	}
}

// scoped snapshots sigs before running action and restores it afterward on
// every exit path, giving nested bindings a place to live without building
// environment frames.
func (c *Checker) scoped(action func() (types.Type, error)) (types.Type, error) {
	saved := maps.Clone(c.sigs)
	defer func() { c.sigs = saved }()
	return action()
}

// lookupSig returns the known type of a name, or registers a fresh
// unification variable for it. Name resolution guarantees the name is
// reachable, so a missing entry is a forward reference within the current
// group.
func (c *Checker) lookupSig(n ast.Name) types.Type {
	if t, ok := c.sigs[n.Key()]; ok {
		return t
	}
	u := c.freshUniVar()
	c.sigs[n.Key()] = u
	return u
}

func (c *Checker) bind(n ast.Name, t types.Type) { c.sigs[n.Key()] = t }

func (c *Checker) freshSkolem(orig ast.Name) *types.Skolem {
	id := c.nextSkolem
	c.nextSkolem++
	return &types.Skolem{Name: orig, Id: id}
}

// freshTypeVar mints a new type-variable name: a, b, …, z, a1, b1, …
func (c *Checker) freshTypeVar() ast.Name {
	i := c.nextTypeVar
	c.nextTypeVar++
	text := string(rune('a' + i%26))
	if i >= 26 {
		text += strconv.Itoa(i / 26)
	}
	return c.names.Fresh(text, ast.Loc{})
}

func (c *Checker) boolType() types.Type { return &types.Name{Name: c.builtins.Bool} }
func (c *Checker) listType() types.Type { return &types.Name{Name: c.builtins.List} }
func (c *Checker) intType() types.Type  { return &types.Name{Name: c.builtins.Int} }
func (c *Checker) natType() types.Type  { return &types.Name{Name: c.builtins.Nat} }
func (c *Checker) textType() types.Type { return &types.Name{Name: c.builtins.Text} }
func (c *Checker) charType() types.Type { return &types.Name{Name: c.builtins.Char} }
func (c *Checker) lensType() types.Type { return &types.Name{Name: c.builtins.Lens} }

// errAt attaches a location to a report that does not have one yet.
func errAt(loc ast.Loc, err error) error {
	if r, ok := err.(*diag.Report); ok && r.Loc == (ast.Loc{}) {
		r.Loc = loc
	}
	return err
}

// Env is the inferred Name -> Type environment, iterable in insertion
// order.
type Env struct {
	names []ast.Name
	types map[ast.NameKey]types.Type
}

func NewEnv() *Env {
	return &Env{types: make(map[ast.NameKey]types.Type)}
}

func (e *Env) add(n ast.Name, t types.Type) {
	if _, ok := e.types[n.Key()]; !ok {
		e.names = append(e.names, n)
	}
	e.types[n.Key()] = t
}

func (e *Env) Lookup(n ast.Name) (types.Type, bool) {
	t, ok := e.types[n.Key()]
	return t, ok
}

func (e *Env) Len() int { return len(e.names) }

// Range iterates bindings in the order they were inferred.
func (e *Env) Range(f func(ast.Name, types.Type) bool) {
	for _, n := range e.names {
		if !f(n, e.types[n.Key()]) {
			return
		}
	}
}
