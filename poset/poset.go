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

// poset maintains a partial order over equivalence classes of items: a
// union-find of classes with a directed acyclic less-than relation between
// class representatives. The operator-precedence resolver uses it to order
// infix operators.
package poset

import (
	"errors"
	"slices"
)

// Ord relates the two sides of AddRelation.
type Ord uint8

const (
	LT Ord = iota
	EQ
	GT
)

// Cycle describes a relation that was dropped because it would contradict
// the existing order between two classes. Non-fatal.
type Cycle[T comparable] struct {
	Left  T
	Right T
}

// ErrSelfRelation is returned when an item is related to itself.
var ErrSelfRelation = errors.New("item related to itself")

type Poset[T comparable] struct {
	parent  map[T]T
	members map[T][]T
	less    map[T]map[T]bool // rep -> reps strictly greater
	order   []T              // representatives in creation order
}

func New[T comparable]() *Poset[T] {
	return &Poset[T]{
		parent:  make(map[T]T),
		members: make(map[T][]T),
		less:    make(map[T]map[T]bool),
	}
}

// EqClass returns the representative of x's equivalence class, creating a
// singleton class if x is new.
func (p *Poset[T]) EqClass(x T) T {
	if _, ok := p.parent[x]; !ok {
		p.parent[x] = x
		p.members[x] = []T{x}
		p.less[x] = make(map[T]bool)
		p.order = append(p.order, x)
		return x
	}
	root := x
	for p.parent[root] != root {
		root = p.parent[root]
	}
	for p.parent[x] != root {
		p.parent[x], x = root, p.parent[x]
	}
	return root
}

// Items enumerates the members of a class, in insertion order.
func (p *Poset[T]) Items(class T) []T {
	return slices.Clone(p.members[p.EqClass(class)])
}

// AddRelation relates left and right. EQ merges their classes; LT/GT add a
// directed edge. A relation contradicting the existing order is dropped and
// reported as a Cycle. Relating an item to itself is an error.
func (p *Poset[T]) AddRelation(left, right T, ord Ord) (*Cycle[T], error) {
	if left == right {
		return nil, ErrSelfRelation
	}
	if ord == GT {
		left, right, ord = right, left, LT
	}
	l, r := p.EqClass(left), p.EqClass(right)

	if ord == EQ {
		if l == r {
			return nil, nil
		}
		if p.reachable(l, r) || p.reachable(r, l) {
			return &Cycle[T]{Left: l, Right: r}, nil
		}
		p.union(l, r)
		return nil, nil
	}

	// l < r
	if l == r || p.reachable(r, l) {
		return &Cycle[T]{Left: l, Right: r}, nil
	}
	p.less[l][r] = true
	return nil, nil
}

// Ordered returns classes in topological order, loosest first; classes with
// no order between them are grouped into one tie.
func (p *Poset[T]) Ordered() [][]T {
	indegree := make(map[T]int, len(p.order))
	for _, rep := range p.order {
		indegree[rep] += 0
		for succ := range p.less[rep] {
			indegree[succ]++
		}
	}
	remaining := slices.Clone(p.order)
	var out [][]T
	for len(remaining) > 0 {
		var tie []T
		var ready []T
		for _, rep := range remaining {
			if indegree[rep] == 0 {
				ready = append(ready, rep)
				tie = append(tie, p.members[rep]...)
			}
		}
		if len(ready) == 0 {
			// Remaining edges form a cycle that survived dropping; emit the
			// rest as a single tie rather than looping forever.
			for _, rep := range remaining {
				tie = append(tie, p.members[rep]...)
			}
			out = append(out, tie)
			break
		}
		for _, rep := range ready {
			for succ := range p.less[rep] {
				indegree[succ]--
			}
			delete(indegree, rep)
		}
		remaining = slices.DeleteFunc(remaining, func(rep T) bool {
			_, ok := indegree[rep]
			return !ok
		})
		out = append(out, tie)
	}
	return out
}

func (p *Poset[T]) reachable(from, to T) bool {
	if from == to {
		return true
	}
	seen := map[T]bool{from: true}
	stack := []T{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for succ := range p.less[cur] {
			succ = p.EqClass(succ)
			if succ == to {
				return true
			}
			if !seen[succ] {
				seen[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return false
}

func (p *Poset[T]) union(l, r T) {
	p.parent[r] = l
	p.members[l] = append(p.members[l], p.members[r]...)
	delete(p.members, r)
	for succ := range p.less[r] {
		if p.EqClass(succ) != l {
			p.less[l][succ] = true
		}
	}
	delete(p.less, r)
	// Redirect edges pointing at the absorbed representative.
	for _, rep := range p.order {
		if rep == r {
			continue
		}
		if set, ok := p.less[rep]; ok && set[r] {
			delete(set, r)
			if rep != l {
				set[l] = true
			}
		}
	}
	p.order = slices.DeleteFunc(p.order, func(rep T) bool { return rep == r })
}
