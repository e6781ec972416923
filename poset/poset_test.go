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

package poset

import (
	"reflect"
	"testing"
)

func TestOrderedRespectsEdges(t *testing.T) {
	p := New[string]()
	if _, err := p.AddRelation("+", "*", LT); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddRelation("*", "app", LT); err != nil {
		t.Fatal(err)
	}

	expect := [][]string{{"+"}, {"*"}, {"app"}}
	if got := p.Ordered(); !reflect.DeepEqual(got, expect) {
		t.Fatalf("ordered: %v", got)
	}
}

func TestEqClassMerging(t *testing.T) {
	p := New[string]()
	if _, err := p.AddRelation("+", "-", EQ); err != nil {
		t.Fatal(err)
	}
	if p.EqClass("+") != p.EqClass("-") {
		t.Fatalf("expected merged classes")
	}

	items := p.Items("-")
	if !reflect.DeepEqual(items, []string{"+", "-"}) {
		t.Fatalf("items: %v", items)
	}
}

func TestTiesAreGrouped(t *testing.T) {
	p := New[string]()
	if _, err := p.AddRelation("+", "app", LT); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddRelation("-", "app", LT); err != nil {
		t.Fatal(err)
	}

	expect := [][]string{{"+", "-"}, {"app"}}
	if got := p.Ordered(); !reflect.DeepEqual(got, expect) {
		t.Fatalf("ordered: %v", got)
	}
}

func TestConflictingRelationIsDropped(t *testing.T) {
	p := New[string]()
	if cycle, err := p.AddRelation("+", "*", LT); err != nil || cycle != nil {
		t.Fatalf("unexpected: %v %v", cycle, err)
	}
	cycle, err := p.AddRelation("*", "+", LT)
	if err != nil {
		t.Fatal(err)
	}
	if cycle == nil {
		t.Fatalf("expected a cycle warning")
	}

	// The original relation survives.
	expect := [][]string{{"+"}, {"*"}}
	if got := p.Ordered(); !reflect.DeepEqual(got, expect) {
		t.Fatalf("ordered: %v", got)
	}
}

func TestSelfRelationIsFatal(t *testing.T) {
	p := New[string]()
	if _, err := p.AddRelation("+", "+", GT); err == nil {
		t.Fatalf("expected self-relation error")
	}
}

func TestEqMergeConflictIsDropped(t *testing.T) {
	p := New[string]()
	if _, err := p.AddRelation("+", "*", LT); err != nil {
		t.Fatal(err)
	}
	cycle, err := p.AddRelation("+", "*", EQ)
	if err != nil {
		t.Fatal(err)
	}
	if cycle == nil {
		t.Fatalf("expected a cycle warning for contradictory merge")
	}
	if p.EqClass("+") == p.EqClass("*") {
		t.Fatalf("conflicting merge must be dropped")
	}
}
