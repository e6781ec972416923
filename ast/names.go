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

package ast

import "strconv"

// Loc is a source position, carried by every name for diagnostics.
type Loc struct {
	File string
	Line int
	Col  int
}

func (l Loc) String() string {
	if l.File == "" {
		return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col)
	}
	return l.File + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Col)
}

// NameKind distinguishes plain identifiers, wildcards, and built-in names.
type NameKind uint8

const (
	KindIdent NameKind = iota
	KindWildcard
	KindBuiltin
)

// BuiltinName identifies names the checker and interpreter need to reference
// without risking id collisions with user code.
type BuiltinName uint8

const (
	NotBuiltin BuiltinName = iota
	BuiltinBool
	BuiltinList
	BuiltinInt
	BuiltinNat
	BuiltinText
	BuiltinChar
	BuiltinLens
	BuiltinType
	BuiltinTrue
	BuiltinCons
	BuiltinNil
)

var builtinNames = [...]string{
	NotBuiltin:  "",
	BuiltinBool: "Bool",
	BuiltinList: "List",
	BuiltinInt:  "Int",
	BuiltinNat:  "Nat",
	BuiltinText: "Text",
	BuiltinChar: "Char",
	BuiltinLens: "Lens",
	BuiltinType: "Type",
	BuiltinTrue: "True",
	BuiltinCons: "Cons",
	BuiltinNil:  "Nil",
}

func (b BuiltinName) String() string { return builtinNames[b] }

// Name is a disambiguated identifier: a pair of source text and a
// process-unique id produced by a NameSource. Two names compare equal on
// everything except their Loc.
type Name struct {
	Text    string
	Id      int
	Kind    NameKind
	Builtin BuiltinName
	Index   int // position of a wildcard
	Loc     Loc
}

// NameKey is the comparable identity of a Name, with the Loc stripped.
// Maps keyed by names use NameKey so that equal names collide regardless of
// where they appeared.
type NameKey struct {
	Text    string
	Id      int
	Kind    NameKind
	Builtin BuiltinName
	Index   int
}

func (n Name) Key() NameKey {
	return NameKey{Text: n.Text, Id: n.Id, Kind: n.Kind, Builtin: n.Builtin, Index: n.Index}
}

func (n Name) Eq(other Name) bool { return n.Key() == other.Key() }

func (n Name) String() string {
	if n.Kind == KindWildcard {
		return "_" + strconv.Itoa(n.Index)
	}
	return n.Text
}

// Builtin constructs the distinguished name for a built-in.
func Builtin(b BuiltinName, loc Loc) Name {
	return Name{Text: b.String(), Kind: KindBuiltin, Builtin: b, Loc: loc}
}

// NameSource is a monotonic source of fresh ids. It is seeded before the
// checker runs and flushed after, so later pipeline stages can keep minting
// unique names.
type NameSource struct {
	next int
}

func NewNameSource(seed int) *NameSource { return &NameSource{next: seed} }

// Fresh mints a new unique name with the given text.
func (s *NameSource) Fresh(text string, loc Loc) Name {
	id := s.next
	s.next++
	return Name{Text: text, Id: id, Loc: loc}
}

// FreshWildcard mints a wildcard name carrying its positional index.
func (s *NameSource) FreshWildcard(index int, loc Loc) Name {
	id := s.next
	s.next++
	return Name{Text: "_", Id: id, Kind: KindWildcard, Index: index, Loc: loc}
}

// Flush returns the next unused id, for reseeding a downstream source.
func (s *NameSource) Flush() int { return s.next }
