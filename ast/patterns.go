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

// Pattern is the base for all patterns.
type Pattern interface {
	PatternName() string
	Location() Loc
}

var (
	_ Pattern = (*PVar)(nil)
	_ Pattern = (*PWildcard)(nil)
	_ Pattern = (*PCon)(nil)
	_ Pattern = (*PVariant)(nil)
	_ Pattern = (*PRecord)(nil)
	_ Pattern = (*PIntLit)(nil)
	_ Pattern = (*PTextLit)(nil)
	_ Pattern = (*PCharLit)(nil)
)

// Variable pattern: binds a name
type PVar struct {
	Name Name
	Loc  Loc
}

// Wildcard pattern: `_`
type PWildcard struct {
	Name Name // a wildcard-kind name carrying its index
	Loc  Loc
}

// Constructor pattern: `Cons x xs`
type PCon struct {
	Con  Name
	Args []Pattern
	Loc  Loc
}

// Variant pattern: `'Tag p`; Arg is nil for a bare tag.
type PVariant struct {
	Tag Name
	Arg Pattern
	Loc Loc
}

// Record pattern: `{ a = p, b = q }`; always matches an open row.
type PRecord struct {
	Fields []PField
	Loc    Loc
}

type PField struct {
	Label   Name
	Pattern Pattern
}

// Literal patterns
type PIntLit struct {
	Value int64
	Loc   Loc
}

type PTextLit struct {
	Value string
	Loc   Loc
}

type PCharLit struct {
	Value rune
	Loc   Loc
}

func (p *PVar) PatternName() string      { return "Var" }
func (p *PWildcard) PatternName() string { return "Wildcard" }
func (p *PCon) PatternName() string      { return "Con" }
func (p *PVariant) PatternName() string  { return "Variant" }
func (p *PRecord) PatternName() string   { return "Record" }
func (p *PIntLit) PatternName() string   { return "IntLit" }
func (p *PTextLit) PatternName() string  { return "TextLit" }
func (p *PCharLit) PatternName() string  { return "CharLit" }

func (p *PVar) Location() Loc      { return p.Loc }
func (p *PWildcard) Location() Loc { return p.Loc }
func (p *PCon) Location() Loc      { return p.Loc }
func (p *PVariant) Location() Loc  { return p.Loc }
func (p *PRecord) Location() Loc   { return p.Loc }
func (p *PIntLit) Location() Loc   { return p.Loc }
func (p *PTextLit) Location() Loc  { return p.Loc }
func (p *PCharLit) Location() Loc  { return p.Loc }

// Bound returns the names bound by a pattern, in source order.
func Bound(p Pattern) []Name {
	var names []Name
	var walk func(p Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case *PVar:
			names = append(names, p.Name)
		case *PCon:
			for _, arg := range p.Args {
				walk(arg)
			}
		case *PVariant:
			if p.Arg != nil {
				walk(p.Arg)
			}
		case *PRecord:
			for _, f := range p.Fields {
				walk(f.Pattern)
			}
		}
	}
	walk(p)
	return names
}
