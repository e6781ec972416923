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

package types

import (
	"strconv"
	"strings"

	"github.com/wdamron/rowan/ast"
)

// TypeString returns a string representation of a Type. Quantified variables
// are renamed to 'a', 'b', … in order of binder appearance, so α-equivalent
// types print identically.
func TypeString(t Type) string {
	p := &typePrinter{bound: make(map[ast.NameKey]string)}
	p.typeString(t, false)
	return p.sb.String()
}

type typePrinter struct {
	bound map[ast.NameKey]string
	count int
	sb    strings.Builder
}

func (p *typePrinter) nextName() string {
	i := p.count
	p.count++
	if i < 26 {
		return string(rune('a' + i))
	}
	return string(rune('a'+i%26)) + strconv.Itoa(i/26)
}

func (p *typePrinter) bind(v ast.Name) string {
	name := p.nextName()
	p.bound[v.Key()] = name
	return name
}

func (p *typePrinter) typeString(t Type, simple bool) {
	switch t := t.(type) {
	case *Name:
		p.sb.WriteString(t.Name.Text)

	case *Var:
		if name, ok := p.bound[t.Name.Key()]; ok {
			p.sb.WriteString(name)
			return
		}
		p.sb.WriteString(t.Name.Text)

	case *Skolem:
		p.sb.WriteByte('^')
		p.sb.WriteString(t.Name.Text)
		p.sb.WriteString(strconv.Itoa(t.Id))

	case *UniVar:
		p.sb.WriteString("'_")
		p.sb.WriteString(strconv.Itoa(int(t.Id)))

	case *Forall:
		if simple {
			p.sb.WriteByte('(')
		}
		p.sb.WriteString("forall ")
		p.sb.WriteString(p.bind(t.Var))
		p.sb.WriteString(". ")
		p.typeString(t.Body, false)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Exists:
		if simple {
			p.sb.WriteByte('(')
		}
		p.sb.WriteString("exists ")
		p.sb.WriteString(p.bind(t.Var))
		p.sb.WriteString(". ")
		p.typeString(t.Body, false)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Function:
		if simple {
			p.sb.WriteByte('(')
		}
		p.typeString(t.Arg, true)
		p.sb.WriteString(" -> ")
		p.typeString(t.Result, false)
		if simple {
			p.sb.WriteByte(')')
		}

	case *Application:
		p.typeString(t.Fn, true)
		p.sb.WriteByte(' ')
		p.appArgString(t.Arg)

	case *Record:
		p.sb.WriteByte('{')
		p.rowString(t.Row, "")
		p.sb.WriteByte('}')

	case *Variant:
		p.sb.WriteByte('[')
		p.rowString(t.Row, "'")
		p.sb.WriteByte(']')
	}
}

func (p *typePrinter) appArgString(t Type) {
	switch t.(type) {
	case *Application, *Function, *Forall, *Exists:
		p.sb.WriteByte('(')
		p.typeString(t, false)
		p.sb.WriteByte(')')
	default:
		p.typeString(t, false)
	}
}

func (p *typePrinter) rowString(row Row, labelPrefix string) {
	i := 0
	row.Labels.Range(func(label string, field Type) bool {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(labelPrefix)
		p.sb.WriteString(label)
		p.sb.WriteString(" : ")
		p.typeString(field, false)
		i++
		return true
	})
	if row.Rest != nil {
		p.sb.WriteString(" | ")
		p.typeString(row.Rest, false)
	}
}
