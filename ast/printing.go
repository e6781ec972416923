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

import (
	"strconv"
	"strings"
)

// ExprString returns a string representation of an expression.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e, false)
	return sb.String()
}

// PatternString returns a string representation of a pattern.
func PatternString(p Pattern) string {
	var sb strings.Builder
	patternString(&sb, p, false)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr, simple bool) {
	switch e := e.(type) {
	case *Var:
		sb.WriteString(e.Name.String())

	case *App:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, e.Fn, false)
		sb.WriteByte(' ')
		exprString(sb, e.Arg, true)
		if simple {
			sb.WriteByte(')')
		}

	case *Lambda:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteByte('\\')
		patternString(sb, e.Param, true)
		sb.WriteString(" -> ")
		exprString(sb, e.Body, false)
		if simple {
			sb.WriteByte(')')
		}

	case *Let:
		sb.WriteString("let ")
		bindingString(sb, e.Binding)
		sb.WriteString(" in ")
		exprString(sb, e.Body, false)

	case *Annot:
		sb.WriteByte('(')
		exprString(sb, e.Expr, false)
		sb.WriteString(" : …)")

	case *If:
		sb.WriteString("if ")
		exprString(sb, e.Cond, false)
		sb.WriteString(" then ")
		exprString(sb, e.Then, false)
		sb.WriteString(" else ")
		exprString(sb, e.Else, false)

	case *Case:
		sb.WriteString("case ")
		exprString(sb, e.Scrutinee, false)
		sb.WriteString(" of ")
		for i, arm := range e.Arms {
			if i > 0 {
				sb.WriteString(" | ")
			}
			patternString(sb, arm.Pattern, false)
			sb.WriteString(" -> ")
			exprString(sb, arm.Body, false)
		}

	case *Match:
		sb.WriteString("match ")
		for i, arm := range e.Arms {
			if i > 0 {
				sb.WriteString(" | ")
			}
			for j, p := range arm.Patterns {
				if j > 0 {
					sb.WriteByte(' ')
				}
				patternString(sb, p, true)
			}
			sb.WriteString(" -> ")
			exprString(sb, arm.Body, false)
		}

	case *List:
		sb.WriteByte('[')
		for i, item := range e.Items {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, item, false)
		}
		sb.WriteByte(']')

	case *RecordExpr:
		sb.WriteByte('{')
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Label.String())
			sb.WriteString(" = ")
			exprString(sb, f.Value, false)
		}
		sb.WriteByte('}')

	case *VariantExpr:
		sb.WriteByte('\'')
		sb.WriteString(e.Tag.String())

	case *RecordLens:
		for _, n := range e.Path {
			sb.WriteByte('.')
			sb.WriteString(n.String())
		}

	case *IntLit:
		sb.WriteString(strconv.FormatInt(e.Value, 10))

	case *TextLit:
		sb.WriteString(strconv.Quote(e.Value))

	case *CharLit:
		sb.WriteString(strconv.QuoteRune(e.Value))
	}
}

func patternString(sb *strings.Builder, p Pattern, simple bool) {
	switch p := p.(type) {
	case *PVar:
		sb.WriteString(p.Name.String())

	case *PWildcard:
		sb.WriteByte('_')

	case *PCon:
		if simple && len(p.Args) > 0 {
			sb.WriteByte('(')
		}
		sb.WriteString(p.Con.String())
		for _, arg := range p.Args {
			sb.WriteByte(' ')
			patternString(sb, arg, true)
		}
		if simple && len(p.Args) > 0 {
			sb.WriteByte(')')
		}

	case *PVariant:
		if simple && p.Arg != nil {
			sb.WriteByte('(')
		}
		sb.WriteByte('\'')
		sb.WriteString(p.Tag.String())
		if p.Arg != nil {
			sb.WriteByte(' ')
			patternString(sb, p.Arg, true)
		}
		if simple && p.Arg != nil {
			sb.WriteByte(')')
		}

	case *PRecord:
		sb.WriteByte('{')
		for i, f := range p.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Label.String())
			sb.WriteString(" = ")
			patternString(sb, f.Pattern, false)
		}
		sb.WriteByte('}')

	case *PIntLit:
		sb.WriteString(strconv.FormatInt(p.Value, 10))

	case *PTextLit:
		sb.WriteString(strconv.Quote(p.Value))

	case *PCharLit:
		sb.WriteString(strconv.QuoteRune(p.Value))
	}
}

func bindingString(sb *strings.Builder, b Binding) {
	switch b := b.(type) {
	case *FuncBinding:
		sb.WriteString(b.Name.String())
		for _, p := range b.Params {
			sb.WriteByte(' ')
			patternString(sb, p, true)
		}
		sb.WriteString(" = ")
		exprString(sb, b.Body, false)
	case *PatternBinding:
		patternString(sb, b.Pattern, false)
		sb.WriteString(" = ")
		exprString(sb, b.Body, false)
	}
}
