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

package resolve

// Free-name collection for declaration-level dependency edges. Names are
// globally unique after resolution, so a locally-bound name can never alias
// a top-level one; collecting every referenced name and filtering through
// NameOrigins is sufficient.

import (
	"github.com/wdamron/rowan/ast"
)

func declRefs(d ast.Decl) []ast.Name {
	var refs []ast.Name
	add := func(n ast.Name) { refs = append(refs, n) }
	switch d := d.(type) {
	case *ast.ValueDecl:
		bindingRefs(d.Binding, add)
	case *ast.TypeDecl:
		for _, con := range d.Constructors {
			for _, arg := range con.Args {
				typeExprRefs(arg, add)
			}
		}
	}
	return refs
}

func bindingRefs(b ast.Binding, add func(ast.Name)) {
	switch b := b.(type) {
	case *ast.FuncBinding:
		for _, p := range b.Params {
			patternRefs(p, add)
		}
		exprRefs(b.Body, add)
	case *ast.PatternBinding:
		patternRefs(b.Pattern, add)
		exprRefs(b.Body, add)
	}
}

func exprRefs(e ast.Expr, add func(ast.Name)) {
	switch e := e.(type) {
	case *ast.Var:
		add(e.Name)
	case *ast.App:
		exprRefs(e.Fn, add)
		exprRefs(e.Arg, add)
	case *ast.Lambda:
		patternRefs(e.Param, add)
		exprRefs(e.Body, add)
	case *ast.Let:
		bindingRefs(e.Binding, add)
		exprRefs(e.Body, add)
	case *ast.Annot:
		exprRefs(e.Expr, add)
		typeExprRefs(e.Type, add)
	case *ast.If:
		exprRefs(e.Cond, add)
		exprRefs(e.Then, add)
		exprRefs(e.Else, add)
	case *ast.Case:
		exprRefs(e.Scrutinee, add)
		for _, arm := range e.Arms {
			patternRefs(arm.Pattern, add)
			exprRefs(arm.Body, add)
		}
	case *ast.Match:
		for _, arm := range e.Arms {
			for _, p := range arm.Patterns {
				patternRefs(p, add)
			}
			exprRefs(arm.Body, add)
		}
	case *ast.List:
		for _, item := range e.Items {
			exprRefs(item, add)
		}
	case *ast.RecordExpr:
		for _, f := range e.Fields {
			exprRefs(f.Value, add)
		}
	}
}

func patternRefs(p ast.Pattern, add func(ast.Name)) {
	switch p := p.(type) {
	case *ast.PCon:
		add(p.Con)
		for _, arg := range p.Args {
			patternRefs(arg, add)
		}
	case *ast.PVariant:
		if p.Arg != nil {
			patternRefs(p.Arg, add)
		}
	case *ast.PRecord:
		for _, f := range p.Fields {
			patternRefs(f.Pattern, add)
		}
	}
}

func typeExprRefs(te ast.TypeExpr, add func(ast.Name)) {
	switch te := te.(type) {
	case *ast.TEName:
		add(te.Name)
	case *ast.TEForall:
		typeExprRefs(te.Body, add)
	case *ast.TEExists:
		typeExprRefs(te.Body, add)
	case *ast.TEFunc:
		typeExprRefs(te.Arg, add)
		typeExprRefs(te.Result, add)
	case *ast.TEApp:
		typeExprRefs(te.Fn, add)
		typeExprRefs(te.Arg, add)
	case *ast.TERecord:
		for _, f := range te.Fields {
			typeExprRefs(f.Type, add)
		}
		if te.Rest != nil {
			typeExprRefs(te.Rest, add)
		}
	case *ast.TEVariant:
		for _, f := range te.Fields {
			typeExprRefs(f.Type, add)
		}
		if te.Rest != nil {
			typeExprRefs(te.Rest, add)
		}
	}
}
