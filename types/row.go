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

// Row is an unordered finite mapping from labels to types, plus an optional
// extension standing for further unknown fields or tags. A closed row has a
// nil Rest. An extension is typically a UniVar or Var; a UniVar extension may
// later be solved to another row, forming a chain which the checker's
// compress operation normalises.
type Row struct {
	Labels TypeMap
	Rest   Type
}

// ClosedRow builds a row with no extension from label/type pairs.
func ClosedRow(fields ...RowField) Row {
	return OpenRow(nil, fields...)
}

// OpenRow builds a row with the given extension from label/type pairs.
func OpenRow(rest Type, fields ...RowField) Row {
	b := NewTypeMapBuilder()
	for _, f := range fields {
		b.Set(f.Label, f.Type)
	}
	return Row{Labels: b.Build(), Rest: rest}
}

type RowField struct {
	Label string
	Type  Type
}

// SingletonRow builds an open row with a single field.
func SingletonRow(label string, t Type, rest Type) Row {
	return Row{Labels: SingletonTypeMap(label, t), Rest: rest}
}

// IsClosed reports whether the row has no extension.
func (r Row) IsClosed() bool { return r.Rest == nil }
