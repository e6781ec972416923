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

// diag carries structured reports from the resolver and the checker to a
// sink chosen by the caller. Reports reach the sink in the order they are
// produced and are not re-sorted by location; rendering is a convenience
// for drivers and tests.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/wdamron/rowan/ast"
)

type Severity uint8

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Report is a single diagnostic with a source location.
type Report struct {
	Severity Severity
	Message  string
	Loc      ast.Loc
	Notes    []string
}

// Report implements error so fatal reports can unwind through the checker.
func (r *Report) Error() string { return r.Message }

func Errorf(loc ast.Loc, format string, args ...any) *Report {
	return &Report{Severity: Error, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

func Warningf(loc ast.Loc, format string, args ...any) *Report {
	return &Report{Severity: Warning, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Sink receives reports as they are produced. NonFatal reports never stop
// processing; Fatal reports abort the group that produced them.
type Sink interface {
	NonFatal(*Report)
	Fatal(...*Report)
}

// Collector is a Sink that accumulates reports in order.
type Collector struct {
	Reports []*Report
	Fatals  int
}

var _ Sink = (*Collector)(nil)

func (c *Collector) NonFatal(r *Report) { c.Reports = append(c.Reports, r) }

func (c *Collector) Fatal(rs ...*Report) {
	c.Reports = append(c.Reports, rs...)
	c.Fatals += len(rs)
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	locColor     = color.New(color.Faint)
)

// Render writes reports in a human-readable form.
func Render(w io.Writer, reports []*Report) {
	for _, r := range reports {
		c := errorColor
		if r.Severity == Warning {
			c = warningColor
		}
		fmt.Fprintf(w, "%s %s: %s\n", locColor.Sprint(r.Loc.String()), c.Sprint(r.Severity.String()), r.Message)
		for _, note := range r.Notes {
			fmt.Fprintf(w, "  note: %s\n", note)
		}
	}
}
