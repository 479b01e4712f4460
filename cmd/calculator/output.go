package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/zephyrtronium/calculator"
)

// printer writes results either one per line as they arrive or as a table
// once all are in.
type printer struct {
	w    io.Writer
	echo bool
	tw   table.Writer
	n    int
}

func newPrinter(w io.Writer, echo, tab bool) *printer {
	p := printer{w: w, echo: echo}
	if tab {
		p.tw = table.NewWriter()
		p.tw.SetOutputMirror(w)
		p.tw.AppendHeader(table.Row{"#", "Expression", "Type", "Result"})
		p.tw.SetStyle(table.StyleLight)
	}
	return &p
}

// add writes or records one result. If err is not nil, it is the result.
func (p *printer) add(src string, v calculator.Value, err error) {
	p.n++
	src = strings.TrimSpace(src)
	res, typ := v.String(), v.Kind().String()
	if err != nil {
		res, typ = err.Error(), "error"
		if k := calculator.KindOf(err); k != calculator.NoError {
			typ = k.String()
		}
	}
	if p.tw != nil {
		p.tw.AppendRow(table.Row{p.n, src, typ, res})
		return
	}
	if p.echo {
		fmt.Fprintf(p.w, "%s : ", src)
	}
	fmt.Fprintln(p.w, res)
}

// flush renders the table, if there is one.
func (p *printer) flush() {
	if p.tw != nil {
		p.tw.Render()
	}
}
