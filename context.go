package calculator

import (
	"io"
	"slices"
	"strings"
)

// Context holds variables for evaluating expressions. Evaluating with a
// Context never modifies it, so several goroutines may evaluate with the same
// Context as long as none of them calls Set.
type Context struct {
	names Vars
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  Value
	}
	varsopt Vars
)

func (varopt) ctxOption()  {}
func (varsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val Value) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars Vars) ContextOption {
	return varsopt(vars)
}

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	var ctx Context
	return ctx.Clone(opts...)
}

// Eval evaluates an expression read to the end of src using the context's
// variables.
func (ctx *Context) Eval(src io.RuneScanner) (Value, error) {
	return Eval(src, ctx.names)
}

// EvalString is a shortcut to evaluate a string expression in the context.
func (ctx *Context) EvalString(src string) (Value, error) {
	return ctx.Eval(strings.NewReader(src))
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value Value) *Context {
	if ctx.names == nil {
		ctx.names = make(Vars)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable and whether it is defined.
func (ctx *Context) Lookup(name string) (Value, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Names returns the names of the variables in the context in sorted order.
func (ctx *Context) Names() []string {
	names := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Clone creates a copy of a context and applies options to it. Setting
// variables in the copy does not affect ctx.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		names: make(Vars, len(ctx.names)),
	}
	// Values are immutable, so copying them is enough.
	for name, val := range ctx.names {
		n.names[name] = val
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		default:
			panic("calculator: unknown option type")
		}
	}
	return &n
}
