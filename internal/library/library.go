// Package library holds the function registry scripts compile
// against: the standard dialogue built-ins plus whatever the host
// registers. Codegen consults signatures; a dialogue runtime resolves
// CallFunc operands against the same registry.
package library

import (
	"fmt"
	"sort"

	"skein/internal/types"
	"skein/internal/value"
)

// Function describes one callable: its signature for compile-time
// checking and, when the function is pure, its implementation. Impl
// is nil for functions the host must bind at runtime, such as
// visited, which needs the host's variable storage.
type Function struct {
	Params   []types.Type
	Returns  types.Type
	Variadic bool
	Impl     func(args []value.Value) (value.Value, error)
}

// Type wraps the signature into the type system's function type.
func (f Function) Type() types.Type {
	return types.Function(types.FunctionType{
		Params:  f.Params,
		Returns: f.Returns,
	})
}

// CheckArity reports whether the function accepts n arguments.
func (f Function) CheckArity(n int) bool {
	if f.Variadic {
		return n >= len(f.Params)-1
	}
	return n == len(f.Params)
}

// Library is a name-keyed registry of functions.
type Library struct {
	funcs map[string]Function
}

// New returns an empty library.
func New() *Library {
	return &Library{funcs: make(map[string]Function)}
}

// Register adds a function, replacing any previous registration under
// the name. Hosts rely on replacement to bind their own storage-aware
// implementations over the standard stubs.
func (l *Library) Register(name string, f Function) {
	l.funcs[name] = f
}

// Lookup finds a function by name.
func (l *Library) Lookup(name string) (Function, bool) {
	f, ok := l.funcs[name]
	return f, ok
}

// Names returns every registered name in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered functions.
func (l *Library) Len() int { return len(l.funcs) }

// Merge copies every function from other into l, replacing existing
// names. A nil other is a no-op.
func (l *Library) Merge(other *Library) {
	if other == nil {
		return
	}
	for name, f := range other.funcs {
		l.funcs[name] = f
	}
}

// Clone returns an independent copy.
func (l *Library) Clone() *Library {
	out := New()
	out.Merge(l)
	return out
}

// Call invokes a registered implementation, checking arity first.
func (l *Library) Call(name string, args []value.Value) (value.Value, error) {
	f, ok := l.funcs[name]
	if !ok {
		return value.Value{}, fmt.Errorf("call %q: unknown function", name)
	}
	if f.Impl == nil {
		return value.Value{}, fmt.Errorf("call %q: no implementation bound", name)
	}
	if !f.CheckArity(len(args)) {
		return value.Value{}, fmt.Errorf("call %q: got %d argument(s), want %d",
			name, len(args), len(f.Params))
	}
	return f.Impl(args)
}
