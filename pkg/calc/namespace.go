// ABOUTME: Read-only registry of the constants and functions an expression may reference
// ABOUTME: Built once at package initialization and shared without locking

package calc

import (
	"fmt"
	"math"
	"sort"
)

// Function is a pure mapping from argument values to a result.
type Function struct {
	Name    string
	MinArgs int
	// MaxArgs is -1 for functions taking any number of arguments.
	MaxArgs int
	Call    func(args []Value) (Value, error)
}

// checkArity validates the argument count.
func (f *Function) checkArity(n int) error {
	switch {
	case f.MinArgs == f.MaxArgs && n != f.MinArgs:
		if f.MinArgs == 1 {
			return failf(InvalidType, "%s() takes exactly one argument (%d given)", f.Name, n)
		}
		return failf(InvalidType, "%s() takes exactly %d arguments (%d given)", f.Name, f.MinArgs, n)
	case f.MaxArgs < 0 && n < f.MinArgs:
		return failf(InvalidType, "%s() takes at least %d arguments (%d given)", f.Name, f.MinArgs, n)
	case n < f.MinArgs || (f.MaxArgs >= 0 && n > f.MaxArgs):
		return failf(InvalidType, "%s() takes from %d to %d arguments (%d given)", f.Name, f.MinArgs, f.MaxArgs, n)
	}
	return nil
}

// Entry is a namespace member: a constant or a function.
type Entry struct {
	Name     string
	Value    Value
	Function *Function
}

// IsFunction reports whether the entry is callable.
func (e Entry) IsFunction() bool {
	return e.Function != nil
}

// Namespace maps identifiers to entries. It is immutable once built.
type Namespace struct {
	entries map[string]Entry
	names   []string
}

// NewNamespace builds a namespace from constants and functions.
// It panics on duplicate names.
func NewNamespace(constants map[string]Value, functions []Function) *Namespace {
	ns := &Namespace{entries: make(map[string]Entry, len(constants)+len(functions))}
	for name, v := range constants {
		ns.add(Entry{Name: name, Value: v})
	}
	for i := range functions {
		fn := functions[i]
		ns.add(Entry{Name: fn.Name, Function: &fn})
	}
	sort.Strings(ns.names)
	return ns
}

func (ns *Namespace) add(e Entry) {
	if _, exists := ns.entries[e.Name]; exists {
		panic(fmt.Sprintf("calc: duplicate namespace entry %q", e.Name))
	}
	ns.entries[e.Name] = e
	ns.names = append(ns.names, e.Name)
}

// Lookup resolves a name.
func (ns *Namespace) Lookup(name string) (Entry, bool) {
	e, ok := ns.entries[name]
	return e, ok
}

// Names returns all entry names in sorted order.
func (ns *Namespace) Names() []string {
	out := make([]string, len(ns.names))
	copy(out, ns.names)
	return out
}

// Len returns the number of entries.
func (ns *Namespace) Len() int {
	return len(ns.entries)
}

var defaultNamespace = NewNamespace(
	map[string]Value{
		"pi":  Real(math.Pi),
		"e":   Real(math.E),
		"tau": Real(2 * math.Pi),
		"inf": Real(math.Inf(1)),
		"nan": Real(math.NaN()),
	},
	builtinFunctions(),
)

// DefaultNamespace returns the scientific namespace used by Evaluate.
func DefaultNamespace() *Namespace {
	return defaultNamespace
}
