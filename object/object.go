/*
File   : lattice/object/object.go
*/

// Package object defines the runtime value variants produced by
// evaluation. Integer, Boolean, and Null are plain value types; Function
// and ReturnValue carry heap payloads that the evaluator registers and
// later reclaims through its mark-and-sweep collector.
package object

import (
	"bytes"
	"fmt"

	"github.com/monkeylang/lattice/ast"
)

// Type tags a concrete Object implementation.
type Type string

const (
	INTEGER_OBJ      Type = "INTEGER"
	BOOLEAN_OBJ      Type = "BOOLEAN"
	NULL_OBJ         Type = "NULL"
	RETURN_VALUE_OBJ Type = "RETURN_VALUE"
	FUNCTION_OBJ     Type = "FUNCTION"
)

// Object is the interface every runtime value satisfies.
type Object interface {
	Type() Type
	Inspect() string
}

// Integer is a value-typed 64-bit signed integer.
type Integer struct {
	Value int64
}

func (i *Integer) Type() Type      { return INTEGER_OBJ }
func (i *Integer) Inspect() string { return fmt.Sprintf("%d", i.Value) }

// Boolean is a value-typed truth value. The evaluator only ever produces
// its two shared TRUE/FALSE instances, so pointer equality is sufficient
// for ==/!= comparisons of booleans where that shortcut is convenient.
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() Type      { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string { return fmt.Sprintf("%t", b.Value) }

// Null is the unique absence-of-value object.
type Null struct{}

func (n *Null) Type() Type      { return NULL_OBJ }
func (n *Null) Inspect() string { return "null" }

// ReturnValue wraps a value in flight back to the nearest enclosing
// function call (or the program, at top level). It is a heap entity: the
// evaluator allocates and registers one per `return`, and frees it once
// unreachable.
type ReturnValue struct {
	Value Object
}

func (rv *ReturnValue) Type() Type      { return RETURN_VALUE_OBJ }
func (rv *ReturnValue) Inspect() string { return rv.Value.Inspect() }

// Environment is implemented by the environment package; Function only
// needs enough of its surface to look up names and to be traced by the
// evaluator's collector, so it references the type through this narrow
// interface instead of importing the concrete struct (which itself will
// want to store *Function values, and an import cycle would follow).
type Environment interface {
	Get(name string) (Object, bool)
	Set(name string, val Object) Object
	Outer() Environment
	All() map[string]Object
}

// Function is a closure: a parameter list, a body, and the environment
// captured at the point of definition. It is a heap entity registered and
// traced by the evaluator's garbage collector, and it is the canonical way
// a reference cycle forms (a Function pointing at an Environment that in
// turn stores that very Function).
type Function struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        Environment
}

func (f *Function) Type() Type { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	// A Function the collector has already freed has no body left to
	// render; it can still be Inspected if it was the value of the very
	// statement whose sweep freed it.
	if f.Body == nil {
		return "fn"
	}
	var out bytes.Buffer
	out.WriteString("fn(")
	for i, p := range f.Parameters {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// Truthy reports whether obj counts as true in an if-condition: everything
// except Null and Boolean(false).
func Truthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Null:
		return false
	case *Boolean:
		return obj.Value
	default:
		return true
	}
}
