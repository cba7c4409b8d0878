/*
File   : lattice/evaluator/registry.go
*/

package evaluator

import (
	"github.com/monkeylang/lattice/environment"
	"github.com/monkeylang/lattice/object"
)

// Kind tags what sort of heap entity a registry entry is. Integer,
// Boolean, and Null are value types and are never registered: only
// Environments, Functions, and ReturnValues carry heap payloads worth
// tracking for collection.
type Kind string

const (
	KindEnvironment Kind = "ENVIRONMENT"
	KindFunction    Kind = "FUNCTION"
	KindReturnValue Kind = "RETURN_VALUE"
)

// registry is the evaluator's ledger of every heap entity it has
// allocated, keyed by pointer identity (a Go pointer is already a stable,
// comparable address, so it serves directly as the map key). An entry
// stays live until a garbage collection pass finds it unreachable from
// the root environment.
type registry struct {
	entries map[any]Kind
}

func newRegistry() *registry {
	return &registry{entries: make(map[any]Kind)}
}

func (r *registry) register(entity any, kind Kind) {
	r.entries[entity] = kind
}

// size reports how many heap entities are currently registered, the
// quantity the GC-soundness tests assert against.
func (r *registry) size() int {
	return len(r.entries)
}

// sweep frees every registered entity absent from reachable and removes it
// from the ledger. Freeing drops a heap entity's internal references so
// nothing downstream can observe stale state through a dangling alias,
// even though Go's own runtime collector would eventually reclaim the
// memory regardless. The point of this ledger is to make the
// interpreter's own reachability discipline observable, independent of
// the host runtime's GC.
func (r *registry) sweep(reachable map[any]bool) {
	for entity, kind := range r.entries {
		if reachable[entity] {
			continue
		}
		free(entity, kind)
		delete(r.entries, entity)
	}
}

// clear frees every registered entity unconditionally, used at evaluator
// teardown (Close).
func (r *registry) clear() {
	for entity, kind := range r.entries {
		free(entity, kind)
		delete(r.entries, entity)
	}
}

func free(entity any, kind Kind) {
	switch kind {
	case KindEnvironment:
		if env, ok := entity.(*environment.Environment); ok {
			env.Clear()
		}
	case KindFunction:
		if fn, ok := entity.(*object.Function); ok {
			fn.Parameters = nil
			fn.Body = nil
			fn.Env = nil
		}
	case KindReturnValue:
		if rv, ok := entity.(*object.ReturnValue); ok {
			rv.Value = nil
		}
	}
}

// trace walks every heap entity reachable from root, the mark phase of the
// mark-and-sweep pass. It follows Environment.outer chains and Function
// closures' captured environments, which is what makes a closure/
// environment reference cycle collectible: a Function discovered while
// marking an Environment in turn marks its own captured Environment, and
// revisiting an already-marked address is a no-op, so the recursion always
// terminates even on a cycle.
func trace(root *environment.Environment) map[any]bool {
	reachable := make(map[any]bool)
	markEnv(root, reachable)
	return reachable
}

func markEnv(env *environment.Environment, reachable map[any]bool) {
	if env == nil || reachable[env] {
		return
	}
	reachable[env] = true

	for _, obj := range env.All() {
		markObject(obj, reachable)
	}

	if outer := env.Outer(); outer != nil {
		if outerEnv, ok := outer.(*environment.Environment); ok {
			markEnv(outerEnv, reachable)
		}
	}
}

func markObject(obj object.Object, reachable map[any]bool) {
	switch o := obj.(type) {
	case *object.Function:
		if reachable[o] {
			return
		}
		reachable[o] = true
		if envImpl, ok := o.Env.(*environment.Environment); ok {
			markEnv(envImpl, reachable)
		}
	case *object.ReturnValue:
		if reachable[o] {
			return
		}
		reachable[o] = true
		if o.Value != nil {
			markObject(o.Value, reachable)
		}
	}
}
