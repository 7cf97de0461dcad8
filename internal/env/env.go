// Package env implements the lexical-scope chain and destructuring bind
// described in spec §4.C: an environment is a Cons whose head is the
// innermost scope (a Dict from symbol name to value) and whose tail is the
// enclosing environment (Cons or Nil).
package env

import (
	"github.com/cwbudde/lispcore/internal/heap"
	"github.com/cwbudde/lispcore/internal/object"
)

// Create wraps a fresh empty scope around base. base must be Nil or a
// previously-created environment Cons.
func Create(h *heap.Heap, base *object.Object) (*object.Object, error) {
	scope, err := h.NewDict()
	if err != nil {
		return nil, err
	}
	return h.NewCons(scope, base)
}

// Define inserts name->value into the innermost scope of env.
func Define(h *heap.Heap, env *object.Object, name string, value *object.Object) error {
	scope := innermost(env)
	key, err := h.NewSymbol(name)
	if err != nil {
		return err
	}
	scope.Dict.Put(key, value)
	return nil
}

// DefineSymbol is Define with an already-allocated Symbol key, avoiding a
// redundant allocation when the caller already holds one (e.g. the bind
// target itself).
func DefineSymbol(env *object.Object, symbol, value *object.Object) {
	innermost(env).Dict.Put(symbol, value)
}

func innermost(env *object.Object) *object.Object {
	if object.IsNil(env) || env.Kind != object.KindCons {
		panic("env: malformed environment chain")
	}
	return env.First
}

// Find walks scopes from innermost outward and returns the first binding of
// name, or reports a miss.
func Find(env *object.Object, name string) (*object.Object, bool) {
	for !object.IsNil(env) {
		scope := env.First
		for _, k := range scopeKeys(scope) {
			if k.Str == name {
				v, _ := scope.Dict.Get(k)
				return v, true
			}
		}
		env = env.Rest
	}
	return nil, false
}

func scopeKeys(scope *object.Object) []*object.Object {
	if scope == nil || scope.Dict == nil {
		return nil
	}
	keys, _ := scope.Dict.Entries()
	return keys
}
