// Package typehandler defines the contract for converting between Go values
// and database values, plus explicit registries for handlers and type
// aliases. Registries are plain objects handed to whoever needs them; there
// is deliberately no package-level registry state.
package typehandler

import (
	"database/sql/driver"
	"fmt"
)

// TypeHandler converts one value kind in both directions: Value binds a Go
// value as a statement parameter, Scan converts a scanned database value
// back into the Go representation.
type TypeHandler interface {
	Value(v any) (driver.Value, error)
	Scan(src any) (any, error)
}

// Registry maps type names to their handlers.
type Registry struct {
	handlers map[string]TypeHandler
}

// NewRegistry creates a registry preloaded with the built-in handlers.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]TypeHandler)}
	r.Register("string", StringHandler{})
	r.Register("int64", Int64Handler{})
	r.Register("bool", BoolHandler{})
	r.Register("time", TimeHandler{})
	return r
}

// Register binds a handler to a type name, replacing any previous binding.
func (r *Registry) Register(name string, h TypeHandler) {
	r.handlers[name] = h
}

// Lookup returns the handler registered for name.
func (r *Registry) Lookup(name string) (TypeHandler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// AliasRegistry resolves configuration aliases to canonical type names.
type AliasRegistry struct {
	aliases map[string]string
}

// NewAliasRegistry creates an empty alias registry.
func NewAliasRegistry() *AliasRegistry {
	return &AliasRegistry{aliases: make(map[string]string)}
}

// Register binds alias to a canonical name.
func (r *AliasRegistry) Register(alias, canonical string) {
	r.aliases[alias] = canonical
}

// Resolve maps alias to its canonical name. Unknown aliases resolve to
// themselves, so canonical names may be used directly.
func (r *AliasRegistry) Resolve(alias string) string {
	if canonical, ok := r.aliases[alias]; ok {
		return canonical
	}
	return alias
}

func conversionError(handler string, src any) error {
	return fmt.Errorf("typehandler: %s cannot convert %T", handler, src)
}
