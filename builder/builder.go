// Package builder provides the parsing glue that turns configuration
// strings into typed values: defaults for booleans, integers and string
// sets, regexp compilation, and name resolution against the mapping
// vocabularies and the type handler registries. It is the one layer allowed
// to fail on malformed settings; everything it hands out is validated.
package builder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-mapper-cache/mapping"
	"github.com/goliatone/go-mapper-cache/typehandler"
)

// Error reports a malformed configuration value.
type Error struct {
	Setting string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("builder: invalid setting %q: %v", e.Setting, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// BaseBuilder resolves configuration strings against explicitly provided
// registries. Registries are passed in at construction rather than read
// from package state, so two builders can carry independent vocabularies.
type BaseBuilder struct {
	handlers *typehandler.Registry
	aliases  *typehandler.AliasRegistry
}

// New creates a builder over the given registries. Nil registries default
// to freshly initialized ones.
func New(handlers *typehandler.Registry, aliases *typehandler.AliasRegistry) *BaseBuilder {
	if handlers == nil {
		handlers = typehandler.NewRegistry()
	}
	if aliases == nil {
		aliases = typehandler.NewAliasRegistry()
	}
	return &BaseBuilder{handlers: handlers, aliases: aliases}
}

// BooleanValueOf parses value, or returns fallback when value is empty.
func (b *BaseBuilder) BooleanValueOf(value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, &Error{Setting: value, Cause: err}
	}
	return parsed, nil
}

// IntegerValueOf parses value, or returns fallback when value is empty.
func (b *BaseBuilder) IntegerValueOf(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, &Error{Setting: value, Cause: err}
	}
	return parsed, nil
}

// StringSetValueOf splits a comma-separated value into a set, using
// fallback when value is empty.
func (b *BaseBuilder) StringSetValueOf(value, fallback string) map[string]struct{} {
	if value == "" {
		value = fallback
	}
	set := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		set[part] = struct{}{}
	}
	return set
}

// ParseExpression compiles the pattern, or fallback when pattern is empty.
func (b *BaseBuilder) ParseExpression(pattern, fallback string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = fallback
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &Error{Setting: pattern, Cause: err}
	}
	return re, nil
}

// ResolveResultSetType resolves a result set type name. Empty names resolve
// to no value without error.
func (b *BaseBuilder) ResolveResultSetType(name string) (mapping.ResultSetType, bool, error) {
	if name == "" {
		return 0, false, nil
	}
	t, err := mapping.ParseResultSetType(name)
	if err != nil {
		return 0, false, &Error{Setting: name, Cause: err}
	}
	return t, true, nil
}

// ResolveParameterMode resolves a parameter mode name. Empty names resolve
// to no value without error.
func (b *BaseBuilder) ResolveParameterMode(name string) (mapping.ParameterMode, bool, error) {
	if name == "" {
		return 0, false, nil
	}
	m, err := mapping.ParseParameterMode(name)
	if err != nil {
		return 0, false, &Error{Setting: name, Cause: err}
	}
	return m, true, nil
}

// ResolveAutoMappingBehavior resolves an auto-mapping behavior name. Empty
// names resolve to the fallback.
func (b *BaseBuilder) ResolveAutoMappingBehavior(name string, fallback mapping.AutoMappingBehavior) (mapping.AutoMappingBehavior, error) {
	if name == "" {
		return fallback, nil
	}
	behavior, err := mapping.ParseAutoMappingBehavior(name)
	if err != nil {
		return fallback, &Error{Setting: name, Cause: err}
	}
	return behavior, nil
}

// ResolveAlias maps an alias to its canonical type name.
func (b *BaseBuilder) ResolveAlias(alias string) string {
	return b.aliases.Resolve(alias)
}

// ResolveTypeHandler resolves the handler for an alias or canonical name.
// Empty names resolve to no handler without error.
func (b *BaseBuilder) ResolveTypeHandler(name string) (typehandler.TypeHandler, error) {
	if name == "" {
		return nil, nil
	}
	handler, ok := b.handlers.Lookup(b.aliases.Resolve(name))
	if !ok {
		return nil, &Error{Setting: name, Cause: fmt.Errorf("no type handler registered")}
	}
	return handler, nil
}
