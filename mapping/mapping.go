// Package mapping holds the fixed vocabularies of the statement layer:
// result set scrolling modes, auto-mapping behavior, parameter modes and
// pagination bounds. These are plain enumerations with no behavior of their
// own; the builder package resolves their names from configuration.
package mapping

import "fmt"

// ResultSetType selects how a statement's result cursor may be scrolled.
type ResultSetType int

const (
	// ForwardOnly cursors scroll forward only.
	ForwardOnly ResultSetType = iota
	// ScrollInsensitive cursors scroll freely but do not observe
	// concurrent changes to the underlying data.
	ScrollInsensitive
	// ScrollSensitive cursors scroll freely and reflect concurrent
	// changes.
	ScrollSensitive
)

var resultSetTypeNames = map[ResultSetType]string{
	ForwardOnly:       "FORWARD_ONLY",
	ScrollInsensitive: "SCROLL_INSENSITIVE",
	ScrollSensitive:   "SCROLL_SENSITIVE",
}

func (t ResultSetType) String() string {
	if name, ok := resultSetTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ResultSetType(%d)", int(t))
}

// ParseResultSetType resolves a configuration name to a ResultSetType.
func ParseResultSetType(name string) (ResultSetType, error) {
	for t, n := range resultSetTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("mapping: unknown result set type %q", name)
}

// AutoMappingBehavior specifies if and how columns are automatically mapped
// to fields.
type AutoMappingBehavior int

const (
	// AutoMappingNone disables auto-mapping.
	AutoMappingNone AutoMappingBehavior = iota
	// AutoMappingPartial auto-maps results without nested result mappings.
	AutoMappingPartial
	// AutoMappingFull auto-maps results of any complexity.
	AutoMappingFull
)

var autoMappingNames = map[AutoMappingBehavior]string{
	AutoMappingNone:    "NONE",
	AutoMappingPartial: "PARTIAL",
	AutoMappingFull:    "FULL",
}

func (b AutoMappingBehavior) String() string {
	if name, ok := autoMappingNames[b]; ok {
		return name
	}
	return fmt.Sprintf("AutoMappingBehavior(%d)", int(b))
}

// ParseAutoMappingBehavior resolves a configuration name.
func ParseAutoMappingBehavior(name string) (AutoMappingBehavior, error) {
	for b, n := range autoMappingNames {
		if n == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("mapping: unknown auto-mapping behavior %q", name)
}

// ParameterMode declares the direction of a statement parameter.
type ParameterMode int

const (
	// ModeIn parameters carry values into the statement.
	ModeIn ParameterMode = iota
	// ModeOut parameters carry values out of the statement.
	ModeOut
	// ModeInOut parameters do both.
	ModeInOut
)

var parameterModeNames = map[ParameterMode]string{
	ModeIn:    "IN",
	ModeOut:   "OUT",
	ModeInOut: "INOUT",
}

func (m ParameterMode) String() string {
	if name, ok := parameterModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ParameterMode(%d)", int(m))
}

// ParseParameterMode resolves a configuration name.
func ParseParameterMode(name string) (ParameterMode, error) {
	for m, n := range parameterModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mapping: unknown parameter mode %q", name)
}

// RowBounds carries a statement's pagination window. It participates in
// cache keys so that different pages of the same query cache separately.
type RowBounds struct {
	Offset int
	Limit  int
}

// NoRowBounds is the unbounded window.
var NoRowBounds = RowBounds{Offset: 0, Limit: intMax}

const intMax = int(^uint(0) >> 1)
