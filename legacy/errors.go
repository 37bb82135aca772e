package legacy

import (
	"fmt"
	"strings"
)

// TypeNotFoundError reports that resolve exhausted every step of the
// resolution order (spec.md §4.3) without finding name.
type TypeNotFoundError struct {
	Chain  string
	Spec   uint32
	Pallet string
	Name   string
}

func (e *TypeNotFoundError) Error() string {
	return fmt.Sprintf("legacy: type %q not found (chain=%s spec=%d pallet=%s)",
		e.Name, e.Chain, e.Spec, e.Pallet)
}

// CyclicTypeError reports an alias chain that revisits a name it has
// already seen, named by Path in visit order.
type CyclicTypeError struct {
	Path []string
}

func (e *CyclicTypeError) Error() string {
	return fmt.Sprintf("legacy: cyclic type alias: %s", strings.Join(e.Path, " -> "))
}

// ParseError reports a malformed type-definition document.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("legacy: parse error: %s", e.Detail)
}
