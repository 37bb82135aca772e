package typemarker

import "fmt"

// BadVariantIndexError reports an enum discriminant byte that does not
// match any declared variant.
type BadVariantIndexError struct {
	Index uint8
	Max   uint8
}

func (e *BadVariantIndexError) Error() string {
	return fmt.Sprintf("typemarker: bad variant index %d (max %d)", e.Index, e.Max)
}

// UnresolvedLookupError reports that a Lookup marker could not be resolved
// because no resolver was supplied.
type UnresolvedLookupError struct {
	Name string
}

func (e *UnresolvedLookupError) Error() string {
	return fmt.Sprintf("typemarker: unresolved lookup %q: no resolver supplied", e.Name)
}

// UnknownGenericError reports a Generic marker whose outer name the walker
// does not know how to decode.
type UnknownGenericError struct {
	Name string
}

func (e *UnknownGenericError) Error() string {
	return fmt.Sprintf("typemarker: unknown generic %q", e.Name)
}

// BadCompactWidthError reports a Compact<T> value that does not fit the
// declared integer width T.
type BadCompactWidthError struct {
	Kind  PrimitiveKind
	Value string
}

func (e *BadCompactWidthError) Error() string {
	return fmt.Sprintf("typemarker: compact value %s does not fit %s", e.Value, e.Kind)
}
