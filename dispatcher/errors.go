package dispatcher

import "fmt"

// SpecVersionNotFoundError reports a lookup against a spec version with no
// registered metadata (spec.md §8 scenario 4).
type SpecVersionNotFoundError struct {
	SpecVersion uint32
}

func (e *SpecVersionNotFoundError) Error() string {
	return fmt.Sprintf("dispatcher: no metadata registered for spec version %d", e.SpecVersion)
}
