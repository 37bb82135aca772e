package registry

import "fmt"

// BadTypeIdError reports a registry lookup for an id with no Def.
type BadTypeIdError struct {
	ID uint32
}

func (e *BadTypeIdError) Error() string {
	return fmt.Sprintf("registry: bad type id %d", e.ID)
}
