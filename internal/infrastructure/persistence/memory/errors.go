package memory

import "fmt"

func errNotFound(kind, id string) error {
	return fmt.Errorf("%s %s not found", kind, id)
}
