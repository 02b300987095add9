package services

import "fmt"

// NotFoundError is returned when a resource does not exist or has been
// soft-deleted. The message matches the API's "{Resource} not found" shape.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
