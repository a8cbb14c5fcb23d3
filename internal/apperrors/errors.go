package apperrors

import "fmt"

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// ErrUpstreamStatus is returned when an upstream API answers with a
// non-success HTTP status. The failed operation name is carried so callers
// can report which fetch broke. Upstream errors are never retried.
type ErrUpstreamStatus struct {
	Operation  string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUpstreamStatus) Error() string {
	return fmt.Sprintf("%s failed with upstream status %d", e.Operation, e.StatusCode)
}

// Is allows for error checking with errors.Is().
func (e *ErrUpstreamStatus) Is(target error) bool {
	_, ok := target.(*ErrUpstreamStatus)
	return ok
}

// NewUpstreamStatusError creates a new ErrUpstreamStatus.
func NewUpstreamStatusError(operation string, statusCode int) *ErrUpstreamStatus {
	return &ErrUpstreamStatus{
		Operation:  operation,
		StatusCode: statusCode,
	}
}

// ErrUnsupportedServer is returned when a stream request names a server that
// matches no known resolution strategy. It is rejected before any network call.
type ErrUnsupportedServer struct {
	Name string
}

// Error implements the error interface.
func (e *ErrUnsupportedServer) Error() string {
	return fmt.Sprintf("unsupported server type %q", e.Name)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnsupportedServer) Is(target error) bool {
	_, ok := target.(*ErrUnsupportedServer)
	return ok
}

// NewUnsupportedServerError creates a new ErrUnsupportedServer.
func NewUnsupportedServerError(name string) *ErrUnsupportedServer {
	return &ErrUnsupportedServer{
		Name: name,
	}
}
