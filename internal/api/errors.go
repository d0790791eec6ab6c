package api

import (
	"fmt"
)

// ApplicationError is an error the service reported inside a successful response
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}

// TransportError is a non-2xx response, the body is never read
type TransportError struct {
	StatusCode int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

// NetworkError is a request that could not be completed at all
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}

	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
