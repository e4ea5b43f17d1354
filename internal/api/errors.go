package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrPokemonNotFound is returned when a species is absent from a snapshot.
	ErrPokemonNotFound = errors.New("pokemon not found")
	// ErrNoMonths is returned when the stats index lists no months.
	ErrNoMonths = errors.New("no months available")
	// ErrNoData is returned for a chaos document without a data block.
	ErrNoData = errors.New("stats document has no data")
)

// HTTPStatusError is a response outside the 2xx range.
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d: GET %s", e.StatusCode, e.URL)
}

// NetworkError is a request that never produced a response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPStatusError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// IsNotFound reports a 404 or a missing species.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPokemonNotFound) || StatusCode(err) == http.StatusNotFound
}
