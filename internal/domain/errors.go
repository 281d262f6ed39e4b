package domain

import (
	"errors"
	"fmt"
)

// ErrGeolocationUnavailable is returned when no location source is configured.
var ErrGeolocationUnavailable = errors.New("geolocation unavailable")

// Geolocation error codes, mirroring what location providers report.
const (
	GeoPermissionDenied    = "permission_denied"
	GeoPositionUnavailable = "position_unavailable"
	GeoTimeout             = "timeout"
)

type GeolocationError struct {
	Code string
	Err  error
}

func (e GeolocationError) Error() string {
	if e.Err == nil {
		return "geolocation error: " + e.Code
	}
	return fmt.Sprintf("geolocation error: %s: %v", e.Code, e.Err)
}

func (e GeolocationError) Unwrap() error { return e.Err }

// UpstreamError wraps a failed call to the backend API.
type UpstreamError struct {
	Op     string
	Status int
	Err    error
}

func (e UpstreamError) Error() string {
	if e.Err == nil {
		return e.Op + ": upstream error"
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e UpstreamError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// LimitError reports that a bounded resource is full.
type LimitError struct {
	Resource string
	Limit    int
}

func (e LimitError) Error() string {
	return fmt.Sprintf("too many %s (limit %d)", e.Resource, e.Limit)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsLimit(err error) bool {
	var target LimitError
	return errors.As(err, &target)
}

func IsUpstream(err error) bool {
	var target UpstreamError
	return errors.As(err, &target)
}

// IsGeolocation reports both the unavailable sentinel and GeolocationError.
func IsGeolocation(err error) bool {
	if errors.Is(err, ErrGeolocationUnavailable) {
		return true
	}
	var target GeolocationError
	return errors.As(err, &target)
}
