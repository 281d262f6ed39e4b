package services

import (
	"errors"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/backend"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/domain"
)

// upstream maps a backend failure to a domain error: 404 becomes
// NotFoundError for resource, anything else UpstreamError.
func upstream(op, resource string, err error) error {
	if err == nil {
		return nil
	}
	if backend.IsNotFound(err) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return domain.UpstreamError{Op: op, Status: apiErr.Status, Err: err}
	}
	return domain.UpstreamError{Op: op, Err: err}
}
