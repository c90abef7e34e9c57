package couchdb

import (
	"fmt"
	"net/http"

	kivik "github.com/go-kivik/kivik/v4"
	"github.com/phrazzld/webapp/internal/store"
)

// MapError maps a CouchDB error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch kivik.HTTPStatus(err) {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	case http.StatusConflict, http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	// Return the original error for errors that don't have specific mappings
	return err
}
