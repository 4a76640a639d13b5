// Package apierr maps core errors onto HTTP responses.
package apierr

import (
	"context"
	"errors"
	"net/http"

	"catalog-app/internal/domain/works"
	"catalog-app/internal/imaging"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// StateNotFound is the body state clients render as the "not found" view.
const StateNotFound = "not_found"

// Write responds with the status matching err. Remote failures are logged, nothing is retried.
func Write(c *gin.Context, log zerolog.Logger, err error) {
	status, body := Response(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Int("status", status).Msg("request failed")
	}
	c.JSON(status, body)
}

// Response returns the status and JSON body for err.
func Response(err error) (int, gin.H) {
	var ve *works.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field}
	case errors.Is(err, works.ErrValidation):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.Is(err, imaging.ErrDecode):
		return http.StatusBadRequest, gin.H{"error": "Could not read the image, try another file"}
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, gin.H{"error": "Upload too large"}
	case errors.Is(err, works.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": "Not found", "state": StateNotFound}
	case errors.Is(err, works.ErrRemoteWrite):
		return http.StatusBadGateway, gin.H{"error": "Could not save, please try again"}
	case errors.Is(err, works.ErrRemoteRead):
		return http.StatusBadGateway, gin.H{"error": "Could not load, please try again"}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, gin.H{"error": "Request cancelled"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "Internal error"}
	}
}
