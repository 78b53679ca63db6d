package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "operationaltracker/internal/errors"
	"operationaltracker/internal/logger"
	"operationaltracker/internal/middleware"
)

// currentIdentity extracts the authenticated identity from the Gin context.
// Returns ErrUnauthorized if not present.
func currentIdentity(c *gin.Context) (middleware.Identity, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return middleware.Identity{}, apperrors.ErrUnauthorized
	}
	return identity, nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// parseUintQuery parses an optional uint query parameter, returning nil when
// the parameter is absent.
func parseUintQuery(c *gin.Context, param string) (*uint, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	u := uint(id)
	return &u, nil
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter, returning
// nil when the parameter is absent.
func parseDateQuery(c *gin.Context, param string) (*time.Time, error) {
	raw := c.Query(param)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return &t, nil
}

// auditChanges converts a partial-update request into the change payload
// recorded with the audit entry. Unset fields and password values are
// stripped.
func auditChanges(req interface{}) map[string]interface{} {
	data, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	var changes map[string]interface{}
	if err := json.Unmarshal(data, &changes); err != nil {
		return nil
	}
	for k, v := range changes {
		if v == nil {
			delete(changes, k)
		}
	}
	delete(changes, "password")
	return changes
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
