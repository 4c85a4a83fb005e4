package controllers

import (
	"errors"
	"net/http"

	"github.com/Ajmalajjuca/Bite-check/middlewares"
	"github.com/Ajmalajjuca/Bite-check/services"

	"github.com/gin-gonic/gin"
)

func authFromCtx(c *gin.Context) *services.AuthContext {
	v, ok := c.Get(middlewares.AuthContextKey)
	if !ok {
		return nil
	}
	auth, _ := v.(*services.AuthContext)
	return auth
}

// respondError maps service errors to the alerts the app shows.
func respondError(c *gin.Context, err error) {
	var authErr *services.AuthError
	var storeErr *services.StoreError

	switch {
	case errors.As(err, &authErr):
		c.JSON(authErr.Status, gin.H{"error": authErr.FirstMessage(), "errors": authErr.Messages})
	case errors.Is(err, services.ErrNotSignedIn):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be signed in.", "code": "not_signed_in"})
	case errors.Is(err, services.ErrInvalidDate), errors.Is(err, services.ErrInvalidGoal), errors.Is(err, services.ErrNothingToAdd),
		errors.Is(err, services.ErrTooManyCalories):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoUploader):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &storeErr):
		switch storeErr.Kind {
		case services.StoreUnavailable:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "You're offline. Please check your internet connection and try again.",
				"code":  string(storeErr.Kind),
			})
		case services.StorePermissionDenied:
			c.JSON(http.StatusForbidden, gin.H{
				"error": "You don't have permission to save data.",
				"code":  string(storeErr.Kind),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to save calories. Please try again.",
				"code":  string(storeErr.Kind),
			})
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
