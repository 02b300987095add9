package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/auth"
	"github.com/mrlokans/bookstore/internal/services"
	"github.com/mrlokans/bookstore/internal/validation"
)

// respondError maps service-layer errors to HTTP responses:
// validation failures to 422 with the field->messages map, missing resources
// to 404, bad login credentials to a generic 400 "Unauthorized", and anything
// else to 500.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": verr.Fields})
		return
	}

	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, gin.H{"message": nf.Error()})
		return
	}

	if errors.Is(err, auth.ErrUnauthorized) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unauthorized"})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
