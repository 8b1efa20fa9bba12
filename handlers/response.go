package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mmdatafocus/cashflow_guard/models"
	"github.com/mmdatafocus/cashflow_guard/utils"
)

const internalErrorMessage = "internal server error"

// respondError maps service errors onto status codes. Causes of 500s are kept
// on the gin context for the error logger and never written to the client.
func respondError(c *gin.Context, err error, notFoundMessage string) {
	var verrs utils.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
	case errors.Is(err, models.ErrNoFieldsToUpdate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  models.ErrNoFieldsToUpdate.Error(),
			"errors": utils.ValidationErrors{{Field: "body", Message: models.ErrNoFieldsToUpdate.Error()}},
		})
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
	}
}

// bindError reports a body that could not be decoded or failed its binding
// rules.
func bindError(c *gin.Context, err error) {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	msg := "request body must be a JSON object"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ValidationErrors{{Field: typeErr.Field, Message: "has the wrong type"}}})
		return
	}
	if errors.Is(err, io.EOF) {
		msg = "request body is required"
	}
	c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ValidationErrors{{Field: "body", Message: msg}}})
}

// uuidParam reads a UUID path parameter, answering 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Param(name)
	if !utils.IsUUID(raw) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ValidationErrors{{Field: name, Message: name + " must be a valid UUID"}}})
		return uuid.Nil, false
	}
	return uuid.MustParse(raw), true
}

func queryPtr(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok {
		return &v
	}
	return nil
}
